package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mohamim360/kanban-api/internal/api/dto"
	"github.com/mohamim360/kanban-api/internal/database/models"
	"github.com/mohamim360/kanban-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCreate(t *testing.T) {
	router, tc := setupRouter(t, nil)

	req := testutil.AuthenticatedRequest(t, http.MethodPost, "/api/v1/projects/", dto.CreateProjectRequest{
		Name:        "Launch",
		Description: "Release checklist",
	}, tc.Token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	testutil.AssertStatus(t, rr, http.StatusCreated)

	var project models.Project
	testutil.ParseJSONResponse(t, rr, &project)
	assert.Equal(t, "Launch", project.Name)
	assert.Equal(t, tc.User.ID, project.OwnerUserID)
}

func TestProjectCreate_ValidationFailure(t *testing.T) {
	router, tc := setupRouter(t, nil)

	req := testutil.AuthenticatedRequest(t, http.MethodPost, "/api/v1/projects/", map[string]string{
		"description": "no name",
	}, tc.Token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	var resp dto.ErrorResponse
	testutil.ParseJSONResponse(t, rr, &resp)
	assert.Contains(t, resp.Details, "name")
}

func TestProjectCreate_Unauthenticated(t *testing.T) {
	router, _ := setupRouter(t, nil)

	req := testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/projects/", dto.CreateProjectRequest{Name: "Nope"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestProjectList_OnlyOwnProjects(t *testing.T) {
	router, tc := setupRouter(t, nil)

	mine := testutil.CreateTestProject(t, tc.DB, tc.User.ID, "Mine")
	testutil.CreateTestTask(t, tc.DB, mine.ID, "A task")
	stranger := testutil.CreateTestUser(t, tc.DB)
	testutil.CreateTestProject(t, tc.DB, stranger.ID, "Theirs")

	req := testutil.AuthenticatedRequest(t, http.MethodGet, "/api/v1/projects/", nil, tc.Token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	testutil.AssertStatus(t, rr, http.StatusOK)

	var listed []struct {
		models.Project
		TaskCount int64 `json:"task_count"`
	}
	testutil.ParseJSONResponse(t, rr, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "Mine", listed[0].Name)
	assert.Equal(t, int64(1), listed[0].TaskCount)
}

func TestProjectGet_NotFoundForForeignProject(t *testing.T) {
	router, tc := setupRouter(t, nil)

	stranger := testutil.CreateTestUser(t, tc.DB)
	foreign := testutil.CreateTestProject(t, tc.DB, stranger.ID, "Theirs")

	req := testutil.AuthenticatedRequest(t, http.MethodGet, "/api/v1/projects/"+foreign.ID.String(), nil, tc.Token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestProjectGet_InvalidID(t *testing.T) {
	router, tc := setupRouter(t, nil)

	req := testutil.AuthenticatedRequest(t, http.MethodGet, "/api/v1/projects/not-a-uuid", nil, tc.Token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestProjectUpdate(t *testing.T) {
	router, tc := setupRouter(t, nil)
	project := testutil.CreateTestProject(t, tc.DB, tc.User.ID, "Before")

	req := testutil.AuthenticatedRequest(t, http.MethodPut, "/api/v1/projects/"+project.ID.String(), map[string]string{
		"name": "After",
	}, tc.Token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	testutil.AssertStatus(t, rr, http.StatusOK)

	var updated models.Project
	testutil.ParseJSONResponse(t, rr, &updated)
	assert.Equal(t, "After", updated.Name)
}

func TestProjectUpdate_RejectsUnknownFields(t *testing.T) {
	router, tc := setupRouter(t, nil)
	project := testutil.CreateTestProject(t, tc.DB, tc.User.ID, "Frozen")

	// Server-managed fields are not patchable.
	req := testutil.AuthenticatedRequest(t, http.MethodPut, "/api/v1/projects/"+project.ID.String(), map[string]string{
		"name": "Renamed",
		"id":   "11111111-1111-1111-1111-111111111111",
	}, tc.Token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	var reloaded models.Project
	require.NoError(t, tc.DB.First(&reloaded, "id = ?", project.ID).Error)
	assert.Equal(t, "Frozen", reloaded.Name)
}

func TestProjectDelete(t *testing.T) {
	router, tc := setupRouter(t, nil)
	project := testutil.CreateTestProject(t, tc.DB, tc.User.ID, "Doomed")
	testutil.CreateTestTask(t, tc.DB, project.ID, "Goes too")

	req := testutil.AuthenticatedRequest(t, http.MethodDelete, "/api/v1/projects/"+project.ID.String(), nil, tc.Token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	testutil.AssertStatus(t, rr, http.StatusOK)

	var deleted models.Project
	testutil.ParseJSONResponse(t, rr, &deleted)
	assert.Equal(t, project.ID, deleted.ID)

	var count int64
	require.NoError(t, tc.DB.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}