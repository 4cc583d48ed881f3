package projects

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mohamim360/kanban-api/internal/database/models"
	"github.com/mohamim360/kanban-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	return NewService(db), db
}

func TestCreate(t *testing.T) {
	svc, db := newTestService(t)
	owner := testutil.CreateTestUser(t, db)

	project, err := svc.Create(context.Background(), owner.ID, CreateInput{
		Name:        "Roadmap",
		Description: "Q3 planning",
	})
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", project.Name)
	assert.Equal(t, "Q3 planning", project.Description)
	assert.Equal(t, owner.ID, project.OwnerUserID)
	assert.NotNil(t, project.Tasks)
	assert.Empty(t, project.Tasks)
}

func TestListForOwner_ScopedAndOrdered(t *testing.T) {
	svc, db := newTestService(t)
	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	older := testutil.CreateTestProject(t, db, owner.ID, "Older")
	// Force distinct timestamps so newest-first ordering is observable.
	require.NoError(t, db.Model(older).
		Update("created_at", time.Now().Add(-time.Hour)).Error)
	newer := testutil.CreateTestProject(t, db, owner.ID, "Newer")
	testutil.CreateTestProject(t, db, other.ID, "Foreign")

	listed, err := svc.ListForOwner(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, newer.ID, listed[0].Project.ID)
	assert.Equal(t, older.ID, listed[1].Project.ID)
}

func TestListForOwner_TaskCounts(t *testing.T) {
	svc, db := newTestService(t)
	owner := testutil.CreateTestUser(t, db)

	busy := testutil.CreateTestProject(t, db, owner.ID, "Busy")
	idle := testutil.CreateTestProject(t, db, owner.ID, "Idle")
	testutil.CreateTestTask(t, db, busy.ID, "First")
	testutil.CreateTestTask(t, db, busy.ID, "Second")

	listed, err := svc.ListForOwner(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	counts := map[uuid.UUID]int64{}
	for _, p := range listed {
		counts[p.Project.ID] = p.TaskCount
	}
	assert.Equal(t, int64(2), counts[busy.ID])
	assert.Equal(t, int64(0), counts[idle.ID])
}

func TestGet(t *testing.T) {
	svc, db := newTestService(t)
	owner := testutil.CreateTestUser(t, db)
	project := testutil.CreateTestProject(t, db, owner.ID, "Mine")
	testutil.CreateTestTask(t, db, project.ID, "A task")

	found, err := svc.Get(context.Background(), owner.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, found.ID)
	assert.Len(t, found.Tasks, 1)
}

func TestGet_OtherUsersProjectNotFound(t *testing.T) {
	// A hit on someone else's project is indistinguishable from a miss.
	svc, db := newTestService(t)
	owner := testutil.CreateTestUser(t, db)
	intruder := testutil.CreateTestUser(t, db)
	project := testutil.CreateTestProject(t, db, owner.ID, "Private")

	_, err := svc.Get(context.Background(), intruder.ID, project.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), owner.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_PartialPatch(t *testing.T) {
	svc, db := newTestService(t)
	owner := testutil.CreateTestUser(t, db)
	project := testutil.CreateTestProject(t, db, owner.ID, "Before")
	require.NoError(t, db.Model(project).Update("description", "keep me").Error)

	name := "After"
	updated, err := svc.Update(context.Background(), owner.ID, project.ID, UpdatePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "keep me", updated.Description)

	empty := ""
	updated, err = svc.Update(context.Background(), owner.ID, project.ID, UpdatePatch{Description: &empty})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "", updated.Description)
}

func TestUpdate_OtherUsersProjectUntouched(t *testing.T) {
	svc, db := newTestService(t)
	owner := testutil.CreateTestUser(t, db)
	intruder := testutil.CreateTestUser(t, db)
	project := testutil.CreateTestProject(t, db, owner.ID, "Original")

	name := "Hijacked"
	_, err := svc.Update(context.Background(), intruder.ID, project.ID, UpdatePatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	var reloaded models.Project
	require.NoError(t, db.First(&reloaded, "id = ?", project.ID).Error)
	assert.Equal(t, "Original", reloaded.Name)
}

func TestDelete_CascadesTasks(t *testing.T) {
	svc, db := newTestService(t)
	owner := testutil.CreateTestUser(t, db)
	project := testutil.CreateTestProject(t, db, owner.ID, "Doomed")
	testutil.CreateTestTask(t, db, project.ID, "Goes too")
	survivor := testutil.CreateTestProject(t, db, owner.ID, "Survivor")
	kept := testutil.CreateTestTask(t, db, survivor.ID, "Kept")

	deleted, err := svc.Delete(context.Background(), owner.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, deleted.ID)

	var projectCount, taskCount int64
	require.NoError(t, db.Model(&models.Project{}).Where("id = ?", project.ID).Count(&projectCount).Error)
	require.NoError(t, db.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&taskCount).Error)
	assert.Equal(t, int64(0), projectCount)
	assert.Equal(t, int64(0), taskCount)

	var keptCount int64
	require.NoError(t, db.Model(&models.Task{}).Where("id = ?", kept.ID).Count(&keptCount).Error)
	assert.Equal(t, int64(1), keptCount)
}

func TestDelete_OtherUsersProjectNotFound(t *testing.T) {
	svc, db := newTestService(t)
	owner := testutil.CreateTestUser(t, db)
	intruder := testutil.CreateTestUser(t, db)
	project := testutil.CreateTestProject(t, db, owner.ID, "Safe")

	_, err := svc.Delete(context.Background(), intruder.ID, project.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Project{}).Where("id = ?", project.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}