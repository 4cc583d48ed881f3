package handlers_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/mohamim360/kanban-api/internal/api"
	"github.com/mohamim360/kanban-api/internal/auth"
	"github.com/mohamim360/kanban-api/internal/directory"
	"github.com/mohamim360/kanban-api/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
)

// stubProvider stands in for the identity provider's directory API.
type stubProvider struct {
	users []directory.RemoteUser
	err   error
}

func (p *stubProvider) ListUsers(ctx context.Context) ([]directory.RemoteUser, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.users, nil
}

// setupRouter wires the full API surface against an in-memory database.
// The provider is unreachable by default so directory listings fall back
// to local users.
func setupRouter(t *testing.T, provider directory.Provider) (http.Handler, *testutil.TestSetup) {
	t.Helper()

	if provider == nil {
		provider = &stubProvider{err: errors.New("provider offline")}
	}

	tc := testutil.NewTestContext(t)
	t.Cleanup(tc.Cleanup)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := directory.NewService(tc.DB, provider, logger)

	router := api.NewRouter(api.RouterConfig{
		DB:        tc.DB,
		Logger:    logger,
		Resolver:  auth.NewResolver(),
		Directory: dir,
		Registry:  prometheus.NewRegistry(),
	})

	return router, tc
}