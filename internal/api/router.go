package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/mohamim360/kanban-api/internal/api/handlers"
	"github.com/mohamim360/kanban-api/internal/api/middleware"
	"github.com/mohamim360/kanban-api/internal/auth"
	"github.com/mohamim360/kanban-api/internal/directory"
	"github.com/mohamim360/kanban-api/internal/metrics"
	"github.com/mohamim360/kanban-api/internal/projects"
	"github.com/mohamim360/kanban-api/internal/tasks"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Logger         *slog.Logger
	Resolver       auth.IdentityResolver
	Directory      *directory.Service
	Registry       *prometheus.Registry
	AllowedOrigins []string // CORS allowed origins
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	var recorder metrics.Recorder
	if cfg.Registry != nil {
		recorder = metrics.NewCollector(cfg.Registry)
	}

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger, recorder))

	// CORS - restrict to configured origins, or allow localhost in development
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize services
	projectService := projects.NewService(cfg.DB)
	taskService := tasks.NewService(cfg.DB)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB)
	userHandler := handlers.NewUserHandler(cfg.Directory)
	projectHandler := handlers.NewProjectHandler(projectService, cfg.Directory)
	taskHandler := handlers.NewTaskHandler(taskService, cfg.Directory)

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	if cfg.Registry != nil {
		r.Method("GET", "/metrics", metrics.Handler(cfg.Registry))
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Everything below requires an authenticated identity
		r.Use(middleware.Identity(cfg.Resolver))

		r.Get("/me", userHandler.Me)
		r.Get("/users", userHandler.List)

		// Projects endpoints
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.List)
			r.Post("/", projectHandler.Create)
			r.Get("/{id}", projectHandler.Get)
			r.Put("/{id}", projectHandler.Update)
			r.Delete("/{id}", projectHandler.Delete)
		})

		// Tasks endpoints
		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", taskHandler.Create)
			r.Get("/search", taskHandler.Search)
			r.Get("/filter", taskHandler.Filter)
			r.Get("/project/{projectId}", taskHandler.ListForProject)
			r.Put("/{id}", taskHandler.Update)
			r.Put("/{id}/move", taskHandler.Move)
			r.Post("/{id}/clone", taskHandler.Clone)
			r.Delete("/{id}", taskHandler.Delete)
		})
	})

	return &Router{r}
}
