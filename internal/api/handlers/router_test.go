package handlers

import (
	"testing"

	"github.com/ellery/crewdesk/internal/api/middleware"
	"github.com/ellery/crewdesk/internal/auth"
	"github.com/ellery/crewdesk/internal/roster"
	"github.com/ellery/crewdesk/internal/tasks"
	"github.com/ellery/crewdesk/internal/testutil"
	"github.com/go-chi/chi/v5"
)

// setupTestRouter wires the full API surface over an in-memory database,
// with no Redis and no object storage configured.
func setupTestRouter(t *testing.T) (chi.Router, *testutil.TestSetup) {
	t.Helper()

	ts := testutil.NewTestContext(t)
	t.Cleanup(ts.Cleanup)

	authService := auth.NewService(ts.DB, ts.JWTService, nil)
	rosterService := roster.NewService(ts.DB, authService)
	taskService := tasks.NewService(ts.DB)

	authHandler := NewAuthHandler(authService, ts.JWTService)
	profileHandler := NewProfileHandler(ts.DB, nil)
	adminHandler := NewAdminHandler(rosterService)
	taskHandler := NewTaskHandler(taskService)
	accountHandler := NewAccountHandler(ts.DB)
	ideaHandler := NewIdeaHandler(ts.DB, nil)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(ts.JWTService, authService))

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profileHandler.Get)
				r.Put("/", profileHandler.Update)
				r.Post("/avatar", profileHandler.UploadAvatar)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.List)
				r.Post("/", taskHandler.Create)
				r.Get("/assignees", taskHandler.Assignees)
				r.Post("/{id}/toggle", taskHandler.ToggleCompletion)
			})

			r.Get("/accounts", accountHandler.List)

			r.Route("/ideas", func(r chi.Router) {
				r.Get("/", ideaHandler.List)
				r.Post("/", ideaHandler.Create)
				r.Post("/media", ideaHandler.UploadMedia)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin(ts.DB))

				r.Get("/users", adminHandler.ListUsers)
				r.Post("/users", adminHandler.CreateUser)
				r.Put("/users/{id}/roles", adminHandler.ReplaceRoles)
			})
		})
	})

	return r, ts
}
