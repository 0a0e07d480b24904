package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ellery/crewdesk/internal/api/handlers"
	"github.com/ellery/crewdesk/internal/api/middleware"
	"github.com/ellery/crewdesk/internal/auth"
	"github.com/ellery/crewdesk/internal/roster"
	"github.com/ellery/crewdesk/internal/storage"
	"github.com/ellery/crewdesk/internal/tasks"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *slog.Logger
	JWTService     *auth.JWTService
	AuthService    *auth.Service
	Storage        *storage.Client
	AllowedOrigins []string // CORS allowed origins
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// CORS - restrict to configured origins, or allow localhost in development
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize services
	rosterService := roster.NewService(cfg.DB, cfg.AuthService)
	taskService := tasks.NewService(cfg.DB)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis)
	authHandler := handlers.NewAuthHandler(cfg.AuthService, cfg.JWTService)
	profileHandler := handlers.NewProfileHandler(cfg.DB, cfg.Storage)
	adminHandler := handlers.NewAdminHandler(rosterService)
	taskHandler := handlers.NewTaskHandler(taskService)
	accountHandler := handlers.NewAccountHandler(cfg.DB)
	ideaHandler := handlers.NewIdeaHandler(cfg.DB, cfg.Storage)

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTService, cfg.AuthService))

			// Current user
			r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
				userID := middleware.GetUserID(r.Context())
				user, err := cfg.AuthService.GetUserByID(r.Context(), userID)
				if err != nil {
					http.Error(w, "User not found", http.StatusNotFound)
					return
				}
				writeJSON(w, http.StatusOK, user)
			})

			// Profile endpoints
			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profileHandler.Get)
				r.Put("/", profileHandler.Update)
				r.Post("/avatar", profileHandler.UploadAvatar)
			})

			// Task endpoints
			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.List)
				r.Post("/", taskHandler.Create)
				r.Get("/assignees", taskHandler.Assignees)
				r.Post("/{id}/toggle", taskHandler.ToggleCompletion)
			})

			// Social accounts (read-only)
			r.Get("/accounts", accountHandler.List)

			// Idea endpoints
			r.Route("/ideas", func(r chi.Router) {
				r.Get("/", ideaHandler.List)
				r.Post("/", ideaHandler.Create)
				r.Post("/media", ideaHandler.UploadMedia)
			})

			// Admin endpoints - gated on the caller's fetched role set,
			// not on anything in the token
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin(cfg.DB))

				r.Get("/users", adminHandler.ListUsers)
				r.Post("/users", adminHandler.CreateUser)
				r.Put("/users/{id}/roles", adminHandler.ReplaceRoles)
			})
		})
	})

	return &Router{r}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
