// It defines the API server, sets up the routes (endpoints)
// using chi, and links them to the handler functions.

package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/modlingo/modlingo/internal/core"
	"github.com/modlingo/modlingo/internal/store"
	"github.com/modlingo/modlingo/internal/update"
)

// Server holds the dependencies for our API.
type Server struct {
	app     *core.App
	db      *sql.DB
	store   *store.Store
	checker *update.Checker
}

// NewServer creates a new Server instance.
func NewServer(app *core.App) *Server {
	return &Server{
		app:     app,
		db:      app.DB(),
		store:   app.Store(),
		checker: update.NewChecker(),
	}
}

// Store returns the store instance.
func (s *Server) Store() *store.Store {
	return s.store
}

// SetUpdateChecker swaps the release checker. Used by tests.
func (s *Server) SetUpdateChecker(c *update.Checker) { s.checker = c }

// Router sets up and returns the main router for the application.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)    // Logs requests to the console
	r.Use(middleware.Recoverer) // Recovers from panics
	r.Use(middleware.Timeout(60 * time.Second))

	// Unauthenticated routes.
	r.Post("/api/users/login", s.handleLogin)
	r.Post("/api/users/register", s.handleRegister)
	r.Get("/api/version", s.handleGetVersion)
	r.Get("/api/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.AuthMiddleware)

		r.Post("/api/users/logout", s.handleLogout)
		r.Get("/api/users/me", s.handleGetMe)

		r.Route("/api", func(r chi.Router) {
			r.Get("/config", s.handleGetConfig)
			r.Get("/version/check", s.handleCheckForUpdate)

			// Mod library
			r.Get("/mods", s.handleListMods)
			r.Get("/mods/{modID}", s.handleGetMod)
			r.Post("/mods/rescan", s.handleRescanMods)

			// Translation jobs
			r.Post("/jobs", s.handleCreateJob)
			r.Get("/jobs", s.handleListJobs)
			r.Post("/jobs/run-batch", s.handleRunBatch)
			r.Get("/jobs/{jobID}", s.handleGetJob)
			r.Post("/jobs/{jobID}/run", s.handleRunJob)
			r.Post("/jobs/{jobID}/interrupt", s.handleInterruptJob)
			r.Get("/jobs/{jobID}/content", s.handleGetJobContent)
			r.Get("/jobs/{jobID}/events", s.handleGetJobEvents)
			r.Delete("/jobs/{jobID}", s.handleClearJob)

			// Quest files
			r.Post("/quests/extract", s.handleExtractQuests)
			r.Post("/quests/apply", s.handleApplyQuests)

			// Providers
			r.Get("/providers", s.handleListProviders)
			r.Post("/providers/validate", s.handleValidateProvider)

			// History
			r.Get("/sessions", s.handleListSessions)
			r.Delete("/sessions/{jobID}", s.handleDeleteSession)
			r.Get("/backups", s.handleListBackups)

			// Admin: job triggers and user management
			r.Route("/admin", func(r chi.Router) {
				r.Use(s.AdminOnlyMiddleware)
				r.Get("/jobs/status", s.handleGetAdminJobsStatus)
				r.Post("/jobs/run", s.handleRunAdminJob)
				r.Get("/users", s.handleAdminListUsers)
				r.Post("/users", s.handleAdminCreateUser)
				r.Put("/users/{userID}/password", s.handleAdminUpdateUserPassword)
				r.Delete("/users/{userID}", s.handleAdminDeleteUser)
			})
		})
	})

	// WebSocket route for live translation progress.
	r.Get("/ws/progress", func(w http.ResponseWriter, r *http.Request) {
		s.app.WsHub().ServeWs(w, r)
	})

	return r
}
