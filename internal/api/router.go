package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nerrad567/homehub-core/internal/web"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	if s.cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	apiLimit, staticLimit := s.rateLimitMiddlewares()

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLimit)

		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusNotFound, msgRouteNotFound)
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		})

		r.Get("/health", s.handleHealth)
		r.Post("/auth/login", s.handleLogin)
		r.Get("/ws", s.handleWebSocket)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Route("/devices", func(r chi.Router) {
				r.Get("/", s.handleListDevices)
				r.Post("/", s.handleCreateDevice)
				r.Get("/{id}", s.handleGetDevice)
				r.Put("/{id}", s.handleUpdateDevice)
				r.Delete("/{id}", s.handleDeleteDevice)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", s.handleListUsers)
				r.Post("/", s.handleCreateUser)
				r.Get("/{id}", s.handleGetUser)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", s.handleListSettings)
				r.Get("/{key}", s.handleGetSetting)
				r.Put("/{key}", s.handleUpsertSetting)
			})
		})
	})

	// Dashboard with SPA fallback for every other path
	static := s.static
	if static == nil {
		static = web.Handler(s.cfg.StaticDir)
	}
	r.With(staticLimit).Handle("/*", static)

	return r
}
