package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// Static files (served from embedded filesystem)
	r.Handle("/static/*", http.StripPrefix("/static/", h.staticServer))

	// Pages
	r.Get("/", h.handleIndex)
	r.Get("/play/{sessionID}", h.handleGamePage)

	// WebSocket
	r.Get("/ws", h.Hub.ServeWs)

	// Game API (public)
	r.Get("/api/catalog", h.handleGetCatalog)
	r.Post("/api/sessions", h.handleCreateSession)
	r.Get("/api/sessions/{sessionID}", h.handleGetSession)
	r.Delete("/api/sessions/{sessionID}", h.handleCloseSession)
	r.Get("/api/users", h.handleGetUsers)
	r.Post("/api/users", h.handleRememberUser)
	r.Get("/api/scores", h.handleGetScores)
	r.Get("/api/stats", h.handleGetStats)
	r.Get("/api/join-qr", h.handleJoinQR)

	// Auth routes (public)
	r.Get("/admin/login", h.handleLoginPage)
	r.Post("/admin/login", h.handleLogin)
	r.Post("/admin/logout", h.handleLogout)

	// Admin pages (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAuth)
		r.Get("/admin", h.handleAdminSettings)
	})

	// Admin API (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAuthAPI)

		r.Get("/api/admin/settings", h.handleGetSettings)
		r.Post("/api/admin/settings", h.handleUpdateSettings)
		r.Put("/api/admin/settings", h.handleUpdateSettings)
		r.Post("/api/admin/toggles", h.handleUpdateToggle)
		r.Post("/api/admin/reset-scores", h.handleResetScores)
	})

	return r
}
