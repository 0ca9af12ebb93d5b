package handlers

import (
	"net/http"

	"github.com/michal995/ticketrush/internal/auth"
)

// LoginPageData holds data for the login template
type LoginPageData struct {
	Error string
}

// AdminPageData holds the data passed to admin templates
type AdminPageData struct {
	Title     string
	PageTitle string
}

// handleLoginPage renders the login form
func (h *Handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	// If already logged in, redirect to admin
	if h.Auth.GetSessionFromRequest(r) {
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}

	h.templates.AdminLogin.Execute(w, LoginPageData{})
}

// handleLogin processes login form submission
func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	password := r.FormValue("password")

	token, ok := h.Auth.Login(password)
	if !ok {
		h.templates.AdminLogin.Execute(w, LoginPageData{
			Error: "Invalid password",
		})
		return
	}

	auth.SetSessionCookie(w, token)
	http.Redirect(w, r, "/admin", http.StatusFound)
}

// handleLogout clears the session and redirects to login
func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		h.Auth.Logout(cookie.Value)
	}

	auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/admin/login", http.StatusFound)
}

// handleAdminSettings renders the admin settings page
func (h *Handlers) handleAdminSettings(w http.ResponseWriter, r *http.Request) {
	h.templates.AdminSettings.ExecuteTemplate(w, "layout.html", AdminPageData{
		Title:     "Settings - TicketRush",
		PageTitle: "Settings",
	})
}

// handleGetSettings returns the current settings and denomination toggles
func (h *Handlers) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	baseURL, _ := h.Settings.GetBaseURL(ctx)
	toggles, err := h.Settings.Toggles(ctx)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, SettingsResponse{
		BaseURL: baseURL,
		Toggles: toggles,
	})
}

// handleUpdateSettings updates the base URL and any provided toggles
func (h *Handlers) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	ctx := r.Context()
	if req.BaseURL != "" {
		if err := h.Settings.SetBaseURL(ctx, req.BaseURL); err != nil {
			respondError(w, err)
			return
		}
	}
	for key, enabled := range req.Toggles {
		if err := h.Settings.SetDenominationToggle(ctx, key, enabled); err != nil {
			respondError(w, err)
			return
		}
	}

	respondSuccess(w, "Settings updated")
}

// handleUpdateToggle flips a single denomination toggle
func (h *Handlers) handleUpdateToggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Settings.SetDenominationToggle(r.Context(), req.Key, req.Enabled); err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "Toggle updated")
}

// handleResetScores clears the score history
func (h *Handlers) handleResetScores(w http.ResponseWriter, r *http.Request) {
	if err := h.Stats.ResetScores(r.Context()); err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "Scores cleared")
}
