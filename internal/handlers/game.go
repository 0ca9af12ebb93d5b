package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/michal995/ticketrush/internal/catalog"
)

// handleIndex serves the start page (player name, mode select, leaderboard)
func (h *Handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.templates.Index.Execute(w, nil)
}

// handleGamePage serves the kiosk playfield for an existing session
func (h *Handlers) handleGamePage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := h.Sessions.Get(sessionID); err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	data := map[string]string{
		"SessionID": sessionID,
	}
	h.templates.Game.Execute(w, data)
}

// handleGetCatalog returns modes, ticket types and currently enabled denominations
func (h *Handlers) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	resp := CatalogResponse{}

	for _, m := range catalog.Modes {
		resp.Modes = append(resp.Modes, ModeResponse{
			Key:         m.Key,
			Label:       m.Label,
			TimeLimit:   m.TimeLimit,
			Description: m.Description,
		})
	}
	for _, t := range catalog.TicketTypes {
		resp.Tickets = append(resp.Tickets, TicketTypeResponse{
			Name:  t.Name,
			Price: t.Price,
			Class: t.Class,
		})
	}
	for _, d := range h.Settings.AvailableDenominations() {
		resp.Denominations = append(resp.Denominations, DenominationResponse{
			Value: d.Value,
			Kind:  string(d.Kind),
		})
	}

	respondOK(w, resp)
}

// handleCreateSession starts a new game session
func (h *Handlers) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	id, snapshot, err := h.Sessions.Create(req.Player, req.Mode)
	if err != nil {
		respondError(w, err)
		return
	}

	respondCreated(w, SessionCreateResponse{SessionID: id, State: snapshot})
}

// handleGetSession returns the current state of a session
func (h *Handlers) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	ctrl, err := h.Sessions.Get(sessionID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, ctrl.Snapshot())
}

// handleCloseSession stops and removes a session
func (h *Handlers) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.Sessions.Close(sessionID); err != nil {
		respondError(w, err)
		return
	}

	respondDeleted(w)
}

// handleGetUsers returns remembered player names
func (h *Handlers) handleGetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Stats.ListUsers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, UsersResponse{Users: users})
}

// handleRememberUser stores a player name for the start page dropdown
func (h *Handlers) handleRememberUser(w http.ResponseWriter, r *http.Request) {
	var req RememberUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Stats.RememberUser(r.Context(), req.Name); err != nil {
		respondError(w, err)
		return
	}

	respondSuccess(w, "User remembered")
}

// handleGetScores returns recent final scores, newest first
func (h *Handlers) handleGetScores(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, BadRequest("Invalid limit parameter"))
			return
		}
		limit = n
	}

	scores, err := h.Stats.ListScores(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, ScoresResponse{Scores: scores})
}

// handleGetStats returns aggregate play statistics
func (h *Handlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.GetStats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, stats)
}

// handleJoinQR returns a QR code PNG pointing at the kiosk start page,
// so phones on the same LAN can join with a scan
func (h *Handlers) handleJoinQR(w http.ResponseWriter, r *http.Request) {
	baseURL, err := h.Settings.GetBaseURL(r.Context())
	if err != nil || baseURL == "" {
		respondError(w, NotFound("Base URL is not configured"))
		return
	}

	png, err := qrcode.Encode(baseURL, qrcode.Medium, 256)
	if err != nil {
		respondError(w, InternalError(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(png)
}
