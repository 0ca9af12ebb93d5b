package handlers

import "github.com/michal995/ticketrush/internal/models"

// SessionCreateResponse is the response for starting a new session
type SessionCreateResponse struct {
	SessionID string          `json:"session_id"`
	State     models.Snapshot `json:"state"`
}

// ModeResponse describes a selectable game mode
type ModeResponse struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	TimeLimit   int    `json:"time_limit"`
	Description string `json:"description"`
}

// TicketTypeResponse describes a purchasable ticket type
type TicketTypeResponse struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Class string  `json:"class"`
}

// DenominationResponse describes a bill or coin the kiosk accepts
type DenominationResponse struct {
	Value float64 `json:"value"`
	Kind  string  `json:"kind"`
}

// CatalogResponse bundles the static game catalog for the client
type CatalogResponse struct {
	Modes         []ModeResponse         `json:"modes"`
	Tickets       []TicketTypeResponse   `json:"tickets"`
	Denominations []DenominationResponse `json:"denominations"`
}

// UsersResponse lists remembered player names
type UsersResponse struct {
	Users []string `json:"users"`
}

// ScoresResponse lists recorded final scores
type ScoresResponse struct {
	Scores []models.ScoreRecord `json:"scores"`
}

// SettingsResponse is the response for settings
type SettingsResponse struct {
	BaseURL string          `json:"base_url"`
	Toggles map[string]bool `json:"toggles"`
}
