package handlers

// SessionCreateRequest represents a request to start a new game session
type SessionCreateRequest struct {
	Player string `json:"player"`
	Mode   string `json:"mode"`
}

// RememberUserRequest represents a request to remember a player name
type RememberUserRequest struct {
	Name string `json:"name"`
}

// ToggleUpdateRequest represents a request to flip a denomination toggle
type ToggleUpdateRequest struct {
	Key     string `json:"key"`
	Enabled bool   `json:"enabled"`
}

// SettingsUpdateRequest represents a request to update settings
type SettingsUpdateRequest struct {
	BaseURL string          `json:"base_url"`
	Toggles map[string]bool `json:"toggles,omitempty"`
}
