package models

import "github.com/michal995/ticketrush/internal/catalog"

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// PlayerInput is an inbound player action delivered over the WebSocket.
type PlayerInput struct {
	Type  string  `json:"type"`
	Name  string  `json:"name,omitempty"`
	Value float64 `json:"value,omitempty"`
}

// HistoryEntry is one line of the in-round action log.
type HistoryEntry struct {
	Message string `json:"message"`
	Value   string `json:"value"`
}

// ScoreEvent is a single score delta recorded during a round.
type ScoreEvent struct {
	Type   string `json:"type"`
	Label  string `json:"label"`
	Points int    `json:"points"`
}

// BonusAward is a secondary bonus granted at round finish.
type BonusAward struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Points int    `json:"points"`
}

// OverlayDetail is a label/value pair on a result overlay.
type OverlayDetail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// OverlayAction is a button the rendering layer should offer. The client
// reports the chosen action back by its ID.
type OverlayAction struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Overlay is the round-result or session-summary payload handed to the
// rendering collaborator.
type Overlay struct {
	Title          string          `json:"title"`
	Subtitle       string          `json:"subtitle"`
	Points         int             `json:"points"`
	Details        []OverlayDetail `json:"details"`
	Bonuses        []BonusAward    `json:"bonuses,omitempty"`
	Actions        []OverlayAction `json:"actions"`
	Countdown      int             `json:"countdown,omitempty"`
	CountdownLabel string          `json:"countdown_label,omitempty"`
}

// RoundSummary captures the outcome of one finished round.
type RoundSummary struct {
	Round            int          `json:"round"`
	Points           int          `json:"points"`
	BasePoints       int          `json:"base_points"`
	Bonuses          []BonusAward `json:"bonuses"`
	PerfectTickets   bool         `json:"perfect_tickets"`
	TicketValueMatch bool         `json:"ticket_value_match"`
	ChangeDelta      float64      `json:"change_delta"`
	TimeLeft         int          `json:"time_left"`
	ElapsedSeconds   float64      `json:"elapsed_seconds"`
	Reason           string       `json:"reason"`
	CoinsUsed        int          `json:"coins_used"`
	TicketCount      int          `json:"ticket_count"`
}

// SessionSummary is the immutable end-of-session snapshot.
type SessionSummary struct {
	Player    string         `json:"player"`
	Mode      string         `json:"mode"`
	ModeLabel string         `json:"mode_label"`
	Score     int            `json:"score"`
	Rounds    int            `json:"rounds"`
	Summaries []RoundSummary `json:"summaries"`
}

// Snapshot is the full round state pushed to the rendering collaborator
// after every mutation.
type Snapshot struct {
	Player               string                 `json:"player"`
	Mode                 string                 `json:"mode"`
	Round                int                    `json:"round"`
	TotalRounds          int                    `json:"total_rounds"`
	Score                int                    `json:"score"`
	RoundScore           int                    `json:"round_score"`
	TimeLeft             int                    `json:"time_left"`
	Paused               bool                   `json:"paused"`
	Available            []catalog.TicketType   `json:"available"`
	Denominations        []catalog.Denomination `json:"denominations"`
	Request              map[string]int         `json:"request"`
	SelectedTickets      map[string]int         `json:"selected_tickets"`
	SelectedTotal        float64                `json:"selected_total"`
	TicketTotal          float64                `json:"ticket_total"`
	Pays                 float64                `json:"pays"`
	ChangeDue            float64                `json:"change_due"`
	Inserted             float64                `json:"inserted"`
	CoinsUsed            map[string]int         `json:"coins_used"`
	TicketsPhaseComplete bool                   `json:"tickets_phase_complete"`
	CanPay               bool                   `json:"can_pay"`
	ShowPays             bool                   `json:"show_pays"`
	ShowChange           bool                   `json:"show_change"`
	PayFlashPending      bool                   `json:"pay_flash_pending"`
	History              []HistoryEntry         `json:"history"`
	Events               []ScoreEvent           `json:"events"`
}

// ScoreRecord is one persisted score log entry.
type ScoreRecord struct {
	Player    string `json:"player"`
	Mode      string `json:"mode"`
	Score     int    `json:"score"`
	CreatedAt string `json:"created_at"`
}

// Stats are the aggregate persisted statistics.
type Stats struct {
	GamesPlayed int `json:"games_played"`
	BestScore   int `json:"best_score"`
}
