package services

import (
	"context"

	"github.com/michal995/ticketrush/internal/catalog"
	"github.com/michal995/ticketrush/internal/game"
	"github.com/michal995/ticketrush/internal/models"
)

// SettingsServicer defines the settings operations used across the app
type SettingsServicer interface {
	DenominationEnabled(toggleKey string) bool
	SetDenominationToggle(ctx context.Context, toggleKey string, enabled bool) error
	Toggles(ctx context.Context) (map[string]bool, error)
	AvailableDenominations() []catalog.Denomination
	GetBaseURL(ctx context.Context) (string, error)
	SetBaseURL(ctx context.Context, url string) error
}

// StatsServicer defines user/score persistence operations
type StatsServicer interface {
	game.Recorder
	RememberUser(ctx context.Context, name string) error
	ListUsers(ctx context.Context) ([]string, error)
	ListScores(ctx context.Context, limit int) ([]models.ScoreRecord, error)
	GetStats(ctx context.Context) (models.Stats, error)
	ResetScores(ctx context.Context) error
}

// SessionServicer defines the game session operations exposed over HTTP
// and the WebSocket input path
type SessionServicer interface {
	Create(player, mode string) (string, models.Snapshot, error)
	Get(id string) (*game.Controller, error)
	Close(id string) error
	Count() int
	HandleInput(sessionID string, input models.PlayerInput)
}

// Presenter hands out per-session outbound notifiers. Implemented by the
// WebSocket hub; injected late to break the wiring cycle between hub and
// session service.
type Presenter interface {
	NotifierFor(sessionID string) game.Notifier
}
