package repository

import (
	"context"

	"github.com/michal995/ticketrush/internal/models"
)

// UserRepository defines player-name persistence. Names are remembered
// once; listing is sorted.
type UserRepository interface {
	RememberUser(ctx context.Context, name string) error
	ListUsers(ctx context.Context) ([]string, error)
}

// ScoreRepository defines the append-only score log and its aggregates.
type ScoreRepository interface {
	InsertScore(ctx context.Context, player, mode string, score int) error
	ListScores(ctx context.Context, limit int) ([]models.ScoreRecord, error)
	GetStats(ctx context.Context) (models.Stats, error)
	ClearScores(ctx context.Context) error
}

// SettingsRepository defines key/value settings storage. GetSetting
// returns ErrNotFound for missing keys.
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// FullRepository combines all repository interfaces
// Use this when a service needs access to multiple domains
type FullRepository interface {
	UserRepository
	ScoreRepository
	SettingsRepository
}
