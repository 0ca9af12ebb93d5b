package mock

import (
	"context"

	"github.com/michal995/ticketrush/internal/models"
	"github.com/michal995/ticketrush/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
// This provides a flexible way to test error paths without complex database manipulation.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.InsertScoreError = errors.New("database error")
//	svc := services.NewStatsService(log, mockRepo)
//	err := svc.RecordScore(summary)
//	// err will now contain the injected error
type Repository struct {
	repository.FullRepository

	RememberUserError error
	ListUsersError    error

	InsertScoreError error
	ListScoresError  error
	GetStatsError    error
	ClearScoresError error

	GetSettingError error
	SetSettingError error
}

// NewRepository creates a mock wrapping the given real repository.
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{FullRepository: real}
}

func (m *Repository) RememberUser(ctx context.Context, name string) error {
	if m.RememberUserError != nil {
		return m.RememberUserError
	}
	return m.FullRepository.RememberUser(ctx, name)
}

func (m *Repository) ListUsers(ctx context.Context) ([]string, error) {
	if m.ListUsersError != nil {
		return nil, m.ListUsersError
	}
	return m.FullRepository.ListUsers(ctx)
}

func (m *Repository) InsertScore(ctx context.Context, player, mode string, score int) error {
	if m.InsertScoreError != nil {
		return m.InsertScoreError
	}
	return m.FullRepository.InsertScore(ctx, player, mode, score)
}

func (m *Repository) ListScores(ctx context.Context, limit int) ([]models.ScoreRecord, error) {
	if m.ListScoresError != nil {
		return nil, m.ListScoresError
	}
	return m.FullRepository.ListScores(ctx, limit)
}

func (m *Repository) GetStats(ctx context.Context) (models.Stats, error) {
	if m.GetStatsError != nil {
		return models.Stats{}, m.GetStatsError
	}
	return m.FullRepository.GetStats(ctx)
}

func (m *Repository) ClearScores(ctx context.Context) error {
	if m.ClearScoresError != nil {
		return m.ClearScoresError
	}
	return m.FullRepository.ClearScores(ctx)
}

func (m *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	if m.GetSettingError != nil {
		return "", m.GetSettingError
	}
	return m.FullRepository.GetSetting(ctx, key)
}

func (m *Repository) SetSetting(ctx context.Context, key, value string) error {
	if m.SetSettingError != nil {
		return m.SetSettingError
	}
	return m.FullRepository.SetSetting(ctx, key, value)
}
