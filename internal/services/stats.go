package services

import (
	"context"
	"strings"

	"github.com/michal995/ticketrush/internal/errors"
	"github.com/michal995/ticketrush/internal/logger"
	"github.com/michal995/ticketrush/internal/models"
	"github.com/michal995/ticketrush/internal/repository"
)

// StatsService handles user and score persistence. It implements
// game.Recorder, so a session controller can hand it the final summary.
type StatsService struct {
	log  logger.Logger
	repo repository.FullRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(log logger.Logger, repo repository.FullRepository) *StatsService {
	return &StatsService{log: log, repo: repo}
}

// RecordScore persists the end-of-session snapshot: the player is
// remembered and one score log entry is appended.
func (s *StatsService) RecordScore(summary models.SessionSummary) error {
	ctx := context.Background()
	if err := s.repo.RememberUser(ctx, summary.Player); err != nil {
		s.log.Warn("failed to remember user", "player", summary.Player, "error", err)
	}
	if err := s.repo.InsertScore(ctx, summary.Player, summary.Mode, summary.Score); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to record score")
	}
	s.log.Info("score recorded", "player", summary.Player, "mode", summary.Mode, "score", summary.Score)
	return nil
}

// RememberUser stores a player name for the menu's quick-pick list.
func (s *StatsService) RememberUser(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.InvalidInput("player name is required")
	}
	return s.repo.RememberUser(ctx, name)
}

// ListUsers returns every remembered player name, sorted.
func (s *StatsService) ListUsers(ctx context.Context) ([]string, error) {
	return s.repo.ListUsers(ctx)
}

// ListScores returns recent score log entries.
func (s *StatsService) ListScores(ctx context.Context, limit int) ([]models.ScoreRecord, error) {
	return s.repo.ListScores(ctx, limit)
}

// GetStats returns aggregate statistics.
func (s *StatsService) GetStats(ctx context.Context) (models.Stats, error) {
	return s.repo.GetStats(ctx)
}

// ResetScores clears the score log. Admin only.
func (s *StatsService) ResetScores(ctx context.Context) error {
	if err := s.repo.ClearScores(ctx); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to reset scores")
	}
	s.log.Info("score log cleared")
	return nil
}
