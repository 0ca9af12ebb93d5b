package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/michal995/ticketrush/internal/logger"
	"github.com/michal995/ticketrush/internal/models"
	"github.com/michal995/ticketrush/internal/repository/mock"
	"github.com/michal995/ticketrush/internal/services"
	"github.com/michal995/ticketrush/internal/testutil"
)

func sampleSummary() models.SessionSummary {
	return models.SessionSummary{
		Player:    "Ann",
		Mode:      "TB1",
		ModeLabel: "Tram & Bus",
		Score:     230,
		Rounds:    5,
	}
}

func TestStatsService_RecordScore(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc := services.NewStatsService(logger.NewDiscard(), repo)
	ctx := context.Background()

	if err := svc.RecordScore(sampleSummary()); err != nil {
		t.Fatalf("RecordScore failed: %v", err)
	}

	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 1 || users[0] != "Ann" {
		t.Errorf("expected player remembered, got %v", users)
	}

	scores, err := svc.ListScores(ctx, 10)
	if err != nil {
		t.Fatalf("ListScores failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected 1 score entry, got %d", len(scores))
	}
	if scores[0].Player != "Ann" || scores[0].Mode != "TB1" || scores[0].Score != 230 {
		t.Errorf("unexpected score entry: %+v", scores[0])
	}

	stats, err := svc.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.GamesPlayed != 1 || stats.BestScore != 230 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestStatsService_RecordScore_UserFailureIsNotFatal(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	mockRepo := mock.NewRepository(repo)
	mockRepo.RememberUserError = stderrors.New("users table locked")
	svc := services.NewStatsService(logger.NewDiscard(), mockRepo)

	// The score log matters more than the quick-pick list
	if err := svc.RecordScore(sampleSummary()); err != nil {
		t.Fatalf("RecordScore failed: %v", err)
	}
	scores, err := svc.ListScores(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListScores failed: %v", err)
	}
	if len(scores) != 1 {
		t.Errorf("expected score recorded despite user failure, got %d entries", len(scores))
	}
}

func TestStatsService_RecordScore_InsertFailure(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	mockRepo := mock.NewRepository(repo)
	mockRepo.InsertScoreError = stderrors.New("database error")
	svc := services.NewStatsService(logger.NewDiscard(), mockRepo)

	if err := svc.RecordScore(sampleSummary()); err == nil {
		t.Fatal("expected error when score insert fails")
	}
}

func TestStatsService_RememberUser_TrimsAndValidates(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc := services.NewStatsService(logger.NewDiscard(), repo)
	ctx := context.Background()

	if err := svc.RememberUser(ctx, "  Bob  "); err != nil {
		t.Fatalf("RememberUser failed: %v", err)
	}
	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 1 || users[0] != "Bob" {
		t.Errorf("expected trimmed name stored, got %v", users)
	}

	if err := svc.RememberUser(ctx, "   "); err == nil {
		t.Error("expected error for blank player name")
	}
}

func TestStatsService_ResetScores(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	svc := services.NewStatsService(logger.NewDiscard(), repo)
	ctx := context.Background()

	if err := svc.RecordScore(sampleSummary()); err != nil {
		t.Fatalf("RecordScore failed: %v", err)
	}
	if err := svc.ResetScores(ctx); err != nil {
		t.Fatalf("ResetScores failed: %v", err)
	}

	scores, err := svc.ListScores(ctx, 10)
	if err != nil {
		t.Fatalf("ListScores failed: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("expected empty score log after reset, got %d entries", len(scores))
	}

	// Player names survive a score reset
	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("expected remembered players intact, got %v", users)
	}
}

func TestStatsService_ResetScores_DatabaseError(t *testing.T) {
	repo := testutil.NewTestRepository(t)
	mockRepo := mock.NewRepository(repo)
	mockRepo.ClearScoresError = stderrors.New("database error")
	svc := services.NewStatsService(logger.NewDiscard(), mockRepo)

	if err := svc.ResetScores(context.Background()); err == nil {
		t.Fatal("expected error when clearing scores fails")
	}
}
