package game

import (
	"testing"

	"github.com/michal995/ticketrush/internal/catalog"
	"github.com/michal995/ticketrush/internal/models"
)

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession("", "bogus")
	if s.Player != "Guest" {
		t.Errorf("expected Guest fallback, got %q", s.Player)
	}
	if s.Mode.Key != catalog.DefaultMode {
		t.Errorf("expected default mode, got %q", s.Mode.Key)
	}
	if s.TotalRounds != catalog.TotalRounds {
		t.Errorf("expected %d rounds, got %d", catalog.TotalRounds, s.TotalRounds)
	}
	if s.TimeLeft != s.Mode.TimeLimit {
		t.Errorf("expected time left %d, got %d", s.Mode.TimeLimit, s.TimeLeft)
	}
}

func TestNewSessionTrimsPlayer(t *testing.T) {
	s := NewSession("  Ann  ", "HR1")
	if s.Player != "Ann" {
		t.Errorf("expected trimmed player name, got %q", s.Player)
	}
	if s.Mode.TimeLimit != 18 {
		t.Errorf("expected HR1 time limit 18, got %d", s.Mode.TimeLimit)
	}
}

func TestResetRoundPreservesSessionFields(t *testing.T) {
	s := NewSession("Ann", "TB1")
	s.Round = 3
	s.Score = 140
	s.SelectedTickets["Normal"] = 2
	s.CoinsUsed[50] = 1
	s.Inserted = 0.50
	s.CanPay = true
	s.TimeLeft = 4

	s.ResetRound()

	if s.Round != 3 || s.Score != 140 {
		t.Errorf("session fields changed: round=%d score=%d", s.Round, s.Score)
	}
	if len(s.SelectedTickets) != 0 || len(s.CoinsUsed) != 0 || s.Inserted != 0 {
		t.Error("per-round selection state not cleared")
	}
	if s.CanPay || s.TicketsPhaseComplete || s.ShowChange {
		t.Error("phase flags not cleared")
	}
	if s.TimeLeft != s.Mode.TimeLimit {
		t.Errorf("time not reset, got %d", s.TimeLeft)
	}
}

func TestApplyScoreClampsAtZero(t *testing.T) {
	s := NewSession("Ann", "TB1")

	s.ApplyScore(-50)
	if s.Score != 0 {
		t.Errorf("score should clamp at zero, got %d", s.Score)
	}

	// The clamp holds per update: a later gain starts from zero, not -50
	s.ApplyScore(10)
	if s.Score != 10 {
		t.Errorf("expected 10 after clamped penalty then gain, got %d", s.Score)
	}
}

func TestTicketsComplete(t *testing.T) {
	s := NewSession("Ann", "TB1")

	// Empty request is never complete
	if s.TicketsComplete() {
		t.Error("empty request should not be complete")
	}

	s.Request = map[string]int{"Normal": 2, "Kid": 1}

	s.SelectedTickets = map[string]int{"Normal": 2}
	if s.TicketsComplete() {
		t.Error("deficit should not be complete")
	}

	s.SelectedTickets = map[string]int{"Normal": 2, "Kid": 1}
	if !s.TicketsComplete() {
		t.Error("exact match should be complete")
	}

	// Surplus in a type the passenger never asked for
	s.SelectedTickets = map[string]int{"Normal": 2, "Kid": 1, "Bike": 1}
	if s.TicketsComplete() {
		t.Error("extra un-requested type should not be complete")
	}
}

func TestCoinCounters(t *testing.T) {
	s := NewSession("Ann", "TB1")
	s.CoinsUsed = map[int]int{50: 2, 25: 1, 10: 0}

	if got := s.TotalCoinsUsed(); got != 3 {
		t.Errorf("TotalCoinsUsed = %d, want 3", got)
	}
	if got := s.UniqueCoinsUsed(); got != 2 {
		t.Errorf("UniqueCoinsUsed = %d, want 2", got)
	}
}

func TestEndSessionCopiesSummaries(t *testing.T) {
	s := NewSession("Ann", "TB2")
	s.Round = 5
	s.Score = 300
	s.RoundSummaries = append(s.RoundSummaries, models.RoundSummary{Round: 1, Points: 60})

	summary := s.EndSession()
	if summary.Player != "Ann" || summary.Mode != "TB2" || summary.Score != 300 || summary.Rounds != 5 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	// Mutating the session afterwards must not leak into the snapshot
	s.RoundSummaries[0].Points = 999
	if summary.Summaries[0].Points != 60 {
		t.Error("summary should be a copy, not a reference")
	}
}
