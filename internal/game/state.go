package game

import (
	"strings"
	"time"

	"github.com/michal995/ticketrush/internal/catalog"
	"github.com/michal995/ticketrush/internal/models"
)

// Session holds the session-wide fields and the mutable per-round state.
// It is owned by a single Controller; nothing mutates it concurrently.
type Session struct {
	Player         string
	Mode           catalog.Mode
	Round          int
	TotalRounds    int
	Score          int
	RoundSummaries []models.RoundSummary

	// Per-round fields, reinitialized by ResetRound.
	Available     []catalog.TicketType
	Request       map[string]int
	TicketTotal   float64
	Pays          float64
	ChangeDue     float64
	TicketCount   int
	SelectedTickets map[string]int
	SelectedTotal float64
	CoinsUsed     map[int]int // cents -> count
	Inserted      float64
	TimeLeft      int

	TicketsPhaseComplete bool
	CanPay               bool
	ShowPays             bool
	ShowChange           bool
	PayFlashPending      bool
	PayFlashShown        bool

	RoundScore   int
	Events       []models.ScoreEvent
	History      []models.HistoryEntry
	RoundBonuses []models.BonusAward

	RoundStartedAt     time.Time
	TicketsCompletedAt time.Time
}

// NewSession creates a session for the given player and mode key. An empty
// or unknown player falls back to "Guest"; an unknown mode falls back to
// the default mode. The first round state is initialized immediately.
func NewSession(player, mode string) *Session {
	name := strings.TrimSpace(player)
	if name == "" {
		name = "Guest"
	}
	s := &Session{
		Player:      name,
		Mode:        catalog.ResolveMode(mode),
		TotalRounds: catalog.TotalRounds,
	}
	s.ResetRound()
	return s
}

// ResetRound reinitializes every per-round field while preserving the
// session-level fields. Called at the start of every round, round 1
// included.
func (s *Session) ResetRound() {
	s.Available = nil
	s.Request = map[string]int{}
	s.TicketTotal = 0
	s.Pays = 0
	s.ChangeDue = 0
	s.TicketCount = 0
	s.SelectedTickets = map[string]int{}
	s.SelectedTotal = 0
	s.CoinsUsed = map[int]int{}
	s.Inserted = 0
	s.TimeLeft = s.Mode.TimeLimit

	s.TicketsPhaseComplete = false
	s.CanPay = false
	s.ShowPays = false
	s.ShowChange = false
	s.PayFlashPending = false
	s.PayFlashShown = false

	s.RoundScore = 0
	s.Events = nil
	s.History = nil
	s.RoundBonuses = nil
	s.RoundStartedAt = time.Time{}
	s.TicketsCompletedAt = time.Time{}
}

// ApplyScore adds a delta to the cumulative score, clamping at zero. The
// clamp holds after every single update, not just at round end.
func (s *Session) ApplyScore(points int) {
	s.Score += points
	if s.Score < 0 {
		s.Score = 0
	}
}

// TicketsComplete reports whether every requested type is matched exactly,
// with no deficit and no surplus. An empty request is never complete.
func (s *Session) TicketsComplete() bool {
	if len(s.Request) == 0 {
		return false
	}
	for name, count := range s.Request {
		if s.SelectedTickets[name] != count {
			return false
		}
	}
	for name, count := range s.SelectedTickets {
		if s.Request[name] != count {
			return false
		}
	}
	return true
}

// TotalCoinsUsed counts every inserted denomination.
func (s *Session) TotalCoinsUsed() int {
	total := 0
	for _, count := range s.CoinsUsed {
		total += count
	}
	return total
}

// UniqueCoinsUsed counts distinct denominations inserted.
func (s *Session) UniqueCoinsUsed() int {
	unique := 0
	for _, count := range s.CoinsUsed {
		if count > 0 {
			unique++
		}
	}
	return unique
}

// EndSession produces the immutable end-of-session snapshot. The session
// itself is not mutated.
func (s *Session) EndSession() models.SessionSummary {
	summaries := make([]models.RoundSummary, len(s.RoundSummaries))
	copy(summaries, s.RoundSummaries)
	return models.SessionSummary{
		Player:    s.Player,
		Mode:      s.Mode.Key,
		ModeLabel: s.Mode.Label,
		Score:     s.Score,
		Rounds:    s.Round,
		Summaries: summaries,
	}
}

func (s *Session) logHistory(message, value string) {
	s.History = append(s.History, models.HistoryEntry{Message: message, Value: value})
}
