package game

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/michal995/ticketrush/internal/catalog"
	"github.com/michal995/ticketrush/internal/logger"
	"github.com/michal995/ticketrush/internal/models"
)

// FinishReason tags how a round ended. Overpay and timeout are terminal
// round outcomes, not errors.
type FinishReason string

const (
	FinishCompleted FinishReason = "completed"
	FinishOverpay   FinishReason = "overpay"
	FinishTimeout   FinishReason = "timeout"
)

// advanceSeconds is the auto-advance countdown after a round result.
const advanceSeconds = 5

// overpayEpsilon is the half-cent tolerance for overpay detection.
const overpayEpsilon = 0.009

// Notifier is the outbound interface to the rendering collaborator. The
// core never holds presentation objects; it emits and forgets.
type Notifier interface {
	Snapshot(models.Snapshot)
	ScoreEvent(models.ScoreEvent)
	Overlay(models.Overlay)
	OverlayCountdown(remaining int)
	HideOverlay()
}

// Recorder is the persistence collaborator. RecordScore is called exactly
// once per session, at session end.
type Recorder interface {
	RecordScore(summary models.SessionSummary) error
}

type noopNotifier struct{}

func (noopNotifier) Snapshot(models.Snapshot)     {}
func (noopNotifier) ScoreEvent(models.ScoreEvent) {}
func (noopNotifier) Overlay(models.Overlay)       {}
func (noopNotifier) OverlayCountdown(int)         {}
func (noopNotifier) HideOverlay()                 {}

type noopRecorder struct{}

func (noopRecorder) RecordScore(models.SessionSummary) error { return nil }

// Config bundles the controller's injected collaborators. Zero fields get
// working defaults.
type Config struct {
	Log       logger.Logger
	Source    Source
	Scheduler Scheduler
	Score     ScoreConfig
	Notifier  Notifier
	Recorder  Recorder

	// Denominations returns the currently enabled denominations. Nil
	// means the full catalog.
	Denominations func() []catalog.Denomination
}

// Controller owns one session and drives its round lifecycle: start,
// countdown, completion detection, scoring, bonuses, auto-advance and
// session summary. All player input and timer ticks serialize through its
// mutex, which is the Go rendering of the original single input queue.
type Controller struct {
	mu  sync.Mutex
	cfg Config

	session *Session

	active    bool // a round is in progress
	paused    bool
	finishing bool // round overlay shown, waiting for proceed
	summary   bool // session summary overlay shown
	closed    bool
	recorded  bool // score persisted for this session

	timerGen      uint64
	cancelTick    Cancel
	cancelAdvTick Cancel
	cancelAdvFire Cancel
	advanceLeft   int
}

// NewController creates a controller for a fresh session. The first round
// does not start until Start is called.
func NewController(player, mode string, cfg Config) *Controller {
	if cfg.Log == nil {
		cfg.Log = logger.New()
	}
	if cfg.Source == nil {
		cfg.Source = NewSource(time.Now().UnixNano())
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = NewScheduler()
	}
	if (cfg.Score == ScoreConfig{}) {
		cfg.Score = DefaultScoreConfig()
	}
	if cfg.Notifier == nil {
		cfg.Notifier = noopNotifier{}
	}
	if cfg.Recorder == nil {
		cfg.Recorder = noopRecorder{}
	}
	return &Controller{
		cfg:     cfg,
		session: NewSession(player, mode),
	}
}

// Start begins round 1. Calling it on a started or closed controller is a
// no-op.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.active || c.finishing || c.summary {
		return
	}
	c.startRoundLocked()
}

// Stop cancels all timers and discards in-progress round state without
// emitting a summary entry. The controller is unusable afterwards.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.active = false
	c.stopRoundTimerLocked()
	c.stopAdvanceLocked()
	c.cfg.Log.Info("session stopped", "player", c.session.Player, "round", c.session.Round)
}

// Snapshot returns the current round state for the rendering layer.
func (c *Controller) Snapshot() models.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// AddTicket selects one ticket of the given type. Successful selections
// score points; policy-violating taps are penalized; unknown names are
// ignored.
func (c *Controller) AddTicket(name string) TicketResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if res, blocked := c.blockedTicketLocked(); blocked {
		return res
	}

	res := AddTicket(c.session, name)
	if res.OK {
		c.recordEventLocked("ticket", fmt.Sprintf("Ticket %s", res.Ticket.Name), c.cfg.Score.TicketPoints)
		c.ensureTicketPhaseLocked()
	} else if res.Reason.PolicyViolation() {
		c.recordEventLocked("penalty", fmt.Sprintf("Ticket penalty (%s)", name), c.cfg.Score.TicketPenalty)
	}
	c.notifySnapshotLocked()
	c.maybeSettleLocked()
	return res
}

// RemoveTicket removes one ticket of the given type. Removal relocks the
// payment phase and forfeits all inserted currency.
func (c *Controller) RemoveTicket(name string) TicketResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if res, blocked := c.blockedTicketLocked(); blocked {
		return res
	}

	res := RemoveTicket(c.session, name)
	if res.OK {
		c.resetCoinProgressLocked()
		c.ensureTicketPhaseLocked()
	}
	c.notifySnapshotLocked()
	return res
}

// ClearTickets resets the ticket selection and payment progress.
func (c *Controller) ClearTickets() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.active || c.paused {
		return
	}
	ClearTickets(c.session)
	c.resetCoinProgressLocked()
	c.notifySnapshotLocked()
}

// InsertCoin inserts a denomination. Overpayment ends the round
// immediately with a penalty; settlement ends it as completed.
func (c *Controller) InsertCoin(value float64) CoinResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.active {
		return CoinResult{Reason: ReasonRoundOver, Value: value}
	}
	if c.paused {
		return CoinResult{Reason: ReasonPaused, Value: value}
	}

	res := InsertCoin(c.session, value, c.availableDenomsLocked())
	if !res.OK {
		return res
	}

	s := c.session
	overpaid := s.Inserted-s.ChangeDue > overpayEpsilon
	if s.ChangeDue == 0 {
		overpaid = s.Inserted > overpayEpsilon
	}
	if overpaid {
		c.recordEventLocked("penalty", "Change exceeded", c.cfg.Score.OverpayPenalty)
		c.notifySnapshotLocked()
		c.finishRoundLocked(FinishOverpay)
		return res
	}

	c.recordEventLocked("coin", "Coin "+formatMoney(res.Value), c.cfg.Score.CoinPoints)
	if c.settledLocked() && !s.PayFlashShown {
		s.PayFlashPending = true
		s.PayFlashShown = true
	}
	c.notifySnapshotLocked()
	c.maybeSettleLocked()
	return res
}

// Pause suspends the countdown and blocks all player actions. No time is
// lost or gained across a pause.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.active || c.paused {
		return
	}
	c.paused = true
	c.stopRoundTimerLocked()
	c.notifySnapshotLocked()
}

// Resume restores the countdown from the exact remaining value.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.active || !c.paused {
		return
	}
	c.paused = false
	c.scheduleTickLocked()
	c.notifySnapshotLocked()
}

// Proceed short-circuits the auto-advance countdown after a round result,
// or dismisses the session summary into a no-op.
func (c *Controller) Proceed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.finishing {
		return
	}
	c.proceedLocked()
}

// PlayAgain restarts the session with the same player and mode after the
// session summary.
func (c *Controller) PlayAgain() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.summary {
		return
	}
	c.summary = false
	c.recorded = false
	s := c.session
	s.Round = 0
	s.Score = 0
	s.RoundSummaries = nil
	s.ResetRound()
	c.cfg.Notifier.HideOverlay()
	c.startRoundLocked()
}

// --- internals; every *Locked method expects c.mu held ---

func (c *Controller) blockedTicketLocked() (TicketResult, bool) {
	if c.closed || !c.active {
		return TicketResult{Reason: ReasonRoundOver}, true
	}
	if c.paused {
		return TicketResult{Reason: ReasonPaused}, true
	}
	return TicketResult{}, false
}

func (c *Controller) startRoundLocked() {
	s := c.session
	s.ResetRound()
	s.Round++
	s.Available = RollBusConfig(c.cfg.Source)
	s.Request = RollRequest(c.cfg.Source, s.Available)
	s.TicketTotal = FareOf(s.Request)
	payment := RollPayment(c.cfg.Source, s.TicketTotal)
	s.Pays = payment.Pays
	s.ChangeDue = Round2(payment.Change)
	for _, count := range s.Request {
		s.TicketCount += count
	}
	s.RoundStartedAt = c.cfg.Scheduler.Now()

	c.active = true
	c.paused = false
	c.finishing = false

	c.cfg.Log.Info("round started",
		"player", s.Player, "round", s.Round, "fare", s.TicketTotal,
		"pays", s.Pays, "change", s.ChangeDue, "tickets", s.TicketCount)

	c.cfg.Notifier.HideOverlay()
	c.notifySnapshotLocked()
	c.scheduleTickLocked()
}

func (c *Controller) scheduleTickLocked() {
	gen := c.timerGen
	c.cancelTick = c.cfg.Scheduler.Schedule(time.Second, func() { c.tick(gen) })
}

func (c *Controller) stopRoundTimerLocked() {
	c.timerGen++
	if c.cancelTick != nil {
		c.cancelTick()
		c.cancelTick = nil
	}
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.timerGen || c.closed || !c.active || c.paused {
		return
	}
	s := c.session
	if s.TimeLeft > 0 {
		s.TimeLeft--
	}
	c.notifySnapshotLocked()
	if s.TimeLeft <= 0 {
		c.recordEventLocked("penalty", "Timeout", c.cfg.Score.TimeoutPenalty)
		c.finishRoundLocked(FinishTimeout)
		return
	}
	c.scheduleTickLocked()
}

// recordEventLocked applies a score delta, clamped at zero, and logs it to
// the round event list and history.
func (c *Controller) recordEventLocked(eventType, label string, points int) {
	s := c.session
	ev := models.ScoreEvent{Type: eventType, Label: label, Points: points}
	s.Events = append(s.Events, ev)
	s.RoundScore += points
	s.ApplyScore(points)
	s.logHistory(label, formatPoints(points)+" pts")
	c.cfg.Notifier.ScoreEvent(ev)
}

func formatPoints(points int) string {
	if points > 0 {
		return fmt.Sprintf("+%d", points)
	}
	return fmt.Sprintf("%d", points)
}

func (c *Controller) resetCoinProgressLocked() {
	s := c.session
	s.CoinsUsed = map[int]int{}
	s.Inserted = 0
	s.ShowChange = false
}

// ensureTicketPhaseLocked keeps the phase flags in sync with the
// selection. Completion unlocks payment exactly once; any regression from
// a complete selection relocks it and forfeits inserted currency.
func (c *Controller) ensureTicketPhaseLocked() {
	s := c.session
	if s.TicketsComplete() {
		if s.TicketsPhaseComplete {
			return
		}
		s.TicketsPhaseComplete = true
		s.TicketsCompletedAt = c.cfg.Scheduler.Now()
		s.ShowPays = true
		s.CanPay = true
		s.PayFlashPending = true
		s.PayFlashShown = true
		return
	}
	if s.TicketsPhaseComplete || s.ShowPays || s.CanPay {
		s.TicketsPhaseComplete = false
		s.CanPay = false
		s.ShowPays = false
		s.PayFlashPending = false
		s.PayFlashShown = false
		s.TicketsCompletedAt = time.Time{}
		c.resetCoinProgressLocked()
	}
}

func (c *Controller) settledLocked() bool {
	s := c.session
	if s.ChangeDue == 0 {
		return math.Abs(s.Inserted) < 0.01
	}
	return math.Abs(s.ChangeDue-s.Inserted) < 0.01
}

func (c *Controller) maybeSettleLocked() {
	if c.closed || !c.active || c.finishing {
		return
	}
	if !c.session.TicketsPhaseComplete || !c.settledLocked() {
		return
	}
	c.finishRoundLocked(FinishCompleted)
}

func (c *Controller) availableDenomsLocked() []catalog.Denomination {
	if c.cfg.Denominations != nil {
		return c.cfg.Denominations()
	}
	return catalog.AvailableDenominations(nil)
}

func (c *Controller) finishRoundLocked(reason FinishReason) {
	c.active = false
	c.finishing = true
	c.stopRoundTimerLocked()
	c.stopAdvanceLocked()

	s := c.session
	score := c.cfg.Score

	perfectTickets := s.TicketsComplete()
	ticketValueMatch := math.Abs(s.SelectedTotal-s.TicketTotal) < 0.01
	changeDelta := Round2(s.Inserted - s.ChangeDue)
	changeExact := math.Abs(changeDelta) < 0.01
	totalCoins := s.TotalCoinsUsed()
	uniqueCoins := s.UniqueCoinsUsed()
	minCount, reachable := MinimalDenominationCount(s.ChangeDue, c.availableDenomsLocked())
	perfectCombo := changeExact && reachable && totalCoins == minCount

	now := c.cfg.Scheduler.Now()
	elapsed := now.Sub(s.RoundStartedAt).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	ticketElapsed := elapsed
	if !s.TicketsCompletedAt.IsZero() {
		ticketElapsed = s.TicketsCompletedAt.Sub(s.RoundStartedAt).Seconds()
	}

	base := 0
	switch {
	case perfectTickets:
		base += score.PerfectTickets
	case ticketValueMatch:
		base += score.ValueMatch
	default:
		base += score.TicketMismatch
	}
	switch {
	case perfectCombo:
		base += score.PerfectChange
	case changeExact:
		base += score.ExactChange
	case changeDelta > 0:
		base += score.RecoverableOverpay
	default:
		base += score.ChangeDeficit
	}
	base += int(math.Round(float64(s.TimeLeft) / float64(score.TimeDivisor)))

	s.ApplyScore(base)

	// Secondary bonuses, in fixed order, completed rounds only. Each
	// application updates the cumulative score and the event log; any
	// staggered reveal is the presentation layer's concern.
	completed := reason == FinishCompleted
	var bonuses []models.BonusAward
	if completed && s.TicketCount > 0 && ticketElapsed < float64(s.TicketCount)*score.PerTicketBudget {
		bonuses = append(bonuses, models.BonusAward{ID: "speed", Label: "Speed Bonus!", Points: score.SpeedBonus})
	}
	if completed && perfectCombo {
		bonuses = append(bonuses, models.BonusAward{ID: "perfect", Label: "Perfect Change!", Points: score.PerfectChangeBonus})
	}
	if completed && s.TimeLeft > score.TimeBonusThreshold {
		bonuses = append(bonuses, models.BonusAward{ID: "time", Label: "Time Bonus!", Points: score.TimeBonus})
	}

	s.RoundBonuses = bonuses
	bonusTotal := 0
	for _, bonus := range bonuses {
		s.ApplyScore(bonus.Points)
		s.logHistory(bonus.Label, formatPoints(bonus.Points)+" pts")
		c.cfg.Notifier.ScoreEvent(models.ScoreEvent{Type: "bonus", Label: bonus.Label, Points: bonus.Points})
		bonusTotal += bonus.Points
	}
	totalPoints := base + bonusTotal

	ticketDetail := "Mismatch"
	if perfectTickets {
		ticketDetail = "Perfect match"
	} else if ticketValueMatch {
		ticketDetail = "Value matched"
	}
	changeDetail := formatMoney(-changeDelta) + " missing"
	switch {
	case perfectCombo:
		changeDetail = "Perfect change"
	case changeExact:
		changeDetail = "Exact"
	case changeDelta > 0:
		changeDetail = formatMoney(changeDelta) + " extra"
	}

	s.RoundSummaries = append(s.RoundSummaries, models.RoundSummary{
		Round:            s.Round,
		Points:           totalPoints,
		BasePoints:       base,
		Bonuses:          bonuses,
		PerfectTickets:   perfectTickets,
		TicketValueMatch: ticketValueMatch,
		ChangeDelta:      changeDelta,
		TimeLeft:         s.TimeLeft,
		ElapsedSeconds:   elapsed,
		Reason:           string(reason),
		CoinsUsed:        totalCoins,
		TicketCount:      s.TicketCount,
	})

	subtitle := "Round finished"
	if reason == FinishTimeout {
		subtitle = "Time is up!"
	}
	countdownLabel := "Summary in..."
	proceedLabel := "Show summary"
	if s.Round < s.TotalRounds {
		countdownLabel = "Next passenger in..."
		proceedLabel = "Skip countdown"
	}

	c.cfg.Notifier.Snapshot(c.snapshotLocked())
	c.cfg.Notifier.Overlay(models.Overlay{
		Title:          fmt.Sprintf("Round %d/%d", s.Round, s.TotalRounds),
		Subtitle:       subtitle,
		Points:         totalPoints,
		Details: []models.OverlayDetail{
			{Label: "Tickets", Value: ticketDetail},
			{Label: "Change", Value: changeDetail},
			{Label: "Time left", Value: fmt.Sprintf("%d s", s.TimeLeft)},
			{Label: "Coins used", Value: fmt.Sprintf("%d (%d types)", totalCoins, uniqueCoins)},
		},
		Bonuses:        bonuses,
		Actions:        []models.OverlayAction{{ID: "proceed", Label: proceedLabel}, {ID: "exit", Label: "Back to Menu"}},
		Countdown:      advanceSeconds,
		CountdownLabel: countdownLabel,
	})

	c.cfg.Log.Info("round finished",
		"player", s.Player, "round", s.Round, "reason", reason,
		"points", totalPoints, "score", s.Score)

	c.startAdvanceLocked()
}

// startAdvanceLocked arms the post-round auto-advance: a repeating 1 Hz
// display tick plus a single-shot advance. Proceed cancels both together
// so the round can never double-advance.
func (c *Controller) startAdvanceLocked() {
	c.advanceLeft = advanceSeconds
	gen := c.timerGen
	c.cancelAdvTick = c.cfg.Scheduler.Schedule(time.Second, func() { c.advanceTick(gen) })
	c.cancelAdvFire = c.cfg.Scheduler.Schedule(advanceSeconds*time.Second, func() { c.advanceFire(gen) })
}

func (c *Controller) stopAdvanceLocked() {
	c.timerGen++
	if c.cancelAdvTick != nil {
		c.cancelAdvTick()
		c.cancelAdvTick = nil
	}
	if c.cancelAdvFire != nil {
		c.cancelAdvFire()
		c.cancelAdvFire = nil
	}
}

func (c *Controller) advanceTick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.timerGen || c.closed || !c.finishing {
		return
	}
	c.advanceLeft--
	remaining := c.advanceLeft
	if remaining < 0 {
		remaining = 0
	}
	c.cfg.Notifier.OverlayCountdown(remaining)
	if c.advanceLeft > 0 {
		c.cancelAdvTick = c.cfg.Scheduler.Schedule(time.Second, func() { c.advanceTick(gen) })
	}
}

func (c *Controller) advanceFire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.timerGen || c.closed || !c.finishing {
		return
	}
	c.proceedLocked()
}

func (c *Controller) proceedLocked() {
	c.stopAdvanceLocked()
	c.finishing = false
	c.cfg.Notifier.HideOverlay()
	if c.session.Round < c.session.TotalRounds {
		c.startRoundLocked()
		return
	}
	c.showSessionSummaryLocked()
}

func (c *Controller) showSessionSummaryLocked() {
	c.summary = true
	s := c.session
	summary := s.EndSession()

	if !c.recorded {
		c.recorded = true
		if err := c.cfg.Recorder.RecordScore(summary); err != nil {
			c.cfg.Log.Error("failed to record score", "player", s.Player, "error", err)
		}
	}

	details := make([]models.OverlayDetail, 0, len(summary.Summaries))
	for _, item := range summary.Summaries {
		details = append(details, models.OverlayDetail{
			Label: fmt.Sprintf("Round %d", item.Round),
			Value: formatPoints(item.Points) + " pts",
		})
	}

	c.cfg.Notifier.Overlay(models.Overlay{
		Title:    fmt.Sprintf("%s - %s", summary.Player, s.Mode.Label),
		Subtitle: fmt.Sprintf("Final score: %d pts", summary.Score),
		Points:   summary.Score,
		Details:  details,
		Actions:  []models.OverlayAction{{ID: "again", Label: "Play again"}, {ID: "exit", Label: "Back to Menu"}},
	})

	c.cfg.Log.Info("session finished",
		"player", summary.Player, "mode", summary.Mode, "score", summary.Score, "rounds", summary.Rounds)
}

func (c *Controller) snapshotLocked() models.Snapshot {
	s := c.session

	request := make(map[string]int, len(s.Request))
	for k, v := range s.Request {
		request[k] = v
	}
	selected := make(map[string]int, len(s.SelectedTickets))
	for k, v := range s.SelectedTickets {
		selected[k] = v
	}
	coins := make(map[string]int, len(s.CoinsUsed))
	for cents, count := range s.CoinsUsed {
		coins[fmt.Sprintf("%.2f", float64(cents)/100)] = count
	}
	available := make([]catalog.TicketType, len(s.Available))
	copy(available, s.Available)
	history := make([]models.HistoryEntry, len(s.History))
	copy(history, s.History)
	events := make([]models.ScoreEvent, len(s.Events))
	copy(events, s.Events)

	return models.Snapshot{
		Player:               s.Player,
		Mode:                 s.Mode.Key,
		Round:                s.Round,
		TotalRounds:          s.TotalRounds,
		Score:                s.Score,
		RoundScore:           s.RoundScore,
		TimeLeft:             s.TimeLeft,
		Paused:               c.paused,
		Available:            available,
		Denominations:        c.availableDenomsLocked(),
		Request:              request,
		SelectedTickets:      selected,
		SelectedTotal:        s.SelectedTotal,
		TicketTotal:          s.TicketTotal,
		Pays:                 s.Pays,
		ChangeDue:            s.ChangeDue,
		Inserted:             s.Inserted,
		CoinsUsed:            coins,
		TicketsPhaseComplete: s.TicketsPhaseComplete,
		CanPay:               s.CanPay,
		ShowPays:             s.ShowPays,
		ShowChange:           s.ShowChange,
		PayFlashPending:      s.PayFlashPending,
		History:              history,
		Events:               events,
	}
}

func (c *Controller) notifySnapshotLocked() {
	c.cfg.Notifier.Snapshot(c.snapshotLocked())
}
