package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/michal995/ticketrush/internal/errors"
	"github.com/michal995/ticketrush/internal/game"
	"github.com/michal995/ticketrush/internal/logger"
	"github.com/michal995/ticketrush/internal/models"
)

// SessionService owns every live game session. Sessions are keyed by
// opaque UUIDs so several kiosks can play concurrently against one
// server.
type SessionService struct {
	log      logger.Logger
	settings SettingsServicer
	recorder game.Recorder

	mu        sync.RWMutex
	sessions  map[string]*game.Controller
	presenter Presenter

	// newConfig lets tests swap the scheduler and random source.
	newConfig func() game.Config
}

// NewSessionService creates a new SessionService
func NewSessionService(log logger.Logger, settings SettingsServicer, recorder game.Recorder) *SessionService {
	return &SessionService{
		log:      log,
		settings: settings,
		recorder: recorder,
		sessions: map[string]*game.Controller{},
	}
}

// SetPresenter injects the rendering collaborator. Must be called before
// the first Create.
func (s *SessionService) SetPresenter(p Presenter) {
	s.mu.Lock()
	s.presenter = p
	s.mu.Unlock()
}

// SetConfigFactory overrides the controller config for tests
// (deterministic scheduler and random source).
func (s *SessionService) SetConfigFactory(factory func() game.Config) {
	s.mu.Lock()
	s.newConfig = factory
	s.mu.Unlock()
}

// Create starts a new session for player in the given mode and begins
// round 1 immediately.
func (s *SessionService) Create(player, mode string) (string, models.Snapshot, error) {
	id := uuid.NewString()

	s.mu.Lock()
	cfg := game.Config{Log: s.log}
	if s.newConfig != nil {
		cfg = s.newConfig()
	}
	cfg.Recorder = s.recorder
	cfg.Denominations = s.settings.AvailableDenominations
	if s.presenter != nil {
		cfg.Notifier = s.presenter.NotifierFor(id)
	}
	ctrl := game.NewController(player, mode, cfg)
	s.sessions[id] = ctrl
	total := len(s.sessions)
	s.mu.Unlock()

	ctrl.Start()
	s.log.Info("session created", "session_id", id, "player", player, "mode", mode, "active_sessions", total)
	return id, ctrl.Snapshot(), nil
}

// Get returns the controller for a session ID.
func (s *SessionService) Get(id string) (*game.Controller, error) {
	s.mu.RLock()
	ctrl, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.NotFoundf("session not found: %s", id)
	}
	return ctrl, nil
}

// Close stops a session and removes it from the registry. No summary is
// emitted for an abandoned round.
func (s *SessionService) Close(id string) error {
	s.mu.Lock()
	ctrl, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return errors.NotFoundf("session not found: %s", id)
	}
	ctrl.Stop()
	s.log.Info("session closed", "session_id", id)
	return nil
}

// CloseAll stops every live session, for shutdown.
func (s *SessionService) CloseAll() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = map[string]*game.Controller{}
	s.mu.Unlock()
	for _, ctrl := range sessions {
		ctrl.Stop()
	}
}

// Count returns the number of live sessions.
func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// HandleInput routes a player input event from the WebSocket layer into
// the session's controller. Unknown session IDs and unknown event types
// are ignored: duplicate or stale UI events must not crash the core.
func (s *SessionService) HandleInput(sessionID string, input models.PlayerInput) {
	ctrl, err := s.Get(sessionID)
	if err != nil {
		s.log.Debug("input for unknown session", "session_id", sessionID, "type", input.Type)
		return
	}

	switch input.Type {
	case "add_ticket":
		ctrl.AddTicket(input.Name)
	case "remove_ticket":
		ctrl.RemoveTicket(input.Name)
	case "clear_tickets":
		ctrl.ClearTickets()
	case "insert_coin":
		ctrl.InsertCoin(input.Value)
	case "pause":
		ctrl.Pause()
	case "resume":
		ctrl.Resume()
	case "proceed":
		ctrl.Proceed()
	case "again":
		ctrl.PlayAgain()
	case "exit":
		if err := s.Close(sessionID); err != nil {
			s.log.Debug("exit for missing session", "session_id", sessionID)
		}
	default:
		s.log.Debug("unknown input type", "session_id", sessionID, "type", input.Type)
	}
}
