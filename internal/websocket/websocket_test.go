package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/michal995/ticketrush/internal/logger"
	"github.com/michal995/ticketrush/internal/models"
)

// recordingHandler captures inbound player input for assertions.
type recordingHandler struct {
	mu     sync.Mutex
	inputs []struct {
		sessionID string
		input     models.PlayerInput
	}
}

func (r *recordingHandler) HandleInput(sessionID string, input models.PlayerInput) {
	r.mu.Lock()
	r.inputs = append(r.inputs, struct {
		sessionID string
		input     models.PlayerInput
	}{sessionID, input})
	r.mu.Unlock()
}

func (r *recordingHandler) last() (string, models.PlayerInput, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.inputs) == 0 {
		return "", models.PlayerInput{}, false
	}
	entry := r.inputs[len(r.inputs)-1]
	return entry.sessionID, entry.input, true
}

func TestNew_CreatesHub(t *testing.T) {
	hub := New(logger.NewDiscard())

	if hub == nil {
		t.Fatal("expected hub to be created")
	}
	if hub.clients == nil {
		t.Error("expected clients map to be initialized")
	}
	if hub.broadcast == nil {
		t.Error("expected broadcast channel to be initialized")
	}
	if hub.register == nil {
		t.Error("expected register channel to be initialized")
	}
	if hub.unregister == nil {
		t.Error("expected unregister channel to be initialized")
	}
}

func TestServeWs_RequiresSessionParam(t *testing.T) {
	hub := New(logger.NewDiscard())
	hub.Start()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 without session parameter, got %d", resp.StatusCode)
	}
}

// dialSession connects a websocket client for the given session ID.
func dialSession(t *testing.T, server *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?session=" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Give the hub a moment to register the client
	time.Sleep(50 * time.Millisecond)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) models.WSMessage {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read message: %v", err)
	}
	var msg models.WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("failed to unmarshal message: %v", err)
	}
	return msg
}

func TestHub_SendReachesOnlyTargetSession(t *testing.T) {
	hub := New(logger.NewDiscard())
	hub.Start()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer server.Close()

	conn := dialSession(t, server, "session-a")

	// A message for another session must not arrive here
	hub.Send("session-b", "state", map[string]string{"for": "b"})
	hub.Send("session-a", "state", map[string]string{"for": "a"})

	msg := readMessage(t, conn)
	if msg.Type != "state" {
		t.Fatalf("expected state message, got %q", msg.Type)
	}
	payload, ok := msg.Payload.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected payload type %T", msg.Payload)
	}
	if payload["for"] != "a" {
		t.Errorf("received a message addressed to another session: %v", payload)
	}
}

func TestHub_InboundInputRoutedToHandler(t *testing.T) {
	hub := New(logger.NewDiscard())
	handler := &recordingHandler{}
	hub.SetHandler(handler)
	hub.Start()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer server.Close()

	conn := dialSession(t, server, "session-a")

	input := models.PlayerInput{Type: "add_ticket", Name: "Normal"}
	if err := conn.WriteJSON(input); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if sessionID, got, ok := handler.last(); ok {
			if sessionID != "session-a" {
				t.Errorf("expected session-a, got %q", sessionID)
			}
			if got.Type != "add_ticket" || got.Name != "Normal" {
				t.Errorf("unexpected input: %+v", got)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("handler never received the input")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHub_MalformedInputIgnored(t *testing.T) {
	hub := New(logger.NewDiscard())
	handler := &recordingHandler{}
	hub.SetHandler(handler)
	hub.Start()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer server.Close()

	conn := dialSession(t, server, "session-a")

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("failed to write garbage: %v", err)
	}
	if err := conn.WriteJSON(models.PlayerInput{Type: "pause"}); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, got, ok := handler.last(); ok {
			if got.Type != "pause" {
				t.Errorf("expected the valid input to survive, got %+v", got)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("valid input after garbage never arrived")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestNotifierFor_TranslatesCoreEvents(t *testing.T) {
	hub := New(logger.NewDiscard())
	hub.Start()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer server.Close()

	conn := dialSession(t, server, "session-a")
	notifier := hub.NotifierFor("session-a")

	notifier.Snapshot(models.Snapshot{Player: "Ann", Round: 2})
	msg := readMessage(t, conn)
	if msg.Type != "state" {
		t.Errorf("expected state, got %q", msg.Type)
	}

	notifier.ScoreEvent(models.ScoreEvent{Type: "ticket_ok", Points: 10})
	msg = readMessage(t, conn)
	if msg.Type != "score_event" {
		t.Errorf("expected score_event, got %q", msg.Type)
	}

	notifier.OverlayCountdown(3)
	msg = readMessage(t, conn)
	if msg.Type != "overlay_countdown" {
		t.Errorf("expected overlay_countdown, got %q", msg.Type)
	}
	payload, ok := msg.Payload.(map[string]interface{})
	if !ok || payload["remaining"] != float64(3) {
		t.Errorf("expected remaining 3, got %v", msg.Payload)
	}

	notifier.HideOverlay()
	msg = readMessage(t, conn)
	if msg.Type != "hide_overlay" {
		t.Errorf("expected hide_overlay, got %q", msg.Type)
	}
}

func TestHub_ClientDisconnectUnregisters(t *testing.T) {
	hub := New(logger.NewDiscard())
	hub.Start()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer server.Close()

	conn := dialSession(t, server, "session-a")
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for {
		hub.mutex.RLock()
		total := len(hub.clients)
		hub.mutex.RUnlock()
		if total == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected client unregistered after disconnect, still %d", total)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
