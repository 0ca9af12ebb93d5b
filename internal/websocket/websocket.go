package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/michal995/ticketrush/internal/game"
	"github.com/michal995/ticketrush/internal/logger"
	"github.com/michal995/ticketrush/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // LAN kiosk server, all origins allowed
	},
}

// InputHandler routes inbound player input to the owning session.
type InputHandler interface {
	HandleInput(sessionID string, input models.PlayerInput)
}

// envelope targets a message at the clients of one session.
type envelope struct {
	sessionID string
	message   models.WSMessage
}

// Hub maintains the set of active clients and relays game state to the
// screens watching each session.
type Hub struct {
	log        logger.Logger
	clients    map[*Client]bool
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	handler    InputHandler
}

// Client is a middleman between the websocket connection and the hub
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan models.WSMessage
	sessionID string
}

// New creates a new Hub instance
func New(log logger.Logger) *Hub {
	return &Hub{
		log:        log,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan envelope),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// SetHandler injects the inbound input router. Must be set before clients
// connect.
func (h *Hub) SetHandler(handler InputHandler) {
	h.handler = handler
}

// Start begins the hub's main loop in a goroutine
func (h *Hub) Start() {
	go h.run()
}

// run handles client registration/unregistration and message broadcasting
func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug("client connected", "session_id", client.sessionID, "total_clients", total)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug("client disconnected", "session_id", client.sessionID, "total_clients", total)

		case env := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients {
				if client.sessionID != env.sessionID {
					continue
				}
				select {
				case client.send <- env.message:
				default:
					// Client's send channel is full, unregister
					go func(c *Client) {
						h.unregister <- c
					}(client)
				}
			}
			h.mutex.RUnlock()
		}
	}
}

// Send broadcasts a typed message to every client of a session.
func (h *Hub) Send(sessionID, msgType string, payload interface{}) {
	h.broadcast <- envelope{
		sessionID: sessionID,
		message:   models.WSMessage{Type: msgType, Payload: payload},
	}
}

// NotifierFor implements services.Presenter: the returned notifier
// translates core events into typed WebSocket messages for one session.
func (h *Hub) NotifierFor(sessionID string) game.Notifier {
	return &sessionNotifier{hub: h, sessionID: sessionID}
}

type sessionNotifier struct {
	hub       *Hub
	sessionID string
}

func (n *sessionNotifier) Snapshot(snapshot models.Snapshot) {
	n.hub.Send(n.sessionID, "state", snapshot)
}

func (n *sessionNotifier) ScoreEvent(event models.ScoreEvent) {
	n.hub.Send(n.sessionID, "score_event", event)
}

func (n *sessionNotifier) Overlay(overlay models.Overlay) {
	n.hub.Send(n.sessionID, "overlay", overlay)
}

func (n *sessionNotifier) OverlayCountdown(remaining int) {
	n.hub.Send(n.sessionID, "overlay_countdown", map[string]int{"remaining": remaining})
}

func (n *sessionNotifier) HideOverlay() {
	n.hub.Send(n.sessionID, "hide_overlay", nil)
}

// readPump pumps messages from the websocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug("websocket error", "error", err)
			}
			break
		}

		var input models.PlayerInput
		if err := json.Unmarshal(message, &input); err != nil {
			c.hub.log.Debug("bad input message", "session_id", c.sessionID, "error", err)
			continue
		}
		if c.hub.handler != nil {
			c.hub.handler.HandleInput(c.sessionID, input)
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}

			msgBytes, _ := json.Marshal(message)
			w.Write(msgBytes)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs handles websocket requests from clients. The session ID comes
// from the "session" query parameter.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "missing session parameter", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("websocket upgrade error", "error", err)
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan models.WSMessage, 256),
		sessionID: sessionID,
	}
	h.register <- client

	// Allow collection of memory referenced by the caller by doing all work in new goroutines
	go client.writePump()
	go client.readPump()
}
