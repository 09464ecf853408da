// Package livefeed fans out feasibility events to connected dashboard
// clients over WebSocket, in real time, as they are emitted. It is the
// events-oriented sibling of Valkyrie's telemetry streamer: same
// clearance-gated client registry, same write-pump/read-pump split, same
// ping/pong keepalive — adapted to broadcast events.Event instead of
// flight telemetry.
package livefeed

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/PossumXI/Asgard/Heimdall/internal/events"
)

// Clearance tiers gating which events a client receives. A Warning/Info
// event is visible to every clearance; Error events require at least
// ClearanceOperator so a public viewer doesn't see why a mission failed.
const (
	ClearancePublic   = 0
	ClearanceOperator = 1
	ClearanceAdmin    = 2
)

// Message is the wire shape pushed to dashboard clients — events.Event
// plus the timestamp it was emitted at.
type Message struct {
	Timestamp time.Time         `json:"timestamp"`
	CheckID   string            `json:"check_id"`
	EventID   string            `json:"event_id"`
	Severity  string            `json:"severity"`
	Args      map[string]interface{} `json:"args,omitempty"`
}

// Client is one connected WebSocket dashboard.
type Client struct {
	conn      *websocket.Conn
	clearance int
	send      chan *Message
	id        string
}

// Broadcaster implements events.Sink and fans every emitted event out to
// every registered client whose clearance allows it.
type Broadcaster struct {
	mu        sync.RWMutex
	clients   map[*Client]bool
	broadcast chan *Message
	upgrader  websocket.Upgrader
	logger    *logrus.Logger
}

// NewBroadcaster constructs a Broadcaster ready to accept WebSocket
// upgrades and Emit calls.
func NewBroadcaster(logger *logrus.Logger) *Broadcaster {
	if logger == nil {
		logger = logrus.New()
	}
	return &Broadcaster{
		clients:   make(map[*Client]bool),
		broadcast: make(chan *Message, 100),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Emit implements events.Sink. It never blocks the caller: if the
// broadcast buffer is full, the oldest pending message is dropped in
// favor of the new one, matching the streamer's own full-buffer policy.
func (b *Broadcaster) Emit(e events.Event) {
	msg := &Message{
		Timestamp: time.Now(),
		CheckID:   e.CheckID,
		EventID:   e.ID,
		Severity:  e.Severity.String(),
		Args:      e.Args,
	}

	select {
	case b.broadcast <- msg:
	default:
		select {
		case <-b.broadcast:
		default:
		}
		b.broadcast <- msg
	}
}

// Run drains the broadcast channel and fans each message out to clients
// until ctx is canceled.
func (b *Broadcaster) Run(ctx context.Context) error {
	b.logger.Info("heimdall: livefeed broadcaster started")
	for {
		select {
		case <-ctx.Done():
			b.closeAllClients()
			return ctx.Err()
		case msg := <-b.broadcast:
			b.sendToClients(msg)
		}
	}
}

func (b *Broadcaster) sendToClients(msg *Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	required := ClearancePublic
	if msg.Severity == events.Error.String() {
		required = ClearanceOperator
	}

	for client := range b.clients {
		if client.clearance < required {
			continue
		}
		select {
		case client.send <- msg:
		default:
			// client buffer full, skip this message for this client
		}
	}
}

// HandleWebSocket upgrades an HTTP request to a WebSocket connection and
// registers the resulting client.
func (b *Broadcaster) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.WithError(err).Error("heimdall: livefeed upgrade failed")
		return
	}

	clearance := ClearancePublic
	switch r.Header.Get("X-Clearance-Token") {
	case "admin":
		clearance = ClearanceAdmin
	case "operator":
		clearance = ClearanceOperator
	}

	client := &Client{conn: conn, clearance: clearance, send: make(chan *Message, 50), id: r.RemoteAddr}
	b.registerClient(client)
	b.logger.WithFields(logrus.Fields{"client": client.id, "clearance": clearance}).Info("heimdall: livefeed client connected")

	ctx, cancel := context.WithCancel(context.Background())
	go b.writePump(ctx, client)
	go b.readPump(ctx, cancel, client)
}

func (b *Broadcaster) registerClient(c *Client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[c] = true
}

func (b *Broadcaster) unregisterClient(c *Client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		close(c.send)
		b.logger.WithField("client", c.id).Info("heimdall: livefeed client disconnected")
	}
}

func (b *Broadcaster) closeAllClients() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.clients {
		c.conn.Close()
		close(c.send)
		delete(b.clients, c)
	}
}

func (b *Broadcaster) writePump(ctx context.Context, c *Client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			data, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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

func (b *Broadcaster) readPump(ctx context.Context, cancel context.CancelFunc, c *Client) {
	defer func() {
		cancel()
		b.unregisterClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				b.logger.WithError(err).Debug("heimdall: livefeed read error")
			}
			return
		}
	}
}
