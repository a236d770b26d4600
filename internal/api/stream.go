package api

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"fairness-audit/backend/internal/audit"
)

// AuditEvent describes websocket payloads emitted when audits complete.
type AuditEvent struct {
	Type      string        `json:"type"`
	Audit     *audit.Result `json:"audit,omitempty"`
	Message   string        `json:"message,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// wsClient wraps a websocket connection with write locking.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// AuditNotifier keeps track of active websocket clients and broadcasts audit events.
type AuditNotifier struct {
	mu        sync.Mutex
	clients   map[*wsClient]struct{}
	lastAudit *AuditEvent
}

// NewAuditNotifier constructs a notifier instance.
func NewAuditNotifier() *AuditNotifier {
	return &AuditNotifier{clients: make(map[*wsClient]struct{})}
}

// Register attaches a websocket connection and replays the latest audit to it.
func (n *AuditNotifier) Register(conn *websocket.Conn) *wsClient {
	client := &wsClient{conn: conn}
	n.mu.Lock()
	n.clients[client] = struct{}{}
	last := n.lastAudit
	n.mu.Unlock()

	if last != nil {
		_ = client.writeJSON(*last)
	}
	return client
}

// Unregister removes the websocket client from the notifier and closes the socket.
func (n *AuditNotifier) Unregister(client *wsClient) {
	if client == nil {
		return
	}
	n.mu.Lock()
	delete(n.clients, client)
	n.mu.Unlock()
	_ = client.conn.Close()
}

// Publish broadcasts a completed audit.
func (n *AuditNotifier) Publish(result audit.Result) {
	n.Broadcast(AuditEvent{Type: "audit", Audit: &result})
}

// Broadcast sends the supplied event to all registered websocket clients.
func (n *AuditNotifier) Broadcast(event AuditEvent) {
	event.Timestamp = time.Now().UTC()

	n.mu.Lock()
	if event.Type == "audit" {
		snapshot := event
		n.lastAudit = &snapshot
	}
	for client := range n.clients {
		if err := client.writeJSON(event); err != nil {
			delete(n.clients, client)
			_ = client.conn.Close()
		}
	}
	n.mu.Unlock()
}

// ClientCount returns the number of connected clients.
func (n *AuditNotifier) ClientCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.clients)
}

func (c *wsClient) writeJSON(payload interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteJSON(payload)
}
