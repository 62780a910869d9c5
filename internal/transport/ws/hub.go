package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Message types sent to submission watchers
const (
	MsgReportStatus MessageType = "report_status"
	MsgError        MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections watching submissions
type Hub struct {
	// submissionID -> connections
	conns map[string]map[*Connection]struct{}

	mu  sync.RWMutex
	log *zap.Logger

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	done       chan struct{}
	closeOnce  sync.Once
}

// Connection represents a WebSocket connection
type Connection struct {
	SubmissionID string
	SessionID    string
	Send         chan []byte
}

// NewConnection creates a connection with a buffered send queue
func NewConnection(submissionID, sessionID string) *Connection {
	return &Connection{SubmissionID: submissionID, SessionID: sessionID, Send: make(chan []byte, 16)}
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	SubmissionID string
	Message      *Message
}

// NewHub creates a new WebSocket hub
func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		log:        log,
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		done:       make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for id, set := range h.conns {
				for conn := range set {
					close(conn.Send)
				}
				delete(h.conns, id)
			}
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.SubmissionID] == nil {
				h.conns[conn.SubmissionID] = make(map[*Connection]struct{})
			}
			h.conns[conn.SubmissionID][conn] = struct{}{}
			h.mu.Unlock()
			h.log.Debug("watcher connected", zap.String("submission_id", conn.SubmissionID))

		case conn := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.conns[conn.SubmissionID]; ok {
				if _, ok := set[conn]; ok {
					delete(set, conn)
					close(conn.Send)
					if len(set) == 0 {
						delete(h.conns, conn.SubmissionID)
					}
				}
			}
			h.mu.Unlock()
			h.log.Debug("watcher disconnected", zap.String("submission_id", conn.SubmissionID))

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				h.log.Error("ws message not encoded", zap.Error(err))
				continue
			}
			h.mu.RLock()
			for conn := range h.conns[msg.SubmissionID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Watchers returns the number of connections watching a submission
func (h *Hub) Watchers(submissionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[submissionID])
}

// Close disconnects every watcher and stops the hub
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// BroadcastToSubmission sends a message to every watcher of a submission (implements service.Broadcaster)
func (h *Hub) BroadcastToSubmission(submissionID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("ws payload not encoded", zap.String("type", msgType), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- &BroadcastMessage{
		SubmissionID: submissionID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}:
	case <-h.done:
	}
}
