package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"wellbeing/internal/service"
	"wellbeing/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Handler handles WebSocket connections
type Handler struct {
	hub           *Hub
	submissionSvc *service.SubmissionService
	reportSvc     *service.ReportService
	upgrader      websocket.Upgrader
	log           *zap.Logger
}

// NewHandler creates a new WebSocket handler. checkOrigin nil accepts any origin.
func NewHandler(hub *Hub, submissionSvc *service.SubmissionService, reportSvc *service.ReportService, checkOrigin func(*http.Request) bool, log *zap.Logger) *Handler {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		hub:           hub,
		submissionSvc: submissionSvc,
		reportSvc:     reportSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		log: log,
	}
}

// SubmissionWS handles GET /v1/ws/submissions/{id}. The route must sit behind
// RequireRespondent so claims are in the request context.
func (h *Handler) SubmissionWS(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	sub, err := h.submissionSvc.Get(r.Context(), id)
	if err != nil || sub.SessionID != claims.SessionID {
		http.Error(w, "submission not found", http.StatusNotFound)
		return
	}

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	conn := NewConnection(id, claims.SessionID)

	// Current state first so a report finished before the upgrade is not missed.
	if rep, err := h.reportSvc.GetAIReport(r.Context(), id); err == nil && rep != nil {
		if payload, err := json.Marshal(rep); err == nil {
			data, _ := json.Marshal(&Message{Type: MsgReportStatus, Payload: payload})
			conn.Send <- data
		}
	}
	h.hub.Register(conn)

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := wsConn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Debug("websocket closed", zap.String("submission_id", conn.SubmissionID), zap.Error(err))
			}
			return
		}
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
