package ws

import (
	"context"
	"encoding/json"
	"mediaplanner/internal/model"
	"mediaplanner/internal/platform/apierr"
	"mediaplanner/internal/platform/logger"
	"mediaplanner/internal/service"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	answerTimeout  = 15 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// serverMessage is every frame the server sends
type serverMessage struct {
	Type MessageType `json:"type"`
	*service.ProgressView
	Recommendation *model.Recommendation `json:"recommendation,omitempty"`
	SessionID      string                `json:"sessionId,omitempty"`
	Error          string                `json:"error,omitempty"`
	Code           string                `json:"code,omitempty"`
}

// describe returns the code and client-facing message for err
func describe(err error) (int, string, string) {
	if e, ok := apierr.As(err); ok && e.Code != "" {
		return e.Status, e.Code, e.Error()
	}
	return http.StatusInternalServerError, "internal_error", "internal server error"
}

type clientMessage struct {
	StepID           string `json:"stepId"`
	SelectedOptionID string `json:"selectedOptionId"`
}

// Handler runs the questionnaire over a WebSocket
type Handler struct {
	hub         *Hub
	progressSvc *service.ProgressService
	log         *logger.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, progressSvc *service.ProgressService, log *logger.Logger) *Handler {
	return &Handler{hub: hub, progressSvc: progressSvc, log: log}
}

// PlannerWS handles GET /v1/ws/planner?strategy=&clientName=
func (h *Handler) PlannerWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := h.progressSvc.Start(r.Context(), q.Get("strategy"), q.Get("clientName"))
	if err != nil {
		status, code, msg := describe(err)
		h.log.Warn("wizard start failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": msg, "code": code})
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "progressId", view.Progress.ID, "error", err)
		if derr := h.progressSvc.Discard(r.Context(), view.Progress.ID); derr != nil {
			h.log.Warn("discard progress failed", "progressId", view.Progress.ID, "error", derr)
		}
		return
	}

	conn := &Connection{
		ProgressID: view.Progress.ID,
		Send:       make(chan []byte, 16),
	}
	h.hub.Register(conn)
	h.send(conn, serverMessage{Type: MsgStep, ProgressView: view})

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer h.hub.Unregister(conn)

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn("websocket read failed", "progressId", conn.ProgressID, "error", err)
			}
			return
		}
		if done := h.handle(conn, data); done {
			return
		}
	}
}

// handle applies one client answer and reports whether the run is finished
func (h *Handler) handle(conn *Connection, data []byte) bool {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.send(conn, serverMessage{Type: MsgError, Error: "invalid message", Code: "invalid_message"})
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), answerTimeout)
	defer cancel()

	out, err := h.progressSvc.Answer(ctx, conn.ProgressID, msg.StepID, msg.SelectedOptionID)
	if err != nil {
		status, code, text := describe(err)
		if status >= http.StatusInternalServerError {
			h.log.Error("wizard answer failed", "progressId", conn.ProgressID, "error", err)
		} else {
			h.log.Warn("wizard answer rejected", "progressId", conn.ProgressID, "error", err)
		}
		h.send(conn, serverMessage{Type: MsgError, Error: text, Code: code})
		return false
	}

	if out.Result != nil {
		rec := out.Result.Recommendation
		h.send(conn, serverMessage{Type: MsgResult, Recommendation: &rec, SessionID: out.Result.SessionID})
		return true
	}
	h.send(conn, serverMessage{Type: MsgStep, ProgressView: out.Next})
	return false
}

func (h *Handler) send(conn *Connection, msg serverMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("encode websocket message failed", "error", err)
		return
	}
	if !conn.trySend(data) {
		h.log.Warn("websocket message dropped", "progressId", conn.ProgressID, "type", msg.Type)
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
				wsConn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
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
