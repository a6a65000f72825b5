// Package webchat serves the real-time chat transport. Replies are composed
// synchronously, so the socket carries the same turns as the REST endpoints.
package webchat

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/Thakshaka/clinic-management-system/internal/assistant"
	"github.com/Thakshaka/clinic-management-system/internal/history"
	"github.com/Thakshaka/clinic-management-system/internal/http/middleware"
	"github.com/Thakshaka/clinic-management-system/pkg/logging"
)

// Assistant composes replies and maintains the transcript.
type Assistant interface {
	Send(ctx context.Context, patientEmail, text string) (assistant.TurnResult, error)
	History(ctx context.Context, patientEmail string) []history.ChatMessage
}

// Handler manages web chat connections and messages.
type Handler struct {
	assistant Assistant
	logger    *logging.Logger

	mu       sync.RWMutex
	sessions map[string]*wsConn // patientEmail -> active connection
}

type wsConn struct {
	conn *websocket.Conn
	done chan struct{}
}

// InboundMessage is what the chat widget sends.
type InboundMessage struct {
	Type string `json:"type"` // "message", "ping"
	Text string `json:"text"`
}

// OutboundMessage is what we send to the chat widget.
type OutboundMessage struct {
	Type     string                `json:"type"` // "message", "typing", "pong", "history", "error"
	Message  *history.ChatMessage  `json:"message,omitempty"`
	Messages []history.ChatMessage `json:"messages,omitempty"`
	Text     string                `json:"text,omitempty"`
}

// NewHandler creates a web chat handler.
func NewHandler(svc Assistant, logger *logging.Logger) *Handler {
	if svc == nil {
		panic("webchat: assistant cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		assistant: svc,
		logger:    logger,
		sessions:  make(map[string]*wsConn),
	}
}

// HandleWebSocket upgrades to WebSocket and handles real-time messaging. The
// patient JWT middleware must run first so the patient email is on the
// request context.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	email, ok := middleware.PatientEmailFromContext(r.Context())
	if !ok {
		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "error", Text: "unauthorized"})
		return
	}

	// Replay the transcript so a reconnecting widget resumes mid-conversation.
	_ = websocket.JSON.Send(conn, OutboundMessage{
		Type:     "history",
		Messages: h.assistant.History(r.Context(), email),
	})

	wsc := &wsConn{conn: conn, done: make(chan struct{})}
	h.mu.Lock()
	h.sessions[email] = wsc
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		if h.sessions[email] == wsc {
			delete(h.sessions, email)
		}
		h.mu.Unlock()
		close(wsc.done)
	}()

	h.logger.Info("webchat: connection opened", "patient", email)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "patient", email, "error", err)
			return
		}

		if msg.Type == "ping" {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
			continue
		}

		if msg.Type != "message" || strings.TrimSpace(msg.Text) == "" {
			continue
		}

		h.processMessage(r.Context(), email, msg.Text)
	}
}

func (h *Handler) processMessage(ctx context.Context, email, text string) {
	h.SendToPatient(email, OutboundMessage{Type: "typing"})

	result, err := h.assistant.Send(ctx, email, text)
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyMessage) {
			return
		}
		h.logger.Error("webchat: failed to process message", "patient", email, "error", err)
		h.SendToPatient(email, OutboundMessage{
			Type: "error",
			Text: "Sorry, something went wrong. Please try again.",
		})
		return
	}

	h.SendToPatient(email, OutboundMessage{Type: "message", Message: &result.Message})
}

// SendToPatient sends a message to the patient's active WebSocket session,
// if any.
func (h *Handler) SendToPatient(email string, msg OutboundMessage) {
	h.mu.RLock()
	wsc, ok := h.sessions[email]
	h.mu.RUnlock()
	if !ok {
		return
	}
	_ = websocket.JSON.Send(wsc.conn, msg)
}
