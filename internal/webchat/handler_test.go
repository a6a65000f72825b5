package webchat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/Thakshaka/clinic-management-system/internal/assistant"
	"github.com/Thakshaka/clinic-management-system/internal/history"
	"github.com/Thakshaka/clinic-management-system/internal/http/middleware"
	"github.com/Thakshaka/clinic-management-system/pkg/logging"
)

// mockAssistant echoes messages and records calls.
type mockAssistant struct {
	sent       []string
	transcript []history.ChatMessage
	sendErr    error
}

func (m *mockAssistant) Send(_ context.Context, _, text string) (assistant.TurnResult, error) {
	if m.sendErr != nil {
		return assistant.TurnResult{}, m.sendErr
	}
	m.sent = append(m.sent, text)
	return assistant.TurnResult{
		Message: history.NewMessage(history.SenderAssistant, "You said: "+text),
		Intent:  assistant.IntentUnknown,
		Path:    assistant.PathTemplate,
	}, nil
}

func (m *mockAssistant) History(context.Context, string) []history.ChatMessage {
	return m.transcript
}

func newWSServer(t *testing.T, h *Handler, email string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if email != "" {
			r = r.WithContext(middleware.WithPatientEmail(r.Context(), email))
		}
		h.HandleWebSocket(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, err := websocket.Dial(url, "", "http://localhost/")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func receive(t *testing.T, conn *websocket.Conn) OutboundMessage {
	t.Helper()
	var msg OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &msg))
	return msg
}

func TestWebSocketReplaysHistoryOnConnect(t *testing.T) {
	mock := &mockAssistant{transcript: []history.ChatMessage{
		history.NewMessage(history.SenderAssistant, "Hello!"),
	}}
	h := NewHandler(mock, logging.New("error"))
	conn := dial(t, newWSServer(t, h, "jane@example.com"))

	msg := receive(t, conn)
	assert.Equal(t, "history", msg.Type)
	require.Len(t, msg.Messages, 1)
	assert.Equal(t, "Hello!", msg.Messages[0].Text)
}

func TestWebSocketMessageRoundTrip(t *testing.T) {
	mock := &mockAssistant{}
	h := NewHandler(mock, logging.New("error"))
	conn := dial(t, newWSServer(t, h, "jane@example.com"))

	receive(t, conn) // history replay

	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{Type: "message", Text: "hello"}))

	typing := receive(t, conn)
	assert.Equal(t, "typing", typing.Type)

	reply := receive(t, conn)
	assert.Equal(t, "message", reply.Type)
	require.NotNil(t, reply.Message)
	assert.Equal(t, "You said: hello", reply.Message.Text)
	assert.Equal(t, []string{"hello"}, mock.sent)
}

func TestWebSocketPing(t *testing.T) {
	h := NewHandler(&mockAssistant{}, logging.New("error"))
	conn := dial(t, newWSServer(t, h, "jane@example.com"))

	receive(t, conn) // history replay

	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{Type: "ping"}))
	assert.Equal(t, "pong", receive(t, conn).Type)
}

func TestWebSocketIgnoresBlankMessages(t *testing.T) {
	mock := &mockAssistant{}
	h := NewHandler(mock, logging.New("error"))
	conn := dial(t, newWSServer(t, h, "jane@example.com"))

	receive(t, conn) // history replay

	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{Type: "message", Text: "   "}))
	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{Type: "ping"}))

	// Only the pong arrives: the blank message produced no turn.
	assert.Equal(t, "pong", receive(t, conn).Type)
	assert.Empty(t, mock.sent)
}

func TestWebSocketUnauthorized(t *testing.T) {
	h := NewHandler(&mockAssistant{}, logging.New("error"))
	conn := dial(t, newWSServer(t, h, ""))

	msg := receive(t, conn)
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "unauthorized", msg.Text)
}

func TestSendToPatientNoSession(t *testing.T) {
	h := NewHandler(&mockAssistant{}, logging.New("error"))
	// Must not panic when nobody is connected.
	h.SendToPatient("nobody@example.com", OutboundMessage{Type: "message"})
}
