// Package history persists the running chat transcript per patient. The
// cache is a convenience, not authoritative: losing it only resets the
// visible conversation.
package history

import (
	"fmt"
	"time"
)

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ChatMessage is one rendered turn of the conversation.
type ChatMessage struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    Sender `json:"sender"`
	Timestamp string `json:"timestamp"`
}

// NewMessage builds a message with a timestamp-derived ID, unique within a
// session.
func NewMessage(sender Sender, text string) ChatMessage {
	now := time.Now().UTC()
	return ChatMessage{
		ID:        fmt.Sprintf("msg_%d", now.UnixNano()),
		Text:      text,
		Sender:    sender,
		Timestamp: now.Format(time.RFC3339Nano),
	}
}
