package assistant

import (
	"context"
	"errors"
	"strings"

	"github.com/Thakshaka/clinic-management-system/internal/history"
	"github.com/Thakshaka/clinic-management-system/pkg/logging"
)

const welcomeText = "Hello! 👋 I'm your healthcare assistant. I can help you with:\n\n• Appointment information\n• Prescription details\n• Medical history\n• Health questions\n• Clinic information\n\nHow can I assist you today?"

const historyClearedText = "Chat history cleared. How can I help you today?"

// ErrEmptyMessage is returned when a patient submits a blank message.
var ErrEmptyMessage = errors.New("assistant: message cannot be empty")

// HistoryStore persists per-patient chat transcripts.
type HistoryStore interface {
	Save(ctx context.Context, patientEmail string, messages []history.ChatMessage) error
	Load(ctx context.Context, patientEmail string) []history.ChatMessage
	Clear(ctx context.Context, patientEmail string) error
}

// Auditor records compliance events. All calls are best-effort: failures are
// logged and never block a reply.
type Auditor interface {
	LogRecordsAccessed(ctx context.Context, patientEmail, intent, userMessage string) error
	LogGenerativeReply(ctx context.Context, patientEmail, intent, userMessage, reply string) error
	LogMedicalAdviceRedirected(ctx context.Context, patientEmail, userMessage string) error
	LogHistoryCleared(ctx context.Context, patientEmail string) error
}

// Disclaimer decorates freeform replies with the clinic's legal wording.
type Disclaimer interface {
	Append(ctx context.Context, patientEmail, reply string) string
}

// Service drives one assistant conversation turn: compose a reply, append
// both sides to the transcript, and record compliance events.
type Service struct {
	composer   *Composer
	history    HistoryStore
	audit      Auditor
	disclaimer Disclaimer
	logger     *logging.Logger
}

// NewService creates the assistant service. The audit and disclaimer
// dependencies are optional.
func NewService(composer *Composer, historyStore HistoryStore, audit Auditor, disclaimer Disclaimer, logger *logging.Logger) *Service {
	if composer == nil {
		panic("assistant: composer cannot be nil")
	}
	if historyStore == nil {
		panic("assistant: history store cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		composer:   composer,
		history:    historyStore,
		audit:      audit,
		disclaimer: disclaimer,
		logger:     logger,
	}
}

// TurnResult is the outcome of one assistant turn.
type TurnResult struct {
	Message history.ChatMessage
	Intent  Intent
	Path    string
}

// Send processes one patient message and returns the assistant's reply.
func (s *Service) Send(ctx context.Context, patientEmail, text string) (TurnResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return TurnResult{}, ErrEmptyMessage
	}

	transcript := s.history.Load(ctx, patientEmail)
	if len(transcript) == 0 {
		transcript = []history.ChatMessage{history.NewMessage(history.SenderAssistant, welcomeText)}
	}

	reply := s.composer.Respond(ctx, text, patientEmail)
	replyText := reply.Text
	if reply.Path == PathGenerative && s.disclaimer != nil {
		replyText = s.disclaimer.Append(ctx, patientEmail, replyText)
	}

	s.recordTurn(ctx, patientEmail, text, reply)

	userMsg := history.NewMessage(history.SenderUser, text)
	assistantMsg := history.NewMessage(history.SenderAssistant, replyText)
	transcript = append(transcript, userMsg, assistantMsg)
	if err := s.history.Save(ctx, patientEmail, transcript); err != nil {
		s.logger.Warn("failed to persist transcript", "patient", patientEmail, "error", err)
	}

	return TurnResult{Message: assistantMsg, Intent: reply.Intent, Path: reply.Path}, nil
}

// History returns the patient's transcript, seeding the welcome message on
// first contact.
func (s *Service) History(ctx context.Context, patientEmail string) []history.ChatMessage {
	transcript := s.history.Load(ctx, patientEmail)
	if len(transcript) > 0 {
		return transcript
	}

	welcome := history.NewMessage(history.SenderAssistant, welcomeText)
	transcript = []history.ChatMessage{welcome}
	if err := s.history.Save(ctx, patientEmail, transcript); err != nil {
		s.logger.Warn("failed to seed welcome message", "patient", patientEmail, "error", err)
	}
	return transcript
}

// ClearHistory wipes the transcript and reseeds it with a confirmation.
func (s *Service) ClearHistory(ctx context.Context, patientEmail string) (history.ChatMessage, error) {
	if err := s.history.Clear(ctx, patientEmail); err != nil {
		return history.ChatMessage{}, err
	}

	cleared := history.NewMessage(history.SenderAssistant, historyClearedText)
	if err := s.history.Save(ctx, patientEmail, []history.ChatMessage{cleared}); err != nil {
		s.logger.Warn("failed to reseed cleared transcript", "patient", patientEmail, "error", err)
	}

	if s.audit != nil {
		if err := s.audit.LogHistoryCleared(ctx, patientEmail); err != nil {
			s.logger.Warn("failed to audit history clear", "patient", patientEmail, "error", err)
		}
	}
	return cleared, nil
}

// QuickActions returns the suggested conversation starters.
func (s *Service) QuickActions() []QuickAction {
	return QuickActions()
}

func (s *Service) recordTurn(ctx context.Context, patientEmail, text string, reply Reply) {
	if s.audit == nil {
		return
	}

	var err error
	switch {
	case reply.Intent == IntentSymptomCheck:
		err = s.audit.LogMedicalAdviceRedirected(ctx, patientEmail, text)
	case reply.Path == PathContext:
		err = s.audit.LogRecordsAccessed(ctx, patientEmail, string(reply.Intent), text)
	case reply.Path == PathGenerative:
		err = s.audit.LogGenerativeReply(ctx, patientEmail, string(reply.Intent), text, reply.Text)
	default:
		return
	}
	if err != nil {
		s.logger.Warn("failed to audit assistant turn", "patient", patientEmail, "error", err)
	}
}
