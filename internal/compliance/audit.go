// Package compliance provides healthcare regulatory compliance features.
package compliance

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditEventType represents the type of compliance event.
type AuditEventType string

const (
	// EventRecordsAccessed is logged when patient records ground a reply.
	EventRecordsAccessed AuditEventType = "compliance.records_accessed"
	// EventGenerativeReply is logged when a reply comes from the generative endpoint.
	EventGenerativeReply AuditEventType = "compliance.generative_reply"
	// EventMedicalAdviceRedirected is logged when a symptom question is
	// answered with the see-a-doctor guidance instead of advice.
	EventMedicalAdviceRedirected AuditEventType = "compliance.medical_advice_redirected"
	// EventHistoryCleared is logged when a patient wipes their transcript.
	EventHistoryCleared AuditEventType = "compliance.history_cleared"
)

// AuditEvent represents an immutable compliance audit record.
type AuditEvent struct {
	ID             string          `json:"id"`
	EventType      AuditEventType  `json:"event_type"`
	PatientEmail   string          `json:"patient_email"`
	Intent         string          `json:"intent,omitempty"`
	UserMessage    string          `json:"user_message,omitempty"`
	AssistantReply string          `json:"assistant_reply,omitempty"`
	Details        json.RawMessage `json:"details,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// AuditService handles compliance audit logging. Writes are best-effort from
// the caller's perspective: a failed insert is logged upstream and never
// blocks a reply.
type AuditService struct {
	db *sql.DB
}

// NewAuditService creates a new audit service.
func NewAuditService(db *sql.DB) *AuditService {
	return &AuditService{db: db}
}

// LogEvent records a compliance audit event.
func (s *AuditService) LogEvent(ctx context.Context, event AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO assistant_audit_events (
			id, event_type, patient_email, intent,
			user_message, assistant_reply, details, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.EventType,
		event.PatientEmail,
		nullString(event.Intent),
		nullString(event.UserMessage),
		nullString(event.AssistantReply),
		event.Details,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("compliance: failed to log audit event: %w", err)
	}

	return nil
}

// LogRecordsAccessed logs that patient records were read to ground a reply.
func (s *AuditService) LogRecordsAccessed(ctx context.Context, patientEmail, intent, userMessage string) error {
	return s.LogEvent(ctx, AuditEvent{
		EventType:    EventRecordsAccessed,
		PatientEmail: patientEmail,
		Intent:       intent,
		UserMessage:  userMessage,
	})
}

// LogGenerativeReply logs a reply produced by the generative endpoint.
func (s *AuditService) LogGenerativeReply(ctx context.Context, patientEmail, intent, userMessage, reply string) error {
	return s.LogEvent(ctx, AuditEvent{
		EventType:      EventGenerativeReply,
		PatientEmail:   patientEmail,
		Intent:         intent,
		UserMessage:    userMessage,
		AssistantReply: reply,
	})
}

// LogMedicalAdviceRedirected logs a symptom question answered with guidance
// to see a doctor.
func (s *AuditService) LogMedicalAdviceRedirected(ctx context.Context, patientEmail, userMessage string) error {
	details, _ := json.Marshal(map[string]string{"redirect_reason": "symptom question answered with emergency guidance"})
	return s.LogEvent(ctx, AuditEvent{
		EventType:    EventMedicalAdviceRedirected,
		PatientEmail: patientEmail,
		UserMessage:  userMessage,
		Details:      details,
	})
}

// LogHistoryCleared logs that a patient wiped their chat transcript.
func (s *AuditService) LogHistoryCleared(ctx context.Context, patientEmail string) error {
	return s.LogEvent(ctx, AuditEvent{
		EventType:    EventHistoryCleared,
		PatientEmail: patientEmail,
	})
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
