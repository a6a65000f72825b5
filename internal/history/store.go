package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/Thakshaka/clinic-management-system/pkg/logging"
)

const defaultHistoryTTL = 30 * 24 * time.Hour

// Store persists chat transcripts in Redis, one JSON-encoded message list per
// patient. Load never errors: a missing key or corrupt payload yields an
// empty transcript so the assistant can reseed a welcome message.
type Store struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
	logger *logging.Logger
}

// NewStore builds a store over the given Redis client.
func NewStore(client *redis.Client, ttl time.Duration, logger *logging.Logger) *Store {
	if client == nil {
		panic("history: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = defaultHistoryTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		redis:  client,
		ttl:    ttl,
		tracer: otel.Tracer("clinic.internal.history"),
		logger: logger,
	}
}

// Save overwrites the patient's entire transcript. No incremental append
// happens at the storage layer.
func (s *Store) Save(ctx context.Context, patientEmail string, messages []ChatMessage) error {
	ctx, span := s.tracer.Start(ctx, "history.save")
	defer span.End()

	data, err := json.Marshal(messages)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("history: failed to marshal transcript: %w", err)
	}
	if err := s.redis.Set(ctx, historyKey(patientEmail), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("history: failed to persist transcript: %w", err)
	}
	return nil
}

// Load returns the patient's transcript, or an empty one when nothing is
// stored or the stored payload cannot be decoded.
func (s *Store) Load(ctx context.Context, patientEmail string) []ChatMessage {
	ctx, span := s.tracer.Start(ctx, "history.load")
	defer span.End()

	data, err := s.redis.Get(ctx, historyKey(patientEmail)).Bytes()
	if err != nil {
		if err != redis.Nil {
			span.RecordError(err)
			s.logger.Warn("failed to load chat history", "patient", patientEmail, "error", err)
		}
		return nil
	}

	var messages []ChatMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		span.RecordError(err)
		s.logger.Warn("discarding corrupt chat history", "patient", patientEmail, "error", err)
		return nil
	}
	return messages
}

// Clear deletes the patient's transcript.
func (s *Store) Clear(ctx context.Context, patientEmail string) error {
	ctx, span := s.tracer.Start(ctx, "history.clear")
	defer span.End()

	if err := s.redis.Del(ctx, historyKey(patientEmail)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("history: failed to clear transcript: %w", err)
	}
	return nil
}

func historyKey(patientEmail string) string {
	return fmt.Sprintf("chat_history:%s", patientEmail)
}
