package compliance

import (
	"context"
	"fmt"
	"strings"
)

// DisclaimerLevel represents the verbosity of the disclaimer.
type DisclaimerLevel string

const (
	// DisclaimerShort is the shortest disclaimer.
	DisclaimerShort DisclaimerLevel = "short"
	// DisclaimerMedium is a moderate disclaimer.
	DisclaimerMedium DisclaimerLevel = "medium"
	// DisclaimerFull is the most comprehensive disclaimer.
	DisclaimerFull DisclaimerLevel = "full"
)

const (
	disclaimerShortText = "Automated assistant. Not medical advice."

	disclaimerMediumText = "I'm an automated assistant. For medical advice, please consult your doctor."

	disclaimerFullText = "I'm the clinic's automated assistant. The information provided is general in nature and not a substitute for professional medical advice. Please consult a licensed healthcare provider for medical guidance."
)

// EventDisclaimerSent is logged when a disclaimer is appended to a reply.
const EventDisclaimerSent AuditEventType = "compliance.disclaimer_sent"

// DisclaimerConfig configures the disclaimer service.
type DisclaimerConfig struct {
	// Level determines which disclaimer template to use.
	Level DisclaimerLevel
	// Enabled controls whether disclaimers are appended at all.
	Enabled bool
	// CustomText overrides the default template.
	CustomText string
}

// DefaultDisclaimerConfig returns sensible defaults.
func DefaultDisclaimerConfig() DisclaimerConfig {
	return DisclaimerConfig{
		Level:   DisclaimerMedium,
		Enabled: true,
	}
}

// DisclaimerService appends the legal disclaimer to freeform assistant
// replies. Canned replies carry their own wording and skip this path.
type DisclaimerService struct {
	audit  *AuditService
	config DisclaimerConfig
}

// NewDisclaimerService creates a new disclaimer service. The audit service
// may be nil when no audit trail is configured.
func NewDisclaimerService(audit *AuditService, config DisclaimerConfig) *DisclaimerService {
	return &DisclaimerService{
		audit:  audit,
		config: config,
	}
}

// Text returns the disclaimer wording for the configured level.
func (s *DisclaimerService) Text() string {
	if s.config.CustomText != "" {
		return s.config.CustomText
	}

	switch s.config.Level {
	case DisclaimerShort:
		return disclaimerShortText
	case DisclaimerFull:
		return disclaimerFullText
	default:
		return disclaimerMediumText
	}
}

// Append adds the disclaimer to the reply if enabled and not already present.
func (s *DisclaimerService) Append(ctx context.Context, patientEmail, reply string) string {
	if !s.config.Enabled {
		return reply
	}

	disclaimer := s.Text()
	if strings.Contains(reply, disclaimer) {
		return reply
	}

	if s.audit != nil {
		_ = s.audit.LogEvent(ctx, AuditEvent{
			EventType:      EventDisclaimerSent,
			PatientEmail:   patientEmail,
			AssistantReply: disclaimer,
		})
	}

	return fmt.Sprintf("%s\n\n_%s_", strings.TrimSpace(reply), disclaimer)
}
