package assistant

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/Thakshaka/clinic-management-system/internal/observability/metrics"
	"github.com/Thakshaka/clinic-management-system/internal/records"
	"github.com/Thakshaka/clinic-management-system/pkg/logging"
)

// recentContextLimit caps how many prescriptions/visits ground a reply.
const recentContextLimit = 3

// Response paths, used as metric labels.
const (
	PathTemplate   = "template"
	PathContext    = "context"
	PathGenerative = "generative"
)

const noUpcomingAppointmentReply = "You don't have any upcoming appointments scheduled. Would you like to book one? You can do so from the Appointments page."
const noVisitsReply = "You don't have any completed visits in your medical history yet."
const noPrescriptionsReply = "You don't have any prescriptions on record yet."

// ContextFetcher retrieves the minimal patient records needed to ground a
// reply. All methods degrade to empty results, never error.
type ContextFetcher interface {
	NextAppointment(ctx context.Context, patientEmail string) *records.Appointment
	RecentPrescriptions(ctx context.Context, patientEmail string, limit int) []records.Prescription
	RecentVisits(ctx context.Context, patientEmail string, limit int) []records.Appointment
}

// Reply is one composed assistant turn.
type Reply struct {
	Text   string
	Intent Intent
	Path   string
}

// Composer turns a classified utterance into a reply: canned templates for
// simple intents, record-grounded formatting for context intents, and a
// generative completion for everything else. It never returns an error; every
// failure degrades to an unalarming canned reply.
type Composer struct {
	fetcher    ContextFetcher
	llm        LLMClient
	clinic     ClinicInfo
	templates  *templateCatalog
	llmTimeout time.Duration
	metrics    *metrics.AssistantMetrics
	logger     *logging.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewComposer creates a composer. llm may be nil (generative fallback
// disabled, canned replies only); rng may be nil (time-seeded source); a
// fixed-seed rng makes template selection deterministic for tests.
func NewComposer(fetcher ContextFetcher, llm LLMClient, clinic ClinicInfo, llmTimeout time.Duration, rng *rand.Rand, m *metrics.AssistantMetrics, logger *logging.Logger) *Composer {
	if fetcher == nil {
		panic("assistant: context fetcher cannot be nil")
	}
	if llmTimeout <= 0 {
		llmTimeout = 15 * time.Second
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Composer{
		fetcher:    fetcher,
		llm:        llm,
		clinic:     clinic,
		templates:  newTemplateCatalog(clinic),
		llmTimeout: llmTimeout,
		metrics:    m,
		logger:     logger,
		rng:        rng,
	}
}

// Respond handles one chat turn for the given patient.
func (c *Composer) Respond(ctx context.Context, utterance, patientEmail string) Reply {
	start := time.Now()
	intent := Classify(utterance)

	var text, path string
	if candidates, ok := c.templates.direct[intent]; ok {
		text = c.pick(candidates)
		path = PathTemplate
	} else {
		switch intent {
		case IntentAppointmentNext:
			text = c.nextAppointmentReply(ctx, patientEmail)
			path = PathContext
		case IntentAppointmentBook:
			text = c.pick(c.templates.appointmentHelp)
			path = PathTemplate
		case IntentAppointmentHistory, IntentRecentVisits:
			text = c.recentVisitsReply(ctx, patientEmail)
			path = PathContext
		case IntentPrescriptionCurrent, IntentPrescriptionAll:
			text = c.prescriptionsReply(ctx, patientEmail)
			path = PathContext
		case IntentClinicHours, IntentClinicLocation, IntentClinicContact:
			text = c.pick(c.templates.clinicInfo)
			path = PathTemplate
		default:
			text = c.generate(ctx, utterance, patientEmail)
			path = PathGenerative
		}
	}

	c.metrics.ObserveTurn(string(intent), path)
	c.metrics.ObserveComposeLatency(path, time.Since(start).Seconds())
	return Reply{Text: text, Intent: intent, Path: path}
}

func (c *Composer) nextAppointmentReply(ctx context.Context, patientEmail string) string {
	apt := c.fetcher.NextAppointment(ctx, patientEmail)
	if apt == nil {
		return noUpcomingAppointmentReply
	}

	var b strings.Builder
	b.WriteString("📅 **Your Next Appointment:**\n\n")
	fmt.Fprintf(&b, "**Doctor**: Dr. %s\n", apt.DoctorName)
	fmt.Fprintf(&b, "**Date**: %s\n", formatDate(apt.AppointmentDate))
	fmt.Fprintf(&b, "**Time**: %s\n", apt.AppointmentTime)
	fmt.Fprintf(&b, "**Status**: %s\n\n", apt.Status)
	if apt.Reason != "" {
		fmt.Fprintf(&b, "**Reason**: %s\n\n", apt.Reason)
	}
	b.WriteString("You can manage your appointments from the Appointments page.")
	return b.String()
}

func (c *Composer) recentVisitsReply(ctx context.Context, patientEmail string) string {
	visits := c.fetcher.RecentVisits(ctx, patientEmail, recentContextLimit)
	if len(visits) == 0 {
		return noVisitsReply
	}

	var b strings.Builder
	b.WriteString("📋 **Your Recent Visits:**\n\n")
	for i, visit := range visits {
		fmt.Fprintf(&b, "%d. **%s** - Dr. %s\n", i+1, formatDate(visit.AppointmentDate), visit.DoctorName)
		if visit.Reason != "" {
			fmt.Fprintf(&b, "   Reason: %s\n", visit.Reason)
		}
	}
	b.WriteString("\nView complete history in the Medical History page.")
	return b.String()
}

func (c *Composer) prescriptionsReply(ctx context.Context, patientEmail string) string {
	prescriptions := c.fetcher.RecentPrescriptions(ctx, patientEmail, recentContextLimit)
	if len(prescriptions) == 0 {
		return noPrescriptionsReply
	}

	var b strings.Builder
	b.WriteString("💊 **Your Recent Prescriptions:**\n\n")
	for i, rx := range prescriptions {
		diagnosis := rx.Diagnosis
		if diagnosis == "" {
			diagnosis = "General Prescription"
		}
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, diagnosis)
		fmt.Fprintf(&b, "   Date: %s\n", formatDate(rx.PrescriptionDate))
		if len(rx.Medicines) > 0 {
			fmt.Fprintf(&b, "   Medications: %s\n", strings.Join(medicineNames(rx), ", "))
		}
	}
	b.WriteString("\nView full details in the Prescriptions page.")
	return b.String()
}

// generate delegates an uncovered intent to the generative endpoint. Any
// failure, including a missing client, substitutes an unknown-template reply;
// no error ever reaches the caller.
func (c *Composer) generate(ctx context.Context, utterance, patientEmail string) string {
	if c.llm == nil {
		c.logger.Warn("generative endpoint not configured, using canned reply")
		c.metrics.ObserveLLMOutcome("unconfigured")
		return c.pick(c.templates.unknownReplies())
	}

	ctx, cancel := context.WithTimeout(ctx, c.llmTimeout)
	defer cancel()

	apt := c.fetcher.NextAppointment(ctx, patientEmail)
	prescriptions := c.fetcher.RecentPrescriptions(ctx, patientEmail, recentContextLimit)
	visits := c.fetcher.RecentVisits(ctx, patientEmail, recentContextLimit)

	prompt := buildContextPrompt(c.clinic, apt, prescriptions, visits, utterance)
	resp, err := c.llm.Complete(ctx, LLMRequest{
		Messages:    []PromptMessage{{Role: ChatRoleUser, Content: prompt}},
		Temperature: -1,
	})
	if err != nil {
		c.logger.Error("generative completion failed", "error", err)
		c.metrics.ObserveLLMOutcome("error")
		return c.pick(c.templates.unknownReplies())
	}
	if strings.TrimSpace(resp.Text) == "" {
		c.logger.Error("generative completion returned empty text")
		c.metrics.ObserveLLMOutcome("error")
		return c.pick(c.templates.unknownReplies())
	}

	c.metrics.ObserveLLMOutcome("ok")
	return resp.Text
}

func (c *Composer) pick(candidates []string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return pick(c.rng, candidates)
}
