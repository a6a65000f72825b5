// Package assistant implements the patient chat assistant: intent
// classification, context-grounded reply composition, and the generative
// fallback.
package assistant

import (
	"regexp"
	"strings"
)

// Intent is the discrete classification of a user utterance used to select a
// response strategy.
type Intent string

const (
	IntentGreeting            Intent = "greeting"
	IntentFarewell            Intent = "farewell"
	IntentThanks              Intent = "thanks"
	IntentAppointmentNext     Intent = "appointmentNext"
	IntentAppointmentBook     Intent = "appointmentBook"
	IntentAppointmentCancel   Intent = "appointmentCancel"
	IntentAppointmentHistory  Intent = "appointmentHistory"
	IntentPrescriptionCurrent Intent = "prescriptionCurrent"
	IntentPrescriptionAll     Intent = "prescriptionAll"
	IntentPrescriptionRefill  Intent = "prescriptionRefill"
	IntentMedicalHistory      Intent = "medicalHistory"
	IntentRecentVisits        Intent = "recentVisits"
	IntentSymptomCheck        Intent = "symptomCheck"
	IntentHealthTips          Intent = "healthTips"
	IntentClinicHours         Intent = "clinicHours"
	IntentClinicLocation      Intent = "clinicLocation"
	IntentClinicContact       Intent = "clinicContact"
	IntentUnknown             Intent = "unknown"
)

type intentRule struct {
	intent  Intent
	pattern *regexp.Regexp
}

// intentRules is evaluated top to bottom and the first match wins. The
// patterns are not mutually exclusive, so the order is part of the contract:
// "past appointment history" must classify as appointmentHistory even though
// later rules would also match.
var intentRules = []intentRule{
	{IntentGreeting, regexp.MustCompile(`^(hi|hello|hey|good morning|good afternoon|good evening|greetings)`)},
	{IntentFarewell, regexp.MustCompile(`^(bye|goodbye|see you|take care|thanks bye|thank you bye)`)},
	{IntentThanks, regexp.MustCompile(`^(thanks|thank you|appreciate|grateful)`)},

	{IntentAppointmentNext, regexp.MustCompile(`(next|upcoming|future|scheduled) (appointment|visit|checkup)`)},
	{IntentAppointmentBook, regexp.MustCompile(`(book|schedule|make|create|new) (appointment|visit)`)},
	{IntentAppointmentCancel, regexp.MustCompile(`(cancel|delete|remove) (appointment|visit)`)},
	{IntentAppointmentHistory, regexp.MustCompile(`(past|previous|old|history) (appointment|visit)`)},

	{IntentPrescriptionCurrent, regexp.MustCompile(`(current|active|my) (prescription|medication|medicine|drug)`)},
	{IntentPrescriptionAll, regexp.MustCompile(`(all|show|view|list) (prescription|medication|medicine)`)},
	{IntentPrescriptionRefill, regexp.MustCompile(`(refill|renew) (prescription|medication)`)},

	{IntentMedicalHistory, regexp.MustCompile(`(medical|health) (history|record|timeline)`)},
	{IntentRecentVisits, regexp.MustCompile(`(recent|last|latest) (visit|appointment|checkup)`)},

	{IntentSymptomCheck, regexp.MustCompile(`(symptom|feel|sick|pain|ache|fever|cough|cold)`)},
	{IntentHealthTips, regexp.MustCompile(`(health tip|advice|recommendation|prevent|wellness)`)},

	{IntentClinicHours, regexp.MustCompile(`(clinic|office) (hour|time|open|close)`)},
	{IntentClinicLocation, regexp.MustCompile(`(clinic|office) (location|address|where)`)},
	{IntentClinicContact, regexp.MustCompile(`(contact|phone|email|call)`)},
}

// Classify maps a raw utterance to an intent. The utterance is trimmed and
// lowercased before matching; patterns use unanchored search semantics unless
// they anchor themselves. Returns IntentUnknown when no rule matches.
func Classify(utterance string) Intent {
	normalized := strings.ToLower(strings.TrimSpace(utterance))
	for _, rule := range intentRules {
		if rule.pattern.MatchString(normalized) {
			return rule.intent
		}
	}
	return IntentUnknown
}
