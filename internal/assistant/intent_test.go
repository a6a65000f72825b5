package assistant

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      Intent
	}{
		{"greeting", "Hello there", IntentGreeting},
		{"greeting uppercase", "HELLO!", IntentGreeting},
		{"greeting with whitespace", "  hey, quick question  ", IntentGreeting},
		{"greeting trailing punctuation", "Good morning!!!", IntentGreeting},
		{"farewell", "bye for now", IntentFarewell},
		{"thanks bye is farewell", "thanks bye", IntentFarewell},
		{"thanks", "thank you so much", IntentThanks},
		{"next appointment", "When is my next appointment?", IntentAppointmentNext},
		{"upcoming visit", "do I have an upcoming visit", IntentAppointmentNext},
		{"book appointment", "I want to book appointment", IntentAppointmentBook},
		{"cancel appointment", "please cancel appointment for tomorrow", IntentAppointmentCancel},
		{"appointment history", "show my past appointment list", IntentAppointmentHistory},
		{"current prescription", "what are my current prescriptions", IntentPrescriptionCurrent},
		{"all prescriptions", "show prescriptions please", IntentPrescriptionAll},
		{"refill", "can I refill prescription", IntentPrescriptionRefill},
		{"medical history", "show my medical history", IntentMedicalHistory},
		{"recent visits", "what were my recent visits", IntentRecentVisits},
		{"symptom", "I feel sick today", IntentSymptomCheck},
		{"health tips", "any health tips for winter", IntentHealthTips},
		{"clinic hours", "what are the clinic hours", IntentClinicHours},
		{"clinic location", "clinic location please", IntentClinicLocation},
		{"contact", "what is your phone number", IntentClinicContact},
		{"gibberish", "asdfghjkl", IntentUnknown},
		{"empty", "", IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.utterance); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.utterance, got, tt.want)
			}
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	// These utterances match more than one rule; the earliest declared rule
	// must win.
	tests := []struct {
		name      string
		utterance string
		want      Intent
	}{
		// Matches appointmentHistory and recentVisits ("history appointment"
		// vs "last appointment"): declared order decides.
		{"past appointment history", "past appointment history", IntentAppointmentHistory},
		// "my prescription" (prescriptionCurrent) beats "show prescription"
		// (prescriptionAll).
		{"show my prescription", "show my prescription", IntentPrescriptionCurrent},
		// Greeting anchor beats the symptom keyword later in the sentence.
		{"greeting with symptom", "hi, I have a fever", IntentGreeting},
		// "scheduled appointment" (appointmentNext) beats the cancel rule.
		{"cancel scheduled appointment", "cancel my scheduled appointment", IntentAppointmentNext},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.utterance); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.utterance, got, tt.want)
			}
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := Classify("When is my next appointment?"); got != IntentAppointmentNext {
			t.Fatalf("classification changed between calls: %v", got)
		}
	}
}
