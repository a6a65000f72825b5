package assistant

import (
	"fmt"
	"math/rand"
)

// ClinicInfo carries the clinic identity interpolated into canned replies and
// the context prompt.
type ClinicInfo struct {
	Name     string
	Location string
	Phone    string
	Email    string
	Hours    string
}

// templateCatalog holds the canned reply sets. Replies are picked uniformly
// at random for variety only; tests assert membership, not equality.
type templateCatalog struct {
	direct          map[Intent][]string
	appointmentHelp []string
	clinicInfo      []string
}

func newTemplateCatalog(clinic ClinicInfo) *templateCatalog {
	return &templateCatalog{
		direct: map[Intent][]string{
			IntentGreeting: {
				"Hello! I'm your healthcare assistant. How can I help you today?",
				"Hi there! I'm here to help with your healthcare needs. What can I do for you?",
				"Welcome! I'm your virtual health assistant. How may I assist you?",
			},
			IntentFarewell: {
				"Take care! Feel free to reach out anytime you need assistance.",
				"Goodbye! Wishing you good health. I'm here whenever you need me.",
				"Have a great day! Don't hesitate to ask if you have more questions.",
			},
			IntentThanks: {
				"You're welcome! Is there anything else I can help you with?",
				"Happy to help! Let me know if you need anything else.",
				"My pleasure! Feel free to ask if you have more questions.",
			},
			IntentSymptomCheck: {
				"⚠️ **Important**: I can provide general health information, but I'm not a substitute for professional medical advice.\n\nFor urgent symptoms:\n• Severe chest pain\n• Difficulty breathing\n• Sudden severe headache\n• Loss of consciousness\n\n**Please call emergency services immediately or visit the nearest emergency room.**\n\nFor non-urgent concerns, I recommend booking an appointment with your doctor. Would you like help with that?",
				"I can provide general health guidance, but please remember:\n\n✓ This is not a medical diagnosis\n✓ Always consult your doctor for health concerns\n✓ For emergencies, call emergency services immediately\n\nIf you'd like to describe your symptoms, I can suggest whether you should book an appointment.",
			},
			IntentUnknown: {
				"I'm not sure I understand. I can help you with:\n\n• Appointment scheduling and information\n• Prescription details\n• Medical history\n• Clinic information\n• General health questions\n\nCould you please rephrase your question?",
				"I didn't quite catch that. Here's what I can assist with:\n\n✓ Appointments\n✓ Prescriptions\n✓ Medical records\n✓ Clinic hours and location\n✓ Health guidance\n\nWhat would you like to know more about?",
			},
		},
		appointmentHelp: []string{
			"I can help you with appointments! You can:\n\n• View your upcoming appointments\n• Check past appointment history\n• Book a new appointment through the Appointments page\n\nWould you like me to show your next appointment?",
			"For appointments, you can:\n\n1. **Book**: Go to Appointments → Book Appointment\n2. **View**: Check your upcoming appointments on the dashboard\n3. **Cancel**: Manage appointments from the Appointments page\n\nWhat would you like to do?",
		},
		clinicInfo: []string{
			fmt.Sprintf("**Clinic Information:**\n\n📍 **Location**: %s, %s\n🕐 **Hours**: %s\n\n📞 **Contact**: \n• Phone: %s\n• Email: %s\n\n🚨 **Emergency**: For medical emergencies, call your local emergency number",
				clinic.Name, clinic.Location, clinic.Hours, clinic.Phone, clinic.Email),
			fmt.Sprintf("Here's our clinic information:\n\n**Operating Hours:** %s\n\n**Contact Us:**\nPhone: %s\nEmail: %s\n\nFor urgent medical needs outside these hours, please visit the nearest emergency room.",
				clinic.Hours, clinic.Phone, clinic.Email),
		},
	}
}

// pick returns one candidate uniformly at random.
func pick(rng *rand.Rand, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	return candidates[rng.Intn(len(candidates))]
}

// unknownReplies exposes the unknown-intent set; the generative fallback
// substitutes one of these on any failure.
func (t *templateCatalog) unknownReplies() []string {
	return t.direct[IntentUnknown]
}
