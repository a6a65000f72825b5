package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/Thakshaka/clinic-management-system/internal/records"
)

const personaGuidelines = `Guidelines:
1. Answer the user's question based on their context if available.
2. If asked about medical advice, provide general guidance but ALWAYS state that you are an AI and recommend seeing a doctor for specific medical concerns.
3. Be concise, friendly, and use formatting (bolding, lists) to make text readable.
4. If the user asks to book/cancel appointments, guide them to the Appointments page.
5. Keep responses under 150 words unless detailed explanation is needed.`

// buildContextPrompt assembles the single stateless prompt sent to the
// generative endpoint: patient context, clinic hours, persona guidelines, and
// the verbatim user question.
func buildContextPrompt(clinic ClinicInfo, apt *records.Appointment, prescriptions []records.Prescription, visits []records.Appointment, question string) string {
	var builder strings.Builder

	builder.WriteString("You are a helpful, empathetic, and professional medical clinic assistant for a patient.\n\n")
	builder.WriteString("Patient Context:\n")

	if apt != nil {
		builder.WriteString(fmt.Sprintf("- Next Appointment: %s at %s with Dr. %s (%s)\n",
			formatDate(apt.AppointmentDate), apt.AppointmentTime, apt.DoctorName, apt.Status))
	} else {
		builder.WriteString("- No upcoming appointments.\n")
	}

	if len(prescriptions) > 0 {
		summaries := make([]string, 0, len(prescriptions))
		for _, rx := range prescriptions {
			summaries = append(summaries, fmt.Sprintf("%s (Date: %s)",
				strings.Join(medicineNames(rx), ", "), formatDate(rx.PrescriptionDate)))
		}
		builder.WriteString(fmt.Sprintf("- Recent Prescriptions: %s\n", strings.Join(summaries, "; ")))
	} else {
		builder.WriteString("- No recent prescriptions.\n")
	}

	if len(visits) > 0 {
		summaries := make([]string, 0, len(visits))
		for _, visit := range visits {
			summaries = append(summaries, fmt.Sprintf("%s - Dr. %s", formatDate(visit.AppointmentDate), visit.DoctorName))
		}
		builder.WriteString(fmt.Sprintf("- Recent Visits: %s\n", strings.Join(summaries, "; ")))
	} else {
		builder.WriteString("- No recent medical history.\n")
	}

	builder.WriteString(fmt.Sprintf("- Clinic Hours: %s\n\n", clinic.Hours))
	builder.WriteString(personaGuidelines)
	builder.WriteString(fmt.Sprintf("\n\nUser Question: %s", question))

	return builder.String()
}

func medicineNames(rx records.Prescription) []string {
	names := make([]string, 0, len(rx.Medicines))
	for _, m := range rx.Medicines {
		names = append(names, m.Name)
	}
	return names
}

// formatDate renders a YYYY-MM-DD calendar date for display; unparseable
// values pass through unchanged.
func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}
