// Package records reads patient appointment and prescription documents from
// the clinic's document store.
package records

// Appointment statuses as stored in the appointments table.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Appointment is a single appointment document. AppointmentDate is a calendar
// date string (YYYY-MM-DD), which sorts and compares lexicographically.
type Appointment struct {
	ID              string `dynamodbav:"id" json:"id"`
	PatientEmail    string `dynamodbav:"patientEmail" json:"patientEmail"`
	DoctorName      string `dynamodbav:"doctorName" json:"doctorName"`
	AppointmentDate string `dynamodbav:"appointmentDate" json:"appointmentDate"`
	AppointmentTime string `dynamodbav:"appointmentTime" json:"appointmentTime"`
	Status          string `dynamodbav:"status" json:"status"`
	Reason          string `dynamodbav:"reason,omitempty" json:"reason,omitempty"`
}

// Medicine is one line item of a prescription.
type Medicine struct {
	Name         string `dynamodbav:"name" json:"name"`
	Dosage       string `dynamodbav:"dosage,omitempty" json:"dosage,omitempty"`
	Frequency    string `dynamodbav:"frequency,omitempty" json:"frequency,omitempty"`
	Duration     string `dynamodbav:"duration,omitempty" json:"duration,omitempty"`
	Instructions string `dynamodbav:"instructions,omitempty" json:"instructions,omitempty"`
}

// Prescription is a single prescription document. CreatedAt is an RFC3339
// timestamp; PrescriptionDate is a calendar date string used as a fallback
// when CreatedAt is absent on older documents.
type Prescription struct {
	ID               string     `dynamodbav:"id" json:"id"`
	PatientEmail     string     `dynamodbav:"patientEmail" json:"patientEmail"`
	DoctorName       string     `dynamodbav:"doctorName" json:"doctorName"`
	Diagnosis        string     `dynamodbav:"diagnosis,omitempty" json:"diagnosis,omitempty"`
	PrescriptionDate string     `dynamodbav:"prescriptionDate" json:"prescriptionDate"`
	CreatedAt        string     `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
	Medicines        []Medicine `dynamodbav:"medicines,omitempty" json:"medicines,omitempty"`
}

// SortKey returns the timestamp used to order prescriptions by recency.
func (p Prescription) SortKey() string {
	if p.CreatedAt != "" {
		return p.CreatedAt
	}
	return p.PrescriptionDate
}
