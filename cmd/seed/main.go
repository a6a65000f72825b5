// Seeds a local DynamoDB instance with sample appointments and prescriptions
// so the assistant has records to ground replies during development.
//
// Usage: go run ./cmd/seed [patient-email]
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/Thakshaka/clinic-management-system/cmd/mainconfig"
	appconfig "github.com/Thakshaka/clinic-management-system/internal/config"
	"github.com/Thakshaka/clinic-management-system/internal/records"
)

func main() {
	_ = godotenv.Load()

	email := "jane@example.com"
	if len(os.Args) > 1 {
		email = os.Args[1]
	}

	cfg := appconfig.Load()
	ctx := context.Background()

	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}
	client := dynamodb.NewFromConfig(awsCfg)

	now := time.Now()
	day := func(offset int) string { return now.AddDate(0, 0, offset).Format("2006-01-02") }

	appointments := []records.Appointment{
		{ID: uuid.NewString(), PatientEmail: email, DoctorName: "Dr. Silva", AppointmentDate: day(3), AppointmentTime: "10:00", Status: records.StatusConfirmed, Reason: "Follow-up consultation"},
		{ID: uuid.NewString(), PatientEmail: email, DoctorName: "Dr. Perera", AppointmentDate: day(14), AppointmentTime: "14:30", Status: records.StatusPending, Reason: "Annual checkup"},
		{ID: uuid.NewString(), PatientEmail: email, DoctorName: "Dr. Silva", AppointmentDate: day(-30), AppointmentTime: "09:00", Status: records.StatusCompleted, Reason: "Fever and cough"},
		{ID: uuid.NewString(), PatientEmail: email, DoctorName: "Dr. Fernando", AppointmentDate: day(-90), AppointmentTime: "11:15", Status: records.StatusCompleted, Reason: "Blood pressure review"},
	}

	prescriptions := []records.Prescription{
		{
			ID:               uuid.NewString(),
			PatientEmail:     email,
			DoctorName:       "Dr. Silva",
			PrescriptionDate: day(-30),
			CreatedAt:        now.AddDate(0, 0, -30).Format(time.RFC3339),
			Medicines: []records.Medicine{
				{Name: "Amoxicillin", Dosage: "500mg", Frequency: "3x daily", Duration: "7 days"},
				{Name: "Paracetamol", Dosage: "500mg", Frequency: "as needed", Duration: "5 days"},
			},
		},
		{
			ID:               uuid.NewString(),
			PatientEmail:     email,
			DoctorName:       "Dr. Fernando",
			PrescriptionDate: day(-90),
			CreatedAt:        now.AddDate(0, 0, -90).Format(time.RFC3339),
			Medicines: []records.Medicine{
				{Name: "Losartan", Dosage: "50mg", Frequency: "1x daily", Duration: "90 days"},
			},
		},
	}

	for _, apt := range appointments {
		item, err := attributevalue.MarshalMap(apt)
		if err != nil {
			log.Fatalf("marshal appointment: %v", err)
		}
		if _, err := client.PutItem(ctx, &dynamodb.PutItemInput{TableName: &cfg.AppointmentsTable, Item: item}); err != nil {
			log.Fatalf("put appointment: %v", err)
		}
	}

	for _, rx := range prescriptions {
		item, err := attributevalue.MarshalMap(rx)
		if err != nil {
			log.Fatalf("marshal prescription: %v", err)
		}
		if _, err := client.PutItem(ctx, &dynamodb.PutItemInput{TableName: &cfg.PrescriptionsTable, Item: item}); err != nil {
			log.Fatalf("put prescription: %v", err)
		}
	}

	log.Printf("seeded %d appointments and %d prescriptions for %s", len(appointments), len(prescriptions), email)
}
