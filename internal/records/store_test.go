package records

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type fakeDynamo struct {
	pages   []*dynamodb.QueryOutput
	inputs  []*dynamodb.QueryInput
	err     error
	pageIdx int
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	out := f.pages[f.pageIdx]
	f.pageIdx++
	return out, nil
}

func mustMarshalAppointment(t *testing.T, apt Appointment) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(apt)
	if err != nil {
		t.Fatalf("marshal appointment: %v", err)
	}
	return item
}

func TestStoreListAppointments(t *testing.T) {
	apt := Appointment{
		ID:              "apt-1",
		PatientEmail:    "jane@example.com",
		DoctorName:      "Silva",
		AppointmentDate: "2026-09-01",
		AppointmentTime: "10:00",
		Status:          StatusConfirmed,
	}
	client := &fakeDynamo{pages: []*dynamodb.QueryOutput{
		{Items: []map[string]types.AttributeValue{mustMarshalAppointment(t, apt)}},
	}}

	store := NewStore(client, "appointments", "prescriptions", "patientEmail-index", nil)
	got, err := store.ListAppointments(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("ListAppointments returned error: %v", err)
	}
	if len(got) != 1 || got[0] != apt {
		t.Fatalf("unexpected appointments: %#v", got)
	}

	in := client.inputs[0]
	if *in.TableName != "appointments" {
		t.Errorf("expected appointments table, got %s", *in.TableName)
	}
	if *in.IndexName != "patientEmail-index" {
		t.Errorf("expected patient email index, got %s", *in.IndexName)
	}
	if *in.KeyConditionExpression != "patientEmail = :email" {
		t.Errorf("unexpected key condition: %s", *in.KeyConditionExpression)
	}
	if in.FilterExpression != nil {
		t.Error("queries must not filter server-side")
	}
}

func TestStoreListAppointmentsPaginates(t *testing.T) {
	first := mustMarshalAppointment(t, Appointment{ID: "apt-1", PatientEmail: "jane@example.com"})
	second := mustMarshalAppointment(t, Appointment{ID: "apt-2", PatientEmail: "jane@example.com"})

	client := &fakeDynamo{pages: []*dynamodb.QueryOutput{
		{
			Items:            []map[string]types.AttributeValue{first},
			LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "apt-1"}},
		},
		{Items: []map[string]types.AttributeValue{second}},
	}}

	store := NewStore(client, "appointments", "prescriptions", "patientEmail-index", nil)
	got, err := store.ListAppointments(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("ListAppointments returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 appointments across pages, got %d", len(got))
	}
	if client.inputs[1].ExclusiveStartKey == nil {
		t.Error("second page should resume from the last evaluated key")
	}
}

func TestStoreListPrescriptionsError(t *testing.T) {
	client := &fakeDynamo{err: errors.New("throttled")}
	store := NewStore(client, "appointments", "prescriptions", "patientEmail-index", nil)

	if _, err := store.ListPrescriptions(context.Background(), "jane@example.com"); err == nil {
		t.Fatal("expected error from store")
	}
}

func TestStoreRequiresEmail(t *testing.T) {
	client := &fakeDynamo{}
	store := NewStore(client, "appointments", "prescriptions", "patientEmail-index", nil)

	if _, err := store.ListAppointments(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty patient email")
	}
	if len(client.inputs) != 0 {
		t.Error("no query should be issued for an empty email")
	}
}
