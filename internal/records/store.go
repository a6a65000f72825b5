package records

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Thakshaka/clinic-management-system/pkg/logging"
)

type dynamoAPI interface {
	Query(context.Context, *dynamodb.QueryInput, ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Store reads appointment and prescription documents from DynamoDB.
//
// Queries only apply an equality predicate on patientEmail (via a GSI); all
// status and date filtering happens client-side so the tables need no
// compound indexes.
type Store struct {
	client             dynamoAPI
	appointmentsTable  string
	prescriptionsTable string
	emailIndex         string
	logger             *logging.Logger
}

// NewStore builds a store backed by the provided DynamoDB client.
func NewStore(client dynamoAPI, appointmentsTable, prescriptionsTable, emailIndex string, logger *logging.Logger) *Store {
	if client == nil {
		panic("records: dynamodb client cannot be nil")
	}
	if appointmentsTable == "" || prescriptionsTable == "" {
		panic("records: table names cannot be empty")
	}
	if emailIndex == "" {
		panic("records: patient email index cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		client:             client,
		appointmentsTable:  appointmentsTable,
		prescriptionsTable: prescriptionsTable,
		emailIndex:         emailIndex,
		logger:             logger,
	}
}

// ListAppointments returns every appointment document for the patient.
func (s *Store) ListAppointments(ctx context.Context, patientEmail string) ([]Appointment, error) {
	items, err := s.queryByEmail(ctx, s.appointmentsTable, patientEmail)
	if err != nil {
		return nil, fmt.Errorf("records: failed to query appointments: %w", err)
	}

	var appointments []Appointment
	if err := attributevalue.UnmarshalListOfMaps(items, &appointments); err != nil {
		return nil, fmt.Errorf("records: failed to decode appointments: %w", err)
	}
	return appointments, nil
}

// ListPrescriptions returns every prescription document for the patient.
func (s *Store) ListPrescriptions(ctx context.Context, patientEmail string) ([]Prescription, error) {
	items, err := s.queryByEmail(ctx, s.prescriptionsTable, patientEmail)
	if err != nil {
		return nil, fmt.Errorf("records: failed to query prescriptions: %w", err)
	}

	var prescriptions []Prescription
	if err := attributevalue.UnmarshalListOfMaps(items, &prescriptions); err != nil {
		return nil, fmt.Errorf("records: failed to decode prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (s *Store) queryByEmail(ctx context.Context, table, patientEmail string) ([]map[string]types.AttributeValue, error) {
	if patientEmail == "" {
		return nil, errors.New("patient email required")
	}

	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(table),
			IndexName:              aws.String(s.emailIndex),
			KeyConditionExpression: aws.String("patientEmail = :email"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":email": &types.AttributeValueMemberS{Value: patientEmail},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, out.Items...)
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return items, nil
}
