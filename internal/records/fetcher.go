package records

import (
	"context"
	"sort"
	"time"

	"github.com/Thakshaka/clinic-management-system/pkg/logging"
)

const defaultRecentLimit = 3

// Lister is the slice of the store the fetcher needs.
type Lister interface {
	ListAppointments(ctx context.Context, patientEmail string) ([]Appointment, error)
	ListPrescriptions(ctx context.Context, patientEmail string) ([]Prescription, error)
}

// Fetcher retrieves the minimal patient context needed to ground a reply.
// Every read degrades to an empty result on store failure; callers phrase
// that as "no data found", never as an error.
type Fetcher struct {
	store  Lister
	logger *logging.Logger
	now    func() time.Time
}

// NewFetcher creates a fetcher over the given store.
func NewFetcher(store Lister, logger *logging.Logger) *Fetcher {
	if store == nil {
		panic("records: store cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Fetcher{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// NextAppointment returns the patient's earliest appointment dated today or
// later that has not been cancelled, or nil when there is none.
func (f *Fetcher) NextAppointment(ctx context.Context, patientEmail string) *Appointment {
	appointments, err := f.store.ListAppointments(ctx, patientEmail)
	if err != nil {
		f.logger.Warn("failed to fetch appointments", "patient", patientEmail, "error", err)
		return nil
	}

	today := f.now().Format("2006-01-02")
	var upcoming []Appointment
	for _, apt := range appointments {
		if apt.AppointmentDate >= today && apt.Status != StatusCancelled {
			upcoming = append(upcoming, apt)
		}
	}
	if len(upcoming) == 0 {
		return nil
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].AppointmentDate < upcoming[j].AppointmentDate
	})
	return &upcoming[0]
}

// RecentPrescriptions returns up to limit prescriptions, most recent first.
// Recency is createdAt, falling back to prescriptionDate on older documents.
func (f *Fetcher) RecentPrescriptions(ctx context.Context, patientEmail string, limit int) []Prescription {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	prescriptions, err := f.store.ListPrescriptions(ctx, patientEmail)
	if err != nil {
		f.logger.Warn("failed to fetch prescriptions", "patient", patientEmail, "error", err)
		return nil
	}

	sort.Slice(prescriptions, func(i, j int) bool {
		return prescriptions[i].SortKey() > prescriptions[j].SortKey()
	})
	if len(prescriptions) > limit {
		prescriptions = prescriptions[:limit]
	}
	return prescriptions
}

// RecentVisits returns up to limit completed appointments, most recent first.
func (f *Fetcher) RecentVisits(ctx context.Context, patientEmail string, limit int) []Appointment {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	appointments, err := f.store.ListAppointments(ctx, patientEmail)
	if err != nil {
		f.logger.Warn("failed to fetch visits", "patient", patientEmail, "error", err)
		return nil
	}

	var visits []Appointment
	for _, apt := range appointments {
		if apt.Status == StatusCompleted {
			visits = append(visits, apt)
		}
	}

	sort.Slice(visits, func(i, j int) bool {
		return visits[i].AppointmentDate > visits[j].AppointmentDate
	})
	if len(visits) > limit {
		visits = visits[:limit]
	}
	return visits
}
