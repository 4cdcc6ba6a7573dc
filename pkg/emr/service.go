package emr

import (
	"context"
	"errors"

	"github.com/clinicdesk/emr-core/pkg/common/clock"
	"github.com/google/uuid"
)

// timestampLayout renders ISO-8601 UTC instants with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

const dateLayout = "2006-01-02"

// Service is the storage engine's operation surface. It assigns identifiers
// and timestamps, applies field defaults, and delegates persistence to the
// repository. Updates are full replaces, never merges. Storage errors pass
// through untranslated; a missing entity on a single get is a nil result,
// not an error.
type Service struct {
	repo  *Repository
	clock clock.Clock
}

func NewService(repo *Repository, clk clock.Clock) *Service {
	return &Service{repo: repo, clock: clk}
}

func (s *Service) now() string {
	return s.clock.Now().UTC().Format(timestampLayout)
}

// Patients

func (s *Service) ListPatients(ctx context.Context) ([]Patient, error) {
	return s.repo.ListPatients(ctx)
}

func (s *Service) GetPatient(ctx context.Context, id string) (*Patient, error) {
	return s.repo.GetPatient(ctx, id)
}

func (s *Service) CreatePatient(ctx context.Context, patient Patient) (*Patient, error) {
	if patient.ID == "" {
		patient.ID = uuid.New().String()
	}
	now := s.now()
	patient.CreatedAt = now
	patient.UpdatedAt = now
	if err := s.repo.InsertPatient(ctx, &patient); err != nil {
		return nil, err
	}
	return s.repo.GetPatient(ctx, patient.ID)
}

func (s *Service) UpdatePatient(ctx context.Context, id string, patient Patient) (*Patient, error) {
	patient.UpdatedAt = s.now()
	if err := s.repo.UpdatePatient(ctx, id, &patient); err != nil {
		return nil, err
	}
	return s.repo.GetPatient(ctx, id)
}

func (s *Service) DeletePatient(ctx context.Context, id string) error {
	return s.repo.DeletePatient(ctx, id)
}

func (s *Service) SearchPatients(ctx context.Context, query string) ([]Patient, error) {
	return s.repo.SearchPatients(ctx, query)
}

// Appointments

func (s *Service) ListAppointments(ctx context.Context) ([]AppointmentWithPatient, error) {
	return s.repo.ListAppointments(ctx)
}

func (s *Service) CreateAppointment(ctx context.Context, appointment Appointment) (*Appointment, error) {
	appointment.ID = uuid.New().String()
	if appointment.Duration == 0 {
		appointment.Duration = DefaultAppointmentDuration
	}
	if appointment.Status == "" {
		appointment.Status = AppointmentScheduled
	}
	now := s.now()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now
	if err := s.repo.InsertAppointment(ctx, &appointment); err != nil {
		return nil, err
	}
	return s.repo.GetAppointment(ctx, appointment.ID)
}

func (s *Service) UpdateAppointment(ctx context.Context, id string, appointment Appointment) (*Appointment, error) {
	appointment.UpdatedAt = s.now()
	if err := s.repo.UpdateAppointment(ctx, id, &appointment); err != nil {
		return nil, err
	}
	return s.repo.GetAppointment(ctx, id)
}

func (s *Service) DeleteAppointment(ctx context.Context, id string) error {
	return s.repo.DeleteAppointment(ctx, id)
}

// Medical records

func (s *Service) ListMedicalRecords(ctx context.Context, patientID string) ([]MedicalRecord, error) {
	return s.repo.ListMedicalRecords(ctx, patientID)
}

func (s *Service) CreateMedicalRecord(ctx context.Context, record MedicalRecord) (*MedicalRecord, error) {
	record.ID = uuid.New().String()
	now := s.now()
	record.CreatedAt = now
	record.UpdatedAt = now
	if err := s.repo.InsertMedicalRecord(ctx, &record); err != nil {
		return nil, err
	}
	return s.repo.GetMedicalRecord(ctx, record.ID)
}

func (s *Service) UpdateMedicalRecord(ctx context.Context, id string, record MedicalRecord) (*MedicalRecord, error) {
	record.UpdatedAt = s.now()
	if err := s.repo.UpdateMedicalRecord(ctx, id, &record); err != nil {
		return nil, err
	}
	return s.repo.GetMedicalRecord(ctx, id)
}

// Prescriptions

func (s *Service) ListPrescriptions(ctx context.Context, patientID string) ([]Prescription, error) {
	return s.repo.ListPrescriptions(ctx, patientID)
}

func (s *Service) CreatePrescription(ctx context.Context, prescription Prescription) (*Prescription, error) {
	prescription.ID = uuid.New().String()
	if prescription.Status == "" {
		prescription.Status = PrescriptionActive
	}
	now := s.now()
	prescription.CreatedAt = now
	prescription.UpdatedAt = now
	if err := s.repo.InsertPrescription(ctx, &prescription); err != nil {
		return nil, err
	}
	return s.repo.GetPrescription(ctx, prescription.ID)
}

func (s *Service) UpdatePrescription(ctx context.Context, id string, prescription Prescription) (*Prescription, error) {
	prescription.UpdatedAt = s.now()
	if err := s.repo.UpdatePrescription(ctx, id, &prescription); err != nil {
		return nil, err
	}
	return s.repo.GetPrescription(ctx, id)
}

// Dashboard

// DashboardStats computes the landing-view counters from the wall-clock date
// in UTC. The upcoming window is [today, today+7] inclusive and counts only
// appointments still in status "scheduled".
func (s *Service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	today := s.clock.Now().UTC().Format(dateLayout)
	nextWeek := s.clock.Now().UTC().AddDate(0, 0, 7).Format(dateLayout)

	stats := &DashboardStats{}
	var err error

	if stats.TotalPatients, err = s.repo.CountPatients(ctx); err != nil {
		return nil, err
	}
	if stats.TodaysAppointments, err = s.repo.CountAppointmentsOn(ctx, today); err != nil {
		return nil, err
	}
	if stats.UpcomingAppointments, err = s.repo.CountScheduledAppointmentsBetween(ctx, today, nextWeek); err != nil {
		return nil, err
	}
	if stats.ActivePrescriptions, err = s.repo.CountActivePrescriptions(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

// Export

// ExportDatabase writes a backup copy of the database file to path.
func (s *Service) ExportDatabase(ctx context.Context, path string) error {
	if path == "" {
		return errors.New("export path is required")
	}
	return s.repo.ExportTo(ctx, path)
}
