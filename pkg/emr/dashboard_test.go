package emr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixed clock date in these tests is 2024-05-15 UTC.

func TestDashboardStatsEmptyStore(t *testing.T) {
	svc, _, _ := newTestService(t)

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalPatients)
	assert.Equal(t, int64(0), stats.TodaysAppointments)
	assert.Equal(t, int64(0), stats.UpcomingAppointments)
	assert.Equal(t, int64(0), stats.ActivePrescriptions)
}

func TestDashboardScenario(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx, DefaultSeed()))

	patients, err := svc.ListPatients(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 2)
	assert.Equal(t, "Doe", patients[0].LastName)
	assert.Equal(t, "Johnson", patients[1].LastName)

	alice, err := svc.CreatePatient(ctx, samplePatient())
	require.NoError(t, err)

	patients, err = svc.ListPatients(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 3)
	assert.Equal(t, "Young", patients[2].LastName)

	appointment, err := svc.CreateAppointment(ctx, Appointment{
		PatientID:       alice.ID,
		AppointmentDate: "2024-05-15",
		AppointmentTime: "11:00",
	})
	require.NoError(t, err)

	stats, err := svc.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalPatients)
	assert.Equal(t, int64(1), stats.TodaysAppointments)
	assert.Equal(t, int64(1), stats.UpcomingAppointments)

	completed := *appointment
	completed.Status = AppointmentCompleted
	updated, err := svc.UpdateAppointment(ctx, appointment.ID, completed)
	require.NoError(t, err)
	assert.Equal(t, AppointmentCompleted, updated.Status)

	stats, err = svc.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TodaysAppointments)
	assert.Equal(t, int64(0), stats.UpcomingAppointments)
}

func TestDashboardUpcomingWindowEdges(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	patient, err := svc.CreatePatient(ctx, samplePatient())
	require.NoError(t, err)

	mk := func(date, status string) {
		t.Helper()
		_, err := svc.CreateAppointment(ctx, Appointment{
			PatientID:       patient.ID,
			AppointmentDate: date,
			AppointmentTime: "09:00",
			Status:          status,
		})
		require.NoError(t, err)
	}

	mk("2024-05-14", AppointmentScheduled) // yesterday, outside window
	mk("2024-05-15", AppointmentScheduled) // today, inclusive
	mk("2024-05-22", AppointmentScheduled) // today+7, inclusive
	mk("2024-05-23", AppointmentScheduled) // today+8, outside window
	mk("2024-05-18", AppointmentConfirmed) // in window but confirmed, excluded

	stats, err := svc.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.UpcomingAppointments)
	assert.Equal(t, int64(1), stats.TodaysAppointments)
}

func TestDashboardActivePrescriptions(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	patient, err := svc.CreatePatient(ctx, samplePatient())
	require.NoError(t, err)

	active, err := svc.CreatePrescription(ctx, Prescription{
		PatientID:      patient.ID,
		MedicationName: "Amoxicillin",
		Dosage:         "500mg",
		Frequency:      "3x daily",
		PrescribedDate: "2024-05-01",
	})
	require.NoError(t, err)

	_, err = svc.CreatePrescription(ctx, Prescription{
		PatientID:      patient.ID,
		MedicationName: "Ibuprofen",
		Dosage:         "200mg",
		Frequency:      "as needed",
		PrescribedDate: "2024-05-02",
		Status:         PrescriptionExpired,
	})
	require.NoError(t, err)

	stats, err := svc.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ActivePrescriptions)

	discontinued := *active
	discontinued.Status = PrescriptionDiscontinued
	_, err = svc.UpdatePrescription(ctx, active.ID, discontinued)
	require.NoError(t, err)

	stats, err = svc.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.ActivePrescriptions)
}
