package emr

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*mux.Router, *Service) {
	t.Helper()
	svc, _, _ := newTestService(t)
	router := mux.NewRouter()
	NewHandler(svc).Register(router)
	return router, svc
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestBridgePatientLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/patients", samplePatient())
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Patient
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Young", created.LastName)

	rec = doJSON(t, router, http.MethodGet, "/patients/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched Patient
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, created, fetched)

	replacement := samplePatient()
	replacement.FirstName = "Alicia"
	rec = doJSON(t, router, http.MethodPut, "/patients/"+created.ID, replacement)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated Patient
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Alicia", updated.FirstName)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	rec = doJSON(t, router, http.MethodGet, "/patients", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []Patient
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)

	rec = doJSON(t, router, http.MethodDelete, "/patients/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/patients/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestBridgeSearchPatients(t *testing.T) {
	router, svc := newTestRouter(t)
	require.NoError(t, svc.Seed(context.Background(), DefaultSeed()))

	rec := doJSON(t, router, http.MethodGet, "/patients/search?q=sarah", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var matches []Patient
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "Johnson", matches[0].LastName)

	rec = doJSON(t, router, http.MethodGet, "/patients/search?q=nobody", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	matches = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matches))
	assert.Empty(t, matches)
}

func TestBridgeAppointmentsAndRecords(t *testing.T) {
	router, svc := newTestRouter(t)
	ctx := context.Background()

	patient, err := svc.CreatePatient(ctx, samplePatient())
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPost, "/appointments", Appointment{
		PatientID:       patient.ID,
		AppointmentDate: "2024-05-15",
		AppointmentTime: "11:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var appointment Appointment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &appointment))
	assert.Equal(t, AppointmentScheduled, appointment.Status)

	rec = doJSON(t, router, http.MethodGet, "/appointments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var joined []AppointmentWithPatient
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &joined))
	require.Len(t, joined, 1)
	assert.Equal(t, "Young", joined[0].LastName)

	rec = doJSON(t, router, http.MethodPost, "/medical-records", MedicalRecord{
		PatientID:      patient.ID,
		VisitDate:      "2024-05-15",
		ChiefComplaint: "fever",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/patients/"+patient.ID+"/medical-records", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var records []MedicalRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "fever", records[0].ChiefComplaint)

	rec = doJSON(t, router, http.MethodPost, "/prescriptions", Prescription{
		PatientID:      patient.ID,
		MedicationName: "Paracetamol",
		Dosage:         "500mg",
		Frequency:      "2x daily",
		PrescribedDate: "2024-05-15",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/patients/"+patient.ID+"/prescriptions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var prescriptions []Prescription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prescriptions))
	require.Len(t, prescriptions, 1)

	rec = doJSON(t, router, http.MethodGet, "/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.TotalPatients)
	assert.Equal(t, int64(1), stats.TodaysAppointments)
	assert.Equal(t, int64(1), stats.ActivePrescriptions)
}

func TestBridgeMalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestBridgePropagatesStorageError(t *testing.T) {
	svc, repo, _ := newTestService(t)
	router := mux.NewRouter()
	NewHandler(svc).Register(router)

	// Closing the underlying handle makes every statement fail.
	sqlDB, err := repo.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	rec := doJSON(t, router, http.MethodGet, "/patients", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.NotEmpty(t, payload["error"])
}
