package emr

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// Handler exposes each storage operation as a named route. It is a pure
// pass-through registration table: no validation, no aggregation, and storage
// errors reach the caller with their original message. Request logging lives
// in middleware, not here.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/patients", h.handleGetPatients).Methods(http.MethodGet)
	r.HandleFunc("/patients/search", h.handleSearchPatients).Methods(http.MethodGet)
	r.HandleFunc("/patients", h.handleCreatePatient).Methods(http.MethodPost)
	r.HandleFunc("/patients/{id}", h.handleGetPatient).Methods(http.MethodGet)
	r.HandleFunc("/patients/{id}", h.handleUpdatePatient).Methods(http.MethodPut)
	r.HandleFunc("/patients/{id}", h.handleDeletePatient).Methods(http.MethodDelete)
	r.HandleFunc("/patients/{id}/medical-records", h.handleGetMedicalRecords).Methods(http.MethodGet)
	r.HandleFunc("/patients/{id}/prescriptions", h.handleGetPrescriptions).Methods(http.MethodGet)

	r.HandleFunc("/appointments", h.handleGetAppointments).Methods(http.MethodGet)
	r.HandleFunc("/appointments", h.handleCreateAppointment).Methods(http.MethodPost)
	r.HandleFunc("/appointments/{id}", h.handleUpdateAppointment).Methods(http.MethodPut)
	r.HandleFunc("/appointments/{id}", h.handleDeleteAppointment).Methods(http.MethodDelete)

	r.HandleFunc("/medical-records", h.handleCreateMedicalRecord).Methods(http.MethodPost)
	r.HandleFunc("/medical-records/{id}", h.handleUpdateMedicalRecord).Methods(http.MethodPut)

	r.HandleFunc("/prescriptions", h.handleCreatePrescription).Methods(http.MethodPost)
	r.HandleFunc("/prescriptions/{id}", h.handleUpdatePrescription).Methods(http.MethodPut)

	r.HandleFunc("/dashboard/stats", h.handleDashboardStats).Methods(http.MethodGet)

	r.HandleFunc("/export", h.handleExport).Methods(http.MethodPost)
}

func (h *Handler) handleGetPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.service.ListPatients(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

func (h *Handler) handleGetPatient(w http.ResponseWriter, r *http.Request) {
	patient, err := h.service.GetPatient(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if patient == nil {
		writeJSON(w, http.StatusNotFound, nil)
		return
	}
	writeJSON(w, http.StatusOK, patient)
}

func (h *Handler) handleCreatePatient(w http.ResponseWriter, r *http.Request) {
	var fields Patient
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	patient, err := h.service.CreatePatient(r.Context(), fields)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, patient)
}

func (h *Handler) handleUpdatePatient(w http.ResponseWriter, r *http.Request) {
	var fields Patient
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	patient, err := h.service.UpdatePatient(r.Context(), mux.Vars(r)["id"], fields)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, patient)
}

func (h *Handler) handleDeletePatient(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePatient(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) handleSearchPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.service.SearchPatients(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

func (h *Handler) handleGetAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.ListAppointments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (h *Handler) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	var fields Appointment
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	appointment, err := h.service.CreateAppointment(r.Context(), fields)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, appointment)
}

func (h *Handler) handleUpdateAppointment(w http.ResponseWriter, r *http.Request) {
	var fields Appointment
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	appointment, err := h.service.UpdateAppointment(r.Context(), mux.Vars(r)["id"], fields)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, appointment)
}

func (h *Handler) handleDeleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAppointment(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) handleGetMedicalRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListMedicalRecords(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) handleCreateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	var fields MedicalRecord
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	record, err := h.service.CreateMedicalRecord(r.Context(), fields)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *Handler) handleUpdateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	var fields MedicalRecord
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	record, err := h.service.UpdateMedicalRecord(r.Context(), mux.Vars(r)["id"], fields)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *Handler) handleGetPrescriptions(w http.ResponseWriter, r *http.Request) {
	prescriptions, err := h.service.ListPrescriptions(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, prescriptions)
}

func (h *Handler) handleCreatePrescription(w http.ResponseWriter, r *http.Request) {
	var fields Prescription
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	prescription, err := h.service.CreatePrescription(r.Context(), fields)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, prescription)
}

func (h *Handler) handleUpdatePrescription(w http.ResponseWriter, r *http.Request) {
	var fields Prescription
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	prescription, err := h.service.UpdatePrescription(r.Context(), mux.Vars(r)["id"], fields)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, prescription)
}

func (h *Handler) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DashboardStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.service.ExportDatabase(r.Context(), req.Path); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "path": req.Path})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
