package emr

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// schemaDDL creates the four tables on first run. Statements are idempotent
// and never alter columns of an existing table. The FOREIGN KEY clauses
// document the relationships but are not enforced: references are soft, and
// deletes never cascade.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS patients (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		date_of_birth TEXT NOT NULL,
		gender TEXT NOT NULL,
		phone TEXT,
		email TEXT,
		address TEXT,
		emergency_contact_name TEXT,
		emergency_contact_phone TEXT,
		insurance_provider TEXT,
		insurance_policy_number TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id TEXT PRIMARY KEY,
		patient_id TEXT NOT NULL,
		appointment_date TEXT NOT NULL,
		appointment_time TEXT NOT NULL,
		duration INTEGER DEFAULT 30,
		status TEXT DEFAULT 'scheduled',
		reason TEXT,
		notes TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (patient_id) REFERENCES patients (id)
	)`,
	`CREATE TABLE IF NOT EXISTS medical_records (
		id TEXT PRIMARY KEY,
		patient_id TEXT NOT NULL,
		visit_date TEXT NOT NULL,
		chief_complaint TEXT,
		history_of_present_illness TEXT,
		physical_examination TEXT,
		assessment TEXT,
		plan TEXT,
		vital_signs TEXT,
		height REAL,
		weight REAL,
		blood_pressure TEXT,
		temperature REAL,
		heart_rate INTEGER,
		respiratory_rate INTEGER,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (patient_id) REFERENCES patients (id)
	)`,
	`CREATE TABLE IF NOT EXISTS prescriptions (
		id TEXT PRIMARY KEY,
		patient_id TEXT NOT NULL,
		medical_record_id TEXT,
		medication_name TEXT NOT NULL,
		dosage TEXT NOT NULL,
		frequency TEXT NOT NULL,
		duration TEXT,
		quantity INTEGER,
		refills INTEGER DEFAULT 0,
		instructions TEXT,
		prescribed_date TEXT NOT NULL,
		status TEXT DEFAULT 'active',
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (patient_id) REFERENCES patients (id),
		FOREIGN KEY (medical_record_id) REFERENCES medical_records (id)
	)`,
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates any missing tables. It never migrates existing ones.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	for _, ddl := range schemaDDL {
		if err := r.db.WithContext(ctx).Exec(ddl).Error; err != nil {
			return err
		}
	}
	return nil
}

// Patients

func (r *Repository) ListPatients(ctx context.Context) ([]Patient, error) {
	var patients []Patient
	err := r.db.WithContext(ctx).
		Order("last_name, first_name").
		Find(&patients).Error
	return patients, err
}

func (r *Repository) GetPatient(ctx context.Context, id string) (*Patient, error) {
	var patient Patient
	err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *Repository) InsertPatient(ctx context.Context, patient *Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

// UpdatePatient rewrites every mutable column. id and created_at are never
// touched.
func (r *Repository) UpdatePatient(ctx context.Context, id string, patient *Patient) error {
	return r.db.WithContext(ctx).Model(&Patient{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"first_name":              patient.FirstName,
			"last_name":               patient.LastName,
			"date_of_birth":           patient.DateOfBirth,
			"gender":                  patient.Gender,
			"phone":                   patient.Phone,
			"email":                   patient.Email,
			"address":                 patient.Address,
			"emergency_contact_name":  patient.EmergencyContactName,
			"emergency_contact_phone": patient.EmergencyContactPhone,
			"insurance_provider":      patient.InsuranceProvider,
			"insurance_policy_number": patient.InsurancePolicyNumber,
			"updated_at":              patient.UpdatedAt,
		}).Error
}

// DeletePatient does not check existence and does not cascade to dependent
// rows.
func (r *Repository) DeletePatient(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Patient{}).Error
}

func (r *Repository) SearchPatients(ctx context.Context, query string) ([]Patient, error) {
	term := "%" + query + "%"
	var patients []Patient
	err := r.db.WithContext(ctx).
		Where("first_name LIKE ? OR last_name LIKE ? OR phone LIKE ? OR email LIKE ?",
			term, term, term, term).
		Order("last_name, first_name").
		Find(&patients).Error
	return patients, err
}

func (r *Repository) CountPatients(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Patient{}).Count(&count).Error
	return count, err
}

// Appointments

// ListAppointments joins the owning patient's name onto each row. Dangling
// appointments (patient deleted) drop out of the listing but remain stored.
func (r *Repository) ListAppointments(ctx context.Context) ([]AppointmentWithPatient, error) {
	var rows []AppointmentWithPatient
	err := r.db.WithContext(ctx).Model(&Appointment{}).
		Select("appointments.*, patients.first_name, patients.last_name").
		Joins("JOIN patients ON appointments.patient_id = patients.id").
		Order("appointments.appointment_date, appointments.appointment_time").
		Scan(&rows).Error
	return rows, err
}

func (r *Repository) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	var appointment Appointment
	err := r.db.WithContext(ctx).First(&appointment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *Repository) InsertAppointment(ctx context.Context, appointment *Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *Repository) UpdateAppointment(ctx context.Context, id string, appointment *Appointment) error {
	return r.db.WithContext(ctx).Model(&Appointment{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"patient_id":       appointment.PatientID,
			"appointment_date": appointment.AppointmentDate,
			"appointment_time": appointment.AppointmentTime,
			"duration":         appointment.Duration,
			"status":           appointment.Status,
			"reason":           appointment.Reason,
			"notes":            appointment.Notes,
			"updated_at":       appointment.UpdatedAt,
		}).Error
}

func (r *Repository) DeleteAppointment(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Appointment{}).Error
}

func (r *Repository) CountAppointmentsOn(ctx context.Context, date string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Appointment{}).
		Where("appointment_date = ?", date).
		Count(&count).Error
	return count, err
}

// CountScheduledAppointmentsBetween counts rows in the inclusive date window
// with status "scheduled". Confirmed appointments in the window are excluded.
func (r *Repository) CountScheduledAppointmentsBetween(ctx context.Context, from, to string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Appointment{}).
		Where("appointment_date BETWEEN ? AND ? AND status = ?", from, to, AppointmentScheduled).
		Count(&count).Error
	return count, err
}

// Medical records

func (r *Repository) ListMedicalRecords(ctx context.Context, patientID string) ([]MedicalRecord, error) {
	var records []MedicalRecord
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("visit_date DESC").
		Find(&records).Error
	return records, err
}

func (r *Repository) GetMedicalRecord(ctx context.Context, id string) (*MedicalRecord, error) {
	var record MedicalRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *Repository) InsertMedicalRecord(ctx context.Context, record *MedicalRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// UpdateMedicalRecord rewrites the visit fields; patient_id is immutable.
func (r *Repository) UpdateMedicalRecord(ctx context.Context, id string, record *MedicalRecord) error {
	return r.db.WithContext(ctx).Model(&MedicalRecord{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"visit_date":                 record.VisitDate,
			"chief_complaint":            record.ChiefComplaint,
			"history_of_present_illness": record.HistoryOfPresentIllness,
			"physical_examination":       record.PhysicalExamination,
			"assessment":                 record.Assessment,
			"plan":                       record.Plan,
			"vital_signs":                record.VitalSigns,
			"height":                     record.Height,
			"weight":                     record.Weight,
			"blood_pressure":             record.BloodPressure,
			"temperature":                record.Temperature,
			"heart_rate":                 record.HeartRate,
			"respiratory_rate":           record.RespiratoryRate,
			"updated_at":                 record.UpdatedAt,
		}).Error
}

// Prescriptions

func (r *Repository) ListPrescriptions(ctx context.Context, patientID string) ([]Prescription, error) {
	var prescriptions []Prescription
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("prescribed_date DESC").
		Find(&prescriptions).Error
	return prescriptions, err
}

func (r *Repository) GetPrescription(ctx context.Context, id string) (*Prescription, error) {
	var prescription Prescription
	err := r.db.WithContext(ctx).First(&prescription, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prescription, nil
}

func (r *Repository) InsertPrescription(ctx context.Context, prescription *Prescription) error {
	return r.db.WithContext(ctx).Create(prescription).Error
}

// UpdatePrescription rewrites the order fields; patient_id, medical_record_id,
// and prescribed_date are immutable.
func (r *Repository) UpdatePrescription(ctx context.Context, id string, prescription *Prescription) error {
	return r.db.WithContext(ctx).Model(&Prescription{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"medication_name": prescription.MedicationName,
			"dosage":          prescription.Dosage,
			"frequency":       prescription.Frequency,
			"duration":        prescription.Duration,
			"quantity":        prescription.Quantity,
			"refills":         prescription.Refills,
			"instructions":    prescription.Instructions,
			"status":          prescription.Status,
			"updated_at":      prescription.UpdatedAt,
		}).Error
}

func (r *Repository) CountActivePrescriptions(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Prescription{}).
		Where("status = ?", PrescriptionActive).
		Count(&count).Error
	return count, err
}

// ExportTo writes a consistent copy of the database to path using SQLite's
// online backup statement.
func (r *Repository) ExportTo(ctx context.Context, path string) error {
	return r.db.WithContext(ctx).Exec("VACUUM INTO ?", path).Error
}
