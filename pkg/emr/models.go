package emr

// Appointment statuses. Transitions are plain field writes; there is no
// guarded state machine.
const (
	AppointmentScheduled = "scheduled"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no-show"
)

// Prescription statuses.
const (
	PrescriptionActive       = "active"
	PrescriptionCompleted    = "completed"
	PrescriptionDiscontinued = "discontinued"
	PrescriptionExpired      = "expired"
)

const DefaultAppointmentDuration = 30

// Patient is the identity and demographic record. First name, last name,
// date of birth, and gender are mandatory; everything else is optional.
// Timestamps are ISO-8601 UTC text, assigned by the service layer.
type Patient struct {
	ID                    string `gorm:"primaryKey;column:id" json:"id"`
	FirstName             string `gorm:"column:first_name;not null" json:"first_name"`
	LastName              string `gorm:"column:last_name;not null" json:"last_name"`
	DateOfBirth           string `gorm:"column:date_of_birth;not null" json:"date_of_birth"`
	Gender                string `gorm:"column:gender;not null" json:"gender"`
	Phone                 string `gorm:"column:phone" json:"phone"`
	Email                 string `gorm:"column:email" json:"email"`
	Address               string `gorm:"column:address" json:"address"`
	EmergencyContactName  string `gorm:"column:emergency_contact_name" json:"emergency_contact_name"`
	EmergencyContactPhone string `gorm:"column:emergency_contact_phone" json:"emergency_contact_phone"`
	InsuranceProvider     string `gorm:"column:insurance_provider" json:"insurance_provider"`
	InsurancePolicyNumber string `gorm:"column:insurance_policy_number" json:"insurance_policy_number"`
	CreatedAt             string `gorm:"column:created_at" json:"created_at"`
	UpdatedAt             string `gorm:"column:updated_at" json:"updated_at"`
}

func (Patient) TableName() string { return "patients" }

// Appointment references its Patient by id only. The reference is soft:
// deleting the patient leaves the appointment row behind, and readers must
// tolerate the dangling id.
type Appointment struct {
	ID              string `gorm:"primaryKey;column:id" json:"id"`
	PatientID       string `gorm:"column:patient_id;not null" json:"patient_id"`
	AppointmentDate string `gorm:"column:appointment_date;not null" json:"appointment_date"`
	AppointmentTime string `gorm:"column:appointment_time;not null" json:"appointment_time"`
	Duration        int    `gorm:"column:duration" json:"duration"`
	Status          string `gorm:"column:status" json:"status"`
	Reason          string `gorm:"column:reason" json:"reason"`
	Notes           string `gorm:"column:notes" json:"notes"`
	CreatedAt       string `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       string `gorm:"column:updated_at" json:"updated_at"`
}

func (Appointment) TableName() string { return "appointments" }

// AppointmentWithPatient is the listing row: the appointment joined with the
// owning patient's name.
type AppointmentWithPatient struct {
	Appointment `gorm:"embedded"`
	FirstName   string `gorm:"column:first_name" json:"first_name"`
	LastName    string `gorm:"column:last_name" json:"last_name"`
}

// MedicalRecord is a single visit note. Vitals are optional; pointer fields
// map to nullable columns.
type MedicalRecord struct {
	ID                      string   `gorm:"primaryKey;column:id" json:"id"`
	PatientID               string   `gorm:"column:patient_id;not null" json:"patient_id"`
	VisitDate               string   `gorm:"column:visit_date;not null" json:"visit_date"`
	ChiefComplaint          string   `gorm:"column:chief_complaint" json:"chief_complaint"`
	HistoryOfPresentIllness string   `gorm:"column:history_of_present_illness" json:"history_of_present_illness"`
	PhysicalExamination     string   `gorm:"column:physical_examination" json:"physical_examination"`
	Assessment              string   `gorm:"column:assessment" json:"assessment"`
	Plan                    string   `gorm:"column:plan" json:"plan"`
	VitalSigns              string   `gorm:"column:vital_signs" json:"vital_signs"`
	Height                  *float64 `gorm:"column:height" json:"height"`
	Weight                  *float64 `gorm:"column:weight" json:"weight"`
	BloodPressure           string   `gorm:"column:blood_pressure" json:"blood_pressure"`
	Temperature             *float64 `gorm:"column:temperature" json:"temperature"`
	HeartRate               *int     `gorm:"column:heart_rate" json:"heart_rate"`
	RespiratoryRate         *int     `gorm:"column:respiratory_rate" json:"respiratory_rate"`
	CreatedAt               string   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt               string   `gorm:"column:updated_at" json:"updated_at"`
}

func (MedicalRecord) TableName() string { return "medical_records" }

// Prescription is a medication order, optionally linked to the visit it was
// written during. MedicalRecordID is a nullable soft reference.
type Prescription struct {
	ID              string  `gorm:"primaryKey;column:id" json:"id"`
	PatientID       string  `gorm:"column:patient_id;not null" json:"patient_id"`
	MedicalRecordID *string `gorm:"column:medical_record_id" json:"medical_record_id"`
	MedicationName  string  `gorm:"column:medication_name;not null" json:"medication_name"`
	Dosage          string  `gorm:"column:dosage;not null" json:"dosage"`
	Frequency       string  `gorm:"column:frequency;not null" json:"frequency"`
	Duration        string  `gorm:"column:duration" json:"duration"`
	Quantity        *int    `gorm:"column:quantity" json:"quantity"`
	Refills         int     `gorm:"column:refills" json:"refills"`
	Instructions    string  `gorm:"column:instructions" json:"instructions"`
	PrescribedDate  string  `gorm:"column:prescribed_date;not null" json:"prescribed_date"`
	Status          string  `gorm:"column:status" json:"status"`
	CreatedAt       string  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       string  `gorm:"column:updated_at" json:"updated_at"`
}

func (Prescription) TableName() string { return "prescriptions" }

// DashboardStats is the derived read-only aggregate shown on the landing view.
type DashboardStats struct {
	TotalPatients        int64 `json:"totalPatients"`
	TodaysAppointments   int64 `json:"todaysAppointments"`
	UpcomingAppointments int64 `json:"upcomingAppointments"`
	ActivePrescriptions  int64 `json:"activePrescriptions"`
}
