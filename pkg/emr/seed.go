package emr

import (
	"context"
	"os"
	"path/filepath"

	"github.com/clinicdesk/emr-core/pkg/common/logger"
	"gopkg.in/yaml.v3"
)

// SeedFixture is the sample data inserted on the first-ever run so the
// application opens non-empty.
type SeedFixture struct {
	Patients []SeedPatient `yaml:"patients" json:"patients"`
}

type SeedPatient struct {
	FirstName             string `yaml:"first_name" json:"first_name"`
	LastName              string `yaml:"last_name" json:"last_name"`
	DateOfBirth           string `yaml:"date_of_birth" json:"date_of_birth"`
	Gender                string `yaml:"gender" json:"gender"`
	Phone                 string `yaml:"phone" json:"phone"`
	Email                 string `yaml:"email" json:"email"`
	Address               string `yaml:"address" json:"address"`
	EmergencyContactName  string `yaml:"emergency_contact_name" json:"emergency_contact_name"`
	EmergencyContactPhone string `yaml:"emergency_contact_phone" json:"emergency_contact_phone"`
	InsuranceProvider     string `yaml:"insurance_provider" json:"insurance_provider"`
	InsurancePolicyNumber string `yaml:"insurance_policy_number" json:"insurance_policy_number"`
}

// LoadSeed reads a fixture from path, falling back to the built-in sample
// patients when path is empty or unreadable.
func LoadSeed(path string) (SeedFixture, error) {
	if path == "" {
		return DefaultSeed(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultSeed(), err
	}

	var fixture SeedFixture
	if err := yaml.Unmarshal(content, &fixture); err != nil {
		return DefaultSeed(), err
	}
	if len(fixture.Patients) == 0 {
		return DefaultSeed(), nil
	}
	return fixture, nil
}

func DefaultSeed() SeedFixture {
	return SeedFixture{Patients: []SeedPatient{
		{
			FirstName:             "John",
			LastName:              "Doe",
			DateOfBirth:           "1985-03-15",
			Gender:                "Male",
			Phone:                 "(555) 123-4567",
			Email:                 "john.doe@email.com",
			Address:               "123 Main St, Anytown, ST 12345",
			EmergencyContactName:  "Jane Doe",
			EmergencyContactPhone: "(555) 987-6543",
			InsuranceProvider:     "Blue Cross Blue Shield",
			InsurancePolicyNumber: "BC123456789",
		},
		{
			FirstName:             "Sarah",
			LastName:              "Johnson",
			DateOfBirth:           "1992-07-22",
			Gender:                "Female",
			Phone:                 "(555) 234-5678",
			Email:                 "sarah.johnson@email.com",
			Address:               "456 Oak Ave, Somewhere, ST 67890",
			EmergencyContactName:  "Mike Johnson",
			EmergencyContactPhone: "(555) 876-5432",
			InsuranceProvider:     "Aetna",
			InsurancePolicyNumber: "AE987654321",
		},
	}}
}

// Seed inserts the fixture patients when the patient table is empty. Seeding
// is best effort: a failed insert is logged and skipped, never fatal.
func (s *Service) Seed(ctx context.Context, fixture SeedFixture) error {
	count, err := s.repo.CountPatients(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	logger.Log.WithField("patients", len(fixture.Patients)).Info("Inserting sample data")
	for _, seed := range fixture.Patients {
		patient := Patient{
			FirstName:             seed.FirstName,
			LastName:              seed.LastName,
			DateOfBirth:           seed.DateOfBirth,
			Gender:                seed.Gender,
			Phone:                 seed.Phone,
			Email:                 seed.Email,
			Address:               seed.Address,
			EmergencyContactName:  seed.EmergencyContactName,
			EmergencyContactPhone: seed.EmergencyContactPhone,
			InsuranceProvider:     seed.InsuranceProvider,
			InsurancePolicyNumber: seed.InsurancePolicyNumber,
		}
		if _, err := s.CreatePatient(ctx, patient); err != nil {
			logger.Log.WithError(err).WithField("patient", seed.LastName).Warn("Failed to insert sample patient")
		}
	}
	return nil
}
