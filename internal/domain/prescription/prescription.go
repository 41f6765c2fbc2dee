package prescription

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EnrichmentStatus tracks the outcome of the post-persist enrichment call.
// The prescription row itself is durable regardless of this status.
type EnrichmentStatus string

const (
	EnrichmentPending EnrichmentStatus = "pending"
	EnrichmentDone    EnrichmentStatus = "done"
	EnrichmentError   EnrichmentStatus = "error"
)

// Medicine is a single raw entry as written by the doctor.
type Medicine struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Duration  string `json:"duration,omitempty"`
}

type Prescription struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`
	DoctorID  uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index"`

	// Raw doctor input
	RawMedicines []Medicine `gorm:"column:raw_medicines;serializer:json;not null"`
	Diagnosis    string     `gorm:"column:diagnosis;type:text"`
	Notes        string     `gorm:"column:notes;type:text"`

	// Enrichment result. LLMOutput holds the collaborator's structured
	// summary on success or an {error} payload on failure.
	LLMOutput  datatypes.JSON   `gorm:"column:llm_output;type:jsonb"`
	LLMVersion string           `gorm:"column:llm_version;type:varchar(100)"`
	LLMStatus  EnrichmentStatus `gorm:"column:llm_status;type:varchar(20);not null;default:'pending';index"`
}

func (Prescription) TableName() string {
	return "clinical.prescriptions"
}

type CreatePrescriptionCommand struct {
	PatientID    uuid.UUID
	DoctorID     uuid.UUID
	RawMedicines []Medicine
	Diagnosis    string
	Notes        string
}
