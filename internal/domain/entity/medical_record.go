package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MedicalRecord documents the outcome of a single appointment.
// At most one record exists per appointment.
type MedicalRecord struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"appointment_id"`
	PatientID       uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	CreatedByID     uuid.UUID `gorm:"type:uuid;not null" json:"created_by_id"`
	Diagnosis       string    `gorm:"type:text;not null" json:"diagnosis"`
	Treatment       string    `gorm:"type:text" json:"treatment,omitempty"`
	Notes           string    `gorm:"type:text" json:"notes,omitempty"`
	Recommendations string    `gorm:"type:text" json:"recommendations,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointment Appointment      `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	Patient     User             `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor      User             `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	CreatedBy   User             `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Attachments []FileAttachment `gorm:"foreignKey:MedicalRecordID" json:"attachments,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}

func (m *MedicalRecord) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
