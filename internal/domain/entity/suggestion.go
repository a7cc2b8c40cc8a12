package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SuggestionStatus represents the review state of an appointment suggestion
type SuggestionStatus string

const (
	SuggestionStatusPending  SuggestionStatus = "pending"
	SuggestionStatusApproved SuggestionStatus = "approved"
	SuggestionStatusRejected SuggestionStatus = "rejected"
)

// AppointmentSuggestion is a doctor-proposed appointment that waits for an
// administrator's decision. Approval materializes exactly one appointment;
// afterwards suggestion and appointment live independent lifecycles.
type AppointmentSuggestion struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"patient_id"`
	WorkplaceID *uuid.UUID       `gorm:"type:uuid" json:"workplace_id,omitempty"`
	StartTime   time.Time        `gorm:"not null" json:"start_time"`
	EndTime     time.Time        `gorm:"not null" json:"end_time"`
	Notes       string           `gorm:"type:text" json:"notes,omitempty"`
	Status      SuggestionStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ReviewedAt  *time.Time       `json:"reviewed_at,omitempty"`
	ReviewedBy  *uuid.UUID       `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor   User  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient  User  `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Reviewer *User `gorm:"foreignKey:ReviewedBy" json:"reviewer,omitempty"`
}

func (AppointmentSuggestion) TableName() string {
	return "appointment_suggestions"
}

func (s *AppointmentSuggestion) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// IsPending checks if the suggestion still awaits review
func (s *AppointmentSuggestion) IsPending() bool {
	return s.Status == SuggestionStatusPending
}
