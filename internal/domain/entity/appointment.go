package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// RecurrenceRule represents how a recurring appointment repeats
type RecurrenceRule string

const (
	RecurrenceDaily   RecurrenceRule = "daily"
	RecurrenceWeekly  RecurrenceRule = "weekly"
	RecurrenceMonthly RecurrenceRule = "monthly"
)

// Appointment represents a booked visit between a patient and a doctor.
// Intervals are half-open [StartTime, EndTime): appointments that merely
// touch at an endpoint do not conflict.
type Appointment struct {
	ID                  uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID           uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID            uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	WorkplaceID         *uuid.UUID        `gorm:"type:uuid;index" json:"workplace_id,omitempty"`
	StartTime           time.Time         `gorm:"not null;index" json:"start_time"`
	EndTime             time.Time         `gorm:"not null" json:"end_time"`
	Status              AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Notes               string            `gorm:"type:text" json:"notes,omitempty"`
	RecurrenceRule      RecurrenceRule    `gorm:"type:varchar(20)" json:"recurrence_rule,omitempty"`
	RecurrenceEndDate   *time.Time        `json:"recurrence_end_date,omitempty"`
	ParentAppointmentID *uuid.UUID        `gorm:"type:uuid;index" json:"parent_appointment_id,omitempty"`
	CreatedAt           time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient   User       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor    User       `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Workplace *Workplace `gorm:"foreignKey:WorkplaceID" json:"workplace,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// IsScheduled checks if the appointment is still planned
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsRecurring checks whether the appointment defines a recurrence series
func (a *Appointment) IsRecurring() bool {
	return a.RecurrenceRule != "" && a.RecurrenceEndDate != nil
}

// Cancel changes the appointment status to cancelled
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}
