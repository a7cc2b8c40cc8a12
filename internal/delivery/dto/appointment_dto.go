package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	PatientID         uuid.UUID  `json:"patient_id" validate:"required"`
	DoctorID          uuid.UUID  `json:"doctor_id" validate:"required"`
	WorkplaceID       *uuid.UUID `json:"workplace_id" validate:"omitempty"`
	StartTime         time.Time  `json:"start_time" validate:"required"`
	EndTime           time.Time  `json:"end_time" validate:"required"`
	Notes             string     `json:"notes" validate:"omitempty"`
	RecurrenceRule    string     `json:"recurrence_rule" validate:"omitempty,oneof=daily weekly monthly"`
	RecurrenceEndDate *time.Time `json:"recurrence_end_date" validate:"omitempty"`
}

type UpdateAppointmentRequest struct {
	PatientID   *uuid.UUID `json:"patient_id" validate:"omitempty"`
	DoctorID    *uuid.UUID `json:"doctor_id" validate:"omitempty"`
	WorkplaceID *uuid.UUID `json:"workplace_id" validate:"omitempty"`
	StartTime   *time.Time `json:"start_time" validate:"omitempty"`
	EndTime     *time.Time `json:"end_time" validate:"omitempty"`
	Notes       *string    `json:"notes" validate:"omitempty"`
	Status      *string    `json:"status" validate:"omitempty,oneof=scheduled cancelled completed"`
}

type AppointmentResponse struct {
	ID                  uuid.UUID    `json:"id"`
	PatientID           uuid.UUID    `json:"patient_id"`
	DoctorID            uuid.UUID    `json:"doctor_id"`
	WorkplaceID         *uuid.UUID   `json:"workplace_id,omitempty"`
	StartTime           time.Time    `json:"start_time"`
	EndTime             time.Time    `json:"end_time"`
	Status              string       `json:"status"`
	Notes               string       `json:"notes,omitempty"`
	RecurrenceRule      string       `json:"recurrence_rule,omitempty"`
	RecurrenceEndDate   *time.Time   `json:"recurrence_end_date,omitempty"`
	ParentAppointmentID *uuid.UUID   `json:"parent_appointment_id,omitempty"`
	Patient             *UserSummary `json:"patient,omitempty"`
	Doctor              *UserSummary `json:"doctor,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
