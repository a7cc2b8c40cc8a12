package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSuggestionRequest struct {
	PatientID   uuid.UUID  `json:"patient_id" validate:"required"`
	WorkplaceID *uuid.UUID `json:"workplace_id" validate:"omitempty"`
	StartTime   time.Time  `json:"start_time" validate:"required"`
	EndTime     time.Time  `json:"end_time" validate:"required"`
	Notes       string     `json:"notes" validate:"omitempty"`
}

type DecideSuggestionRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

type SuggestionResponse struct {
	ID          uuid.UUID    `json:"id"`
	DoctorID    uuid.UUID    `json:"doctor_id"`
	PatientID   uuid.UUID    `json:"patient_id"`
	WorkplaceID *uuid.UUID   `json:"workplace_id,omitempty"`
	StartTime   time.Time    `json:"start_time"`
	EndTime     time.Time    `json:"end_time"`
	Status      string       `json:"status"`
	Notes       string       `json:"notes,omitempty"`
	ReviewedAt  *time.Time   `json:"reviewed_at,omitempty"`
	ReviewedBy  *uuid.UUID   `json:"reviewed_by,omitempty"`
	Doctor      *UserSummary `json:"doctor,omitempty"`
	Patient     *UserSummary `json:"patient,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// DecideSuggestionResponse carries the reviewed suggestion and, on
// approval, the appointment it produced.
type DecideSuggestionResponse struct {
	Suggestion  SuggestionResponse   `json:"suggestion"`
	Appointment *AppointmentResponse `json:"appointment,omitempty"`
}

type SuggestionListResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
	Total       int                  `json:"total"`
}
