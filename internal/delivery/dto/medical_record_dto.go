package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateMedicalRecordRequest struct {
	AppointmentID   uuid.UUID              `json:"appointment_id" validate:"required"`
	Diagnosis       string                 `json:"diagnosis" validate:"required"`
	Treatment       string                 `json:"treatment" validate:"omitempty"`
	Notes           string                 `json:"notes" validate:"omitempty"`
	Recommendations string                 `json:"recommendations" validate:"omitempty"`
	Attachments     []CreateFileAttachment `json:"attachments" validate:"omitempty,dive"`
}

type UpdateMedicalRecordRequest struct {
	Diagnosis       *string `json:"diagnosis" validate:"omitempty"`
	Treatment       *string `json:"treatment" validate:"omitempty"`
	Notes           *string `json:"notes" validate:"omitempty"`
	Recommendations *string `json:"recommendations" validate:"omitempty"`
}

type MedicalRecordResponse struct {
	ID              uuid.UUID                `json:"id"`
	AppointmentID   uuid.UUID                `json:"appointment_id"`
	PatientID       uuid.UUID                `json:"patient_id"`
	DoctorID        uuid.UUID                `json:"doctor_id"`
	CreatedByID     uuid.UUID                `json:"created_by_id"`
	Diagnosis       string                   `json:"diagnosis"`
	Treatment       string                   `json:"treatment,omitempty"`
	Notes           string                   `json:"notes,omitempty"`
	Recommendations string                   `json:"recommendations,omitempty"`
	Attachments     []FileAttachmentResponse `json:"attachments,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

type MedicalRecordListResponse struct {
	Records []MedicalRecordResponse `json:"records"`
	Total   int                     `json:"total"`
}
