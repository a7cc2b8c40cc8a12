package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateWorkplaceRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"omitempty"`
	Type        string `json:"type" validate:"omitempty"`
	Location    string `json:"location" validate:"omitempty"`
	Equipment   string `json:"equipment" validate:"omitempty"`
}

type UpdateWorkplaceRequest struct {
	Name        *string `json:"name" validate:"omitempty"`
	Description *string `json:"description" validate:"omitempty"`
	Type        *string `json:"type" validate:"omitempty"`
	Location    *string `json:"location" validate:"omitempty"`
	Equipment   *string `json:"equipment" validate:"omitempty"`
	IsActive    *bool   `json:"is_active" validate:"omitempty"`
}

type AssignDoctorRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
}

type WorkplaceResponse struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Type        string        `json:"type,omitempty"`
	Location    string        `json:"location,omitempty"`
	Equipment   string        `json:"equipment,omitempty"`
	IsActive    bool          `json:"is_active"`
	Doctors     []UserSummary `json:"doctors,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type WorkplaceListResponse struct {
	Workplaces []WorkplaceResponse `json:"workplaces"`
	Total      int                 `json:"total"`
}
