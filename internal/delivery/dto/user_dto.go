package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email          string     `json:"email" validate:"required,email"`
	Password       string     `json:"password" validate:"required,min=8"`
	FirstName      string     `json:"first_name" validate:"required"`
	LastName       string     `json:"last_name" validate:"required"`
	Role           string     `json:"role" validate:"required,oneof=admin doctor patient"`
	Phone          string     `json:"phone" validate:"omitempty"`
	DateOfBirth    *time.Time `json:"date_of_birth" validate:"omitempty"`
	Address        string     `json:"address" validate:"omitempty"`
	Specialization string     `json:"specialization" validate:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UpdateUserRequest struct {
	FirstName      *string    `json:"first_name" validate:"omitempty"`
	LastName       *string    `json:"last_name" validate:"omitempty"`
	Phone          *string    `json:"phone" validate:"omitempty"`
	DateOfBirth    *time.Time `json:"date_of_birth" validate:"omitempty"`
	Address        *string    `json:"address" validate:"omitempty"`
	MedicalHistory *string    `json:"medical_history" validate:"omitempty"`
	Specialization *string    `json:"specialization" validate:"omitempty"`
	IsActive       *bool      `json:"is_active" validate:"omitempty"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin doctor patient"`
}

type UserResponse struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Phone          string     `json:"phone,omitempty"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	Address        string     `json:"address,omitempty"`
	MedicalHistory string     `json:"medical_history,omitempty"`
	Specialization string     `json:"specialization,omitempty"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// UserSummary is the short form embedded in appointment and suggestion
// payloads.
type UserSummary struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Specialization string    `json:"specialization,omitempty"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}
