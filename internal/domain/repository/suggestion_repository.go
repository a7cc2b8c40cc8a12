package repository

import (
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SuggestionRepository interface {
	Create(db *gorm.DB, suggestion *entity.AppointmentSuggestion) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.AppointmentSuggestion, error)
	FindAll(db *gorm.DB) ([]entity.AppointmentSuggestion, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AppointmentSuggestion, error)
	Update(db *gorm.DB, suggestion *entity.AppointmentSuggestion) error
}
