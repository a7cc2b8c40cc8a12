package repository

import (
	"errors"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type suggestionRepository struct{}

func NewSuggestionRepository() domainRepo.SuggestionRepository {
	return &suggestionRepository{}
}

func (r *suggestionRepository) Create(db *gorm.DB, suggestion *entity.AppointmentSuggestion) error {
	return db.Create(suggestion).Error
}

func (r *suggestionRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.AppointmentSuggestion, error) {
	var suggestion entity.AppointmentSuggestion
	err := db.Preload("Doctor").Preload("Patient").Preload("Reviewer").
		Where("id = ?", id).
		First(&suggestion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &suggestion, nil
}

func (r *suggestionRepository) FindAll(db *gorm.DB) ([]entity.AppointmentSuggestion, error) {
	var suggestions []entity.AppointmentSuggestion
	err := db.Preload("Doctor").Preload("Patient").Preload("Reviewer").
		Order("created_at DESC").
		Find(&suggestions).Error
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (r *suggestionRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AppointmentSuggestion, error) {
	var suggestions []entity.AppointmentSuggestion
	err := db.Preload("Doctor").Preload("Patient").Preload("Reviewer").
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Find(&suggestions).Error
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (r *suggestionRepository) Update(db *gorm.DB, suggestion *entity.AppointmentSuggestion) error {
	return db.Save(suggestion).Error
}
