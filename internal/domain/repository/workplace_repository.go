package repository

import (
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkplaceRepository interface {
	Create(db *gorm.DB, workplace *entity.Workplace) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Workplace, error)
	FindByName(db *gorm.DB, name string) (*entity.Workplace, error)
	FindAll(db *gorm.DB) ([]entity.Workplace, error)
	Update(db *gorm.DB, workplace *entity.Workplace) error
	Delete(db *gorm.DB, id uuid.UUID) error
	AssignDoctor(db *gorm.DB, assignment *entity.WorkplaceAssignment) error
	UnassignDoctor(db *gorm.DB, workplaceID, doctorID uuid.UUID) (int64, error)
	FindAssignment(db *gorm.DB, workplaceID, doctorID uuid.UUID) (*entity.WorkplaceAssignment, error)
}
