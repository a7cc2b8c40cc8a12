package repository

import (
	"errors"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type workplaceRepository struct{}

func NewWorkplaceRepository() domainRepo.WorkplaceRepository {
	return &workplaceRepository{}
}

func (r *workplaceRepository) Create(db *gorm.DB, workplace *entity.Workplace) error {
	return db.Create(workplace).Error
}

func (r *workplaceRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Workplace, error) {
	var workplace entity.Workplace
	err := db.Preload("Assignments.Doctor").Where("id = ?", id).First(&workplace).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &workplace, nil
}

func (r *workplaceRepository) FindByName(db *gorm.DB, name string) (*entity.Workplace, error) {
	var workplace entity.Workplace
	err := db.Where("name = ?", name).First(&workplace).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &workplace, nil
}

func (r *workplaceRepository) FindAll(db *gorm.DB) ([]entity.Workplace, error) {
	var workplaces []entity.Workplace
	err := db.Preload("Assignments.Doctor").
		Order("created_at DESC").
		Find(&workplaces).Error
	if err != nil {
		return nil, err
	}
	return workplaces, nil
}

func (r *workplaceRepository) Update(db *gorm.DB, workplace *entity.Workplace) error {
	return db.Save(workplace).Error
}

func (r *workplaceRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.Workplace{}).Error
}

func (r *workplaceRepository) AssignDoctor(db *gorm.DB, assignment *entity.WorkplaceAssignment) error {
	return db.Create(assignment).Error
}

// UnassignDoctor removes the link and reports affected rows so callers can
// distinguish a no-op from a real unassignment.
func (r *workplaceRepository) UnassignDoctor(db *gorm.DB, workplaceID, doctorID uuid.UUID) (int64, error) {
	result := db.Where("workplace_id = ? AND doctor_id = ?", workplaceID, doctorID).
		Delete(&entity.WorkplaceAssignment{})
	return result.RowsAffected, result.Error
}

func (r *workplaceRepository) FindAssignment(db *gorm.DB, workplaceID, doctorID uuid.UUID) (*entity.WorkplaceAssignment, error) {
	var assignment entity.WorkplaceAssignment
	err := db.Where("workplace_id = ? AND doctor_id = ?", workplaceID, doctorID).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}
