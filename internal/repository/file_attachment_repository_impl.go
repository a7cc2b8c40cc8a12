package repository

import (
	"errors"

	"clinic-scheduler/internal/domain/entity"
	domainRepo "clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fileAttachmentRepository struct{}

func NewFileAttachmentRepository() domainRepo.FileAttachmentRepository {
	return &fileAttachmentRepository{}
}

func (r *fileAttachmentRepository) Create(db *gorm.DB, attachment *entity.FileAttachment) error {
	return db.Create(attachment).Error
}

func (r *fileAttachmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.FileAttachment, error) {
	var attachment entity.FileAttachment
	err := db.Preload("UploadedBy").Where("id = ?", id).First(&attachment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attachment, nil
}

func (r *fileAttachmentRepository) Find(db *gorm.DB, filter domainRepo.FileFilter) ([]entity.FileAttachment, error) {
	query := db.Preload("UploadedBy")
	if filter.MedicalRecordID != nil {
		query = query.Where("medical_record_id = ?", *filter.MedicalRecordID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var attachments []entity.FileAttachment
	err := query.Order("created_at DESC").Find(&attachments).Error
	if err != nil {
		return nil, err
	}
	return attachments, nil
}

func (r *fileAttachmentRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.FileAttachment{}).Error
}
