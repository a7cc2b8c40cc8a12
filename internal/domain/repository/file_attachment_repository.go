package repository

import (
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileFilter narrows attachment listings. Zero-value fields are ignored.
type FileFilter struct {
	MedicalRecordID *uuid.UUID
	UserID          *uuid.UUID
}

type FileAttachmentRepository interface {
	Create(db *gorm.DB, attachment *entity.FileAttachment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.FileAttachment, error)
	Find(db *gorm.DB, filter FileFilter) ([]entity.FileAttachment, error)
	Delete(db *gorm.DB, id uuid.UUID) error
}
