package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileAttachment stores an uploaded image inline as a base64 data URI.
// Attachments may hang off a medical record or stand alone per user.
type FileAttachment struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MedicalRecordID *uuid.UUID `gorm:"type:uuid;index" json:"medical_record_id,omitempty"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	FileName        string     `gorm:"type:varchar(255);not null" json:"file_name"`
	FileData        string     `gorm:"type:text;not null" json:"-"`
	FileSize        int64      `gorm:"not null" json:"file_size"`
	MimeType        string     `gorm:"type:varchar(100);not null" json:"mime_type"`
	Description     string     `gorm:"type:text" json:"description,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	UploadedBy User `gorm:"foreignKey:UserID" json:"uploaded_by,omitempty"`
}

func (FileAttachment) TableName() string {
	return "file_attachments"
}

func (f *FileAttachment) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
