package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateFileAttachment struct {
	FileName        string     `json:"file_name" validate:"required"`
	FileData        string     `json:"file_data" validate:"required"`
	MedicalRecordID *uuid.UUID `json:"medical_record_id" validate:"omitempty"`
	Description     string     `json:"description" validate:"omitempty"`
}

type FileAttachmentResponse struct {
	ID              uuid.UUID  `json:"id"`
	MedicalRecordID *uuid.UUID `json:"medical_record_id,omitempty"`
	UserID          uuid.UUID  `json:"user_id"`
	FileName        string     `json:"file_name"`
	FileSize        int64      `json:"file_size"`
	MimeType        string     `json:"mime_type"`
	Description     string     `json:"description,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// FileContentResponse includes the inline data URI for downloads.
type FileContentResponse struct {
	FileAttachmentResponse
	FileData string `json:"file_data"`
}

type FileListResponse struct {
	Files []FileAttachmentResponse `json:"files"`
	Total int                      `json:"total"`
}
