package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
)

func FileAttachmentToResponse(attachment *entity.FileAttachment) *dto.FileAttachmentResponse {
	return &dto.FileAttachmentResponse{
		ID:              attachment.ID,
		MedicalRecordID: attachment.MedicalRecordID,
		UserID:          attachment.UserID,
		FileName:        attachment.FileName,
		FileSize:        attachment.FileSize,
		MimeType:        attachment.MimeType,
		Description:     attachment.Description,
		CreatedAt:       attachment.CreatedAt,
	}
}

func FileAttachmentToContentResponse(attachment *entity.FileAttachment) *dto.FileContentResponse {
	return &dto.FileContentResponse{
		FileAttachmentResponse: *FileAttachmentToResponse(attachment),
		FileData:               attachment.FileData,
	}
}

func FileAttachmentsToListResponse(attachments []entity.FileAttachment) *dto.FileListResponse {
	responses := make([]dto.FileAttachmentResponse, len(attachments))
	for i := range attachments {
		responses[i] = *FileAttachmentToResponse(&attachments[i])
	}
	return &dto.FileListResponse{Files: responses, Total: len(responses)}
}
