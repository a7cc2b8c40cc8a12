package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrFileNotFound        = errors.New("file not found")
	ErrInvalidFileData     = errors.New("file data must be a base64 data URI")
	ErrUnsupportedFileType = errors.New("only image attachments are allowed")
	ErrFileTooLarge        = errors.New("file exceeds the size limit")
)

// maxFileSize bounds decoded attachment payloads at 5 MB.
const maxFileSize = 5 << 20

type FileUsecase interface {
	Upload(ctx context.Context, actorID uuid.UUID, request *dto.CreateFileAttachment) (*dto.FileAttachmentResponse, error)
	FindByID(ctx context.Context, id, actorID uuid.UUID, roleID int) (*dto.FileContentResponse, error)
	FindByUser(ctx context.Context, userID, actorID uuid.UUID, roleID int) (*dto.FileListResponse, error)
	FindByRecord(ctx context.Context, recordID, actorID uuid.UUID, roleID int) (*dto.FileListResponse, error)
	Delete(ctx context.Context, actorID, id uuid.UUID, roleID int) error
}

type fileUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	fileRepo   repository.FileAttachmentRepository
	recordRepo repository.MedicalRecordRepository
	authorizer entity.Authorizer
}

func NewFileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	fileRepo repository.FileAttachmentRepository,
	recordRepo repository.MedicalRecordRepository,
	authorizer entity.Authorizer,
) FileUsecase {
	return &fileUsecase{
		db:         db,
		log:        log,
		fileRepo:   fileRepo,
		recordRepo: recordRepo,
		authorizer: authorizer,
	}
}

func (u *fileUsecase) Upload(ctx context.Context, actorID uuid.UUID, request *dto.CreateFileAttachment) (*dto.FileAttachmentResponse, error) {
	if request.MedicalRecordID != nil {
		record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), *request.MedicalRecordID)
		if err != nil {
			return nil, err
		}
		if record == nil {
			return nil, ErrMedicalRecordNotFound
		}
	}

	attachment, err := buildAttachment(actorID, request.MedicalRecordID, request.FileName, request.FileData, request.Description)
	if err != nil {
		return nil, err
	}

	if err := u.fileRepo.Create(u.db.WithContext(ctx), attachment); err != nil {
		u.log.WithError(err).Error("failed to store file attachment")
		return nil, err
	}
	return converter.FileAttachmentToResponse(attachment), nil
}

func (u *fileUsecase) FindByID(ctx context.Context, id, actorID uuid.UUID, roleID int) (*dto.FileContentResponse, error) {
	attachment, err := u.fileRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.WithError(err).Error("failed to load file attachment")
		return nil, err
	}
	if attachment == nil {
		return nil, ErrFileNotFound
	}
	if !u.canRead(ctx, attachment, actorID, roleID) {
		return nil, ErrForbidden
	}
	return converter.FileAttachmentToContentResponse(attachment), nil
}

func (u *fileUsecase) FindByUser(ctx context.Context, userID, actorID uuid.UUID, roleID int) (*dto.FileListResponse, error) {
	if userID != actorID && !u.authorizer.IsPrivileged(roleID) {
		return nil, ErrForbidden
	}
	attachments, err := u.fileRepo.Find(u.db.WithContext(ctx), repository.FileFilter{UserID: &userID})
	if err != nil {
		u.log.WithError(err).Error("failed to list file attachments")
		return nil, err
	}
	return converter.FileAttachmentsToListResponse(attachments), nil
}

func (u *fileUsecase) FindByRecord(ctx context.Context, recordID, actorID uuid.UUID, roleID int) (*dto.FileListResponse, error) {
	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), recordID)
	if err != nil {
		u.log.WithError(err).Error("failed to load medical record")
		return nil, err
	}
	if record == nil {
		return nil, ErrMedicalRecordNotFound
	}
	if !u.authorizer.IsPrivileged(roleID) && record.DoctorID != actorID && record.PatientID != actorID {
		return nil, ErrForbidden
	}

	attachments, err := u.fileRepo.Find(u.db.WithContext(ctx), repository.FileFilter{MedicalRecordID: &recordID})
	if err != nil {
		u.log.WithError(err).Error("failed to list record attachments")
		return nil, err
	}
	return converter.FileAttachmentsToListResponse(attachments), nil
}

func (u *fileUsecase) Delete(ctx context.Context, actorID, id uuid.UUID, roleID int) error {
	attachment, err := u.fileRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.WithError(err).Error("failed to load file attachment")
		return err
	}
	if attachment == nil {
		return ErrFileNotFound
	}
	if attachment.UserID != actorID && !u.authorizer.IsPrivileged(roleID) {
		return ErrForbidden
	}

	if err := u.fileRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		u.log.WithError(err).Error("failed to delete file attachment")
		return err
	}
	return nil
}

// canRead allows the uploader, administrators, and when the attachment
// belongs to a medical record, the record's doctor and patient.
func (u *fileUsecase) canRead(ctx context.Context, attachment *entity.FileAttachment, actorID uuid.UUID, roleID int) bool {
	if attachment.UserID == actorID || u.authorizer.IsPrivileged(roleID) {
		return true
	}
	if attachment.MedicalRecordID == nil {
		return false
	}
	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), *attachment.MedicalRecordID)
	if err != nil || record == nil {
		return false
	}
	return record.DoctorID == actorID || record.PatientID == actorID
}

// buildAttachment validates a base64 data URI and derives size and mime
// type from it. The payload is kept inline as received.
func buildAttachment(userID uuid.UUID, recordID *uuid.UUID, fileName, fileData, description string) (*entity.FileAttachment, error) {
	if !strings.HasPrefix(fileData, "data:") {
		return nil, ErrInvalidFileData
	}
	meta, payload, found := strings.Cut(fileData[len("data:"):], ",")
	if !found {
		return nil, ErrInvalidFileData
	}
	mimeType := strings.TrimSuffix(meta, ";base64")
	if mimeType == meta || mimeType == "" {
		return nil, ErrInvalidFileData
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrUnsupportedFileType
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidFileData
	}
	if len(decoded) > maxFileSize {
		return nil, ErrFileTooLarge
	}

	return &entity.FileAttachment{
		MedicalRecordID: recordID,
		UserID:          userID,
		FileName:        fileName,
		FileData:        fileData,
		FileSize:        int64(len(decoded)),
		MimeType:        mimeType,
		Description:     description,
	}, nil
}
