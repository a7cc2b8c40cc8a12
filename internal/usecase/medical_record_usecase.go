package usecase

import (
	"context"
	"errors"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrMedicalRecordNotFound = errors.New("medical record not found")
	ErrMedicalRecordExists   = errors.New("appointment already has a medical record")
)

type MedicalRecordUsecase interface {
	Create(ctx context.Context, actorID uuid.UUID, roleID int, request *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	FindByID(ctx context.Context, id, actorID uuid.UUID, roleID int) (*dto.MedicalRecordResponse, error)
	FindByPatient(ctx context.Context, patientID, actorID uuid.UUID, roleID int) (*dto.MedicalRecordListResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, roleID int, request *dto.UpdateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	Delete(ctx context.Context, actorID, id uuid.UUID, roleID int) error
}

type medicalRecordUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	recordRepo      repository.MedicalRecordRepository
	appointmentRepo repository.AppointmentRepository
	fileRepo        repository.FileAttachmentRepository
	authorizer      entity.Authorizer
}

func NewMedicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	recordRepo repository.MedicalRecordRepository,
	appointmentRepo repository.AppointmentRepository,
	fileRepo repository.FileAttachmentRepository,
	authorizer entity.Authorizer,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		db:              db,
		log:             log,
		recordRepo:      recordRepo,
		appointmentRepo: appointmentRepo,
		fileRepo:        fileRepo,
		authorizer:      authorizer,
	}
}

func (u *medicalRecordUsecase) Create(ctx context.Context, actorID uuid.UUID, roleID int, request *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), request.AppointmentID)
	if err != nil {
		u.log.WithError(err).Error("failed to load appointment")
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	// Only the treating doctor or an administrator documents a visit.
	if !u.authorizer.IsPrivileged(roleID) && appointment.DoctorID != actorID {
		return nil, ErrForbidden
	}

	existing, err := u.recordRepo.FindByAppointmentID(u.db.WithContext(ctx), request.AppointmentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMedicalRecordExists
	}

	record := &entity.MedicalRecord{
		AppointmentID:   request.AppointmentID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		CreatedByID:     actorID,
		Diagnosis:       request.Diagnosis,
		Treatment:       request.Treatment,
		Notes:           request.Notes,
		Recommendations: request.Recommendations,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.recordRepo.Create(tx, record); err != nil {
			if isDuplicateKeyError(err, "appointment") {
				return ErrMedicalRecordExists
			}
			return err
		}
		for _, attachment := range request.Attachments {
			file, err := buildAttachment(actorID, &record.ID, attachment.FileName, attachment.FileData, attachment.Description)
			if err != nil {
				return err
			}
			if err := u.fileRepo.Create(tx, file); err != nil {
				return err
			}
			record.Attachments = append(record.Attachments, *file)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrMedicalRecordExists) && !errors.Is(err, ErrInvalidFileData) {
			u.log.WithError(err).Error("failed to create medical record")
		}
		return nil, err
	}

	return converter.MedicalRecordToResponse(record), nil
}

func (u *medicalRecordUsecase) FindByID(ctx context.Context, id, actorID uuid.UUID, roleID int) (*dto.MedicalRecordResponse, error) {
	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.WithError(err).Error("failed to load medical record")
		return nil, err
	}
	if record == nil {
		return nil, ErrMedicalRecordNotFound
	}
	if !u.canRead(record, actorID, roleID) {
		return nil, ErrForbidden
	}
	return converter.MedicalRecordToResponse(record), nil
}

func (u *medicalRecordUsecase) FindByPatient(ctx context.Context, patientID, actorID uuid.UUID, roleID int) (*dto.MedicalRecordListResponse, error) {
	// Patients read their own history; doctors and administrators any.
	if roleID == entity.RoleIDPatient && patientID != actorID {
		return nil, ErrForbidden
	}
	records, err := u.recordRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.WithError(err).Error("failed to list medical records")
		return nil, err
	}
	return converter.MedicalRecordsToListResponse(records), nil
}

func (u *medicalRecordUsecase) Update(ctx context.Context, actorID, id uuid.UUID, roleID int, request *dto.UpdateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.WithError(err).Error("failed to load medical record")
		return nil, err
	}
	if record == nil {
		return nil, ErrMedicalRecordNotFound
	}
	if !u.authorizer.IsPrivileged(roleID) && record.DoctorID != actorID {
		return nil, ErrForbidden
	}

	if request.Diagnosis != nil {
		record.Diagnosis = *request.Diagnosis
	}
	if request.Treatment != nil {
		record.Treatment = *request.Treatment
	}
	if request.Notes != nil {
		record.Notes = *request.Notes
	}
	if request.Recommendations != nil {
		record.Recommendations = *request.Recommendations
	}

	if err := u.recordRepo.Update(u.db.WithContext(ctx), record); err != nil {
		u.log.WithError(err).Error("failed to update medical record")
		return nil, err
	}
	return converter.MedicalRecordToResponse(record), nil
}

func (u *medicalRecordUsecase) Delete(ctx context.Context, actorID, id uuid.UUID, roleID int) error {
	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.WithError(err).Error("failed to load medical record")
		return err
	}
	if record == nil {
		return ErrMedicalRecordNotFound
	}
	if !u.authorizer.IsPrivileged(roleID) {
		return ErrForbidden
	}

	if err := u.recordRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		u.log.WithError(err).Error("failed to delete medical record")
		return err
	}
	return nil
}

func (u *medicalRecordUsecase) canRead(record *entity.MedicalRecord, actorID uuid.UUID, roleID int) bool {
	if u.authorizer.IsPrivileged(roleID) {
		return true
	}
	return record.DoctorID == actorID || record.PatientID == actorID
}
