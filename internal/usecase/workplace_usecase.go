package usecase

import (
	"context"
	"errors"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrWorkplaceNameTaken    = errors.New("workplace name already exists")
	ErrWorkplaceInUse        = errors.New("workplace still has appointments")
	ErrDoctorAlreadyAssigned = errors.New("doctor is already assigned to this workplace")
	ErrAssignmentNotFound    = errors.New("doctor is not assigned to this workplace")
)

type WorkplaceUsecase interface {
	Create(ctx context.Context, actorID uuid.UUID, request *dto.CreateWorkplaceRequest) (*dto.WorkplaceResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.WorkplaceResponse, error)
	FindAll(ctx context.Context) (*dto.WorkplaceListResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, request *dto.UpdateWorkplaceRequest) (*dto.WorkplaceResponse, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	AssignDoctor(ctx context.Context, actorID, id uuid.UUID, request *dto.AssignDoctorRequest) error
	UnassignDoctor(ctx context.Context, actorID, id, doctorID uuid.UUID) error
}

type workplaceUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	workplaceRepo   repository.WorkplaceRepository
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	audit           service.AuditService
}

func NewWorkplaceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	workplaceRepo repository.WorkplaceRepository,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	audit service.AuditService,
) WorkplaceUsecase {
	return &workplaceUsecase{
		db:              db,
		log:             log,
		workplaceRepo:   workplaceRepo,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		audit:           audit,
	}
}

func (u *workplaceUsecase) Create(ctx context.Context, actorID uuid.UUID, request *dto.CreateWorkplaceRequest) (*dto.WorkplaceResponse, error) {
	existing, err := u.workplaceRepo.FindByName(u.db.WithContext(ctx), request.Name)
	if err != nil {
		u.log.WithError(err).Error("failed to check workplace name")
		return nil, err
	}
	if existing != nil {
		return nil, ErrWorkplaceNameTaken
	}

	workplace := &entity.Workplace{
		Name:        request.Name,
		Description: request.Description,
		Type:        request.Type,
		Location:    request.Location,
		Equipment:   request.Equipment,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.workplaceRepo.Create(tx, workplace); err != nil {
			if isDuplicateKeyError(err, "name") {
				return ErrWorkplaceNameTaken
			}
			return err
		}
		return u.audit.LogCreate(tx, &actorID, entity.AuditActionWorkplaceCreate, "workplace", workplace.ID.String(), workplace)
	})
	if err != nil {
		if !errors.Is(err, ErrWorkplaceNameTaken) {
			u.log.WithError(err).Error("failed to create workplace")
		}
		return nil, err
	}

	return converter.WorkplaceToResponse(workplace), nil
}

func (u *workplaceUsecase) FindByID(ctx context.Context, id uuid.UUID) (*dto.WorkplaceResponse, error) {
	workplace, err := u.workplaceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.WithError(err).Error("failed to load workplace")
		return nil, err
	}
	if workplace == nil {
		return nil, ErrWorkplaceNotFound
	}
	return converter.WorkplaceToResponse(workplace), nil
}

func (u *workplaceUsecase) FindAll(ctx context.Context) (*dto.WorkplaceListResponse, error) {
	workplaces, err := u.workplaceRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.WithError(err).Error("failed to list workplaces")
		return nil, err
	}
	return converter.WorkplacesToListResponse(workplaces), nil
}

func (u *workplaceUsecase) Update(ctx context.Context, actorID, id uuid.UUID, request *dto.UpdateWorkplaceRequest) (*dto.WorkplaceResponse, error) {
	workplace, err := u.workplaceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.WithError(err).Error("failed to load workplace")
		return nil, err
	}
	if workplace == nil {
		return nil, ErrWorkplaceNotFound
	}
	previous := *workplace

	if request.Name != nil {
		workplace.Name = *request.Name
	}
	if request.Description != nil {
		workplace.Description = *request.Description
	}
	if request.Type != nil {
		workplace.Type = *request.Type
	}
	if request.Location != nil {
		workplace.Location = *request.Location
	}
	if request.Equipment != nil {
		workplace.Equipment = *request.Equipment
	}
	if request.IsActive != nil {
		workplace.IsActive = request.IsActive
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.workplaceRepo.Update(tx, workplace); err != nil {
			if isDuplicateKeyError(err, "name") {
				return ErrWorkplaceNameTaken
			}
			return err
		}
		return u.audit.LogUpdate(tx, &actorID, entity.AuditActionWorkplaceUpdate, "workplace", workplace.ID.String(), &previous, workplace)
	})
	if err != nil {
		if !errors.Is(err, ErrWorkplaceNameTaken) {
			u.log.WithError(err).Error("failed to update workplace")
		}
		return nil, err
	}

	return converter.WorkplaceToResponse(workplace), nil
}

func (u *workplaceUsecase) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	workplace, err := u.workplaceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.WithError(err).Error("failed to load workplace")
		return err
	}
	if workplace == nil {
		return ErrWorkplaceNotFound
	}

	count, err := u.appointmentRepo.CountByWorkplace(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.WithError(err).Error("failed to count workplace appointments")
		return err
	}
	if count > 0 {
		return ErrWorkplaceInUse
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.workplaceRepo.Delete(tx, id); err != nil {
			return err
		}
		return u.audit.LogDelete(tx, &actorID, entity.AuditActionWorkplaceDelete, "workplace", workplace.ID.String(), workplace)
	})
	if err != nil {
		u.log.WithError(err).Error("failed to delete workplace")
	}
	return err
}

func (u *workplaceUsecase) AssignDoctor(ctx context.Context, actorID, id uuid.UUID, request *dto.AssignDoctorRequest) error {
	workplace, err := u.workplaceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return err
	}
	if workplace == nil {
		return ErrWorkplaceNotFound
	}

	doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), request.DoctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}
	if !doctor.IsDoctor() {
		return ErrRoleMismatch
	}

	existing, err := u.workplaceRepo.FindAssignment(u.db.WithContext(ctx), id, request.DoctorID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDoctorAlreadyAssigned
	}

	assignment := &entity.WorkplaceAssignment{WorkplaceID: id, DoctorID: request.DoctorID}
	if err := u.workplaceRepo.AssignDoctor(u.db.WithContext(ctx), assignment); err != nil {
		if isDuplicateKeyError(err, "workplace_doctor") {
			return ErrDoctorAlreadyAssigned
		}
		u.log.WithError(err).Error("failed to assign doctor")
		return err
	}
	return nil
}

func (u *workplaceUsecase) UnassignDoctor(ctx context.Context, actorID, id, doctorID uuid.UUID) error {
	affected, err := u.workplaceRepo.UnassignDoctor(u.db.WithContext(ctx), id, doctorID)
	if err != nil {
		u.log.WithError(err).Error("failed to unassign doctor")
		return err
	}
	if affected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}
