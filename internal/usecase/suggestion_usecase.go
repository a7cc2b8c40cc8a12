package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

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
	ErrSuggestionNotFound        = errors.New("suggestion not found")
	ErrSuggestionAlreadyReviewed = errors.New("suggestion has already been reviewed")
	ErrForbidden                 = errors.New("operation not allowed for this role")
)

type SuggestionUsecase interface {
	Create(ctx context.Context, doctorID uuid.UUID, roleID int, request *dto.CreateSuggestionRequest) (*dto.SuggestionResponse, error)
	FindByID(ctx context.Context, id, actorID uuid.UUID, roleID int) (*dto.SuggestionResponse, error)
	FindAll(ctx context.Context, actorID uuid.UUID, roleID int) (*dto.SuggestionListResponse, error)
	Decide(ctx context.Context, id, reviewerID uuid.UUID, roleID int, request *dto.DecideSuggestionRequest) (*dto.DecideSuggestionResponse, error)
}

type suggestionUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	suggestionRepo  repository.SuggestionRepository
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	authorizer      entity.Authorizer
	notifier        *service.NotificationService
	events          *service.ScheduleEventService
	audit           service.AuditService
}

func NewSuggestionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	suggestionRepo repository.SuggestionRepository,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	authorizer entity.Authorizer,
	notifier *service.NotificationService,
	events *service.ScheduleEventService,
	audit service.AuditService,
) SuggestionUsecase {
	return &suggestionUsecase{
		db:              db,
		log:             log,
		suggestionRepo:  suggestionRepo,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		authorizer:      authorizer,
		notifier:        notifier,
		events:          events,
		audit:           audit,
	}
}

func (u *suggestionUsecase) Create(ctx context.Context, doctorID uuid.UUID, roleID int, request *dto.CreateSuggestionRequest) (*dto.SuggestionResponse, error) {
	if !u.authorizer.CanProposeAppointments(roleID) {
		return nil, ErrForbidden
	}
	if !request.StartTime.Before(request.EndTime) {
		return nil, ErrInvalidTimeRange
	}

	patient, err := u.userRepo.FindByID(u.db.WithContext(ctx), request.PatientID)
	if err != nil {
		u.log.WithError(err).Error("failed to load patient")
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if !patient.IsPatient() {
		return nil, ErrRoleMismatch
	}

	// Proposals only guard the doctor's own calendar. The patient side is
	// checked when an administrator's approval materializes the visit into
	// the regular create path.
	conflict, err := u.appointmentRepo.FindConflicting(u.db.WithContext(ctx), repository.ScopeDoctor, doctorID, request.StartTime, request.EndTime, nil)
	if err != nil {
		u.log.WithError(err).Error("failed to check doctor availability")
		return nil, err
	}
	if conflict != nil {
		return nil, ErrDoctorBusy
	}

	suggestion := &entity.AppointmentSuggestion{
		DoctorID:    doctorID,
		PatientID:   request.PatientID,
		WorkplaceID: request.WorkplaceID,
		StartTime:   request.StartTime,
		EndTime:     request.EndTime,
		Notes:       request.Notes,
		Status:      entity.SuggestionStatusPending,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.suggestionRepo.Create(tx, suggestion); err != nil {
			return err
		}
		return u.audit.LogCreate(tx, &doctorID, entity.AuditActionSuggestionCreate, "suggestion", suggestion.ID.String(), suggestion)
	})
	if err != nil {
		u.log.WithError(err).Error("failed to create suggestion")
		return nil, err
	}

	suggestion.Patient = *patient
	u.notifyAdmins(ctx, suggestion)

	return converter.SuggestionToResponse(suggestion), nil
}

func (u *suggestionUsecase) FindByID(ctx context.Context, id, actorID uuid.UUID, roleID int) (*dto.SuggestionResponse, error) {
	suggestion, err := u.suggestionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.WithError(err).Error("failed to load suggestion")
		return nil, err
	}
	if suggestion == nil {
		return nil, ErrSuggestionNotFound
	}
	if !u.authorizer.IsPrivileged(roleID) && suggestion.DoctorID != actorID {
		return nil, ErrForbidden
	}
	return converter.SuggestionToResponse(suggestion), nil
}

func (u *suggestionUsecase) FindAll(ctx context.Context, actorID uuid.UUID, roleID int) (*dto.SuggestionListResponse, error) {
	var (
		suggestions []entity.AppointmentSuggestion
		err         error
	)
	if u.authorizer.IsPrivileged(roleID) {
		suggestions, err = u.suggestionRepo.FindAll(u.db.WithContext(ctx))
	} else if u.authorizer.CanProposeAppointments(roleID) {
		suggestions, err = u.suggestionRepo.FindByDoctorID(u.db.WithContext(ctx), actorID)
	} else {
		return nil, ErrForbidden
	}
	if err != nil {
		u.log.WithError(err).Error("failed to list suggestions")
		return nil, err
	}
	return converter.SuggestionsToListResponse(suggestions), nil
}

func (u *suggestionUsecase) Decide(ctx context.Context, id, reviewerID uuid.UUID, roleID int, request *dto.DecideSuggestionRequest) (*dto.DecideSuggestionResponse, error) {
	if !u.authorizer.IsPrivileged(roleID) {
		return nil, ErrForbidden
	}

	suggestion, err := u.suggestionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.WithError(err).Error("failed to load suggestion")
		return nil, err
	}
	if suggestion == nil {
		return nil, ErrSuggestionNotFound
	}
	if !suggestion.IsPending() {
		return nil, ErrSuggestionAlreadyReviewed
	}
	previous := *suggestion

	approved := request.Status == string(entity.SuggestionStatusApproved)
	var appointment *entity.Appointment

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-read under the transaction so two concurrent reviews cannot
		// both pass the pending check.
		current, err := u.suggestionRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrSuggestionNotFound
		}
		if !current.IsPending() {
			return ErrSuggestionAlreadyReviewed
		}

		if approved {
			appointment = &entity.Appointment{
				PatientID:   suggestion.PatientID,
				DoctorID:    suggestion.DoctorID,
				WorkplaceID: suggestion.WorkplaceID,
				StartTime:   suggestion.StartTime,
				EndTime:     suggestion.EndTime,
				Status:      entity.AppointmentStatusScheduled,
				Notes:       suggestion.Notes,
			}
			if err := u.appointmentRepo.Create(tx, appointment); err != nil {
				return err
			}
		}

		now := time.Now()
		suggestion.Status = entity.SuggestionStatus(request.Status)
		suggestion.ReviewedAt = &now
		suggestion.ReviewedBy = &reviewerID
		if err := u.suggestionRepo.Update(tx, suggestion); err != nil {
			return err
		}

		return u.audit.LogUpdate(tx, &reviewerID, entity.AuditActionSuggestionReview, "suggestion", suggestion.ID.String(), &previous, suggestion)
	})
	if err != nil {
		if !errors.Is(err, ErrSuggestionAlreadyReviewed) && !errors.Is(err, ErrSuggestionNotFound) {
			u.log.WithError(err).Error("failed to review suggestion")
		}
		return nil, err
	}

	u.notifyDecision(ctx, suggestion)
	if appointment != nil {
		u.events.Publish(ctx, "created", appointment)
	}

	response := &dto.DecideSuggestionResponse{Suggestion: *converter.SuggestionToResponse(suggestion)}
	if appointment != nil {
		response.Appointment = converter.AppointmentToResponse(appointment)
	}
	return response, nil
}

// notifyAdmins tells every administrator a proposal is waiting for review.
func (u *suggestionUsecase) notifyAdmins(ctx context.Context, suggestion *entity.AppointmentSuggestion) {
	admins, err := u.userRepo.FindByRoleID(u.db.WithContext(ctx), entity.RoleIDAdmin)
	if err != nil {
		u.log.WithError(err).Warn("failed to load administrators for suggestion notification")
		return
	}
	message := fmt.Sprintf("A new appointment suggestion for %s on %s awaits review.",
		suggestion.Patient.FullName(), suggestion.StartTime.Format("Monday, 2 January 2006 at 15:04"))
	for _, admin := range admins {
		input := service.NotificationInput{
			UserID:  admin.ID,
			Type:    entity.NotificationSystem,
			Title:   "Appointment suggestion pending",
			Message: message,
		}
		if err := u.notifier.Notify(ctx, input); err != nil {
			u.log.WithError(err).Warn("failed to deliver suggestion notification")
		}
	}
}

// notifyDecision tells the proposing doctor how the review ended.
func (u *suggestionUsecase) notifyDecision(ctx context.Context, suggestion *entity.AppointmentSuggestion) {
	input := service.NotificationInput{
		UserID: suggestion.DoctorID,
		Type:   entity.NotificationSystem,
		Title:  "Appointment suggestion reviewed",
		Message: fmt.Sprintf("Your suggestion for %s has been %s.",
			suggestion.StartTime.Format("Monday, 2 January 2006 at 15:04"), suggestion.Status),
	}
	if err := u.notifier.Notify(ctx, input); err != nil {
		u.log.WithError(err).Warn("failed to deliver decision notification")
	}
}
