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
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrWorkplaceNotFound   = errors.New("workplace not found")
	ErrRoleMismatch        = errors.New("user role does not match the requested slot")
	ErrInvalidTimeRange    = errors.New("start time must be before end time")
	ErrDoctorBusy          = errors.New("doctor already has an appointment in this time range")
	ErrPatientBusy         = errors.New("patient already has an appointment in this time range")
)

type AppointmentUsecase interface {
	Create(ctx context.Context, actorID uuid.UUID, request *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	FindAll(ctx context.Context) (*dto.AppointmentListResponse, error)
	FindByDateRange(ctx context.Context, start, end time.Time) (*dto.AppointmentListResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, request *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	workplaceRepo   repository.WorkplaceRepository
	slotLock        service.SlotLocker
	notifier        *service.NotificationService
	events          *service.ScheduleEventService
	audit           service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	workplaceRepo repository.WorkplaceRepository,
	slotLock service.SlotLocker,
	notifier *service.NotificationService,
	events *service.ScheduleEventService,
	audit service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		workplaceRepo:   workplaceRepo,
		slotLock:        slotLock,
		notifier:        notifier,
		events:          events,
		audit:           audit,
	}
}

func (u *appointmentUsecase) Create(ctx context.Context, actorID uuid.UUID, request *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
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

	doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), request.DoctorID)
	if err != nil {
		u.log.WithError(err).Error("failed to load doctor")
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsDoctor() {
		return nil, ErrRoleMismatch
	}

	if request.WorkplaceID != nil {
		workplace, err := u.workplaceRepo.FindByID(u.db.WithContext(ctx), *request.WorkplaceID)
		if err != nil {
			u.log.WithError(err).Error("failed to load workplace")
			return nil, err
		}
		if workplace == nil {
			return nil, ErrWorkplaceNotFound
		}
	}

	// The doctor's calendar is serialized for the whole check-then-insert
	// sequence so two concurrent bookings cannot both pass the overlap
	// check and insert conflicting rows.
	release, err := u.slotLock.Acquire(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	defer release()

	appointment := &entity.Appointment{
		PatientID:         request.PatientID,
		DoctorID:          request.DoctorID,
		WorkplaceID:       request.WorkplaceID,
		StartTime:         request.StartTime,
		EndTime:           request.EndTime,
		Status:            entity.AppointmentStatusScheduled,
		Notes:             request.Notes,
		RecurrenceRule:    entity.RecurrenceRule(request.RecurrenceRule),
		RecurrenceEndDate: request.RecurrenceEndDate,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		conflict, err := u.appointmentRepo.FindConflicting(tx, repository.ScopeDoctor, request.DoctorID, request.StartTime, request.EndTime, nil)
		if err != nil {
			return err
		}
		if conflict != nil {
			return ErrDoctorBusy
		}

		conflict, err = u.appointmentRepo.FindConflicting(tx, repository.ScopePatient, request.PatientID, request.StartTime, request.EndTime, nil)
		if err != nil {
			return err
		}
		if conflict != nil {
			return ErrPatientBusy
		}

		if err := u.appointmentRepo.Create(tx, appointment); err != nil {
			return err
		}

		if appointment.IsRecurring() {
			if err := u.createOccurrences(tx, appointment); err != nil {
				return err
			}
		}

		return u.audit.LogCreate(tx, &actorID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), appointment)
	})
	if err != nil {
		if !errors.Is(err, ErrDoctorBusy) && !errors.Is(err, ErrPatientBusy) {
			u.log.WithError(err).Error("failed to create appointment")
		}
		return nil, err
	}

	appointment.Patient = *patient
	appointment.Doctor = *doctor

	u.notifyParticipants(ctx, appointment, entity.NotificationAppointmentCreated)
	u.events.Publish(ctx, "created", appointment)

	return converter.AppointmentToResponse(appointment), nil
}

// createOccurrences expands the recurrence series inside the creating
// transaction. Occurrences that collide with the doctor's existing calendar
// are dropped silently; the rest are inserted in one batch so the series
// lands all-or-nothing.
func (u *appointmentUsecase) createOccurrences(tx *gorm.DB, parent *entity.Appointment) error {
	candidates := expandOccurrences(parent.StartTime, parent.EndTime, parent.RecurrenceRule, *parent.RecurrenceEndDate)

	var children []entity.Appointment
	for _, candidate := range candidates {
		conflict, err := u.appointmentRepo.FindConflicting(tx, repository.ScopeDoctor, parent.DoctorID, candidate.Start, candidate.End, nil)
		if err != nil {
			return err
		}
		if conflict != nil {
			continue
		}
		children = append(children, entity.Appointment{
			PatientID:           parent.PatientID,
			DoctorID:            parent.DoctorID,
			WorkplaceID:         parent.WorkplaceID,
			StartTime:           candidate.Start,
			EndTime:             candidate.End,
			Status:              entity.AppointmentStatusScheduled,
			Notes:               parent.Notes,
			ParentAppointmentID: &parent.ID,
		})
	}

	return u.appointmentRepo.CreateBatch(tx, children)
}

func (u *appointmentUsecase) FindByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.WithError(err).Error("failed to load appointment")
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) FindAll(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.WithError(err).Error("failed to list appointments")
		return nil, err
	}
	return converter.AppointmentsToListResponse(appointments), nil
}

func (u *appointmentUsecase) FindByDateRange(ctx context.Context, start, end time.Time) (*dto.AppointmentListResponse, error) {
	if !start.Before(end) {
		return nil, ErrInvalidTimeRange
	}
	appointments, err := u.appointmentRepo.FindByDateRange(u.db.WithContext(ctx), start, end)
	if err != nil {
		u.log.WithError(err).Error("failed to list appointments by date range")
		return nil, err
	}
	return converter.AppointmentsToListResponse(appointments), nil
}

func (u *appointmentUsecase) Update(ctx context.Context, actorID, id uuid.UUID, request *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.WithError(err).Error("failed to load appointment")
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	previous := *appointment

	if request.PatientID != nil && *request.PatientID != appointment.PatientID {
		patient, err := u.userRepo.FindByID(u.db.WithContext(ctx), *request.PatientID)
		if err != nil {
			return nil, err
		}
		if patient == nil {
			return nil, ErrPatientNotFound
		}
		if !patient.IsPatient() {
			return nil, ErrRoleMismatch
		}
		appointment.PatientID = *request.PatientID
		appointment.Patient = *patient
	}
	if request.DoctorID != nil && *request.DoctorID != appointment.DoctorID {
		doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), *request.DoctorID)
		if err != nil {
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
		if !doctor.IsDoctor() {
			return nil, ErrRoleMismatch
		}
		appointment.DoctorID = *request.DoctorID
		appointment.Doctor = *doctor
	}
	if request.WorkplaceID != nil {
		workplace, err := u.workplaceRepo.FindByID(u.db.WithContext(ctx), *request.WorkplaceID)
		if err != nil {
			return nil, err
		}
		if workplace == nil {
			return nil, ErrWorkplaceNotFound
		}
		appointment.WorkplaceID = request.WorkplaceID
	}

	timeChanged := false
	if request.StartTime != nil {
		appointment.StartTime = *request.StartTime
		timeChanged = true
	}
	if request.EndTime != nil {
		appointment.EndTime = *request.EndTime
		timeChanged = true
	}
	if !appointment.StartTime.Before(appointment.EndTime) {
		return nil, ErrInvalidTimeRange
	}
	if request.Notes != nil {
		appointment.Notes = *request.Notes
	}

	wasCancelled := false
	if request.Status != nil {
		next := entity.AppointmentStatus(*request.Status)
		wasCancelled = next == entity.AppointmentStatusCancelled && !appointment.IsCancelled()
		appointment.Status = next
	}

	// Any non-cancelled row occupies its slot, so moving an appointment or
	// completing it in the same request still re-checks the calendar.
	needsConflictCheck := !appointment.IsCancelled() && (timeChanged || request.DoctorID != nil)
	if needsConflictCheck {
		// Reschedules re-check the doctor's calendar only, excluding the
		// appointment being moved so it never collides with itself.
		release, err := u.slotLock.Acquire(ctx, appointment.DoctorID)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if needsConflictCheck {
			conflict, err := u.appointmentRepo.FindConflicting(tx, repository.ScopeDoctor, appointment.DoctorID, appointment.StartTime, appointment.EndTime, &appointment.ID)
			if err != nil {
				return err
			}
			if conflict != nil {
				return ErrDoctorBusy
			}
		}

		if err := u.appointmentRepo.Update(tx, appointment); err != nil {
			return err
		}

		return u.audit.LogUpdate(tx, &actorID, entity.AuditActionAppointmentUpdate, "appointment", appointment.ID.String(), &previous, appointment)
	})
	if err != nil {
		if !errors.Is(err, ErrDoctorBusy) {
			u.log.WithError(err).Error("failed to update appointment")
		}
		return nil, err
	}

	u.loadParticipants(ctx, appointment)
	if wasCancelled {
		u.notifyParticipants(ctx, appointment, entity.NotificationAppointmentCancelled)
		u.events.Publish(ctx, "cancelled", appointment)
	} else {
		u.notifyParticipants(ctx, appointment, entity.NotificationAppointmentUpdated)
		u.events.Publish(ctx, "updated", appointment)
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.WithError(err).Error("failed to load appointment")
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	// Participants are told the visit is cancelled before the row goes
	// away so the notification text can still read the live record.
	u.notifyParticipants(ctx, appointment, entity.NotificationAppointmentCancelled)

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.appointmentRepo.Delete(tx, id); err != nil {
			return err
		}
		return u.audit.LogDelete(tx, &actorID, entity.AuditActionAppointmentDelete, "appointment", appointment.ID.String(), appointment)
	})
	if err != nil {
		u.log.WithError(err).Error("failed to delete appointment")
		return err
	}

	u.events.Publish(ctx, "deleted", appointment)
	return nil
}

// loadParticipants fills the patient and doctor relations when the record
// came without preloads, so notification texts have names to use.
func (u *appointmentUsecase) loadParticipants(ctx context.Context, appointment *entity.Appointment) {
	if appointment.Patient.ID == uuid.Nil {
		if patient, err := u.userRepo.FindByID(u.db.WithContext(ctx), appointment.PatientID); err == nil && patient != nil {
			appointment.Patient = *patient
		}
	}
	if appointment.Doctor.ID == uuid.Nil {
		if doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), appointment.DoctorID); err == nil && doctor != nil {
			appointment.Doctor = *doctor
		}
	}
}

// notifyParticipants files in-app notifications with email copies for both
// sides of the visit. Best-effort: failures are logged and dropped.
func (u *appointmentUsecase) notifyParticipants(ctx context.Context, appointment *entity.Appointment, notificationType string) {
	u.loadParticipants(ctx, appointment)

	titles := map[string]string{
		entity.NotificationAppointmentCreated:   "Appointment scheduled",
		entity.NotificationAppointmentUpdated:   "Appointment updated",
		entity.NotificationAppointmentCancelled: "Appointment cancelled",
	}
	verbs := map[string]string{
		entity.NotificationAppointmentCreated:   "scheduled",
		entity.NotificationAppointmentUpdated:   "updated",
		entity.NotificationAppointmentCancelled: "cancelled",
	}

	emailData := service.AppointmentEmailData{
		Date:        appointment.StartTime.Format("Monday, 2 January 2006"),
		Time:        appointment.StartTime.Format("15:04"),
		DoctorName:  appointment.Doctor.FullName(),
		PatientName: appointment.Patient.FullName(),
	}

	inputs := []service.NotificationInput{
		{
			UserID: appointment.PatientID,
			Type:   notificationType,
			Title:  titles[notificationType],
			Message: fmt.Sprintf("Your appointment with %s on %s at %s has been %s.",
				emailData.DoctorName, emailData.Date, emailData.Time, verbs[notificationType]),
			AppointmentID: &appointment.ID,
			Email:         &emailData,
		},
		{
			UserID: appointment.DoctorID,
			Type:   notificationType,
			Title:  titles[notificationType],
			Message: fmt.Sprintf("Appointment with %s on %s at %s has been %s.",
				emailData.PatientName, emailData.Date, emailData.Time, verbs[notificationType]),
			AppointmentID: &appointment.ID,
			Email:         &emailData,
		},
	}
	for _, input := range inputs {
		if err := u.notifier.Notify(ctx, input); err != nil {
			u.log.WithError(err).Warn("failed to deliver appointment notification")
		}
	}
}
