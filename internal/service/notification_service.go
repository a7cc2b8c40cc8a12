package service

import (
	"context"
	"strings"

	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NotificationInput is the notification sink contract: a user, a type, a
// human-readable title and message, and optionally the appointment the
// notification refers to.
type NotificationInput struct {
	UserID        uuid.UUID
	Type          string
	Title         string
	Message       string
	AppointmentID *uuid.UUID
	// Email carries the rendered appointment fields when an email copy
	// should go out; nil means in-app only.
	Email *AppointmentEmailData
}

// NotificationService persists in-app notifications and sends best-effort
// email copies. The email leg never fails the caller: delivery errors are
// logged and swallowed so appointment mutations stay unaffected.
type NotificationService struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	mailer           *Mailer
}

func NewNotificationService(
	db *gorm.DB,
	log *logrus.Logger,
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	mailer *Mailer,
) *NotificationService {
	return &NotificationService{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		mailer:           mailer,
	}
}

// Notify writes the notification row and, when email data is attached,
// sends an email copy to the user's address.
func (s *NotificationService) Notify(ctx context.Context, input NotificationInput) error {
	notification := &entity.Notification{
		UserID:        input.UserID,
		Type:          input.Type,
		Title:         input.Title,
		Message:       input.Message,
		AppointmentID: input.AppointmentID,
	}

	if err := s.notificationRepo.Create(s.db.WithContext(ctx), notification); err != nil {
		s.log.Warnf("Failed to create notification for user %s: %+v", input.UserID, err)
		return err
	}

	if input.Email != nil && s.mailer != nil {
		s.sendEmailCopy(ctx, input)
	}

	return nil
}

func (s *NotificationService) sendEmailCopy(ctx context.Context, input NotificationInput) {
	user, err := s.userRepo.FindByID(s.db.WithContext(ctx), input.UserID)
	if err != nil || user == nil {
		s.log.Warnf("Failed to load user %s for email notification: %+v", input.UserID, err)
		return
	}

	kind := strings.TrimPrefix(input.Type, "appointment_")
	if err := s.mailer.SendAppointmentEmail(user.Email, user.FullName(), kind, *input.Email); err != nil {
		// Email is best-effort: log and move on.
		s.log.Warnf("Failed to send %s email to %s: %+v", kind, user.Email, err)
	}
}
