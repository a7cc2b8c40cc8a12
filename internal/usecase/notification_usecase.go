package usecase

import (
	"context"
	"errors"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// notificationListLimit caps one page of in-app notifications.
const notificationListLimit = 100

type NotificationUsecase interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*dto.NotificationListResponse, error)
	FindUnread(ctx context.Context, userID uuid.UUID) (*dto.NotificationListResponse, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (*dto.UnreadCountResponse, error)
	MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type notificationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
}

func NewNotificationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	notificationRepo repository.NotificationRepository,
) NotificationUsecase {
	return &notificationUsecase{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
	}
}

func (u *notificationUsecase) FindByUser(ctx context.Context, userID uuid.UUID) (*dto.NotificationListResponse, error) {
	notifications, err := u.notificationRepo.FindByUserID(u.db.WithContext(ctx), userID, notificationListLimit)
	if err != nil {
		u.log.WithError(err).Error("failed to list notifications")
		return nil, err
	}
	unread, err := u.notificationRepo.CountUnread(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.WithError(err).Error("failed to count unread notifications")
		return nil, err
	}
	return converter.NotificationsToListResponse(notifications, unread), nil
}

func (u *notificationUsecase) FindUnread(ctx context.Context, userID uuid.UUID) (*dto.NotificationListResponse, error) {
	notifications, err := u.notificationRepo.FindUnreadByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.WithError(err).Error("failed to list unread notifications")
		return nil, err
	}
	return converter.NotificationsToListResponse(notifications, int64(len(notifications))), nil
}

func (u *notificationUsecase) UnreadCount(ctx context.Context, userID uuid.UUID) (*dto.UnreadCountResponse, error) {
	unread, err := u.notificationRepo.CountUnread(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.WithError(err).Error("failed to count unread notifications")
		return nil, err
	}
	return &dto.UnreadCountResponse{Unread: unread}, nil
}

func (u *notificationUsecase) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := u.notificationRepo.MarkRead(u.db.WithContext(ctx), userID, ids); err != nil {
		u.log.WithError(err).Error("failed to mark notifications read")
		return err
	}
	return nil
}

func (u *notificationUsecase) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := u.notificationRepo.MarkAllRead(u.db.WithContext(ctx), userID); err != nil {
		u.log.WithError(err).Error("failed to mark all notifications read")
		return err
	}
	return nil
}

func (u *notificationUsecase) Delete(ctx context.Context, userID, id uuid.UUID) error {
	notification, err := u.notificationRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.WithError(err).Error("failed to load notification")
		return err
	}
	if notification == nil || notification.UserID != userID {
		return ErrNotificationNotFound
	}
	if err := u.notificationRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		u.log.WithError(err).Error("failed to delete notification")
		return err
	}
	return nil
}
