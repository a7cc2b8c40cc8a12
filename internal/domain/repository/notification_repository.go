package repository

import (
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *entity.Notification) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Notification, error)
	// FindByUserID returns the newest notifications first, capped at limit.
	FindByUserID(db *gorm.DB, userID uuid.UUID, limit int) ([]entity.Notification, error)
	FindUnreadByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Notification, error)
	CountUnread(db *gorm.DB, userID uuid.UUID) (int64, error)
	// MarkRead flips the given notifications to read, scoped to the owner.
	MarkRead(db *gorm.DB, userID uuid.UUID, ids []uuid.UUID) error
	MarkAllRead(db *gorm.DB, userID uuid.UUID) error
	// ExistsForAppointment reports whether a notification of the given type
	// already references the appointment (reminder dedup).
	ExistsForAppointment(db *gorm.DB, appointmentID uuid.UUID, notificationType string) (bool, error)
	Delete(db *gorm.DB, id uuid.UUID) error
}
