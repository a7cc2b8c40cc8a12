package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types routed through the notification sink
const (
	NotificationAppointmentCreated   = "appointment_created"
	NotificationAppointmentUpdated   = "appointment_updated"
	NotificationAppointmentCancelled = "appointment_cancelled"
	NotificationAppointmentReminder  = "appointment_reminder"
	NotificationSystem               = "system"
)

// Notification is an in-app message for a single user. Delivery is
// best-effort: failures never roll back the mutation that produced it.
type Notification struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Type          string     `gorm:"type:varchar(50);not null;index" json:"type"`
	Title         string     `gorm:"type:varchar(255);not null" json:"title"`
	Message       string     `gorm:"type:text;not null" json:"message"`
	Read          bool       `gorm:"not null;default:false;index" json:"read"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
