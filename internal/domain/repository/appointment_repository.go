package repository

import (
	"time"

	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConflictScope selects whose calendar an overlap check runs against.
type ConflictScope string

const (
	ScopeDoctor  ConflictScope = "doctor"
	ScopePatient ConflictScope = "patient"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	// CreateBatch inserts all rows in one statement; callers wrap it in a
	// transaction so a recurrence series is applied all-or-nothing.
	CreateBatch(db *gorm.DB, appointments []entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	// FindByDateRange returns appointments whose start time falls inside
	// [start, end], ordered ascending.
	FindByDateRange(db *gorm.DB, start, end time.Time) ([]entity.Appointment, error)
	// FindConflicting returns the first non-cancelled appointment of the
	// owner overlapping [start, end) under half-open semantics, excluding
	// excludeID when set. Nil result means the slot is free.
	FindConflicting(db *gorm.DB, scope ConflictScope, ownerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (*entity.Appointment, error)
	// FindScheduledBetween returns scheduled appointments starting inside
	// [from, to] with patient and doctor preloaded, for the reminder sweep.
	FindScheduledBetween(db *gorm.DB, from, to time.Time) ([]entity.Appointment, error)
	CountByWorkplace(db *gorm.DB, workplaceID uuid.UUID) (int64, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	Delete(db *gorm.DB, id uuid.UUID) error
}
