package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workplace represents a consultation room or treatment cabinet
type Workplace struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Type        string    `gorm:"type:varchar(100)" json:"type,omitempty"`
	Location    string    `gorm:"type:varchar(255)" json:"location,omitempty"`
	Equipment   string    `gorm:"type:text" json:"equipment,omitempty"`
	IsActive    *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Assignments  []WorkplaceAssignment `gorm:"foreignKey:WorkplaceID" json:"assignments,omitempty"`
	Appointments []Appointment         `gorm:"foreignKey:WorkplaceID" json:"appointments,omitempty"`
}

func (Workplace) TableName() string {
	return "workplaces"
}

func (w *Workplace) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// WorkplaceAssignment links a doctor to a workplace
type WorkplaceAssignment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	WorkplaceID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_workplace_doctor" json:"workplace_id"`
	DoctorID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_workplace_doctor" json:"doctor_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctor User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (WorkplaceAssignment) TableName() string {
	return "workplace_assignments"
}

func (a *WorkplaceAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
