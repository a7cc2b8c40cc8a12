package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the unified identity table. Patients, doctors and administrators
// are all users; the role decides what the account may do.
type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID         int        `gorm:"not null;index" json:"role_id"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password       string     `gorm:"type:text;not null" json:"-"`
	FirstName      string     `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName       string     `gorm:"type:varchar(255);not null" json:"last_name"`
	Phone          string     `gorm:"type:varchar(50)" json:"phone,omitempty"`
	DateOfBirth    *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Address        string     `gorm:"type:text" json:"address,omitempty"`
	MedicalHistory string     `gorm:"type:text" json:"medical_history,omitempty"`
	Specialization string     `gorm:"type:varchar(255)" json:"specialization,omitempty"`
	IsActive       *bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FullName joins first and last name, falling back to the email when both
// are empty so notification texts always have someone to address.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// IsDoctor checks if the user carries the doctor role
func (u *User) IsDoctor() bool {
	return u.RoleID == RoleIDDoctor
}

// IsPatient checks if the user carries the patient role
func (u *User) IsPatient() bool {
	return u.RoleID == RoleIDPatient
}
