package usecase

import (
	"io"
	"testing"
	"time"

	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/repository"
	"clinic-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory sqlite database with a hand-written,
// sqlite-friendly schema mirroring the production tables used by the
// scheduling flows.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	schema := []string{
		`CREATE TABLE roles (
			id INTEGER PRIMARY KEY,
			role_name TEXT NOT NULL UNIQUE,
			description TEXT
		);`,
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			role_id INTEGER NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL DEFAULT '',
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			phone TEXT,
			date_of_birth DATETIME,
			address TEXT,
			medical_history TEXT,
			specialization TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE workplaces (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			description TEXT,
			type TEXT,
			location TEXT,
			equipment TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE workplace_assignments (
			id TEXT PRIMARY KEY,
			workplace_id TEXT NOT NULL,
			doctor_id TEXT NOT NULL,
			created_at DATETIME,
			UNIQUE (workplace_id, doctor_id)
		);`,
		`CREATE TABLE appointments (
			id TEXT PRIMARY KEY,
			patient_id TEXT NOT NULL,
			doctor_id TEXT NOT NULL,
			workplace_id TEXT,
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			status TEXT NOT NULL DEFAULT 'scheduled',
			notes TEXT,
			recurrence_rule TEXT,
			recurrence_end_date DATETIME,
			parent_appointment_id TEXT REFERENCES appointments(id) ON DELETE SET NULL,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE appointment_suggestions (
			id TEXT PRIMARY KEY,
			doctor_id TEXT NOT NULL,
			patient_id TEXT NOT NULL,
			workplace_id TEXT,
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			notes TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			reviewed_at DATETIME,
			reviewed_by TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE medical_records (
			id TEXT PRIMARY KEY,
			appointment_id TEXT NOT NULL UNIQUE,
			patient_id TEXT NOT NULL,
			doctor_id TEXT NOT NULL,
			created_by_id TEXT NOT NULL,
			diagnosis TEXT NOT NULL,
			treatment TEXT,
			notes TEXT,
			recommendations TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE file_attachments (
			id TEXT PRIMARY KEY,
			medical_record_id TEXT,
			user_id TEXT NOT NULL,
			file_name TEXT NOT NULL,
			file_data TEXT NOT NULL,
			file_size INTEGER NOT NULL,
			mime_type TEXT NOT NULL,
			description TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE notifications (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			read BOOLEAN NOT NULL DEFAULT FALSE,
			appointment_id TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE audit_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT,
			action TEXT NOT NULL,
			metadata TEXT,
			created_at DATETIME
		);`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin},
		{ID: entity.RoleIDDoctor, RoleName: entity.RoleDoctor},
		{ID: entity.RoleIDPatient, RoleName: entity.RolePatient},
	}
	if err := db.Create(&roles).Error; err != nil {
		t.Fatalf("seed roles: %v", err)
	}

	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func seedUser(t *testing.T, db *gorm.DB, roleID int, email string) *entity.User {
	t.Helper()
	user := &entity.User{
		ID:        uuid.New(),
		RoleID:    roleID,
		Email:     email,
		Password:  "x",
		FirstName: "Test",
		LastName:  "User",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

// testEnv bundles the wired usecases every scheduling test needs.
type testEnv struct {
	db            *gorm.DB
	appointments  AppointmentUsecase
	suggestions   SuggestionUsecase
	workplaces    WorkplaceUsecase
	notifications NotificationUsecase
	files         FileUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	log := newTestLogger()

	userRepo := repository.NewUserRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	suggestionRepo := repository.NewSuggestionRepository()
	workplaceRepo := repository.NewWorkplaceRepository()
	medicalRecordRepo := repository.NewMedicalRecordRepository()
	fileRepo := repository.NewFileAttachmentRepository()
	notificationRepo := repository.NewNotificationRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	notifier := service.NewNotificationService(db, log, notificationRepo, userRepo, nil)
	events := service.NewScheduleEventService(nil, log)
	audit := service.NewAuditService(log, auditLogRepo)
	authorizer := entity.NewRoleAuthorizer()

	return &testEnv{
		db: db,
		appointments: NewAppointmentUsecase(
			db, log, appointmentRepo, userRepo, workplaceRepo,
			service.NewLocalSlotLock(), notifier, events, audit,
		),
		suggestions: NewSuggestionUsecase(
			db, log, suggestionRepo, appointmentRepo, userRepo,
			authorizer, notifier, events, audit,
		),
		workplaces: NewWorkplaceUsecase(
			db, log, workplaceRepo, appointmentRepo, userRepo, audit,
		),
		notifications: NewNotificationUsecase(db, log, notificationRepo),
		files:         NewFileUsecase(db, log, fileRepo, medicalRecordRepo, authorizer),
	}
}

// mustTime parses an RFC3339 timestamp or fails the test.
func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}
