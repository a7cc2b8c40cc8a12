package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
)

func suggestionRequest(patientID uuid.UUID, start, end time.Time) *dto.CreateSuggestionRequest {
	return &dto.CreateSuggestionRequest{
		PatientID: patientID,
		StartTime: start,
		EndTime:   end,
	}
}

func TestSuggestionCreateRequiresProposer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")
	admin := seedUser(t, env.db, entity.RoleIDAdmin, "admin@clinic.test")

	start := mustTime(t, "2024-03-01T10:00:00Z")
	req := suggestionRequest(patient.ID, start, start.Add(time.Hour))

	if _, err := env.suggestions.Create(ctx, patient.ID, entity.RoleIDPatient, req); !errors.Is(err, ErrForbidden) {
		t.Fatalf("patient proposing: got %v, want ErrForbidden", err)
	}
	if _, err := env.suggestions.Create(ctx, admin.ID, entity.RoleIDAdmin, req); !errors.Is(err, ErrForbidden) {
		t.Fatalf("admin proposing: got %v, want ErrForbidden", err)
	}
}

func TestSuggestionCreateChecksDoctorCalendar(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := seedUser(t, env.db, entity.RoleIDAdmin, "admin@clinic.test")
	doctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor@clinic.test")
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")
	otherPatient := seedUser(t, env.db, entity.RoleIDPatient, "patient2@clinic.test")

	start := mustTime(t, "2024-03-01T10:00:00Z")
	end := start.Add(time.Hour)

	if _, err := env.appointments.Create(ctx, admin.ID,
		createRequest(otherPatient.ID, doctor.ID, start, end)); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	_, err := env.suggestions.Create(ctx, doctor.ID, entity.RoleIDDoctor,
		suggestionRequest(patient.ID, start.Add(30*time.Minute), end.Add(30*time.Minute)))
	if !errors.Is(err, ErrDoctorBusy) {
		t.Fatalf("overlapping proposal: got %v, want ErrDoctorBusy", err)
	}

	created, err := env.suggestions.Create(ctx, doctor.ID, entity.RoleIDDoctor,
		suggestionRequest(patient.ID, end, end.Add(time.Hour)))
	if err != nil {
		t.Fatalf("free-slot proposal: %v", err)
	}
	if created.Status != string(entity.SuggestionStatusPending) {
		t.Fatalf("new suggestion status: got %q, want pending", created.Status)
	}

	// The waiting administrator is told a proposal needs review.
	var count int64
	if err := env.db.Model(&entity.Notification{}).
		Where("user_id = ? AND type = ?", admin.ID, entity.NotificationSystem).
		Count(&count).Error; err != nil {
		t.Fatalf("count admin notifications: %v", err)
	}
	if count != 1 {
		t.Fatalf("admin notifications: got %d, want 1", count)
	}
}

func TestSuggestionApprovalCreatesAppointment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := seedUser(t, env.db, entity.RoleIDAdmin, "admin@clinic.test")
	doctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor@clinic.test")
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")

	start := mustTime(t, "2024-03-01T10:00:00Z")
	suggestion, err := env.suggestions.Create(ctx, doctor.ID, entity.RoleIDDoctor,
		suggestionRequest(patient.ID, start, start.Add(time.Hour)))
	if err != nil {
		t.Fatalf("create suggestion: %v", err)
	}

	decided, err := env.suggestions.Decide(ctx, suggestion.ID, admin.ID, entity.RoleIDAdmin,
		&dto.DecideSuggestionRequest{Status: string(entity.SuggestionStatusApproved)})
	if err != nil {
		t.Fatalf("approve suggestion: %v", err)
	}
	if decided.Suggestion.Status != string(entity.SuggestionStatusApproved) {
		t.Fatalf("decided status: got %q, want approved", decided.Suggestion.Status)
	}
	if decided.Suggestion.ReviewedBy == nil || *decided.Suggestion.ReviewedBy != admin.ID {
		t.Fatalf("reviewed by: got %v, want %v", decided.Suggestion.ReviewedBy, admin.ID)
	}
	if decided.Appointment == nil {
		t.Fatal("approval returned no appointment")
	}

	var count int64
	if err := env.db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND patient_id = ?", doctor.ID, patient.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count appointments: %v", err)
	}
	if count != 1 {
		t.Fatalf("appointments after approval: got %d, want exactly 1", count)
	}

	booked, err := env.appointments.FindByID(ctx, decided.Appointment.ID)
	if err != nil {
		t.Fatalf("load booked appointment: %v", err)
	}
	if !booked.StartTime.Equal(start) {
		t.Fatalf("booked start: got %v, want %v", booked.StartTime, start)
	}
}

func TestSuggestionDecideIsFinal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := seedUser(t, env.db, entity.RoleIDAdmin, "admin@clinic.test")
	doctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor@clinic.test")
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")

	start := mustTime(t, "2024-03-01T10:00:00Z")
	suggestion, err := env.suggestions.Create(ctx, doctor.ID, entity.RoleIDDoctor,
		suggestionRequest(patient.ID, start, start.Add(time.Hour)))
	if err != nil {
		t.Fatalf("create suggestion: %v", err)
	}

	rejected := &dto.DecideSuggestionRequest{Status: string(entity.SuggestionStatusRejected)}
	decided, err := env.suggestions.Decide(ctx, suggestion.ID, admin.ID, entity.RoleIDAdmin, rejected)
	if err != nil {
		t.Fatalf("reject suggestion: %v", err)
	}
	if decided.Appointment != nil {
		t.Fatal("rejection must not create an appointment")
	}

	var count int64
	if err := env.db.Model(&entity.Appointment{}).Count(&count).Error; err != nil {
		t.Fatalf("count appointments: %v", err)
	}
	if count != 0 {
		t.Fatalf("appointments after rejection: got %d, want 0", count)
	}

	// A reviewed suggestion cannot be decided again, in either direction.
	approved := &dto.DecideSuggestionRequest{Status: string(entity.SuggestionStatusApproved)}
	if _, err := env.suggestions.Decide(ctx, suggestion.ID, admin.ID, entity.RoleIDAdmin, approved); !errors.Is(err, ErrSuggestionAlreadyReviewed) {
		t.Fatalf("second decision: got %v, want ErrSuggestionAlreadyReviewed", err)
	}
}

func TestSuggestionDecideRequiresPrivilege(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor@clinic.test")
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")

	start := mustTime(t, "2024-03-01T10:00:00Z")
	suggestion, err := env.suggestions.Create(ctx, doctor.ID, entity.RoleIDDoctor,
		suggestionRequest(patient.ID, start, start.Add(time.Hour)))
	if err != nil {
		t.Fatalf("create suggestion: %v", err)
	}

	approved := &dto.DecideSuggestionRequest{Status: string(entity.SuggestionStatusApproved)}
	if _, err := env.suggestions.Decide(ctx, suggestion.ID, doctor.ID, entity.RoleIDDoctor, approved); !errors.Is(err, ErrForbidden) {
		t.Fatalf("doctor deciding: got %v, want ErrForbidden", err)
	}
}

func TestSuggestionListsAreRoleScoped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := seedUser(t, env.db, entity.RoleIDAdmin, "admin@clinic.test")
	doctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor@clinic.test")
	otherDoctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor2@clinic.test")
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")

	start := mustTime(t, "2024-03-01T10:00:00Z")
	mine, err := env.suggestions.Create(ctx, doctor.ID, entity.RoleIDDoctor,
		suggestionRequest(patient.ID, start, start.Add(time.Hour)))
	if err != nil {
		t.Fatalf("create first suggestion: %v", err)
	}
	if _, err := env.suggestions.Create(ctx, otherDoctor.ID, entity.RoleIDDoctor,
		suggestionRequest(patient.ID, start.Add(2*time.Hour), start.Add(3*time.Hour))); err != nil {
		t.Fatalf("create second suggestion: %v", err)
	}

	all, err := env.suggestions.FindAll(ctx, admin.ID, entity.RoleIDAdmin)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if all.Total != 2 {
		t.Fatalf("admin list total: got %d, want 2", all.Total)
	}

	own, err := env.suggestions.FindAll(ctx, doctor.ID, entity.RoleIDDoctor)
	if err != nil {
		t.Fatalf("doctor list: %v", err)
	}
	if own.Total != 1 || own.Suggestions[0].ID != mine.ID {
		t.Fatalf("doctor list: got %d suggestions, want only the doctor's own", own.Total)
	}

	if _, err := env.suggestions.FindAll(ctx, patient.ID, entity.RoleIDPatient); !errors.Is(err, ErrForbidden) {
		t.Fatalf("patient list: got %v, want ErrForbidden", err)
	}

	if _, err := env.suggestions.FindByID(ctx, mine.ID, otherDoctor.ID, entity.RoleIDDoctor); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other doctor reading a foreign suggestion: got %v, want ErrForbidden", err)
	}
}
