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

func createRequest(patientID, doctorID uuid.UUID, start, end time.Time) *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		PatientID: patientID,
		DoctorID:  doctorID,
		StartTime: start,
		EndTime:   end,
	}
}

func TestAppointmentCreateInvalidTimeRange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := seedUser(t, env.db, entity.RoleIDAdmin, "admin@clinic.test")
	doctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor@clinic.test")
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")

	start := mustTime(t, "2024-03-01T10:00:00Z")

	_, err := env.appointments.Create(ctx, admin.ID, createRequest(patient.ID, doctor.ID, start, start))
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("zero-length slot: got %v, want ErrInvalidTimeRange", err)
	}

	_, err = env.appointments.Create(ctx, admin.ID, createRequest(patient.ID, doctor.ID, start, start.Add(-time.Hour)))
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("inverted slot: got %v, want ErrInvalidTimeRange", err)
	}
}

func TestAppointmentCreateRoleMismatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := seedUser(t, env.db, entity.RoleIDAdmin, "admin@clinic.test")
	doctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor@clinic.test")
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")

	start := mustTime(t, "2024-03-01T10:00:00Z")
	end := start.Add(30 * time.Minute)

	// Doctor booked into the patient slot.
	_, err := env.appointments.Create(ctx, admin.ID, createRequest(doctor.ID, doctor.ID, start, end))
	if !errors.Is(err, ErrRoleMismatch) {
		t.Fatalf("doctor as patient: got %v, want ErrRoleMismatch", err)
	}

	// Patient booked into the doctor slot.
	_, err = env.appointments.Create(ctx, admin.ID, createRequest(patient.ID, patient.ID, start, end))
	if !errors.Is(err, ErrRoleMismatch) {
		t.Fatalf("patient as doctor: got %v, want ErrRoleMismatch", err)
	}

	_, err = env.appointments.Create(ctx, admin.ID, createRequest(uuid.New(), doctor.ID, start, end))
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("unknown patient: got %v, want ErrPatientNotFound", err)
	}
}

func TestAppointmentCreateDetectsConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := seedUser(t, env.db, entity.RoleIDAdmin, "admin@clinic.test")
	doctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor@clinic.test")
	otherDoctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor2@clinic.test")
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")
	otherPatient := seedUser(t, env.db, entity.RoleIDPatient, "patient2@clinic.test")

	start := mustTime(t, "2024-03-01T10:00:00Z")
	end := start.Add(time.Hour)

	if _, err := env.appointments.Create(ctx, admin.ID, createRequest(patient.ID, doctor.ID, start, end)); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	// Same doctor, overlapping window, different patient.
	_, err := env.appointments.Create(ctx, admin.ID,
		createRequest(otherPatient.ID, doctor.ID, start.Add(30*time.Minute), end.Add(30*time.Minute)))
	if !errors.Is(err, ErrDoctorBusy) {
		t.Fatalf("doctor overlap: got %v, want ErrDoctorBusy", err)
	}

	// A window fully inside the existing one also conflicts.
	_, err = env.appointments.Create(ctx, admin.ID,
		createRequest(otherPatient.ID, doctor.ID, start.Add(15*time.Minute), start.Add(45*time.Minute)))
	if !errors.Is(err, ErrDoctorBusy) {
		t.Fatalf("contained overlap: got %v, want ErrDoctorBusy", err)
	}

	// Same patient, overlapping window, different doctor.
	_, err = env.appointments.Create(ctx, admin.ID,
		createRequest(patient.ID, otherDoctor.ID, start.Add(30*time.Minute), end.Add(30*time.Minute)))
	if !errors.Is(err, ErrPatientBusy) {
		t.Fatalf("patient overlap: got %v, want ErrPatientBusy", err)
	}

	// A slot starting exactly where the first one ends does not conflict.
	if _, err := env.appointments.Create(ctx, admin.ID,
		createRequest(patient.ID, doctor.ID, end, end.Add(time.Hour))); err != nil {
		t.Fatalf("touching slot: %v", err)
	}
}

func TestAppointmentCancelledSlotIsFree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := seedUser(t, env.db, entity.RoleIDAdmin, "admin@clinic.test")
	doctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor@clinic.test")
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")
	otherPatient := seedUser(t, env.db, entity.RoleIDPatient, "patient2@clinic.test")

	start := mustTime(t, "2024-03-01T10:00:00Z")
	end := start.Add(time.Hour)

	created, err := env.appointments.Create(ctx, admin.ID, createRequest(patient.ID, doctor.ID, start, end))
	if err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	cancelled := string(entity.AppointmentStatusCancelled)
	if _, err := env.appointments.Update(ctx, admin.ID, created.ID, &dto.UpdateAppointmentRequest{Status: &cancelled}); err != nil {
		t.Fatalf("cancel appointment: %v", err)
	}

	if _, err := env.appointments.Create(ctx, admin.ID, createRequest(otherPatient.ID, doctor.ID, start, end)); err != nil {
		t.Fatalf("rebook cancelled slot: %v", err)
	}
}

func TestAppointmentUpdateExcludesSelf(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := seedUser(t, env.db, entity.RoleIDAdmin, "admin@clinic.test")
	doctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor@clinic.test")
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")

	start := mustTime(t, "2024-03-01T10:00:00Z")
	end := start.Add(time.Hour)

	created, err := env.appointments.Create(ctx, admin.ID, createRequest(patient.ID, doctor.ID, start, end))
	if err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	// Shift by 30 minutes: the new window overlaps the old one, which must
	// not count as a conflict with itself.
	newStart := start.Add(30 * time.Minute)
	newEnd := end.Add(30 * time.Minute)
	updated, err := env.appointments.Update(ctx, admin.ID, created.ID, &dto.UpdateAppointmentRequest{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if !updated.StartTime.Equal(newStart) || !updated.EndTime.Equal(newEnd) {
		t.Fatalf("reschedule window: got [%v, %v), want [%v, %v)",
			updated.StartTime, updated.EndTime, newStart, newEnd)
	}
}

func TestAppointmentUpdateRescheduleConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := seedUser(t, env.db, entity.RoleIDAdmin, "admin@clinic.test")
	doctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor@clinic.test")
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")
	otherPatient := seedUser(t, env.db, entity.RoleIDPatient, "patient2@clinic.test")

	start := mustTime(t, "2024-03-01T10:00:00Z")

	if _, err := env.appointments.Create(ctx, admin.ID,
		createRequest(patient.ID, doctor.ID, start, start.Add(time.Hour))); err != nil {
		t.Fatalf("seed first appointment: %v", err)
	}
	second, err := env.appointments.Create(ctx, admin.ID,
		createRequest(otherPatient.ID, doctor.ID, start.Add(2*time.Hour), start.Add(3*time.Hour)))
	if err != nil {
		t.Fatalf("seed second appointment: %v", err)
	}

	// Moving the second appointment onto the first one fails.
	newStart := start.Add(30 * time.Minute)
	newEnd := start.Add(90 * time.Minute)
	_, err = env.appointments.Update(ctx, admin.ID, second.ID, &dto.UpdateAppointmentRequest{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})
	if !errors.Is(err, ErrDoctorBusy) {
		t.Fatalf("reschedule onto busy slot: got %v, want ErrDoctorBusy", err)
	}
}

func TestAppointmentUpdateCompletedStillOccupiesSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := seedUser(t, env.db, entity.RoleIDAdmin, "admin@clinic.test")
	doctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor@clinic.test")
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")
	otherPatient := seedUser(t, env.db, entity.RoleIDPatient, "patient2@clinic.test")

	start := mustTime(t, "2024-03-01T10:00:00Z")

	if _, err := env.appointments.Create(ctx, admin.ID,
		createRequest(patient.ID, doctor.ID, start, start.Add(time.Hour))); err != nil {
		t.Fatalf("seed first appointment: %v", err)
	}
	second, err := env.appointments.Create(ctx, admin.ID,
		createRequest(otherPatient.ID, doctor.ID, start.Add(2*time.Hour), start.Add(3*time.Hour)))
	if err != nil {
		t.Fatalf("seed second appointment: %v", err)
	}

	// Moving the second appointment onto the first slot while marking it
	// completed in the same request must still hit the overlap check:
	// completed rows keep occupying their slot.
	completed := string(entity.AppointmentStatusCompleted)
	newStart := start.Add(30 * time.Minute)
	newEnd := start.Add(90 * time.Minute)
	_, err = env.appointments.Update(ctx, admin.ID, second.ID, &dto.UpdateAppointmentRequest{
		StartTime: &newStart,
		EndTime:   &newEnd,
		Status:    &completed,
	})
	if !errors.Is(err, ErrDoctorBusy) {
		t.Fatalf("completed reschedule onto busy slot: got %v, want ErrDoctorBusy", err)
	}

	var overlapping int64
	if err := env.db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND status != ?", doctor.ID, entity.AppointmentStatusCancelled).
		Where("start_time < ? AND end_time > ?", start.Add(time.Hour), start).
		Count(&overlapping).Error; err != nil {
		t.Fatalf("count overlapping rows: %v", err)
	}
	if overlapping != 1 {
		t.Fatalf("non-cancelled rows in [10:00, 11:00): got %d, want 1", overlapping)
	}

	// Cancelling while moving is still allowed: a cancelled row frees the
	// slot, so no conflict check applies.
	cancelled := string(entity.AppointmentStatusCancelled)
	if _, err := env.appointments.Update(ctx, admin.ID, second.ID, &dto.UpdateAppointmentRequest{
		StartTime: &newStart,
		EndTime:   &newEnd,
		Status:    &cancelled,
	}); err != nil {
		t.Fatalf("cancel while moving: %v", err)
	}
}

func TestAppointmentDeleteNotifiesParticipants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := seedUser(t, env.db, entity.RoleIDAdmin, "admin@clinic.test")
	doctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor@clinic.test")
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")

	start := mustTime(t, "2024-03-01T10:00:00Z")
	created, err := env.appointments.Create(ctx, admin.ID,
		createRequest(patient.ID, doctor.ID, start, start.Add(time.Hour)))
	if err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	if err := env.appointments.Delete(ctx, admin.ID, created.ID); err != nil {
		t.Fatalf("delete appointment: %v", err)
	}

	if _, err := env.appointments.FindByID(ctx, created.ID); !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("after delete: got %v, want ErrAppointmentNotFound", err)
	}

	var count int64
	if err := env.db.Model(&entity.Notification{}).
		Where("type = ?", entity.NotificationAppointmentCancelled).
		Count(&count).Error; err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	if count != 2 {
		t.Fatalf("cancellation notifications: got %d, want 2 (patient and doctor)", count)
	}

	if err := env.appointments.Delete(ctx, admin.ID, created.ID); !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("second delete: got %v, want ErrAppointmentNotFound", err)
	}
}

func TestAppointmentCreateRecurringSeries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := seedUser(t, env.db, entity.RoleIDAdmin, "admin@clinic.test")
	doctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor@clinic.test")
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")
	otherPatient := seedUser(t, env.db, entity.RoleIDPatient, "patient2@clinic.test")

	start := mustTime(t, "2024-01-01T09:00:00Z")
	end := start.Add(30 * time.Minute)

	// The doctor is already busy on Jan 15, so that occurrence must be
	// skipped while the rest of the series lands.
	if _, err := env.appointments.Create(ctx, admin.ID,
		createRequest(otherPatient.ID, doctor.ID,
			mustTime(t, "2024-01-15T09:00:00Z"), mustTime(t, "2024-01-15T10:00:00Z"))); err != nil {
		t.Fatalf("seed blocking appointment: %v", err)
	}

	until := mustTime(t, "2024-01-22T09:00:00Z")
	request := createRequest(patient.ID, doctor.ID, start, end)
	request.RecurrenceRule = string(entity.RecurrenceWeekly)
	request.RecurrenceEndDate = &until

	created, err := env.appointments.Create(ctx, admin.ID, request)
	if err != nil {
		t.Fatalf("create recurring appointment: %v", err)
	}

	var children []entity.Appointment
	if err := env.db.Where("parent_appointment_id = ?", created.ID).
		Order("start_time ASC").Find(&children).Error; err != nil {
		t.Fatalf("load children: %v", err)
	}

	// Candidates were Jan 8, Jan 15 and Jan 22; Jan 15 collides.
	if len(children) != 2 {
		t.Fatalf("children: got %d, want 2", len(children))
	}
	wantStarts := []time.Time{
		mustTime(t, "2024-01-08T09:00:00Z"),
		mustTime(t, "2024-01-22T09:00:00Z"),
	}
	for i, child := range children {
		if !child.StartTime.Equal(wantStarts[i]) {
			t.Errorf("child %d start: got %v, want %v", i, child.StartTime, wantStarts[i])
		}
		if child.ParentAppointmentID == nil || *child.ParentAppointmentID != created.ID {
			t.Errorf("child %d parent: got %v, want %v", i, child.ParentAppointmentID, created.ID)
		}
		if child.RecurrenceRule != "" {
			t.Errorf("child %d carries a recurrence rule of its own", i)
		}
	}
}

func TestAppointmentDeleteParentKeepsChildren(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := seedUser(t, env.db, entity.RoleIDAdmin, "admin@clinic.test")
	doctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor@clinic.test")
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")

	start := mustTime(t, "2024-01-01T09:00:00Z")
	until := mustTime(t, "2024-01-15T09:00:00Z")
	request := createRequest(patient.ID, doctor.ID, start, start.Add(30*time.Minute))
	request.RecurrenceRule = string(entity.RecurrenceWeekly)
	request.RecurrenceEndDate = &until

	created, err := env.appointments.Create(ctx, admin.ID, request)
	if err != nil {
		t.Fatalf("create recurring appointment: %v", err)
	}

	if err := env.appointments.Delete(ctx, admin.ID, created.ID); err != nil {
		t.Fatalf("delete parent: %v", err)
	}

	// The parent link is a back-reference, not ownership: removing the
	// parent detaches the children instead of removing them.
	var children []entity.Appointment
	if err := env.db.Where("doctor_id = ? AND id != ?", doctor.ID, created.ID).
		Order("start_time ASC").Find(&children).Error; err != nil {
		t.Fatalf("load children: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("children after parent delete: got %d, want 2", len(children))
	}
	for i, child := range children {
		if child.ParentAppointmentID != nil {
			t.Errorf("child %d still references the deleted parent", i)
		}
	}
}

func TestAppointmentFindByDateRange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := seedUser(t, env.db, entity.RoleIDAdmin, "admin@clinic.test")
	doctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor@clinic.test")
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")

	day1 := mustTime(t, "2024-03-01T10:00:00Z")
	day2 := mustTime(t, "2024-03-05T10:00:00Z")
	for _, start := range []time.Time{day1, day2} {
		if _, err := env.appointments.Create(ctx, admin.ID,
			createRequest(patient.ID, doctor.ID, start, start.Add(time.Hour))); err != nil {
			t.Fatalf("seed appointment at %v: %v", start, err)
		}
	}

	list, err := env.appointments.FindByDateRange(ctx,
		mustTime(t, "2024-03-01T00:00:00Z"), mustTime(t, "2024-03-02T00:00:00Z"))
	if err != nil {
		t.Fatalf("find by date range: %v", err)
	}
	if len(list.Appointments) != 1 {
		t.Fatalf("ranged list: got %d appointments, want 1", len(list.Appointments))
	}
	if !list.Appointments[0].StartTime.Equal(day1) {
		t.Fatalf("ranged list start: got %v, want %v", list.Appointments[0].StartTime, day1)
	}

	if _, err := env.appointments.FindByDateRange(ctx, day2, day1); !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("inverted range: got %v, want ErrInvalidTimeRange", err)
	}
}
