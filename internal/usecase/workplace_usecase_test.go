package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
)

func TestWorkplaceCreateRejectsDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := seedUser(t, env.db, entity.RoleIDAdmin, "admin@clinic.test")

	req := &dto.CreateWorkplaceRequest{Name: "Cabinet 1", Type: "consultation"}
	if _, err := env.workplaces.Create(ctx, admin.ID, req); err != nil {
		t.Fatalf("create workplace: %v", err)
	}

	if _, err := env.workplaces.Create(ctx, admin.ID, req); !errors.Is(err, ErrWorkplaceNameTaken) {
		t.Fatalf("duplicate name: got %v, want ErrWorkplaceNameTaken", err)
	}
}

func TestWorkplaceDeleteBlockedWhileInUse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := seedUser(t, env.db, entity.RoleIDAdmin, "admin@clinic.test")
	doctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor@clinic.test")
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")

	workplace, err := env.workplaces.Create(ctx, admin.ID, &dto.CreateWorkplaceRequest{Name: "Cabinet 1"})
	if err != nil {
		t.Fatalf("create workplace: %v", err)
	}

	start := mustTime(t, "2024-03-01T10:00:00Z")
	req := createRequest(patient.ID, doctor.ID, start, start.Add(time.Hour))
	req.WorkplaceID = &workplace.ID
	booked, err := env.appointments.Create(ctx, admin.ID, req)
	if err != nil {
		t.Fatalf("book appointment: %v", err)
	}

	if err := env.workplaces.Delete(ctx, admin.ID, workplace.ID); !errors.Is(err, ErrWorkplaceInUse) {
		t.Fatalf("delete with appointments: got %v, want ErrWorkplaceInUse", err)
	}

	if err := env.appointments.Delete(ctx, admin.ID, booked.ID); err != nil {
		t.Fatalf("remove appointment: %v", err)
	}
	if err := env.workplaces.Delete(ctx, admin.ID, workplace.ID); err != nil {
		t.Fatalf("delete unused workplace: %v", err)
	}
}

func TestWorkplaceDoctorAssignment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := seedUser(t, env.db, entity.RoleIDAdmin, "admin@clinic.test")
	doctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor@clinic.test")
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")

	workplace, err := env.workplaces.Create(ctx, admin.ID, &dto.CreateWorkplaceRequest{Name: "Cabinet 1"})
	if err != nil {
		t.Fatalf("create workplace: %v", err)
	}

	assign := &dto.AssignDoctorRequest{DoctorID: doctor.ID}
	if err := env.workplaces.AssignDoctor(ctx, admin.ID, workplace.ID, assign); err != nil {
		t.Fatalf("assign doctor: %v", err)
	}
	if err := env.workplaces.AssignDoctor(ctx, admin.ID, workplace.ID, assign); !errors.Is(err, ErrDoctorAlreadyAssigned) {
		t.Fatalf("second assignment: got %v, want ErrDoctorAlreadyAssigned", err)
	}
	if err := env.workplaces.AssignDoctor(ctx, admin.ID, workplace.ID, &dto.AssignDoctorRequest{DoctorID: patient.ID}); !errors.Is(err, ErrRoleMismatch) {
		t.Fatalf("assigning a patient: got %v, want ErrRoleMismatch", err)
	}

	loaded, err := env.workplaces.FindByID(ctx, workplace.ID)
	if err != nil {
		t.Fatalf("load workplace: %v", err)
	}
	if len(loaded.Doctors) != 1 || loaded.Doctors[0].ID != doctor.ID {
		t.Fatalf("workplace doctors: got %+v, want the assigned doctor", loaded.Doctors)
	}

	if err := env.workplaces.UnassignDoctor(ctx, admin.ID, workplace.ID, doctor.ID); err != nil {
		t.Fatalf("unassign doctor: %v", err)
	}
	if err := env.workplaces.UnassignDoctor(ctx, admin.ID, workplace.ID, doctor.ID); !errors.Is(err, ErrAssignmentNotFound) {
		t.Fatalf("second unassign: got %v, want ErrAssignmentNotFound", err)
	}
}
