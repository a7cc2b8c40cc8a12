package usecase

import (
	"context"
	"errors"
	"testing"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
)

func seedMedicalRecord(t *testing.T, env *testEnv, doctorID, patientID uuid.UUID) *entity.MedicalRecord {
	t.Helper()
	appointment := &entity.Appointment{
		ID:        uuid.New(),
		PatientID: patientID,
		DoctorID:  doctorID,
		StartTime: mustTime(t, "2024-03-01T10:00:00Z"),
		EndTime:   mustTime(t, "2024-03-01T11:00:00Z"),
		Status:    entity.AppointmentStatusCompleted,
	}
	if err := env.db.Create(appointment).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	record := &entity.MedicalRecord{
		ID:            uuid.New(),
		AppointmentID: appointment.ID,
		PatientID:     patientID,
		DoctorID:      doctorID,
		CreatedByID:   doctorID,
		Diagnosis:     "test diagnosis",
	}
	if err := env.db.Create(record).Error; err != nil {
		t.Fatalf("seed medical record: %v", err)
	}
	return record
}

func TestFileUploadValidatesDataURI(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	doctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor@clinic.test")

	cases := []struct {
		name string
		data string
		want error
	}{
		{"missing prefix", "aGVsbG8=", ErrInvalidFileData},
		{"no comma", "data:image/png;base64", ErrInvalidFileData},
		{"not base64 encoded", "data:image/png,plaintext", ErrInvalidFileData},
		{"invalid payload", "data:image/png;base64,!!!", ErrInvalidFileData},
		{"non-image mime", "data:application/pdf;base64,aGVsbG8=", ErrUnsupportedFileType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.files.Upload(ctx, doctor.ID, &dto.CreateFileAttachment{
				FileName: "scan.png",
				FileData: tc.data,
			})
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}

	uploaded, err := env.files.Upload(ctx, doctor.ID, &dto.CreateFileAttachment{
		FileName: "scan.png",
		FileData: "data:image/png;base64,aGVsbG8=",
	})
	if err != nil {
		t.Fatalf("valid upload: %v", err)
	}
	if uploaded.MimeType != "image/png" {
		t.Fatalf("mime type: got %q, want image/png", uploaded.MimeType)
	}
	if uploaded.FileSize != int64(len("hello")) {
		t.Fatalf("decoded size: got %d, want %d", uploaded.FileSize, len("hello"))
	}
}

func TestFileListByRecordIsParticipantScoped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := seedUser(t, env.db, entity.RoleIDAdmin, "admin@clinic.test")
	doctor := seedUser(t, env.db, entity.RoleIDDoctor, "doctor@clinic.test")
	patient := seedUser(t, env.db, entity.RoleIDPatient, "patient@clinic.test")
	stranger := seedUser(t, env.db, entity.RoleIDPatient, "patient2@clinic.test")

	record := seedMedicalRecord(t, env, doctor.ID, patient.ID)

	uploaded, err := env.files.Upload(ctx, doctor.ID, &dto.CreateFileAttachment{
		FileName:        "scan.png",
		FileData:        "data:image/png;base64,aGVsbG8=",
		MedicalRecordID: &record.ID,
	})
	if err != nil {
		t.Fatalf("upload attachment: %v", err)
	}

	for _, actor := range []*entity.User{doctor, patient, admin} {
		list, err := env.files.FindByRecord(ctx, record.ID, actor.ID, actor.RoleID)
		if err != nil {
			t.Fatalf("list as %s: %v", actor.Email, err)
		}
		if list.Total != 1 || list.Files[0].ID != uploaded.ID {
			t.Fatalf("list as %s: got %d files, want the uploaded one", actor.Email, list.Total)
		}
	}

	if _, err := env.files.FindByRecord(ctx, record.ID, stranger.ID, stranger.RoleID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("list as stranger: got %v, want ErrForbidden", err)
	}
	if _, err := env.files.FindByRecord(ctx, uuid.New(), doctor.ID, doctor.RoleID); !errors.Is(err, ErrMedicalRecordNotFound) {
		t.Fatalf("list for unknown record: got %v, want ErrMedicalRecordNotFound", err)
	}
}
