package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
)

func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	resp := &dto.MedicalRecordResponse{
		ID:              record.ID,
		AppointmentID:   record.AppointmentID,
		PatientID:       record.PatientID,
		DoctorID:        record.DoctorID,
		CreatedByID:     record.CreatedByID,
		Diagnosis:       record.Diagnosis,
		Treatment:       record.Treatment,
		Notes:           record.Notes,
		Recommendations: record.Recommendations,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
	for i := range record.Attachments {
		resp.Attachments = append(resp.Attachments, *FileAttachmentToResponse(&record.Attachments[i]))
	}
	return resp
}

func MedicalRecordsToListResponse(records []entity.MedicalRecord) *dto.MedicalRecordListResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i := range records {
		responses[i] = *MedicalRecordToResponse(&records[i])
	}
	return &dto.MedicalRecordListResponse{Records: responses, Total: len(responses)}
}
