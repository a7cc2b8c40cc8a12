package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
)

func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		ID:                  appointment.ID,
		PatientID:           appointment.PatientID,
		DoctorID:            appointment.DoctorID,
		WorkplaceID:         appointment.WorkplaceID,
		StartTime:           appointment.StartTime,
		EndTime:             appointment.EndTime,
		Status:              string(appointment.Status),
		Notes:               appointment.Notes,
		RecurrenceRule:      string(appointment.RecurrenceRule),
		RecurrenceEndDate:   appointment.RecurrenceEndDate,
		ParentAppointmentID: appointment.ParentAppointmentID,
		Patient:             UserToSummary(&appointment.Patient),
		Doctor:              UserToSummary(&appointment.Doctor),
		CreatedAt:           appointment.CreatedAt,
		UpdatedAt:           appointment.UpdatedAt,
	}
}

func AppointmentsToListResponse(appointments []entity.Appointment) *dto.AppointmentListResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return &dto.AppointmentListResponse{Appointments: responses, Total: len(responses)}
}
