package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
)

func SuggestionToResponse(suggestion *entity.AppointmentSuggestion) *dto.SuggestionResponse {
	return &dto.SuggestionResponse{
		ID:          suggestion.ID,
		DoctorID:    suggestion.DoctorID,
		PatientID:   suggestion.PatientID,
		WorkplaceID: suggestion.WorkplaceID,
		StartTime:   suggestion.StartTime,
		EndTime:     suggestion.EndTime,
		Status:      string(suggestion.Status),
		Notes:       suggestion.Notes,
		ReviewedAt:  suggestion.ReviewedAt,
		ReviewedBy:  suggestion.ReviewedBy,
		Doctor:      UserToSummary(&suggestion.Doctor),
		Patient:     UserToSummary(&suggestion.Patient),
		CreatedAt:   suggestion.CreatedAt,
		UpdatedAt:   suggestion.UpdatedAt,
	}
}

func SuggestionsToListResponse(suggestions []entity.AppointmentSuggestion) *dto.SuggestionListResponse {
	responses := make([]dto.SuggestionResponse, len(suggestions))
	for i := range suggestions {
		responses[i] = *SuggestionToResponse(&suggestions[i])
	}
	return &dto.SuggestionListResponse{Suggestions: responses, Total: len(responses)}
}
