package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
)

func WorkplaceToResponse(workplace *entity.Workplace) *dto.WorkplaceResponse {
	isActive := true
	if workplace.IsActive != nil {
		isActive = *workplace.IsActive
	}
	resp := &dto.WorkplaceResponse{
		ID:          workplace.ID,
		Name:        workplace.Name,
		Description: workplace.Description,
		Type:        workplace.Type,
		Location:    workplace.Location,
		Equipment:   workplace.Equipment,
		IsActive:    isActive,
		CreatedAt:   workplace.CreatedAt,
		UpdatedAt:   workplace.UpdatedAt,
	}
	for i := range workplace.Assignments {
		if summary := UserToSummary(&workplace.Assignments[i].Doctor); summary != nil {
			resp.Doctors = append(resp.Doctors, *summary)
		}
	}
	return resp
}

func WorkplacesToListResponse(workplaces []entity.Workplace) *dto.WorkplaceListResponse {
	responses := make([]dto.WorkplaceResponse, len(workplaces))
	for i := range workplaces {
		responses[i] = *WorkplaceToResponse(&workplaces[i])
	}
	return &dto.WorkplaceListResponse{Workplaces: responses, Total: len(responses)}
}
