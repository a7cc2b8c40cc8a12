package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
)

func UserToResponse(user *entity.User) *dto.UserResponse {
	isActive := true
	if user.IsActive != nil {
		isActive = *user.IsActive
	}
	return &dto.UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		Role:           entity.RoleName(user.RoleID),
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Phone:          user.Phone,
		DateOfBirth:    user.DateOfBirth,
		Address:        user.Address,
		MedicalHistory: user.MedicalHistory,
		Specialization: user.Specialization,
		IsActive:       isActive,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

func UserToSummary(user *entity.User) *dto.UserSummary {
	if user == nil || user.ID == uuid.Nil {
		return nil
	}
	return &dto.UserSummary{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Specialization: user.Specialization,
	}
}

func UsersToListResponse(users []entity.User) *dto.UserListResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return &dto.UserListResponse{Users: responses, Total: len(responses)}
}
