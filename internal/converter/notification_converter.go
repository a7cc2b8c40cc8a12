package converter

import (
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
)

func NotificationToResponse(notification *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:            notification.ID,
		Type:          notification.Type,
		Title:         notification.Title,
		Message:       notification.Message,
		Read:          notification.Read,
		AppointmentID: notification.AppointmentID,
		CreatedAt:     notification.CreatedAt,
	}
}

func NotificationsToListResponse(notifications []entity.Notification, unread int64) *dto.NotificationListResponse {
	responses := make([]dto.NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = *NotificationToResponse(&notifications[i])
	}
	return &dto.NotificationListResponse{Notifications: responses, Unread: unread, Total: len(responses)}
}
