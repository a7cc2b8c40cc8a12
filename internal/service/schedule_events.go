package service

import (
	"context"
	"encoding/json"
	"time"

	"clinic-scheduler/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ScheduleEventChannel is the Redis channel carrying calendar mutations.
// A real-time relay (dashboard push) subscribes to it; the API only fans
// events out.
const ScheduleEventChannel = "schedule:events"

type scheduleEvent struct {
	Action        string    `json:"action"`
	AppointmentID string    `json:"appointment_id"`
	DoctorID      string    `json:"doctor_id"`
	PatientID     string    `json:"patient_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	EmittedAt     time.Time `json:"emitted_at"`
}

// ScheduleEventService publishes appointment mutations. Publishing is
// best-effort: a dropped event only delays a dashboard refresh.
type ScheduleEventService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewScheduleEventService(redisClient *redis.Client, log *logrus.Logger) *ScheduleEventService {
	return &ScheduleEventService{redisClient: redisClient, log: log}
}

// Publish emits a schedule event for the given action (created, updated,
// cancelled, deleted).
func (s *ScheduleEventService) Publish(ctx context.Context, action string, appointment *entity.Appointment) {
	if s.redisClient == nil {
		return
	}

	event := scheduleEvent{
		Action:        action,
		AppointmentID: appointment.ID.String(),
		DoctorID:      appointment.DoctorID.String(),
		PatientID:     appointment.PatientID.String(),
		StartTime:     appointment.StartTime,
		EndTime:       appointment.EndTime,
		EmittedAt:     time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.log.Warnf("Failed to marshal schedule event: %+v", err)
		return
	}

	if err := s.redisClient.Publish(ctx, ScheduleEventChannel, payload).Err(); err != nil {
		s.log.Warnf("Failed to publish schedule event for appointment %s: %+v", appointment.ID, err)
	}
}
