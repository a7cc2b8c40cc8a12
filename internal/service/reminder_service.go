package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"clinic-scheduler/config"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReminderService periodically sweeps upcoming appointments and files
// reminder notifications for both patient and doctor. One reminder per
// appointment: an existing appointment_reminder notification suppresses
// further ones.
type ReminderService struct {
	db               *gorm.DB
	log              *logrus.Logger
	cfg              config.ReminderConfig
	appointmentRepo  repository.AppointmentRepository
	notificationRepo repository.NotificationRepository
	notifier         *NotificationService

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewReminderService(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.ReminderConfig,
	appointmentRepo repository.AppointmentRepository,
	notificationRepo repository.NotificationRepository,
	notifier *NotificationService,
) *ReminderService {
	return &ReminderService{
		db:               db,
		log:              log,
		cfg:              cfg,
		appointmentRepo:  appointmentRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
		stopChan:         make(chan struct{}),
	}
}

// Start launches the background sweep loop. Call Stop during shutdown.
func (s *ReminderService) Start() {
	s.wg.Add(1)
	go s.loop()
}

// Stop shuts the sweep loop down. Safe to call multiple times.
func (s *ReminderService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("ReminderService stopped")
	}
}

func (s *ReminderService) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			if err := s.Sweep(ctx); err != nil {
				s.log.Warnf("Reminder sweep failed: %+v", err)
			}
			cancel()
		}
	}
}

// Sweep scans appointments starting around now+LeadTime and creates
// reminders for those inside the tolerance window.
func (s *ReminderService) Sweep(ctx context.Context) error {
	now := time.Now().UTC()
	target := now.Add(s.cfg.LeadTime)
	from := target.Add(-s.cfg.Window)
	to := target.Add(s.cfg.Window)

	appointments, err := s.appointmentRepo.FindScheduledBetween(s.db.WithContext(ctx), from, to)
	if err != nil {
		return err
	}

	s.log.Infof("Reminder sweep: %d appointments in window", len(appointments))

	created := 0
	for i := range appointments {
		appointment := &appointments[i]

		exists, err := s.notificationRepo.ExistsForAppointment(s.db.WithContext(ctx), appointment.ID, entity.NotificationAppointmentReminder)
		if err != nil {
			s.log.Warnf("Failed to check existing reminder for appointment %s: %+v", appointment.ID, err)
			continue
		}
		if exists {
			continue
		}

		until := appointment.StartTime.Sub(now)
		if until < s.cfg.LeadTime-s.cfg.Window || until > s.cfg.LeadTime+s.cfg.Window {
			continue
		}

		s.createReminders(ctx, appointment)
		created++
	}

	s.log.Infof("Reminder sweep: created %d reminders", created)
	return nil
}

func (s *ReminderService) createReminders(ctx context.Context, appointment *entity.Appointment) {
	date := appointment.StartTime.Format("Monday, 2 January 2006")
	clock := appointment.StartTime.Format("15:04")
	doctorName := appointment.Doctor.FullName()
	patientName := appointment.Patient.FullName()

	patientInput := NotificationInput{
		UserID:        appointment.PatientID,
		Type:          entity.NotificationAppointmentReminder,
		Title:         "Appointment reminder",
		Message:       fmt.Sprintf("Reminder: you have an appointment on %s at %s with Dr. %s.", date, clock, doctorName),
		AppointmentID: &appointment.ID,
		Email:         &AppointmentEmailData{Date: date, Time: clock, DoctorName: doctorName},
	}
	if err := s.notifier.Notify(ctx, patientInput); err != nil {
		s.log.Warnf("Failed to create patient reminder for appointment %s: %+v", appointment.ID, err)
	}

	doctorInput := NotificationInput{
		UserID:        appointment.DoctorID,
		Type:          entity.NotificationAppointmentReminder,
		Title:         "Appointment reminder",
		Message:       fmt.Sprintf("Reminder: you have an appointment with patient %s on %s at %s.", patientName, date, clock),
		AppointmentID: &appointment.ID,
		Email:         &AppointmentEmailData{Date: date, Time: clock, PatientName: patientName},
	}
	if err := s.notifier.Notify(ctx, doctorInput); err != nil {
		s.log.Warnf("Failed to create doctor reminder for appointment %s: %+v", appointment.ID, err)
	}
}
