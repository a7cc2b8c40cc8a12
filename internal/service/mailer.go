package service

import (
	"fmt"
	"net/smtp"

	"clinic-scheduler/config"

	"github.com/sirupsen/logrus"
)

// AppointmentEmailData carries the fields rendered into appointment emails.
type AppointmentEmailData struct {
	Date        string
	Time        string
	DoctorName  string
	PatientName string
}

// Mailer sends appointment emails over plain SMTP. When disabled via config
// every send is a debug-logged no-op, which keeps the notification path
// identical in development and tests.
type Mailer struct {
	cfg config.SMTPConfig
	log *logrus.Logger
}

func NewMailer(cfg config.SMTPConfig, log *logrus.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// SendAppointmentEmail renders and sends one of the four appointment email
// kinds: created, updated, cancelled, reminder.
func (m *Mailer) SendAppointmentEmail(to, userName, kind string, data AppointmentEmailData) error {
	if !m.cfg.Enabled {
		m.log.Debugf("Email sending disabled, skipping %s email to %s", kind, to)
		return nil
	}

	subject, body := renderAppointmentEmail(userName, kind, data)

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.cfg.From, to, subject, body,
	)

	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	return nil
}

func renderAppointmentEmail(userName, kind string, data AppointmentEmailData) (string, string) {
	var subject, intro, outro string

	switch kind {
	case "created":
		subject = "New appointment scheduled"
		intro = "A new appointment has been scheduled for you:"
		outro = "Please do not forget your appointment."
	case "updated":
		subject = "Appointment rescheduled"
		intro = "Your appointment has been changed:"
		outro = "Please check the new appointment time."
	case "cancelled":
		subject = "Appointment cancelled"
		intro = "Unfortunately your appointment has been cancelled:"
		outro = "If you have any questions, please contact us."
	case "reminder":
		subject = "Appointment reminder"
		intro = "This is a reminder for your upcoming appointment:"
		outro = "Please do not forget your appointment!"
	default:
		subject = "Appointment notification"
		intro = "There is an update regarding your appointment:"
		outro = ""
	}

	body := fmt.Sprintf("<h2>Hello, %s!</h2><p>%s</p><ul><li><strong>Date:</strong> %s</li><li><strong>Time:</strong> %s</li>",
		userName, intro, data.Date, data.Time)
	if data.DoctorName != "" {
		body += fmt.Sprintf("<li><strong>Doctor:</strong> %s</li>", data.DoctorName)
	}
	if data.PatientName != "" {
		body += fmt.Sprintf("<li><strong>Patient:</strong> %s</li>", data.PatientName)
	}
	body += "</ul>"
	if outro != "" {
		body += fmt.Sprintf("<p>%s</p>", outro)
	}

	return subject, body
}
