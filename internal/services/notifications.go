package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/harentsoaR/doctor-portfolio-api/internal/config"
	"github.com/harentsoaR/doctor-portfolio-api/internal/models"
)

// Notifier tells the doctor about new bookings.
type Notifier interface {
	AppointmentBooked(recipient string, apt models.AppointmentInput)
}

// Mailer is the part of *gomail.Dialer the service needs.
type Mailer interface {
	DialAndSend(m ...*gomail.Message) error
}

// NotificationService mails the settings' notification address.
type NotificationService struct {
	mailer Mailer
	from   string
	// When false the mail is sent inline.
	async bool

	pending sync.WaitGroup
}

// NewNotificationService returns nil when SMTP is not configured; a nil
// *NotificationService is a valid no-op Notifier.
func NewNotificationService(cfg config.SMTPConfig) *NotificationService {
	if !cfg.Enabled() {
		return nil
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &NotificationService{
		mailer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
		async:  true,
	}
}

// AppointmentBooked sends in a goroutine so it doesn't block the API response.
// Failures are logged and never reach the client.
func (s *NotificationService) AppointmentBooked(recipient string, apt models.AppointmentInput) {
	if s == nil || recipient == "" {
		return
	}
	msg := s.appointmentMessage(recipient, apt)
	if !s.async {
		s.send(recipient, msg)
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.send(recipient, msg)
	}()
}

// Wait blocks until every mail handed to a goroutine has been sent or has
// failed, or until ctx is done.
func (s *NotificationService) Wait(ctx context.Context) error {
	if s == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *NotificationService) send(recipient string, msg *gomail.Message) {
	if err := s.mailer.DialAndSend(msg); err != nil {
		log.Error().Err(err).Str("to", recipient).Msg("failed to send appointment notification")
		return
	}
	log.Info().Str("to", recipient).Msg("appointment notification sent")
}

func (s *NotificationService) appointmentMessage(recipient string, apt models.AppointmentInput) *gomail.Message {
	body := fmt.Sprintf("New appointment request\n\nName: %s\nEmail: %s\nDate: %s\nTime: %s\n",
		apt.Name, apt.Email, apt.Date, apt.Time)
	if apt.Phone != nil && *apt.Phone != "" {
		body += fmt.Sprintf("Phone: %s\n", *apt.Phone)
	}
	if apt.Note != nil && *apt.Note != "" {
		body += fmt.Sprintf("Note: %s\n", *apt.Note)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", recipient)
	m.SetHeader("Reply-To", apt.Email)
	m.SetHeader("Subject", fmt.Sprintf("Appointment request: %s on %s at %s", apt.Name, apt.Date, apt.Time))
	m.SetBody("text/plain", body)
	return m
}
