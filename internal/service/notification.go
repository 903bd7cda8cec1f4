package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hairstudio/salon/internal/model"
	"github.com/hairstudio/salon/internal/validation"
	"github.com/resend/resend-go/v2"
)

// NotificationService emails the operator about new booking requests.
type NotificationService struct {
	client    *resend.Client
	fromEmail string
	toEmail   string
	adminURL  string
	appName   string
	isDev     bool
}

func NewNotificationService(apiKey, fromEmail, toEmail, appURL, appName string, isDev bool) *NotificationService {
	if toEmail != "" {
		err := validation.ValidateEmail(toEmail)
		if err != nil {
			slog.Warn("booking notifications disabled", "error", err, "to", toEmail)
			toEmail = ""
		}
	}

	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &NotificationService{
		client:    client,
		fromEmail: fromEmail,
		toEmail:   toEmail,
		adminURL:  appURL + "/admin/appointments_log",
		appName:   appName,
		isDev:     isDev,
	}
}

func (s *NotificationService) AppointmentRequested(ctx context.Context, a *model.Appointment) error {
	if s.toEmail == "" {
		return nil
	}

	subject, body := appointmentRequestedTemplate(a, s.adminURL, s.appName)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "appointment_requested", "to", s.toEmail, "subject", subject)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{s.toEmail},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err == nil {
		slog.Info("email sent", "type", "appointment_requested", "to", s.toEmail)
	}
	return err
}

func appointmentRequestedTemplate(a *model.Appointment, adminURL, appName string) (string, string) {
	subject := fmt.Sprintf("New booking request: %s on %s", a.Service, a.DateRequested)
	body := fmt.Sprintf(`%s asked to book a %s at the %s branch on %s.

Phone: %s

Confirm or remove it here:
%s

%s`, a.CustomerName, a.Service, a.Branch, a.DateRequested, a.PhoneNumber, adminURL, appName)

	return subject, body
}
