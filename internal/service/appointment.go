package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hairstudio/salon/internal/model"
	"github.com/hairstudio/salon/internal/repository"
	"github.com/hairstudio/salon/internal/validation"
)

type AppointmentInput struct {
	Name    string
	Phone   string
	Branch  string
	Service string
	Date    string
}

// AppointmentNotifier is told about new booking requests after they are committed.
type AppointmentNotifier interface {
	AppointmentRequested(ctx context.Context, appointment *model.Appointment) error
}

type AppointmentService struct {
	store         *repository.Store
	notifier      AppointmentNotifier
	operatorName  string
	operatorPhone string
}

func NewAppointmentService(store *repository.Store, notifier AppointmentNotifier, operatorName, operatorPhone string) *AppointmentService {
	return &AppointmentService{
		store:         store,
		notifier:      notifier,
		operatorName:  operatorName,
		operatorPhone: strings.TrimPrefix(strings.TrimSpace(operatorPhone), "+"),
	}
}

// Book persists an unconfirmed appointment and returns the WhatsApp URL to redirect to.
func (s *AppointmentService) Book(ctx context.Context, in AppointmentInput) (*model.Appointment, string, error) {
	err := validation.Required(
		validation.Field{Name: "name", Value: in.Name},
		validation.Field{Name: "phone", Value: in.Phone},
		validation.Field{Name: "branch", Value: in.Branch},
		validation.Field{Name: "service", Value: in.Service},
		validation.Field{Name: "date", Value: in.Date},
	)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrValidation, err)
	}

	appointment := &model.Appointment{
		ID:            uuid.New().String(),
		CustomerName:  strings.TrimSpace(in.Name),
		PhoneNumber:   strings.TrimSpace(in.Phone),
		Service:       strings.TrimSpace(in.Service),
		DateRequested: strings.TrimSpace(in.Date),
		Branch:        strings.TrimSpace(in.Branch),
		CreatedAt:     time.Now().UTC(),
	}

	err = s.store.WithTx(ctx, func(r *repository.Repositories) error {
		return r.Appointments.Create(ctx, appointment)
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create appointment: %w", err)
	}

	if s.notifier != nil {
		err = s.notifier.AppointmentRequested(ctx, appointment)
		if err != nil {
			slog.Warn("failed to send booking notification", "error", err, "appointment_id", appointment.ID)
		}
	}

	return appointment, s.HandoffURL(appointment), nil
}

// BookingMessage is the prefilled chat text sent to the operator.
func (s *AppointmentService) BookingMessage(a *model.Appointment) string {
	return fmt.Sprintf("Hi %s, I am %s. I'd like to book a %s at your %s branch on %s.",
		s.operatorName, a.CustomerName, a.Service, a.Branch, a.DateRequested)
}

// HandoffURL builds the wa.me deep link carrying the booking message.
func (s *AppointmentService) HandoffURL(a *model.Appointment) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", s.operatorPhone, encodeText(s.BookingMessage(a)))
}

// encodeText percent-encodes a query value with spaces as %20.
func encodeText(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

func (s *AppointmentService) Pending(ctx context.Context) ([]*model.Appointment, error) {
	return s.store.Appointments.ByConfirmation(ctx, false)
}

func (s *AppointmentService) Confirmed(ctx context.Context) ([]*model.Appointment, error) {
	return s.store.Appointments.ByConfirmation(ctx, true)
}

func (s *AppointmentService) Confirm(ctx context.Context, id string) error {
	return s.store.WithTx(ctx, func(r *repository.Repositories) error {
		return r.Appointments.Confirm(ctx, id)
	})
}

func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	return s.store.WithTx(ctx, func(r *repository.Repositories) error {
		return r.Appointments.Delete(ctx, id)
	})
}
