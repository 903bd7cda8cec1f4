package service

import (
	"testing"

	"github.com/hairstudio/salon/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestAppointmentRequestedTemplate(t *testing.T) {
	a := &model.Appointment{CustomerName: "Asha", PhoneNumber: "+911", Service: "cut", Branch: "Central", DateRequested: "Friday"}

	subject, body := appointmentRequestedTemplate(a, "https://salon.example/admin/appointments_log", "Hair Studio")

	assert.Equal(t, "New booking request: cut on Friday", subject)
	assert.Contains(t, body, "Asha asked to book a cut at the Central branch on Friday.")
	assert.Contains(t, body, "+911")
	assert.Contains(t, body, "https://salon.example/admin/appointments_log")
}

func TestNotificationServiceModes(t *testing.T) {
	a := &model.Appointment{CustomerName: "Asha", Service: "cut"}

	t.Run("no recipient is a no-op", func(t *testing.T) {
		s := NewNotificationService("re_key", "from@example.com", "", "https://salon.example", "Hair Studio", false)
		assert.NoError(t, s.AppointmentRequested(ctx, a))
	})

	t.Run("dev mode only logs", func(t *testing.T) {
		s := NewNotificationService("", "from@example.com", "owner@example.com", "https://salon.example", "Hair Studio", true)
		assert.NoError(t, s.AppointmentRequested(ctx, a))
	})

	t.Run("missing api key", func(t *testing.T) {
		s := NewNotificationService("", "from@example.com", "owner@example.com", "https://salon.example", "Hair Studio", false)
		assert.Error(t, s.AppointmentRequested(ctx, a))
	})

	t.Run("invalid recipient disables notifications", func(t *testing.T) {
		s := NewNotificationService("", "from@example.com", "not-an-email", "https://salon.example", "Hair Studio", false)
		assert.NoError(t, s.AppointmentRequested(ctx, a))
	})
}
