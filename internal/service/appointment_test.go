package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/hairstudio/salon/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	calls []*model.Appointment
	err   error
}

func (n *recordingNotifier) AppointmentRequested(_ context.Context, a *model.Appointment) error {
	n.calls = append(n.calls, a)
	return n.err
}

var booking = AppointmentInput{
	Name:    "Asha",
	Phone:   "111",
	Branch:  "North",
	Service: "Haircut",
	Date:    "2025-05-01",
}

func TestBookRedirectsToWhatsApp(t *testing.T) {
	f := newFixture(t)
	notifier := &recordingNotifier{}
	svc := NewAppointmentService(f.store, notifier, "Arpit", "+919999999999")

	appt, redirect, err := svc.Book(ctx, booking)
	require.NoError(t, err)
	assert.False(t, appt.IsConfirmed)

	want := "https://wa.me/919999999999?text=" +
		"Hi%20Arpit%2C%20I%20am%20Asha.%20I%27d%20like%20to%20book%20a%20Haircut%20at%20your%20North%20branch%20on%202025-05-01."
	assert.Equal(t, want, redirect)

	u, err := url.Parse(redirect)
	require.NoError(t, err)
	assert.Equal(t, "Hi Arpit, I am Asha. I'd like to book a Haircut at your North branch on 2025-05-01.", u.Query().Get("text"))

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Asha", pending[0].CustomerName)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, appt.ID, notifier.calls[0].ID)
}

func TestBookEscapesAmpersand(t *testing.T) {
	f := newFixture(t)
	svc := NewAppointmentService(f.store, nil, "Arpit", "1")

	in := booking
	in.Service = "Cut & Colour"
	_, redirect, err := svc.Book(ctx, in)
	require.NoError(t, err)

	u, err := url.Parse(redirect)
	require.NoError(t, err)
	assert.True(t, strings.Contains(u.Query().Get("text"), "Cut & Colour"))
}

func TestBookRequiresAllFields(t *testing.T) {
	f := newFixture(t)
	svc := NewAppointmentService(f.store, nil, "Arpit", "1")

	for _, blank := range []func(*AppointmentInput){
		func(in *AppointmentInput) { in.Name = "" },
		func(in *AppointmentInput) { in.Phone = " " },
		func(in *AppointmentInput) { in.Branch = "" },
		func(in *AppointmentInput) { in.Service = "" },
		func(in *AppointmentInput) { in.Date = "" },
	} {
		in := booking
		blank(&in)
		_, redirect, err := svc.Book(ctx, in)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Empty(t, redirect)
	}

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestBookSurvivesNotifierFailure(t *testing.T) {
	f := newFixture(t)
	svc := NewAppointmentService(f.store, &recordingNotifier{err: errors.New("smtp down")}, "Arpit", "1")

	_, redirect, err := svc.Book(ctx, booking)
	require.NoError(t, err)
	assert.NotEmpty(t, redirect)
}

func TestConfirmAndDeleteAppointment(t *testing.T) {
	f := newFixture(t)
	svc := NewAppointmentService(f.store, nil, "Arpit", "1")

	appt, _, err := svc.Book(ctx, booking)
	require.NoError(t, err)

	require.NoError(t, svc.Confirm(ctx, appt.ID))
	confirmed, err := svc.Confirmed(ctx)
	require.NoError(t, err)
	assert.Len(t, confirmed, 1)

	require.NoError(t, svc.Delete(ctx, appt.ID))
	assert.Error(t, svc.Delete(ctx, appt.ID))
}
