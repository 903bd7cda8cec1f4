package service

import (
	"testing"
	"time"

	"github.com/hairstudio/salon/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func appt(id, name, phone string, confirmed bool, age time.Duration) *model.Appointment {
	return &model.Appointment{
		ID: id, CustomerName: name, PhoneNumber: phone, Service: "Cut",
		DateRequested: "Fri", Branch: "North", IsConfirmed: confirmed, CreatedAt: t0.Add(-age),
	}
}

func rev(id, name, phone string, rating int, age time.Duration) *model.Review {
	return &model.Review{
		ID: id, CustomerName: name, PhoneNumber: phone, Rating: rating,
		Content: "x", CreatedAt: t0.Add(-age),
	}
}

func TestAggregateClients(t *testing.T) {
	appointments := []*model.Appointment{
		appt("a1", "Asha", "111", true, 0),
		appt("a2", "Ravi", "333", false, 0),
	}
	reviews := []*model.Review{
		rev("r1", "Asha K", "111", 4, 0),
		rev("r2", "Bina", "222", 5, 0),
		rev("r3", "Nobody", "", 1, 0),
	}

	clients := AggregateClients(appointments, reviews)
	require.Len(t, clients, 2)

	asha := clients[0]
	assert.Equal(t, "111", asha.Phone)
	assert.Equal(t, "Asha", asha.Name)
	assert.Len(t, asha.Appointments, 1)
	assert.Equal(t, 1, asha.ReviewCount)
	require.NotNil(t, asha.AvgRating)
	assert.Equal(t, 4.0, *asha.AvgRating)

	bina := clients[1]
	assert.Equal(t, "222", bina.Phone)
	assert.Equal(t, "Bina", bina.Name)
	assert.Empty(t, bina.Appointments)
	require.NotNil(t, bina.AvgRating)
	assert.Equal(t, 5.0, *bina.AvgRating)
}

func TestAggregateClientsLastAppointmentNames(t *testing.T) {
	// Newest first, so the older booking is applied last and wins.
	appointments := []*model.Appointment{
		appt("new", "Ann", "111", true, 0),
		appt("old", "Annie", "111", true, time.Hour),
	}

	clients := AggregateClients(appointments, nil)
	require.Len(t, clients, 1)
	assert.Equal(t, "Annie", clients[0].Name)
	assert.Len(t, clients[0].Appointments, 2)
	assert.Nil(t, clients[0].AvgRating)
	assert.Zero(t, clients[0].ReviewCount)
}

func TestAggregateClientsAverageRounds(t *testing.T) {
	reviews := []*model.Review{
		rev("r1", "A", "9", 5, 0),
		rev("r2", "A", "9", 5, 0),
		rev("r3", "A", "9", 4, 0),
	}
	clients := AggregateClients(nil, reviews)
	require.Len(t, clients, 1)
	assert.Equal(t, 4.7, *clients[0].AvgRating)
	assert.Equal(t, 3, clients[0].ReviewCount)
}

func TestClientsFromStore(t *testing.T) {
	f := newFixture(t)
	svc := NewClientService(f.store)

	require.NoError(t, f.store.Appointments.Create(ctx, appt("a1", "Asha", "111", true, 0)))
	require.NoError(t, f.store.Appointments.Create(ctx, appt("a2", "Ravi", "333", false, 0)))
	mustReview(t, f.store, rev("r1", "Asha", "111", 4, 0))
	mustReview(t, f.store, rev("r2", "Bina", "222", 5, 0))

	clients, err := svc.Clients(ctx)
	require.NoError(t, err)

	phones := []string{}
	for _, c := range clients {
		phones = append(phones, c.Phone)
	}
	assert.Equal(t, []string{"111", "222"}, phones)
}

func TestClientProfile(t *testing.T) {
	f := newFixture(t)
	svc := NewClientService(f.store)

	_, err := svc.Profile(ctx, "000")
	assert.ErrorIs(t, err, ErrClientNotFound)

	require.NoError(t, f.store.Appointments.Create(ctx, appt("a1", "Asha", "111", true, time.Hour)))
	require.NoError(t, f.store.Appointments.Create(ctx, appt("a2", "Asha B", "111", false, 0)))
	mustReview(t, f.store, rev("r1", "Asha", "111", 4, 0))

	profile, err := svc.Profile(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, "Asha B", profile.Name)
	assert.Equal(t, 1, profile.ConfirmedCount)
	assert.Len(t, profile.Appointments, 2)
	assert.Len(t, profile.Reviews, 1)

	mustReview(t, f.store, rev("r2", "Bina", "222", 5, 0))
	profile, err = svc.Profile(ctx, "222")
	require.NoError(t, err)
	assert.Equal(t, "Bina", profile.Name)
	assert.Zero(t, profile.ConfirmedCount)
}
