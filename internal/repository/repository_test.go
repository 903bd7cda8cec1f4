package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hairstudio/salon/internal/db/dbtest"
	"github.com/hairstudio/salon/internal/model"
	"github.com/hairstudio/salon/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *repository.Store {
	t.Helper()
	return repository.NewStore(dbtest.New(t))
}

func work(title, hairType string, age time.Duration) *model.Work {
	return &model.Work{
		ID:          uuid.New().String(),
		Title:       title,
		HairType:    hairType,
		BeforeImage: "b.jpg",
		AfterImage:  "a.jpg",
		CreatedAt:   base.Add(-age),
	}
}

func review(name string, rating int, approved bool, age time.Duration) *model.Review {
	return &model.Review{
		ID:           uuid.New().String(),
		CustomerName: name,
		Rating:       rating,
		Content:      "lovely",
		IsApproved:   approved,
		CreatedAt:    base.Add(-age),
	}
}

func titles(works []*model.Work) []string {
	var out []string
	for _, w := range works {
		out = append(out, w.Title)
	}
	return out
}

func names(reviews []*model.Review) []string {
	var out []string
	for _, r := range reviews {
		out = append(out, r.CustomerName)
	}
	return out
}

func TestWorksFilterAndOrder(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.Works.Create(ctx, work("old curly", "Curly", 2*time.Hour)))
	require.NoError(t, store.Works.Create(ctx, work("new curly", "curly", time.Hour)))
	require.NoError(t, store.Works.Create(ctx, work("straight", "Straight", 0)))

	all, err := store.Works.Works(ctx, repository.HairTypeAll)
	require.NoError(t, err)
	assert.Equal(t, []string{"straight", "new curly", "old curly"}, titles(all))

	curly, err := store.Works.Works(ctx, "CURLY")
	require.NoError(t, err)
	assert.Equal(t, []string{"new curly", "old curly"}, titles(curly))

	none, err := store.Works.Works(ctx, "wavy")
	require.NoError(t, err)
	assert.Empty(t, none)

	types, err := store.Works.HairTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"curly", "straight"}, types)
}

func TestWorkReelLinkRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	w := work("reel", "", 0)
	link := "https://www.instagram.com/reel/abc/embed"
	w.ReelLink = &link
	require.NoError(t, store.Works.Create(ctx, w))

	got, err := store.Works.ByID(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ReelLink)
	assert.Equal(t, link, *got.ReelLink)
	assert.True(t, got.HasReel())
}

func TestWorkDeleteTwice(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	w := work("gone", "", 0)
	require.NoError(t, store.Works.Create(ctx, w))

	require.NoError(t, store.Works.Delete(ctx, w.ID))
	assert.ErrorIs(t, store.Works.Delete(ctx, w.ID), repository.ErrWorkNotFound)

	_, err := store.Works.ByID(ctx, w.ID)
	assert.ErrorIs(t, err, repository.ErrWorkNotFound)
}

func TestApprovedReviewsOnly(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.Reviews.Create(ctx, review("visible", 5, true, 0)))
	require.NoError(t, store.Reviews.Create(ctx, review("hidden", 5, false, 0)))

	got, err := store.Reviews.Approved(ctx, model.ReviewFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"visible"}, names(got))
}

func TestApprovedReviewsStarsAndSort(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	a := review("a", 5, true, 3*time.Hour)
	a.Kudos = 10
	b := review("b", 5, true, 2*time.Hour)
	b.Kudos = 10
	c := review("c", 4, true, time.Hour)
	c.Kudos = 1
	for _, r := range []*model.Review{a, b, c} {
		require.NoError(t, store.Reviews.Create(ctx, r))
	}

	byKudos, err := store.Reviews.Approved(ctx, model.ReviewFilter{Sort: model.ReviewSortKudos})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, names(byKudos))

	newest, err := store.Reviews.Approved(ctx, model.ReviewFilter{Sort: model.ReviewSortNewest})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, names(newest))

	fives, err := store.Reviews.Approved(ctx, model.ReviewFilter{Stars: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, names(fives))
}

func TestFeaturedRequiresApproval(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	approved := review("approved", 5, true, 0)
	approved.IsFeatured = true
	pending := review("pending", 5, false, 0)
	pending.IsFeatured = true
	require.NoError(t, store.Reviews.Create(ctx, approved))
	require.NoError(t, store.Reviews.Create(ctx, pending))

	got, err := store.Reviews.Featured(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"approved"}, names(got))
}

func TestIncrementKudos(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	r := review("liked", 5, true, 0)
	require.NoError(t, store.Reviews.Create(ctx, r))

	for i := 1; i <= 3; i++ {
		kudos, err := store.Reviews.IncrementKudos(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, i, kudos)
	}

	_, err := store.Reviews.IncrementKudos(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrReviewNotFound)
}

func TestApproveAndToggleFeatured(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	r := review("mod", 4, false, 0)
	require.NoError(t, store.Reviews.Create(ctx, r))

	require.NoError(t, store.Reviews.Approve(ctx, r.ID))
	got, err := store.Reviews.ByID(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, got.IsApproved)

	featured, err := store.Reviews.ToggleFeatured(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, featured)
	featured, err = store.Reviews.ToggleFeatured(ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, featured)

	assert.ErrorIs(t, store.Reviews.Approve(ctx, "missing"), repository.ErrReviewNotFound)
	_, err = store.Reviews.ToggleFeatured(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrReviewNotFound)
}

func TestPendingCountsAndRatings(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.Reviews.Create(ctx, review("a", 5, true, 0)))
	require.NoError(t, store.Reviews.Create(ctx, review("b", 2, false, 0)))

	pending, err := store.Reviews.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)

	ratings, err := store.Reviews.ApprovedRatings(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, ratings)
}

func TestAppointmentsLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	appt := &model.Appointment{
		ID:            uuid.New().String(),
		CustomerName:  "Asha",
		PhoneNumber:   "111",
		Service:       "Cut",
		DateRequested: "Friday",
		Branch:        "North",
		CreatedAt:     base,
	}
	require.NoError(t, store.Appointments.Create(ctx, appt))

	pending, err := store.Appointments.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)

	require.NoError(t, store.Appointments.Confirm(ctx, appt.ID))
	confirmed, err := store.Appointments.ByConfirmation(ctx, true)
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.True(t, confirmed[0].IsConfirmed)

	byPhone, err := store.Appointments.ByPhone(ctx, "111")
	require.NoError(t, err)
	assert.Len(t, byPhone, 1)

	require.NoError(t, store.Appointments.Delete(ctx, appt.ID))
	assert.ErrorIs(t, store.Appointments.Delete(ctx, appt.ID), repository.ErrAppointmentNotFound)
	assert.ErrorIs(t, store.Appointments.Confirm(ctx, appt.ID), repository.ErrAppointmentNotFound)
}

func TestStoreWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	err := store.WithTx(ctx, func(r *repository.Repositories) error {
		require.NoError(t, r.Works.Create(ctx, work("temp", "", 0)))
		return repository.ErrWorkNotFound
	})
	assert.ErrorIs(t, err, repository.ErrWorkNotFound)

	count, err := store.Works.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
