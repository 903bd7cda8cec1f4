package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hairstudio/salon/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeRatings(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		avg     float64
		count   int
	}{
		{"none", nil, 5.0, 0},
		{"single", []int{3}, 3.0, 1},
		{"rounds up", []int{5, 5, 4}, 4.7, 3},
		{"rounds down", []int{5, 4, 4}, 4.3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizeRatings(tt.ratings)
			assert.Equal(t, tt.avg, got.Average)
			assert.Equal(t, tt.count, got.Count)
		})
	}
}

func TestRatingsIgnoreUnapproved(t *testing.T) {
	f := newFixture(t)
	svc := NewStatsService(f.store)

	stats, err := svc.Ratings(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.RatingStats{Average: 5.0, Count: 0}, stats)

	for _, r := range []struct {
		rating   int
		approved bool
	}{{5, true}, {5, true}, {4, true}, {1, false}} {
		mustReview(t, f.store, &model.Review{
			ID: uuid.New().String(), CustomerName: "x", Content: "x",
			Rating: r.rating, IsApproved: r.approved, CreatedAt: time.Now().UTC(),
		})
	}

	stats, err = svc.Ratings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4.7, stats.Average)
	assert.Equal(t, 3, stats.Count)
}

func TestDashboardCounts(t *testing.T) {
	f := newFixture(t)
	svc := NewStatsService(f.store)

	_, _, err := NewAppointmentService(f.store, nil, "Arpit", "1").Book(ctx, booking)
	require.NoError(t, err)
	_, err = NewReviewService(f.store, f.images).Submit(ctx, ReviewInput{Name: "A", Rating: "5", Content: "x"})
	require.NoError(t, err)

	counts, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DashboardCounts{Works: 0, PendingReviews: 1, PendingAppointments: 1}, counts)
}
