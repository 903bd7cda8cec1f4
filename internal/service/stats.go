package service

import (
	"context"
	"fmt"

	"github.com/hairstudio/salon/internal/model"
	"github.com/hairstudio/salon/internal/repository"
)

// DefaultAverage is shown while no review has been approved yet.
const DefaultAverage = 5.0

type StatsService struct {
	store *repository.Store
}

func NewStatsService(store *repository.Store) *StatsService {
	return &StatsService{store: store}
}

// Ratings summarizes approved reviews for the about page.
func (s *StatsService) Ratings(ctx context.Context) (model.RatingStats, error) {
	ratings, err := s.store.Reviews.ApprovedRatings(ctx)
	if err != nil {
		return model.RatingStats{}, fmt.Errorf("failed to load ratings: %w", err)
	}
	return SummarizeRatings(ratings), nil
}

// SummarizeRatings averages ratings to one decimal. An empty slice reports
// DefaultAverage with a count of zero.
func SummarizeRatings(ratings []int) model.RatingStats {
	if len(ratings) == 0 {
		return model.RatingStats{Average: DefaultAverage, Count: 0}
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return model.RatingStats{
		Average: round1(float64(sum) / float64(len(ratings))),
		Count:   len(ratings),
	}
}

func (s *StatsService) Dashboard(ctx context.Context) (model.DashboardCounts, error) {
	var counts model.DashboardCounts
	var err error

	counts.Works, err = s.store.Works.Count(ctx)
	if err != nil {
		return counts, fmt.Errorf("failed to count works: %w", err)
	}
	counts.PendingReviews, err = s.store.Reviews.CountPending(ctx)
	if err != nil {
		return counts, fmt.Errorf("failed to count pending reviews: %w", err)
	}
	counts.PendingAppointments, err = s.store.Appointments.CountPending(ctx)
	if err != nil {
		return counts, fmt.Errorf("failed to count pending appointments: %w", err)
	}
	return counts, nil
}
