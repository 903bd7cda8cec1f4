package model

// RatingStats summarizes approved review ratings.
type RatingStats struct {
	Average float64
	Count   int
}

// DashboardCounts backs the admin landing page.
type DashboardCounts struct {
	Works               int
	PendingReviews      int
	PendingAppointments int
}
