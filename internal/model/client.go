package model

// ClientSummary is one row of the admin client report, keyed by phone number.
type ClientSummary struct {
	Phone        string
	Name         string
	Appointments []*Appointment
	Reviews      []*Review
	AvgRating    *float64 // nil when the client has no reviews
	ReviewCount  int
}

// ClientProfile is the per-phone detail view.
type ClientProfile struct {
	Phone          string
	Name           string
	Appointments   []*Appointment
	Reviews        []*Review
	ConfirmedCount int
}
