package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hairstudio/salon/internal/model"
	"github.com/hairstudio/salon/internal/repository"
)

var (
	ErrClientNotFound = errors.New("client not found")
)

type ClientService struct {
	store *repository.Store
}

func NewClientService(store *repository.Store) *ClientService {
	return &ClientService{store: store}
}

// Clients builds the phone-keyed report from confirmed appointments and all reviews.
func (s *ClientService) Clients(ctx context.Context) ([]*model.ClientSummary, error) {
	appointments, err := s.store.Appointments.ByConfirmation(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load confirmed appointments: %w", err)
	}
	reviews, err := s.store.Reviews.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	return AggregateClients(appointments, reviews), nil
}

// AggregateClients groups by phone number in insertion order.
//
// Appointments are applied first and each one overwrites the entry's name, so
// with newest-first input the oldest confirmed booking names the client.
// Unconfirmed appointments are ignored. Reviews without a phone are skipped;
// a review only names a client it seeds.
func AggregateClients(appointments []*model.Appointment, reviews []*model.Review) []*model.ClientSummary {
	var order []*model.ClientSummary
	byPhone := make(map[string]*model.ClientSummary)

	entry := func(phone, name string) *model.ClientSummary {
		c, ok := byPhone[phone]
		if !ok {
			c = &model.ClientSummary{Phone: phone, Name: name}
			byPhone[phone] = c
			order = append(order, c)
		}
		return c
	}

	for _, a := range appointments {
		if !a.IsConfirmed {
			continue
		}
		c := entry(a.PhoneNumber, a.CustomerName)
		c.Name = a.CustomerName
		c.Appointments = append(c.Appointments, a)
	}

	for _, r := range reviews {
		if strings.TrimSpace(r.PhoneNumber) == "" {
			continue
		}
		c := entry(r.PhoneNumber, r.CustomerName)
		c.Reviews = append(c.Reviews, r)
	}

	for _, c := range order {
		c.ReviewCount = len(c.Reviews)
		if c.ReviewCount == 0 {
			continue
		}
		sum := 0
		for _, r := range c.Reviews {
			sum += r.Rating
		}
		avg := round1(float64(sum) / float64(c.ReviewCount))
		c.AvgRating = &avg
	}

	return order
}

// Profile returns everything recorded for one phone number.
func (s *ClientService) Profile(ctx context.Context, phone string) (*model.ClientProfile, error) {
	appointments, err := s.store.Appointments.ByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}
	reviews, err := s.store.Reviews.ByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	if len(appointments) == 0 && len(reviews) == 0 {
		return nil, ErrClientNotFound
	}

	profile := &model.ClientProfile{
		Phone:        phone,
		Appointments: appointments,
		Reviews:      reviews,
	}
	if len(appointments) > 0 {
		profile.Name = appointments[0].CustomerName
	} else {
		profile.Name = reviews[0].CustomerName
	}
	for _, a := range appointments {
		if a.IsConfirmed {
			profile.ConfirmedCount++
		}
	}
	return profile, nil
}
