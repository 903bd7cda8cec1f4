package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hairstudio/salon/internal/imaging"
	"github.com/hairstudio/salon/internal/model"
	"github.com/hairstudio/salon/internal/repository"
	"github.com/hairstudio/salon/internal/validation"
)

// FeaturedLimit caps the featured strip on the home and about pages.
const FeaturedLimit = 3

type ReviewInput struct {
	Name    string
	Phone   string
	Branch  string
	Rating  string
	Content string
	WorkID  string
	Front   *ImageUpload
	Back    *ImageUpload
}

type ReviewService struct {
	store  *repository.Store
	images *imaging.Ingestor
}

func NewReviewService(store *repository.Store, images *imaging.Ingestor) *ReviewService {
	return &ReviewService{
		store:  store,
		images: images,
	}
}

// Public lists approved reviews only.
func (s *ReviewService) Public(ctx context.Context, filter model.ReviewFilter) ([]*model.Review, error) {
	return s.store.Reviews.Approved(ctx, filter)
}

func (s *ReviewService) Featured(ctx context.Context) ([]*model.Review, error) {
	return s.store.Reviews.Featured(ctx, FeaturedLimit)
}

func (s *ReviewService) Pending(ctx context.Context) ([]*model.Review, error) {
	return s.store.Reviews.ByApproval(ctx, false)
}

func (s *ReviewService) Approved(ctx context.Context) ([]*model.Review, error) {
	return s.store.Reviews.ByApproval(ctx, true)
}

// Submit stores a new review awaiting moderation. Image failures drop the image,
// not the review.
func (s *ReviewService) Submit(ctx context.Context, in ReviewInput) (*model.Review, error) {
	err := validation.Required(
		validation.Field{Name: "name", Value: in.Name},
		validation.Field{Name: "review", Value: in.Content},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	err = validation.ValidateName(in.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	rating, err := validation.ParseRating(in.Rating)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	review := &model.Review{
		ID:           uuid.New().String(),
		CustomerName: strings.TrimSpace(in.Name),
		PhoneNumber:  strings.TrimSpace(in.Phone),
		Branch:       strings.TrimSpace(in.Branch),
		Rating:       rating,
		Content:      strings.TrimSpace(in.Content),
		CreatedAt:    time.Now().UTC(),
	}
	if workID := strings.TrimSpace(in.WorkID); workID != "" {
		review.WorkID = &workID
	}

	review.ImageFront = s.optionalImage(ctx, in.Front)
	review.ImageBack = s.optionalImage(ctx, in.Back)

	err = s.store.WithTx(ctx, func(r *repository.Repositories) error {
		return r.Reviews.Create(ctx, review)
	})
	if err != nil {
		for _, name := range review.Images() {
			s.images.Remove(ctx, imaging.CategoryReviews, name).Log(ctx)
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	slog.Info("review submitted", "review_id", review.ID, "rating", review.Rating)
	return review, nil
}

func (s *ReviewService) optionalImage(ctx context.Context, upload *ImageUpload) *string {
	if upload == nil || upload.Filename == "" {
		return nil
	}
	name, err := s.images.Ingest(ctx, upload.File, upload.Filename, imaging.CategoryReviews)
	if err != nil {
		slog.Warn("review image dropped", "error", err, "filename", upload.Filename)
		return nil
	}
	return &name
}

// Like adds one kudo and returns the new total. Every call counts.
func (s *ReviewService) Like(ctx context.Context, id string) (int, error) {
	var kudos int
	err := s.store.WithTx(ctx, func(r *repository.Repositories) error {
		var err error
		kudos, err = r.Reviews.IncrementKudos(ctx, id)
		return err
	})
	return kudos, err
}

// Approve publishes a review. There is no way back to pending.
func (s *ReviewService) Approve(ctx context.Context, id string) error {
	return s.store.WithTx(ctx, func(r *repository.Repositories) error {
		return r.Reviews.Approve(ctx, id)
	})
}

func (s *ReviewService) ToggleFeatured(ctx context.Context, id string) (bool, error) {
	var featured bool
	err := s.store.WithTx(ctx, func(r *repository.Repositories) error {
		var err error
		featured, err = r.Reviews.ToggleFeatured(ctx, id)
		return err
	})
	return featured, err
}

// Delete removes attached images best-effort, then the row.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	review, err := s.store.Reviews.ByID(ctx, id)
	if err != nil {
		return err
	}

	for _, name := range review.Images() {
		s.images.Remove(ctx, imaging.CategoryReviews, name).Log(ctx)
	}

	return s.store.WithTx(ctx, func(r *repository.Repositories) error {
		return r.Reviews.Delete(ctx, id)
	})
}
