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
	"github.com/hairstudio/salon/internal/reel"
	"github.com/hairstudio/salon/internal/repository"
)

type WorkInput struct {
	Title    string
	HairType string
	Cost     string
	ReelLink string
	Before   *ImageUpload
	After    *ImageUpload
}

type WorkService struct {
	store  *repository.Store
	images *imaging.Ingestor
}

func NewWorkService(store *repository.Store, images *imaging.Ingestor) *WorkService {
	return &WorkService{
		store:  store,
		images: images,
	}
}

// Works lists the gallery, newest first. hairType "all" or "" disables the filter.
func (s *WorkService) Works(ctx context.Context, hairType string) ([]*model.Work, error) {
	return s.store.Works.Works(ctx, strings.TrimSpace(hairType))
}

// HairTypes lists the values the gallery can be filtered by.
func (s *WorkService) HairTypes(ctx context.Context) ([]string, error) {
	return s.store.Works.HairTypes(ctx)
}

// Upload stores both images and creates the work. No row is written unless both
// images were saved, and saved images are removed again if anything later fails.
func (s *WorkService) Upload(ctx context.Context, in WorkInput) (*model.Work, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Before == nil || in.After == nil {
		return nil, fmt.Errorf("%w: before and after images are required", ErrValidation)
	}
	if !imaging.Allowed(in.Before.Filename) || !imaging.Allowed(in.After.Filename) {
		return nil, fmt.Errorf("%w: images must be png, jpg, jpeg, webp, heic or heif", imaging.ErrUnsupportedFormat)
	}

	before, err := s.images.Ingest(ctx, in.Before.File, in.Before.Filename, imaging.CategoryBefore)
	if err != nil {
		return nil, fmt.Errorf("failed to save before image: %w", err)
	}

	after, err := s.images.Ingest(ctx, in.After.File, in.After.Filename, imaging.CategoryAfter)
	if err != nil {
		s.images.Remove(ctx, imaging.CategoryBefore, before).Log(ctx)
		return nil, fmt.Errorf("failed to save after image: %w", err)
	}

	work := &model.Work{
		ID:          uuid.New().String(),
		Title:       title,
		HairType:    strings.TrimSpace(in.HairType),
		Cost:        strings.TrimSpace(in.Cost),
		BeforeImage: before,
		AfterImage:  after,
		ReelLink:    reel.EmbedLink(in.ReelLink),
		CreatedAt:   time.Now().UTC(),
	}

	err = s.store.WithTx(ctx, func(r *repository.Repositories) error {
		return r.Works.Create(ctx, work)
	})
	if err != nil {
		s.images.Remove(ctx, imaging.CategoryBefore, before).Log(ctx)
		s.images.Remove(ctx, imaging.CategoryAfter, after).Log(ctx)
		return nil, fmt.Errorf("failed to create work: %w", err)
	}

	slog.Info("work uploaded", "work_id", work.ID, "title", work.Title)
	return work, nil
}

// Delete removes both images best-effort, then the row.
func (s *WorkService) Delete(ctx context.Context, id string) error {
	work, err := s.store.Works.ByID(ctx, id)
	if err != nil {
		return err
	}

	s.images.Remove(ctx, imaging.CategoryBefore, work.BeforeImage).Log(ctx)
	s.images.Remove(ctx, imaging.CategoryAfter, work.AfterImage).Log(ctx)

	return s.store.WithTx(ctx, func(r *repository.Repositories) error {
		return r.Works.Delete(ctx, id)
	})
}
