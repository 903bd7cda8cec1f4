package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hairstudio/salon/internal/model"
	"github.com/hairstudio/salon/internal/repository"
	"github.com/hairstudio/salon/internal/service"
	"github.com/hairstudio/salon/internal/ui"
	"github.com/hairstudio/salon/internal/ui/pages"
)

// bioSlug is the markdown page shown on the about page.
const bioSlug = "about"

type HomeHandler struct {
	workService    *service.WorkService
	reviewService  *service.ReviewService
	statsService   *service.StatsService
	contentService *service.ContentService
}

func NewHomeHandler(workService *service.WorkService, reviewService *service.ReviewService, statsService *service.StatsService, contentService *service.ContentService) *HomeHandler {
	return &HomeHandler{
		workService:    workService,
		reviewService:  reviewService,
		statsService:   statsService,
		contentService: contentService,
	}
}

// HomePage is the works gallery, filtered by ?hair=.
func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	hairType := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("hair")))
	if hairType == "" {
		hairType = repository.HairTypeAll
	}

	works, err := h.workService.Works(ctx, hairType)
	if err != nil {
		slog.Error("failed to list works", "error", err, "hair", hairType)
		ui.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	hairTypes, err := h.workService.HairTypes(ctx)
	if err != nil {
		slog.Error("failed to list hair types", "error", err)
		hairTypes = []string{}
	}

	featured := h.featured(r)

	ui.Render(w, r, pages.Home(pages.HomeData{
		Works:     works,
		Featured:  featured,
		HairTypes: hairTypes,
		HairType:  hairType,
	}))
}

func (h *HomeHandler) AboutPage(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Ratings(r.Context())
	if err != nil {
		slog.Error("failed to load rating stats", "error", err)
		ui.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	var bio *model.Page
	bio, err = h.contentService.Page(bioSlug)
	if err != nil && !errors.Is(err, service.ErrPageNotFound) {
		slog.Warn("failed to load bio", "error", err)
	}

	ui.Render(w, r, pages.About(pages.AboutData{
		Stats:    stats,
		Featured: h.featured(r),
		Bio:      bio,
	}))
}

// featured never fails the page; the strip is simply left out.
func (h *HomeHandler) featured(r *http.Request) []*model.Review {
	reviews, err := h.reviewService.Featured(r.Context())
	if err != nil {
		slog.Error("failed to load featured reviews", "error", err)
		return nil
	}
	return reviews
}
