package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hairstudio/salon/internal/model"
	"github.com/hairstudio/salon/internal/repository"
	"github.com/hairstudio/salon/internal/service"
	"github.com/hairstudio/salon/internal/ui"
	"github.com/hairstudio/salon/internal/ui/pages"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
	workService   *service.WorkService
	maxUpload     int64
}

func NewReviewHandler(reviewService *service.ReviewService, workService *service.WorkService, maxUpload int64) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		workService:   workService,
		maxUpload:     maxUpload,
	}
}

// ReviewsPage lists approved reviews. ?stars= filters by exact rating, ?sort=newest
// orders by date instead of kudos.
func (h *ReviewHandler) ReviewsPage(w http.ResponseWriter, r *http.Request) {
	filter := reviewFilter(r)

	reviews, err := h.reviewService.Public(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list reviews", "error", err)
		ui.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	works, err := h.workService.Works(r.Context(), repository.HairTypeAll)
	if err != nil {
		slog.Error("failed to list works for review form", "error", err)
		works = []*model.Work{}
	}

	ui.Render(w, r, pages.Reviews(pages.ReviewsData{
		Reviews: reviews,
		Works:   works,
		Stars:   filter.Stars,
		Sort:    filter.Sort,
	}))
}

// reviewFilter ignores empty, "all" and non-numeric star values.
func reviewFilter(r *http.Request) model.ReviewFilter {
	query := r.URL.Query()

	filter := model.ReviewFilter{Sort: model.ReviewSortKudos}
	if query.Get("sort") == model.ReviewSortNewest {
		filter.Sort = model.ReviewSortNewest
	}
	if stars, err := strconv.Atoi(query.Get("stars")); err == nil {
		filter.Stars = stars
	}
	return filter
}

func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(32 << 20)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		if tooLarge(w, r, err) {
			return
		}
		ui.RenderError(w, r, http.StatusBadRequest)
		return
	}

	input := service.ReviewInput{
		Name:    r.FormValue("name"),
		Phone:   r.FormValue("phone"),
		Branch:  r.FormValue("branch"),
		Rating:  r.FormValue("rating"),
		Content: r.FormValue("content"),
		WorkID:  r.FormValue("work_id"),
	}

	// Photos are optional: a bad one is dropped, the review still goes through
	front, closeFront, err := formImage(r, "image_front", h.maxUpload)
	if err != nil {
		slog.Warn("review front image rejected", "error", err)
	}
	defer closeFront()
	back, closeBack, err := formImage(r, "image_back", h.maxUpload)
	if err != nil {
		slog.Warn("review back image rejected", "error", err)
	}
	defer closeBack()
	input.Front = front
	input.Back = back

	_, err = h.reviewService.Submit(r.Context(), input)
	if errors.Is(err, service.ErrValidation) {
		flashError(w, msgFillAllFields)
		http.Redirect(w, r, "/reviews", http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("failed to submit review", "error", err)
		flashError(w, msgSomethingWrong)
		http.Redirect(w, r, "/reviews", http.StatusSeeOther)
		return
	}

	flashSuccess(w, msgThankYou)
	http.Redirect(w, r, "/reviews", http.StatusSeeOther)
}

type kudosResponse struct {
	Kudos int `json:"kudos"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Like adds a kudo and answers with the new count.
func (h *ReviewHandler) Like(w http.ResponseWriter, r *http.Request) {
	reviewID := r.PathValue("id")

	kudos, err := h.reviewService.Like(r.Context(), reviewID)
	if errors.Is(err, repository.ErrReviewNotFound) {
		ui.JSON(w, http.StatusNotFound, errorResponse{Error: "review not found"})
		return
	}
	if err != nil {
		slog.Error("failed to add kudos", "error", err, "review_id", reviewID)
		ui.JSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	ui.JSON(w, http.StatusOK, kudosResponse{Kudos: kudos})
}
