package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hairstudio/salon/internal/repository"
	"github.com/hairstudio/salon/internal/ui"
	"github.com/hairstudio/salon/internal/ui/pages"
)

const reviewsLogPath = "/admin/reviews_log"

func (h *AdminHandler) ReviewsLogPage(w http.ResponseWriter, r *http.Request) {
	pending, err := h.reviewService.Pending(r.Context())
	if err != nil {
		slog.Error("failed to list pending reviews", "error", err)
		ui.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	approved, err := h.reviewService.Approved(r.Context())
	if err != nil {
		slog.Error("failed to list approved reviews", "error", err)
		ui.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.AdminReviews(pages.AdminReviewsData{
		Pending:  pending,
		Approved: approved,
	}))
}

func (h *AdminHandler) ApproveReview(w http.ResponseWriter, r *http.Request) {
	reviewID := r.PathValue("id")

	err := h.reviewService.Approve(r.Context(), reviewID)
	if !h.reviewActionOK(w, r, err, "approve", reviewID) {
		return
	}

	http.Redirect(w, r, reviewsLogPath, http.StatusSeeOther)
}

func (h *AdminHandler) ToggleFeature(w http.ResponseWriter, r *http.Request) {
	reviewID := r.PathValue("id")

	_, err := h.reviewService.ToggleFeatured(r.Context(), reviewID)
	if !h.reviewActionOK(w, r, err, "toggle featured", reviewID) {
		return
	}

	redirectBack(w, r, reviewsLogPath)
}

func (h *AdminHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID := r.PathValue("id")

	err := h.reviewService.Delete(r.Context(), reviewID)
	if !h.reviewActionOK(w, r, err, "delete", reviewID) {
		return
	}

	flashSuccess(w, msgReviewDeleted)
	redirectBack(w, r, reviewsLogPath)
}

// reviewActionOK renders the error page for a failed moderation action.
func (h *AdminHandler) reviewActionOK(w http.ResponseWriter, r *http.Request, err error, action, reviewID string) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, repository.ErrReviewNotFound) {
		ui.RenderError(w, r, http.StatusNotFound)
		return false
	}
	slog.Error("failed to "+action+" review", "error", err, "review_id", reviewID)
	ui.RenderError(w, r, http.StatusInternalServerError)
	return false
}
