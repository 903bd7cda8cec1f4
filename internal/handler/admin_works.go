package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hairstudio/salon/internal/imaging"
	"github.com/hairstudio/salon/internal/repository"
	"github.com/hairstudio/salon/internal/service"
	"github.com/hairstudio/salon/internal/ui"
	"github.com/hairstudio/salon/internal/ui/pages"
)

const transformationsPath = "/admin/transformations"

func (h *AdminHandler) TransformationsPage(w http.ResponseWriter, r *http.Request) {
	works, err := h.workService.Works(r.Context(), repository.HairTypeAll)
	if err != nil {
		slog.Error("failed to list works", "error", err)
		ui.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.AdminTransformations(works))
}

// Upload creates a work from the before/after pair. Both images must be stored
// before the row is written.
func (h *AdminHandler) Upload(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(32 << 20)
	if err != nil {
		if tooLarge(w, r, err) {
			return
		}
		ui.RenderError(w, r, http.StatusBadRequest)
		return
	}

	before, closeBefore, err := formImage(r, "before_image", h.maxUpload)
	if err != nil {
		h.uploadFailed(w, r, err)
		return
	}
	defer closeBefore()

	after, closeAfter, err := formImage(r, "after_image", h.maxUpload)
	if err != nil {
		h.uploadFailed(w, r, err)
		return
	}
	defer closeAfter()

	work, err := h.workService.Upload(r.Context(), service.WorkInput{
		Title:    r.FormValue("title"),
		HairType: r.FormValue("hair_type"),
		Cost:     r.FormValue("cost"),
		ReelLink: r.FormValue("reel_link"),
		Before:   before,
		After:    after,
	})
	if err != nil {
		h.uploadFailed(w, r, err)
		return
	}

	slog.Info("transformation uploaded", "work_id", work.ID)
	flashSuccess(w, msgWorkUploaded)
	http.Redirect(w, r, transformationsPath, http.StatusSeeOther)
}

func (h *AdminHandler) uploadFailed(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		flashError(w, "A title and both before and after images are required.")
	case errors.Is(err, imaging.ErrUnsupportedFormat):
		flashError(w, "Images must be png, jpg, jpeg, webp, heic or heif.")
	case errors.Is(err, imaging.ErrConversionFailed):
		flashError(w, "One of the images could not be converted. Please try another file.")
	default:
		slog.Error("failed to upload transformation", "error", err)
		flashError(w, msgSomethingWrong)
	}
	http.Redirect(w, r, transformationsPath, http.StatusSeeOther)
}

func (h *AdminHandler) DeleteWork(w http.ResponseWriter, r *http.Request) {
	workID := r.PathValue("id")

	err := h.workService.Delete(r.Context(), workID)
	if errors.Is(err, repository.ErrWorkNotFound) {
		ui.RenderError(w, r, http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to delete work", "error", err, "work_id", workID)
		ui.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	flashSuccess(w, msgWorkDeleted)
	http.Redirect(w, r, transformationsPath, http.StatusSeeOther)
}
