package handler

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/hairstudio/salon/internal/service"
	"github.com/hairstudio/salon/internal/ui"
	"github.com/hairstudio/salon/internal/validation"
)

const (
	msgFillAllFields   = "Please fill in all fields."
	msgSomethingWrong  = "Something went wrong. Please try again."
	msgThankYou        = "Thank you for your time!"
	msgWrongCredential = "Wrong credentials."
	msgWorkUploaded    = "Transformation Uploaded!"
	msgWorkDeleted     = "Work deleted"
	msgReviewDeleted   = "Review deleted permanently."
	msgApptConfirmed   = "Appointment Confirmed! Added to Client Database."
	msgApptRemoved     = "Appointment removed."
	msgClientNotFound  = "Client not found."
)

// formImage returns the uploaded image in field, or nil when the field was left empty.
// The returned func closes the file.
func formImage(r *http.Request, field string, maxSize int64) (*service.ImageUpload, func(), error) {
	noop := func() {}

	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}
	if header.Filename == "" {
		_ = file.Close()
		return nil, noop, nil
	}

	err = validation.ValidateImage(header, maxSize)
	if err != nil {
		_ = file.Close()
		return nil, noop, err
	}

	return &service.ImageUpload{Filename: header.Filename, File: file}, closer(file), nil
}

func closer(file multipart.File) func() {
	return func() {
		err := file.Close()
		if err != nil {
			slog.Debug("failed to close upload", "error", err)
		}
	}
}

// tooLarge renders 413 when err came from the body size limit.
func tooLarge(w http.ResponseWriter, r *http.Request, err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		ui.RenderError(w, r, http.StatusRequestEntityTooLarge)
		return true
	}
	return false
}

// redirectBack sends the visitor to the same-site Referer, or fallback.
func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := fallback
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Path != "" && (ref.Host == "" || ref.Host == r.Host) {
		target = ref.RequestURI()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func flashError(w http.ResponseWriter, message string) {
	ui.Flash(w, ui.FlashError, message)
}

func flashSuccess(w http.ResponseWriter, message string) {
	ui.Flash(w, ui.FlashSuccess, message)
}
