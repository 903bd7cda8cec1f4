package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hairstudio/salon/internal/service"
	"github.com/hairstudio/salon/internal/ui"
	"github.com/hairstudio/salon/internal/ui/pages"
)

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
	}
}

func (h *AppointmentHandler) AppointmentPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Appointment())
}

// Book stores the request and hands the visitor over to WhatsApp.
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		if tooLarge(w, r, err) {
			return
		}
		ui.RenderError(w, r, http.StatusBadRequest)
		return
	}

	appointment, handoffURL, err := h.appointmentService.Book(r.Context(), service.AppointmentInput{
		Name:    r.PostFormValue("name"),
		Phone:   r.PostFormValue("phone"),
		Branch:  r.PostFormValue("branch"),
		Service: r.PostFormValue("service"),
		Date:    r.PostFormValue("date"),
	})
	if errors.Is(err, service.ErrValidation) {
		flashError(w, msgFillAllFields)
		http.Redirect(w, r, "/appointment", http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("failed to book appointment", "error", err)
		flashError(w, msgSomethingWrong)
		http.Redirect(w, r, "/appointment", http.StatusSeeOther)
		return
	}

	slog.Info("appointment requested", "appointment_id", appointment.ID, "branch", appointment.Branch)
	http.Redirect(w, r, handoffURL, http.StatusSeeOther)
}
