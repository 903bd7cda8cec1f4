package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hairstudio/salon/internal/repository"
	"github.com/hairstudio/salon/internal/ui"
	"github.com/hairstudio/salon/internal/ui/pages"
)

const appointmentsLogPath = "/admin/appointments_log"

func (h *AdminHandler) AppointmentsLogPage(w http.ResponseWriter, r *http.Request) {
	pending, err := h.appointmentService.Pending(r.Context())
	if err != nil {
		slog.Error("failed to list pending appointments", "error", err)
		ui.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	confirmed, err := h.appointmentService.Confirmed(r.Context())
	if err != nil {
		slog.Error("failed to list confirmed appointments", "error", err)
		ui.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.AdminAppointments(pages.AdminAppointmentsData{
		Pending:   pending,
		Confirmed: confirmed,
	}))
}

func (h *AdminHandler) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID := r.PathValue("id")

	err := h.appointmentService.Confirm(r.Context(), appointmentID)
	if errors.Is(err, repository.ErrAppointmentNotFound) {
		ui.RenderError(w, r, http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to confirm appointment", "error", err, "appointment_id", appointmentID)
		ui.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	flashSuccess(w, msgApptConfirmed)
	http.Redirect(w, r, appointmentsLogPath, http.StatusSeeOther)
}

func (h *AdminHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID := r.PathValue("id")

	err := h.appointmentService.Delete(r.Context(), appointmentID)
	if errors.Is(err, repository.ErrAppointmentNotFound) {
		ui.RenderError(w, r, http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to delete appointment", "error", err, "appointment_id", appointmentID)
		ui.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	flashSuccess(w, msgApptRemoved)
	http.Redirect(w, r, appointmentsLogPath, http.StatusSeeOther)
}
