package handler

import (
	"log/slog"
	"net/http"

	"github.com/hairstudio/salon/internal/service"
	"github.com/hairstudio/salon/internal/ui"
	"github.com/hairstudio/salon/internal/ui/pages"
)

// AdminHandler serves the management pages. Every route is wrapped in RequireAdmin.
type AdminHandler struct {
	workService        *service.WorkService
	reviewService      *service.ReviewService
	appointmentService *service.AppointmentService
	clientService      *service.ClientService
	statsService       *service.StatsService
	maxUpload          int64
}

func NewAdminHandler(
	workService *service.WorkService,
	reviewService *service.ReviewService,
	appointmentService *service.AppointmentService,
	clientService *service.ClientService,
	statsService *service.StatsService,
	maxUpload int64,
) *AdminHandler {
	return &AdminHandler{
		workService:        workService,
		reviewService:      reviewService,
		appointmentService: appointmentService,
		clientService:      clientService,
		statsService:       statsService,
		maxUpload:          maxUpload,
	}
}

func (h *AdminHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	counts, err := h.statsService.Dashboard(r.Context())
	if err != nil {
		slog.Error("failed to load dashboard", "error", err)
		ui.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.AdminDashboard(counts))
}
