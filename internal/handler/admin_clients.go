package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hairstudio/salon/internal/service"
	"github.com/hairstudio/salon/internal/ui"
	"github.com/hairstudio/salon/internal/ui/pages"
)

const clientsPath = "/admin/clients"

func (h *AdminHandler) ClientsPage(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientService.Clients(r.Context())
	if err != nil {
		slog.Error("failed to aggregate clients", "error", err)
		ui.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.AdminClients(clients))
}

func (h *AdminHandler) ClientPage(w http.ResponseWriter, r *http.Request) {
	phone := r.PathValue("phone")

	profile, err := h.clientService.Profile(r.Context(), phone)
	if errors.Is(err, service.ErrClientNotFound) {
		flashError(w, msgClientNotFound)
		http.Redirect(w, r, clientsPath, http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("failed to load client", "error", err, "phone", phone)
		ui.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.AdminClient(profile))
}
