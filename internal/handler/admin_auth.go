package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hairstudio/salon/internal/service"
	"github.com/hairstudio/salon/internal/ui"
	"github.com/hairstudio/salon/internal/ui/pages"
)

type AdminAuthHandler struct {
	authService *service.AuthService
}

func NewAdminAuthHandler(authService *service.AuthService) *AdminAuthHandler {
	return &AdminAuthHandler{
		authService: authService,
	}
}

func (h *AdminAuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.AdminLogin())
}

func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	token, _, err := h.authService.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if errors.Is(err, service.ErrInvalidCredentials) {
		flashError(w, msgWrongCredential)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("admin login failed", "error", err)
		flashError(w, msgSomethingWrong)
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	h.authService.SetJWTCookie(w, token)
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

func (h *AdminAuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
