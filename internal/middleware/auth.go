package middleware

import (
	"net/http"

	"github.com/hairstudio/salon/internal/ctxkeys"
	"github.com/hairstudio/salon/internal/service"
)

// AdminSession checks the session cookie and adds the admin identity to context if valid
func AdminSession(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := authService.SessionToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := authService.VerifyJWT(token)
			if err != nil {
				// Invalid or expired session, clear cookie and continue as a visitor
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithAdmin(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin redirects visitors to the login form without invoking next
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !ctxkeys.IsAdmin(r.Context()) {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// RequireGuest sends an already logged in admin straight to the dashboard
func RequireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.IsAdmin(r.Context()) {
			http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}
}
