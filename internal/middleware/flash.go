package middleware

import (
	"net/http"

	"github.com/hairstudio/salon/internal/ctxkeys"
	"github.com/hairstudio/salon/internal/ui"
)

// Flash moves pending flash messages from the cookie into the request context.
// Only GET requests consume them so a POST-redirect-GET shows the message once.
func Flash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		flashes := ui.TakeFlashes(w, r)
		if len(flashes) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		ctx := ctxkeys.WithFlashes(r.Context(), flashes)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
