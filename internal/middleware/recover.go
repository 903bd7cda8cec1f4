package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/hairstudio/salon/internal/ui"
)

// Recover turns a panicking handler into the 500 page
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			slog.ErrorContext(r.Context(), "handler panic",
				"path", r.URL.Path,
				"method", r.Method,
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			ui.RenderError(w, r, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
