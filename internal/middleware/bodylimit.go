package middleware

import (
	"net/http"

	"github.com/hairstudio/salon/internal/ui"
)

// BodyLimit caps request bodies at maxBytes. Declared oversize bodies are
// refused up front with 413; streamed ones fail on read with *http.MaxBytesError.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				ui.RenderError(w, r, http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
