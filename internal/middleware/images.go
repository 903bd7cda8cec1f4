package middleware

import (
	"net/http"

	"github.com/hairstudio/salon/internal/ctxkeys"
	"github.com/hairstudio/salon/internal/storage"
)

// ImageURLs lets templates resolve stored image paths through the active storage backend
func ImageURLs(s storage.Storage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithImageURL(r.Context(), s.URL)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
