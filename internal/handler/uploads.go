package handler

import (
	"net/http"
	"strings"

	"github.com/hairstudio/salon/internal/ui"
)

// Uploads serves stored images from the local upload directory. Directory
// listings are never shown.
func Uploads(root string) http.Handler {
	files := http.StripPrefix("/uploads/", http.FileServer(http.Dir(root)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			ui.RenderError(w, r, http.StatusNotFound)
			return
		}
		files.ServeHTTP(w, r)
	})
}
