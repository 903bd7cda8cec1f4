package handler

import (
	"net/http"
	"strings"

	"github.com/hairstudio/salon/internal/ui"
)

// FallbackPattern catches every request no other route matched.
const FallbackPattern = "/{path...}"

var routedMethods = []string{http.MethodGet, http.MethodPost}

// ErrorHandler renders the catch-all 404 and 405 pages.
type ErrorHandler struct {
	mux *http.ServeMux
}

func NewErrorHandler(mux *http.ServeMux) *ErrorHandler {
	return &ErrorHandler{mux: mux}
}

// Fallback answers 405 when the path is routed for another method, 404 otherwise.
func (h *ErrorHandler) Fallback(w http.ResponseWriter, r *http.Request) {
	allowed := h.allowedMethods(r)
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		ui.RenderError(w, r, http.StatusMethodNotAllowed)
		return
	}
	ui.RenderError(w, r, http.StatusNotFound)
}

func (h *ErrorHandler) allowedMethods(r *http.Request) []string {
	var allowed []string
	for _, method := range routedMethods {
		if method == r.Method {
			continue
		}
		alt := r.Clone(r.Context())
		alt.Method = method
		_, pattern := h.mux.Handler(alt)
		if pattern != "" && pattern != FallbackPattern {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	ui.RenderError(w, r, http.StatusNotFound)
}
