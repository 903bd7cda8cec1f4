package handler

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/hairstudio/salon/internal/service"
	"github.com/hairstudio/salon/internal/ui"
)

type SEOHandler struct {
	sitemapService *service.SitemapService
	baseURL        string
}

func NewSEOHandler(contentService *service.ContentService, baseURL string) *SEOHandler {
	return &SEOHandler{
		sitemapService: service.NewSitemapService(contentService, baseURL),
		baseURL:        strings.TrimSuffix(baseURL, "/"),
	}
}

// Robots serves static/robots.txt, or a default that keeps crawlers out of /admin
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	content, err := os.ReadFile(filepath.Join("static", "robots.txt"))
	if err != nil {
		content = []byte("User-agent: *\nAllow: /\nDisallow: /admin\nSitemap: " + h.baseURL + "/sitemap.xml\n")
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err = w.Write(content)
	if err != nil {
		slog.Debug("failed to write robots.txt", "error", err)
	}
}

// Sitemap generates and serves the sitemap.xml dynamically
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	sitemap, err := h.sitemapService.GenerateSitemap()
	if err != nil {
		slog.Error("failed to generate sitemap", "error", err)
		ui.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, err = w.Write(sitemap)
	if err != nil {
		slog.Debug("failed to write sitemap", "error", err)
	}
}
