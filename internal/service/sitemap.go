package service

import (
	"encoding/xml"
	"log/slog"
	"strings"
	"time"

	"github.com/hairstudio/salon/internal/model"
)

// publicRoutes are the static pages listed in the sitemap. Admin pages stay out.
var publicRoutes = []struct {
	Path       string
	Priority   string
	ChangeFreq string
}{
	{"/", "1.0", "daily"},
	{"/about-me", "0.8", "weekly"},
	{"/reviews", "0.8", "daily"},
	{"/appointment", "0.7", "monthly"},
}

type SitemapService struct {
	contentService *ContentService
	baseURL        string
}

func NewSitemapService(contentService *ContentService, baseURL string) *SitemapService {
	return &SitemapService{
		contentService: contentService,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
	}
}

// GenerateSitemap renders the static routes plus every markdown page.
func (s *SitemapService) GenerateSitemap() ([]byte, error) {
	today := time.Now().Format("2006-01-02")

	sitemap := model.Sitemap{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  []model.SitemapURL{},
	}

	for _, route := range publicRoutes {
		sitemap.URLs = append(sitemap.URLs, model.SitemapURL{
			Loc:        s.baseURL + route.Path,
			LastMod:    today,
			ChangeFreq: route.ChangeFreq,
			Priority:   route.Priority,
		})
	}

	err := s.contentService.LoadPages()
	if err != nil {
		// Pages are optional; the static routes still make a useful sitemap.
		slog.Warn("failed to load pages for sitemap", "error", err)
	}
	for _, slug := range s.contentService.Slugs() {
		sitemap.URLs = append(sitemap.URLs, model.SitemapURL{
			Loc:        s.baseURL + "/pages/" + slug,
			LastMod:    today,
			ChangeFreq: "monthly",
			Priority:   "0.3",
		})
	}

	output, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return []byte(xml.Header + string(output)), nil
}
