package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, root, slug, body string) {
	t.Helper()
	dir := filepath.Join(root, "pages")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, slug+".md"), []byte(body), 0644))
}

func TestContentPage(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "privacy-policy", "---\nlastUpdated: \"2025-01-02\"\n---\nWe keep little.")
	writePage(t, root, "about", "---\ntitle: Meet Arpit\n---\nTen years behind the chair.")

	svc := NewContentService(root)

	page, err := svc.Page("privacy-policy")
	require.NoError(t, err)
	assert.Equal(t, "Privacy Policy", page.Title)
	assert.Equal(t, "January 2, 2025", page.LastUpdated)
	assert.Contains(t, page.Content, "We keep little.")

	about, err := svc.Page("about")
	require.NoError(t, err)
	assert.Equal(t, "Meet Arpit", about.Title)

	_, err = svc.Page("missing")
	assert.ErrorIs(t, err, ErrPageNotFound)

	assert.Equal(t, []string{"about", "privacy-policy"}, svc.Slugs())
}

func TestContentWithoutDirectory(t *testing.T) {
	svc := NewContentService(t.TempDir())
	require.NoError(t, svc.LoadPages())
	assert.Empty(t, svc.Slugs())
}

func TestSitemapListsPages(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "terms", "Be kind.")

	sitemap, err := NewSitemapService(NewContentService(root), "https://salon.example/").GenerateSitemap()
	require.NoError(t, err)

	xml := string(sitemap)
	assert.Contains(t, xml, "<loc>https://salon.example/</loc>")
	assert.Contains(t, xml, "<loc>https://salon.example/about-me</loc>")
	assert.Contains(t, xml, "<loc>https://salon.example/pages/terms</loc>")
	assert.NotContains(t, xml, "/admin")
}
