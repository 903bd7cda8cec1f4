package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWithFrontmatter(t *testing.T) {
	src := []byte("---\ntitle: Privacy\nlastUpdated: 2025-01-02\n---\n# Your data\n\nWe keep **very** little.\n")

	html, meta, err := NewParser().ParseWithFrontmatter(src)
	require.NoError(t, err)

	assert.Equal(t, "Privacy", meta["title"])
	assert.Contains(t, string(html), `<h1 id="your-data">Your data</h1>`)
	assert.Contains(t, string(html), "<strong>very</strong>")
}

func TestParseWithoutFrontmatter(t *testing.T) {
	html, meta, err := NewParser().ParseWithFrontmatter([]byte("plain"))
	require.NoError(t, err)
	assert.Empty(t, meta)
	assert.Contains(t, string(html), "plain")
}

func TestRawHTMLDropped(t *testing.T) {
	html, err := NewParser().Parse([]byte("<script>alert(1)</script>\n\nok"))
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>")
}
