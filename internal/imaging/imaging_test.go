package imaging

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gen2brain/heic"
	"github.com/hairstudio/salon/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIngestor(t *testing.T) (*Ingestor, string) {
	t.Helper()
	root := t.TempDir()
	s, err := storage.NewLocalStorage(root, "/uploads")
	require.NoError(t, err)
	return NewIngestor(s), root
}

// transparentDecoder ignores its input and yields a 2x1 image: left pixel fully
// transparent, right pixel opaque red.
func transparentDecoder(io.Reader) (image.Image, error) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 0})
	img.SetNRGBA(1, 0, color.NRGBA{255, 0, 0, 255})
	return img, nil
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a.png", true},
		{"a.JPG", true},
		{"a.jpeg", true},
		{"a.webp", true},
		{"a.HEIC", true},
		{"a.heif", true},
		{"a.gif", false},
		{"a.pdf", false},
		{"noextension", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.name))
		})
	}
}

func TestIngestStoresVerbatim(t *testing.T) {
	ing, root := newTestIngestor(t)

	name, err := ing.Ingest(context.Background(), strings.NewReader("pngbytes"), "Photo.PNG", CategoryBefore)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.Len(t, strings.TrimSuffix(name, ".png"), 32)

	data, err := os.ReadFile(filepath.Join(root, "before", name))
	require.NoError(t, err)
	assert.Equal(t, "pngbytes", string(data))
}

func TestIngestNamesAreUnique(t *testing.T) {
	ing, _ := newTestIngestor(t)
	ctx := context.Background()

	a, err := ing.Ingest(ctx, strings.NewReader("x"), "same.jpg", CategoryAfter)
	require.NoError(t, err)
	b, err := ing.Ingest(ctx, strings.NewReader("x"), "same.jpg", CategoryAfter)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestIngestConvertsHEIC(t *testing.T) {
	ing, root := newTestIngestor(t)

	src, err := os.ReadFile(filepath.Join("testdata", "sample.heic"))
	require.NoError(t, err)
	want, err := heic.DecodeConfig(bytes.NewReader(src))
	require.NoError(t, err)

	name, err := ing.Ingest(context.Background(), bytes.NewReader(src), "IMG_0002.heic", CategoryAfter)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	data, err := os.ReadFile(filepath.Join(root, "after", name))
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, want.Width, cfg.Width)
	assert.Equal(t, want.Height, cfg.Height)
}

func TestIngestFlattensTransparentHEIC(t *testing.T) {
	ing, root := newTestIngestor(t)
	ing = ing.WithDecoder(transparentDecoder)

	name, err := ing.Ingest(context.Background(), strings.NewReader("heicbytes"), "IMG_0001.HEIC", CategoryReviews)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	data, err := os.ReadFile(filepath.Join(root, "reviews", name))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())

	// Transparent pixel became white, allowing for JPEG error.
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Greater(t, r>>8, uint32(200))
	assert.Greater(t, g>>8, uint32(200))
	assert.Greater(t, b>>8, uint32(200))
}

func TestIngestRejectsUnsupported(t *testing.T) {
	ing, root := newTestIngestor(t)

	for _, name := range []string{"anim.gif", "noext"} {
		_, err := ing.Ingest(context.Background(), strings.NewReader("x"), name, CategoryBefore)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	}

	entries, err := os.ReadDir(filepath.Join(root, "before"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestIngestConversionFailure(t *testing.T) {
	ing, root := newTestIngestor(t)
	ing = ing.WithDecoder(func(io.Reader) (image.Image, error) {
		return nil, errors.New("corrupt")
	})

	_, err := ing.Ingest(context.Background(), strings.NewReader("junk"), "x.heif", CategoryAfter)
	assert.ErrorIs(t, err, ErrConversionFailed)

	entries, err := os.ReadDir(filepath.Join(root, "after"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFlattenOpaque(t *testing.T) {
	img, _ := transparentDecoder(nil)
	flat := Flatten(img)

	assert.Equal(t, color.RGBA{255, 255, 255, 255}, flat.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, flat.RGBAAt(1, 0))
}

func TestRemove(t *testing.T) {
	ing, root := newTestIngestor(t)
	ctx := context.Background()

	name, err := ing.Ingest(ctx, strings.NewReader("x"), "a.webp", CategoryReviews)
	require.NoError(t, err)

	removal := ing.Remove(ctx, CategoryReviews, name)
	assert.NoError(t, removal.Err)
	assert.Equal(t, "reviews/"+name, removal.Path)
	_, err = os.Stat(filepath.Join(root, "reviews", name))
	assert.True(t, os.IsNotExist(err))

	again := ing.Remove(ctx, CategoryReviews, name)
	assert.Error(t, again.Err)
	assert.True(t, again.Missing())
	again.Log(ctx)

	empty := ing.Remove(ctx, CategoryReviews, "")
	assert.NoError(t, empty.Err)
}
