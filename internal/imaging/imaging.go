// Package imaging validates uploaded photos, converts HEIC/HEIF to JPEG and
// writes them to storage under collision-free names.
package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/gen2brain/heic"
	"github.com/google/uuid"
	"github.com/hairstudio/salon/internal/storage"
	"golang.org/x/image/draw"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrConversionFailed  = errors.New("image conversion failed")
)

// Category selects the storage bucket for an image.
type Category string

const (
	CategoryBefore  Category = "before"
	CategoryAfter   Category = "after"
	CategoryReviews Category = "reviews"
)

// JPEGQuality is used for every converted image.
const JPEGQuality = 90

var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"webp": true,
	"heic": true,
	"heif": true,
}

// convertExtensions are decoded and re-encoded as JPEG instead of stored verbatim.
var convertExtensions = map[string]bool{
	"heic": true,
	"heif": true,
}

// Decoder turns raw bytes into an image.
type Decoder func(r io.Reader) (image.Image, error)

type Ingestor struct {
	storage storage.Storage
	decode  Decoder
}

func NewIngestor(s storage.Storage) *Ingestor {
	return &Ingestor{
		storage: s,
		decode:  heic.Decode,
	}
}

// WithDecoder swaps the HEIC/HEIF decoder.
func (i *Ingestor) WithDecoder(d Decoder) *Ingestor {
	return &Ingestor{storage: i.storage, decode: d}
}

// Extension returns the lowercased extension without the dot.
func Extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// Allowed reports whether filename has a whitelisted image extension.
func Allowed(filename string) bool {
	return allowedExtensions[Extension(filename)]
}

// Path returns the storage path of a stored filename.
func Path(category Category, filename string) string {
	return path.Join(string(category), filename)
}

// Ingest stores file and returns the generated filename.
func (i *Ingestor) Ingest(ctx context.Context, file io.Reader, originalName string, category Category) (string, error) {
	ext := Extension(originalName)
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, originalName)
	}

	base := strings.ReplaceAll(uuid.New().String(), "-", "")

	var (
		filename string
		body     io.Reader
	)
	if convertExtensions[ext] {
		converted, err := i.toJPEG(file)
		if err != nil {
			return "", err
		}
		filename = base + ".jpg"
		body = converted
	} else {
		filename = base + "." + ext
		body = file
	}

	err := i.storage.Save(ctx, Path(category, filename), body)
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	slog.Debug("image stored", "category", category, "filename", filename, "original", originalName)
	return filename, nil
}

// toJPEG decodes src, flattens any alpha onto white and encodes it as JPEG.
func (i *Ingestor) toJPEG(src io.Reader) (*bytes.Buffer, error) {
	img, err := i.decode(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}

	flat := Flatten(img)

	buf := new(bytes.Buffer)
	err = jpeg.Encode(buf, flat, &jpeg.Options{Quality: JPEGQuality})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}
	return buf, nil
}

// Flatten composites img onto an opaque white canvas.
func Flatten(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Copy(dst, image.Point{}, img, bounds, draw.Over, nil)
	return dst
}
