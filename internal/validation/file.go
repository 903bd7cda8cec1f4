package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/hairstudio/salon/internal/imaging"
)

// sniffedTypes maps extensions http.DetectContentType can recognize to the
// content types it reports. HEIC/HEIF are not sniffable and are left to the decoder.
var sniffedTypes = map[string][]string{
	"png":  {"image/png"},
	"jpg":  {"image/jpeg"},
	"jpeg": {"image/jpeg"},
	"webp": {"image/webp"},
}

// ValidateImage checks extension, size and, where possible, magic numbers.
func ValidateImage(header *multipart.FileHeader, maxSize int64) error {
	if !imaging.Allowed(header.Filename) {
		return fmt.Errorf("%w: %s", imaging.ErrUnsupportedFormat, header.Filename)
	}

	if maxSize > 0 && header.Size > maxSize {
		maxMB := maxSize / (1 << 20)
		return fmt.Errorf("file too large: maximum size is %d MB", maxMB)
	}

	expected, ok := sniffedTypes[imaging.Extension(header.Filename)]
	if !ok {
		return nil
	}

	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// http.DetectContentType reads at most 512 bytes
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file: %w", err)
	}

	detected := http.DetectContentType(buffer[:n])
	for _, want := range expected {
		if detected == want {
			return nil
		}
	}
	return fmt.Errorf("%w: content is %s", imaging.ErrUnsupportedFormat, detected)
}
