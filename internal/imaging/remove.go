package imaging

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
)

// Removal is the outcome of a best-effort file delete.
type Removal struct {
	Path string
	Err  error
}

// Missing reports whether the file was already gone.
func (r Removal) Missing() bool {
	return errors.Is(r.Err, fs.ErrNotExist)
}

// Log records failed removals. Successful removals are silent.
func (r Removal) Log(ctx context.Context) {
	if r.Err == nil {
		return
	}
	if r.Missing() {
		slog.WarnContext(ctx, "image already missing", "path", r.Path)
		return
	}
	slog.WarnContext(ctx, "failed to remove image", "path", r.Path, "error", r.Err)
}

// Remove deletes a stored image. Failures are returned in the Removal, never raised.
func (i *Ingestor) Remove(ctx context.Context, category Category, filename string) Removal {
	p := Path(category, filename)
	if filename == "" {
		return Removal{Path: p}
	}
	return Removal{Path: p, Err: i.storage.Delete(ctx, p)}
}
