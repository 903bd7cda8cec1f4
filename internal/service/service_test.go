package service

import (
	"context"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hairstudio/salon/internal/db/dbtest"
	"github.com/hairstudio/salon/internal/imaging"
	"github.com/hairstudio/salon/internal/model"
	"github.com/hairstudio/salon/internal/repository"
	"github.com/hairstudio/salon/internal/storage"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store  *repository.Store
	images *imaging.Ingestor
	root   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	s, err := storage.NewLocalStorage(root, "/uploads")
	require.NoError(t, err)
	return &fixture{
		store:  repository.NewStore(dbtest.New(t)),
		images: imaging.NewIngestor(s),
		root:   root,
	}
}

func (f *fixture) files(t *testing.T, bucket string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(f.root, bucket))
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func upload(name string) *ImageUpload {
	return &ImageUpload{Filename: name, File: strings.NewReader("bytes of " + name)}
}

func failingDecoder(io.Reader) (image.Image, error) {
	return nil, errors.New("corrupt heic")
}

var ctx = context.Background()

func mustReview(t *testing.T, store *repository.Store, r *model.Review) {
	t.Helper()
	require.NoError(t, store.Reviews.Create(ctx, r))
}
