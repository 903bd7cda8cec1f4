package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageCreatesBuckets(t *testing.T) {
	root := t.TempDir()
	_, err := NewLocalStorage(root, "/uploads")
	require.NoError(t, err)

	for _, bucket := range Buckets {
		info, err := os.Stat(filepath.Join(root, bucket))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestLocalStorageSaveDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := NewLocalStorage(root, "/uploads/")
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "before/a.jpg", strings.NewReader("img")))

	data, err := os.ReadFile(filepath.Join(root, "before", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "img", string(data))
	assert.Equal(t, "/uploads/before/a.jpg", s.URL("before/a.jpg"))

	require.NoError(t, s.Delete(ctx, "before/a.jpg"))
	err = s.Delete(ctx, "before/a.jpg")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	err = s.Save(context.Background(), "../escape.jpg", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.ErrorIs(t, s.Delete(context.Background(), ""), ErrInvalidPath)
}

func TestS3PublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://pics.s3.eu-west-1.amazonaws.com",
		publicBaseURL(S3Config{Bucket: "pics", Region: "eu-west-1"}))
	assert.Equal(t, "http://localhost:9000/pics",
		publicBaseURL(S3Config{Bucket: "pics", Endpoint: "http://localhost:9000/"}))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", contentType("after/x.jpg"))
	assert.Equal(t, "image/png", contentType("after/x.png"))
	assert.Equal(t, "image/webp", contentType("after/x.webp"))
}
