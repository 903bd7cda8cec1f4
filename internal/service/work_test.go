package service

import (
	"testing"

	"github.com/hairstudio/salon/internal/imaging"
	"github.com/hairstudio/salon/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkUpload(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkService(f.store, f.images)

	work, err := svc.Upload(ctx, WorkInput{
		Title:    " Balayage ",
		HairType: "Curly",
		Cost:     "$120",
		ReelLink: "https://www.instagram.com/reel/abc/?igsh=1",
		Before:   upload("before.jpg"),
		After:    upload("after.png"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Balayage", work.Title)
	require.NotNil(t, work.ReelLink)
	assert.Equal(t, "https://www.instagram.com/reel/abc/embed", *work.ReelLink)
	assert.Equal(t, []string{work.BeforeImage}, f.files(t, "before"))
	assert.Equal(t, []string{work.AfterImage}, f.files(t, "after"))

	works, err := svc.Works(ctx, "curly")
	require.NoError(t, err)
	require.Len(t, works, 1)
	assert.Equal(t, work.ID, works[0].ID)
}

func TestWorkUploadValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkService(f.store, f.images)

	_, err := svc.Upload(ctx, WorkInput{Title: "", Before: upload("a.jpg"), After: upload("b.jpg")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Upload(ctx, WorkInput{Title: "No after", Before: upload("a.jpg")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Upload(ctx, WorkInput{Title: "Gif", Before: upload("a.jpg"), After: upload("b.gif")})
	assert.ErrorIs(t, err, imaging.ErrUnsupportedFormat)

	count, err := f.store.Works.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, f.files(t, "before"))
	assert.Empty(t, f.files(t, "after"))
}

func TestWorkUploadCleansUpWhenSecondImageFails(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkService(f.store, f.images.WithDecoder(failingDecoder))

	_, err := svc.Upload(ctx, WorkInput{Title: "Half", Before: upload("a.jpg"), After: upload("b.heic")})
	assert.ErrorIs(t, err, imaging.ErrConversionFailed)

	assert.Empty(t, f.files(t, "before"))
	count, err := f.store.Works.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestWorkDelete(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkService(f.store, f.images)

	work, err := svc.Upload(ctx, WorkInput{Title: "Gone", Before: upload("a.jpg"), After: upload("b.jpg")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, work.ID))
	assert.Empty(t, f.files(t, "before"))
	assert.Empty(t, f.files(t, "after"))

	assert.ErrorIs(t, svc.Delete(ctx, work.ID), repository.ErrWorkNotFound)
}

func TestWorkDeleteToleratesMissingFiles(t *testing.T) {
	f := newFixture(t)
	svc := NewWorkService(f.store, f.images)

	work, err := svc.Upload(ctx, WorkInput{Title: "Half gone", Before: upload("a.jpg"), After: upload("b.jpg")})
	require.NoError(t, err)
	f.images.Remove(ctx, imaging.CategoryBefore, work.BeforeImage)

	require.NoError(t, svc.Delete(ctx, work.ID))
	_, err = f.store.Works.ByID(ctx, work.ID)
	assert.ErrorIs(t, err, repository.ErrWorkNotFound)
}
