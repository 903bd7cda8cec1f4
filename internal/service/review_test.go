package service

import (
	"testing"
	"time"

	"github.com/hairstudio/salon/internal/model"
	"github.com/hairstudio/salon/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewSubmitIsPending(t *testing.T) {
	f := newFixture(t)
	svc := NewReviewService(f.store, f.images)

	review, err := svc.Submit(ctx, ReviewInput{
		Name:    "Asha",
		Phone:   "111",
		Rating:  "5",
		Content: "Great cut",
		WorkID:  "some-work",
		Front:   upload("front.jpg"),
	})
	require.NoError(t, err)
	assert.False(t, review.IsApproved)
	assert.False(t, review.IsFeatured)
	assert.Zero(t, review.Kudos)
	require.NotNil(t, review.ImageFront)
	assert.Nil(t, review.ImageBack)
	require.NotNil(t, review.WorkID)
	assert.Equal(t, "some-work", *review.WorkID)

	public, err := svc.Public(ctx, model.ReviewFilter{})
	require.NoError(t, err)
	assert.Empty(t, public)

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestReviewSubmitValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewReviewService(f.store, f.images)

	cases := []ReviewInput{
		{Name: "", Rating: "5", Content: "x"},
		{Name: "A", Rating: "5", Content: ""},
		{Name: "A", Rating: "0", Content: "x"},
		{Name: "A", Rating: "six", Content: "x"},
	}
	for _, in := range cases {
		_, err := svc.Submit(ctx, in)
		assert.ErrorIs(t, err, ErrValidation)
	}

	all, err := f.store.Reviews.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestReviewSubmitDropsBadImage(t *testing.T) {
	f := newFixture(t)
	svc := NewReviewService(f.store, f.images)

	review, err := svc.Submit(ctx, ReviewInput{
		Name: "Asha", Rating: "4", Content: "ok",
		Front: upload("clip.gif"),
	})
	require.NoError(t, err)
	assert.Nil(t, review.ImageFront)
	assert.Empty(t, f.files(t, "reviews"))
}

func TestReviewLikeCountsEveryCall(t *testing.T) {
	f := newFixture(t)
	svc := NewReviewService(f.store, f.images)

	review := &model.Review{ID: "r1", CustomerName: "A", Rating: 5, Content: "x", IsApproved: true, CreatedAt: time.Now().UTC()}
	mustReview(t, f.store, review)

	var kudos int
	var err error
	for i := 0; i < 4; i++ {
		kudos, err = svc.Like(ctx, "r1")
		require.NoError(t, err)
	}
	assert.Equal(t, 4, kudos)

	_, err = svc.Like(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrReviewNotFound)
}

func TestReviewModeration(t *testing.T) {
	f := newFixture(t)
	svc := NewReviewService(f.store, f.images)

	review, err := svc.Submit(ctx, ReviewInput{Name: "A", Rating: "5", Content: "x"})
	require.NoError(t, err)

	featured, err := svc.ToggleFeatured(ctx, review.ID)
	require.NoError(t, err)
	assert.True(t, featured)

	// Featured but pending stays off the public strip.
	strip, err := svc.Featured(ctx)
	require.NoError(t, err)
	assert.Empty(t, strip)

	require.NoError(t, svc.Approve(ctx, review.ID))
	strip, err = svc.Featured(ctx)
	require.NoError(t, err)
	assert.Len(t, strip, 1)

	approved, err := svc.Approved(ctx)
	require.NoError(t, err)
	assert.Len(t, approved, 1)
}

func TestReviewDeleteRemovesImages(t *testing.T) {
	f := newFixture(t)
	svc := NewReviewService(f.store, f.images)

	review, err := svc.Submit(ctx, ReviewInput{
		Name: "A", Rating: "5", Content: "x",
		Front: upload("f.jpg"), Back: upload("b.webp"),
	})
	require.NoError(t, err)
	assert.Len(t, f.files(t, "reviews"), 2)

	require.NoError(t, svc.Delete(ctx, review.ID))
	assert.Empty(t, f.files(t, "reviews"))
	assert.ErrorIs(t, svc.Delete(ctx, review.ID), repository.ErrReviewNotFound)
}
