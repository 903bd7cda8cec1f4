package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hairstudio/salon/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrReviewNotFound = errors.New("review not found")
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ByID(ctx context.Context, id string) (*model.Review, error)
	Approved(ctx context.Context, filter model.ReviewFilter) ([]*model.Review, error)
	Featured(ctx context.Context, limit int) ([]*model.Review, error)
	ByApproval(ctx context.Context, approved bool) ([]*model.Review, error)
	All(ctx context.Context) ([]*model.Review, error)
	ByPhone(ctx context.Context, phone string) ([]*model.Review, error)
	ApprovedRatings(ctx context.Context) ([]int, error)
	CountPending(ctx context.Context) (int, error)
	IncrementKudos(ctx context.Context, id string) (int, error)
	Approve(ctx context.Context, id string) error
	ToggleFeatured(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type reviewRepository struct {
	db sqlx.ExtContext
}

func NewReviewRepository(db sqlx.ExtContext) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `INSERT INTO reviews (id, customer_name, phone_number, branch, image_front, image_back,
	                               rating, content, kudos, is_approved, is_featured, work_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		review.ID,
		review.CustomerName,
		review.PhoneNumber,
		review.Branch,
		review.ImageFront,
		review.ImageBack,
		review.Rating,
		review.Content,
		review.Kudos,
		review.IsApproved,
		review.IsFeatured,
		review.WorkID,
		review.CreatedAt,
	)

	return err
}

func (r *reviewRepository) ByID(ctx context.Context, id string) (*model.Review, error) {
	review := &model.Review{}
	err := sqlx.GetContext(ctx, r.db, review, `SELECT * FROM reviews WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return review, nil
}

// Approved lists the public reviews. Unknown sort keys fall back to kudos order.
func (r *reviewRepository) Approved(ctx context.Context, filter model.ReviewFilter) ([]*model.Review, error) {
	reviews := []*model.Review{}

	var orderBy string
	switch filter.Sort {
	case model.ReviewSortNewest:
		orderBy = "ORDER BY created_at DESC"
	default: // ReviewSortKudos or empty
		orderBy = "ORDER BY kudos DESC, created_at DESC"
	}

	var err error
	if filter.Stars > 0 {
		err = sqlx.SelectContext(ctx, r.db, &reviews,
			`SELECT * FROM reviews WHERE is_approved = TRUE AND rating = $1 `+orderBy, filter.Stars)
	} else {
		err = sqlx.SelectContext(ctx, r.db, &reviews,
			`SELECT * FROM reviews WHERE is_approved = TRUE `+orderBy)
	}
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// Featured returns featured reviews that are also approved, newest first.
func (r *reviewRepository) Featured(ctx context.Context, limit int) ([]*model.Review, error) {
	reviews := []*model.Review{}
	query := `SELECT * FROM reviews
	          WHERE is_featured = TRUE AND is_approved = TRUE
	          ORDER BY created_at DESC
	          LIMIT $1`

	err := sqlx.SelectContext(ctx, r.db, &reviews, query, limit)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ByApproval(ctx context.Context, approved bool) ([]*model.Review, error) {
	reviews := []*model.Review{}
	err := sqlx.SelectContext(ctx, r.db, &reviews,
		`SELECT * FROM reviews WHERE is_approved = $1 ORDER BY created_at DESC`, approved)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) All(ctx context.Context) ([]*model.Review, error) {
	reviews := []*model.Review{}
	err := sqlx.SelectContext(ctx, r.db, &reviews, `SELECT * FROM reviews ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ByPhone(ctx context.Context, phone string) ([]*model.Review, error) {
	reviews := []*model.Review{}
	err := sqlx.SelectContext(ctx, r.db, &reviews,
		`SELECT * FROM reviews WHERE phone_number = $1 ORDER BY created_at DESC`, phone)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ApprovedRatings(ctx context.Context) ([]int, error) {
	ratings := []int{}
	err := sqlx.SelectContext(ctx, r.db, &ratings, `SELECT rating FROM reviews WHERE is_approved = TRUE`)
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *reviewRepository) CountPending(ctx context.Context) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, r.db, &count, `SELECT COUNT(*) FROM reviews WHERE is_approved = FALSE`)
	return count, err
}

// IncrementKudos bumps the counter in a single statement and returns the new value.
func (r *reviewRepository) IncrementKudos(ctx context.Context, id string) (int, error) {
	var kudos int
	err := sqlx.GetContext(ctx, r.db, &kudos,
		`UPDATE reviews SET kudos = kudos + 1 WHERE id = $1 RETURNING kudos`, id)
	if err == sql.ErrNoRows {
		return 0, ErrReviewNotFound
	}
	if err != nil {
		return 0, err
	}
	return kudos, nil
}

func (r *reviewRepository) Approve(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE reviews SET is_approved = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectRow(result, ErrReviewNotFound)
}

// ToggleFeatured flips the featured flag and returns the new value.
func (r *reviewRepository) ToggleFeatured(ctx context.Context, id string) (bool, error) {
	var featured bool
	err := sqlx.GetContext(ctx, r.db, &featured,
		`UPDATE reviews SET is_featured = NOT is_featured WHERE id = $1 RETURNING is_featured`, id)
	if err == sql.ErrNoRows {
		return false, ErrReviewNotFound
	}
	if err != nil {
		return false, err
	}
	return featured, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectRow(result, ErrReviewNotFound)
}

// expectRow maps "no rows touched" to the given not-found error.
func expectRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
