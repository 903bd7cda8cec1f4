package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hairstudio/salon/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrWorkNotFound = errors.New("work not found")
)

// HairTypeAll disables the hair type filter.
const HairTypeAll = "all"

type WorkRepository interface {
	Create(ctx context.Context, work *model.Work) error
	ByID(ctx context.Context, id string) (*model.Work, error)
	Works(ctx context.Context, hairType string) ([]*model.Work, error)
	HairTypes(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}

type workRepository struct {
	db sqlx.ExtContext
}

func NewWorkRepository(db sqlx.ExtContext) WorkRepository {
	return &workRepository{db: db}
}

func (r *workRepository) Create(ctx context.Context, work *model.Work) error {
	query := `INSERT INTO works (id, title, hair_type, cost, before_image, after_image, reel_link, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		work.ID,
		work.Title,
		work.HairType,
		work.Cost,
		work.BeforeImage,
		work.AfterImage,
		work.ReelLink,
		work.CreatedAt,
	)

	return err
}

func (r *workRepository) ByID(ctx context.Context, id string) (*model.Work, error) {
	work := &model.Work{}
	query := `SELECT * FROM works WHERE id = $1`

	err := sqlx.GetContext(ctx, r.db, work, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrWorkNotFound
	}
	if err != nil {
		return nil, err
	}

	return work, nil
}

// Works lists works newest first. The hair type match is case-insensitive;
// an empty value or HairTypeAll returns everything.
func (r *workRepository) Works(ctx context.Context, hairType string) ([]*model.Work, error) {
	works := []*model.Work{}

	var err error
	if hairType == "" || hairType == HairTypeAll {
		err = sqlx.SelectContext(ctx, r.db, &works, `SELECT * FROM works ORDER BY created_at DESC`)
	} else {
		err = sqlx.SelectContext(ctx, r.db, &works,
			`SELECT * FROM works WHERE LOWER(hair_type) = LOWER($1) ORDER BY created_at DESC`, hairType)
	}
	if err != nil {
		return nil, err
	}

	return works, nil
}

// HairTypes lists the distinct non-empty hair types, lowercased, for the gallery filter.
func (r *workRepository) HairTypes(ctx context.Context) ([]string, error) {
	types := []string{}
	err := sqlx.SelectContext(ctx, r.db, &types,
		`SELECT DISTINCT LOWER(hair_type) AS hair_type FROM works WHERE hair_type <> '' ORDER BY 1`)
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *workRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, r.db, &count, `SELECT COUNT(*) FROM works`)
	return count, err
}

func (r *workRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM works WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrWorkNotFound
	}

	return nil
}
