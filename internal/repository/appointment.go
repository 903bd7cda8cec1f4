package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hairstudio/salon/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	ByID(ctx context.Context, id string) (*model.Appointment, error)
	ByConfirmation(ctx context.Context, confirmed bool) ([]*model.Appointment, error)
	ByPhone(ctx context.Context, phone string) ([]*model.Appointment, error)
	CountPending(ctx context.Context) (int, error)
	Confirm(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type appointmentRepository struct {
	db sqlx.ExtContext
}

func NewAppointmentRepository(db sqlx.ExtContext) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `INSERT INTO appointments (id, customer_name, phone_number, service, date_requested, branch, is_confirmed, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.CustomerName,
		appointment.PhoneNumber,
		appointment.Service,
		appointment.DateRequested,
		appointment.Branch,
		appointment.IsConfirmed,
		appointment.CreatedAt,
	)

	return err
}

func (r *appointmentRepository) ByID(ctx context.Context, id string) (*model.Appointment, error) {
	appointment := &model.Appointment{}
	err := sqlx.GetContext(ctx, r.db, appointment, `SELECT * FROM appointments WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

func (r *appointmentRepository) ByConfirmation(ctx context.Context, confirmed bool) ([]*model.Appointment, error) {
	appointments := []*model.Appointment{}
	err := sqlx.SelectContext(ctx, r.db, &appointments,
		`SELECT * FROM appointments WHERE is_confirmed = $1 ORDER BY created_at DESC`, confirmed)
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) ByPhone(ctx context.Context, phone string) ([]*model.Appointment, error) {
	appointments := []*model.Appointment{}
	err := sqlx.SelectContext(ctx, r.db, &appointments,
		`SELECT * FROM appointments WHERE phone_number = $1 ORDER BY created_at DESC`, phone)
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) CountPending(ctx context.Context) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, r.db, &count, `SELECT COUNT(*) FROM appointments WHERE is_confirmed = FALSE`)
	return count, err
}

func (r *appointmentRepository) Confirm(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE appointments SET is_confirmed = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectRow(result, ErrAppointmentNotFound)
}

func (r *appointmentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectRow(result, ErrAppointmentNotFound)
}
