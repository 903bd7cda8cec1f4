package model

import (
	"time"
)

type Appointment struct {
	ID            string    `db:"id"`
	CustomerName  string    `db:"customer_name"`
	PhoneNumber   string    `db:"phone_number"`
	Service       string    `db:"service"`
	DateRequested string    `db:"date_requested"`
	Branch        string    `db:"branch"`
	IsConfirmed   bool      `db:"is_confirmed"`
	CreatedAt     time.Time `db:"created_at"`
}
