package model

import (
	"time"
)

// Work is a before/after transformation shown in the public gallery.
type Work struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	HairType    string    `db:"hair_type"`
	Cost        string    `db:"cost"`
	BeforeImage string    `db:"before_image"`
	AfterImage  string    `db:"after_image"`
	ReelLink    *string   `db:"reel_link"`
	CreatedAt   time.Time `db:"created_at"`
}

func (w *Work) HasReel() bool {
	return w.ReelLink != nil && *w.ReelLink != ""
}
