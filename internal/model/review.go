package model

import (
	"time"
)

const (
	ReviewSortKudos  = "kudos"
	ReviewSortNewest = "newest"
)

type Review struct {
	ID           string    `db:"id"`
	CustomerName string    `db:"customer_name"`
	PhoneNumber  string    `db:"phone_number"`
	Branch       string    `db:"branch"`
	ImageFront   *string   `db:"image_front"`
	ImageBack    *string   `db:"image_back"`
	Rating       int       `db:"rating"`
	Content      string    `db:"content"`
	Kudos        int       `db:"kudos"`
	IsApproved   bool      `db:"is_approved"`
	IsFeatured   bool      `db:"is_featured"`
	WorkID       *string   `db:"work_id"` // Weak reference, the work may no longer exist
	CreatedAt    time.Time `db:"created_at"`
}

// Images returns the stored filenames attached to the review.
func (r *Review) Images() []string {
	var images []string
	if r.ImageFront != nil && *r.ImageFront != "" {
		images = append(images, *r.ImageFront)
	}
	if r.ImageBack != nil && *r.ImageBack != "" {
		images = append(images, *r.ImageBack)
	}
	return images
}

// ReviewFilter narrows the public review listing.
// Stars of 0 means any rating.
type ReviewFilter struct {
	Stars int
	Sort  string
}
