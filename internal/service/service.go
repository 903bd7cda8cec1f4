package service

import (
	"errors"
	"io"
	"math"
)

var (
	// ErrValidation marks input the user can fix and resubmit. Nothing is written.
	ErrValidation = errors.New("validation failed")
)

// ImageUpload is an uploaded file as received from a form.
type ImageUpload struct {
	Filename string
	File     io.Reader
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
