package validation

import (
	"errors"
	"strconv"
	"strings"
)

const (
	MinRating = 1
	MaxRating = 5
)

var ErrInvalidRating = errors.New("rating must be a whole number from 1 to 5")

// ParseRating parses a star rating from a form value.
func ParseRating(value string) (int, error) {
	rating, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || rating < MinRating || rating > MaxRating {
		return 0, ErrInvalidRating
	}
	return rating, nil
}
