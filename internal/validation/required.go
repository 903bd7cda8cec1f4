package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxNameRunes = 100

// Field is a named form value.
type Field struct {
	Name  string
	Value string
}

// Required returns an error naming every blank field, in order.
func Required(fields ...Field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
}

// ValidateName rejects blank names and names over 100 characters.
// Length counts runes so Urdu and accented names get the same allowance.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return errors.New("name is required")
	case utf8.RuneCountInString(name) > maxNameRunes:
		return fmt.Errorf("name is too long (max %d characters)", maxNameRunes)
	}
	return nil
}
