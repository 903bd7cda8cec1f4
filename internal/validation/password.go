package validation

import (
	"errors"
	"strings"
)

// ValidatePassword checks the admin password before it is hashed.
// bcrypt ignores everything past 72 bytes, so longer inputs are rejected.
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return errors.New("password must be at least 12 characters")
	}

	if len(password) > 72 {
		return errors.New("password must not exceed 72 bytes")
	}

	lower := strings.ToLower(password)
	for _, pattern := range []string{"password", "123456", "qwerty", "admin", "salon", "letmein"} {
		if strings.Contains(lower, pattern) {
			return errors.New("password is too common, please choose a stronger one")
		}
	}

	return nil
}
