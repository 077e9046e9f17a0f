package validation

import (
	"fmt"
	"regexp"
)

// EmailPattern is a deliberately loose check: one @ with something on both
// sides and a dot in the domain. Real validation belongs to the backend.
var EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	// MaxEmailLen caps the address length before it is sent anywhere
	MaxEmailLen = 254
)

// ValidateEmail checks that the address is plausibly deliverable before a
// login or registration request is issued.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}

	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("email address is not valid")
	}

	return nil
}

// ValidatePassword checks the minimal client-side requirement. Password
// policy is enforced server-side; this only avoids an obviously doomed
// round trip.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	return nil
}
