package utils

import (
	"fmt"
	"regexp"
)

// Email, phone and NIN regex patterns
var (
	EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	PhoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	NINRegex   = regexp.MustCompile(`^\d{11}$`)
)

// MinPasswordLength applies to referral partner registration only; the
// password is checked and discarded, never stored.
const MinPasswordLength = 8

// ValidateEmail checks if email format is valid
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !EmailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePhone checks if phone is in E.164 format
func ValidatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("phone is required")
	}
	if !PhoneRegex.MatchString(phone) {
		return fmt.Errorf("invalid phone format (use E.164 format, e.g., +2348012345678)")
	}
	return nil
}

// ValidateNIN checks the national identification number is exactly 11 digits
func ValidateNIN(nin string) error {
	if nin == "" {
		return fmt.Errorf("ninNumber is required")
	}
	if !NINRegex.MatchString(nin) {
		return fmt.Errorf("NIN number must be exactly 11 digits")
	}
	return nil
}

// ValidatePassword enforces the minimum length and confirmation match
func ValidatePassword(password, confirm string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}
