package utils

import (
	"fmt"
	"regexp"
)

var (
	checkNumberRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\-]{2,19}$`)
	controlRegex     = regexp.MustCompile(`[\x00-\x1f\x7f]`)
)

// ValidateCheckNumber validates a bank check number: 3 to 20 alphanumeric
// characters, dashes allowed after the first
func ValidateCheckNumber(checkNumber string) error {
	if !checkNumberRegex.MatchString(checkNumber) {
		return fmt.Errorf("invalid check number format: %s", checkNumber)
	}
	return nil
}

// SanitizeString removes control characters
func SanitizeString(s string) string {
	return controlRegex.ReplaceAllString(s, "")
}
