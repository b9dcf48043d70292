package utils

import (
	"os"
	"regexp"
	"strings"
)

// defaultCountryCode returns the dialing prefix prepended to local numbers,
// configurable per deployment (DEFAULT_COUNTRY_CODE, e.g. "63" for the PH).
func defaultCountryCode() string {
	if code := os.Getenv("DEFAULT_COUNTRY_CODE"); code != "" {
		return code
	}
	return "63"
}

// FormatPhoneNumber strips everything but digits and ensures the number
// carries the deployment's country code.
func FormatPhoneNumber(phoneNumber string) string {
	re := regexp.MustCompile(`\D`)
	digits := re.ReplaceAllString(phoneNumber, "")

	code := defaultCountryCode()
	if len(digits) > 0 && !strings.HasPrefix(digits, code) {
		digits = strings.TrimLeft(digits, "0")
		digits = code + digits
	}

	return digits
}

// ValidatePhoneNumber checks a local mobile number: ten digits after removing
// formatting, starting with 9 (mobile prefix).
func ValidatePhoneNumber(phoneNumber string) bool {
	re := regexp.MustCompile(`\D`)
	cleaned := re.ReplaceAllString(phoneNumber, "")

	cleaned = strings.TrimPrefix(cleaned, defaultCountryCode())
	cleaned = strings.TrimLeft(cleaned, "0")

	if len(cleaned) != 10 {
		return false
	}

	return strings.HasPrefix(cleaned, "9")
}

// NormalizePhoneNumber normalizes phone number for database storage
func NormalizePhoneNumber(phoneNumber string) string {
	return FormatPhoneNumber(phoneNumber)
}
