package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxNameLength bounds sheet and store names.
const MaxNameLength = 64

// ValidateName validates a sheet or store name. Names double as display
// labels and lookup keys, so they must be printable and must not look like a
// path.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return New(ErrCodeInvalidInput, "name too long (max %d characters)", MaxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains control characters")
		}
	}
	if strings.ContainsAny(name, `/\`) {
		return New(ErrCodeInvalidInput, "name cannot contain path separators: %q", name)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a scheme the database fetcher understands.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	for _, scheme := range []string{"http://", "https://", "s3://"} {
		if strings.HasPrefix(rawURL, scheme) {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use http, https or s3 scheme")
}
