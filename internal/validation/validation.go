// Package validation provides input validation for the POAP service.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Upper bounds on form field lengths. The note payload has a hard ledger
// limit; these keep individual fields in a sane range before that check.
const (
	maxFieldLen = 256
	maxFileSize = 20 << 20 // 20 MiB upload cap
)

// Loose email shape check: one @ with something on both sides and a dot in
// the domain. Deliverability is the relay's problem.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var hexDigestRegex = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)

// ValidateAssetID validates a ledger asset identifier.
func ValidateAssetID(id uint64) error {
	if id == 0 {
		return errors.New("asset id must be a positive integer")
	}
	return nil
}

// ValidateEmail validates a recipient email address.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("recipient email is required")
	}
	if len(email) > maxFieldLen {
		return fmt.Errorf("recipient email too long (max %d chars)", maxFieldLen)
	}
	if !emailRegex.MatchString(email) {
		return errors.New("invalid recipient email address")
	}
	return nil
}

// ValidateField validates a required free-text form field.
func ValidateField(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", name)
	}
	if len(value) > maxFieldLen {
		return fmt.Errorf("%s too long (max %d chars)", name, maxFieldLen)
	}
	return nil
}

// ValidateFile validates the uploaded certificate file.
func ValidateFile(name string, size int) error {
	if size == 0 {
		return errors.New("certificate file is empty")
	}
	if size > maxFileSize {
		return fmt.Errorf("certificate file too large (max %d bytes)", maxFileSize)
	}
	// Prevent path traversal in the attachment filename
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return errors.New("invalid certificate filename")
	}
	return nil
}

// ValidateHexDigest validates a 64-character hex SHA-256 digest.
func ValidateHexDigest(digest string) error {
	if !hexDigestRegex.MatchString(digest) {
		return errors.New("certificate hash must be 64 hex characters")
	}
	return nil
}
