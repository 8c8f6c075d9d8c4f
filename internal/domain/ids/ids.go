package ids

import (
	"crypto/rand"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	ulidRegex = regexp.MustCompile(`(?i)^[0-9A-HJKMNP-TV-Z]{26}$`)

	ErrInvalidULID = errors.New("invalid ULID")
)

// NewULID mints a new ULID string for an event or application identity.
func NewULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ValidateULID checks that value is a well-formed ULID. Identities are
// compared case-insensitively; storage keeps the uppercase form.
func ValidateULID(value string) error {
	if !ulidRegex.MatchString(strings.TrimSpace(value)) {
		return ErrInvalidULID
	}
	return nil
}

// NormalizeULID returns the canonical uppercase form of a ULID.
func NormalizeULID(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
