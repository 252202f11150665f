package errors

import (
	"strings"
	"unicode"
)

// maxDimensionIDLength bounds identifiers accepted from scenario files and
// the HTTP bridge.
const maxDimensionIDLength = 256

// ValidateDimensionID validates an opaque dimension identifier.
// The layout never interprets identifiers, so the rules only reject values
// that cannot round-trip through scenario files and JSON payloads:
//   - No empty identifiers
//   - No surrounding whitespace
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateDimensionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDimension, "dimension id cannot be empty")
	}

	if len(id) > maxDimensionIDLength {
		return New(ErrCodeInvalidDimension, "dimension id too long (max %d characters)", maxDimensionIDLength)
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidDimension, "dimension id %q has surrounding whitespace", id)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDimension, "dimension id contains invalid control characters")
		}
	}

	return nil
}
