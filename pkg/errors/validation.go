package errors

import (
	"strings"
	"unicode"
)

// MaxLabelLength bounds type labels accepted by [ValidateLabel].
const MaxLabelLength = 256

// ValidateLabel validates a type label for use as a lattice lookup key.
//
// The empty label is valid and means "unlabeled". Non-empty labels must:
//   - be at most MaxLabelLength bytes
//   - contain no control characters
//   - have no leading or trailing whitespace
func ValidateLabel(label string) error {
	if label == "" {
		return nil
	}

	if len(label) > MaxLabelLength {
		return New(ErrCodeInvalidLabel, "label too long (max %d characters)", MaxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label %q contains control characters", label)
		}
	}

	if strings.TrimSpace(label) != label {
		return New(ErrCodeInvalidLabel, "label %q has surrounding whitespace", label)
	}

	return nil
}
