package errors

import (
	"strings"
	"unicode"
)

// ValidateGameSize rejects games with more vertices than limit.
// A limit of zero or less disables the check.
func ValidateGameSize(vertices, limit int) error {
	if limit > 0 && vertices > limit {
		return New(ErrCodeGameTooLarge, "game has %d vertices (max %d)", vertices, limit)
	}
	return nil
}

// ValidatePriority rejects games whose highest priority exceeds limit.
// A limit of zero or less disables the check.
func ValidatePriority(maxPriority, limit int) error {
	if limit > 0 && maxPriority > limit {
		return New(ErrCodeGameTooLarge, "game has priority %d (max %d)", maxPriority, limit)
	}
	return nil
}

// ValidateMeasureSize rejects games whose progress measures would hold more
// than limit components in total: one per odd priority for every vertex.
// A limit of zero or less disables the check.
func ValidateMeasureSize(vertices, maxPriority int, limit int64) error {
	if limit <= 0 {
		return nil
	}
	if cells := int64(vertices) * int64((maxPriority+1)/2); cells > limit {
		return New(ErrCodeGameTooLarge, "measures of %d vertices up to priority %d need %d components (max %d)",
			vertices, maxPriority, cells, limit)
	}
	return nil
}

// ValidateOutputPath validates a file path supplied for writing results.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No trailing path separator (must name a file)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}
