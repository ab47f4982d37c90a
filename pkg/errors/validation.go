package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidateDimension checks that a maze dimension lies in [1, max].
// The name is used in the message ("width", "height").
func ValidateDimension(name string, value, max int) error {
	if value < 1 {
		return New(ErrCodeInvalidArgument, "%s must be at least 1, got %d", name, value)
	}
	if value > max {
		return New(ErrCodeInvalidArgument, "%s must be at most %d, got %d", name, max, value)
	}
	return nil
}

// ValidateGlyph validates a glyph used by the text renderer.
// A glyph is exactly one printable rune so the rendered grid keeps one
// glyph per position.
func ValidateGlyph(glyph string) error {
	if glyph == "" {
		return New(ErrCodeInvalidGlyph, "glyph cannot be empty")
	}
	if utf8.RuneCountInString(glyph) != 1 {
		return New(ErrCodeInvalidGlyph, "glyph must be a single character: %q", glyph)
	}
	r, _ := utf8.DecodeRuneInString(glyph)
	if r == utf8.RuneError {
		return New(ErrCodeInvalidGlyph, "glyph is not valid UTF-8: %q", glyph)
	}
	if r != ' ' && !unicode.IsPrint(r) {
		return New(ErrCodeInvalidGlyph, "glyph must be printable: %q", glyph)
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI is asked to write to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}
