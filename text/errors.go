package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoRegularFace is returned when a Family has no regular source.
	ErrNoRegularFace = errors.New("text: family has no regular face")

	// ErrInvalidSize is returned for non-positive font sizes.
	ErrInvalidSize = errors.New("text: font size must be positive")

	// ErrClosed is returned when a closed FontSource is used.
	ErrClosed = errors.New("text: font source is closed")
)

// MissingGlyphsError lists runes a font source has no glyph for.
type MissingGlyphsError struct {
	Source string
	Runes  []rune
}

func (e *MissingGlyphsError) Error() string {
	return fmt.Sprintf("text: %s has no glyph for %q", e.Source, string(e.Runes))
}
