package atlas

import (
	"errors"
	"fmt"
)

var (
	// ErrAtlasOverflow is returned when the alphabet does not fit the canvas.
	ErrAtlasOverflow = errors.New("atlas: glyphs do not fit the canvas")

	// ErrMissingGlyph is returned when emitted text uses a character the
	// atlas was not built with.
	ErrMissingGlyph = errors.New("atlas: character not in atlas")

	// ErrColorCount is returned when per-character colors do not match
	// the text length.
	ErrColorCount = errors.New("atlas: color count does not match text length")

	// ErrInvalidCanvas is returned for non-positive canvas dimensions.
	ErrInvalidCanvas = errors.New("atlas: canvas size must be positive")
)

// OverflowError reports the first glyph that did not fit.
type OverflowError struct {
	Rune          rune
	Width, Height int
	X, Y          int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("atlas: glyph %q (%dx%d) does not fit at (%d,%d)", e.Rune, e.Width, e.Height, e.X, e.Y)
}

// Is reports whether target is ErrAtlasOverflow.
func (e *OverflowError) Is(target error) bool { return target == ErrAtlasOverflow }

// MissingGlyphError reports a character without atlas metrics.
type MissingGlyphError struct {
	Rune  rune
	Index int
}

func (e *MissingGlyphError) Error() string {
	return fmt.Sprintf("atlas: character %q at index %d not in atlas", e.Rune, e.Index)
}

// Is reports whether target is ErrMissingGlyph.
func (e *MissingGlyphError) Is(target error) bool { return target == ErrMissingGlyph }
