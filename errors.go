package textgeom

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedCharacter is matched by *UnsupportedCharacterError.
	ErrUnsupportedCharacter = errors.New("textgeom: unsupported character")

	// ErrEmptyImageToken is returned when registering an inline image
	// under an empty token.
	ErrEmptyImageToken = errors.New("textgeom: empty inline image token")

	// ErrNilImage is returned when registering a nil inline image.
	ErrNilImage = errors.New("textgeom: nil inline image")

	// ErrNilFont is returned by constructors given a nil font or cache.
	ErrNilFont = errors.New("textgeom: nil font")

	// ErrNoFrames is returned for an animation without frames.
	ErrNoFrames = errors.New("textgeom: animation has no frames")
)

// UnsupportedCharacterError reports a character that a glyph cache or
// atlas has no glyph for. Index is the rune offset of the character in the
// text, inline image tokens counting one per rune. DynamicText counts in
// the normalized text ("\r\n" becomes "\n", NFC). Index is -1 when the
// character was requested on its own.
type UnsupportedCharacterError struct {
	Rune  rune
	Index int
}

func (e *UnsupportedCharacterError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("textgeom: unsupported character %q", e.Rune)
	}
	return fmt.Sprintf("textgeom: unsupported character %q at index %d", e.Rune, e.Index)
}

// Is reports whether target is ErrUnsupportedCharacter.
func (e *UnsupportedCharacterError) Is(target error) bool {
	return target == ErrUnsupportedCharacter
}
