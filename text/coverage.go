package text

import (
	"bytes"
	"fmt"
	"sync"

	gotext "github.com/go-text/typesetting/font"
)

// coverageFonts caches go-text fonts per source. font.Font is read-only
// and safe for concurrent use.
var coverageFonts sync.Map // *FontSource -> *gotext.Font

// MissingRunes returns the runes of alphabet the source has no cmap entry
// for, in alphabet order without duplicates.
func MissingRunes(src *FontSource, alphabet []rune) ([]rune, error) {
	f, err := coverageFont(src)
	if err != nil {
		return nil, err
	}
	seen := make(map[rune]bool, len(alphabet))
	var missing []rune
	for _, r := range alphabet {
		if seen[r] {
			continue
		}
		seen[r] = true
		if _, ok := f.NominalGlyph(r); !ok {
			missing = append(missing, r)
		}
	}
	return missing, nil
}

// CheckCoverage returns a *MissingGlyphsError when src lacks any rune of
// alphabet.
func CheckCoverage(src *FontSource, alphabet []rune) error {
	missing, err := MissingRunes(src, alphabet)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return &MissingGlyphsError{Source: src.Name(), Runes: missing}
	}
	return nil
}

func coverageFont(src *FontSource) (*gotext.Font, error) {
	if f, ok := coverageFonts.Load(src); ok {
		return f.(*gotext.Font), nil
	}
	data := src.Data()
	if len(data) == 0 {
		return nil, ErrClosed
	}
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: coverage parse %s: %w", src.Name(), err)
	}
	f, _ := coverageFonts.LoadOrStore(src, face.Font)
	return f.(*gotext.Font), nil
}
