package text

import (
	"fmt"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Family groups the sources of one typeface. Only Regular is required;
// missing variants are synthesized from the closest available source.
type Family struct {
	Regular    *FontSource
	Bold       *FontSource
	Italic     *FontSource
	BoldItalic *FontSource
}

// FamilyPaths names font files for LoadFamily. Empty entries are skipped.
type FamilyPaths struct {
	Regular    string
	Bold       string
	Italic     string
	BoldItalic string
}

// LoadFamily reads every non-empty path of p.
func LoadFamily(p FamilyPaths, opts ...SourceOption) (*Family, error) {
	if p.Regular == "" {
		return nil, ErrNoRegularFace
	}
	f := &Family{}
	targets := []struct {
		path string
		dst  **FontSource
	}{
		{p.Regular, &f.Regular},
		{p.Bold, &f.Bold},
		{p.Italic, &f.Italic},
		{p.BoldItalic, &f.BoldItalic},
	}
	for _, t := range targets {
		if t.path == "" {
			continue
		}
		src, err := NewFontSourceFromFile(t.path, opts...)
		if err != nil {
			return nil, fmt.Errorf("text: load %s: %w", t.path, err)
		}
		*t.dst = src
	}
	return f, nil
}

var (
	defaultFamilyOnce sync.Once
	defaultFamily     *Family
	defaultFamilyErr  error
)

// DefaultFamily returns the bundled Go fonts. The family is parsed once
// and shared.
func DefaultFamily() (*Family, error) {
	defaultFamilyOnce.Do(func() {
		f := &Family{}
		for _, t := range []struct {
			data []byte
			dst  **FontSource
		}{
			{goregular.TTF, &f.Regular},
			{gobold.TTF, &f.Bold},
			{goitalic.TTF, &f.Italic},
			{gobolditalic.TTF, &f.BoldItalic},
		} {
			src, err := NewFontSource(t.data)
			if err != nil {
				defaultFamilyErr = err
				return
			}
			*t.dst = src
		}
		defaultFamily = f
	})
	return defaultFamily, defaultFamilyErr
}

// Source returns the source registered for v, or nil.
func (f *Family) Source(v Variant) *FontSource {
	switch v {
	case Bold:
		return f.Bold
	case Italic:
		return f.Italic
	case BoldItalic:
		return f.BoldItalic
	}
	return f.Regular
}

// Name returns the regular source name.
func (f *Family) Name() string {
	if f.Regular == nil {
		return ""
	}
	return f.Regular.Name()
}

// Synthesis describes which effects have to be faked for a variant.
type Synthesis struct {
	Bold   bool
	Italic bool
}

// Resolve returns the source to rasterize v with and the effects that
// must be synthesized on top of it.
func (f *Family) Resolve(v Variant) (*FontSource, Synthesis, error) {
	if f.Regular == nil {
		return nil, Synthesis{}, ErrNoRegularFace
	}
	if src := f.Source(v); src != nil {
		return src, Synthesis{}, nil
	}
	switch v {
	case Bold:
		return f.Regular, Synthesis{Bold: true}, nil
	case Italic:
		return f.Regular, Synthesis{Italic: true}, nil
	case BoldItalic:
		if f.Bold != nil {
			return f.Bold, Synthesis{Italic: true}, nil
		}
		if f.Italic != nil {
			return f.Italic, Synthesis{Bold: true}, nil
		}
		return f.Regular, Synthesis{Bold: true, Italic: true}, nil
	}
	return f.Regular, Synthesis{}, nil
}
