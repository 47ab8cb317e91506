package text

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// FontSource is one parsed font file. A source is shared by every
// rasterizer built from its family, whatever the size.
//
// FontSource is safe for concurrent use and must not be copied after
// creation.
type FontSource struct {
	self *FontSource

	mu     sync.RWMutex
	data   []byte
	parsed ParsedFont
	name   string
}

// NewFontSource parses TrueType or OpenType data. The data is copied.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	parsed, err := lookupParser(cfg.parserName).Parse(data)
	if err != nil {
		return nil, err
	}
	s := &FontSource{
		data:   append([]byte(nil), data...),
		parsed: parsed,
		name:   displayName(parsed),
	}
	s.self = s
	return s, nil
}

// NewFontSourceFromFile reads and parses the font file at path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user supplied font path
	if err != nil {
		return nil, fmt.Errorf("text: read font: %w", err)
	}
	return NewFontSource(data, opts...)
}

// Name returns "Family Subfamily", such as "Go Bold".
func (s *FontSource) Name() string {
	s.mustNotCopy()
	return s.name
}

// Parsed returns the parsed font, or ErrClosed.
func (s *FontSource) Parsed() (ParsedFont, error) {
	s.mustNotCopy()
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.parsed == nil {
		return nil, ErrClosed
	}
	return s.parsed, nil
}

// Data returns the raw font bytes, nil after Close. Callers must not
// modify the slice.
func (s *FontSource) Data() []byte {
	s.mustNotCopy()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// HasGlyph reports whether the character map covers r.
func (s *FontSource) HasGlyph(r rune) bool {
	p, err := s.Parsed()
	return err == nil && p.HasRune(r)
}

// Close drops the font data. Faces already created stay usable.
func (s *FontSource) Close() error {
	s.mustNotCopy()
	s.mu.Lock()
	s.data, s.parsed = nil, nil
	s.mu.Unlock()
	return nil
}

func (s *FontSource) mustNotCopy() {
	if s.self != s {
		panic("text: FontSource copied by value")
	}
}

func displayName(p ParsedFont) string {
	family, sub := p.Family(), p.Subfamily()
	switch {
	case family == "":
		return "unnamed font"
	case sub == "" || strings.EqualFold(sub, "Regular"):
		return family
	default:
		return family + " " + sub
	}
}
