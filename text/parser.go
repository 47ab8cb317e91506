package text

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontParser turns TrueType or OpenType data into a ParsedFont.
type FontParser interface {
	Parse(data []byte) (ParsedFont, error)
}

// ParsedFont is the view of a font file the rasterizer needs.
type ParsedFont interface {
	// Family returns the family name, or "" when the font has none.
	Family() string

	// Subfamily returns the style name such as "Bold Italic", or "".
	Subfamily() string

	// HasRune reports whether the character map has a glyph for r.
	HasRune(r rune) bool

	// NewFace creates a face at size pixels per em.
	NewFace(size float64, hinting font.Hinting) (font.Face, error)
}

const defaultParserName = "sfnt"

var (
	parsersMu sync.RWMutex
	parsers   = map[string]FontParser{defaultParserName: sfntParser{}}
)

// RegisterParser makes a parser available to WithParser.
func RegisterParser(name string, p FontParser) {
	parsersMu.Lock()
	parsers[name] = p
	parsersMu.Unlock()
}

// lookupParser falls back to the sfnt parser for unknown names.
func lookupParser(name string) FontParser {
	parsersMu.RLock()
	defer parsersMu.RUnlock()
	if p, ok := parsers[name]; ok {
		return p
	}
	return parsers[defaultParserName]
}

// sfntParser is backed by golang.org/x/image/font/opentype.
type sfntParser struct{}

func (sfntParser) Parse(data []byte) (ParsedFont, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	return &sfntFont{f: f}, nil
}

type sfntFont struct {
	f *opentype.Font

	mu  sync.Mutex
	buf sfnt.Buffer
}

func (s *sfntFont) name(id sfnt.NameID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, err := s.f.Name(&s.buf, id)
	if err != nil {
		return ""
	}
	return name
}

func (s *sfntFont) Family() string {
	if n := s.name(sfnt.NameIDTypographicFamily); n != "" {
		return n
	}
	return s.name(sfnt.NameIDFamily)
}

func (s *sfntFont) Subfamily() string {
	if n := s.name(sfnt.NameIDTypographicSubfamily); n != "" {
		return n
	}
	return s.name(sfnt.NameIDSubfamily)
}

func (s *sfntFont) HasRune(r rune) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.f.GlyphIndex(&s.buf, r)
	return err == nil && idx != 0
}

func (s *sfntFont) NewFace(size float64, hinting font.Hinting) (font.Face, error) {
	face, err := opentype.NewFace(s.f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: hinting})
	if err != nil {
		return nil, fmt.Errorf("text: face at %vpx: %w", size, err)
	}
	return face, nil
}
