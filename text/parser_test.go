package text

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goregular"
)

func TestFontSourceName(t *testing.T) {
	tests := []struct {
		data []byte
		want string
	}{
		{goregular.TTF, "Go"},
		{gobolditalic.TTF, "Go Bold Italic"},
	}
	for _, tt := range tests {
		src, err := NewFontSource(tt.data)
		if err != nil {
			t.Fatalf("NewFontSource() error = %v", err)
		}
		if got := src.Name(); got != tt.want {
			t.Errorf("Name() = %q, want %q", got, tt.want)
		}
	}
}

func TestFontSourceClose(t *testing.T) {
	src, err := NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if !src.HasGlyph('g') {
		t.Error("HasGlyph('g') = false, want true")
	}
	if err := src.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := src.Parsed(); !errors.Is(err, ErrClosed) {
		t.Errorf("Parsed() after Close error = %v, want %v", err, ErrClosed)
	}
	if src.HasGlyph('g') {
		t.Error("HasGlyph after Close = true, want false")
	}
	if src.Data() != nil {
		t.Error("Data() after Close is not nil")
	}
}

type stubFont struct{ ParsedFont }

func (stubFont) Family() string    { return "Stub" }
func (stubFont) Subfamily() string { return "Regular" }
func (stubFont) HasRune(rune) bool { return false }

type stubParser struct{}

func (stubParser) Parse([]byte) (ParsedFont, error) { return stubFont{}, nil }

func TestRegisterParser(t *testing.T) {
	RegisterParser("stub", stubParser{})
	t.Cleanup(func() {
		parsersMu.Lock()
		delete(parsers, "stub")
		parsersMu.Unlock()
	})

	src, err := NewFontSource([]byte{1}, WithParser("stub"))
	if err != nil {
		t.Fatalf("NewFontSource() error = %v", err)
	}
	if src.Name() != "Stub" {
		t.Errorf("Name() = %q, want %q", src.Name(), "Stub")
	}

	// Unknown names use the sfnt parser, which rejects the data.
	if _, err := NewFontSource([]byte{1}, WithParser("missing")); err == nil {
		t.Error("NewFontSource() with unknown parser accepted garbage")
	}
}
