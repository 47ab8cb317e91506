package textgeom

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/textgeom/render"
)

func testCache(t *testing.T, size float64, opts ...CacheOption) *GlyphCache {
	t.Helper()
	c, err := NewGlyphCache(testFont(t, size), opts...)
	if err != nil {
		t.Fatalf("NewGlyphCache() error = %v", err)
	}
	return c
}

func TestGlyphCacheDefaultAlphabet(t *testing.T) {
	c := testCache(t, 16)
	if got := len(c.Alphabet()); got != 95 {
		t.Errorf("len(Alphabet()) = %d, want 95", got)
	}
	for _, r := range "aZ0~ \\\"" {
		if !c.Supports(r) {
			t.Errorf("Supports(%q) = false, want true", r)
		}
	}
	for _, r := range "€é\n" {
		if c.Supports(r) {
			t.Errorf("Supports(%q) = true, want false", r)
		}
	}
}

func TestGlyphCacheClones(t *testing.T) {
	c := testCache(t, 16, WithAlphabet("ab"))
	g1, err := c.Glyph('a', Style{})
	if err != nil {
		t.Fatal(err)
	}
	g2, err := c.Glyph('a', Style{})
	if err != nil {
		t.Fatal(err)
	}
	if g1 == g2 {
		t.Fatal("Glyph() returned the same clone twice")
	}
	if g1.Image() != g2.Image() {
		t.Error("clones do not share the cached image")
	}
	g1.X, g1.Tint = 5, render.Red
	if g2.X != 0 || g2.Tint != render.White {
		t.Errorf("second clone = {X:%v Tint:%v}, want untouched", g2.X, g2.Tint)
	}

	bold, err := c.Glyph('a', Style{Bold: true})
	if err != nil {
		t.Fatal(err)
	}
	if bold.Image() == g1.Image() {
		t.Error("bold glyph shares the regular image")
	}
	under, err := c.Glyph('a', Style{Underline: true})
	if err != nil {
		t.Fatal(err)
	}
	if under.Image() != g1.Image() {
		t.Error("underline selected a different glyph subset")
	}
}

func TestGlyphCacheUnsupported(t *testing.T) {
	c := testCache(t, 16, WithAlphabet("AB"))
	_, err := c.Glyph('C', Style{})
	if !errors.Is(err, ErrUnsupportedCharacter) {
		t.Fatalf("Glyph('C') error = %v, want %v", err, ErrUnsupportedCharacter)
	}
	var uerr *UnsupportedCharacterError
	if !errors.As(err, &uerr) || uerr.Rune != 'C' || uerr.Index != -1 {
		t.Errorf("error = %#v, want rune 'C' at index -1", err)
	}
}

func TestGlyphCachePlaceholder(t *testing.T) {
	buf := captureLogs(t)
	c := testCache(t, 16, WithAlphabet("AB"), WithPlaceholder('?'))
	if got := string(c.Alphabet()); got != "AB?" {
		t.Errorf("Alphabet() = %q, want %q", got, "AB?")
	}
	g, err := c.Glyph('C', Style{})
	if err != nil {
		t.Fatalf("Glyph('C') error = %v", err)
	}
	q, _ := c.Glyph('?', Style{})
	if g.Image() != q.Image() {
		t.Error("substituted glyph is not the placeholder")
	}
	if !strings.Contains(buf.String(), "placeholder") {
		t.Errorf("log = %q, want a placeholder warning", buf.String())
	}
}

func TestGlyphCacheLogsMissingCoverage(t *testing.T) {
	buf := captureLogs(t)
	testCache(t, 16, WithAlphabet("A中"))
	if !strings.Contains(buf.String(), "font lacks glyphs") {
		t.Errorf("log = %q, want a coverage warning", buf.String())
	}
}

func TestGlyphAdvanceMatchesMeasure(t *testing.T) {
	c := testCache(t, 20)
	r := c.Font().Rasterizer()
	for _, st := range []Style{{}, {Bold: true}, {Italic: true}, {Bold: true, Italic: true}} {
		g, err := c.Glyph('W', st)
		if err != nil {
			t.Fatal(err)
		}
		if want := r.MeasureRune('W', st).W; g.Advance() != want {
			t.Errorf("%v: Advance() = %d, want %d", st, g.Advance(), want)
		}
	}
}
