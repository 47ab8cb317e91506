package textgeom

import (
	"slices"

	"github.com/gogpu/textgeom/render"
	"github.com/gogpu/textgeom/text"
)

// DefaultAlphabet is the character set a GlyphCache rasterizes unless
// WithAlphabet is given.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"`1234567890-=+_)(*&^%$#@!~[]\\;',./<>?:\"{}| "

// glyphEntry is a rasterized character shared by every Glyph cloned
// from it.
type glyphEntry struct {
	img     *render.Image
	advance int
	height  int
}

// GlyphCache holds every character of an alphabet prerasterized in the
// four style variants.
type GlyphCache struct {
	font        *Font
	alphabet    []rune
	entries     [len(text.Variants)]map[rune]*glyphEntry
	placeholder rune
	substitute  bool
}

// NewGlyphCache rasterizes the alphabet of the cache with f. Characters
// the family cannot map are still rasterized and logged at warn level.
func NewGlyphCache(f *Font, opts ...CacheOption) (*GlyphCache, error) {
	if f == nil {
		return nil, ErrNilFont
	}
	cfg := defaultCacheConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	alphabet := cfg.alphabet
	if cfg.hasPlaceholder && !slices.Contains(alphabet, cfg.placeholder) {
		alphabet = append(slices.Clone(alphabet), cfg.placeholder)
	}

	c := &GlyphCache{
		font:        f,
		alphabet:    alphabet,
		placeholder: cfg.placeholder,
		substitute:  cfg.hasPlaceholder,
	}
	r := f.Rasterizer()
	for _, v := range text.Variants {
		st := Style{Bold: v.Bold(), Italic: v.Italic()}
		m := make(map[rune]*glyphEntry, len(alphabet))
		for _, ch := range alphabet {
			if _, ok := m[ch]; ok {
				continue
			}
			bm, err := r.RasterizeRune(ch, st)
			if err != nil {
				return nil, err
			}
			m[ch] = &glyphEntry{img: render.NewImage(bm.Mask), advance: bm.Width, height: bm.Height}
		}
		c.entries[v] = m
		c.logCoverage(v)
	}
	Logger().Debug("textgeom: glyph cache built", "glyphs", len(c.entries[text.Regular]), "variants", len(text.Variants))
	return c, nil
}

func (c *GlyphCache) logCoverage(v text.Variant) {
	src, _, err := c.font.Rasterizer().Family().Resolve(v)
	if err != nil {
		return
	}
	missing, err := text.MissingRunes(src, c.alphabet)
	if err != nil {
		Logger().Debug("textgeom: coverage check failed", "variant", v, "err", err)
		return
	}
	if len(missing) > 0 {
		Logger().Warn("textgeom: font lacks glyphs", "font", src.Name(), "variant", v, "runes", string(missing))
	}
}

// Font returns the font the cache was built from.
func (c *GlyphCache) Font() *Font { return c.font }

// Alphabet returns the cached characters.
func (c *GlyphCache) Alphabet() []rune { return slices.Clone(c.alphabet) }

// Supports reports whether r is cached. It ignores the placeholder.
func (c *GlyphCache) Supports(r rune) bool {
	_, ok := c.entries[text.Regular][r]
	return ok
}

// resolve maps r to the rune that will be drawn for it.
func (c *GlyphCache) resolve(r rune) (rune, bool) {
	if c.Supports(r) {
		return r, true
	}
	if c.substitute {
		Logger().Warn("textgeom: substituting placeholder", "rune", string(r), "placeholder", string(c.placeholder))
		return c.placeholder, true
	}
	return r, false
}

// Glyph returns a new glyph for r in style st. The glyph shares its image
// with the cache and carries its own position and tint.
func (c *GlyphCache) Glyph(r rune, st Style) (*Glyph, error) {
	ch, ok := c.resolve(r)
	if !ok {
		return nil, &UnsupportedCharacterError{Rune: r, Index: -1}
	}
	return c.glyph(ch, st), nil
}

// glyph assumes ch is cached.
func (c *GlyphCache) glyph(ch rune, st Style) *Glyph {
	return &Glyph{entry: c.entries[st.Variant()][ch], Tint: render.White}
}

// Glyph is a positioned, tinted copy of a cached character.
type Glyph struct {
	entry *glyphEntry
	X, Y  float64
	Tint  RGBA
}

// Image returns the shared glyph image.
func (g *Glyph) Image() *render.Image { return g.entry.img }

// Advance returns the horizontal advance in pixels.
func (g *Glyph) Advance() int { return g.entry.advance }

// Size returns the image size, which includes any italic overhang.
func (g *Glyph) Size() (w, h float64) {
	return float64(g.entry.img.Width()), float64(g.entry.img.Height())
}

// Render draws the glyph at its position.
func (g *Glyph) Render(dev render.Device) error {
	w, h := g.Size()
	return dev.DrawImage(g.entry.img, render.Rect{X: g.X, Y: g.Y, W: w, H: h}, g.Tint)
}
