package textgeom

import (
	"github.com/gogpu/textgeom/render"
	"github.com/gogpu/textgeom/text"
)

// FontOption configures NewFont.
type FontOption func(*fontConfig)

type fontConfig struct {
	raster []text.RasterOption
}

// WithRasterOptions passes options through to the font's rasterizer.
func WithRasterOptions(opts ...text.RasterOption) FontOption {
	return func(c *fontConfig) {
		c.raster = append(c.raster, opts...)
	}
}

// CacheOption configures NewGlyphCache.
type CacheOption func(*cacheConfig)

type cacheConfig struct {
	alphabet       []rune
	placeholder    rune
	hasPlaceholder bool
}

func defaultCacheConfig() cacheConfig {
	return cacheConfig{alphabet: []rune(DefaultAlphabet)}
}

// WithAlphabet replaces the set of characters rasterized by the cache.
func WithAlphabet(alphabet string) CacheOption {
	return func(c *cacheConfig) {
		c.alphabet = []rune(alphabet)
	}
}

// WithPlaceholder substitutes r for characters outside the alphabet
// instead of failing. The placeholder is added to the alphabet.
func WithPlaceholder(r rune) CacheOption {
	return func(c *cacheConfig) {
		c.placeholder = r
		c.hasPlaceholder = true
	}
}

// TextOption configures the text objects.
type TextOption func(*textConfig)

type textConfig struct {
	style  Style
	colors []RGBA
	wrap   float64
	size   float64
}

func defaultTextConfig() textConfig {
	return textConfig{colors: []RGBA{render.White}}
}

func (c textConfig) color() RGBA {
	if len(c.colors) == 0 {
		return render.White
	}
	return c.colors[0]
}

// WithStyle sets the initial style.
func WithStyle(st Style) TextOption {
	return func(c *textConfig) {
		c.style = st
	}
}

// WithColor sets a single text color.
func WithColor(col RGBA) TextOption {
	return func(c *textConfig) {
		c.colors = []RGBA{col}
	}
}

// WithColors sets one color per character. Only AtlasText colors
// characters individually; the other text objects use the first color.
func WithColors(cols ...RGBA) TextOption {
	return func(c *textConfig) {
		c.colors = append([]RGBA(nil), cols...)
	}
}

// WithWrap sets the wrap width in pixels. Zero disables wrapping.
func WithWrap(px float64) TextOption {
	return func(c *textConfig) {
		c.wrap = px
	}
}

// WithSize sets the cell size of an AtlasText. Other text objects take
// their size from the font.
func WithSize(px float64) TextOption {
	return func(c *textConfig) {
		c.size = px
	}
}
