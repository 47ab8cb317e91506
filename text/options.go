package text

import "golang.org/x/image/font"

// SourceOption configures FontSource creation.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	parserName string
}

func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		parserName: defaultParserName,
	}
}

// WithParser specifies the font parser backend.
// The default is "sfnt", backed by golang.org/x/image/font/opentype.
//
// Custom parsers can be registered with RegisterParser.
func WithParser(name string) SourceOption {
	return func(c *sourceConfig) {
		c.parserName = name
	}
}

// RasterOption configures a Rasterizer.
type RasterOption func(*rasterConfig)

type rasterConfig struct {
	hinting     font.Hinting
	runCache    int
	italicShear float64
	boldOffset  int
}

func defaultRasterConfig() rasterConfig {
	return rasterConfig{
		hinting:     font.HintingFull,
		runCache:    256,
		italicShear: 0.2,
		boldOffset:  1,
	}
}

// WithHinting sets the outline hinting used for rasterization and advances.
func WithHinting(h font.Hinting) RasterOption {
	return func(c *rasterConfig) {
		c.hinting = h
	}
}

// WithRunCacheSize bounds the number of rasterized strings kept.
// Zero disables the limit.
func WithRunCacheSize(n int) RasterOption {
	return func(c *rasterConfig) {
		c.runCache = n
	}
}

// WithItalicShear sets the horizontal shear per pixel of height applied
// when an italic face has to be synthesized.
func WithItalicShear(k float64) RasterOption {
	return func(c *rasterConfig) {
		c.italicShear = k
	}
}

// WithBoldOffset sets the pixel offset of the second pass used to
// synthesize bold.
func WithBoldOffset(px int) RasterOption {
	return func(c *rasterConfig) {
		c.boldOffset = px
	}
}
