package text

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/textgeom/internal/cache"
)

// Size is an integer pixel extent.
type Size struct {
	W, H int
}

// Metrics are the vertical metrics shared by every variant of a rasterizer.
type Metrics struct {
	Ascent     int
	Descent    int
	LineHeight int
}

// Bitmap is a rasterized glyph or string.
//
// Width is the layout advance and Height the line height. Mask may be
// wider than Width when an italic slant overhangs the advance box.
type Bitmap struct {
	Mask   *image.Alpha
	Width  int
	Height int
}

type rasterFace struct {
	face   font.Face
	source *FontSource
	synth  Synthesis
}

type runKey struct {
	s  string
	st Style
}

// Rasterizer turns strings into alpha masks at one pixel size for every
// variant of a Family. It is the only component that touches font outlines.
//
// Measurement and rasterization agree: the width of a string is the sum of
// the rounded advances of its runes, so per-character and per-run layouts
// place text identically.
//
// Rasterizer is safe for concurrent use.
type Rasterizer struct {
	mu      sync.Mutex
	family  *Family
	size    float64
	config  rasterConfig
	faces   [numVariants]rasterFace
	metrics Metrics
	runs    *cache.Cache[runKey, *Bitmap]
}

// NewRasterizer creates faces for all four variants of family at size
// pixels per em.
func NewRasterizer(family *Family, size float64, opts ...RasterOption) (*Rasterizer, error) {
	if size <= 0 || math.IsNaN(size) {
		return nil, ErrInvalidSize
	}
	if family == nil {
		return nil, ErrNoRegularFace
	}

	config := defaultRasterConfig()
	for _, opt := range opts {
		opt(&config)
	}

	r := &Rasterizer{
		family: family,
		size:   size,
		config: config,
		runs:   cache.New[runKey, *Bitmap](config.runCache),
	}
	for _, v := range Variants {
		src, synth, err := family.Resolve(v)
		if err != nil {
			return nil, err
		}
		parsed, err := src.Parsed()
		if err != nil {
			return nil, fmt.Errorf("text: %s: %w", v, err)
		}
		face, err := parsed.NewFace(size, config.hinting)
		if err != nil {
			return nil, err
		}
		r.faces[v] = rasterFace{face: face, source: src, synth: synth}

		m := face.Metrics()
		r.metrics.Ascent = max(r.metrics.Ascent, m.Ascent.Ceil())
		r.metrics.Descent = max(r.metrics.Descent, m.Descent.Ceil())
	}
	r.metrics.LineHeight = r.metrics.Ascent + r.metrics.Descent
	return r, nil
}

// Family returns the family the rasterizer was created from.
func (r *Rasterizer) Family() *Family { return r.family }

// PixelSize returns the size in pixels per em.
func (r *Rasterizer) PixelSize() float64 { return r.size }

// Metrics returns the shared vertical metrics.
func (r *Rasterizer) Metrics() Metrics { return r.metrics }

// UnderlineThickness returns the underline height in pixels.
func (r *Rasterizer) UnderlineThickness() int {
	return max(1, int(r.size/10))
}

// Synthesis reports which effects are faked for v.
func (r *Rasterizer) Synthesis(v Variant) Synthesis { return r.faces[v].synth }

// HasGlyph reports whether the source used for v maps ch to a glyph.
func (r *Rasterizer) HasGlyph(ch rune, v Variant) bool {
	return r.faces[v].source.HasGlyph(ch)
}

// Measure returns the layout size of s: summed advances by line height.
func (r *Rasterizer) Measure(s string, st Style) Size {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := 0
	for _, ch := range s {
		w += r.advance(ch, st.Variant())
	}
	return Size{W: w, H: r.metrics.LineHeight}
}

// MeasureRune returns the layout size of a single rune.
func (r *Rasterizer) MeasureRune(ch rune, st Style) Size {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Size{W: r.advance(ch, st.Variant()), H: r.metrics.LineHeight}
}

// RasterizeRune rasterizes a single rune.
func (r *Rasterizer) RasterizeRune(ch rune, st Style) (*Bitmap, error) {
	return r.Rasterize(string(ch), st)
}

// Rasterize renders s on one line with style st. Results are cached and
// shared; callers must not modify the returned mask.
func (r *Rasterizer) Rasterize(s string, st Style) (*Bitmap, error) {
	return r.runs.GetOrCreate(runKey{s: s, st: st}, func() (*Bitmap, error) {
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.rasterize(s, st), nil
	})
}

// CacheStats returns run cache statistics.
func (r *Rasterizer) CacheStats() cache.Stats { return r.runs.Stats() }

// Close releases the faces. The rasterizer must not be used afterwards.
func (r *Rasterizer) Close() error {
	r.runs.Clear()
	r.mu.Lock()
	defer r.mu.Unlock()
	var first error
	for i := range r.faces {
		if r.faces[i].face == nil {
			continue
		}
		if err := r.faces[i].face.Close(); err != nil && first == nil {
			first = err
		}
		r.faces[i].face = nil
	}
	return first
}

// Caller must hold r.mu.
func (r *Rasterizer) advance(ch rune, v Variant) int {
	f := r.faces[v]
	adv, _ := f.face.GlyphAdvance(ch)
	w := adv.Round()
	if f.synth.Bold {
		w += r.config.boldOffset
	}
	return w
}

// Caller must hold r.mu.
func (r *Rasterizer) rasterize(s string, st Style) *Bitmap {
	v := st.Variant()
	f := r.faces[v]
	h := r.metrics.LineHeight

	w := 0
	for _, ch := range s {
		w += r.advance(ch, v)
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{Dst: mask, Src: image.Opaque, Face: f.face}
	x := 0
	for _, ch := range s {
		d.Dot = fixed.P(x, r.metrics.Ascent)
		d.DrawString(string(ch))
		if f.synth.Bold {
			d.Dot = fixed.P(x+r.config.boldOffset, r.metrics.Ascent)
			d.DrawString(string(ch))
		}
		x += r.advance(ch, v)
	}

	if f.synth.Italic {
		mask = shear(mask, r.config.italicShear)
	}

	if st.Underline && w > 0 {
		t := r.UnderlineThickness()
		draw.Draw(mask, image.Rect(0, h-t, w, h), image.Opaque, image.Point{}, draw.Src)
	}

	return &Bitmap{Mask: mask, Width: w, Height: h}
}

// shear slants src to the right by k pixels per pixel of height, keeping
// the bottom row in place. The result is widened by the top overhang.
func shear(src *image.Alpha, k float64) *image.Alpha {
	b := src.Bounds()
	h := float64(b.Dy())
	over := int(math.Ceil(k * h))
	dst := image.NewAlpha(image.Rect(0, 0, b.Dx()+over, b.Dy()))
	m := f64.Aff3{1, -k, k * h, 0, 1, 0}
	xdraw.BiLinear.Transform(dst, m, src, b, xdraw.Over, nil)
	return dst
}
