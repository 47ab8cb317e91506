package atlas

import (
	"image"
	"image/draw"

	"github.com/gogpu/textgeom/render"
)

// DefaultCanvasSize is the side of the default square atlas canvas.
const DefaultCanvasSize = 512

// GlyphMetric locates one glyph in the atlas. U0, V0, U1, V1 are texture
// coordinates normalized by the canvas size; X, Y, Width and Height are in
// pixels. Metrics are immutable once built.
type GlyphMetric struct {
	U0, V0, U1, V1 float64
	X, Y           int
	Width, Height  int
}

// Fit scales the glyph to fit a square cell of side cell, preserving its
// aspect ratio: the longer side becomes cell.
func (m GlyphMetric) Fit(cell float64) (w, h float64) {
	if m.Width <= 0 || m.Height <= 0 {
		if m.Height > 0 {
			return 0, cell
		}
		return 0, 0
	}
	if m.Height >= m.Width {
		return cell * float64(m.Width) / float64(m.Height), cell
	}
	return cell, cell * float64(m.Height) / float64(m.Width)
}

// Rect returns the pixel rectangle of the glyph in the atlas.
func (m GlyphMetric) Rect() image.Rectangle {
	return image.Rect(m.X, m.Y, m.X+m.Width, m.Y+m.Height)
}

// Atlas is a packed glyph texture with per-character metrics.
// An Atlas is immutable and may be shared.
type Atlas struct {
	image   *image.Alpha
	texture *render.Image
	metrics map[rune]GlyphMetric
	order   []rune
}

// Image returns the canvas.
func (a *Atlas) Image() *image.Alpha { return a.image }

// Texture returns the canvas as a device image.
func (a *Atlas) Texture() *render.Image { return a.texture }

// Width returns the canvas width.
func (a *Atlas) Width() int { return a.image.Bounds().Dx() }

// Height returns the canvas height.
func (a *Atlas) Height() int { return a.image.Bounds().Dy() }

// Metric returns the metric for r.
func (a *Atlas) Metric(r rune) (GlyphMetric, bool) {
	m, ok := a.metrics[r]
	return m, ok
}

// Runes returns the packed characters in packing order.
func (a *Atlas) Runes() []rune {
	return append([]rune(nil), a.order...)
}

// Len returns the number of packed characters.
func (a *Atlas) Len() int { return len(a.order) }

// Overlaps reports whether any two glyph rectangles intersect.
func (a *Atlas) Overlaps() bool {
	for i, ri := range a.order {
		ra := a.metrics[ri].Rect()
		if ra.Empty() {
			continue
		}
		for _, rj := range a.order[i+1:] {
			if ra.Overlaps(a.metrics[rj].Rect()) {
				return true
			}
		}
	}
	return false
}

// RasterFunc returns the coverage mask of one character. The mask bounds
// are the glyph cell.
type RasterFunc func(r rune) (*image.Alpha, error)

// Option configures a Builder.
type Option func(*Builder)

// WithCanvas sets the canvas dimensions.
func WithCanvas(width, height int) Option {
	return func(b *Builder) {
		b.width, b.height = width, height
	}
}

// WithPadding leaves px empty pixels between glyphs.
func WithPadding(px int) Option {
	return func(b *Builder) {
		b.padding = max(0, px)
	}
}

// Builder packs glyph masks into an Atlas.
type Builder struct {
	width, height int
	padding       int
}

// NewBuilder creates a builder with a DefaultCanvasSize square canvas.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{width: DefaultCanvasSize, height: DefaultCanvasSize}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build rasterizes and packs alphabet in order. Repeated characters are
// packed once. On overflow it returns an *OverflowError and no atlas.
func (b *Builder) Build(alphabet []rune, rasterize RasterFunc) (*Atlas, error) {
	if b.width <= 0 || b.height <= 0 {
		return nil, ErrInvalidCanvas
	}

	a := &Atlas{
		image:   image.NewAlpha(image.Rect(0, 0, b.width, b.height)),
		metrics: make(map[rune]GlyphMetric, len(alphabet)),
		order:   make([]rune, 0, len(alphabet)),
	}
	p := NewRowPacker(b.width, b.height, b.padding)
	fw, fh := float64(b.width), float64(b.height)

	for _, r := range alphabet {
		if _, dup := a.metrics[r]; dup {
			continue
		}
		mask, err := rasterize(r)
		if err != nil {
			return nil, err
		}
		mb := mask.Bounds()
		w, h := mb.Dx(), mb.Dy()

		x, y, ok := p.Place(w, h)
		if !ok {
			return nil, &OverflowError{Rune: r, Width: w, Height: h, X: x, Y: y}
		}
		draw.Draw(a.image, image.Rect(x, y, x+w, y+h), mask, mb.Min, draw.Src)

		a.metrics[r] = GlyphMetric{
			U0:     float64(x) / fw,
			V0:     float64(y) / fh,
			U1:     float64(x+w) / fw,
			V1:     float64(y+h) / fh,
			X:      x,
			Y:      y,
			Width:  w,
			Height: h,
		}
		a.order = append(a.order, r)
	}

	a.texture = render.NewImage(a.image)
	return a, nil
}
