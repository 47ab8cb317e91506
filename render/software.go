// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/textgeom/internal/cache"
)

// ErrUnbalancedPop is returned by Software.Err when PopTransform was called
// more often than PushTransform.
var ErrUnbalancedPop = errors.New("render: PopTransform without matching PushTransform")

// tintCacheSize bounds the number of tinted image copies kept per device.
const tintCacheSize = 512

type tintKey struct {
	id   uint64
	tint color.NRGBA
}

// Software rasterizes onto an *image.RGBA.
//
// Images are resampled with bilinear filtering through
// golang.org/x/image/draw; triangles are scan converted at pixel centers
// with nearest texel sampling.
//
// Software is not safe for concurrent use.
type Software struct {
	dst   *image.RGBA
	ctm   Matrix
	stack []Matrix
	tints *cache.Cache[tintKey, *image.RGBA]
	err   error
}

// NewSoftware creates a software device with a transparent canvas.
func NewSoftware(width, height int) *Software {
	return NewSoftwareFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewSoftwareFromImage creates a software device drawing into dst.
func NewSoftwareFromImage(dst *image.RGBA) *Software {
	return &Software{
		dst:   dst,
		ctm:   Identity(),
		tints: cache.New[tintKey, *image.RGBA](tintCacheSize),
	}
}

func init() {
	Register("software", func(width, height int) (Device, error) {
		if width <= 0 || height <= 0 {
			return nil, errors.New("render: software device needs a positive size")
		}
		return NewSoftware(width, height), nil
	})
}

// Image returns the canvas.
func (s *Software) Image() *image.RGBA { return s.dst }

// Width returns the canvas width.
func (s *Software) Width() int { return s.dst.Bounds().Dx() }

// Height returns the canvas height.
func (s *Software) Height() int { return s.dst.Bounds().Dy() }

// Clear fills the whole canvas with c, ignoring the transform.
func (s *Software) Clear(c RGBA) {
	draw.Draw(s.dst, s.dst.Bounds(), image.NewUniform(c.Color()), image.Point{}, draw.Src)
}

// Transform returns the current transform.
func (s *Software) Transform() Matrix { return s.ctm }

// Err returns the first transform stack error.
func (s *Software) Err() error { return s.err }

// PushTransform implements Device.
func (s *Software) PushTransform(m Matrix) {
	s.stack = append(s.stack, s.ctm)
	s.ctm = s.ctm.Multiply(m)
}

// PopTransform implements Device.
func (s *Software) PopTransform() {
	if len(s.stack) == 0 {
		if s.err == nil {
			s.err = ErrUnbalancedPop
		}
		return
	}
	s.ctm = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// DrawImage implements Device.
func (s *Software) DrawImage(img *Image, dst Rect, tint RGBA) error {
	if img == nil {
		return errors.New("render: DrawImage with nil image")
	}
	w, h := img.Width(), img.Height()
	if w == 0 || h == 0 || dst.Empty() || tint.A <= 0 {
		return nil
	}
	src := s.tinted(img, tint)
	m := s.ctm.Multiply(Translate(dst.X, dst.Y)).Multiply(Scale(dst.W/float64(w), dst.H/float64(h)))
	draw.ApproxBiLinear.Transform(s.dst, m.Aff3(), src, src.Bounds(), draw.Over, nil)
	return nil
}

// FillRect implements Device.
func (s *Software) FillRect(dst Rect, c RGBA) error {
	if dst.Empty() || c.A <= 0 {
		return nil
	}
	if s.ctm.IsAxisAligned() {
		x0, y0 := s.ctm.TransformPoint(dst.X, dst.Y)
		x1, y1 := s.ctm.TransformPoint(dst.X+dst.W, dst.Y+dst.H)
		r := image.Rect(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
		draw.Draw(s.dst, r, image.NewUniform(c.Color()), image.Point{}, draw.Over)
		return nil
	}
	px := image.NewRGBA(image.Rect(0, 0, 1, 1))
	px.Set(0, 0, c.Color())
	m := s.ctm.Multiply(Translate(dst.X, dst.Y)).Multiply(Scale(dst.W, dst.H))
	draw.NearestNeighbor.Transform(s.dst, m.Aff3(), px, px.Bounds(), draw.Over, nil)
	return nil
}

// DrawTriangles implements Device.
func (s *Software) DrawTriangles(img *Image, verts []Vertex) error {
	if len(verts)%3 != 0 {
		return errors.New("render: DrawTriangles vertex count is not a multiple of 3")
	}
	var src image.Image
	if img != nil {
		src = img.Pix()
	}
	for i := 0; i < len(verts); i += 3 {
		s.triangle(src, verts[i], verts[i+1], verts[i+2])
	}
	return nil
}

func (s *Software) triangle(src image.Image, v0, v1, v2 Vertex) {
	x0, y0 := s.ctm.TransformPoint(float64(v0.X), float64(v0.Y))
	x1, y1 := s.ctm.TransformPoint(float64(v1.X), float64(v1.Y))
	x2, y2 := s.ctm.TransformPoint(float64(v2.X), float64(v2.Y))

	area := (x1-x0)*(y2-y0) - (x2-x0)*(y1-y0)
	if math.Abs(area) < 1e-9 {
		return
	}

	b := s.dst.Bounds()
	minX := max(b.Min.X, int(math.Floor(min(x0, x1, x2))))
	maxX := min(b.Max.X-1, int(math.Ceil(max(x0, x1, x2))))
	minY := max(b.Min.Y, int(math.Floor(min(y0, y1, y2))))
	maxY := min(b.Max.Y-1, int(math.Ceil(max(y0, y1, y2))))

	for py := minY; py <= maxY; py++ {
		cy := float64(py) + 0.5
		for px := minX; px <= maxX; px++ {
			cx := float64(px) + 0.5
			w0 := ((x1-cx)*(y2-cy) - (x2-cx)*(y1-cy)) / area
			w1 := ((x2-cx)*(y0-cy) - (x0-cx)*(y2-cy)) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			col := RGBA{
				R: w0*float64(v0.R) + w1*float64(v1.R) + w2*float64(v2.R),
				G: w0*float64(v0.G) + w1*float64(v1.G) + w2*float64(v2.G),
				B: w0*float64(v0.B) + w1*float64(v1.B) + w2*float64(v2.B),
				A: w0*float64(v0.A) + w1*float64(v1.A) + w2*float64(v2.A),
			}
			if src != nil {
				u := w0*float64(v0.U) + w1*float64(v1.U) + w2*float64(v2.U)
				v := w0*float64(v0.V) + w1*float64(v1.V) + w2*float64(v2.V)
				col = col.Mul(sample(src, u, v))
			}
			s.blend(px, py, col)
		}
	}
}

// sample returns the straight-alpha texel nearest to (u, v).
func sample(src image.Image, u, v float64) RGBA {
	b := src.Bounds()
	x := b.Min.X + min(b.Dx()-1, max(0, int(u*float64(b.Dx()))))
	y := b.Min.Y + min(b.Dy()-1, max(0, int(v*float64(b.Dy()))))
	return FromColor(src.At(x, y))
}

// blend composites straight-alpha c over the pixel at (x, y).
func (s *Software) blend(x, y int, c RGBA) {
	if c.A <= 0 {
		return
	}
	a := min(c.A, 1)
	i := s.dst.PixOffset(x, y)
	p := s.dst.Pix[i : i+4 : i+4]
	inv := 1 - a
	p[0] = uint8(clamp255(c.R*a*255 + float64(p[0])*inv + 0.5))
	p[1] = uint8(clamp255(c.G*a*255 + float64(p[1])*inv + 0.5))
	p[2] = uint8(clamp255(c.B*a*255 + float64(p[2])*inv + 0.5))
	p[3] = uint8(clamp255(a*255 + float64(p[3])*inv + 0.5))
}

// tinted returns img modulated by tint as premultiplied RGBA, cached per
// image and 8-bit tint.
func (s *Software) tinted(img *Image, tint RGBA) *image.RGBA {
	key := tintKey{id: img.ID(), tint: tint.NRGBA()}
	out, _ := s.tints.GetOrCreate(key, func() (*image.RGBA, error) {
		return Tint(img.Pix(), tint), nil
	})
	return out
}

// Tint returns a copy of src with every pixel multiplied by c. Alpha masks
// are treated as white ink.
func Tint(src image.Image, c RGBA) *image.RGBA {
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	pr, pg, pb := c.R*c.A, c.G*c.A, c.B*c.A
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := src.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			i := out.PixOffset(x-b.Min.X, y-b.Min.Y)
			out.Pix[i+0] = uint8(clamp255(float64(r>>8)*pr + 0.5))
			out.Pix[i+1] = uint8(clamp255(float64(g>>8)*pg + 0.5))
			out.Pix[i+2] = uint8(clamp255(float64(bl>>8)*pb + 0.5))
			out.Pix[i+3] = uint8(clamp255(float64(a>>8)*c.A + 0.5))
		}
	}
	return out
}
