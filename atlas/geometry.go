package atlas

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/textgeom/render"
	"github.com/gogpu/textgeom/text"
)

// VerticesPerGlyph is the number of vertices emitted per character: two
// triangles sharing the top-left and bottom-right corners.
const VerticesPerGlyph = 6

// VertexStride is the size of one packed vertex in bytes.
const VertexStride = 32

// subpixel is the fixed-point scale used to lay out fractional cell
// widths with the integer line breaker.
const subpixel = 64

// EmitOptions controls Emit.
type EmitOptions struct {
	// CellSize is the side of the square every glyph is fitted into.
	CellSize float64

	Bold   bool
	Italic bool

	// Colors holds either one color for the whole text or one per
	// character, newlines included. Empty means opaque white.
	Colors []render.RGBA

	// MaxWidth wraps lines at word boundaries when positive.
	MaxWidth float64
}

// Shear returns the italic skew and bold warp for the options.
func (o EmitOptions) Shear() (skew, warp float64) {
	if o.Italic {
		skew = o.CellSize / 10
	}
	if o.Bold {
		warp = o.CellSize / 4
		skew *= 2
	}
	return skew, warp
}

// Geometry is the triangle list for one string. Vertices are centered on
// the origin; Offset is the translation that puts the top-left corner of
// the bounding box at the origin.
type Geometry struct {
	Vertices []render.Vertex
	Width    float64
	Height   float64
	Offset   [2]float64

	// Lines holds one box per laid out line in vertex coordinates.
	Lines []render.Rect
}

// Bounds returns the bounding box with the top-left corner at the origin.
func (g *Geometry) Bounds() render.Rect {
	return render.Rect{W: g.Width, H: g.Height}
}

// Bytes packs the vertices little-endian in VertexLayout order.
func (g *Geometry) Bytes() []byte {
	buf := make([]byte, len(g.Vertices)*VertexStride)
	for i, v := range g.Vertices {
		o := buf[i*VertexStride:]
		for j, f := range [8]float32{v.X, v.Y, v.U, v.V, v.R, v.G, v.B, v.A} {
			binary.LittleEndian.PutUint32(o[j*4:], math.Float32bits(f))
		}
	}
	return buf
}

// VertexLayout describes Geometry.Bytes for a render pipeline:
//
//	location 0: position (vec2<f32>)
//	location 1: tex_coord (vec2<f32>)
//	location 2: color (vec4<f32>)
func VertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
			{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
		},
	}
}

// fittedMeasurer sizes characters by their fitted cell in subpixel units.
type fittedMeasurer struct {
	a          *Atlas
	cell       float64
	skew, warp float64
}

func (m fittedMeasurer) fit(r rune) (w, h float64) {
	metric, _ := m.a.Metric(r)
	return metric.Fit(m.cell)
}

func (m fittedMeasurer) RuneSize(r rune) text.Size {
	w, h := m.fit(r)
	return text.Size{
		W: int(math.Round((w + m.warp + m.skew) * subpixel)),
		H: int(math.Round(h * subpixel)),
	}
}

func (m fittedMeasurer) ImageSize(string) text.Size { return text.Size{} }

// Emit lays out s and returns six vertices per character. Newline slots and
// spaces dropped at a wrap are zeroed and draw nothing.
func Emit(a *Atlas, s string, opts EmitOptions) (*Geometry, error) {
	runes := []rune(s)
	colors, err := expandColors(opts.Colors, len(runes))
	if err != nil {
		return nil, err
	}

	tokens := make([]text.Token, len(runes))
	for i, r := range runes {
		if r == '\n' {
			tokens[i] = text.Token{Kind: text.TokenNewline, Rune: r}
			continue
		}
		if _, ok := a.Metric(r); !ok {
			return nil, &MissingGlyphError{Rune: r, Index: i}
		}
		tokens[i] = text.Token{Kind: text.TokenChar, Rune: r}
	}

	skew, warp := opts.Shear()
	m := fittedMeasurer{a: a, cell: opts.CellSize, skew: skew, warp: warp}
	layout := text.BreakLines(tokens, m, text.BreakOptions{
		MaxWidth:        int(math.Floor(opts.MaxWidth * subpixel)),
		EmptyLineHeight: int(math.Round(opts.CellSize * subpixel)),
	})

	g := &Geometry{
		Vertices: make([]render.Vertex, len(runes)*VerticesPerGlyph),
		Height:   float64(layout.Height) / subpixel,
	}
	if len(layout.Placed) > 0 {
		g.Width = float64(layout.Width)/subpixel + skew
	}
	g.Offset = [2]float64{g.Width / 2, g.Height / 2}
	ox, oy := -g.Width/2+skew, -g.Height/2

	for _, line := range layout.Lines {
		g.Lines = append(g.Lines, render.Rect{
			X: -g.Width / 2,
			Y: oy + float64(line.Y)/subpixel,
			W: float64(line.Width) / subpixel,
			H: float64(line.Height) / subpixel,
		})
	}

	for _, p := range layout.Placed {
		metric, _ := a.Metric(p.Rune)
		w, h := metric.Fit(opts.CellSize)
		x := ox + float64(p.X)/subpixel
		y := oy + float64(layout.Lines[p.Line].Y)/subpixel
		c := colors[p.Index]
		quad(g.Vertices[p.Index*VerticesPerGlyph:], x, y, w, h, skew, warp, metric, c)
	}
	return g, nil
}

func quad(dst []render.Vertex, x, y, w, h, skew, warp float64, m GlyphMetric, c render.RGBA) {
	r, gr, b, a := c.Float32()
	v := func(px, py, u, vv float64) render.Vertex {
		return render.Vertex{
			X: float32(px), Y: float32(py),
			U: float32(u), V: float32(vv),
			R: r, G: gr, B: b, A: a,
		}
	}
	tl := v(x+skew, y, m.U0, m.V0)
	bl := v(x-skew, y+h, m.U0, m.V1)
	br := v(x+w+warp-skew, y+h, m.U1, m.V1)
	tr := v(x+w+warp+skew, y, m.U1, m.V0)
	dst[0], dst[1], dst[2] = tl, bl, br
	dst[3], dst[4], dst[5] = tl, br, tr
}

func expandColors(colors []render.RGBA, n int) ([]render.RGBA, error) {
	switch len(colors) {
	case 0:
		return broadcast(render.White, n), nil
	case 1:
		return broadcast(colors[0], n), nil
	case n:
		return colors, nil
	}
	return nil, ErrColorCount
}

func broadcast(c render.RGBA, n int) []render.RGBA {
	out := make([]render.RGBA, n)
	for i := range out {
		out[i] = c
	}
	return out
}
