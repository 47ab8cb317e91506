package textgeom

import (
	"errors"
	"image"
	"slices"
	"unicode/utf8"

	"github.com/gogpu/textgeom/atlas"
	"github.com/gogpu/textgeom/render"
	"github.com/gogpu/textgeom/text"
)

// AtlasAlphabet is the character set packed by NewAtlasFont unless
// WithAtlasAlphabet is given.
const AtlasAlphabet = "`1234567890-=qwertyuiop[]\\asdfghjkl;'zxcvbnm,./ " +
	"~!@#$%^&*()_+QWERTYUIOP{}|ASDFGHJKL:\"ZXCVBNM<>?"

const (
	defaultAtlasRasterSize = 64
	defaultAtlasMaxCanvas  = 2048
)

// AtlasOption configures NewAtlasFont.
type AtlasOption func(*atlasConfig)

type atlasConfig struct {
	rasterSize float64
	canvas     int
	maxCanvas  int
	padding    int
	alphabet   []rune
}

func defaultAtlasConfig() atlasConfig {
	return atlasConfig{
		rasterSize: defaultAtlasRasterSize,
		canvas:     atlas.DefaultCanvasSize,
		maxCanvas:  defaultAtlasMaxCanvas,
		alphabet:   []rune(AtlasAlphabet),
	}
}

// WithAtlasRasterSize sets the pixel size glyphs are rasterized at.
func WithAtlasRasterSize(px float64) AtlasOption {
	return func(c *atlasConfig) {
		c.rasterSize = px
	}
}

// WithAtlasCanvas sets the side of the square atlas canvas.
func WithAtlasCanvas(side int) AtlasOption {
	return func(c *atlasConfig) {
		c.canvas = side
	}
}

// WithAtlasMaxCanvas sets the largest side the canvas may be doubled to
// when the alphabet does not fit. A value not above the canvas size turns
// overflow into an error.
func WithAtlasMaxCanvas(side int) AtlasOption {
	return func(c *atlasConfig) {
		c.maxCanvas = side
	}
}

// WithAtlasPadding leaves px empty pixels between packed glyphs.
func WithAtlasPadding(px int) AtlasOption {
	return func(c *atlasConfig) {
		c.padding = px
	}
}

// WithAtlasAlphabet replaces the packed character set.
func WithAtlasAlphabet(alphabet string) AtlasOption {
	return func(c *atlasConfig) {
		c.alphabet = []rune(alphabet)
	}
}

// AtlasFont is a glyph atlas built once from the regular face of a
// family. Every AtlasText drawn with it binds the same texture.
type AtlasFont struct {
	atlas  *atlas.Atlas
	raster *text.Rasterizer
}

// NewAtlasFont rasterizes and packs the alphabet. When it does not fit
// the canvas side is doubled up to the configured maximum; beyond that
// the *atlas.OverflowError is returned.
func NewAtlasFont(family *text.Family, opts ...AtlasOption) (*AtlasFont, error) {
	cfg := defaultAtlasConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	r, err := text.NewRasterizer(family, cfg.rasterSize)
	if err != nil {
		return nil, err
	}
	raster := func(ch rune) (*image.Alpha, error) {
		bm, err := r.RasterizeRune(ch, text.Style{})
		if err != nil {
			return nil, err
		}
		return bm.Mask, nil
	}

	side := cfg.canvas
	for {
		b := atlas.NewBuilder(atlas.WithCanvas(side, side), atlas.WithPadding(cfg.padding))
		a, err := b.Build(cfg.alphabet, raster)
		if err == nil {
			Logger().Info("textgeom: atlas built", "glyphs", a.Len(), "canvas", side, "raster_size", cfg.rasterSize)
			return &AtlasFont{atlas: a, raster: r}, nil
		}
		if !errors.Is(err, atlas.ErrAtlasOverflow) || side*2 > cfg.maxCanvas {
			_ = r.Close()
			return nil, err
		}
		Logger().Debug("textgeom: atlas overflow, growing canvas", "err", err, "canvas", side*2)
		side *= 2
	}
}

// DefaultAtlasFont builds an atlas from the bundled Go family.
func DefaultAtlasFont(opts ...AtlasOption) (*AtlasFont, error) {
	family, err := text.DefaultFamily()
	if err != nil {
		return nil, err
	}
	return NewAtlasFont(family, opts...)
}

// Atlas returns the packed atlas.
func (f *AtlasFont) Atlas() *atlas.Atlas { return f.atlas }

// RasterSize returns the pixel size glyphs were rasterized at.
func (f *AtlasFont) RasterSize() float64 { return f.raster.PixelSize() }

// Upload makes the atlas texture resident through u.
func (f *AtlasFont) Upload(u render.TextureUploader) error {
	return u.Upload(f.atlas.Texture())
}

// Close releases the rasterizer. The atlas stays usable.
func (f *AtlasFont) Close() error { return f.raster.Close() }

// atlasState is everything AtlasText geometry depends on.
type atlasState struct {
	text      string
	cell      float64
	colors    []RGBA
	bold      bool
	italic    bool
	underline bool
	wrap      float64
}

// AtlasText draws text as textured quads sampled from an AtlasFont.
// Every setter rebuilds the geometry; when a rebuild fails the previous
// text and geometry are kept.
type AtlasText struct {
	Node
	font  *AtlasFont
	state atlasState
	geom  *atlas.Geometry
}

// NewAtlasText lays out s with glyphs from f. WithSize sets the cell size;
// it defaults to the raster size of the atlas.
func NewAtlasText(f *AtlasFont, s string, opts ...TextOption) (*AtlasText, error) {
	if f == nil {
		return nil, ErrNilFont
	}
	cfg := defaultTextConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.size <= 0 {
		cfg.size = f.RasterSize()
	}
	t := &AtlasText{Node: newNode(), font: f}
	err := t.apply(atlasState{
		text:      s,
		cell:      cfg.size,
		colors:    cfg.colors,
		bold:      cfg.style.Bold,
		italic:    cfg.style.Italic,
		underline: cfg.style.Underline,
		wrap:      cfg.wrap,
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (t *AtlasText) apply(st atlasState) error {
	g, err := atlas.Emit(t.font.atlas, st.text, atlas.EmitOptions{
		CellSize: st.cell,
		Bold:     st.bold,
		Italic:   st.italic,
		Colors:   st.colors,
		MaxWidth: st.wrap,
	})
	if err != nil {
		var missing *atlas.MissingGlyphError
		if errors.As(err, &missing) {
			return &UnsupportedCharacterError{Rune: missing.Rune, Index: missing.Index}
		}
		return err
	}
	t.state, t.geom = st, g
	return nil
}

// Text returns the current text.
func (t *AtlasText) Text() string { return t.state.text }

// Colors returns the colors the text was built with.
func (t *AtlasText) Colors() []RGBA { return slices.Clone(t.state.colors) }

// CellSize returns the side of the square each glyph is fitted into.
func (t *AtlasText) CellSize() float64 { return t.state.cell }

// Geometry returns the current vertices. It must not be modified.
func (t *AtlasText) Geometry() *atlas.Geometry { return t.geom }

// SetText replaces the text. Per-character colors are kept when the new
// text has as many characters; otherwise the text takes the first color.
func (t *AtlasText) SetText(s string) error {
	st := t.state
	st.text = s
	if n := len(st.colors); n > 1 && n != utf8.RuneCountInString(s) {
		st.colors = st.colors[:1:1]
	}
	return t.apply(st)
}

// SetTextColors replaces the text and its per-character colors together.
// cs holds one color, or one per character with newlines included.
func (t *AtlasText) SetTextColors(s string, cs []RGBA) error {
	st := t.state
	st.text = s
	st.colors = slices.Clone(cs)
	return t.apply(st)
}

// SetColor colors the whole text with c.
func (t *AtlasText) SetColor(c RGBA) error {
	st := t.state
	st.colors = []RGBA{c}
	return t.apply(st)
}

// SetColors sets one color per character, newlines included.
func (t *AtlasText) SetColors(cs []RGBA) error {
	st := t.state
	st.colors = slices.Clone(cs)
	return t.apply(st)
}

// SetBold toggles the synthetic bold warp.
func (t *AtlasText) SetBold(on bool) error {
	st := t.state
	st.bold = on
	return t.apply(st)
}

// SetItalic toggles the synthetic italic skew.
func (t *AtlasText) SetItalic(on bool) error {
	st := t.state
	st.italic = on
	return t.apply(st)
}

// SetUnderline toggles the underline. It does not change the geometry.
func (t *AtlasText) SetUnderline(on bool) { t.state.underline = on }

// SetWrap changes the wrap width. Zero disables wrapping.
func (t *AtlasText) SetWrap(px float64) error {
	st := t.state
	st.wrap = px
	return t.apply(st)
}

// SetCellSize changes the glyph cell size.
func (t *AtlasText) SetCellSize(px float64) error {
	st := t.state
	st.cell = px
	return t.apply(st)
}

// Size returns the bounding box size including the italic overhang.
func (t *AtlasText) Size() (w, h float64) { return t.geom.Width, t.geom.Height }

// Rect returns the unscaled bounds at the current position.
func (t *AtlasText) Rect() render.Rect { return t.rect(t.Size()) }

// Copy returns an independent text object sharing the atlas.
func (t *AtlasText) Copy() Renderable {
	c := *t
	c.state.colors = slices.Clone(t.state.colors)
	return &c
}

// Render draws the geometry with the atlas texture. The vertices are
// centered on the origin, so rotation and scale pivot on the center.
func (t *AtlasText) Render(dev render.Device) error {
	if !t.Visible {
		return nil
	}
	g := t.geom
	m := render.Translate(t.Pos[0]+g.Offset[0], t.Pos[1]+g.Offset[1]).
		Multiply(render.RotateDegrees(t.Rotation)).
		Multiply(render.Scale(t.Scale[0], t.Scale[1]))
	dev.PushTransform(m)
	defer dev.PopTransform()

	if err := dev.DrawTriangles(t.font.atlas.Texture(), g.Vertices); err != nil {
		return err
	}
	if !t.state.underline {
		return nil
	}
	thick := max(1, float64(int(t.state.cell/10)))
	c := render.White
	if len(t.state.colors) > 0 {
		c = t.state.colors[0]
	}
	for _, line := range g.Lines {
		if line.W <= 0 {
			continue
		}
		r := render.Rect{X: line.X, Y: line.Y + line.H - thick, W: line.W, H: thick}
		if err := dev.FillRect(r, c); err != nil {
			return err
		}
	}
	return nil
}
