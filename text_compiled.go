package textgeom

import (
	"github.com/gogpu/textgeom/drawlist"
	"github.com/gogpu/textgeom/render"
	"github.com/gogpu/textgeom/text"
)

// CompiledText draws text as whole rasterized runs, one image per
// uninterrupted stretch of a line. Compile records the runs into a draw
// list that is replayed on every Render.
//
// Setters only mark the object dirty. The layout is rebuilt on the next
// Render, Size, Rect or Rebuild, and the draw list is re-recorded if the
// text is compiled.
type CompiledText struct {
	Node
	font  *Font
	text  string
	style Style
	color RGBA
	wrap  float64

	dirty    bool
	compiled bool
	built    compiledBuild
	list     *drawlist.List
}

type compiledRun struct {
	img  *render.Image
	x, y float64
}

type compiledBuild struct {
	runs       []compiledRun
	underlines []render.Rect
	images     []InlineImage
	lines  int
	w, h   float64
}

// NewCompiledText lays out s with f. The text starts uncompiled.
func NewCompiledText(f *Font, s string, opts ...TextOption) (*CompiledText, error) {
	if f == nil {
		return nil, ErrNilFont
	}
	cfg := defaultTextConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	t := &CompiledText{
		Node:  newNode(),
		font:  f,
		text:  s,
		style: cfg.style,
		color: cfg.color(),
		wrap:  cfg.wrap,
		dirty: true,
	}
	if err := t.Rebuild(); err != nil {
		return nil, err
	}
	return t, nil
}

// Text returns the current text.
func (t *CompiledText) Text() string { return t.text }

// Font returns the font.
func (t *CompiledText) Font() *Font { return t.font }

// Style returns the current style.
func (t *CompiledText) Style() Style { return t.style }

// Color returns the text color.
func (t *CompiledText) Color() RGBA { return t.color }

// Wrap returns the wrap width.
func (t *CompiledText) Wrap() float64 { return t.wrap }

// Dirty reports whether a rebuild is pending.
func (t *CompiledText) Dirty() bool { return t.dirty }

// IsCompiled reports whether Render replays a draw list.
func (t *CompiledText) IsCompiled() bool { return t.compiled }

// SetText replaces the text.
func (t *CompiledText) SetText(s string) { t.text = s; t.dirty = true }

// SetColor changes the text color.
func (t *CompiledText) SetColor(c RGBA) { t.color = c; t.dirty = true }

// SetFont changes the font.
func (t *CompiledText) SetFont(f *Font) {
	if f == nil {
		return
	}
	t.font = f
	t.dirty = true
}

// SetStyle changes the style.
func (t *CompiledText) SetStyle(st Style) { t.style = st; t.dirty = true }

// SetWrap changes the wrap width. Zero disables wrapping.
func (t *CompiledText) SetWrap(px float64) { t.wrap = px; t.dirty = true }

// Compile records the runs into a draw list.
func (t *CompiledText) Compile() error {
	if err := t.Rebuild(); err != nil {
		return err
	}
	list, err := t.record(t.built)
	if err != nil {
		return err
	}
	t.list = list
	t.compiled = true
	Logger().Debug("textgeom: text compiled", "commands", list.Len())
	return nil
}

// Uncompile discards the draw list.
func (t *CompiledText) Uncompile() {
	t.compiled = false
	t.list = nil
}

// Rebuild applies pending changes. On failure the previous layout and
// draw list are kept and the object stays dirty.
func (t *CompiledText) Rebuild() error {
	if !t.dirty {
		return nil
	}
	b, err := t.build()
	if err != nil {
		return err
	}
	var list *drawlist.List
	if t.compiled {
		if list, err = t.record(b); err != nil {
			return err
		}
	}
	t.built, t.list = b, list
	t.dirty = false
	Logger().Debug("textgeom: compiled text rebuilt", "runs", len(b.runs), "images", len(b.images), "compiled", t.compiled)
	return nil
}

func (t *CompiledText) build() (compiledBuild, error) {
	l := t.font.layout(t.font.tokenize(t.text), t.style, t.wrap)
	b := compiledBuild{lines: len(l.Lines), w: float64(l.Width), h: float64(l.Height)}
	// Underlines span whole lines, inline images included, so runs are
	// rasterized without them.
	plain := t.style
	plain.Underline = false
	for _, run := range l.Runs() {
		img, err := t.font.runImage(run.Text, plain)
		if err != nil {
			return compiledBuild{}, err
		}
		b.runs = append(b.runs, compiledRun{img: img, x: float64(run.X), y: float64(run.Y)})
	}
	if t.style.Underline {
		b.underlines = t.font.underlines(l)
	}
	for p := range l.All() {
		if p.Kind != text.TokenImage {
			continue
		}
		src, _ := t.font.Images().Get(p.Image)
		img := src.CopyImage()
		img.SetPos(float64(p.X), float64(p.Y))
		img.SetTint(t.color)
		b.images = append(b.images, img)
	}
	return b, nil
}

func (t *CompiledText) record(b compiledBuild) (*drawlist.List, error) {
	rec := drawlist.NewRecorder()
	if err := t.drawRuns(rec, b); err != nil {
		return nil, err
	}
	return rec.Finish()
}

func (t *CompiledText) drawRuns(dev render.Device, b compiledBuild) error {
	for _, r := range b.runs {
		dst := render.Rect{X: r.x, Y: r.y, W: float64(r.img.Width()), H: float64(r.img.Height())}
		if err := dev.DrawImage(r.img, dst, t.color); err != nil {
			return err
		}
	}
	for _, r := range b.underlines {
		if err := dev.FillRect(r, t.color); err != nil {
			return err
		}
	}
	return nil
}

// Lines returns the number of laid out lines.
func (t *CompiledText) Lines() int {
	t.refresh()
	return t.built.lines
}

// Size returns the layout size.
func (t *CompiledText) Size() (w, h float64) {
	t.refresh()
	return t.built.w, t.built.h
}

// Rect returns the unscaled bounds at the current position.
func (t *CompiledText) Rect() render.Rect { return t.rect(t.Size()) }

// refresh rebuilds for accessors that cannot report errors.
func (t *CompiledText) refresh() {
	if err := t.Rebuild(); err != nil {
		Logger().Warn("textgeom: rebuild failed", "err", err)
	}
}

// Copy returns an independent text object with the same content,
// placement and compile state.
func (t *CompiledText) Copy() Renderable {
	t.refresh()
	c := *t
	c.built.images = copyImages(t.built.images)
	return &c
}

// Render draws the text, rebuilding first if needed. Inline images are
// drawn after the runs in either state.
func (t *CompiledText) Render(dev render.Device) error {
	if err := t.Rebuild(); err != nil {
		return err
	}
	if !t.Visible {
		return nil
	}
	dev.PushTransform(t.transform(t.built.w, t.built.h))
	defer dev.PopTransform()

	var err error
	if t.compiled && t.list != nil {
		err = t.list.Playback(dev)
	} else {
		err = t.drawRuns(dev, t.built)
	}
	if err != nil {
		return err
	}
	for _, img := range t.built.images {
		if err := img.Render(dev); err != nil {
			return err
		}
	}
	return nil
}
