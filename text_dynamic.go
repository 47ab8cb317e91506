package textgeom

import (
	"unicode/utf8"

	"github.com/gogpu/textgeom/render"
	"github.com/gogpu/textgeom/text"
)

// DynamicText draws text as individually placed glyphs cloned from a
// GlyphCache. Changing the text only re-lays out and clones cached
// glyphs; changing the color touches no layout at all.
type DynamicText struct {
	Node
	cache *GlyphCache
	text  string
	style Style
	color RGBA
	wrap  float64
	built dynamicBuild
}

type dynamicBuild struct {
	glyphs     []*Glyph
	images     []InlineImage
	underlines []render.Rect
	lines      int
	w, h       float64
}

// NewDynamicText lays out s with glyphs from cache.
func NewDynamicText(cache *GlyphCache, s string, opts ...TextOption) (*DynamicText, error) {
	if cache == nil {
		return nil, ErrNilFont
	}
	cfg := defaultTextConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	t := &DynamicText{
		Node:  newNode(),
		cache: cache,
		style: cfg.style,
		color: cfg.color(),
		wrap:  cfg.wrap,
	}
	if err := t.update(s, cfg.style, cfg.wrap); err != nil {
		return nil, err
	}
	return t, nil
}

// Text returns the current text.
func (t *DynamicText) Text() string { return t.text }

// Style returns the current style.
func (t *DynamicText) Style() Style { return t.style }

// Color returns the text color.
func (t *DynamicText) Color() RGBA { return t.color }

// Wrap returns the wrap width.
func (t *DynamicText) Wrap() float64 { return t.wrap }

// Cache returns the glyph cache.
func (t *DynamicText) Cache() *GlyphCache { return t.cache }

// SetText replaces the text. If any character is unsupported the text
// object is left unchanged.
func (t *DynamicText) SetText(s string) error { return t.update(s, t.style, t.wrap) }

// SetStyle changes the style.
func (t *DynamicText) SetStyle(st Style) error { return t.update(t.text, st, t.wrap) }

// SetWrap changes the wrap width. Zero disables wrapping.
func (t *DynamicText) SetWrap(px float64) error { return t.update(t.text, t.style, px) }

// SetColor recolors every glyph and inline image.
func (t *DynamicText) SetColor(c RGBA) {
	t.color = c
	for _, g := range t.built.glyphs {
		g.Tint = c
	}
	for _, img := range t.built.images {
		img.SetTint(c)
	}
}

func (t *DynamicText) update(s string, st Style, wrap float64) error {
	b, err := t.build(s, st, wrap)
	if err != nil {
		return err
	}
	t.text, t.style, t.wrap = s, st, wrap
	t.built = b
	return nil
}

func (t *DynamicText) build(s string, st Style, wrap float64) (dynamicBuild, error) {
	f := t.cache.Font()
	tokens := text.Tokenize(s, f.Images().Tokens())
	offset := 0
	for i, tok := range tokens {
		if tok.Kind == text.TokenImage {
			offset += utf8.RuneCountInString(tok.Image)
			continue
		}
		offset++
		if tok.Kind != text.TokenChar || tok.IsSpace() {
			continue
		}
		ch, ok := t.cache.resolve(tok.Rune)
		if !ok {
			return dynamicBuild{}, &UnsupportedCharacterError{Rune: tok.Rune, Index: offset - 1}
		}
		tokens[i].Rune = ch
	}

	l := f.layout(tokens, st, wrap)
	b := dynamicBuild{lines: len(l.Lines), w: float64(l.Width), h: float64(l.Height)}
	for p := range l.All() {
		switch {
		case p.Kind == text.TokenImage:
			src, _ := f.Images().Get(p.Image)
			img := src.CopyImage()
			img.SetPos(float64(p.X), float64(p.Y))
			img.SetTint(t.color)
			b.images = append(b.images, img)
		case p.Kind == text.TokenChar && !p.IsSpace():
			g := t.cache.glyph(p.Rune, st)
			g.X, g.Y = float64(p.X), float64(p.Y)
			g.Tint = t.color
			b.glyphs = append(b.glyphs, g)
		}
	}

	if st.Underline {
		b.underlines = f.underlines(l)
	}
	Logger().Debug("textgeom: dynamic text rebuilt", "glyphs", len(b.glyphs), "images", len(b.images), "lines", b.lines)
	return b, nil
}

// Glyphs returns the placed glyphs. Spaces have no glyph.
func (t *DynamicText) Glyphs() []*Glyph {
	return append([]*Glyph(nil), t.built.glyphs...)
}

// Lines returns the number of laid out lines.
func (t *DynamicText) Lines() int { return t.built.lines }

// Size returns the layout size.
func (t *DynamicText) Size() (w, h float64) { return t.built.w, t.built.h }

// Rect returns the unscaled bounds at the current position.
func (t *DynamicText) Rect() render.Rect { return t.rect(t.Size()) }

// Copy returns an independent text object with the same content and
// placement.
func (t *DynamicText) Copy() Renderable {
	c := *t
	c.built.glyphs = make([]*Glyph, len(t.built.glyphs))
	for i, g := range t.built.glyphs {
		gc := *g
		c.built.glyphs[i] = &gc
	}
	c.built.images = copyImages(t.built.images)
	c.built.underlines = append([]render.Rect(nil), t.built.underlines...)
	return &c
}

// Render draws the glyphs, then the underlines, then the inline images.
func (t *DynamicText) Render(dev render.Device) error {
	if !t.Visible {
		return nil
	}
	dev.PushTransform(t.transform(t.Size()))
	defer dev.PopTransform()

	for _, g := range t.built.glyphs {
		if err := g.Render(dev); err != nil {
			return err
		}
	}
	for _, r := range t.built.underlines {
		if err := dev.FillRect(r, t.color); err != nil {
			return err
		}
	}
	for _, img := range t.built.images {
		if err := img.Render(dev); err != nil {
			return err
		}
	}
	return nil
}
