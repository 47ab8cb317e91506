package textgeom

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/textgeom/internal/cache"
	"github.com/gogpu/textgeom/render"
	"github.com/gogpu/textgeom/text"
)

// runImageCacheSize bounds the number of device images kept for
// rasterized runs.
const runImageCacheSize = 512

// Font owns a rasterizer for one family at one size together with the
// inline images that may appear in its text.
type Font struct {
	raster *text.Rasterizer
	images *ImageRegistry
	runs   *cache.Cache[*text.Bitmap, *render.Image]
}

// NewFont creates a font from family at size pixels per em.
func NewFont(family *text.Family, size float64, opts ...FontOption) (*Font, error) {
	var cfg fontConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	r, err := text.NewRasterizer(family, size, cfg.raster...)
	if err != nil {
		return nil, err
	}
	Logger().Debug("textgeom: font created", "family", family.Name(), "size", size)
	return &Font{
		raster: r,
		images: NewImageRegistry(),
		runs:   cache.New[*text.Bitmap, *render.Image](runImageCacheSize),
	}, nil
}

// DefaultFont creates a font from the bundled Go family.
func DefaultFont(size float64, opts ...FontOption) (*Font, error) {
	family, err := text.DefaultFamily()
	if err != nil {
		return nil, err
	}
	return NewFont(family, size, opts...)
}

// Size returns the font size in pixels per em.
func (f *Font) Size() float64 { return f.raster.PixelSize() }

// Metrics returns the vertical metrics.
func (f *Font) Metrics() text.Metrics { return f.raster.Metrics() }

// Rasterizer returns the underlying rasterizer.
func (f *Font) Rasterizer() *text.Rasterizer { return f.raster }

// Images returns the inline image registry.
func (f *Font) Images() *ImageRegistry { return f.images }

// AddImage registers img to replace every occurrence of token in text.
func (f *Font) AddImage(token string, img InlineImage) error {
	return f.images.Add(token, img)
}

// Close releases the rasterizer.
func (f *Font) Close() error {
	f.runs.Clear()
	return f.raster.Close()
}

// tokenize picks the plain strategy when no inline images are registered.
func (f *Font) tokenize(s string) []text.Token {
	if f.images.Len() == 0 {
		return text.TokenizePlain(s)
	}
	return text.Tokenize(s, f.images.Tokens())
}

func (f *Font) layout(tokens []text.Token, st Style, wrap float64) *text.Layout {
	return text.BreakLines(tokens, fontMeasurer{f: f, st: st}, text.BreakOptions{
		MaxWidth:        int(math.Floor(wrap)),
		EmptyLineHeight: f.raster.Metrics().LineHeight,
	})
}

// runImage rasterizes s and returns a device image for it.
func (f *Font) runImage(s string, st Style) (*render.Image, error) {
	bm, err := f.raster.Rasterize(s, st)
	if err != nil {
		return nil, err
	}
	return f.runs.GetOrCreate(bm, func() (*render.Image, error) {
		return render.NewImage(bm.Mask), nil
	})
}

// underlines returns the underline of every line that placed something,
// flush with the line bottom and as wide as the line.
func (f *Font) underlines(l *text.Layout) []render.Rect {
	thick := f.raster.UnderlineThickness()
	var out []render.Rect
	for _, line := range l.Lines {
		if line.Width == 0 {
			continue
		}
		out = append(out, render.Rect{
			Y: float64(line.Y + line.Height - thick),
			W: float64(line.Width),
			H: float64(thick),
		})
	}
	return out
}

// RenderPicture renders s into a single picture tinted with c. Newlines
// start new lines; inline images are not substituted.
func (f *Font) RenderPicture(s string, st Style, c RGBA) (*Picture, error) {
	l := f.layout(text.TokenizePlain(s), st, 0)
	runs := l.Runs()

	bms := make([]*text.Bitmap, len(runs))
	w := l.Width
	for i, run := range runs {
		bm, err := f.raster.Rasterize(run.Text, st)
		if err != nil {
			return nil, err
		}
		bms[i] = bm
		w = max(w, run.X+bm.Mask.Bounds().Dx())
	}

	canvas := image.NewAlpha(image.Rect(0, 0, w, l.Height))
	for i, run := range runs {
		mb := bms[i].Mask.Bounds()
		dr := image.Rect(run.X, run.Y, run.X+mb.Dx(), run.Y+mb.Dy())
		draw.Draw(canvas, dr, bms[i].Mask, mb.Min, draw.Over)
	}
	p := NewPicture(canvas)
	p.SetTint(c)
	return p, nil
}

type fontMeasurer struct {
	f  *Font
	st Style
}

func (m fontMeasurer) RuneSize(r rune) text.Size {
	return m.f.raster.MeasureRune(r, m.st)
}

func (m fontMeasurer) ImageSize(name string) text.Size {
	img, ok := m.f.images.Get(name)
	if !ok {
		return text.Size{}
	}
	w, h := img.Size()
	return text.Size{W: int(math.Ceil(w)), H: int(math.Ceil(h))}
}

// ImageRegistry maps tokens to inline images in registration order.
// Registration order breaks ties between tokens of equal length.
type ImageRegistry struct {
	tokens []string
	images map[string]InlineImage
}

// NewImageRegistry creates an empty registry.
func NewImageRegistry() *ImageRegistry {
	return &ImageRegistry{images: make(map[string]InlineImage)}
}

// Add registers img under token. Registering a token again replaces the
// image and keeps the original position.
func (r *ImageRegistry) Add(token string, img InlineImage) error {
	if token == "" {
		return ErrEmptyImageToken
	}
	if img == nil {
		return ErrNilImage
	}
	token = norm.NFC.String(token)
	if _, ok := r.images[token]; !ok {
		r.tokens = append(r.tokens, token)
	}
	r.images[token] = img
	return nil
}

// Get returns the image registered under token.
func (r *ImageRegistry) Get(token string) (InlineImage, bool) {
	img, ok := r.images[norm.NFC.String(token)]
	return img, ok
}

// Tokens returns the registered tokens in registration order.
func (r *ImageRegistry) Tokens() []string {
	return append([]string(nil), r.tokens...)
}

// Len returns the number of registered images.
func (r *ImageRegistry) Len() int { return len(r.tokens) }
