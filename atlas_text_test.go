package textgeom

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/textgeom/atlas"
	"github.com/gogpu/textgeom/drawlist"
	"github.com/gogpu/textgeom/render"
)

func testAtlasFont(t *testing.T) *AtlasFont {
	t.Helper()
	f, err := DefaultAtlasFont(WithAtlasRasterSize(24))
	if err != nil {
		t.Fatalf("DefaultAtlasFont() error = %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func newAtlasText(t *testing.T, f *AtlasFont, s string, opts ...TextOption) *AtlasText {
	t.Helper()
	a, err := NewAtlasText(f, s, opts...)
	if err != nil {
		t.Fatalf("NewAtlasText(%q) error = %v", s, err)
	}
	return a
}

type recordingUploader struct {
	uploaded []*render.Image
	released []*render.Image
}

func (u *recordingUploader) Upload(img *render.Image) error {
	u.uploaded = append(u.uploaded, img)
	return nil
}

func (u *recordingUploader) Release(img *render.Image) {
	u.released = append(u.released, img)
}

func TestDefaultAtlasFont(t *testing.T) {
	f, err := DefaultAtlasFont()
	if err != nil {
		t.Fatalf("DefaultAtlasFont() error = %v", err)
	}
	defer f.Close()
	a := f.Atlas()
	if a.Len() != 95 {
		t.Errorf("Len() = %d, want 95", a.Len())
	}
	if a.Width() < atlas.DefaultCanvasSize || a.Width() != a.Height() {
		t.Errorf("canvas = %dx%d, want a square of at least %d", a.Width(), a.Height(), atlas.DefaultCanvasSize)
	}
	if a.Overlaps() {
		t.Error("atlas glyphs overlap")
	}
	if f.RasterSize() != 64 {
		t.Errorf("RasterSize() = %v, want 64", f.RasterSize())
	}
}

func TestAtlasFontOverflow(t *testing.T) {
	_, err := DefaultAtlasFont(WithAtlasCanvas(32), WithAtlasMaxCanvas(32))
	if !errors.Is(err, atlas.ErrAtlasOverflow) {
		t.Errorf("error = %v, want %v", err, atlas.ErrAtlasOverflow)
	}
}

func TestAtlasFontUpload(t *testing.T) {
	f := testAtlasFont(t)
	var u recordingUploader
	if err := f.Upload(&u); err != nil {
		t.Fatal(err)
	}
	if len(u.uploaded) != 1 || u.uploaded[0] != f.Atlas().Texture() {
		t.Errorf("uploaded = %v, want the atlas texture", u.uploaded)
	}
}

func TestAtlasTextGeometry(t *testing.T) {
	f := testAtlasFont(t)
	a := newAtlasText(t, f, "ab\nc", WithSize(32))
	g := a.Geometry()
	if len(g.Vertices) != 4*atlas.VerticesPerGlyph {
		t.Fatalf("len(Vertices) = %d, want %d", len(g.Vertices), 4*atlas.VerticesPerGlyph)
	}
	for i, v := range g.Vertices[2*atlas.VerticesPerGlyph : 3*atlas.VerticesPerGlyph] {
		if v != (render.Vertex{}) {
			t.Errorf("newline vertex %d = %+v, want zero", i, v)
		}
	}
	if a.CellSize() != 32 {
		t.Errorf("CellSize() = %v, want 32", a.CellSize())
	}
	if _, h := a.Size(); h != 64 {
		t.Errorf("height = %v, want 64", h)
	}
}

func TestAtlasTextDefaultCellSize(t *testing.T) {
	f := testAtlasFont(t)
	a := newAtlasText(t, f, "x")
	if a.CellSize() != f.RasterSize() {
		t.Errorf("CellSize() = %v, want %v", a.CellSize(), f.RasterSize())
	}
}

func TestAtlasTextFailedUpdatesKeepState(t *testing.T) {
	f := testAtlasFont(t)
	a := newAtlasText(t, f, "abc", WithColors(render.Red, render.Green, render.Blue))
	g := a.Geometry()

	if err := a.SetTextColors("abcd", []RGBA{render.Red, render.Green}); !errors.Is(err, atlas.ErrColorCount) {
		t.Errorf("SetTextColors(four runes, two colors) error = %v, want %v", err, atlas.ErrColorCount)
	}
	if err := a.SetColors([]RGBA{render.Red, render.Green}); !errors.Is(err, atlas.ErrColorCount) {
		t.Errorf("SetColors(two) error = %v, want %v", err, atlas.ErrColorCount)
	}
	if a.Text() != "abc" || a.Geometry() != g || len(a.Colors()) != 3 {
		t.Fatalf("state changed after failed updates: %q with %d colors", a.Text(), len(a.Colors()))
	}

	if err := a.SetColor(render.Red); err != nil {
		t.Fatalf("SetColor() error = %v", err)
	}
	g = a.Geometry()
	err := a.SetText("a€")
	var uerr *UnsupportedCharacterError
	if !errors.As(err, &uerr) || uerr.Rune != '€' || uerr.Index != 1 {
		t.Errorf("SetText(\"a€\") error = %v, want unsupported '€' at 1", err)
	}
	if a.Text() != "abc" || a.Geometry() != g {
		t.Errorf("state changed after unsupported text: %q", a.Text())
	}
}

func TestAtlasTextSetTextColors(t *testing.T) {
	f := testAtlasFont(t)
	a := newAtlasText(t, f, "abc", WithColors(render.Red, render.Green, render.Blue))

	if err := a.SetText("xyz"); err != nil {
		t.Fatalf("SetText(same length) error = %v", err)
	}
	if got := a.Colors(); len(got) != 3 {
		t.Errorf("same length SetText kept %d colors, want 3", len(got))
	}

	if err := a.SetText("abcd"); err != nil {
		t.Fatalf("SetText(longer) error = %v", err)
	}
	if got := a.Colors(); len(got) != 1 || got[0] != render.Red {
		t.Errorf("Colors() after longer SetText = %v, want [red]", got)
	}

	cs := []RGBA{render.Blue, render.Green}
	if err := a.SetTextColors("ab", cs); err != nil {
		t.Fatalf("SetTextColors() error = %v", err)
	}
	if a.Text() != "ab" || !slices.Equal(a.Colors(), cs) {
		t.Errorf("state = %q %v, want \"ab\" %v", a.Text(), a.Colors(), cs)
	}
	cs[0] = render.Red
	if a.Colors()[0] != render.Blue {
		t.Error("SetTextColors kept a reference to the caller's slice")
	}
}

func TestAtlasTextBoldItalicWiden(t *testing.T) {
	f := testAtlasFont(t)
	a := newAtlasText(t, f, "abc", WithSize(32))
	w0, _ := a.Size()
	if err := a.SetBold(true); err != nil {
		t.Fatal(err)
	}
	w1, _ := a.Size()
	if err := a.SetItalic(true); err != nil {
		t.Fatal(err)
	}
	w2, _ := a.Size()
	if !(w0 < w1 && w1 < w2) {
		t.Errorf("widths plain %v, bold %v, bold italic %v, want increasing", w0, w1, w2)
	}
}

func TestAtlasTextRender(t *testing.T) {
	f := testAtlasFont(t)
	a := newAtlasText(t, f, "Hi", WithSize(32))
	a.SetPos(10, 10)
	if !hasInk(renderToSoftware(t, a, 120, 60).Image()) {
		t.Error("rendered atlas text is blank")
	}

	if got := recordCommands(t, a)[drawlist.CmdFillRect]; got != 0 {
		t.Errorf("underline rects = %d, want 0", got)
	}
	a.SetUnderline(true)
	counts := recordCommands(t, a)
	if counts[drawlist.CmdFillRect] != 1 || counts[drawlist.CmdDrawTriangles] != 1 {
		t.Errorf("commands = %v, want one triangle list and one underline", counts)
	}
}

func TestAtlasTextCopy(t *testing.T) {
	f := testAtlasFont(t)
	a := newAtlasText(t, f, "abc")
	cp := a.Copy().(*AtlasText)
	if err := cp.SetText("xyz"); err != nil {
		t.Fatal(err)
	}
	if a.Text() != "abc" || cp.Geometry() == a.Geometry() {
		t.Error("copy is not independent")
	}
}
