package textgeom

import (
	"slices"
	"testing"

	"github.com/gogpu/textgeom/drawlist"
	"github.com/gogpu/textgeom/render"
)

func newCompiled(t *testing.T, f *Font, s string, opts ...TextOption) *CompiledText {
	t.Helper()
	c, err := NewCompiledText(f, s, opts...)
	if err != nil {
		t.Fatalf("NewCompiledText(%q) error = %v", s, err)
	}
	return c
}

func TestCompiledMatchesUncompiled(t *testing.T) {
	f := testFont(t, 18)
	styles := []Style{{}, {Bold: true}, {Italic: true, Underline: true}}
	for _, st := range styles {
		opts := []TextOption{WithColor(render.Red), WithWrap(90), WithStyle(st)}
		plain := newCompiled(t, f, "Hello there\nworld wide web", opts...)
		compiled := newCompiled(t, f, "Hello there\nworld wide web", opts...)
		if err := compiled.Compile(); err != nil {
			t.Fatalf("Compile() error = %v", err)
		}
		if !compiled.IsCompiled() || plain.IsCompiled() {
			t.Fatal("IsCompiled() does not reflect Compile()")
		}

		a := renderToSoftware(t, plain, 200, 120).Image()
		b := renderToSoftware(t, compiled, 200, 120).Image()
		if !hasInk(a) {
			t.Fatalf("%v: uncompiled render is blank", st)
		}
		if !samePixels(a, b) {
			t.Errorf("%v: compiled render differs from uncompiled", st)
		}
	}
}

func TestCompiledSetTextMatchesFresh(t *testing.T) {
	f := testFont(t, 18)
	c := newCompiled(t, f, "old text")
	if err := c.Compile(); err != nil {
		t.Fatal(err)
	}
	c.SetText("brand new text")
	c.SetColor(render.Green)
	if !c.Dirty() {
		t.Fatal("Dirty() = false after SetText")
	}

	got := renderToSoftware(t, c, 200, 40).Image()
	if c.Dirty() {
		t.Error("Dirty() = true after Render")
	}
	fresh := newCompiled(t, f, "brand new text", WithColor(render.Green))
	want := renderToSoftware(t, fresh, 200, 40).Image()
	if !samePixels(got, want) {
		t.Error("recompiled render differs from a fresh uncompiled text")
	}
}

func TestCompiledSizeRebuilds(t *testing.T) {
	f := testFont(t, 16)
	c := newCompiled(t, f, "ab")
	w1, _ := c.Size()
	c.SetText("abab\nab")
	w2, h2 := c.Size()
	if w2 <= w1 {
		t.Errorf("width after SetText = %v, want more than %v", w2, w1)
	}
	if lh := f.Metrics().LineHeight; int(h2) != 2*lh {
		t.Errorf("height = %v, want %d", h2, 2*lh)
	}
	if c.Dirty() {
		t.Error("Size() left the text dirty")
	}
}

func TestCompiledRecordsOneImagePerRun(t *testing.T) {
	f := testFont(t, 16)
	if err := f.AddImage(":)", blankPicture(8, 8)); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		text   string
		runs   int
		images int
	}{
		{"ab cd", 1, 0},
		{"ab cd\nef", 2, 0},
		{"a:)b", 2, 1},
		{"", 0, 0},
	}
	for _, tt := range tests {
		c := newCompiled(t, f, tt.text)
		if err := c.Compile(); err != nil {
			t.Fatal(err)
		}
		if got := c.list.Len(); got != tt.runs {
			t.Errorf("%q: recorded %d commands, want %d", tt.text, got, tt.runs)
		}
		counts := recordCommands(t, c)
		if counts[drawlist.CmdDrawImage] != tt.runs+tt.images {
			t.Errorf("%q: drew %d images, want %d", tt.text, counts[drawlist.CmdDrawImage], tt.runs+tt.images)
		}
	}
}

func TestCompiledUncompile(t *testing.T) {
	f := testFont(t, 16)
	c := newCompiled(t, f, "hello")
	if err := c.Compile(); err != nil {
		t.Fatal(err)
	}
	before := renderToSoftware(t, c, 80, 30).Image()
	c.Uncompile()
	if c.IsCompiled() || c.list != nil {
		t.Error("Uncompile() kept the draw list")
	}
	after := renderToSoftware(t, c, 80, 30).Image()
	if !samePixels(before, after) {
		t.Error("render changed after Uncompile")
	}
}

func TestCompiledCopy(t *testing.T) {
	f := testFont(t, 16)
	c := newCompiled(t, f, "copy me")
	if err := c.Compile(); err != nil {
		t.Fatal(err)
	}
	c.SetPos(2, 3)
	cp := c.Copy().(*CompiledText)
	if !cp.IsCompiled() || cp.Pos != c.Pos || cp.Text() != c.Text() {
		t.Errorf("copy = compiled %v at %v %q", cp.IsCompiled(), cp.Pos, cp.Text())
	}
	cp.SetText("changed")
	if c.Text() != "copy me" || c.Dirty() {
		t.Error("changing the copy affected the original")
	}
}

func TestCompiledSetFont(t *testing.T) {
	small := testFont(t, 12)
	large := testFont(t, 24)
	c := newCompiled(t, small, "size")
	_, h1 := c.Size()
	c.SetFont(large)
	_, h2 := c.Size()
	if h2 <= h1 || c.Font() != large {
		t.Errorf("height after SetFont = %v, want more than %v", h2, h1)
	}
}

// fillRects returns the rectangles r fills when rendered.
func fillRects(t *testing.T, r Renderable) []render.Rect {
	t.Helper()
	rec := drawlist.NewRecorder()
	if err := r.Render(rec); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	list, err := rec.Finish()
	if err != nil {
		t.Fatal(err)
	}
	var out []render.Rect
	for _, cmd := range list.Commands() {
		if fr, ok := cmd.(drawlist.FillRectCommand); ok {
			out = append(out, fr.Dst)
		}
	}
	return out
}

func TestCompiledUnderlineSpansInlineImages(t *testing.T) {
	c := testCache(t, 16)
	if err := c.Font().AddImage(":)", blankPicture(12, 12)); err != nil {
		t.Fatal(err)
	}
	const s = "ab :) cd\nef"
	opts := []TextOption{WithStyle(Style{Underline: true})}
	compiled := newCompiled(t, c.Font(), s, opts...)
	if err := compiled.Compile(); err != nil {
		t.Fatal(err)
	}
	dynamic := newDynamic(t, c, s, opts...)

	got := fillRects(t, compiled)
	want := fillRects(t, dynamic)
	if len(got) != 2 {
		t.Fatalf("compiled underlines = %d, want one per line", len(got))
	}
	if !slices.Equal(got, want) {
		t.Errorf("compiled underlines = %v, dynamic = %v", got, want)
	}
	if w, _ := compiled.Size(); got[0].W != w {
		t.Errorf("first underline width = %v, want the line width %v", got[0].W, w)
	}
}
