package text

import (
	"iter"
	"strings"
)

// Measurer sizes layout units.
type Measurer interface {
	RuneSize(r rune) Size
	ImageSize(name string) Size
}

// BreakOptions controls BreakLines.
type BreakOptions struct {
	// MaxWidth is the wrap width in pixels. Zero or negative disables
	// wrapping.
	MaxWidth int

	// EmptyLineHeight is the advance of a line that places nothing and is
	// followed by another line.
	EmptyLineHeight int
}

// Placed is a token positioned by BreakLines. X and Y are the top-left
// corner relative to the layout origin; Index is the position of the token
// in the input slice.
type Placed struct {
	Token
	Index int
	X, Y  int
	W, H int
	Line int
}

// Line is one laid out line. Start and End index Layout.Placed.
type Line struct {
	Start, End int
	Y          int
	Width      int
	Height     int
}

// Layout is the result of BreakLines.
type Layout struct {
	Placed []Placed
	Lines  []Line
	Width  int
	Height int
}

// All iterates over the placed tokens in order.
func (l *Layout) All() iter.Seq[Placed] {
	return func(yield func(Placed) bool) {
		for _, p := range l.Placed {
			if !yield(p) {
				return
			}
		}
	}
}

// Run is a horizontal sequence of characters on one line that is not
// interrupted by an inline image.
type Run struct {
	Text string
	X, Y int
	W, H int
	Line int
}

// Runs groups consecutive characters of each line into runs.
func (l *Layout) Runs() []Run {
	var runs []Run
	var sb strings.Builder
	var cur Run
	open := false
	flush := func() {
		if open {
			cur.Text = sb.String()
			runs = append(runs, cur)
			sb.Reset()
			open = false
		}
	}
	for _, p := range l.Placed {
		if p.Kind != TokenChar || (open && p.Line != cur.Line) {
			flush()
		}
		if p.Kind != TokenChar {
			continue
		}
		if !open {
			cur = Run{X: p.X, Y: p.Y, Line: p.Line}
			open = true
		}
		sb.WriteRune(p.Rune)
		cur.W = p.X + p.W - cur.X
		cur.H = max(cur.H, p.H)
	}
	flush()
	return runs
}

type breaker struct {
	measure Measurer
	opts    BreakOptions
	out     *Layout

	x, y        int
	lineStart   int
	lineH       int
	lineHasUnit bool

	word    []Placed
	wordW   int
	spaces  []Placed
	spacesW int
}

// BreakLines positions tokens into lines.
//
// Words are runs of non-space characters and are never split. A word or
// image that would end beyond MaxWidth moves to a new line unless it
// starts at the left edge, in which case it overflows. Spaces at a wrap
// point are dropped; leading and trailing spaces are kept while they fit,
// so only a single overflowing unit can exceed MaxWidth. A newline
// token always ends the line. Line height is the tallest unit on the line.
func BreakLines(tokens []Token, measure Measurer, opts BreakOptions) *Layout {
	b := &breaker{measure: measure, opts: opts, out: &Layout{}}
	for i, t := range tokens {
		switch {
		case t.Kind == TokenNewline:
			b.flushWord()
			b.flushTrailingSpaces()
			b.endLine(false)
		case t.Kind == TokenImage:
			b.flushWord()
			s := measure.ImageSize(t.Image)
			b.placeUnit([]Placed{{Token: t, Index: i, W: s.W, H: s.H}}, s.W)
		case t.IsSpace():
			b.flushWord()
			s := measure.RuneSize(t.Rune)
			p := Placed{Token: t, Index: i, W: s.W, H: s.H}
			if !b.lineHasUnit {
				b.placeLeadingSpace(p)
				continue
			}
			b.spaces = append(b.spaces, p)
			b.spacesW += s.W
		default:
			s := measure.RuneSize(t.Rune)
			b.word = append(b.word, Placed{Token: t, Index: i, W: s.W, H: s.H})
			b.wordW += s.W
		}
	}
	b.flushWord()
	b.flushTrailingSpaces()
	b.endLine(true)
	return b.out
}

func (b *breaker) flushWord() {
	if len(b.word) == 0 {
		return
	}
	b.placeUnit(b.word, b.wordW)
	b.word = b.word[:0]
	b.wordW = 0
}

func (b *breaker) placeUnit(unit []Placed, w int) {
	if b.opts.MaxWidth > 0 && b.x > 0 && b.x+b.spacesW+w > b.opts.MaxWidth {
		b.dropSpaces()
		b.endLine(false)
	}
	for _, s := range b.spaces {
		b.place(s)
	}
	b.dropSpaces()
	for _, p := range unit {
		b.place(p)
	}
	b.lineHasUnit = true
}

// placeLeadingSpace keeps spaces that open a line while they fit.
func (b *breaker) placeLeadingSpace(p Placed) {
	if b.opts.MaxWidth > 0 && b.x+p.W > b.opts.MaxWidth {
		return
	}
	b.place(p)
}

func (b *breaker) flushTrailingSpaces() {
	for _, s := range b.spaces {
		if b.opts.MaxWidth > 0 && b.x+s.W > b.opts.MaxWidth {
			break
		}
		b.place(s)
	}
	b.dropSpaces()
}

func (b *breaker) dropSpaces() {
	b.spaces = b.spaces[:0]
	b.spacesW = 0
}

func (b *breaker) place(p Placed) {
	p.X = b.x
	p.Y = b.y
	p.Line = len(b.out.Lines)
	b.out.Placed = append(b.out.Placed, p)
	b.x += p.W
	b.lineH = max(b.lineH, p.H)
}

func (b *breaker) endLine(last bool) {
	h := b.lineH
	empty := b.lineStart == len(b.out.Placed)
	if empty {
		h = b.opts.EmptyLineHeight
		if last {
			h = 0
		}
	}
	b.out.Lines = append(b.out.Lines, Line{
		Start:  b.lineStart,
		End:    len(b.out.Placed),
		Y:      b.y,
		Width:  b.x,
		Height: h,
	})
	b.out.Width = max(b.out.Width, b.x)
	b.y += h
	b.out.Height = b.y
	b.x = 0
	b.lineH = 0
	b.lineHasUnit = false
	b.lineStart = len(b.out.Placed)
}
