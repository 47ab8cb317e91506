package text

// Variant selects one of the four glyph subsets of a family.
type Variant uint8

const (
	Regular Variant = iota
	Bold
	Italic
	BoldItalic

	numVariants = 4
)

// Variants lists every variant in index order.
var Variants = [numVariants]Variant{Regular, Bold, Italic, BoldItalic}

var variantNames = [...]string{"Regular", "Bold", "Italic", "BoldItalic"}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return "Unknown"
}

// Bold reports whether v uses a bold weight.
func (v Variant) Bold() bool { return v == Bold || v == BoldItalic }

// Italic reports whether v is slanted.
func (v Variant) Italic() bool { return v == Italic || v == BoldItalic }

// Style is the set of style flags applied to a text object.
// Underline does not select a glyph subset.
type Style struct {
	Bold      bool
	Italic    bool
	Underline bool
}

// Variant returns the glyph subset selected by s.
func (s Style) Variant() Variant {
	switch {
	case s.Bold && s.Italic:
		return BoldItalic
	case s.Bold:
		return Bold
	case s.Italic:
		return Italic
	}
	return Regular
}

func (s Style) String() string {
	out := s.Variant().String()
	if s.Underline {
		out += "+Underline"
	}
	return out
}
