package text

import (
	"errors"
	"testing"
)

func TestFamilyResolve(t *testing.T) {
	reg, bold, italic, bi := &FontSource{}, &FontSource{}, &FontSource{}, &FontSource{}
	tests := []struct {
		name    string
		family  Family
		variant Variant
		want    *FontSource
		synth   Synthesis
	}{
		{"full family bold", Family{reg, bold, italic, bi}, Bold, bold, Synthesis{}},
		{"full family bold italic", Family{reg, bold, italic, bi}, BoldItalic, bi, Synthesis{}},
		{"regular only bold", Family{Regular: reg}, Bold, reg, Synthesis{Bold: true}},
		{"regular only italic", Family{Regular: reg}, Italic, reg, Synthesis{Italic: true}},
		{"regular only bold italic", Family{Regular: reg}, BoldItalic, reg, Synthesis{Bold: true, Italic: true}},
		{"bold italic from bold", Family{Regular: reg, Bold: bold}, BoldItalic, bold, Synthesis{Italic: true}},
		{"bold italic from italic", Family{Regular: reg, Italic: italic}, BoldItalic, italic, Synthesis{Bold: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, synth, err := tt.family.Resolve(tt.variant)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want || synth != tt.synth {
				t.Errorf("Resolve(%v) = %p %+v, want %p %+v", tt.variant, got, synth, tt.want, tt.synth)
			}
		})
	}

	if _, _, err := (&Family{}).Resolve(Regular); !errors.Is(err, ErrNoRegularFace) {
		t.Errorf("empty family error = %v, want %v", err, ErrNoRegularFace)
	}
}

func TestStyleVariant(t *testing.T) {
	tests := []struct {
		style Style
		want  Variant
		str   string
	}{
		{Style{}, Regular, "Regular"},
		{Style{Bold: true}, Bold, "Bold"},
		{Style{Italic: true, Underline: true}, Italic, "Italic+Underline"},
		{Style{Bold: true, Italic: true}, BoldItalic, "BoldItalic"},
	}
	for _, tt := range tests {
		if got := tt.style.Variant(); got != tt.want {
			t.Errorf("%+v.Variant() = %v, want %v", tt.style, got, tt.want)
		}
		if got := tt.style.String(); got != tt.str {
			t.Errorf("%+v.String() = %q, want %q", tt.style, got, tt.str)
		}
	}
	if !BoldItalic.Bold() || !BoldItalic.Italic() || Regular.Bold() {
		t.Error("Variant Bold/Italic predicates are wrong")
	}
}

func TestDefaultFamilyNames(t *testing.T) {
	f := testFamily(t)
	for _, v := range Variants {
		if f.Source(v) == nil {
			t.Errorf("DefaultFamily().Source(%v) = nil", v)
		}
	}
	if f.Name() == "" {
		t.Error("DefaultFamily().Name() is empty")
	}
}

func TestNewFontSourceEmpty(t *testing.T) {
	if _, err := NewFontSource(nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("NewFontSource(nil) error = %v, want %v", err, ErrEmptyFontData)
	}
	if _, err := NewFontSource([]byte("not a font")); err == nil {
		t.Error("NewFontSource(garbage) error = nil, want error")
	}
}

func TestMissingRunes(t *testing.T) {
	src := testFamily(t).Regular
	missing, err := MissingRunes(src, []rune("Abc\U0010FFFDA\U0010FFFD"))
	if err != nil {
		t.Fatal(err)
	}
	if len(missing) != 1 || missing[0] != '\U0010FFFD' {
		t.Errorf("MissingRunes = %q, want [U+10FFFD]", missing)
	}

	var mge *MissingGlyphsError
	if err := CheckCoverage(src, []rune{'\U0010FFFD'}); !errors.As(err, &mge) {
		t.Errorf("CheckCoverage error = %v, want *MissingGlyphsError", err)
	}
	if err := CheckCoverage(src, []rune("hello")); err != nil {
		t.Errorf("CheckCoverage(hello) = %v, want nil", err)
	}
}
