// Package config loads the YAML configuration of the textgeom command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/textgeom/render"
	"github.com/gogpu/textgeom/text"
)

// Validation errors.
var (
	ErrInvalidSize  = errors.New("config: size must be positive")
	ErrInvalidRange = errors.New("config: invalid character range")
	ErrInvalidColor = errors.New("config: invalid color")
	ErrInvalidImage = errors.New("config: inline image needs a token and a path")
)

// Config is the complete command configuration.
type Config struct {
	Font  Font  `yaml:"font"`
	Atlas Atlas `yaml:"atlas"`
	Text  Text  `yaml:"text"`
}

// Font selects the font files. Empty paths fall back to the bundled Go
// fonts (all four) or to synthesis (bold and italic variants).
type Font struct {
	Regular    string        `yaml:"regular"`
	Bold       string        `yaml:"bold"`
	Italic     string        `yaml:"italic"`
	BoldItalic string        `yaml:"bold_italic"`
	Size       float64       `yaml:"size"`
	Images     []InlineImage `yaml:"images"`
}

// InlineImage maps a token in text to an image file.
type InlineImage struct {
	Token string `yaml:"token"`
	Path  string `yaml:"path"`
}

// Atlas configures glyph atlas builds.
type Atlas struct {
	Canvas     int     `yaml:"canvas"`
	MaxCanvas  int     `yaml:"max_canvas"`
	RasterSize float64 `yaml:"raster_size"`
	Padding    int     `yaml:"padding"`

	// CharacterRanges lists inclusive [first, last] pairs of single
	// characters. When empty the default ASCII alphabet is used.
	CharacterRanges [][2]string `yaml:"character_ranges"`
}

// Text holds defaults for rendered text.
type Text struct {
	Color     string  `yaml:"color"`
	Wrap      float64 `yaml:"wrap"`
	Bold      bool    `yaml:"bold"`
	Italic    bool    `yaml:"italic"`
	Underline bool    `yaml:"underline"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Font: Font{Size: 24},
		Atlas: Atlas{
			Canvas:     512,
			MaxCanvas:  2048,
			RasterSize: 64,
		},
		Text: Text{Color: "#ffffffff"},
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks sizes, ranges, images and colors.
func (c Config) Validate() error {
	if c.Font.Size <= 0 {
		return fmt.Errorf("%w: font.size = %v", ErrInvalidSize, c.Font.Size)
	}
	if c.Atlas.Canvas <= 0 || c.Atlas.RasterSize <= 0 {
		return fmt.Errorf("%w: atlas canvas %d, raster size %v", ErrInvalidSize, c.Atlas.Canvas, c.Atlas.RasterSize)
	}
	for _, img := range c.Font.Images {
		if img.Token == "" || img.Path == "" {
			return fmt.Errorf("%w: %+v", ErrInvalidImage, img)
		}
	}
	if _, err := c.Atlas.Alphabet(); err != nil {
		return err
	}
	if _, err := c.Text.RGBA(); err != nil {
		return err
	}
	return nil
}

// Alphabet expands the character ranges. It returns "" when no ranges
// are configured.
func (a Atlas) Alphabet() (string, error) {
	var out []rune
	for _, r := range a.CharacterRanges {
		first, ok1 := single(r[0])
		last, ok2 := single(r[1])
		if !ok1 || !ok2 || last < first {
			return "", fmt.Errorf("%w: %q", ErrInvalidRange, r)
		}
		for ch := first; ch <= last; ch++ {
			out = append(out, ch)
		}
	}
	return string(out), nil
}

func single(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	return r, r != utf8.RuneError && size == len(s)
}

// RGBA parses the text color.
func (t Text) RGBA() (render.RGBA, error) {
	c, err := render.ParseHex(t.Color)
	if err != nil {
		return render.RGBA{}, fmt.Errorf("%w: %v", ErrInvalidColor, err)
	}
	return c, nil
}

// Style returns the configured text style.
func (t Text) Style() text.Style {
	return text.Style{Bold: t.Bold, Italic: t.Italic, Underline: t.Underline}
}

// FamilyPaths returns the font paths for text.LoadFamily.
func (f Font) FamilyPaths() text.FamilyPaths {
	return text.FamilyPaths{
		Regular:    f.Regular,
		Bold:       f.Bold,
		Italic:     f.Italic,
		BoldItalic: f.BoldItalic,
	}
}

// Family loads the configured family, or the bundled Go fonts when no
// regular font is set.
func (f Font) Family() (*text.Family, error) {
	if f.Regular == "" {
		return text.DefaultFamily()
	}
	return text.LoadFamily(f.FamilyPaths())
}
