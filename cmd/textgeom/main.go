// Command textgeom renders text or glyph atlases to PNG files.
//
// Usage:
//
//	textgeom render [flags] TEXT
//	textgeom atlas [flags]
package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/textgeom"
	"github.com/gogpu/textgeom/internal/config"
	"github.com/gogpu/textgeom/render"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}
	var err error
	switch args[0] {
	case "render":
		err = runRender(args[1:], stdout, stderr)
	case "atlas":
		err = runAtlas(args[1:], stdout, stderr)
	case "version", "--version":
		fmt.Fprintf(stdout, "textgeom version %s\n", version)
		return 0
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n", args[0])
		printUsage(stderr)
		return 2
	}
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage:
  textgeom render [flags] TEXT   render TEXT to a PNG file
  textgeom atlas [flags]         write a glyph atlas PNG and its metrics
  textgeom version               print the version

Run "textgeom <command> --help" for the flags of a command.`)
}

// common holds flags shared by every command.
type common struct {
	configPath string
	verbose    bool
}

func (c *common) register(fs *pflag.FlagSet) {
	fs.StringVarP(&c.configPath, "config", "c", "", "YAML configuration file")
	fs.BoolVarP(&c.verbose, "verbose", "v", false, "Log to stderr")
}

func (c *common) load(stderr io.Writer) (config.Config, error) {
	if c.verbose {
		textgeom.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if c.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(c.configPath)
}

func runRender(args []string, stdout, stderr io.Writer) error {
	var (
		cm         common
		mode       string
		output     string
		background string
		padding    int
	)
	fs := pflag.NewFlagSet("render", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	cm.register(fs)
	fs.StringVarP(&mode, "mode", "m", "compiled", "Text kind: compiled, dynamic or atlas")
	fs.StringVarP(&output, "output", "o", "text.png", "Output PNG path")
	fs.StringVar(&background, "background", "#00000000", "Background color")
	fs.IntVar(&padding, "padding", 4, "Border around the text in pixels")
	size := fs.Float64P("size", "s", 0, "Font size in pixels (atlas mode: cell size)")
	color := fs.String("color", "", "Text color as hex")
	wrap := fs.Float64P("wrap", "w", 0, "Wrap width in pixels, 0 disables wrapping")
	bold := fs.BoolP("bold", "b", false, "Bold")
	italic := fs.BoolP("italic", "i", false, "Italic")
	underline := fs.BoolP("underline", "u", false, "Underline")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("no text provided")
	}
	s := strings.Join(fs.Args(), " ")

	cfg, err := cm.load(stderr)
	if err != nil {
		return err
	}
	if fs.Changed("size") {
		cfg.Font.Size = *size
	}
	if fs.Changed("color") {
		cfg.Text.Color = *color
	}
	if fs.Changed("wrap") {
		cfg.Text.Wrap = *wrap
	}
	if fs.Changed("bold") {
		cfg.Text.Bold = *bold
	}
	if fs.Changed("italic") {
		cfg.Text.Italic = *italic
	}
	if fs.Changed("underline") {
		cfg.Text.Underline = *underline
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	bg, err := render.ParseHex(background)
	if err != nil {
		return err
	}

	r, closeFn, err := buildRenderable(mode, s, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	w, h := r.Size()
	dev := render.NewSoftware(int(math.Ceil(w))+2*padding, int(math.Ceil(h))+2*padding)
	dev.Clear(bg)
	r.SetPos(float64(padding), float64(padding))
	if err := r.Render(dev); err != nil {
		return err
	}
	if err := dev.Err(); err != nil {
		return err
	}
	if err := writePNG(output, dev.Image()); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s (%dx%d)\n", output, dev.Width(), dev.Height())
	return nil
}

// buildRenderable creates the text object for mode. The returned function
// releases the font.
func buildRenderable(mode, s string, cfg config.Config) (textgeom.Renderable, func(), error) {
	col, err := cfg.Text.RGBA()
	if err != nil {
		return nil, nil, err
	}
	opts := []textgeom.TextOption{
		textgeom.WithStyle(cfg.Text.Style()),
		textgeom.WithColor(col),
		textgeom.WithWrap(cfg.Text.Wrap),
	}
	family, err := cfg.Font.Family()
	if err != nil {
		return nil, nil, err
	}

	switch mode {
	case "atlas":
		af, err := textgeom.NewAtlasFont(family, atlasOptions(cfg)...)
		if err != nil {
			return nil, nil, err
		}
		t, err := textgeom.NewAtlasText(af, s, append(opts, textgeom.WithSize(cfg.Font.Size))...)
		if err != nil {
			_ = af.Close()
			return nil, nil, err
		}
		return t, func() { _ = af.Close() }, nil
	case "compiled", "dynamic":
	default:
		return nil, nil, fmt.Errorf("unknown mode %q", mode)
	}

	f, err := textgeom.NewFont(family, cfg.Font.Size)
	if err != nil {
		return nil, nil, err
	}
	release := func() { _ = f.Close() }
	if err := addImages(f, cfg.Font.Images); err != nil {
		release()
		return nil, nil, err
	}
	if mode == "compiled" {
		t, err := textgeom.NewCompiledText(f, s, opts...)
		if err != nil {
			release()
			return nil, nil, err
		}
		if err := t.Compile(); err != nil {
			release()
			return nil, nil, err
		}
		return t, release, nil
	}
	cache, err := textgeom.NewGlyphCache(f, textgeom.WithAlphabet(textgeom.DefaultAlphabet+printable(s)))
	if err != nil {
		release()
		return nil, nil, err
	}
	t, err := textgeom.NewDynamicText(cache, s, opts...)
	if err != nil {
		release()
		return nil, nil, err
	}
	return t, release, nil
}

// printable drops control characters such as newlines.
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func addImages(f *textgeom.Font, images []config.InlineImage) error {
	for _, img := range images {
		var (
			inline textgeom.InlineImage
			err    error
		)
		if strings.EqualFold(filepath.Ext(img.Path), ".gif") {
			inline, err = loadGIF(img.Path)
		} else {
			inline, err = textgeom.LoadPictureFile(img.Path)
		}
		if err != nil {
			return err
		}
		if err := f.AddImage(img.Token, inline); err != nil {
			return err
		}
	}
	return nil
}

func loadGIF(path string) (*textgeom.Animation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return textgeom.LoadGIF(f)
}

func atlasOptions(cfg config.Config) []textgeom.AtlasOption {
	opts := []textgeom.AtlasOption{
		textgeom.WithAtlasRasterSize(cfg.Atlas.RasterSize),
		textgeom.WithAtlasCanvas(cfg.Atlas.Canvas),
		textgeom.WithAtlasMaxCanvas(max(cfg.Atlas.MaxCanvas, cfg.Atlas.Canvas)),
		textgeom.WithAtlasPadding(cfg.Atlas.Padding),
	}
	// Validate has already checked the ranges.
	if alpha, _ := cfg.Atlas.Alphabet(); alpha != "" {
		opts = append(opts, textgeom.WithAtlasAlphabet(alpha))
	}
	return opts
}

// atlasMetrics is the YAML document written next to an atlas image.
type atlasMetrics struct {
	Image      string        `yaml:"image"`
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	RasterSize float64       `yaml:"raster_size"`
	Glyphs     []glyphMetric `yaml:"glyphs"`
}

type glyphMetric struct {
	Rune   string     `yaml:"rune"`
	X      int        `yaml:"x"`
	Y      int        `yaml:"y"`
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	UV     [4]float64 `yaml:"uv,flow"`
}

func runAtlas(args []string, stdout, stderr io.Writer) error {
	var (
		cm      common
		output  string
		metrics string
	)
	fs := pflag.NewFlagSet("atlas", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	cm.register(fs)
	fs.StringVarP(&output, "output", "o", "atlas.png", "Output PNG path")
	fs.StringVar(&metrics, "metrics", "", "Output YAML path (default: output with .yaml)")
	canvas := fs.Int("canvas", 0, "Initial canvas side in pixels")
	raster := fs.Float64("raster-size", 0, "Glyph raster size in pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := cm.load(stderr)
	if err != nil {
		return err
	}
	if fs.Changed("canvas") {
		cfg.Atlas.Canvas = *canvas
	}
	if fs.Changed("raster-size") {
		cfg.Atlas.RasterSize = *raster
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if metrics == "" {
		metrics = strings.TrimSuffix(output, filepath.Ext(output)) + ".yaml"
	}

	family, err := cfg.Font.Family()
	if err != nil {
		return err
	}
	af, err := textgeom.NewAtlasFont(family, atlasOptions(cfg)...)
	if err != nil {
		return err
	}
	defer af.Close()

	a := af.Atlas()
	if err := writePNG(output, a.Image()); err != nil {
		return err
	}
	doc := atlasMetrics{
		Image:      filepath.Base(output),
		Width:      a.Width(),
		Height:     a.Height(),
		RasterSize: af.RasterSize(),
	}
	for _, r := range a.Runes() {
		m, _ := a.Metric(r)
		doc.Glyphs = append(doc.Glyphs, glyphMetric{
			Rune:   string(r),
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
			UV:     [4]float64{m.U0, m.V0, m.U1, m.V1},
		})
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(metrics, data, 0o644); err != nil { //nolint:gosec // output file
		return err
	}
	fmt.Fprintf(stdout, "wrote %s (%dx%d, %d glyphs) and %s\n", output, a.Width(), a.Height(), a.Len(), metrics)
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
