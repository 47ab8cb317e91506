// Package textgeom turns strings into drawable geometry.
//
// A [Font] owns a rasterizer for one family at one size and the inline
// images that may replace tokens in its text. Three text objects draw
// with it, trading update cost against draw cost:
//
//   - [CompiledText] rasterizes each line run as one image and can record
//     the runs into a draw list that is replayed every frame.
//   - [DynamicText] clones prerasterized glyphs from a [GlyphCache], so
//     changing the text or color is cheap.
//   - [AtlasText] emits textured quads sampled from an [AtlasFont], so many
//     strings share one texture and restyle without rasterizing.
//
// Everything draws to a render.Device: the software device, a recording
// device, or the gpucanvas integration.
//
// Quick start:
//
//	font, err := textgeom.DefaultFont(24)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	t, err := textgeom.NewCompiledText(font, "Hello,\nworld", textgeom.WithWrap(200))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dev := render.NewSoftware(320, 200)
//	if err := t.Render(dev); err != nil {
//	    log.Fatal(err)
//	}
//
// Logging is silent by default; see [SetLogger].
package textgeom
