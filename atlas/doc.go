// Package atlas packs rasterized glyphs into one texture and emits
// textured quad geometry for strings drawn from it.
//
// A Builder packs glyphs in greedy rows on a fixed canvas (512x512 by
// default) and records a GlyphMetric per character. Emit turns a string
// into six vertices per character, with synthetic bold widening and
// italic shear applied in geometry rather than in the texture:
//
//	a, err := atlas.NewBuilder().Build(alphabet, rasterize)
//	if errors.Is(err, atlas.ErrAtlasOverflow) {
//	    // alphabet does not fit the canvas
//	}
//	geom, err := atlas.Emit(a, "Hello", atlas.EmitOptions{CellSize: 32, Italic: true})
package atlas
