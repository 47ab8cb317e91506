// Package text turns strings into measured lines and alpha masks.
//
// The pipeline has three stages:
//
//   - FontSource / Family: parsed font files (pluggable FontParser backend,
//     golang.org/x/image by default). A Family holds up to four sources;
//     missing bold or italic variants are synthesized.
//   - Tokenize / TokenizePlain: normalized text split into characters,
//     inline image tokens and newlines.
//   - BreakLines: greedy word wrapping into a Layout of placed tokens.
//
// A Rasterizer measures and rasterizes strings for all variants of a Family
// at one pixel size:
//
//	family, _ := text.DefaultFamily()
//	r, err := text.NewRasterizer(family, 24)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	layout := text.BreakLines(text.TokenizePlain("hello world"), m, text.BreakOptions{MaxWidth: 200})
//	bmp, _ := r.Rasterize("hello", text.Style{Bold: true})
//
// Glyph coverage of a source can be checked against an alphabet with
// MissingRunes, which uses github.com/go-text/typesetting.
package text
