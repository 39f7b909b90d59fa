// Package font implements the glyph rendering pipeline of goggles.
//
// A Handle wraps one logical font from a container (a single TTF/OTF,
// a web font wrapper, or one member of a TTC/OTC collection) and exposes
// shaping, glyph run assembly and cached outline resolution:
//
//   - Shaper: converts text into positioned glyph IDs (default: go-text HarfBuzz)
//   - Rasterizer: converts a glyph ID at a variation location into an Outline
//   - GlyphProgram: draws glyphs of variable color fonts procedurally
//
// # Example usage
//
//	data := font.NewSharedData(raw)
//	defer data.Release()
//
//	h, err := font.Load(ctx, data, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer h.Close()
//
//	run, err := h.GlyphRun("Hello", font.ShapeOptions{
//	    Variations: font.Location{"wght": 700},
//	}, true)
//
// # Outline cache
//
// Resolved drawings are cached per handle in two partitions, one for plain
// outlines and one for color layer lists. The cache is valid for exactly one
// variation location at a time: a request under a different location purges
// both partitions before the first lookup.
//
// # Concurrency
//
// A Handle is not safe for concurrent use. Independent handles may be used
// from different goroutines, including handles that share one SharedData.
package font
