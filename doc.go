// Package goggles opens font files for preview: it dispatches a path to
// the opener for its format, shares collection bytes between members,
// and hands out font.Handle values that shape text into glyph runs.
//
// # Quick Start
//
//	import "github.com/gogpu/goggles"
//
//	h, err := goggles.Open(ctx, goggles.FontKey{Path: "Inter.ttc", Index: 1})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer h.Close()
//
//	run, err := h.GlyphRun("Hello", font.ShapeOptions{
//	    Variations: font.Location{"wght": 700},
//	}, true)
//
// # Formats
//
// Binary fonts (ttf, otf, woff, woff2, ttc, otc) are loaded directly.
// Source formats (ttx, ufo, ufos) are compiled with the fonttools
// toolchain first; see the internal/compile package.
//
// # Collections
//
// Members of one TTC/OTC file share a single reference-counted buffer
// (font.SharedData). Pass the buffer returned by Opener.Open to the next
// member's Open, or share a font.DataPool with WithPool, and the file is
// read once. The bytes live until the last member is closed.
//
// # Logging
//
// goggles is silent by default. Call SetLogger to enable structured
// logging for goggles and the font package.
package goggles
