package font

import (
	"testing"

	"github.com/gogpu/goggles/internal/fonttest"
)

func TestGlyphRun_PreservesOrderAndDuplicates(t *testing.T) {
	s := &mockShaper{gids: map[rune]GlyphID{'A': 7, 'B': 7}}
	r := &mockRasterizer{}
	h := newTestHandle(KindSimple, s, r)

	run, err := h.GlyphRun("AB", ShapeOptions{}, false)
	if err != nil {
		t.Fatalf("GlyphRun() error = %v", err)
	}
	if len(run.Glyphs) != 2 {
		t.Fatalf("len(Glyphs) = %d, want 2", len(run.Glyphs))
	}
	for i, g := range run.Glyphs {
		if g.GID != 7 {
			t.Errorf("Glyphs[%d].GID = %d, want 7", i, g.GID)
		}
		if g.Cluster != i {
			t.Errorf("Glyphs[%d].Cluster = %d, want %d", i, g.Cluster, i)
		}
		if g.Drawing == nil {
			t.Errorf("Glyphs[%d].Drawing = nil", i)
		}
	}
	if run.Glyphs[0].Drawing != run.Glyphs[1].Drawing {
		t.Error("repeated glyph should share the cached drawing")
	}
	if r.calls != 1 {
		t.Errorf("rasterizer calls = %d, want 1", r.calls)
	}
}

func TestGlyphRun_Positions(t *testing.T) {
	s := &mockShaper{gids: map[rune]GlyphID{'a': 1, 'b': 2, 'c': 3}}
	h := newTestHandle(KindSimple, s, &mockRasterizer{})

	run, err := h.GlyphRun("abc", ShapeOptions{}, false)
	if err != nil {
		t.Fatalf("GlyphRun() error = %v", err)
	}
	for i, g := range run.Glyphs {
		if want := float64(500 * i); g.Pos.X != want {
			t.Errorf("Glyphs[%d].Pos.X = %v, want %v", i, g.Pos.X, want)
		}
	}
	if run.EndPos.X != 1500 {
		t.Errorf("EndPos.X = %v, want 1500", run.EndPos.X)
	}
	if run.UnitsPerEm != 1000 {
		t.Errorf("UnitsPerEm = %d, want 1000", run.UnitsPerEm)
	}
}

func TestGlyphRun_PassesOptions(t *testing.T) {
	s := &mockShaper{}
	h := newTestHandle(KindSimple, s, &mockRasterizer{})
	opts := ShapeOptions{
		Features:   map[string]uint32{"liga": 0},
		Variations: Location{"wght": 500},
		Direction:  DirectionRTL,
		Language:   "ar",
		Script:     "Arab",
	}

	if _, err := h.GlyphRun("x", opts, false); err != nil {
		t.Fatalf("GlyphRun() error = %v", err)
	}
	if s.last.Direction != DirectionRTL || s.last.Language != "ar" || s.last.Script != "Arab" {
		t.Errorf("shaper got %+v", s.last)
	}
	if !s.last.Variations.Equal(opts.Variations) {
		t.Errorf("shaper variations = %v, want %v", s.last.Variations, opts.Variations)
	}
	if got := h.Location(); !got.Equal(opts.Variations) {
		t.Errorf("Location() = %v, want %v", got, opts.Variations)
	}
}

func newColorHandle(t *testing.T) (*Handle, *mockRasterizer) {
	t.Helper()
	colr, err := decodeCOLR(fonttest.COLR(
		fonttest.BaseGlyph{GID: 10, Layers: []fonttest.Layer{{GID: 11, Palette: 0}, {GID: 12, Palette: 0xFFFF}, {GID: 13, Palette: 1}}},
	))
	if err != nil {
		t.Fatalf("decodeCOLR() error = %v", err)
	}
	r := &mockRasterizer{}
	h := newTestHandle(KindColorLayered, &mockShaper{gids: map[rune]GlyphID{'x': 10, 'y': 20}}, r)
	h.colr = colr
	return h, r
}

func TestGlyphRun_ColorLayerGating(t *testing.T) {
	h, _ := newColorHandle(t)

	plain, err := h.GlyphRun("xy", ShapeOptions{}, false)
	if err != nil {
		t.Fatalf("GlyphRun(colorLayers=false) error = %v", err)
	}
	for i, g := range plain.Glyphs {
		if g.Drawing.IsLayered() {
			t.Errorf("colorLayers=false: Glyphs[%d] is layered", i)
		}
		if g.Drawing.Outline.Segments[0].Points[0].X != float32(g.GID) {
			t.Errorf("colorLayers=false: Glyphs[%d] is not its own outline", i)
		}
	}

	color, err := h.GlyphRun("xy", ShapeOptions{}, true)
	if err != nil {
		t.Fatalf("GlyphRun(colorLayers=true) error = %v", err)
	}
	layered := color.Glyphs[0].Drawing
	if !layered.IsLayered() || len(layered.Layers) != 3 {
		t.Fatalf("colorLayers=true: want 3 layers, got %+v", layered)
	}
	wantGID := []float32{11, 12, 13}
	wantIndex := []int{0, Foreground, 1}
	for i, l := range layered.Layers {
		if x := l.Outline.Segments[0].Points[0].X; x != wantGID[i] {
			t.Errorf("layer %d outline of glyph %v, want %v", i, x, wantGID[i])
		}
		if l.ColorIndex != wantIndex[i] {
			t.Errorf("layer %d ColorIndex = %d, want %d", i, l.ColorIndex, wantIndex[i])
		}
	}
	if color.Glyphs[1].Drawing.IsLayered() {
		t.Error("glyph without COLR record should stay flat with colorLayers=true")
	}
}

func TestDrawing_Paint(t *testing.T) {
	h, _ := newColorHandle(t)
	d := collect(h, []GlyphID{10}, nil, true)[0]

	var order []int
	d.Paint(func(o *Outline, colorIndex int) {
		order = append(order, colorIndex)
	})
	if len(order) != 3 || order[0] != 0 || order[1] != Foreground || order[2] != 1 {
		t.Errorf("paint order = %v, want [0 -1 1]", order)
	}

	flat := collect(h, []GlyphID{10}, nil, false)[0]
	order = order[:0]
	flat.Paint(func(o *Outline, colorIndex int) {
		order = append(order, colorIndex)
	})
	if len(order) != 1 || order[0] != Foreground {
		t.Errorf("flat paint order = %v, want [-1]", order)
	}
}

func TestColorPalettes_DefaultBlack(t *testing.T) {
	h := newTestHandle(KindSimple, &mockShaper{}, &mockRasterizer{})

	palettes := h.ColorPalettes()
	if len(palettes) != 1 {
		t.Fatalf("len(palettes) = %d, want 1", len(palettes))
	}
	if len(palettes[0]) != 1 {
		t.Fatalf("len(palettes[0]) = %d, want 1", len(palettes[0]))
	}
	if palettes[0][0] != (Color{R: 0, G: 0, B: 0, A: 1}) {
		t.Errorf("palettes[0][0] = %+v, want opaque black", palettes[0][0])
	}
}

func TestColorPalettes_ReturnsCopies(t *testing.T) {
	h := newTestHandle(KindSimple, &mockShaper{}, &mockRasterizer{})
	h.ColorPalettes()[0][0] = Color{R: 1, A: 1}
	if h.ColorPalettes()[0][0] != Black {
		t.Error("ColorPalettes exposed internal state")
	}
}

func TestGlyphRun_Bounds(t *testing.T) {
	s := &mockShaper{gids: map[rune]GlyphID{'a': 1, 'b': 2}}
	h := newTestHandle(KindSimple, s, &mockRasterizer{})

	run, err := h.GlyphRun("ab", ShapeOptions{Variations: Location{"wght": 50}}, false)
	if err != nil {
		t.Fatalf("GlyphRun() error = %v", err)
	}
	b := run.Bounds()
	// glyph 1 spans x 1..11 at pen 0, glyph 2 spans x 2..12 at pen 500
	if b.MinX != 1 || b.MaxX != 512 || b.MinY != 50 || b.MaxY != 100 {
		t.Errorf("Bounds() = %+v", b)
	}
}
