package preview

import (
	"image/color"
	"testing"

	"github.com/gogpu/goggles/font"
)

func box(x0, y0, x1, y1 float32) *font.Outline {
	o := &font.Outline{Segments: []font.Segment{
		{Op: font.OpMoveTo, Points: [3]font.Point{{X: x0, Y: y0}}},
		{Op: font.OpLineTo, Points: [3]font.Point{{X: x1, Y: y0}}},
		{Op: font.OpLineTo, Points: [3]font.Point{{X: x1, Y: y1}}},
		{Op: font.OpLineTo, Points: [3]font.Point{{X: x0, Y: y1}}},
	}}
	o.Bounds = font.Rect{MinX: float64(x0), MinY: float64(y0), MaxX: float64(x1), MaxY: float64(y1)}
	return o
}

func countColor(t *testing.T, run *font.GlyphRun, palette font.Palette, want color.RGBA) int {
	t.Helper()
	img := Render(run, palette, Options{PixelsPerEm: 100})
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == want {
				n++
			}
		}
	}
	return n
}

func TestRender_FlatGlyph(t *testing.T) {
	run := &font.GlyphRun{
		UnitsPerEm: 1000,
		EndPos:     font.Vec{X: 1000},
		Glyphs: []font.GlyphInfo{{
			Drawing: &font.Drawing{Outline: box(0, 0, 500, 500)},
		}},
	}
	img := Render(run, nil, Options{PixelsPerEm: 100})
	if got := img.Bounds().Dx(); got != 100 {
		t.Errorf("width = %d, want 100", got)
	}
	if got := img.Bounds().Dy(); got != 125 {
		t.Errorf("height = %d, want 125", got)
	}

	black := countColor(t, run, nil, color.RGBA{A: 0xff})
	// A 50x50 pixel square.
	if black < 2400 || black > 2600 {
		t.Errorf("black pixels = %d, want about 2500", black)
	}
	// Baseline is 100px from the top; the square sits above it.
	if c := img.RGBAAt(25, 75); c != (color.RGBA{A: 0xff}) {
		t.Errorf("pixel inside glyph = %v, want black", c)
	}
	if c := img.RGBAAt(25, 110); c != (color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Errorf("pixel below baseline = %v, want white", c)
	}
}

func TestRender_ColorLayers(t *testing.T) {
	palette := font.Palette{{R: 1, A: 1}, {B: 1, A: 1}}
	run := &font.GlyphRun{
		UnitsPerEm: 1000,
		EndPos:     font.Vec{X: 1000},
		Glyphs: []font.GlyphInfo{{
			Drawing: &font.Drawing{Layers: []font.ColorLayer{
				{Outline: box(0, 0, 500, 500), ColorIndex: 0},
				{Outline: box(500, 0, 1000, 500), ColorIndex: 1},
				{Outline: box(0, 500, 500, 1000), ColorIndex: font.Foreground},
			}},
		}},
	}
	for _, tt := range []struct {
		name string
		want color.RGBA
	}{
		{"red", color.RGBA{R: 0xff, A: 0xff}},
		{"blue", color.RGBA{B: 0xff, A: 0xff}},
		{"foreground", color.RGBA{A: 0xff}},
	} {
		if n := countColor(t, run, palette, tt.want); n < 2000 {
			t.Errorf("%s pixels = %d, want about 2500", tt.name, n)
		}
	}
}

func TestRender_EmptyRun(t *testing.T) {
	img := Render(&font.GlyphRun{UnitsPerEm: 2048}, nil, Options{Margin: 4})
	if img.Bounds().Empty() {
		t.Error("empty run produced an empty image")
	}
}
