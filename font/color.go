package font

import "image/color"

// Foreground is the ColorLayer.ColorIndex of a layer drawn in the
// foreground (text) color instead of a palette entry.
const Foreground = -1

// Color is a non-premultiplied RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Black is opaque black, the single entry of the default palette.
var Black = Color{R: 0, G: 0, B: 0, A: 1}

// RGBA implements color.Color. The returned values are alpha-premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(clamp01(c.A)*0xffff + 0.5)
	r = uint32(clamp01(c.R)*clamp01(c.A)*0xffff + 0.5)
	g = uint32(clamp01(c.G)*clamp01(c.A)*0xffff + 0.5)
	b = uint32(clamp01(c.B)*clamp01(c.A)*0xffff + 0.5)
	return r, g, b, a
}

// NRGBA returns the color as 8-bit non-premultiplied RGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

// Palette is an ordered list of colors addressed by ColorLayer.ColorIndex.
type Palette []Color

// Resolve returns the color for a layer color index. Foreground and
// out-of-range indices resolve to fg.
func (p Palette) Resolve(index int, fg Color) Color {
	if index < 0 || index >= len(p) {
		return fg
	}
	return p[index]
}

// defaultPalettes is reported by fonts without a CPAL table.
func defaultPalettes() []Palette {
	return []Palette{{Black}}
}

// ColorLayer is one layer of a layered drawing: an outline painted with a
// palette color index or Foreground.
type ColorLayer struct {
	Outline    *Outline
	ColorIndex int
}

// IsForeground returns true if this layer uses the foreground color.
func (l ColorLayer) IsForeground() bool {
	return l.ColorIndex < 0
}

// Drawing is the resolved geometry of one glyph.
//
// A flat drawing has Outline set and no Layers. A layered drawing has
// Layers in painter's order (index 0 drawn first) and a nil Outline.
// Drawings returned by a Handle are shared cache entries and must not be
// modified.
type Drawing struct {
	GID     GlyphID
	Outline *Outline
	Layers  []ColorLayer
}

// IsLayered reports whether d is a layer list rather than a flat outline.
func (d *Drawing) IsLayered() bool {
	return d != nil && d.Layers != nil
}

// IsEmpty reports whether d paints nothing.
func (d *Drawing) IsEmpty() bool {
	if d == nil {
		return true
	}
	if d.IsLayered() {
		for _, l := range d.Layers {
			if !l.Outline.IsEmpty() {
				return false
			}
		}
		return true
	}
	return d.Outline.IsEmpty()
}

// Paint calls fn for every outline of d in painter's order. A flat
// drawing is painted once with Foreground.
func (d *Drawing) Paint(fn func(o *Outline, colorIndex int)) {
	if d == nil {
		return
	}
	if d.IsLayered() {
		for _, l := range d.Layers {
			fn(l.Outline, l.ColorIndex)
		}
		return
	}
	fn(d.Outline, Foreground)
}

// Bounds returns the union of all outline bounds of d.
func (d *Drawing) Bounds() Rect {
	var r Rect
	d.Paint(func(o *Outline, _ int) {
		if o != nil {
			r = r.Union(o.Bounds)
		}
	})
	return r
}
