// Package preview rasterizes glyph runs into images.
package preview

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/goggles/font"
)

// Options controls Render.
type Options struct {
	// PixelsPerEm is the rendered size; zero means 64.
	PixelsPerEm float64

	// Margin is the padding in pixels around the run.
	Margin int

	// Foreground fills flat glyphs and foreground color layers.
	// A zero value means opaque black.
	Foreground font.Color

	// Background fills the image. A nil value means opaque white.
	Background color.Color
}

const defaultPixelsPerEm = 64

// Render draws run with the colors of palette. Font units are scaled to
// opts.PixelsPerEm and y is flipped so the image grows downward. Layers
// are painted in order, each with its palette color or the foreground.
func Render(run *font.GlyphRun, palette font.Palette, opts Options) *image.RGBA {
	ppem := opts.PixelsPerEm
	if ppem <= 0 {
		ppem = defaultPixelsPerEm
	}
	fg := opts.Foreground
	if fg == (font.Color{}) {
		fg = font.Black
	}
	var bg color.Color = color.White
	if opts.Background != nil {
		bg = opts.Background
	}

	upem := float64(run.UnitsPerEm)
	if upem <= 0 {
		upem = 1000
	}
	scale := ppem / upem

	// The frame always spans the pen travel and at least one em of
	// height above the baseline.
	frame := font.Rect{MinX: 0, MinY: -0.25 * upem, MaxX: max(run.EndPos.X, 1), MaxY: upem}
	frame = frame.Union(run.Bounds())

	m := float64(opts.Margin)
	w := int(math.Ceil(frame.Width()*scale + 2*m))
	h := int(math.Ceil(frame.Height()*scale + 2*m))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	// Font space to pixel space.
	toPx := font.Translate(float32(-frame.MinX), float32(-frame.MaxY)).
		Then(font.Scale(float32(scale), float32(-scale))).
		Then(font.Translate(float32(m), float32(m)))

	rast := vector.NewRasterizer(w, h)
	for _, g := range run.Glyphs {
		at := font.Translate(float32(g.Pos.X), float32(g.Pos.Y)).Then(toPx)
		g.Drawing.Paint(func(o *font.Outline, colorIndex int) {
			if o.IsEmpty() {
				return
			}
			rast.Reset(w, h)
			rast.DrawOp = draw.Over
			fill(rast, o, at)
			c := palette.Resolve(colorIndex, fg)
			rast.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
		})
	}
	return img
}

func fill(rast *vector.Rasterizer, o *font.Outline, m font.Affine) {
	open := false
	for _, seg := range o.Segments {
		var p [3]font.Point
		for i := 0; i < seg.Op.PointCount(); i++ {
			x, y := m.Apply(seg.Points[i].X, seg.Points[i].Y)
			p[i] = font.Point{X: x, Y: y}
		}
		switch seg.Op {
		case font.OpMoveTo:
			if open {
				rast.ClosePath()
			}
			rast.MoveTo(p[0].X, p[0].Y)
			open = true
		case font.OpLineTo:
			rast.LineTo(p[0].X, p[0].Y)
		case font.OpQuadTo:
			rast.QuadTo(p[0].X, p[0].Y, p[1].X, p[1].Y)
		case font.OpCubicTo:
			rast.CubeTo(p[0].X, p[0].Y, p[1].X, p[1].Y, p[2].X, p[2].Y)
		}
	}
	if open {
		rast.ClosePath()
	}
}
