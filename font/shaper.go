package font

// ShapeOptions are the per-call shaping parameters. Each field defaults
// independently: a zero value leaves the choice to the engine.
type ShapeOptions struct {
	// Features maps feature tags to values (0 disables, 1 enables, larger
	// values select alternates). Nil applies the engine's default features.
	Features map[string]uint32

	// Variations is the design-space location to shape and draw at.
	Variations Location

	// Direction of the text; DirectionAuto detects from the first strong character.
	Direction Direction

	// Language is a BCP 47 tag such as "en" or "tr"; empty detects.
	Language string

	// Script is an ISO 15924 tag such as "Latn" or "Arab"; empty detects
	// from the text.
	Script string
}

// ShapedGlyph is one glyph of Shaper output, in font units.
type ShapedGlyph struct {
	GID GlyphID

	// Cluster is the rune index of the source text this glyph belongs to.
	Cluster int

	// XAdvance, YAdvance move the pen after this glyph.
	XAdvance, YAdvance float64

	// XOffset, YOffset displace this glyph from the pen position.
	XOffset, YOffset float64
}

// Shaper converts text into positioned glyph IDs.
//
// A Shaper is owned by one Handle. Each Shape call must be independently
// parameterized: options of one call never leak into the next.
type Shaper interface {
	// Shape returns glyphs in visual order, positioned in font units.
	Shape(text string, opts ShapeOptions) ([]ShapedGlyph, error)
}

// Rasterizer converts glyph IDs into outlines at a variation location.
// A Rasterizer is owned by one Handle.
type Rasterizer interface {
	// SetLocation moves the rasterizer to a new design-space location.
	SetLocation(loc Location)

	// Outline returns the outline of gid at the current location, or an
	// error wrapping ErrUnresolvableGlyph if the glyph has none.
	Outline(gid GlyphID) (*Outline, error)
}

// GlyphProgram draws glyphs of variable color fonts, whose geometry is
// produced procedurally from the location rather than looked up.
type GlyphProgram interface {
	Draw(gid GlyphID, loc Location) (*Outline, error)
}

// GlyphNamer maps glyph IDs to glyph names.
type GlyphNamer interface {
	GlyphName(gid GlyphID) string
}

// closer is implemented by engines that hold releasable resources.
type closer interface {
	Close() error
}

// rasterProgram is the default GlyphProgram: it draws through the
// rasterizer, which resolves variable composites at the current location.
type rasterProgram struct {
	r Rasterizer
}

func (p rasterProgram) Draw(gid GlyphID, _ Location) (*Outline, error) {
	return p.r.Outline(gid)
}
