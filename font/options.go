package font

// config holds the construction options of a Handle.
type config struct {
	path       string
	shaper     Shaper
	rasterizer Rasterizer
	program    GlyphProgram
	namer      GlyphNamer
}

// Option configures Load.
type Option func(*config)

// WithPath records the file path the font was read from; it becomes
// Key().Path. Without it the key path is empty.
func WithPath(path string) Option {
	return func(c *config) {
		c.path = path
	}
}

// WithShaper replaces the go-text shaping engine.
func WithShaper(s Shaper) Option {
	return func(c *config) {
		c.shaper = s
	}
}

// WithRasterizer replaces the go-text outline extractor.
func WithRasterizer(r Rasterizer) Option {
	return func(c *config) {
		c.rasterizer = r
	}
}

// WithGlyphProgram sets the program that draws glyphs of variable color
// fonts. The default draws through the Rasterizer.
func WithGlyphProgram(p GlyphProgram) Option {
	return func(c *config) {
		c.program = p
	}
}

// WithGlyphNamer replaces the post/CFF glyph name lookup.
func WithGlyphNamer(n GlyphNamer) Option {
	return func(c *config) {
		c.namer = n
	}
}
