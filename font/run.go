package font

// Vec is a 2D vector in font units.
type Vec struct {
	X, Y float64
}

// GlyphInfo is one shaped glyph of a GlyphRun.
type GlyphInfo struct {
	GID  GlyphID
	Name string

	// Cluster is the rune index of the source text this glyph belongs to.
	Cluster int

	// AX, AY are the advance; DX, DY the placement offset.
	AX, AY float64
	DX, DY float64

	// Pos is where the glyph origin is drawn: the pen position plus the
	// placement offset.
	Pos Vec

	// Drawing is the resolved geometry; nil for runs returned by Shape.
	Drawing *Drawing
}

// GlyphRun is the shaped, resolved form of one text under one set of
// shaping parameters. Glyphs are in shaping engine output (visual) order.
type GlyphRun struct {
	Glyphs     []GlyphInfo
	UnitsPerEm int

	// EndPos is the pen position after the last glyph.
	EndPos Vec
}

// GIDs returns the glyph IDs of the run in order, duplicates included.
func (r *GlyphRun) GIDs() []GlyphID {
	gids := make([]GlyphID, len(r.Glyphs))
	for i, g := range r.Glyphs {
		gids[i] = g.GID
	}
	return gids
}

// Bounds returns the union of all glyph drawings placed at their positions.
func (r *GlyphRun) Bounds() Rect {
	var b Rect
	for _, g := range r.Glyphs {
		db := g.Drawing.Bounds()
		if db.Empty() {
			continue
		}
		b = b.Union(Rect{
			MinX: db.MinX + g.Pos.X,
			MinY: db.MinY + g.Pos.Y,
			MaxX: db.MaxX + g.Pos.X,
			MaxY: db.MaxY + g.Pos.Y,
		})
	}
	return b
}

// Shape shapes text without resolving outlines. Every ShapeOptions field
// defaults independently to engine behavior.
func (h *Handle) Shape(text string, opts ShapeOptions) (*GlyphRun, error) {
	h.copyCheck()
	if h.closed {
		return nil, ErrClosed
	}
	shaped, err := h.shaper.Shape(text, opts)
	if err != nil {
		return nil, err
	}

	run := &GlyphRun{
		Glyphs:     make([]GlyphInfo, len(shaped)),
		UnitsPerEm: h.upem,
	}
	var pen Vec
	for i, g := range shaped {
		run.Glyphs[i] = GlyphInfo{
			GID:     g.GID,
			Name:    h.GlyphName(g.GID),
			Cluster: g.Cluster,
			AX:      g.XAdvance,
			AY:      g.YAdvance,
			DX:      g.XOffset,
			DY:      g.YOffset,
			Pos:     Vec{X: pen.X + g.XOffset, Y: pen.Y + g.YOffset},
		}
		pen.X += g.XAdvance
		pen.Y += g.YAdvance
	}
	run.EndPos = pen
	return run, nil
}

// GlyphRun shapes text and attaches a drawing to every glyph, resolved at
// opts.Variations through the outline cache. The run has exactly one entry
// per shaped glyph in shaped order; repeated glyph IDs become independent
// entries that may share one cached Drawing.
func (h *Handle) GlyphRun(text string, opts ShapeOptions, colorLayers bool) (*GlyphRun, error) {
	run, err := h.Shape(text, opts)
	if err != nil {
		return nil, err
	}
	i := 0
	for d := range h.OutlinePaths(run.GIDs(), opts.Variations, colorLayers) {
		run.Glyphs[i].Drawing = d
		i++
	}
	return run, nil
}
