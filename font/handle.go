package font

import (
	"bytes"
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"

	"github.com/gogpu/goggles/internal/sfntmeta"
)

// Handle is one opened logical font. It owns its shaping engine,
// rasterizer, decoded tables and outline cache, and holds a reference to
// the font bytes, which may be shared with other members of the same
// collection.
//
// A Handle is created whole by Load and released whole by Close; there is
// no partially constructed or partially destroyed state.
//
// A Handle is not safe for concurrent use.
// A Handle must not be copied after creation (enforced by copyCheck).
type Handle struct {
	// addr is used for copy protection.
	// It must point to the Handle itself.
	addr *Handle

	key    Key
	kind   Kind
	member bool
	upem   int
	data   *SharedData

	shaper  Shaper
	raster  Rasterizer
	program GlyphProgram
	namer   GlyphNamer

	colr     *colrTable
	palettes []Palette
	axes     []Axis
	layout   layoutLists

	cache  outlineCache
	closed bool
}

// Load constructs a Handle for font index of data.
//
// Load takes its own reference to data; the caller keeps (and eventually
// releases) its own. WOFF and WOFF2 input is unwrapped into a private
// buffer first. Malformed input fails with an error wrapping
// ErrMalformedFontData, an invalid index with *IndexError. If ctx is
// cancelled before Load returns, everything acquired is released and
// ctx.Err() is returned.
func Load(ctx context.Context, data *SharedData, index int, opts ...Option) (*Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if data == nil {
		return nil, fmt.Errorf("%w: nil font data", ErrMalformedFontData)
	}

	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := data.Acquire(); err != nil {
		return nil, err
	}
	owned := data
	success := false
	defer func() {
		if !success {
			owned.Release()
		}
	}()

	raw, converted, err := Normalize(data.Bytes())
	if err != nil {
		return nil, err
	}
	if converted {
		data.Release()
		owned = NewSharedData(raw)
	}

	loaders, err := ot.NewLoaders(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFontData, err)
	}
	if index < 0 || index >= len(loaders) {
		return nil, &IndexError{Index: index, Count: len(loaders)}
	}
	ld := loaders[index]

	ft, err := font.NewFont(ld)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFontData, err)
	}

	h := &Handle{
		key:     Key{Path: cfg.path, Index: index},
		member:  Sniff(raw) == ContainerCollection,
		upem:    int(ft.Upem()),
		shaper:  cfg.shaper,
		raster:  cfg.rasterizer,
		program: cfg.program,
		namer:   cfg.namer,
		cache:   newOutlineCache(),
	}
	h.addr = h

	if err := h.decodeTables(ld, ft); err != nil {
		return nil, err
	}

	if h.shaper == nil {
		h.shaper = NewGoTextShaper(ft)
	}
	if h.raster == nil {
		h.raster = NewGoTextRasterizer(ft)
	}
	if h.program == nil {
		h.program = rasterProgram{r: h.raster}
	}
	if h.namer == nil {
		if n, err := newSFNTNamer(raw, index); err == nil {
			h.namer = n
		} else {
			slogger().Debug("font: glyph names unavailable", "key", h.key, "error", err)
		}
	}

	if err := ctx.Err(); err != nil {
		h.closeEngines()
		return nil, err
	}

	h.data = owned
	success = true
	slogger().Info("font: handle opened", "key", h.key, "kind", h.kind, "collection", h.member, "upem", h.upem)
	return h, nil
}

// variableComponentTags are the table tags that mark variable composite
// glyphs: the registered OpenType VARC and the rcjktools prototype VarC.
var variableComponentTags = []string{"VARC", "VarC"}

// decodeTables reads COLR, CPAL, fvar, GSUB, GPOS and VARC to settle the
// kind and the metadata lists.
func (h *Handle) decodeTables(ld *ot.Loader, ft *font.Font) error {
	table := func(tag string) []byte {
		b, err := ld.RawTable(ot.MustNewTag(tag))
		if err != nil {
			return nil
		}
		return b
	}

	h.kind = KindSimple
	if colr := table("COLR"); colr != nil {
		t, err := decodeCOLR(colr)
		if err != nil {
			return err
		}
		h.colr = t
		h.kind = KindColorLayered
	}
	for _, tag := range variableComponentTags {
		if table(tag) != nil {
			h.kind = KindVariableColor
			if h.program == nil {
				slogger().Info("font: variable composites drawn as stored outlines", "key", h.key, "table", tag)
			}
			break
		}
	}

	h.palettes = defaultPalettes()
	if cpal := table("CPAL"); cpal != nil {
		palettes, err := decodeCPAL(cpal)
		switch {
		case err != nil:
			slogger().Warn("font: ignoring CPAL table", "key", h.key, "error", err)
		case len(palettes) > 0:
			h.palettes = palettes
		}
	}

	if fvar := table("fvar"); fvar != nil {
		axes, err := decodeFvar(fvar)
		if err != nil {
			return err
		}
		h.axes = axes
		h.resolveAxisNames(sfntmeta.FromLoader(ld))
	}

	h.layout = layoutListsOf(ft)
	return nil
}

// resolveAxisNames fills Axis.Name from the name table. Axes whose name
// cannot be read keep their tag as name.
func (h *Handle) resolveAxisNames(meta *sfntmeta.Table) {
	for i, a := range h.axes {
		if name, ok := meta.Name(a.NameID); ok {
			h.axes[i].Name = name
		}
	}
}

// Key returns the path and index the font was loaded from.
func (h *Handle) Key() Key {
	h.copyCheck()
	return h.key
}

// Kind returns the outline representation of the font.
func (h *Handle) Kind() Kind {
	h.copyCheck()
	return h.kind
}

// IsCollectionMember reports whether the font comes from a TTC/OTC
// container whose bytes may be shared with other handles.
func (h *Handle) IsCollectionMember() bool {
	h.copyCheck()
	return h.member
}

// UnitsPerEm returns the design grid size of the font.
func (h *Handle) UnitsPerEm() int {
	h.copyCheck()
	return h.upem
}

// Location returns a copy of the location the outline cache is valid for.
func (h *Handle) Location() Location {
	h.copyCheck()
	return h.cache.loc.Clone()
}

// CacheStats returns outline cache counters.
func (h *Handle) CacheStats() CacheStats {
	h.copyCheck()
	return h.cache.snapshot()
}

// Axes returns the variation axes, or nil for non-variable fonts.
func (h *Handle) Axes() []Axis {
	h.copyCheck()
	if h.closed {
		return nil
	}
	return slices.Clone(h.axes)
}

// Features returns the sorted union of GSUB and GPOS feature tags.
func (h *Handle) Features() []string {
	h.copyCheck()
	if h.closed {
		return nil
	}
	return slices.Clone(h.layout.features)
}

// Scripts returns the sorted script tags declared by GSUB and GPOS.
func (h *Handle) Scripts() []string {
	h.copyCheck()
	if h.closed {
		return nil
	}
	return slices.Clone(h.layout.scripts)
}

// Languages returns the sorted language system tags declared by GSUB and GPOS.
func (h *Handle) Languages() []string {
	h.copyCheck()
	if h.closed {
		return nil
	}
	return slices.Clone(h.layout.languages)
}

// ColorPalettes returns all CPAL palettes, or a single palette holding
// opaque black if the font declares none.
func (h *Handle) ColorPalettes() []Palette {
	h.copyCheck()
	if h.closed {
		return nil
	}
	out := make([]Palette, len(h.palettes))
	for i, p := range h.palettes {
		out[i] = slices.Clone(p)
	}
	return out
}

// Palettes is an alias for ColorPalettes.
func (h *Handle) Palettes() []Palette {
	return h.ColorPalettes()
}

// GlyphName returns the stored name of gid, or a synthetic "glyphNNNNN".
func (h *Handle) GlyphName(gid GlyphID) string {
	h.copyCheck()
	if h.namer == nil {
		return fallbackGlyphName(gid)
	}
	return h.namer.GlyphName(gid)
}

// OutlinePaths returns a lazy sequence with one drawing per glyph ID, in
// input order, resolved under loc.
//
// The sequence is single-pass: ranging over it a second time yields
// nothing; call OutlinePaths again to restart. Before each lookup the
// cache is synced to loc, so a location that differs by value from the
// current one purges both cache partitions before the first glyph is
// resolved.
func (h *Handle) OutlinePaths(gids []GlyphID, loc Location, colorLayers bool) iter.Seq[*Drawing] {
	h.copyCheck()
	gids = slices.Clone(gids)
	loc = loc.Clone()
	used := false
	return func(yield func(*Drawing) bool) {
		if used {
			return
		}
		used = true
		for _, gid := range gids {
			if h.closed {
				return
			}
			h.setLocation(loc)
			if !yield(h.drawing(gid, colorLayers)) {
				return
			}
		}
	}
}

// setLocation syncs the cache and the rasterizer to loc.
func (h *Handle) setLocation(loc Location) {
	from := h.cache.loc
	if !h.cache.sync(loc) {
		return
	}
	h.raster.SetLocation(h.cache.loc)
	slogger().Debug("font: outline cache purged", "key", h.key, "from", from.String(), "to", loc.String())
}

// drawing returns the cached drawing of gid, resolving it on a miss.
func (h *Handle) drawing(gid GlyphID, colorLayers bool) *Drawing {
	if d, ok := h.cache.get(gid, colorLayers); ok {
		return d
	}
	d := h.resolve(gid, colorLayers)
	h.cache.put(gid, colorLayers, d)
	return d
}

// resolve applies the drawing rules, first match wins:
// variable color fonts draw procedurally as one foreground layer; color
// layered fonts return their layer list when colorLayers is set and the
// glyph has one; everything else is a plain outline.
func (h *Handle) resolve(gid GlyphID, colorLayers bool) *Drawing {
	switch h.kind {
	case KindVariableColor:
		o, err := h.program.Draw(gid, h.cache.loc.Clone())
		return &Drawing{GID: gid, Layers: []ColorLayer{{
			Outline:    h.checkOutline(gid, o, err),
			ColorIndex: Foreground,
		}}}
	case KindColorLayered:
		if recs, ok := h.colr.layersFor(gid); ok && colorLayers {
			layers := make([]ColorLayer, len(recs))
			for i, rec := range recs {
				layers[i] = ColorLayer{
					Outline:    h.outline(GlyphID(rec.glyphID)),
					ColorIndex: colorIndex(rec.paletteIndex),
				}
			}
			return &Drawing{GID: gid, Layers: layers}
		}
	case KindSimple:
	}
	return &Drawing{GID: gid, Outline: h.outline(gid)}
}

func (h *Handle) outline(gid GlyphID) *Outline {
	o, err := h.raster.Outline(gid)
	return h.checkOutline(gid, o, err)
}

// checkOutline turns resolution failures into an empty outline.
func (h *Handle) checkOutline(gid GlyphID, o *Outline, err error) *Outline {
	if err != nil {
		slogger().Debug("font: unresolvable glyph", "key", h.key, "gid", gid, "error", err)
		return &Outline{}
	}
	if o == nil {
		return &Outline{}
	}
	return o
}

func colorIndex(paletteIndex uint16) int {
	if paletteIndex == foregroundPaletteIndex {
		return Foreground
	}
	return int(paletteIndex)
}

// Close releases the engines, the cache and the reference to the font
// bytes. Calling Close more than once is a no-op.
func (h *Handle) Close() error {
	h.copyCheck()
	if h.closed {
		return nil
	}
	h.closed = true
	err := h.closeEngines()
	h.cache.clear()
	h.colr = nil
	if h.data != nil {
		h.data.Release()
		h.data = nil
	}
	slogger().Info("font: handle closed", "key", h.key)
	return err
}

// closeEngines closes every engine that holds resources.
func (h *Handle) closeEngines() error {
	var first error
	for _, e := range []any{h.shaper, h.raster, h.program, h.namer} {
		if c, ok := e.(closer); ok {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

// copyCheck panics if Handle was copied by value.
func (h *Handle) copyCheck() {
	if h.addr != h {
		panic("font: Handle must not be copied by value")
	}
}
