package font

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// defaultLanguage is used when neither the caller nor the text decides.
var defaultLanguage = language.NewLanguage("en")

// GoTextShaper shapes with go-text/typesetting's HarfBuzz port.
//
// HarfbuzzShaper binds its internal font to the first Face it sees for a
// given font.Font, so the shaper keeps a single Face and resets its
// coordinates before every call. A call without variations shapes at the
// default location. GoTextShaper is not safe for concurrent use.
type GoTextShaper struct {
	font *font.Font
	face *font.Face
	upem fixed.Int26_6
	hb   shaping.HarfbuzzShaper
}

// NewGoTextShaper creates a shaper for ft. Output is in font units.
func NewGoTextShaper(ft *font.Font) *GoTextShaper {
	return &GoTextShaper{
		font: ft,
		face: font.NewFace(ft),
		upem: floatToFixed(float64(ft.Upem())),
	}
}

// Shape implements the Shaper interface.
func (s *GoTextShaper) Shape(text string, opts ShapeOptions) ([]ShapedGlyph, error) {
	if s.font == nil {
		return nil, ErrClosed
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}

	if vars := opts.Variations.variations(); len(vars) > 0 {
		s.face.SetVariations(vars)
	} else {
		s.face.SetCoords(nil)
	}

	dir := opts.Direction
	if dir == DirectionAuto {
		dir = detectDirection(runes)
	}

	script := detectScript(runes)
	if opts.Script != "" {
		sc, err := parseScript(opts.Script)
		if err != nil {
			return nil, err
		}
		script = sc
	}

	lang := defaultLanguage
	if opts.Language != "" {
		lang = language.NewLanguage(opts.Language)
	}

	input := shaping.Input{
		Text:         runes,
		RunStart:     0,
		RunEnd:       len(runes),
		Direction:    mapDirection(dir),
		Face:         s.face,
		FontFeatures: fontFeatures(opts.Features),
		Size:         s.upem,
		Script:       script,
		Language:     lang,
	}
	output := s.hb.Shape(input)

	glyphs := make([]ShapedGlyph, len(output.Glyphs))
	for i, g := range output.Glyphs {
		glyphs[i] = ShapedGlyph{
			GID:     GlyphID(uint16(g.GlyphID)), //nolint:gosec // glyph IDs of sfnt fonts fit in uint16
			Cluster: g.TextIndex(),
			XOffset: fixedToFloat(g.XOffset),
			YOffset: fixedToFloat(g.YOffset),
		}
		if dir.IsVertical() {
			glyphs[i].YAdvance = fixedToFloat(g.Advance)
		} else {
			glyphs[i].XAdvance = fixedToFloat(g.Advance)
		}
	}
	return glyphs, nil
}

// Close drops the parsed font.
func (s *GoTextShaper) Close() error {
	s.font = nil
	s.face = nil
	return nil
}

// GoTextRasterizer extracts outlines with go-text/typesetting. It keeps
// one font.Face whose coordinates follow SetLocation.
type GoTextRasterizer struct {
	face *font.Face
}

// NewGoTextRasterizer creates a rasterizer for ft at the default location.
func NewGoTextRasterizer(ft *font.Font) *GoTextRasterizer {
	return &GoTextRasterizer{face: font.NewFace(ft)}
}

// SetLocation implements the Rasterizer interface.
func (r *GoTextRasterizer) SetLocation(loc Location) {
	if r.face == nil {
		return
	}
	if vars := loc.variations(); len(vars) > 0 {
		r.face.SetVariations(vars)
		return
	}
	r.face.SetCoords(nil)
}

// Outline implements the Rasterizer interface.
func (r *GoTextRasterizer) Outline(gid GlyphID) (*Outline, error) {
	if r.face == nil {
		return nil, ErrClosed
	}
	data, ok := r.face.GlyphData(font.GID(gid)).(font.GlyphOutline)
	if !ok {
		return nil, fmt.Errorf("glyph %d: %w", gid, ErrUnresolvableGlyph)
	}
	return convertOutline(data), nil
}

// Close drops the face.
func (r *GoTextRasterizer) Close() error {
	r.face = nil
	return nil
}

// convertOutline converts a go-text glyph outline to an Outline.
func convertOutline(g font.GlyphOutline) *Outline {
	out := &Outline{Segments: make([]Segment, 0, len(g.Segments))}
	for _, seg := range g.Segments {
		var s Segment
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			s.Op = OpMoveTo
		case ot.SegmentOpLineTo:
			s.Op = OpLineTo
		case ot.SegmentOpQuadTo:
			s.Op = OpQuadTo
		case ot.SegmentOpCubeTo:
			s.Op = OpCubicTo
		default:
			continue
		}
		for j := 0; j < s.Op.PointCount(); j++ {
			s.Points[j] = Point{X: seg.Args[j].X, Y: seg.Args[j].Y}
		}
		out.Segments = append(out.Segments, s)
	}
	out.updateBounds()
	return out
}

// sfntNamer reads glyph names from the post or CFF table via x/image.
type sfntNamer struct {
	f   *sfnt.Font
	buf sfnt.Buffer
}

// newSFNTNamer parses member index of data. Single fonts are accepted as
// collections of one.
func newSFNTNamer(data []byte, index int) (*sfntNamer, error) {
	c, err := sfnt.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	f, err := c.Font(index)
	if err != nil {
		return nil, err
	}
	return &sfntNamer{f: f}, nil
}

// GlyphName implements the GlyphNamer interface.
func (n *sfntNamer) GlyphName(gid GlyphID) string {
	name, err := n.f.GlyphName(&n.buf, sfnt.GlyphIndex(gid))
	if err != nil || name == "" {
		return fallbackGlyphName(gid)
	}
	return name
}

// fallbackGlyphName is the name used for glyphs without a stored name.
func fallbackGlyphName(gid GlyphID) string {
	return fmt.Sprintf("glyph%05d", gid)
}

// mapDirection converts a Direction to go-text's di.Direction.
func mapDirection(d Direction) di.Direction {
	switch d {
	case DirectionRTL:
		return di.DirectionRTL
	case DirectionTTB:
		return di.DirectionTTB
	case DirectionBTT:
		return di.DirectionBTT
	default:
		return di.DirectionLTR
	}
}

// detectDirection returns the direction of the first strong character.
func detectDirection(runes []rune) Direction {
	for _, r := range runes {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.R, bidi.AL:
			return DirectionRTL
		case bidi.L:
			return DirectionLTR
		}
	}
	return DirectionLTR
}

// detectScript returns the script of the first letter. For mixed-script
// text, callers should split runs by script before shaping.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsMark(r) {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// parseScript converts an ISO 15924 tag ("latn", "Arab") to a Script.
func parseScript(s string) (language.Script, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("font: script %q: tag must be 4 letters", s)
	}
	tag := strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	return language.Script(binary.BigEndian.Uint32([]byte(tag))), nil
}

// floatToFixed converts a float64 to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
