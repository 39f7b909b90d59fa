package font

import (
	"fmt"
	"strings"
)

// GlyphID is a font-specific glyph index.
type GlyphID uint16

// Key identifies one logical font: a file path and the font index within
// its container. For single-font formats Index is always 0.
type Key struct {
	Path  string
	Index int
}

// String returns "path#index".
func (k Key) String() string {
	return fmt.Sprintf("%s#%d", k.Path, k.Index)
}

// Direction specifies the text direction for shaping.
// The zero value lets the shaper detect the direction from the text.
type Direction int

const (
	// DirectionAuto detects the direction from the first strong character.
	DirectionAuto Direction = iota

	// DirectionLTR is left-to-right text (English, most European languages).
	DirectionLTR

	// DirectionRTL is right-to-left text (Arabic, Hebrew).
	DirectionRTL

	// DirectionTTB is top-to-bottom text (vertical CJK).
	DirectionTTB

	// DirectionBTT is bottom-to-top text (rare).
	DirectionBTT
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionAuto:
		return "auto"
	case DirectionLTR:
		return "ltr"
	case DirectionRTL:
		return "rtl"
	case DirectionTTB:
		return "ttb"
	case DirectionBTT:
		return "btt"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// IsVertical returns true if the direction is vertical (TTB or BTT).
func (d Direction) IsVertical() bool {
	return d == DirectionTTB || d == DirectionBTT
}

// ParseDirection parses "ltr", "rtl", "ttb", "btt" or "auto" (or "").
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DirectionAuto, nil
	case "ltr":
		return DirectionLTR, nil
	case "rtl":
		return DirectionRTL, nil
	case "ttb":
		return DirectionTTB, nil
	case "btt":
		return DirectionBTT, nil
	}
	return DirectionAuto, fmt.Errorf("font: unknown direction %q", s)
}

// Rect represents a rectangle in font units.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Empty returns true if the rectangle has zero area.
func (r Rect) Empty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Union returns the smallest rectangle containing r and other.
// An empty operand is ignored.
func (r Rect) Union(other Rect) Rect {
	if other.Empty() {
		return r
	}
	if r.Empty() {
		return other
	}
	return Rect{
		MinX: min(r.MinX, other.MinX),
		MinY: min(r.MinY, other.MinY),
		MaxX: max(r.MaxX, other.MaxX),
		MaxY: max(r.MaxY, other.MaxY),
	}
}

// tagString converts a big-endian 4-byte tag to its string form.
func tagString(b []byte) string {
	return string(b[:4])
}
