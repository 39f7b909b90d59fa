package font

import (
	"errors"
	"fmt"
)

// Sentinel errors for package font.
var (
	// ErrMalformedFontData is returned when container bytes fail to parse.
	// It is fatal to the handle being constructed and never affects others.
	ErrMalformedFontData = errors.New("font: malformed font data")

	// ErrIndexOutOfRange is returned when a collection index is outside [0, numFonts).
	ErrIndexOutOfRange = errors.New("font: font index out of range")

	// ErrUnresolvableGlyph is returned by a Rasterizer or GlyphProgram when
	// a glyph has no outline in any source. The handle swallows it into an
	// empty outline so that one bad glyph never aborts a run.
	ErrUnresolvableGlyph = errors.New("font: unresolvable glyph")

	// ErrClosed is returned by operations on a closed Handle.
	ErrClosed = errors.New("font: handle is closed")

	// ErrReleased is returned when acquiring a SharedData whose last
	// reference has already been released.
	ErrReleased = errors.New("font: shared data released")
)

// IndexError reports a collection index outside the valid range.
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("font: index %d out of range [0, %d)", e.Index, e.Count)
}

// Unwrap returns ErrIndexOutOfRange.
func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// TableError reports a structurally invalid font table.
type TableError struct {
	Tag    string
	Reason string
}

func (e *TableError) Error() string {
	return "font: " + e.Tag + ": " + e.Reason
}

// Unwrap returns ErrMalformedFontData.
func (e *TableError) Unwrap() error { return ErrMalformedFontData }
