package font

import "fmt"

// Kind is the closed set of outline representations a Handle can have.
// Every capability that depends on the representation switches over all
// of them in one resolution function.
type Kind uint8

const (
	// KindSimple fonts have one outline per glyph and no color layers.
	KindSimple Kind = iota

	// KindColorLayered fonts additionally declare COLR/CPAL layer lists.
	KindColorLayered

	// KindVariableColor fonts draw glyphs procedurally from a VARC table;
	// their geometry depends on the current variation location.
	KindVariableColor
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "SimpleOutlineFont"
	case KindColorLayered:
		return "ColorLayeredFont"
	case KindVariableColor:
		return "VariableColorFont"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}
