package font

import "encoding/binary"

// Axis describes one variation axis of a variable font.
type Axis struct {
	Tag     string
	Name    string
	Min     float64
	Default float64
	Max     float64

	// NameID is the name table entry Name was resolved from.
	NameID uint16
}

// Clamp limits v to [Min, Max].
func (a Axis) Clamp(v float64) float64 {
	return min(max(v, a.Min), a.Max)
}

// decodeFvar parses the axis records of an fvar table.
// The caller resolves display names.
func decodeFvar(data []byte) ([]Axis, error) {
	if len(data) < 16 {
		return nil, &TableError{Tag: "fvar", Reason: "header too short"}
	}
	axesOffset := int(binary.BigEndian.Uint16(data[4:6]))
	axisCount := int(binary.BigEndian.Uint16(data[8:10]))
	axisSize := int(binary.BigEndian.Uint16(data[10:12]))
	if axisSize < 20 {
		return nil, &TableError{Tag: "fvar", Reason: "axis record too small"}
	}

	axes := make([]Axis, axisCount)
	for i := range axes {
		pos := axesOffset + i*axisSize
		if pos+20 > len(data) {
			return nil, &TableError{Tag: "fvar", Reason: "axis records out of bounds"}
		}
		rec := data[pos : pos+20]
		axes[i] = Axis{
			Tag:     tagString(rec[0:4]),
			Min:     fixed1616(rec[4:8]),
			Default: fixed1616(rec[8:12]),
			Max:     fixed1616(rec[12:16]),
			NameID:  binary.BigEndian.Uint16(rec[18:20]),
		}
		axes[i].Name = axes[i].Tag
	}
	return axes, nil
}

// fixed1616 converts a 16.16 fixed-point value.
func fixed1616(b []byte) float64 {
	return float64(int32(binary.BigEndian.Uint32(b))) / 65536
}
