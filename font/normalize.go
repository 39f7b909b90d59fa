package font

import (
	"bytes"
	"fmt"

	tdfont "github.com/tdewolff/font"
)

// Container names the wrapper format of font bytes.
type Container string

// Containers recognized by Sniff.
const (
	ContainerUnknown    Container = ""
	ContainerTrueType   Container = "ttf"
	ContainerOpenType   Container = "otf"
	ContainerCollection Container = "ttc"
	ContainerWOFF       Container = "woff"
	ContainerWOFF2      Container = "woff2"
)

// Sniff identifies the container format from the leading magic bytes.
func Sniff(b []byte) Container {
	if len(b) < 4 {
		return ContainerUnknown
	}
	switch magic := b[:4]; {
	case bytes.Equal(magic, []byte{0x00, 0x01, 0x00, 0x00}), bytes.Equal(magic, []byte("true")):
		return ContainerTrueType
	case bytes.Equal(magic, []byte("OTTO")):
		return ContainerOpenType
	case bytes.Equal(magic, []byte("ttcf")):
		return ContainerCollection
	case bytes.Equal(magic, []byte("wOFF")):
		return ContainerWOFF
	case bytes.Equal(magic, []byte("wOF2")):
		return ContainerWOFF2
	}
	return ContainerUnknown
}

// Normalize unwraps WOFF and WOFF2 data into plain sfnt bytes. Other input
// is returned unchanged with converted == false.
func Normalize(b []byte) (out []byte, converted bool, err error) {
	switch Sniff(b) {
	case ContainerWOFF:
		out, err = tdfont.ParseWOFF(b)
	case ContainerWOFF2:
		out, err = tdfont.ParseWOFF2(b)
	default:
		return b, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrMalformedFontData, err)
	}
	return out, true, nil
}
