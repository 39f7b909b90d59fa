package font

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
)

// Location is a point in a font's design space: axis tag to user-space
// coordinate. A nil or empty Location denotes the default instance and an
// omitted axis takes that axis's default value.
type Location map[string]float64

// Equal reports whether l and other hold the same mapping.
// Order is irrelevant and nil equals empty.
func (l Location) Equal(other Location) bool {
	if len(l) != len(other) {
		return false
	}
	for tag, v := range l {
		ov, ok := other[tag]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Clone returns a copy of l. The clone of an empty location is nil.
func (l Location) Clone() Location {
	if len(l) == 0 {
		return nil
	}
	c := make(Location, len(l))
	for tag, v := range l {
		c[tag] = v
	}
	return c
}

// Tags returns the axis tags of l in sorted order.
func (l Location) Tags() []string {
	tags := make([]string, 0, len(l))
	for tag := range l {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// String formats l as "tag=value" pairs sorted by tag, e.g. "wdth=80,wght=700".
func (l Location) String() string {
	var sb strings.Builder
	for i, tag := range l.Tags() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(tag)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatFloat(l[tag], 'g', -1, 64))
	}
	return sb.String()
}

// ParseLocation parses the String form of a Location.
// An empty string yields the default location.
func ParseLocation(s string) (Location, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	loc := make(Location)
	for _, part := range strings.Split(s, ",") {
		tag, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return nil, fmt.Errorf("font: variation %q: missing value", part)
		}
		if !validTag(tag) {
			return nil, fmt.Errorf("font: variation %q: axis tag must be 4 characters", part)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("font: variation %q: %w", part, err)
		}
		loc[tag] = v
	}
	return loc, nil
}

// variations converts l to go-text variation settings, sorted by tag.
// Entries with invalid tags are skipped.
func (l Location) variations() []font.Variation {
	if len(l) == 0 {
		return nil
	}
	vars := make([]font.Variation, 0, len(l))
	for _, tag := range l.Tags() {
		if !validTag(tag) {
			continue
		}
		vars = append(vars, font.Variation{Tag: ot.MustNewTag(tag), Value: float32(l[tag])})
	}
	return vars
}

// validTag reports whether s can be used as an OpenType tag.
func validTag(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}
