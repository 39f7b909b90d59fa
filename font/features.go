package font

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/shaping"
)

// ParseFeatures parses a comma-separated feature list.
//
// Each item is "tag" or "+tag" (enable), "-tag" (disable) or "tag=value"
// (set an explicit value, e.g. an alternate index for "salt=2").
// An empty string yields nil, which selects the shaper defaults.
func ParseFeatures(s string) (map[string]uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	features := make(map[string]uint32)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		value := uint32(1)
		switch {
		case strings.HasPrefix(item, "-"):
			item, value = item[1:], 0
		case strings.HasPrefix(item, "+"):
			item = item[1:]
		}
		if tag, raw, ok := strings.Cut(item, "="); ok {
			v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
			if err != nil {
				return nil, fmt.Errorf("font: feature %q: %w", item, err)
			}
			item, value = tag, uint32(v)
		}
		if !validTag(item) {
			return nil, fmt.Errorf("font: feature %q: tag must be 4 characters", item)
		}
		features[item] = value
	}
	return features, nil
}

// FormatFeatures is the inverse of ParseFeatures, sorted by tag.
func FormatFeatures(features map[string]uint32) string {
	tags := make([]string, 0, len(features))
	for tag := range features {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = tag + "=" + strconv.FormatUint(uint64(features[tag]), 10)
	}
	return strings.Join(parts, ",")
}

// fontFeatures converts a feature map to go-text settings, sorted by tag.
// A nil map yields nil so the engine applies its defaults.
func fontFeatures(features map[string]uint32) []shaping.FontFeature {
	if len(features) == 0 {
		return nil
	}
	tags := make([]string, 0, len(features))
	for tag := range features {
		if validTag(tag) {
			tags = append(tags, tag)
		}
	}
	slices.Sort(tags)
	out := make([]shaping.FontFeature, len(tags))
	for i, tag := range tags {
		out[i] = shaping.FontFeature{Tag: ot.MustNewTag(tag), Value: features[tag]}
	}
	return out
}
