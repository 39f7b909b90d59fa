package goggles

import (
	"fmt"

	"github.com/gogpu/goggles/font"
	"github.com/gogpu/goggles/internal/sfntmeta"
)

// SortInfo is the metadata a font list is ordered by. A nil field means
// the font does not declare the value.
type SortInfo struct {
	FamilyName  *string
	StyleName   *string
	Weight      *int
	Width       *int
	ItalicAngle *float64
}

// Map returns the present fields under their wire names: familyName,
// styleName, weight, width and italicAngle.
func (s SortInfo) Map() map[string]any {
	m := make(map[string]any, 5)
	if s.FamilyName != nil {
		m["familyName"] = *s.FamilyName
	}
	if s.StyleName != nil {
		m["styleName"] = *s.StyleName
	}
	if s.Weight != nil {
		m["weight"] = *s.Weight
	}
	if s.Width != nil {
		m["width"] = *s.Width
	}
	if s.ItalicAngle != nil {
		m["italicAngle"] = *s.ItalicAngle
	}
	return m
}

// IsEmpty reports whether no field is present.
func (s SortInfo) IsEmpty() bool {
	return len(s.Map()) == 0
}

// ReadSortInfo looks up the opener for path and reads its sort info.
func ReadSortInfo(path string, index int) (SortInfo, error) {
	op, ok := Lookup(path)
	if !ok {
		return SortInfo{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return op.SortInfo(path, index)
}

func sortInfoBinary(path string, index int) (SortInfo, error) {
	data, err := font.ReadSharedData(path)
	if err != nil {
		return SortInfo{}, err
	}
	defer data.Release()
	return SortInfoFromBytes(data.Bytes(), index)
}

// SortInfoFromBytes reads sort info from font bytes (sfnt, collection,
// WOFF or WOFF2). An unreadable name table yields empty info and a
// warning rather than an error.
func SortInfoFromBytes(b []byte, index int) (SortInfo, error) {
	raw, _, err := font.Normalize(b)
	if err != nil {
		return SortInfo{}, err
	}
	meta, err := sfntmeta.Parse(raw, index)
	if err != nil {
		Logger().Warn("goggles: sort info unavailable", "index", index, "error", err)
		return SortInfo{}, nil
	}

	var info SortInfo
	if name, ok := meta.Name(sfntmeta.NamePreferredFamily, sfntmeta.NameFontFamily); ok {
		info.FamilyName = &name
	}
	if name, ok := meta.Name(sfntmeta.NamePreferredSubfamily, sfntmeta.NameFontSubfamily); ok {
		info.StyleName = &name
	}
	if weight, width, ok := meta.OS2(); ok {
		w, wd := int(weight), int(width)
		info.Weight, info.Width = &w, &wd
	}
	if angle, ok := meta.ItalicAngle(); ok {
		info.ItalicAngle = &angle
	}
	return info, nil
}

// Source formats carry no compiled metadata until built.
func sortInfoSource(string, int) (SortInfo, error) {
	return SortInfo{}, nil
}
