// Package sfntmeta reads descriptive metadata (name, OS/2 and post
// entries) from sfnt fonts, including variable ones.
package sfntmeta

import (
	"bytes"
	"fmt"

	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/font/opentype/tables"
	"golang.org/x/image/font/sfnt"
)

// Table is the parsed metadata view of one font.
type Table struct {
	names     *tables.Name
	os2       *tables.Os2
	italic    float64
	hasItalic bool
}

// Parse parses font index of an sfnt or sfnt collection.
func Parse(data []byte, index int) (*Table, error) {
	loaders, err := ot.NewLoaders(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(loaders) {
		return nil, fmt.Errorf("sfntmeta: font index %d out of range [0, %d)", index, len(loaders))
	}
	t := FromLoader(loaders[index])

	// post is read through x/image, which exposes the italic angle.
	if c, err := sfnt.ParseCollection(data); err == nil {
		if f, err := c.Font(index); err == nil {
			if post := f.PostTable(); post != nil {
				t.italic, t.hasItalic = post.ItalicAngle, true
			}
		}
	}
	return t, nil
}

// FromLoader reads the name and OS/2 tables of an already opened font.
// ItalicAngle is never set on the result.
func FromLoader(ld *ot.Loader) *Table {
	t := &Table{}
	if raw, err := ld.RawTable(ot.MustNewTag("name")); err == nil {
		if names, _, err := tables.ParseName(raw); err == nil {
			t.names = &names
		}
	}
	if raw, err := ld.RawTable(ot.MustNewTag("OS/2")); err == nil {
		if os2, _, err := tables.ParseOs2(raw); err == nil {
			t.os2 = &os2
		}
	}
	return t
}

// Name returns the first of ids present in the name table. Among the
// records of one id, Windows English entries win over Macintosh ones.
func (t *Table) Name(ids ...uint16) (string, bool) {
	if t.names == nil {
		return "", false
	}
	for _, id := range ids {
		if s := t.names.Name(tables.NameID(id)); s != "" {
			return s, true
		}
	}
	return "", false
}

// OS2 returns usWeightClass and usWidthClass if the OS/2 table is present.
func (t *Table) OS2() (weight, width uint16, ok bool) {
	if t.os2 == nil {
		return 0, 0, false
	}
	return t.os2.USWeightClass, t.os2.USWidthClass, true
}

// ItalicAngle returns the post table italic angle if present.
func (t *Table) ItalicAngle() (float64, bool) {
	return t.italic, t.hasItalic
}

// Name IDs used by sort info and axis labels.
const (
	NameFontFamily         = 1
	NameFontSubfamily      = 2
	NamePreferredFamily    = 16
	NamePreferredSubfamily = 17
)
