// Package fonttest builds small synthetic font tables and containers for
// tests.
package fonttest

import (
	"encoding/binary"
	"maps"
	"math/bits"
	"slices"
)

// Collection wraps one sfnt font into a TTC declaring n members. Every
// member points at the same table directory, so each index opens a copy
// of font.
func Collection(font []byte, n int) []byte {
	header := 12 + 4*n
	out := make([]byte, header+len(font))
	copy(out, "ttcf")
	binary.BigEndian.PutUint16(out[4:], 1) // majorVersion
	binary.BigEndian.PutUint16(out[6:], 0) // minorVersion
	binary.BigEndian.PutUint32(out[8:], uint32(n))
	for i := 0; i < n; i++ {
		binary.BigEndian.PutUint32(out[12+4*i:], uint32(header))
	}

	body := out[header:]
	copy(body, font)
	numTables := int(binary.BigEndian.Uint16(body[4:6]))
	for i := 0; i < numTables; i++ {
		rec := body[12+16*i:]
		offset := binary.BigEndian.Uint32(rec[8:12])
		binary.BigEndian.PutUint32(rec[8:12], offset+uint32(header))
	}
	return out
}

// BaseGlyph declares the layers of one color glyph.
type BaseGlyph struct {
	GID    uint16
	Layers []Layer
}

// Layer is one COLRv0 layer. Palette 0xFFFF is the foreground color.
type Layer struct {
	GID     uint16
	Palette uint16
}

// COLR encodes a version 0 COLR table.
func COLR(glyphs ...BaseGlyph) []byte {
	numLayers := 0
	for _, g := range glyphs {
		numLayers += len(g.Layers)
	}
	baseOffset := 14
	layerOffset := baseOffset + 6*len(glyphs)
	out := make([]byte, layerOffset+4*numLayers)

	binary.BigEndian.PutUint16(out[2:], uint16(len(glyphs)))
	binary.BigEndian.PutUint32(out[4:], uint32(baseOffset))
	binary.BigEndian.PutUint32(out[8:], uint32(layerOffset))
	binary.BigEndian.PutUint16(out[12:], uint16(numLayers))

	first := 0
	for i, g := range glyphs {
		rec := out[baseOffset+6*i:]
		binary.BigEndian.PutUint16(rec[0:], g.GID)
		binary.BigEndian.PutUint16(rec[2:], uint16(first))
		binary.BigEndian.PutUint16(rec[4:], uint16(len(g.Layers)))
		for j, l := range g.Layers {
			lr := out[layerOffset+4*(first+j):]
			binary.BigEndian.PutUint16(lr[0:], l.GID)
			binary.BigEndian.PutUint16(lr[2:], l.Palette)
		}
		first += len(g.Layers)
	}
	return out
}

// RGBA is an 8-bit color entry.
type RGBA struct {
	R, G, B, A uint8
}

// CPAL encodes a version 0 CPAL table. All palettes must have the same
// number of entries.
func CPAL(palettes ...[]RGBA) []byte {
	numEntries := 0
	if len(palettes) > 0 {
		numEntries = len(palettes[0])
	}
	numRecords := numEntries * len(palettes)
	recordsOffset := 12 + 2*len(palettes)
	out := make([]byte, recordsOffset+4*numRecords)

	binary.BigEndian.PutUint16(out[2:], uint16(numEntries))
	binary.BigEndian.PutUint16(out[4:], uint16(len(palettes)))
	binary.BigEndian.PutUint16(out[6:], uint16(numRecords))
	binary.BigEndian.PutUint32(out[8:], uint32(recordsOffset))
	for i, p := range palettes {
		binary.BigEndian.PutUint16(out[12+2*i:], uint16(i*numEntries))
		for j, c := range p {
			rec := out[recordsOffset+4*(i*numEntries+j):]
			rec[0], rec[1], rec[2], rec[3] = c.B, c.G, c.R, c.A
		}
	}
	return out
}

// Axis is one fvar axis record.
type Axis struct {
	Tag               string
	Min, Default, Max float64
	NameID            uint16
}

// Fvar encodes an fvar table without named instances.
func Fvar(axes ...Axis) []byte {
	const headerSize, axisSize = 16, 20
	out := make([]byte, headerSize+axisSize*len(axes))
	binary.BigEndian.PutUint16(out[0:], 1) // majorVersion
	binary.BigEndian.PutUint16(out[4:], headerSize)
	binary.BigEndian.PutUint16(out[6:], 2) // reserved
	binary.BigEndian.PutUint16(out[8:], uint16(len(axes)))
	binary.BigEndian.PutUint16(out[10:], axisSize)
	for i, a := range axes {
		rec := out[headerSize+axisSize*i:]
		copy(rec[0:4], a.Tag)
		binary.BigEndian.PutUint32(rec[4:], fixed(a.Min))
		binary.BigEndian.PutUint32(rec[8:], fixed(a.Default))
		binary.BigEndian.PutUint32(rec[12:], fixed(a.Max))
		binary.BigEndian.PutUint16(rec[18:], a.NameID)
	}
	return out
}

func fixed(v float64) uint32 {
	return uint32(int32(v * 65536))
}

// WithTables returns a copy of the sfnt font with tables added or
// replaced. The table directory is rebuilt in tag order and every table
// is padded to four bytes. head.checkSumAdjustment is left stale.
func WithTables(font []byte, tables map[string][]byte) []byte {
	numTables := int(binary.BigEndian.Uint16(font[4:6]))
	all := make(map[string][]byte, numTables+len(tables))
	for i := 0; i < numTables; i++ {
		rec := font[12+16*i:]
		offset := binary.BigEndian.Uint32(rec[8:12])
		length := binary.BigEndian.Uint32(rec[12:16])
		all[string(rec[0:4])] = font[offset : offset+length]
	}
	maps.Copy(all, tables)
	tags := slices.Sorted(maps.Keys(all))

	out := make([]byte, 12+16*len(tags))
	copy(out[0:4], font[0:4])
	binary.BigEndian.PutUint16(out[4:], uint16(len(tags)))
	entrySelector := bits.Len(uint(len(tags))) - 1
	searchRange := 16 << entrySelector
	binary.BigEndian.PutUint16(out[6:], uint16(searchRange))
	binary.BigEndian.PutUint16(out[8:], uint16(entrySelector))
	binary.BigEndian.PutUint16(out[10:], uint16(16*len(tags)-searchRange))

	for i, tag := range tags {
		data := all[tag]
		rec := out[12+16*i:]
		copy(rec[0:4], tag)
		binary.BigEndian.PutUint32(rec[4:], checksum(data))
		binary.BigEndian.PutUint32(rec[8:], uint32(len(out)))
		binary.BigEndian.PutUint32(rec[12:], uint32(len(data)))
		out = append(out, data...)
		for len(out)%4 != 0 {
			out = append(out, 0)
		}
	}
	return out
}

func checksum(data []byte) uint32 {
	var sum uint32
	for i := 0; i < len(data); i += 4 {
		var word [4]byte
		copy(word[:], data[i:])
		sum += binary.BigEndian.Uint32(word[:])
	}
	return sum
}
