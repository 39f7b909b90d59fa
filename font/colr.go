package font

import (
	"encoding/binary"
	"sort"

	"github.com/go-text/typesetting/font/opentype/tables"
)

// colrTable holds the COLRv0 records of a font. COLRv1 paint graphs are
// not decoded; glyphs only described by them resolve as plain outlines.
type colrTable struct {
	version    uint16
	baseGlyphs []baseGlyphRecord
	layers     []layerRecord
}

// baseGlyphRecord from COLRv0.
type baseGlyphRecord struct {
	glyphID    uint16
	firstLayer uint16
	numLayers  uint16
}

// layerRecord from COLRv0.
type layerRecord struct {
	glyphID      uint16
	paletteIndex uint16
}

// foregroundPaletteIndex marks a layer drawn in the text color.
const foregroundPaletteIndex = 0xFFFF

// decodeCOLR parses the COLR table header and its v0 records.
func decodeCOLR(data []byte) (*colrTable, error) {
	if len(data) < 14 {
		return nil, &TableError{Tag: "COLR", Reason: "header too short"}
	}

	t := &colrTable{version: binary.BigEndian.Uint16(data[0:2])}
	if t.version > 1 {
		return nil, &TableError{Tag: "COLR", Reason: "unsupported version"}
	}

	numBaseGlyphs := binary.BigEndian.Uint16(data[2:4])
	baseGlyphOffset := binary.BigEndian.Uint32(data[4:8])
	layerRecordOffset := binary.BigEndian.Uint32(data[8:12])
	numLayers := binary.BigEndian.Uint16(data[12:14])

	const baseSize = 6 // glyphID (2) + firstLayer (2) + numLayers (2)
	t.baseGlyphs = make([]baseGlyphRecord, numBaseGlyphs)
	for i := range t.baseGlyphs {
		pos := int(baseGlyphOffset) + i*baseSize
		if pos+baseSize > len(data) {
			return nil, &TableError{Tag: "COLR", Reason: "base glyph records out of bounds"}
		}
		t.baseGlyphs[i] = baseGlyphRecord{
			glyphID:    binary.BigEndian.Uint16(data[pos : pos+2]),
			firstLayer: binary.BigEndian.Uint16(data[pos+2 : pos+4]),
			numLayers:  binary.BigEndian.Uint16(data[pos+4 : pos+6]),
		}
	}

	const layerSize = 4 // glyphID (2) + paletteIndex (2)
	t.layers = make([]layerRecord, numLayers)
	for i := range t.layers {
		pos := int(layerRecordOffset) + i*layerSize
		if pos+layerSize > len(data) {
			return nil, &TableError{Tag: "COLR", Reason: "layer records out of bounds"}
		}
		t.layers[i] = layerRecord{
			glyphID:      binary.BigEndian.Uint16(data[pos : pos+2]),
			paletteIndex: binary.BigEndian.Uint16(data[pos+2 : pos+4]),
		}
	}

	for _, b := range t.baseGlyphs {
		if int(b.firstLayer)+int(b.numLayers) > len(t.layers) {
			return nil, &TableError{Tag: "COLR", Reason: "layer range out of bounds"}
		}
	}

	// layersFor binary searches by glyph ID.
	sort.Slice(t.baseGlyphs, func(i, j int) bool {
		return t.baseGlyphs[i].glyphID < t.baseGlyphs[j].glyphID
	})
	return t, nil
}

// layersFor returns the layer records declared for gid in painter's order.
func (t *colrTable) layersFor(gid GlyphID) ([]layerRecord, bool) {
	if t == nil {
		return nil, false
	}
	i := sort.Search(len(t.baseGlyphs), func(i int) bool {
		return t.baseGlyphs[i].glyphID >= uint16(gid)
	})
	if i == len(t.baseGlyphs) || t.baseGlyphs[i].glyphID != uint16(gid) {
		return nil, false
	}
	b := t.baseGlyphs[i]
	if b.numLayers == 0 {
		return nil, false
	}
	return t.layers[b.firstLayer : b.firstLayer+b.numLayers], true
}

// decodeCPAL parses the CPAL table into palettes with components in [0, 1].
func decodeCPAL(data []byte) ([]Palette, error) {
	t, _, err := tables.ParseCPAL(data)
	if err != nil {
		return nil, &TableError{Tag: "CPAL", Reason: err.Error()}
	}

	palettes := make([]Palette, len(t.ColorRecordIndices))
	for i, first := range t.ColorRecordIndices {
		end := int(first) + int(t.NumPaletteEntries)
		if end > len(t.ColorRecordsArray) {
			return nil, &TableError{Tag: "CPAL", Reason: "palette exceeds color records"}
		}
		palette := make(Palette, t.NumPaletteEntries)
		for j, rec := range t.ColorRecordsArray[first:end] {
			palette[j] = Color{
				R: float64(rec.Red) / 255,
				G: float64(rec.Green) / 255,
				B: float64(rec.Blue) / 255,
				A: float64(rec.Alpha) / 255,
			}
		}
		palettes[i] = palette
	}
	return palettes, nil
}
