package font

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/goggles/internal/fonttest"
)

func TestDecodeCOLR(t *testing.T) {
	data := fonttest.COLR(
		fonttest.BaseGlyph{GID: 30, Layers: []fonttest.Layer{{GID: 31, Palette: 2}}},
		fonttest.BaseGlyph{GID: 5, Layers: []fonttest.Layer{{GID: 6, Palette: 0}, {GID: 7, Palette: 0xFFFF}}},
	)
	colr, err := decodeCOLR(data)
	if err != nil {
		t.Fatalf("decodeCOLR() error = %v", err)
	}

	layers, ok := colr.layersFor(5)
	if !ok || len(layers) != 2 {
		t.Fatalf("layersFor(5) = %v, %v, want 2 layers", layers, ok)
	}
	if layers[0].glyphID != 6 || layers[1].paletteIndex != foregroundPaletteIndex {
		t.Errorf("layersFor(5) = %+v", layers)
	}
	if layers, ok := colr.layersFor(30); !ok || layers[0].glyphID != 31 {
		t.Errorf("layersFor(30) = %+v, %v", layers, ok)
	}
	if _, ok := colr.layersFor(6); ok {
		t.Error("layersFor(6) = true for a layer glyph, want false")
	}
}

func TestDecodeCOLR_Errors(t *testing.T) {
	valid := fonttest.COLR(fonttest.BaseGlyph{GID: 1, Layers: []fonttest.Layer{{GID: 2}}})

	badVersion := slices.Clone(valid)
	badVersion[1] = 2

	tests := []struct {
		name string
		data []byte
	}{
		{"too short", valid[:10]},
		{"truncated layers", valid[:len(valid)-2]},
		{"bad version", badVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeCOLR(tt.data)
			if !errors.Is(err, ErrMalformedFontData) {
				t.Errorf("decodeCOLR() error = %v, want ErrMalformedFontData", err)
			}
			var te *TableError
			if !errors.As(err, &te) || te.Tag != "COLR" {
				t.Errorf("decodeCOLR() error = %v, want *TableError for COLR", err)
			}
		})
	}
}

func TestDecodeCPAL(t *testing.T) {
	data := fonttest.CPAL(
		[]fonttest.RGBA{{R: 255, A: 255}, {G: 255, A: 128}},
		[]fonttest.RGBA{{B: 255, A: 255}, {R: 51, G: 102, B: 153, A: 0}},
	)
	palettes, err := decodeCPAL(data)
	if err != nil {
		t.Fatalf("decodeCPAL() error = %v", err)
	}
	if len(palettes) != 2 || len(palettes[0]) != 2 {
		t.Fatalf("got %d palettes", len(palettes))
	}
	if palettes[0][0] != (Color{R: 1, A: 1}) {
		t.Errorf("palettes[0][0] = %+v, want red", palettes[0][0])
	}
	if palettes[0][1] != (Color{G: 1, A: 128.0 / 255}) {
		t.Errorf("palettes[0][1] = %+v", palettes[0][1])
	}
	if palettes[1][1] != (Color{R: 0.2, G: 0.4, B: 0.6, A: 0}) {
		t.Errorf("palettes[1][1] = %+v", palettes[1][1])
	}
}

func TestDecodeCPAL_Truncated(t *testing.T) {
	data := fonttest.CPAL([]fonttest.RGBA{{R: 1}, {G: 2}})
	if _, err := decodeCPAL(data[:len(data)-1]); !errors.Is(err, ErrMalformedFontData) {
		t.Errorf("decodeCPAL() error = %v, want ErrMalformedFontData", err)
	}
}

func TestDecodeCPAL_PaletteExceedsRecords(t *testing.T) {
	data := fonttest.CPAL([]fonttest.RGBA{{R: 1}, {G: 2}})
	data[3] = 3 // numPaletteEntries
	_, err := decodeCPAL(data)
	var te *TableError
	if !errors.As(err, &te) || te.Tag != "CPAL" {
		t.Errorf("decodeCPAL() error = %v, want *TableError for CPAL", err)
	}
}

func TestDecodeFvar(t *testing.T) {
	data := fonttest.Fvar(
		fonttest.Axis{Tag: "wght", Min: 100, Default: 400, Max: 900, NameID: 256},
		fonttest.Axis{Tag: "slnt", Min: -12.5, Default: 0, Max: 0, NameID: 257},
	)
	axes, err := decodeFvar(data)
	if err != nil {
		t.Fatalf("decodeFvar() error = %v", err)
	}
	want := []Axis{
		{Tag: "wght", Name: "wght", Min: 100, Default: 400, Max: 900, NameID: 256},
		{Tag: "slnt", Name: "slnt", Min: -12.5, Default: 0, Max: 0, NameID: 257},
	}
	if !slices.Equal(axes, want) {
		t.Errorf("decodeFvar() = %+v, want %+v", axes, want)
	}
	if got := axes[0].Clamp(1000); got != 900 {
		t.Errorf("Clamp(1000) = %v, want 900", got)
	}
}
