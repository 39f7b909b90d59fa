package goggles

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/goggles/font"
)

// FontKey identifies one font: a file path and an index into it.
type FontKey = font.Key

// Opener opens fonts of one file format.
type Opener struct {
	// Count returns the number of fonts in the file.
	Count func(path string) (int, error)

	// Open loads the font for key. If data is non-nil and still live it
	// is used instead of reading the file, which is how collection
	// members share bytes. Open returns the file buffer so it can be
	// passed to the next member; the caller owns no reference to it.
	Open func(ctx context.Context, key FontKey, data *font.SharedData, opts ...OpenOption) (*font.Handle, *font.SharedData, error)

	// SortInfo reads the metadata used to order fonts in a list.
	SortInfo func(path string, index int) (SortInfo, error)
}

var (
	binaryOpener = Opener{
		Count:    singleCount,
		Open:     openBinary,
		SortInfo: sortInfoBinary,
	}
	collectionOpener = Opener{
		Count:    collectionCount,
		Open:     openBinary,
		SortInfo: sortInfoBinary,
	}
	sourceOpener = Opener{
		Count:    singleCount,
		Open:     openSource,
		SortInfo: sortInfoSource,
	}
)

// openers is keyed by lowercase extension without the dot.
var openers = map[string]Opener{
	"ttf":   binaryOpener,
	"otf":   binaryOpener,
	"woff":  binaryOpener,
	"woff2": binaryOpener,
	"ttc":   collectionOpener,
	"otc":   collectionOpener,
	"ufo":   sourceOpener,
	"ufos":  sourceOpener,
	"ttx":   sourceOpener,
}

// Lookup returns the opener for the extension of path. The match is
// case-insensitive. ok is false for unsupported formats.
func Lookup(path string) (op Opener, ok bool) {
	return LookupExt(filepath.Ext(path))
}

// LookupExt returns the opener for an extension, with or without the
// leading dot.
func LookupExt(ext string) (op Opener, ok bool) {
	op, ok = openers[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return op, ok
}

// Extensions returns the supported extensions.
func Extensions() []string {
	return []string{"otc", "otf", "ttc", "ttf", "ttx", "ufo", "ufos", "woff", "woff2"}
}

// Sniff returns the extension matching the container magic of data, or
// "" if it is not a recognized binary font.
func Sniff(data []byte) string {
	return string(font.Sniff(data))
}

// Open looks up the opener for key.Path and opens the font.
func Open(ctx context.Context, key FontKey, opts ...OpenOption) (*font.Handle, error) {
	op, ok := Lookup(key.Path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, key.Path)
	}
	h, _, err := op.Open(ctx, key, nil, opts...)
	return h, err
}

func singleCount(string) (int, error) { return 1, nil }

// collectionCount reads the member count from the TTC header.
func collectionCount(path string) (int, error) {
	// #nosec G304 -- Font file path is provided by the user
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("goggles: failed to open font file: %w", err)
	}
	defer f.Close()

	c, err := sfnt.ParseCollectionReaderAt(f)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", font.ErrMalformedFontData, err)
	}
	return c.NumFonts(), nil
}

func openBinary(ctx context.Context, key FontKey, data *font.SharedData, opts ...OpenOption) (*font.Handle, *font.SharedData, error) {
	o := newOpenOptions(opts)

	owned, err := acquire(key.Path, data, o.pool)
	if err != nil {
		return nil, nil, err
	}
	defer owned.Release()

	return load(ctx, key, owned, o)
}

// acquire returns a reference owned by the caller: to data if it is
// still live, otherwise to a buffer from pool or the file.
func acquire(path string, data *font.SharedData, pool *font.DataPool) (*font.SharedData, error) {
	if data != nil {
		err := data.Acquire()
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, font.ErrReleased) {
			return nil, err
		}
	}
	if pool != nil {
		return pool.Acquire(path)
	}
	return font.ReadSharedData(path)
}

// openSource compiles the file and loads the result. Source fonts never
// share bytes, so data is ignored.
func openSource(ctx context.Context, key FontKey, _ *font.SharedData, opts ...OpenOption) (*font.Handle, *font.SharedData, error) {
	o := newOpenOptions(opts)

	b, err := o.compiler.Compile(ctx, key.Path)
	if err != nil {
		return nil, nil, err
	}
	owned := font.NewSharedData(b)
	defer owned.Release()

	return load(ctx, key, owned, o)
}

func load(ctx context.Context, key FontKey, data *font.SharedData, o openOptions) (*font.Handle, *font.SharedData, error) {
	fontOpts := append([]font.Option{font.WithPath(key.Path)}, o.fontOpts...)
	h, err := font.Load(ctx, data, key.Index, fontOpts...)
	if err != nil {
		return nil, nil, err
	}
	Logger().Debug("goggles: font opened", "key", key, "refs", data.Refs())
	return h, data, nil
}
