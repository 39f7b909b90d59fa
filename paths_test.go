package goggles

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/goggles/font"
	"github.com/gogpu/goggles/internal/fonttest"
)

func collectKeys(t *testing.T, paths []string) ([]FontKey, []error) {
	t.Helper()
	var keys []FontKey
	var errs []error
	for key, err := range FontKeys(paths) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		keys = append(keys, key)
	}
	return keys, errs
}

func fontDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string][]byte{
		"b.ttf":     goregular.TTF,
		"a.ttc":     fonttest.Collection(goregular.TTF, 3),
		"notes.txt": []byte("not a font"),
		"c.OTF":     gomono.TTF,
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "d.ttf"), goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestFontKeys_Directory(t *testing.T) {
	dir := fontDir(t)

	keys, errs := collectKeys(t, []string{dir})
	if len(errs) != 0 {
		t.Fatalf("FontKeys() errors = %v", errs)
	}
	want := []FontKey{
		{Path: filepath.Join(dir, "a.ttc"), Index: 0},
		{Path: filepath.Join(dir, "a.ttc"), Index: 1},
		{Path: filepath.Join(dir, "a.ttc"), Index: 2},
		{Path: filepath.Join(dir, "b.ttf"), Index: 0},
		{Path: filepath.Join(dir, "c.OTF"), Index: 0},
	}
	if !slices.Equal(keys, want) {
		t.Errorf("FontKeys() = %v, want %v", keys, want)
	}
}

func TestFontKeys_FilesInGivenOrder(t *testing.T) {
	dir := fontDir(t)
	paths := []string{
		filepath.Join(dir, "b.ttf"),
		filepath.Join(dir, "notes.txt"),
		filepath.Join(dir, "sub"),
		filepath.Join(dir, "a.ttc"),
	}

	keys, errs := collectKeys(t, paths)
	if len(errs) != 0 {
		t.Fatalf("FontKeys() errors = %v", errs)
	}
	want := []FontKey{
		{Path: filepath.Join(dir, "b.ttf"), Index: 0},
		{Path: filepath.Join(dir, "sub", "d.ttf"), Index: 0},
		{Path: filepath.Join(dir, "a.ttc"), Index: 0},
		{Path: filepath.Join(dir, "a.ttc"), Index: 1},
		{Path: filepath.Join(dir, "a.ttc"), Index: 2},
	}
	if !slices.Equal(keys, want) {
		t.Errorf("FontKeys() = %v, want %v", keys, want)
	}
}

func TestFontKeys_CountError(t *testing.T) {
	bad := writeFile(t, "broken.ttc", []byte("not a collection"))
	good := writeFile(t, "Go.ttf", goregular.TTF)

	keys, errs := collectKeys(t, []string{bad, good})
	if len(errs) != 1 {
		t.Fatalf("FontKeys() errors = %v, want one", errs)
	}
	if want := []FontKey{{Path: good}}; !slices.Equal(keys, want) {
		t.Errorf("FontKeys() = %v, want %v", keys, want)
	}
}

func TestFontKeys_StopEarly(t *testing.T) {
	path := writeFile(t, "Go.ttc", fonttest.Collection(goregular.TTF, 4))
	n := 0
	for range FontKeys([]string{path}) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterations = %d, want 2", n)
	}
}

func TestLoadPaths(t *testing.T) {
	dir := fontDir(t)
	pool := &font.DataPool{}

	handles, err := LoadPaths(context.Background(), []string{dir}, WithPool(pool))
	if err != nil {
		t.Fatalf("LoadPaths() error = %v", err)
	}
	defer closeAll(handles)

	if len(handles) != 5 {
		t.Fatalf("len(handles) = %d, want 5", len(handles))
	}
	for i, h := range handles[:3] {
		if !h.IsCollectionMember() || h.Key().Index != i {
			t.Errorf("handles[%d] = %v, want member %d of a.ttc", i, h.Key(), i)
		}
	}
	// a.ttc, b.ttf and c.OTF each read once
	if pool.Len() != 3 {
		t.Errorf("pool.Len() = %d, want 3", pool.Len())
	}
}

func TestLoadPaths_CountError(t *testing.T) {
	bad := writeFile(t, "broken.ttc", []byte("not a collection"))
	if _, err := LoadPaths(context.Background(), []string{bad}); err == nil {
		t.Error("LoadPaths() error = nil for an unreadable collection")
	}
}
