package goggles

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/goggles/font"
)

// LoadAll opens every key concurrently. Keys reading the same file share
// one buffer through a DataPool; WithPool supplies one, otherwise a
// private pool is used for the call.
//
// The handles are returned in key order. If any key fails, every handle
// already opened is closed and the first error is returned.
func LoadAll(ctx context.Context, keys []FontKey, opts ...OpenOption) ([]*font.Handle, error) {
	if o := newOpenOptions(opts); o.pool == nil {
		opts = append(opts[:len(opts):len(opts)], WithPool(&font.DataPool{}))
	}

	ops := make([]Opener, len(keys))
	for i, key := range keys {
		op, ok := Lookup(key.Path)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, key.Path)
		}
		ops[i] = op
	}

	handles := make([]*font.Handle, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		g.Go(func() error {
			h, _, err := ops[i].Open(gctx, key, nil, opts...)
			if err != nil {
				return fmt.Errorf("goggles: open %v: %w", key, err)
			}
			handles[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		closeAll(handles)
		return nil, err
	}
	Logger().Info("goggles: fonts loaded", "count", len(handles))
	return handles, nil
}

// LoadPaths expands paths with FontKeys and opens the keys with LoadAll.
// The first key error stops the expansion and is returned.
func LoadPaths(ctx context.Context, paths []string, opts ...OpenOption) ([]*font.Handle, error) {
	var keys []FontKey
	for key, err := range FontKeys(paths) {
		if err != nil {
			return nil, fmt.Errorf("goggles: %s: %w", key.Path, err)
		}
		keys = append(keys, key)
	}
	return LoadAll(ctx, keys, opts...)
}

func closeAll(handles []*font.Handle) {
	for _, h := range handles {
		if h != nil {
			h.Close()
		}
	}
}
