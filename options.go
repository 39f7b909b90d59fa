package goggles

import (
	"github.com/gogpu/goggles/font"
	"github.com/gogpu/goggles/internal/compile"
)

// OpenOption configures Open, Opener.Open and LoadAll.
//
// Example:
//
//	pool := &font.DataPool{}
//	h, err := goggles.Open(ctx, key, goggles.WithPool(pool))
type OpenOption func(*openOptions)

// openOptions holds optional configuration for opening fonts.
type openOptions struct {
	pool     *font.DataPool
	compiler compile.Compiler
	fontOpts []font.Option
}

// defaultOpenOptions returns the default open options.
func defaultOpenOptions() openOptions {
	return openOptions{
		compiler: compile.External{},
	}
}

func newOpenOptions(opts []OpenOption) openOptions {
	o := defaultOpenOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPool reads binary font files through pool, so that members of one
// collection opened independently share a single buffer.
func WithPool(pool *font.DataPool) OpenOption {
	return func(o *openOptions) {
		o.pool = pool
	}
}

// WithCompiler sets the compiler for source formats (ttx, ufo, ufos).
// The default runs ttx and fontmake from PATH.
func WithCompiler(c compile.Compiler) OpenOption {
	return func(o *openOptions) {
		o.compiler = c
	}
}

// WithFontOptions passes options through to font.Load.
func WithFontOptions(opts ...font.Option) OpenOption {
	return func(o *openOptions) {
		o.fontOpts = append(o.fontOpts, opts...)
	}
}
