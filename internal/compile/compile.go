// Package compile turns font sources (TTX XML, UFO directories) into
// binary sfnt bytes by running the fonttools toolchain.
package compile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrCompilerNotFound is returned when the external tool for a source
// format is not installed.
var ErrCompilerNotFound = errors.New("compile: compiler not found")

// ErrUnsupportedSource is returned for paths that are not a known source
// format.
var ErrUnsupportedSource = errors.New("compile: unsupported source format")

// Environment variables overriding the tool names.
const (
	EnvTTX      = "GOGGLES_TTX"
	EnvFontmake = "GOGGLES_FONTMAKE"
)

// Compiler compiles a font source file into sfnt bytes.
type Compiler interface {
	Compile(ctx context.Context, path string) ([]byte, error)
}

// External compiles by invoking ttx and fontmake.
// The zero value resolves tool names from the environment.
type External struct {
	// TTX and Fontmake name the binaries; empty means $GOGGLES_TTX or
	// "ttx", and $GOGGLES_FONTMAKE or "fontmake".
	TTX      string
	Fontmake string

	// LookPath resolves a binary name; nil means exec.LookPath.
	LookPath func(file string) (string, error)
}

// Compile runs the tool for the extension of path and returns its output.
func (e External) Compile(ctx context.Context, path string) ([]byte, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "ttx":
		return e.compileTTX(ctx, path)
	case "ufo", "ufos":
		return e.compileUFO(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, ext)
	}
}

func (e External) compileTTX(ctx context.Context, path string) ([]byte, error) {
	bin, err := e.tool(e.TTX, EnvTTX, "ttx")
	if err != nil {
		return nil, err
	}
	return run(exec.CommandContext(ctx, bin, "-q", "-o", "-", path))
}

func (e External) compileUFO(ctx context.Context, path string) ([]byte, error) {
	bin, err := e.tool(e.Fontmake, EnvFontmake, "fontmake")
	if err != nil {
		return nil, err
	}
	dir, err := os.MkdirTemp("", "goggles-fontmake-")
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))+".ttf")
	// #nosec G204 -- binary and arguments come from configuration and the user's file
	if _, err := run(exec.CommandContext(ctx, bin, "-u", path, "-o", "ttf", "--output-path", out)); err != nil {
		return nil, err
	}
	// #nosec G304 -- path is inside our own temp dir
	b, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("compile: fontmake produced no output: %w", err)
	}
	return b, nil
}

// tool resolves the binary name from the explicit field, then env, then
// the default.
func (e External) tool(explicit, env, def string) (string, error) {
	name := explicit
	if name == "" {
		name = os.Getenv(env)
	}
	if name == "" {
		name = def
	}
	look := e.LookPath
	if look == nil {
		look = exec.LookPath
	}
	bin, err := look(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrCompilerNotFound, name, err)
	}
	return bin, nil
}

func run(cmd *exec.Cmd) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("compile: %s: %w: %s", filepath.Base(cmd.Path), err, msg)
		}
		return nil, fmt.Errorf("compile: %s: %w", filepath.Base(cmd.Path), err)
	}
	return stdout.Bytes(), nil
}
