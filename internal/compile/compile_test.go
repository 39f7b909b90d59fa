package compile

import (
	"context"
	"errors"
	"os/exec"
	"testing"
)

func missing(string) (string, error) { return "", exec.ErrNotFound }

func TestExternal_CompilerNotFound(t *testing.T) {
	c := External{LookPath: missing}
	for _, path := range []string{"a.ttx", "b.ufo", "C.UFOS"} {
		_, err := c.Compile(context.Background(), path)
		if !errors.Is(err, ErrCompilerNotFound) {
			t.Errorf("Compile(%q) error = %v, want ErrCompilerNotFound", path, err)
		}
	}
}

func TestExternal_UnsupportedSource(t *testing.T) {
	c := External{LookPath: missing}
	_, err := c.Compile(context.Background(), "font.ttf")
	if !errors.Is(err, ErrUnsupportedSource) {
		t.Errorf("Compile() error = %v, want ErrUnsupportedSource", err)
	}
}

func TestExternal_ToolResolution(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		env      string
		want     string
	}{
		{"default", "", "", "ttx"},
		{"env", "", "/opt/ft/ttx", "/opt/ft/ttx"},
		{"explicit wins", "my-ttx", "/opt/ft/ttx", "my-ttx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvTTX, tt.env)
			var asked string
			c := External{TTX: tt.explicit, LookPath: func(file string) (string, error) {
				asked = file
				return "", exec.ErrNotFound
			}}
			_, _ = c.Compile(context.Background(), "x.ttx")
			if asked != tt.want {
				t.Errorf("looked up %q, want %q", asked, tt.want)
			}
		})
	}
}
