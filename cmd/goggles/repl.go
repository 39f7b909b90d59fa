package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/tdewolff/argp"

	"github.com/gogpu/goggles/font"
)

// session is the REPL state.
type session struct {
	h       *font.Handle
	opts    font.ShapeOptions
	color   bool
	palette int
}

func (cmd *Repl) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	setupLogging(cmd.Verbose)

	h, err := openFont(context.Background(), cmd.Input, cmd.Index)
	if err != nil {
		return err
	}
	defer h.Close()

	rl, err := readline.New("goggles > ")
	if err != nil {
		return err
	}
	defer rl.Close()

	s := &session{h: h}
	pterm.Info.Println("Type text to shape, :help for commands, quit with <ctrl>D")
	for {
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			break
		} else if err != nil {
			return err
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if err := s.execute(line); err != nil {
			pterm.Error.Println(err)
		}
	}
	pterm.Info.Println("Good bye!")
	return nil
}

func (s *session) execute(line string) error {
	if !strings.HasPrefix(line, ":") {
		return s.shape(line)
	}
	name, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "var":
		loc, err := font.ParseLocation(arg)
		if err != nil {
			return err
		}
		s.opts.Variations = loc
	case "feat":
		features, err := font.ParseFeatures(arg)
		if err != nil {
			return err
		}
		s.opts.Features = features
	case "dir":
		dir, err := font.ParseDirection(arg)
		if err != nil {
			return err
		}
		s.opts.Direction = dir
	case "lang":
		s.opts.Language = arg
	case "script":
		s.opts.Script = arg
	case "color":
		switch arg {
		case "on":
			s.color = true
		case "off":
			s.color = false
		default:
			return fmt.Errorf("usage: :color on|off")
		}
	case "palette":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return err
		}
		if n < 0 || n >= len(s.h.ColorPalettes()) {
			return fmt.Errorf("palette %d out of range", n)
		}
		s.palette = n
	case "state":
	case "help":
		pterm.Println(":var wght=700  :feat liga=0  :dir rtl  :lang ar  :script Arab  :color on|off  :palette N  :state")
		return nil
	default:
		return fmt.Errorf("unknown command %q", name)
	}
	pterm.Info.Printfln("location=%s features=%s direction=%s color=%t palette=%d",
		s.opts.Variations, font.FormatFeatures(s.opts.Features), s.opts.Direction, s.color, s.palette)
	return nil
}

func (s *session) shape(text string) error {
	run, err := s.h.GlyphRun(text, s.opts, s.color)
	if err != nil {
		return err
	}
	if err := runTable(run).Render(); err != nil {
		return err
	}
	if s.color {
		s.printLayers(run)
	}
	st := s.h.CacheStats()
	pterm.Info.Printfln("cache: %d hits, %d misses, %d purges, %d entries", st.Hits, st.Misses, st.Purges, st.Entries)
	return nil
}

// printLayers lists the resolved colors of every layered glyph.
func (s *session) printLayers(run *font.GlyphRun) {
	palette := s.h.ColorPalettes()[s.palette]
	for i, g := range run.Glyphs {
		if !g.Drawing.IsLayered() {
			continue
		}
		colors := make([]string, len(g.Drawing.Layers))
		for j, l := range g.Drawing.Layers {
			c := palette.Resolve(l.ColorIndex, font.Black).NRGBA()
			colors[j] = fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
		}
		pterm.Printfln("%d gid=%d %s", i, g.GID, strings.Join(colors, " "))
	}
}
