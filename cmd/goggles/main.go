// Command goggles inspects, shapes and renders fonts from the terminal.
package main

import (
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/tdewolff/argp"

	"github.com/gogpu/goggles"
	"github.com/gogpu/goggles/font"
	"github.com/gogpu/goggles/internal/preview"
)

type Goggles struct{}

type Info struct {
	Index   int    `short:"i" default:"0" desc:"Font index for font collections"`
	Verbose bool   `short:"v" desc:"Debug logging"`
	Input   string `index:"0" desc:"Font file"`
}

type List struct {
	Verbose bool     `short:"v" desc:"Debug logging"`
	Inputs  []string `name:"paths" index:"*" desc:"Font files or directories"`
}

type Shape struct {
	Index      int    `short:"i" default:"0" desc:"Font index for font collections"`
	Features   string `short:"f" desc:"Features, e.g. liga=0,kern"`
	Variations string `short:"V" desc:"Variation location, e.g. wght=700,wdth=80"`
	Direction  string `short:"d" default:"auto" desc:"Direction: auto, ltr, rtl, ttb or btt"`
	Language   string `short:"l" desc:"BCP 47 language"`
	Script     string `short:"s" desc:"ISO 15924 script"`
	Color      bool   `desc:"Resolve color layers"`
	Verbose    bool   `short:"v" desc:"Debug logging"`
	Input      string `index:"0" desc:"Font file"`
	Text       string `index:"1" desc:"Text to shape"`
}

type Render struct {
	Index      int     `short:"i" default:"0" desc:"Font index for font collections"`
	Features   string  `short:"f" desc:"Features, e.g. liga=0,kern"`
	Variations string  `short:"V" desc:"Variation location, e.g. wght=700,wdth=80"`
	Direction  string  `short:"d" default:"auto" desc:"Direction: auto, ltr, rtl, ttb or btt"`
	Language   string  `short:"l" desc:"BCP 47 language"`
	Script     string  `short:"s" desc:"ISO 15924 script"`
	Color      bool    `desc:"Resolve color layers"`
	Palette    int     `short:"p" default:"0" desc:"Palette index"`
	PPEM       float64 `default:"96" desc:"Pixels per em-square"`
	Output     string  `short:"o" default:"out.png" desc:"Output filename"`
	Verbose    bool    `short:"v" desc:"Debug logging"`
	Input      string  `index:"0" desc:"Font file"`
	Text       string  `index:"1" desc:"Text to shape"`
}

type Repl struct {
	Index   int    `short:"i" default:"0" desc:"Font index for font collections"`
	Verbose bool   `short:"v" desc:"Debug logging"`
	Input   string `index:"0" desc:"Font file"`
}

func main() {
	root := argp.NewCmd(&Goggles{}, "Font preview toolkit")
	root.AddCmd(&Info{}, "info", "Print font metadata")
	root.AddCmd(&List{}, "list", "List the fonts in files and directories")
	root.AddCmd(&Shape{}, "shape", "Shape text and print the glyph run")
	root.AddCmd(&Render{}, "render", "Shape text and write a PNG")
	root.AddCmd(&Repl{}, "repl", "Interactive shaping session")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Goggles) Run() error {
	return argp.ShowUsage
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	goggles.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// openFont opens path, falling back to the file's magic bytes when the
// extension is missing or unknown.
func openFont(ctx context.Context, path string, index int) (*font.Handle, error) {
	key := goggles.FontKey{Path: path, Index: index}
	op, ok := goggles.Lookup(path)
	if !ok {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if op, ok = goggles.LookupExt(goggles.Sniff(b)); !ok {
			return nil, fmt.Errorf("%w: %s", goggles.ErrUnsupportedFormat, path)
		}
	}
	h, _, err := op.Open(ctx, key, nil)
	return h, err
}

func shapeOptions(features, variations, direction, language, script string) (font.ShapeOptions, error) {
	var opts font.ShapeOptions
	var err error
	if opts.Features, err = font.ParseFeatures(features); err != nil {
		return opts, err
	}
	if opts.Variations, err = font.ParseLocation(variations); err != nil {
		return opts, err
	}
	if opts.Direction, err = font.ParseDirection(direction); err != nil {
		return opts, err
	}
	opts.Language = language
	opts.Script = script
	return opts, nil
}

func (cmd *Info) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	setupLogging(cmd.Verbose)

	h, err := openFont(context.Background(), cmd.Input, cmd.Index)
	if err != nil {
		return err
	}
	defer h.Close()

	info, err := goggles.ReadSortInfo(cmd.Input, cmd.Index)
	if err != nil {
		pterm.Warning.Println("sort info:", err)
	}

	data := pterm.TableData{
		{"Property", "Value"},
		{"Key", h.Key().String()},
		{"Kind", h.Kind().String()},
		{"Collection member", strconv.FormatBool(h.IsCollectionMember())},
		{"Units per em", strconv.Itoa(h.UnitsPerEm())},
	}
	if v := info.FamilyName; v != nil {
		data = append(data, []string{"Family", *v})
	}
	if v := info.StyleName; v != nil {
		data = append(data, []string{"Style", *v})
	}
	if v := info.Weight; v != nil {
		data = append(data, []string{"Weight", strconv.Itoa(*v)})
	}
	if v := info.Width; v != nil {
		data = append(data, []string{"Width", strconv.Itoa(*v)})
	}
	if v := info.ItalicAngle; v != nil {
		data = append(data, []string{"Italic angle", strconv.FormatFloat(*v, 'g', -1, 64)})
	}
	for _, a := range h.Axes() {
		data = append(data, []string{"Axis " + a.Tag, fmt.Sprintf("%s %g..%g..%g", a.Name, a.Min, a.Default, a.Max)})
	}
	data = append(data,
		[]string{"Palettes", strconv.Itoa(len(h.ColorPalettes()))},
		[]string{"Features", strings.Join(h.Features(), " ")},
		[]string{"Scripts", strings.Join(h.Scripts(), " ")},
		[]string{"Languages", strings.Join(h.Languages(), " ")},
	)
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (cmd *List) Run() error {
	if len(cmd.Inputs) == 0 {
		return argp.ShowUsage
	}
	setupLogging(cmd.Verbose)

	handles, err := goggles.LoadPaths(context.Background(), cmd.Inputs)
	if err != nil {
		return err
	}
	defer func() {
		for _, h := range handles {
			h.Close()
		}
	}()

	data := pterm.TableData{{"Key", "Kind", "Family", "Style", "Weight", "Axes"}}
	for _, h := range handles {
		key := h.Key()
		info, err := goggles.ReadSortInfo(key.Path, key.Index)
		if err != nil {
			pterm.Warning.Println("sort info:", err)
		}
		axes := make([]string, 0, len(h.Axes()))
		for _, a := range h.Axes() {
			axes = append(axes, a.Tag)
		}
		data = append(data, []string{
			key.String(),
			h.Kind().String(),
			deref(info.FamilyName, "-"),
			deref(info.StyleName, "-"),
			weightString(info.Weight),
			strings.Join(axes, " "),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func weightString(w *int) string {
	if w == nil {
		return "-"
	}
	return strconv.Itoa(*w)
}

func (cmd *Shape) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	setupLogging(cmd.Verbose)

	opts, err := shapeOptions(cmd.Features, cmd.Variations, cmd.Direction, cmd.Language, cmd.Script)
	if err != nil {
		return err
	}
	h, err := openFont(context.Background(), cmd.Input, cmd.Index)
	if err != nil {
		return err
	}
	defer h.Close()

	run, err := h.GlyphRun(cmd.Text, opts, cmd.Color)
	if err != nil {
		return err
	}
	return runTable(run).Render()
}

func runTable(run *font.GlyphRun) *pterm.TablePrinter {
	data := pterm.TableData{{"#", "GID", "Name", "Cluster", "AX", "AY", "DX", "DY", "Pos", "Layers"}}
	for i, g := range run.Glyphs {
		layers := "-"
		if g.Drawing.IsLayered() {
			layers = strconv.Itoa(len(g.Drawing.Layers))
		}
		data = append(data, []string{
			strconv.Itoa(i),
			strconv.Itoa(int(g.GID)),
			g.Name,
			strconv.Itoa(g.Cluster),
			fmt.Sprintf("%g", g.AX),
			fmt.Sprintf("%g", g.AY),
			fmt.Sprintf("%g", g.DX),
			fmt.Sprintf("%g", g.DY),
			fmt.Sprintf("%g,%g", g.Pos.X, g.Pos.Y),
			layers,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data)
}

func (cmd *Render) Run() error {
	if cmd.Input == "" || cmd.Text == "" {
		return argp.ShowUsage
	}
	setupLogging(cmd.Verbose)

	opts, err := shapeOptions(cmd.Features, cmd.Variations, cmd.Direction, cmd.Language, cmd.Script)
	if err != nil {
		return err
	}
	h, err := openFont(context.Background(), cmd.Input, cmd.Index)
	if err != nil {
		return err
	}
	defer h.Close()

	run, err := h.GlyphRun(cmd.Text, opts, cmd.Color)
	if err != nil {
		return err
	}
	palettes := h.ColorPalettes()
	if cmd.Palette < 0 || cmd.Palette >= len(palettes) {
		return fmt.Errorf("palette %d out of range [0, %d)", cmd.Palette, len(palettes))
	}
	img := preview.Render(run, palettes[cmd.Palette], preview.Options{PixelsPerEm: cmd.PPEM, Margin: 8})

	f, err := os.Create(cmd.Output)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	pterm.Info.Println("wrote", cmd.Output)
	return nil
}
