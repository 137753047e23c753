package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"c0/internal/diag"
	"c0/internal/source"
)

type palette struct {
	location *color.Color
	error    *color.Color
	warning  *color.Color
	info     *color.Color
	gutter   *color.Color
	caret    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		location: color.New(color.Bold),
		error:    color.New(color.FgRed, color.Bold),
		warning:  color.New(color.FgYellow, color.Bold),
		info:     color.New(color.FgCyan, color.Bold),
		gutter:   color.New(color.FgBlue),
		caret:    color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.location, p.error, p.warning, p.info, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.error
	case diag.SevWarning:
		return p.warning
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: ERROR SEM3002: <Message>
//	   5 |     int x = 2;
//	     |         ^
//
// Диагностика без позиции печатается только заголовком.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if err := prettyOne(w, d, fs, opts, pal); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) error {
	file := fileOf(fs, d)
	path := "<unknown>"
	if file != nil {
		path = formatPath(file.Path, opts.PathMode, opts.BaseDir)
	}
	loc := path
	if d.HasPos {
		loc = fmt.Sprintf("%s:%d:%d", path, d.Pos.Line+1, d.Pos.Col+1)
	}
	if _, err := fmt.Fprintf(w, "%s: %s: %s\n",
		pal.location.Sprint(loc),
		pal.severity(d.Severity).Sprintf("%s %s", d.Severity, d.Code.ID()),
		d.Message,
	); err != nil {
		return err
	}
	if file == nil || !d.HasPos || int(d.Pos.Line) >= len(file.Lines) {
		return nil
	}

	first := d.Pos.Line
	if opts.Context > 0 {
		first = d.Pos.Line - min(d.Pos.Line, uint32(opts.Context))
	}
	width := len(fmt.Sprint(d.Pos.Line + 1))
	for n := first; n <= d.Pos.Line; n++ {
		text := strings.TrimRight(file.Line(n), "\n")
		if _, err := fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", width, n+1), text); err != nil {
			return err
		}
	}
	line := strings.TrimRight(file.Line(d.Pos.Line), "\n")
	_, err := fmt.Fprintf(w, "%s %s%s\n",
		pal.gutter.Sprintf("%*s |", width, ""),
		caretPadding(line, int(d.Pos.Col)),
		pal.caret.Sprint("^"),
	)
	return err
}

// caretPadding returns whitespace as wide as line[:col] on screen. Tabs are
// kept so the caret lines up however the terminal expands them.
func caretPadding(line string, col int) string {
	if col > len(line) {
		col = len(line)
	}
	var sb strings.Builder
	for _, r := range line[:col] {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}
