package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Tone selects the colour of a console line.
type Tone int

const (
	TonePlain Tone = iota
	ToneSuccess
	ToneFailure
	ToneWarning
)

// Console prints report lines, colouring them only when the destination is a
// terminal.
type Console struct {
	out      io.Writer
	colorize bool
	success  *color.Color
	failure  *color.Color
	warning  *color.Color
}

// NewConsole wraps out. Colour is decided once from the writer.
func NewConsole(out io.Writer) *Console {
	return newConsole(out, shouldColorize(out))
}

func newConsole(out io.Writer, colorize bool) *Console {
	c := &Console{
		out:      out,
		colorize: colorize,
		success:  color.New(color.FgGreen),
		failure:  color.New(color.FgRed),
		warning:  color.New(color.FgYellow),
	}
	for _, painter := range []*color.Color{c.success, c.failure, c.warning} {
		if colorize {
			painter.EnableColor()
		} else {
			painter.DisableColor()
		}
	}
	return c
}

// Colorized reports whether lines carry ANSI colour codes.
func (c *Console) Colorized() bool {
	return c.colorize
}

// Println writes one line in the given tone.
func (c *Console) Println(tone Tone, line string) {
	if c == nil || c.out == nil {
		return
	}
	if painter := c.painter(tone); painter != nil {
		line = painter.Sprint(line)
	}
	fmt.Fprintln(c.out, line)
}

func (c *Console) painter(tone Tone) *color.Color {
	switch tone {
	case ToneSuccess:
		return c.success
	case ToneFailure:
		return c.failure
	case ToneWarning:
		return c.warning
	default:
		return nil
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
