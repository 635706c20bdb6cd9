package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// palette colors output only when it goes to a terminal.
type palette struct {
	enabled bool
}

func newPalette(w io.Writer) palette {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return palette{}
	}
	f, ok := w.(*os.File)
	if !ok {
		return palette{}
	}
	return palette{enabled: isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())}
}

func (p palette) wrap(code, s string) string {
	if !p.enabled {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

func (p palette) green(s string) string { return p.wrap("32", s) }
func (p palette) red(s string) string   { return p.wrap("31", s) }
