package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{" _       _        _        ", "#38bdf8"},
	{"(_)_ __ | |_ __ _| | _____ ", "#22d3ee"},
	{"| | '_ \\| __/ _` | |/ / _ \\", "#2dd4bf"},
	{"| | | | | || (_| |   <  __/", "#34d399"},
	{"|_|_| |_|\\__\\__,_|_|\\_\\___|", "#4ade80"},
}

// PrintBanner writes the intake banner and version to w, colored when w is a terminal.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, out.String(line.text).Foreground(out.Color(line.color)))
	}
	fmt.Fprintln(w, out.String("  insurance application wizard v"+version).Faint())
	fmt.Fprintln(w)
}
