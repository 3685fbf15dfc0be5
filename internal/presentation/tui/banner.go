// Package tui holds the terminal presentation: banner, colored verdicts,
// step traces and markdown rendering.
package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner.
func PrintBanner(w io.Writer, profile termenv.Profile) {
	// Teal to indigo gradient.
	lines := []struct{ text, color string }{
		{" _____           _", "#2dd4bf"},
		{"|_   _|   _ _ __(_)_ __   __ _", "#22d3ee"},
		{"  | || | | | '__| | '_ \\ / _` |", "#38bdf8"},
		{"  | || |_| | |  | | | | | (_| |", "#60a5fa"},
		{"  |_| \\__,_|_|  |_|_| |_|\\__, |", "#818cf8"},
		{"                         |___/", "#a78bfa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, profile.String(l.text).Foreground(profile.Color(l.color)))
	}
	fmt.Fprintln(w)
}
