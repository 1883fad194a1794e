package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner shown when the server starts.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	p := out.Profile
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	s1 := out.String("   __               ").Foreground(p.Color("#818cf8"))
	s2 := out.String("  / _|___ _ __ ___  ").Foreground(p.Color("#a78bfa"))
	s3 := out.String(" | |_/ __| '_ ` _ \\ ").Foreground(p.Color("#c084fc"))
	s4 := out.String(" |  _\\__ \\ | | | | |").Foreground(p.Color("#e879f9"))
	s5 := out.String(" |_| |___/_| |_| |_|").Foreground(p.Color("#f472b6"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, s1)
	fmt.Fprintln(w, s2)
	fmt.Fprintln(w, s3)
	fmt.Fprintln(w, s4)
	fmt.Fprintln(w, s5)
	fmt.Fprintln(w)
}
