package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/kamstrup/intmap"
	"github.com/plus3/pentis/grid"
	"github.com/plus3/pentis/piece"
	"github.com/plus3/pentis/playfield"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	activeColor = color.New(color.FgYellow, color.Bold)
	stackColor  = color.New(color.FgCyan)

	shapePalette = []*color.Color{
		color.New(color.FgRed),
		color.New(color.FgGreen),
		color.New(color.FgYellow),
		color.New(color.FgBlue),
		color.New(color.FgMagenta),
		color.New(color.FgCyan),
	}
)

// writeShape prints s top row first, filled cells in c.
func writeShape(w io.Writer, s piece.Shape, c *color.Color) {
	for _, row := range strings.Split(s.String(), "\n") {
		for _, r := range row {
			if r == '#' {
				c.Fprint(w, "#")
			} else {
				fmt.Fprint(w, ".")
			}
		}
		fmt.Fprintln(w)
	}
}

// writeBoard prints the playfield top row first with side walls. The falling
// piece is drawn as '@' and settled blocks as '#'.
func writeBoard(w io.Writer, snap playfield.Snapshot) {
	active := intmap.NewSet[grid.Key](len(snap.Active))
	for _, c := range snap.Active {
		active.Add(c.Key())
	}
	stack := intmap.NewSet[grid.Key](len(snap.Blocks))
	for _, c := range snap.Blocks {
		stack.Add(c.Key())
	}

	for y := snap.Extent.Height - 1; y >= 0; y-- {
		fmt.Fprint(w, "|")
		for c := range snap.Extent.Row(y) {
			switch {
			case active.Has(c.Key()):
				activeColor.Fprint(w, "@")
			case stack.Has(c.Key()):
				stackColor.Fprint(w, "#")
			default:
				fmt.Fprint(w, " ")
			}
		}
		fmt.Fprintln(w, "|")
	}
	fmt.Fprintln(w, "+"+strings.Repeat("-", snap.Extent.Width)+"+")
}
