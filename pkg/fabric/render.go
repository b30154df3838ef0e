package fabric

import (
	"fmt"
	"strings"
)

// Summary returns a human-readable description of the grid: dimensions and
// per-type site counts.
func (g *Grid) Summary() string {
	counts := g.CountByType()

	var b strings.Builder
	fmt.Fprintf(&b, "Fabric %dx%d\n", g.width, g.height)
	fmt.Fprintf(&b, "CLB count: %d\n", counts[CLB])
	fmt.Fprintf(&b, "DSP count: %d\n", counts[DSP])
	fmt.Fprintf(&b, "BRAM count: %d\n", counts[BRAM])
	fmt.Fprintf(&b, "IO count: %d\n", counts[IO])
	fmt.Fprintf(&b, "Empty count: %d\n", counts[Empty])
	return b.String()
}

// ASCII renders the grid as a box-drawing diagram with one letter per site
// (C, D, B, I; Empty cells are blank). Intended for terminals and quick
// inspection of small fabrics; a 64×64 grid produces a very wide diagram.
func (g *Grid) ASCII() string {
	var b strings.Builder

	// Top edge
	for x := 0; x < g.width; x++ {
		if x == 0 {
			b.WriteString("┌───")
		} else {
			b.WriteString("┬───")
		}
	}
	b.WriteString("┐\n")

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			t := g.sites[Coord{X: x, Y: y}]
			fmt.Fprintf(&b, "│ %c ", t.Rune())
		}
		b.WriteString("│\n")

		if y < g.height-1 {
			for x := 0; x < g.width; x++ {
				if x == 0 {
					b.WriteString("├───")
				} else {
					b.WriteString("┼───")
				}
			}
			b.WriteString("┤\n")
		}
	}

	// Bottom edge
	for x := 0; x < g.width; x++ {
		if x == 0 {
			b.WriteString("└───")
		} else {
			b.WriteString("┴───")
		}
	}
	b.WriteString("┘\n")

	return b.String()
}
