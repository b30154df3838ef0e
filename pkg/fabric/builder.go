package fabric

import "fmt"

// FillCorners assigns t to the four corner cells.
func (g *Grid) FillCorners(t SiteType) {
	g.Set(Coord{X: 0, Y: 0}, t)
	g.Set(Coord{X: 0, Y: g.height - 1}, t)
	g.Set(Coord{X: g.width - 1, Y: 0}, t)
	g.Set(Coord{X: g.width - 1, Y: g.height - 1}, t)
}

// FillBorder assigns t to every cell on the outer ring of the grid.
func (g *Grid) FillBorder(t SiteType) {
	for x := 0; x < g.width; x++ {
		g.Set(Coord{X: x, Y: 0}, t)
		g.Set(Coord{X: x, Y: g.height - 1}, t)
	}
	for y := 0; y < g.height; y++ {
		g.Set(Coord{X: 0, Y: y}, t)
		g.Set(Coord{X: g.width - 1, Y: y}, t)
	}
}

// FillRepeat tiles t over the rectangle anchored at (x,y) with the given
// extent, visiting cells at stepX/stepY strides. Cells falling outside the
// grid are skipped silently, so a repeat region may safely overhang the
// fabric edge.
func (g *Grid) FillRepeat(x, y, width, height, stepX, stepY int, t SiteType) {
	if stepX < 1 || stepY < 1 {
		return
	}
	for cx := x; cx < x+width; cx += stepX {
		for cy := y; cy < y+height; cy += stepY {
			if cx < 0 || cy < 0 || cx >= g.width || cy >= g.height {
				continue
			}
			g.Set(Coord{X: cx, Y: cy}, t)
		}
	}
}

// Simple builds the canonical demo fabric: an IO ring with Empty corners, a
// CLB interior, and a BRAM column every tenth column starting at x=10. The
// result is validated before it is returned.
//
// Dimensions below 3×3 leave no interior and are rejected.
func Simple(width, height int) (*Grid, error) {
	if width < 3 || height < 3 {
		return nil, fmt.Errorf("%w: simple fabric needs at least 3x3, got %dx%d",
			ErrInvalidDimensions, width, height)
	}

	g, err := New(width, height)
	if err != nil {
		return nil, err
	}

	g.FillBorder(IO)
	g.FillCorners(Empty)
	g.FillRepeat(1, 1, width-2, height-2, 1, 1, CLB)
	g.FillRepeat(10, 1, width-2, height-2, 10, 1, BRAM)

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
