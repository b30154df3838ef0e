package place

import (
	"errors"
	"fmt"

	"github.com/fpgakit/placer/pkg/fabric"
	"github.com/fpgakit/placer/pkg/netlist"
)

var (
	// ErrPartialPlacement is returned by [Placement.Cost] and
	// [Placement.Validate] when some node has no site yet. Cost is only
	// defined for total placements.
	ErrPartialPlacement = errors.New("placement is not total")

	// ErrSiteConflict is returned by [Placement.Validate] when two nodes
	// occupy the same site.
	ErrSiteConflict = errors.New("two nodes share a site")

	// ErrTypeMismatch is returned by [Placement.Validate] when a node sits
	// on a site of a different type than it requires.
	ErrTypeMismatch = errors.New("node placed on incompatible site type")
)

// Placement assigns netlist nodes to fabric sites. The grid and netlist are
// shared read-only inputs; only the assignment itself belongs to the
// placement, which keeps [Placement.Clone] cheap.
//
// The mutating primitives perform no invariant checking. They are intended
// for the move operators and initial-placement strategies, which maintain
// the invariants by construction; [Placement.Validate] exists to assert
// them.
type Placement struct {
	grid *fabric.Grid
	net  *netlist.Netlist

	coords   []fabric.Coord        // node index -> site, meaningful when placed
	placed   []bool                // node index -> has a site
	occupied map[fabric.Coord]int  // site -> node index
	total    int                   // count of placed nodes
}

// New creates an empty placement over grid and net. It fails with
// [netlist.ErrInsufficientSites] when any node type outnumbers its sites;
// an infeasible pairing can never be placed, so this is checked before any
// placement attempt.
func New(grid *fabric.Grid, net *netlist.Netlist) (*Placement, error) {
	if err := netlist.CheckCapacity(grid, net); err != nil {
		return nil, err
	}
	return &Placement{
		grid:     grid,
		net:      net,
		coords:   make([]fabric.Coord, net.NodeCount()),
		placed:   make([]bool, net.NodeCount()),
		occupied: make(map[fabric.Coord]int, net.NodeCount()),
	}, nil
}

// Grid returns the shared fabric grid.
func (p *Placement) Grid() *fabric.Grid { return p.grid }

// Netlist returns the shared netlist.
func (p *Placement) Netlist() *netlist.Netlist { return p.net }

// Site returns the site of node and whether the node is placed.
func (p *Placement) Site(node int) (fabric.Coord, bool) {
	if !p.placed[node] {
		return fabric.Coord{}, false
	}
	return p.coords[node], true
}

// IsTotal reports whether every node has a site.
func (p *Placement) IsTotal() bool { return p.total == p.net.NodeCount() }

// PossibleSites returns all free sites of the given type, in the grid's
// stable site order. A node's own site counts as occupied, so relocating a
// node never offers its current site.
func (p *Placement) PossibleSites(t fabric.SiteType) []fabric.Coord {
	all := p.grid.SitesOf(t)
	free := make([]fabric.Coord, 0, len(all))
	for _, site := range all {
		if _, taken := p.occupied[site]; !taken {
			free = append(free, site)
		}
	}
	return free
}

// Place assigns node to site, overwriting any previous assignment of the
// node and freeing its old site. No uniqueness or type check is performed;
// callers pick sites from [Placement.PossibleSites] to preserve validity.
func (p *Placement) Place(node int, site fabric.Coord) {
	if p.placed[node] {
		delete(p.occupied, p.coords[node])
	} else {
		p.placed[node] = true
		p.total++
	}
	p.coords[node] = site
	p.occupied[site] = node
}

// Swap exchanges the sites of two placed nodes. Both nodes must already be
// placed and, for the result to stay valid, must require the same site
// type. Swapping a node with itself is a no-op.
func (p *Placement) Swap(a, b int) {
	if a == b {
		return
	}
	sa, sb := p.coords[a], p.coords[b]
	p.coords[a], p.coords[b] = sb, sa
	p.occupied[sa] = b
	p.occupied[sb] = a
}

// Cost returns the total wirelength: the sum over all netlist edges of the
// Manhattan distance between the edge's endpoint sites. It returns
// [ErrPartialPlacement] when any node is unplaced.
func (p *Placement) Cost() (int, error) {
	if !p.IsTotal() {
		return 0, fmt.Errorf("%w: %d of %d nodes placed", ErrPartialPlacement, p.total, p.net.NodeCount())
	}
	cost := 0
	for _, e := range p.net.Edges() {
		cost += p.coords[e.From].Manhattan(p.coords[e.To])
	}
	return cost, nil
}

// Validate re-derives the placement invariants from scratch: totality,
// injectivity, type compatibility and bounds. It is meant for assertions
// and tests, not the search hot path.
func (p *Placement) Validate() error {
	if !p.IsTotal() {
		return fmt.Errorf("%w: %d of %d nodes placed", ErrPartialPlacement, p.total, p.net.NodeCount())
	}
	seen := make(map[fabric.Coord]int, len(p.coords))
	for node, site := range p.coords {
		if prev, dup := seen[site]; dup {
			return fmt.Errorf("%w: nodes %d and %d at %v", ErrSiteConflict, prev, node, site)
		}
		seen[site] = node

		got, err := p.grid.At(site)
		if err != nil {
			return fmt.Errorf("node %d: %w", node, err)
		}
		if want := p.net.Node(node).Type; got != want {
			return fmt.Errorf("%w: node %d requires %s, site %v is %s", ErrTypeMismatch, node, want, site, got)
		}
	}
	return nil
}

// Clone returns an independent copy of the placement sharing the grid and
// netlist. Mutating the clone never affects the original.
func (p *Placement) Clone() *Placement {
	coords := make([]fabric.Coord, len(p.coords))
	copy(coords, p.coords)
	placed := make([]bool, len(p.placed))
	copy(placed, p.placed)
	occupied := make(map[fabric.Coord]int, len(p.occupied))
	for site, node := range p.occupied {
		occupied[site] = node
	}
	return &Placement{
		grid:     p.grid,
		net:      p.net,
		coords:   coords,
		placed:   placed,
		occupied: occupied,
		total:    p.total,
	}
}

// Centroid returns the integer-truncated mean position of all placed nodes.
// The second return is false when nothing is placed yet.
func (p *Placement) Centroid() (fabric.Coord, bool) {
	if p.total == 0 {
		return fabric.Coord{}, false
	}
	sumX, sumY := 0, 0
	for node, site := range p.coords {
		if !p.placed[node] {
			continue
		}
		sumX += site.X
		sumY += site.Y
	}
	return fabric.Coord{X: sumX / p.total, Y: sumY / p.total}, true
}
