package place

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/fpgakit/placer/pkg/fabric"
	"github.com/fpgakit/placer/pkg/netlist"
)

func TestMoveRandomNoFreeSites(t *testing.T) {
	grid := uniformGrid(t, 1, 1, fabric.CLB)
	net := clbNet(t, 1, nil)
	p, _ := New(grid, net)
	p.Place(0, fabric.Coord{X: 0, Y: 0})

	if MoveRandom(p, rand.New(rand.NewSource(1))) {
		t.Error("MoveRandom() reported a change with no free sites")
	}
	if site, _ := p.Site(0); site != (fabric.Coord{X: 0, Y: 0}) {
		t.Errorf("node 0 moved to %v", site)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() after no-op move: %v", err)
	}
}

func TestMoveRandomRelocates(t *testing.T) {
	grid := uniformGrid(t, 3, 1, fabric.CLB)
	net := clbNet(t, 1, nil)
	p, _ := New(grid, net)
	start := fabric.Coord{X: 1, Y: 0}
	p.Place(0, start)

	if !MoveRandom(p, rand.New(rand.NewSource(1))) {
		t.Fatal("MoveRandom() = false with free sites available")
	}
	site, _ := p.Site(0)
	if site == start {
		t.Error("MoveRandom() left the node on its own site")
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() after move: %v", err)
	}
}

func TestSwapRandomLoneTypeNoOp(t *testing.T) {
	grid, err := fabric.New(2, 1)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	grid.Set(fabric.Coord{X: 0, Y: 0}, fabric.CLB)
	grid.Set(fabric.Coord{X: 1, Y: 0}, fabric.IO)

	net, err := netlist.New([]fabric.SiteType{fabric.CLB, fabric.IO}, nil)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	p, _ := New(grid, net)
	p.Place(0, fabric.Coord{X: 0, Y: 0})
	p.Place(1, fabric.Coord{X: 1, Y: 0})
	before := p.Assignments()

	if SwapRandom(p, rand.New(rand.NewSource(1))) {
		t.Error("SwapRandom() reported a change with one node per type")
	}
	if !reflect.DeepEqual(p.Assignments(), before) {
		t.Error("SwapRandom() no-op mutated the placement")
	}
}

func TestSwapRandomExchanges(t *testing.T) {
	grid := uniformGrid(t, 2, 1, fabric.CLB)
	net := clbNet(t, 2, nil)
	p, _ := New(grid, net)
	a := fabric.Coord{X: 0, Y: 0}
	b := fabric.Coord{X: 1, Y: 0}
	p.Place(0, a)
	p.Place(1, b)

	// The partner draw may land on the node itself; retry until the swap
	// takes. Twenty draws without one would mean a broken generator.
	rng := rand.New(rand.NewSource(7))
	changed := false
	for i := 0; i < 20 && !changed; i++ {
		changed = SwapRandom(p, rng)
	}
	if !changed {
		t.Fatal("SwapRandom() never swapped in 20 draws")
	}
	if site, _ := p.Site(0); site != b {
		t.Errorf("node 0 at %v after swap, want %v", site, b)
	}
	if site, _ := p.Site(1); site != a {
		t.Errorf("node 1 at %v after swap, want %v", site, a)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() after swap: %v", err)
	}
}

func TestMoveTowardRequiresStrictImprovement(t *testing.T) {
	// One node sitting exactly on the centroid: every free site is farther,
	// so the operator must decline.
	grid := uniformGrid(t, 3, 1, fabric.CLB)
	net := clbNet(t, 1, nil)
	p, _ := New(grid, net)
	p.Place(0, fabric.Coord{X: 1, Y: 0})

	if MoveToward(p, rand.New(rand.NewSource(1))) {
		t.Error("MoveToward() moved a node already at the centroid")
	}
	if site, _ := p.Site(0); site != (fabric.Coord{X: 1, Y: 0}) {
		t.Errorf("node 0 at %v, want (1,0)", site)
	}
}

func TestMoveTowardCompacts(t *testing.T) {
	// Two nodes at opposite ends of a row. The centroid is the middle, so
	// whichever node is drawn must land exactly there.
	grid := uniformGrid(t, 5, 1, fabric.CLB)
	net := clbNet(t, 2, nil)
	p, _ := New(grid, net)
	p.Place(0, fabric.Coord{X: 0, Y: 0})
	p.Place(1, fabric.Coord{X: 4, Y: 0})

	if !MoveToward(p, rand.New(rand.NewSource(1))) {
		t.Fatal("MoveToward() declined an improving move")
	}

	center := fabric.Coord{X: 2, Y: 0}
	site0, _ := p.Site(0)
	site1, _ := p.Site(1)
	moved := 0
	if site0 == center {
		moved++
		if site1 != (fabric.Coord{X: 4, Y: 0}) {
			t.Errorf("node 1 at %v, want (4,0)", site1)
		}
	}
	if site1 == center {
		moved++
		if site0 != (fabric.Coord{X: 0, Y: 0}) {
			t.Errorf("node 0 at %v, want (0,0)", site0)
		}
	}
	if moved != 1 {
		t.Errorf("nodes at %v and %v, want exactly one at %v", site0, site1, center)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() after directed move: %v", err)
	}
}

func TestMoveTowardNoFreeSites(t *testing.T) {
	grid := uniformGrid(t, 2, 1, fabric.CLB)
	net := clbNet(t, 2, nil)
	p, _ := New(grid, net)
	p.Place(0, fabric.Coord{X: 0, Y: 0})
	p.Place(1, fabric.Coord{X: 1, Y: 0})
	before := p.Assignments()

	if MoveToward(p, rand.New(rand.NewSource(1))) {
		t.Error("MoveToward() reported a change on a full fabric")
	}
	if !reflect.DeepEqual(p.Assignments(), before) {
		t.Error("MoveToward() no-op mutated the placement")
	}
}

func TestOperatorsPreserveValidity(t *testing.T) {
	grid, err := fabric.Simple(10, 10)
	if err != nil {
		t.Fatalf("Simple() unexpected error: %v", err)
	}
	net, err := netlist.Generate(netlist.GenOptions{Nodes: 30, IO: 6, EdgeProb: 0.1}, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	p, err := Random(grid, net, rand.New(rand.NewSource(6)))
	if err != nil {
		t.Fatalf("Random() unexpected error: %v", err)
	}

	ops := []func(*Placement, *rand.Rand) bool{MoveRandom, SwapRandom, MoveToward}
	rng := rand.New(rand.NewSource(8))
	for i := 0; i < 200; i++ {
		ops[i%len(ops)](p, rng)
		if err := p.Validate(); err != nil {
			t.Fatalf("Validate() after %d operator applications: %v", i+1, err)
		}
	}
}
