package board

import (
	"strings"
	"testing"

	"github.com/fpgakit/placer/pkg/fabric"
	"github.com/fpgakit/placer/pkg/netlist"
	"github.com/fpgakit/placer/pkg/place"
)

func testPlacement(t *testing.T) *place.Placement {
	t.Helper()
	grid, err := fabric.New(4, 4)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			grid.Set(fabric.Coord{X: x, Y: y}, fabric.CLB)
		}
	}

	net, err := netlist.New(
		[]fabric.SiteType{fabric.CLB, fabric.CLB},
		[]netlist.Edge{{From: 0, To: 1}},
	)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	p, err := place.New(grid, net)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	p.Place(0, fabric.Coord{X: 0, Y: 0})
	p.Place(1, fabric.Coord{X: 0, Y: 1})
	return p
}

func TestRenderSVGFrame(t *testing.T) {
	svg := string(RenderSVG(testPlacement(t)))

	// 4 cells * 32px + 2 * 16px margin per axis.
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 160.0 160.0" width="160" height="160">`
	if !strings.Contains(svg, want) {
		t.Errorf("missing frame element %q", want)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("SVG not closed")
	}
}

func TestRenderSVGCells(t *testing.T) {
	svg := string(RenderSVG(testPlacement(t)))

	if got := strings.Count(svg, `class="site"`); got != 16 {
		t.Errorf("site cell count = %d, want 16", got)
	}
	// Uniform CLB fabric renders in the CLB color only.
	if !strings.Contains(svg, siteFill[fabric.CLB]) {
		t.Error("missing CLB fill color")
	}
	if strings.Contains(svg, siteFill[fabric.BRAM]) {
		t.Error("unexpected BRAM fill color on a CLB-only fabric")
	}
}

func TestRenderSVGNodes(t *testing.T) {
	svg := string(RenderSVG(testPlacement(t)))

	if got := strings.Count(svg, `class="node"`); got != 2 {
		t.Errorf("node marker count = %d, want 2", got)
	}
	// Node 0 at site (0,0): cell center is margin + cell/2 = 32.
	if !strings.Contains(svg, `id="node-0" cx="32.0" cy="32.0"`) {
		t.Error("node 0 marker not at site (0,0)")
	}
	if !strings.Contains(svg, `id="node-1" cx="32.0" cy="64.0"`) {
		t.Error("node 1 marker not at site (0,1)")
	}

	// Edges and labels are opt-in.
	if strings.Contains(svg, `class="net"`) {
		t.Error("edges rendered without WithEdges")
	}
	if strings.Contains(svg, `class="node-label"`) {
		t.Error("labels rendered without WithLabels")
	}
}

func TestRenderSVGWithEdges(t *testing.T) {
	svg := string(RenderSVG(testPlacement(t), WithEdges()))

	if got := strings.Count(svg, `class="net"`); got != 1 {
		t.Errorf("edge count = %d, want 1", got)
	}
	if !strings.Contains(svg, `x1="32.0" y1="32.0" x2="32.0" y2="64.0"`) {
		t.Error("edge does not connect the two occupied sites")
	}
}

func TestRenderSVGWithLabels(t *testing.T) {
	svg := string(RenderSVG(testPlacement(t), WithLabels()))

	if got := strings.Count(svg, `class="node-label"`); got != 2 {
		t.Errorf("label count = %d, want 2", got)
	}
	if !strings.Contains(svg, ">0</text>") || !strings.Contains(svg, ">1</text>") {
		t.Error("labels do not carry the node IDs")
	}
}

func TestRenderSVGWithLegend(t *testing.T) {
	svg := string(RenderSVG(testPlacement(t), WithLegend()))

	if !strings.Contains(svg, `viewBox="0 0 160.0 200.0"`) {
		t.Error("legend did not extend the frame height")
	}
	for _, name := range []string{"clb", "dsp", "bram", "io", "empty"} {
		if !strings.Contains(svg, ">"+name+"</text>") {
			t.Errorf("legend missing entry %q", name)
		}
	}
}

func TestRenderSVGWithCellSize(t *testing.T) {
	svg := string(RenderSVG(testPlacement(t), WithCellSize(10)))

	if !strings.Contains(svg, `viewBox="0 0 72.0 72.0"`) {
		t.Error("cell size not applied to the frame")
	}
}

func TestRenderFabricSVG(t *testing.T) {
	grid, err := fabric.Simple(8, 8)
	if err != nil {
		t.Fatalf("Simple() unexpected error: %v", err)
	}
	svg := string(RenderFabricSVG(grid, WithLegend()))

	if got := strings.Count(svg, `class="site"`); got != 64 {
		t.Errorf("site cell count = %d, want 64", got)
	}
	if strings.Contains(svg, `class="node"`) {
		t.Error("bare fabric should have no node markers")
	}
	// Simple fabrics have an IO ring and a CLB core.
	if !strings.Contains(svg, siteFill[fabric.IO]) || !strings.Contains(svg, siteFill[fabric.CLB]) {
		t.Error("missing IO or CLB fill colors")
	}
}

func TestWithCellSizeOption(t *testing.T) {
	r := renderer{cell: DefaultCellSize}
	WithCellSize(48)(&r)
	if r.cell != 48 {
		t.Errorf("cell = %v, want 48", r.cell)
	}
	WithCellSize(-1)(&r)
	if r.cell != 48 {
		t.Error("non-positive cell size should be ignored")
	}
}

func TestRenderOptions(t *testing.T) {
	r := renderer{}
	WithEdges()(&r)
	WithLabels()(&r)
	WithLegend()(&r)
	if !r.showEdges || !r.labels || !r.legend {
		t.Errorf("options not applied: %+v", r)
	}
}
