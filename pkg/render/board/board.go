package board

import (
	"bytes"
	"fmt"

	"github.com/fpgakit/placer/pkg/fabric"
	"github.com/fpgakit/placer/pkg/place"
)

// DefaultCellSize is the pixel edge length of one site cell.
const DefaultCellSize = 32.0

const (
	margin       = 16.0
	legendHeight = 40.0
)

// siteFill maps each site type to its cell color.
var siteFill = map[fabric.SiteType]string{
	fabric.Empty: "#e5e7eb",
	fabric.CLB:   "#f87171",
	fabric.DSP:   "#60a5fa",
	fabric.BRAM:  "#4ade80",
	fabric.IO:    "#facc15",
}

// Option configures SVG rendering.
type Option func(*renderer)

type renderer struct {
	cell      float64
	showEdges bool
	labels    bool
	legend    bool
}

// WithCellSize sets the pixel size of one site cell. Non-positive values
// are ignored.
func WithCellSize(px float64) Option {
	return func(r *renderer) {
		if px > 0 {
			r.cell = px
		}
	}
}

// WithEdges draws the net edges between connected placed nodes.
func WithEdges() Option { return func(r *renderer) { r.showEdges = true } }

// WithLabels draws each node's ID on its marker.
func WithLabels() Option { return func(r *renderer) { r.labels = true } }

// WithLegend appends a site type legend strip below the grid.
func WithLegend() Option { return func(r *renderer) { r.legend = true } }

// RenderSVG renders the placement as an SVG board: fabric cells, then net
// edges (if requested), then node markers on top.
func RenderSVG(p *place.Placement, opts ...Option) []byte {
	r := newRenderer(opts...)
	grid := p.Grid()

	var buf bytes.Buffer
	openFrame(&buf, &r, grid)
	renderCells(&buf, &r, grid)
	if r.showEdges {
		renderEdges(&buf, &r, p)
	}
	renderNodes(&buf, &r, p)
	if r.legend {
		renderLegend(&buf, &r, grid)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// RenderFabricSVG renders a bare fabric with no nodes or edges, for
// inspecting a grid before anything is placed on it.
func RenderFabricSVG(g *fabric.Grid, opts ...Option) []byte {
	r := newRenderer(opts...)

	var buf bytes.Buffer
	openFrame(&buf, &r, g)
	renderCells(&buf, &r, g)
	if r.legend {
		renderLegend(&buf, &r, g)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newRenderer(opts ...Option) renderer {
	r := renderer{cell: DefaultCellSize}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func frameSize(r *renderer, g *fabric.Grid) (w, h float64) {
	w = 2*margin + float64(g.Width())*r.cell
	h = 2*margin + float64(g.Height())*r.cell
	if r.legend {
		h += legendHeight
	}
	return w, h
}

func openFrame(buf *bytes.Buffer, r *renderer, g *fabric.Grid) {
	w, h := frameSize(r, g)
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
}

func (r *renderer) cellRect(c fabric.Coord) (x, y float64) {
	return margin + float64(c.X)*r.cell, margin + float64(c.Y)*r.cell
}

func (r *renderer) cellCenter(c fabric.Coord) (x, y float64) {
	x, y = r.cellRect(c)
	return x + r.cell/2, y + r.cell/2
}

func renderCells(buf *bytes.Buffer, r *renderer, g *fabric.Grid) {
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			c := fabric.Coord{X: x, Y: y}
			t, _ := g.At(c)
			px, py := r.cellRect(c)
			fmt.Fprintf(buf, `  <rect class="site" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#9ca3af" stroke-width="1"/>`+"\n",
				px, py, r.cell, r.cell, siteFill[t])
		}
	}
}

func renderEdges(buf *bytes.Buffer, r *renderer, p *place.Placement) {
	for _, e := range p.Netlist().Edges() {
		from, okF := p.Site(e.From)
		to, okT := p.Site(e.To)
		if !okF || !okT {
			continue
		}
		x1, y1 := r.cellCenter(from)
		x2, y2 := r.cellCenter(to)
		fmt.Fprintf(buf, `  <line class="net" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#1f2937" stroke-width="1.5" stroke-opacity="0.55"/>`+"\n",
			x1, y1, x2, y2)
	}
}

func renderNodes(buf *bytes.Buffer, r *renderer, p *place.Placement) {
	for _, a := range p.Assignments() {
		cx, cy := r.cellCenter(a.Site)
		fmt.Fprintf(buf, `  <circle class="node" id="node-%d" cx="%.1f" cy="%.1f" r="%.1f" fill="#111827" fill-opacity="0.85"/>`+"\n",
			a.Node, cx, cy, r.cell*0.32)
		if r.labels {
			fmt.Fprintf(buf, `  <text class="node-label" x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-family="monospace" font-size="%.1f" fill="#ffffff">%d</text>`+"\n",
				cx, cy, r.cell*0.34, a.Node)
		}
	}
}

func renderLegend(buf *bytes.Buffer, r *renderer, g *fabric.Grid) {
	_, h := frameSize(r, g)
	y := h - legendHeight + 12
	x := margin
	for _, t := range append(fabric.MacroTypes(), fabric.Empty) {
		fmt.Fprintf(buf, `  <rect class="legend" x="%.1f" y="%.1f" width="12" height="12" fill="%s" stroke="#9ca3af"/>`+"\n",
			x, y, siteFill[t])
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="monospace" font-size="12" fill="#111827">%s</text>`+"\n",
			x+16, y+10, t)
		x += 16 + 12 + float64(len(t.String()))*7.2 + 14
	}
}
