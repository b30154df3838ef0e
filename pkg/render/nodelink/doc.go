// Package nodelink renders netlists as traditional node-link diagrams.
//
// # Overview
//
// This package produces graph visualizations using Graphviz, where nodes
// appear as boxes connected by lines. It shows the logical structure of a
// netlist independent of any placement; the [board] view shows where the
// nodes landed, this view shows what is wired to what.
//
// # Usage
//
// Convert a netlist to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(net, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include the site type and degree
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// Netlist edges are undirected, so the generated DOT is an undirected
// graph laid out with neato. Nodes are rounded boxes filled with the same
// per-type palette the board renderer uses.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
//
// [board]: github.com/fpgakit/placer/pkg/render/board
package nodelink
