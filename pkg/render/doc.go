// Package render provides visualization rendering for placements.
//
// # Overview
//
// This package contains the rendering pipeline that transforms fabrics,
// netlists and placements into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG, frames to GIF/MP4)
//   - Board visualization (in [board] subpackage)
//   - Node-link diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). These are used by both
// board and node-link renderers.
//
//	svg := board.RenderSVG(p, board.WithEdges())
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// The [FramesToGIF] and [FramesToMP4] functions assemble per-step PNG
// frames (one per search snapshot) into an animation using the external
// ffmpeg tool. This is how search runs become movies of the placement
// converging.
//
// # Board Visualization
//
// The [board] subpackage renders a placement as the fabric grid itself:
// one colored cell per site, node markers on occupied sites, and optional
// net edges drawn between connected nodes. This is the primary
// visualization for judging a placement by eye.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the netlist as a traditional directed
// graph diagram using Graphviz, independent of any placement. Nodes appear
// as boxes colored by site type, connected by arrows.
//
//	dot := nodelink.ToDOT(net, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//
// [board]: github.com/fpgakit/placer/pkg/render/board
// [nodelink]: github.com/fpgakit/placer/pkg/render/nodelink
package render
