package pipeline

import (
	"bytes"
	"fmt"

	"github.com/fpgakit/placer/pkg/io"
	"github.com/fpgakit/placer/pkg/render"
	"github.com/fpgakit/placer/pkg/render/board"
	"github.com/fpgakit/placer/pkg/render/nodelink"
	"github.com/fpgakit/placer/pkg/search"
)

// =============================================================================
// Artifact Rendering
// =============================================================================

// RenderArtifacts renders every requested format from a search result.
// The returned map is keyed by format. Animation formats need the result to
// carry per-step snapshots; Execute arranges that automatically.
func RenderArtifacts(res *search.Result, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(res, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderFormat renders one output format from the search result.
func renderFormat(res *search.Result, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := io.WritePlacement(res.Final, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case FormatCSV:
		var buf bytes.Buffer
		if err := search.WriteSeriesCSV(&buf, res.Series); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case FormatDOT:
		dot := nodelink.ToDOT(res.Final.Netlist(), nodelink.Options{Detailed: opts.Labels})
		return []byte(dot), nil

	case FormatGIF, FormatMP4:
		return renderAnimation(res, format, opts)

	case FormatSVG, FormatPNG, FormatPDF:
		if opts.IsNodelink() {
			return renderNodelink(res, format, opts)
		}
		return renderBoard(res, format, opts)

	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// boardOptions converts pipeline render options into board renderer options.
func boardOptions(opts Options) []board.Option {
	var bo []board.Option
	if opts.CellSize > 0 {
		bo = append(bo, board.WithCellSize(opts.CellSize))
	}
	if opts.ShowEdges {
		bo = append(bo, board.WithEdges())
	}
	if opts.Labels {
		bo = append(bo, board.WithLabels())
	}
	if opts.Legend {
		bo = append(bo, board.WithLegend())
	}
	return bo
}

// renderBoard renders the final placement as a board image.
func renderBoard(res *search.Result, format string, opts Options) ([]byte, error) {
	bo := boardOptions(opts)
	switch format {
	case FormatSVG:
		return board.RenderSVG(res.Final, bo...), nil
	case FormatPNG:
		return board.RenderPNG(res.Final, board.WithPNGSVGOptions(bo...))
	case FormatPDF:
		return board.RenderPDF(res.Final, board.WithPDFSVGOptions(bo...))
	}
	return nil, fmt.Errorf("unknown board format: %s", format)
}

// renderNodelink renders the netlist as a node-link diagram via Graphviz.
func renderNodelink(res *search.Result, format string, opts Options) ([]byte, error) {
	dot := nodelink.ToDOT(res.Final.Netlist(), nodelink.Options{Detailed: opts.Labels})
	switch format {
	case FormatSVG:
		return nodelink.RenderSVG(dot)
	case FormatPNG:
		return nodelink.RenderPNG(dot, 2.0)
	case FormatPDF:
		return nodelink.RenderPDF(dot)
	}
	return nil, fmt.Errorf("unknown nodelink format: %s", format)
}

// renderAnimation renders the search snapshots as a GIF or MP4. One PNG
// frame is produced per snapshot; the driver's snapshot cadence bounds the
// frame count, and the final state is always the closing frame.
func renderAnimation(res *search.Result, format string, opts Options) ([]byte, error) {
	if len(res.Snapshots) == 0 {
		return nil, fmt.Errorf("animation needs per-step snapshots (run the search with snapshots enabled)")
	}

	bo := boardOptions(opts)
	frames := make([][]byte, 0, len(res.Snapshots))
	for i, snap := range res.Snapshots {
		svg := board.RenderSVG(snap, bo...)
		png, err := render.ToPNG(svg, 1.0)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frames = append(frames, png)
	}

	if format == FormatGIF {
		return render.FramesToGIF(frames, opts.FPS)
	}
	return render.FramesToMP4(frames, opts.FPS)
}
