// Package pkg provides the core libraries for placer.
//
// # Overview
//
// Placer maps a netlist of typed nodes onto a grid of FPGA sites and
// improves total wirelength by parallel strict-descent search. The pkg
// directory is organized into four main areas:
//
//  1. Domain - fabric, netlist, place, search
//  2. Pipeline - the fabric → netlist → initial → search → render flow
//  3. Infrastructure - cache, runs, io, errors, observability
//  4. Rendering - board and node-link output plus format conversion
//
// # Architecture
//
// The typical data flow through placer:
//
//	Fabric + Netlist
//	       ↓
//	  [place] package (seed a valid total placement)
//	       ↓
//	  [search] package (parallel strict-descent improvement)
//	       ↓
//	  [render] package (board / node-link output)
//	       ↓
//	  SVG/PNG/PDF/GIF/MP4/JSON/CSV output
//
// # Quick Start
//
// Run the full pipeline:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Width:   64,
//	    Height:  64,
//	    Nodes:   300,
//	    Formats: []string{"svg"},
//	})
//
// Or drive the stages directly:
//
//	grid, _ := fabric.Simple(64, 64)
//	net, _ := netlist.Generate(netlist.GenOptions{Nodes: 300}, rng)
//	initial, _ := place.Initial(place.StrategyRandom, grid, net, rng)
//	res, _ := search.Run(ctx, initial, search.Options{Steps: 1000})
//	svg := board.RenderSVG(res.Final)
//
// # Main Packages
//
// [fabric] - The site grid: typed sites (CLB, DSP, BRAM, IO), coordinates
// with Manhattan distance, builders for synthetic fabrics.
//
// [netlist] - Typed nodes and undirected edges, plus seeded random
// generation with relabeling and isolated-node connection.
//
// [place] - Placements mapping nodes to compatible sites, wirelength cost,
// initial placement strategies, and the three move operators.
//
// [search] - The parallel strict-descent driver: candidate fan-out per
// step, deterministic per-slot RNG streams, cost series and snapshots.
//
// [pipeline] - The complete flow used by CLI and API, with per-stage
// caching and run archiving.
//
// [cache] - Byte caches (file, Redis, null) keyed by content hashes of the
// stage inputs.
//
// [runs] - Durable run records with file and MongoDB stores.
//
// [render] - Board and node-link renderers plus SVG→PNG/PDF conversion and
// frame animation.
//
// [io] - JSON import/export for fabrics, netlists and placements.
//
// [errors] - Error codes, user-facing messages and input validation.
//
// [observability] - Hook registry for pipeline, search, cache and HTTP
// instrumentation.
//
// [fabric]: https://pkg.go.dev/github.com/fpgakit/placer/pkg/fabric
// [netlist]: https://pkg.go.dev/github.com/fpgakit/placer/pkg/netlist
// [place]: https://pkg.go.dev/github.com/fpgakit/placer/pkg/place
// [search]: https://pkg.go.dev/github.com/fpgakit/placer/pkg/search
// [pipeline]: https://pkg.go.dev/github.com/fpgakit/placer/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/fpgakit/placer/pkg/cache
// [runs]: https://pkg.go.dev/github.com/fpgakit/placer/pkg/runs
// [render]: https://pkg.go.dev/github.com/fpgakit/placer/pkg/render
// [io]: https://pkg.go.dev/github.com/fpgakit/placer/pkg/io
// [errors]: https://pkg.go.dev/github.com/fpgakit/placer/pkg/errors
// [observability]: https://pkg.go.dev/github.com/fpgakit/placer/pkg/observability
package pkg
