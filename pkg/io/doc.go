// Package io provides JSON import and export for fabrics, netlists and
// placements.
//
// # Overview
//
// This package is the file boundary of the placer. Everything the engine
// works on (the site grid, the macro netlist, a computed placement) has a
// stable JSON form so that:
//
//   - Fabrics and netlists can be authored by hand or by external tools
//   - Placements survive a process restart and can be rendered later
//   - Search pipelines can cache and diff intermediate artifacts
//   - Round-trip fidelity holds: export, re-import, and continue searching
//
// # Fabric Format
//
// A fabric is an object with dimensions and a column-major site list:
//
//	{
//	  "width": 4,
//	  "height": 4,
//	  "sites": [
//	    {"x": 0, "y": 0, "type": "io"},
//	    {"x": 0, "y": 1, "type": "clb"}
//	  ]
//	}
//
// Omitted coordinates default to the empty site type. Site types are the
// lowercase names "empty", "clb", "dsp", "bram" and "io".
//
// # Netlist Format
//
// A netlist is an object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": 0, "type": "clb"}, {"id": 1, "type": "io"}],
//	  "edges": [{"from": 0, "to": 1}]
//	}
//
// Node IDs must cover 0..n-1 exactly once; types must be macro types;
// edges reference IDs and must not be self-loops. Import revalidates all
// of this, so a netlist that decodes is a netlist the engine accepts.
//
// # Placement Format
//
// A placement document is self-contained: it embeds the fabric and the
// netlist alongside the assignments, plus the wirelength cost when every
// node is placed. [ReadPlacement] rebuilds the live placement and runs the
// full invariant check, so a document edited by hand into an inconsistent
// state is rejected at import time rather than corrupting a later search.
//
// # Import and Export
//
// Each artifact has a Reader/Writer pair ([ReadNetlist], [WriteNetlist])
// and a path-based convenience pair ([ImportNetlist], [ExportNetlist]):
//
//	net, err := io.ImportNetlist("design.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Errors are wrapped with the file path or the failing section for
// context; use errors.Is to check for the underlying fabric, netlist or
// placement errors.
//
// # Concurrency
//
// All functions are safe to call concurrently with other readers of the
// same values, but not with concurrent modifications. Imported values are
// independent instances that can be modified freely.
//
// # Series Export
//
// The cost-per-step series of a search is not part of this package; it is
// a flat table, not a document, and lives next to the search loop as
// [search.WriteSeriesCSV].
//
// [search.WriteSeriesCSV]: github.com/fpgakit/placer/pkg/search.WriteSeriesCSV
package io
