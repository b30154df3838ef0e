// Package fabric models an FPGA fabric as a fixed grid of typed sites.
//
// # Overview
//
// A fabric is a width×height grid in which every coordinate resolves to
// exactly one site type: a macro kind (CLB, DSP, BRAM, IO) or Empty. Cells
// that were never written read as Empty, so a sparse fabric description
// stays cheap regardless of grid area. The placement engine treats a
// constructed Grid as immutable and shares it read-only across every
// candidate solution.
//
// # Basic Usage
//
// Create a grid with [New], shape it with the builder operations, then
// [Grid.Validate] before handing it to a placer:
//
//	g, _ := fabric.New(64, 64)
//	g.FillBorder(fabric.IO)
//	g.FillCorners(fabric.Empty)
//	g.FillRepeat(1, 1, 62, 62, 1, 1, fabric.CLB)
//	if err := g.Validate(); err != nil {
//	    return err
//	}
//
// [Simple] builds the canonical demo fabric in one call: an IO border with
// Empty corners, a CLB interior, and a BRAM column every tenth column.
//
// # Site Enumeration
//
// [Grid.SitesOf] returns every coordinate of a given macro type in a stable
// column-major order (x ascending, then y). Placement code relies on this
// ordering being deterministic: free-site selection, greedy seeding and
// reproducible runs all derive from it.
//
// # Concurrency
//
// Builder operations are not safe for concurrent use. Once construction is
// finished a Grid is effectively read-only, and all query methods may be
// called from any number of goroutines.
package fabric
