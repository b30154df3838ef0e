package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fpgakit/placer/pkg/fabric"
	"github.com/fpgakit/placer/pkg/netlist"
	"github.com/fpgakit/placer/pkg/place"
)

// ReadFabric decodes a JSON fabric from r.
//
// The input must be an object with "width", "height" and a column-major
// "sites" array; see [fabric.Grid.UnmarshalJSON] for the accepted site
// fields. Dimension and site type validation happens during decoding, so
// a successful ReadFabric always returns a usable grid. ReadFabric does
// not close r.
func ReadFabric(r io.Reader) (*fabric.Grid, error) {
	var g fabric.Grid
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &g, nil
}

// ImportFabric reads a JSON file at path and returns the decoded fabric.
// The error wraps the underlying cause with the file path for context.
func ImportFabric(path string) (*fabric.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadFabric(f)
}

// ReadNetlist decodes a JSON netlist from r.
//
// The input must be an object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": 0, "type": "clb"}, {"id": 1, "type": "io"}],
//	  "edges": [{"from": 0, "to": 1}]
//	}
//
// Node IDs must cover 0..n-1 exactly once (any order), node types must be
// macro types, and edges must reference valid IDs without self-loops.
// Decoding revalidates all of this, so a successful ReadNetlist always
// returns a well-formed netlist. ReadNetlist does not close r.
func ReadNetlist(r io.Reader) (*netlist.Netlist, error) {
	var n netlist.Netlist
	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &n, nil
}

// ImportNetlist reads a JSON file at path and returns the decoded netlist.
// The error wraps the underlying cause with the file path for context.
func ImportNetlist(path string) (*netlist.Netlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadNetlist(f)
}

// ReadPlacement decodes a placement document written by [WritePlacement]
// and rebuilds the live placement.
//
// The document embeds its own fabric and netlist, so no side files are
// needed. The rebuilt placement is validated against the full invariants
// (site types, uniqueness, bounds); a document whose assignments no longer
// satisfy them is rejected rather than silently loaded. ReadPlacement does
// not close r.
func ReadPlacement(r io.Reader) (*place.Placement, error) {
	var doc placementDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.Fabric == nil || doc.Netlist == nil {
		return nil, errors.New("placement document missing fabric or netlist")
	}

	p, err := place.FromAssignments(doc.Fabric, doc.Netlist, doc.Assignments)
	if err != nil {
		return nil, fmt.Errorf("assignments: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return p, nil
}

// ImportPlacement reads a placement document at path and returns the
// rebuilt placement. The error wraps the underlying cause with the file
// path for context. ImportPlacement returns the same validation errors as
// [ReadPlacement] for malformed or stale documents.
func ImportPlacement(path string) (*place.Placement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPlacement(f)
}
