package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fpgakit/placer/pkg/fabric"
	"github.com/fpgakit/placer/pkg/netlist"
	"github.com/fpgakit/placer/pkg/place"
)

// placementDoc is the wire form of a placement: the fabric and netlist it
// was computed against plus the node to site assignments. Cost is present
// only when the placement is total.
type placementDoc struct {
	Fabric      *fabric.Grid       `json:"fabric"`
	Netlist     *netlist.Netlist   `json:"netlist"`
	Assignments []place.Assignment `json:"assignments"`
	Cost        *int               `json:"cost,omitempty"`
}

func encodeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFabric encodes a fabric as JSON and writes it to w. The output can
// be re-imported with [ReadFabric].
func WriteFabric(g *fabric.Grid, w io.Writer) error {
	return encodeIndented(w, g)
}

// ExportFabric writes a fabric to a JSON file at path.
// This is a convenience wrapper around [WriteFabric] for file-based output.
func ExportFabric(g *fabric.Grid, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteFabric(g, f)
}

// WriteNetlist encodes a netlist as JSON and writes it to w. The output can
// be re-imported with [ReadNetlist].
func WriteNetlist(n *netlist.Netlist, w io.Writer) error {
	return encodeIndented(w, n)
}

// ExportNetlist writes a netlist to a JSON file at path.
// This is a convenience wrapper around [WriteNetlist] for file-based output.
func ExportNetlist(n *netlist.Netlist, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteNetlist(n, f)
}

// WritePlacement encodes a placement as a self-contained JSON document:
// the fabric, the netlist, the assignments for every placed node, and the
// wirelength cost when the placement is total. The output can be
// re-imported with [ReadPlacement] without any side files.
func WritePlacement(p *place.Placement, w io.Writer) error {
	doc := placementDoc{
		Fabric:      p.Grid(),
		Netlist:     p.Netlist(),
		Assignments: p.Assignments(),
	}
	if p.IsTotal() {
		cost, err := p.Cost()
		if err != nil {
			return fmt.Errorf("cost: %w", err)
		}
		doc.Cost = &cost
	}
	return encodeIndented(w, doc)
}

// ExportPlacement writes a placement document to a JSON file at path.
// This is a convenience wrapper around [WritePlacement] for file-based output.
func ExportPlacement(p *place.Placement, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WritePlacement(p, f)
}
