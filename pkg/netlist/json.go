package netlist

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fpgakit/placer/pkg/fabric"
)

// ErrInvalidNodeID is returned when decoding a netlist whose node IDs do not
// form the dense range 0..n-1.
var ErrInvalidNodeID = errors.New("invalid node id")

// netlistJSON is the wire representation. Node IDs may appear in any order
// but must cover 0..n-1 exactly once.
type netlistJSON struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// MarshalJSON encodes the netlist as explicit node and edge lists.
func (n *Netlist) MarshalJSON() ([]byte, error) {
	return json.Marshal(netlistJSON{Nodes: n.nodes, Edges: n.edges})
}

// UnmarshalJSON decodes and validates a netlist. Decoding fails on unknown
// site types, duplicate or out-of-range node IDs, and malformed edges.
func (n *Netlist) UnmarshalJSON(data []byte) error {
	var doc netlistJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	types, err := orderTypes(doc.Nodes)
	if err != nil {
		return err
	}
	decoded, err := New(types, doc.Edges)
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}

// orderTypes arranges node types by ID, rejecting gaps and duplicates.
func orderTypes(nodes []Node) ([]fabric.SiteType, error) {
	types := make([]fabric.SiteType, len(nodes))
	seen := make([]bool, len(nodes))
	for _, node := range nodes {
		if node.ID < 0 || node.ID >= len(nodes) {
			return nil, fmt.Errorf("%w: %d with %d nodes", ErrInvalidNodeID, node.ID, len(nodes))
		}
		if seen[node.ID] {
			return nil, fmt.Errorf("%w: duplicate %d", ErrInvalidNodeID, node.ID)
		}
		seen[node.ID] = true
		types[node.ID] = node.Type
	}
	return types, nil
}
