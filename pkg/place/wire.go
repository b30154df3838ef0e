package place

import (
	"errors"
	"fmt"

	"github.com/fpgakit/placer/pkg/fabric"
	"github.com/fpgakit/placer/pkg/netlist"
)

// ErrUnknownNode is returned by [FromAssignments] for assignments naming a
// node the netlist does not have.
var ErrUnknownNode = errors.New("assignment references unknown node")

// Assignment is the serializable form of one node's site. A total placement
// serializes to one assignment per node.
type Assignment struct {
	Node int          `json:"node" bson:"node"`
	Site fabric.Coord `json:"site" bson:"site"`
}

// Assignments returns the current node to site mapping in node order,
// covering placed nodes only.
func (p *Placement) Assignments() []Assignment {
	out := make([]Assignment, 0, p.total)
	for node, site := range p.coords {
		if p.placed[node] {
			out = append(out, Assignment{Node: node, Site: site})
		}
	}
	return out
}

// FromAssignments rebuilds a placement from serialized assignments. Node
// indices are checked against the netlist; semantic validity is not, so
// callers that need the full invariants run [Placement.Validate] on the
// result.
func FromAssignments(grid *fabric.Grid, net *netlist.Netlist, assignments []Assignment) (*Placement, error) {
	p, err := New(grid, net)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		if a.Node < 0 || a.Node >= net.NodeCount() {
			return nil, fmt.Errorf("%w: %d with %d nodes", ErrUnknownNode, a.Node, net.NodeCount())
		}
		p.Place(a.Node, a.Site)
	}
	return p, nil
}
