package netlist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fpgakit/placer/pkg/fabric"
)

var (
	// ErrEmptySiteType is returned by [New] when a node requires the Empty
	// site type. Empty sites can never host a node.
	ErrEmptySiteType = errors.New("node requires a macro site type")

	// ErrInvalidEdgeEndpoint is returned by [New] when an edge references a
	// node index outside the node range.
	ErrInvalidEdgeEndpoint = errors.New("edge endpoint out of range")

	// ErrSelfEdge is returned by [New] for edges connecting a node to
	// itself. A self edge always contributes zero wirelength and indicates
	// a malformed netlist.
	ErrSelfEdge = errors.New("self edge")

	// ErrInsufficientSites is returned by [CheckCapacity] when the fabric
	// has fewer sites of some macro type than the netlist has nodes of that
	// type. Placement is infeasible and must not be attempted.
	ErrInsufficientSites = errors.New("insufficient sites for netlist")
)

// Node is one element to place. ID is the node's dense index within its
// netlist; Type is the site type it must occupy.
type Node struct {
	ID   int             `json:"id" bson:"id"`
	Type fabric.SiteType `json:"type" bson:"type"`
}

// Edge is a directed connection between two nodes, identified by index.
// Direction is retained for round-trip fidelity but the wirelength objective
// treats edges as undirected.
type Edge struct {
	From int `json:"from" bson:"from"`
	To   int `json:"to" bson:"to"`
}

// Netlist is an immutable graph of typed nodes. The zero value is not
// usable; construct with [New] or [Generate].
//
// Netlists are read-only after construction and safe for concurrent use.
type Netlist struct {
	nodes []Node
	edges []Edge
	adj   [][]int32 // node index -> neighbor indices, both directions
}

// New creates a netlist from node site types and connectivity.
// Node i receives ID i and requires types[i]. Every type must be a macro
// type, every edge endpoint must be a valid index, and self edges are
// rejected.
func New(types []fabric.SiteType, edges []Edge) (*Netlist, error) {
	nodes := make([]Node, len(types))
	for i, t := range types {
		if !t.IsMacro() {
			return nil, fmt.Errorf("%w: node %d", ErrEmptySiteType, i)
		}
		nodes[i] = Node{ID: i, Type: t}
	}

	adj := make([][]int32, len(nodes))
	for _, e := range edges {
		if e.From < 0 || e.From >= len(nodes) || e.To < 0 || e.To >= len(nodes) {
			return nil, fmt.Errorf("%w: %d->%d with %d nodes", ErrInvalidEdgeEndpoint, e.From, e.To, len(nodes))
		}
		if e.From == e.To {
			return nil, fmt.Errorf("%w: node %d", ErrSelfEdge, e.From)
		}
		adj[e.From] = append(adj[e.From], int32(e.To))
		adj[e.To] = append(adj[e.To], int32(e.From))
	}

	return &Netlist{
		nodes: nodes,
		edges: append([]Edge(nil), edges...),
		adj:   adj,
	}, nil
}

// NodeCount returns the number of nodes.
func (n *Netlist) NodeCount() int { return len(n.nodes) }

// EdgeCount returns the number of edges.
func (n *Netlist) EdgeCount() int { return len(n.edges) }

// Node returns the node at index i.
func (n *Netlist) Node(i int) Node { return n.nodes[i] }

// Nodes returns all nodes in index order. The returned slice is shared and
// must not be modified by the caller.
func (n *Netlist) Nodes() []Node { return n.nodes }

// Edges returns all edges. The returned slice is shared and must not be
// modified by the caller.
func (n *Netlist) Edges() []Edge { return n.edges }

// Degree returns the number of edges touching node i, counting both
// directions.
func (n *Netlist) Degree(i int) int { return len(n.adj[i]) }

// CountByType tallies nodes per required site type.
func (n *Netlist) CountByType() map[fabric.SiteType]int {
	counts := make(map[fabric.SiteType]int, len(fabric.MacroTypes()))
	for _, t := range fabric.MacroTypes() {
		counts[t] = 0
	}
	for _, node := range n.nodes {
		counts[node.Type]++
	}
	return counts
}

// Summary returns a human-readable description: node and edge counts plus
// the per-type node breakdown.
func (n *Netlist) Summary() string {
	counts := n.CountByType()

	var b strings.Builder
	fmt.Fprintf(&b, "Netlist with %d nodes, %d edges\n", n.NodeCount(), n.EdgeCount())
	fmt.Fprintf(&b, "CLB count: %d\n", counts[fabric.CLB])
	fmt.Fprintf(&b, "DSP count: %d\n", counts[fabric.DSP])
	fmt.Fprintf(&b, "BRAM count: %d\n", counts[fabric.BRAM])
	fmt.Fprintf(&b, "IO count: %d\n", counts[fabric.IO])
	return b.String()
}

// CheckCapacity verifies that the grid carries at least as many sites of
// every macro type as the netlist has nodes of that type. This is the
// mandatory precondition for any placement attempt; a violation is fatal,
// never recoverable. All deficient types are reported in one error.
func CheckCapacity(g *fabric.Grid, n *Netlist) error {
	siteCounts := g.CountByType()
	nodeCounts := n.CountByType()

	var deficits []string
	for _, t := range fabric.MacroTypes() {
		if nodeCounts[t] > siteCounts[t] {
			deficits = append(deficits, fmt.Sprintf("%s needs %d, fabric has %d",
				t, nodeCounts[t], siteCounts[t]))
		}
	}
	if len(deficits) > 0 {
		return fmt.Errorf("%w: %s", ErrInsufficientSites, strings.Join(deficits, "; "))
	}
	return nil
}
