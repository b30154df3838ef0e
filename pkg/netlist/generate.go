package netlist

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/fpgakit/placer/pkg/fabric"
)

// DefaultEdgeProb is the per-pair edge probability used by [Generate] when
// GenOptions.EdgeProb is zero.
const DefaultEdgeProb = 0.02

var (
	// ErrInvalidGenOptions is returned by [Generate] for option values that
	// cannot describe a netlist, such as a non-positive node count or type
	// quotas exceeding it.
	ErrInvalidGenOptions = errors.New("invalid netlist generation options")

	// ErrNoConnectedNode is returned by [Generate] when every node ends up
	// isolated, leaving no anchor to attach isolated nodes to. Raise the
	// edge probability or the node count.
	ErrNoConnectedNode = errors.New("no connected node available")
)

// GenOptions configures [Generate].
type GenOptions struct {
	// Nodes is the total node count. Required.
	Nodes int

	// IO, BRAM and DSP are how many nodes to relabel to each macro type.
	// The remainder stays CLB. Their sum must not exceed Nodes.
	IO   int
	BRAM int
	DSP  int

	// EdgeProb is the independent probability of an edge between each
	// unordered node pair. Zero selects [DefaultEdgeProb].
	EdgeProb float64
}

func (o *GenOptions) validate() error {
	if o.Nodes < 1 {
		return fmt.Errorf("%w: node count %d", ErrInvalidGenOptions, o.Nodes)
	}
	if o.IO < 0 || o.BRAM < 0 || o.DSP < 0 {
		return fmt.Errorf("%w: negative type quota", ErrInvalidGenOptions)
	}
	if quota := o.IO + o.BRAM + o.DSP; quota > o.Nodes {
		return fmt.Errorf("%w: type quotas total %d with %d nodes", ErrInvalidGenOptions, quota, o.Nodes)
	}
	if o.EdgeProb < 0 || o.EdgeProb > 1 {
		return fmt.Errorf("%w: edge probability %v", ErrInvalidGenOptions, o.EdgeProb)
	}
	return nil
}

// Generate builds a random netlist: Nodes CLB nodes connected by a G(n,p)
// process, with IO, BRAM and DSP quotas relabeled from the CLB pool. Nodes
// left without edges are attached to one randomly chosen connected node so
// every node participates in the objective.
//
// Generation is deterministic for a given options value and rng state.
func Generate(opts GenOptions, rng *rand.Rand) (*Netlist, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	prob := opts.EdgeProb
	if prob == 0 {
		prob = DefaultEdgeProb
	}

	types := make([]fabric.SiteType, opts.Nodes)
	for i := range types {
		types[i] = fabric.CLB
	}

	// G(n,p) over unordered pairs. Each edge is stored once, oriented low
	// index to high.
	var edges []Edge
	for from := 0; from < opts.Nodes; from++ {
		for to := from + 1; to < opts.Nodes; to++ {
			if rng.Float64() < prob {
				edges = append(edges, Edge{From: from, To: to})
			}
		}
	}

	relabel(types, fabric.IO, opts.IO, rng)
	relabel(types, fabric.BRAM, opts.BRAM, rng)
	relabel(types, fabric.DSP, opts.DSP, rng)

	edges, err := connectIsolated(types, edges, rng)
	if err != nil {
		return nil, err
	}
	return New(types, edges)
}

// relabel flips count CLB entries to t, sampled uniformly without
// replacement from the nodes still labeled CLB.
func relabel(types []fabric.SiteType, t fabric.SiteType, count int, rng *rand.Rand) {
	if count == 0 {
		return
	}
	var pool []int
	for i, cur := range types {
		if cur == fabric.CLB {
			pool = append(pool, i)
		}
	}
	for _, j := range rng.Perm(len(pool))[:count] {
		types[pool[j]] = t
	}
}

// connectIsolated attaches every zero-degree node to a random node from the
// set of nodes that already had edges before this pass.
func connectIsolated(types []fabric.SiteType, edges []Edge, rng *rand.Rand) ([]Edge, error) {
	degree := make([]int, len(types))
	for _, e := range edges {
		degree[e.From]++
		degree[e.To]++
	}

	var isolated, connected []int
	for i, d := range degree {
		if d == 0 {
			isolated = append(isolated, i)
		} else {
			connected = append(connected, i)
		}
	}
	if len(isolated) == 0 {
		return edges, nil
	}
	if len(connected) == 0 {
		return nil, fmt.Errorf("%w: all %d nodes isolated", ErrNoConnectedNode, len(types))
	}
	for _, node := range isolated {
		anchor := connected[rng.Intn(len(connected))]
		edges = append(edges, Edge{From: anchor, To: node})
	}
	return edges, nil
}
