// Package netlist models the set of typed elements to place and their
// required connectivity.
//
// # Overview
//
// A netlist is a graph: nodes carry a required site type (CLB, DSP, BRAM or
// IO) and edges connect nodes that want to end up close together. Edges are
// stored directed but the wirelength objective is symmetric, so direction
// carries no meaning for placement. Nodes are identified by their dense
// index, which keeps the graph arena-friendly: adjacency is a pair of index
// slices, not pointer-linked records.
//
// # Construction
//
// Build a netlist explicitly with [New], or synthesize a random one with
// [Generate], which follows the classic benchmark recipe: a G(n,p) random
// graph over CLB nodes, a sample of nodes relabeled to the rarer types, and
// a single edge attached to every otherwise isolated node so the objective
// has signal everywhere.
//
//	rng := rand.New(rand.NewSource(42))
//	net, err := netlist.Generate(netlist.GenOptions{Nodes: 300, IO: 30, BRAM: 100}, rng)
//
// # Feasibility
//
// A netlist can only be placed on a fabric that has enough sites of every
// macro type. [CheckCapacity] verifies this and is the mandatory fail-fast
// precondition before any placement attempt.
//
// # Concurrency
//
// A constructed Netlist is read-only and safe for concurrent use. The
// placement engine shares one instance across all candidate solutions.
package netlist
