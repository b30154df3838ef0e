// Package place models a placement: an assignment of netlist nodes to
// fabric sites, the wirelength objective over it, and the local move
// operators that produce neighboring placements.
//
// # Overview
//
// A [Placement] references a shared read-only [fabric.Grid] and
// [netlist.Netlist] and owns only the node to site mapping, so cloning one
// is cheap. A placement is valid when every node is placed, no two nodes
// share a site, every node sits on a site of its required type, and every
// site is in bounds. [Placement.Validate] re-derives all four conditions
// from scratch; the mutating primitives [Placement.Place] and
// [Placement.Swap] deliberately check nothing so they stay cheap on the
// search hot path. Callers own the invariants.
//
// # Construction
//
// [New] creates an empty placement and fails fast when the fabric cannot
// fit the netlist (see [netlist.CheckCapacity]). [Random] and [Greedy]
// produce the first total placement; both verify their result and report an
// internal error rather than returning an invalid state.
//
// # Moves
//
// [MoveRandom], [SwapRandom] and [MoveToward] each mutate a placement in
// place and report whether anything changed. An empty neighborhood is a
// defined no-op, never an error. The driver in package search applies them
// to private clones only.
//
// # Cost
//
// [Placement.Cost] sums the Manhattan distance across every netlist edge.
// It requires a total placement and is a pure function of the mapping.
package place
