// Package search runs the placement optimizer: a strict-descent local
// search that, despite the annealing vocabulary around FPGA placement
// tooling, accepts a candidate only when it strictly lowers the wirelength.
// There is no temperature and no probabilistic acceptance of worse states.
//
// # The Loop
//
// [Run] iterates a fixed step budget. Each step observes the current cost,
// draws up to three distinct move operators, applies each to a private
// clone of the current placement on its own goroutine, waits for all of
// them, and commits the cheapest clone only if it beats the current cost.
// No convergence detection, no early exit; the budget simply runs out.
//
// # Parallelism
//
// Candidate evaluation is fork-join per step. Clones are independent, the
// grid and netlist are shared read-only, and every slot owns a dedicated
// random generator derived from the seed, so a run is reproducible
// regardless of goroutine scheduling. The reduction is a full barrier; the
// next step never starts before every candidate of the previous one is
// scored.
//
// # Observation
//
// The cost series records one (step, cost) sample at the top of every step.
// Because acceptance is strictly improving, the series is non-increasing.
// With [Options.Snapshots] enabled each step also retains a value-copy of
// the current placement, enough for a renderer to draw frames without
// touching live search state. [Options.OnStep] delivers the same samples to
// a callback for live progress; it runs on the search goroutine and must be
// cheap.
package search
