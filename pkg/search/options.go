package search

import (
	"errors"
	"fmt"
)

// Default values shared by the CLI, presets and the HTTP API.
const (
	// DefaultSteps is the search step budget.
	DefaultSteps = 500

	// DefaultNeighbors is the candidate fan-out per step. Values above the
	// operator-set size still produce at most one candidate per distinct
	// operator.
	DefaultNeighbors = 16

	// DefaultSeed makes runs reproducible unless the caller picks a seed.
	DefaultSeed = int64(42)
)

// ErrInvalidOptions is returned by [Options.ValidateAndSetDefaults] for
// values the driver cannot run with.
var ErrInvalidOptions = errors.New("invalid search options")

// Options configures [Run]. The zero value is usable: it validates into the
// defaults above. This struct supports JSON serialization for presets and
// API requests.
type Options struct {
	// Steps is the fixed iteration budget. Zero selects DefaultSteps; a
	// run with a negative budget is rejected.
	Steps int `json:"steps,omitempty"`

	// Neighbors is the requested candidate count per step. The driver
	// draws operators without replacement, so at most three distinct
	// candidates are generated regardless of this value.
	Neighbors int `json:"neighbors,omitempty"`

	// Seed derives every random generator the driver owns. Runs with
	// equal inputs and equal seeds produce identical results.
	Seed int64 `json:"seed,omitempty"`

	// Snapshots retains value-copies of the placement for rendering: one
	// per sampled step plus the final state after the last step. Costs
	// memory proportional to steps times nodes.
	Snapshots bool `json:"snapshots,omitempty"`

	// SnapshotEvery is the sampling cadence: a snapshot is taken at every
	// step whose index is a multiple of it. Zero selects every step.
	// Ignored unless Snapshots is set.
	SnapshotEvery int `json:"snapshot_every,omitempty"`

	// OnStart, when set, runs once before the first step with the cost of
	// the initial placement.
	OnStart func(initialCost int) `json:"-"`

	// OnStep, when set, receives every cost sample as it is recorded. It
	// runs on the search goroutine; implementations must not block.
	OnStep func(Sample) `json:"-"`

	// OnComplete, when set, runs once after the loop with the finished
	// result.
	OnComplete func(*Result) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults. It is
// idempotent; calling it multiple times has the same effect as calling it
// once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Steps < 0 {
		return fmt.Errorf("%w: steps %d", ErrInvalidOptions, o.Steps)
	}
	if o.Steps == 0 {
		o.Steps = DefaultSteps
	}
	if o.Neighbors < 0 {
		return fmt.Errorf("%w: neighbors %d", ErrInvalidOptions, o.Neighbors)
	}
	if o.Neighbors == 0 {
		o.Neighbors = DefaultNeighbors
	}
	if o.SnapshotEvery < 0 {
		return fmt.Errorf("%w: snapshot cadence %d", ErrInvalidOptions, o.SnapshotEvery)
	}
	if o.SnapshotEvery == 0 {
		o.SnapshotEvery = 1
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	o.validated = true
	return nil
}
