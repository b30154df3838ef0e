package search

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/fpgakit/placer/pkg/observability"
	"github.com/fpgakit/placer/pkg/place"
)

// Sample is one point of the cost series: the current cost observed at the
// top of a step, before that step's candidates are evaluated.
type Sample struct {
	Step int `json:"step" bson:"step"`
	Cost int `json:"cost" bson:"cost"`
}

// Result packages the outcome of a search run.
type Result struct {
	// Final is the placement after the last step. When no candidate ever
	// improved, it is the initial placement itself.
	Final *place.Placement

	// InitialCost and FinalCost bracket the run.
	InitialCost int
	FinalCost   int

	// Series holds one sample per step, non-increasing in cost.
	Series []Sample

	// Snapshots holds value-copies of the placement observed at each
	// sampled step, with the final state appended after the last step.
	// Nil unless requested.
	Snapshots []*place.Placement

	// Improved counts the steps whose best candidate was accepted.
	Improved int

	// Duration is the wall-clock time spent in the loop.
	Duration time.Duration
}

// Run executes the strict-descent search from initial, which must be a
// valid total placement. The initial placement is never mutated; the result
// may alias it when no step improved.
//
// Cancellation is honored between steps only. A step in flight always runs
// to its barrier, so a canceled run never leaks goroutines.
func Run(ctx context.Context, initial *place.Placement, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("initial placement: %w", err)
	}
	cost, err := initial.Cost()
	if err != nil {
		return nil, fmt.Errorf("initial placement: %w", err)
	}

	// One candidate slot per distinct operator drawn. Each slot owns its
	// generator so results do not depend on goroutine scheduling.
	slots := opts.Neighbors
	if max := len(Operators()); slots > max {
		slots = max
	}
	driver := rand.New(rand.NewSource(opts.Seed))
	rngs := make([]*rand.Rand, slots)
	for i := range rngs {
		rngs[i] = rand.New(rand.NewSource(opts.Seed + 1 + int64(i)))
	}

	current := initial
	result := &Result{
		InitialCost: cost,
		Series:      make([]Sample, 0, opts.Steps),
	}
	if opts.Snapshots {
		result.Snapshots = make([]*place.Placement, 0, opts.Steps/opts.SnapshotEvery+1)
	}
	if opts.OnStart != nil {
		opts.OnStart(cost)
	}

	ops := make([]Operator, slots)
	states := make([]*place.Placement, slots)
	costs := make([]int, slots)
	errs := make([]error, slots)

	start := time.Now()
	for step := 0; step < opts.Steps; step++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sample := Sample{Step: step, Cost: cost}
		result.Series = append(result.Series, sample)
		observability.Search().OnStep(ctx, step, cost)
		if opts.Snapshots && step%opts.SnapshotEvery == 0 {
			result.Snapshots = append(result.Snapshots, current.Clone())
		}
		if opts.OnStep != nil {
			opts.OnStep(sample)
		}

		drawOperators(driver, ops)

		var wg sync.WaitGroup
		for slot := 0; slot < slots; slot++ {
			wg.Add(1)
			go func(slot int) {
				defer wg.Done()
				clone := current.Clone()
				ops[slot].Apply(clone, rngs[slot])
				states[slot] = clone
				costs[slot], errs[slot] = clone.Cost()
			}(slot)
		}
		wg.Wait()

		best := 0
		for slot := 0; slot < slots; slot++ {
			if errs[slot] != nil {
				return nil, fmt.Errorf("step %d: scoring candidate: %w", step, errs[slot])
			}
			if costs[slot] < costs[best] {
				best = slot
			}
		}

		if costs[best] < cost {
			observability.Search().OnAccept(ctx, step, cost, costs[best])
			current = states[best]
			cost = costs[best]
			result.Improved++
		}
	}

	result.Duration = time.Since(start)
	result.Final = current
	result.FinalCost = cost
	if opts.Snapshots {
		// The loop captures the state entering each step; the state after
		// the last one still needs its own frame.
		result.Snapshots = append(result.Snapshots, current.Clone())
	}
	if opts.OnComplete != nil {
		opts.OnComplete(result)
	}
	return result, nil
}
