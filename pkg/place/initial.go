package place

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/fpgakit/placer/pkg/fabric"
	"github.com/fpgakit/placer/pkg/netlist"
)

// ErrUnknownStrategy is returned by [ParseStrategy] for names that match no
// initial-placement strategy.
var ErrUnknownStrategy = errors.New("unknown placement strategy")

// Strategy selects how the first total placement is built.
type Strategy string

const (
	// StrategyRandom assigns each node a uniformly random free site of its
	// type.
	StrategyRandom Strategy = "random"

	// StrategyGreedy assigns each node the free site of its type nearest
	// the origin, packing nodes into the low corner. Deterministic.
	StrategyGreedy Strategy = "greedy"
)

// ParseStrategy converts a string into a [Strategy].
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyRandom:
		return StrategyRandom, nil
	case StrategyGreedy:
		return StrategyGreedy, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Initial builds the first total placement using the given strategy. The
// rng is only consulted by [StrategyRandom].
func Initial(strategy Strategy, grid *fabric.Grid, net *netlist.Netlist, rng *rand.Rand) (*Placement, error) {
	switch strategy {
	case StrategyRandom:
		return Random(grid, net, rng)
	case StrategyGreedy:
		return Greedy(grid, net)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
}

// Random places every node on a uniformly random free site of its type.
// It fails fast on insufficient capacity and verifies the result before
// returning it.
func Random(grid *fabric.Grid, net *netlist.Netlist, rng *rand.Rand) (*Placement, error) {
	p, err := New(grid, net)
	if err != nil {
		return nil, err
	}
	for i := 0; i < net.NodeCount(); i++ {
		pool := p.PossibleSites(net.Node(i).Type)
		if len(pool) == 0 {
			return nil, fmt.Errorf("random placement: no free %s site for node %d despite capacity check", net.Node(i).Type, i)
		}
		p.Place(i, pool[rng.Intn(len(pool))])
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("random placement produced an invalid state: %w", err)
	}
	return p, nil
}

// Greedy places every node on the free site of its type with minimum
// Manhattan distance to the origin, in node order. It fails fast on
// insufficient capacity and verifies the result before returning it.
func Greedy(grid *fabric.Grid, net *netlist.Netlist) (*Placement, error) {
	p, err := New(grid, net)
	if err != nil {
		return nil, err
	}
	origin := fabric.Coord{}
	for i := 0; i < net.NodeCount(); i++ {
		pool := p.PossibleSites(net.Node(i).Type)
		if len(pool) == 0 {
			return nil, fmt.Errorf("greedy placement: no free %s site for node %d despite capacity check", net.Node(i).Type, i)
		}
		best := pool[0]
		bestDist := best.Manhattan(origin)
		for _, site := range pool[1:] {
			if d := site.Manhattan(origin); d < bestDist {
				best, bestDist = site, d
			}
		}
		p.Place(i, best)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("greedy placement produced an invalid state: %w", err)
	}
	return p, nil
}
