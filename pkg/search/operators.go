package search

import (
	"math/rand"

	"github.com/fpgakit/placer/pkg/place"
)

// Operator identifies one of the three local move operators.
type Operator uint8

const (
	// OpMove relocates a random node to a random free site of its type.
	OpMove Operator = iota
	// OpSwap exchanges the sites of two random same-type nodes.
	OpSwap
	// OpMoveToward relocates a random node toward the placement centroid,
	// only when that strictly reduces its distance to it.
	OpMoveToward
)

var operatorNames = map[Operator]string{
	OpMove:       "move",
	OpSwap:       "swap",
	OpMoveToward: "move-toward",
}

// Operators returns the fixed operator set in declaration order.
func Operators() []Operator {
	return []Operator{OpMove, OpSwap, OpMoveToward}
}

// String returns the operator's name.
func (op Operator) String() string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return "unknown"
}

// Apply mutates p with the operator and reports whether anything changed.
// An empty neighborhood is a no-op, not an error.
func (op Operator) Apply(p *place.Placement, rng *rand.Rand) bool {
	switch op {
	case OpMove:
		return place.MoveRandom(p, rng)
	case OpSwap:
		return place.SwapRandom(p, rng)
	case OpMoveToward:
		return place.MoveToward(p, rng)
	}
	return false
}

// drawOperators fills buf with distinct operators drawn uniformly without
// replacement, in random order.
func drawOperators(rng *rand.Rand, buf []Operator) {
	all := Operators()
	for i := range buf {
		j := i + rng.Intn(len(all)-i)
		all[i], all[j] = all[j], all[i]
		buf[i] = all[i]
	}
}
