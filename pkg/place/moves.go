package place

import (
	"math/rand"
)

// MoveRandom relocates one uniformly random node to a uniformly random free
// site of its type. With no free site the placement is left untouched.
// It reports whether the placement changed.
func MoveRandom(p *Placement, rng *rand.Rand) bool {
	node := rng.Intn(p.net.NodeCount())
	pool := p.PossibleSites(p.net.Node(node).Type)
	if len(pool) == 0 {
		return false
	}
	p.Place(node, pool[rng.Intn(len(pool))])
	return true
}

// SwapRandom exchanges the sites of one uniformly random node and a
// uniformly random partner of the same type. The partner pool includes the
// node itself; drawing it, like being the only node of its type, leaves the
// placement untouched. It reports whether the placement changed.
func SwapRandom(p *Placement, rng *rand.Rand) bool {
	a := rng.Intn(p.net.NodeCount())
	t := p.net.Node(a).Type

	var pool []int
	for i, node := range p.net.Nodes() {
		if node.Type == t {
			pool = append(pool, i)
		}
	}
	if len(pool) == 1 {
		return false
	}
	b := pool[rng.Intn(len(pool))]
	if a == b {
		return false
	}
	p.Swap(a, b)
	return true
}

// MoveToward relocates one uniformly random node to the free site of its
// type nearest the centroid of all placed nodes, but only when that site is
// strictly closer to the centroid than the node's current site. Anything
// else, including an empty neighborhood, leaves the placement untouched.
// It reports whether the placement changed.
func MoveToward(p *Placement, rng *rand.Rand) bool {
	center, ok := p.Centroid()
	if !ok {
		return false
	}
	node := rng.Intn(p.net.NodeCount())
	if !p.placed[node] {
		return false
	}
	pool := p.PossibleSites(p.net.Node(node).Type)
	if len(pool) == 0 {
		return false
	}

	best := pool[0]
	bestDist := best.Manhattan(center)
	for _, site := range pool[1:] {
		if d := site.Manhattan(center); d < bestDist {
			best, bestDist = site, d
		}
	}
	if bestDist >= p.coords[node].Manhattan(center) {
		return false
	}
	p.Place(node, best)
	return true
}
