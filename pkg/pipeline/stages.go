package pipeline

import (
	"context"
	"math/rand"

	"github.com/fpgakit/placer/pkg/fabric"
	"github.com/fpgakit/placer/pkg/io"
	"github.com/fpgakit/placer/pkg/netlist"
	"github.com/fpgakit/placer/pkg/place"
	"github.com/fpgakit/placer/pkg/search"
)

// =============================================================================
// Stage Functions - Building Blocks Without Caching
// =============================================================================

// BuildFabric builds the site grid for the pipeline: loaded from
// opts.FabricPath when set, otherwise the generated simple fabric at the
// configured dimensions. The returned grid is validated either way.
func BuildFabric(opts Options) (*fabric.Grid, error) {
	if err := opts.ValidateForFabric(); err != nil {
		return nil, err
	}
	if opts.FabricPath != "" {
		return io.ImportFabric(opts.FabricPath)
	}
	return fabric.Simple(opts.Width, opts.Height)
}

// BuildNetlist builds the netlist for the pipeline: loaded from
// opts.NetlistPath when set, otherwise generated from the configured node
// counts and edge probability. Generation is seeded from opts.Seed, so the
// same options always produce the same netlist.
func BuildNetlist(opts Options) (*netlist.Netlist, error) {
	if err := opts.ValidateForNetlist(); err != nil {
		return nil, err
	}
	if opts.NetlistPath != "" {
		return io.ImportNetlist(opts.NetlistPath)
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	return netlist.Generate(opts.GenOptions(), rng)
}

// Seed builds the initial total placement using the configured strategy.
// It fails fast when the fabric cannot host the netlist.
func Seed(grid *fabric.Grid, net *netlist.Netlist, opts Options) (*place.Placement, error) {
	if err := opts.ValidateForSearch(); err != nil {
		return nil, err
	}
	strategy, err := place.ParseStrategy(opts.Strategy)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	return place.Initial(strategy, grid, net, rng)
}

// Improve runs the strict-descent search on the initial placement and
// returns the search outcome.
func Improve(ctx context.Context, initial *place.Placement, opts Options) (*search.Result, error) {
	if err := opts.ValidateForSearch(); err != nil {
		return nil, err
	}
	return search.Run(ctx, initial, opts.SearchOptions())
}
