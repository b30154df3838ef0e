package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fpgakit/placer/pkg/cache"
	"github.com/fpgakit/placer/pkg/netlist"
	"github.com/fpgakit/placer/pkg/observability"
	"github.com/fpgakit/placer/pkg/place"
	"github.com/fpgakit/placer/pkg/runs"
	"github.com/fpgakit/placer/pkg/search"
)

// Runner encapsulates pipeline execution with caching and run archiving.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  runs.Store
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache, keyer and run store.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If store is nil, runs are not archived.
func NewRunner(c cache.Cache, keyer cache.Keyer, store runs.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Store:  store,
		Logger: logger,
	}
}

// Execute runs the complete fabric → netlist → initial → search → render
// pipeline with caching. When the runner has a store, the completed run is
// archived and the record is attached to the result.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Fabric
	fabricStart := time.Now()
	observability.Pipeline().OnFabricStart(ctx, opts.Width, opts.Height)
	grid, err := BuildFabric(opts)
	observability.Pipeline().OnFabricComplete(ctx, opts.Width, opts.Height, time.Since(fabricStart), err)
	if err != nil {
		return nil, fmt.Errorf("fabric: %w", err)
	}
	result.Grid = grid
	result.Stats.FabricTime = time.Since(fabricStart)
	if data, err := json.Marshal(grid); err == nil {
		result.FabricHash = cache.Hash(data)
	}

	r.Logger.Info("built fabric",
		"width", grid.Width(),
		"height", grid.Height(),
		"duration", result.Stats.FabricTime)

	// Stage 2: Netlist
	netlistStart := time.Now()
	net, netlistHit, err := r.BuildNetlistWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("netlist: %w", err)
	}
	result.Net = net
	result.Stats.NetlistTime = time.Since(netlistStart)
	result.Stats.NodeCount = net.NodeCount()
	result.Stats.EdgeCount = net.EdgeCount()
	result.CacheInfo.NetlistHit = netlistHit
	if data, err := json.Marshal(net); err == nil {
		result.NetlistHash = cache.Hash(data)
	}

	r.Logger.Info("built netlist",
		"nodes", net.NodeCount(),
		"edges", net.EdgeCount(),
		"cached", netlistHit,
		"duration", result.Stats.NetlistTime)

	// Stage 3: Initial placement
	initialStart := time.Now()
	observability.Pipeline().OnInitialStart(ctx, opts.Strategy, net.NodeCount())
	initial, err := Seed(grid, net, opts)
	initialCost := 0
	if err == nil {
		initialCost, err = initial.Cost()
	}
	observability.Pipeline().OnInitialComplete(ctx, opts.Strategy, initialCost, time.Since(initialStart), err)
	if err != nil {
		return nil, fmt.Errorf("initial placement: %w", err)
	}
	result.Stats.InitialTime = time.Since(initialStart)
	result.Stats.InitialCost = initialCost

	r.Logger.Info("seeded placement",
		"strategy", opts.Strategy,
		"cost", initialCost,
		"duration", result.Stats.InitialTime)

	// Stage 4: Search
	searchStart := time.Now()
	res, searchHit, err := r.ImproveWithCacheInfo(ctx, initial, result.FabricHash, result.NetlistHash, opts)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	result.Search = res
	result.Stats.SearchTime = time.Since(searchStart)
	result.Stats.FinalCost = res.FinalCost
	result.Stats.Improved = res.Improved
	result.CacheInfo.SearchHit = searchHit

	r.Logger.Info("search complete",
		"initial_cost", res.InitialCost,
		"final_cost", res.FinalCost,
		"improved_steps", res.Improved,
		"cached", searchHit,
		"duration", result.Stats.SearchTime)

	// Stage 5: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, res, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	// Archive the run when a store is configured.
	if r.Store != nil {
		strategy, _ := place.ParseStrategy(opts.Strategy)
		run, err := runs.New(grid, net, strategy, opts.SearchOptions(), res)
		if err != nil {
			return nil, fmt.Errorf("assemble run record: %w", err)
		}
		if err := r.Store.Put(ctx, run); err != nil {
			return nil, fmt.Errorf("archive run: %w", err)
		}
		result.Run = run
		r.Logger.Info("archived run", "id", run.ID)
	}

	return result, nil
}

// BuildNetlistWithCacheInfo builds the netlist with caching and reports
// whether it came from cache. Netlists loaded from a file are never cached;
// the file is already the durable representation.
func (r *Runner) BuildNetlistWithCacheInfo(ctx context.Context, opts Options) (*netlist.Netlist, bool, error) {
	if err := opts.ValidateForNetlist(); err != nil {
		return nil, false, err
	}
	observability.Pipeline().OnNetlistStart(ctx, netlistSource(opts))

	start := time.Now()
	if opts.NetlistPath != "" {
		net, err := BuildNetlist(opts)
		observability.Pipeline().OnNetlistComplete(ctx, "file", nodeCount(net), edgeCount(net), time.Since(start), err)
		return net, false, err
	}

	cacheKey := r.Keyer.NetlistKey(opts.NetlistKeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var net netlist.Netlist
			if err := json.Unmarshal(data, &net); err == nil {
				observability.Cache().OnCacheHit(ctx, "netlist")
				observability.Pipeline().OnNetlistComplete(ctx, "cache", net.NodeCount(), net.EdgeCount(), time.Since(start), nil)
				return &net, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "netlist")
	}

	net, err := BuildNetlist(opts)
	observability.Pipeline().OnNetlistComplete(ctx, "generated", nodeCount(net), edgeCount(net), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(net); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.NeverExpire); err == nil {
			observability.Cache().OnCacheSet(ctx, "netlist", len(data))
		}
	}
	return net, false, nil
}

// searchDoc is the cacheable form of a search result: everything except the
// per-step snapshots, which exist only for animation rendering.
type searchDoc struct {
	InitialCost int                `json:"initial_cost"`
	FinalCost   int                `json:"final_cost"`
	Improved    int                `json:"improved"`
	DurationNS  int64              `json:"duration_ns"`
	Series      []search.Sample    `json:"series"`
	Final       []place.Assignment `json:"final"`
}

// ImproveWithCacheInfo runs the search with caching and reports whether the
// result came from cache. Runs that collect snapshots bypass the cache:
// snapshots are too large to store and exist only for animation output.
func (r *Runner) ImproveWithCacheInfo(ctx context.Context, initial *place.Placement, fabricHash, netlistHash string, opts Options) (*search.Result, bool, error) {
	if err := opts.ValidateForSearch(); err != nil {
		return nil, false, err
	}

	cacheable := !opts.NeedsSnapshots() && opts.OnStep == nil
	placementKey := r.Keyer.PlacementKey(fabricHash, netlistHash, opts.PlacementKeyOpts())
	cacheKey := r.Keyer.SearchKey(cache.Hash([]byte(placementKey)), opts.SearchKeyOpts())

	if cacheable && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if res, err := r.decodeSearchDoc(initial, data); err == nil {
				observability.Cache().OnCacheHit(ctx, "search")
				return res, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "search")
	}

	observability.Pipeline().OnSearchStart(ctx, opts.Steps, opts.Neighbors)
	res, err := Improve(ctx, initial, opts)
	if err != nil {
		observability.Pipeline().OnSearchComplete(ctx, 0, 0, 0, 0, err)
		return nil, false, err
	}
	observability.Pipeline().OnSearchComplete(ctx, res.InitialCost, res.FinalCost, res.Improved, res.Duration, nil)

	if cacheable {
		doc := searchDoc{
			InitialCost: res.InitialCost,
			FinalCost:   res.FinalCost,
			Improved:    res.Improved,
			DurationNS:  res.Duration.Nanoseconds(),
			Series:      res.Series,
			Final:       res.Final.Assignments(),
		}
		if data, err := json.Marshal(doc); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.NeverExpire); err == nil {
				observability.Cache().OnCacheSet(ctx, "search", len(data))
			}
		}
	}
	return res, false, nil
}

// decodeSearchDoc rebuilds a search result from its cached form, reusing
// the live grid and netlist from the initial placement.
func (r *Runner) decodeSearchDoc(initial *place.Placement, data []byte) (*search.Result, error) {
	var doc searchDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	final, err := place.FromAssignments(initial.Grid(), initial.Netlist(), doc.Final)
	if err != nil {
		return nil, err
	}
	if err := final.Validate(); err != nil {
		return nil, fmt.Errorf("cached placement: %w", err)
	}
	return &search.Result{
		Final:       final,
		InitialCost: doc.InitialCost,
		FinalCost:   doc.FinalCost,
		Improved:    doc.Improved,
		Duration:    time.Duration(doc.DurationNS),
		Series:      doc.Series,
	}, nil
}

// Render renders artifacts with caching, discarding the cache-hit flag.
func (r *Runner) Render(ctx context.Context, res *search.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, opts)
	return artifacts, err
}

// RenderWithCacheInfo renders artifacts with caching and reports whether
// every format came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *search.Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	placementData, err := json.Marshal(res.Final.Assignments())
	if err != nil {
		return nil, false, fmt.Errorf("serialize placement for cache key: %w", err)
	}
	placementHash := cache.Hash(placementData)

	// Try to get all formats from cache first.
	allCached := true
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(placementHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderArtifacts(res, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(placementHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.NeverExpire); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Close releases resources held by the runner: the cache and, when
// configured, the run store.
func (r *Runner) Close() error {
	var firstErr error
	if r.Cache != nil {
		firstErr = r.Cache.Close()
	}
	if r.Store != nil {
		if err := r.Store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func netlistSource(opts Options) string {
	if opts.NetlistPath != "" {
		return "file"
	}
	return "generated"
}

func nodeCount(n *netlist.Netlist) int {
	if n == nil {
		return 0
	}
	return n.NodeCount()
}

func edgeCount(n *netlist.Netlist) int {
	if n == nil {
		return 0
	}
	return n.EdgeCount()
}
