// Package pipeline provides the core placement pipeline for the placer.
//
// This package implements the complete fabric → netlist → initial → search
// → render pipeline that can be used by CLI, API, and worker components. By
// centralizing this logic, we ensure consistent behavior across all entry
// points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of five stages:
//
//  1. Fabric: Build the site grid, or load one from a JSON file
//  2. Netlist: Generate the macro netlist, or load one from a JSON file
//  3. Initial: Seed a valid total placement (random or greedy)
//  4. Search: Improve the placement by parallel strict-descent search
//  5. Render: Generate output in various formats (SVG, PNG, PDF, ...)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, store, logger)
//	opts := pipeline.Options{
//	    Width:   64,
//	    Height:  64,
//	    Nodes:   300,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Build inputs only
//	grid, err := pipeline.BuildFabric(opts)
//	net, err := pipeline.BuildNetlist(opts)
//
//	// Seed and search with existing inputs
//	initial, err := pipeline.Seed(grid, net, opts)
//	res, err := pipeline.Improve(ctx, initial, opts)
//
//	// Render an existing search result
//	artifacts, err := runner.Render(ctx, res, opts)
package pipeline

import (
	"fmt"
	stdio "io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fpgakit/placer/pkg/cache"
	"github.com/fpgakit/placer/pkg/fabric"
	"github.com/fpgakit/placer/pkg/netlist"
	"github.com/fpgakit/placer/pkg/place"
	"github.com/fpgakit/placer/pkg/runs"
	"github.com/fpgakit/placer/pkg/search"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultWidth is the generated fabric width in sites.
	DefaultWidth = 64

	// DefaultHeight is the generated fabric height in sites.
	DefaultHeight = 64

	// DefaultNodes is the number of netlist nodes to generate.
	DefaultNodes = 300

	// DefaultStrategy is the default initial placement strategy.
	DefaultStrategy = string(place.StrategyRandom)

	// DefaultFPS is the default animation frame rate.
	DefaultFPS = 10
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeBoard

// Visualization type constants.
const (
	VizTypeBoard    = "board"
	VizTypeNodelink = "nodelink"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatCSV  = "csv"
	FormatGIF  = "gif"
	FormatMP4  = "mp4"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatCSV:  true,
	FormatGIF:  true,
	FormatMP4:  true,
}

// AnimationFormats is the subset of formats that need per-step snapshots.
var AnimationFormats = map[string]bool{
	FormatGIF: true,
	FormatMP4: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeBoard:    true,
	VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the placement pipeline.
// This struct supports JSON serialization for API requests and TOML
// deserialization for preset files.
type Options struct {
	// Fabric options. FabricPath wins over generated dimensions.
	Width      int    `json:"width,omitempty" toml:"width"`
	Height     int    `json:"height,omitempty" toml:"height"`
	FabricPath string `json:"fabric_path,omitempty" toml:"fabric_path"`

	// Netlist options. NetlistPath wins over generation.
	NetlistPath string  `json:"netlist_path,omitempty" toml:"netlist_path"`
	Nodes       int     `json:"nodes,omitempty" toml:"nodes"`
	IO          int     `json:"io,omitempty" toml:"io"`
	BRAM        int     `json:"bram,omitempty" toml:"bram"`
	DSP         int     `json:"dsp,omitempty" toml:"dsp"`
	EdgeProb    float64 `json:"edge_prob,omitempty" toml:"edge_prob"`

	// Placement and search options
	Strategy  string `json:"strategy,omitempty" toml:"strategy"`
	Steps     int    `json:"steps,omitempty" toml:"steps"`
	Neighbors int    `json:"neighbors,omitempty" toml:"neighbors"`
	Seed      int64  `json:"seed,omitempty" toml:"seed"`
	Refresh   bool   `json:"refresh,omitempty" toml:"refresh"`

	// Render options
	VizType   string   `json:"viz_type,omitempty" toml:"viz_type"`
	Formats   []string `json:"formats,omitempty" toml:"formats"`
	CellSize  float64  `json:"cell_size,omitempty" toml:"cell_size"`
	ShowEdges bool     `json:"show_edges,omitempty" toml:"show_edges"`
	Labels    bool     `json:"labels,omitempty" toml:"labels"`
	Legend    bool     `json:"legend,omitempty" toml:"legend"`
	FPS       int      `json:"fps,omitempty" toml:"fps"`

	// Runtime options (not serialized)
	Logger *log.Logger         `json:"-" toml:"-"`
	OnStep func(search.Sample) `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-" toml:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Grid is the fabric the placement ran on.
	Grid *fabric.Grid

	// Net is the netlist that was placed.
	Net *netlist.Netlist

	// FabricHash and NetlistHash are content hashes of the inputs.
	FabricHash  string
	NetlistHash string

	// Search is the search outcome: final placement, cost series, counters.
	Search *search.Result

	// Run is the persisted run record, nil when the runner has no store.
	Run *runs.Run

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	InitialCost int
	FinalCost   int
	Improved    int
	FabricTime  time.Duration
	NetlistTime time.Duration
	InitialTime time.Duration
	SearchTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	NetlistHit bool // Whether the netlist came from cache
	SearchHit  bool // Whether the search result came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json, dot, csv, gif, mp4)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return fmt.Errorf("invalid viz_type: %q (must be one of: board, nodelink)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForFabric(); err != nil {
		return err
	}
	if err := o.ValidateForNetlist(); err != nil {
		return err
	}
	if err := o.ValidateForSearch(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForFabric checks fabric options and applies defaults.
func (o *Options) ValidateForFabric() error {
	if o.FabricPath == "" {
		if o.Width < 0 || o.Height < 0 {
			return fmt.Errorf("fabric dimensions must not be negative: %dx%d", o.Width, o.Height)
		}
		if o.Width == 0 {
			o.Width = DefaultWidth
		}
		if o.Height == 0 {
			o.Height = DefaultHeight
		}
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(stdio.Discard, log.Options{})
	}

	return nil
}

// ValidateForNetlist checks netlist options and applies defaults. Full
// generation validation happens in the netlist package; this only fills the
// pipeline-level defaults.
func (o *Options) ValidateForNetlist() error {
	if o.NetlistPath != "" {
		return nil
	}
	if o.Nodes < 0 {
		return fmt.Errorf("nodes must not be negative: %d", o.Nodes)
	}
	if o.Nodes == 0 {
		o.Nodes = DefaultNodes
	}
	if o.EdgeProb == 0 {
		o.EdgeProb = netlist.DefaultEdgeProb
	}
	return nil
}

// ValidateForSearch checks strategy and search options and applies defaults.
func (o *Options) ValidateForSearch() error {
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if _, err := place.ParseStrategy(o.Strategy); err != nil {
		return err
	}

	so := search.Options{Steps: o.Steps, Neighbors: o.Neighbors, Seed: o.Seed}
	if err := so.ValidateAndSetDefaults(); err != nil {
		return err
	}
	o.Steps, o.Neighbors, o.Seed = so.Steps, so.Neighbors, so.Seed
	return nil
}

// ValidateForRender checks render options and applies defaults.
func (o *Options) ValidateForRender() error {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.IsNodelink() && o.NeedsSnapshots() {
		return fmt.Errorf("animation formats require the board visualization")
	}
	if o.FPS == 0 {
		o.FPS = DefaultFPS
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(stdio.Discard, log.Options{})
	}
	return nil
}

// IsBoard returns true if this is a board visualization.
func (o *Options) IsBoard() bool {
	return o.VizType == "" || o.VizType == VizTypeBoard
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// NeedsSnapshots returns true when a requested format is an animation,
// which needs one placement snapshot per search step.
func (o *Options) NeedsSnapshots() bool {
	for _, f := range o.Formats {
		if AnimationFormats[f] {
			return true
		}
	}
	return false
}

// GenOptions returns the netlist generation options.
func (o *Options) GenOptions() netlist.GenOptions {
	return netlist.GenOptions{
		Nodes:    o.Nodes,
		IO:       o.IO,
		BRAM:     o.BRAM,
		DSP:      o.DSP,
		EdgeProb: o.EdgeProb,
	}
}

// SearchOptions returns the search loop options.
func (o *Options) SearchOptions() search.Options {
	return search.Options{
		Steps:     o.Steps,
		Neighbors: o.Neighbors,
		Seed:      o.Seed,
		Snapshots: o.NeedsSnapshots(),
		OnStep:    o.OnStep,
	}
}

// NetlistKeyOpts returns cache key options for netlist generation.
func (o *Options) NetlistKeyOpts() cache.NetlistKeyOpts {
	return cache.NetlistKeyOpts{
		Nodes:    o.Nodes,
		IO:       o.IO,
		BRAM:     o.BRAM,
		DSP:      o.DSP,
		EdgeProb: o.EdgeProb,
		Seed:     o.Seed,
	}
}

// PlacementKeyOpts returns cache key options for the initial placement.
func (o *Options) PlacementKeyOpts() cache.PlacementKeyOpts {
	return cache.PlacementKeyOpts{
		Strategy: o.Strategy,
		Seed:     o.Seed,
	}
}

// SearchKeyOpts returns cache key options for the search stage.
func (o *Options) SearchKeyOpts() cache.SearchKeyOpts {
	return cache.SearchKeyOpts{
		Steps:     o.Steps,
		Neighbors: o.Neighbors,
		Seed:      o.Seed,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Viz:      o.VizType,
		CellSize: o.CellSize,
		Edges:    o.ShowEdges,
		Labels:   o.Labels,
		Legend:   o.Legend,
		FPS:      o.FPS,
	}
}
