// Package runs archives completed placement runs.
//
// A [Run] is the durable record of one optimization: the serialized inputs,
// the options used, the cost series and the final placement. Stores exist
// for different deployments:
//   - file: JSON files under the user config directory, for the CLI
//   - mongo: MongoDB collection, for the API server
//
// Runs are identified by UUID and are self-contained; re-rendering an old
// run needs nothing but its record.
package runs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fpgakit/placer/pkg/cache"
	"github.com/fpgakit/placer/pkg/fabric"
	"github.com/fpgakit/placer/pkg/netlist"
	"github.com/fpgakit/placer/pkg/place"
	"github.com/fpgakit/placer/pkg/search"
)

// ErrNotFound is returned when a run does not exist in the store.
var ErrNotFound = errors.New("run not found")

// Run records one completed placement optimization.
type Run struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	// Serialized inputs, self-contained for later re-rendering.
	Fabric  json.RawMessage `json:"fabric" bson:"fabric"`
	Netlist json.RawMessage `json:"netlist" bson:"netlist"`

	// Content hashes of the serialized inputs.
	FabricHash  string `json:"fabric_hash" bson:"fabric_hash"`
	NetlistHash string `json:"netlist_hash" bson:"netlist_hash"`

	// Input shape, denormalized for listings.
	Width  int `json:"width" bson:"width"`
	Height int `json:"height" bson:"height"`
	Nodes  int `json:"nodes" bson:"nodes"`
	Edges  int `json:"edges" bson:"edges"`

	// Options the run used.
	Strategy  string `json:"strategy" bson:"strategy"`
	Steps     int    `json:"steps" bson:"steps"`
	Neighbors int    `json:"neighbors" bson:"neighbors"`
	Seed      int64  `json:"seed" bson:"seed"`

	// Outcome.
	InitialCost int                `json:"initial_cost" bson:"initial_cost"`
	FinalCost   int                `json:"final_cost" bson:"final_cost"`
	Improved    int                `json:"improved" bson:"improved"`
	Duration    time.Duration      `json:"duration_ns" bson:"duration_ns"`
	Series      []search.Sample    `json:"series" bson:"series"`
	Final       []place.Assignment `json:"final" bson:"final"`
}

// New assembles a run record from the inputs and outcome of a search.
func New(grid *fabric.Grid, net *netlist.Netlist, strategy place.Strategy, opts search.Options, result *search.Result) (*Run, error) {
	gridJSON, err := json.Marshal(grid)
	if err != nil {
		return nil, fmt.Errorf("serializing fabric: %w", err)
	}
	netJSON, err := json.Marshal(net)
	if err != nil {
		return nil, fmt.Errorf("serializing netlist: %w", err)
	}

	return &Run{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Fabric:      gridJSON,
		Netlist:     netJSON,
		FabricHash:  cache.Hash(gridJSON),
		NetlistHash: cache.Hash(netJSON),
		Width:       grid.Width(),
		Height:      grid.Height(),
		Nodes:       net.NodeCount(),
		Edges:       net.EdgeCount(),
		Strategy:    string(strategy),
		Steps:       opts.Steps,
		Neighbors:   opts.Neighbors,
		Seed:        opts.Seed,
		InitialCost: result.InitialCost,
		FinalCost:   result.FinalCost,
		Improved:    result.Improved,
		Duration:    result.Duration,
		Series:      result.Series,
		Final:       result.Final.Assignments(),
	}, nil
}

// Grid decodes the run's fabric.
func (r *Run) Grid() (*fabric.Grid, error) {
	var g fabric.Grid
	if err := json.Unmarshal(r.Fabric, &g); err != nil {
		return nil, fmt.Errorf("decoding fabric: %w", err)
	}
	return &g, nil
}

// Net decodes the run's netlist.
func (r *Run) Net() (*netlist.Netlist, error) {
	var n netlist.Netlist
	if err := json.Unmarshal(r.Netlist, &n); err != nil {
		return nil, fmt.Errorf("decoding netlist: %w", err)
	}
	return &n, nil
}

// Placement rebuilds the final placement from the run record.
func (r *Run) Placement() (*place.Placement, error) {
	grid, err := r.Grid()
	if err != nil {
		return nil, err
	}
	net, err := r.Net()
	if err != nil {
		return nil, err
	}
	p, err := place.FromAssignments(grid, net, r.Final)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("stored placement: %w", err)
	}
	return p, nil
}

// Summary is the listing view of a run.
type Summary struct {
	ID          string        `json:"id" bson:"_id"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	Width       int           `json:"width" bson:"width"`
	Height      int           `json:"height" bson:"height"`
	Nodes       int           `json:"nodes" bson:"nodes"`
	Steps       int           `json:"steps" bson:"steps"`
	InitialCost int           `json:"initial_cost" bson:"initial_cost"`
	FinalCost   int           `json:"final_cost" bson:"final_cost"`
	Duration    time.Duration `json:"duration_ns" bson:"duration_ns"`
}

// Summary returns the listing view of the run.
func (r *Run) Summary() Summary {
	return Summary{
		ID:          r.ID,
		CreatedAt:   r.CreatedAt,
		Width:       r.Width,
		Height:      r.Height,
		Nodes:       r.Nodes,
		Steps:       r.Steps,
		InitialCost: r.InitialCost,
		FinalCost:   r.FinalCost,
		Duration:    r.Duration,
	}
}

// Store is the interface for run storage backends.
type Store interface {
	// Get retrieves a run by ID. Returns an error wrapping ErrNotFound
	// when no such run exists.
	Get(ctx context.Context, id string) (*Run, error)

	// Put stores a run, replacing any run with the same ID.
	Put(ctx context.Context, run *Run) error

	// List returns summaries of all runs, newest first.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes a run. Deleting a missing run is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}
