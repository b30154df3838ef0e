// Package cache provides pluggable byte caching for pipeline stages and
// rendered artifacts.
//
// Generated netlists, initial placements, search results and rendered
// artifacts are all deterministic functions of their inputs, so they cache
// well under content-derived keys. The [Keyer] centralizes key construction;
// [Cache] abstracts the backend so the CLI can use files, the API can use
// Redis, and tests can disable caching entirely with [NullCache].
package cache

import (
	"context"
	"time"
)

const (
	// DefaultTTL bounds how long non-content-addressed entries stay fresh.
	DefaultTTL = 24 * time.Hour

	// NeverExpire disables expiration. Content-addressed entries cannot go
	// stale: any input change changes the key.
	NeverExpire time.Duration = 0
)

// Cache is a byte-oriented cache with optional per-entry TTL.
type Cache interface {
	// Get retrieves a value. The second return reports a hit; a miss is
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores it without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NetlistKeyOpts identify a generated netlist.
type NetlistKeyOpts struct {
	Nodes    int     `json:"nodes"`
	IO       int     `json:"io"`
	BRAM     int     `json:"bram"`
	DSP      int     `json:"dsp"`
	EdgeProb float64 `json:"edge_prob"`
	Seed     int64   `json:"seed"`
}

// PlacementKeyOpts identify an initial placement on top of grid and netlist
// content hashes.
type PlacementKeyOpts struct {
	Strategy string `json:"strategy"`
	Seed     int64  `json:"seed"`
}

// SearchKeyOpts identify a search run on top of an initial-placement hash.
type SearchKeyOpts struct {
	Steps     int   `json:"steps"`
	Neighbors int   `json:"neighbors"`
	Seed      int64 `json:"seed"`
}

// ArtifactKeyOpts identify a rendered artifact on top of a placement hash.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Viz      string  `json:"viz"`
	CellSize float64 `json:"cell_size"`
	Edges    bool    `json:"edges"`
	Labels   bool    `json:"labels"`
	Legend   bool    `json:"legend"`
	FPS      int     `json:"fps"`
}

// Keyer generates cache keys for each cacheable stage.
type Keyer interface {
	// HTTPKey generates a key for HTTP response caching.
	HTTPKey(namespace, key string) string

	// NetlistKey generates a key for a generated netlist.
	NetlistKey(opts NetlistKeyOpts) string

	// PlacementKey generates a key for an initial placement.
	PlacementKey(gridHash, netlistHash string, opts PlacementKeyOpts) string

	// SearchKey generates a key for a search result.
	SearchKey(placementHash string, opts SearchKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(placementHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes option structs into stable keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// NetlistKey generates a key for a generated netlist.
func (k *DefaultKeyer) NetlistKey(opts NetlistKeyOpts) string {
	return hashKey("netlist", opts)
}

// PlacementKey generates a key for an initial placement.
func (k *DefaultKeyer) PlacementKey(gridHash, netlistHash string, opts PlacementKeyOpts) string {
	return hashKey("placement", gridHash, netlistHash, opts)
}

// SearchKey generates a key for a search result.
func (k *DefaultKeyer) SearchKey(placementHash string, opts SearchKeyOpts) string {
	return hashKey("search", placementHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(placementHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", placementHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
