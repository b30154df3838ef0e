package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The API server uses this to keep per-tenant entries apart while sharing
// one backend.
//
// Example usage:
//
//	// Tenant-specific keys
//	tenantKeyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:abc123:")
//
//	// Global keys for shared results
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// NetlistKey generates a prefixed key for a generated netlist.
func (k *ScopedKeyer) NetlistKey(opts NetlistKeyOpts) string {
	return k.prefix + k.inner.NetlistKey(opts)
}

// PlacementKey generates a prefixed key for an initial placement.
func (k *ScopedKeyer) PlacementKey(gridHash, netlistHash string, opts PlacementKeyOpts) string {
	return k.prefix + k.inner.PlacementKey(gridHash, netlistHash, opts)
}

// SearchKey generates a prefixed key for a search result.
func (k *ScopedKeyer) SearchKey(placementHash string, opts SearchKeyOpts) string {
	return k.prefix + k.inner.SearchKey(placementHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(placementHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(placementHash, opts)
}
