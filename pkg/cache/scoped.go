package cache

// ScopedKeyer wraps a Keyer with a prefix so producers sharing one backend
// keep separate namespaces.
//
// Example usage:
//
//	// HTTP server entries in a Redis shared with other services
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "maze:api:")
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

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(opts)
}
