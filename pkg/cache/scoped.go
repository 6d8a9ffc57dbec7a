package cache

// ScopedKeyer prefixes every key from an inner keyer, isolating cache
// namespaces when several configurations share one cache directory (for
// example distinct config profiles pointing at different record sets).
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner so that all generated keys carry prefix.
// A nil inner defaults to the standard keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) GraphKey(recordsHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(recordsHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, opts)
}
