package cache

// ScopedKeyer prefixes every key of an inner [Keyer], letting several
// deployments share one Redis instance:
//
//	keyer := NewScopedKeyer(nil, "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) SolutionKey(gameHash string, opts SolutionKeyOpts) string {
	return k.prefix + k.inner.SolutionKey(gameHash, opts)
}

func (k *ScopedKeyer) RenderKey(gameHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(gameHash, opts)
}
