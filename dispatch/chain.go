package dispatch

import (
	"sync/atomic"

	"github.com/hupe1980/macro/core"
)

// chainLink is the fallback shared by the polymorphic guards of one cache
// entry. The next entry is allocated when a guard misses for the first time
// and published with a compare-and-swap, so racing callers agree on a single
// next entry without locking.
type chainLink struct {
	from *site
	next atomic.Pointer[site]
}

func (l *chainLink) Signature() core.Signature { return l.from.sig }

func (l *chainLink) Invoke(args ...any) (any, error) {
	return l.entry().Invoke(args...)
}

func (l *chainLink) entry() *site {
	if next := l.next.Load(); next != nil {
		return next
	}
	from := l.from
	child := newSite(from.sig, from.params, from.linker, from.root, from.depth+1, from.shared)
	if l.next.CompareAndSwap(nil, child) {
		from.shared.nodes.Add(1)
		from.shared.debug("dispatch.chain.grow", from, "next", child.id)
		return child
	}
	return l.next.Load()
}
