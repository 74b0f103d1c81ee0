package dispatch

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/hupe1980/macro/core"
	"github.com/hupe1980/macro/handle"
	"github.com/hupe1980/macro/logging"
	"github.com/hupe1980/macro/param"
)

// shared is the state common to a root site and every entry of its chain.
type shared struct {
	name     string
	logger   logging.Logger
	trace    bool
	maxChain int

	links  atomic.Int64
	misses atomic.Int64
	deopts atomic.Int64
	nodes  atomic.Int64
}

func (sh *shared) debug(msg string, s *site, args ...any) {
	if !sh.trace {
		return
	}
	sh.logger.Debug(msg, append([]any{"dispatcher", sh.name, "site", s.id, "depth", s.depth}, args...)...)
}

// behavior boxes the handle currently installed in a site so that it can be
// swapped with a single atomic pointer store.
type behavior struct {
	handle core.Handle
}

// site is one dispatch site: the root entry point of a dispatcher or an
// entry of its polymorphic chain. Its behavior is either the unspecialized
// bootstrap or a guarded specialization.
type site struct {
	id     string
	depth  int
	sig    core.Signature
	params []param.Parameter
	linker Linker
	root   *site
	shared *shared

	unspecialized *behavior
	target        atomic.Pointer[behavior]
}

func newSite(sig core.Signature, params []param.Parameter, linker Linker, root *site, depth int, sh *shared) *site {
	s := &site{
		id:     uuid.NewString(),
		depth:  depth,
		sig:    sig,
		params: params,
		linker: linker,
		root:   root,
		shared: sh,
	}
	if root == nil {
		s.root = s
	}
	s.unspecialized = &behavior{handle: handle.New(sig, s.fallback)}
	s.target.Store(s.unspecialized)
	return s
}

func (s *site) Signature() core.Signature { return s.sig }

// Invoke runs the current behavior.
func (s *site) Invoke(args ...any) (any, error) {
	return s.target.Load().handle.Invoke(args...)
}

// deoptimize installs a fresh box around the bootstrap, so a specialization
// linked before the call can no longer be installed.
func (s *site) deoptimize() {
	s.target.Store(&behavior{handle: s.unspecialized.handle})
}

// fallback is the unspecialized behavior: classify, link, call, then
// install. Nothing is installed when linking or the first call fails, or
// when the site changed while linking.
func (s *site) fallback(args []any) (any, error) {
	observed := s.target.Load()
	a := analyze(args, s.params, s.sig)

	target, err := link(s.linker, a.constants, a.sig)
	if err != nil {
		s.shared.logger.Warn("dispatch.link.failed",
			"dispatcher", s.shared.name, "site", s.id, "depth", s.depth, "error", err)
		return nil, err
	}
	s.shared.links.Add(1)

	result, err := target.Invoke(a.values...)
	if err != nil {
		return nil, err
	}

	if s.target.CompareAndSwap(observed, &behavior{handle: s.specialize(a, target)}) {
		s.shared.debug("dispatch.specialize", s, "constants", len(a.constants), "signature", a.sig.String())
	}

	return result, nil
}

// specialize turns a handle over the reduced signature into a guarded
// handle over the declared signature.
func (s *site) specialize(a analysis, target core.Handle) core.Handle {
	// Positions are visited in ascending order so each drop lands on its
	// declared slot.
	for _, arg := range a.arguments {
		switch arg := arg.(type) {
		case ignoredArgument:
			target = handle.DropArguments(target, arg.position, arg.typ)
		case checkedArgument:
			if arg.dropValue {
				target = handle.DropArguments(target, arg.position, arg.typ)
			}
		case guardedArgument:
			if arg.dropValue {
				target = handle.DropArguments(target, arg.position, arg.typ)
			}
		}
	}

	for _, arg := range a.arguments {
		if arg, ok := arg.(checkedArgument); ok {
			target = handle.FilterArgument(target, arg.position, requireConstant(arg))
		}
	}

	var next core.Handle
	for _, arg := range a.arguments {
		arg, ok := arg.(guardedArgument)
		if !ok {
			continue
		}
		fallback := s.fallbackFor(arg.policy, &next)
		target = handle.GuardWithTest(guardTest(s.sig, arg), target, s.onMiss(arg, fallback))
	}

	return target
}

// fallbackFor returns where a failed guard of the given policy leads. All
// polymorphic guards of one specialization share the same next chain entry.
func (s *site) fallbackFor(policy param.Policy, next *core.Handle) core.Handle {
	switch policy {
	case param.PolicyRelink:
		return s.root.unspecialized.handle
	case param.PolicyMonomorphic:
		return s.unspecialized.handle
	default:
		if *next == nil {
			if limit := s.shared.maxChain; limit > 0 && s.depth+1 >= limit {
				*next = s.root.unspecialized.handle
			} else {
				*next = &chainLink{from: s}
			}
		}
		return *next
	}
}

func (s *site) onMiss(arg guardedArgument, fallback core.Handle) core.Handle {
	return handle.New(s.sig, func(args []any) (any, error) {
		s.shared.misses.Add(1)
		s.shared.debug("dispatch.guard.miss", s, "position", arg.position, "policy", arg.policy.String())
		return fallback.Invoke(args...)
	})
}
