package dispatch

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hupe1980/macro/core"
	"github.com/hupe1980/macro/internal/util"
	"github.com/hupe1980/macro/logging"
	"github.com/hupe1980/macro/param"
)

// ErrInvalidDispatcher is wrapped by every error returned when a dispatcher
// cannot be created.
var ErrInvalidDispatcher = errors.New("dispatch: invalid dispatcher")

// Control owns a dispatcher: it exposes the entry point handle and the
// operations that act on the whole cache.
type Control struct {
	root  *site
	entry core.Handle
}

// New creates a dispatcher and returns its entry point. The returned handle
// has exactly the declared signature; see the package documentation for the
// behavior of a call.
func New(sig core.Signature, params []param.Parameter, linker Linker, optFns ...func(o *Options)) (core.Handle, error) {
	c, err := NewControl(sig, params, linker, optFns...)
	if err != nil {
		return nil, err
	}
	return c.Handle(), nil
}

// NewControl creates a dispatcher and returns its Control.
func NewControl(sig core.Signature, params []param.Parameter, linker Linker, optFns ...func(o *Options)) (*Control, error) {
	if util.IsNil(linker) {
		return nil, fmt.Errorf("%w: nil linker", ErrInvalidDispatcher)
	}
	if len(params) != sig.NumParams() {
		return nil, fmt.Errorf("%w: %d parameters for signature %s", ErrInvalidDispatcher, len(params), sig)
	}
	for i, p := range params {
		switch p := p.(type) {
		case param.ValueParameter, param.IgnoreParameter:
		case param.ConstantParameter:
			if p.Projection() == nil {
				return nil, fmt.Errorf("%w: parameter %d has no projection function", ErrInvalidDispatcher, i)
			}
		default:
			return nil, fmt.Errorf("%w: unsupported parameter %T at position %d", ErrInvalidDispatcher, p, i)
		}
	}

	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.MaxChainLength < 0 {
		return nil, fmt.Errorf("%w: negative max chain length %d", ErrInvalidDispatcher, opts.MaxChainLength)
	}

	_, silent := opts.Logger.(logging.NoOpLogger)
	sh := &shared{
		name:     opts.Name,
		logger:   opts.Logger,
		trace:    !silent,
		maxChain: opts.MaxChainLength,
	}
	root := newSite(sig, slices.Clone(params), linker, nil, 0, sh)

	return &Control{root: root, entry: &entryPoint{root: root}}, nil
}

// Handle returns the entry point of the dispatcher. The handle is stable:
// it always runs the behavior installed at the time of the call.
func (c *Control) Handle() core.Handle { return c.entry }

// Deoptimize discards every cached specialization; the next call goes
// through classification and linking again. Calls already running finish
// with the behavior they started with.
func (c *Control) Deoptimize() {
	c.root.deoptimize()
	c.root.shared.deopts.Add(1)
	c.root.shared.debug("dispatch.deoptimize", c.root)
}

// ID returns the unique identifier of the dispatcher, as used in log entries.
func (c *Control) ID() string { return c.root.id }

// Stats returns a snapshot of the dispatcher's counters.
func (c *Control) Stats() Stats {
	sh := c.root.shared
	return Stats{
		Links:           sh.links.Load(),
		GuardMisses:     sh.misses.Load(),
		Deoptimizations: sh.deopts.Load(),
		ChainNodes:      sh.nodes.Load(),
	}
}

// entryPoint validates the arguments of a call against the declared
// signature before entering the root site.
type entryPoint struct {
	root *site
}

func (e *entryPoint) Signature() core.Signature { return e.root.sig }

func (e *entryPoint) Invoke(args ...any) (any, error) {
	if err := e.root.sig.CheckArguments(args); err != nil {
		return nil, err
	}
	return e.root.Invoke(args...)
}
