package dispatch

import (
	"github.com/hupe1980/macro/logging"
)

// Options configures a dispatcher using the functional options pattern.
//
// Example:
//
//	h, err := dispatch.New(sig, params, linker, func(o *dispatch.Options) {
//	    o.Name = "formatter"
//	    o.Logger = logging.NewSlogLogger(logging.LogLevelDebug, "text", false)
//	    o.MaxChainLength = 8
//	})
type Options struct {
	// Name labels the dispatcher in log entries.
	Name string

	// Logger traces specialization, guard misses and deoptimization at debug
	// level and linker failures at warn level. Defaults to NoOpLogger; the
	// dispatcher never relies on logging to report a failure.
	Logger logging.Logger

	// MaxChainLength bounds the number of entries of a polymorphic inline
	// cache, the first entry included. When the last entry misses, the whole
	// cache is discarded and specialized again from scratch instead of
	// growing. Zero means unbounded.
	MaxChainLength int
}

// DefaultOptions holds the values applied before the functional overrides.
var DefaultOptions = Options{
	Logger: logging.NoOpLogger{},
}

// Stats is a snapshot of the activity of a dispatcher and its inline cache.
type Stats struct {
	// Links counts successful linker calls.
	Links int64
	// GuardMisses counts failed guards, including the misses that walk a
	// polymorphic chain towards a later entry.
	GuardMisses int64
	// Deoptimizations counts explicit deoptimizations.
	Deoptimizations int64
	// ChainNodes counts polymorphic cache entries allocated after the first.
	ChainNodes int64
}
