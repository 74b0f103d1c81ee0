// Package logging provides a minimal logging interface and adapters.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that dispatchers use to trace specialization, guard misses
// and deoptimization. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (the dispatcher default)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelDebug, "text", false)
//	h, err := dispatch.New(sig, params, linker, func(o *dispatch.Options) {
//	    o.Logger = logger
//	})
//
// The design keeps the interface minimal to avoid vendor lock-in while
// supporting structured logging where available.
package logging
