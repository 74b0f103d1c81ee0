package testutil

import (
	"slices"
	"sync"

	"github.com/hupe1980/macro/core"
)

// LinkCall records the arguments of one linker invocation.
type LinkCall struct {
	Constants []any
	Signature core.Signature
}

// RecordingLinker delegates to a link func and records every call. It
// satisfies dispatch.Linker and is safe for concurrent use.
//
// Example:
//
//	rec := testutil.NewRecordingLinker(func(constants []any, sig core.Signature) (core.Handle, error) {
//	    return handle.Empty(sig), nil
//	})
//	h, _ := dispatch.New(sig, params, rec)
//	...
//	assert.Equal(t, 1, rec.Count())
type RecordingLinker struct {
	mu    sync.Mutex
	calls []LinkCall
	fn    func(constants []any, sig core.Signature) (core.Handle, error)
}

// NewRecordingLinker creates a RecordingLinker around fn.
func NewRecordingLinker(fn func(constants []any, sig core.Signature) (core.Handle, error)) *RecordingLinker {
	return &RecordingLinker{fn: fn}
}

// Link records the call then delegates.
func (r *RecordingLinker) Link(constants []any, sig core.Signature) (core.Handle, error) {
	r.mu.Lock()
	r.calls = append(r.calls, LinkCall{Constants: slices.Clone(constants), Signature: sig})
	r.mu.Unlock()
	return r.fn(constants, sig)
}

// Count returns the number of recorded calls.
func (r *RecordingLinker) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Calls returns a copy of the recorded calls.
func (r *RecordingLinker) Calls() []LinkCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// Last returns the most recent call; ok is false when nothing was recorded.
func (r *RecordingLinker) Last() (call LinkCall, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return LinkCall{}, false
	}
	return r.calls[len(r.calls)-1], true
}

// Reset forgets every recorded call.
func (r *RecordingLinker) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}
