package engine

import "sync/atomic"

// Flag is a shared cancellation handle polled by sorters at defined
// checkpoints. Cancellation is cooperative: an in-flight animation step
// finishes before the flag is observed, so worst-case latency is bounded
// by one sub-step pause.
type Flag struct {
	v atomic.Bool
}

// Cancel requests early termination of the in-progress run.
func (f *Flag) Cancel() { f.v.Store(true) }

// Cancelled reports whether cancellation has been requested.
func (f *Flag) Cancelled() bool { return f.v.Load() }

// Reset clears the flag for reuse by the next run.
func (f *Flag) Reset() { f.v.Store(false) }
