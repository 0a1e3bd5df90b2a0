// Package engine implements the animated sort visualization core.
//
// # Components
//
// The package is built from four cooperating pieces:
//
//  1. [Sequence] : owns the ordered records and their visual handles in
//     lockstep (same indices, always reordered together).
//  2. [Animator] : renders each logical transition (highlight, swap,
//     reset) as a series of interpolated deltas against a [Surface],
//     paced by the live speed parameter.
//  3. [Sorter] implementations : insertion and selection sort expressed
//     purely as Sequence reads/swaps and Animator calls, polling a
//     cancellation [Flag] at every comparison.
//  4. [Controller] : serializes start/stop requests, enforces the
//     single-active-run invariant, and hands progress and final results
//     back to the consumer over channels.
//
// # Concurrency
//
// A run executes on a dedicated background goroutine; the Animator's
// per-step pause is a blocking sleep on that goroutine. All renderer
// mutation flows through the [Surface] implementation, which is expected
// to synchronize access internally. Progress updates use non-blocking
// channel sends so the algorithm never stalls on a slow consumer.
package engine
