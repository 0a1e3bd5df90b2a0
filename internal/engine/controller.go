package engine

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mtorres-dev/sortboard/internal/shared"
)

// ProgressUpdate carries the current full record order during a run.
//
// Updates are delivered in the order issued; sends are non-blocking, so
// a slow consumer drops intermediate updates rather than stalling the
// background goroutine.
type ProgressUpdate struct {
	Algorithm string
	Order     []Record
}

// RunResult is the final outcome of a run, delivered once on completion
// or cancellation. A cancelled run carries whatever partially-sorted
// order it had reached; that is intentional partial-result semantics,
// not a failure.
type RunResult struct {
	Algorithm string
	Order     []Record
	Cancelled bool
}

// Controller owns the background execution context for sorts and
// enforces the at-most-one-active-run invariant.
type Controller struct {
	mu      sync.Mutex
	seq     *Sequence
	anim    *Animator
	flag    Flag
	running bool
	logger  *log.Logger
}

// NewController creates a controller over the given sequence and animator.
func NewController(seq *Sequence, anim *Animator, logger *log.Logger) *Controller {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Controller{seq: seq, anim: anim, logger: logger}
}

// Start snapshot-loads records into the sequence and dispatches the
// sorter on a background goroutine.
//
// Returns [shared.ErrBusy] while a run is active (no state is mutated)
// and [shared.ErrNoData] for empty input (no goroutine is created).
// The final order is delivered on done; intermediate orders on progress.
func (c *Controller) Start(sorter Sorter, records []Record, progress chan<- ProgressUpdate, done chan<- RunResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return shared.ErrBusy
	}
	if len(records) == 0 {
		return shared.ErrNoData
	}

	c.seq.Load(records)
	c.flag.Reset()
	c.running = true

	c.logger.Info("starting sort", "algorithm", sorter.Name(), "records", len(records))
	go c.run(sorter, progress, done)
	return nil
}

// Load replaces the sequence contents outside of a run. While a run is
// active the sequence is exclusively owned by the engine, so reloading
// is rejected with [shared.ErrBusy].
func (c *Controller) Load(records []Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return shared.ErrBusy
	}
	c.seq.Load(records)
	return nil
}

// Stop sets the cancellation flag if and only if a run is active.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		c.logger.Info("stopping sort")
		c.flag.Cancel()
	}
}

// Running reports whether a run is active.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *Controller) run(sorter Sorter, progress chan<- ProgressUpdate, done chan<- RunResult) {
	sorter.Sort(c.anim, &c.flag, func(order []Record) {
		c.sendProgress(progress, ProgressUpdate{Algorithm: sorter.Name(), Order: order})
	})

	cancelled := c.flag.Cancelled()

	c.mu.Lock()
	c.running = false
	c.flag.Reset()
	result := RunResult{
		Algorithm: sorter.Name(),
		Order:     c.seq.Records(),
		Cancelled: cancelled,
	}
	c.mu.Unlock()

	c.logger.Info("sort finished", "algorithm", sorter.Name(), "cancelled", cancelled)

	if done != nil {
		done <- result
	}
}

// sendProgress sends an update without blocking. A full channel drops
// the update; the consumer resynchronizes on the next one or on done.
func (c *Controller) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
