package engine

import (
	"time"
)

// SpeedFunc reports the current user-facing speed in [1,100]. It is read
// on every pacing decision, so mid-run changes take effect on the next step.
type SpeedFunc func() int

// AnimatorOpts contains tunables for the animation driver.
type AnimatorOpts struct {
	Steps        int           // sub-steps per motion phase (default 20)
	Lift         float64       // vertical lift during swaps (default 30)
	SpeedDivisor int           // delay mapping divisor (default 700)
	MinDelay     time.Duration // pacing floor (default 1ms)
}

// withDefaults fills unset options with the standard values.
func (o AnimatorOpts) withDefaults() AnimatorOpts {
	if o.Steps <= 0 {
		o.Steps = 20
	}
	if o.Lift <= 0 {
		o.Lift = 30
	}
	if o.SpeedDivisor <= 0 {
		o.SpeedDivisor = 700
	}
	if o.MinDelay <= 0 {
		o.MinDelay = time.Millisecond
	}
	return o
}

// Animator renders logical transitions as interpolated visual deltas.
//
// Motion is broken into fixed equal sub-steps with a blocking pause after
// each, so swaps read as smooth exchanges rather than discrete jumps. The
// pause runs on the background goroutine that drives the sort, never on
// the presentation side.
type Animator struct {
	seq     *Sequence
	surface Surface
	speed   SpeedFunc
	opts    AnimatorOpts
}

// NewAnimator creates an animator over the given sequence and surface.
// A nil speed function pins the speed at the midpoint.
func NewAnimator(seq *Sequence, surface Surface, speed SpeedFunc, opts AnimatorOpts) *Animator {
	if speed == nil {
		speed = func() int { return 50 }
	}
	return &Animator{
		seq:     seq,
		surface: surface,
		speed:   speed,
		opts:    opts.withDefaults(),
	}
}

// StepDelay maps the live speed value to a per-step delay:
// max(floor, (101-speed)/divisor seconds). Higher speeds yield shorter
// delays; the floor keeps the delay strictly positive.
func (a *Animator) StepDelay() time.Duration {
	v := a.speed()
	if v < 1 {
		v = 1
	} else if v > 100 {
		v = 100
	}

	d := time.Duration(101-v) * time.Second / time.Duration(a.opts.SpeedDivisor)
	if d < a.opts.MinDelay {
		d = a.opts.MinDelay
	}
	return d
}

// Pause blocks for one speed unit.
func (a *Animator) Pause() {
	time.Sleep(a.StepDelay())
}

// Highlight sets visual emphasis on the given indices. Out-of-range
// indices are skipped; the operation is idempotent.
func (a *Animator) Highlight(indices []int, c Color) {
	for _, i := range indices {
		if i < 0 || i >= len(a.seq.handles) {
			continue
		}
		a.surface.SetColor(a.seq.handles[i].Bar, c)
	}
}

// ResetColors restores the default emphasis on all handles. Handles
// destroyed by a concurrent reload are ignored by the surface.
func (a *Animator) ResetColors() {
	for i := range a.seq.handles {
		a.surface.SetColor(a.seq.handles[i].Bar, ColorBase)
	}
}

// AnimateSwap exchanges the bars at i and j with a lift, horizontal
// slide, and drop, then commits the logical swap in the sequence so the
// index-to-visual mapping stays correct. Self-swaps and out-of-range
// indices are no-ops.
func (a *Animator) AnimateSwap(i, j int) {
	if i == j {
		return
	}
	n := len(a.seq.handles)
	if i < 0 || i >= n || j < 0 || j >= n {
		return
	}

	dx := a.seq.handles[j].X - a.seq.handles[i].X

	a.movePair(i, j, 0, -a.opts.Lift, 0, -a.opts.Lift)
	a.movePair(i, j, dx, 0, -dx, 0)
	a.movePair(i, j, 0, a.opts.Lift, 0, a.opts.Lift)

	a.seq.Swap(i, j)
}

// movePair translates both bars by their deltas in equal sub-steps,
// pausing one speed unit after each, so the pair moves in unison.
func (a *Animator) movePair(i, j int, dxi, dyi, dxj, dyj float64) {
	steps := float64(a.opts.Steps)
	hi := a.seq.handles[i].Bar
	hj := a.seq.handles[j].Bar
	for s := 0; s < a.opts.Steps; s++ {
		a.surface.Move(hi, dxi/steps, dyi/steps)
		a.surface.Move(hj, dxj/steps, dyj/steps)
		a.Pause()
	}
}
