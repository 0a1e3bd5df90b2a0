package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/mtorres-dev/sortboard/internal/shared"
)

// blockingSorter parks until released so tests can observe the running state.
type blockingSorter struct {
	started chan struct{}
	release chan struct{}
}

func newBlockingSorter() *blockingSorter {
	return &blockingSorter{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (s *blockingSorter) Name() string { return "blocking" }

func (s *blockingSorter) Sort(a *Animator, flag *Flag, notify Observer) {
	close(s.started)
	<-s.release
}

// pollingSorter spins on the cancellation flag like a real algorithm.
type pollingSorter struct {
	started chan struct{}
}

func (s *pollingSorter) Name() string { return "polling" }

func (s *pollingSorter) Sort(a *Animator, flag *Flag, notify Observer) {
	close(s.started)
	for !flag.Cancelled() {
		time.Sleep(time.Millisecond)
	}
}

func newTestController() *Controller {
	seq := NewSequence(NopSurface{}, DefaultLayout())
	anim := NewAnimator(seq, NopSurface{}, func() int { return 100 }, AnimatorOpts{Steps: 1, MinDelay: time.Nanosecond})
	return NewController(seq, anim, nil)
}

func TestControllerStart(t *testing.T) {
	t.Run("rejects empty input without starting a run", func(t *testing.T) {
		c := newTestController()

		err := c.Start(InsertionSort{}, nil, nil, nil)
		if !errors.Is(err, shared.ErrNoData) {
			t.Fatalf("expected ErrNoData, got %v", err)
		}
		if c.Running() {
			t.Error("controller running after rejected start")
		}
	})

	t.Run("rejects a second start while running", func(t *testing.T) {
		c := newTestController()
		sorter := newBlockingSorter()
		done := make(chan RunResult, 1)

		if err := c.Start(sorter, sampleRecords(), nil, done); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		<-sorter.started

		if err := c.Start(InsertionSort{}, sampleRecords(), nil, nil); !errors.Is(err, shared.ErrBusy) {
			t.Errorf("expected ErrBusy, got %v", err)
		}
		if !c.Running() {
			t.Error("expected controller to report running")
		}

		close(sorter.release)
		<-done
	})

	t.Run("rejects Load while running", func(t *testing.T) {
		c := newTestController()
		sorter := newBlockingSorter()
		done := make(chan RunResult, 1)

		if err := c.Start(sorter, sampleRecords(), nil, done); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		<-sorter.started

		if err := c.Load(sampleRecords()); !errors.Is(err, shared.ErrBusy) {
			t.Errorf("expected ErrBusy, got %v", err)
		}

		close(sorter.release)
		<-done

		if err := c.Load(sampleRecords()[:1]); err != nil {
			t.Errorf("Load after completion failed: %v", err)
		}
	})
}

func TestControllerRun(t *testing.T) {
	t.Run("delivers the sorted order on done", func(t *testing.T) {
		c := newTestController()
		done := make(chan RunResult, 1)

		if err := c.Start(InsertionSort{}, sampleRecords(), nil, done); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result := <-done
		if result.Cancelled {
			t.Error("uncancelled run reported Cancelled")
		}
		if result.Algorithm != "insertion" {
			t.Errorf("expected insertion, got %s", result.Algorithm)
		}
		assertSortedByKey(t, result.Order)
		assertPermutation(t, sampleRecords(), result.Order)

		if c.Running() {
			t.Error("controller still running after done")
		}
	})

	t.Run("forwards progress updates", func(t *testing.T) {
		c := newTestController()
		progress := make(chan ProgressUpdate, 64)
		done := make(chan RunResult, 1)

		if err := c.Start(InsertionSort{}, sampleRecords(), progress, done); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		<-done

		if len(progress) == 0 {
			t.Fatal("expected at least one progress update")
		}
		update := <-progress
		if update.Algorithm != "insertion" {
			t.Errorf("expected insertion, got %s", update.Algorithm)
		}
		assertPermutation(t, sampleRecords(), update.Order)
	})

	t.Run("nil progress channel is tolerated", func(t *testing.T) {
		c := newTestController()
		done := make(chan RunResult, 1)

		if err := c.Start(InsertionSort{}, sampleRecords(), nil, done); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		<-done
	})
}

func TestControllerStop(t *testing.T) {
	t.Run("is a no-op while idle", func(t *testing.T) {
		c := newTestController()

		c.Stop()

		if c.flag.Cancelled() {
			t.Error("Stop while idle set the cancellation flag")
		}
	})

	t.Run("cancels an active run and resets for reuse", func(t *testing.T) {
		c := newTestController()
		sorter := &pollingSorter{started: make(chan struct{})}
		done := make(chan RunResult, 1)

		if err := c.Start(sorter, sampleRecords(), nil, done); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		<-sorter.started

		c.Stop()

		result := <-done
		if !result.Cancelled {
			t.Error("stopped run did not report Cancelled")
		}
		if c.Running() {
			t.Error("controller still running after cancellation")
		}
		if c.flag.Cancelled() {
			t.Error("flag not reset after run ended")
		}

		// The controller must be immediately reusable.
		if err := c.Start(InsertionSort{}, sampleRecords(), nil, done); err != nil {
			t.Fatalf("restart after cancellation failed: %v", err)
		}
		result = <-done
		if result.Cancelled {
			t.Error("fresh run inherited stale cancellation")
		}
		assertSortedByKey(t, result.Order)
	})
}

func TestFlag(t *testing.T) {
	var f Flag

	if f.Cancelled() {
		t.Error("zero flag reports cancelled")
	}
	f.Cancel()
	if !f.Cancelled() {
		t.Error("Cancel did not take effect")
	}
	f.Reset()
	if f.Cancelled() {
		t.Error("Reset did not clear the flag")
	}
}
