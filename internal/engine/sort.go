package engine

import (
	"fmt"
	"sort"

	"github.com/mtorres-dev/sortboard/internal/shared"
)

// Observer receives the full current order after every committed swap,
// so an external view can stay in sync before the run completes.
type Observer func(order []Record)

// Sorter expresses one algorithm purely in terms of sequence reads/swaps
// and animator highlight calls. Implementations must poll the flag before
// each outer index and inside each inner comparison so cancellation takes
// effect within one step.
type Sorter interface {
	Name() string
	Sort(a *Animator, flag *Flag, notify Observer)
}

var sorters = map[string]Sorter{}

// Register adds a sorter to the registry, replacing any previous sorter
// with the same name.
func Register(s Sorter) {
	sorters[s.Name()] = s
}

// Lookup returns the registered sorter with the given name.
func Lookup(name string) (Sorter, error) {
	s, ok := sorters[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown algorithm %q", shared.ErrInvalidFlag, name)
	}
	return s, nil
}

// Names returns the registered algorithm names in sorted order.
func Names() []string {
	names := make([]string, 0, len(sorters))
	for name := range sorters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(InsertionSort{})
	Register(SelectionSort{})
}

// InsertionSort bubbles each element leftward until its predecessor no
// longer exceeds it.
type InsertionSort struct{}

func (InsertionSort) Name() string { return "insertion" }

func (InsertionSort) Sort(a *Animator, flag *Flag, notify Observer) {
	seq := a.seq
	n := seq.Len()

	for i := 1; i < n; i++ {
		if flag.Cancelled() {
			return
		}

		j := i
		a.Highlight([]int{i}, ColorActive)
		a.Pause()

		for j > 0 && seq.records[j-1].Key > seq.records[j].Key {
			if flag.Cancelled() {
				return
			}

			a.Highlight([]int{j, j - 1}, ColorCompare)
			a.AnimateSwap(j, j-1)
			a.Highlight([]int{j - 1}, ColorSettled)
			j--

			if notify != nil {
				notify(seq.Records())
			}
			a.Pause()
		}
		a.ResetColors()
	}

	a.Highlight(allIndices(n), ColorSorted)
}

// SelectionSort repeatedly selects the minimum of the unsorted suffix.
// Ties keep the earliest index (strict less-than), so the winner is
// deterministic even though full stability is not guaranteed.
type SelectionSort struct{}

func (SelectionSort) Name() string { return "selection" }

func (SelectionSort) Sort(a *Animator, flag *Flag, notify Observer) {
	seq := a.seq
	n := seq.Len()

	for i := 0; i < n; i++ {
		if flag.Cancelled() {
			return
		}

		min := i
		a.Highlight([]int{i}, ColorActive)

		for j := i + 1; j < n; j++ {
			if flag.Cancelled() {
				return
			}

			a.Highlight([]int{j}, ColorCompare)
			a.Pause()

			if seq.records[j].Key < seq.records[min].Key {
				min = j
			}

			// Clear candidate highlights but keep the running pair visible.
			a.ResetColors()
			a.Highlight([]int{i, min}, ColorActive)
		}

		if flag.Cancelled() {
			return
		}

		if min != i {
			a.AnimateSwap(i, min)
			if notify != nil {
				notify(seq.Records())
			}
		}

		a.Highlight(allIndices(i+1), ColorSettled)
	}

	a.Highlight(allIndices(n), ColorSorted)
}

// allIndices returns [0, n).
func allIndices(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
