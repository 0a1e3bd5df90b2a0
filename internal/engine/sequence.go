package engine

import (
	"fmt"

	"github.com/mtorres-dev/sortboard/internal/shared"
)

// VisualHandle pairs a renderer handle with the bar's current left edge.
//
// Handles live in lockstep with the record at the same index: every swap
// of records swaps the handles too, atomically, so handles[k] always
// belongs to records[k].
type VisualHandle struct {
	Bar Handle
	X   float64
}

// Sequence is the single source of truth for the current record order.
//
// It owns the parallel record and handle slices; the surface owns the
// underlying drawables. Sequence is not internally synchronized: the
// [Controller] guarantees exclusive access while a run is active.
type Sequence struct {
	surface Surface
	layout  Layout
	records []Record
	handles []VisualHandle
}

// NewSequence creates an empty sequence that renders onto the given surface.
func NewSequence(surface Surface, layout Layout) *Sequence {
	return &Sequence{surface: surface, layout: layout}
}

// Load replaces the entire state: all prior handles are discarded, one
// bar is created per record in input order, and initial positions are
// computed from the layout. The input is snapshot-cloned.
func (s *Sequence) Load(records []Record) {
	s.surface.ClearAll()
	s.records = cloneRecords(records)
	s.handles = make([]VisualHandle, 0, len(records))

	n := len(s.records)
	if n == 0 {
		return
	}

	max := maxKey(s.records)
	for i, r := range s.records {
		g := s.layout.Geometry(i, n, r.Key, max)
		g.Label = r.Label
		h := s.surface.CreateBar(g)
		s.handles = append(s.handles, VisualHandle{Bar: h, X: g.X})
	}
}

// Len returns the number of loaded records.
func (s *Sequence) Len() int { return len(s.records) }

// Get returns the record at logical index i.
func (s *Sequence) Get(i int) (Record, error) {
	if i < 0 || i >= len(s.records) {
		return Record{}, fmt.Errorf("%w: %d (len %d)", shared.ErrIndexOutOfRange, i, len(s.records))
	}
	return s.records[i], nil
}

// Handle returns the visual handle at logical index i.
func (s *Sequence) Handle(i int) (VisualHandle, error) {
	if i < 0 || i >= len(s.handles) {
		return VisualHandle{}, fmt.Errorf("%w: %d (len %d)", shared.ErrIndexOutOfRange, i, len(s.handles))
	}
	return s.handles[i], nil
}

// Swap exchanges records[i]/[j] and their handles in one step. It does
// not animate; the Animator commits this after the motion completes.
//
// The X field stays with the slot, not the bar: after a visual swap the
// bar formerly at i occupies j's position, so slot positions are stable.
func (s *Sequence) Swap(i, j int) error {
	n := len(s.records)
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d (len %d)", shared.ErrIndexOutOfRange, i, n)
	}
	if j < 0 || j >= n {
		return fmt.Errorf("%w: %d (len %d)", shared.ErrIndexOutOfRange, j, n)
	}
	if i == j {
		return nil
	}

	s.records[i], s.records[j] = s.records[j], s.records[i]
	s.handles[i].Bar, s.handles[j].Bar = s.handles[j].Bar, s.handles[i].Bar
	return nil
}

// Records returns a copy of the current order.
func (s *Sequence) Records() []Record {
	return cloneRecords(s.records)
}
