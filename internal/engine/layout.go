package engine

// Layout computes initial bar geometry from (index, count, key, maxKey).
//
// The zero value is not useful; use [DefaultLayout] or derive one from
// configuration.
type Layout struct {
	Width    float64 // canvas width in pixels
	Height   float64 // canvas height in pixels
	Padding  float64 // horizontal inset on both sides
	Gap      float64 // spacing between adjacent bars
	Baseline float64 // distance from the bottom edge to the bar baseline
	Headroom float64 // vertical space reserved above the tallest bar
}

// DefaultLayout returns the standard canvas geometry.
func DefaultLayout() Layout {
	return Layout{
		Width:    620,
		Height:   360,
		Padding:  40,
		Gap:      10,
		Baseline: 40,
		Headroom: 100,
	}
}

// BarWidth returns the width of each bar for a sequence of n records,
// clamped so bars stay visible even for crowded sequences.
func (l Layout) BarWidth(n int) float64 {
	if n <= 0 {
		return 0
	}
	available := l.Width - 2*l.Padding
	if available < 100 {
		available = 100
	}
	w := (available - float64(n-1)*l.Gap) / float64(n)
	if w < 10 {
		w = 10
	}
	return w
}

// Geometry returns the initial placement for the bar at the given index.
func (l Layout) Geometry(index, count, key, max int) Geometry {
	barWidth := l.BarWidth(count)
	x := l.Padding + float64(index)*(barWidth+l.Gap)
	baseline := l.Height - l.Baseline

	var barHeight float64
	if max > 0 {
		barHeight = float64(key) / float64(max) * (l.Height - l.Headroom)
	} else {
		barHeight = 10
	}

	return Geometry{
		X:      x,
		Y:      baseline - barHeight,
		Width:  barWidth,
		Height: barHeight,
		Value:  key,
	}
}
