package ui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/mtorres-dev/sortboard/internal/engine"
)

// Cell size of the terminal grid in canvas pixels. The engine animates
// in a virtual pixel space; the canvas quantizes to character cells
// at render time.
const (
	cellWidth  = 10
	cellHeight = 20
)

// barState tracks the current pixel geometry and styling of one bar.
type barState struct {
	x, y  float64 // top-left corner
	w, h  float64
	color engine.Color
	value string
	label string
}

// Canvas implements [engine.Surface] on a character grid.
//
// All mutation happens under a mutex, so the background run goroutine
// and the presentation loop never observe a half-applied delta. ClearAll
// invalidates every handle; operations arriving afterwards with a stale
// handle are silently ignored (a reload intentionally discards them).
type Canvas struct {
	mu     sync.Mutex
	layout engine.Layout
	next   engine.Handle
	bars   map[engine.Handle]*barState
	order  []engine.Handle
}

var _ engine.Surface = (*Canvas)(nil)

// NewCanvas creates an empty canvas for the given layout.
func NewCanvas(layout engine.Layout) *Canvas {
	return &Canvas{
		layout: layout,
		bars:   make(map[engine.Handle]*barState),
	}
}

// CreateBar allocates a bar and returns its handle.
func (c *Canvas) CreateBar(g engine.Geometry) engine.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.next++
	h := c.next
	c.bars[h] = &barState{
		x:     g.X,
		y:     g.Y,
		w:     g.Width,
		h:     g.Height,
		color: engine.ColorBase,
		value: strconv.Itoa(g.Value),
		label: g.Label,
	}
	c.order = append(c.order, h)
	return h
}

// Move translates the bar by (dx, dy). Stale handles are ignored.
func (c *Canvas) Move(h engine.Handle, dx, dy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if bar, ok := c.bars[h]; ok {
		bar.x += dx
		bar.y += dy
	}
}

// SetColor recolors the bar. Stale handles are ignored.
func (c *Canvas) SetColor(h engine.Handle, col engine.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if bar, ok := c.bars[h]; ok {
		bar.color = col
	}
}

// SetText replaces the bar's value caption. Stale handles are ignored.
func (c *Canvas) SetText(h engine.Handle, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if bar, ok := c.bars[h]; ok {
		bar.value = text
	}
}

// ClearAll destroys every bar and invalidates all outstanding handles.
func (c *Canvas) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bars = make(map[engine.Handle]*barState)
	c.order = nil
}

// Size reports the number of live bars.
func (c *Canvas) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.bars)
}

// View renders the canvas to a string of colored columns with value
// captions above each bar and labels along the baseline.
func (c *Canvas) View() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	cols := int(c.layout.Width) / cellWidth
	rows := int(c.layout.Height) / cellHeight

	type cell struct {
		ch    rune
		color engine.Color
	}

	grid := make([][]cell, rows)
	for r := range grid {
		grid[r] = make([]cell, cols)
		for col := range grid[r] {
			grid[r][col] = cell{ch: ' '}
		}
	}

	put := func(row, col int, ch rune, color engine.Color) {
		if row < 0 || row >= rows || col < 0 || col >= cols {
			return
		}
		grid[row][col] = cell{ch: ch, color: color}
	}

	putText := func(row, col int, text string, color engine.Color) {
		for i, ch := range text {
			put(row, col+i, ch, color)
		}
	}

	for _, h := range c.order {
		bar := c.bars[h]

		colStart := int(bar.x) / cellWidth
		colEnd := int(bar.x+bar.w-1) / cellWidth
		rowTop := int(bar.y) / cellHeight
		rowBottom := int(bar.y+bar.h-1) / cellHeight

		for row := rowTop; row <= rowBottom; row++ {
			for col := colStart; col <= colEnd; col++ {
				put(row, col, '█', bar.color)
			}
		}

		center := (colStart + colEnd) / 2
		putText(rowTop-1, center-len(bar.value)/2, bar.value, bar.color)
		if bar.label != "" {
			putText(rowBottom+1, center-len(bar.label)/2, bar.label, engine.ColorBase)
		}
	}

	var b strings.Builder
	for r, row := range grid {
		if r > 0 {
			b.WriteByte('\n')
		}
		// Group runs of equal color so each row emits few style resets.
		start := 0
		for start < cols {
			end := start
			for end < cols && row[end].color == row[start].color {
				end++
			}
			var run strings.Builder
			for _, cl := range row[start:end] {
				run.WriteRune(cl.ch)
			}
			text := run.String()
			if row[start].color == "" || strings.TrimSpace(text) == "" {
				b.WriteString(text)
			} else {
				b.WriteString(barStyle(row[start].color).Render(text))
			}
			start = end
		}
	}
	return b.String()
}
