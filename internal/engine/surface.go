package engine

// Color is a hex color applied to rendered bars.
type Color string

// Bar colors matching the visualizer's highlight choreography.
const (
	ColorBase    Color = "#2b7a78" // resting bar
	ColorActive  Color = "#fdd835" // current key / running minimum
	ColorCompare Color = "#cc241d" // pair under comparison
	ColorSettled Color = "#66bb6a" // provisionally placed
	ColorSorted  Color = "#388e3c" // fully sorted
)

// Handle is an opaque reference to a renderer-owned drawable.
//
// Handles are issued by [Surface.CreateBar] and invalidated by
// [Surface.ClearAll]; operations on an invalidated handle must be
// ignored by the surface, never propagated as errors.
type Handle int

// Geometry describes the initial placement of a bar on the surface.
type Geometry struct {
	X      float64 // left edge
	Y      float64 // top edge
	Width  float64
	Height float64
	Value  int    // numeric caption above the bar
	Label  string // display caption below the bar
}

// Surface abstracts the rendering target for the visualizer.
//
// Implementations own the drawable resources and must be safe for use
// from the background run goroutine concurrently with reads from the
// presentation side.
type Surface interface {
	// CreateBar allocates a bar (shape plus captions) and returns its handle.
	CreateBar(g Geometry) Handle

	// Move translates the bar by (dx, dy). Stale handles are ignored.
	Move(h Handle, dx, dy float64)

	// SetColor recolors the bar. Stale handles are ignored.
	SetColor(h Handle, c Color)

	// SetText replaces the bar's value caption. Stale handles are ignored.
	SetText(h Handle, text string)

	// ClearAll destroys every drawable and invalidates all handles.
	ClearAll()
}

// NopSurface discards every drawing operation. Used for headless runs
// where only the resulting order matters.
type NopSurface struct{}

var _ Surface = NopSurface{}

func (NopSurface) CreateBar(g Geometry) Handle   { return 0 }
func (NopSurface) Move(h Handle, dx, dy float64) {}
func (NopSurface) SetColor(h Handle, c Color)    {}
func (NopSurface) SetText(h Handle, text string) {}
func (NopSurface) ClearAll()                     {}
