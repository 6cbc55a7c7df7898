package display

import (
	"sync"

	"tarediiran-industries.com/tfl-status/internal/status"
)

const DefaultSurfaceName = "*TfL Status*"

// Surface is a named, read-only text view. Callers hold the handle; queries
// completing in any order simply overwrite each other.
type Surface struct {
	name string

	mu       sync.RWMutex
	content  status.Text
	offset   int
	readOnly bool
	version  int
}

func NewSurface(name string) *Surface {
	return &Surface{name: name}
}

func (surface *Surface) Name() string {
	return surface.name
}

// Replace clears the view, fills it with text, locks it and scrolls to the top.
func (surface *Surface) Replace(text status.Text) {
	surface.mu.Lock()
	defer surface.mu.Unlock()

	surface.content = status.Text{Spans: append([]status.Span(nil), text.Spans...)}
	surface.readOnly = true
	surface.offset = 0
	surface.version++
}

func (surface *Surface) Content() status.Text {
	surface.mu.RLock()
	defer surface.mu.RUnlock()
	return surface.content
}

func (surface *Surface) ReadOnly() bool {
	surface.mu.RLock()
	defer surface.mu.RUnlock()
	return surface.readOnly
}

// Offset is the scroll position in lines.
func (surface *Surface) Offset() int {
	surface.mu.RLock()
	defer surface.mu.RUnlock()
	return surface.offset
}

func (surface *Surface) Scroll(lines int) {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	surface.offset += lines
	if surface.offset < 0 {
		surface.offset = 0
	}
}

// Version counts successful Replace calls.
func (surface *Surface) Version() int {
	surface.mu.RLock()
	defer surface.mu.RUnlock()
	return surface.version
}

// Board owns the named surfaces of a process.
type Board struct {
	mu       sync.Mutex
	surfaces map[string]*Surface
}

func NewBoard() *Board {
	return &Board{surfaces: make(map[string]*Surface)}
}

// Surface returns the surface called name, creating it on first use.
func (board *Board) Surface(name string) *Surface {
	board.mu.Lock()
	defer board.mu.Unlock()

	if surface, ok := board.surfaces[name]; ok {
		return surface
	}
	surface := NewSurface(name)
	board.surfaces[name] = surface
	return surface
}
