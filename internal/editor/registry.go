// Package editor implements the buffer registry and two-pane split
// layout (spec.md §4.4), the process-global yank register (spec.md
// §3/§9), and the Context that threads global mutable state through
// operations per spec.md §9's guidance to avoid scattered globals.
package editor

import "github.com/framegrace/bim/internal/buffer"

const minRegistryCap = 8

// Registry is the ordered list of open buffers, geometrically growing,
// with an active index and up to two split slots (spec.md §4.4).
type Registry struct {
	buffers []*buffer.Buffer
	active  int

	// SplitActive reports whether a second pane is shown.
	SplitActive bool
	// LeftIndex/RightIndex index into buffers for the two split slots.
	// When SplitActive is false only LeftIndex (== active) is shown
	// full-width. A self-split has LeftIndex == RightIndex.
	LeftIndex  int
	RightIndex int
	// SplitPercent is the left pane's share of terminal width, clamped
	// to [10,90] (spec.md §6's splitpercent rc key).
	SplitPercent int

	// FocusRight reports which split slot currently has input focus.
	FocusRight bool
}

// NewRegistry returns an empty registry (no buffers). Callers add the
// first buffer immediately after construction.
func NewRegistry() *Registry {
	return &Registry{
		buffers:      make([]*buffer.Buffer, 0, minRegistryCap),
		SplitPercent: 50,
	}
}

// Add appends a new buffer and makes it active, returning its index.
func (r *Registry) Add(b *buffer.Buffer) int {
	r.buffers = append(r.buffers, b)
	idx := len(r.buffers) - 1
	r.active = idx
	if !r.SplitActive {
		r.LeftIndex = idx
	} else if r.FocusRight {
		r.RightIndex = idx
	} else {
		r.LeftIndex = idx
	}
	return idx
}

// Count returns the number of open buffers.
func (r *Registry) Count() int { return len(r.buffers) }

// At returns the buffer at index i (0-based).
func (r *Registry) At(i int) *buffer.Buffer { return r.buffers[i] }

// Active returns the currently active buffer.
func (r *Registry) Active() *buffer.Buffer { return r.buffers[r.active] }

// ActiveIndex returns the index of the active buffer.
func (r *Registry) ActiveIndex() int { return r.active }

// SetActive makes buffer i active, updating whichever split slot has
// focus.
func (r *Registry) SetActive(i int) {
	r.active = i
	if r.SplitActive && r.FocusRight {
		r.RightIndex = i
	} else {
		r.LeftIndex = i
	}
}

// All returns every open buffer, in registry order.
func (r *Registry) All() []*buffer.Buffer { return r.buffers }

// Close removes buffer i and returns the index that should become
// active: the previous index if one exists, else the new last index
// (spec.md §4.4). Returns (-1, true) if this was the last buffer (the
// caller should exit the process).
func (r *Registry) Close(i int) (next int, exit bool) {
	r.buffers = append(r.buffers[:i], r.buffers[i+1:]...)
	if len(r.buffers) == 0 {
		return -1, true
	}
	if i > 0 {
		next = i - 1
	} else {
		next = len(r.buffers) - 1
	}
	r.active = next
	r.LeftIndex = next
	r.RightIndex = next
	if r.RightIndex >= len(r.buffers) {
		r.RightIndex = len(r.buffers) - 1
	}
	return next, false
}

// StartSplit enables the two-pane layout, putting the currently active
// buffer in both slots (a self-split) unless otherImplicit differs.
func (r *Registry) StartSplit() {
	r.SplitActive = true
	r.LeftIndex = r.active
	r.RightIndex = r.active
	r.FocusRight = true
}

// EndSplit collapses back to a single full-width pane showing whichever
// slot currently has focus.
func (r *Registry) EndSplit() {
	if r.FocusRight {
		r.active = r.RightIndex
	} else {
		r.active = r.LeftIndex
	}
	r.SplitActive = false
	r.LeftIndex = r.active
	r.FocusRight = false
}

// FocusedIndex returns the buffer index of whichever split slot has
// focus (or the sole pane, if not split).
func (r *Registry) FocusedIndex() int {
	if !r.SplitActive {
		return r.LeftIndex
	}
	if r.FocusRight {
		return r.RightIndex
	}
	return r.LeftIndex
}

// Layout recomputes Left/Width on every visible buffer slot for
// terminal width cols, following splitPercent (spec.md §4.4: "Resize
// events recompute left/width for whichever configuration is active").
func (r *Registry) Layout(cols int) {
	if !r.SplitActive {
		b := r.buffers[r.LeftIndex]
		b.Left, b.Width = 0, cols
		return
	}
	pct := r.SplitPercent
	if pct < 10 {
		pct = 10
	}
	if pct > 90 {
		pct = 90
	}
	leftW := cols * pct / 100
	if leftW < 1 {
		leftW = 1
	}
	if leftW > cols-1 {
		leftW = cols - 1
	}
	left := r.buffers[r.LeftIndex]
	right := r.buffers[r.RightIndex]
	left.Left, left.Width = 0, leftW
	right.Left, right.Width = leftW, cols-leftW
}
