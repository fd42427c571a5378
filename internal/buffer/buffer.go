// Package buffer implements the Buffer model of spec.md §3: an indexed
// sequence of lines plus cursor, viewport, per-buffer options, search
// term, and owned undo/redo history.
package buffer

import (
	"github.com/framegrace/bim/internal/cell"
	"github.com/framegrace/bim/internal/history"
	"github.com/framegrace/bim/internal/syntax"
)

// Mode is the buffer's current modal-editing state (spec.md §4.7).
type Mode int

const (
	Normal Mode = iota
	Insert
	Replace
	LineSelection
	CharSelection
	ColSelection
	ColInsert
)

// Options holds the per-buffer settings spec.md §3 names.
type Options struct {
	Tabstop    int
	ExpandTab  bool
	AutoIndent bool
	Readonly   bool
}

// DefaultOptions returns the editor's out-of-the-box option set.
func DefaultOptions() Options {
	return Options{Tabstop: 8, ExpandTab: false, AutoIndent: true, Readonly: false}
}

// Buffer is one edited document: lines, cursor, viewport, options,
// selection, search term, syntax choice, and its own history journal
// (spec.md §3).
type Buffer struct {
	lines []*cell.Line

	CursorLine int // 1-based
	CursorCol  int // 1-based
	Preferred  int // preferred column for vertical moves

	Offset  int // vertical viewport offset (0-based top line index)
	COffset int // horizontal viewport offset

	Left  int // split slot left edge, in terminal columns
	Width int // split slot render width

	Mode    Mode
	Options Options

	FileName string
	Readonly bool

	SelStartLine int
	SelCol       int // anchor column for char/col selection

	SearchNeedle []rune

	Syntax   *syntax.Definition
	registry *syntax.Registry

	History         *history.Journal
	lastSaveHistory int
	historyEnabled  bool
	loading         bool

	// ViewLeftOffset/ViewRightOffset hold the parked vertical offset of
	// the inactive pane in a self-split view (spec.md §4.4); only
	// meaningful when this buffer is shown twice.
	ViewLeftOffset  int
	ViewRightOffset int
}

// New returns a buffer with a single empty line, history enabled, and
// default options — the state of a freshly opened empty document.
func New(reg *syntax.Registry) *Buffer {
	b := &Buffer{
		lines:          []*cell.Line{cell.NewLine()},
		CursorLine:     1,
		CursorCol:      1,
		Preferred:      1,
		Options:        DefaultOptions(),
		History:        history.New(),
		historyEnabled: true,
		registry:       reg,
	}
	b.lines[0].IsCurrent = true
	return b
}

// LineCount returns the number of lines, always >= 1 (spec.md invariant).
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the 1-based line lineNo. Panics if out of range; callers
// are expected to keep CursorLine/et al. within [1, LineCount()].
func (b *Buffer) Line(lineNo int) *cell.Line { return b.lines[lineNo-1] }

// Lines returns the live backing slice, 0-based. Renderer-only.
func (b *Buffer) Lines() []*cell.Line { return b.lines }

// SetHistoryEnabled toggles journaling. It has no caller: the -O
// history/nohistory capability only controls whether cmd/bim opens the
// command-history database.
func (b *Buffer) SetHistoryEnabled(v bool) { b.historyEnabled = v }

// HistoryEnabled reports whether mutations are being journaled.
func (b *Buffer) HistoryEnabled() bool { return b.historyEnabled }

// SetLoading toggles the bulk-load flag that suppresses history and
// syntax cascades (spec.md §3/§5).
func (b *Buffer) SetLoading(v bool) { b.loading = v }

// Loading reports whether the buffer is mid bulk-load.
func (b *Buffer) Loading() bool { return b.loading }

// MarkSaved records the current history position as the last-save point,
// so Modified becomes false until the next mutation (spec.md §3:
// "modified ⇔ history ≠ last_save_history").
func (b *Buffer) MarkSaved() { b.lastSaveHistory = b.History.Head() }

// Modified reports whether the buffer has unsaved changes.
func (b *Buffer) Modified() bool { return b.History.Head() != b.lastSaveHistory }

// SetSyntax chooses the active language definition (nil disables
// highlighting) and fully re-lexes the buffer.
func (b *Buffer) SetSyntax(def *syntax.Definition) {
	b.Syntax = def
	for _, l := range b.lines {
		l.IState = 0
	}
	b.RelexAll()
}

// Registry returns the syntax registry this buffer resolves languages
// against.
func (b *Buffer) Registry() *syntax.Registry { return b.registry }

// RelexAll recomputes syntax highlighting for every line from scratch,
// used after load, after SetSyntax, and as the post-undo/redo resync
// spec.md §4.2 mandates.
func (b *Buffer) RelexAll() {
	if b.Syntax == nil {
		for _, l := range b.lines {
			clearFlags(l)
		}
		return
	}
	syntax.RecomputeCascade(b.Syntax, b.lines, 0, nil, nil)
}

func clearFlags(l *cell.Line) {
	cells := l.Cells()
	for i := range cells {
		cells[i].Flags = cells[i].Flags & (cell.FlagSelect | cell.FlagSearch)
	}
}

// cascade re-lexes starting at the given 0-based line index and follows
// the cascade rule into later lines whose inherited state changed,
// notifying onScreen (if set) for any line that needs redrawing. Skipped
// entirely while loading (spec.md §3).
func (b *Buffer) cascade(onScreen func(int), fromLine0 int) {
	if b.loading || b.Syntax == nil {
		return
	}
	syntax.RecomputeCascade(b.Syntax, b.lines, fromLine0, onScreen, nil)
}
