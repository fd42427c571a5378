package buffer

import "github.com/framegrace/bim/internal/history"

// UndoResult reports the chars/lines-changed counters spec.md's undo and
// redo operations must produce.
type UndoResult = history.Result

// Undo walks the journal backward to the previous transaction boundary,
// then performs the post-operation resync spec.md §4.2 mandates: clamp
// cursor, clear per-line istate, and recompute tabs/syntax for every
// line (cheap, done under the loading flag).
func (b *Buffer) Undo() UndoResult {
	b.loading = true
	res := b.History.Undo(b)
	b.postUndoRedo()
	b.loading = false
	return res
}

// Redo walks the journal forward to the next transaction boundary
// (inclusive), with the same post-operation resync as Undo.
func (b *Buffer) Redo() UndoResult {
	b.loading = true
	res := b.History.Redo(b)
	b.postUndoRedo()
	b.loading = false
	return res
}

func (b *Buffer) postUndoRedo() {
	for _, l := range b.lines {
		l.IState = 0
		l.RecomputeWidths()
	}
	b.RelexAll()
	b.ClampCursor()
}

// ClampCursor enforces spec.md §3/§8's cursor invariants for the
// buffer's current mode: line in [1, LineCount()]; column in
// [1, max(1,len)] in Normal, [1, len+1] in Insert/Replace/ColInsert.
func (b *Buffer) ClampCursor() {
	if b.CursorLine < 1 {
		b.CursorLine = 1
	}
	if b.CursorLine > b.LineCount() {
		b.CursorLine = b.LineCount()
	}
	l := b.Line(b.CursorLine)
	maxCol := l.Len()
	if b.Mode == Normal || b.Mode == LineSelection || b.Mode == CharSelection || b.Mode == ColSelection {
		if maxCol < 1 {
			maxCol = 1
		}
	} else {
		maxCol = maxCol + 1
	}
	if b.CursorCol < 1 {
		b.CursorCol = 1
	}
	if b.CursorCol > maxCol {
		b.CursorCol = maxCol
	}
}
