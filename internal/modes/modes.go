// Package modes implements the modal state machine of spec.md §4.7:
// NORMAL, INSERT, REPLACE, LINE_SELECTION, CHAR_SELECTION,
// COL_SELECTION, COL_INSERT, plus auto-indent, paste, and paren
// matching. It is pure state-machine/text-algorithm code with no
// direct teacher analogue (the compositor is not modal); grounded per
// DESIGN.md on spec.md §4.7 itself.
package modes

import (
	"github.com/framegrace/bim/internal/buffer"
	"github.com/framegrace/bim/internal/editor"
)

// Pending distinguishes a key that starts a two-key sequence (`r<c>`)
// from ordinary single-key dispatch.
type Pending int

const (
	PendingNone Pending = iota
	PendingReplaceChar
	PendingG
)

// Handler drives one buffer's mode transitions. It is not itself
// buffer-specific state — it holds only the in-flight multi-key
// sequence, since Context.Registry.Active() always names the buffer
// being driven.
type Handler struct {
	pending    Pending
	ParenMatch *ParenHighlight
}

// NewHandler returns a fresh handler with no pending multi-key state.
func NewHandler() *Handler { return &Handler{ParenMatch: &ParenHighlight{}} }

// HandleRune dispatches one decoded rune event to the active buffer's
// mode handler, returning true if the key was consumed.
func (h *Handler) HandleRune(ctx *editor.Context, r rune) bool {
	b := ctx.Registry.Active()

	if h.pending == PendingReplaceChar {
		h.pending = PendingNone
		return h.replaceChar(b, r)
	}
	if h.pending == PendingG {
		h.pending = PendingNone
		if r == 'g' {
			gotoFirstLine(b)
			return true
		}
		return h.normalKey(ctx, b, r)
	}

	switch b.Mode {
	case buffer.Normal:
		return h.normalKey(ctx, b, r)
	case buffer.Insert, buffer.Replace, buffer.ColInsert:
		return h.insertKey(ctx, b, r)
	case buffer.LineSelection, buffer.CharSelection, buffer.ColSelection:
		return h.selectionKey(ctx, b, r)
	}
	return false
}

// HandleEscape handles the literal ESC key, which leaves
// insert/replace/selection/col-insert modes back to NORMAL (spec.md
// §4.7's `ESC` transitions), clamping the cursor and inserting a
// history BREAK.
func (h *Handler) HandleEscape(ctx *editor.Context) {
	b := ctx.Registry.Active()
	switch b.Mode {
	case buffer.Insert, buffer.Replace, buffer.ColInsert:
		b.Mode = buffer.Normal
		b.ClampCursor()
		b.SetHistoryBreak()
	case buffer.LineSelection, buffer.CharSelection, buffer.ColSelection:
		b.Mode = buffer.Normal
		clearSelectionFlags(b)
		b.SetHistoryBreak()
	}
}

func clearSelectionFlags(b *buffer.Buffer) {
	for i := 1; i <= b.LineCount(); i++ {
		b.Line(i).ClearSelectFlags()
	}
}
