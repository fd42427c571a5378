package buffer

import (
	"testing"

	"github.com/framegrace/bim/internal/syntax"
)

func lineText(b *Buffer, lineNo int) string {
	cells := b.Line(lineNo).Cells()
	rs := make([]rune, len(cells))
	for i, c := range cells {
		rs[i] = c.Codepoint
	}
	return string(rs)
}

func insertString(b *Buffer, lineNo, col int, s string) {
	for i, r := range []rune(s) {
		b.InsertCell(lineNo, col+i, r, nil)
	}
}

// TestUndoFirstPressAfterTransactionInvertsWholeTransaction reproduces
// spec.md §8 scenario 1: typing "hello" in INSERT, pressing ESC (which
// breaks the transaction), then a single `u` must restore the buffer to
// its pre-insert state in one step, not leave the last character behind.
func TestUndoFirstPressAfterTransactionInvertsWholeTransaction(t *testing.T) {
	b := New(syntax.NewRegistry())
	insertString(b, 1, 1, "hello")
	b.SetHistoryBreak()

	if got := lineText(b, 1); got != "hello" {
		t.Fatalf("precondition: line = %q, want %q", got, "hello")
	}

	b.Undo()

	if got := lineText(b, 1); got != "" {
		t.Fatalf("after one undo, line = %q, want empty", got)
	}
}

// TestUndoRedoRoundTrip checks that undoing a whole transaction and then
// redoing it restores the post-transaction content exactly.
func TestUndoRedoRoundTrip(t *testing.T) {
	b := New(syntax.NewRegistry())
	insertString(b, 1, 1, "hello")
	b.SetHistoryBreak()

	b.Undo()
	if got := lineText(b, 1); got != "" {
		t.Fatalf("after undo, line = %q, want empty", got)
	}

	b.Redo()
	if got := lineText(b, 1); got != "hello" {
		t.Fatalf("after redo, line = %q, want %q", got, "hello")
	}
}

// TestUndoTwoTransactionsOneAtATime checks that each `u` press peels off
// exactly one transaction, not the whole history at once and not zero.
func TestUndoTwoTransactionsOneAtATime(t *testing.T) {
	b := New(syntax.NewRegistry())
	insertString(b, 1, 1, "foo")
	b.SetHistoryBreak()
	insertString(b, 1, 4, "bar")
	b.SetHistoryBreak()

	if got := lineText(b, 1); got != "foobar" {
		t.Fatalf("precondition: line = %q, want %q", got, "foobar")
	}

	b.Undo()
	if got := lineText(b, 1); got != "foo" {
		t.Fatalf("after first undo, line = %q, want %q", got, "foo")
	}

	b.Undo()
	if got := lineText(b, 1); got != "" {
		t.Fatalf("after second undo, line = %q, want empty", got)
	}
}
