package modes

import (
	"testing"

	"github.com/framegrace/bim/internal/buffer"
	"github.com/framegrace/bim/internal/cell"
	"github.com/framegrace/bim/internal/editor"
)

func cellsOf(s string) []cell.Cell {
	rs := []rune(s)
	out := make([]cell.Cell, len(rs))
	for i, r := range rs {
		out[i] = cell.NewCell(r)
	}
	return out
}

func lineText(b *buffer.Buffer, lineNo int) string {
	cells := b.Line(lineNo).Cells()
	rs := make([]rune, len(cells))
	for i, c := range cells {
		rs[i] = c.Codepoint
	}
	return string(rs)
}

// TestPasteLinesLandsCursorOnFirstPastedLine reproduces spec.md §8
// scenario 2: on buffer A,B,C with lines B,C yanked (as `V j y` from
// line 2 would), `p` with the cursor on the last line (as after `G`)
// must leave the cursor on the *first* pasted line, not the last.
func TestPasteLinesLandsCursorOnFirstPastedLine(t *testing.T) {
	b := newTestBuffer(t, "A", "B", "C")
	ctx := editor.NewContext()
	ctx.Registry.Add(b)
	ctx.Yank.SetLines([][]cell.Cell{cellsOf("B"), cellsOf("C")})

	b.CursorLine = 3 // simulate G: cursor on C, the last of A,B,C
	pasteAfter(ctx, b)

	wantLines := []string{"A", "B", "C", "B", "C"}
	if b.LineCount() != len(wantLines) {
		t.Fatalf("line count = %d, want %d", b.LineCount(), len(wantLines))
	}
	for i, want := range wantLines {
		if got := lineText(b, i+1); got != want {
			t.Fatalf("line %d = %q, want %q", i+1, got, want)
		}
	}

	if b.CursorLine != 4 {
		t.Fatalf("cursor line = %d, want 4 (first pasted line)", b.CursorLine)
	}
}
