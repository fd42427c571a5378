package modes

import (
	"testing"

	"github.com/framegrace/bim/internal/buffer"
	"github.com/framegrace/bim/internal/syntax"
)

// newTestBuffer builds a buffer from newline-separated lines, cursor
// parked at (1,1).
func newTestBuffer(t *testing.T, lines ...string) *buffer.Buffer {
	t.Helper()
	b := buffer.New(syntax.NewRegistry())
	for ln, text := range lines {
		lineNo := ln + 1
		if lineNo > 1 {
			b.AddLine(lineNo, nil)
		}
		for i, r := range []rune(text) {
			b.InsertCell(lineNo, i+1, r, nil)
		}
	}
	b.CursorLine, b.CursorCol = 1, 1
	return b
}

func TestWordForwardCrossesPunctuationAndWhitespace(t *testing.T) {
	b := newTestBuffer(t, "foo.bar  baz")
	wordForward(b)
	if b.CursorCol != 4 {
		t.Fatalf("after first w, col = %d, want 4 (at '.')", b.CursorCol)
	}
	wordForward(b)
	if b.CursorCol != 5 {
		t.Fatalf("after second w, col = %d, want 5 (at 'bar')", b.CursorCol)
	}
	wordForward(b)
	if b.CursorCol != 10 {
		t.Fatalf("after third w, col = %d, want 10 (at 'baz')", b.CursorCol)
	}
}

func TestWordForwardCrossesLineBoundary(t *testing.T) {
	b := newTestBuffer(t, "one", "two")
	b.CursorLine, b.CursorCol = 1, 1
	wordForward(b)
	if b.CursorLine != 2 || b.CursorCol != 1 {
		t.Fatalf("expected (2,1), got (%d,%d)", b.CursorLine, b.CursorCol)
	}
}

func TestWordForwardStopsOnEmptyLine(t *testing.T) {
	b := newTestBuffer(t, "one", "", "two")
	b.CursorLine, b.CursorCol = 1, 1
	wordForward(b)
	if b.CursorLine != 2 || b.CursorCol != 1 {
		t.Fatalf("expected to land on the blank line (2,1), got (%d,%d)", b.CursorLine, b.CursorCol)
	}
}

func TestWordForwardAtLastWordStaysAtLineEnd(t *testing.T) {
	b := newTestBuffer(t, "only")
	b.CursorLine, b.CursorCol = 1, 1
	wordForward(b)
	if b.CursorLine != 1 || b.CursorCol != 4 {
		t.Fatalf("expected (1,4), got (%d,%d)", b.CursorLine, b.CursorCol)
	}
}

func TestWordBackWithinLine(t *testing.T) {
	b := newTestBuffer(t, "foo bar baz")
	b.CursorLine, b.CursorCol = 1, 9 // on 'b' of "baz"
	wordBack(b)
	if b.CursorCol != 5 {
		t.Fatalf("col = %d, want 5 (at 'bar')", b.CursorCol)
	}
	wordBack(b)
	if b.CursorCol != 1 {
		t.Fatalf("col = %d, want 1 (at 'foo')", b.CursorCol)
	}
}

func TestWordBackCrossesLineBoundary(t *testing.T) {
	b := newTestBuffer(t, "one", "two")
	b.CursorLine, b.CursorCol = 2, 1
	wordBack(b)
	if b.CursorLine != 1 || b.CursorCol != 1 {
		t.Fatalf("expected (1,1), got (%d,%d)", b.CursorLine, b.CursorCol)
	}
}

func TestWordBackAtBufferStartStays(t *testing.T) {
	b := newTestBuffer(t, "abc")
	b.CursorLine, b.CursorCol = 1, 1
	wordBack(b)
	if b.CursorLine != 1 || b.CursorCol != 1 {
		t.Fatalf("expected to stay at (1,1), got (%d,%d)", b.CursorLine, b.CursorCol)
	}
}

func TestWordEndWithinLine(t *testing.T) {
	b := newTestBuffer(t, "foo bar")
	b.CursorLine, b.CursorCol = 1, 1
	wordEnd(b)
	if b.CursorCol != 3 {
		t.Fatalf("col = %d, want 3 (end of 'foo')", b.CursorCol)
	}
	wordEnd(b)
	if b.CursorCol != 7 {
		t.Fatalf("col = %d, want 7 (end of 'bar')", b.CursorCol)
	}
}

func TestGotoFirstAndLastLine(t *testing.T) {
	b := newTestBuffer(t, "a", "b", "c")
	b.CursorLine, b.CursorCol = 2, 1
	gotoLastLine(b)
	if b.CursorLine != 3 || b.CursorCol != 1 {
		t.Fatalf("expected (3,1), got (%d,%d)", b.CursorLine, b.CursorCol)
	}
	gotoFirstLine(b)
	if b.CursorLine != 1 || b.CursorCol != 1 {
		t.Fatalf("expected (1,1), got (%d,%d)", b.CursorLine, b.CursorCol)
	}
}

func TestGotoFirstLastLineSingleLineBuffer(t *testing.T) {
	b := newTestBuffer(t, "only")
	gotoLastLine(b)
	if b.CursorLine != 1 {
		t.Fatalf("expected line 1, got %d", b.CursorLine)
	}
	gotoFirstLine(b)
	if b.CursorLine != 1 {
		t.Fatalf("expected line 1, got %d", b.CursorLine)
	}
}
