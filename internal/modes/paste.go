package modes

import (
	"github.com/framegrace/bim/internal/buffer"
	"github.com/framegrace/bim/internal/cell"
	"github.com/framegrace/bim/internal/editor"
)

// pasteAfter implements `p` (spec.md §4.7): whole-line yanks insert
// below the current line; range-yanks splice in after the cursor.
func pasteAfter(ctx *editor.Context, b *buffer.Buffer) {
	if ctx.Yank.Empty() {
		return
	}
	if ctx.Yank.Kind == editor.YankLines {
		pasteLines(b, b.CursorLine+1, ctx.Yank.Lines)
		return
	}
	col := b.CursorCol
	if b.Line(b.CursorLine).Len() > 0 {
		col++
	}
	pasteRange(b, b.CursorLine, col, ctx.Yank.Lines)
}

// pasteBefore implements `P`: whole-line yanks insert above; range
// yanks splice in at the cursor position.
func pasteBefore(ctx *editor.Context, b *buffer.Buffer) {
	if ctx.Yank.Empty() {
		return
	}
	if ctx.Yank.Kind == editor.YankLines {
		pasteLines(b, b.CursorLine, ctx.Yank.Lines)
		return
	}
	pasteRange(b, b.CursorLine, b.CursorCol, ctx.Yank.Lines)
}

// pasteLines inserts whole lines at 1-based position at (spec.md
// §4.7's line-yank paste).
func pasteLines(b *buffer.Buffer, at int, lines [][]cell.Cell) {
	for i, src := range lines {
		ln := at + i
		b.AddLine(ln, nil)
		b.ReplaceLine(ln, src, nil)
	}
	b.CursorLine = at
	b.CursorCol = 1
}

// pasteRange splices a range-yank's cell lines into the buffer at
// (line, col): split the current line at the cursor, inject the first
// yank line, append intermediate yanks as new lines, then merge the
// last yank line with the tail of the original (spec.md §4.7).
func pasteRange(b *buffer.Buffer, line, col int, lines [][]cell.Cell) {
	if len(lines) == 0 {
		return
	}

	b.SplitLine(line, col, nil)
	tailLine := line + 1

	if len(lines) == 1 {
		for i, c := range lines[0] {
			b.InsertCell(line, col+i, c.Codepoint, nil)
		}
		b.MergeLines(tailLine, nil)
		b.CursorLine = line
		b.CursorCol = col + len(lines[0])
		return
	}

	for i, c := range lines[0] {
		b.InsertCell(line, col+i, c.Codepoint, nil)
	}

	insertAt := line + 1
	for i := 1; i < len(lines)-1; i++ {
		b.AddLine(insertAt, nil)
		b.ReplaceLine(insertAt, lines[i], nil)
		insertAt++
	}

	last := lines[len(lines)-1]
	lastCursorCol := len(last)
	b.AddLine(insertAt, nil)
	b.ReplaceLine(insertAt, last, nil)
	b.MergeLines(insertAt+1, nil)

	b.CursorLine = insertAt
	b.CursorCol = lastCursorCol + 1
}
