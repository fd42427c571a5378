package modes

import (
	"github.com/framegrace/bim/internal/buffer"
	"github.com/framegrace/bim/internal/cell"
	"github.com/framegrace/bim/internal/editor"
)

// selectionKey dispatches one rune in LINE/CHAR/COL_SELECTION mode.
func (h *Handler) selectionKey(ctx *editor.Context, b *buffer.Buffer, r rune) bool {
	switch b.Mode {
	case buffer.LineSelection:
		return h.lineSelectionKey(ctx, b, r)
	case buffer.ColSelection:
		return colSelectionKey(b, r)
	case buffer.CharSelection:
		return charSelectionKey(ctx, b, r)
	}
	return false
}

func selRange(b *buffer.Buffer) (from, to int) {
	from, to = b.SelStartLine, b.CursorLine
	if from > to {
		from, to = to, from
	}
	return
}

func (h *Handler) lineSelectionKey(ctx *editor.Context, b *buffer.Buffer, r rune) bool {
	switch r {
	case 'j':
		moveCursor(b, 1, 0)
	case 'k':
		moveCursor(b, -1, 0)
	case 'd', 'y':
		from, to := selRange(b)
		lines := make([][]cell.Cell, 0, to-from+1)
		for ln := from; ln <= to; ln++ {
			lines = append(lines, b.Line(ln).Snapshot())
		}
		ctx.Yank.SetLines(lines)
		if r == 'd' {
			for i := to; i >= from; i-- {
				b.RemoveLine(i, nil)
			}
			b.CursorLine = from
			if b.CursorLine > b.LineCount() {
				b.CursorLine = b.LineCount()
			}
		}
		b.Mode = buffer.Normal
		clearSelectionFlags(b)
		b.SetHistoryBreak()
	case 'V':
		b.Mode = buffer.Normal
		clearSelectionFlags(b)
	case '\t':
		indentRange(b, true)
	default:
		return false
	}
	return true
}

func charSelectionKey(ctx *editor.Context, b *buffer.Buffer, r rune) bool {
	switch r {
	case 'h':
		moveCursor(b, 0, -1)
	case 'l':
		moveCursor(b, 0, 1)
	case 'j':
		moveCursor(b, 1, 0)
	case 'k':
		moveCursor(b, -1, 0)
	case 'd', 'y', 'v':
		deleteOrYankCharRange(ctx, b, r == 'd')
		b.Mode = buffer.Normal
		clearSelectionFlags(b)
		b.SetHistoryBreak()
	default:
		return false
	}
	return true
}

func deleteOrYankCharRange(ctx *editor.Context, b *buffer.Buffer, del bool) {
	fromLine, fromCol := b.SelStartLine, b.SelCol
	toLine, toCol := b.CursorLine, b.CursorCol
	if fromLine > toLine || (fromLine == toLine && fromCol > toCol) {
		fromLine, toLine = toLine, fromLine
		fromCol, toCol = toCol, fromCol
	}

	var lines [][]cell.Cell
	if fromLine == toLine {
		cells := b.Line(fromLine).Cells()
		lo, hi := fromCol-1, toCol
		if hi > len(cells) {
			hi = len(cells)
		}
		if lo < 0 {
			lo = 0
		}
		if lo > hi {
			lo = hi
		}
		lines = [][]cell.Cell{append([]cell.Cell(nil), cells[lo:hi]...)}
	} else {
		first := b.Line(fromLine).Cells()
		lo := fromCol - 1
		if lo < 0 {
			lo = 0
		}
		if lo > len(first) {
			lo = len(first)
		}
		lines = append(lines, append([]cell.Cell(nil), first[lo:]...))
		for ln := fromLine + 1; ln < toLine; ln++ {
			lines = append(lines, b.Line(ln).Snapshot())
		}
		last := b.Line(toLine).Cells()
		hi := toCol
		if hi > len(last) {
			hi = len(last)
		}
		lines = append(lines, append([]cell.Cell(nil), last[:hi]...))
	}
	ctx.Yank.SetRange(lines)

	if !del {
		return
	}

	if fromLine == toLine {
		for col := toCol; col >= fromCol; col-- {
			b.DeleteCell(fromLine, col+1, nil)
		}
		b.CursorLine, b.CursorCol = fromLine, fromCol
		return
	}

	yankedLen := len(lines[0])
	for _, mid := range lines[1 : len(lines)-1] {
		yankedLen += len(mid)
	}

	// Delete the selected head of the last line, then merge every line
	// in the range back up into fromLine (MergeLines always folds the
	// line immediately after fromLine, since the buffer shrinks by one
	// each call).
	for col := toCol; col >= 1; col-- {
		b.DeleteCell(toLine, col+1, nil)
	}
	for ln := fromLine + 1; ln <= toLine; ln++ {
		b.MergeLines(fromLine+1, nil)
	}

	// fromLine now holds: [0,fromCol-1) unchanged + yankedLen cells
	// that were yanked from the first and middle lines + whatever
	// remained of the last line. Remove the yanked span.
	for i := 0; i < yankedLen; i++ {
		b.DeleteCell(fromLine, fromCol+1, nil)
	}
	b.CursorLine, b.CursorCol = fromLine, fromCol
}

func colSelectionKey(b *buffer.Buffer, r rune) bool {
	switch r {
	case 'j':
		moveCursor(b, 1, 0)
	case 'k':
		moveCursor(b, -1, 0)
	case 'I', 'a':
		b.Mode = buffer.ColInsert
		if r == 'a' {
			b.SelCol++
			b.CursorCol = b.SelCol
		}
	default:
		return false
	}
	return true
}

// indentRange shifts every line in the current selection one tabstop
// in (tab) or out (shift-tab), spec.md §4.7's LINE_SELECTION indent.
func indentRange(b *buffer.Buffer, in bool) {
	from, to := selRange(b)
	for ln := from; ln <= to; ln++ {
		if in {
			if b.Options.ExpandTab {
				n := b.Options.Tabstop
				if n <= 0 {
					n = 8
				}
				for i := 0; i < n; i++ {
					b.InsertCell(ln, 1, ' ', nil)
				}
			} else {
				b.InsertCell(ln, 1, '\t', nil)
			}
			continue
		}
		l := b.Line(ln)
		if l.Len() == 0 {
			continue
		}
		if l.Cell(0).Codepoint == '\t' {
			b.DeleteCell(ln, 2, nil)
			continue
		}
		n := b.Options.Tabstop
		if n <= 0 {
			n = 8
		}
		removed := 0
		for removed < n && l.Len() > 0 && l.Cell(0).Codepoint == ' ' {
			b.DeleteCell(ln, 2, nil)
			removed++
		}
	}
}
