package modes

import (
	"github.com/framegrace/bim/internal/buffer"
	"github.com/framegrace/bim/internal/editor"
)

// normalKey dispatches one rune in NORMAL mode (spec.md §4.7's table).
func (h *Handler) normalKey(ctx *editor.Context, b *buffer.Buffer, r rune) bool {
	switch r {
	case 'h':
		moveCursor(b, 0, -1)
	case 'l':
		moveCursor(b, 0, 1)
	case 'j':
		moveCursor(b, 1, 0)
	case 'k':
		moveCursor(b, -1, 0)
	case '0':
		b.CursorCol = 1
		b.Preferred = 1
	case '$':
		b.CursorCol = lineMaxCol(b, b.CursorLine)
		b.Preferred = b.CursorCol
	case 'g':
		h.pending = PendingG
	case 'G':
		gotoLastLine(b)
	case 'w':
		wordForward(b)
	case 'b':
		wordBack(b)
	case 'e':
		wordEnd(b)

	case 'i':
		b.Mode = buffer.Insert
	case 'a':
		if b.Line(b.CursorLine).Len() > 0 {
			b.CursorCol++
		}
		b.Mode = buffer.Insert
	case 'I':
		b.CursorCol = 1
		b.Mode = buffer.Insert
	case 'A':
		b.CursorCol = lineMaxCol(b, b.CursorLine) + 1
		b.Mode = buffer.Insert
	case 'o':
		b.AddLine(b.CursorLine+1, nil)
		b.CursorLine++
		b.CursorCol = 1
		b.Mode = buffer.Insert
		autoIndentNewLine(b)
	case 'O':
		b.AddLine(b.CursorLine, nil)
		b.CursorCol = 1
		b.Mode = buffer.Insert
		autoIndentNewLine(b)
	case 'R':
		b.Mode = buffer.Replace

	case 'V':
		b.Mode = buffer.LineSelection
		b.SelStartLine = b.CursorLine
	case 'v':
		b.Mode = buffer.CharSelection
		b.SelStartLine = b.CursorLine
		b.SelCol = b.CursorCol
	case 0x16: // Ctrl-V
		b.Mode = buffer.ColSelection
		b.SelStartLine = b.CursorLine
		b.SelCol = b.CursorCol

	case 'u':
		b.Undo()
	case 0x12: // Ctrl-R
		b.Redo()

	case 'p':
		pasteAfter(ctx, b)
	case 'P':
		pasteBefore(ctx, b)

	case 'r':
		h.pending = PendingReplaceChar

	case 'x':
		deleteCellAtCursor(b)

	default:
		return false
	}
	return true
}

func (h *Handler) replaceChar(b *buffer.Buffer, r rune) bool {
	if b.CursorCol > b.Line(b.CursorLine).Len() {
		return true
	}
	b.ReplaceCell(b.CursorLine, b.CursorCol, r, nil)
	return true
}

func deleteCellAtCursor(b *buffer.Buffer) {
	l := b.Line(b.CursorLine)
	if b.CursorCol > l.Len() {
		return
	}
	b.DeleteCell(b.CursorLine, b.CursorCol+1, nil)
	if b.CursorCol > l.Len() && b.CursorCol > 1 {
		b.CursorCol--
	}
}

func moveCursor(b *buffer.Buffer, dLine, dCol int) {
	if dLine != 0 {
		b.CursorLine += dLine
		if b.CursorLine < 1 {
			b.CursorLine = 1
		}
		if b.CursorLine > b.LineCount() {
			b.CursorLine = b.LineCount()
		}
		maxCol := lineMaxCol(b, b.CursorLine)
		b.CursorCol = b.Preferred
		if b.CursorCol > maxCol {
			b.CursorCol = maxCol
		}
		return
	}
	b.CursorCol += dCol
	maxCol := lineMaxCol(b, b.CursorLine)
	if b.CursorCol < 1 {
		b.CursorCol = 1
	}
	if b.CursorCol > maxCol {
		b.CursorCol = maxCol
	}
	b.Preferred = b.CursorCol
}

func lineMaxCol(b *buffer.Buffer, lineNo int) int {
	l := b.Line(lineNo).Len()
	if l < 1 {
		return 1
	}
	return l
}
