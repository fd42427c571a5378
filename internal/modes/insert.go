package modes

import (
	"github.com/framegrace/bim/internal/buffer"
	"github.com/framegrace/bim/internal/cell"
	"github.com/framegrace/bim/internal/editor"
)

// insertKey dispatches one rune in INSERT/REPLACE/COL_INSERT mode.
func (h *Handler) insertKey(ctx *editor.Context, b *buffer.Buffer, r rune) bool {
	switch r {
	case '\r', '\n':
		insertNewline(b)
	case 0x7F, 0x08: // backspace/DEL
		backspace(b)
	case '\t':
		insertTab(b)
	default:
		if r < 0x20 {
			return false
		}
		insertRune(b, r)
	}
	return true
}

func insertRune(b *buffer.Buffer, r rune) {
	if b.Mode == buffer.Replace && b.CursorCol <= b.Line(b.CursorLine).Len() {
		b.ReplaceCell(b.CursorLine, b.CursorCol, r, nil)
		b.CursorCol++
		return
	}
	if b.Mode == buffer.ColInsert {
		insertColumn(b, r)
		return
	}
	b.InsertCell(b.CursorLine, b.CursorCol, r, nil)
	b.CursorCol++
	maybeCollapseCommentClose(b)
}

// insertColumn inserts r at SelCol on every line between SelStartLine
// and CursorLine (spec.md §4.7's COL_INSERT mode), padding short lines
// with spaces first so the column exists.
func insertColumn(b *buffer.Buffer, r rune) {
	from, to := b.SelStartLine, b.CursorLine
	if from > to {
		from, to = to, from
	}
	col := b.SelCol
	for ln := from; ln <= to; ln++ {
		l := b.Line(ln)
		for l.Len() < col-1 {
			b.InsertCell(ln, l.Len()+1, ' ', nil)
		}
		b.InsertCell(ln, col, r, nil)
	}
	b.CursorCol = col + 1
}

func insertTab(b *buffer.Buffer) {
	if b.Options.ExpandTab {
		n := b.Options.Tabstop
		if n <= 0 {
			n = 8
		}
		col := b.CursorCol - 1
		spaces := n - (col % n)
		for i := 0; i < spaces; i++ {
			b.InsertCell(b.CursorLine, b.CursorCol, ' ', nil)
			b.CursorCol++
		}
		return
	}
	b.InsertCell(b.CursorLine, b.CursorCol, '\t', nil)
	b.CursorCol++
}

func backspace(b *buffer.Buffer) {
	if b.CursorCol > 1 {
		b.DeleteCell(b.CursorLine, b.CursorCol, nil)
		b.CursorCol--
		return
	}
	if b.CursorLine <= 1 {
		return
	}
	prevLen := b.Line(b.CursorLine - 1).Len()
	b.MergeLines(b.CursorLine, nil)
	b.CursorLine--
	b.CursorCol = prevLen + 1
}

// insertNewline splits the current line at the cursor, following
// spec.md §4.7's auto-indent rule when enabled.
func insertNewline(b *buffer.Buffer) {
	at, col := b.CursorLine, b.CursorCol
	b.SplitLine(at, col, nil)
	b.CursorLine++
	b.CursorCol = 1
	autoIndentNewLine(b)
}

// autoIndentNewLine copies leading whitespace from the predecessor
// line onto the (assumed freshly split/added, empty) current line,
// adding one further indent level if the predecessor's last
// non-whitespace/comment character is `{` or `:` (spec.md §4.7).
func autoIndentNewLine(b *buffer.Buffer) {
	if !b.Options.AutoIndent || b.CursorLine <= 1 {
		return
	}
	prev := b.Line(b.CursorLine - 1)
	indent := leadingWhitespace(prev)

	if endsBlockOpener(prev) {
		if b.Options.ExpandTab {
			n := b.Options.Tabstop
			if n <= 0 {
				n = 8
			}
			for i := 0; i < n; i++ {
				indent = append(indent, ' ')
			}
		} else {
			indent = append(indent, '\t')
		}
	} else if inBlockComment(prev) {
		indent = append(indent, '*', ' ')
	}

	for _, r := range indent {
		b.InsertCell(b.CursorLine, b.CursorCol, r, nil)
		b.CursorCol++
	}
}

func leadingWhitespace(l *cell.Line) []rune {
	var out []rune
	for _, c := range l.Cells() {
		if c.Codepoint == ' ' || c.Codepoint == '\t' {
			out = append(out, c.Codepoint)
			continue
		}
		break
	}
	return out
}

// endsBlockOpener reports whether l's last non-whitespace,
// non-comment-class cell is `{` or `:`.
func endsBlockOpener(l *cell.Line) bool {
	cells := l.Cells()
	for i := len(cells) - 1; i >= 0; i-- {
		c := cells[i]
		if c.Codepoint == ' ' || c.Codepoint == '\t' {
			continue
		}
		if c.Flags.Class() == cell.FlagComment {
			continue
		}
		return c.Codepoint == '{' || c.Codepoint == ':'
	}
	return false
}

func inBlockComment(l *cell.Line) bool {
	cells := l.Cells()
	if len(cells) == 0 {
		return false
	}
	return cells[len(cells)-1].Flags.Class() == cell.FlagComment && l.IState != 0
}

// maybeCollapseCommentClose implements "typing `/` right after ` *`
// collapses to `*/`" (spec.md §4.7): when the cell just typed is `/`
// and it directly follows "<whitespace>* ", the space between `*` and
// `/` is removed so the line ends in `*/` rather than `* /`.
func maybeCollapseCommentClose(b *buffer.Buffer) {
	l := b.Line(b.CursorLine)
	i := b.CursorCol - 2 // 0-based index of the just-inserted '/'
	if i < 2 || l.Cell(i).Codepoint != '/' {
		return
	}
	if l.Cell(i-1).Codepoint != ' ' || l.Cell(i-2).Codepoint != '*' {
		return
	}
	for j := 0; j < i-2; j++ {
		c := l.Cell(j).Codepoint
		if c != ' ' && c != '\t' {
			return
		}
	}
	b.DeleteCell(b.CursorLine, i+1, nil) // removes the space at index i-1
	b.CursorCol--
}
