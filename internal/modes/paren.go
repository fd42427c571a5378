package modes

import (
	"github.com/framegrace/bim/internal/buffer"
	"github.com/framegrace/bim/internal/cell"
)

var parenPairs = map[rune]rune{
	'(': ')', '[': ']', '{': '}', '<': '>',
}
var parenOpeners = invert(parenPairs)

func invert(m map[rune]rune) map[rune]rune {
	out := make(map[rune]rune, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// ParenHighlight tracks the single matched pair currently painted with
// the SELECT flag, so the next cursor movement can clear exactly those
// two cells (spec.md §4.5's "paren-match highlight toggles only two
// cells").
type ParenHighlight struct {
	active        bool
	line1, col1   int
	line2, col2   int
}

// Clear removes any previously painted match.
func (p *ParenHighlight) Clear(b *buffer.Buffer) {
	if !p.active {
		return
	}
	clearOne(b, p.line1, p.col1)
	clearOne(b, p.line2, p.col2)
	p.active = false
}

func clearOne(b *buffer.Buffer, line, col int) {
	if line < 1 || line > b.LineCount() {
		return
	}
	l := b.Line(line)
	if col < 1 || col > l.Len() {
		return
	}
	c := l.Cell(col - 1)
	c.Flags &^= cell.FlagSelect
	l.SetCell(col-1, c)
}

// Update recomputes the paren match at the cursor (spec.md §4.7): if
// the cursor is on or immediately after one of `()[]{}<>`, scan in the
// matching direction counting same-syntax-class brackets until the
// pair closes, and paint both cells with SELECT.
func (p *ParenHighlight) Update(b *buffer.Buffer) {
	p.Clear(b)

	line, col := b.CursorLine, b.CursorCol
	l := b.Line(line)
	if col >= 1 && col <= l.Len() {
		if tryMatch(p, b, line, col) {
			return
		}
	}
	if col > 1 && col-1 <= l.Len() {
		tryMatch(p, b, line, col-1)
	}
}

func tryMatch(p *ParenHighlight, b *buffer.Buffer, line, col int) bool {
	l := b.Line(line)
	c := l.Cell(col - 1)
	class := c.Flags.Class()

	if closer, ok := parenPairs[c.Codepoint]; ok {
		line2, col2, found := scan(b, line, col, c.Codepoint, closer, class, 1)
		if found {
			paintMatch(p, b, line, col, line2, col2)
			return true
		}
	}
	if opener, ok := parenOpeners[c.Codepoint]; ok {
		line2, col2, found := scan(b, line, col, c.Codepoint, opener, class, -1)
		if found {
			paintMatch(p, b, line, col, line2, col2)
			return true
		}
	}
	return false
}

// scan walks forward (dir=1) or backward (dir=-1) from (line,col)
// counting nested occurrences of `open`/`close` restricted to cells of
// the same syntax class, returning the matching cell's position.
func scan(b *buffer.Buffer, line, col int, open, match rune, class cell.Flag, dir int) (int, int, bool) {
	depth := 0
	ln, cl := line, col
	for {
		l := b.Line(ln)
		if cl >= 1 && cl <= l.Len() {
			c := l.Cell(cl - 1)
			if c.Flags.Class() == class {
				switch {
				case c.Codepoint == open:
					depth++
				case c.Codepoint == match:
					depth--
					if depth == 0 {
						return ln, cl, true
					}
				}
			}
		}
		cl += dir
		if cl < 1 {
			ln--
			if ln < 1 {
				return 0, 0, false
			}
			cl = b.Line(ln).Len()
			if cl == 0 {
				cl = 0
			}
			continue
		}
		if cl > b.Line(ln).Len() {
			ln++
			if ln > b.LineCount() {
				return 0, 0, false
			}
			cl = 1
			if b.Line(ln).Len() == 0 && dir > 0 {
				continue
			}
		}
	}
}

func paintMatch(p *ParenHighlight, b *buffer.Buffer, l1, c1, l2, c2 int) {
	setSelect(b, l1, c1)
	setSelect(b, l2, c2)
	p.active = true
	p.line1, p.col1 = l1, c1
	p.line2, p.col2 = l2, c2
}

func setSelect(b *buffer.Buffer, line, col int) {
	l := b.Line(line)
	if col < 1 || col > l.Len() {
		return
	}
	c := l.Cell(col - 1)
	c.Flags |= cell.FlagSelect
	l.SetCell(col-1, c)
}
