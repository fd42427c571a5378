package modes

import (
	"github.com/framegrace/bim/internal/buffer"
)

// Word motions and whole-buffer jumps (SPEC_FULL.md's supplement to
// spec.md §4.7: "plain-motion NORMAL-mode keys are implied by 'cursor
// movement' throughout §4.5/§4.7 and are made explicit operations
// here"). gotoFirstLine/gotoLastLine back `gg`/`G`; wordForward/
// wordBack/wordEnd back `w`/`b`/`e`.

func gotoFirstLine(b *buffer.Buffer) {
	b.CursorLine = 1
	b.CursorCol = 1
	b.Preferred = 1
}

func gotoLastLine(b *buffer.Buffer) {
	b.CursorLine = b.LineCount()
	b.CursorCol = 1
	b.Preferred = 1
}

func classOf(r rune) int {
	switch {
	case r == ' ' || r == '\t':
		return 0
	case isWordRune(r):
		return 1
	default:
		return 2
	}
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// wordForward moves the cursor to the start of the next word, crossing
// line boundaries at end of line (spec.md §9 supplement "w").
func wordForward(b *buffer.Buffer) {
	line, col := b.CursorLine, b.CursorCol
	cells := b.Line(line).Cells()
	if col-1 < len(cells) {
		startClass := classOf(cells[col-1].Codepoint)
		for col-1 < len(cells) && classOf(cells[col-1].Codepoint) == startClass && startClass != 0 {
			col++
		}
	}
	for {
		cells = b.Line(line).Cells()
		for col-1 < len(cells) && classOf(cells[col-1].Codepoint) == 0 {
			col++
		}
		if col-1 < len(cells) {
			break
		}
		if line >= b.LineCount() {
			col = lineMaxCol(b, line)
			if len(cells) == 0 {
				col = 1
			}
			break
		}
		line++
		col = 1
		if b.Line(line).Len() == 0 {
			break
		}
	}
	b.CursorLine, b.CursorCol = line, col
	b.Preferred = col
}

// wordBack moves the cursor to the start of the previous word (spec.md
// §9 supplement "b").
func wordBack(b *buffer.Buffer) {
	line, col := b.CursorLine, b.CursorCol
	for {
		col--
		if col < 1 {
			if line <= 1 {
				line, col = 1, 1
				break
			}
			line--
			col = b.Line(line).Len() + 1
			if b.Line(line).Len() == 0 {
				break
			}
			continue
		}
		cells := b.Line(line).Cells()
		if classOf(cells[col-1].Codepoint) == 0 {
			continue
		}
		// walk to the start of this run
		cls := classOf(cells[col-1].Codepoint)
		for col-2 >= 0 && classOf(cells[col-2].Codepoint) == cls {
			col--
		}
		break
	}
	b.CursorLine, b.CursorCol = line, col
	b.Preferred = col
}

// wordEnd moves the cursor to the end of the current or next word
// (spec.md §9 supplement "e").
func wordEnd(b *buffer.Buffer) {
	line, col := b.CursorLine, b.CursorCol
	for {
		cells := b.Line(line).Cells()
		col++
		if col-1 >= len(cells) {
			if line >= b.LineCount() {
				col--
				break
			}
			line++
			col = 1
			continue
		}
		if classOf(cells[col-1].Codepoint) == 0 {
			continue
		}
		cls := classOf(cells[col-1].Codepoint)
		for col < len(cells) && classOf(cells[col].Codepoint) == cls {
			col++
		}
		break
	}
	b.CursorLine, b.CursorCol = line, col
	b.Preferred = col
}
