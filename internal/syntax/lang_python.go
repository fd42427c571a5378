package syntax

import "github.com/framegrace/bim/internal/cell"

// Python states: 0 clean, 1 inside a triple-double-quoted string, 2
// inside a triple-single-quoted string (spec.md §4.3: "Python
// triple-quoted strings" carry continuation state).
const (
	pyStateTripleDouble = 1
	pyStateTripleSingle = 2
)

var pyKeywords = []string{
	"def", "class", "if", "elif", "else", "for", "while", "try", "except",
	"finally", "with", "as", "import", "from", "return", "yield", "pass",
	"break", "continue", "raise", "lambda", "global", "nonlocal", "assert",
	"del", "in", "is", "not", "and", "or", "async", "await", "match", "case",
}

var pyConstants = []string{"None", "True", "False", "self"}

// paintPyTriple paints a triple-quoted string body starting at p.I
// (already positioned past the opening delimiter when resuming from a
// continuation), returning 0 when the closing delimiter is found on this
// line, or the same continuation state to persist if not.
func paintPyTriple(p *Position, quote rune, contState int) int {
	for !p.EOL() {
		if p.Cur() == quote && p.At(p.I+1) == quote && p.At(p.I+2) == quote {
			p.Paint(p.I, cell.FlagString)
			p.Paint(p.I+1, cell.FlagString)
			p.Paint(p.I+2, cell.FlagString)
			p.I += 3
			return 0
		}
		p.Paint(p.I, cell.FlagString)
		p.I++
	}
	return contState
}

func pyCalculate(p *Position) int {
	switch p.State {
	case pyStateTripleDouble:
		if r := paintPyTriple(p, '"', pyStateTripleDouble); r != 0 {
			return r
		}
		p.State = 0
		if p.EOL() {
			return -1
		}
		return 0
	case pyStateTripleSingle:
		if r := paintPyTriple(p, '\'', pyStateTripleSingle); r != 0 {
			return r
		}
		p.State = 0
		if p.EOL() {
			return -1
		}
		return 0
	}
	if p.EOL() {
		return -1
	}
	c := p.Cur()
	switch {
	case c == '#':
		PaintRestOfLine(p, cell.FlagComment)
		return -1
	case c == '"' && p.At(p.I+1) == '"' && p.At(p.I+2) == '"':
		p.Paint(p.I, cell.FlagString)
		p.Paint(p.I+1, cell.FlagString)
		p.Paint(p.I+2, cell.FlagString)
		p.I += 3
		if r := paintPyTriple(p, '"', pyStateTripleDouble); r != 0 {
			return r
		}
		return 0
	case c == '\'' && p.At(p.I+1) == '\'' && p.At(p.I+2) == '\'':
		p.Paint(p.I, cell.FlagString)
		p.Paint(p.I+1, cell.FlagString)
		p.Paint(p.I+2, cell.FlagString)
		p.I += 3
		if r := paintPyTriple(p, '\'', pyStateTripleSingle); r != 0 {
			return r
		}
		return 0
	case c == '"':
		PaintCString(p, cell.FlagString, cell.FlagEscape, 0)
		return 0
	case c == '\'':
		PaintCChar(p, cell.FlagString, cell.FlagEscape)
		return 0
	case isDigit(c):
		PaintCNumeral(p, cell.FlagNumeral)
		return 0
	case DefaultQualifier(c):
		start := p.I
		if MatchKeyword(p, pyKeywords, cell.FlagKeyword, nil) {
			return 0
		}
		if MatchKeyword(p, pyConstants, cell.FlagType, nil) {
			return 0
		}
		SkipWord(p)
		if p.I == start {
			p.I++
		}
		return 0
	default:
		p.I++
		return 0
	}
}

func pythonDefinition() *Definition {
	return &Definition{
		Name:          "python",
		Extensions:    []string{"py"},
		Calculate:     pyCalculate,
		PrefersSpaces: true,
	}
}
