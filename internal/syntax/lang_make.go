package syntax

import "github.com/framegrace/bim/internal/cell"

// Make has no continuation state: comments and variable references never
// span lines in a way this lexer needs to track.
func makeCalculate(p *Position) int {
	if p.EOL() {
		return -1
	}
	if p.I == 0 && p.Cur() == '\t' {
		PaintRestOfLine(p, cell.FlagString2) // recipe line, painted as a distinct string-like class
		return -1
	}
	c := p.Cur()
	switch {
	case c == '#':
		PaintRestOfLine(p, cell.FlagComment)
		return -1
	case c == '$' && (p.At(p.I+1) == '(' || p.At(p.I+1) == '{'):
		open := p.At(p.I + 1)
		close := ')'
		if open == '{' {
			close = '}'
		}
		start := p.I
		p.I += 2
		for !p.EOL() && p.Cur() != close {
			p.I++
		}
		if !p.EOL() {
			p.I++
		}
		for i := start; i < p.I; i++ {
			p.Paint(i, cell.FlagType)
		}
		return 0
	case isTargetColon(p):
		p.Paint(p.I, cell.FlagPragma)
		p.I++
		return 0
	case DefaultQualifier(c):
		start := p.I
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

// isTargetColon reports any ':' cell, including those of ':=' and '::=',
// which makeCalculate then paints as a rule separator; a simple heuristic
// sufficient for a highlighter, not a full Makefile parser.
func isTargetColon(p *Position) bool {
	return p.Cur() == ':'
}

func makeDefinition() *Definition {
	return &Definition{
		Name:          "make",
		Extensions:    []string{"mk"},
		Calculate:     makeCalculate,
		PrefersSpaces: false,
	}
}
