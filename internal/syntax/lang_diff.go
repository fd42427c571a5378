package syntax

import "github.com/framegrace/bim/internal/cell"

// Diff has no continuation state: every line's class is determined
// entirely by its own first character.
func diffCalculate(p *Position) int {
	if p.EOL() {
		return -1
	}
	if p.I == 0 {
		switch {
		case p.Cur() == '+':
			PaintRestOfLine(p, cell.FlagDiffPlus)
			return -1
		case p.Cur() == '-':
			PaintRestOfLine(p, cell.FlagDiffMinus)
			return -1
		case p.Cur() == '@' && p.At(1) == '@':
			PaintRestOfLine(p, cell.FlagNotice)
			return -1
		case runesEqualASCII(p, 0, "diff ") || runesEqualASCII(p, 0, "index "):
			PaintRestOfLine(p, cell.FlagComment)
			return -1
		case runesEqualASCII(p, 0, "+++") || runesEqualASCII(p, 0, "---"):
			PaintRestOfLine(p, cell.FlagBold)
			return -1
		}
	}
	p.I++
	return 0
}

func diffDefinition() *Definition {
	return &Definition{
		Name:          "diff",
		Extensions:    []string{"diff", "patch"},
		Calculate:     diffCalculate,
		PrefersSpaces: false,
	}
}
