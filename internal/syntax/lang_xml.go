package syntax

import "github.com/framegrace/bim/internal/cell"

// XML states (spec.md §4.3: "XML tags/strings/comments" carry
// continuation state): 0 clean, 1 inside <!-- --> comment, 2 inside an
// open tag (after '<', before the matching '>', which may span lines
// across attributes), 3 inside a double-quoted attribute string reached
// while in state 2.
const (
	xmlStateComment = 1
	xmlStateTag     = 2
	xmlStateAttr    = 3
)

func xmlCalculate(p *Position) int {
	switch p.State {
	case xmlStateComment:
		for !p.EOL() {
			if p.Cur() == '-' && p.At(p.I+1) == '-' && p.At(p.I+2) == '>' {
				p.Paint(p.I, cell.FlagComment)
				p.Paint(p.I+1, cell.FlagComment)
				p.Paint(p.I+2, cell.FlagComment)
				p.I += 3
				p.State = 0
				if p.EOL() {
					return -1
				}
				return 0
			}
			p.Paint(p.I, cell.FlagComment)
			p.I++
		}
		return xmlStateComment
	case xmlStateAttr:
		if r := PaintCString(p, cell.FlagString, cell.FlagEscape, 0); r != 0 {
			return xmlStateAttr
		}
		p.State = xmlStateTag
		if p.EOL() {
			return xmlStateTag
		}
		return 0
	case xmlStateTag:
		for !p.EOL() {
			c := p.Cur()
			if c == '>' {
				p.Paint(p.I, cell.FlagType)
				p.I++
				p.State = 0
				if p.EOL() {
					return -1
				}
				return 0
			}
			if c == '"' {
				p.State = xmlStateAttr
				return 0
			}
			p.Paint(p.I, cell.FlagType)
			p.I++
		}
		return xmlStateTag
	}

	if p.EOL() {
		return -1
	}
	c := p.Cur()
	switch {
	case c == '<' && p.At(p.I+1) == '!' && p.At(p.I+2) == '-' && p.At(p.I+3) == '-':
		p.Paint(p.I, cell.FlagComment)
		p.Paint(p.I+1, cell.FlagComment)
		p.Paint(p.I+2, cell.FlagComment)
		p.Paint(p.I+3, cell.FlagComment)
		p.I += 4
		p.State = xmlStateComment
		if p.EOL() {
			return xmlStateComment
		}
		return 0
	case c == '<':
		p.Paint(p.I, cell.FlagType)
		p.I++
		p.State = xmlStateTag
		if p.EOL() {
			return xmlStateTag
		}
		return 0
	case c == '&':
		start := p.I
		p.I++
		for !p.EOL() && p.Cur() != ';' && p.I-start < 10 {
			p.I++
		}
		if !p.EOL() && p.Cur() == ';' {
			p.I++
		}
		for i := start; i < p.I; i++ {
			p.Paint(i, cell.FlagEscape)
		}
		return 0
	default:
		p.I++
		return 0
	}
}

func xmlDefinition() *Definition {
	return &Definition{
		Name:          "xml",
		Extensions:    []string{"xml"},
		Calculate:     xmlCalculate,
		PrefersSpaces: true,
	}
}
