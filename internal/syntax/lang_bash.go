package syntax

import "github.com/framegrace/bim/internal/cell"

// Bash encodes its quoting context as a base-10 digit stack (spec.md
// §4.3): each nested quoting context pushes a digit 1-4 onto the state
// (state = state*10 + code), and closing pops it (state = state/10).
// This lets quoting nest to arbitrary depth while fitting in a single
// int, and survives serialization into Line.IState untouched.
const (
	bashSingle = 1
	bashDouble = 2
	bashBacktick = 3
	bashParen = 4
)

var bashKeywords = []string{
	"if", "then", "else", "elif", "fi", "for", "while", "until", "do",
	"done", "case", "esac", "function", "select", "in", "return",
	"local", "export", "readonly", "declare", "shift", "break",
	"continue", "exit",
}

func bashPush(state, code int) int { return state*10 + code }
func bashPop(state int) int        { return state / 10 }
func bashTop(state int) int        { return state % 10 }

func bashCalculate(p *Position) int {
	if p.State != 0 {
		return bashQuoted(p)
	}
	if p.EOL() {
		return -1
	}
	c := p.Cur()
	switch {
	case c == '#' && (p.I == 0 || p.At(p.I-1) == ' ' || p.At(p.I-1) == '\t'):
		PaintRestOfLine(p, cell.FlagComment)
		return -1
	case c == '\'':
		p.Paint(p.I, cell.FlagString)
		p.I++
		p.State = bashPush(0, bashSingle)
		return bashQuoted(p)
	case c == '"':
		p.Paint(p.I, cell.FlagString)
		p.I++
		p.State = bashPush(0, bashDouble)
		return bashQuoted(p)
	case c == '`':
		p.Paint(p.I, cell.FlagString2)
		p.I++
		p.State = bashPush(0, bashBacktick)
		return bashQuoted(p)
	case c == '$' && p.At(p.I+1) == '(':
		p.Paint(p.I, cell.FlagString2)
		p.Paint(p.I+1, cell.FlagString2)
		p.I += 2
		p.State = bashPush(0, bashParen)
		return bashQuoted(p)
	case c == '$':
		start := p.I
		p.I++
		if p.Cur() == '{' {
			p.I++
			for !p.EOL() && p.Cur() != '}' {
				p.I++
			}
			if !p.EOL() {
				p.I++
			}
		} else {
			SkipWord(p)
			if p.I == start+1 {
				p.I++
			}
		}
		for i := start; i < p.I; i++ {
			p.Paint(i, cell.FlagType)
		}
		return 0
	case isDigit(c):
		PaintCNumeral(p, cell.FlagNumeral)
		return 0
	case DefaultQualifier(c):
		start := p.I
		if MatchKeyword(p, bashKeywords, cell.FlagKeyword, nil) {
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

// bashQuoted consumes characters under the current (nonzero) quoting
// state until it either unwinds back to the top level on this line or
// runs off the end, in which case the whole stack persists as the
// returned continuation state.
func bashQuoted(p *Position) int {
	for !p.EOL() {
		top := bashTop(p.State)
		switch top {
		case bashSingle:
			p.Paint(p.I, cell.FlagString)
			if p.Cur() == '\'' {
				p.I++
				p.State = bashPop(p.State)
				if p.State == 0 {
					if p.EOL() {
						return -1
					}
					return 0
				}
				continue
			}
			p.I++
		case bashDouble:
			switch {
			case p.Cur() == '"':
				p.Paint(p.I, cell.FlagString)
				p.I++
				p.State = bashPop(p.State)
				if p.State == 0 {
					if p.EOL() {
						return -1
					}
					return 0
				}
			case p.Cur() == '\\':
				p.Paint(p.I, cell.FlagEscape)
				p.I++
				if !p.EOL() {
					p.Paint(p.I, cell.FlagEscape)
					p.I++
				}
			case p.Cur() == '$' && p.At(p.I+1) == '(':
				p.Paint(p.I, cell.FlagString2)
				p.Paint(p.I+1, cell.FlagString2)
				p.I += 2
				p.State = bashPush(p.State, bashParen)
			default:
				p.Paint(p.I, cell.FlagString)
				p.I++
			}
		case bashBacktick:
			p.Paint(p.I, cell.FlagString2)
			if p.Cur() == '`' {
				p.I++
				p.State = bashPop(p.State)
				if p.State == 0 {
					if p.EOL() {
						return -1
					}
					return 0
				}
				continue
			}
			p.I++
		case bashParen:
			switch {
			case p.Cur() == '(':
				p.Paint(p.I, cell.FlagString2)
				p.I++
				p.State = bashPush(p.State, bashParen)
			case p.Cur() == ')':
				p.Paint(p.I, cell.FlagString2)
				p.I++
				p.State = bashPop(p.State)
				if p.State == 0 {
					if p.EOL() {
						return -1
					}
					return 0
				}
			case p.Cur() == '\'':
				p.Paint(p.I, cell.FlagString2)
				p.I++
				p.State = bashPush(p.State, bashSingle)
			case p.Cur() == '"':
				p.Paint(p.I, cell.FlagString2)
				p.I++
				p.State = bashPush(p.State, bashDouble)
			default:
				p.Paint(p.I, cell.FlagString2)
				p.I++
			}
		default:
			// Unreachable for a well-formed stack; treat as clean to
			// avoid ever getting stuck.
			p.State = 0
			return 0
		}
	}
	return p.State
}

func bashDefinition() *Definition {
	return &Definition{
		Name:          "bash",
		Extensions:    []string{"sh", "bash"},
		Calculate:     bashCalculate,
		PrefersSpaces: true,
	}
}
