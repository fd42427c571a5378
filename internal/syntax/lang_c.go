package syntax

import "github.com/framegrace/bim/internal/cell"

// C state: 0 = normal, 1 = inside a /* */ block comment (spec.md §4.3).
const cStateComment = 1

var cKeywords = []string{
	"if", "else", "for", "while", "do", "switch", "case", "default",
	"break", "continue", "return", "goto", "sizeof", "typedef", "struct",
	"union", "enum", "static", "extern", "const", "volatile", "inline",
	"register", "auto", "restrict", "_Bool", "_Static_assert",
}

var cTypes = []string{
	"void", "char", "short", "int", "long", "float", "double", "signed",
	"unsigned", "size_t", "ssize_t", "int8_t", "int16_t", "int32_t",
	"int64_t", "uint8_t", "uint16_t", "uint32_t", "uint64_t", "bool",
	"FILE",
}

var cPragmas = []string{"#include", "#define", "#ifdef", "#ifndef", "#endif", "#else", "#pragma", "#undef", "#if"}

func cCalculate(p *Position) int {
	if p.State == cStateComment {
		if r := PaintCComment(p, cell.FlagComment); r == 1 {
			return cStateComment
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
	case c == '/' && p.At(p.I+1) == '/':
		PaintRestOfLine(p, cell.FlagComment)
		return -1
	case c == '/' && p.At(p.I+1) == '*':
		p.I += 2
		if r := PaintCComment(p, cell.FlagComment); r == 1 {
			return cStateComment
		}
		return 0
	case c == '"':
		PaintCString(p, cell.FlagString, cell.FlagEscape, 0)
		return 0
	case c == '\'':
		PaintCChar(p, cell.FlagString, cell.FlagEscape)
		return 0
	case c == '#' && p.I == 0:
		for _, kw := range cPragmas {
			if runesEqualASCII(p, p.I, kw) {
				for i := 0; i < len(kw); i++ {
					p.Paint(p.I+i, cell.FlagPragma)
				}
				p.I += len(kw)
				return 0
			}
		}
		p.I++
		return 0
	case isDigit(c):
		PaintCNumeral(p, cell.FlagNumeral)
		return 0
	case DefaultQualifier(c):
		start := p.I
		if MatchKeyword(p, cKeywords, cell.FlagKeyword, nil) {
			return 0
		}
		if MatchKeyword(p, cTypes, cell.FlagType, nil) {
			return 0
		}
		SkipWord(p)
		if p.I == start {
			p.I++ // defensive: guarantee forward progress
		}
		return 0
	default:
		p.I++
		return 0
	}
}

func cDefinition() *Definition {
	return &Definition{
		Name:          "c",
		Extensions:    []string{"c", "h", "cpp", "hpp", "cc", "cxx"},
		Calculate:     cCalculate,
		PrefersSpaces: false,
	}
}
