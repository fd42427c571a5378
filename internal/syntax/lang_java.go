package syntax

import "github.com/framegrace/bim/internal/cell"

// Java reuses C's block-comment continuation-state convention (state 1).
const javaStateComment = 1

var javaKeywords = []string{
	"class", "interface", "enum", "extends", "implements", "package",
	"import", "public", "private", "protected", "static", "final",
	"abstract", "synchronized", "volatile", "transient", "native",
	"if", "else", "for", "while", "do", "switch", "case", "default",
	"break", "continue", "return", "throw", "throws", "try", "catch",
	"finally", "new", "instanceof", "this", "super", "void", "record",
}

var javaTypes = []string{
	"int", "long", "short", "byte", "char", "float", "double", "boolean",
	"String", "Integer", "Long", "Double", "Boolean", "Object", "List",
	"Map", "Set",
}

func javaCalculate(p *Position) int {
	if p.State == javaStateComment {
		if r := PaintCComment(p, cell.FlagComment); r == 1 {
			return javaStateComment
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
			return javaStateComment
		}
		return 0
	case c == '@' && DefaultQualifier(p.At(p.I+1)):
		start := p.I
		p.I++
		SkipWord(p)
		for i := start; i < p.I; i++ {
			p.Paint(i, cell.FlagPragma)
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
		if MatchKeyword(p, javaKeywords, cell.FlagKeyword, nil) {
			return 0
		}
		if MatchKeyword(p, javaTypes, cell.FlagType, nil) {
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

func javaDefinition() *Definition {
	return &Definition{
		Name:          "java",
		Extensions:    []string{"java"},
		Calculate:     javaCalculate,
		PrefersSpaces: false,
	}
}
