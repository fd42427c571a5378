package syntax

import "github.com/framegrace/bim/internal/cell"

var jsonLiterals = []string{"true", "false", "null"}

// jsonCalculate has no continuation states: a JSON string may not
// legitimately span an unescaped newline, so every line either ends
// clean or (for a malformed/truncated string) simply stops painting at
// EOL; either way the next line always starts clean.
func jsonCalculate(p *Position) int {
	if p.EOL() {
		return -1
	}
	c := p.Cur()
	switch {
	case c == '"':
		isKey := isJSONKey(p)
		flag := cell.FlagString
		if isKey {
			flag = cell.FlagType
		}
		PaintCString(p, flag, cell.FlagEscape, 0)
		return 0
	case isDigit(c) || (c == '-' && isDigit(p.At(p.I+1))):
		if c == '-' {
			p.Paint(p.I, cell.FlagNumeral)
			p.I++
		}
		PaintCNumeral(p, cell.FlagNumeral)
		return 0
	case DefaultQualifier(c):
		start := p.I
		if MatchKeyword(p, jsonLiterals, cell.FlagKeyword, nil) {
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

// isJSONKey peeks ahead past the string literal starting at p.I to see
// whether the next non-space character is ':', which means this string
// is an object key rather than a value.
func isJSONKey(p *Position) bool {
	i := p.I + 1
	for i < p.Line.Len() {
		r := p.At(i)
		if r == '\\' {
			i += 2
			continue
		}
		if r == '"' {
			i++
			break
		}
		i++
	}
	for i < p.Line.Len() && (p.At(i) == ' ' || p.At(i) == '\t') {
		i++
	}
	return p.At(i) == ':'
}

func jsonDefinition() *Definition {
	return &Definition{
		Name:          "json",
		Extensions:    []string{"json"},
		Calculate:     jsonCalculate,
		PrefersSpaces: true,
	}
}
