package syntax

import "github.com/framegrace/bim/internal/cell"

// Qualifier reports whether r is a "word" character for the purposes of
// match_keyword's boundary check (identifier continuation chars).
type Qualifier func(r rune) bool

// DefaultQualifier treats letters, digits, and underscore as word chars.
func DefaultQualifier(r rune) bool {
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// MatchKeyword implements spec.md's match_keyword primitive: if the
// character before p.I fails qualifier (i.e. we're at a word boundary)
// and the word starting at p.I exactly matches one of keywords with no
// qualifying character following, it paints the whole word with flag,
// advances p.I past it, and returns true. Otherwise p is left untouched
// and it returns false.
func MatchKeyword(p *Position, keywords []string, flag cell.Flag, qualifier Qualifier) bool {
	if qualifier == nil {
		qualifier = DefaultQualifier
	}
	if p.I > 0 && qualifier(p.At(p.I-1)) {
		return false
	}
	for _, kw := range keywords {
		n := len(kw)
		if !runesEqualASCII(p, p.I, kw) {
			continue
		}
		if qualifier(p.At(p.I + n)) {
			continue
		}
		for i := 0; i < n; i++ {
			p.Paint(p.I+i, flag)
		}
		p.I += n
		return true
	}
	return false
}

func runesEqualASCII(p *Position, at int, s string) bool {
	for i := 0; i < len(s); i++ {
		if p.At(at+i) != rune(s[i]) {
			return false
		}
	}
	return true
}

// PaintSimpleString paints a single-quote-delimited string (no escape
// processing beyond a literal backslash-anything skip) starting at the
// opening quote (p.I must be positioned on it). Advances past the
// closing quote or EOL. Returns the continuation state: 0 if closed on
// this line, contState if it ran off the end unclosed.
func PaintSimpleString(p *Position, quote rune, flag cell.Flag, contState int) int {
	p.Paint(p.I, flag)
	p.I++
	for !p.EOL() {
		c := p.Cur()
		if c == '\\' {
			p.Paint(p.I, flag)
			p.I++
			if !p.EOL() {
				p.Paint(p.I, flag)
				p.I++
			}
			continue
		}
		p.Paint(p.I, flag)
		if c == quote {
			p.I++
			return 0
		}
		p.I++
	}
	return contState
}

// escapeLen returns the length of a C-style escape sequence starting at
// p.I (which must be '\\'), e.g. \xHH, \NNN (octal), \n \r \t \\ \" \' .
func escapeLen(p *Position) int {
	if p.Cur() != '\\' {
		return 0
	}
	n := p.At(p.I + 1)
	switch {
	case n == 'x' || n == 'X':
		l := 2
		for i := 2; i < 4; i++ {
			if isHexDigit(p.At(p.I + i)) {
				l++
			} else {
				break
			}
		}
		return l
	case n >= '0' && n <= '7':
		l := 1
		for i := 1; i < 4; i++ {
			if p.At(p.I+i) >= '0' && p.At(p.I+i) <= '7' {
				l++
			} else {
				break
			}
		}
		return l
	case n == 0:
		return 1
	default:
		return 2
	}
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// PaintCString paints a double-quote-delimited C-style string with
// \xHH, \NNN, \n, \r, \\ style escapes painted in the escape class.
// p.I must start on the opening quote. Returns 0 if closed, contState
// if it ran unclosed off the end of the line.
func PaintCString(p *Position, flag, escapeFlag cell.Flag, contState int) int {
	p.Paint(p.I, flag)
	p.I++
	for !p.EOL() {
		if p.Cur() == '\\' {
			n := escapeLen(p)
			if n == 0 {
				n = 1
			}
			for i := 0; i < n && !p.EOL(); i++ {
				p.Paint(p.I, escapeFlag)
				p.I++
			}
			continue
		}
		if p.Cur() == '"' {
			p.Paint(p.I, flag)
			p.I++
			return 0
		}
		p.Paint(p.I, flag)
		p.I++
	}
	return contState
}

// PaintCChar paints a single-quoted (possibly multibyte/escaped)
// character literal. p.I must start on the opening quote.
func PaintCChar(p *Position, flag, escapeFlag cell.Flag) {
	p.Paint(p.I, flag)
	p.I++
	for !p.EOL() && p.Cur() != '\'' {
		if p.Cur() == '\\' {
			n := escapeLen(p)
			if n == 0 {
				n = 1
			}
			for i := 0; i < n && !p.EOL(); i++ {
				p.Paint(p.I, escapeFlag)
				p.I++
			}
			continue
		}
		p.Paint(p.I, flag)
		p.I++
	}
	if !p.EOL() {
		p.Paint(p.I, flag)
		p.I++
	}
}

// PaintCComment paints a /* ... */ comment body (p.I starts just after
// the opening "/*", or at the first content character when resuming a
// continued comment). Returns 0 if the comment closes on this line, 1 if
// it runs off the end (spec.md: "returning continuation state 1").
func PaintCComment(p *Position, flag cell.Flag) int {
	for !p.EOL() {
		if p.Cur() == '*' && p.At(p.I+1) == '/' {
			p.Paint(p.I, flag)
			p.Paint(p.I+1, flag)
			p.I += 2
			return 0
		}
		p.Paint(p.I, flag)
		p.I++
	}
	return 1
}

// PaintCNumeral paints a numeric literal at p.I: hex (0x...), octal
// (0...), or decimal with an optional fractional part and fFuUlL
// suffixes. p.I must be on the first digit.
func PaintCNumeral(p *Position, flag cell.Flag) {
	start := p.I
	if p.Cur() == '0' && (p.At(p.I+1) == 'x' || p.At(p.I+1) == 'X') {
		p.I += 2
		for isHexDigit(p.Cur()) {
			p.I++
		}
	} else {
		for isDigit(p.Cur()) {
			p.I++
		}
		if p.Cur() == '.' && isDigit(p.At(p.I+1)) {
			p.I++
			for isDigit(p.Cur()) {
				p.I++
			}
		}
	}
	for isNumSuffix(p.Cur()) {
		p.I++
	}
	for i := start; i < p.I; i++ {
		p.Paint(i, flag)
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isNumSuffix(r rune) bool {
	switch r {
	case 'f', 'F', 'u', 'U', 'l', 'L':
		return true
	default:
		return false
	}
}

// PaintRestOfLine paints every remaining cell on the line with flag and
// advances p.I to EOL, used for line comments (// , # , ;).
func PaintRestOfLine(p *Position, flag cell.Flag) {
	for !p.EOL() {
		p.Paint(p.I, flag)
		p.I++
	}
}

// SkipWord advances p.I past a run of word characters (as defined by
// DefaultQualifier), without painting.
func SkipWord(p *Position) {
	for !p.EOL() && DefaultQualifier(p.Cur()) {
		p.I++
	}
}

// IsWordStart reports whether offset begins a word: either it is 0, or
// the preceding character fails the qualifier.
func IsWordStart(p *Position, offset int, qualifier Qualifier) bool {
	if qualifier == nil {
		qualifier = DefaultQualifier
	}
	return offset == 0 || !qualifier(p.At(offset-1))
}
