package syntax

import "github.com/framegrace/bim/internal/cell"

// Rust's block-comment state *is* its nesting depth (spec.md §4.3: "Rust
// uses nesting-depth semantics: /* increments, */ decrements, returning
// to 0 exits comment state"); 0 means clean, N>0 means N levels deep.

var rustKeywords = []string{
	"fn", "let", "mut", "if", "else", "match", "loop", "while", "for",
	"in", "return", "break", "continue", "struct", "enum", "impl",
	"trait", "pub", "use", "mod", "crate", "self", "super", "as", "dyn",
	"where", "async", "await", "move", "ref", "unsafe", "static", "const",
}

var rustTypes = []string{
	"i8", "i16", "i32", "i64", "i128", "isize", "u8", "u16", "u32", "u64",
	"u128", "usize", "f32", "f64", "bool", "char", "str", "String", "Vec",
	"Option", "Result", "Box",
}

func rustCalculate(p *Position) int {
	if p.State > 0 {
		return rustComment(p)
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
		p.Paint(p.I, cell.FlagComment)
		p.Paint(p.I+1, cell.FlagComment)
		p.I += 2
		p.State = 1
		return rustComment(p)
	case c == '"':
		PaintCString(p, cell.FlagString, cell.FlagEscape, 0)
		return 0
	case c == '\'' && DefaultQualifier(p.At(p.I+1)) && p.At(p.I+2) != '\'':
		// a lifetime ('a) rather than a char literal
		start := p.I
		p.I++
		SkipWord(p)
		for i := start; i < p.I; i++ {
			p.Paint(i, cell.FlagType)
		}
		return 0
	case c == '\'':
		PaintCChar(p, cell.FlagString, cell.FlagEscape)
		return 0
	case isDigit(c):
		PaintCNumeral(p, cell.FlagNumeral)
		return 0
	case DefaultQualifier(c):
		start := p.I
		if MatchKeyword(p, rustKeywords, cell.FlagKeyword, nil) {
			return 0
		}
		if MatchKeyword(p, rustTypes, cell.FlagType, nil) {
			return 0
		}
		SkipWord(p)
		if !p.EOL() && p.Cur() == '!' {
			for i := start; i < p.I; i++ {
				p.Paint(i, cell.FlagPragma)
			}
			p.Paint(p.I, cell.FlagPragma)
			p.I++
			return 0
		}
		if p.I == start {
			p.I++
		}
		return 0
	default:
		p.I++
		return 0
	}
}

func rustComment(p *Position) int {
	for !p.EOL() {
		if p.Cur() == '/' && p.At(p.I+1) == '*' {
			p.Paint(p.I, cell.FlagComment)
			p.Paint(p.I+1, cell.FlagComment)
			p.I += 2
			p.State++
			continue
		}
		if p.Cur() == '*' && p.At(p.I+1) == '/' {
			p.Paint(p.I, cell.FlagComment)
			p.Paint(p.I+1, cell.FlagComment)
			p.I += 2
			p.State--
			if p.State == 0 {
				if p.EOL() {
					return -1
				}
				return 0
			}
			continue
		}
		p.Paint(p.I, cell.FlagComment)
		p.I++
	}
	return p.State
}

func rustDefinition() *Definition {
	return &Definition{
		Name:          "rust",
		Extensions:    []string{"rs"},
		Calculate:     rustCalculate,
		PrefersSpaces: true,
	}
}
