package syntax

import (
	"sort"
	"strings"

	"github.com/framegrace/bim/internal/cell"
)

// Markdown is the only language that composes another lexer (spec.md
// §4.3/§9): entering a fenced code block whose info string names a
// known language translates state into that language's disjoint range
// (nestBases), and nest() trampolines into it, subtracting the base
// before calling the inner Calculate and adding it back to the result.
const mdStatePlainFence = 1

type nestedLang struct {
	name string
	base int
}

func sortedNestBases() []nestedLang {
	out := make([]nestedLang, 0, len(nestBases))
	for name, base := range nestBases {
		out = append(out, nestedLang{name, base})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].base < out[j].base })
	return out
}

// lookupNest finds which nested language's range a given state value
// falls in: the language with the greatest base <= state.
func lookupNest(sorted []nestedLang, state int) (string, int, bool) {
	best := -1
	for i, nl := range sorted {
		if nl.base <= state {
			best = i
		}
	}
	if best == -1 {
		return "", 0, false
	}
	return sorted[best].name, sorted[best].base, true
}

// nest runs def's full per-line Calculate loop against a state shifted
// down by base, translating its terminal result back up by base so the
// outer (Markdown) state space and the inner language's state space
// never collide (spec.md §9's exact state-offset convention).
func nest(def *Definition, base int, p *Position) int {
	inner := &Position{Line: p.Line, LineNo: p.LineNo, State: p.State - base, I: p.I}
	for {
		r := def.Calculate(inner)
		if r == 0 {
			continue
		}
		p.I = inner.I
		if r == -1 {
			return base
		}
		return base + r
	}
}

func isFenceDelim(p *Position) bool {
	return p.I == 0 && p.Cur() == '`' && p.At(1) == '`' && p.At(2) == '`'
}

func markdownCalculate(reg *Registry) CalculateFunc {
	sorted := sortedNestBases()
	return func(p *Position) int {
		if p.State != 0 {
			if isFenceDelim(p) {
				PaintRestOfLine(p, cell.FlagString)
				p.State = 0
				return -1
			}
			if p.State == mdStatePlainFence {
				PaintRestOfLine(p, cell.FlagString2)
				return mdStatePlainFence
			}
			if name, base, ok := lookupNest(sorted, p.State); ok {
				if def := reg.ByName(name); def != nil {
					return nest(def, base, p)
				}
			}
			// Unknown nested state: recover to clean rather than getting
			// stuck in an unrecognized range forever.
			p.State = 0
			return -1
		}

		if p.EOL() {
			return -1
		}
		c := p.Cur()
		switch {
		case isFenceDelim(p):
			p.Paint(0, cell.FlagString)
			p.Paint(1, cell.FlagString)
			p.Paint(2, cell.FlagString)
			p.I = 3
			lang := strings.TrimSpace(string(p.Line.Runes()[3:]))
			for i := 3; i < p.Line.Len(); i++ {
				p.Paint(i, cell.FlagString)
			}
			p.I = p.Line.Len()
			if def := reg.ByName(strings.ToLower(lang)); def != nil {
				if base, ok := nestBases[def.Name]; ok {
					return base
				}
			}
			return mdStatePlainFence
		case p.I == 0 && c == '#':
			PaintRestOfLine(p, cell.FlagType)
			return -1
		case c == '`':
			start := p.I
			p.I++
			for !p.EOL() && p.Cur() != '`' {
				p.I++
			}
			if !p.EOL() {
				p.I++
			}
			for i := start; i < p.I; i++ {
				p.Paint(i, cell.FlagString2)
			}
			return 0
		case c == '*' && p.At(p.I+1) == '*':
			start := p.I
			p.I += 2
			for !p.EOL() && !(p.Cur() == '*' && p.At(p.I+1) == '*') {
				p.I++
			}
			if !p.EOL() {
				p.I += 2
			}
			for i := start; i < p.I; i++ {
				p.Paint(i, cell.FlagBold)
			}
			return 0
		case c == '[':
			start := p.I
			p.I++
			for !p.EOL() && p.Cur() != ']' {
				p.I++
			}
			if !p.EOL() {
				p.I++
			}
			if !p.EOL() && p.Cur() == '(' {
				for !p.EOL() && p.Cur() != ')' {
					p.I++
				}
				if !p.EOL() {
					p.I++
				}
			}
			for i := start; i < p.I; i++ {
				p.Paint(i, cell.FlagLink)
			}
			return 0
		default:
			p.I++
			return 0
		}
	}
}

func markdownDefinition(reg *Registry) *Definition {
	return &Definition{
		Name:          "markdown",
		Extensions:    []string{"md", "markdown"},
		Calculate:     markdownCalculate(reg),
		PrefersSpaces: true,
	}
}
