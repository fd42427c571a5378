// Package syntax implements the incremental, restartable syntax
// highlighter (spec.md §4.3): a line-oriented state machine whose
// per-line output can cascade to subsequent lines. Each language is a
// closed-set Definition sharing the same Calculate iterator contract;
// there is no runtime plugin loading (spec.md §9).
package syntax

import "github.com/framegrace/bim/internal/cell"

// Position is the mutable cursor a Calculate function advances across a
// single line. State starts as the line's IState; a language function
// may change it between calls on the same line and branches on it at the
// start of each call. After the final call it is not read — the *return
// value* of Calculate is what carries the terminal state.
type Position struct {
	Line   *cell.Line
	LineNo int
	State  int
	I      int
}

// Paint sets flag as the class of the cell at the current position
// (or a specific offset), preserving any SELECT/SEARCH overlay bits
// already present.
func (p *Position) Paint(offset int, flag cell.Flag) {
	c := p.Line.Cell(offset)
	c.Flags = c.Flags.WithClass(flag)
	p.Line.SetCell(offset, c)
}

// At returns the codepoint at offset, or 0 past the end of line.
func (p *Position) At(offset int) rune {
	if offset < 0 || offset >= p.Line.Len() {
		return 0
	}
	return p.Line.Cell(offset).Codepoint
}

// Cur returns the codepoint at the current cursor.
func (p *Position) Cur() rune { return p.At(p.I) }

// EOL reports whether the cursor has reached (or passed) the end of line.
func (p *Position) EOL() bool { return p.I >= p.Line.Len() }

// CalculateFunc is called repeatedly against one (line, i, state) cursor.
// It must return 0 to mean "continue on this line" (it is expected to
// have advanced p.I at least one cell before returning 0); -1 to mean
// "line ends, next line starts clean"; any positive value to mean "line
// ends, next line starts in that state". This is a plain iterator, not a
// coroutine (spec.md §9).
type CalculateFunc func(p *Position) int

// Definition describes one closed-set language lexer.
type Definition struct {
	Name          string
	Extensions    []string
	Calculate     CalculateFunc
	PrefersSpaces bool
}

// cleanState is the normalized "next line starts clean" state stored in
// Line.IState (spec.md uses 0 for "clean" uniformly).
const cleanState = 0

// RecomputeLine re-lexes a single line starting from its own IState,
// painting flags into its cells, and returns the terminal state that
// should become the next line's IState.
func RecomputeLine(def *Definition, line *cell.Line, lineNo int) int {
	if def == nil {
		return cleanState
	}
	p := &Position{Line: line, LineNo: lineNo, State: line.IState, I: 0}
	for {
		r := def.Calculate(p)
		if r == 0 {
			if p.I >= line.Len() {
				// Defensive: a Calculate implementation that forgets to
				// signal completion at EOL would otherwise spin forever.
				return cleanState
			}
			continue
		}
		if r == -1 {
			return cleanState
		}
		return r
	}
}

// RecomputeCascade re-lexes lines starting at startLine (0-based index
// into lines), and recurses into the next line whenever the terminal
// state differs from what that line already had cached, per spec.md's
// cascade rule. onScreen is called with the (0-based) index of each
// following line whose starting state changed, so the renderer can be
// told to redraw it; invalidate is called with each re-lexed index. Either
// may be nil to skip that notification. Recursion is naturally bounded by line
// count since each step only continues while something actually changed.
func RecomputeCascade(def *Definition, lines []*cell.Line, startLine int, onScreen func(int), invalidate func(int)) {
	recompute(def, lines, startLine, onScreen, invalidate, 0)
}

func recompute(def *Definition, lines []*cell.Line, idx int, onScreen func(int), invalidate func(int), depth int) {
	if idx < 0 || idx >= len(lines) {
		return
	}
	if depth > len(lines) {
		return // defensive bound; cascade cannot legitimately exceed line count
	}
	terminal := RecomputeLine(def, lines[idx], idx+1)
	if invalidate != nil {
		invalidate(idx)
	}
	next := idx + 1
	if next >= len(lines) {
		return
	}
	if lines[next].IState == terminal {
		return
	}
	lines[next].IState = terminal
	if onScreen != nil {
		onScreen(next)
	}
	recompute(def, lines, next, onScreen, invalidate, depth+1)
}
