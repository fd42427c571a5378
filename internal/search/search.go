// Package search implements spec.md §4.8: forward/backward literal
// search over buffer lines with smart-case, incremental SEARCH-flag
// highlighting, and :s substitution. Pure text-algorithm code grounded
// directly on spec.md §4.8 (the compositor has no search concept).
package search

import (
	"unicode"

	"github.com/framegrace/bim/internal/buffer"
	"github.com/framegrace/bim/internal/cell"
)

// Match is a needle occurrence, both fields 1-based.
type Match struct {
	Line, Col int
}

// smartCase reports whether needle forces case-sensitive matching
// (spec.md §4.8: "if the needle contains no uppercase, matching is
// case-insensitive; otherwise case-sensitive").
func smartCase(needle []rune) bool {
	for _, r := range needle {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func eqRune(a, b rune, caseSensitive bool) bool {
	if caseSensitive {
		return a == b
	}
	return unicode.ToLower(a) == unicode.ToLower(b)
}

func matchAt(line *cell.Line, col int, needle []rune, caseSensitive bool) bool {
	cells := line.Cells()
	if col-1+len(needle) > len(cells) {
		return false
	}
	for i, r := range needle {
		if !eqRune(cells[col-1+i].Codepoint, r, caseSensitive) {
			return false
		}
	}
	return true
}

// FindForward scans from (fromLine, fromCol) forward, advancing column
// then line, wrapping across the whole buffer. Returns the first
// match, or ok=false if none.
func FindForward(b *buffer.Buffer, fromLine, fromCol int, needle []rune) (Match, bool) {
	if len(needle) == 0 {
		return Match{}, false
	}
	cs := smartCase(needle)
	n := b.LineCount()
	line, col := fromLine, fromCol
	for i := 0; i < n; i++ {
		l := b.Line(line)
		startCol := 1
		if i == 0 {
			startCol = col
		}
		for c := startCol; c <= l.Len(); c++ {
			if matchAt(l, c, needle, cs) {
				return Match{Line: line, Col: c}, true
			}
		}
		line++
		if line > n {
			line = 1
		}
	}
	return Match{}, false
}

// FindBackward is symmetric to FindForward, scanning backward.
func FindBackward(b *buffer.Buffer, fromLine, fromCol int, needle []rune) (Match, bool) {
	if len(needle) == 0 {
		return Match{}, false
	}
	cs := smartCase(needle)
	n := b.LineCount()
	line, col := fromLine, fromCol
	for i := 0; i < n; i++ {
		l := b.Line(line)
		startCol := l.Len()
		if i == 0 {
			startCol = col
			if startCol > l.Len() {
				startCol = l.Len()
			}
		}
		for c := startCol; c >= 1; c-- {
			if matchAt(l, c, needle, cs) {
				return Match{Line: line, Col: c}, true
			}
		}
		line--
		if line < 1 {
			line = n
		}
	}
	return Match{}, false
}

// HighlightAll clears every SEARCH flag in the buffer and repaints it
// on every occurrence of needle (spec.md §4.8's incremental-search
// redraw). Returns the number of matches found.
func HighlightAll(b *buffer.Buffer, needle []rune) int {
	count := 0
	for ln := 1; ln <= b.LineCount(); ln++ {
		l := b.Line(ln)
		l.ClearSearchFlags()
		if len(needle) == 0 {
			continue
		}
		cs := smartCase(needle)
		cells := l.Cells()
		for c := 1; c <= l.Len(); c++ {
			if matchAt(l, c, needle, cs) {
				for i := range needle {
					cells[c-1+i].Flags |= cell.FlagSearch
				}
				count++
			}
		}
	}
	return count
}

// ClearHighlight removes every SEARCH flag, used on ESC-cancel of an
// incremental search.
func ClearHighlight(b *buffer.Buffer) {
	for ln := 1; ln <= b.LineCount(); ln++ {
		b.Line(ln).ClearSearchFlags()
	}
}
