// Package cell implements the styled-cell and line primitives that every
// higher layer of the editor builds on: a line is a mutable, geometrically
// growing sequence of styled cells, each holding a Unicode scalar value,
// its cached display width, and a syntax/selection flag bitset.
package cell

import (
	"github.com/mattn/go-runewidth"
)

// Flag is the 7-bit style bitset carried by every cell. The low bits encode
// a single syntax class (mutually exclusive); SELECT and SEARCH are
// orthogonal overlay bits painted independently of syntax class.
type Flag uint8

const (
	FlagNone Flag = iota
	FlagKeyword
	FlagString
	FlagComment
	FlagType
	FlagPragma
	FlagNumeral
	FlagString2
	FlagDiffPlus
	FlagDiffMinus
	FlagNotice
	FlagBold
	FlagLink
	FlagEscape

	classMask Flag = 0x1F // five bits of syntax class, room to grow

	FlagSelect Flag = 1 << 5
	FlagSearch Flag = 1 << 6
)

// Class returns the syntax-class portion of the flag, stripping the
// orthogonal SELECT/SEARCH overlay bits.
func (f Flag) Class() Flag { return f & classMask }

// WithClass returns f with its syntax class replaced, preserving overlays.
func (f Flag) WithClass(c Flag) Flag { return (f &^ classMask) | (c & classMask) }

// Cell is the atomic unit of buffer content: one Unicode scalar value plus
// its cached terminal display width and style flags.
type Cell struct {
	Codepoint rune
	Width     uint8 // cached display width in terminal cells, 0-15
	Flags     Flag
}

// NewCell builds a cell, caching its display width. Tabs always store
// width 1; their on-screen width depends on the tabstop and the screen
// column and is computed at paint time by the RenderWidth method. The
// cached Width is the "narrow" width used for text navigation math (word
// motions, column clamping).
func NewCell(r rune) Cell {
	return Cell{Codepoint: r, Width: computeWidth(r)}
}

func computeWidth(r rune) uint8 {
	if r == '\t' {
		return 1
	}
	w := runewidth.RuneWidth(r)
	if w < 0 {
		w = 0
	}
	if w > 15 {
		w = 15
	}
	return uint8(w)
}

// RenderWidth returns the number of terminal columns this cell occupies
// when painted, given the active tabstop. Tabs expand to fill to the next
// tabstop boundary from the given screen column; all other cells use the
// cached Width.
func (c Cell) RenderWidth(screenCol, tabstop int) int {
	if c.Codepoint == '\t' {
		if tabstop <= 0 {
			tabstop = 8
		}
		w := tabstop - (screenCol % tabstop)
		if w <= 0 {
			w = tabstop
		}
		return w
	}
	return int(c.Width)
}

// RecomputeWidth refreshes Width from the cell's code point; the tabstop
// plays no part (tabs always store 1).
func (c *Cell) RecomputeWidth() {
	c.Width = computeWidth(c.Codepoint)
}
