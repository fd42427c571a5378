package buffer

import (
	"github.com/framegrace/bim/internal/cell"
	"github.com/framegrace/bim/internal/history"
	"github.com/framegrace/bim/internal/syntax"
)

// Every mutating primitive in this file emits exactly one history record
// when not loading and history is enabled (spec.md §4.1), then cascades
// syntax recomputation starting at the affected line (spec.md §4.3).
// onScreen may be nil; when non-nil it is called with every 0-based line
// index that needs a redraw because its syntax state changed.

// InsertCell inserts cp at (lineNo, col), both 1-based, col in [1, len+1].
func (b *Buffer) InsertCell(lineNo, col int, cp rune, onScreen func(int)) {
	l := b.lines[lineNo-1]
	offset := col - 1
	c := cell.NewCell(cp)
	cell.Insert(l, c, offset, b.loading)
	b.journal(history.Record{Kind: history.Insert, Line: lineNo, Col: col, Codepoint: cp})
	b.relexLine(l, lineNo, onScreen)
	b.cascade(onScreen, lineNo-1)
}

// DeleteCell removes the cell before col at lineNo (canonical backspace;
// spec.md §9's resolved ambiguity lives in cell.Delete). No-op if col<=1.
func (b *Buffer) DeleteCell(lineNo, col int, onScreen func(int)) {
	l := b.lines[lineNo-1]
	offset := col - 1
	if offset <= 0 || l.Len() == 0 {
		return
	}
	idx := offset - 1
	if offset >= l.Len() {
		idx = l.Len() - 1
	}
	old := l.Cell(idx).Codepoint
	cell.Delete(l, offset, b.loading)
	b.journal(history.Record{Kind: history.Delete, Line: lineNo, Col: idx + 1, OldCodepoint: old})
	b.relexLine(l, lineNo, onScreen)
	b.cascade(onScreen, lineNo-1)
}

// ReplaceCell overwrites the cell at (lineNo, col).
func (b *Buffer) ReplaceCell(lineNo, col int, cp rune, onScreen func(int)) {
	l := b.lines[lineNo-1]
	offset := col - 1
	if offset < 0 || offset >= l.Len() {
		return
	}
	old := l.Cell(offset).Codepoint
	cell.Replace(l, offset, cell.NewCell(cp), b.loading)
	b.journal(history.Record{Kind: history.Replace, Line: lineNo, Col: col, Codepoint: cp, OldCodepoint: old})
	b.relexLine(l, lineNo, onScreen)
	b.cascade(onScreen, lineNo-1)
}

// AddLine inserts a new empty line at 1-based position `at` (the new
// line becomes line number `at`; existing lines at and after shift down).
func (b *Buffer) AddLine(at int, onScreen func(int)) {
	idx := at - 1
	nl := cell.NewLine()
	b.lines = append(b.lines, nil)
	copy(b.lines[idx+1:], b.lines[idx:])
	b.lines[idx] = nl
	b.journal(history.Record{Kind: history.AddLine, Line: at})
	b.cascade(onScreen, idx)
}

// RemoveLine removes line `at` (1-based). If it was the only line, it is
// cleared in place instead of removing it (spec.md: line count >= 1).
func (b *Buffer) RemoveLine(at int, onScreen func(int)) {
	idx := at - 1
	if len(b.lines) == 1 {
		snap := b.lines[0].Snapshot()
		b.lines[0].Clear()
		b.journal(history.Record{Kind: history.RemoveLine, Line: at, OldContents: snap, Cleared: true})
		return
	}
	snap := b.lines[idx].Snapshot()
	copy(b.lines[idx:], b.lines[idx+1:])
	b.lines = b.lines[:len(b.lines)-1]
	b.journal(history.Record{Kind: history.RemoveLine, Line: at, OldContents: snap})
	if idx < len(b.lines) {
		b.cascade(onScreen, idx)
	}
}

// SplitLine splits line `at` (1-based) at 1-based col into `at`
// ([0,col)) and a new `at+1` ([col,len)). col==1 is equivalent to
// inserting a blank line above, since [0,col) is then empty.
func (b *Buffer) SplitLine(at, col int, onScreen func(int)) {
	idx := at - 1
	offset := col - 1
	l := b.lines[idx]
	tail := cell.Split(l, offset)
	b.lines = append(b.lines, nil)
	copy(b.lines[idx+2:], b.lines[idx+1:])
	b.lines[idx+1] = tail
	b.journal(history.Record{Kind: history.SplitLine, Line: at, Col: col})
	b.relexLine(l, at, onScreen)
	b.cascade(onScreen, idx)
}

// MergeLines merges line `at` (1-based) into `at-1`, removing `at`.
func (b *Buffer) MergeLines(at int, onScreen func(int)) {
	idx := at - 1
	prev := b.lines[idx-1]
	preLen := prev.Len()
	cell.Merge(prev, b.lines[idx])
	copy(b.lines[idx:], b.lines[idx+1:])
	b.lines = b.lines[:len(b.lines)-1]
	b.journal(history.Record{Kind: history.MergeLines, Line: at, Col: preLen})
	b.relexLine(prev, at-1, onScreen)
	b.cascade(onScreen, idx-1)
}

// ReplaceLine clones other's cells into line `at` (1-based), used by
// :s whole-line replace and by redo of a REPLACE_LINE record.
func (b *Buffer) ReplaceLine(at int, other []cell.Cell, onScreen func(int)) {
	idx := at - 1
	l := b.lines[idx]
	old := l.Snapshot()
	cell.ReplaceContents(l, other)
	b.journal(history.Record{Kind: history.ReplaceLine, Line: at, OldContents: old, NewContents: append([]cell.Cell(nil), other...)})
	b.relexLine(l, at, onScreen)
	b.cascade(onScreen, idx)
}

func (b *Buffer) relexLine(l *cell.Line, lineNo int, onScreen func(int)) {
	if b.loading || b.Syntax == nil {
		return
	}
	l.IState = syntaxStateBefore(b, lineNo)
}

// syntaxStateBefore returns the IState the previous line leaves behind,
// i.e. what lineNo's own IState should start as before it is re-lexed
// by cascade(); line 1 always starts clean.
func syntaxStateBefore(b *Buffer, lineNo int) int {
	if lineNo <= 1 {
		return 0
	}
	return syntax.RecomputeLine(b.Syntax, b.lines[lineNo-2], lineNo-1)
}

func (b *Buffer) journal(r history.Record) {
	if b.loading || !b.historyEnabled {
		return
	}
	b.History.Push(r)
}

// SetHistoryBreak inserts a transaction boundary (spec.md §4.2), used on
// mode exit and command-mode entry.
func (b *Buffer) SetHistoryBreak() {
	if b.loading || !b.historyEnabled {
		return
	}
	b.History.PushBreak()
}
