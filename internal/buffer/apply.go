package buffer

import (
	"github.com/framegrace/bim/internal/cell"
	"github.com/framegrace/bim/internal/history"
)

// ApplyInverse and ApplyForward implement history.Applier: they replay a
// single record's effect directly against the line slice, bypassing
// journaling (the caller holds loading=true for the whole walk) and
// per-edit syntax cascades (a single full RelexAll follows the whole
// undo/redo walk, per spec.md §4.2's post-operation rule).

func (b *Buffer) ApplyInverse(r history.Record) {
	switch r.Kind {
	case history.Insert:
		l := b.lines[r.Line-1]
		cell.Delete(l, r.Col, true)
	case history.Delete:
		l := b.lines[r.Line-1]
		cell.Insert(l, cell.NewCell(r.OldCodepoint), r.Col-1, true)
	case history.Replace:
		l := b.lines[r.Line-1]
		cell.Replace(l, r.Col-1, cell.NewCell(r.OldCodepoint), true)
	case history.AddLine:
		b.removeLineRaw(r.Line)
	case history.RemoveLine:
		if r.Cleared {
			cell.ReplaceContents(b.lines[r.Line-1], r.OldContents)
		} else {
			b.insertLineRaw(r.Line, cell.NewLineFromCells(append([]cell.Cell(nil), r.OldContents...)))
		}
	case history.ReplaceLine:
		cell.ReplaceContents(b.lines[r.Line-1], r.OldContents)
	case history.SplitLine:
		b.mergeLinesRaw(r.Line + 1)
	case history.MergeLines:
		// r.Col is the 0-based length of the pre-merge line r.Line-1;
		// splitLinesRaw takes a 1-based column, so add 1 back.
		b.splitLinesRaw(r.Line-1, r.Col+1)
	}
}

func (b *Buffer) ApplyForward(r history.Record) {
	switch r.Kind {
	case history.Insert:
		l := b.lines[r.Line-1]
		cell.Insert(l, cell.NewCell(r.Codepoint), r.Col-1, true)
	case history.Delete:
		l := b.lines[r.Line-1]
		cell.Delete(l, r.Col, true)
	case history.Replace:
		l := b.lines[r.Line-1]
		cell.Replace(l, r.Col-1, cell.NewCell(r.Codepoint), true)
	case history.AddLine:
		b.insertLineRaw(r.Line, cell.NewLine())
	case history.RemoveLine:
		if r.Cleared {
			b.lines[r.Line-1].Clear()
		} else {
			b.removeLineRaw(r.Line)
		}
	case history.ReplaceLine:
		cell.ReplaceContents(b.lines[r.Line-1], r.NewContents)
	case history.SplitLine:
		b.splitLinesRaw(r.Line, r.Col)
	case history.MergeLines:
		b.mergeLinesRaw(r.Line)
	}
}

func (b *Buffer) insertLineRaw(at int, l *cell.Line) {
	idx := at - 1
	b.lines = append(b.lines, nil)
	copy(b.lines[idx+1:], b.lines[idx:])
	b.lines[idx] = l
}

func (b *Buffer) removeLineRaw(at int) {
	idx := at - 1
	copy(b.lines[idx:], b.lines[idx+1:])
	b.lines = b.lines[:len(b.lines)-1]
}

// splitLinesRaw splits line `at` (1-based) at 1-based column col.
func (b *Buffer) splitLinesRaw(at, col int) {
	idx := at - 1
	l := b.lines[idx]
	tail := cell.Split(l, col-1)
	b.insertLineRaw(at+1, tail)
}

func (b *Buffer) mergeLinesRaw(at int) {
	idx := at - 1
	prev := b.lines[idx-1]
	cell.Merge(prev, b.lines[idx])
	b.removeLineRaw(at)
}
