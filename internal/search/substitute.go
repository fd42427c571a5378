package search

import "github.com/framegrace/bim/internal/buffer"

// Substitute implements `:s/needle/repl/[g][i]` over lines
// [fromLine,toLine] (spec.md §4.8). Without `g` only the first match
// per line is replaced; with `g` the scan resumes after the inserted
// replacement so the advance by len(repl) prevents an infinite loop.
// The `i` flag forces case-insensitive matching regardless of
// smart-case. Returns the number of replacements made.
func Substitute(b *buffer.Buffer, fromLine, toLine int, needle, repl []rune, global, ignoreCase bool) int {
	if len(needle) == 0 {
		return 0
	}
	cs := smartCase(needle)
	if ignoreCase {
		cs = false
	}

	count := 0
	for ln := fromLine; ln <= toLine && ln <= b.LineCount(); ln++ {
		col := 1
		for {
			l := b.Line(ln)
			found := -1
			for c := col; c <= l.Len(); c++ {
				if matchAt(l, c, needle, cs) {
					found = c
					break
				}
			}
			if found < 0 {
				break
			}
			for i := 0; i < len(needle); i++ {
				b.DeleteCell(ln, found+1, nil)
			}
			for i, r := range repl {
				b.InsertCell(ln, found+i, r, nil)
			}
			count++
			if !global {
				break
			}
			col = found + len(repl)
		}
	}
	return count
}
