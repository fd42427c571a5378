package editor

import "github.com/framegrace/bim/internal/cell"

// YankKind distinguishes whole-line yanks from partial-range yanks
// (spec.md §3), which paste differently (4.7).
type YankKind int

const (
	YankNone YankKind = iota
	YankLines
	YankRange
)

// Yank is the process-global register: switching buffers does not clear
// it (spec.md §5). Replacing a yank frees the previous one — in Go terms,
// simply overwriting the slice and letting the GC reclaim it.
type Yank struct {
	Kind  YankKind
	Lines [][]cell.Cell // one slice of cells per yanked line
}

// SetLines replaces the register with a whole-line yank.
func (y *Yank) SetLines(lines [][]cell.Cell) {
	y.Kind = YankLines
	y.Lines = lines
}

// SetRange replaces the register with a partial-range yank; lines[0] and
// lines[len-1] are the partial first/last lines, any lines between are
// whole.
func (y *Yank) SetRange(lines [][]cell.Cell) {
	y.Kind = YankRange
	y.Lines = lines
}

// Empty reports whether anything has been yanked yet.
func (y *Yank) Empty() bool { return y.Kind == YankNone }
