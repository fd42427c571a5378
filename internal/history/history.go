// Package history implements the undo/redo journal (spec.md §4.2): a
// doubly-linked list of fine-grained edit records grouped into
// user-visible transactions by BREAK markers. Per spec.md §9's guidance
// to avoid reference cycles, the list is implemented as an arena
// (a slice of nodes) addressed by integer index rather than pointers.
package history

import "github.com/framegrace/bim/internal/cell"

// Kind identifies the record discriminant.
type Kind uint8

const (
	Sentinel Kind = iota
	Insert
	Delete
	Replace
	AddLine
	RemoveLine
	ReplaceLine
	SplitLine
	MergeLines
	Break
)

// Record is one journal entry. Only the fields relevant to Kind are
// populated; the rest are zero. Snapshot fields (OldContents/NewContents)
// are owned copies, never aliases into live buffer lines.
type Record struct {
	Kind Kind

	Line int
	Col  int

	Codepoint    rune // Insert's cp, Replace's new_cp
	OldCodepoint rune // Delete's old_cp, Replace's old_cp

	OldContents []cell.Cell // RemoveLine snapshot, ReplaceLine old
	NewContents []cell.Cell // ReplaceLine new

	// Cleared records that a RemoveLine was actually a Clear (spec.md:
	// "removing the last remaining line clears that line rather than
	// reducing count to 0"), so the inverse restores content into the
	// existing line instead of re-inserting a removed one.
	Cleared bool

	prev, next int // arena indices; -1 means none
}

const noIndex = -1

// Journal is the per-buffer undo/redo arena. The zero value is not
// valid; use New.
type Journal struct {
	nodes []Record
	head  int // current position (index into nodes)
	root  int // sentinel index, always 0
}

// New returns a journal containing only the root sentinel, with head at
// the sentinel.
func New() *Journal {
	j := &Journal{nodes: make([]Record, 0, 64)}
	j.root = j.alloc(Record{Kind: Sentinel, prev: noIndex, next: noIndex})
	j.head = j.root
	return j
}

func (j *Journal) alloc(r Record) int {
	j.nodes = append(j.nodes, r)
	return len(j.nodes) - 1
}

// Head returns the opaque position of the current journal head. Buffers
// store this to detect modification (compare against the position saved
// at last write).
func (j *Journal) Head() int { return j.head }

// AtSentinel reports whether the journal head is the root (no edits, or
// fully undone).
func (j *Journal) AtSentinel() bool { return j.head == j.root }

// HeadIsBreak reports whether the current head record is a BREAK, used
// to avoid inserting consecutive BREAKs (spec.md §4.2 append rule).
func (j *Journal) HeadIsBreak() bool {
	return j.nodes[j.head].Kind == Break
}

// append makes r the new head, truncating any forward (redo) chain
// beyond the old head — classic linear-history truncation.
func (j *Journal) append(r Record) {
	r.prev = j.head
	r.next = noIndex
	idx := j.alloc(r)
	j.nodes[j.head].next = idx
	j.head = idx
}

// Push appends a non-BREAK edit record.
func (j *Journal) Push(r Record) {
	if r.Kind == Break {
		j.PushBreak()
		return
	}
	j.append(r)
}

// PushBreak inserts a transaction boundary unless the head is already
// one (spec.md §4.2: "insert a BREAK unless the head already is one").
func (j *Journal) PushBreak() {
	if j.head == j.root || j.HeadIsBreak() {
		return
	}
	j.append(Record{Kind: Break})
}

// Applier executes the inverse (undo) or forward (redo) effect of a
// single record against live buffer state. Implemented by
// internal/buffer to avoid an import cycle (history cannot depend on
// buffer, since buffer depends on history for journaling).
type Applier interface {
	ApplyInverse(Record)
	ApplyForward(Record)
}

// Result reports the chars-changed/lines-changed counters spec.md's
// undo/redo operations must produce.
type Result struct {
	CharsChanged int
	LinesChanged int
}

func recordDelta(r Record) Result {
	switch r.Kind {
	case Insert, Delete, Replace:
		return Result{CharsChanged: 1}
	case AddLine, RemoveLine, SplitLine, MergeLines, ReplaceLine:
		return Result{LinesChanged: 1}
	default:
		return Result{}
	}
}

// Undo walks backward from head, inverting records, stopping at the next
// BREAK encountered (exclusive of that BREAK — the BREAK itself is not
// inverted, it is just where the walk stops and the new head lands). Head
// normally rests on a BREAK between transactions (HandleEscape calls
// SetHistoryBreak), so that leading BREAK is skipped before the walk
// starts rather than counted as the stopping point — otherwise the very
// first undo after a transaction would invert nothing.
func (j *Journal) Undo(a Applier) Result {
	var total Result
	if j.head == j.root {
		return total
	}
	if j.nodes[j.head].Kind == Break {
		j.head = j.nodes[j.head].prev
	}
	for j.head != j.root {
		r := j.nodes[j.head]
		if r.Kind == Break {
			break
		}
		a.ApplyInverse(r)
		d := recordDelta(r)
		total.CharsChanged += d.CharsChanged
		total.LinesChanged += d.LinesChanged
		j.head = r.prev
	}
	return total
}

// Redo walks forward from head, applying records, stopping at the next
// BREAK (inclusive: head lands on the BREAK).
func (j *Journal) Redo(a Applier) Result {
	var total Result
	for {
		nxt := j.nodes[j.head].next
		if nxt == noIndex {
			return total
		}
		r := j.nodes[nxt]
		j.head = nxt
		if r.Kind == Break {
			return total
		}
		a.ApplyForward(r)
		d := recordDelta(r)
		total.CharsChanged += d.CharsChanged
		total.LinesChanged += d.LinesChanged
	}
}

// Reset discards all history, returning the journal to a fresh sentinel
// state.
func (j *Journal) Reset() {
	j.nodes = j.nodes[:0]
	j.root = j.alloc(Record{Kind: Sentinel, prev: noIndex, next: noIndex})
	j.head = j.root
}
