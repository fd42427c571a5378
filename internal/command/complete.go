package command

import (
	"sort"
	"strings"

	"github.com/framegrace/bim/internal/histstore"
)

// verbs is the closed set of command names tab-completion cycles
// through (spec.md §2's "tab completion" component, left unspecified
// beyond its existence).
var verbs = []string{
	"write", "wq", "wqa", "xa", "x", "w", "quit", "qall", "qa", "q",
	"tabnew", "tabe", "edit", "e", "split", "sp", "close", "set",
	"read", "r",
}

// CompleteVerb returns every known verb with the given prefix, sorted,
// for cycling on Tab in command mode.
func CompleteVerb(prefix string) []string {
	if prefix == "" {
		out := append([]string(nil), verbs...)
		sort.Strings(out)
		return out
	}
	var out []string
	for _, v := range verbs {
		if strings.HasPrefix(v, prefix) {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// Line is a single command-line edit buffer plus its history cursor
// (spec.md §4.7's command-line mode), backed by histstore for
// cross-session up/down recall of recent entries.
type Line struct {
	Text   []rune
	Cursor int

	kind     histstore.Kind
	store    *histstore.Store
	cursorAt int // index into recall, -1 means "not currently recalling"
	recall   []string
	stashed  []rune
}

// NewLine starts a fresh command-line edit session of the given kind.
func NewLine(kind histstore.Kind, store *histstore.Store) *Line {
	return &Line{kind: kind, store: store, cursorAt: -1}
}

// Insert inserts r at the cursor.
func (l *Line) Insert(r rune) {
	l.Text = append(l.Text[:l.Cursor], append([]rune{r}, l.Text[l.Cursor:]...)...)
	l.Cursor++
}

// Backspace deletes the rune before the cursor, if any.
func (l *Line) Backspace() {
	if l.Cursor == 0 {
		return
	}
	l.Text = append(l.Text[:l.Cursor-1], l.Text[l.Cursor:]...)
	l.Cursor--
}

// Recall moves backward (older, up=true) or forward (newer, up=false)
// through history, loading the matching entry into Text. The in-progress
// line is stashed on first recall so a full forward walk restores it.
func (l *Line) Recall(up bool) {
	if l.store == nil {
		return
	}
	if l.recall == nil {
		entries, err := l.store.Recent(l.kind, 200)
		if err != nil {
			return
		}
		l.recall = entries
		l.stashed = append([]rune(nil), l.Text...)
		l.cursorAt = -1
	}
	if up {
		if l.cursorAt+1 >= len(l.recall) {
			return
		}
		l.cursorAt++
	} else {
		if l.cursorAt <= -1 {
			return
		}
		l.cursorAt--
	}
	if l.cursorAt == -1 {
		l.Text = append([]rune(nil), l.stashed...)
	} else {
		l.Text = []rune(l.recall[l.cursorAt])
	}
	l.Cursor = len(l.Text)
}

// String returns the current line text.
func (l *Line) String() string { return string(l.Text) }

// Commit records the finished line in history (if non-empty) and
// returns it.
func (l *Line) Commit(tsNano int64) string {
	s := l.String()
	if l.store != nil && s != "" {
		l.store.Append(l.kind, s, tsNano)
	}
	return s
}
