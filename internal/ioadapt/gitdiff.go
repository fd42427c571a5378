package ioadapt

import (
	"bufio"
	"context"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// RevStatus is the gutter annotation git diff hunks produce (spec.md
// §3/§6).
type RevStatus int

const (
	Unchanged RevStatus = iota
	Added
	ModifiedUnsaved
	ModifiedCommitted
	DeletedAbove
	ModifiedAndDeletedAbove
)

// Hunk is one parsed "@@ -from[,fromCount] +to[,toCount] @@" header.
type Hunk struct {
	From, FromCount int
	To, ToCount     int
}

// GitDiff runs `git diff -U0 -- path` synchronously in dir (the
// repository working tree) and returns its parsed hunks. Grounded on
// tui/pty_app.go's exec.Command/cmd.Env construction, simplified to a
// pipe-less Output call since the diff adapter only needs the
// finished text, never an interactive session (spec.md §5: "read
// synchronously to completion ... the only place the editor blocks
// for external work").
func GitDiff(ctx context.Context, dir, path string) ([]Hunk, error) {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = path
	}
	cmd := exec.CommandContext(ctx, "git", "diff", "-U0", "--no-color", "--", rel)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			// git diff exits nonzero only on a genuine error, not on
			// "has changes" (unlike git diff --exit-code); treat any
			// output we did get as best-effort.
		} else {
			return nil, err
		}
	}
	return ParseUnifiedHunks(out), nil
}

// ParseUnifiedHunks scans unified-diff text for "@@ -from,fromCount
// +to,toCount @@" headers (spec.md §6: "Only @@ ... @@ headers are
// parsed"), tolerating the omitted ",count" form which implies count=1.
func ParseUnifiedHunks(diff []byte) []Hunk {
	var hunks []Hunk
	sc := bufio.NewScanner(strings.NewReader(string(diff)))
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "@@ ") {
			continue
		}
		h, ok := parseHunkHeader(line)
		if ok {
			hunks = append(hunks, h)
		}
	}
	return hunks
}

func parseHunkHeader(line string) (Hunk, bool) {
	parts := strings.SplitN(line, "@@", 3)
	if len(parts) < 2 {
		return Hunk{}, false
	}
	fields := strings.Fields(parts[1])
	if len(fields) != 2 || !strings.HasPrefix(fields[0], "-") || !strings.HasPrefix(fields[1], "+") {
		return Hunk{}, false
	}
	from, fromCount, ok1 := parseRangeField(fields[0][1:])
	to, toCount, ok2 := parseRangeField(fields[1][1:])
	if !ok1 || !ok2 {
		return Hunk{}, false
	}
	return Hunk{From: from, FromCount: fromCount, To: to, ToCount: toCount}, true
}

// parseRangeField parses "N" or "N,M", defaulting M (the count) to 1.
func parseRangeField(s string) (n, count int, ok bool) {
	a, b, hasComma := strings.Cut(s, ",")
	n, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, false
	}
	if !hasComma {
		return n, 1, true
	}
	count, err = strconv.Atoi(b)
	if err != nil {
		return 0, 0, false
	}
	return n, count, true
}

// AnnotateRevStatus maps parsed hunks onto per-line RevStatus values
// for lines [1, lineCount], following spec.md §6's gutter-bar rule:
// added lines paint green over their ToCount span; a hunk with
// FromCount>0 and ToCount==0 (a pure deletion) paints a deletion bar
// on the line immediately above its insertion point, combined with
// modified (blue) if that same line is also touched by another hunk.
func AnnotateRevStatus(hunks []Hunk, lineCount int) []RevStatus {
	out := make([]RevStatus, lineCount+1) // 1-based; index 0 unused
	for _, h := range hunks {
		switch {
		case h.ToCount > 0 && h.FromCount == 0:
			for i := 0; i < h.ToCount; i++ {
				setStatus(out, h.To+i, Added)
			}
		case h.ToCount > 0 && h.FromCount > 0:
			for i := 0; i < h.ToCount; i++ {
				setStatus(out, h.To+i, ModifiedUnsaved)
			}
		case h.ToCount == 0:
			// Pure deletion: bar above the line at the insertion point.
			line := h.To
			if line < 1 {
				line = 1
			}
			setStatus(out, line, DeletedAbove)
		}
	}
	return out
}

func setStatus(out []RevStatus, line int, s RevStatus) {
	if line < 1 || line >= len(out) {
		return
	}
	switch {
	case out[line] == Unchanged:
		out[line] = s
	case out[line] == DeletedAbove && (s == ModifiedUnsaved || s == Added):
		out[line] = ModifiedAndDeletedAbove
	case (out[line] == ModifiedUnsaved || out[line] == Added) && s == DeletedAbove:
		out[line] = ModifiedAndDeletedAbove
	}
}
