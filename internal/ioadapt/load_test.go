package ioadapt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/framegrace/bim/internal/cell"
	"github.com/framegrace/bim/internal/syntax"
)

func cellsToString(l *cell.Line) string {
	cells := l.Cells()
	rs := make([]rune, len(cells))
	for i, c := range cells {
		rs[i] = c.Codepoint
	}
	return string(rs)
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")
	content := "hello\nworld\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := syntax.NewRegistry()
	b, err := Load(path, reg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if b.LineCount() != 2 {
		t.Fatalf("expected 2 lines, got %d", b.LineCount())
	}
	if got := cellsToString(b.Line(1)); got != "hello" {
		t.Fatalf("line 1 = %q", got)
	}
	if got := cellsToString(b.Line(2)); got != "world" {
		t.Fatalf("line 2 = %q", got)
	}

	out := filepath.Join(dir, "out.txt")
	if err := Save(b, out); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != content {
		t.Fatalf("round trip mismatch: got %q want %q", data, content)
	}
}

func TestLoadNoTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noeol.txt")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}
	reg := syntax.NewRegistry()
	b, err := Load(path, reg)
	if err != nil {
		t.Fatal(err)
	}
	if b.LineCount() != 1 {
		t.Fatalf("expected 1 line, got %d", b.LineCount())
	}
	if got := cellsToString(b.Line(1)); got != "abc" {
		t.Fatalf("got %q", got)
	}
}

func TestLoadNonexistentOpensEmpty(t *testing.T) {
	reg := syntax.NewRegistry()
	b, err := Load(filepath.Join(t.TempDir(), "missing.txt"), reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.LineCount() != 1 || b.Line(1).Len() != 0 {
		t.Fatalf("expected one empty line")
	}
}
