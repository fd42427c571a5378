package ioadapt

import (
	"path/filepath"
	"testing"
)

func TestBiminfoSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cache := filepath.Join(dir, "biminfo")

	if err := SaveCursor(cache, "/abs/one.txt", 10, 3); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := SaveCursor(cache, "/abs/two.txt", 1, 1); err != nil {
		t.Fatalf("save: %v", err)
	}

	line, col, ok := LoadCursor(cache, "/abs/one.txt")
	if !ok || line != 10 || col != 3 {
		t.Fatalf("got line=%d col=%d ok=%v", line, col, ok)
	}

	line, col, ok = LoadCursor(cache, "/abs/two.txt")
	if !ok || line != 1 || col != 1 {
		t.Fatalf("got line=%d col=%d ok=%v", line, col, ok)
	}
}

func TestBiminfoInPlaceRewrite(t *testing.T) {
	dir := t.TempDir()
	cache := filepath.Join(dir, "biminfo")

	if err := SaveCursor(cache, "/abs/one.txt", 5, 5); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := SaveCursor(cache, "/abs/two.txt", 9, 9); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := SaveCursor(cache, "/abs/one.txt", 42, 7); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	line, col, ok := LoadCursor(cache, "/abs/one.txt")
	if !ok || line != 42 || col != 7 {
		t.Fatalf("expected updated record, got line=%d col=%d ok=%v", line, col, ok)
	}
	line, col, ok = LoadCursor(cache, "/abs/two.txt")
	if !ok || line != 9 || col != 9 {
		t.Fatalf("unrelated record corrupted: line=%d col=%d ok=%v", line, col, ok)
	}
}

func TestBiminfoMissingFile(t *testing.T) {
	_, _, ok := LoadCursor(filepath.Join(t.TempDir(), "nope"), "/abs/x.txt")
	if ok {
		t.Fatalf("expected no record for missing cache file")
	}
}
