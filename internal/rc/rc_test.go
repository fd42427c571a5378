package rc

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverlaysKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bimrc")
	body := "# comment\n" +
		"theme=solarized\n" +
		"nohistory\n" +
		"padding=2\n" +
		"splitpercent=30\n" +
		"nogit\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme != "solarized" {
		t.Fatalf("theme = %q", cfg.Theme)
	}
	if cfg.History {
		t.Fatalf("expected history disabled")
	}
	if cfg.Padding != 2 {
		t.Fatalf("padding = %d", cfg.Padding)
	}
	if cfg.SplitPercent != 30 {
		t.Fatalf("splitpercent = %d", cfg.SplitPercent)
	}
	if cfg.Git {
		t.Fatalf("expected git disabled")
	}
	if !cfg.HlParen || !cfg.HlCurrent {
		t.Fatalf("expected untouched keys to keep their defaults")
	}
}

func TestSplitPercentClamped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bimrc")
	os.WriteFile(path, []byte("splitpercent=5\n"), 0o644)
	cfg, _ := Load(path)
	if cfg.SplitPercent != 10 {
		t.Fatalf("expected clamp to 10, got %d", cfg.SplitPercent)
	}
}
