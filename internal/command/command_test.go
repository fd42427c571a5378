package command

import (
	"testing"

	"github.com/framegrace/bim/internal/buffer"
	"github.com/framegrace/bim/internal/editor"
)

func newTestContext(t *testing.T, text string) *editor.Context {
	t.Helper()
	ctx := editor.NewContext()
	b := buffer.New(ctx.Syntax)
	for i, r := range []rune(text) {
		b.InsertCell(1, i+1, r, nil)
	}
	ctx.Registry.Add(b)
	return ctx
}

func TestSubstituteSmartCase(t *testing.T) {
	ctx := newTestContext(t, "Hello hello HELLO")
	res := Run(ctx, "s/hello/hi/g", nil)
	if res.Err {
		t.Fatalf("unexpected error: %s", res.Message)
	}
	got := lineText(ctx.Registry.Active(), 1)
	if got != "Hello hi HELLO" {
		t.Fatalf("got %q", got)
	}

	res = Run(ctx, "%s/HELLO/bye/g", nil)
	if res.Err {
		t.Fatalf("unexpected error: %s", res.Message)
	}
	got = lineText(ctx.Registry.Active(), 1)
	if got != "Hello hi bye" {
		t.Fatalf("got %q", got)
	}
}

func TestSubstituteNoMatchReportsError(t *testing.T) {
	ctx := newTestContext(t, "abc")
	res := Run(ctx, "s/zzz/y/", nil)
	if !res.Err {
		t.Fatalf("expected error for no match")
	}
}

func TestQuitRefusesUnsavedWithoutBang(t *testing.T) {
	ctx := newTestContext(t, "abc")
	ctx.Registry.Active().InsertCell(1, 4, 'd', nil)
	res := Run(ctx, "q", nil)
	if !res.Err || res.Quit {
		t.Fatalf("expected refusal, got %+v", res)
	}
	res = Run(ctx, "q!", nil)
	if !res.Quit {
		t.Fatalf("expected quit with bang, got %+v", res)
	}
}

func TestWriteCallsSaveFuncAndMarksSaved(t *testing.T) {
	ctx := newTestContext(t, "abc")
	ctx.Registry.Active().FileName = "out.txt"
	called := false
	save := func(b *buffer.Buffer, path string) error {
		called = true
		if path != "out.txt" {
			t.Fatalf("unexpected path %q", path)
		}
		return nil
	}
	res := Run(ctx, "w", save)
	if res.Err || !called {
		t.Fatalf("expected write to succeed, got %+v", res)
	}
	if ctx.Registry.Active().Modified() {
		t.Fatalf("expected buffer marked saved")
	}
}

func TestSetOptions(t *testing.T) {
	ctx := newTestContext(t, "")
	Run(ctx, "set tabstop=4 expandtab noai", nil)
	opts := ctx.Registry.Active().Options
	if opts.Tabstop != 4 || !opts.ExpandTab || opts.AutoIndent {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestSplitAndClose(t *testing.T) {
	ctx := newTestContext(t, "abc")
	Run(ctx, "split", nil)
	if !ctx.Registry.SplitActive {
		t.Fatalf("expected split active")
	}
	Run(ctx, "close", nil)
	if ctx.Registry.SplitActive {
		t.Fatalf("expected split ended")
	}
}

func TestGotoLine(t *testing.T) {
	ctx := newTestContext(t, "a")
	b := ctx.Registry.Active()
	b.AddLine(2, nil)
	b.AddLine(3, nil)
	Run(ctx, "2", nil)
	if b.CursorLine != 2 {
		t.Fatalf("expected cursor line 2, got %d", b.CursorLine)
	}
}

func TestCompleteVerbPrefix(t *testing.T) {
	got := CompleteVerb("w")
	want := []string{"w", "wq", "wqa", "write"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func lineText(b *buffer.Buffer, lineNo int) string {
	cells := b.Line(lineNo).Cells()
	rs := make([]rune, len(cells))
	for i, c := range cells {
		rs[i] = c.Codepoint
	}
	return string(rs)
}
