package render

import (
	"fmt"

	"github.com/framegrace/bim/internal/buffer"
	"github.com/framegrace/bim/internal/editor"
	"github.com/framegrace/bim/internal/term"
)

// drawStatusLine paints row H-1 (spec.md §4.5): the filename, then [+],
// [ro], the syntax name, a tabs/spaces indicator and an "ai" indent flag
// on the left (no yank count is shown), "Line L/N Col C" right-aligned.
// A left part wider than the row is cut from the left behind a '<'.
func (r *Renderer) drawStatusLine(d term.ScreenDriver, ctx *editor.Context, y, cols int) {
	th := ctx.Theme
	st := r.styles.Style(th.StatusLine)
	for x := 0; x < cols; x++ {
		d.SetContent(x, y, ' ', nil, st)
	}

	b := ctx.Registry.Active()
	left := statusLeft(b)
	right := statusRight(b)

	leftRunes := []rune(left)
	if len(leftRunes) > cols {
		leftRunes = append([]rune{'<'}, leftRunes[len(leftRunes)-cols+1:]...)
	}
	for i, rn := range leftRunes {
		if i >= cols {
			break
		}
		d.SetContent(i, y, rn, nil, st)
	}

	rightRunes := []rune(right)
	start := cols - len(rightRunes)
	if start < len(leftRunes)+1 {
		start = len(leftRunes) + 1
	}
	for i, rn := range rightRunes {
		x := start + i
		if x >= cols {
			break
		}
		d.SetContent(x, y, rn, nil, st)
	}
}

func statusLeft(b *buffer.Buffer) string {
	name := b.FileName
	if name == "" {
		name = "[No Name]"
	}
	out := name
	if b.Modified() {
		out += " [+]"
	}
	if b.Options.Readonly {
		out += " [ro]"
	}
	if b.Syntax != nil {
		out += " " + b.Syntax.Name
	}
	if b.Options.ExpandTab {
		out += " spaces"
	} else {
		out += " tabs"
	}
	if b.Options.AutoIndent {
		out += " ai"
	}
	return out
}

func statusRight(b *buffer.Buffer) string {
	return fmt.Sprintf("Line %d/%d Col %d ", b.CursorLine, b.LineCount(), b.CursorCol)
}

// modeLabel is the command-line mode string spec.md §4.5/§4.7 shows,
// e.g. "-- INSERT --".
func modeLabel(m buffer.Mode) string {
	switch m {
	case buffer.Insert:
		return "-- INSERT --"
	case buffer.Replace:
		return "-- REPLACE --"
	case buffer.LineSelection:
		return "-- VISUAL LINE --"
	case buffer.CharSelection:
		return "-- VISUAL --"
	case buffer.ColSelection:
		return "-- VISUAL BLOCK --"
	case buffer.ColInsert:
		return "-- INSERT (BLOCK) --"
	default:
		return ""
	}
}

// drawCommandLine paints row H (spec.md §4.5): the mode label, or a
// ":"/"/"/"?" prompt echo, or a transient status/error message.
func (r *Renderer) drawCommandLine(d term.ScreenDriver, ctx *editor.Context, y, cols int) {
	th := ctx.Theme
	pal := th.CommandLine
	if ctx.Err {
		pal = th.Error
	}
	st := r.styles.Style(pal)
	for x := 0; x < cols; x++ {
		d.SetContent(x, y, ' ', nil, st)
	}

	text := ctx.Message
	if text == "" {
		text = modeLabel(ctx.Registry.Active().Mode)
	}
	for i, rn := range []rune(text) {
		if i >= cols {
			break
		}
		d.SetContent(i, y, rn, nil, st)
	}
}
