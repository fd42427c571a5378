package modes

import (
	"github.com/framegrace/bim/internal/buffer"
	"github.com/framegrace/bim/internal/editor"
	"github.com/framegrace/bim/internal/input"
)

// HandleNav dispatches one decoded navigation event (arrow keys,
// home/end, page up/down, shift-tab) to the active split's buffer
// (spec.md §4.6's CSI-derived NavKey events). height is the text area's
// current row count, used for page motions. The modifier prefixes
// (word-move/split-resize/cross-split-focus, spec.md §4.6) are handled
// first since they change what the bare direction means.
func (h *Handler) HandleNav(ctx *editor.Context, ev input.Event, height int) {
	if ev.Mod == input.ModSplitResize {
		resizeSplit(ctx, ev.Nav)
		return
	}
	if ev.Mod == input.ModCrossSplitFocus {
		focusOtherSplit(ctx)
		return
	}

	b := ctx.Registry.Active()

	if ev.Mod == input.ModWord {
		switch ev.Nav {
		case input.NavLeft:
			wordBack(b)
		case input.NavRight:
			wordForward(b)
		}
		return
	}

	switch ev.Nav {
	case input.NavUp:
		moveCursor(b, -1, 0)
	case input.NavDown:
		moveCursor(b, 1, 0)
	case input.NavLeft:
		moveCursor(b, 0, -1)
	case input.NavRight:
		moveCursor(b, 0, 1)
	case input.NavHome:
		b.CursorCol, b.Preferred = 1, 1
	case input.NavEnd:
		b.CursorCol = lineMaxCol(b, b.CursorLine)
		b.Preferred = b.CursorCol
	case input.NavPageUp:
		pageMove(b, -height)
	case input.NavPageDown:
		pageMove(b, height)
	case input.NavShiftTab:
		if b.Mode == buffer.LineSelection {
			indentRange(b, false)
		}
	}
}

func pageMove(b *buffer.Buffer, delta int) {
	b.CursorLine += delta
	if b.CursorLine < 1 {
		b.CursorLine = 1
	}
	if b.CursorLine > b.LineCount() {
		b.CursorLine = b.LineCount()
	}
	b.Offset += delta
	if b.Offset < 0 {
		b.Offset = 0
	}
	maxCol := lineMaxCol(b, b.CursorLine)
	b.CursorCol = b.Preferred
	if b.CursorCol > maxCol {
		b.CursorCol = maxCol
	}
}

// resizeSplit nudges the left pane's SplitPercent (spec.md §4.6's
// split-resize modifier), clamped to [10,90] by Registry.Layout.
func resizeSplit(ctx *editor.Context, nav input.NavKey) {
	if !ctx.Registry.SplitActive {
		return
	}
	switch nav {
	case input.NavLeft:
		ctx.Registry.SplitPercent -= 2
	case input.NavRight:
		ctx.Registry.SplitPercent += 2
	}
}

// focusOtherSplit toggles which split slot has input focus.
func focusOtherSplit(ctx *editor.Context) {
	if !ctx.Registry.SplitActive {
		return
	}
	ctx.Registry.FocusRight = !ctx.Registry.FocusRight
	if ctx.Registry.FocusRight {
		ctx.Registry.SetActive(ctx.Registry.RightIndex)
	} else {
		ctx.Registry.SetActive(ctx.Registry.LeftIndex)
	}
}

// HandleMouse dispatches one decoded mouse event (spec.md §4.6): wheel
// up/down scrolls the view or moves the cursor depending on
// ctx.ShiftScrolling; button-3 click resolves to tab selection (row 0),
// split-focus change (x crossing the split boundary), or cursor
// placement within a pane. tabBoundaries gives each tab's [start,end)
// screen-column span in registry order, for resolving a row-0 click.
func (h *Handler) HandleMouse(ctx *editor.Context, ev input.Event, tabBoundaries [][2]int) {
	switch ev.MouseBtn {
	case input.MouseWheelUp:
		scrollWheel(ctx, -1)
	case input.MouseWheelDown:
		scrollWheel(ctx, 1)
	case input.MouseRelease:
		resolveClick(ctx, ev, tabBoundaries)
	}
}

func scrollWheel(ctx *editor.Context, dir int) {
	b := ctx.Registry.Active()
	amount := ctx.ScrollAmount
	if amount <= 0 {
		amount = 5
	}
	delta := dir * amount
	if ctx.ShiftScrolling {
		b.Offset += delta
		if b.Offset < 0 {
			b.Offset = 0
		}
		if b.Offset > b.LineCount()-1 {
			b.Offset = b.LineCount() - 1
		}
		if b.Offset < 0 {
			b.Offset = 0
		}
		return
	}
	pageMove(b, delta)
}

func resolveClick(ctx *editor.Context, ev input.Event, tabBoundaries [][2]int) {
	if ev.MouseY == 0 {
		for i, span := range tabBoundaries {
			if ev.MouseX >= span[0] && ev.MouseX < span[1] {
				ctx.Registry.SetActive(i)
				return
			}
		}
		return
	}

	reg := ctx.Registry
	if reg.SplitActive {
		right := reg.At(reg.RightIndex)
		if ev.MouseX >= right.Left {
			if !reg.FocusRight {
				focusOtherSplit(ctx)
			}
		} else if reg.FocusRight {
			focusOtherSplit(ctx)
		}
	}

	b := ctx.Registry.Active()
	placeCursorAtScreen(b, ev.MouseX, ev.MouseY-1)
}

// placeCursorAtScreen maps a click's absolute screen coordinates (already
// adjusted for the one-row tab bar, so 0 is the text area's first row)
// back onto a buffer line/column, accounting for the gutter/line-number
// field width and the current vertical/horizontal viewport offsets.
func placeCursorAtScreen(b *buffer.Buffer, screenX, screenY int) {
	if screenY < 0 {
		screenY = 0
	}
	lineNo := b.Offset + screenY + 1
	if lineNo < 1 {
		lineNo = 1
	}
	if lineNo > b.LineCount() {
		lineNo = b.LineCount()
	}
	b.CursorLine = lineNo

	numW := 2
	for n := b.LineCount(); n >= 10; n /= 10 {
		numW++
	}
	col := screenX - (b.Left + 1 + numW) + 1 + b.COffset
	maxCol := lineMaxCol(b, lineNo)
	if col < 1 {
		col = 1
	}
	if col > maxCol {
		col = maxCol
	}
	b.CursorCol = col
	b.Preferred = col
}
