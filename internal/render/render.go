package render

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/framegrace/bim/internal/buffer"
	"github.com/framegrace/bim/internal/cell"
	"github.com/framegrace/bim/internal/editor"
	"github.com/framegrace/bim/internal/term"
	"github.com/framegrace/bim/internal/theme"
)

// Renderer paints the whole editor frame: tab bar, one or two text-area
// panes, status line, command line (spec.md §4.5). It is pull-based —
// it reads current buffer/editor state each frame rather than
// maintaining its own display list, following the teacher's rendering
// model (texel/screen.go).
type Renderer struct {
	styles *StyleCache
}

// New returns a renderer with a fresh style cache.
func New() *Renderer { return &Renderer{styles: NewStyleCache()} }

// Frame draws one full frame for the given driver and editor context.
// rows/cols are the terminal's current dimensions.
func (r *Renderer) Frame(d term.ScreenDriver, ctx *editor.Context, cols, rows int) {
	th := ctx.Theme
	ctx.Registry.Layout(cols)

	r.drawTabBar(d, ctx, cols)

	textRows := rows - 3 // tab bar, status line, command line
	if textRows < 0 {
		textRows = 0
	}

	reg := ctx.Registry
	if !reg.SplitActive {
		b := reg.At(reg.LeftIndex)
		r.drawPane(d, ctx, b, 1, textRows, b == reg.Active())
	} else {
		left := reg.At(reg.LeftIndex)
		right := reg.At(reg.RightIndex)
		r.drawPane(d, ctx, left, 1, textRows, !reg.FocusRight)
		r.drawPane(d, ctx, right, 1, textRows, reg.FocusRight)
	}

	r.drawStatusLine(d, ctx, rows-2, cols)
	r.drawCommandLine(d, ctx, rows-1, cols)

	d.SetStyle(r.styles.Style(th.Plain))
}

func (r *Renderer) drawTabBar(d term.ScreenDriver, ctx *editor.Context, cols int) {
	th := ctx.Theme
	bg := r.styles.Style(th.TabBar)
	for x := 0; x < cols; x++ {
		d.SetContent(x, 0, ' ', nil, bg)
	}

	active := ctx.Registry.Active()
	x := 0
	for i, b := range ctx.Registry.All() {
		name := filepath.Base(b.FileName)
		if name == "" || name == "." {
			name = "[No Name]"
		}
		if b.Modified() {
			name += " +"
		}
		st := r.styles.Style(th.TabInactive)
		if b == active {
			st = r.styles.Style(th.TabActive).Bold(true)
		} else {
			st = st.Underline(true)
		}
		for _, rn := range " " + name + " " {
			if x >= cols {
				break
			}
			d.SetContent(x, 0, rn, nil, st)
			x++
		}
		if i < ctx.Registry.Count()-1 && x < cols {
			d.SetContent(x, 0, '|', nil, bg)
			x++
		}
	}
}

// TabBoundaries returns each open buffer's [start,end) screen-column span
// in the tab bar, in registry order, mirroring drawTabBar's layout exactly.
// Used by the mouse-click handler to resolve a row-0 click onto a tab
// (spec.md §4.6).
func TabBoundaries(ctx *editor.Context, cols int) [][2]int {
	out := make([][2]int, 0, ctx.Registry.Count())
	x := 0
	for i, b := range ctx.Registry.All() {
		name := filepath.Base(b.FileName)
		if name == "" || name == "." {
			name = "[No Name]"
		}
		if b.Modified() {
			name += " +"
		}
		start := x
		w := len([]rune(" " + name + " "))
		end := start + w
		if end > cols {
			end = cols
		}
		out = append(out, [2]int{start, end})
		x = end
		if i < ctx.Registry.Count()-1 && x < cols {
			x++
		}
	}
	return out
}

// gutterWidth returns the line-number field width: the number of decimal
// digits in lineCount plus one, never less than 2. For a lineCount that
// is an exact power of ten (10, 100, ...) this is one column wider than
// max(2, ceil(log10(line_count))+1).
func gutterWidth(lineCount int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	digits := int(math.Floor(math.Log10(float64(lineCount)))) + 1
	w := digits + 1
	if w < 2 {
		w = 2
	}
	return w
}

func (r *Renderer) drawPane(d term.ScreenDriver, ctx *editor.Context, b *buffer.Buffer, topRow, height int, focused bool) {
	th := ctx.Theme
	left := b.Left
	width := b.Width
	if width <= 0 {
		return
	}

	numW := gutterWidth(b.LineCount())
	textW := width - 1 - numW
	if textW < 1 {
		textW = 1
	}

	for row := 0; row < height; row++ {
		lineNo := b.Offset + row + 1
		screenY := topRow + row
		if lineNo > b.LineCount() {
			r.clearRow(d, left, screenY, width, th.Plain)
			continue
		}
		l := b.Line(lineNo)
		r.drawGutter(d, left, screenY, l.RevStatus, th)
		r.drawLineNumber(d, left+1, screenY, numW, lineNo, lineNo == b.CursorLine, b.COffset > 0, th)
		r.drawLineCells(d, ctx, b, l, left+1+numW, screenY, textW, lineNo == b.CursorLine && focused)
	}
}

func (r *Renderer) clearRow(d term.ScreenDriver, left, y, width int, pal theme.Palette) {
	st := r.styles.Style(pal)
	for x := left; x < left+width; x++ {
		d.SetContent(x, y, ' ', nil, st)
	}
}

func (r *Renderer) drawGutter(d term.ScreenDriver, left, y int, rs cell.RevStatus, th *theme.Theme) {
	var pal theme.Palette
	switch rs {
	case cell.RevAdded:
		pal = th.GutterAdded
	case cell.RevModifiedUnsaved:
		pal = th.GutterModifiedUnsaved
	case cell.RevModifiedCommitted:
		pal = th.GutterModifiedCommitted
	case cell.RevDeletedAbove:
		pal = th.GutterDeletedAbove
	case cell.RevModifiedAndDeletedAbove:
		pal = th.GutterModifiedAndDeletedAbove
	default:
		pal = th.GutterUnchanged
	}
	d.SetContent(left, y, ' ', nil, r.styles.Style(pal))
}

func (r *Renderer) drawLineNumber(d term.ScreenDriver, left, y, width, lineNo int, current, scrolled bool, th *theme.Theme) {
	pal := th.LineNumber
	if current {
		pal = theme.Palette{Fg: pal.Fg, Bg: th.CurrentLineBg}
	}
	st := r.styles.Style(pal)
	text := fmt.Sprintf("%*d", width, lineNo)
	runes := []rune(text)
	if scrolled && len(runes) > 0 {
		runes[0] = '<'
	}
	for i, rn := range runes {
		if i >= width {
			break
		}
		d.SetContent(left+i, y, rn, nil, st)
	}
}

func (r *Renderer) drawLineCells(d term.ScreenDriver, ctx *editor.Context, b *buffer.Buffer, l *cell.Line, left, y, width int, currentLine bool) {
	th := ctx.Theme
	unicode := ctx.Capabilities.Unicode
	tabstop := b.Options.Tabstop

	basePal := th.Plain
	if currentLine {
		basePal = theme.Palette{Fg: basePal.Fg, Bg: th.CurrentLineBg}
	}
	baseStyle := r.styles.Style(basePal)

	cells := l.Cells()
	col := 0 // screen column within the text area, before COffset skip
	screenX := left
	skip := b.COffset

	overflowed := false
	for i := 0; i < len(cells) && screenX < left+width; i++ {
		c := cells[i]
		w := c.RenderWidth(col, tabstop)
		if col < skip {
			col += w
			continue
		}
		st := r.styles.Style(r.cellPalette(c, basePal, th))
		g := RenderGlyph(c.Codepoint, w, unicode)
		if i == len(cells)-1 && c.Codepoint == ' ' {
			g = TrailingSpaceGlyph()
			st = r.styles.Style(theme.Palette{Fg: th.Comment.Fg, Bg: basePal.Bg})
		}
		for _, rn := range g.Text {
			if screenX >= left+width-1 && i < len(cells)-1 {
				overflowed = true
				break
			}
			d.SetContent(screenX, y, rn, nil, st)
			screenX++
		}
		if overflowed {
			break
		}
		col += w
	}
	for screenX < left+width {
		d.SetContent(screenX, y, ' ', nil, baseStyle)
		screenX++
	}
	if overflowed {
		d.SetContent(left+width-2, y, '-', nil, baseStyle)
		d.SetContent(left+width-1, y, '>', nil, baseStyle)
	}
}

// cellPalette resolves a cell's effective palette from its flags,
// following spec.md §4.5's precedence: SELECT overlay, then SEARCH or
// notice-class, then syntax class, falling back to the current-line
// background carried in basePal.
func (r *Renderer) cellPalette(c cell.Cell, basePal theme.Palette, th *theme.Theme) theme.Palette {
	if c.Flags&cell.FlagSelect != 0 {
		return th.Select
	}
	class := c.Flags.Class()
	if c.Flags&cell.FlagSearch != 0 || class == cell.FlagNotice {
		return th.Search
	}
	fg := classPalette(class, th).Fg
	return theme.Palette{Fg: fg, Bg: basePal.Bg}
}

func classPalette(class cell.Flag, th *theme.Theme) theme.Palette {
	switch class {
	case cell.FlagKeyword:
		return th.Keyword
	case cell.FlagString:
		return th.String
	case cell.FlagComment:
		return th.Comment
	case cell.FlagType:
		return th.Type
	case cell.FlagPragma:
		return th.Pragma
	case cell.FlagNumeral:
		return th.Numeral
	case cell.FlagString2:
		return th.String2
	case cell.FlagDiffPlus:
		return th.DiffPlus
	case cell.FlagDiffMinus:
		return th.DiffMinus
	case cell.FlagBold:
		return th.Bold
	case cell.FlagLink:
		return th.Link
	case cell.FlagEscape:
		return th.Escape
	default:
		return th.Plain
	}
}
