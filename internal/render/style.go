// Package render paints buffer/editor state onto a term.ScreenDriver,
// following spec.md §4.5: tab bar, text area (gutter + line numbers +
// cells), status line, command line. Style construction is cached the
// way the teacher's Desktop.getStyle does (texel/desktop.go), since
// rebuilding a tcell.Style per cell every frame is measurable overhead
// at a few thousand cells per redraw.
package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/bim/internal/theme"
)

type styleKey struct {
	fg, bg          string
	bold, underline bool
}

// StyleCache memoizes tcell.Style construction from theme.Palette
// values, mirroring texel/desktop.go's getStyle.
type StyleCache struct {
	cache map[styleKey]tcell.Style
}

// NewStyleCache returns an empty cache.
func NewStyleCache() *StyleCache {
	return &StyleCache{cache: make(map[styleKey]tcell.Style)}
}

// Style returns (building and caching if needed) the tcell.Style for
// one theme palette.
func (c *StyleCache) Style(pal theme.Palette) tcell.Style {
	key := styleKey{
		fg:        pal.Fg.String(),
		bg:        pal.Bg.String(),
		bold:      pal.Fg.Bold(),
		underline: pal.Fg.Underline(),
	}
	if st, ok := c.cache[key]; ok {
		return st
	}
	st := tcell.StyleDefault.Foreground(sgrColor(pal.Fg)).Background(sgrColor(pal.Bg))
	if key.bold {
		st = st.Bold(true)
	}
	if key.underline {
		st = st.Underline(true)
	}
	c.cache[key] = st
	return st
}

// sgrColor maps a theme.Color onto the nearest tcell.Color. "@N" ANSI
// indices map onto tcell's palette colors directly; SGR tails ("5;N",
// "2;R;G;B") are parsed into 256-color or direct-color form.
func sgrColor(c theme.Color) tcell.Color {
	s := c.String()
	if len(s) == 0 {
		return tcell.ColorDefault
	}
	if s[0] == '@' {
		idx := 0
		for _, r := range s[1:] {
			if r < '0' || r > '9' {
				break
			}
			idx = idx*10 + int(r-'0')
		}
		if idx >= 0 && idx < len(ansiPalette) {
			return ansiPalette[idx]
		}
		return tcell.ColorDefault
	}
	return parseSGRTail(s)
}

// ansiPalette maps indices 0-17 (8 normal + 8 bright + 2 extra defaults)
// onto tcell's named colors, per spec.md §6's "0-17 with 10-17 bright".
var ansiPalette = [18]tcell.Color{
	tcell.ColorBlack, tcell.ColorMaroon, tcell.ColorGreen, tcell.ColorOlive,
	tcell.ColorNavy, tcell.ColorPurple, tcell.ColorTeal, tcell.ColorSilver,
	tcell.ColorDefault, tcell.ColorDefault,
	tcell.ColorGray, tcell.ColorRed, tcell.ColorLime, tcell.ColorYellow,
	tcell.ColorBlue, tcell.ColorFuchsia, tcell.ColorAqua, tcell.ColorWhite,
}

func parseSGRTail(s string) tcell.Color {
	nums := splitSemicolons(s)
	if len(nums) == 0 {
		return tcell.ColorDefault
	}
	switch nums[0] {
	case 5:
		if len(nums) >= 2 {
			return tcell.PaletteColor(nums[1])
		}
	case 2:
		if len(nums) >= 4 {
			return tcell.NewRGBColor(int32(nums[1]), int32(nums[2]), int32(nums[3]))
		}
	}
	return tcell.ColorDefault
}

func splitSemicolons(s string) []int {
	var out []int
	cur, have := 0, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			cur = cur*10 + int(c-'0')
			have = true
		case c == ';':
			out = append(out, cur)
			cur, have = 0, false
		}
	}
	if have || len(out) == 0 {
		out = append(out, cur)
	}
	return out
}
