// Package theme implements the color theme string grammar of spec.md
// §6: a color is either "@N" (ANSI index 0-17, 10-17 bright) or a raw
// SGR parameter tail ("5;N" 256-color, "2;R;G;B" direct color, with an
// optional trailing ";1" or ";4" for bold/underline).
package theme

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a parsed theme color ready to be rendered into an SGR
// sequence by internal/render.
type Color struct {
	raw       string // the original spec string, for round-tripping :set
	ansiIndex int     // valid when kind == kindAnsi
	sgrTail   string  // valid when kind == kindSGR; everything after "<ctrl>;"
	bold      bool
	underline bool
	kind      colorKind
}

type colorKind int

const (
	kindAnsi colorKind = iota
	kindSGR
)

// Parse reads one theme color string (spec.md §6's grammar).
func Parse(s string) Color {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "@") {
		idx, err := strconv.Atoi(s[1:])
		if err != nil || idx < 0 || idx > 17 {
			idx = 0
		}
		return Color{raw: s, kind: kindAnsi, ansiIndex: idx}
	}
	parts := strings.Split(s, ";")
	bold, underline := false, false
	for len(parts) > 0 {
		last := parts[len(parts)-1]
		if last == "1" {
			bold = true
			parts = parts[:len(parts)-1]
			continue
		}
		if last == "4" {
			underline = true
			parts = parts[:len(parts)-1]
			continue
		}
		break
	}
	return Color{raw: s, kind: kindSGR, sgrTail: strings.Join(parts, ";"), bold: bold, underline: underline}
}

// FgSGR returns the foreground SGR parameter sequence for this color:
// "@"-index colors convert to 3x/9x forms, SGR tails get a "38;" prefix.
// cmd/bim's colored dump writes it as `ESC[0;<fg>;<bg>m`; the screen
// renderer maps colors through tcell instead.
func (c Color) FgSGR() string {
	if c.kind == kindAnsi {
		if c.ansiIndex >= 10 {
			return fmt.Sprintf("9%d", c.ansiIndex-10)
		}
		return fmt.Sprintf("3%d", c.ansiIndex)
	}
	return "38;" + c.sgrTail
}

// BgSGR returns the background SGR parameter sequence.
func (c Color) BgSGR() string {
	if c.kind == kindAnsi {
		if c.ansiIndex >= 10 {
			return fmt.Sprintf("10%d", c.ansiIndex-10)
		}
		return fmt.Sprintf("4%d", c.ansiIndex)
	}
	return "48;" + c.sgrTail
}

// Bold/Underline report the trailing style bits parsed from an SGR tail.
func (c Color) Bold() bool      { return c.bold }
func (c Color) Underline() bool { return c.underline }

// String returns the original spec string; render's style cache keys on
// it and parses SGR tails from it.
func (c Color) String() string { return c.raw }

// Palette is fg/bg pair used for one rendering role.
type Palette struct {
	Fg, Bg Color
}

// Theme is the full set of named palettes the renderer consults
// (spec.md §4.5/§6). Names mirror spec.md's vocabulary; no rc-file key
// sets an individual palette.
type Theme struct {
	Name string

	Keyword, String, Comment, Type, Pragma, Numeral, String2 Palette
	DiffPlus, DiffMinus, Notice, Bold, Link, Escape          Palette
	Plain                                                    Palette

	Select Palette
	Search Palette

	GutterUnchanged, GutterAdded, GutterModifiedUnsaved Palette
	GutterModifiedCommitted, GutterDeletedAbove         Palette
	GutterModifiedAndDeletedAbove                       Palette

	TabActive, TabInactive, TabBar Palette
	StatusLine, CommandLine        Palette
	Error                          Palette
	CurrentLineBg                  Color
	LineNumber                     Palette
}

func p(fg, bg string) Palette { return Palette{Fg: Parse(fg), Bg: Parse(bg)} }

// Default returns the editor's built-in 256-color-friendly theme. It is
// the only theme: a ~/.bimrc `theme=` value is parsed into rc.Config but
// nothing selects a theme by it (theme *tables* themselves are spec.md
// §1's out-of-scope "theme tables"; this default is the minimal one the
// core needs to render anything at all).
func Default() *Theme {
	return &Theme{
		Name:                           "default",
		Plain:                          p("@7", "@0"),
		Keyword:                        p("@12", "@0"),
		String:                         p("@2", "@0"),
		Comment:                        p("@8", "@0"),
		Type:                           p("@14", "@0"),
		Pragma:                         p("@5", "@0"),
		Numeral:                        p("@3", "@0"),
		String2:                        p("@10", "@0"),
		DiffPlus:                       p("@2", "@0"),
		DiffMinus:                      p("@1", "@0"),
		Notice:                         p("@3", "@0"),
		Bold:                           p("@15", "@0"),
		Link:                           p("@13", "@0"),
		Escape:                         p("@11", "@0"),
		Select:                         p("@0", "@7"),
		Search:                         p("@0", "@3"),
		GutterUnchanged:                p("@0", "@0"),
		GutterAdded:                    p("@0", "@2"),
		GutterModifiedUnsaved:          p("@0", "@4"),
		GutterModifiedCommitted:        p("@0", "@12"),
		GutterDeletedAbove:             p("@0", "@1"),
		GutterModifiedAndDeletedAbove:  p("@0", "@5"),
		TabActive:                      p("@15", "@0"),
		TabInactive:                    p("@8", "@8"),
		TabBar:                         p("@7", "@8"),
		StatusLine:                     p("@0", "@7"),
		CommandLine:                    p("@7", "@0"),
		Error:                          p("@15", "@1"),
		CurrentLineBg:                  Parse("@8"),
		LineNumber:                     p("@8", "@0"),
	}
}
