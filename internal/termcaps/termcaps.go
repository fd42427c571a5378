// Package termcaps probes and overrides terminal capability flags by
// `$TERM` name and by the CLI's `-O` flag (spec.md §6), one of the
// thin external collaborators §1 scopes out of the core. Grounded on
// registry/registry.go's flat name-keyed table idiom, generalized from
// a plugin/app registry to a capability-disabling table.
package termcaps

import "github.com/framegrace/bim/internal/editor"

// disableTable maps a $TERM name to the capability flags it cannot
// support (spec.md §6's exact table).
var disableTable = map[string][]string{
	"linux":     {"noscroll"},
	"cons25":    {"nohideshow", "noaltscreen", "nomouse", "nounicode", "nobright"},
	"sortix":    {"notitle"},
	"tmux":      {"noscroll", "nobce"},
	"screen":    {}, // disables 24-bit/italic, which this flag set
	// (Capabilities) has no field for, so the entry changes nothing.
	"toaru-vga": {}, // disables 256-color/24-bit, likewise no matching field.
}

// ProbeByTermName applies termName's capability restrictions on top of
// caps, returning the adjusted value. Unknown terminal names are
// passed through unchanged (full capability set assumed).
func ProbeByTermName(caps editor.Capabilities, termName string) editor.Capabilities {
	for _, name := range disableTable[termName] {
		caps = ApplyFlag(caps, name)
	}
	return caps
}

// ApplyFlag applies one `-O NAME` token (spec.md §6's exact list plus
// the single enabling exception `history`) to caps.
func ApplyFlag(caps editor.Capabilities, name string) editor.Capabilities {
	switch name {
	case "noaltscreen":
		caps.AltScreen = false
	case "noscroll":
		caps.Scroll = false
	case "nomouse":
		caps.Mouse = false
	case "nounicode":
		caps.Unicode = false
	case "nobright":
		caps.Bright = false
	case "nohideshow":
		caps.HideShow = false
	case "nosyntax":
		caps.Syntax = false
	case "nohistory":
		caps.History = false
	case "notitle":
		caps.Title = false
	case "nobce":
		caps.BCE = false
	case "history":
		caps.History = true
	}
	return caps
}

// KnownFlag reports whether name is a recognized -O token, used by
// cmd/bim to reject unrecognized options with exit code 1.
func KnownFlag(name string) bool {
	switch name {
	case "noaltscreen", "noscroll", "nomouse", "nounicode", "nobright",
		"nohideshow", "nosyntax", "nohistory", "notitle", "nobce", "history":
		return true
	}
	return false
}
