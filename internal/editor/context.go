package editor

import (
	"github.com/framegrace/bim/internal/histstore"
	"github.com/framegrace/bim/internal/syntax"
	"github.com/framegrace/bim/internal/theme"
)

// Context is the single editor-wide structure threading the process's
// global mutable state through operations (spec.md §9): the yank
// register, the buffer registry, the syntax registry, the active theme,
// and the optional persisted command-history store. Signal handlers
// read it through this one controlled entry point rather than touching
// package-level variables directly.
type Context struct {
	Registry *Registry
	Yank     Yank
	Syntax   *syntax.Registry
	Theme    *theme.Theme

	// History persists :-command and search history across sessions
	// (a SPEC_FULL.md supplement); nil when disabled or unavailable.
	History *histstore.Store

	// Capabilities holds the terminal-capability flags probed/overridden
	// for this session (spec.md §6).
	Capabilities Capabilities

	// Message is a transient status/error string shown on the command
	// line (spec.md §4.5/§7); Err reports whether it should use the
	// error palette.
	Message string
	Err     bool

	// PendingQuit signals the run loop to exit cleanly.
	PendingQuit bool

	// HLParen/HLCurrent mirror the ~/.bimrc hlparen/hlcurrent keys
	// (spec.md §6): whether paren-matching and current-line highlight
	// are active this session.
	HLParen   bool
	HLCurrent bool

	// ShiftScrolling/ScrollAmount mirror the ~/.bimrc shiftscrolling/
	// scrollamount keys, consulted by the mouse-wheel handler (spec.md
	// §4.6): shift the viewport when true, otherwise move the cursor.
	ShiftScrolling bool
	ScrollAmount   int

	// Git mirrors ~/.bimrc's git key: whether the git-diff child process
	// runs on open/save to annotate gutter rev_status (spec.md §6).
	Git bool
}

// Capabilities mirrors spec.md §6's -O flags and TERM-based probing.
type Capabilities struct {
	AltScreen bool
	Scroll    bool
	Mouse     bool
	Unicode   bool
	Bright    bool
	HideShow  bool
	Syntax    bool
	History   bool
	Title     bool
	BCE       bool // background color erase
}

// DefaultCapabilities returns every capability enabled, the baseline
// before TERM-based probing or -O overrides are applied.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		AltScreen: true, Scroll: true, Mouse: true, Unicode: true,
		Bright: true, HideShow: true, Syntax: true, History: true,
		Title: true, BCE: true,
	}
}

// NewContext builds a fresh editor-wide context.
func NewContext() *Context {
	return &Context{
		Registry:     NewRegistry(),
		Syntax:       syntax.NewRegistry(),
		Theme:        theme.Default(),
		Capabilities: DefaultCapabilities(),
		HLParen:      true,
		HLCurrent:    true,
		ScrollAmount: 5,
		Git:          true,
	}
}

// SetMessage records a transient status-line message.
func (c *Context) SetMessage(msg string) { c.Message, c.Err = msg, false }

// SetError records a transient error message for the error palette.
func (c *Context) SetError(msg string) { c.Message, c.Err = msg, true }

// ClearMessage clears the transient status line.
func (c *Context) ClearMessage() { c.Message, c.Err = "", false }
