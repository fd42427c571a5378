// Package input implements the byte-level decoder of spec.md §4.6: a
// minimal UTF-8 accept/reject DFA, explicit ESC/CSI parsing with
// timeout-based ESC-alone detection, and classical X10 mouse packet
// decoding. It deliberately does not depend on any terminal library's
// own key-decoding — internal/term supplies only raw bytes (via
// RawReader) and raw-mode setup, keeping this package the single
// source of truth for key semantics, independently testable against a
// plain []byte source.
package input

// EventKind discriminates the shapes of decoded input.
type EventKind int

const (
	EventNone EventKind = iota
	EventRune
	EventNav
	EventMouse
)

// NavKey enumerates the navigation keys spec.md §4.6 decodes from CSI
// final bytes.
type NavKey int

const (
	NavUp NavKey = iota
	NavDown
	NavLeft
	NavRight
	NavHome
	NavEnd
	NavPageUp
	NavPageDown
	NavShiftTab
	NavUnknown
)

// NavModifier is the CSI parameter-1 prefix before a direction: plain,
// word-move (5), split-resize (3), or cross-split focus (4).
type NavModifier int

const (
	ModNone NavModifier = iota
	ModWord
	ModSplitResize
	ModCrossSplitFocus
)

// MouseButton mirrors the X10 packet's button byte after the offset-32
// decode: 0-2 are left/middle/right, 3 is release/click-resolve, 64/65
// are wheel up/down (spec.md §4.6).
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseRelease
	MouseWheelUp
	MouseWheelDown
	MouseUnknown
)

// Event is the decoder's single output shape; exactly one of the
// payload fields is meaningful, selected by Kind.
type Event struct {
	Kind EventKind

	Rune rune // EventRune

	Nav NavKey     // EventNav
	Mod NavModifier // EventNav

	MouseBtn  MouseButton // EventMouse
	MouseX    int         // EventMouse, 0-based
	MouseY    int         // EventMouse, 0-based
}
