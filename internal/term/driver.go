// Package term wraps github.com/gdamore/tcell/v2 for raw-mode terminal
// setup/teardown, the alternate screen, and cell output, grounded on
// the teacher's texel.ScreenDriver/TcellScreenDriver pair. Key and
// mouse byte decoding itself is deliberately NOT done here — that is
// internal/input's hand-rolled UTF-8/CSI/mouse state machine, which
// reads raw bytes off a RawReader sourced from this package.
package term

import "github.com/gdamore/tcell/v2"

// ScreenDriver is the subset of tcell.Screen the renderer and run loop
// need, mirroring the teacher's texel.ScreenDriver shape so the same
// fake-driver testing pattern applies here.
type ScreenDriver interface {
	Init() error
	Fini()
	Size() (int, int)
	SetStyle(style tcell.Style)
	HideCursor()
	ShowCursor(x, y int)
	Show()
	PollEvent() tcell.Event
	PostEvent(tcell.Event) error
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
	GetContent(x, y int) (rune, []rune, tcell.Style, int)
	EnableMouse()
	DisableMouse()
}

// TcellDriver adapts a tcell.Screen to ScreenDriver.
type TcellDriver struct {
	screen tcell.Screen
}

// NewTcellDriver wraps the provided screen.
func NewTcellDriver(screen tcell.Screen) *TcellDriver {
	return &TcellDriver{screen: screen}
}

// NewDefaultDriver creates and wraps a screen for the current terminal
// ($TERM-probed by tcell), without initializing it yet.
func NewDefaultDriver() (*TcellDriver, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &TcellDriver{screen: s}, nil
}

func (d *TcellDriver) Init() error                { return d.screen.Init() }
func (d *TcellDriver) Fini()                      { d.screen.Fini() }
func (d *TcellDriver) Size() (int, int)           { return d.screen.Size() }
func (d *TcellDriver) SetStyle(s tcell.Style)     { d.screen.SetStyle(s) }
func (d *TcellDriver) HideCursor()                { d.screen.HideCursor() }
func (d *TcellDriver) ShowCursor(x, y int)        { d.screen.ShowCursor(x, y) }
func (d *TcellDriver) Show()                      { d.screen.Show() }
func (d *TcellDriver) PollEvent() tcell.Event     { return d.screen.PollEvent() }
func (d *TcellDriver) PostEvent(e tcell.Event) error { return d.screen.PostEvent(e) }
func (d *TcellDriver) EnableMouse()               { d.screen.EnableMouse() }
func (d *TcellDriver) DisableMouse()              { d.screen.DisableMouse() }

func (d *TcellDriver) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	d.screen.SetContent(x, y, mainc, combc, style)
}

func (d *TcellDriver) GetContent(x, y int) (rune, []rune, tcell.Style, int) {
	return d.screen.GetContent(x, y)
}

// Underlying exposes the wrapped tcell.Screen for code paths that need
// it directly (signal-aware resize channel registration in cmd/bim).
func (d *TcellDriver) Underlying() tcell.Screen { return d.screen }
