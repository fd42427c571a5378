package input

import "time"

// ByteReader is the minimal raw byte source the decoder needs; a
// *term.RawReader satisfies it in production, a bytes.Reader-backed
// stub satisfies it in tests.
type ByteReader interface {
	ReadByte() (byte, error)
}

const (
	// DefaultTimeout is the poll timeout used while idle (spec.md §4.6).
	DefaultTimeout = 200 * time.Millisecond
	// TightTimeout is used during the insert-redraw loop.
	TightTimeout = 10 * time.Millisecond
)

// Decoder is the stateful byte-level input decoder. It owns a
// background goroutine draining ByteReader into a channel so that
// escape-sequence lookahead can be bounded by a timeout without
// blocking the reader thread forever on a byte that never arrives.
type Decoder struct {
	bytesCh chan byte
	errCh   chan error

	pushback    byte
	hasPushback bool

	utf8 utf8Decoder
}

// NewDecoder starts the background reader over r.
func NewDecoder(r ByteReader) *Decoder {
	d := &Decoder{
		bytesCh: make(chan byte, 64),
		errCh:   make(chan error, 1),
	}
	go d.pump(r)
	return d
}

func (d *Decoder) pump(r ByteReader) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			d.errCh <- err
			return
		}
		d.bytesCh <- b
	}
}

// Unread pushes one byte back, to be returned by the next read call.
// Only one byte of pushback is supported (spec.md §4.6).
func (d *Decoder) Unread(b byte) {
	d.pushback = b
	d.hasPushback = true
}

// readByte reads the next byte, respecting pushback, blocking
// indefinitely (used once a sequence has committed to being read).
func (d *Decoder) readByte() (byte, bool) {
	if d.hasPushback {
		d.hasPushback = false
		return d.pushback, true
	}
	b, ok := <-d.bytesCh
	return b, ok
}

// readByteTimeout reads the next byte, respecting pushback, returning
// ok=false if timeout elapses first or the source closed.
func (d *Decoder) readByteTimeout(timeout time.Duration) (byte, bool) {
	if d.hasPushback {
		d.hasPushback = false
		return d.pushback, true
	}
	select {
	case b, ok := <-d.bytesCh:
		return b, ok
	case <-time.After(timeout):
		return 0, false
	}
}

// Next blocks (with timeout for ESC disambiguation only) until one
// Event is decoded. A raw rune in [0x20,0x7E] or any accepted non-ASCII
// code point is EventRune; ESC sequences and X10 mouse packets produce
// EventNav/EventMouse; EventNone is never returned from Next — callers
// that need idle polling should use NextTimeout instead.
func (d *Decoder) Next(timeout time.Duration) (Event, bool) {
	for {
		b, ok := d.readByteTimeout(timeout)
		if !ok {
			return Event{}, false
		}

		if b == 0x1B {
			ev, handled := d.decodeEscape(timeout)
			if handled {
				return ev, true
			}
			continue
		}

		r, complete, rejected := d.utf8.Step(b)
		if rejected {
			continue
		}
		if !complete {
			continue
		}
		return Event{Kind: EventRune, Rune: r}, true
	}
}

// decodeEscape handles the byte immediately following an ESC. An ESC
// with no following byte before timeout is "ESC alone" (spec.md
// §4.6): it is reported as an EventRune carrying 0x1B so callers can
// treat it as the literal Escape key (leaving insert/selection modes).
func (d *Decoder) decodeEscape(timeout time.Duration) (Event, bool) {
	b, ok := d.readByteTimeout(timeout)
	if !ok {
		return Event{Kind: EventRune, Rune: 0x1B}, true
	}
	if b != '[' {
		d.Unread(b)
		return Event{Kind: EventRune, Rune: 0x1B}, true
	}
	return d.decodeCSI()
}

// decodeCSI parses "digits ; digits ... final" after "ESC [", including
// the special "ESC [ M" X10 mouse packet (spec.md §4.6).
func (d *Decoder) decodeCSI() (Event, bool) {
	b, ok := d.readByte()
	if !ok {
		return Event{}, false
	}
	if b == 'M' {
		return d.decodeMouse()
	}

	var params []int
	cur, haveDigit := 0, false
	for {
		switch {
		case b >= '0' && b <= '9':
			cur = cur*10 + int(b-'0')
			haveDigit = true
		case b == ';':
			params = append(params, cur)
			cur, haveDigit = 0, false
		default:
			if haveDigit || len(params) == 0 {
				params = append(params, cur)
			}
			return d.finishCSI(b, params)
		}
		b, ok = d.readByte()
		if !ok {
			return Event{}, false
		}
	}
}

func (d *Decoder) finishCSI(final byte, params []int) (Event, bool) {
	mod := ModNone
	if len(params) > 0 {
		switch params[0] {
		case 5:
			mod = ModWord
		case 3:
			mod = ModSplitResize
		case 4:
			mod = ModCrossSplitFocus
		}
	}

	var nav NavKey
	switch final {
	case 'A':
		nav = NavUp
	case 'B':
		nav = NavDown
	case 'C':
		nav = NavRight
	case 'D':
		nav = NavLeft
	case 'H':
		nav = NavHome
	case 'F':
		nav = NavEnd
	case 'Z':
		nav = NavShiftTab
	case '~':
		if len(params) > 0 {
			switch params[0] {
			case 5:
				nav = NavPageUp
			case 6:
				nav = NavPageDown
			default:
				nav = NavUnknown
			}
		} else {
			nav = NavUnknown
		}
	default:
		return Event{}, false
	}
	return Event{Kind: EventNav, Nav: nav, Mod: mod}, true
}

// decodeMouse reads the classical X10 mouse packet: three bytes
// (button, x, y), each offset by 32 (spec.md §4.6).
func (d *Decoder) decodeMouse() (Event, bool) {
	bb, ok := d.readByte()
	if !ok {
		return Event{}, false
	}
	xb, ok := d.readByte()
	if !ok {
		return Event{}, false
	}
	yb, ok := d.readByte()
	if !ok {
		return Event{}, false
	}

	code := int(bb) - 32
	x := int(xb) - 32 - 1
	y := int(yb) - 32 - 1

	var btn MouseButton
	switch code {
	case 0:
		btn = MouseLeft
	case 1:
		btn = MouseMiddle
	case 2:
		btn = MouseRight
	case 3:
		btn = MouseRelease
	case 64:
		btn = MouseWheelUp
	case 65:
		btn = MouseWheelDown
	default:
		btn = MouseUnknown
	}
	return Event{Kind: EventMouse, MouseBtn: btn, MouseX: x, MouseY: y}, true
}
