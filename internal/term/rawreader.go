package term

import (
	"io"
	"os"

	xterm "golang.org/x/term"
)

// RawReader is the raw byte source internal/input's UTF-8/CSI/mouse
// decoder reads from. tcell owns putting the terminal into raw mode and
// the alternate screen; this reader pulls the same fd's bytes directly
// so the spec's byte-level decoder (§4.6) stays the single source of
// truth for key semantics instead of going through tcell's own event
// translation.
type RawReader struct {
	r io.Reader
}

// NewRawReader wraps any io.Reader (os.Stdin in production, a
// bytes.Reader in tests).
func NewRawReader(r io.Reader) *RawReader { return &RawReader{r: r} }

// ReadByte reads a single raw byte, blocking until one is available.
func (rr *RawReader) ReadByte() (byte, error) {
	var buf [1]byte
	_, err := io.ReadFull(rr.r, buf[:])
	return buf[0], err
}

// StdinRawReader returns a RawReader over os.Stdin, the production
// source once the driver has put the terminal into raw mode.
func StdinRawReader() *RawReader { return NewRawReader(os.Stdin) }

// Size reports the terminal's current column/row count, preferring the
// ScreenDriver's own probe and falling back to golang.org/x/term's
// ioctl-based query (spec.md §6: "$COLUMNS/$LINES env vars, else an
// ioctl, else 80x24").
func Size(d ScreenDriver) (cols, rows int) {
	cols, rows = d.Size()
	if cols > 0 && rows > 0 {
		return cols, rows
	}
	if w, h, err := xterm.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		return w, h
	}
	return 80, 24
}
