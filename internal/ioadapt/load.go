// Package ioadapt implements spec.md §6's external I/O adapters: file
// load/save, the `~/.biminfo` cursor-position cache, and the git-diff
// consumer that annotates gutter rev_status. These are deliberately
// thin (§1 names them external collaborators, not core), grounded on
// config/store.go's read-or-default loading shape and
// config/paths.go's XDG path helpers, generalized from JSON config
// files to line-oriented text formats.
package ioadapt

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/framegrace/bim/internal/buffer"
	"github.com/framegrace/bim/internal/syntax"
)

// UTF8DFA is a byte-at-a-time UTF-8 decoder matching internal/input's
// decoder shape (spec.md §6: "Load decodes byte-at-a-time via the UTF-8
// DFA; invalid bytes are silently skipped"). Kept as its own small copy
// rather than exported from internal/input: the input decoder's Step
// reports a rejected byte to its caller (which discards it), while this
// one drops it itself and reports only ok=false. Exported so any other byte-stream source
// (stdin, in particular) can decode the same way.
type UTF8DFA struct {
	state int // 0 accept, 1..3 continuation bytes remaining
	r      rune
	need   int
}

// Step feeds one byte into the decoder, returning a decoded rune and ok
// once a full code point (or ASCII byte) has been accumulated.
func (d *UTF8DFA) Step(b byte) (r rune, ok bool) {
	if d.state == 0 {
		switch {
		case b < 0x80:
			return rune(b), true
		case b&0xE0 == 0xC0:
			d.r, d.need, d.state = rune(b&0x1F), 1, 1
		case b&0xF0 == 0xE0:
			d.r, d.need, d.state = rune(b&0x0F), 2, 2
		case b&0xF8 == 0xF0:
			d.r, d.need, d.state = rune(b&0x07), 3, 3
		default:
			*d = UTF8DFA{}
		}
		return 0, false
	}
	if b&0xC0 != 0x80 {
		*d = UTF8DFA{}
		return 0, false
	}
	d.r = d.r<<6 | rune(b&0x3F)
	d.need--
	if d.need == 0 {
		r = d.r
		*d = UTF8DFA{}
		return r, true
	}
	return 0, false
}

// Load reads path, decoding UTF-8 byte-at-a-time and splitting on '\n'
// into lines, and returns a fresh buffer with syntax detected from the
// file's extension or shebang. A trailing empty line produced by a
// final '\n' is stripped (spec.md §6). Returns an empty-buffer handle
// (not an error) for a nonexistent path, matching "open as new file"
// editor convention; other I/O errors are returned.
func Load(path string, reg *syntax.Registry) (*buffer.Buffer, error) {
	b := buffer.New(reg)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		b.FileName = path
		return b, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ioadapt: open %s: %w", path, err)
	}
	defer f.Close()

	b.SetLoading(true)
	r := bufio.NewReader(f)
	var dfa UTF8DFA
	lineNo, col := 1, 1
	endsWithNewline := false
	firstLine := make([]byte, 0, 64)
	firstLineDone := false

	buf := make([]byte, 32*1024)
	for {
		n, rerr := r.Read(buf)
		for i := 0; i < n; i++ {
			bb := buf[i]
			if !firstLineDone {
				if bb == '\n' {
					firstLineDone = true
				} else {
					firstLine = append(firstLine, bb)
				}
			}
			cp, ok := dfa.Step(bb)
			if !ok {
				continue
			}
			endsWithNewline = cp == '\n'
			if cp == '\n' {
				b.AddLine(lineNo+1, nil)
				lineNo++
				col = 1
				continue
			}
			b.InsertCell(lineNo, col, cp, nil)
			col++
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			b.SetLoading(false)
			return nil, fmt.Errorf("ioadapt: read %s: %w", path, rerr)
		}
	}

	if endsWithNewline && lineNo > 1 && b.Line(lineNo).Len() == 0 {
		b.RemoveLine(lineNo, nil)
	}

	b.FileName = path
	b.SetLoading(false)
	b.CursorLine, b.CursorCol = 1, 1

	if def := reg.DetectByFilename(path, string(firstLine)); def != nil {
		b.SetSyntax(def)
	} else {
		b.RelexAll()
	}
	b.MarkSaved()
	return b, nil
}
