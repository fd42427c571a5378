package ioadapt

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/framegrace/bim/internal/buffer"
)

// Save writes b's lines back to path as UTF-8, appending '\n' after
// each line, following config.Config.Save's MkdirAll-then-WriteFile
// shape generalized to streamed line output. A single-codepoint-0 cell
// is written as a literal NUL byte rather than UTF-8-encoded (spec.md
// §6's NUL preservation special case).
func Save(b *buffer.Buffer, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ioadapt: mkdir %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ioadapt: create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)

	var encodeErr error
	for ln := 1; ln <= b.LineCount(); ln++ {
		for _, c := range b.Line(ln).Cells() {
			if c.Codepoint == 0 {
				if err := w.WriteByte(0); err != nil {
					encodeErr = err
					break
				}
				continue
			}
			var buf [utf8.UTFMax]byte
			n := utf8.EncodeRune(buf[:], c.Codepoint)
			if _, err := w.Write(buf[:n]); err != nil {
				encodeErr = err
				break
			}
		}
		if encodeErr != nil {
			break
		}
		if err := w.WriteByte('\n'); err != nil {
			encodeErr = err
			break
		}
	}

	if encodeErr == nil {
		encodeErr = w.Flush()
	}
	closeErr := f.Close()
	if encodeErr != nil {
		return fmt.Errorf("ioadapt: write %s: %w", path, encodeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("ioadapt: close %s: %w", path, closeErr)
	}
	return nil
}
