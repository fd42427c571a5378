// Package command implements spec.md §2/§4.7's `:`-command interpreter:
// parsing a command line into a verb and arguments, dispatching buffer
// save/close/quit/split/substitute/set operations, and backing tab
// completion and history recall against internal/histstore. Grounded on
// config/migrate.go's small switch-over-verb-token idiom, generalized
// from a fixed migration-step set to an open command grammar.
package command

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/framegrace/bim/internal/buffer"
	"github.com/framegrace/bim/internal/editor"
	"github.com/framegrace/bim/internal/search"
)

// Result reports the outcome of running one command line, letting the
// run loop react (quit the process, redraw, etc.) without the command
// package reaching into terminal/IO concerns directly.
type Result struct {
	Quit    bool
	Message string
	Err     bool
}

// SaveFunc persists a buffer to disk; wired by cmd/bim to
// internal/ioadapt.Save so this package stays free of file-system
// concerns (spec.md §6 is a separate module).
type SaveFunc func(b *buffer.Buffer, path string) error

// Run parses and executes one command-line body (the text after the
// leading ':', with no trailing newline) against ctx, which buffer it
// applies to is whichever the registry reports focused. save is used
// by :w/:wq/:x; a nil save makes those commands report an error instead
// of silently doing nothing.
func Run(ctx *editor.Context, line string, save SaveFunc) Result {
	line = strings.TrimSpace(line)
	if line == "" {
		return Result{}
	}

	if isSubstitute(line) {
		return runSubstitute(ctx, line)
	}
	if n, rest, ok := leadingLineNumber(line); ok {
		return gotoLine(ctx, n, rest)
	}
	if strings.HasPrefix(line, "!") {
		return runBang(ctx, strings.TrimSpace(line[1:]))
	}

	verb, args := splitVerb(line)
	switch verb {
	case "r", "read":
		return runRead(ctx, args)
	case "w", "write":
		return runWrite(ctx, args, save, false)
	case "wq", "x":
		return runWrite(ctx, args, save, true)
	case "q", "quit":
		return runQuit(ctx, false)
	case "q!":
		return runQuit(ctx, true)
	case "qa", "qall":
		return runQuitAll(ctx, false)
	case "qa!", "qall!":
		return runQuitAll(ctx, true)
	case "wqa", "xa":
		return runWriteQuitAll(ctx, save)
	case "tabnew", "tabe", "e", "edit":
		return runTabnew(ctx, args)
	case "split", "sp":
		ctx.Registry.StartSplit()
		return Result{}
	case "close":
		if ctx.Registry.SplitActive {
			ctx.Registry.EndSplit()
		}
		return Result{}
	case "set":
		return runSet(ctx, args)
	default:
		return Result{Message: fmt.Sprintf("E492: not a bim command: %s", verb), Err: true}
	}
}

// splitVerb separates the first whitespace-delimited token (the verb,
// possibly carrying a trailing '!') from the remaining argument text.
func splitVerb(line string) (verb, args string) {
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i+1:])
}

// leadingLineNumber recognizes a bare ":N" jump command, returning the
// target line and whatever followed it (expected empty).
func leadingLineNumber(line string) (int, string, bool) {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, "", false
	}
	n, err := strconv.Atoi(line[:i])
	if err != nil {
		return 0, "", false
	}
	return n, strings.TrimSpace(line[i:]), true
}

func gotoLine(ctx *editor.Context, n int, rest string) Result {
	if rest != "" {
		return Result{Message: "E492: not a bim command: " + rest, Err: true}
	}
	b := ctx.Registry.Active()
	if n < 1 {
		n = 1
	}
	if n > b.LineCount() {
		n = b.LineCount()
	}
	b.CursorLine = n
	b.CursorCol = 1
	return Result{}
}

func runWrite(ctx *editor.Context, args string, save SaveFunc, thenQuit bool) Result {
	b := ctx.Registry.Active()
	path := b.FileName
	if args != "" {
		path = args
	}
	if path == "" {
		return Result{Message: "E32: no file name", Err: true}
	}
	if save == nil {
		return Result{Message: "E: write unavailable", Err: true}
	}
	if err := save(b, path); err != nil {
		return Result{Message: err.Error(), Err: true}
	}
	b.FileName = path
	b.MarkSaved()
	if !thenQuit {
		return Result{Message: fmt.Sprintf("\"%s\" written", path)}
	}
	return runQuit(ctx, true)
}

func runQuit(ctx *editor.Context, force bool) Result {
	b := ctx.Registry.Active()
	if !force && b.Modified() {
		return Result{Message: "E37: no write since last change (add ! to override)", Err: true}
	}
	_, exit := ctx.Registry.Close(ctx.Registry.ActiveIndex())
	if exit {
		return Result{Quit: true}
	}
	if ctx.Registry.SplitActive {
		ctx.Registry.EndSplit()
	}
	return Result{}
}

func runQuitAll(ctx *editor.Context, force bool) Result {
	if !force {
		for _, b := range ctx.Registry.All() {
			if b.Modified() {
				return Result{Message: "E37: no write since last change (add ! to override)", Err: true}
			}
		}
	}
	return Result{Quit: true}
}

func runWriteQuitAll(ctx *editor.Context, save SaveFunc) Result {
	if save == nil {
		return Result{Message: "E: write unavailable", Err: true}
	}
	for _, b := range ctx.Registry.All() {
		if b.FileName == "" {
			return Result{Message: "E32: no file name", Err: true}
		}
		if err := save(b, b.FileName); err != nil {
			return Result{Message: err.Error(), Err: true}
		}
		b.MarkSaved()
	}
	return Result{Quit: true}
}

func runTabnew(ctx *editor.Context, args string) Result {
	b := buffer.New(ctx.Syntax)
	if args != "" {
		b.FileName = args
	}
	ctx.Registry.Add(b)
	return Result{}
}

// runBang runs shellCmd synchronously through the user's shell and reports
// its combined output as the status message (SPEC_FULL.md's `:!` supplement;
// grounded on ioadapt.GitDiff's exec.CommandContext/cmd.Output pattern —
// spec.md §5's "the only place the editor blocks for external work").
func runBang(ctx *editor.Context, shellCmd string) Result {
	if shellCmd == "" {
		return Result{Message: "E471: argument required", Err: true}
	}
	out, err := exec.CommandContext(context.Background(), "sh", "-c", shellCmd).CombinedOutput()
	msg := strings.TrimRight(string(out), "\n")
	if err != nil {
		if msg != "" {
			msg += ": "
		}
		msg += err.Error()
		return Result{Message: msg, Err: true}
	}
	if msg == "" {
		msg = "done"
	}
	return Result{Message: msg}
}

// runRead handles `:r FILE` and `:r !CMD` (SPEC_FULL.md's `:r` supplement):
// the named file's contents, or a shell command's stdout, is inserted as new
// lines below the cursor.
func runRead(ctx *editor.Context, args string) Result {
	if args == "" {
		return Result{Message: "E471: argument required", Err: true}
	}
	var text string
	if strings.HasPrefix(args, "!") {
		shellCmd := strings.TrimSpace(args[1:])
		out, err := exec.CommandContext(context.Background(), "sh", "-c", shellCmd).Output()
		if err != nil {
			return Result{Message: err.Error(), Err: true}
		}
		text = string(out)
	} else {
		data, err := readFile(args)
		if err != nil {
			return Result{Message: err.Error(), Err: true}
		}
		text = data
	}

	b := ctx.Registry.Active()
	n := insertLinesAfter(b, b.CursorLine, text)
	return Result{Message: fmt.Sprintf("%d lines read", n)}
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// insertLinesAfter splits text on '\n' and inserts each resulting line as a
// new buffer line immediately below at (1-based), returning the count
// inserted. A trailing empty element from a final newline is dropped, per
// spec.md §5's line-splitting convention.
func insertLinesAfter(b *buffer.Buffer, at int, text string) int {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, s := range lines {
		lineNo := at + 1 + i
		b.AddLine(lineNo, nil)
		col := 1
		for _, r := range s {
			b.InsertCell(lineNo, col, r, nil)
			col++
		}
	}
	return len(lines)
}

// runSet handles `:set key[=value]` (a SPEC_FULL.md supplement to §3's
// per-buffer options: tabstop, expandtab, autoindent/noai, readonly,
// syntax=NAME).
func runSet(ctx *editor.Context, args string) Result {
	if args == "" {
		return Result{}
	}
	b := ctx.Registry.Active()
	for _, tok := range strings.Fields(args) {
		key, val, hasVal := strings.Cut(tok, "=")
		switch key {
		case "tabstop", "ts":
			if !hasVal {
				return Result{Message: "E: tabstop requires a value", Err: true}
			}
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return Result{Message: "E: invalid tabstop", Err: true}
			}
			b.Options.Tabstop = n
		case "expandtab", "et":
			b.Options.ExpandTab = true
		case "noexpandtab", "noet":
			b.Options.ExpandTab = false
		case "autoindent", "ai":
			b.Options.AutoIndent = true
		case "noautoindent", "noai":
			b.Options.AutoIndent = false
		case "readonly", "ro":
			b.Options.Readonly = true
		case "noreadonly", "noro":
			b.Options.Readonly = false
		case "syntax":
			if !hasVal {
				b.SetSyntax(nil)
				continue
			}
			def := b.Registry().ByName(val)
			if def == nil {
				return Result{Message: "E: unknown syntax " + val, Err: true}
			}
			b.SetSyntax(def)
		default:
			return Result{Message: "E518: unknown option: " + key, Err: true}
		}
	}
	return Result{}
}

// isSubstitute reports whether line is a :s/:%s/:N,Ms substitute form.
func isSubstitute(line string) bool {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i < len(line) && line[i] == ',' {
		i++
		for i < len(line) && line[i] >= '0' && line[i] <= '9' {
			i++
		}
	}
	if i < len(line) && line[i] == '%' {
		i++
	}
	return i < len(line) && line[i] == 's' && i+1 < len(line) &&
		(line[i+1] == '/' || line[i+1] == '#' || line[i+1] == '|')
}

// runSubstitute parses and runs `[range]s/needle/repl/[g][i]` (spec.md
// §4.8), where range is empty (current line), "%" (whole buffer), or
// "N,M".
func runSubstitute(ctx *editor.Context, line string) Result {
	b := ctx.Registry.Active()
	fromLine, toLine, rest, err := parseRange(b, line)
	if err != nil {
		return Result{Message: err.Error(), Err: true}
	}
	if !strings.HasPrefix(rest, "s") {
		return Result{Message: "E492: not a bim command: " + line, Err: true}
	}
	rest = rest[1:]
	if rest == "" {
		return Result{Message: "E: missing substitute delimiter", Err: true}
	}
	delim := rest[0]
	parts := splitUnescaped(rest[1:], delim)
	if len(parts) < 2 {
		return Result{Message: "E486: incomplete substitute", Err: true}
	}
	needle := []rune(parts[0])
	repl := []rune(parts[1])
	flags := ""
	if len(parts) >= 3 {
		flags = parts[2]
	}
	global := strings.ContainsRune(flags, 'g')
	ignoreCase := strings.ContainsRune(flags, 'i')

	n := search.Substitute(b, fromLine, toLine, needle, repl, global, ignoreCase)
	if n == 0 {
		return Result{Message: "E486: pattern not found: " + string(needle), Err: true}
	}
	return Result{Message: fmt.Sprintf("%d substitution(s)", n)}
}

// parseRange consumes an optional leading range ("", "%", "N", "N,M")
// from line and returns the resolved 1-based [from,to] plus whatever
// text followed the range.
func parseRange(b *buffer.Buffer, line string) (from, to int, rest string, err error) {
	if strings.HasPrefix(line, "%") {
		return 1, b.LineCount(), line[1:], nil
	}
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 {
		return b.CursorLine, b.CursorLine, line, nil
	}
	n1, _ := strconv.Atoi(line[:i])
	if i < len(line) && line[i] == ',' {
		j := i + 1
		for j < len(line) && line[j] >= '0' && line[j] <= '9' {
			j++
		}
		if j == i+1 {
			return 0, 0, "", fmt.Errorf("E16: invalid range")
		}
		n2, _ := strconv.Atoi(line[i+1 : j])
		return n1, n2, line[j:], nil
	}
	return n1, n1, line[i:], nil
}

// splitUnescaped splits s on unescaped occurrences of delim, dropping
// the escaping backslash before an escaped delimiter.
func splitUnescaped(s string, delim byte) []string {
	var parts []string
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == delim {
			cur.WriteByte(delim)
			i++
			continue
		}
		if s[i] == delim {
			parts = append(parts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(s[i])
	}
	parts = append(parts, cur.String())
	return parts
}
