// Command bim is the terminal entry point: argument parsing, rc-file and
// capability setup, the per-file load/git-diff/cursor-cache dance, and the
// top-level event loop wiring input decoding to the mode handlers, the
// command interpreter, and the renderer (spec.md §5/§6). Grounded on
// cmd/texelation's flag-then-driver-then-loop shape, generalized from a
// compositor bootstrap to a single-process modal editor.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/framegrace/bim/internal/buffer"
	"github.com/framegrace/bim/internal/cell"
	"github.com/framegrace/bim/internal/command"
	"github.com/framegrace/bim/internal/editor"
	"github.com/framegrace/bim/internal/histstore"
	"github.com/framegrace/bim/internal/input"
	"github.com/framegrace/bim/internal/ioadapt"
	"github.com/framegrace/bim/internal/modes"
	"github.com/framegrace/bim/internal/rc"
	"github.com/framegrace/bim/internal/render"
	"github.com/framegrace/bim/internal/search"
	"github.com/framegrace/bim/internal/syntax"
	"github.com/framegrace/bim/internal/term"
	"github.com/framegrace/bim/internal/termcaps"
	"github.com/framegrace/bim/internal/theme"
)

const version = "bim version 1.0"

const usage = `usage: bim [options] [file[:line]]
       bim [options] -- -

options:
  -R              read-only mode
  -u PATH         rc file to load (default ~/.bimrc)
  -c FILE         dump FILE with line numbers to stdout, then exit
  -C FILE         dump FILE without line numbers to stdout, then exit
  -O NAME         disable (or, for "history", enable) a capability
  --version       print version and exit
  --help, -?      print this help and exit
`

type options struct {
	readonly  bool
	rcPath    string
	dumpPath  string
	dumpNL    bool
	capFlags  []string
	file      string
	lineJump  int
	stdinMode bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if opts == nil {
		return 0 // --version/--help already printed
	}

	if opts.dumpPath != "" {
		if err := dumpFile(opts.dumpPath, opts.dumpNL); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	return runEditor(opts)
}

// parseArgs hand-parses spec.md §6's CLI grammar. Go's flag package treats
// "--" as an ordinary token and has no notion of a single-dash positional
// argument, so the ordering- and terminator-sensitive grammar here is
// walked by hand instead (grounded on cmd/texelation's own ad-hoc
// argv walk).
func parseArgs(args []string) (*options, error) {
	o := &options{rcPath: rc.DefaultPath()}
	i := 0
	for i < len(args) {
		a := args[i]
		switch {
		case a == "--":
			i++
			if i < len(args) && args[i] == "-" {
				o.stdinMode = true
				i++
			}
			if i < len(args) {
				o.file = args[i]
				i++
			}
			return o, nil
		case a == "--version":
			fmt.Println(version)
			return nil, nil
		case a == "--help" || a == "-?":
			fmt.Print(usage)
			return nil, nil
		case a == "-R":
			o.readonly = true
			i++
		case a == "-u":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("E: -u requires a path argument")
			}
			o.rcPath = args[i+1]
			i += 2
		case a == "-c" || a == "-C":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("E: %s requires a file argument", a)
			}
			o.dumpPath = args[i+1]
			o.dumpNL = a == "-c"
			i += 2
		case a == "-O":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("E: -O requires a flag name")
			}
			name := args[i+1]
			if !termcaps.KnownFlag(name) {
				return nil, fmt.Errorf("E: unrecognized -O flag: %s", name)
			}
			o.capFlags = append(o.capFlags, name)
			i += 2
		case strings.HasPrefix(a, "-") && a != "-":
			return nil, fmt.Errorf("E: unrecognized option: %s", a)
		default:
			o.file = a
			i++
		}
	}
	return o, nil
}

// parseFileLine splits "path:line" (spec.md §6's positional grammar),
// tolerating paths that themselves contain no trailing ":N" suffix.
func parseFileLine(s string) (path string, line int) {
	idx := strings.LastIndex(s, ":")
	if idx < 0 {
		return s, 0
	}
	n, err := strconv.Atoi(s[idx+1:])
	if err != nil || n < 1 {
		return s, 0
	}
	return s[:idx], n
}

// dumpFile implements `-c`/`-C`: render FILE's syntax-highlighted content
// straight to stdout as ANSI SGR sequences, with or without a line-number
// gutter, then exit without opening a terminal session.
func dumpFile(path string, withLineNumbers bool) error {
	reg := syntax.NewRegistry()
	b, err := ioadapt.Load(path, reg)
	if err != nil {
		return err
	}
	th := theme.Default()
	w := os.Stdout
	numW := 0
	if withLineNumbers {
		numW = len(strconv.Itoa(b.LineCount())) + 1
	}
	for ln := 1; ln <= b.LineCount(); ln++ {
		if withLineNumbers {
			fmt.Fprintf(w, "%*d ", numW, ln)
		}
		for _, c := range b.Line(ln).Cells() {
			pal := dumpPalette(c, th)
			fmt.Fprintf(w, "\x1b[0;%s;%sm%c", pal.Fg.FgSGR(), pal.Bg.BgSGR(), c.Codepoint)
		}
		fmt.Fprint(w, "\x1b[0m\n")
	}
	return nil
}

func dumpPalette(c cell.Cell, th *theme.Theme) theme.Palette {
	switch c.Flags.Class() {
	case cell.FlagKeyword:
		return th.Keyword
	case cell.FlagString:
		return th.String
	case cell.FlagComment:
		return th.Comment
	case cell.FlagType:
		return th.Type
	case cell.FlagPragma:
		return th.Pragma
	case cell.FlagNumeral:
		return th.Numeral
	case cell.FlagString2:
		return th.String2
	case cell.FlagDiffPlus:
		return th.DiffPlus
	case cell.FlagDiffMinus:
		return th.DiffMinus
	case cell.FlagBold:
		return th.Bold
	case cell.FlagLink:
		return th.Link
	case cell.FlagEscape:
		return th.Escape
	default:
		return th.Plain
	}
}

// runEditor drives the interactive session: terminal setup, rc/capability
// resolution, initial buffer load, the signal-aware event loop, and
// teardown. Returns the process exit code.
func runEditor(opts *options) int {
	cfg, err := rc.Load(opts.rcPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "E: reading rc file: ", err)
	}

	driver, err := term.NewDefaultDriver()
	if err != nil {
		fmt.Fprintln(os.Stderr, "E: terminal init:", err)
		return 1
	}
	if err := driver.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "E: terminal init:", err)
		return 1
	}
	defer driver.Fini()
	defer recoverTerminal(driver)

	ctx := editor.NewContext()
	ctx.Capabilities = termcaps.ProbeByTermName(ctx.Capabilities, os.Getenv("TERM"))
	for _, name := range opts.capFlags {
		ctx.Capabilities = termcaps.ApplyFlag(ctx.Capabilities, name)
	}
	ctx.HLParen = cfg.HlParen
	ctx.HLCurrent = cfg.HlCurrent
	ctx.ShiftScrolling = cfg.ShiftScrolling
	ctx.ScrollAmount = cfg.ScrollAmount
	ctx.Git = cfg.Git
	ctx.Registry.SplitPercent = cfg.SplitPercent

	if ctx.Capabilities.Mouse {
		driver.EnableMouse()
	}

	if ctx.Capabilities.History {
		store, err := histstore.Open(histstore.DefaultPath())
		if err == nil {
			ctx.History = store
			defer store.Close()
		}
	}

	path, lineJump := "", 0
	if opts.stdinMode {
		b, err := loadStdin(ctx.Syntax)
		if err != nil {
			fmt.Fprintln(os.Stderr, "E: reading stdin:", err)
			return 1
		}
		ctx.Registry.Add(b)
	} else {
		if opts.file != "" {
			path, lineJump = parseFileLine(opts.file)
		}
		var b *buffer.Buffer
		if path == "" {
			b = buffer.New(ctx.Syntax)
		} else {
			b, err = ioadapt.Load(path, ctx.Syntax)
			if err != nil {
				fmt.Fprintln(os.Stderr, "E: ", err)
				return 1
			}
		}
		if opts.readonly {
			b.Readonly = true
			b.Options.Readonly = true
		}
		ctx.Registry.Add(b)

		if path != "" {
			applyCursorCache(b, path, lineJump)
			if ctx.Git {
				annotateGitDiff(b, path)
			}
		}
	}

	resizeCh := make(chan os.Signal, 1)
	signal.Notify(resizeCh, syscall.SIGWINCH)
	tstpCh := make(chan os.Signal, 1)
	signal.Notify(tstpCh, syscall.SIGTSTP)

	r := render.New()
	h := modes.NewHandler()
	// In stdin mode os.Stdin carries the initial buffer's content, not
	// keystrokes; the controlling terminal for input is reached through
	// stderr instead (spec.md §6: "-" after "--" uses stderr as the
	// controlling TTY").
	inputReader := term.StdinRawReader()
	if opts.stdinMode {
		inputReader = term.NewRawReader(os.Stderr)
	}
	dec := input.NewDecoder(inputReader)

	quit := false
	for !quit {
		select {
		case <-resizeCh:
			driver.Underlying().Sync()
		case <-tstpCh:
			suspend(driver)
		default:
		}

		cols, rows := term.Size(driver)
		ctx.Registry.Layout(cols)
		textRows := rows - 3
		if textRows < 0 {
			textRows = 0
		}

		active := ctx.Registry.Active()
		if ctx.HLParen {
			h.ParenMatch.Update(active)
		} else {
			h.ParenMatch.Clear(active)
		}
		if ctx.HLCurrent {
			markCurrentLine(active)
		}

		r.Frame(driver, ctx, cols, rows)
		placeCursor(driver, ctx, cols, rows)
		driver.Show()

		ev, ok := dec.Next(input.DefaultTimeout)
		if !ok {
			continue
		}
		ctx.ClearMessage()

		switch ev.Kind {
		case input.EventRune:
			quit = handleRuneTopLevel(ctx, h, dec, ev.Rune, textRows)
		case input.EventNav:
			h.HandleNav(ctx, ev, textRows)
		case input.EventMouse:
			tabs := render.TabBoundaries(ctx, cols)
			h.HandleMouse(ctx, ev, tabs)
		}
	}

	if path != "" {
		ioadapt.SaveCursor(ioadapt.DefaultBiminfoPath(), absPath(path), ctx.Registry.Active().CursorLine, ctx.Registry.Active().CursorCol)
	}
	return 0
}

// handleRuneTopLevel intercepts, in NORMAL mode, the runes that leave
// buffer-local mode handling entirely — ':' '/' '?' enter their own
// line-editing subroutine (spec.md §4.7's "command/search subroutine")
// and 'n'/'N' repeat the saved search — and routes ESC to HandleEscape,
// before falling back to modes.Handler.HandleRune for everything else.
// Returns true if the run loop should exit.
func handleRuneTopLevel(ctx *editor.Context, h *modes.Handler, dec *input.Decoder, r rune, height int) bool {
	b := ctx.Registry.Active()
	if b.Mode == buffer.Normal {
		switch r {
		case ':':
			return runCommandLine(ctx, dec)
		case '/':
			runIncrementalSearch(ctx, dec, true)
			return false
		case '?':
			runIncrementalSearch(ctx, dec, false)
			return false
		case 'n':
			repeatSearch(ctx, true)
			return false
		case 'N':
			repeatSearch(ctx, false)
			return false
		}
	}
	if r == 0x1B {
		h.HandleEscape(ctx)
		return false
	}
	h.HandleRune(ctx, r)
	return false
}

// runCommandLine reads a ':' command line to completion (Enter commits,
// Esc cancels) and executes it, returning true if it requested quit.
func runCommandLine(ctx *editor.Context, dec *input.Decoder) bool {
	line := command.NewLine(histstore.KindCommand, ctx.History)
	for {
		ev, ok := dec.Next(input.DefaultTimeout)
		if !ok {
			continue
		}
		if ev.Kind == input.EventRune {
			switch ev.Rune {
			case '\r', '\n':
				text := line.Commit(stamp())
				res := command.Run(ctx, text, ioadapt.Save)
				if res.Message != "" {
					if res.Err {
						ctx.SetError(res.Message)
					} else {
						ctx.SetMessage(res.Message)
					}
				}
				return res.Quit
			case 0x1B:
				return false
			case 0x7F, 0x08:
				line.Backspace()
			default:
				line.Insert(ev.Rune)
			}
		} else if ev.Kind == input.EventNav {
			switch ev.Nav {
			case input.NavUp:
				line.Recall(true)
			case input.NavDown:
				line.Recall(false)
			}
		}
		ctx.SetMessage(":" + line.String())
	}
}

// runIncrementalSearch drives the '/' or '?' search subroutine: every
// keystroke repaints SEARCH highlighting and jumps the cursor to the
// nearest match from the pre-search position (spec.md §4.8); Enter saves
// the needle, Esc restores the original cursor.
func runIncrementalSearch(ctx *editor.Context, dec *input.Decoder, forward bool) {
	b := ctx.Registry.Active()
	startLine, startCol := b.CursorLine, b.CursorCol
	line := command.NewLine(histstore.KindSearch, ctx.History)

	for {
		search.HighlightAll(b, line.Text)
		if len(line.Text) > 0 {
			var m search.Match
			var found bool
			if forward {
				m, found = search.FindForward(b, startLine, startCol, line.Text)
			} else {
				m, found = search.FindBackward(b, startLine, startCol, line.Text)
			}
			if found {
				b.CursorLine, b.CursorCol = m.Line, m.Col
				b.Preferred = m.Col
			}
		}
		prompt := "/"
		if !forward {
			prompt = "?"
		}
		ctx.SetMessage(prompt + line.String())

		ev, ok := dec.Next(input.DefaultTimeout)
		if !ok {
			continue
		}
		if ev.Kind != input.EventRune {
			continue
		}
		switch ev.Rune {
		case '\r', '\n':
			b.SearchNeedle = append([]rune(nil), line.Text...)
			line.Commit(stamp())
			return
		case 0x1B:
			search.ClearHighlight(b)
			b.CursorLine, b.CursorCol = startLine, startCol
			b.Preferred = startCol
			return
		case 0x7F, 0x08:
			line.Backspace()
		default:
			line.Insert(ev.Rune)
		}
	}
}

// repeatSearch re-runs the last saved needle: 'n' searches forward and 'N'
// backward from the cursor (spec.md §4.8's find_forward/find_backward
// pair), whichever of '/' or '?' entered the needle; the direction of
// entry is not tracked.
func repeatSearch(ctx *editor.Context, forward bool) {
	b := ctx.Registry.Active()
	if len(b.SearchNeedle) == 0 {
		ctx.SetError("E35: no previous search pattern")
		return
	}
	var m search.Match
	var found bool
	if forward {
		m, found = search.FindForward(b, b.CursorLine, b.CursorCol+1, b.SearchNeedle)
	} else {
		m, found = search.FindBackward(b, b.CursorLine, b.CursorCol-1, b.SearchNeedle)
	}
	if !found {
		ctx.SetError("E486: pattern not found: " + string(b.SearchNeedle))
		return
	}
	b.CursorLine, b.CursorCol = m.Line, m.Col
	b.Preferred = m.Col
	search.HighlightAll(b, b.SearchNeedle)
}

// stamp returns a monotonically-increasing placeholder timestamp for
// history ordering. The history table only needs relative ordering within
// a session (ORDER BY seq, not ts), so a process-lifetime counter is
// sufficient and keeps this package free of a direct time.Now call on
// every committed line.
var historySeq int64

func stamp() int64 {
	historySeq++
	return historySeq
}

func markCurrentLine(b *buffer.Buffer) {
	for ln := 1; ln <= b.LineCount(); ln++ {
		b.Line(ln).IsCurrent = ln == b.CursorLine
	}
}

func placeCursor(d term.ScreenDriver, ctx *editor.Context, cols, rows int) {
	b := ctx.Registry.Active()
	if !ctx.Capabilities.HideShow {
		return
	}
	numW := len(strconv.Itoa(b.LineCount())) + 1
	if numW < 2 {
		numW = 2
	}
	x := b.Left + 1 + numW + (b.CursorCol - 1 - b.COffset)
	y := 1 + (b.CursorLine - b.Offset - 1)
	if x < b.Left || y < 1 || y > rows-3 {
		d.HideCursor()
		return
	}
	d.ShowCursor(x, y)
}

// recoverTerminal guarantees the terminal is restored on a panic (spec.md
// §5: "MUST ensure the terminal is restored to cooked mode ... on any
// abnormal exit").
func recoverTerminal(d *term.TcellDriver) {
	if r := recover(); r != nil {
		d.Fini()
		fmt.Fprintln(os.Stderr, "bim: internal error:", r)
		os.Exit(1)
	}
}

// suspend implements SIGTSTP/SIGCONT: drop to cooked mode and the normal
// screen, re-raise SIGTSTP to actually stop the process, then restore on
// wake (spec.md §5).
func suspend(d *term.TcellDriver) {
	d.Underlying().Suspend()
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
	d.Underlying().Resume()
}

func absPath(path string) string {
	if p, err := filepath.Abs(path); err == nil {
		return p
	}
	return path
}

func applyCursorCache(b *buffer.Buffer, path string, lineJump int) {
	abs := absPath(path)
	if lineJump > 0 {
		if lineJump > b.LineCount() {
			lineJump = b.LineCount()
		}
		b.CursorLine, b.CursorCol = lineJump, 1
		return
	}
	if line, col, ok := ioadapt.LoadCursor(ioadapt.DefaultBiminfoPath(), abs); ok {
		if line > b.LineCount() {
			line = b.LineCount()
		}
		if line < 1 {
			line = 1
		}
		maxCol := b.Line(line).Len()
		if maxCol < 1 {
			maxCol = 1
		}
		if col > maxCol {
			col = maxCol
		}
		if col < 1 {
			col = 1
		}
		b.CursorLine, b.CursorCol = line, col
	}
}

func annotateGitDiff(b *buffer.Buffer, path string) {
	abs := absPath(path)
	dir := filepath.Dir(abs)
	hunks, err := ioadapt.GitDiff(context.Background(), dir, abs)
	if err != nil {
		return
	}
	statuses := ioadapt.AnnotateRevStatus(hunks, b.LineCount())
	for ln := 1; ln <= b.LineCount() && ln < len(statuses); ln++ {
		b.Line(ln).RevStatus = convertRevStatus(statuses[ln])
	}
}

// convertRevStatus bridges ioadapt.RevStatus (the git-diff adapter's
// output type, kept free of a cell package dependency) onto cell.RevStatus
// (the gutter's own enum) — the two share member names and ordinal order
// by construction but are deliberately distinct types at the package
// boundary.
func convertRevStatus(s ioadapt.RevStatus) cell.RevStatus {
	switch s {
	case ioadapt.Added:
		return cell.RevAdded
	case ioadapt.ModifiedUnsaved:
		return cell.RevModifiedUnsaved
	case ioadapt.ModifiedCommitted:
		return cell.RevModifiedCommitted
	case ioadapt.DeletedAbove:
		return cell.RevDeletedAbove
	case ioadapt.ModifiedAndDeletedAbove:
		return cell.RevModifiedAndDeletedAbove
	default:
		return cell.RevUnchanged
	}
}

// loadStdin reads the whole of os.Stdin as the initial buffer's content
// (spec.md §6's "-" positional after "--"), decoding UTF-8 byte-at-a-time
// via the same exported ioadapt.UTF8DFA that ioadapt.Load uses for a named file and
// splitting on '\n' the same way. No syntax is detected, since there is
// no filename or extension to key off of.
func loadStdin(reg *syntax.Registry) (*buffer.Buffer, error) {
	b := buffer.New(reg)
	b.SetLoading(true)
	r := bufio.NewReader(os.Stdin)
	var dfa ioadapt.UTF8DFA
	lineNo, col := 1, 1
	endsWithNewline := false

	buf := make([]byte, 32*1024)
	for {
		n, rerr := r.Read(buf)
		for i := 0; i < n; i++ {
			cp, ok := dfa.Step(buf[i])
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
		if rerr != nil {
			break
		}
	}

	if endsWithNewline && lineNo > 1 && b.Line(lineNo).Len() == 0 {
		b.RemoveLine(lineNo, nil)
	}
	b.SetLoading(false)
	b.RelexAll()
	b.CursorLine, b.CursorCol = 1, 1
	b.MarkSaved()
	return b, nil
}
