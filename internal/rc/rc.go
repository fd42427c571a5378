// Package rc loads `~/.bimrc` (spec.md §6): a line-oriented
// `key[=value]` format with `#` comments, one of the external
// collaborators §1 scopes out of the core. Grounded on
// config/config.go's read-or-default `Load` shape and
// config/types.go's typed-accessor-with-default idiom, generalized
// from a JSON section map to a flat line-oriented key/value set.
package rc

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds every `~/.bimrc` key spec.md §6 names, pre-typed and
// defaulted so callers never re-derive fallback values.
type Config struct {
	Theme          string
	History        bool
	Padding        int
	HlParen        bool
	HlCurrent      bool
	SplitPercent   int
	ShiftScrolling bool
	ScrollAmount   int
	Git            bool
	ColorGutter    bool
}

// Default returns the editor's out-of-the-box rc settings.
func Default() Config {
	return Config{
		Theme:          "default",
		History:        true,
		Padding:        0,
		HlParen:        true,
		HlCurrent:      true,
		SplitPercent:   50,
		ShiftScrolling: false,
		ScrollAmount:   5,
		Git:            true,
		ColorGutter:    true,
	}
}

// DefaultPath returns "~/.bimrc", falling back to ".bimrc" in the
// working directory if $HOME is unset.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".bimrc"
	}
	return filepath.Join(home, ".bimrc")
}

// Load reads path and overlays its keys onto Default(), returning the
// default configuration (not an error) if the file does not exist —
// an rc file is optional (spec.md §6).
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		applyLine(&cfg, sc.Text())
	}
	return cfg, sc.Err()
}

func applyLine(cfg *Config, line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	key, val, hasVal := strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	val = strings.TrimSpace(val)

	switch key {
	case "theme":
		if hasVal {
			cfg.Theme = val
		}
	case "history":
		cfg.History = boolValue(val, hasVal, true)
	case "nohistory":
		cfg.History = false
	case "padding":
		cfg.Padding = intValue(val, cfg.Padding)
	case "hlparen":
		cfg.HlParen = boolValue(val, hasVal, true)
	case "nohlparen":
		cfg.HlParen = false
	case "hlcurrent":
		cfg.HlCurrent = boolValue(val, hasVal, true)
	case "nohlcurrent":
		cfg.HlCurrent = false
	case "splitpercent":
		cfg.SplitPercent = clamp(intValue(val, cfg.SplitPercent), 10, 90)
	case "shiftscrolling":
		cfg.ShiftScrolling = boolValue(val, hasVal, true)
	case "noshiftscrolling":
		cfg.ShiftScrolling = false
	case "scrollamount":
		cfg.ScrollAmount = intValue(val, cfg.ScrollAmount)
	case "git":
		cfg.Git = boolValue(val, hasVal, true)
	case "nogit":
		cfg.Git = false
	case "colorgutter":
		cfg.ColorGutter = boolValue(val, hasVal, true)
	case "nocolorgutter":
		cfg.ColorGutter = false
	}
}

// boolValue interprets a bare key (hasVal=false) as true, and an
// explicit value against the usual truthy tokens.
func boolValue(val string, hasVal bool, bareDefault bool) bool {
	if !hasVal {
		return bareDefault
	}
	switch strings.ToLower(val) {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}

func intValue(val string, fallback int) int {
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
