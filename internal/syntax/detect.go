package syntax

import (
	"path/filepath"
	"strings"

	enry "github.com/go-enry/go-enry/v2"
)

// extToName maps a recognized extension straight to a closed-set
// definition name; it is the primary lookup. The go-enry fallback below
// maps through enryToName instead.
var extToName = map[string]string{
	"c": "c", "h": "c", "cpp": "c", "hpp": "c", "cc": "c", "cxx": "c",
	"py": "python",
	"java": "java",
	"json": "json",
	"xml": "xml",
	"md": "markdown", "markdown": "markdown",
	"sh": "bash", "bash": "bash",
	"diff": "diff", "patch": "diff",
	"rs": "rust",
	"mk": "make",
}

// enryToName maps go-enry's canonical language names onto our closed
// set, used only to resolve shebang/filename hints that lack a matching
// extension (e.g. an extension-less "Makefile" or a shebang script).
var enryToName = map[string]string{
	"C": "c", "C++": "c",
	"Python": "python",
	"Java":   "java",
	"JSON":   "json",
	"XML":    "xml",
	"Markdown": "markdown",
	"Shell":  "bash",
	"Diff":   "diff",
	"Rust":   "rust",
	"Makefile": "make",
}

// DetectByFilename picks a Definition for the given path: first by exact
// extension against the closed set, then (for extension-less or
// unrecognized files) by asking go-enry to classify the filename or
// shebang line and mapping its answer back onto the same closed set. It
// never returns a language outside the registry (spec.md §4.3's syntax
// table is closed), only a better guess at which one applies.
func (r *Registry) DetectByFilename(path string, firstLine string) *Definition {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	ext = strings.ToLower(ext)
	if name, ok := extToName[ext]; ok {
		if d := r.ByName(name); d != nil {
			return d
		}
	}

	base := filepath.Base(path)
	if lang, ok := enryLanguage(base, firstLine); ok {
		if name, ok := enryToName[lang]; ok {
			if d := r.ByName(name); d != nil {
				return d
			}
		}
	}
	return nil
}

func enryLanguage(filename, firstLine string) (string, bool) {
	if lang, safe := enry.GetLanguageByFilename(filename); safe {
		return lang, true
	}
	if firstLine != "" {
		if lang, safe := enry.GetLanguageByShebang(firstLine); safe {
			return lang, true
		}
	}
	return "", false
}
