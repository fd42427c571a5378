// Package histstore persists :-command and search history across
// sessions (a SPEC_FULL.md supplement to spec.md §4.7/§4.8's in-memory
// history lists) in a SQLite database, following the lazy-open,
// synchronous-write, flush-on-close pattern of the teacher's terminal
// search index.
package histstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Kind distinguishes the two history lists spec.md keeps separate
// (command-line ":" entries vs "/" and "?" search needles).
type Kind string

const (
	KindCommand Kind = "command"
	KindSearch  Kind = "search"
)

const schema = `
CREATE TABLE IF NOT EXISTS cmd_history (
	seq  INTEGER PRIMARY KEY,
	kind TEXT NOT NULL,
	text TEXT NOT NULL,
	ts   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cmd_history_kind ON cmd_history(kind);
`

// Store is a handle to the on-disk history database. The zero value is
// not usable; construct with Open.
type Store struct {
	db *sql.DB
}

// DefaultPath returns "~/.cache/bim/history.db", falling back to
// ".bim_history.db" in the working directory if $HOME is unset.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".bim_history.db"
	}
	return filepath.Join(home, ".cache", "bim", "history.db")
}

// Open lazily creates and opens the history database at path, creating
// its parent directory if needed. A nil *Store with a non-nil error
// means history persistence is unavailable; callers should proceed
// without it rather than fail the session (spec.md §9: history must
// never block editing).
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("histstore: mkdir %s: %w", dir, err)
		}
	}
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("histstore: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("histstore: ping %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("histstore: schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Append records one history entry with the caller-supplied timestamp
// value, stored as-is in the ts column (this package never calls
// time.Now directly, keeping it trivially testable; entries are ordered
// by seq, not ts).
func (s *Store) Append(kind Kind, text string, tsNano int64) error {
	if s == nil || text == "" {
		return nil
	}
	_, err := s.db.Exec(
		"INSERT INTO cmd_history (kind, text, ts) VALUES (?, ?, ?)",
		string(kind), text, tsNano,
	)
	return err
}

// Recent returns up to limit most-recent entries of kind, newest first.
func (s *Store) Recent(kind Kind, limit int) ([]string, error) {
	if s == nil {
		return nil, nil
	}
	rows, err := s.db.Query(
		"SELECT text FROM cmd_history WHERE kind = ? ORDER BY seq DESC LIMIT ?",
		string(kind), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			continue
		}
		out = append(out, text)
	}
	return out, rows.Err()
}

// PrefixMatch returns up to limit entries of kind whose text starts
// with prefix, newest first; LIKE wildcards in prefix match literally.
func (s *Store) PrefixMatch(kind Kind, prefix string, limit int) ([]string, error) {
	if s == nil {
		return nil, nil
	}
	rows, err := s.db.Query(
		"SELECT text FROM cmd_history WHERE kind = ? AND text LIKE ? ESCAPE '\\' ORDER BY seq DESC LIMIT ?",
		string(kind), escapeLike(prefix)+"%", limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			continue
		}
		out = append(out, text)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\', '%', '_':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

// Close flushes and closes the database. Safe to call on a nil Store.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
