package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DBPath returns the file path behind a SQLite DSN, or "" when the DSN
// names an in-memory database. "file:" URIs are stripped of their scheme
// and query string.
func DBPath(dsn string) string {
	path := dsn
	if rest, ok := strings.CutPrefix(path, "file:"); ok {
		path, _, _ = strings.Cut(rest, "?")
		if strings.Contains(dsn, "mode=memory") {
			return ""
		}
	}
	if path == "" || path == ":memory:" {
		return ""
	}
	return path
}

// EnsureDBDir creates the directory holding the SQLite file named by dsn.
// The directory is private to the user since it holds session tokens.
func EnsureDBDir(dsn string) error {
	path := DBPath(dsn)
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}
