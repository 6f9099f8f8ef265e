// Package seen persists the set of already processed entry ids.
package seen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tesso57/ytnotify/internal/domain/video"
)

// Store loads and saves a seen set.
type Store interface {
	Load() (*video.SeenSet, error)
	Save(set *video.SeenSet) error
	Close() error
}

// Open returns the store backend matching the file extension of path.
// ".db", ".sqlite" and ".sqlite3" select SQLite; anything else is a JSON array file.
func Open(path string) (Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("seen file path is empty")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(path)
	default:
		return NewFileStore(path), nil
	}
}

// CorruptError reports a store whose content could not be decoded.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("seen store %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }
