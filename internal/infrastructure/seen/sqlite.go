package seen

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tesso57/ytnotify/internal/domain/video"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS seen (id TEXT PRIMARY KEY)`

// SQLiteStore keeps the seen set in a single-table SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (and creates if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) migrate() error {
	if _, err := s.db.Exec(schema); err != nil {
		return &CorruptError{Path: s.path, Err: err}
	}
	return nil
}

// Load reads every stored id.
func (s *SQLiteStore) Load() (*video.SeenSet, error) {
	if err := s.migrate(); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT id FROM seen`)
	if err != nil {
		return nil, &CorruptError{Path: s.path, Err: err}
	}
	defer func() { _ = rows.Close() }()

	set := video.NewSeenSet()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, &CorruptError{Path: s.path, Err: err}
		}
		set.Add(id)
	}
	if err := rows.Err(); err != nil {
		return nil, &CorruptError{Path: s.path, Err: err}
	}
	return set, nil
}

// Save replaces the table contents with set in one transaction.
func (s *SQLiteStore) Save(set *video.SeenSet) error {
	if err := s.migrate(); err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM seen`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO seen (id) VALUES (?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, id := range set.IDs() {
		if _, err := stmt.Exec(id); err != nil {
			return fmt.Errorf("insert %q: %w", id, err)
		}
	}
	return tx.Commit()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
