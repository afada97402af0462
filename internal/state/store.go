// Package state remembers per-file editing state between sessions.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/ezwrite/internal/document"
	"github.com/zjrosen/ezwrite/internal/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS positions (
	path       TEXT PRIMARY KEY,
	leaf       INTEGER NOT NULL,
	idx        INTEGER NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// Position is a cursor location that survives re-import: the ordinal of the
// token among the root's leaves and the grapheme index within it.
type Position struct {
	Leaf      int
	Index     int
	UpdatedAt time.Time
}

// Store persists positions in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. ":memory:" gives a
// private in-memory store.
func Open(path string) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("creating state directory: %w", err)
		}
		dsn = "file:" + path
	}
	log.Debug(log.CatState, "Opening state database", "path", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.ErrorErr(log.CatState, "Failed to open state database", err, "path", path)
		return nil, err
	}
	// An in-memory database lives as long as its connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save records pos for file.
func (s *Store) Save(ctx context.Context, file string, pos Position) error {
	if pos.UpdatedAt.IsZero() {
		pos.UpdatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO positions (path, leaf, idx, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET leaf = excluded.leaf, idx = excluded.idx, updated_at = excluded.updated_at`,
		file, pos.Leaf, pos.Index, pos.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving position for %s: %w", file, err)
	}
	log.Debug(log.CatState, "Saved position", "file", file, "leaf", pos.Leaf, "idx", pos.Index)
	return nil
}

// Lookup returns the position recorded for file.
func (s *Store) Lookup(ctx context.Context, file string) (Position, bool, error) {
	var pos Position
	err := s.db.QueryRowContext(ctx,
		`SELECT leaf, idx, updated_at FROM positions WHERE path = ?`, file).
		Scan(&pos.Leaf, &pos.Index, &pos.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Position{}, false, nil
	}
	if err != nil {
		return Position{}, false, fmt.Errorf("looking up position for %s: %w", file, err)
	}
	return pos, true, nil
}

// Forget removes the position recorded for file.
func (s *Store) Forget(ctx context.Context, file string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM positions WHERE path = ?`, file)
	return err
}

// Capture returns the position of the cursor in the tree under root, or
// false when nothing is focused.
func Capture(tree *document.Tree, root document.ID) (Position, bool) {
	focus := tree.Focus()
	if focus == document.None {
		return Position{}, false
	}
	for i, leaf := range tree.Leaves(root) {
		if leaf == focus {
			return Position{Leaf: i, Index: tree.CursorIndex(focus)}, true
		}
	}
	return Position{}, false
}

// Restore places the cursor at pos, clamped to the tree's current shape.
func Restore(tree *document.Tree, root document.ID, pos Position) error {
	leaves := tree.Leaves(root)
	if len(leaves) == 0 {
		return nil
	}
	leaf := leaves[min(max(pos.Leaf, 0), len(leaves)-1)]
	return tree.PlaceCursor(leaf, min(max(pos.Index, 0), tree.Len(leaf)))
}
