// Package catalog handles SQLite persistence of the game's song catalog.
package catalog

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Entry is one cataloged song.
type Entry struct {
	ID       string
	Title    string
	Artist   string
	Area     string
	DLCIndex int
}

// Store wraps SQLite access for the extracted song catalog.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS songs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			area TEXT NOT NULL,
			dlc_index INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS dlcs (
			idx INTEGER PRIMARY KEY,
			name TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Replace swaps the whole catalog for a freshly extracted one.
func (s *Store) Replace(ctx context.Context, songs []Entry, dlcs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM songs`); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM dlcs`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO songs (id, title, artist, area, dlc_index) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, e := range songs {
		if _, err = stmt.ExecContext(ctx, e.ID, e.Title, e.Artist, e.Area, e.DLCIndex); err != nil {
			return err
		}
	}
	for i, name := range dlcs {
		if _, err = tx.ExecContext(ctx, `INSERT INTO dlcs (idx, name) VALUES (?, ?)`, i+1, name); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// List returns the catalog in ID order.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, artist, area, dlc_index FROM songs ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Title, &e.Artist, &e.Area, &e.DLCIndex); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// DLCNames returns the DLC names keyed by their 1-based index.
func (s *Store) DLCNames(ctx context.Context) (map[int]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT idx, name FROM dlcs ORDER BY idx ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	names := map[int]string{}
	for rows.Next() {
		var idx int
		var name string
		if err := rows.Scan(&idx, &name); err != nil {
			return nil, err
		}
		names[idx] = name
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// IDSet is an in-memory view of the cataloged IDs, usable during
// validation without further queries.
type IDSet map[string]struct{}

// Contains reports whether the ID is in the catalog.
func (s IDSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs loads the catalog's ID set.
func (s *Store) IDs(ctx context.Context) (IDSet, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM songs`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	set := IDSet{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		set[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return set, nil
}
