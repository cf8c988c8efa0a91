// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists a record of fetched datasets in SQLite.
package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/graphset/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "graphset.db"
)

// Store manages the fetch catalog database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog at <datasetsDir>/index/graphset.db,
// creating the schema if needed.
func Open(datasetsDir string) (*Store, error) {
	dbDir := filepath.Join(datasetsDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	const stmt = `CREATE TABLE IF NOT EXISTS fetches (
		name TEXT PRIMARY KEY,
		source_url TEXT NOT NULL,
		size_id TEXT,
		output_path TEXT NOT NULL,
		entities INTEGER NOT NULL,
		items INTEGER NOT NULL,
		edges INTEGER NOT NULL,
		fetched_at TEXT NOT NULL
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record upserts the fetch record for a dataset. Re-fetching a dataset
// replaces its previous row.
func (s *Store) Record(rec types.FetchRecord) error {
	const stmt = `INSERT INTO fetches
		(name, source_url, size_id, output_path, entities, items, edges, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			source_url = excluded.source_url,
			size_id = excluded.size_id,
			output_path = excluded.output_path,
			entities = excluded.entities,
			items = excluded.items,
			edges = excluded.edges,
			fetched_at = excluded.fetched_at`
	_, err := s.db.Exec(stmt,
		rec.Name, rec.SourceURL, rec.SizeID, rec.Output,
		rec.Entities, rec.Items, rec.Edges,
		rec.FetchedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording fetch of %s: %w", rec.Name, err)
	}
	return nil
}

// Get returns the record for a dataset name. The second return value
// reports whether a record exists.
func (s *Store) Get(name string) (types.FetchRecord, bool, error) {
	const stmt = `SELECT name, source_url, size_id, output_path,
		entities, items, edges, fetched_at
		FROM fetches WHERE name = ?`
	rec, err := scanRecord(s.db.QueryRow(stmt, name))
	if err == sql.ErrNoRows {
		return types.FetchRecord{}, false, nil
	}
	if err != nil {
		return types.FetchRecord{}, false, fmt.Errorf("reading record for %s: %w", name, err)
	}
	return rec, true, nil
}

// List returns all fetch records ordered by name.
func (s *Store) List() ([]types.FetchRecord, error) {
	const stmt = `SELECT name, source_url, size_id, output_path,
		entities, items, edges, fetched_at
		FROM fetches ORDER BY name`
	rows, err := s.db.Query(stmt)
	if err != nil {
		return nil, fmt.Errorf("listing fetches: %w", err)
	}
	defer rows.Close()

	var out []types.FetchRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning fetch row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing fetches: %w", err)
	}
	return out, nil
}

// Remove deletes the record for a dataset name, if present.
func (s *Store) Remove(name string) error {
	if _, err := s.db.Exec(`DELETE FROM fetches WHERE name = ?`, name); err != nil {
		return fmt.Errorf("removing record for %s: %w", name, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (types.FetchRecord, error) {
	var rec types.FetchRecord
	var fetchedAt string
	err := row.Scan(&rec.Name, &rec.SourceURL, &rec.SizeID, &rec.Output,
		&rec.Entities, &rec.Items, &rec.Edges, &fetchedAt)
	if err != nil {
		return types.FetchRecord{}, err
	}
	if t, parseErr := time.Parse(time.RFC3339, fetchedAt); parseErr == nil {
		rec.FetchedAt = t
	}
	return rec, nil
}
