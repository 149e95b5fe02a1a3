// Package store persists fetched sequence records in a DuckDB database so
// repeated splice runs do not refetch the same foreign accessions.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"spliceseq/internal/seq"
	"spliceseq/internal/splice"
)

// Store manages a DuckDB connection holding fetched records.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS records (
		accession VARCHAR PRIMARY KEY,
		display_id VARCHAR,
		description VARCHAR,
		sequence VARCHAR,
		fetched_at TIMESTAMP
	)`)
	return err
}

// Put stores a record under an accession, replacing any previous entry.
func (s *Store) Put(accession string, rec *seq.Record) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO records
		(accession, display_id, description, sequence, fetched_at)
		VALUES (?, ?, ?, ?, ?)`,
		accession, rec.ID, rec.Desc, rec.Seq, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store record %s: %w", accession, err)
	}
	return nil
}

// Get returns the stored record for an accession, or (nil, nil) when the
// store holds no entry for it.
func (s *Store) Get(accession string) (*seq.Record, error) {
	rec := &seq.Record{}
	err := s.db.QueryRow(`SELECT display_id, description, sequence
		FROM records WHERE accession = ?`, accession).
		Scan(&rec.ID, &rec.Desc, &rec.Seq)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load record %s: %w", accession, err)
	}
	return rec, nil
}

// Count returns the number of stored records.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT count(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// CachingLookup answers accession lookups from the store and falls back to
// another lookup on a miss, persisting what it fetched. Store errors on the
// read path degrade to a fetch; errors on the write path are ignored so a
// broken cache never fails a successful fetch.
type CachingLookup struct {
	store *Store
	next  splice.Lookup
}

// NewCachingLookup layers the store in front of next.
func NewCachingLookup(store *Store, next splice.Lookup) *CachingLookup {
	return &CachingLookup{store: store, next: next}
}

// FetchByAccession implements splice.Lookup.
func (c *CachingLookup) FetchByAccession(accession string) (*seq.Record, error) {
	if rec, err := c.store.Get(accession); err == nil && rec != nil {
		return rec, nil
	}
	rec, err := c.next.FetchByAccession(accession)
	if err != nil {
		return nil, err
	}
	_ = c.store.Put(accession, rec)
	return rec, nil
}
