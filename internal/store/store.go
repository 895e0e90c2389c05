// Package store persists term records in SQLite and resolves synonym
// links between them.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/phanxgames/lexisphere"
)

// ErrNotFound is returned when a term id has no row.
var ErrNotFound = errors.New("store: term not found")

// Store wraps a SQLite database holding terms and their synonym edges.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the term database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS terms (
			id TEXT PRIMARY KEY,
			term TEXT NOT NULL,
			part_of_speech TEXT NOT NULL DEFAULT '',
			definition TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS synonyms (
			term_id TEXT NOT NULL REFERENCES terms(id),
			term TEXT NOT NULL,
			linked_id TEXT,
			x REAL NOT NULL DEFAULT 0,
			y REAL NOT NULL DEFAULT 0,
			z REAL NOT NULL DEFAULT 0,
			PRIMARY KEY (term_id, term)
		);
		CREATE INDEX IF NOT EXISTS idx_terms_term ON terms(term);
		CREATE INDEX IF NOT EXISTS idx_synonyms_linked ON synonyms(linked_id);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: setup schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertTerm writes a record and its synonym rows, replacing any previous
// version. Linked synonyms keep their resolved id and stored layout
// coordinates; unlinked ones get a NULL linked_id.
func (s *Store) UpsertTerm(ctx context.Context, rec *lexisphere.TermRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO terms (id, term, part_of_speech, definition)
		VALUES (?, ?, ?, ?)
	`, rec.ID, strings.ToLower(rec.Term), rec.PartOfSpeech, rec.Definition)
	if err != nil {
		return fmt.Errorf("store: upsert term %s: %w", rec.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM synonyms WHERE term_id = ?`, rec.ID); err != nil {
		return fmt.Errorf("store: clear synonyms for %s: %w", rec.ID, err)
	}

	for _, syn := range rec.Synonyms {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO synonyms (term_id, term, linked_id, x, y, z)
			VALUES (?, ?, ?, ?, ?, ?)
		`, rec.ID, syn.Term, syn.ID, syn.X, syn.Y, syn.Z)
		if err != nil {
			return fmt.Errorf("store: insert synonym %q of %s: %w", syn.Term, rec.ID, err)
		}
	}
	for _, term := range rec.Unlinked {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO synonyms (term_id, term, linked_id)
			VALUES (?, ?, NULL)
		`, rec.ID, term)
		if err != nil {
			return fmt.Errorf("store: insert unlinked synonym %q of %s: %w", term, rec.ID, err)
		}
	}

	return tx.Commit()
}

// TermByID fetches one record with its synonym rows.
func (s *Store) TermByID(ctx context.Context, id string) (*lexisphere.TermRecord, error) {
	rec := &lexisphere.TermRecord{ID: id}
	err := s.db.QueryRowContext(ctx, `
		SELECT term, part_of_speech, definition FROM terms WHERE id = ?
	`, id).Scan(&rec.Term, &rec.PartOfSpeech, &rec.Definition)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: term %s: %w", id, err)
	}

	if err := s.loadSynonyms(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Store) loadSynonyms(ctx context.Context, rec *lexisphere.TermRecord) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT term, linked_id, x, y, z FROM synonyms WHERE term_id = ? ORDER BY term
	`, rec.ID)
	if err != nil {
		return fmt.Errorf("store: synonyms of %s: %w", rec.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var term string
		var linkedID sql.NullString
		var x, y, z float64
		if err := rows.Scan(&term, &linkedID, &x, &y, &z); err != nil {
			return fmt.Errorf("store: scan synonym of %s: %w", rec.ID, err)
		}
		if linkedID.Valid {
			rec.Synonyms = append(rec.Synonyms, lexisphere.LinkedSynonym{
				Term: term, ID: linkedID.String, X: x, Y: y, Z: z,
			})
		} else {
			rec.Unlinked = append(rec.Unlinked, term)
		}
	}
	return rows.Err()
}

// TermsByName returns every record whose term matches (case-insensitive).
// Homographs with different parts of speech come back as separate records.
func (s *Store) TermsByName(ctx context.Context, term string) ([]*lexisphere.TermRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM terms WHERE term = ? ORDER BY id
	`, strings.ToLower(term))
	if err != nil {
		return nil, fmt.Errorf("store: terms named %q: %w", term, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	recs := make([]*lexisphere.TermRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := s.TermByID(ctx, id)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// SetSynonymPosition stores layout coordinates for one resolved synonym
// edge, so the viewer can reuse a stable layout across sessions.
func (s *Store) SetSynonymPosition(ctx context.Context, termID, synTerm string, x, y, z float64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE synonyms SET x = ?, y = ?, z = ? WHERE term_id = ? AND term = ?
	`, x, y, z, termID, synTerm)
	if err != nil {
		return fmt.Errorf("store: set position of %q on %s: %w", synTerm, termID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// LoadTermByID implements lexisphere.TermLoader, so the viewer can run
// straight off a local store without the HTTP hop.
func (s *Store) LoadTermByID(ctx context.Context, id string) (*lexisphere.TermRecord, error) {
	rec, err := s.TermByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, lexisphere.ErrNotFound
	}
	return rec, err
}

// Count returns the number of stored terms.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM terms`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count: %w", err)
	}
	return n, nil
}
