package listings

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/quadlist/tagger/pkg/tagger/internalerr"
)

// sqliteStore implements Store using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite listings database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS listings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS listing_tags (
	listing_id INTEGER NOT NULL,
	tag TEXT NOT NULL,
	UNIQUE(listing_id, tag),
	FOREIGN KEY(listing_id) REFERENCES listings(id) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

func (s *sqliteStore) Create(ctx context.Context, title, description string) (Listing, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO listings (title, description) VALUES (?, ?) RETURNING id`,
		title, description,
	).Scan(&id)
	if err != nil {
		return Listing{}, fmt.Errorf("create listing: %w", err)
	}
	return Listing{ID: id, Title: title, Description: description}, nil
}

func (s *sqliteStore) Update(ctx context.Context, id int64, title, description string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE listings SET title=?, description=? WHERE id=?`,
		title, description, id,
	)
	if err != nil {
		return fmt.Errorf("update listing %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("listing %d: %w", id, internalerr.ErrListingMissing)
	}
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, id int64) (Listing, bool, error) {
	var l Listing
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, description FROM listings WHERE id=?`, id,
	).Scan(&l.ID, &l.Title, &l.Description)
	if err == sql.ErrNoRows {
		return Listing{}, false, nil
	}
	if err != nil {
		return Listing{}, false, err
	}
	return l, true, nil
}

func (s *sqliteStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM listings WHERE id=?`, id)
	return err
}

// AttachTags replaces the listing's tag set inside one transaction, so
// concurrent tagging tasks settle on whichever writer commits last rather
// than interleaving partial sets.
func (s *sqliteStore) AttachTags(ctx context.Context, id int64, tags []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM listings WHERE id=?`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("listing %d: %w", id, internalerr.ErrListingMissing)
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM listing_tags WHERE listing_id=?`, id); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO listing_tags (listing_id, tag) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, id, tag); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *sqliteStore) Untagged(ctx context.Context, limit int) ([]Listing, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT l.id, l.title, l.description
FROM listings l
LEFT JOIN listing_tags t ON t.listing_id = l.id
WHERE t.listing_id IS NULL
ORDER BY l.id
LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Listing
	for rows.Next() {
		var l Listing
		if err := rows.Scan(&l.ID, &l.Title, &l.Description); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Tags(ctx context.Context, id int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tag FROM listing_tags WHERE listing_id=? ORDER BY tag`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
