package artwork

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/llehouerou/audiosession/internal/db"
)

const indexSchema = `
CREATE TABLE IF NOT EXISTS art_cache (
	uri        TEXT PRIMARY KEY,
	path       TEXT NOT NULL,
	size       INTEGER NOT NULL,
	fetched_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_art_cache_fetched_at ON art_cache(fetched_at);
`

// Entry is one cached artwork file.
type Entry struct {
	URI       string
	Path      string
	Size      int64
	FetchedAt time.Time
}

// Index maps artwork URIs to files in the cache directory.
type Index struct {
	db *sql.DB
}

// OpenIndex opens or creates the index database at path.
func OpenIndex(ctx context.Context, path string) (*Index, error) {
	conn, err := db.Open(ctx, path, indexSchema)
	if err != nil {
		return nil, err
	}
	return &Index{db: conn}, nil
}

// Lookup returns the entry for uri, if any.
func (x *Index) Lookup(ctx context.Context, uri string) (Entry, bool, error) {
	var (
		e         Entry
		fetchedAt int64
	)
	err := x.db.QueryRowContext(ctx,
		`SELECT uri, path, size, fetched_at FROM art_cache WHERE uri = ?`, uri,
	).Scan(&e.URI, &e.Path, &e.Size, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	e.FetchedAt = time.Unix(fetchedAt, 0)
	return e, true, nil
}

// Put records e, replacing any entry for the same URI.
func (x *Index) Put(ctx context.Context, e Entry) error {
	return db.WithTx(ctx, x.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO art_cache (uri, path, size, fetched_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(uri) DO UPDATE SET
				path = excluded.path, size = excluded.size, fetched_at = excluded.fetched_at`,
			e.URI, e.Path, e.Size, e.FetchedAt.Unix())
		return err
	})
}

// Remove deletes the entry for uri.
func (x *Index) Remove(ctx context.Context, uri string) error {
	return db.WithTx(ctx, x.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM art_cache WHERE uri = ?`, uri)
		return err
	})
}

// Prune removes entries fetched before cutoff and returns them, so the
// caller can delete their files.
func (x *Index) Prune(ctx context.Context, cutoff time.Time) ([]Entry, error) {
	var removed []Entry
	err := db.WithTx(ctx, x.db, func(tx *sql.Tx) error {
		var err error
		removed, err = scanEntries(ctx, tx, cutoff)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM art_cache WHERE fetched_at < ?`, cutoff.Unix())
		return err
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func scanEntries(ctx context.Context, tx *sql.Tx, cutoff time.Time) ([]Entry, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT uri, path, size, fetched_at FROM art_cache WHERE fetched_at < ?`, cutoff.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			fetchedAt int64
		)
		if err := rows.Scan(&e.URI, &e.Path, &e.Size, &fetchedAt); err != nil {
			return nil, err
		}
		e.FetchedAt = time.Unix(fetchedAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database.
func (x *Index) Close() error {
	return x.db.Close()
}
