// Package archive persists applied matches in SQLite so standings can be
// rebuilt after a restart.
package archive

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/pressly/goose/v3"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/okian/tabellone/internal/domain/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

const memoryPath = ":memory:"

// Archive is an append-only log of matches keyed by event id.
type Archive struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the archive at path and applies pending migrations.
// ":memory:" gives a private in-memory archive.
func Open(ctx context.Context, path string, opts ...Option) (*Archive, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	// Every connection to ":memory:" is a separate database, and SQLite
	// serialises writers anyway.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to archive: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &Archive{db: db, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("failed to prepare migrations: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to migrate archive: %w", err)
	}
	return nil
}

// Append stores m unless a match with the same event id is already archived.
func (a *Archive) Append(ctx context.Context, m model.Match) error { //nolint:gocritic // hugeParam: matches travel by value
	payload, err := msgpack.Marshal(&m)
	if err != nil {
		return fmt.Errorf("failed to encode match %s: %w", m.EventID, err)
	}
	_, err = a.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO matches (event_id, tournament_id, sport, recorded_at, payload)
		 VALUES (?, ?, ?, ?, ?)`,
		m.EventID, m.TournamentID, string(m.Sport), a.now().Unix(), payload)
	if err != nil {
		return fmt.Errorf("failed to append match %s: %w", m.EventID, err)
	}
	return nil
}

// Replay calls fn for every archived match in insertion order and returns how
// many matches were visited. It stops at the first error from fn.
func (a *Archive) Replay(ctx context.Context, fn func(model.Match) error) (int, error) {
	matches, err := a.load(ctx)
	if err != nil {
		return 0, err
	}
	for i, m := range matches {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := fn(m); err != nil {
			return i, err
		}
	}
	return len(matches), nil
}

// load reads the whole log before any callback runs so callers may use the
// archive from inside fn.
func (a *Archive) load(ctx context.Context) ([]model.Match, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT event_id, payload FROM matches ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	defer rows.Close()

	var out []model.Match
	for rows.Next() {
		var (
			id      string
			payload []byte
		)
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan archived match: %w", err)
		}
		var m model.Match
		if err := msgpack.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCorruptPayload, id, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	return out, nil
}

// Count returns the number of archived matches.
func (a *Archive) Count(ctx context.Context) (int, error) {
	var n int
	if err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count archived matches: %w", err)
	}
	return n, nil
}

// Close releases the database handle.
func (a *Archive) Close() error {
	return a.db.Close()
}
