// Package remote mirrors journal entries into a hosted Postgres database.
package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kimchoi-jjiggae/coachMe/internal/journal"
)

const schema = `
CREATE TABLE IF NOT EXISTS journal_entries (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL,
    title      TEXT NOT NULL DEFAULT '',
    content    TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_journal_entries_user_created
    ON journal_entries (user_id, created_at DESC);
`

// Store implements journal.RemoteStore. Every query is scoped to one user id.
type Store struct {
	db     *sql.DB
	userID string
}

// Open connects with the pgx stdlib driver and checks the connection.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxIdleConns(2)
	db.SetMaxOpenConns(4)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

func NewStore(db *sql.DB, userID string) *Store {
	return &Store{db: db, userID: userID}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Upsert(ctx context.Context, e journal.Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO journal_entries (id, user_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			updated_at = EXCLUDED.updated_at
		WHERE journal_entries.user_id = EXCLUDED.user_id`,
		e.ID, s.userID, e.Title, e.Content, e.CreatedAt.UTC(), e.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert entry %s: %w", e.ID, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (journal.Entry, error) {
	var e journal.Entry
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, content, created_at, updated_at
		FROM journal_entries WHERE id = $1 AND user_id = $2`,
		id, s.userID,
	).Scan(&e.ID, &e.Title, &e.Content, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return journal.Entry{}, fmt.Errorf("remote entry %s: %w", id, journal.ErrNotFound)
	}
	if err != nil {
		return journal.Entry{}, fmt.Errorf("get entry %s: %w", id, err)
	}
	e.CreatedAt, e.UpdatedAt = e.CreatedAt.UTC(), e.UpdatedAt.UTC()
	e.Synced = true
	return e, nil
}

// List returns the user's entries newest first.
func (s *Store) List(ctx context.Context) ([]journal.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, created_at, updated_at
		FROM journal_entries WHERE user_id = $1
		ORDER BY created_at DESC`,
		s.userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var out []journal.Entry
	for rows.Next() {
		var e journal.Entry
		if err := rows.Scan(&e.ID, &e.Title, &e.Content, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.CreatedAt, e.UpdatedAt = e.CreatedAt.UTC(), e.UpdatedAt.UTC()
		e.Synced = true
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete is idempotent: removing an id that is not there is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`, id, s.userID,
	); err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}
	return nil
}
