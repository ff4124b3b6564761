package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/kimchoi-jjiggae/coachMe/internal/journal"
)

const entryColumns = `id, title, content, created_at, updated_at, synced, encrypted`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanEntry(r rowScanner) (journal.Entry, error) {
	var (
		e                 journal.Entry
		created, updated  int64
		synced, encrypted bool
		title, content    string
	)
	if err := r.Scan(&e.ID, &title, &content, &created, &updated, &synced, &encrypted); err != nil {
		return journal.Entry{}, err
	}
	t, c, err := s.open(title, content, encrypted)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("entry %s: %w", e.ID, err)
	}
	e.Title, e.Content = t, c
	e.CreatedAt, e.UpdatedAt = fromMillis(created), fromMillis(updated)
	e.Synced = synced
	return e, nil
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]journal.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []journal.Entry
	for rows.Next() {
		e, err := s.scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) Insert(ctx context.Context, e journal.Entry) error {
	title, content, encrypted, err := s.seal(e.Title, e.Content)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, title, content, toMillis(e.CreatedAt), toMillis(e.UpdatedAt), e.Synced, encrypted,
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, e journal.Entry) error {
	title, content, encrypted, err := s.seal(e.Title, e.Content)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE entries SET title = ?, content = ?, updated_at = ?, synced = ?, encrypted = ? WHERE id = ?`,
		title, content, toMillis(e.UpdatedAt), e.Synced, encrypted, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return affected(res, e.ID)
}

func affected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry %s: %w", id, journal.ErrNotFound)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (journal.Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	e, err := s.scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return journal.Entry{}, fmt.Errorf("entry %s: %w", id, journal.ErrNotFound)
	}
	return e, err
}

func rangeClause(opts journal.ListOptions) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if !opts.Since.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, toMillis(opts.Since))
	}
	if !opts.Until.IsZero() {
		conds = append(conds, "created_at < ?")
		args = append(args, toMillis(opts.Until))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns entries newest first.
func (s *Store) List(ctx context.Context, opts journal.ListOptions) ([]journal.Entry, error) {
	where, args := rangeClause(opts)
	limit := opts.Limit
	if limit <= 0 {
		limit = -1
	}
	args = append(args, limit, max(opts.Offset, 0))
	return s.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM entries`+where+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		args...,
	)
}

func (s *Store) Count(ctx context.Context, opts journal.ListOptions) (int, error) {
	where, args := rangeClause(opts)
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`+where, args...).Scan(&n)
	return n, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search is a case-insensitive substring match over title and content.
// Sealed rows cannot be matched in SQL, so an encrypted store filters in memory.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]journal.Entry, error) {
	if s.enc != nil {
		return s.searchSealed(ctx, query, limit)
	}
	if limit <= 0 {
		limit = -1
	}
	pattern := "%" + likeEscaper.Replace(query) + "%"
	return s.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM entries
		 WHERE title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\'
		 ORDER BY created_at DESC, id DESC LIMIT ?`,
		pattern, pattern, limit,
	)
}

func (s *Store) searchSealed(ctx context.Context, query string, limit int) ([]journal.Entry, error) {
	all, err := s.List(ctx, journal.ListOptions{})
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var out []journal.Entry
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.Content), q) {
			out = append(out, e)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return affected(res, id)
}

func (s *Store) MarkSynced(ctx context.Context, id string, synced bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE entries SET synced = ? WHERE id = ?`, synced, id)
	if err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	return affected(res, id)
}

// Unsynced returns entries not yet mirrored remotely, oldest first.
func (s *Store) Unsynced(ctx context.Context) ([]journal.Entry, error) {
	return s.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE synced = 0 ORDER BY created_at ASC, id ASC`,
	)
}
