package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kimchoi-jjiggae/coachMe/internal/journal"
)

const draftSlot = "current"

func (s *Store) LoadDraft(ctx context.Context) (journal.Draft, error) {
	var (
		title, content string
		updated        int64
		encrypted      bool
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT title, content, updated_at, encrypted FROM drafts WHERE slot = ?`, draftSlot,
	).Scan(&title, &content, &updated, &encrypted)
	if errors.Is(err, sql.ErrNoRows) {
		return journal.Draft{}, nil
	}
	if err != nil {
		return journal.Draft{}, fmt.Errorf("load draft: %w", err)
	}
	t, c, err := s.open(title, content, encrypted)
	if err != nil {
		return journal.Draft{}, fmt.Errorf("draft: %w", err)
	}
	return journal.Draft{Title: t, Content: c, UpdatedAt: fromMillis(updated)}, nil
}

func (s *Store) SaveDraft(ctx context.Context, d journal.Draft) error {
	title, content, encrypted, err := s.seal(d.Title, d.Content)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO drafts (slot, title, content, updated_at, encrypted) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			updated_at = excluded.updated_at,
			encrypted = excluded.encrypted`,
		draftSlot, title, content, toMillis(d.UpdatedAt), encrypted,
	)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *Store) ClearDraft(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE slot = ?`, draftSlot); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
