// Package journal owns journal entries and drafts: saving, titling, syncing to
// the remote mirror and feeding dictated transcript fragments into them.
package journal

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("entry not found")
	ErrEmptyContent = errors.New("entry content is empty")
)

// Entry is one journal record. ID is shared between the local and remote copy.
type Entry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Synced    bool      `json:"synced"`
}

// Draft is the single unsaved working entry.
type Draft struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d Draft) Empty() bool { return d.Title == "" && d.Content == "" }

// ListOptions filters on CreatedAt. Zero Since/Until are open bounds and a
// zero Limit means no limit.
type ListOptions struct {
	Since  time.Time
	Until  time.Time
	Limit  int
	Offset int
}

// LocalStore is the authoritative store. Missing ids yield ErrNotFound.
type LocalStore interface {
	Insert(ctx context.Context, e Entry) error
	Update(ctx context.Context, e Entry) error
	Get(ctx context.Context, id string) (Entry, error)
	List(ctx context.Context, opts ListOptions) ([]Entry, error)
	Count(ctx context.Context, opts ListOptions) (int, error)
	Search(ctx context.Context, query string, limit int) ([]Entry, error)
	Delete(ctx context.Context, id string) error
	MarkSynced(ctx context.Context, id string, synced bool) error
	Unsynced(ctx context.Context) ([]Entry, error)
}

// RemoteStore is the best-effort hosted mirror.
type RemoteStore interface {
	Upsert(ctx context.Context, e Entry) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Entry, error)
}

// DraftStore keeps at most one draft. LoadDraft returns a zero Draft when
// nothing is stored.
type DraftStore interface {
	LoadDraft(ctx context.Context) (Draft, error)
	SaveDraft(ctx context.Context, d Draft) error
	ClearDraft(ctx context.Context) error
}
