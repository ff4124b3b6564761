package journal

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/kimchoi-jjiggae/coachMe/internal/completion"
)

type memStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func newMemStore() *memStore { return &memStore{entries: map[string]Entry{}} }

func (m *memStore) Insert(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[e.ID]; ok {
		return errors.New("duplicate id")
	}
	m.entries[e.ID] = e
	return nil
}

func (m *memStore) Update(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[e.ID]; !ok {
		return ErrNotFound
	}
	m.entries[e.ID] = e
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (m *memStore) sorted(keep func(Entry) bool) []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Entry
	for _, e := range m.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memStore) List(_ context.Context, opts ListOptions) ([]Entry, error) {
	out := m.sorted(func(e Entry) bool {
		if !opts.Since.IsZero() && e.CreatedAt.Before(opts.Since) {
			return false
		}
		return opts.Until.IsZero() || e.CreatedAt.Before(opts.Until)
	})
	if opts.Offset >= len(out) {
		return nil, nil
	}
	out = out[opts.Offset:]
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *memStore) Count(ctx context.Context, opts ListOptions) (int, error) {
	opts.Limit, opts.Offset = 0, 0
	out, err := m.List(ctx, opts)
	return len(out), err
}

func (m *memStore) Search(_ context.Context, query string, limit int) ([]Entry, error) {
	q := strings.ToLower(query)
	out := m.sorted(func(e Entry) bool {
		return strings.Contains(strings.ToLower(e.Title+" "+e.Content), q)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *memStore) MarkSynced(_ context.Context, id string, synced bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return ErrNotFound
	}
	e.Synced = synced
	m.entries[id] = e
	return nil
}

func (m *memStore) Unsynced(_ context.Context) ([]Entry, error) {
	return m.sorted(func(e Entry) bool { return !e.Synced }), nil
}

type fakeRemote struct {
	mu        sync.Mutex
	entries   map[string]Entry
	upsertErr error
	deleteErr error
	listErr   error
}

func newFakeRemote() *fakeRemote { return &fakeRemote{entries: map[string]Entry{}} }

func (r *fakeRemote) Upsert(_ context.Context, e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.entries[e.ID] = e
	return nil
}

func (r *fakeRemote) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.entries, id)
	return nil
}

func (r *fakeRemote) List(_ context.Context) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []Entry
	for _, e := range r.entries {
		out = append(out, e)
	}
	return out, nil
}

type memDrafts struct {
	mu    sync.Mutex
	draft Draft
}

func (d *memDrafts) LoadDraft(context.Context) (Draft, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draft, nil
}

func (d *memDrafts) SaveDraft(_ context.Context, dr Draft) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.draft = dr
	return nil
}

func (d *memDrafts) ClearDraft(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.draft = Draft{}
	return nil
}

type stubGenerator struct {
	result completion.TitleResult
	calls  int
}

func (g *stubGenerator) GenerateTitle(context.Context, string) completion.TitleResult {
	g.calls++
	return g.result
}
