package journal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kimchoi-jjiggae/coachMe/internal/metrics"
	"github.com/kimchoi-jjiggae/coachMe/internal/textproc"
)

const defaultMaxDictation = 5 * time.Minute

// Service coordinates the local store, the optional remote mirror, drafts
// and titling. The local store always wins: remote failures are logged and
// leave the entry marked unsynced.
type Service struct {
	local   LocalStore
	remote  RemoteStore
	drafts  DraftStore
	titler  *Titler
	logger  *zap.Logger
	metrics *metrics.Metrics

	now          func() time.Time
	newID        func() string
	maxDictation time.Duration
}

type Option func(*Service)

func WithRemote(r RemoteStore) Option { return func(s *Service) { s.remote = r } }
func WithDrafts(d DraftStore) Option { return func(s *Service) { s.drafts = d } }
func WithLogger(l *zap.Logger) Option { return func(s *Service) { s.logger = l } }
func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }
func WithIDs(newID func() string) Option { return func(s *Service) { s.newID = newID } }
func WithMaxDictation(d time.Duration) Option { return func(s *Service) { s.maxDictation = d } }

func NewService(local LocalStore, titler *Titler, opts ...Option) *Service {
	s := &Service{
		local:        local,
		titler:       titler,
		logger:       zap.NewNop(),
		now:          time.Now,
		newID:        uuid.NewString,
		maxDictation: defaultMaxDictation,
	}
	for _, o := range opts {
		o(s)
	}
	if s.titler == nil {
		s.titler = NewTitler(nil, s.logger, s.metrics)
	}
	return s
}

// HasRemote reports whether a remote mirror is configured.
func (s *Service) HasRemote() bool { return s.remote != nil }

// Title proposes a title for content without saving anything.
func (s *Service) Title(ctx context.Context, content string) (string, TitleSource) {
	return s.titler.Title(ctx, strings.TrimSpace(content))
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

type SaveRequest struct {
	ID      string // empty creates a new entry
	Title   string // empty asks the Titler
	Content string
}

// Save creates or updates an entry locally, then mirrors it remotely.
func (s *Service) Save(ctx context.Context, req SaveRequest) (Entry, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return Entry{}, ErrEmptyContent
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title, _ = s.titler.Title(ctx, content)
	}
	now := s.timestamp()

	var e Entry
	existing, err := s.lookup(ctx, req.ID)
	switch {
	case err == nil:
		e = existing
		e.Title, e.Content, e.UpdatedAt, e.Synced = title, content, now, false
		if err := s.local.Update(ctx, e); err != nil {
			return Entry{}, fmt.Errorf("update entry: %w", err)
		}
	case errors.Is(err, ErrNotFound):
		id := req.ID
		if id == "" {
			id = s.newID()
		}
		e = Entry{ID: id, Title: title, Content: content, CreatedAt: now, UpdatedAt: now}
		if err := s.local.Insert(ctx, e); err != nil {
			return Entry{}, fmt.Errorf("insert entry: %w", err)
		}
	default:
		return Entry{}, err
	}

	e.Synced = s.mirror(ctx, e)
	s.metrics.EntrySaved(e.Synced)
	return e, nil
}

func (s *Service) lookup(ctx context.Context, id string) (Entry, error) {
	if id == "" {
		return Entry{}, ErrNotFound
	}
	return s.local.Get(ctx, id)
}

// mirror pushes e to the remote store and reports whether it landed there.
func (s *Service) mirror(ctx context.Context, e Entry) bool {
	if s.remote == nil {
		return false
	}
	if err := s.remote.Upsert(ctx, e); err != nil {
		s.metrics.RemoteFailed("upsert")
		s.logger.Warn("remote save failed, entry kept locally", zap.String("id", e.ID), zap.Error(err))
		return false
	}
	if err := s.local.MarkSynced(ctx, e.ID, true); err != nil {
		s.logger.Warn("mark synced", zap.String("id", e.ID), zap.Error(err))
		return false
	}
	return true
}

func (s *Service) Get(ctx context.Context, id string) (Entry, error) {
	return s.local.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	return s.local.List(ctx, opts)
}

func (s *Service) Count(ctx context.Context, opts ListOptions) (int, error) {
	return s.local.Count(ctx, opts)
}

// Search matches query case-insensitively against title and content, newest first.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]Entry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.local.List(ctx, ListOptions{Limit: limit})
	}
	return s.local.Search(ctx, query, limit)
}

// Delete removes the local copy, then the remote one on a best-effort basis.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.local.Delete(ctx, id); err != nil {
		return err
	}
	if s.remote != nil {
		if err := s.remote.Delete(ctx, id); err != nil {
			s.metrics.RemoteFailed("delete")
			s.logger.Warn("remote delete failed", zap.String("id", id), zap.Error(err))
		}
	}
	return nil
}

// Append punctuates a finalized transcript fragment and adds it to an entry.
func (s *Service) Append(ctx context.Context, id, fragment string) (Entry, error) {
	e, err := s.local.Get(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	text := textproc.Punctuate(fragment)
	if strings.TrimSpace(text) == "" {
		return e, nil
	}
	e.Content = joinFragment(e.Content, text)
	e.UpdatedAt = s.timestamp()
	e.Synced = false
	if err := s.local.Update(ctx, e); err != nil {
		return Entry{}, fmt.Errorf("update entry: %w", err)
	}
	e.Synced = s.mirror(ctx, e)
	return e, nil
}

func joinFragment(current, text string) string {
	if current == "" || strings.HasSuffix(current, " ") {
		return current + text
	}
	return current + " " + text
}

type SyncReport struct {
	Pushed int `json:"pushed"`
	Pulled int `json:"pulled"`
	Failed int `json:"failed"`
}

// Sync pushes unsynced local entries and pulls remote entries missing locally.
func (s *Service) Sync(ctx context.Context) (SyncReport, error) {
	var report SyncReport
	if s.remote == nil {
		return report, nil
	}

	pending, err := s.local.Unsynced(ctx)
	if err != nil {
		return report, fmt.Errorf("list unsynced entries: %w", err)
	}
	for _, e := range pending {
		if s.mirror(ctx, e) {
			report.Pushed++
		} else {
			report.Failed++
		}
	}

	remote, err := s.remote.List(ctx)
	if err != nil {
		s.metrics.RemoteFailed("list")
		return report, fmt.Errorf("list remote entries: %w", err)
	}
	for _, e := range remote {
		_, err := s.local.Get(ctx, e.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return report, err
		}
		e.Synced = true
		if err := s.local.Insert(ctx, e); err != nil {
			s.logger.Warn("pull remote entry", zap.String("id", e.ID), zap.Error(err))
			report.Failed++
			continue
		}
		report.Pulled++
	}
	s.logger.Info("sync finished",
		zap.Int("pushed", report.Pushed),
		zap.Int("pulled", report.Pulled),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

type Summary struct {
	Entries int            `json:"entries"`
	Words   int            `json:"words"`
	ByDay   map[string]int `json:"by_day"`
}

// Summarize counts entries and words created in the given range, bucketing
// days in loc.
func (s *Service) Summarize(ctx context.Context, since, until time.Time, loc *time.Location) (Summary, error) {
	entries, err := s.local.List(ctx, ListOptions{Since: since, Until: until})
	if err != nil {
		return Summary{}, err
	}
	if loc == nil {
		loc = time.Local
	}
	sum := Summary{ByDay: map[string]int{}}
	for _, e := range entries {
		sum.Entries++
		sum.Words += len(strings.Fields(e.Content))
		sum.ByDay[e.CreatedAt.In(loc).Format("2006-01-02")]++
	}
	return sum, nil
}

// Streak reports how many entries were written on now's day and the number of
// consecutive days with at least one entry, ending today or yesterday.
func (s *Service) Streak(ctx context.Context, now time.Time, loc *time.Location) (today, streak int, err error) {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)

	entries, err := s.local.List(ctx, ListOptions{Since: midnight.AddDate(-1, 0, 0)})
	if err != nil {
		return 0, 0, err
	}
	days := map[string]int{}
	for _, e := range entries {
		days[e.CreatedAt.In(loc).Format("2006-01-02")]++
	}

	today = days[midnight.Format("2006-01-02")]
	day := midnight
	if today == 0 {
		day = day.AddDate(0, 0, -1)
	}
	for days[day.Format("2006-01-02")] > 0 {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return today, streak, nil
}
