package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimchoi-jjiggae/coachMe/internal/journal"
	"github.com/kimchoi-jjiggae/coachMe/internal/textproc"
)

type fakeJournal struct {
	entries []journal.Entry
	draft   journal.Draft
	noDraft bool
	saveErr error
	saved   []journal.SaveRequest
	deleted []string
	nextID  int
}

func (f *fakeJournal) List(context.Context, journal.ListOptions) ([]journal.Entry, error) {
	return append([]journal.Entry(nil), f.entries...), nil
}

func (f *fakeJournal) Search(_ context.Context, q string, _ int) ([]journal.Entry, error) {
	var out []journal.Entry
	for _, e := range f.entries {
		if strings.Contains(strings.ToLower(e.Content), strings.ToLower(q)) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeJournal) Save(_ context.Context, req journal.SaveRequest) (journal.Entry, error) {
	if f.saveErr != nil {
		return journal.Entry{}, f.saveErr
	}
	f.saved = append(f.saved, req)
	title := req.Title
	if title == "" {
		title = textproc.DeriveTitle(req.Content)
	}
	if req.ID != "" {
		for i, e := range f.entries {
			if e.ID == req.ID {
				f.entries[i].Title, f.entries[i].Content = title, req.Content
				return f.entries[i], nil
			}
		}
	}
	f.nextID++
	e := journal.Entry{ID: "new" + string(rune('0'+f.nextID)), Title: title, Content: req.Content, CreatedAt: time.Now()}
	f.entries = append([]journal.Entry{e}, f.entries...)
	return e, nil
}

func (f *fakeJournal) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return journal.ErrNotFound
}

func (f *fakeJournal) Title(_ context.Context, content string) (string, journal.TitleSource) {
	return textproc.DeriveTitle(content), journal.SourceHeuristic
}

func (f *fakeJournal) Sync(context.Context) (journal.SyncReport, error) {
	return journal.SyncReport{Pushed: 2, Pulled: 1}, nil
}

func (f *fakeJournal) Draft(context.Context) (journal.Draft, error) {
	if f.noDraft {
		return journal.Draft{}, journal.ErrNoDraftStore
	}
	return f.draft, nil
}

func (f *fakeJournal) SetDraft(_ context.Context, d journal.Draft) (journal.Draft, error) {
	if f.noDraft {
		return journal.Draft{}, journal.ErrNoDraftStore
	}
	f.draft = d
	return d, nil
}

func (f *fakeJournal) ClearDraft(context.Context) error {
	f.draft = journal.Draft{}
	return nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func loaded(t *testing.T, f *fakeJournal) Model {
	t.Helper()
	m := New(context.Background(), f, Options{Theme: &PlainTheme, Location: time.UTC})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, m.loadCmd()())
	return m
}

func sample() *fakeJournal {
	at := time.Date(2026, 3, 18, 20, 0, 0, 0, time.UTC)
	return &fakeJournal{entries: []journal.Entry{
		{ID: "a", Title: "Work: Long day", Content: "Long day at work.", CreatedAt: at, UpdatedAt: at, Synced: true},
		{ID: "b", Title: "Gratitude: Tea", Content: "Grateful for tea.", CreatedAt: at.Add(-time.Hour), UpdatedAt: at},
	}}
}

func TestListNavigation(t *testing.T) {
	m := loaded(t, sample())
	require.Len(t, m.entries, 2)

	m, _ = update(t, m, key("j"))
	assert.Equal(t, 1, m.cursor)
	m, _ = update(t, m, key("j"))
	assert.Equal(t, 1, m.cursor)
	m, _ = update(t, m, key("k"))
	assert.Equal(t, 0, m.cursor)

	m, _ = update(t, m, key("enter"))
	assert.Equal(t, modeView, m.mode)
	assert.Contains(t, m.View(), "Long day at work.")
	m, _ = update(t, m, key("esc"))
	assert.Equal(t, modeList, m.mode)

	view := m.View()
	assert.Contains(t, view, "Work: Long day")
	assert.Contains(t, view, "Mar 18 19:00")
}

func TestComposeSaveWithPunctuation(t *testing.T) {
	f := sample()
	m := loaded(t, f)

	m, _ = update(t, m, key("n"))
	require.Equal(t, modeCompose, m.mode)
	m.editor.SetValue("what did you do today")

	m, _ = update(t, m, key("ctrl+p"))
	assert.Equal(t, "What did you do today?", m.editor.Value())

	m, cmd := update(t, m, key("ctrl+s"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, m.saveCmd()())
	assert.Equal(t, modeList, m.mode)
	assert.Contains(t, m.status, "saved")

	require.Len(t, f.saved, 1)
	assert.Equal(t, "What did you do today?", f.saved[0].Content)
	assert.Empty(t, f.saved[0].ID)
	assert.Equal(t, "", m.editor.Value())
}

func TestComposeTitlePreview(t *testing.T) {
	m := loaded(t, sample())
	m, _ = update(t, m, key("n"))
	m.editor.SetValue("I'm so grateful for my family today.")

	m, cmd := update(t, m, key("ctrl+t"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, m.titleCmd()())
	assert.Equal(t, "Gratitude: I'm so grateful for my family today", m.titleInput.Value())
	assert.Equal(t, journal.SourceHeuristic, m.titleSource)
}

func TestComposeRejectsEmpty(t *testing.T) {
	f := sample()
	m := loaded(t, f)
	m, _ = update(t, m, key("n"))

	m, cmd := update(t, m, key("ctrl+s"))
	assert.Nil(t, cmd)
	assert.True(t, m.statusIsErr)
	assert.Empty(t, f.saved)
}

func TestSaveErrorKeepsComposer(t *testing.T) {
	f := sample()
	f.saveErr = errors.New("disk full")
	m := loaded(t, f)
	m, _ = update(t, m, key("n"))
	m.editor.SetValue("some words")

	m, _ = update(t, m, m.saveCmd()())
	assert.Equal(t, modeCompose, m.mode)
	assert.Equal(t, "some words", m.editor.Value())
	assert.Contains(t, m.status, "disk full")
}

func TestEditExisting(t *testing.T) {
	f := sample()
	m := loaded(t, f)
	m, _ = update(t, m, key("j"))
	m, _ = update(t, m, key("e"))
	require.Equal(t, modeCompose, m.mode)
	assert.Equal(t, "b", m.editingID)
	assert.Equal(t, "Grateful for tea.", m.editor.Value())

	m.editor.SetValue("Grateful for green tea.")
	m, _ = update(t, m, m.saveCmd()())
	require.Len(t, f.saved, 1)
	assert.Equal(t, "b", f.saved[0].ID)
	assert.Equal(t, "Gratitude: Tea", f.saved[0].Title)
}

func TestDraftRestoreAndKeep(t *testing.T) {
	f := sample()
	f.draft = journal.Draft{Title: "Half", Content: "Half a thought"}
	m := loaded(t, f)

	m, _ = update(t, m, key("n"))
	m, _ = update(t, m, m.loadDraftCmd()())
	assert.Equal(t, "Half a thought", m.editor.Value())
	assert.Equal(t, "Half", m.titleInput.Value())

	m.editor.SetValue("Half a thought, now longer")
	m, cmd := update(t, m, key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, modeList, m.mode)
	m, _ = update(t, m, cmd())
	assert.Equal(t, "Half a thought, now longer", f.draft.Content)
	assert.False(t, m.statusIsErr)
}

func TestDraftsUnavailable(t *testing.T) {
	f := sample()
	f.noDraft = true
	m := loaded(t, f)

	m, _ = update(t, m, key("n"))
	m, _ = update(t, m, m.loadDraftCmd()())
	assert.False(t, m.draftEnabled)

	m, cmd := update(t, m, key("esc"))
	assert.Nil(t, cmd)
	assert.Equal(t, modeList, m.mode)
}

func TestDeleteConfirm(t *testing.T) {
	f := sample()
	m := loaded(t, f)

	m, _ = update(t, m, key("d"))
	require.Equal(t, modeConfirmDelete, m.mode)
	m, _ = update(t, m, key("n"))
	assert.Equal(t, modeList, m.mode)
	assert.Empty(t, f.deleted)

	m, _ = update(t, m, key("d"))
	m, cmd := update(t, m, key("y"))
	require.NotNil(t, cmd)
	m, cmd = update(t, m, cmd())
	assert.Equal(t, []string{"a"}, f.deleted)
	m, _ = update(t, m, cmd())
	assert.Len(t, m.entries, 1)
}

func TestSearch(t *testing.T) {
	m := loaded(t, sample())

	m, _ = update(t, m, key("/"))
	require.Equal(t, modeSearch, m.mode)
	m.searchInput.SetValue("tea")
	m, cmd := update(t, m, key("enter"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, "tea", m.query)
	require.Len(t, m.entries, 1)
	assert.Equal(t, "b", m.entries[0].ID)

	m, cmd = update(t, m, key("esc"))
	m, _ = update(t, m, cmd())
	assert.Empty(t, m.query)
	assert.Len(t, m.entries, 2)
}

func TestSyncStatus(t *testing.T) {
	m := loaded(t, sample())
	m, cmd := update(t, m, key("s"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, "synced: 2 pushed, 1 pulled", m.status)
}

func TestClip(t *testing.T) {
	assert.Equal(t, "abc", clip("abc", 5))
	assert.Equal(t, "abcd…", clip("abcdefgh", 5))
}
