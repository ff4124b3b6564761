package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kimchoi-jjiggae/coachMe/internal/journal"
	"github.com/kimchoi-jjiggae/coachMe/internal/textproc"
)

const listLimit = 200

// Journal is the slice of *journal.Service the TUI drives.
type Journal interface {
	List(ctx context.Context, opts journal.ListOptions) ([]journal.Entry, error)
	Search(ctx context.Context, query string, limit int) ([]journal.Entry, error)
	Save(ctx context.Context, req journal.SaveRequest) (journal.Entry, error)
	Delete(ctx context.Context, id string) error
	Title(ctx context.Context, content string) (string, journal.TitleSource)
	Sync(ctx context.Context) (journal.SyncReport, error)
	Draft(ctx context.Context) (journal.Draft, error)
	SetDraft(ctx context.Context, d journal.Draft) (journal.Draft, error)
	ClearDraft(ctx context.Context) error
}

type mode int

const (
	modeList mode = iota
	modeView
	modeCompose
	modeSearch
	modeConfirmDelete
	modeHelp
)

type composeField int

const (
	fieldBody composeField = iota
	fieldTitle
)

type Model struct {
	ctx     context.Context
	journal Journal
	theme   Theme
	loc     *time.Location

	width, height int
	mode          mode

	entries []journal.Entry
	cursor  int
	query   string

	// compose
	editor       textarea.Model
	titleInput   textinput.Model
	field        composeField
	editingID    string // empty when composing a new entry
	titleSource  journal.TitleSource
	searchInput  textinput.Model
	status       string
	statusIsErr  bool
	draftEnabled bool
}

type Options struct {
	Theme    *Theme // nil uses DefaultTheme
	Location *time.Location
}

func New(ctx context.Context, j Journal, opts Options) Model {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	theme := DefaultTheme
	if opts.Theme != nil {
		theme = *opts.Theme
	}

	ed := textarea.New()
	ed.Placeholder = "What's on your mind?  (Ctrl+S save, Ctrl+P punctuate, Ctrl+T title, Esc back)"
	ed.SetHeight(10)
	ed.CharLimit = 0
	ed.FocusedStyle.CursorLine = lipgloss.NewStyle().Background(lipgloss.Color("#313244"))

	ti := textinput.New()
	ti.Placeholder = "Title (blank to generate)"
	ti.CharLimit = 120
	ti.Width = 60

	si := textinput.New()
	si.Placeholder = "search title and content"
	si.CharLimit = 200
	si.Width = 40

	return Model{
		ctx:          ctx,
		journal:      j,
		theme:        theme,
		loc:          opts.Location,
		editor:       ed,
		titleInput:   ti,
		searchInput:  si,
		draftEnabled: true,
	}
}

// Run starts the full-screen journal browser.
func Run(ctx context.Context, j Journal, opts Options) error {
	p := tea.NewProgram(New(ctx, j, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// ---------- messages & commands ----------

type entriesLoadedMsg struct {
	entries []journal.Entry
	err     error
}

type savedMsg struct {
	entry journal.Entry
	err   error
}

type deletedMsg struct {
	id  string
	err error
}

type titleMsg struct {
	title  string
	source journal.TitleSource
}

type syncedMsg struct {
	report journal.SyncReport
	err    error
}

type draftLoadedMsg struct {
	draft journal.Draft
	err   error
}

type draftStoredMsg struct{ err error }

func (m Model) loadCmd() tea.Cmd {
	ctx, j, q := m.ctx, m.journal, m.query
	return func() tea.Msg {
		var (
			entries []journal.Entry
			err     error
		)
		if q != "" {
			entries, err = j.Search(ctx, q, listLimit)
		} else {
			entries, err = j.List(ctx, journal.ListOptions{Limit: listLimit})
		}
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

func (m Model) saveCmd() tea.Cmd {
	ctx, j := m.ctx, m.journal
	req := journal.SaveRequest{
		ID:      m.editingID,
		Title:   m.titleInput.Value(),
		Content: m.editor.Value(),
	}
	clearDraft := m.editingID == "" && m.draftEnabled
	return func() tea.Msg {
		e, err := j.Save(ctx, req)
		if err == nil && clearDraft {
			_ = j.ClearDraft(ctx)
		}
		return savedMsg{entry: e, err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	ctx, j := m.ctx, m.journal
	return func() tea.Msg {
		return deletedMsg{id: id, err: j.Delete(ctx, id)}
	}
}

func (m Model) titleCmd() tea.Cmd {
	ctx, j, content := m.ctx, m.journal, m.editor.Value()
	return func() tea.Msg {
		title, source := j.Title(ctx, content)
		return titleMsg{title: title, source: source}
	}
}

func (m Model) syncCmd() tea.Cmd {
	ctx, j := m.ctx, m.journal
	return func() tea.Msg {
		r, err := j.Sync(ctx)
		return syncedMsg{report: r, err: err}
	}
}

func (m Model) loadDraftCmd() tea.Cmd {
	ctx, j := m.ctx, m.journal
	return func() tea.Msg {
		d, err := j.Draft(ctx)
		return draftLoadedMsg{draft: d, err: err}
	}
}

func (m Model) storeDraftCmd() tea.Cmd {
	ctx, j := m.ctx, m.journal
	d := journal.Draft{Title: m.titleInput.Value(), Content: m.editor.Value()}
	return func() tea.Msg {
		_, err := j.SetDraft(ctx, d)
		return draftStoredMsg{err: err}
	}
}

// ---------- update ----------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.editor.SetWidth(max(20, min(100, m.width-6)))
		m.editor.SetHeight(max(5, m.height-12))
		return m, nil

	case entriesLoadedMsg:
		if msg.err != nil {
			return m.fail("load failed: " + msg.err.Error()), nil
		}
		m.entries = msg.entries
		m.cursor = min(m.cursor, max(0, len(m.entries)-1))
		return m, nil

	case savedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, journal.ErrEmptyContent) {
				return m.fail("nothing to save"), nil
			}
			return m.fail("save failed: " + msg.err.Error()), nil
		}
		m.mode = modeList
		m.resetCompose()
		m = m.ok("saved: " + msg.entry.Title + syncNote(msg.entry))
		return m, m.loadCmd()

	case deletedMsg:
		m.mode = modeList
		if msg.err != nil {
			return m.fail("delete failed: " + msg.err.Error()), nil
		}
		m = m.ok("deleted")
		return m, m.loadCmd()

	case titleMsg:
		m.titleInput.SetValue(msg.title)
		m.titleSource = msg.source
		return m.ok("title from " + string(msg.source)), nil

	case syncedMsg:
		if msg.err != nil {
			return m.fail("sync failed: " + msg.err.Error()), nil
		}
		m = m.ok(syncSummary(msg.report))
		return m, m.loadCmd()

	case draftLoadedMsg:
		if errors.Is(msg.err, journal.ErrNoDraftStore) {
			m.draftEnabled = false
			return m, nil
		}
		if msg.err != nil {
			return m.fail("draft: " + msg.err.Error()), nil
		}
		if !msg.draft.Empty() && m.mode == modeCompose && m.editor.Value() == "" {
			m.titleInput.SetValue(msg.draft.Title)
			m.editor.SetValue(msg.draft.Content)
			m = m.ok("restored draft")
		}
		return m, nil

	case draftStoredMsg:
		if msg.err != nil && !errors.Is(msg.err, journal.ErrNoDraftStore) {
			return m.fail("draft not kept: " + msg.err.Error()), nil
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeCompose:
			return m.updateCompose(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg.String())
		case modeView, modeHelp:
			return m.updateView(msg.String())
		default:
			return m.updateList(msg.String())
		}
	}

	if m.mode == modeCompose {
		return m.forwardCompose(msg)
	}
	return m, nil
}

func (m Model) updateList(k string) (tea.Model, tea.Cmd) {
	m.status = ""
	switch k {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = max(0, len(m.entries)-1)
	case "enter":
		if len(m.entries) > 0 {
			m.mode = modeView
		}
	case "n":
		return m.startCompose(nil)
	case "e":
		if e, ok := m.selected(); ok {
			return m.startCompose(&e)
		}
	case "d", "delete":
		if len(m.entries) > 0 {
			m.mode = modeConfirmDelete
		}
	case "/":
		m.mode = modeSearch
		m.searchInput.SetValue(m.query)
		return m, m.searchInput.Focus()
	case "esc":
		if m.query != "" {
			m.query = ""
			m.cursor = 0
			return m, m.loadCmd()
		}
	case "r":
		return m, m.loadCmd()
	case "s":
		m.status = "syncing..."
		return m, m.syncCmd()
	case "?":
		m.mode = modeHelp
	}
	return m, nil
}

func (m Model) updateView(k string) (tea.Model, tea.Cmd) {
	switch k {
	case "q", "esc", "enter", "?":
		m.mode = modeList
	case "e":
		if m.mode == modeView {
			if e, ok := m.selected(); ok {
				return m.startCompose(&e)
			}
		}
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateConfirmDelete(k string) (tea.Model, tea.Cmd) {
	e, ok := m.selected()
	switch k {
	case "y", "Y":
		if ok {
			return m, m.deleteCmd(e.ID)
		}
		m.mode = modeList
	default:
		m.mode = modeList
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.query = strings.TrimSpace(m.searchInput.Value())
		m.searchInput.Blur()
		m.mode = modeList
		m.cursor = 0
		return m, m.loadCmd()
	case "esc":
		m.searchInput.Blur()
		m.mode = modeList
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) startCompose(e *journal.Entry) (tea.Model, tea.Cmd) {
	m.resetCompose()
	m.mode = modeCompose
	m.field = fieldBody
	if e != nil {
		m.editingID = e.ID
		m.titleInput.SetValue(e.Title)
		m.editor.SetValue(e.Content)
		return m, m.editor.Focus()
	}
	cmds := []tea.Cmd{m.editor.Focus()}
	if m.draftEnabled {
		cmds = append(cmds, m.loadDraftCmd())
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) resetCompose() {
	m.editingID = ""
	m.titleSource = ""
	m.titleInput.SetValue("")
	m.titleInput.Blur()
	m.editor.SetValue("")
	m.editor.Blur()
}

func (m Model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		var cmd tea.Cmd
		if m.editingID == "" && m.draftEnabled {
			cmd = m.storeDraftCmd()
			if strings.TrimSpace(m.editor.Value()) != "" {
				m = m.ok("draft kept")
			}
		}
		m.mode = modeList
		m.editor.Blur()
		m.titleInput.Blur()
		return m, cmd
	case "tab", "shift+tab":
		if m.field == fieldBody {
			m.field = fieldTitle
			m.editor.Blur()
			return m, m.titleInput.Focus()
		}
		m.field = fieldBody
		m.titleInput.Blur()
		return m, m.editor.Focus()
	case "ctrl+s":
		if strings.TrimSpace(m.editor.Value()) == "" {
			return m.fail("nothing to save"), nil
		}
		m.status = "saving..."
		return m, m.saveCmd()
	case "ctrl+p":
		m.editor.SetValue(textproc.Punctuate(m.editor.Value()))
		return m.ok("punctuated"), nil
	case "ctrl+t":
		if strings.TrimSpace(m.editor.Value()) == "" {
			return m.fail("write something first"), nil
		}
		m.status = "titling..."
		return m, m.titleCmd()
	}
	return m.forwardCompose(msg)
}

func (m Model) forwardCompose(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.field == fieldTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

func (m Model) selected() (journal.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return journal.Entry{}, false
	}
	return m.entries[m.cursor], true
}

func (m Model) ok(s string) Model {
	m.status, m.statusIsErr = s, false
	return m
}

func (m Model) fail(s string) Model {
	m.status, m.statusIsErr = s, true
	return m
}

func syncNote(e journal.Entry) string {
	if e.Synced {
		return " (synced)"
	}
	return ""
}
