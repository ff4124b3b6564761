package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kimchoi-jjiggae/coachMe/internal/journal"
	"github.com/kimchoi-jjiggae/coachMe/internal/version"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	top := m.renderTopBar()
	status := m.statusBar()
	innerH := max(5, m.height-lipgloss.Height(top)-lipgloss.Height(status))

	var body string
	switch m.mode {
	case modeCompose:
		body = m.renderCompose()
	case modeView:
		body = m.renderEntry(innerH)
	default:
		body = m.renderList(innerH)
	}
	ui := lipgloss.JoinVertical(lipgloss.Left, top, body, status)

	switch m.mode {
	case modeSearch:
		ui = overlayCenter(ui, m.modal("Search", m.searchInput.View()+"\n\n"+m.theme.Hint.Render("Enter to search, Esc to cancel")))
	case modeConfirmDelete:
		if e, ok := m.selected(); ok {
			ui = overlayCenter(ui, m.modal("Delete entry?", e.Title+"\n\n"+m.theme.Hint.Render("y to delete, any other key to keep")))
		}
	case modeHelp:
		ui = overlayCenter(ui, m.helpView())
	}
	return ui
}

func (m Model) renderTopBar() string {
	title := m.theme.Title.Render("Voice Journal")
	scope := fmt.Sprintf("%d entr%s", len(m.entries), pluralY(len(m.entries)))
	if m.query != "" {
		scope += "  matching \"" + m.query + "\""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", m.theme.Label.Render(scope))
}

func (m Model) statusBar() string {
	mode := "LIST"
	switch m.mode {
	case modeView:
		mode = "VIEW"
	case modeCompose:
		mode = "COMPOSE"
		if m.editingID != "" {
			mode = "EDIT"
		}
	case modeSearch:
		mode = "SEARCH"
	case modeConfirmDelete:
		mode = "DELETE"
	case modeHelp:
		mode = "HELP"
	}

	hints := "n new • e edit • enter read • / search • d delete • s sync • ? help • q quit"
	if m.mode == modeCompose {
		hints = "ctrl+s save • ctrl+p punctuate • ctrl+t title • tab switch field • esc back"
	}
	if m.status != "" {
		if m.statusIsErr {
			hints = m.theme.Error.Render(m.status)
		} else {
			hints = m.status
		}
	}
	return m.theme.StatusBar.Render(mode + "  |  " + hints)
}

func (m Model) renderList(h int) string {
	if len(m.entries) == 0 {
		msg := "No entries yet. Press n to write one."
		if m.query != "" {
			msg = "Nothing matches. Esc clears the search."
		}
		return m.theme.Dim.Render("\n  " + msg + "\n")
	}

	rows := max(1, h-1)
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(len(m.entries), start+rows)

	w := max(20, m.width-2)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		e := m.entries[i]
		date := e.CreatedAt.In(m.loc).Format("Jan 02 15:04")
		mark := " "
		if !e.Synced {
			mark = "•"
		}
		line := fmt.Sprintf("%s %s  %s", mark, date, e.Title)
		line = clip(line, w)
		if i == m.cursor {
			line = m.theme.Selected.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderEntry(h int) string {
	e, ok := m.selected()
	if !ok {
		return ""
	}
	w := max(20, min(100, m.width-4))
	meta := e.CreatedAt.In(m.loc).Format("Monday, Jan 2 2006 at 15:04")
	if e.UpdatedAt.After(e.CreatedAt) {
		meta += "  (edited " + e.UpdatedAt.In(m.loc).Format("Jan 2 15:04") + ")"
	}
	content := lipgloss.NewStyle().Width(w).MaxHeight(max(1, h-4)).Render(e.Content)
	return m.theme.Border.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render(e.Title),
		m.theme.Label.Render(meta),
		"",
		content,
	))
}

func (m Model) renderCompose() string {
	heading := "New entry"
	if m.editingID != "" {
		heading = "Edit entry"
	}
	titleLabel := "Title"
	if m.field == fieldTitle {
		titleLabel = "➤ Title"
	}
	if m.titleSource != "" {
		titleLabel += m.theme.Hint.Render("  (" + string(m.titleSource) + ")")
	}
	bodyLabel := "Entry"
	if m.field == fieldBody {
		bodyLabel = "➤ Entry"
	}
	words := len(strings.Fields(m.editor.Value()))

	return m.theme.Border.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render(heading),
		"",
		m.theme.Label.Render(titleLabel),
		m.titleInput.View(),
		"",
		m.theme.Label.Render(bodyLabel),
		m.editor.View(),
		m.theme.Hint.Render(fmt.Sprintf("%d word%s", words, pluralS(words))),
	))
}

func (m Model) modal(title, content string) string {
	box := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render(title),
		"",
		content,
	)
	return m.theme.ModalBox.Render(box)
}

func (m Model) helpView() string {
	rows := [][2]string{
		{"j/k ↑/↓", "move"},
		{"enter", "read entry"},
		{"n", "new entry (restores the draft)"},
		{"e", "edit entry"},
		{"d", "delete entry"},
		{"/", "search, esc clears"},
		{"s", "sync with the remote store"},
		{"r", "reload"},
		{"ctrl+s", "save while composing"},
		{"ctrl+p", "punctuate the entry text"},
		{"ctrl+t", "suggest a title"},
		{"esc", "leave the composer, keeping a draft"},
		{"q", "quit"},
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(m.theme.Value.Render(fmt.Sprintf("%-10s", r[0])))
		b.WriteString(" ")
		b.WriteString(r[1])
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Hint.Render(version.GetVersionInfo()))
	return m.modal("Keys", b.String())
}

func overlayCenter(base, modal string) string {
	// naive center overlay using vertical join with blank lines
	baseH := lipgloss.Height(base)
	mh := lipgloss.Height(modal)
	topPad := max(0, (baseH-mh)/3)
	return lipgloss.JoinVertical(lipgloss.Left, strings.Repeat("\n", topPad), lipgloss.PlaceHorizontal(lipgloss.Width(base), lipgloss.Center, modal), "")
}

func syncSummary(r journal.SyncReport) string {
	s := fmt.Sprintf("synced: %d pushed, %d pulled", r.Pushed, r.Pulled)
	if r.Failed > 0 {
		s += fmt.Sprintf(", %d failed", r.Failed)
	}
	return s
}

func clip(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 1 {
		return string(r[:w])
	}
	return string(r[:w-1]) + "…"
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
