package utils

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kimchoi-jjiggae/coachMe/internal/journal"
)

// OutputFormat represents different output formats
type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
	FormatCompact OutputFormat = "compact"
	FormatQuiet   OutputFormat = "quiet"
)

func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatDefault, nil
	case FormatDefault, FormatTable, FormatJSON, FormatCSV, FormatCompact, FormatQuiet:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (default|table|json|csv|compact|quiet)", s)
	}
}

type RenderConfig struct {
	Format   OutputFormat
	Width    int
	ShowID   bool
	Color    bool
	Location *time.Location
}

func DefaultRenderConfig() *RenderConfig {
	width := 100
	if colEnv := os.Getenv("COLUMNS"); colEnv != "" {
		if v, err := strconv.Atoi(colEnv); err == nil && v > 40 {
			width = v
		}
	}
	return &RenderConfig{
		Format:   FormatDefault,
		Width:    width,
		ShowID:   true,
		Color:    true,
		Location: time.Local,
	}
}

// EntryList is a page of entries plus the context it was produced in.
type EntryList struct {
	Entries    []journal.Entry `json:"entries"`
	Total      int             `json:"total"`
	Page       int             `json:"page,omitempty"`
	PerPage    int             `json:"per_page,omitempty"`
	TotalPages int             `json:"total_pages,omitempty"`
	Query      string          `json:"query,omitempty"`
	Since      string          `json:"since,omitempty"`
}

type Renderer struct {
	config *RenderConfig
	styles *Styles
}

type Styles struct {
	Header    lipgloss.Style
	Separator lipgloss.Style
	Meta      lipgloss.Style
	Title     lipgloss.Style
	Text      lipgloss.Style
	Highlight lipgloss.Style
	Unsynced  lipgloss.Style
}

func NewRenderer(config *RenderConfig) *Renderer {
	if config == nil {
		config = DefaultRenderConfig()
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	return &Renderer{config: config, styles: initStyles(config.Color)}
}

func initStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Header:    plain.Bold(true),
			Separator: plain,
			Meta:      plain,
			Title:     plain.Bold(true),
			Text:      plain,
			Highlight: plain.Bold(true),
			Unsynced:  plain,
		}
	}
	return &Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Meta:      lipgloss.NewStyle().Faint(true),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89B4FA")),
		Text:      lipgloss.NewStyle(),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9E2AF")),
		Unsynced:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387")),
	}
}

func (r *Renderer) RenderEntryList(list *EntryList) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return renderJSON(list)
	case FormatCSV:
		return r.renderCSV(list)
	case FormatTable:
		return r.renderTable(list), nil
	case FormatCompact:
		return r.renderCompact(list), nil
	case FormatQuiet:
		return r.renderQuiet(list), nil
	default:
		return r.renderDefault(list), nil
	}
}

// RenderEntry renders one entry in full (used by "show").
func (r *Renderer) RenderEntry(e journal.Entry) (string, error) {
	if r.config.Format == FormatJSON {
		return renderJSON(e)
	}
	if r.config.Format == FormatQuiet {
		return e.Content + "\n", nil
	}
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(e.Title))
	b.WriteString("\n")
	b.WriteString(r.meta(e))
	b.WriteString("\n\n")
	b.WriteString(r.styles.Text.Render(lipgloss.NewStyle().Width(min(r.config.Width, 100)).Render(e.Content)))
	b.WriteString("\n")
	return b.String(), nil
}

func (r *Renderer) rule() string {
	return r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 120)))
}

func (r *Renderer) meta(e journal.Entry) string {
	var parts []string
	if r.config.ShowID {
		parts = append(parts, "["+shortID(e.ID)+"]")
	}
	parts = append(parts, e.CreatedAt.In(r.config.Location).Format("2006-01-02 15:04"))
	if e.UpdatedAt.After(e.CreatedAt) {
		parts = append(parts, "edited "+e.UpdatedAt.In(r.config.Location).Format("2006-01-02 15:04"))
	}
	line := r.styles.Meta.Render(strings.Join(parts, "  "))
	if !e.Synced {
		line += "  " + r.styles.Unsynced.Render("local only")
	}
	return line
}

func (r *Renderer) renderDefault(list *EntryList) string {
	var b strings.Builder

	if list.Query != "" {
		b.WriteString(r.styles.Header.Render("Search Results"))
		b.WriteString("  ")
		b.WriteString(r.styles.Meta.Render("query: " + list.Query))
	} else {
		b.WriteString(r.styles.Header.Render("Journal"))
		if list.Since != "" {
			b.WriteString("  ")
			b.WriteString(r.styles.Meta.Render("since " + list.Since))
		}
	}
	b.WriteString("\n")
	b.WriteString(r.rule())
	b.WriteString("\n")

	for _, e := range list.Entries {
		b.WriteString(r.styles.Title.Render(e.Title))
		b.WriteString("\n")
		b.WriteString(r.meta(e))
		b.WriteString("\n")
		b.WriteString(r.styles.Text.Render("  " + r.highlight(preview(e.Content, 200), list.Query)))
		b.WriteString("\n")
		b.WriteString(r.rule())
		b.WriteString("\n")
	}

	if list.TotalPages > 1 {
		p := NewPagination(list.Total, list.PerPage, list.Page)
		b.WriteString(r.styles.Meta.Render(p.FormatSummary()))
		b.WriteString("\n")
		if nav := p.FormatNavigation(); nav != "" {
			b.WriteString(r.styles.Meta.Render(nav))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// highlight marks case-insensitive occurrences of query in s.
func (r *Renderer) highlight(s, query string) string {
	if query == "" {
		return s
	}
	lower, q := strings.ToLower(s), strings.ToLower(query)
	if len(lower) != len(s) {
		return s
	}
	var b strings.Builder
	for {
		i := strings.Index(lower, q)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		b.WriteString(r.styles.Highlight.Render(s[i : i+len(q)]))
		s, lower = s[i+len(q):], lower[i+len(q):]
	}
}

func renderJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

func (r *Renderer) renderCSV(list *EntryList) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"id", "created_at", "updated_at", "title", "content", "synced"})
	for _, e := range list.Entries {
		_ = w.Write([]string{
			e.ID,
			e.CreatedAt.Format(time.RFC3339),
			e.UpdatedAt.Format(time.RFC3339),
			e.Title,
			e.Content,
			strconv.FormatBool(e.Synced),
		})
	}
	w.Flush()
	return b.String(), w.Error()
}

func (r *Renderer) renderTable(list *EntryList) string {
	var b strings.Builder
	b.WriteString("ID\tDate\tTitle\tPreview\n")
	b.WriteString(strings.Repeat("-", min(r.config.Width, 120)))
	b.WriteString("\n")
	for _, e := range list.Entries {
		b.WriteString(strings.Join([]string{
			shortID(e.ID),
			e.CreatedAt.In(r.config.Location).Format("2006-01-02 15:04"),
			e.Title,
			preview(e.Content, 50),
		}, "\t"))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) renderCompact(list *EntryList) string {
	var b strings.Builder
	for _, e := range list.Entries {
		fmt.Fprintf(&b, "%s %s %s\n",
			r.styles.Meta.Render(e.CreatedAt.In(r.config.Location).Format("01-02 15:04")),
			r.styles.Title.Render(e.Title),
			preview(e.Content, 60))
	}
	return b.String()
}

// renderQuiet prints bare ids for scripting.
func (r *Renderer) renderQuiet(list *EntryList) string {
	var b strings.Builder
	for _, e := range list.Entries {
		b.WriteString(e.ID)
		b.WriteString("\n")
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// preview flattens newlines and cuts s to at most n runes.
func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
