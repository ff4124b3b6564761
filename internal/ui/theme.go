package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Border    lipgloss.Style
	Hint      lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Selected  lipgloss.Style
	Dim       lipgloss.Style
	StatusBar lipgloss.Style
	ModalBox  lipgloss.Style
}

var DefaultTheme = Theme{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Label:     lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#89B4FA")),
	Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F2CDCD")),
	Border:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#6C7086")).Padding(0, 1),
	Hint:      lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#CBA6F7")),
	Error:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
	Success:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E1E2E")).Background(lipgloss.Color("#89B4FA")),
	Dim:       lipgloss.NewStyle().Faint(true),
	StatusBar: lipgloss.NewStyle().Foreground(lipgloss.Color("#BAC2DE")).Background(lipgloss.Color("#313244")).Padding(0, 1),
	ModalBox:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#CBA6F7")).Padding(1, 2),
}

// PlainTheme drops colors for terminals without them.
var PlainTheme = Theme{
	Title:     lipgloss.NewStyle().Bold(true),
	Label:     lipgloss.NewStyle(),
	Value:     lipgloss.NewStyle(),
	Border:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
	Hint:      lipgloss.NewStyle(),
	Error:     lipgloss.NewStyle().Bold(true),
	Success:   lipgloss.NewStyle().Bold(true),
	Selected:  lipgloss.NewStyle().Reverse(true),
	Dim:       lipgloss.NewStyle(),
	StatusBar: lipgloss.NewStyle().Reverse(true).Padding(0, 1),
	ModalBox:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1, 2),
}

// ThemeByName maps the config "theme" value; unknown names get the default.
func ThemeByName(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "plain", "mono", "none":
		return PlainTheme
	default:
		return DefaultTheme
	}
}
