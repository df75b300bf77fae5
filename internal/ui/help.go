package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// helpTitles names the groups returned by keyMap.FullHelp, in order.
var helpTitles = []string{"Pins", "Style", "Move", "Groups", "History", "Snapshots", "View", "General"}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var sections []helpSection
	for i, group := range m.keys.FullHelp() {
		title := ""
		if i < len(helpTitles) {
			title = helpTitles[i]
		}
		sections = append(sections, newHelpSection(title, group))
	}

	var b strings.Builder

	// Title
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)

	// Two columns so the overlay fits in a normal terminal.
	half := (len(sections) + 1) / 2
	columns := make([]string, 0, 2)
	for _, part := range [][]helpSection{sections[:half], sections[half:]} {
		var col strings.Builder
		for i, section := range part {
			col.WriteString(styles.AccentText.Bold(true).Render(section.title))
			col.WriteString("\n")
			for _, item := range section.items {
				col.WriteString(keyStyle.Render(item.key))
				col.WriteString(styles.Text.Render(item.desc))
				col.WriteString("\n")
			}
			if i < len(part)-1 {
				col.WriteString("\n")
			}
		}
		columns = append(columns, lipgloss.NewStyle().Width(34).Render(col.String()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}

func newHelpSection(title string, bindings []key.Binding) helpSection {
	s := helpSection{title: title}
	for _, b := range bindings {
		h := b.Help()
		s.items = append(s.items, helpItem{key: h.Key, desc: h.Desc})
	}
	return s
}
