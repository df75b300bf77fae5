package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the top bar: name, board counts, history and view.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	const sep = "  "

	parts := []string{
		bg.Render("thinkspace", styles.Logo),
		bg.Render(fmt.Sprintf("%d pins", len(m.board.Pins)), styles.Text),
	}
	if n := len(m.selected); n > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("%d selected", n), styles.AccentText))
	}
	if n := len(m.board.Snapshots); n > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("%d snapshots", n), styles.MutedText))
	}
	parts = append(parts,
		m.historyBadge(bg, styles, "undo", m.board.HistoryDepth),
		m.historyBadge(bg, styles, "redo", m.board.FutureDepth),
		bg.Render(fmt.Sprintf("zoom %d%%", int(m.cam.Zoom*100+0.5)), styles.MutedText),
	)

	if m.store != nil {
		if h := m.store.Health(); h.IsOffline() {
			parts = append(parts, bg.Render("STORAGE OFFLINE", styles.DangerText))
		}
	}

	return styles.Header.Width(m.width).MaxHeight(HeaderHeight).Render(bg.Join(parts, sep))
}

func (m Model) historyBadge(bg BgStyle, styles Styles, label string, depth int) string {
	if depth == 0 {
		return bg.Render(label, styles.FaintText)
	}
	return bg.Render(fmt.Sprintf("%s %d", label, depth), styles.SuccessText)
}

// renderStatus renders the bottom bar: a transient notice if one is active,
// otherwise details of the focused pin followed by short help.
func (m Model) renderStatus() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	const sep = "  "

	var parts []string
	if m.notice != "" && m.now().Before(m.noticeUntil) {
		style := styles.InfoText
		if m.noticeIsError {
			style = styles.DangerText
		}
		parts = append(parts, bg.Render(m.notice, style))
	} else if p, ok := m.board.Pin(m.focus); ok {
		parts = append(parts,
			bg.Render(thoughtGlyph(p.Thought)+" "+string(p.Thought), styles.AccentText),
			bg.Render(shapeName(p.Shape), styles.MutedText),
			bg.Render("mood "+moodName(p.Mood), styles.MutedText),
			bg.Render(fmt.Sprintf("(%.0f, %.0f)", p.X, p.Y), styles.FaintText),
		)
		if p.HasImage() {
			parts = append(parts, bg.Render("image "+formatBytes(len(p.Image)), styles.FaintText))
		}
		if label, ok := groupLabels(m.board.Pins)[p.GroupID]; ok {
			parts = append(parts, bg.Render("group "+label, styles.WarningText))
		}
	}

	if m.logs.open {
		follow := "follow off"
		if m.logs.follow {
			follow = "follow on"
		}
		parts = append(parts, bg.Render("log "+follow+"  space toggle  v/esc close", styles.FaintText))
	} else {
		var help []string
		for _, b := range m.keys.ShortHelp() {
			h := b.Help()
			help = append(help, h.Key+" "+h.Desc)
		}
		parts = append(parts, bg.Render(strings.Join(help, "  "), styles.FaintText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Muted)).
		Width(m.width).
		MaxHeight(StatusHeight).
		Render(bg.Join(parts, sep))
}
