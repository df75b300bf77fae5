package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/thinkspace/internal/logtail"
)

// logState holds the in-app log view.
type logState struct {
	open     bool
	follow   bool
	entries  []logtail.Entry
	err      error
	viewport viewport.Model
}

type logLinesMsg struct {
	lines []string
	err   error
}

type logTickMsg struct {
	gen int
}

func readLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogTailLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

// logTickCmd schedules a re-read. gen ties the tick to one opening of the
// view so that reopening does not start a second refresh loop.
func logTickCmd(gen int) tea.Cmd {
	return tea.Tick(LogRefreshInterval, func(time.Time) tea.Msg {
		return logTickMsg{gen: gen}
	})
}

// openLogs shows the log view and starts loading the file.
func (m *Model) openLogs() tea.Cmd {
	m.logs.open = true
	m.logs.follow = true
	m.logGen++
	m.resizeLogViewport()
	if m.logPath == "" {
		return nil
	}
	return tea.Batch(readLogCmd(m.logPath), logTickCmd(m.logGen))
}

func (m *Model) resizeLogViewport() {
	w := m.width
	h := m.height - HeaderHeight - StatusHeight
	if h < 1 {
		h = 1
	}
	if m.logs.viewport.Width == 0 && m.logs.viewport.Height == 0 {
		m.logs.viewport = viewport.New(w, h)
	} else {
		m.logs.viewport.Width = w
		m.logs.viewport.Height = h
	}
	m.logs.viewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.logs.viewport.SetContent(m.renderLogContent())
	if m.logs.follow {
		m.logs.viewport.GotoBottom()
	}
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	m.logs.err = msg.err
	if msg.err == nil {
		m.logs.entries = logtail.ParseLines(msg.lines)
	}
	m.resizeLogViewport()
}

// handleLogsKey processes keys while the log view is open.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Logs), key.Matches(msg, m.keys.Escape):
		m.logs.open = false
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Select):
		m.logs.follow = !m.logs.follow
		if m.logs.follow {
			m.logs.viewport.GotoBottom()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.logs.viewport, cmd = m.logs.viewport.Update(msg)
	if !m.logs.viewport.AtBottom() {
		m.logs.follow = false
	}
	return m, cmd
}

func (m Model) renderLogContent() string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)

	if m.logPath == "" {
		return bg.FillLine(bg.Render("Logging to file is disabled.", styles.MutedText), m.width)
	}
	if m.logs.err != nil {
		return bg.FillLine(bg.Render("Cannot read log: "+m.logs.err.Error(), styles.DangerText), m.width)
	}
	if len(m.logs.entries) == 0 {
		return bg.FillLine(bg.Render("No log entries yet.", styles.MutedText), m.width)
	}

	lines := make([]string, 0, len(m.logs.entries))
	for _, e := range m.logs.entries {
		var parts []string
		if e.Time != "" {
			parts = append(parts, bg.Render(logClock(e.Time), styles.FaintText))
		}
		if e.Level != "" {
			parts = append(parts, styles.LevelStyle(e.Level).Render(e.Level))
		}
		msgStyle := styles.Text
		if e.Level == "ERROR" {
			msgStyle = styles.DangerText
		}
		parts = append(parts, bg.Render(e.Message, msgStyle))
		lines = append(lines, bg.FillLine(strings.Join(parts, bg.Space()), m.width))
	}
	return strings.Join(lines, "\n")
}

// logClock shortens an RFC 3339 log timestamp to local wall-clock time.
// Anything else is shown as written.
func logClock(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("15:04:05")
}

func (m Model) renderLogs() string {
	return m.logs.viewport.View()
}
