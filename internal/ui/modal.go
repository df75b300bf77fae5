package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/thinkspace/internal/board"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

const modalWidth = 52

// placeModal draws content in a bordered box centred on the screen.
func placeModal(theme Theme, width, height int, title, content string) string {
	styles := theme.Styles().WithBackground(theme.SurfaceAlt)
	body := styles.Text.Bold(true).Render(title) + "\n\n" + content

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Background(lipgloss.Color(theme.SurfaceAlt)).
		Padding(1, 2).
		Width(modalWidth).
		Render(body)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(lipgloss.Color(theme.Background)),
	)
}

// promptKind identifies what a submitted text prompt is for.
type promptKind int

const (
	promptPinText promptKind = iota
	promptImagePath
	promptSnapshotName
)

// promptSubmitMsg carries the value of a confirmed text prompt.
type promptSubmitMsg struct {
	kind   promptKind
	target string // pin id for promptPinText
	value  string
}

// textPrompt is a single-line input modal.
type textPrompt struct {
	kind   promptKind
	target string
	title  string
	hint   string
	input  textinput.Model
}

func newTextPrompt(kind promptKind, target, title, hint, initial string) *textPrompt {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Width = modalWidth - 6
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()
	return &textPrompt{kind: kind, target: target, title: title, hint: hint, input: ti}
}

func (p *textPrompt) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Confirm):
			submit := promptSubmitMsg{kind: p.kind, target: p.target, value: p.input.Value()}
			return p, func() tea.Msg { return submit }, true
		case key.Matches(km, keys.Escape):
			return p, nil, true
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

func (p *textPrompt) View(theme Theme, width, height int) string {
	styles := theme.Styles().WithBackground(theme.SurfaceAlt)
	content := p.input.View()
	if p.hint != "" {
		content += "\n\n" + styles.FaintText.Render(p.hint)
	}
	return placeModal(theme, width, height, p.title, content)
}

// confirmClearMsg is sent when the user accepts the clear-board prompt.
type confirmClearMsg struct{}

// confirmPrompt asks a yes/no question. Only "y" accepts.
type confirmPrompt struct {
	title    string
	question string
	onYes    tea.Msg
}

func (p *confirmPrompt) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil, false
	}
	switch strings.ToLower(km.String()) {
	case "y":
		yes := p.onYes
		return p, func() tea.Msg { return yes }, true
	case "n":
		return p, nil, true
	}
	if key.Matches(km, keys.Escape) {
		return p, nil, true
	}
	return p, nil, false
}

func (p *confirmPrompt) View(theme Theme, width, height int) string {
	styles := theme.Styles().WithBackground(theme.SurfaceAlt)
	content := styles.Text.Render(p.question) + "\n\n" +
		styles.WarningText.Render("y") + styles.MutedText.Render(" confirm   ") +
		styles.WarningText.Render("n") + styles.MutedText.Render(" cancel")
	return placeModal(theme, width, height, p.title, content)
}

// restoreSnapshotMsg asks the model to restore the chosen snapshot.
type restoreSnapshotMsg struct {
	id string
}

// snapshotPicker lists saved snapshots, newest first.
type snapshotPicker struct {
	snaps  []board.Snapshot
	cursor int
	now    time.Time
}

func newSnapshotPicker(snaps []board.Snapshot, now time.Time) *snapshotPicker {
	ordered := make([]board.Snapshot, len(snaps))
	for i, s := range snaps {
		ordered[len(snaps)-1-i] = s
	}
	return &snapshotPicker{snaps: ordered, now: now}
}

func (p *snapshotPicker) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil, false
	}
	switch {
	case key.Matches(km, keys.Escape), key.Matches(km, keys.OpenSnapshots):
		return p, nil, true
	case key.Matches(km, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(km, keys.Down):
		if p.cursor < len(p.snaps)-1 {
			p.cursor++
		}
	case key.Matches(km, keys.Confirm):
		if len(p.snaps) == 0 {
			return p, nil, true
		}
		id := p.snaps[p.cursor].ID
		return p, func() tea.Msg { return restoreSnapshotMsg{id: id} }, true
	}
	return p, nil, false
}

func (p *snapshotPicker) View(theme Theme, width, height int) string {
	styles := theme.Styles().WithBackground(theme.SurfaceAlt)
	if len(p.snaps) == 0 {
		return placeModal(theme, width, height, "Snapshots",
			styles.MutedText.Render("No snapshots yet. Press S on the board to save one."))
	}

	// Keep the cursor visible in short terminals.
	visible := height - 10
	if visible < 3 {
		visible = 3
	}
	start := 0
	if p.cursor >= visible {
		start = p.cursor - visible + 1
	}
	end := start + visible
	if end > len(p.snaps) {
		end = len(p.snaps)
	}

	var b strings.Builder
	inner := modalWidth - 6
	for i := start; i < end; i++ {
		s := p.snaps[i]
		meta := fmt.Sprintf("%d pins  %s", len(s.Pins), humanizeDuration(p.now.Sub(s.Created())))
		name := truncate(s.Name, inner-len(meta)-2)
		line := padRight(name, inner-len(meta)) + meta
		if i == p.cursor {
			b.WriteString(styles.Selected.Background(lipgloss.Color(theme.SelectionBg)).Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter restore   esc close"))
	return placeModal(theme, width, height, "Snapshots", b.String())
}
