package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/thinkspace/internal/board"
	"github.com/five82/thinkspace/internal/imageintake"
)

// handleKey routes keyboard input to the active layer: modal, help, log view
// or board.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.logs.open {
		return m.handleLogsKey(msg)
	}

	return m.handleBoardKey(msg)
}

func (m Model) isNudge(msg tea.KeyMsg) bool {
	return key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right)
}

// handleBoardKey processes keyboard input on the canvas.
func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A run of nudges on one pin is a single undo step; any other key ends it.
	if !m.isNudge(msg) {
		m.nudging = ""
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Logs):
		return m, m.openLogs()

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.resizeLogViewport()

	case key.Matches(msg, m.keys.Escape):
		if len(m.selected) > 0 {
			m.selected = make(map[string]bool)
		} else {
			m.focus = ""
		}

	// Pins
	case key.Matches(msg, m.keys.AddPin):
		m.dispatch(func(e *board.Engine) {
			e.BeginAction()
			e.AddPin()
		})
		m.focusLast()

	case key.Matches(msg, m.keys.AddImage):
		m.modal = newTextPrompt(promptImagePath, "", "Add image",
			"Path to a PNG, JPEG, GIF, BMP or WebP file", "")

	case key.Matches(msg, m.keys.NextPin):
		m.cycleFocus(1)

	case key.Matches(msg, m.keys.PrevPin):
		m.cycleFocus(-1)

	case key.Matches(msg, m.keys.EditText):
		if p, ok := m.board.Pin(m.focus); ok {
			m.modal = newTextPrompt(promptPinText, p.ID, "Edit pin", "enter save   esc cancel", p.Text)
		}

	case key.Matches(msg, m.keys.CycleShape):
		m.onFocused(func(e *board.Engine, id string) { e.CyclePinShape(id) })

	case key.Matches(msg, m.keys.CycleMood):
		m.onFocused(func(e *board.Engine, id string) { e.CyclePinMood(id) })

	case key.Matches(msg, m.keys.CycleThought):
		m.onFocused(func(e *board.Engine, id string) { e.CyclePinThought(id) })

	case key.Matches(msg, m.keys.Up):
		m.nudge(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.nudge(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.nudge(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.nudge(1, 0)

	// Selection and groups
	case key.Matches(msg, m.keys.Select):
		if m.focus != "" {
			if m.selected[m.focus] {
				delete(m.selected, m.focus)
			} else {
				m.selected[m.focus] = true
			}
		}

	case key.Matches(msg, m.keys.Group):
		m.groupSelected()

	case key.Matches(msg, m.keys.Ungroup):
		m.ungroupFocused()

	// History
	case key.Matches(msg, m.keys.Undo):
		if !m.board.CanUndo() {
			m.setNotice("Nothing to undo", false)
			break
		}
		m.dispatch(func(e *board.Engine) { e.Undo() })

	case key.Matches(msg, m.keys.Redo):
		if !m.board.CanRedo() {
			m.setNotice("Nothing to redo", false)
			break
		}
		m.dispatch(func(e *board.Engine) { e.Redo() })

	// Snapshots
	case key.Matches(msg, m.keys.SaveSnapshot):
		m.modal = newTextPrompt(promptSnapshotName, "", "Save snapshot",
			"Leave blank to name it by date", "")

	case key.Matches(msg, m.keys.OpenSnapshots):
		m.modal = newSnapshotPicker(m.board.Snapshots, m.now())

	case key.Matches(msg, m.keys.ClearBoard):
		m.modal = &confirmPrompt{
			title:    "Clear board",
			question: "Remove every pin and snapshot? This cannot be undone.",
			onYes:    confirmClearMsg{},
		}

	// View
	case key.Matches(msg, m.keys.ZoomIn):
		m.cam = m.cam.zoomBy(ZoomStep)
		m.savePrefs()

	case key.Matches(msg, m.keys.ZoomOut):
		m.cam = m.cam.zoomBy(-ZoomStep)
		m.savePrefs()

	case key.Matches(msg, m.keys.PanUp):
		m.cam = m.cam.panBy(0, -PanCells/2)
	case key.Matches(msg, m.keys.PanDown):
		m.cam = m.cam.panBy(0, PanCells/2)
	case key.Matches(msg, m.keys.PanLeft):
		m.cam = m.cam.panBy(-PanCells, 0)
	case key.Matches(msg, m.keys.PanRight):
		m.cam = m.cam.panBy(PanCells, 0)

	case key.Matches(msg, m.keys.ResetView):
		m.cam = newCamera(1)
		m.savePrefs()
	}

	return m, nil
}

// onFocused applies a recorded style change to the focused pin.
func (m *Model) onFocused(fn func(e *board.Engine, id string)) {
	id := m.focus
	if id == "" {
		return
	}
	m.dispatch(func(e *board.Engine) {
		e.BeginAction()
		fn(e, id)
	})
}

// nudge moves the focused pin by one cell. Grouped pins carry their group.
func (m *Model) nudge(dcol, drow int) {
	p, ok := m.board.Pin(m.focus)
	if !ok {
		return
	}
	dx, dy := m.cam.cellSize()
	x := p.X + float64(dcol)*dx
	y := p.Y + float64(drow)*dy
	first := m.nudging != p.ID
	m.dispatch(func(e *board.Engine) {
		if first {
			e.BeginAction()
		}
		e.MovePin(p.ID, x, y)
	})
	m.nudging = p.ID
	m.ensureVisible(p.ID)
}

func (m *Model) focusLast() {
	if n := len(m.board.Pins); n > 0 {
		m.focus = m.board.Pins[n-1].ID
		m.ensureVisible(m.focus)
	}
}

// cycleFocus moves focus through pins in board order.
func (m *Model) cycleFocus(step int) {
	n := len(m.board.Pins)
	if n == 0 {
		return
	}
	idx := -1
	for i, p := range m.board.Pins {
		if p.ID == m.focus {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && step > 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = ((idx+step)%n + n) % n
	}
	m.focus = m.board.Pins[idx].ID
	m.ensureVisible(m.focus)
}

// ensureVisible pans so the pin's top-left corner is on screen.
func (m *Model) ensureVisible(id string) {
	p, ok := m.board.Pin(id)
	if !ok || m.width == 0 {
		return
	}
	r := layoutPin(p, m.cam)
	h := m.canvasHeight()
	if r.col >= 0 && r.row >= 0 && r.col+MinPinCols <= m.width && r.row+MinPinRows <= h {
		return
	}
	// Centre the pin.
	dx, dy := m.cam.cellSize()
	m.cam.PanX = p.X - float64(m.width/2-r.w/2)*dx
	m.cam.PanY = p.Y - float64(h/2-r.h/2)*dy
}

func (m *Model) selectedInBoardOrder() []string {
	var ids []string
	for _, p := range m.board.Pins {
		if m.selected[p.ID] {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func (m *Model) groupSelected() {
	ids := m.selectedInBoardOrder()
	if len(ids) < board.MinGroupSize {
		m.setNotice("Select at least two pins with space to group them", true)
		return
	}
	m.dispatch(func(e *board.Engine) {
		e.BeginAction()
		e.GroupPins(ids)
	})
	m.selected = make(map[string]bool)
	m.setNotice(fmt.Sprintf("Grouped %d pins", len(ids)), false)
}

func (m *Model) ungroupFocused() {
	p, ok := m.board.Pin(m.focus)
	if !ok || !p.Grouped() {
		m.setNotice("Focused pin is not in a group", true)
		return
	}
	gid := p.GroupID
	m.dispatch(func(e *board.Engine) {
		e.BeginAction()
		e.UngroupPins(gid)
	})
	m.setNotice("Group dissolved", false)
}

func (m Model) handlePromptSubmit(msg promptSubmitMsg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case promptPinText:
		p, ok := m.board.Pin(msg.target)
		if !ok || p.Text == msg.value {
			return m, nil
		}
		m.dispatch(func(e *board.Engine) {
			e.BeginAction()
			e.UpdatePinText(msg.target, msg.value)
		})

	case promptImagePath:
		path := strings.TrimSpace(msg.value)
		if path == "" {
			return m, nil
		}
		return m, loadImageCmd(path)

	case promptSnapshotName:
		m.dispatch(func(e *board.Engine) { e.SaveSnapshot(msg.value) })
		if n := len(m.board.Snapshots); n > 0 {
			m.setNotice(fmt.Sprintf("Saved snapshot %q", m.board.Snapshots[n-1].Name), false)
		}
	}
	return m, nil
}

type imageLoadedMsg struct {
	path string
	img  imageintake.Image
	err  error
}

func loadImageCmd(path string) tea.Cmd {
	return func() tea.Msg {
		img, err := imageintake.Load(path)
		return imageLoadedMsg{path: path, img: img, err: err}
	}
}

func (m *Model) handleImageLoaded(msg imageLoadedMsg) {
	if msg.err != nil {
		m.log.Warnf("load image %s: %v", msg.path, msg.err)
		m.setNotice("Image not added: "+msg.err.Error(), true)
		return
	}
	img := msg.img
	m.dispatch(func(e *board.Engine) {
		e.BeginAction()
		e.AddImagePin(img.DataURI, float64(img.Width), float64(img.Height))
	})
	m.focusLast()
	m.setNotice(fmt.Sprintf("Added %s image (%dx%d)", img.MIME, img.Width, img.Height), false)
}

func (m *Model) restoreSnapshot(id string) {
	var name string
	found := false
	for _, s := range m.board.Snapshots {
		if s.ID == id {
			name, found = s.Name, true
		}
	}
	if !found {
		return
	}
	m.dispatch(func(e *board.Engine) {
		e.BeginAction()
		e.RestoreSnapshot(id)
	})
	m.selected = make(map[string]bool)
	m.setNotice(fmt.Sprintf("Restored %q (u to undo)", name), false)
}

func (m *Model) clearBoard() {
	m.dispatch(func(e *board.Engine) { e.ClearBoard() })
	m.focus = ""
	m.selected = make(map[string]bool)
	m.setNotice("Board cleared", false)
}
