package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/thinkspace/internal/board"
	"github.com/five82/thinkspace/internal/logging"
	"github.com/five82/thinkspace/internal/prefs"
	"github.com/five82/thinkspace/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Logger    *logging.Logger
	ThemeName string
	Zoom      float64
	PrefsPath string
	LogPath   string

	// Notice is shown in the status bar on start, e.g. a storage fallback.
	Notice string

	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	store     *state.Store
	log       *logging.Logger
	keys      keyMap
	prefsPath string
	logPath   string
	now       func() time.Time

	// UI state
	theme    Theme
	cam      camera
	width    int
	height   int
	ready    bool
	showHelp bool
	modal    Modal
	logs     logState
	logGen   int

	// Board state
	board    board.State
	revision uint64
	focus    string
	selected map[string]bool
	nudging  string // pin being moved by consecutive nudges

	// Status bar notice
	notice        string
	noticeUntil   time.Time
	noticeIsError bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Defaults().Theme
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		store:     opts.Store,
		log:       logger,
		keys:      DefaultKeyMap(),
		prefsPath: prefsPath,
		logPath:   opts.LogPath,
		now:       clock,
		theme:     GetTheme(themeName),
		cam:       newCamera(opts.Zoom),
		selected:  make(map[string]bool),
	}
	if m.store != nil {
		m.board = m.store.State()
		m.revision = m.store.Revision()
	}
	if opts.Notice != "" {
		m.setNotice(opts.Notice, true)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(UIRefreshInterval)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeLogViewport()
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tickCmd(UIRefreshInterval)

	case promptSubmitMsg:
		return m.handlePromptSubmit(msg)

	case imageLoadedMsg:
		m.handleImageLoaded(msg)
		return m, nil

	case restoreSnapshotMsg:
		m.restoreSnapshot(msg.id)
		return m, nil

	case confirmClearMsg:
		m.clearBoard()
		return m, nil

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil

	case logTickMsg:
		if !m.logs.open || msg.gen != m.logGen {
			return m, nil
		}
		return m, tea.Batch(readLogCmd(m.logPath), logTickCmd(m.logGen))
	}

	// Cursor blink and similar messages belong to the open modal.
	if m.modal != nil {
		var cmd tea.Cmd
		m.modal, cmd, _ = m.modal.Update(msg, m.keys)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if m.logs.open {
		b.WriteString(m.renderLogs())
	} else {
		b.WriteString(m.renderCanvas())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m Model) canvasHeight() int {
	h := m.height - HeaderHeight - StatusHeight
	if h < 0 {
		return 0
	}
	return h
}

func (m Model) renderCanvas() string {
	g := renderBoard(m.width, m.canvasHeight(), m.board.Pins, m.cam, m.theme, m.focus, m.selected)
	if len(m.board.Pins) == 0 {
		hint := "Empty board. Press a to add a pin, ? for help."
		col := (g.w - len(hint)) / 2
		if col < 0 {
			col = 0
		}
		g.text(col, g.h/2, hint, g.w, paint{fg: m.theme.Muted, bg: m.theme.Background})
	}
	return g.render()
}

// dispatch runs fn against the engine and adopts the resulting state.
func (m *Model) dispatch(fn func(*board.Engine)) {
	if m.store == nil {
		return
	}
	m.board = m.store.Dispatch(fn)
	m.revision = m.store.Revision()
	m.reconcile()
}

// refresh picks up store changes made outside the key handlers.
func (m *Model) refresh() {
	if m.store == nil {
		return
	}
	if rev := m.store.Revision(); rev != m.revision {
		m.board = m.store.State()
		m.revision = rev
		m.reconcile()
	}
}

// reconcile drops focus and selection entries whose pins no longer exist.
func (m *Model) reconcile() {
	if _, ok := m.board.Pin(m.focus); !ok {
		m.focus = ""
		m.nudging = ""
	}
	for id := range m.selected {
		if _, ok := m.board.Pin(id); !ok {
			delete(m.selected, id)
		}
	}
}

func (m *Model) setNotice(text string, isError bool) {
	m.notice = text
	m.noticeIsError = isError
	m.noticeUntil = m.now().Add(NoticeTTL)
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Zoom: m.cam.Zoom}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.Warnf("save prefs: %v", err)
	}
}

// Messages

type tickMsg time.Time

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	_, err := tea.NewProgram(m, programOpts...).Run()
	return err
}
