package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/thinkspace/internal/board"
	"github.com/five82/thinkspace/internal/imageintake"
	"github.com/five82/thinkspace/internal/kv"
	"github.com/five82/thinkspace/internal/prefs"
	"github.com/five82/thinkspace/internal/state"
)

var testNow = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

type testModel struct {
	t         *testing.T
	m         Model
	store     *state.Store
	prefsPath string
}

func newTestModel(t *testing.T) *testModel {
	t.Helper()
	engine := board.New(board.WithStore(kv.NewMemory()))
	store := state.New(engine)
	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	m := New(Options{
		Store:     store,
		PrefsPath: prefsPath,
		Clock:     func() time.Time { return testNow },
	})
	tm := &testModel{t: t, m: m, store: store, prefsPath: prefsPath}
	tm.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return tm
}

// send delivers msg and runs any returned command that yields one of the
// model's own messages.
func (tm *testModel) send(msg tea.Msg) {
	tm.t.Helper()
	next, cmd := tm.m.Update(msg)
	tm.m = next.(Model)
	if cmd == nil {
		return
	}
	switch out := cmd().(type) {
	case promptSubmitMsg, restoreSnapshotMsg, confirmClearMsg:
		tm.send(out)
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+z":
		return tea.KeyMsg{Type: tea.KeyCtrlZ}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func (tm *testModel) press(keys ...string) {
	tm.t.Helper()
	for _, k := range keys {
		tm.send(keyMsg(k))
	}
}

// typeText sends runes to the open prompt. Cursor blink commands are not run.
func (tm *testModel) typeText(text string) {
	tm.t.Helper()
	next, _ := tm.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	tm.m = next.(Model)
}

func (tm *testModel) pins() []board.Pin {
	return tm.store.State().Pins
}

func TestAddPin_FocusesNewPin(t *testing.T) {
	tm := newTestModel(t)
	tm.press("a")

	pins := tm.pins()
	if len(pins) != 1 {
		t.Fatalf("len(pins) = %d, want 1", len(pins))
	}
	if tm.m.focus != pins[0].ID {
		t.Fatalf("focus = %q, want %q", tm.m.focus, pins[0].ID)
	}
}

func TestUndoRedoKeys(t *testing.T) {
	tm := newTestModel(t)
	tm.press("a", "a")

	tm.press("u")
	if n := len(tm.pins()); n != 1 {
		t.Fatalf("after undo len(pins) = %d, want 1", n)
	}
	tm.send(keyMsg("ctrl+z"))
	if n := len(tm.pins()); n != 0 {
		t.Fatalf("after second undo len(pins) = %d, want 0", n)
	}
	if tm.m.focus != "" {
		t.Fatalf("focus = %q, want cleared after its pin was undone", tm.m.focus)
	}

	tm.press("u")
	if !strings.Contains(tm.m.notice, "Nothing to undo") {
		t.Fatalf("notice = %q, want nothing-to-undo message", tm.m.notice)
	}

	tm.press("r", "r")
	if n := len(tm.pins()); n != 2 {
		t.Fatalf("after redo len(pins) = %d, want 2", n)
	}
}

func TestStyleKeysAreUndoable(t *testing.T) {
	tm := newTestModel(t)
	tm.press("a", "s", "m", "t")

	p := tm.pins()[0]
	if p.Shape != 1 || p.Mood != 1 || p.Thought != board.ThoughtDoubt {
		t.Fatalf("pin = %+v, want shape 1, mood 1, doubt", p)
	}
	if depth := tm.store.State().HistoryDepth; depth != 4 {
		t.Fatalf("HistoryDepth = %d, want 4", depth)
	}

	tm.press("u")
	if p := tm.pins()[0]; p.Thought != board.ThoughtIdea {
		t.Fatalf("Thought after undo = %q, want idea", p.Thought)
	}
}

func TestNudgeRunIsOneUndoStep(t *testing.T) {
	tm := newTestModel(t)
	tm.press("a")
	start := tm.pins()[0]

	tm.press("l", "l", "l")
	moved := tm.pins()[0]
	if moved.X != start.X+3*UnitsPerCol || moved.Y != start.Y {
		t.Fatalf("moved to (%v, %v), want (%v, %v)", moved.X, moved.Y, start.X+3*UnitsPerCol, start.Y)
	}
	if depth := tm.store.State().HistoryDepth; depth != 2 {
		t.Fatalf("HistoryDepth = %d, want 2 (add + one nudge run)", depth)
	}

	tm.press("u")
	if back := tm.pins()[0]; back.X != start.X || back.Y != start.Y {
		t.Fatalf("undo left pin at (%v, %v), want (%v, %v)", back.X, back.Y, start.X, start.Y)
	}

	// A different key between nudges starts a new step.
	tm.press("k", "T", "k")
	if depth := tm.store.State().HistoryDepth; depth != 3 {
		t.Fatalf("HistoryDepth = %d, want 3", depth)
	}
}

func TestEditTextPrompt(t *testing.T) {
	tm := newTestModel(t)
	tm.press("a", "enter")
	if tm.m.modal == nil {
		t.Fatalf("enter should open the text prompt")
	}

	tm.typeText("hi q")
	tm.press("enter")

	if tm.m.modal != nil {
		t.Fatalf("prompt should close on enter")
	}
	if got := tm.pins()[0].Text; got != "hi q" {
		t.Fatalf("Text = %q, want %q", got, "hi q")
	}
	if depth := tm.store.State().HistoryDepth; depth != 2 {
		t.Fatalf("HistoryDepth = %d, want 2", depth)
	}

	// Unchanged text records nothing.
	tm.press("enter", "enter")
	if depth := tm.store.State().HistoryDepth; depth != 2 {
		t.Fatalf("HistoryDepth after unchanged edit = %d, want 2", depth)
	}

	// Escape discards.
	tm.press("enter")
	tm.typeText("x")
	tm.press("esc")
	if got := tm.pins()[0].Text; got != "hi q" {
		t.Fatalf("Text after esc = %q, want %q", got, "hi q")
	}
}

func TestGroupingNeedsTwoSelectedPins(t *testing.T) {
	tm := newTestModel(t)
	tm.press("a", "a", "space", "g")

	if !tm.m.noticeIsError {
		t.Fatalf("grouping one pin should warn, notice = %q", tm.m.notice)
	}
	for _, p := range tm.pins() {
		if p.Grouped() {
			t.Fatalf("pin %s grouped with one selection", p.ID)
		}
	}

	tm.press("tab", "space", "g")
	pins := tm.pins()
	if !pins[0].Grouped() || pins[0].GroupID != pins[1].GroupID {
		t.Fatalf("pins not grouped together: %+v", pins)
	}
	if len(tm.m.selected) != 0 {
		t.Fatalf("selection = %v, want cleared after grouping", tm.m.selected)
	}

	tm.press("G")
	for _, p := range tm.pins() {
		if p.Grouped() {
			t.Fatalf("pin %s still grouped after G", p.ID)
		}
	}
}

func TestSnapshotSaveAndRestore(t *testing.T) {
	tm := newTestModel(t)
	tm.press("a", "S")
	tm.typeText("plan")
	tm.press("enter")

	snaps := tm.store.State().Snapshots
	if len(snaps) != 1 || snaps[0].Name != "plan" {
		t.Fatalf("snapshots = %+v, want one named plan", snaps)
	}
	depth := tm.store.State().HistoryDepth

	tm.press("a")
	tm.press("o", "enter")
	if n := len(tm.pins()); n != 1 {
		t.Fatalf("after restore len(pins) = %d, want 1", n)
	}

	tm.press("u")
	if n := len(tm.pins()); n != 2 {
		t.Fatalf("undo of restore len(pins) = %d, want 2", n)
	}
	if got := tm.store.State().HistoryDepth; got != depth+1 {
		t.Fatalf("HistoryDepth = %d, want %d", got, depth+1)
	}
}

func TestBlankSnapshotNameUsesDate(t *testing.T) {
	tm := newTestModel(t)
	tm.press("S", "enter")

	snaps := tm.store.State().Snapshots
	if len(snaps) != 1 || !strings.HasPrefix(snaps[0].Name, "Board ") {
		t.Fatalf("snapshots = %+v, want dated name", snaps)
	}
}

func TestClearBoardAsksFirst(t *testing.T) {
	tm := newTestModel(t)
	tm.press("a", "S", "enter")

	tm.press("X", "n")
	if n := len(tm.pins()); n != 1 {
		t.Fatalf("declined clear removed pins: %d left", n)
	}

	tm.press("X", "y")
	st := tm.store.State()
	if len(st.Pins) != 0 || len(st.Snapshots) != 0 || st.CanUndo() {
		t.Fatalf("state after clear = %+v, want empty", st)
	}
	if tm.m.focus != "" {
		t.Fatalf("focus = %q after clear", tm.m.focus)
	}
}

func TestZoomAndThemeArePersisted(t *testing.T) {
	tm := newTestModel(t)
	tm.press("+", "T")

	if tm.m.cam.Zoom != 1.1 {
		t.Fatalf("zoom = %v, want 1.1", tm.m.cam.Zoom)
	}
	if tm.m.theme.Name != "Daylight" {
		t.Fatalf("theme = %q, want Daylight", tm.m.theme.Name)
	}

	p, err := prefs.Load(tm.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != "Daylight" || p.Zoom != 1.1 {
		t.Fatalf("prefs = %+v, want Daylight at 1.1", p)
	}

	tm.press("0")
	if tm.m.cam != (camera{Zoom: 1}) {
		t.Fatalf("camera after reset = %+v", tm.m.cam)
	}
}

func TestImageLoaded(t *testing.T) {
	tm := newTestModel(t)
	tm.send(imageLoadedMsg{
		path: "pic.png",
		img:  imageintake.Image{DataURI: "data:image/png;base64,AAAA", MIME: "image/png", Width: 64, Height: 32},
	})

	pins := tm.pins()
	if len(pins) != 1 || !pins[0].HasImage() {
		t.Fatalf("pins = %+v, want one image pin", pins)
	}
	if s := pins[0].ImageSize; s == nil || s.W != 64 || s.H != 32 {
		t.Fatalf("ImageSize = %+v, want 64x32", s)
	}
	if tm.m.focus != pins[0].ID {
		t.Fatalf("image pin not focused")
	}

	tm.send(imageLoadedMsg{path: "nope.txt", err: errors.New("not a supported image")})
	if n := len(tm.pins()); n != 1 {
		t.Fatalf("failed load added a pin")
	}
	if !tm.m.noticeIsError {
		t.Fatalf("failed load should set an error notice")
	}
}

func TestImagePromptIgnoresBlankPath(t *testing.T) {
	tm := newTestModel(t)
	next, cmd := tm.m.Update(promptSubmitMsg{kind: promptImagePath, value: "   "})
	tm.m = next.(Model)
	if cmd != nil {
		t.Fatalf("blank path should not start a load")
	}
}

func TestEscapeClearsSelectionThenFocus(t *testing.T) {
	tm := newTestModel(t)
	tm.press("a", "space")
	if len(tm.m.selected) != 1 {
		t.Fatalf("selected = %v, want one pin", tm.m.selected)
	}
	tm.press("esc")
	if len(tm.m.selected) != 0 || tm.m.focus == "" {
		t.Fatalf("first esc should only clear selection")
	}
	tm.press("esc")
	if tm.m.focus != "" {
		t.Fatalf("second esc should clear focus")
	}
}

func TestFocusCycling(t *testing.T) {
	tm := newTestModel(t)
	tm.press("a", "a", "a", "esc")
	pins := tm.pins()

	tm.press("tab")
	if tm.m.focus != pins[0].ID {
		t.Fatalf("tab from nothing focused = %q, want first pin", tm.m.focus)
	}
	tm.send(keyMsg("shift+tab"))
	if tm.m.focus != pins[2].ID {
		t.Fatalf("shift+tab wraps to %q, want last pin", tm.m.focus)
	}
}

func TestHelpOverlay(t *testing.T) {
	tm := newTestModel(t)
	tm.press("?")
	if !tm.m.showHelp || !strings.Contains(tm.m.View(), "Keyboard") {
		t.Fatalf("help overlay not shown")
	}
	tm.press("a")
	if tm.m.showHelp {
		t.Fatalf("any key should close help")
	}
	if n := len(tm.pins()); n != 0 {
		t.Fatalf("key that closed help also acted on the board")
	}
}

func TestViewShowsHeaderAndStorageState(t *testing.T) {
	tm := newTestModel(t)
	if !strings.Contains(tm.m.View(), "Empty") {
		t.Fatalf("empty board hint missing")
	}

	tm.press("a")
	view := tm.m.View()
	if !strings.Contains(view, "thinkspace") {
		t.Fatalf("header missing from view")
	}
	if lines := strings.Count(view, "\n") + 1; lines != 40 {
		t.Fatalf("view has %d lines, want 40", lines)
	}

	tm.store.ReportHealth(errors.New("down"))
	tm.store.ReportHealth(errors.New("down"))
	if !strings.Contains(tm.m.View(), "OFFLINE") {
		t.Fatalf("offline storage not shown")
	}
}

func TestLogClock(t *testing.T) {
	want := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC).Local().Format("15:04:05")
	if got := logClock("2025-03-14T15:09:26Z"); got != want {
		t.Fatalf("logClock = %q, want %q", got, want)
	}
	if got := logClock("yesterday"); got != "yesterday" {
		t.Fatalf("logClock(yesterday) = %q, want it unchanged", got)
	}
}

func TestLogView(t *testing.T) {
	tm := newTestModel(t)
	tm.m.logPath = filepath.Join(t.TempDir(), "thinkspace.log")

	cmd := tm.m.openLogs()
	if cmd == nil || !tm.m.logs.open {
		t.Fatalf("openLogs should open the view and start loading")
	}
	tm.m.handleLogLines(logLinesMsg{lines: []string{
		"2025-03-14T15:09:26Z [WARN] persist board-pins: quota exceeded",
		"stray line",
	}})
	if len(tm.m.logs.entries) != 2 || tm.m.logs.entries[0].Level != "WARN" {
		t.Fatalf("entries = %+v", tm.m.logs.entries)
	}
	view := tm.m.View()
	if !strings.Contains(view, "quota") {
		t.Fatalf("log view missing entry text")
	}
	stamp := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC).Local().Format("15:04:05")
	if !strings.Contains(view, stamp) || !strings.Contains(view, "WARN") {
		t.Fatalf("log view missing time %s or level:\n%s", stamp, view)
	}
	if !strings.Contains(view, "stray line") {
		t.Fatalf("unparsed line should be shown as written")
	}

	tm.press("esc")
	if tm.m.logs.open {
		t.Fatalf("esc should close the log view")
	}
}
