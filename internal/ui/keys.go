package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Logs       key.Binding
	Escape     key.Binding
	Confirm    key.Binding

	// Pins
	AddPin       key.Binding
	AddImage     key.Binding
	NextPin      key.Binding
	PrevPin      key.Binding
	EditText     key.Binding
	CycleShape   key.Binding
	CycleMood    key.Binding
	CycleThought key.Binding

	// Nudge focused pin
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Selection and groups
	Select  key.Binding
	Group   key.Binding
	Ungroup key.Binding

	// History
	Undo key.Binding
	Redo key.Binding

	// Snapshots
	SaveSnapshot  key.Binding
	OpenSnapshots key.Binding
	ClearBoard    key.Binding

	// View
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	PanUp     key.Binding
	PanDown   key.Binding
	PanLeft   key.Binding
	PanRight  key.Binding
	ResetView key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Logs: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Toggle log view"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear selection / close"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),

		// Pins
		AddPin: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add pin"),
		),
		AddImage: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Add image pin"),
		),
		NextPin: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Focus next pin"),
		),
		PrevPin: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Focus previous pin"),
		),
		EditText: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter", "Edit text"),
		),
		CycleShape: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle shape"),
		),
		CycleMood: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Cycle mood"),
		),
		CycleThought: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Cycle thought"),
		),

		// Nudge
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move pin up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move pin down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Move pin left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Move pin right"),
		),

		// Selection and groups
		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle selection"),
		),
		Group: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "Group selected pins"),
		),
		Ungroup: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "Ungroup focused pin"),
		),

		// History
		Undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u", "Undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("r", "ctrl+y"),
			key.WithHelp("r", "Redo"),
		),

		// Snapshots
		SaveSnapshot: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Save snapshot"),
		),
		OpenSnapshots: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Open snapshots"),
		),
		ClearBoard: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Clear board"),
		),

		// View
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Zoom out"),
		),
		PanUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "Pan up"),
		),
		PanDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "Pan down"),
		),
		PanLeft: key.NewBinding(
			key.WithKeys("H", "shift+left"),
			key.WithHelp("H", "Pan left"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("L", "shift+right"),
			key.WithHelp("L", "Pan right"),
		),
		ResetView: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "Reset view"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddPin, k.EditText, k.Undo, k.Redo, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.AddPin, k.AddImage, k.NextPin, k.PrevPin, k.EditText},
		{k.CycleShape, k.CycleMood, k.CycleThought},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Group, k.Ungroup},
		{k.Undo, k.Redo},
		{k.SaveSnapshot, k.OpenSnapshots, k.ClearBoard},
		{k.ZoomIn, k.ZoomOut, k.PanUp, k.PanDown, k.PanLeft, k.PanRight, k.ResetView},
		{k.CycleTheme, k.Logs, k.Help, k.Quit},
	}
}
