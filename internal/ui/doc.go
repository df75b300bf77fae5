// Package ui renders the ThinkSpace board in the terminal with Bubble Tea.
//
// # Overview
//
// The board is an unbounded plane measured in board units. A camera (pan and
// zoom) maps it onto a grid of terminal cells: at zoom 1.0 one column covers
// 8 units and one row covers 16. Pins are drawn as bordered boxes whose
// border style follows the pin's shape, with the thought badge, group label
// and mood dot on the top edge.
//
// # State Flow
//
//	key press ──→ handleBoardKey ──→ state.Store.Dispatch(fn)
//	                                        │
//	               Model.board ←────────────┘ (board.State copy)
//
// Every recorded change calls BeginAction inside the same Dispatch as the
// mutation. A run of nudges on the same pin records one undo point. Snapshot
// saves and clears are not undoable; snapshot restores are.
//
// # Layers
//
// Keys go to the first open layer: modal (prompts, confirm, snapshot list),
// help overlay, log view, then the board.
//
// # Preferences
//
// Theme and zoom are written to the prefs file whenever they change.
package ui
