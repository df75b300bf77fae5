// Package board implements the ThinkSpace board state engine.
//
// # Overview
//
// The engine owns every pin on the board, the linear undo/redo history and
// the catalog of named snapshots. Callers issue mutations; the engine derives
// the next pin collection, persists it through a kv.Store and returns a State
// copy for rendering.
//
// # Core Types
//
//   - Pin: a positioned, styled note carrying text or an image data URI
//   - Snapshot: a named copy of the whole pin collection
//   - State: a detached copy of pins, snapshots and history depths
//   - Engine: the owner of all of the above
//
// # Pin Operations
//
//	AddPin()                       text pin near (180,180) with jitter
//	AddImagePin(src, w, h)         image pin at (200,200)
//	MovePin(id, x, y)              grouped pins move as one rigid body
//	UpdatePinText(id, text)
//	CyclePinShape(id)              period 5
//	CyclePinMood(id)               period 4
//	CyclePinThought(id)            question → idea → doubt → decision
//
// Operations naming an unknown id return the unchanged state. This is the
// engine's policy for stale references coming from the view: there is no
// NotFound error, and callers cannot tell a no-op from a change.
//
// # History
//
// History is explicit. BeginAction pushes a copy of the current pins onto the
// undo stack and clears the redo stack; the caller invokes it right before a
// mutation it wants undoable. Undo and Redo move whole collections between
// the stacks. Stacks are unbounded and only ClearBoard empties them.
//
//	BeginAction(); AddPin()   // history: [S0]      pins: S1
//	Undo()                    // history: []        pins: S0  future: [S1]
//	Redo()                    // history: [S0]      pins: S1  future: []
//
// # Copy Discipline
//
// No mutator writes into an existing slice. Each derives a new []Pin, so a
// collection referenced from the history stacks or a snapshot can never
// change after the fact. Pin has no mutable reference fields apart from
// ImageSize, which is cloned on copy; image data URIs are strings and are
// shared between copies, which keeps deep history cheap for image pins.
//
// # Groups
//
// Groups are a derived relation: pins sharing a GroupID. GroupPins needs at
// least two existing pins. A group that falls to a single member, because its
// other pins were regrouped elsewhere, is dissolved. MembersOf and Groups
// answer membership queries.
//
// # Persistence
//
// Two JSON payloads are written after every mutation that touches them:
//
//   - "board-pins": array of Pin
//   - "board-snaps": array of {id, name, pins, createdAt}
//
// Store failures are logged and otherwise ignored; in-memory state stays
// authoritative. LoadAll reads both payloads once at startup, treats
// malformed data as absent and upgrades older pins (thought defaults to
// idea, createdAt to load time).
//
// # Usage Example
//
//	store, _ := kv.NewFileStore(dir)
//	eng := board.New(board.WithStore(store))
//	eng.LoadAll()
//
//	eng.BeginAction()
//	st := eng.AddPin()
//	id := st.Pins[len(st.Pins)-1].ID
//	eng.BeginAction()
//	eng.CyclePinShape(id)
//	eng.Undo() // shape back to 0
package board
