package board

import "strings"

const snapshotNameLayout = "2006-01-02 15:04"

// SaveSnapshot stores a named copy of the current pins. A blank name is
// replaced with the save time.
func (e *Engine) SaveSnapshot(name string) State {
	now := e.now()
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Board " + now.Format(snapshotNameLayout)
	}
	snap := Snapshot{
		ID:        e.newID(),
		Name:      name,
		Pins:      clonePins(e.pins),
		CreatedAt: now.UnixMilli(),
	}
	if snap.Pins == nil {
		snap.Pins = []Pin{}
	}

	out := make([]Snapshot, 0, len(e.snapshots)+1)
	out = append(out, e.snapshots...)
	e.snapshots = append(out, snap)
	e.persistSnapshots()
	return e.State()
}

// Snapshots returns a copy of the saved snapshots, oldest first.
func (e *Engine) Snapshots() []Snapshot {
	return cloneSnapshots(e.snapshots)
}

// Snapshot returns the snapshot with the given id.
func (e *Engine) Snapshot(id string) (Snapshot, bool) {
	for _, s := range e.snapshots {
		if s.ID == id {
			return s.clone(), true
		}
	}
	return Snapshot{}, false
}

// RestoreSnapshot replaces the current pins with a copy of the snapshot's
// pins. It does not record an undo point; call BeginAction first to make the
// restore undoable.
func (e *Engine) RestoreSnapshot(id string) State {
	snap, ok := e.Snapshot(id)
	if !ok {
		return e.State()
	}
	pins := snap.Pins
	if pins == nil {
		pins = []Pin{}
	}
	return e.setPins(pins)
}
