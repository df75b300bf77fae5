package board

// BeginAction records the current pins as an undo point and discards any
// pending redo branch. Call it before a mutation that should be undoable.
func (e *Engine) BeginAction() State {
	e.history = append(e.history, clonePins(e.pins))
	e.future = nil
	return e.State()
}

// Undo restores the most recent undo point. The pins being replaced become
// the first redo entry.
func (e *Engine) Undo() State {
	if len(e.history) == 0 {
		return e.State()
	}
	last := len(e.history) - 1
	prev := e.history[last]
	e.history = e.history[:last]

	future := make([][]Pin, 0, len(e.future)+1)
	future = append(future, e.pins)
	e.future = append(future, e.future...)

	return e.setPins(prev)
}

// Redo re-applies the first redo entry and pushes the replaced pins back onto
// the undo stack.
func (e *Engine) Redo() State {
	if len(e.future) == 0 {
		return e.State()
	}
	next := e.future[0]
	e.future = e.future[1:]
	e.history = append(e.history, e.pins)
	return e.setPins(next)
}

// CanUndo reports whether Undo would change anything.
func (e *Engine) CanUndo() bool { return len(e.history) > 0 }

// CanRedo reports whether Redo would change anything.
func (e *Engine) CanRedo() bool { return len(e.future) > 0 }
