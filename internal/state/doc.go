// Package state provides thread-safe access to the board engine.
//
// # Overview
//
// board.Engine is single-threaded. The Store wraps one engine so that the UI,
// the app's logging hook and tests can share it: every mutation goes through
// Dispatch and every read goes through State.
//
// # Architecture
//
//	UI key handler            Subscribers
//	┌──────────────────┐      ┌──────────────────┐
//	│ store.Dispatch(  │      │ log revision     │
//	│   e.BeginAction  │─────→│ refresh views    │
//	│   e.MovePin ...) │      │                  │
//	└──────────────────┘      └──────────────────┘
//	          │
//	          ↓
//	   board.Engine (under lock) ──→ kv.Store
//
// # Concurrency Model
//
//   - Dispatch(): holds the write lock while fn runs and the new state is
//     captured
//   - State(), Revision(), LastUpdated(): read lock only
//   - Subscribers: called after the write lock is released, so a subscriber
//     may read the store or dispatch again without deadlocking
//
// The lock is held across the engine's persistence call. Store writes are
// bounded by the engine's store timeout.
//
// # Copying
//
// State and Dispatch return board.State values produced by State.Clone, and
// each subscriber receives its own copy. Callers may modify what they get.
//
// # Storage Health
//
// The app's health monitor pings the storage backend and reports each result
// with ReportHealth. Health mirrors the outcome for the status bar:
//
//	store.ReportHealth(err)   // err != nil: LastError = err, failures++
//	store.ReportHealth(nil)   // failures = 0, LastError = nil
//
// IsOffline is true from the second consecutive failure, so a single slow
// ping does not flash a warning.
//
// # Usage Example
//
//	store := state.New(engine)
//	cancel := store.Subscribe(func(st board.State) {
//		logger.Debugf("board now has %d pins", len(st.Pins))
//	})
//	defer cancel()
//
//	store.Dispatch(func(e *board.Engine) {
//		e.BeginAction()
//		e.AddPin()
//	})
package state
