package state

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/five82/thinkspace/internal/board"
)

// Health describes the most recent storage reachability checks.
type Health struct {
	LastChecked         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when storage has failed more than one check in a row.
func (h Health) IsOffline() bool {
	return h.ConsecutiveFailures >= 2
}

// Store serializes access to a board engine and fans out the resulting state.
type Store struct {
	mu       sync.RWMutex
	engine   *board.Engine
	current  board.State
	revision uint64
	updated  time.Time
	health   Health

	subMu   sync.Mutex
	subs    map[int]func(board.State)
	nextSub int
}

// New wraps engine. The engine must not be used directly afterwards.
func New(engine *board.Engine) *Store {
	return &Store{
		engine:  engine,
		current: engine.State(),
		updated: time.Now(),
		subs:    make(map[int]func(board.State)),
	}
}

// State returns a copy of the latest state.
func (s *Store) State() board.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Revision counts completed dispatches.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// LastUpdated returns the time of the most recent dispatch.
func (s *Store) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updated
}

// Dispatch runs fn with exclusive access to the engine and returns the state
// it produced. Subscribers are called after the lock is released, in
// subscription order, so they may call State or Dispatch themselves.
func (s *Store) Dispatch(fn func(*board.Engine)) board.State {
	s.mu.Lock()
	fn(s.engine)
	s.current = s.engine.State()
	s.revision++
	s.updated = time.Now()
	st := s.current.Clone()
	s.mu.Unlock()

	for _, sub := range s.subscribers() {
		sub(st.Clone())
	}
	return st
}

// Subscribe registers fn to receive the state after every dispatch. The
// returned function removes it and is safe to call more than once.
func (s *Store) Subscribe(fn func(board.State)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) subscribers() []func(board.State) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(board.State), len(ids))
	for i, id := range ids {
		out[i] = s.subs[id]
	}
	return out
}

// ReportHealth records the outcome of a storage check. A nil err resets the
// failure count.
func (s *Store) ReportHealth(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.health.LastChecked = time.Now()
	if err != nil {
		s.health.LastError = err
		s.health.ConsecutiveFailures++
		return
	}
	s.health.LastError = nil
	s.health.ConsecutiveFailures = 0
}

// Health returns a copy of the latest storage health.
func (s *Store) Health() Health {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h := s.health
	if s.health.LastError != nil {
		h.LastError = fmt.Errorf("%w", s.health.LastError)
	}
	return h
}
