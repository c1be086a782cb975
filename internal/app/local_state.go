package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/secondary"
)

// LocalState caches the device-local state document and writes every change through.
// When the store fails, the state stays in memory for the rest of the process.
type LocalState struct {
	mu       sync.Mutex
	store    secondary.LocalStateStore
	logger   *slog.Logger
	state    *secondary.LocalStateRecord
	loaded   bool
	inMemory bool
}

// NewLocalState creates a LocalState over store.
func NewLocalState(store secondary.LocalStateStore, logger *slog.Logger) *LocalState {
	return &LocalState{store: store, logger: logger}
}

// Snapshot returns a copy of the current state.
func (s *LocalState) Snapshot(ctx context.Context) *secondary.LocalStateRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	return s.state.Clone()
}

// Update applies fn to the state and persists the result. It returns a copy of the new state.
func (s *LocalState) Update(ctx context.Context, fn func(st *secondary.LocalStateRecord)) *secondary.LocalStateRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)

	fn(s.state)

	if !s.inMemory {
		if err := s.store.Save(ctx, s.state.Clone()); err != nil {
			s.logger.Warn("local state unavailable, keeping it in memory", "error", err)
			s.inMemory = true
		}
	}
	return s.state.Clone()
}

// InMemory reports whether the store has been abandoned for this process.
func (s *LocalState) InMemory() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inMemory
}

func (s *LocalState) loadLocked(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true

	st, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("local state unavailable, keeping it in memory", "error", err)
		s.inMemory = true
		st = nil
	}
	if st == nil {
		st = &secondary.LocalStateRecord{}
	}
	if st.PersonalBests == nil {
		st.PersonalBests = make(map[string]int)
	}
	s.state = st
}
