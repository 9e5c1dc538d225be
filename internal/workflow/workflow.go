// Package workflow holds the per-user state threaded between the steps of
// the generation flow: pick a project, request hooks, pick a hook, generate,
// view the result. Each field's absence is an explicit condition the caller
// must handle — consumers that find a required field missing send the user
// back to the earlier step instead of assuming presence.
package workflow

import (
	"sync"
	"time"

	"github.com/egremy-digital/social-engine-api/internal/models"
)

// Mode tags how the pending result set was generated.
type Mode string

const (
	ModeSingle       Mode = "SINGLE"
	ModeMultiVariant Mode = "MULTI_VARIANT"
)

// State is one user's position in the generation flow. Zero-valued fields
// mean the corresponding step has not happened yet.
type State struct {
	SelectedProjectID string
	SuggestedHooks    []models.SuggestedHook
	PendingBrief      *models.Brief
	Mode              Mode
	Results           []models.GenerationResult
	VariantIndex      int

	touched time.Time
}

// Store keeps workflow state per user id.
type Store struct {
	mu     sync.RWMutex
	states map[string]*State
}

// NewStore creates a workflow store and starts its background cleanup.
func NewStore() *Store {
	s := &Store{
		states: make(map[string]*State),
	}

	// Start background cleanup goroutine
	go s.cleanup()

	return s
}

// Get returns a copy of the user's state. The bool reports whether any
// state exists at all.
func (s *Store) Get(userID string) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.states[userID]
	if !ok {
		return State{}, false
	}
	return *st, true
}

// Update applies fn to the user's state under the lock, creating the state
// if it does not exist yet.
func (s *Store) Update(userID string, fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[userID]
	if !ok {
		st = &State{}
		s.states[userID] = st
	}
	fn(st)
	st.touched = time.Now()
}

// SelectProject pins the project the following steps operate on and clears
// any half-finished flow from a previous project.
func (s *Store) SelectProject(userID, projectID string) {
	s.Update(userID, func(st *State) {
		if st.SelectedProjectID != projectID {
			st.SuggestedHooks = nil
			st.PendingBrief = nil
			st.Results = nil
			st.Mode = ""
			st.VariantIndex = 0
		}
		st.SelectedProjectID = projectID
	})
}

// SetHooks records the suggested hooks plus the brief snapshot that produced
// them. The brief is replayed verbatim on the script-generation step.
func (s *Store) SetHooks(userID string, hooks []models.SuggestedHook, brief *models.Brief) {
	s.Update(userID, func(st *State) {
		st.SuggestedHooks = hooks
		st.PendingBrief = brief
		st.Results = nil
	})
}

// SetResults stores the normalized generation output and resets the variant
// cursor to the first candidate.
func (s *Store) SetResults(userID string, mode Mode, results []models.GenerationResult) {
	s.Update(userID, func(st *State) {
		st.Mode = mode
		st.Results = results
		st.VariantIndex = 0
		st.SuggestedHooks = nil
	})
}

// SelectVariant moves the variant cursor. Out-of-range indexes are rejected
// by returning false and leaving the cursor unchanged.
func (s *Store) SelectVariant(userID string, index int) bool {
	ok := false
	s.Update(userID, func(st *State) {
		if index >= 0 && index < len(st.Results) {
			st.VariantIndex = index
			ok = true
		}
	})
	return ok
}

// Clear drops a user's state entirely (sign-out, project deletion).
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}

// cleanup periodically removes stale states to prevent memory leaks.
func (s *Store) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for id, st := range s.states {
			// Drop flows that have been idle for over a day
			if now.Sub(st.touched) > 24*time.Hour {
				delete(s.states, id)
			}
		}
		s.mu.Unlock()
	}
}
