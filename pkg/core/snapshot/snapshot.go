// Package snapshot holds the canonical in-memory collections for one
// completed refresh cycle. A snapshot is immutable once committed; readers
// always see a complete, consistent collection and never need locking
// beyond the pointer swap guarded here.
package snapshot

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"finadash/pkg/models"
)

// SourceStatus records the per-source outcome of the refresh that produced
// a snapshot, so the caller can render partial data with a partial-failure
// indicator.
type SourceStatus struct {
	Name      string `json:"name"`
	OK        bool   `json:"ok"`
	Attempts  int    `json:"attempts"`
	Error     string `json:"error,omitempty"`
	Cancelled bool   `json:"-"`
	Records   int    `json:"records"`
}

// Snapshot is one refresh cycle's worth of canonical data.
type Snapshot struct {
	Cycle     uuid.UUID                `json:"cycle"`
	FetchedAt time.Time                `json:"fetchedAt"`
	Financial []models.FinancialRecord `json:"-"`
	People    []models.PersonRecord    `json:"-"`
	Sources   []SourceStatus           `json:"sources"`
}

// Store publishes snapshots atomically. Commit enforces supersession: a
// snapshot from a cycle that is no longer the active one is discarded, so a
// slow refresh can never clobber the result of a newer one.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Commit replaces the current snapshot if stillActive confirms the
// snapshot's cycle under the store lock. Returns whether the snapshot was
// accepted.
func (s *Store) Commit(snap Snapshot, stillActive func(uuid.UUID) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stillActive != nil && !stillActive(snap.Cycle) {
		return false
	}
	s.current = &snap
	return true
}

// Current returns the latest committed snapshot and whether one exists.
// The returned value is a copy of the snapshot header; the record slices
// are shared but immutable by contract.
func (s *Store) Current() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Snapshot{}, false
	}
	return *s.current, true
}
