// Package session holds the per-session application state: the current
// dataset, packing checklist statuses and the journal. State is created at
// session start, mutated only through Store operations and replaced
// wholesale when a new dataset is uploaded.
package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ashugangtok/dietiq/internal/domain/models"
)

// DefaultID is the session used when a request carries no session header.
const DefaultID = "default"

// ErrUnknownPackingItem signals a status update for a group id that is not
// part of the current packing list.
var ErrUnknownPackingItem = errors.New("session: unknown packing item")

// State is one session's mutable state.
type State struct {
	ID         string
	UploadID   string
	UploadedAt time.Time
	Records    []models.FeedingRecord
	Packing    map[string]models.PackingStatus
	Journal    []models.JournalEntry
}

// Store manages session states behind a mutex. Report computation itself is
// pure; the store is the only shared mutable surface.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*State
	now      func() time.Time
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*State),
		now:      time.Now,
	}
}

// Records returns a copy of the session's current dataset.
func (s *Store) Records(sessionID string) []models.FeedingRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	out := make([]models.FeedingRecord, len(st.Records))
	copy(out, st.Records)
	return out
}

// ReplaceRecords swaps in a new dataset and returns the generated upload id.
// Packing statuses survive until the next reconcile drops ids that no longer
// exist.
func (s *Store) ReplaceRecords(sessionID string, records []models.FeedingRecord) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(sessionID)
	st.Records = make([]models.FeedingRecord, len(records))
	copy(st.Records, records)
	st.UploadID = uuid.NewString()
	st.UploadedAt = s.now()
	return st.UploadID
}

// UploadInfo returns the current upload id and time for the session.
func (s *Store) UploadInfo(sessionID string) (string, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if st, ok := s.sessions[sessionID]; ok {
		return st.UploadID, st.UploadedAt
	}
	return "", time.Time{}
}

// ReconcilePacking aligns the session's packing statuses with the given
// group-id set: ids seen for the first time start Pending, stale ids are
// dropped, known ids keep their status. The resulting checklist is returned
// sorted by id.
func (s *Store) ReconcilePacking(sessionID string, groupIDs []string) []models.PackingItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(sessionID)
	next := make(map[string]models.PackingStatus, len(groupIDs))
	for _, id := range groupIDs {
		if status, ok := st.Packing[id]; ok {
			next[id] = status
		} else {
			next[id] = models.PackingPending
		}
	}
	st.Packing = next

	items := make([]models.PackingItem, 0, len(next))
	for id, status := range next {
		items = append(items, models.PackingItem{ID: id, Status: status})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

// SetPackingStatus updates one checklist item.
func (s *Store) SetPackingStatus(sessionID, groupID string, status models.PackingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(sessionID)
	if _, ok := st.Packing[groupID]; !ok {
		return ErrUnknownPackingItem
	}
	st.Packing[groupID] = status
	return nil
}

// AddJournalEntry appends a note to the session journal.
func (s *Store) AddJournalEntry(sessionID, text string) models.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(sessionID)
	entry := models.JournalEntry{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: s.now(),
	}
	st.Journal = append(st.Journal, entry)
	return entry
}

// JournalEntries returns a copy of the session journal.
func (s *Store) JournalEntries(sessionID string) []models.JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	out := make([]models.JournalEntry, len(st.Journal))
	copy(out, st.Journal)
	return out
}

// Reset discards the session entirely.
func (s *Store) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// state returns the session, creating it on first use. Callers hold the lock.
func (s *Store) state(sessionID string) *State {
	st, ok := s.sessions[sessionID]
	if !ok {
		st = &State{ID: sessionID, Packing: make(map[string]models.PackingStatus)}
		s.sessions[sessionID] = st
	}
	return st
}
