package handlers

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"wine-trip-planner/internal/models"
	"wine-trip-planner/internal/replacement"
)

// ErrSessionNotFound is returned when a session id is unknown
var ErrSessionNotFound = errors.New("session not found")

// TripSession holds one traveller's planning state between requests
type TripSession struct {
	ID          string
	ProfileID   string
	Answers     models.QuizAnswers
	Itinerary   *models.Itinerary
	Candidates  []models.ScoredWinery
	Replacement *replacement.Flow
	CreatedAt   time.Time
	UpdatedAt   time.Time

	dirty bool
}

// snapshot copies the session so callers can read it without holding the store lock
func (s *TripSession) snapshot() *TripSession {
	flow := *s.Replacement
	return &TripSession{
		ID:          s.ID,
		ProfileID:   s.ProfileID,
		Answers:     s.Answers.Clone(),
		Itinerary:   s.Itinerary.Clone(),
		Candidates:  append([]models.ScoredWinery(nil), s.Candidates...),
		Replacement: &flow,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		dirty:       s.dirty,
	}
}

// SessionStore manages trip sessions in memory
type SessionStore struct {
	sessions map[string]*TripSession
	mu       sync.RWMutex
	now      func() time.Time
}

// NewSessionStore creates a new session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*TripSession),
		now:      time.Now,
	}
}

// Create starts a session for the profile with the given starting answers
func (s *SessionStore) Create(profileID string, answers models.QuizAnswers) *TripSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	session := &TripSession{
		ID:          uuid.NewString(),
		ProfileID:   profileID,
		Answers:     answers.Clone(),
		Replacement: replacement.NewFlow(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.sessions[session.ID] = session
	log.Printf("[SESSION] Created trip session: id=%s profile=%s answered=%t", session.ID, profileID, !answers.IsEmpty())
	return session.snapshot()
}

// Get returns a copy of the session, or nil when it does not exist
func (s *SessionStore) Get(id string) *TripSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session := s.sessions[id]
	if session == nil {
		return nil
	}
	return session.snapshot()
}

// Update executes fn on a session while holding the write lock, so only one
// mutation runs at a time. A nil error from fn marks the session dirty for
// autosave. The returned snapshot reflects the session after fn.
func (s *SessionStore) Update(id string, fn func(*TripSession) error) (*TripSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.sessions[id]
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if err := fn(session); err != nil {
		return session.snapshot(), err
	}
	session.dirty = true
	session.UpdatedAt = s.now()
	return session.snapshot(), nil
}

// Delete removes a session
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	log.Printf("[SESSION] Deleted trip session: id=%s", id)
}

// TakeDirty returns copies of every session changed since the last call and
// clears their dirty flags.
func (s *SessionStore) TakeDirty() []*TripSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	var dirty []*TripSession
	for _, session := range s.sessions {
		if !session.dirty {
			continue
		}
		session.dirty = false
		dirty = append(dirty, session.snapshot())
	}
	return dirty
}

// MarkDirty flags a session for the next autosave, typically after a failed save
func (s *SessionStore) MarkDirty(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session := s.sessions[id]; session != nil {
		session.dirty = true
	}
}

// Len reports the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
