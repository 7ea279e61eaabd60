package exam

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store owns all session records. Every mutation is serialized behind the
// mutex so concurrent violation reports for the same session cannot lose
// updates. Methods return value snapshots, never shared pointers.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	now   func() time.Time
	newID func() string
}

// NewStore creates an empty in-memory session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Create registers a new active session and returns it. Inputs are opaque
// identifiers and are accepted as-is, even when empty.
func (s *Store) Create(studentID, examID, studentName string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for {
		if _, exists := s.sessions[id]; !exists {
			break
		}
		id = s.newID()
	}

	now := s.now()
	sess := &Session{
		SessionID:    id,
		StudentID:    studentID,
		StudentName:  studentName,
		ExamID:       examID,
		StartTime:    now,
		LastActivity: now,
		Status:       StatusActive,
	}
	s.sessions[id] = sess
	return *sess
}

// Get looks up a session by id.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *sess, true
}

// RecordViolation increments the session's violation counter and refreshes
// its activity timestamps. Returns false without mutating anything when the
// session id is unknown; the caller still keeps the violation in its log.
func (s *Store) RecordViolation(id string, ts time.Time) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	sess.ViolationCount++
	t := ts
	sess.LastViolation = &t
	sess.LastActivity = s.now()
	return *sess, true
}

// TerminateIfActive flips an active session to terminated and stamps its end
// time. The compare-and-set under the store lock guarantees that exactly one
// caller wins even when violations race, so the terminated notification is
// emitted at most once per session.
func (s *Store) TerminateIfActive(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || sess.Status != StatusActive {
		return Session{}, false
	}
	now := s.now()
	sess.Status = StatusTerminated
	sess.EndTime = &now
	return *sess, true
}

// End marks a session as manually ended. The reason defaults to "manual"
// when unspecified. Returns false when the session id is unknown.
func (s *Store) End(id, reason string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	if reason == "" {
		reason = "manual"
	}
	now := s.now()
	sess.Status = StatusEnded
	sess.EndTime = &now
	sess.EndReason = reason
	return *sess, true
}

// ListActive returns all sessions currently in StatusActive.
func (s *Store) ListActive() []Session {
	return s.ListByStatus(StatusActive)
}

// ListByStatus returns all sessions with the given status, in no particular
// order.
func (s *Store) ListByStatus(status string) []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]Session, 0)
	for _, sess := range s.sessions {
		if sess.Status == status {
			list = append(list, *sess)
		}
	}
	return list
}

// Count returns the total number of sessions ever created.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// CountByStatus returns the number of sessions with the given status.
func (s *Store) CountByStatus(status string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, sess := range s.sessions {
		if sess.Status == status {
			n++
		}
	}
	return n
}
