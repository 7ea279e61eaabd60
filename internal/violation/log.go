// Package violation keeps the append-only log of reported integrity
// violations and the HTTP surface for submitting and querying them.
package violation

import (
	"sync"
	"time"
)

// Violation is one reported integrity infraction. SessionID and StudentID
// may be empty or reference sessions that were never created; the log keeps
// the record regardless. Details carries whatever proctoring-specific fields
// the reporting client sent.
type Violation struct {
	SessionID string         `json:"sessionId,omitempty"`
	StudentID string         `json:"studentId,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Details   map[string]any `json:"details,omitempty"`
}

// Filter selects violations by time range and student. Nil/empty fields
// impose no constraint; the set filters are conjunctive.
type Filter struct {
	StartDate *time.Time
	EndDate   *time.Time
	StudentID string
}

// Log is the in-memory append-only violation log. Records are immutable
// after append and kept in arrival order for the process lifetime.
type Log struct {
	mu      sync.RWMutex
	entries []Violation
}

// NewLog creates an empty violation log.
func NewLog() *Log {
	return &Log{}
}

// Append stores the record in arrival order. It never rejects.
func (l *Log) Append(v Violation) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, v)
}

// Query returns all records matching the filter, in arrival order. Callers
// wanting most-recent-first reverse the result themselves.
func (l *Log) Query(f Filter) []Violation {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Violation, 0)
	for _, v := range l.entries {
		if f.StartDate != nil && v.Timestamp.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && v.Timestamp.After(*f.EndDate) {
			continue
		}
		if f.StudentID != "" && v.StudentID != f.StudentID {
			continue
		}
		out = append(out, v)
	}
	return out
}

// RecentTail returns the last n appended records in arrival order, or fewer
// when the log is shorter.
func (l *Log) RecentTail(n int) []Violation {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n > len(l.entries) {
		n = len(l.entries)
	}
	if n <= 0 {
		return []Violation{}
	}
	out := make([]Violation, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}

// ForSession returns all records for one session, in arrival order.
func (l *Log) ForSession(sessionID string) []Violation {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Violation, 0)
	for _, v := range l.entries {
		if v.SessionID == sessionID {
			out = append(out, v)
		}
	}
	return out
}

// Len returns the total number of recorded violations.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
