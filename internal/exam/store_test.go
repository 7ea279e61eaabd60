package exam

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSetsDefaults(t *testing.T) {
	store := NewStore()
	s := store.Create("s1", "exam-1", "Alice")

	assert.NotEmpty(t, s.SessionID)
	assert.Equal(t, "s1", s.StudentID)
	assert.Equal(t, "exam-1", s.ExamID)
	assert.Equal(t, "Alice", s.StudentName)
	assert.Equal(t, StatusActive, s.Status)
	assert.Zero(t, s.ViolationCount)
	assert.False(t, s.StartTime.IsZero())
	assert.Nil(t, s.EndTime)
}

func TestCreateAcceptsEmptyInputs(t *testing.T) {
	store := NewStore()
	s := store.Create("", "", "")
	assert.NotEmpty(t, s.SessionID)
	assert.Equal(t, StatusActive, s.Status)
}

func TestCreateGeneratesUniqueIDs(t *testing.T) {
	store := NewStore()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := store.Create("s1", "exam-1", "Alice")
		require.False(t, seen[s.SessionID], "duplicate session id %s", s.SessionID)
		seen[s.SessionID] = true
	}
	assert.Equal(t, 100, store.Count())
}

func TestCreateRetriesOnIDCollision(t *testing.T) {
	store := NewStore()
	ids := []string{"dup", "dup", "fresh"}
	store.newID = func() string {
		id := ids[0]
		if len(ids) > 1 {
			ids = ids[1:]
		}
		return id
	}
	first := store.Create("s1", "e1", "")
	second := store.Create("s2", "e1", "")
	assert.Equal(t, "dup", first.SessionID)
	assert.Equal(t, "fresh", second.SessionID)
}

func TestRecordViolationCountsEveryCall(t *testing.T) {
	store := NewStore()
	s := store.Create("s1", "exam-1", "Alice")

	ts := time.Now()
	for i := 1; i <= 7; i++ {
		got, ok := store.RecordViolation(s.SessionID, ts)
		require.True(t, ok)
		assert.Equal(t, i, got.ViolationCount)
		require.NotNil(t, got.LastViolation)
		assert.True(t, got.LastViolation.Equal(ts))
	}
}

func TestRecordViolationUnknownSession(t *testing.T) {
	store := NewStore()
	_, ok := store.RecordViolation("missing", time.Now())
	assert.False(t, ok)
	assert.Zero(t, store.Count())
}

func TestConcurrentViolationsAllCounted(t *testing.T) {
	store := NewStore()
	s := store.Create("s1", "exam-1", "Alice")

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			store.RecordViolation(s.SessionID, time.Now())
		}()
	}
	wg.Wait()

	got, ok := store.Get(s.SessionID)
	require.True(t, ok)
	assert.Equal(t, n, got.ViolationCount)
}

func TestTerminateIfActiveWinsExactlyOnce(t *testing.T) {
	store := NewStore()
	s := store.Create("s1", "exam-1", "Alice")

	const n = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if _, ok := store.TerminateIfActive(s.SessionID); ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	got, _ := store.Get(s.SessionID)
	assert.Equal(t, StatusTerminated, got.Status)
	require.NotNil(t, got.EndTime)
}

func TestTerminateIfActiveSkipsEndedSession(t *testing.T) {
	store := NewStore()
	s := store.Create("s1", "exam-1", "Alice")
	_, ok := store.End(s.SessionID, "walked out")
	require.True(t, ok)

	_, ok = store.TerminateIfActive(s.SessionID)
	assert.False(t, ok)
	got, _ := store.Get(s.SessionID)
	assert.Equal(t, StatusEnded, got.Status)
	assert.Equal(t, "walked out", got.EndReason)
}

func TestEndDefaultsReason(t *testing.T) {
	store := NewStore()
	s := store.Create("s1", "exam-1", "Alice")

	got, ok := store.End(s.SessionID, "")
	require.True(t, ok)
	assert.Equal(t, StatusEnded, got.Status)
	assert.Equal(t, "manual", got.EndReason)
	require.NotNil(t, got.EndTime)
}

func TestEndUnknownSession(t *testing.T) {
	store := NewStore()
	_, ok := store.End("missing", "manual")
	assert.False(t, ok)
}

func TestListAndCountByStatus(t *testing.T) {
	store := NewStore()
	a := store.Create("s1", "exam-1", "")
	b := store.Create("s2", "exam-1", "")
	store.Create("s3", "exam-1", "")

	_, ok := store.TerminateIfActive(a.SessionID)
	require.True(t, ok)
	_, ok = store.End(b.SessionID, "")
	require.True(t, ok)

	assert.Len(t, store.ListActive(), 1)
	assert.Len(t, store.ListByStatus(StatusTerminated), 1)
	assert.Len(t, store.ListByStatus(StatusEnded), 1)
	assert.Equal(t, 3, store.Count())
	assert.Equal(t, 1, store.CountByStatus(StatusActive))
	assert.Equal(t, 1, store.CountByStatus(StatusTerminated))
}
