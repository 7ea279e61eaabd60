package violation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(sessionID, studentID string, ts time.Time) Violation {
	return Violation{SessionID: sessionID, StudentID: studentID, Timestamp: ts}
}

func TestAppendPreservesArrivalOrder(t *testing.T) {
	l := NewLog()
	base := time.Now()
	// deliberately out of timestamp order: the log orders by arrival
	l.Append(entry("a", "s1", base.Add(2*time.Minute)))
	l.Append(entry("b", "s1", base))
	l.Append(entry("c", "s2", base.Add(time.Minute)))

	all := l.Query(Filter{})
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].SessionID)
	assert.Equal(t, "b", all[1].SessionID)
	assert.Equal(t, "c", all[2].SessionID)
	assert.Equal(t, 3, l.Len())
}

func TestQueryFiltersAreConjunctive(t *testing.T) {
	l := NewLog()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	l.Append(entry("a", "s1", base))
	l.Append(entry("b", "s1", base.Add(time.Hour)))
	l.Append(entry("c", "s2", base.Add(time.Hour)))

	// startDate after the record's timestamp excludes it
	after := base.Add(time.Second)
	assert.Empty(t, l.Query(Filter{StartDate: &after, StudentID: "s1", EndDate: &base}))

	start := base.Add(30 * time.Minute)
	got := l.Query(Filter{StartDate: &start, StudentID: "s1"})
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].SessionID)

	end := base.Add(30 * time.Minute)
	got = l.Query(Filter{EndDate: &end})
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].SessionID)

	got = l.Query(Filter{StudentID: "s2"})
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].SessionID)
}

func TestQueryBoundsAreInclusive(t *testing.T) {
	l := NewLog()
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	l.Append(entry("a", "s1", ts))

	got := l.Query(Filter{StartDate: &ts, EndDate: &ts})
	assert.Len(t, got, 1)
}

func TestRecentTail(t *testing.T) {
	l := NewLog()
	base := time.Now()
	for i := 0; i < 5; i++ {
		l.Append(entry("s", "s1", base.Add(time.Duration(i)*time.Second)))
	}

	tail := l.RecentTail(3)
	require.Len(t, tail, 3)
	assert.True(t, tail[0].Timestamp.Before(tail[2].Timestamp), "tail keeps arrival order")

	assert.Len(t, l.RecentTail(10), 5)
	assert.Empty(t, l.RecentTail(0))
}

func TestForSession(t *testing.T) {
	l := NewLog()
	now := time.Now()
	l.Append(entry("a", "s1", now))
	l.Append(entry("b", "s1", now))
	l.Append(entry("a", "s1", now))
	l.Append(entry("", "s1", now)) // record without a session id is kept too

	got := l.ForSession("a")
	assert.Len(t, got, 2)
	assert.Empty(t, l.ForSession("missing"))
}
