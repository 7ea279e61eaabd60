// Package audit provides the durable append-only sink for session and
// violation events. The sink is a side channel: callers log failures and
// carry on, so a broken disk never blocks the in-memory state.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Sink appends event records grouped by category ("sessions", "violations").
type Sink interface {
	Append(category string, entry map[string]any) error
}

// FileSink writes one JSON-array file per category per calendar day,
// e.g. logs/violations-2026-08-30.json. Each append reads the whole array,
// adds the entry with an assigned timestamp, and rewrites the file. A
// missing or corrupt file starts a fresh array instead of failing.
type FileSink struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

// NewFileSink creates the audit directory if needed and returns the sink.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audit dir: %w", err)
	}
	return &FileSink{dir: dir, now: time.Now}, nil
}

// Append records one event in the category's file for today.
func (s *FileSink) Append(category string, entry map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	path := filepath.Join(s.dir, fmt.Sprintf("%s-%s.json", category, now.Format("2006-01-02")))

	var entries []map[string]any
	if data, err := os.ReadFile(path); err == nil {
		if json.Unmarshal(data, &entries) != nil {
			entries = nil
		}
	}

	record := make(map[string]any, len(entry)+1)
	for k, v := range entry {
		record[k] = v
	}
	record["timestamp"] = now.Format(time.RFC3339)
	entries = append(entries, record)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal audit entries: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write audit file: %w", err)
	}
	return nil
}

// Nop returns a sink that discards everything. Used when the audit directory
// cannot be created and in tests.
func Nop() Sink { return nopSink{} }

type nopSink struct{}

func (nopSink) Append(string, map[string]any) error { return nil }
