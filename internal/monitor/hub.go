// Package monitor fans live proctoring events out to connected observers
// over SSE and WebSocket transports.
package monitor

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultObserverBuffer is the per-observer event buffer used when no
// override is configured. An observer that falls this far behind is treated
// as dead and dropped.
const DefaultObserverBuffer = 64

// StatsFunc supplies the counts for the init snapshot sent to new observers.
type StatsFunc func() (activeSessions, totalViolations int)

// Observer is one live monitoring subscriber. Events arrive on Events();
// Done() is closed when the hub has dropped the observer.
type Observer struct {
	ID     string
	events chan Event
	done   chan struct{}
}

// Events returns the observer's event channel.
func (o *Observer) Events() <-chan Event { return o.events }

// Done is closed once the observer has been unsubscribed.
func (o *Observer) Done() <-chan struct{} { return o.done }

// Hub maintains the registry of connected observers and delivers events to
// all of them. Registration and removal are safe while a broadcast is in
// progress: delivery iterates a snapshot taken under the read lock.
type Hub struct {
	mu        sync.RWMutex
	observers map[string]*Observer
	buffer    int
	stats     StatsFunc
	logger    *zap.Logger
}

// NewHub creates an empty hub. A non-positive buffer falls back to
// DefaultObserverBuffer.
func NewHub(logger *zap.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultObserverBuffer
	}
	return &Hub{
		observers: make(map[string]*Observer),
		buffer:    buffer,
		logger:    logger,
	}
}

// SetStatsFunc sets the callback used to build the init snapshot.
func (h *Hub) SetStatsFunc(fn StatsFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats = fn
}

// Subscribe registers a new observer and queues its init snapshot as the
// first event.
func (h *Hub) Subscribe() *Observer {
	o := &Observer{
		ID:     uuid.NewString(),
		events: make(chan Event, h.buffer),
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	h.observers[o.ID] = o
	stats := h.stats
	h.mu.Unlock()

	var active, total int
	if stats != nil {
		active, total = stats()
	}
	o.events <- InitEvent(active, total)

	h.logger.Debug("observer subscribed", zap.String("observer_id", o.ID))
	return o
}

// Unsubscribe removes an observer and signals its Done channel. Idempotent:
// calling it again for the same observer has no effect.
func (h *Hub) Unsubscribe(o *Observer) {
	if o == nil {
		return
	}
	h.mu.Lock()
	_, ok := h.observers[o.ID]
	if ok {
		delete(h.observers, o.ID)
		close(o.done)
	}
	h.mu.Unlock()
	if ok {
		h.logger.Debug("observer unsubscribed", zap.String("observer_id", o.ID))
	}
}

// Broadcast delivers the event to every registered observer. Sends are
// non-blocking: an observer whose buffer is full is treated as disconnected
// and removed, without affecting delivery to the rest. Notifications are
// also written to the operational log for out-of-band visibility.
func (h *Hub) Broadcast(ev Event) {
	if t, _ := ev["type"].(string); t == EventNotification {
		h.logger.Info("notification", zap.Any("event", map[string]any(ev)))
	}

	h.mu.RLock()
	targets := make([]*Observer, 0, len(h.observers))
	for _, o := range h.observers {
		targets = append(targets, o)
	}
	h.mu.RUnlock()

	var stalled []*Observer
	for _, o := range targets {
		select {
		case o.events <- ev:
		case <-o.done:
		default:
			stalled = append(stalled, o)
		}
	}
	for _, o := range stalled {
		h.logger.Warn("dropping stalled observer", zap.String("observer_id", o.ID))
		h.Unsubscribe(o)
	}
}

// ObserverCount returns the number of registered observers.
func (h *Hub) ObserverCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}
