// Package stream keeps subscribers supplied with the full current ticket
// collection. Every mutation broadcasts a complete snapshot, never a diff;
// consumers replace their mirror wholesale on each delivery.
package stream

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mistatas/soporte-service/internal/domain"
)

// LoadFunc fetches the complete current ticket collection.
type LoadFunc func(ctx context.Context) ([]domain.Ticket, error)

// Subscription is a cancellable handle on the snapshot stream.
type Subscription struct {
	id     uint64
	ch     chan []domain.Ticket
	closed bool
	hub    *Hub
}

// Tickets returns the delivery channel. Each value is the full collection.
func (s *Subscription) Tickets() <-chan []domain.Ticket {
	return s.ch
}

// Close stops delivery immediately. No snapshot is delivered after Close
// returns.
func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

// Hub fans full collection snapshots out to subscribers.
type Hub struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]*Subscription
	load   LoadFunc
	logger *zap.Logger
}

// NewHub creates a hub backed by the given loader.
func NewHub(load LoadFunc, logger *zap.Logger) *Hub {
	return &Hub{
		subs:   make(map[uint64]*Subscription),
		load:   load,
		logger: logger,
	}
}

// Subscribe registers a subscriber and immediately queues the current
// snapshot for it. The returned handle must be closed when done.
func (h *Hub) Subscribe(ctx context.Context) (*Subscription, error) {
	snapshot, err := h.load(ctx)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscription{
		id: h.nextID,
		// capacity one with latest-wins replacement: a slow consumer only
		// ever sees the most recent snapshot, which is all that matters for
		// full-replacement semantics
		ch:  make(chan []domain.Ticket, 1),
		hub: h,
	}
	h.subs[sub.id] = sub
	sub.ch <- snapshot
	return sub, nil
}

// Refresh reloads the collection and broadcasts it to all subscribers.
// Called after every ticket mutation.
func (h *Hub) Refresh(ctx context.Context) {
	snapshot, err := h.load(ctx)
	if err != nil {
		h.logger.Warn("snapshot reload failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		if sub.closed {
			continue
		}
		// drop the stale pending snapshot, if any, before queuing the new one
		select {
		case <-sub.ch:
		default:
		}
		sub.ch <- snapshot
	}
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sub.closed {
		return
	}
	sub.closed = true
	delete(h.subs, sub.id)
	close(sub.ch)
}

// SubscriberCount reports how many live subscriptions exist.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
