package stream

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mistatas/soporte-service/internal/domain"
)

type fakeLoader struct {
	snapshots [][]domain.Ticket
	calls     int
	err       error
}

func (f *fakeLoader) load(context.Context) ([]domain.Ticket, error) {
	if f.err != nil {
		return nil, f.err
	}
	idx := f.calls
	if idx >= len(f.snapshots) {
		idx = len(f.snapshots) - 1
	}
	f.calls++
	return f.snapshots[idx], nil
}

func namedTickets(names ...string) []domain.Ticket {
	tickets := make([]domain.Ticket, 0, len(names))
	for _, name := range names {
		tickets = append(tickets, domain.Ticket{Beneficiary: domain.Beneficiary{Name: name}})
	}
	return tickets
}

func receive(t *testing.T, sub *Subscription) []domain.Ticket {
	t.Helper()
	select {
	case snapshot, ok := <-sub.Tickets():
		require.True(t, ok, "channel closed")
		return snapshot
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
		return nil
	}
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	loader := &fakeLoader{snapshots: [][]domain.Ticket{namedTickets("María")}}
	hub := NewHub(loader.load, zap.NewNop())

	sub, err := hub.Subscribe(context.Background())
	require.NoError(t, err)
	defer sub.Close()

	snapshot := receive(t, sub)
	require.Len(t, snapshot, 1)
	assert.Equal(t, "María", snapshot[0].Beneficiary.Name)
	assert.Equal(t, 1, hub.SubscriberCount())
}

func TestSubscribeFailsWhenLoadFails(t *testing.T) {
	loader := &fakeLoader{err: errors.New("db down")}
	hub := NewHub(loader.load, zap.NewNop())

	_, err := hub.Subscribe(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, hub.SubscriberCount())
}

func TestRefreshBroadcastsFullSnapshot(t *testing.T) {
	loader := &fakeLoader{snapshots: [][]domain.Ticket{
		namedTickets("María"),
		namedTickets("María", "Juan"),
	}}
	hub := NewHub(loader.load, zap.NewNop())

	sub, err := hub.Subscribe(context.Background())
	require.NoError(t, err)
	defer sub.Close()
	receive(t, sub)

	hub.Refresh(context.Background())
	snapshot := receive(t, sub)
	assert.Len(t, snapshot, 2)
}

func TestRefreshReplacesPendingSnapshot(t *testing.T) {
	loader := &fakeLoader{snapshots: [][]domain.Ticket{
		namedTickets("a"),
		namedTickets("a", "b"),
		namedTickets("a", "b", "c"),
	}}
	hub := NewHub(loader.load, zap.NewNop())

	sub, err := hub.Subscribe(context.Background())
	require.NoError(t, err)
	defer sub.Close()

	// the subscriber never drained the initial snapshot; two refreshes later
	// only the newest one must be pending
	hub.Refresh(context.Background())
	hub.Refresh(context.Background())

	snapshot := receive(t, sub)
	assert.Len(t, snapshot, 3)
}

func TestCloseStopsDelivery(t *testing.T) {
	loader := &fakeLoader{snapshots: [][]domain.Ticket{namedTickets("a")}}
	hub := NewHub(loader.load, zap.NewNop())

	sub, err := hub.Subscribe(context.Background())
	require.NoError(t, err)
	receive(t, sub)

	sub.Close()
	assert.Equal(t, 0, hub.SubscriberCount())

	hub.Refresh(context.Background())
	_, ok := <-sub.Tickets()
	assert.False(t, ok, "closed subscription must deliver nothing")

	// closing twice is a no-op
	sub.Close()
}
