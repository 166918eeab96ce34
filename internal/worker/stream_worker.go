package worker

import (
	"context"

	"github.com/mistatas/soporte-service/internal/events"
	"github.com/mistatas/soporte-service/internal/stream"
)

// StartStreamWorker wires every ticket mutation event to a hub refresh so
// stream subscribers receive a fresh full snapshot.
func StartStreamWorker(dispatcher events.Dispatcher, hub *stream.Hub) {
	if dispatcher == nil || hub == nil {
		return
	}
	for _, eventType := range events.TicketEventTypes {
		dispatcher.Subscribe(eventType, func(ctx context.Context, _ events.Event) error {
			hub.Refresh(ctx)
			return nil
		})
	}
}
