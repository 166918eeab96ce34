package worker

import (
	"github.com/mistatas/soporte-service/internal/events"
	"github.com/mistatas/soporte-service/internal/service"
)

// StartNotificationWorker registers notification handlers for every ticket
// mutation event.
func StartNotificationWorker(dispatcher events.Dispatcher, notifications *service.NotificationService) {
	if dispatcher == nil || notifications == nil {
		return
	}
	for _, eventType := range events.TicketEventTypes {
		dispatcher.Subscribe(eventType, notifications.Notify)
	}
}
