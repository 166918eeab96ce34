package events

import (
	"time"

	"github.com/mistatas/soporte-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketUpdated       EventType = "ticket_updated"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketDeleted       EventType = "ticket_deleted"
)

// TicketEventTypes lists every ticket mutation event.
var TicketEventTypes = []EventType{
	EventTicketCreated,
	EventTicketUpdated,
	EventTicketStatusChanged,
	EventTicketDeleted,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Status        domain.TicketStatus `json:"estado"`
	ScheduledDate string              `json:"fecha_coordinacion"`
	Technician    string              `json:"tecnico_asignado,omitempty"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	Status     domain.TicketStatus `json:"estado"`
	Technician string              `json:"tecnico_asignado,omitempty"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"estado_anterior"`
	NewStatus domain.TicketStatus `json:"estado_nuevo"`
	Closed    bool                `json:"con_cierre"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct{}
