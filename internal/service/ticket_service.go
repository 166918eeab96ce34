package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mistatas/soporte-service/internal/domain"
	"github.com/mistatas/soporte-service/internal/events"
	"github.com/mistatas/soporte-service/internal/repository"
	"github.com/mistatas/soporte-service/pkg/util/errorutil"
)

// actorIDLength truncates the authenticated user id in history entries.
const actorIDLength = 8

// TicketService mediates every mutation of soporte tickets and owns the
// history and closure invariants.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// TicketDependencies bundles requirements for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
	Now        func() time.Time
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// Create validates the draft and inserts a new ticket whose history starts
// with a single creation entry. Validation failures never reach the store.
func (s *TicketService) Create(ctx context.Context, actorID string, draft domain.TicketDraft) (*domain.Ticket, error) {
	if problems := draft.Validate(); len(problems) > 0 {
		return nil, validationError(problems)
	}

	now := s.now()
	ticket := &domain.Ticket{
		ClientType:          draft.ClientType,
		Beneficiary:         draft.Beneficiary,
		ServiceType:         draft.ServiceType,
		ScheduledDate:       draft.ScheduledDate,
		ScheduledTime:       draft.ScheduledTime,
		AssignedTechnician:  draft.AssignedTechnician,
		Status:              draft.Status,
		Description:         draft.Description,
		Notes:               draft.Notes,
		CoordinationContact: draft.CoordinationContact,
		History: []domain.HistoryEntry{{
			At:     now,
			Change: fmt.Sprintf("Ticket creado. Estado: %s.", draft.Status),
			Actor:  truncateActor(actorID),
		}},
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  actorID,
		Payload: events.TicketCreatedPayload{
			Status:        ticket.Status,
			ScheduledDate: ticket.ScheduledDate,
			Technician:    ticket.AssignedTechnician,
		},
	})
	return ticket, nil
}

// Update validates the draft, rewrites all editable fields of the existing
// ticket and appends one history entry summarizing the new status and
// technician.
func (s *TicketService) Update(ctx context.Context, actorID, id string, draft domain.TicketDraft) (*domain.Ticket, error) {
	if problems := draft.Validate(); len(problems) > 0 {
		return nil, validationError(problems)
	}

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	technician := draft.AssignedTechnician
	if technician == "" {
		technician = "N/A"
	}
	ticket.History = append(ticket.History, domain.HistoryEntry{
		At:     s.now(),
		Change: fmt.Sprintf("Ticket actualizado. Estado: %s. Técnico: %s.", draft.Status, technician),
		Actor:  truncateActor(actorID),
	})

	ticket.ClientType = draft.ClientType
	ticket.Beneficiary = draft.Beneficiary
	ticket.ServiceType = draft.ServiceType
	ticket.ScheduledDate = draft.ScheduledDate
	ticket.ScheduledTime = draft.ScheduledTime
	ticket.AssignedTechnician = draft.AssignedTechnician
	ticket.Status = draft.Status
	ticket.Description = draft.Description
	ticket.Notes = draft.Notes
	ticket.CoordinationContact = draft.CoordinationContact

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		ActorID:  actorID,
		Payload: events.TicketUpdatedPayload{
			Status:     ticket.Status,
			Technician: ticket.AssignedTechnician,
		},
	})
	return ticket, nil
}

// Transition changes only the status, appending a history entry describing
// the change. Closure details are stored when supplied; requiring them for
// Completado is the caller's responsibility, not enforced here.
func (s *TicketService) Transition(ctx context.Context, actorID, id string, newStatus domain.TicketStatus, closure *domain.ClosureDetails) (*domain.Ticket, error) {
	if !newStatus.IsValid() {
		return nil, errorutil.NewValidationError("estado desconocido", map[string]any{"estado": string(newStatus)})
	}

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	change := fmt.Sprintf("Estado cambiado de %s a %s.", ticket.Status, newStatus)
	if closure != nil {
		change = fmt.Sprintf("Estado cambiado de %s a %s. Motivo: %s. Solución: %s",
			ticket.Status, newStatus, closure.Reason, closure.Resolution)
	}
	ticket.History = append(ticket.History, domain.HistoryEntry{
		At:     s.now(),
		Change: change,
		Actor:  truncateActor(actorID),
	})

	oldStatus := ticket.Status
	ticket.Status = newStatus
	if closure != nil {
		ticket.Closure = closure
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		ActorID:  actorID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Closed:    closure != nil,
		},
	})
	return ticket, nil
}

// Delete permanently removes the ticket. There is no soft delete.
func (s *TicketService) Delete(ctx context.Context, actorID, id string) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: id,
		ActorID:  actorID,
		Payload:  events.TicketDeletedPayload{},
	})
	return nil
}

// Get fetches a single ticket.
func (s *TicketService) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, id)
}

// List returns the complete collection ordered by scheduled date.
func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.List(ctx)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func validationError(problems map[string]string) error {
	details := make(map[string]any, len(problems))
	for field, message := range problems {
		details[field] = message
	}
	return errorutil.NewValidationError("validación fallida", details)
}

func truncateActor(actorID string) string {
	if len(actorID) <= actorIDLength {
		return actorID
	}
	return actorID[:actorIDLength]
}
