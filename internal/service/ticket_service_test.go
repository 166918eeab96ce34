package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mistatas/soporte-service/internal/domain"
	"github.com/mistatas/soporte-service/internal/events"
	"github.com/mistatas/soporte-service/internal/repository"
)

// fakeTicketRepository is an in-memory stand-in for the Postgres repository.
type fakeTicketRepository struct {
	tickets map[string]domain.Ticket
	nextID  int
}

func newFakeTicketRepository() *fakeTicketRepository {
	return &fakeTicketRepository{tickets: map[string]domain.Ticket{}}
}

func (f *fakeTicketRepository) Create(_ context.Context, ticket *domain.Ticket) error {
	f.nextID++
	ticket.ID = fmt.Sprintf("tkt-%d", f.nextID)
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	f.tickets[ticket.ID] = *ticket
	return nil
}

func (f *fakeTicketRepository) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := f.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	f.tickets[ticket.ID] = *ticket
	return nil
}

func (f *fakeTicketRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.tickets, id)
	return nil
}

func (f *fakeTicketRepository) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &ticket, nil
}

func (f *fakeTicketRepository) List(_ context.Context) ([]domain.Ticket, error) {
	result := make([]domain.Ticket, 0, len(f.tickets))
	for _, ticket := range f.tickets {
		result = append(result, ticket)
	}
	return result, nil
}

func (f *fakeTicketRepository) ListWithFilter(ctx context.Context, _ repository.TicketFilter) ([]domain.Ticket, error) {
	return f.List(ctx)
}

func validTestDraft() domain.TicketDraft {
	return domain.TicketDraft{
		ClientType: domain.ClientTypeParticular,
		Beneficiary: domain.Beneficiary{
			Name:    "María Pérez",
			RUT:     "12.345.678-K",
			Phone:   "+56912345678",
			Address: "Av. Grecia 1234",
		},
		ServiceType:   "Instalación",
		ScheduledDate: "2026-09-15",
		ScheduledTime: "10:30",
		Status:        domain.TicketStatusPending,
		Description:   "Instalación de equipo",
	}
}

func newTestService(repo repository.TicketRepository, clock *fakeClock) (*TicketService, events.Dispatcher) {
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewTicketService(TicketDependencies{
		TicketRepo: repo,
		Dispatcher: dispatcher,
		Now:        clock.Now,
	})
	return svc, dispatcher
}

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	c.current = c.current.Add(time.Second)
	return c.current
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
}

func TestCreateStartsHistoryWithSingleEntry(t *testing.T) {
	svc, _ := newTestService(newFakeTicketRepository(), newFakeClock())

	ticket, err := svc.Create(context.Background(), "abcdef1234567890", validTestDraft())
	require.NoError(t, err)

	require.Len(t, ticket.History, 1)
	assert.Equal(t, "Ticket creado. Estado: Pendiente.", ticket.History[0].Change)
	assert.Equal(t, "abcdef12", ticket.History[0].Actor, "actor id is truncated")
	assert.NotEmpty(t, ticket.ID)
}

func TestCreateRejectsInvalidDraft(t *testing.T) {
	repo := newFakeTicketRepository()
	svc, _ := newTestService(repo, newFakeClock())

	draft := validTestDraft()
	draft.Beneficiary.RUT = "12345"

	_, err := svc.Create(context.Background(), "user", draft)
	assert.Error(t, err)
	assert.Empty(t, repo.tickets, "invalid drafts never reach the store")
}

func TestUpdateAppendsHistoryEntry(t *testing.T) {
	svc, _ := newTestService(newFakeTicketRepository(), newFakeClock())
	created, err := svc.Create(context.Background(), "user", validTestDraft())
	require.NoError(t, err)

	draft := validTestDraft()
	draft.Status = domain.TicketStatusCoordinated
	draft.AssignedTechnician = "Roberto Rojas"

	updated, err := svc.Update(context.Background(), "user", created.ID, draft)
	require.NoError(t, err)

	require.Len(t, updated.History, 2)
	assert.Equal(t, "Ticket actualizado. Estado: Coordinado. Técnico: Roberto Rojas.", updated.History[1].Change)
	assert.True(t, !updated.History[1].At.Before(updated.History[0].At), "history timestamps are non-decreasing")
}

func TestUpdateWithoutTechnicianSaysNA(t *testing.T) {
	svc, _ := newTestService(newFakeTicketRepository(), newFakeClock())
	created, err := svc.Create(context.Background(), "user", validTestDraft())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), "user", created.ID, validTestDraft())
	require.NoError(t, err)
	assert.Equal(t, "Ticket actualizado. Estado: Pendiente. Técnico: N/A.", updated.History[1].Change)
}

func TestTransitionRecordsStatusChange(t *testing.T) {
	svc, _ := newTestService(newFakeTicketRepository(), newFakeClock())
	created, err := svc.Create(context.Background(), "user", validTestDraft())
	require.NoError(t, err)

	updated, err := svc.Transition(context.Background(), "user", created.ID, domain.TicketStatusCoordinated, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusCoordinated, updated.Status)
	require.Len(t, updated.History, 2)
	assert.Equal(t, "Estado cambiado de Pendiente a Coordinado.", updated.History[1].Change)
	assert.Nil(t, updated.Closure)
}

func TestTransitionWithClosureDetails(t *testing.T) {
	svc, _ := newTestService(newFakeTicketRepository(), newFakeClock())
	created, err := svc.Create(context.Background(), "user", validTestDraft())
	require.NoError(t, err)

	closure := &domain.ClosureDetails{Reason: "Visita realizada", Resolution: "Equipo reemplazado"}
	updated, err := svc.Transition(context.Background(), "user", created.ID, domain.TicketStatusCompleted, closure)
	require.NoError(t, err)

	require.NotNil(t, updated.Closure)
	assert.Equal(t, "Equipo reemplazado", updated.Closure.Resolution)
	assert.Equal(t, "Estado cambiado de Pendiente a Completado. Motivo: Visita realizada. Solución: Equipo reemplazado", updated.History[1].Change)
}

func TestTransitionKeepsExistingClosure(t *testing.T) {
	svc, _ := newTestService(newFakeTicketRepository(), newFakeClock())
	created, err := svc.Create(context.Background(), "user", validTestDraft())
	require.NoError(t, err)

	closure := &domain.ClosureDetails{Reason: "Listo", Resolution: "OK"}
	_, err = svc.Transition(context.Background(), "user", created.ID, domain.TicketStatusCompleted, closure)
	require.NoError(t, err)

	// reopening without closure details keeps the recorded closure
	updated, err := svc.Transition(context.Background(), "user", created.ID, domain.TicketStatusPending, nil)
	require.NoError(t, err)
	require.NotNil(t, updated.Closure)
	assert.Equal(t, "OK", updated.Closure.Resolution)
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService(newFakeTicketRepository(), newFakeClock())
	created, err := svc.Create(context.Background(), "user", validTestDraft())
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), "user", created.ID, "Archivado", nil)
	assert.Error(t, err)
}

func TestDeleteThenUpdateReportsMissing(t *testing.T) {
	svc, _ := newTestService(newFakeTicketRepository(), newFakeClock())
	created, err := svc.Create(context.Background(), "user", validTestDraft())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "user", created.ID))

	_, err = svc.Update(context.Background(), "user", created.ID, validTestDraft())
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestMutationsPublishEvents(t *testing.T) {
	repo := newFakeTicketRepository()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewTicketService(TicketDependencies{
		TicketRepo: repo,
		Dispatcher: dispatcher,
		Now:        newFakeClock().Now,
	})

	var seen []events.EventType
	for _, eventType := range events.TicketEventTypes {
		dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			seen = append(seen, event.Type)
			return nil
		})
	}

	created, err := svc.Create(context.Background(), "user", validTestDraft())
	require.NoError(t, err)
	_, err = svc.Transition(context.Background(), "user", created.ID, domain.TicketStatusCancelled, nil)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), "user", created.ID))

	assert.Equal(t, []events.EventType{
		events.EventTicketCreated,
		events.EventTicketStatusChanged,
		events.EventTicketDeleted,
	}, seen)
}
