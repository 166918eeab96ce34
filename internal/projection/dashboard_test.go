package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mistatas/soporte-service/internal/domain"
)

func ticketOn(date, hour string, status domain.TicketStatus) domain.Ticket {
	return domain.Ticket{
		ScheduledDate: date,
		ScheduledTime: hour,
		Status:        status,
	}
}

func TestDashboardCountsEveryStatus(t *testing.T) {
	tickets := []domain.Ticket{
		ticketOn("2026-09-01", "10:00", domain.TicketStatusPending),
		ticketOn("2026-09-02", "10:00", domain.TicketStatusPending),
		ticketOn("2026-09-03", "10:00", domain.TicketStatusCompleted),
	}

	summary := Dashboard(tickets, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, summary.Counts, len(domain.TicketStatuses))
	assert.Equal(t, 2, summary.Counts[domain.TicketStatusPending])
	assert.Equal(t, 1, summary.Counts[domain.TicketStatusCompleted])
	assert.Equal(t, 0, summary.Counts[domain.TicketStatusCancelled])

	total := 0
	for _, n := range summary.Counts {
		total += n
	}
	assert.Equal(t, len(tickets), total)
}

func TestDashboardUpcomingExcludesPastAndTerminal(t *testing.T) {
	today := time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		ticketOn("2026-09-09", "10:00", domain.TicketStatusPending),     // past
		ticketOn("2026-09-10", "08:00", domain.TicketStatusPending),     // today counts even if the hour passed
		ticketOn("2026-09-11", "09:00", domain.TicketStatusCompleted),   // terminal
		ticketOn("2026-09-11", "09:00", domain.TicketStatusCancelled),   // terminal
		ticketOn("2026-09-11", "09:00", domain.TicketStatusRescheduled), // not actionable
		ticketOn("2026-09-12", "09:00", domain.TicketStatusCoordinated),
		ticketOn("2026-09-12", "08:00", domain.TicketStatusInProgress),
	}

	summary := Dashboard(tickets, today)

	require.Len(t, summary.Upcoming, 3)
	assert.Equal(t, "2026-09-10T08:00", summary.Upcoming[0].ScheduleKey())
	assert.Equal(t, "2026-09-12T08:00", summary.Upcoming[1].ScheduleKey())
	assert.Equal(t, "2026-09-12T09:00", summary.Upcoming[2].ScheduleKey())
}

func TestDashboardUpcomingCappedAtFive(t *testing.T) {
	tickets := make([]domain.Ticket, 0, 8)
	for day := 11; day <= 18; day++ {
		tickets = append(tickets, domain.Ticket{
			ScheduledDate: time.Date(2026, 9, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			ScheduledTime: "10:00",
			Status:        domain.TicketStatusCoordinated,
		})
	}

	summary := Dashboard(tickets, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, summary.Upcoming, 5)
	assert.Equal(t, "2026-09-11", summary.Upcoming[0].ScheduledDate)
	assert.Equal(t, "2026-09-15", summary.Upcoming[4].ScheduledDate)
}
