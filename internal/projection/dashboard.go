// Package projection derives the dashboard, calendar and list views from the
// in-memory ticket collection. Everything here is a pure function of its
// inputs; callers pass the collection explicitly on every call.
package projection

import (
	"sort"
	"time"

	"github.com/mistatas/soporte-service/internal/domain"
)

// upcomingLimit caps the "próximas citas" list on the dashboard.
const upcomingLimit = 5

// Summary is the dashboard projection: a count per status plus the soonest
// upcoming appointments.
type Summary struct {
	Counts   map[domain.TicketStatus]int
	Upcoming []domain.Ticket
}

// Dashboard computes status counts (every status present, zero default) and
// the five soonest tickets that are still actionable (Pendiente, Coordinado
// or En Proceso) and scheduled today or later.
func Dashboard(tickets []domain.Ticket, today time.Time) Summary {
	counts := make(map[domain.TicketStatus]int, len(domain.TicketStatuses))
	for _, status := range domain.TicketStatuses {
		counts[status] = 0
	}
	for i := range tickets {
		counts[tickets[i].Status]++
	}

	// ISO dates compare chronologically as strings
	todayKey := today.Format("2006-01-02")

	upcoming := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if ticket.ScheduledDate < todayKey {
			continue
		}
		switch ticket.Status {
		case domain.TicketStatusPending, domain.TicketStatusCoordinated, domain.TicketStatusInProgress:
			upcoming = append(upcoming, ticket)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].ScheduleKey() < upcoming[j].ScheduleKey()
	})
	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}

	return Summary{Counts: counts, Upcoming: upcoming}
}
