package projection

import (
	"sort"
	"strings"

	"github.com/mistatas/soporte-service/internal/domain"
)

// ListFilter holds the criteria for the soporte list view. Zero values mean
// "no constraint".
type ListFilter struct {
	Search        string
	Status        domain.TicketStatus
	ServiceType   string
	ScheduledDate string
}

// FilterTickets returns the tickets matching the filter, sorted ascending by
// scheduled date (stable, so ties keep their original order). Free-text
// search is a case-insensitive substring match over beneficiary name, RUT,
// service type and assigned technician; the remaining filters require exact
// equality when set.
func FilterTickets(tickets []domain.Ticket, filter ListFilter) []domain.Ticket {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	result := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if search != "" && !matchesSearch(&ticket, search) {
			continue
		}
		if filter.Status != "" && ticket.Status != filter.Status {
			continue
		}
		if filter.ServiceType != "" && ticket.ServiceType != filter.ServiceType {
			continue
		}
		if filter.ScheduledDate != "" && ticket.ScheduledDate != filter.ScheduledDate {
			continue
		}
		result = append(result, ticket)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ScheduledDate < result[j].ScheduledDate
	})
	return result
}

func matchesSearch(ticket *domain.Ticket, search string) bool {
	return strings.Contains(strings.ToLower(ticket.Beneficiary.Name), search) ||
		strings.Contains(strings.ToLower(ticket.Beneficiary.RUT), search) ||
		strings.Contains(strings.ToLower(ticket.ServiceType), search) ||
		strings.Contains(strings.ToLower(ticket.AssignedTechnician), search)
}
