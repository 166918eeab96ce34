package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mistatas/soporte-service/internal/domain"
)

func TestCalendarGridShape(t *testing.T) {
	// September 2026 starts on a Tuesday: one leading blank, 30 days
	cells := CalendarGrid(2026, time.September, nil)

	require.Len(t, cells, 31)
	assert.True(t, cells[0].Blank())
	assert.Equal(t, 1, cells[1].Day)
	assert.Equal(t, "2026-09-01", cells[1].Date)
	assert.Equal(t, 30, cells[len(cells)-1].Day)
}

func TestCalendarGridMondayStartsFlush(t *testing.T) {
	// June 2026 starts on a Monday: no leading blanks
	cells := CalendarGrid(2026, time.June, nil)

	require.Len(t, cells, 30)
	assert.False(t, cells[0].Blank())
	assert.Equal(t, 1, cells[0].Day)
}

func TestCalendarGridFebruaryLeapYear(t *testing.T) {
	cells := CalendarGrid(2024, time.February, nil)
	assert.Equal(t, 29, cells[len(cells)-1].Day)
}

func TestCalendarGridGroupsAndSortsDayTickets(t *testing.T) {
	tickets := []domain.Ticket{
		ticketOn("2026-09-15", "14:00", domain.TicketStatusPending),
		ticketOn("2026-09-15", "09:00", domain.TicketStatusCoordinated),
		ticketOn("2026-09-16", "10:00", domain.TicketStatusPending),
		ticketOn("2026-10-15", "08:00", domain.TicketStatusPending), // other month
	}

	cells := CalendarGrid(2026, time.September, tickets)

	var day15 DayCell
	for _, cell := range cells {
		if cell.Day == 15 {
			day15 = cell
		}
	}
	require.Len(t, day15.Tickets, 2)
	assert.Equal(t, "09:00", day15.Tickets[0].ScheduledTime)
	assert.Equal(t, "14:00", day15.Tickets[1].ScheduledTime)
}
