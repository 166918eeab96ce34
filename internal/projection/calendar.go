package projection

import (
	"fmt"
	"sort"
	"time"

	"github.com/mistatas/soporte-service/internal/domain"
)

// DayCell is one cell of the Monday-first month grid. Leading alignment
// cells have Day 0 and an empty Date.
type DayCell struct {
	Day     int
	Date    string // YYYY-MM-DD, empty on blank cells
	Tickets []domain.Ticket
}

// Blank reports whether the cell is a leading alignment cell.
func (c DayCell) Blank() bool {
	return c.Day == 0
}

// CalendarGrid builds the grid for the given month: leading blanks so the
// first day lands on its weekday (Monday first), then one cell per calendar
// day with that day's tickets sorted by time ascending. No trailing blanks.
func CalendarGrid(year int, month time.Month, tickets []domain.Ticket) []DayCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	// time.Weekday counts Sunday as 0; shift so Monday is 0
	leading := (int(first.Weekday()) + 6) % 7

	cells := make([]DayCell, 0, leading+daysInMonth)
	for i := 0; i < leading; i++ {
		cells = append(cells, DayCell{})
	}

	byDate := make(map[string][]domain.Ticket)
	for _, ticket := range tickets {
		byDate[ticket.ScheduledDate] = append(byDate[ticket.ScheduledDate], ticket)
	}

	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		dayTickets := append([]domain.Ticket(nil), byDate[date]...)
		sort.SliceStable(dayTickets, func(i, j int) bool {
			return dayTickets[i].ScheduledTime < dayTickets[j].ScheduledTime
		})
		cells = append(cells, DayCell{Day: day, Date: date, Tickets: dayTickets})
	}

	return cells
}
