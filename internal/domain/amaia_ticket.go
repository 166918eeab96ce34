package domain

import "time"

// AmaiaTicket is a row imported from the external Amaia spreadsheet. It is a
// separate dataset used for filtering and metrics only and is unrelated to
// the Ticket aggregate.
type AmaiaTicket struct {
	ID          string
	Reference   string
	Beneficiary string
	Type        string
	Priority    string
	Status      string
	OpenedAt    string
	ClosedAt    string
	Commune     string
	Group       string
	ImportedAt  time.Time
}
