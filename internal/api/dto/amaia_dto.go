package dto

import (
	"time"

	"github.com/mistatas/soporte-service/internal/domain"
)

// AmaiaTicketResponse mirrors one imported spreadsheet row.
type AmaiaTicketResponse struct {
	ID          string    `json:"id"`
	Reference   string    `json:"referencia"`
	Beneficiary string    `json:"beneficiario"`
	Type        string    `json:"tipo"`
	Priority    string    `json:"prioridad"`
	Status      string    `json:"estado"`
	OpenedAt    string    `json:"apertura"`
	ClosedAt    string    `json:"cierre"`
	Commune     string    `json:"comuna"`
	Group       string    `json:"grupo"`
	ImportedAt  time.Time `json:"fechaImportacion"`
}

// NewAmaiaTicketResponses maps the stored dataset.
func NewAmaiaTicketResponses(tickets []domain.AmaiaTicket) []AmaiaTicketResponse {
	items := make([]AmaiaTicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		items = append(items, AmaiaTicketResponse{
			ID:          ticket.ID,
			Reference:   ticket.Reference,
			Beneficiary: ticket.Beneficiary,
			Type:        ticket.Type,
			Priority:    ticket.Priority,
			Status:      ticket.Status,
			OpenedAt:    ticket.OpenedAt,
			ClosedAt:    ticket.ClosedAt,
			Commune:     ticket.Commune,
			Group:       ticket.Group,
			ImportedAt:  ticket.ImportedAt,
		})
	}
	return items
}

// ImportResultResponse reports how many rows replaced the dataset.
type ImportResultResponse struct {
	Imported int `json:"importados"`
}
