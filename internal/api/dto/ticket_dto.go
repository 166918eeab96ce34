package dto

import (
	"time"

	"github.com/mistatas/soporte-service/internal/domain"
)

// TicketRequest payload for create and full update. Field names follow the
// dashboard's Spanish vocabulary.
type TicketRequest struct {
	ClientType          domain.ClientType   `json:"tipoCliente"`
	Beneficiary         domain.Beneficiary  `json:"beneficiario"`
	ServiceType         string              `json:"tipoServicio"`
	ScheduledDate       string              `json:"fechaCoordinacion"`
	ScheduledTime       string              `json:"horaCoordinacion"`
	AssignedTechnician  string              `json:"tecnicoAsignado"`
	Status              domain.TicketStatus `json:"estado"`
	Description         string              `json:"descripcion"`
	Notes               string              `json:"observaciones"`
	CoordinationContact string              `json:"contactoCoordinacion"`
}

// Draft maps the request onto the editable field set.
func (r TicketRequest) Draft() domain.TicketDraft {
	return domain.TicketDraft{
		ClientType:          r.ClientType,
		Beneficiary:         r.Beneficiary,
		ServiceType:         r.ServiceType,
		ScheduledDate:       r.ScheduledDate,
		ScheduledTime:       r.ScheduledTime,
		AssignedTechnician:  r.AssignedTechnician,
		Status:              r.Status,
		Description:         r.Description,
		Notes:               r.Notes,
		CoordinationContact: r.CoordinationContact,
	}
}

// StatusChangeRequest payload for POST /tickets/:id/status.
type StatusChangeRequest struct {
	Status  domain.TicketStatus    `json:"estado"`
	Closure *domain.ClosureDetails `json:"detallesCierre,omitempty"`
}

// TicketResponse is the full ticket representation, history included.
type TicketResponse struct {
	ID                  string                 `json:"id"`
	ClientType          domain.ClientType      `json:"tipoCliente"`
	Beneficiary         domain.Beneficiary     `json:"beneficiario"`
	ServiceType         string                 `json:"tipoServicio"`
	ScheduledDate       string                 `json:"fechaCoordinacion"`
	ScheduledTime       string                 `json:"horaCoordinacion"`
	AssignedTechnician  string                 `json:"tecnicoAsignado"`
	Status              domain.TicketStatus    `json:"estado"`
	Description         string                 `json:"descripcion"`
	Notes               string                 `json:"observaciones,omitempty"`
	CoordinationContact string                 `json:"contactoCoordinacion,omitempty"`
	CreatedAt           time.Time              `json:"fechaCreacion"`
	UpdatedAt           time.Time              `json:"fechaActualizacion"`
	History             []domain.HistoryEntry  `json:"historial"`
	Closure             *domain.ClosureDetails `json:"detallesCierre,omitempty"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	history := ticket.History
	if history == nil {
		history = []domain.HistoryEntry{}
	}
	return TicketResponse{
		ID:                  ticket.ID,
		ClientType:          ticket.ClientType,
		Beneficiary:         ticket.Beneficiary,
		ServiceType:         ticket.ServiceType,
		ScheduledDate:       ticket.ScheduledDate,
		ScheduledTime:       ticket.ScheduledTime,
		AssignedTechnician:  ticket.AssignedTechnician,
		Status:              ticket.Status,
		Description:         ticket.Description,
		Notes:               ticket.Notes,
		CoordinationContact: ticket.CoordinationContact,
		CreatedAt:           ticket.CreatedAt,
		UpdatedAt:           ticket.UpdatedAt,
		History:             history,
		Closure:             ticket.Closure,
	}
}

// NewTicketResponses maps a collection.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	items := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, NewTicketResponse(&tickets[i]))
	}
	return items
}

// DashboardResponse is the aggregated view for the landing screen.
type DashboardResponse struct {
	Counts   map[domain.TicketStatus]int `json:"conteoPorEstado"`
	Upcoming []TicketResponse            `json:"proximosSoportes"`
}

// CalendarDayResponse is one cell of the month grid.
type CalendarDayResponse struct {
	Day     int              `json:"dia"`
	Date    string           `json:"fecha,omitempty"`
	Tickets []TicketResponse `json:"soportes"`
}
