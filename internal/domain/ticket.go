package domain

import "time"

// TicketStatus enumerates lifecycle states for soporte tickets. The wire
// values are the Spanish labels the dashboard displays.
type TicketStatus string

const (
	TicketStatusPending     TicketStatus = "Pendiente"
	TicketStatusCoordinated TicketStatus = "Coordinado"
	TicketStatusInProgress  TicketStatus = "En Proceso"
	TicketStatusCompleted   TicketStatus = "Completado"
	TicketStatusRescheduled TicketStatus = "Reagendado"
	TicketStatusCancelled   TicketStatus = "Cancelado"
)

// TicketStatuses lists every status in display order.
var TicketStatuses = []TicketStatus{
	TicketStatusPending,
	TicketStatusCoordinated,
	TicketStatusInProgress,
	TicketStatusCompleted,
	TicketStatusRescheduled,
	TicketStatusCancelled,
}

// IsValid reports whether s is a member of the enumeration.
func (s TicketStatus) IsValid() bool {
	for _, candidate := range TicketStatuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// ClientType enumerates the affiliation of the beneficiary.
type ClientType string

const (
	ClientTypeParticular ClientType = "Particular"
	ClientTypeNunoa      ClientType = "Ñuñoa"
	ClientTypePenalolen  ClientType = "Peñalolen"
	ClientTypeElBosque   ClientType = "El Bosque"
)

// ClientTypes lists every affiliation in display order.
var ClientTypes = []ClientType{
	ClientTypeParticular,
	ClientTypeNunoa,
	ClientTypePenalolen,
	ClientTypeElBosque,
}

// IsValid reports whether c is a member of the enumeration.
func (c ClientType) IsValid() bool {
	for _, candidate := range ClientTypes {
		if c == candidate {
			return true
		}
	}
	return false
}

// Beneficiary is the person receiving the service, owned by its ticket.
type Beneficiary struct {
	Name    string `json:"nombre"`
	RUT     string `json:"rut"`
	Phone   string `json:"telefono"`
	Address string `json:"direccion"`
}

// HistoryEntry is an immutable audit record appended on every mutation.
type HistoryEntry struct {
	At     time.Time `json:"fecha"`
	Change string    `json:"cambio"`
	Actor  string    `json:"usuario,omitempty"`
}

// ClosureDetails captures how a ticket was resolved when it reaches
// Completado.
type ClosureDetails struct {
	Reason       string `json:"motivo"`
	Resolution   string `json:"solucion"`
	ClosureNotes string `json:"observacionesCierre"`
}

// Ticket is the aggregate for coordinated support visits.
type Ticket struct {
	ID                  string
	ClientType          ClientType
	Beneficiary         Beneficiary
	ServiceType         string
	ScheduledDate       string // YYYY-MM-DD
	ScheduledTime       string // HH:MM
	AssignedTechnician  string // empty means unassigned
	Status              TicketStatus
	Description         string
	Notes               string
	CoordinationContact string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	History             []HistoryEntry
	Closure             *ClosureDetails
}

// ScheduleKey concatenates the separate date and time fields into a single
// sortable key. Zero-padded HH:MM makes lexicographic order chronological.
func (t *Ticket) ScheduleKey() string {
	return t.ScheduledDate + "T" + t.ScheduledTime
}
