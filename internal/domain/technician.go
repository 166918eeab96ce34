package domain

import "time"

// Technician is a member of the fixed field-service roster.
type Technician struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
}

// TechnicianNames is the roster seeded into the database. Tickets may only
// be assigned to one of these names (or left unassigned).
var TechnicianNames = []string{
	"Roberto Rojas",
	"Cristobal Rojas",
	"Gerardo Vega",
	"Daniel Osorio A.",
}

// IsKnownTechnician reports whether name belongs to the roster.
func IsKnownTechnician(name string) bool {
	for _, t := range TechnicianNames {
		if t == name {
			return true
		}
	}
	return false
}
