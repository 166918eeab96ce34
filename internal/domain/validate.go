package domain

import (
	"regexp"
	"strings"
)

// Chilean RUT: 1-2 digits, two groups of 3, optional dot/dash separators,
// check digit 0-9 or K.
var rutPattern = regexp.MustCompile(`^[0-9]{1,2}\.?[0-9]{3}\.?[0-9]{3}-?[0-9Kk]$`)

// Permissive phone check: optional plus signs and area-code parens, then
// digits with spaces, dots, slashes or dashes.
var phonePattern = regexp.MustCompile(`^[+]*[(]?[0-9]{1,4}[)]?[-\s./0-9]*$`)

// ValidRUT reports whether rut matches the fixed RUT format.
func ValidRUT(rut string) bool {
	return rutPattern.MatchString(strings.TrimSpace(rut))
}

// ValidPhone reports whether phone matches the permissive phone pattern.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}

// TicketDraft carries the editable fields of a ticket for create and update.
type TicketDraft struct {
	ClientType          ClientType
	Beneficiary         Beneficiary
	ServiceType         string
	ScheduledDate       string
	ScheduledTime       string
	AssignedTechnician  string
	Status              TicketStatus
	Description         string
	Notes               string
	CoordinationContact string
}

// Validate checks the draft and returns a field -> message map. An empty map
// means the draft is acceptable. Validation happens before any write; a
// failing draft never reaches the store.
func (d TicketDraft) Validate() map[string]string {
	problems := map[string]string{}

	if strings.TrimSpace(d.Beneficiary.Name) == "" {
		problems["nombre"] = "Nombre del beneficiario es requerido."
	}
	switch rut := strings.TrimSpace(d.Beneficiary.RUT); {
	case rut == "":
		problems["rut"] = "RUT del beneficiario es requerido."
	case !ValidRUT(rut):
		problems["rut"] = "Formato de RUT inválido."
	}
	switch phone := strings.TrimSpace(d.Beneficiary.Phone); {
	case phone == "":
		problems["telefono"] = "Teléfono es requerido."
	case !ValidPhone(phone):
		problems["telefono"] = "Formato de teléfono inválido."
	}
	if strings.TrimSpace(d.Beneficiary.Address) == "" {
		problems["direccion"] = "Dirección es requerida."
	}
	if d.ScheduledDate == "" {
		problems["fechaCoordinacion"] = "Fecha de coordinación es requerida."
	}
	if d.ScheduledTime == "" {
		problems["horaCoordinacion"] = "Hora de coordinación es requerida."
	}
	if strings.TrimSpace(d.Description) == "" {
		problems["descripcion"] = "Descripción del servicio es requerida."
	}
	if !d.Status.IsValid() {
		problems["estado"] = "Estado desconocido."
	}
	if !d.ClientType.IsValid() {
		problems["tipoCliente"] = "Tipo de cliente desconocido."
	}
	if d.AssignedTechnician != "" && !IsKnownTechnician(d.AssignedTechnician) {
		problems["tecnicoAsignado"] = "Técnico fuera de la nómina."
	}

	return problems
}
