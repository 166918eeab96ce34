package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRUT(t *testing.T) {
	valid := []string{
		"12.345.678-K",
		"12345678-k",
		"12.345.6789",
		"1.234.567-0",
		"12345678",
	}
	for _, rut := range valid {
		assert.True(t, ValidRUT(rut), "expected valid: %s", rut)
	}

	invalid := []string{
		"",
		"12345",
		"abc.def.ghi-j",
		"12.345.678-KK",
		"123.45.678-9",
	}
	for _, rut := range invalid {
		assert.False(t, ValidRUT(rut), "expected invalid: %s", rut)
	}
}

func TestValidPhone(t *testing.T) {
	valid := []string{
		"+56912345678",
		"(2) 2345 6789",
		"9-8765-4321",
		"22.334.455",
	}
	for _, phone := range valid {
		assert.True(t, ValidPhone(phone), "expected valid: %s", phone)
	}

	invalid := []string{
		"",
		"fono 123",
		"12345x",
	}
	for _, phone := range invalid {
		assert.False(t, ValidPhone(phone), "expected invalid: %s", phone)
	}
}

func validDraft() TicketDraft {
	return TicketDraft{
		ClientType: ClientTypeParticular,
		Beneficiary: Beneficiary{
			Name:    "María Pérez",
			RUT:     "12.345.678-K",
			Phone:   "+56912345678",
			Address: "Av. Grecia 1234, Ñuñoa",
		},
		ServiceType:   "Instalación",
		ScheduledDate: "2026-09-15",
		ScheduledTime: "10:30",
		Status:        TicketStatusPending,
		Description:   "Instalación de equipo",
	}
}

func TestTicketDraftValidateAccepted(t *testing.T) {
	assert.Empty(t, validDraft().Validate())
}

func TestTicketDraftValidateProblems(t *testing.T) {
	draft := validDraft()
	draft.Beneficiary.Name = "  "
	draft.Beneficiary.RUT = "12345"
	draft.ScheduledDate = ""
	draft.Status = "Archivado"

	problems := draft.Validate()
	assert.Contains(t, problems, "nombre")
	assert.Contains(t, problems, "rut")
	assert.Contains(t, problems, "fechaCoordinacion")
	assert.Contains(t, problems, "estado")
	assert.NotContains(t, problems, "telefono")
}

func TestTicketDraftValidateTechnicianRoster(t *testing.T) {
	draft := validDraft()
	draft.AssignedTechnician = "Roberto Rojas"
	assert.Empty(t, draft.Validate())

	draft.AssignedTechnician = "Juan Externo"
	assert.Contains(t, draft.Validate(), "tecnicoAsignado")

	// unassigned is always acceptable
	draft.AssignedTechnician = ""
	assert.Empty(t, draft.Validate())
}

func TestScheduleKey(t *testing.T) {
	ticket := Ticket{ScheduledDate: "2026-09-15", ScheduledTime: "09:05"}
	assert.Equal(t, "2026-09-15T09:05", ticket.ScheduleKey())
}
