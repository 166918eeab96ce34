package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mistatas/soporte-service/internal/repository"
)

// TechniciansHandler exposes the assignable roster.
type TechniciansHandler struct {
	technicians repository.TechnicianRepository
}

// NewTechniciansHandler constructs handler.
func NewTechniciansHandler(technicians repository.TechnicianRepository) *TechniciansHandler {
	return &TechniciansHandler{technicians: technicians}
}

// List GET /technicians.
func (h *TechniciansHandler) List(c *fiber.Ctx) error {
	roster, err := h.technicians.ListActive(c.UserContext())
	if err != nil {
		return err
	}
	names := make([]string, 0, len(roster))
	for _, tech := range roster {
		names = append(names, tech.Name)
	}
	return c.JSON(fiber.Map{"data": names})
}
