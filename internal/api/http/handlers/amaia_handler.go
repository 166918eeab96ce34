package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/mistatas/soporte-service/internal/api/dto"
	"github.com/mistatas/soporte-service/internal/repository"
	"github.com/mistatas/soporte-service/internal/service"
	"github.com/mistatas/soporte-service/pkg/util/errorutil"
)

// AmaiaHandler serves the spreadsheet-imported dataset.
type AmaiaHandler struct {
	service *service.AmaiaService
}

// NewAmaiaHandler constructs handler.
func NewAmaiaHandler(amaiaService *service.AmaiaService) *AmaiaHandler {
	return &AmaiaHandler{service: amaiaService}
}

// Import POST /amaia/import. Expects a multipart upload under "archivo".
func (h *AmaiaHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("archivo")
	if err != nil {
		return errorutil.NewValidationError("archivo .xlsx requerido", nil)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return errorutil.NewValidationError("no se pudo leer el archivo", nil)
	}
	defer file.Close() //nolint:errcheck

	imported, err := h.service.Import(c.UserContext(), file)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.ImportResultResponse{Imported: imported}})
}

// List GET /amaia/tickets.
func (h *AmaiaHandler) List(c *fiber.Ctx) error {
	tickets, err := h.service.List(c.UserContext(), parseAmaiaQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAmaiaTicketResponses(tickets)})
}

// Metrics GET /amaia/metrics.
func (h *AmaiaHandler) Metrics(c *fiber.Ctx) error {
	metrics, err := h.service.Metrics(c.UserContext(), parseAmaiaQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": metrics})
}

func parseAmaiaQuery(c *fiber.Ctx) repository.AmaiaFilter {
	filter := repository.AmaiaFilter{}
	if search := c.Query("buscar"); search != "" {
		filter.SearchTerm = &search
	}
	if priority := c.Query("prioridad"); priority != "" {
		filter.Priority = &priority
	}
	if commune := c.Query("comuna"); commune != "" {
		filter.Commune = &commune
	}
	if group := c.Query("grupo"); group != "" {
		filter.Group = &group
	}
	return filter
}
