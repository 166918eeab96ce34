package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mistatas/soporte-service/internal/api/dto"
	"github.com/mistatas/soporte-service/internal/auth"
	"github.com/mistatas/soporte-service/internal/domain"
	"github.com/mistatas/soporte-service/internal/projection"
	"github.com/mistatas/soporte-service/internal/service"
	"github.com/mistatas/soporte-service/pkg/util/errorutil"
)

// TicketsHandler manages soporte ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return errorutil.NewUnauthorized("user required")
	}
	var req dto.TicketRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Create(c.UserContext(), principal.User.ID, req.Draft())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// ListTickets GET /tickets. Filters are applied over the full collection.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	filter := projection.ListFilter{
		Search:        c.Query("buscar"),
		Status:        domain.TicketStatus(c.Query("estado")),
		ServiceType:   c.Query("tipoServicio"),
		ScheduledDate: c.Query("fecha"),
	}
	filtered := projection.FilterTickets(tickets, filter)
	return c.JSON(fiber.Map{"data": dto.NewTicketResponses(filtered)})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// UpdateTicket PUT /tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return errorutil.NewUnauthorized("user required")
	}
	var req dto.TicketRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Update(c.UserContext(), principal.User.ID, c.Params("id"), req.Draft())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// ChangeStatus POST /tickets/:id/status.
func (h *TicketsHandler) ChangeStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return errorutil.NewUnauthorized("user required")
	}
	var req dto.StatusChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Transition(c.UserContext(), principal.User.ID, c.Params("id"), req.Status, req.Closure)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// DeleteTicket DELETE /tickets/:id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return errorutil.NewUnauthorized("user required")
	}
	if err := h.service.Delete(c.UserContext(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Dashboard GET /tickets/dashboard.
func (h *TicketsHandler) Dashboard(c *fiber.Ctx) error {
	tickets, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	summary := projection.Dashboard(tickets, time.Now())
	return c.JSON(fiber.Map{"data": dto.DashboardResponse{
		Counts:   summary.Counts,
		Upcoming: dto.NewTicketResponses(summary.Upcoming),
	}})
}

// Calendar GET /tickets/calendar?anio=&mes=.
func (h *TicketsHandler) Calendar(c *fiber.Ctx) error {
	now := time.Now()
	year := queryInt(c, "anio", now.Year())
	month := queryInt(c, "mes", int(now.Month()))
	if month < 1 || month > 12 {
		return errorutil.NewValidationError("mes fuera de rango", map[string]any{"mes": month})
	}

	tickets, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	cells := projection.CalendarGrid(year, time.Month(month), tickets)

	days := make([]dto.CalendarDayResponse, 0, len(cells))
	for _, cell := range cells {
		days = append(days, dto.CalendarDayResponse{
			Day:     cell.Day,
			Date:    cell.Date,
			Tickets: dto.NewTicketResponses(cell.Tickets),
		})
	}
	return c.JSON(fiber.Map{"data": days})
}

func queryInt(c *fiber.Ctx, key string, def int) int {
	val := c.Query(key)
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return parsed
}
