package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/mistatas/soporte-service/internal/domain"
	"github.com/mistatas/soporte-service/internal/service"
)

// ReportsHandler serves PDF exports.
type ReportsHandler struct {
	tickets *service.TicketService
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(ticketService *service.TicketService, reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{tickets: ticketService, reports: reportService}
}

// RouteSheet GET /reports/route?tecnico=&fecha=.
func (h *ReportsHandler) RouteSheet(c *fiber.Ctx) error {
	technician := c.Query("tecnico")
	date := c.Query("fecha")

	tickets, err := h.tickets.List(c.UserContext())
	if err != nil {
		return err
	}
	document, err := h.reports.RouteSheet(tickets, technician, date)
	if err != nil {
		return err
	}
	return sendPDF(c, document, fmt.Sprintf("ruta_%s.pdf", date))
}

// PeriodReport GET /reports/period?estado=&desde=&hasta=.
func (h *ReportsHandler) PeriodReport(c *fiber.Ctx) error {
	status := domain.TicketStatus(c.Query("estado"))
	from := c.Query("desde")
	to := c.Query("hasta")

	tickets, err := h.tickets.List(c.UserContext())
	if err != nil {
		return err
	}
	document, err := h.reports.PeriodReport(tickets, status, from, to)
	if err != nil {
		return err
	}
	return sendPDF(c, document, fmt.Sprintf("reporte_%s_%s.pdf", from, to))
}

func sendPDF(c *fiber.Ctx, document []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(document)
}
