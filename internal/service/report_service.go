package service

import (
	"bytes"
	"fmt"
	"net/url"
	"sort"

	"github.com/go-pdf/fpdf"

	"github.com/mistatas/soporte-service/internal/domain"
	"github.com/mistatas/soporte-service/pkg/util/errorutil"
)

// ReportService renders route sheets and period reports as PDF documents.
// It works on a ticket collection passed in explicitly and never touches
// the store.
type ReportService struct{}

// NewReportService constructs the service.
func NewReportService() *ReportService {
	return &ReportService{}
}

// RouteSheet renders the printable route for one technician on one date:
// the matching tickets ordered by time, each with a map-search link built
// from the beneficiary address.
func (s *ReportService) RouteSheet(tickets []domain.Ticket, technician, date string) ([]byte, error) {
	if technician == "" || date == "" {
		return nil, errorutil.NewValidationError("técnico y fecha son requeridos", nil)
	}

	route := make([]domain.Ticket, 0)
	for _, ticket := range tickets {
		if ticket.AssignedTechnician == technician && ticket.ScheduledDate == date {
			route = append(route, ticket)
		}
	}
	sort.SliceStable(route, func(i, j int) bool {
		return route[i].ScheduledTime < route[j].ScheduledTime
	})

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Ruta del día: %s", date)))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Técnico: %s", technician)))
	pdf.Ln(12)

	if len(route) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 8, tr("No hay soportes programados para esta fecha"))
	}

	for i, ticket := range route {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, tr(fmt.Sprintf("%d. %s", i+1, ticket.Beneficiary.Name)))
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 6, tr(fmt.Sprintf("Hora: %s", ticket.ScheduledTime)))
		pdf.Ln(5)
		pdf.Cell(0, 6, tr(fmt.Sprintf("Teléfono: %s", ticket.Beneficiary.Phone)))
		pdf.Ln(5)
		pdf.SetTextColor(41, 128, 185)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Dirección: %s", ticket.Beneficiary.Address)),
			"", 0, "L", false, 0, mapsSearchURL(ticket.Beneficiary.Address))
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(5)
		pdf.Cell(0, 6, tr(fmt.Sprintf("Tipo de Soporte: %s", ticket.ServiceType)))
		pdf.Ln(9)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PeriodReport renders aggregate metrics and the per-ticket listing for one
// status over a closed date range.
func (s *ReportService) PeriodReport(tickets []domain.Ticket, status domain.TicketStatus, from, to string) ([]byte, error) {
	if from == "" || to == "" {
		return nil, errorutil.NewValidationError("rango de fechas requerido", nil)
	}
	if !status.IsValid() {
		return nil, errorutil.NewValidationError("estado desconocido", map[string]any{"estado": string(status)})
	}

	matched := make([]domain.Ticket, 0)
	byDate := map[string]int{}
	for _, ticket := range tickets {
		if ticket.Status != status {
			continue
		}
		if ticket.ScheduledDate < from || ticket.ScheduledDate > to {
			continue
		}
		matched = append(matched, ticket)
		byDate[ticket.ScheduledDate]++
	}

	busiestDate, busiestCount := busiestDay(byDate)

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Reporte de Soportes: %s", status)))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Período: %s al %s", from, to)))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	metricRow(pdf, tr, "Métrica", "Valor", true)
	pdf.SetFont("Helvetica", "", 10)
	metricRow(pdf, tr, "Total de soportes", fmt.Sprintf("%d", len(matched)), false)
	if busiestCount > 0 {
		metricRow(pdf, tr, "Día más ocupado", fmt.Sprintf("%s (%d soportes)", busiestDate, busiestCount), false)
		average := float64(len(matched)) / float64(len(byDate))
		metricRow(pdf, tr, "Promedio diario", fmt.Sprintf("%.1f", average), false)
	}
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	listingRow(pdf, tr, "Beneficiario", "Comuna", "Tipo de Soporte", "Solución", true)
	pdf.SetFont("Helvetica", "", 9)
	for _, ticket := range matched {
		listingRow(pdf, tr,
			ticket.Beneficiary.Name,
			communeLabel(&ticket),
			ticket.ServiceType,
			resolutionLabel(&ticket),
			false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func mapsSearchURL(address string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(address)
}

func busiestDay(byDate map[string]int) (string, int) {
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	busiestDate, busiestCount := "", 0
	for _, date := range dates {
		if byDate[date] > busiestCount {
			busiestDate, busiestCount = date, byDate[date]
		}
	}
	return busiestDate, busiestCount
}

func communeLabel(ticket *domain.Ticket) string {
	if ticket.ClientType != domain.ClientTypeParticular {
		return string(ticket.ClientType)
	}
	return "No especificada"
}

func resolutionLabel(ticket *domain.Ticket) string {
	if ticket.Closure != nil && ticket.Closure.Resolution != "" {
		return ticket.Closure.Resolution
	}
	return "No registrada"
}

func metricRow(pdf *fpdf.Fpdf, tr func(string) string, name, value string, header bool) {
	fill := header
	if header {
		pdf.SetFillColor(41, 128, 185)
		pdf.SetTextColor(255, 255, 255)
	}
	pdf.CellFormat(80, 8, tr(name), "1", 0, "L", fill, 0, "")
	pdf.CellFormat(100, 8, tr(value), "1", 1, "L", fill, 0, "")
	if header {
		pdf.SetTextColor(0, 0, 0)
	}
}

func listingRow(pdf *fpdf.Fpdf, tr func(string) string, beneficiary, commune, serviceType, resolution string, header bool) {
	fill := header
	if header {
		pdf.SetFillColor(41, 128, 185)
		pdf.SetTextColor(255, 255, 255)
	}
	pdf.CellFormat(50, 7, tr(beneficiary), "1", 0, "L", fill, 0, "")
	pdf.CellFormat(35, 7, tr(commune), "1", 0, "L", fill, 0, "")
	pdf.CellFormat(45, 7, tr(serviceType), "1", 0, "L", fill, 0, "")
	pdf.CellFormat(60, 7, tr(resolution), "1", 1, "L", fill, 0, "")
	if header {
		pdf.SetTextColor(0, 0, 0)
	}
}
