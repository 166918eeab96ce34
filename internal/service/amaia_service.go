package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mistatas/soporte-service/internal/domain"
	"github.com/mistatas/soporte-service/internal/repository"
	"github.com/mistatas/soporte-service/pkg/util/errorutil"
)

// amaiaColumnCount is the fixed positional schema of the exported sheet:
// id, referencia, beneficiario, tipo, prioridad, estado, apertura, cierre,
// comuna, grupo.
const amaiaColumnCount = 10

// AmaiaService handles the spreadsheet-imported Amaia ticket dataset.
type AmaiaService struct {
	amaia repository.AmaiaTicketRepository
}

// NewAmaiaService constructs the service.
func NewAmaiaService(amaia repository.AmaiaTicketRepository) *AmaiaService {
	return &AmaiaService{amaia: amaia}
}

// Import parses an .xlsx export and replaces the stored dataset with its
// rows. The first data row is discarded as the header.
func (s *AmaiaService) Import(ctx context.Context, r io.Reader) (int, error) {
	records, err := ParseAmaiaWorkbook(r)
	if err != nil {
		return 0, err
	}
	if err := s.amaia.ReplaceAll(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// List returns the stored dataset filtered by the given criteria.
func (s *AmaiaService) List(ctx context.Context, filter repository.AmaiaFilter) ([]domain.AmaiaTicket, error) {
	return s.amaia.ListWithFilter(ctx, filter)
}

// Metrics aggregates the filtered dataset per priority, commune and group.
func (s *AmaiaService) Metrics(ctx context.Context, filter repository.AmaiaFilter) (AmaiaMetrics, error) {
	tickets, err := s.amaia.ListWithFilter(ctx, filter)
	if err != nil {
		return AmaiaMetrics{}, err
	}
	return ComputeAmaiaMetrics(tickets), nil
}

// AmaiaMetrics is the aggregate view over the imported dataset.
type AmaiaMetrics struct {
	Total      int            `json:"total"`
	ByPriority map[string]int `json:"por_prioridad"`
	ByCommune  map[string]int `json:"por_comuna"`
	ByGroup    map[string]int `json:"por_grupo"`
}

// ComputeAmaiaMetrics counts tickets per priority, commune and group. Empty
// values are not counted as buckets.
func ComputeAmaiaMetrics(tickets []domain.AmaiaTicket) AmaiaMetrics {
	metrics := AmaiaMetrics{
		Total:      len(tickets),
		ByPriority: map[string]int{},
		ByCommune:  map[string]int{},
		ByGroup:    map[string]int{},
	}
	for _, ticket := range tickets {
		if ticket.Priority != "" {
			metrics.ByPriority[ticket.Priority]++
		}
		if ticket.Commune != "" {
			metrics.ByCommune[ticket.Commune]++
		}
		if ticket.Group != "" {
			metrics.ByGroup[ticket.Group]++
		}
	}
	return metrics
}

// ParseAmaiaWorkbook reads the first sheet of an .xlsx file and maps its
// rows positionally into AmaiaTicket records, skipping the header row.
func ParseAmaiaWorkbook(r io.Reader) ([]domain.AmaiaTicket, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errorutil.NewValidationError("archivo Excel inválido", map[string]any{"archivo": err.Error()})
	}
	defer workbook.Close() //nolint:errcheck

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, errorutil.NewValidationError("el archivo no contiene hojas", nil)
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) <= 1 {
		return []domain.AmaiaTicket{}, nil
	}

	records := make([]domain.AmaiaTicket, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := domain.AmaiaTicket{
			ID:          cell(row, 0),
			Reference:   cell(row, 1),
			Beneficiary: cell(row, 2),
			Type:        cell(row, 3),
			Priority:    cell(row, 4),
			Status:      cell(row, 5),
			OpenedAt:    cell(row, 6),
			ClosedAt:    cell(row, 7),
			Commune:     cell(row, 8),
			Group:       cell(row, 9),
		}
		if record.ID == "" && record.Reference == "" && record.Beneficiary == "" {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func cell(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}
