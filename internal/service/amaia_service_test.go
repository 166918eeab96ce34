package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mistatas/soporte-service/internal/domain"
)

func buildWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, workbook.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, workbook.Write(&buf))
	return &buf
}

func TestParseAmaiaWorkbookSkipsHeader(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"ID", "Referencia", "Beneficiario", "Tipo", "Prioridad", "Estado", "Apertura", "Cierre", "Comuna", "Grupo"},
		{"A-1", "REF-1", "María Pérez", "Alarma", "Alta", "Abierto", "2026-08-01", "", "Ñuñoa", "G1"},
		{"A-2", "REF-2", "Juan Soto", "Sensor", "Baja", "Cerrado", "2026-08-02", "2026-08-05", "Peñalolen", "G2"},
	})

	records, err := ParseAmaiaWorkbook(buf)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "A-1", records[0].ID)
	assert.Equal(t, "María Pérez", records[0].Beneficiary)
	assert.Equal(t, "Ñuñoa", records[0].Commune)
	assert.Equal(t, "2026-08-05", records[1].ClosedAt)
}

func TestParseAmaiaWorkbookToleratesShortRows(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"ID", "Referencia", "Beneficiario"},
		{"A-1", "REF-1", "María Pérez", "Alarma"},
	})

	records, err := ParseAmaiaWorkbook(buf)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "Alarma", records[0].Type)
	assert.Empty(t, records[0].Group)
}

func TestParseAmaiaWorkbookSkipsEmptyRows(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"ID", "Referencia", "Beneficiario"},
		{"", "", ""},
		{"A-1", "REF-1", "María Pérez"},
	})

	records, err := ParseAmaiaWorkbook(buf)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "A-1", records[0].ID)
}

func TestParseAmaiaWorkbookHeaderOnly(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"ID", "Referencia", "Beneficiario"},
	})

	records, err := ParseAmaiaWorkbook(buf)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseAmaiaWorkbookRejectsGarbage(t *testing.T) {
	_, err := ParseAmaiaWorkbook(bytes.NewBufferString("not a workbook"))
	assert.Error(t, err)
}

func TestComputeAmaiaMetrics(t *testing.T) {
	tickets := []domain.AmaiaTicket{
		{Priority: "Alta", Commune: "Ñuñoa", Group: "G1"},
		{Priority: "Alta", Commune: "Peñalolen", Group: "G1"},
		{Priority: "Baja", Commune: "Ñuñoa"},
		{}, // empty values are not bucketed
	}

	metrics := ComputeAmaiaMetrics(tickets)

	assert.Equal(t, 4, metrics.Total)
	assert.Equal(t, 2, metrics.ByPriority["Alta"])
	assert.Equal(t, 1, metrics.ByPriority["Baja"])
	assert.Equal(t, 2, metrics.ByCommune["Ñuñoa"])
	assert.Equal(t, 2, metrics.ByGroup["G1"])
	assert.Len(t, metrics.ByGroup, 1)
}
