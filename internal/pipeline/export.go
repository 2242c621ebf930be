package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"pacesetter/internal"
)

var csvHeader = []string{
	"Product", "Category",
	"Transport_kgCO2e", "Materials_kgCO2e", "Production_kgCO2e",
	"Use_CO2e", "Total_CO2e", "Use_Share_%",
}

// ExportSnapshotCSV renders a locked snapshot as CSV: UTF-8 BOM, fixed
// header row, one row per KPI, CRLF line endings, quoting with doubled
// internal quotes where a field carries a comma, quote or newline.
func ExportSnapshotCSV(snap internal.Snapshot) []byte {
	lines := make([]string, 0, len(snap.KPIs)+1)
	lines = append(lines, joinCSV(csvHeader))
	for _, kpi := range snap.KPIs {
		lines = append(lines, joinCSV([]string{
			kpi.Product,
			string(kpi.Category),
			formatNum(kpi.Stages.Transport),
			formatNum(kpi.Stages.Materials),
			formatNum(kpi.Stages.Production),
			formatNum(kpi.UsePhaseCO2e),
			formatNum(kpi.TotalCO2e),
			formatNum(kpi.UsePhaseSharePct),
		}))
	}
	body := strings.Join(lines, "\r\n")
	return append([]byte{0xEF, 0xBB, 0xBF}, []byte(body)...)
}

// ExportSnapshotJSON serializes the full snapshot structure verbatim.
func ExportSnapshotJSON(snap internal.Snapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}

// ExportSnapshotXLSX writes the snapshot to a workbook, one row per KPI,
// same columns as the CSV export.
func ExportSnapshotXLSX(snap internal.Snapshot, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range csvHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, kpi := range snap.KPIs {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}
		set(1, kpi.Product)
		set(2, string(kpi.Category))
		set(3, kpi.Stages.Transport)
		set(4, kpi.Stages.Materials)
		set(5, kpi.Stages.Production)
		set(6, kpi.UsePhaseCO2e)
		set(7, kpi.TotalCO2e)
		set(8, kpi.UsePhaseSharePct)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func joinCSV(fields []string) string {
	out := make([]string, len(fields))
	for i, field := range fields {
		out[i] = escapeCSV(field)
	}
	return strings.Join(out, ",")
}

func escapeCSV(field string) string {
	if strings.ContainsAny(field, ",\"\n") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
