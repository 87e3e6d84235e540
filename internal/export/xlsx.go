package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	sheetLayout   = "Layout"
	sheetSummary  = "Summary"
	sheetUnpacked = "Unpacked"
)

// ExportXLSX writes a workbook with the placements, a summary of the metrics
// and the items that did not fit.
func ExportXLSX(path string, report Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetLayout); err != nil {
		return err
	}
	for _, name := range []string{sheetSummary, sheetUnpacked} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E6E6E6"}},
	})
	if err != nil {
		return err
	}

	layout := [][]interface{}{{"ID", "Label", "Priority", "X", "Y", "Width", "Height", "Area"}}
	for _, p := range report.Result.Packed {
		it := report.item(p.ID)
		layout = append(layout, []interface{}{p.ID, it.Label, it.Priority, p.X, p.Y, p.Width, p.Height, p.Area()})
	}
	if err := writeRows(f, sheetLayout, layout, header); err != nil {
		return err
	}

	res := report.Result
	summary := [][]interface{}{
		{"Metric", "Value"},
		{"Title", report.title()},
		{"Algorithm", string(res.Algorithm)},
		{"Container Width", res.ContainerSize.Width},
		{"Container Height", res.ContainerSize.Height},
		{"Efficiency", report.Metrics.Efficiency},
		{"Packer Efficiency", res.Efficiency},
		{"Wasted Space", report.Metrics.WastedSpace},
		{"Item Count", report.Metrics.ItemCount},
		{"Average Item Area", report.Metrics.AverageItemArea},
		{"Unpacked", len(res.Unpacked)},
		{"Cramped", res.Cramped},
	}
	if err := writeRows(f, sheetSummary, summary, header); err != nil {
		return err
	}

	unpacked := [][]interface{}{{"ID", "Label", "Min Width", "Min Height", "Priority"}}
	for _, id := range res.Unpacked {
		it := report.item(id)
		unpacked = append(unpacked, []interface{}{id, it.Label, it.MinWidth, it.MinHeight, it.Priority})
	}
	if err := writeRows(f, sheetUnpacked, unpacked, header); err != nil {
		return err
	}

	if err := f.SetColWidth(sheetLayout, "A", "B", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetSummary, "A", "A", 22); err != nil {
		return err
	}
	return f.SaveAs(path)
}

// writeRows writes rows starting at A1 and styles the first row as a header.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, headerStyle)
}
