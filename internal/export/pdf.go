package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Page margins and bands in mm.
const (
	margin       = 15.0
	headerHeight = 12.0
	legendHeight = 30.0
)

// pageSizes maps accepted page names to landscape width and height in mm.
var pageSizes = map[string][2]float64{
	"A4":     {297, 210},
	"A3":     {420, 297},
	"LETTER": {279.4, 215.9},
}

// pageDims resolves a page size name, defaulting to A4.
func pageDims(name string) (string, float64, float64) {
	key := strings.ToUpper(strings.TrimSpace(name))
	dims, ok := pageSizes[key]
	if !ok {
		key, dims = "A4", pageSizes["A4"]
	}
	if key == "LETTER" {
		key = "Letter"
	}
	return key, dims[0], dims[1]
}

// ExportPDF writes a landscape PDF with the layout drawn to scale on the first
// page and a summary of metrics and items on the second.
func ExportPDF(path string, report Report, pageSize string) error {
	size := report.Result.ContainerSize
	if size.Width <= 0 || size.Height <= 0 {
		return fmt.Errorf("cannot draw a %gx%g container", size.Width, size.Height)
	}

	name, pw, ph := pageDims(pageSize)
	pdf := fpdf.New("L", "mm", name, "")
	pdf.SetAutoPageBreak(false, margin)

	pdf.AddPage()
	renderLayoutPage(pdf, report, pw, ph)

	pdf.AddPage()
	renderSummaryPage(pdf, report, pw, ph)

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws the container and every placement scaled to fit.
func renderLayoutPage(pdf *fpdf.Fpdf, report Report, pw, ph float64) {
	res := report.Result

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(margin, margin)
	title := fmt.Sprintf("%s: %s (%.0f x %.0f)", report.title(), res.Algorithm, res.ContainerSize.Width, res.ContainerSize.Height)
	pdf.CellFormat(pw-2*margin, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(margin, margin+headerHeight)
	stats := fmt.Sprintf("Placed: %d | Unpacked: %d | Efficiency: %.1f%%",
		len(res.Packed), len(res.Unpacked), report.Metrics.Efficiency*100)
	if res.Cramped {
		stats += " | CRAMPED"
	}
	pdf.CellFormat(pw-2*margin, 5, stats, "", 0, "L", false, 0, "")

	top := margin + headerHeight + 8
	drawW := pw - 2*margin
	drawH := ph - top - margin - legendHeight
	scale := math.Min(drawW/res.ContainerSize.Width, drawH/res.ContainerSize.Height)

	canvasW := res.ContainerSize.Width * scale
	canvasH := res.ContainerSize.Height * scale
	offX := margin + (drawW-canvasW)/2
	offY := top

	pdf.SetFillColor(240, 240, 240)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offX, offY, canvasW, canvasH, "FD")

	for i, p := range res.Packed {
		col := colorFor(i)
		x, y := offX+p.X*scale, offY+p.Y*scale
		w, h := p.Width*scale, p.Height*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(x, y, w, h, "FD")

		if w > 15 && h > 8 {
			drawCenteredLabel(pdf, report.item(p.ID).DisplayName(), fmt.Sprintf("%.0fx%.0f", p.Width, p.Height), x, y, w, h)
		}
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	widthLabel := fmt.Sprintf("%.0f", res.ContainerSize.Width)
	lw := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offX+(canvasW-lw)/2, offY+canvasH+1)
	pdf.CellFormat(lw, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f", res.ContainerSize.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offX-3, offY+canvasH/2)
	hw := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offX-3-hw/2, offY+canvasH/2-2)
	pdf.CellFormat(hw, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()
	pdf.SetTextColor(0, 0, 0)

	drawLegend(pdf, report, offY+canvasH+6, pw)
}

// drawCenteredLabel writes a name and a size line centered in a cell,
// dropping whichever does not fit.
func drawCenteredLabel(pdf *fpdf.Fpdf, name, dims string, x, y, w, h float64) {
	size := 6.0
	switch minDim := math.Min(w, h); {
	case minDim > 40:
		size = 8
	case minDim > 20:
		size = 7
	}
	pdf.SetFont("Helvetica", "", size)
	pdf.SetTextColor(0, 0, 0)

	if nw := pdf.GetStringWidth(name); nw < w-2 {
		pdf.SetXY(x+(w-nw)/2, y+h/2-4)
		pdf.CellFormat(nw, 4, name, "", 0, "C", false, 0, "")
	}
	if dw := pdf.GetStringWidth(dims); h > 14 && dw < w-2 {
		pdf.SetXY(x+(w-dw)/2, y+h/2)
		pdf.CellFormat(dw, 4, dims, "", 0, "C", false, 0, "")
	}
}

// drawLegend lists placements with their color swatch, wrapping across lines.
func drawLegend(pdf *fpdf.Fpdf, report Report, y, pw float64) {
	if len(report.Result.Packed) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(margin, y)
	pdf.CellFormat(30, 4, "Items placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	x := margin + 32
	for i, p := range report.Result.Packed {
		col := colorFor(i)
		label := fmt.Sprintf("%s (%.0fx%.0f)", report.item(p.ID).DisplayName(), p.Width, p.Height)
		lw := pdf.GetStringWidth(label) + 6
		if x+lw > pw-margin {
			y += 5
			x = margin
		}
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(x, y+0.5, 3, 3, "F")
		pdf.SetXY(x+4, y)
		pdf.CellFormat(lw-4, 4, label, "", 0, "L", false, 0, "")
		x += lw + 2
	}
}

// renderSummaryPage prints metrics, the options used and an item table.
func renderSummaryPage(pdf *fpdf.Fpdf, report Report, pw, ph float64) {
	res := report.Result

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(margin, margin)
	pdf.CellFormat(pw-2*margin, 10, report.title()+" Summary", "", 0, "L", false, 0, "")
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(margin, margin+12, pw-margin, margin+12)

	y := margin + 18
	rows := []struct{ label, value string }{
		{"Algorithm", string(res.Algorithm)},
		{"Container", fmt.Sprintf("%.0f x %.0f", res.ContainerSize.Width, res.ContainerSize.Height)},
		{"Efficiency", fmt.Sprintf("%.1f%%", report.Metrics.Efficiency*100)},
		{"Packer Efficiency", fmt.Sprintf("%.1f%%", res.Efficiency*100)},
		{"Wasted Space", fmt.Sprintf("%.0f", report.Metrics.WastedSpace)},
		{"Items Placed", fmt.Sprintf("%d", report.Metrics.ItemCount)},
		{"Average Item Area", fmt.Sprintf("%.0f", report.Metrics.AverageItemArea)},
		{"Unpacked", fmt.Sprintf("%d", len(res.Unpacked))},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.SetXY(margin+5, y)
		pdf.CellFormat(50, 6, r.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, r.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	colWidths := []float64{30, 60, 30, 30, 30, 30, 30}
	headers := []string{"ID", "Label", "Priority", "X", "Y", "Width", "Height"}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := margin
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range res.Packed {
		if y > ph-margin-10 {
			pdf.AddPage()
			y = margin
		}
		it := report.item(p.ID)
		cells := []string{
			p.ID,
			it.Label,
			fmt.Sprintf("%g", it.Priority),
			fmt.Sprintf("%.1f", p.X),
			fmt.Sprintf("%.1f", p.Y),
			fmt.Sprintf("%.1f", p.Width),
			fmt.Sprintf("%.1f", p.Height),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x = margin
		for j, c := range cells {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 6, c, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += 6
	}

	if len(res.Unpacked) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(margin, y)
		pdf.CellFormat(200, 7, "WARNING: Unpacked Items", "", 0, "L", false, 0, "")
		y += 8
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, id := range res.Unpacked {
			if y > ph-margin-5 {
				pdf.AddPage()
				y = margin
			}
			it := report.item(id)
			pdf.SetXY(margin+5, y)
			pdf.CellFormat(200, 5, fmt.Sprintf("- %s: min %.0f x %.0f", it.DisplayName(), it.MinWidth, it.MinHeight), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(margin, ph-margin)
	pdf.CellFormat(pw-2*margin, 4, "Generated by packlayout", "", 0, "C", false, 0, "")
}
