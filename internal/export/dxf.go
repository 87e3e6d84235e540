package export

import (
	"fmt"

	"github.com/yofu/dxf"
)

// DXF layer names.
const (
	layerContainer = "CONTAINER"
	layerItems     = "ITEMS"
)

// ExportDXF writes the container outline and each placement as closed
// rectangles on separate layers. DXF's y axis points up, so the layout is
// mirrored vertically to keep the top-left origin at the top.
func ExportDXF(path string, report Report) error {
	size := report.Result.ContainerSize
	if size.Width <= 0 || size.Height <= 0 {
		return fmt.Errorf("cannot draw a %gx%g container", size.Width, size.Height)
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(layerContainer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return err
	}
	if err := drawRect(d, 0, 0, size.Width, size.Height); err != nil {
		return err
	}

	if _, err := d.AddLayer(layerItems, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return err
	}
	for _, p := range report.Result.Packed {
		if p.Width <= 0 || p.Height <= 0 {
			continue
		}
		if err := drawRect(d, p.X, size.Height-p.Bottom(), p.Width, p.Height); err != nil {
			return fmt.Errorf("failed to draw %s: %w", p.ID, err)
		}
	}
	return d.SaveAs(path)
}

// drawRect adds the four edges of a rectangle whose lower-left corner is (x, y).
func drawRect(d *dxf.Drawing, x, y, w, h float64) error {
	corners := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i, a := range corners {
		b := corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return err
		}
	}
	return nil
}
