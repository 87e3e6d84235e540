// Package export writes packing results to PDF layout sheets, QR label
// sheets, XLSX workbooks and DXF drawings.
package export

import (
	"errors"

	"github.com/piwi3910/packlayout/internal/model"
)

// ErrNothingPlaced is returned by exporters that need at least one placement.
var ErrNothingPlaced = errors.New("no items placed")

// Report is everything an exporter needs: the layout, the items it was built
// from and the metrics computed for it.
type Report struct {
	Title   string
	Items   []model.PackableItem
	Result  model.PackingResult
	Metrics model.Metrics
}

// item returns the input item for a placement ID. Unknown IDs get a bare item
// carrying only the ID so exporters can still label them.
func (r Report) item(id string) model.PackableItem {
	for _, it := range r.Items {
		if it.ID == id {
			return it
		}
	}
	return model.PackableItem{ID: id}
}

func (r Report) title() string {
	if r.Title != "" {
		return r.Title
	}
	return "Layout"
}

// itemColor is an RGB fill used for placed items.
type itemColor struct {
	R, G, B int
}

// itemColors is cycled through by placement index.
var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

func colorFor(i int) itemColor {
	return itemColors[i%len(itemColors)]
}
