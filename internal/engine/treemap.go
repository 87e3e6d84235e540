package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/packlayout/internal/model"
)

// MinPriority is the smallest treemap weight once priorities are scaled so the
// largest is 1. Non-positive and non-finite priorities get it too: when every
// priority is invalid the items share the area equally, otherwise such items
// get a negligible share and are held up only by their minimum size.
const MinPriority = 1e-6

// treemapCell is an item with its proportional target area.
type treemapCell struct {
	item   model.PackableItem
	target float64
}

// packTreemap partitions the usable area into cells whose areas follow item
// priorities, using the squarified treemap row heuristic. Every item is placed.
func packTreemap(items []model.PackableItem, opts model.PackingOptions) model.PackingResult {
	result := model.NewResult(model.AlgorithmTreemap, opts.ContainerSize())
	if len(items) == 0 {
		return result
	}

	usable := opts.Usable()
	cells := treemapCells(items, usable.Area())

	layout := treemapLayout{packed: make([]model.PackedRect, 0, len(cells))}
	layout.squarify(usable, cells)

	var packedArea float64
	for _, p := range layout.packed {
		packedArea += p.Area()
	}

	// Gap does not apply to the treemap.
	capOpts := opts
	capOpts.Gap = 0

	result.Packed = layout.packed
	result.Efficiency = efficiency(packedArea, usable.Area())
	result.Cramped = model.EstimateCapacity(items, capOpts).Overflow
	return result
}

// treemapCells computes target areas and returns the cells sorted by target
// area, largest first. Equal targets keep the caller's order. Weights are
// scaled by the largest one so the sum stays finite.
func treemapCells(items []model.PackableItem, totalArea float64) []treemapCell {
	weights := make([]float64, len(items))
	var largest float64
	for i, it := range items {
		w := it.Priority
		if !(w > 0) || math.IsInf(w, 0) {
			w = 0
		}
		weights[i] = w
		largest = math.Max(largest, w)
	}

	var total float64
	for i, w := range weights {
		if w > 0 {
			w /= largest
		}
		if w < MinPriority {
			w = MinPriority
		}
		weights[i] = w
		total += w
	}

	cells := make([]treemapCell, len(items))
	for i, it := range items {
		cells[i] = treemapCell{item: it, target: weights[i] / total * totalArea}
	}
	sort.SliceStable(cells, func(i, j int) bool {
		return cells[i].target > cells[j].target
	})
	return cells
}

type treemapLayout struct {
	packed []model.PackedRect
}

// squarify lays out the leading row of cells in region and recurses into the
// space the row leaves behind.
func (l *treemapLayout) squarify(region model.Rect, cells []treemapCell) {
	if len(cells) == 0 {
		return
	}
	if region.Width <= epsilon || region.Height <= epsilon {
		// No room left: remaining cells collapse onto the region origin.
		for _, c := range cells {
			l.place(c.item, model.Rect{X: region.X, Y: region.Y}, region)
		}
		return
	}

	n := 1
	for n < len(cells) && worstAspect(cells[:n+1]) <= worstAspect(cells[:n]) {
		n++
	}

	rest := l.layoutRow(region, cells[:n])
	l.squarify(rest, cells[n:])
}

// layoutRow places row as a strip running along the long side of region and
// returns the remaining region. The strip is rowArea/long thick and each cell
// gets a slice of the long side in proportion to its target. Cells are floored
// at their minimum size and capped at their maximum; a strip grows to its
// thickest cell and later cells in the strip are pushed along, then everything
// is clipped to region.
func (l *treemapLayout) layoutRow(region model.Rect, row []treemapCell) model.Rect {
	var rowArea float64
	for _, c := range row {
		rowArea += c.target
	}

	isWide := region.Width >= region.Height
	long := region.Width // strip runs left to right along the top edge
	if !isWide {
		long = region.Height // strip runs top to bottom along the left edge
	}
	thickness := 0.0
	if rowArea > 0 {
		thickness = rowArea / long
	}

	cursor := 0.0
	stripThickness := 0.0
	for _, c := range row {
		length := 0.0
		if rowArea > 0 {
			length = c.target / rowArea * long
		}

		var cell model.Rect
		if isWide {
			w := clampSize(length, c.item.MinWidth, c.item.MaxWidth)
			h := clampSize(thickness, c.item.MinHeight, c.item.MaxHeight)
			cell = model.Rect{X: region.X + cursor, Y: region.Y, Width: w, Height: h}
			cursor += w
			stripThickness = math.Max(stripThickness, h)
		} else {
			w := clampSize(thickness, c.item.MinWidth, c.item.MaxWidth)
			h := clampSize(length, c.item.MinHeight, c.item.MaxHeight)
			cell = model.Rect{X: region.X, Y: region.Y + cursor, Width: w, Height: h}
			cursor += h
			stripThickness = math.Max(stripThickness, w)
		}
		l.place(c.item, cell, region)
	}

	if isWide {
		used := math.Min(stripThickness, region.Height)
		return model.Rect{X: region.X, Y: region.Y + used, Width: region.Width, Height: region.Height - used}
	}
	used := math.Min(stripThickness, region.Width)
	return model.Rect{X: region.X + used, Y: region.Y, Width: region.Width - used, Height: region.Height}
}

// place records a cell clipped to bounds.
func (l *treemapLayout) place(item model.PackableItem, cell, bounds model.Rect) {
	l.packed = append(l.packed, model.PackedRect{ID: item.ID, Rect: clip(cell, bounds)})
}

// worstAspect scores a candidate row: each cell contributes
// max(rowArea/target, target/rowArea) and the row takes the largest.
func worstAspect(row []treemapCell) float64 {
	var rowArea float64
	for _, c := range row {
		rowArea += c.target
	}
	worst := 0.0
	for _, c := range row {
		if c.target <= 0 || rowArea <= 0 {
			return math.Inf(1)
		}
		worst = math.Max(worst, math.Max(rowArea/c.target, c.target/rowArea))
	}
	return worst
}

// clampSize floors v at min and caps it at max when a usable max is set.
// NaN counts as zero.
func clampSize(v, min, max float64) float64 {
	if math.IsNaN(v) {
		v = 0
	}
	min = model.NonNegative(min)
	max = model.NonNegative(max)
	if max > 0 && max >= min && v > max {
		v = max
	}
	if v < min {
		v = min
	}
	return v
}

// clip returns the part of r inside bounds, anchored at r's origin.
func clip(r, bounds model.Rect) model.Rect {
	x := math.Min(math.Max(r.X, bounds.X), bounds.Right())
	y := math.Min(math.Max(r.Y, bounds.Y), bounds.Bottom())
	return model.Rect{
		X:      x,
		Y:      y,
		Width:  math.Max(math.Min(r.Right(), bounds.Right())-x, 0),
		Height: math.Max(math.Min(r.Bottom(), bounds.Bottom())-y, 0),
	}
}
