package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/packlayout/internal/model"
)

// epsilon absorbs floating point drift when comparing edges.
const epsilon = 1e-9

// packMaxRects places items one at a time into the best fitting free rectangle.
// Items are placed at their minimum size; the gap only widens the footprint.
func packMaxRects(items []model.PackableItem, opts model.PackingOptions) model.PackingResult {
	result := model.NewResult(model.AlgorithmMaxRects, opts.ContainerSize())
	if len(items) == 0 {
		return result
	}

	usable := opts.Usable()
	packer := newMaxRectsPacker(usable, model.NonNegative(opts.Gap))

	var packedArea float64
	for _, item := range placementOrder(items, opts.SortBy) {
		w := model.NonNegative(item.MinWidth)
		h := model.NonNegative(item.MinHeight)

		x, y, ok := packer.insert(w, h)
		if !ok {
			result.Unpacked = append(result.Unpacked, item.ID)
			continue
		}
		result.Packed = append(result.Packed, model.PackedRect{
			ID:   item.ID,
			Rect: model.Rect{X: x, Y: y, Width: w, Height: h},
		})
		packedArea += w * h
	}

	result.Efficiency = efficiency(packedArea, usable.Area())
	return result
}

// placementOrder returns a copy of items in the order MaxRects places them.
// The sort is stable so equal keys keep the caller's order.
func placementOrder(items []model.PackableItem, by model.SortBy) []model.PackableItem {
	ordered := make([]model.PackableItem, len(items))
	copy(ordered, items)

	byPriority := func(i, j int) (bool, bool) {
		pi, pj := model.NonNegative(ordered[i].Priority), model.NonNegative(ordered[j].Priority)
		return pi > pj, pi == pj
	}
	byArea := func(i, j int) (bool, bool) {
		ai, aj := ordered[i].MinArea(), ordered[j].MinArea()
		return ai > aj, ai == aj
	}

	switch by {
	case model.SortInput:
		return ordered
	case model.SortArea:
		sort.SliceStable(ordered, func(i, j int) bool {
			if less, tie := byArea(i, j); !tie {
				return less
			}
			less, _ := byPriority(i, j)
			return less
		})
	default: // SortPriority
		sort.SliceStable(ordered, func(i, j int) bool {
			if less, tie := byPriority(i, j); !tie {
				return less
			}
			less, _ := byArea(i, j)
			return less
		})
	}
	return ordered
}

// maxRectsPacker tracks the unused space of a container as a list of
// possibly overlapping maximal free rectangles.
type maxRectsPacker struct {
	freeRects []model.Rect
	gap       float64
}

func newMaxRectsPacker(area model.Rect, gap float64) *maxRectsPacker {
	mp := &maxRectsPacker{gap: gap}
	if area.Width > epsilon && area.Height > epsilon {
		mp.freeRects = []model.Rect{area}
	}
	return mp
}

// insert places a w x h item using Best Short Side Fit and returns its position.
// Ties on the short side are broken by the long side leftover.
func (mp *maxRectsPacker) insert(w, h float64) (float64, float64, bool) {
	idx := mp.bestFit(w, h)
	if idx < 0 {
		return 0, 0, false
	}

	chosen := mp.freeRects[idx]
	placed := model.Rect{X: chosen.X, Y: chosen.Y, Width: w + mp.gap, Height: h + mp.gap}
	mp.splitAroundPlacement(placed)

	return chosen.X, chosen.Y, true
}

// bestFit returns the index of the free rectangle that fits w x h (plus gap)
// with the smallest short side leftover, or -1 if none fits.
func (mp *maxRectsPacker) bestFit(w, h float64) int {
	wk := w + mp.gap
	hk := h + mp.gap

	bestIdx := -1
	bestShort := math.MaxFloat64
	bestLong := math.MaxFloat64

	for i, r := range mp.freeRects {
		if wk > r.Width+epsilon || hk > r.Height+epsilon {
			continue
		}
		leftoverHoriz := math.Max(r.Width-wk, 0)
		leftoverVert := math.Max(r.Height-hk, 0)
		shortFit := math.Min(leftoverHoriz, leftoverVert)
		longFit := math.Max(leftoverHoriz, leftoverVert)

		if shortFit < bestShort || (shortFit == bestShort && longFit < bestLong) {
			bestIdx = i
			bestShort = shortFit
			bestLong = longFit
		}
	}
	return bestIdx
}

// splitAroundPlacement removes every free rect that overlaps the placed footprint
// and replaces it with the maximal strips left around the footprint. For the rect
// the item was placed into, that leaves the right and bottom remainders.
func (mp *maxRectsPacker) splitAroundPlacement(placed model.Rect) {
	newRects := make([]model.Rect, 0, len(mp.freeRects)+3)

	for _, r := range mp.freeRects {
		if !rectsOverlap(r, placed) {
			newRects = append(newRects, r)
			continue
		}

		// Left strip (full height of original rect)
		if placed.X > r.X+epsilon {
			newRects = append(newRects, model.Rect{X: r.X, Y: r.Y, Width: placed.X - r.X, Height: r.Height})
		}
		// Right strip (full height of original rect)
		if placed.Right() < r.Right()-epsilon {
			newRects = append(newRects, model.Rect{X: placed.Right(), Y: r.Y, Width: r.Right() - placed.Right(), Height: r.Height})
		}
		// Top strip (full width of original rect)
		if placed.Y > r.Y+epsilon {
			newRects = append(newRects, model.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: placed.Y - r.Y})
		}
		// Bottom strip (full width of original rect)
		if placed.Bottom() < r.Bottom()-epsilon {
			newRects = append(newRects, model.Rect{X: r.X, Y: placed.Bottom(), Width: r.Width, Height: r.Bottom() - placed.Bottom()})
		}
	}

	mp.freeRects = pruneContained(newRects)
}

// rectsOverlap returns true if two rectangles overlap (not just touch).
func rectsOverlap(a, b model.Rect) bool {
	return a.X < b.Right()-epsilon && a.Right() > b.X+epsilon &&
		a.Y < b.Bottom()-epsilon && a.Bottom() > b.Y+epsilon
}

// pruneContained removes any rect that is fully contained within another.
// Of two identical rects the first one is kept.
func pruneContained(rects []model.Rect) []model.Rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]model.Rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i == j || !containsRect(b, a) {
				continue
			}
			if !containsRect(a, b) || j < i {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

// containsRect returns true if outer fully contains inner.
func containsRect(outer, inner model.Rect) bool {
	return outer.X <= inner.X+epsilon && outer.Y <= inner.Y+epsilon &&
		outer.Right() >= inner.Right()-epsilon &&
		outer.Bottom() >= inner.Bottom()-epsilon
}

// efficiency returns used/total clamped to [0,1], or 0 when total is not
// positive or the ratio is undefined.
func efficiency(used, total float64) float64 {
	if total <= 0 {
		return 0
	}
	ratio := used / total
	if math.IsNaN(ratio) {
		return 0
	}
	return math.Min(math.Max(ratio, 0), 1)
}
