package model

import (
	"fmt"
	"math"
)

// CapacityEstimate compares the area an item set needs with the area a container offers.
type CapacityEstimate struct {
	TotalMinArea  float64  `json:"total_min_area"` // Sum of item minimum areas including gap allowance
	UsableArea    float64  `json:"usable_area"`    // Container area after padding
	Fill          float64  `json:"fill"`           // TotalMinArea / UsableArea (0 when nothing is usable)
	Overflow      bool     `json:"overflow"`       // Minimum sizes cannot all fit, whatever the arrangement
	OversizedIDs  []string `json:"oversized_ids"`  // Items larger than the usable area in some dimension
	TotalPriority float64  `json:"total_priority"` // Sum of positive priorities
}

// EstimateCapacity computes a CapacityEstimate. The gap is added to each item's
// footprint the same way MaxRects consumes it.
func EstimateCapacity(items []PackableItem, opts PackingOptions) CapacityEstimate {
	usable := opts.Usable()
	gap := NonNegative(opts.Gap)

	est := CapacityEstimate{
		UsableArea:   usable.Area(),
		OversizedIDs: []string{},
	}
	for _, it := range items {
		w := NonNegative(it.MinWidth) + gap
		h := NonNegative(it.MinHeight) + gap
		est.TotalMinArea += w * h
		if w > usable.Width || h > usable.Height {
			est.OversizedIDs = append(est.OversizedIDs, it.ID)
		}
		if p := it.Priority; p > 0 && !math.IsInf(p, 0) {
			est.TotalPriority += p
		}
	}

	if est.UsableArea > 0 {
		est.Fill = est.TotalMinArea / est.UsableArea
	}
	est.Overflow = est.TotalMinArea > est.UsableArea || len(est.OversizedIDs) > 0
	return est
}

// ValidateItems checks an item list for problems the engine silently normalizes.
// Each returned string describes one problem.
func ValidateItems(items []PackableItem) []string {
	var warnings []string
	seen := make(map[string]bool, len(items))
	for i, it := range items {
		name := it.ID
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
			warnings = append(warnings, fmt.Sprintf("item %s: empty id", name))
		} else if seen[it.ID] {
			warnings = append(warnings, fmt.Sprintf("item %s: duplicate id", name))
		}
		seen[it.ID] = true

		if it.MinWidth < 0 || it.MinHeight < 0 || math.IsNaN(it.MinWidth) || math.IsNaN(it.MinHeight) {
			warnings = append(warnings, fmt.Sprintf("item %s: invalid minimum size %gx%g, clamped to zero", name, it.MinWidth, it.MinHeight))
		}
		if !(it.Priority > 0) || math.IsInf(it.Priority, 0) {
			warnings = append(warnings, fmt.Sprintf("item %s: priority %g is not a positive number", name, it.Priority))
		}
		if it.MaxWidth > 0 && it.MaxWidth < it.MinWidth {
			warnings = append(warnings, fmt.Sprintf("item %s: max width %g below min width %g", name, it.MaxWidth, it.MinWidth))
		}
		if it.MaxHeight > 0 && it.MaxHeight < it.MinHeight {
			warnings = append(warnings, fmt.Sprintf("item %s: max height %g below min height %g", name, it.MaxHeight, it.MinHeight))
		}
		if it.AspectRatio != 0 {
			warnings = append(warnings, fmt.Sprintf("item %s: aspect ratio is not enforced by any algorithm", name))
		}
	}
	return warnings
}
