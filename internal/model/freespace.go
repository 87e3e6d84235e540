package model

import "sort"

// MinFreeDimension is the default smallest width or height for an empty strip
// to be reported as free space.
const MinFreeDimension = 1.0

// FreeRegions returns the empty strips to the right of and below the bounding
// box of all placements, largest first. Strips with a side shorter than minDim
// are dropped. The bottom strip stops at the right edge of the placements so
// the two never overlap. A result with no placements is one free region
// covering the whole container.
func FreeRegions(result PackingResult, minDim float64) []Rect {
	size := result.ContainerSize
	if size.Width <= 0 || size.Height <= 0 {
		return []Rect{}
	}
	if len(result.Packed) == 0 {
		return []Rect{{Width: size.Width, Height: size.Height}}
	}

	var right, bottom float64
	for _, p := range result.Packed {
		if p.Right() > right {
			right = p.Right()
		}
		if p.Bottom() > bottom {
			bottom = p.Bottom()
		}
	}

	regions := []Rect{}
	if w := size.Width - right; w >= minDim && size.Height >= minDim {
		regions = append(regions, Rect{X: right, Y: 0, Width: w, Height: size.Height})
	}
	usableW := right
	if usableW > size.Width {
		usableW = size.Width
	}
	if h := size.Height - bottom; h >= minDim && usableW >= minDim {
		regions = append(regions, Rect{X: 0, Y: bottom, Width: usableW, Height: h})
	}

	sort.Slice(regions, func(i, j int) bool {
		return regions[i].Area() > regions[j].Area()
	})
	return regions
}

// TotalArea returns the summed area of rects.
func TotalArea(rects []Rect) float64 {
	var total float64
	for _, r := range rects {
		total += r.Area()
	}
	return total
}
