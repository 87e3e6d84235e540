package model

import (
	"math"

	"github.com/google/uuid"
)

// PackableItem is a rectangle request handed to the packing engine.
// Items are immutable inputs; identity is by ID.
type PackableItem struct {
	ID        string  `json:"id" yaml:"id"`
	Label     string  `json:"label,omitempty" yaml:"label,omitempty"`
	MinWidth  float64 `json:"min_width" yaml:"min_width"`
	MinHeight float64 `json:"min_height" yaml:"min_height"`
	MaxWidth  float64 `json:"max_width,omitempty" yaml:"max_width,omitempty"`   // 0 = unbounded
	MaxHeight float64 `json:"max_height,omitempty" yaml:"max_height,omitempty"` // 0 = unbounded
	Priority  float64 `json:"priority" yaml:"priority"`                         // Higher = larger share / earlier pick

	// AspectRatio is reserved for future algorithms. No algorithm reads it.
	AspectRatio float64 `json:"aspect_ratio,omitempty" yaml:"aspect_ratio,omitempty"`
}

// NewID returns a short random item ID.
func NewID() string {
	return uuid.New().String()[:8]
}

// NewItem creates an item with a short random ID.
func NewItem(label string, minW, minH, priority float64) PackableItem {
	return PackableItem{
		ID:        NewID(),
		Label:     label,
		MinWidth:  minW,
		MinHeight: minH,
		Priority:  priority,
	}
}

// AssignMissingIDs gives every item without an ID a random one and returns
// how many were assigned.
func AssignMissingIDs(items []PackableItem) int {
	n := 0
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = NewID()
			n++
		}
	}
	return n
}

// MinArea returns the area of the item at its minimum size.
func (it PackableItem) MinArea() float64 {
	return NonNegative(it.MinWidth) * NonNegative(it.MinHeight)
}

// DisplayName returns the label, or the ID when no label is set.
func (it PackableItem) DisplayName() string {
	if it.Label != "" {
		return it.Label
	}
	return it.ID
}

// PackedRect is a placement for a single item in container-local coordinates.
type PackedRect struct {
	ID   string `json:"id" yaml:"id"`
	Rect `yaml:",inline"`
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Area returns Width*Height.
func (s Size) Area() float64 {
	return s.Width * s.Height
}

// PackingOptions describes the container and spacing for a packing call.
type PackingOptions struct {
	ContainerWidth  float64 `json:"container_width" yaml:"container_width"`
	ContainerHeight float64 `json:"container_height" yaml:"container_height"`
	Padding         float64 `json:"padding,omitempty" yaml:"padding,omitempty"` // Subtracted from every edge
	Gap             float64 `json:"gap,omitempty" yaml:"gap,omitempty"`         // Inter-item spacing (MaxRects only)
	SortBy          SortBy  `json:"sort_by,omitempty" yaml:"sort_by,omitempty"` // Placement order hint (MaxRects only)
}

// ContainerSize returns the container dimensions, clamped to non-negative values.
func (o PackingOptions) ContainerSize() Size {
	return Size{
		Width:  NonNegative(o.ContainerWidth),
		Height: NonNegative(o.ContainerHeight),
	}
}

// Usable returns the area available for layout after padding, offset by the padding.
// A padding that consumes the whole container yields a zero-size rectangle, and
// so does an infinite or NaN padding, which is centered in the container.
// Negative padding counts as zero.
func (o PackingOptions) Usable() Rect {
	size := o.ContainerSize()
	if math.IsNaN(o.Padding) || math.IsInf(o.Padding, 1) {
		return Rect{X: size.Width / 2, Y: size.Height / 2}
	}
	pad := NonNegative(o.Padding)
	return Rect{
		X:      pad,
		Y:      pad,
		Width:  NonNegative(size.Width - 2*pad),
		Height: NonNegative(size.Height - 2*pad),
	}
}

// PackingResult is the output of a packing call.
type PackingResult struct {
	Algorithm     Algorithm    `json:"algorithm" yaml:"algorithm"` // Algorithm that actually ran
	Packed        []PackedRect `json:"packed" yaml:"packed"`
	Unpacked      []string     `json:"unpacked" yaml:"unpacked"` // IDs that did not fit
	Efficiency    float64      `json:"efficiency" yaml:"efficiency"`
	ContainerSize Size         `json:"container_size" yaml:"container_size"`

	// Cramped is set by the treemap when minimum sizes exceed the usable area.
	Cramped bool `json:"cramped,omitempty" yaml:"cramped,omitempty"`
}

// NewResult returns an empty result with non-nil slices.
func NewResult(alg Algorithm, size Size) PackingResult {
	return PackingResult{
		Algorithm:     alg,
		Packed:        []PackedRect{},
		Unpacked:      []string{},
		ContainerSize: size,
	}
}

// PackedArea returns the total area of all placements.
func (r PackingResult) PackedArea() float64 {
	var total float64
	for _, p := range r.Packed {
		total += p.Area()
	}
	return total
}

// Placement returns the placement for the given item ID.
func (r PackingResult) Placement(id string) (PackedRect, bool) {
	for _, p := range r.Packed {
		if p.ID == id {
			return p, true
		}
	}
	return PackedRect{}, false
}

// Metrics summarizes a packing result.
type Metrics struct {
	Efficiency      float64 `json:"efficiency" yaml:"efficiency"`
	WastedSpace     float64 `json:"wasted_space" yaml:"wasted_space"`
	ItemCount       int     `json:"item_count" yaml:"item_count"`
	AverageItemArea float64 `json:"average_item_area" yaml:"average_item_area"`
}

// Job ties items, options and an algorithm together for save/load.
type Job struct {
	Name      string         `json:"name" yaml:"name"`
	Algorithm Algorithm      `json:"algorithm" yaml:"algorithm"`
	Items     []PackableItem `json:"items" yaml:"items"`
	Options   PackingOptions `json:"options" yaml:"options"`
	Result    *PackingResult `json:"result,omitempty" yaml:"result,omitempty"`
}

// NewJob returns an empty untitled MaxRects job with a non-nil item list.
func NewJob() Job {
	return Job{
		Name:      "Untitled",
		Algorithm: AlgorithmMaxRects,
		Items:     []PackableItem{},
	}
}
