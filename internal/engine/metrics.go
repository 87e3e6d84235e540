package engine

import "github.com/piwi3910/packlayout/internal/model"

// Evaluate computes metrics for a result from its placements and container
// size alone; the packer's own efficiency figure is not consulted.
func Evaluate(result model.PackingResult) model.Metrics {
	totalArea := result.ContainerSize.Area()
	packedArea := result.PackedArea()
	count := len(result.Packed)

	m := model.Metrics{
		WastedSpace: totalArea - packedArea,
		ItemCount:   count,
	}
	m.Efficiency = efficiency(packedArea, totalArea)
	if count > 0 {
		m.AverageItemArea = packedArea / float64(count)
	}
	return m
}
