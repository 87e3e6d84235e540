// Package engine computes rectangle layouts for a set of items inside a container.
//
// Two packers are implemented: MaxRects (best short side fit over a list of free
// rectangles) and a priority-proportional squarified treemap. The remaining
// algorithm names are accepted and run MaxRects. Every call recomputes the layout
// from scratch; nothing is cached and the package holds no shared mutable state,
// so an Engine may be used from several goroutines at once.
package engine

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/packlayout/internal/model"
)

// Engine dispatches packing calls to the selected algorithm.
type Engine struct {
	Logger *log.Logger
}

// New creates an Engine. A nil logger selects log.Default().
func New(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{Logger: logger}
}

// Pack lays out items with the given algorithm. Shelf, guillotine and masonry
// have no implementation yet and run MaxRects; unknown names do the same. The
// algorithm that actually ran is reported in the result.
func (e *Engine) Pack(alg model.Algorithm, items []model.PackableItem, opts model.PackingOptions) model.PackingResult {
	if !alg.Implemented() {
		e.logger().Warn("algorithm not implemented, using maxrects", "algorithm", alg)
	}
	for _, it := range items {
		if it.AspectRatio != 0 {
			e.logger().Debug("aspect ratio is not enforced", "item", it.ID)
			break
		}
	}

	var result model.PackingResult
	switch alg {
	case model.AlgorithmTreemap:
		result = packTreemap(items, opts)
		if result.Cramped {
			e.logger().Warn("minimum sizes exceed the container, layout is cramped", "items", len(items))
		}
	default:
		result = packMaxRects(items, opts)
	}

	e.logger().Debug("packed",
		"algorithm", result.Algorithm,
		"items", len(items),
		"packed", len(result.Packed),
		"unpacked", len(result.Unpacked),
		"efficiency", fmt.Sprintf("%.3f", result.Efficiency),
	)
	return result
}

// PackStrict is Pack without fallback: unknown names fail with
// model.ErrUnknownAlgorithm and unimplemented ones with model.ErrNotImplemented.
func (e *Engine) PackStrict(alg model.Algorithm, items []model.PackableItem, opts model.PackingOptions) (model.PackingResult, error) {
	if !alg.Valid() {
		return model.PackingResult{}, fmt.Errorf("%w: %q", model.ErrUnknownAlgorithm, alg)
	}
	if !alg.Implemented() {
		return model.PackingResult{}, fmt.Errorf("%w: %s", model.ErrNotImplemented, alg)
	}
	return e.Pack(alg, items, opts), nil
}

func (e *Engine) logger() *log.Logger {
	if e == nil || e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}

// Pack lays out items with a default Engine.
func Pack(alg model.Algorithm, items []model.PackableItem, opts model.PackingOptions) model.PackingResult {
	return New(nil).Pack(alg, items, opts)
}
