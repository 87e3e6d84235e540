package engine

import "github.com/piwi3910/packlayout/internal/model"

// ComparisonResult holds the packing result and computed statistics
// for a single algorithm.
type ComparisonResult struct {
	Algorithm     model.Algorithm     `json:"algorithm"` // As requested; Result.Algorithm is what ran
	Result        model.PackingResult `json:"result"`
	Metrics       model.Metrics       `json:"metrics"`
	UnpackedCount int                 `json:"unpacked_count"`
}

// Compare runs every algorithm in algs over the same input and returns the
// results in the order requested. This enables side-by-side comparison of
// the layouts each strategy produces for one item set.
func (e *Engine) Compare(algs []model.Algorithm, items []model.PackableItem, opts model.PackingOptions) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(algs))

	for _, alg := range algs {
		result := e.Pack(alg, items, opts)
		results = append(results, ComparisonResult{
			Algorithm:     alg,
			Result:        result,
			Metrics:       Evaluate(result),
			UnpackedCount: len(result.Unpacked),
		})
	}

	return results
}

// ImplementedAlgorithms returns the algorithms that have a real implementation,
// which is the default set to compare.
func ImplementedAlgorithms() []model.Algorithm {
	var algs []model.Algorithm
	for _, a := range model.Algorithms {
		if a.Implemented() {
			algs = append(algs, a)
		}
	}
	return algs
}

// Best picks the comparison entry that placed the most items, breaking ties
// by higher efficiency. Earlier entries win exact ties.
func Best(results []ComparisonResult) (ComparisonResult, bool) {
	if len(results) == 0 {
		return ComparisonResult{}, false
	}
	best := results[0]
	for _, r := range results[1:] {
		placed, bestPlaced := len(r.Result.Packed), len(best.Result.Packed)
		if placed > bestPlaced {
			best = r
		} else if placed == bestPlaced && r.Metrics.Efficiency > best.Metrics.Efficiency {
			best = r
		}
	}
	return best, true
}
