package engine

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/packlayout/internal/model"
)

// tolerance absorbs rounding in the treemap's cursor arithmetic.
const tolerance = 1e-6

func quietEngine() *Engine {
	return New(log.New(io.Discard))
}

// randomItems returns a reproducible item set with mixed sizes and priorities.
func randomItems(seed int64, n int) []model.PackableItem {
	r := rand.New(rand.NewSource(seed))
	items := make([]model.PackableItem, n)
	for i := range items {
		items[i] = model.PackableItem{
			ID:        fmt.Sprintf("item-%02d", i),
			MinWidth:  float64(10 + r.Intn(90)),
			MinHeight: float64(10 + r.Intn(90)),
			Priority:  float64(1 + r.Intn(10)),
		}
	}
	return items
}

func assertNoOverlap(t *testing.T, packed []model.PackedRect) {
	t.Helper()
	for i := 0; i < len(packed); i++ {
		for j := i + 1; j < len(packed); j++ {
			a, b := packed[i].Rect, packed[j].Rect
			ow := math.Min(a.Right(), b.Right()) - math.Max(a.X, b.X)
			oh := math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Y, b.Y)
			assert.False(t, ow > tolerance && oh > tolerance,
				"%s %+v overlaps %s %+v", packed[i].ID, a, packed[j].ID, b)
		}
	}
}

func assertContained(t *testing.T, bounds model.Rect, packed []model.PackedRect) {
	t.Helper()
	for _, p := range packed {
		inside := p.X >= bounds.X-tolerance && p.Y >= bounds.Y-tolerance &&
			p.Right() <= bounds.Right()+tolerance && p.Bottom() <= bounds.Bottom()+tolerance
		assert.True(t, inside, "%s %+v outside %+v", p.ID, p.Rect, bounds)
	}
}

func ids(packed []model.PackedRect) []string {
	out := make([]string, len(packed))
	for i, p := range packed {
		out[i] = p.ID
	}
	return out
}

func assertRectNear(t *testing.T, want, got model.Rect, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tolerance, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, tolerance, msgAndArgs...)
	assert.InDelta(t, want.Width, got.Width, tolerance, msgAndArgs...)
	assert.InDelta(t, want.Height, got.Height, tolerance, msgAndArgs...)
}
