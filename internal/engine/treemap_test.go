package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/packlayout/internal/model"
)

func TestTreemap_SingleItemFillsUsableArea(t *testing.T) {
	items := []model.PackableItem{{ID: "only", Priority: 1}}

	result := packTreemap(items, model.PackingOptions{ContainerWidth: 400, ContainerHeight: 300})
	require.Len(t, result.Packed, 1)
	assert.Equal(t, model.Rect{X: 0, Y: 0, Width: 400, Height: 300}, result.Packed[0].Rect)
	assert.InDelta(t, 1.0, result.Efficiency, 1e-9)

	padded := packTreemap(items, model.PackingOptions{ContainerWidth: 400, ContainerHeight: 300, Padding: 10})
	require.Len(t, padded.Packed, 1)
	assert.Equal(t, model.Rect{X: 10, Y: 10, Width: 380, Height: 280}, padded.Packed[0].Rect)
}

func TestTreemap_IgnoresGap(t *testing.T) {
	items := []model.PackableItem{{ID: "only", Priority: 1}}
	result := packTreemap(items, model.PackingOptions{ContainerWidth: 100, ContainerHeight: 100, Gap: 20})

	require.Len(t, result.Packed, 1)
	assert.Equal(t, 100.0, result.Packed[0].Width)
}

func TestTreemap_AreaProportionalToPriority(t *testing.T) {
	items := []model.PackableItem{
		{ID: "a", Priority: 3},
		{ID: "b", Priority: 1},
	}
	result := packTreemap(items, model.PackingOptions{ContainerWidth: 400, ContainerHeight: 300})

	require.Len(t, result.Packed, 2)
	a, _ := result.Placement("a")
	b, _ := result.Placement("b")
	assertRectNear(t, model.Rect{X: 0, Y: 0, Width: 400, Height: 225}, a.Rect)
	assertRectNear(t, model.Rect{X: 0, Y: 225, Width: 400, Height: 75}, b.Rect)
	assert.InDelta(t, 3.0, a.Area()/b.Area(), 1e-9)
	assert.InDelta(t, 1.0, result.Efficiency, 1e-9)
	assert.False(t, result.Cramped)
}

func TestTreemap_ZeroPrioritiesShareEqually(t *testing.T) {
	items := []model.PackableItem{
		{ID: "a", Priority: 0},
		{ID: "b", Priority: -4},
	}
	result := packTreemap(items, model.PackingOptions{ContainerWidth: 400, ContainerHeight: 200})

	require.Len(t, result.Packed, 2)
	a, _ := result.Placement("a")
	b, _ := result.Placement("b")
	assert.Equal(t, model.Rect{X: 0, Y: 0, Width: 400, Height: 100}, a.Rect)
	assert.Equal(t, model.Rect{X: 0, Y: 100, Width: 400, Height: 100}, b.Rect)
}

func TestTreemap_EqualPrioritiesStackAlongShortAxis(t *testing.T) {
	items := []model.PackableItem{
		{ID: "a", Priority: 1},
		{ID: "b", Priority: 1},
	}
	result := packTreemap(items, model.PackingOptions{ContainerWidth: 400, ContainerHeight: 300})

	require.Len(t, result.Packed, 2)
	assert.Equal(t, []string{"a", "b"}, ids(result.Packed))
	assert.Equal(t, model.Rect{X: 0, Y: 0, Width: 400, Height: 150}, result.Packed[0].Rect)
	assert.Equal(t, model.Rect{X: 0, Y: 150, Width: 400, Height: 150}, result.Packed[1].Rect)

	tall := packTreemap(items, model.PackingOptions{ContainerWidth: 300, ContainerHeight: 400})
	require.Len(t, tall.Packed, 2)
	assert.Equal(t, model.Rect{X: 0, Y: 0, Width: 150, Height: 400}, tall.Packed[0].Rect)
	assert.Equal(t, model.Rect{X: 150, Y: 0, Width: 150, Height: 400}, tall.Packed[1].Rect)
}

func TestTreemap_HugePrioritiesStayFinite(t *testing.T) {
	items := []model.PackableItem{
		{ID: "a", Priority: 1e308},
		{ID: "b", Priority: 1e308},
	}
	result := packTreemap(items, model.PackingOptions{ContainerWidth: 400, ContainerHeight: 300})

	require.Len(t, result.Packed, 2)
	assert.Equal(t, model.Rect{X: 0, Y: 0, Width: 400, Height: 150}, result.Packed[0].Rect)
	assert.Equal(t, model.Rect{X: 0, Y: 150, Width: 400, Height: 150}, result.Packed[1].Rect)
	assert.InDelta(t, 1.0, result.Efficiency, 1e-9)
}

func TestTreemap_MixedMagnitudePrioritiesKeepProportion(t *testing.T) {
	items := []model.PackableItem{
		{ID: "a", Priority: 1.5e308},
		{ID: "b", Priority: 0.5e308},
	}
	result := packTreemap(items, model.PackingOptions{ContainerWidth: 400, ContainerHeight: 300})

	a, _ := result.Placement("a")
	b, _ := result.Placement("b")
	assert.InDelta(t, 3.0, a.Area()/b.Area(), 1e-9)
}

func TestTreemap_ZeroPriorityAmongValidGetsSliver(t *testing.T) {
	items := []model.PackableItem{
		{ID: "main", Priority: 1},
		{ID: "zero", Priority: 0},
	}
	result := packTreemap(items, model.PackingOptions{ContainerWidth: 100, ContainerHeight: 100})

	require.Len(t, result.Packed, 2)
	zero, ok := result.Placement("zero")
	require.True(t, ok)
	assert.Less(t, zero.Area(), 1.0)
}

func TestTreemap_MinimumSizeFloorsCell(t *testing.T) {
	items := []model.PackableItem{
		{ID: "a", Priority: 1, MinHeight: 60},
		{ID: "b", Priority: 1},
	}
	result := packTreemap(items, model.PackingOptions{ContainerWidth: 300, ContainerHeight: 100})

	require.Len(t, result.Packed, 2)
	a, _ := result.Placement("a")
	b, _ := result.Placement("b")
	assertRectNear(t, model.Rect{X: 0, Y: 0, Width: 300, Height: 60}, a.Rect)
	assertRectNear(t, model.Rect{X: 0, Y: 60, Width: 300, Height: 40}, b.Rect, "later cells absorb the floor")
	assertNoOverlap(t, result.Packed)
}

func TestTreemap_MaximumSizeCapsCell(t *testing.T) {
	items := []model.PackableItem{{ID: "narrow", Priority: 1, MaxWidth: 50}}
	result := packTreemap(items, model.PackingOptions{ContainerWidth: 100, ContainerHeight: 100})

	require.Len(t, result.Packed, 1)
	assert.Equal(t, model.Rect{X: 0, Y: 0, Width: 50, Height: 100}, result.Packed[0].Rect)
	assert.InDelta(t, 0.5, result.Efficiency, 1e-9)
}

func TestTreemap_CrampedStillPlacesEverything(t *testing.T) {
	items := []model.PackableItem{
		{ID: "a", MinWidth: 80, MinHeight: 80, Priority: 1},
		{ID: "b", MinWidth: 80, MinHeight: 80, Priority: 1},
		{ID: "c", MinWidth: 80, MinHeight: 80, Priority: 1},
	}
	opts := model.PackingOptions{ContainerWidth: 100, ContainerHeight: 100}
	result := packTreemap(items, opts)

	assert.True(t, result.Cramped)
	assert.Len(t, result.Packed, 3)
	assert.Empty(t, result.Unpacked)
	assertNoOverlap(t, result.Packed)
	assertContained(t, opts.Usable(), result.Packed)
}

func TestTreemap_EmptyInput(t *testing.T) {
	result := packTreemap(nil, model.PackingOptions{ContainerWidth: 10, ContainerHeight: 10})

	assert.Equal(t, model.AlgorithmTreemap, result.Algorithm)
	assert.NotNil(t, result.Packed)
	assert.Empty(t, result.Packed)
	assert.Empty(t, result.Unpacked)
	assert.Equal(t, 0.0, result.Efficiency)
}

func TestTreemap_ZeroContainerCollapsesCells(t *testing.T) {
	items := []model.PackableItem{
		{ID: "a", Priority: 2},
		{ID: "b", Priority: 1},
	}
	result := packTreemap(items, model.PackingOptions{})

	require.Len(t, result.Packed, 2)
	for _, p := range result.Packed {
		assert.Equal(t, 0.0, p.Area())
	}
	assert.Equal(t, 0.0, result.Efficiency)
}

func TestTreemap_Properties(t *testing.T) {
	opts := model.PackingOptions{ContainerWidth: 640, ContainerHeight: 480, Padding: 12}
	usable := opts.Usable()

	for seed := int64(1); seed <= 5; seed++ {
		items := randomItems(seed, 25)
		result := packTreemap(items, opts)

		assert.Len(t, result.Packed, len(items), "every item is placed (seed %d)", seed)
		assert.Empty(t, result.Unpacked)
		assertNoOverlap(t, result.Packed)
		assertContained(t, usable, result.Packed)

		again := packTreemap(items, opts)
		assert.Equal(t, result, again, "determinism (seed %d)", seed)
	}
}

func TestWorstAspect(t *testing.T) {
	single := []treemapCell{{target: 100}}
	assert.InDelta(t, 1.0, worstAspect(single), 1e-12)

	pair := []treemapCell{{target: 300}, {target: 100}}
	assert.InDelta(t, 4.0, worstAspect(pair), 1e-12)
	assert.Greater(t, worstAspect(pair), worstAspect(pair[:1]), "growing a row never improves its score")

	assert.True(t, math.IsInf(worstAspect([]treemapCell{{target: 0}}), 1))
}

func TestClampSize(t *testing.T) {
	assert.Equal(t, 5.0, clampSize(2, 5, 0))
	assert.Equal(t, 8.0, clampSize(10, 5, 8))
	assert.Equal(t, 10.0, clampSize(10, 5, 3), "max below min is ignored")
	assert.Equal(t, 7.0, clampSize(7, -1, -1))
	assert.Equal(t, 5.0, clampSize(math.NaN(), 5, 0))
	assert.Equal(t, 0.0, clampSize(math.NaN(), 0, 0))
}

func TestEfficiency_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, efficiency(10, 0))
	assert.Equal(t, 0.0, efficiency(math.Inf(1), math.Inf(1)))
	assert.Equal(t, 0.0, efficiency(math.NaN(), 100))
	assert.Equal(t, 1.0, efficiency(150, 100))
	assert.Equal(t, 0.25, efficiency(25, 100))
}
