package overlap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/biologicinstitute/stylus/internal/gene"
	"github.com/biologicinstitute/stylus/internal/geom"
)

func makeGene(points []geom.Point, strokes []gene.Stroke) *gene.Gene {
	return &gene.Gene{Points: points, Strokes: strokes}
}

func TestDetect_CrossingStrokes(t *testing.T) {
	// Stroke 0: (0,0)->(10,10). Stroke 1: (0,10)->(10,0). They cross at (5,5).
	g := makeGene(
		[]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 10, Y: 0}},
		[]gene.Stroke{{Start: 0, End: 1}, {Start: 2, End: 3}},
	)
	got := Detect(g)
	assert.Len(t, got, 1)
	assert.Equal(t, 0, got[0].FirstStroke)
	assert.Equal(t, 1, got[0].SecondStroke)
	assert.InDelta(t, 5, got[0].At.X, 1e-9)
	assert.InDelta(t, 5, got[0].At.Y, 1e-9)
}

func TestDetect_ParallelStrokesNoOverlap(t *testing.T) {
	g := makeGene(
		[]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 5}, {X: 10, Y: 5}},
		[]gene.Stroke{{Start: 0, End: 1}, {Start: 2, End: 3}},
	)
	assert.Empty(t, Detect(g))
}

func TestDetect_DedupesAndSortsByStrokePair(t *testing.T) {
	// Two edges of stroke 0 both meeting stroke 1 (at the zig-zag's apex)
	// still yield one StrokeOverlap entry per spec.md §4.8's stroke-pair
	// (not edge-pair) classification.
	g := makeGene(
		[]geom.Point{
			{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 0}, // stroke 0: zig-zag
			{X: 0, Y: 10}, {X: 20, Y: 10}, // stroke 1: straight line touching both legs at the apex
		},
		[]gene.Stroke{{Start: 0, End: 2}, {Start: 3, End: 4}},
	)
	got := Detect(g)
	assert.Len(t, got, 1)
	assert.Equal(t, StrokeOverlap{FirstStroke: 0, SecondStroke: 1, At: got[0].At}, got[0])
}
