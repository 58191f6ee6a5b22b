package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biologicinstitute/stylus/internal/acid"
	"github.com/biologicinstitute/stylus/internal/gene"
	"github.com/biologicinstitute/stylus/internal/geom"
	"github.com/biologicinstitute/stylus/internal/han"
)

func toBases(t *testing.T, s string) []acid.Base {
	t.Helper()
	out := make([]acid.Base, len(s))
	for i := 0; i < len(s); i++ {
		b, ok := acid.BaseIndex(s[i])
		require.True(t, ok)
		out[i] = b
	}
	return out
}

func TestMeasure_CoherenceBreakGene(t *testing.T) {
	bases := toBases(t, "ATGTATAATTTTTAG")
	h := &han.Han{
		Bounds: geom.Rect{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 24, Y: 12}},
		Strokes: []han.HStroke{
			{
				Bounds: geom.Rect{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 24, Y: 0}},
				Length: 24,
				PointsForward: []han.HPoint{
					{X: 0, Y: 0, FractionalDistance: 0},
					{X: 24, Y: 0, FractionalDistance: 1},
				},
				PointsReverse: []han.HPoint{
					{X: 24, Y: 0, FractionalDistance: 0},
					{X: 0, Y: 0, FractionalDistance: 1},
				},
			},
			{
				Bounds: geom.Rect{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 0, Y: 12}},
				Length: 12,
				PointsForward: []han.HPoint{
					{X: 0, Y: 0, FractionalDistance: 0},
					{X: 0, Y: 12, FractionalDistance: 1},
				},
				PointsReverse: []han.HPoint{
					{X: 0, Y: 12, FractionalDistance: 0},
					{X: 0, Y: 0, FractionalDistance: 1},
				},
			},
		},
	}

	g, err := gene.Compile(1, bases, 0, len(bases)-1, acid.DefaultCodonTable(), h)
	require.NoError(t, err)
	require.NoError(t, Measure(g))

	require.Len(t, g.Strokes, 2)
	for _, s := range g.Strokes {
		assert.False(t, s.Scale.InheritedX && s.Scale.InheritedY, "stroke scale should not be fully degenerate")
	}
	assert.NotZero(t, g.Scale.SXY)
}

func TestWeightedAverage(t *testing.T) {
	assert.InDelta(t, 2.0, weightedAverage([]float64{1, 3}, []float64{1, 1}), 1e-9)
	assert.InDelta(t, 1.0, weightedAverage([]float64{1, 3}, []float64{1, 0}), 1e-9)
	assert.Equal(t, 0.0, weightedAverage(nil, nil))
}

func TestScaledLength_MatchesUnscaledAtUnitScale(t *testing.T) {
	var l ScaledLength
	l.Add(acid.Eas)
	l.Add(acid.Nos)
	got := l.Length(gene.ScaleFactors{SX: 1, SY: 1, SXY: 1})
	assert.InDelta(t, 72.0, got*got, 1e-9) // Eas+Nos: dx=6, dy=6
}
