package score

import (
	"math"

	"github.com/biologicinstitute/stylus/internal/gene"
)

// ApplyMeasurements folds internal/measure's computed per-stroke geometry
// (scale consistency, placement, deviation, extra length, dropouts) and the
// gene's excluded mark ranges into the exponent channels Aggregate reads,
// so the geometry a gene actually compiles to affects its score rather than
// only the overlap classification (spec.md §4.6, §4.9).
func ApplyMeasurements(g *gene.Gene) {
	for i := range g.Strokes {
		s := &g.Strokes[i]
		bumpStrokeBy(g, i, gene.ChanScale, math.Abs(s.Scale.SX-s.Scale.SY))
		bumpStrokeBy(g, i, gene.ChanPlacement, math.Hypot(s.DX, s.DY))
		bumpStrokeBy(g, i, gene.ChanDeviation, s.Deviation)
		bumpStrokeBy(g, i, gene.ChanExtraLength, s.ExtraLength)
		bumpStrokeBy(g, i, gene.ChanDropouts, float64(s.Dropouts))
	}
	if len(g.Marks) > 0 {
		bumpGeneBy(g, gene.ChanMarks, float64(len(g.Marks)))
	}
}

func bumpStrokeBy(g *gene.Gene, idx int, ch gene.ExponentChannel, v float64) {
	if idx < 0 || idx >= len(g.Strokes) || v == 0 {
		return
	}
	if g.Strokes[idx].Exponents == nil {
		g.Strokes[idx].Exponents = make(map[gene.ExponentChannel]float64)
	}
	g.Strokes[idx].Exponents[ch] += v
}

func bumpGeneBy(g *gene.Gene, ch gene.ExponentChannel, v float64) {
	if v == 0 {
		return
	}
	if g.Exponents == nil {
		g.Exponents = make(map[gene.ExponentChannel]float64)
	}
	g.Exponents[ch] += v
}
