package score

import (
	"math"

	"github.com/biologicinstitute/stylus/internal/gene"
)

// Weight pairs an exponent channel with its scoring weight and setpoint,
// the (weight, setpoint) tuple spec.md §4.9 attaches to each channel.
type Weight struct {
	Channel  gene.ExponentChannel
	Setpoint float64
	Weight   float64
}

// DefaultWeights is a reasonable total-ordering default: every channel
// penalized equally, setpoint zero (no deviation/overlap/extra-length is
// ideal). Callers building a real genome override via plan/globals
// documents (spec.md §4.9's per-channel configuration).
func DefaultWeights() []Weight {
	return []Weight{
		{Channel: gene.ChanScale, Weight: 1, Setpoint: 0},
		{Channel: gene.ChanPlacement, Weight: 1, Setpoint: 0},
		{Channel: gene.ChanIllegalOverlaps, Weight: 1, Setpoint: 0},
		{Channel: gene.ChanDeviation, Weight: 1, Setpoint: 0},
		{Channel: gene.ChanExtraLength, Weight: 1, Setpoint: 0},
		{Channel: gene.ChanMissingOverlaps, Weight: 1, Setpoint: 0},
		{Channel: gene.ChanDropouts, Weight: 1, Setpoint: 0},
		{Channel: gene.ChanMarks, Weight: 1, Setpoint: 0},
	}
}

// subScore computes score = 0.5^(sum of weight*|exponent-setpoint|) over
// exponents, per spec.md §4.9.
func subScore(exponents map[gene.ExponentChannel]float64, weights []Weight) float64 {
	var acc float64
	for _, w := range weights {
		v := exponents[w.Channel]
		acc += w.Weight * math.Abs(v-w.Setpoint)
	}
	return math.Pow(0.5, acc)
}

// Aggregate computes and stores stroke, group, and gene scores: a stroke's
// score is its own sub-score; a group's score is the product of its member
// strokes' scores times its own sub-score; the gene's score is the product
// of all group scores times its own sub-score (spec.md §4.9).
func Aggregate(g *gene.Gene, weights []Weight) float64 {
	strokeScores := make([]float64, len(g.Strokes))
	for i, s := range g.Strokes {
		strokeScores[i] = subScore(s.Exponents, weights)
	}

	groupScores := make([]float64, len(g.Groups))
	claimed := make([]bool, len(strokeScores))
	for gi, grp := range g.Groups {
		product := subScore(grp.Exponents, weights)
		for _, si := range grp.StrokeIndices {
			if si >= 0 && si < len(strokeScores) {
				product *= strokeScores[si]
				claimed[si] = true
			}
		}
		groupScores[gi] = product
	}

	geneScore := subScore(g.Exponents, weights)
	for _, gs := range groupScores {
		geneScore *= gs
	}
	// Strokes not claimed by any group still contribute individually, so an
	// ungrouped gene (no Han groups defined) still scores on its strokes.
	for si, ss := range strokeScores {
		if !claimed[si] {
			geneScore *= ss
		}
	}
	return geneScore
}
