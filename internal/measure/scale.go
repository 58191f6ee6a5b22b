// Package measure computes per-stroke, per-group, and per-gene scale and
// placement relative to a Han reference glyph, stroke orientation and
// deviation, and extra-length (spec.md §4.5-§4.6).
package measure

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/biologicinstitute/stylus/internal/acid"
	"github.com/biologicinstitute/stylus/internal/gene"
	"github.com/biologicinstitute/stylus/internal/geom"
)

// Measure computes scale, translation, deviation, and extra length for
// every stroke, group, and the gene itself. Call after gene.Compile and
// before overlap.Detect / score.Aggregate.
func Measure(g *gene.Gene) error {
	for i := range g.Strokes {
		measureStroke(g, &g.Strokes[i])
	}
	measureGroups(g)
	measureGene(g)
	for i := range g.Strokes {
		if err := sweepDeviation(g, &g.Strokes[i]); err != nil {
			return err
		}
	}
	return nil
}

func strokePoints(g *gene.Gene, s gene.Stroke) []geom.Point {
	return g.Points[s.Start : s.End+1]
}

// scaleDims computes the (sx, sy) scale mapping box onto target. A
// degenerate source dimension (zero width or height) reports inherited=true
// for that axis so the caller can substitute a parent scale, per spec.md
// §4.5.
func scaleDims(box, target geom.Rect) (sx, sy float64, inheritedX, inheritedY bool) {
	w, h := box.Width(), box.Height()
	if w <= 0 {
		inheritedX = true
	} else {
		sx = target.Width() / w
	}
	if h <= 0 {
		inheritedY = true
	} else {
		sy = target.Height() / h
	}
	return
}

func sxyOf(sx, sy float64) float64 {
	return math.Sqrt(sx*sx + sy*sy)
}

func measureStroke(g *gene.Gene, s *gene.Stroke) {
	pts := strokePoints(g, *s)
	box := geom.BoundingBox(pts)
	han := g.Han.Strokes[s.HanStroke]

	sx, sy, ix, iy := scaleDims(box, han.Bounds)
	if ix {
		sx = g.Scale.SX
	}
	if iy {
		sy = g.Scale.SY
	}
	s.Scale = gene.ScaleFactors{SX: sx, SY: sy, SXY: sxyOf(sx, sy), InheritedX: ix, InheritedY: iy}

	boxCenter := box.Center()
	hanCenter := han.Bounds.Center()
	s.DX = hanCenter.X - boxCenter.X*sx
	s.DY = hanCenter.Y - boxCenter.Y*sy
}

// measureGroups computes each group's scale and translation as the
// Han-stroke-length-weighted average of its member strokes' values.
func measureGroups(g *gene.Gene) {
	for gi := range g.Groups {
		grp := &g.Groups[gi]
		var weights, sxs, sys, dxs, dys []float64
		for _, si := range grp.StrokeIndices {
			if si < 0 || si >= len(g.Strokes) {
				continue
			}
			st := g.Strokes[si]
			w := g.Han.Strokes[st.HanStroke].Length
			weights = append(weights, w)
			sxs = append(sxs, st.Scale.SX)
			sys = append(sys, st.Scale.SY)
			dxs = append(dxs, st.DX)
			dys = append(dys, st.DY)
		}
		if len(weights) == 0 {
			continue
		}
		grp.Scale = gene.ScaleFactors{
			SX:  weightedAverage(sxs, weights),
			SY:  weightedAverage(sys, weights),
		}
		grp.Scale.SXY = sxyOf(grp.Scale.SX, grp.Scale.SY)
		grp.DX = weightedAverage(dxs, weights)
		grp.DY = weightedAverage(dys, weights)
	}
}

// measureGene computes the gene's scale and translation as the weighted
// average across its groups (spec.md §4.5).
func measureGene(g *gene.Gene) {
	if len(g.Groups) == 0 {
		return
	}
	var sxs, sys, dxs, dys, weights []float64
	for _, grp := range g.Groups {
		if len(grp.StrokeIndices) == 0 {
			continue
		}
		sxs = append(sxs, grp.Scale.SX)
		sys = append(sys, grp.Scale.SY)
		dxs = append(dxs, grp.DX)
		dys = append(dys, grp.DY)
		weights = append(weights, float64(len(grp.StrokeIndices)))
	}
	if len(weights) == 0 {
		return
	}
	g.Scale = gene.ScaleFactors{
		SX: weightedAverage(sxs, weights),
		SY: weightedAverage(sys, weights),
	}
	g.Scale.SXY = sxyOf(g.Scale.SX, g.Scale.SY)
	g.DX = weightedAverage(dxs, weights)
	g.DY = weightedAverage(dys, weights)
}

// weightedAverage returns the weights-weighted mean of values, using
// gonum/floats for the dot-product/sum reduction (spec.md §4.5's
// weighted-average scale/placement aggregation).
func weightedAverage(values, weights []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := floats.Sum(weights)
	if total == 0 {
		return 0
	}
	return floats.Dot(values, weights) / total
}

// ScaledLength accumulates (dxVectors, dyVectors, dxyVectors) across a run
// of acids, then applies scale to the accumulated components exactly once
// (spec.md §4.5's round-off note: scaling must be applied to summed
// components, not per-acid, or the point-trace and length-sum paths
// diverge).
type ScaledLength struct {
	dxVectors, dyVectors, dxyVectors float64
}

// Add folds one acid's vector into the accumulator.
func (l *ScaledLength) Add(at acid.AcidType) {
	a := acid.Of(at)
	if isDiagonal(a.Direction) {
		l.dxyVectors += a.DX
	} else {
		l.dxVectors += a.DX
		l.dyVectors += a.DY
	}
}

// Length returns the accumulated length under the given stroke scale.
func (l ScaledLength) Length(scale gene.ScaleFactors) float64 {
	return math.Sqrt((l.dxVectors*scale.SX)*(l.dxVectors*scale.SX)+(l.dyVectors*scale.SY)*(l.dyVectors*scale.SY)) + l.dxyVectors*scale.SXY
}

func isDiagonal(d acid.Direction) bool {
	switch d {
	case acid.DirNE, acid.DirSE, acid.DirSW, acid.DirNW:
		return true
	default:
		return false
	}
}

// StrokeScaledLength computes a stroke's scaled length from the gene's acid
// sequence and the stroke's own scale factors.
func StrokeScaledLength(g *gene.Gene, s gene.Stroke) float64 {
	var acc ScaledLength
	nonStop := g.Acids[:len(g.Acids)-1]
	for _, at := range nonStop[s.Start:s.End] {
		acc.Add(at)
	}
	return acc.Length(s.Scale)
}
