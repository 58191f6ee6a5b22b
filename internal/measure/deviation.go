package measure

import (
	"math"

	"github.com/biologicinstitute/stylus/internal/gene"
	"github.com/biologicinstitute/stylus/internal/geom"
	"github.com/biologicinstitute/stylus/internal/han"
)

// sweepDeviation chooses between a Han stroke's forward and reverse point
// orderings (whichever minimizes squared endpoint deviation), then sweeps
// the gene stroke's points against that ordering to find the worst-case
// perpendicular deviation and the stroke's extra length (spec.md §4.6).
// Han points the sweep never reaches count as dropouts rather than
// failing the sweep outright.
func sweepDeviation(g *gene.Gene, s *gene.Stroke) error {
	hs := g.Han.Strokes[s.HanStroke]
	pts := strokePoints(g, *s)
	if len(pts) < 2 || (len(hs.PointsForward) == 0 && len(hs.PointsReverse) == 0) {
		return nil
	}

	fwdDev := endpointDeviation(pts, hs.PointsForward, *s)
	revDev := endpointDeviation(pts, hs.PointsReverse, *s)

	hanPts := hs.PointsForward
	s.Reversed = false
	if revDev < fwdDev {
		hanPts = hs.PointsReverse
		s.Reversed = true
	}

	dev, extra, dropouts, err := sweep(pts, hanPts, *s)
	if err != nil {
		return err
	}
	s.Deviation = dev
	s.ExtraLength = extra
	s.Dropouts = dropouts
	return nil
}

// endpointDeviation measures the squared distance between the gene
// stroke's first/last point (scaled and translated into Han space) and the
// corresponding endpoints of a candidate Han point ordering.
func endpointDeviation(pts []geom.Point, hanPts []han.HPoint, s gene.Stroke) float64 {
	if len(hanPts) == 0 || len(pts) == 0 {
		return math.Inf(1)
	}
	first := toHanSpace(pts[0], s)
	last := toHanSpace(pts[len(pts)-1], s)
	hFirst := hanPts[0].Point()
	hLast := hanPts[len(hanPts)-1].Point()
	return geom.SquaredDistance(first, hFirst) + geom.SquaredDistance(last, hLast)
}

func toHanSpace(p geom.Point, s gene.Stroke) geom.Point {
	return geom.Point{X: p.X*s.Scale.SX + s.DX, Y: p.Y*s.Scale.SY + s.DY}
}

// sweep walks pts against hanPts by cumulative fractional distance along
// the stroke, tracking which Han segment each gene point falls on and the
// perpendicular distance from that gene point to the infinite line through
// the segment's two endpoints (not the nearest Han control point). The
// stroke's deviation is the root of the largest such squared distance seen
// at any sampled point (spec.md §4.6) — a single outlying point drives the
// score, not an accumulation across the whole stroke. Han points with no
// close gene-side correspondent are counted as dropouts. extra is the gene
// stroke's length in excess of the Han stroke's own length.
func sweep(pts []geom.Point, hanPts []han.HPoint, s gene.Stroke) (deviation, extra float64, dropouts int, err error) {
	if len(hanPts) == 0 {
		return 0, 0, 0, nil
	}
	total := pathLength(pts)

	var cum float64
	var maxSq float64
	hi := 0
	for i := 1; i < len(pts); i++ {
		cum += math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
		frac := 0.0
		if total > 0 {
			frac = cum / total
		}
		for hi < len(hanPts)-1 && hanPts[hi].FractionalDistance < frac {
			hi++
		}
		a := hanPts[hi].Point()
		b := a
		if hi > 0 {
			a = hanPts[hi-1].Point()
		} else if hi+1 < len(hanPts) {
			b = hanPts[hi+1].Point()
		}
		d := geom.PerpendicularDistance(toHanSpace(pts[i], s), a, b)
		if sq := d * d; sq > maxSq {
			maxSq = sq
		}
	}

	if hi < len(hanPts)-1 {
		dropouts = len(hanPts) - 1 - hi
	}

	extra = math.Max(0, total-hanStrokeLength(hanPts))
	return math.Sqrt(maxSq), extra, dropouts, nil
}

func hanStrokeLength(pts []han.HPoint) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	return total
}

func pathLength(pts []geom.Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	return total
}
