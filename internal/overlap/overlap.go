// Package overlap detects where a compiled gene's strokes cross each
// other in the plane, using a Bentley-Ottmann style sweep over stroke
// segments (spec.md §4.7).
package overlap

import (
	"sort"

	"github.com/biologicinstitute/stylus/internal/gene"
	"github.com/biologicinstitute/stylus/internal/geom"
)

// StrokeOverlap records one crossing between two (distinct) strokes.
type StrokeOverlap struct {
	FirstStroke  int
	SecondStroke int
	At           geom.Point
}

// segment is one edge of a stroke's polyline, tagged with its owning
// stroke index so crossings can be attributed back to strokes rather than
// raw edges.
type segment struct {
	strokeIdx int
	a, b      geom.Point
}

// Detect finds every pairwise crossing between distinct strokes' edges and
// returns them deduplicated and sorted by (min(stroke), max(stroke)), the
// order spec.md §4.8's classification pass expects. Crossings are found by
// a genuine Bentley-Ottmann sweep (runSweep, in sweep.go): the active set
// of segments is kept ordered by y at the current sweep position, and a
// crossing is recorded exactly when two y-adjacent segments reach the x
// where their order would exchange (a SWAP event), not by comparing every
// pair of segments directly.
func Detect(g *gene.Gene) []StrokeOverlap {
	segs := buildSegments(g)
	found := map[[2]int]StrokeOverlap{}
	runSweep(segs, found)

	out := make([]StrokeOverlap, 0, len(found))
	for _, ov := range found {
		out = append(out, ov)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FirstStroke != out[j].FirstStroke {
			return out[i].FirstStroke < out[j].FirstStroke
		}
		return out[i].SecondStroke < out[j].SecondStroke
	})
	return out
}

func buildSegments(g *gene.Gene) []segment {
	var segs []segment
	for si, s := range g.Strokes {
		pts := g.Points[s.Start : s.End+1]
		for i := 1; i < len(pts); i++ {
			segs = append(segs, segment{strokeIdx: si, a: pts[i-1], b: pts[i]})
		}
	}
	return segs
}

func recordCrossing(a, b segment, found map[[2]int]StrokeOverlap) {
	if a.strokeIdx == b.strokeIdx {
		return
	}
	pt, ok := intersect(a.a, a.b, b.a, b.b)
	if !ok {
		return
	}
	first, second := a.strokeIdx, b.strokeIdx
	if first > second {
		first, second = second, first
	}
	key := [2]int{first, second}
	if _, exists := found[key]; !exists {
		found[key] = StrokeOverlap{FirstStroke: first, SecondStroke: second, At: pt}
	}
}
