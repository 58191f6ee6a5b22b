// Package han models the reference Han glyph a gene is scored against:
// strokes, groups, and the legal/required stroke overlaps between them.
// Han definitions are loaded once (keyed by UUID) and shared
// read-only thereafter.
package han

import "github.com/biologicinstitute/stylus/internal/geom"

// HPoint is one control point along a Han stroke, carrying its cumulative
// fractional distance along the stroke in [0,1].
type HPoint struct {
	X, Y               float64
	FractionalDistance float64
}

// Point returns the plane point.
func (p HPoint) Point() geom.Point { return geom.Point{X: p.X, Y: p.Y} }

// HStroke is one reference stroke, stored in both forward and reverse
// point order so gene strokes can be matched against whichever orientation
// minimizes endpoint deviation (spec.md §4.6).
type HStroke struct {
	Bounds        geom.Rect
	Length        float64
	PointsForward []HPoint
	PointsReverse []HPoint
}

// HGroup is a Han-defined subset of strokes scored together, by index into
// Han.Strokes.
type HGroup struct {
	StrokeIndices []int
	WeightedCenter geom.Point
}

// HOverlap is one legal or required crossing between two Han strokes, by
// index into Han.Strokes.
type HOverlap struct {
	FirstStroke  int
	SecondStroke int
	Required     bool
}

// Han is a reference glyph definition.
type Han struct {
	Unicode             rune
	UUID                string
	Bounds              geom.Rect
	TotalLength         float64
	MinimumStrokeLength float64
	Strokes             []HStroke
	Groups              []HGroup
	Overlaps            []HOverlap
}

// GroupOf returns the index of the group containing stroke strokeIdx, or -1
// if no group claims it.
func (h *Han) GroupOf(strokeIdx int) int {
	for gi, g := range h.Groups {
		for _, si := range g.StrokeIndices {
			if si == strokeIdx {
				return gi
			}
		}
	}
	return -1
}

// SortedOverlaps returns h.Overlaps ordered by (min(a,b), max(a,b)), the
// canonical order spec.md §4.8's sorted-merge classification requires.
func (h *Han) SortedOverlaps() []HOverlap {
	out := make([]HOverlap, len(h.Overlaps))
	copy(out, h.Overlaps)
	normalize := func(o *HOverlap) (int, int) {
		if o.FirstStroke <= o.SecondStroke {
			return o.FirstStroke, o.SecondStroke
		}
		return o.SecondStroke, o.FirstStroke
	}
	for i := range out {
		a, b := normalize(&out[i])
		out[i].FirstStroke, out[i].SecondStroke = a, b
	}
	sortHOverlaps(out)
	return out
}

func sortHOverlaps(o []HOverlap) {
	// Insertion sort: overlap lists are small (bounded by stroke count
	// squared for a single glyph) and this keeps the ordering stable and
	// dependency-free at the call site.
	for i := 1; i < len(o); i++ {
		for j := i; j > 0; j-- {
			a, b := o[j-1], o[j]
			if a.FirstStroke < b.FirstStroke || (a.FirstStroke == b.FirstStroke && a.SecondStroke <= b.SecondStroke) {
				break
			}
			o[j-1], o[j] = o[j], o[j-1]
		}
	}
}
