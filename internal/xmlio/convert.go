package xmlio

import (
	"fmt"
	"math"

	"github.com/biologicinstitute/stylus/internal/geom"
	"github.com/biologicinstitute/stylus/internal/han"
)

// ToHan converts a decoded HanDoc into the runtime han.Han model,
// computing each stroke's bounding box, length, and reverse point
// ordering, which the document format does not store redundantly.
func ToHan(doc *HanDoc) (*han.Han, error) {
	var code rune
	if _, err := fmt.Sscanf(doc.Unicode, "U+%X", &code); err != nil {
		return nil, fmt.Errorf("xmlio: invalid unicode attribute %q: %w", doc.Unicode, err)
	}

	h := &han.Han{
		Unicode:             code,
		MinimumStrokeLength: doc.MinimumStrokeLength,
	}

	var allPoints []geom.Point
	for _, sd := range doc.Strokes {
		fwd := make([]han.HPoint, len(sd.Points))
		pts := make([]geom.Point, len(sd.Points))
		for i, pd := range sd.Points {
			fwd[i] = han.HPoint{X: pd.X, Y: pd.Y, FractionalDistance: pd.FractionalDistance}
			pts[i] = geom.Point{X: pd.X, Y: pd.Y}
		}
		rev := reverseHPoints(fwd)

		length := pathLength(pts)
		box := geom.BoundingBox(pts)
		h.Strokes = append(h.Strokes, han.HStroke{
			Bounds:        box,
			Length:        length,
			PointsForward: fwd,
			PointsReverse: rev,
		})
		h.TotalLength += length
		allPoints = append(allPoints, pts...)
	}
	h.Bounds = geom.BoundingBox(allPoints)

	for _, gd := range doc.Groups {
		h.Groups = append(h.Groups, han.HGroup{StrokeIndices: append([]int(nil), gd.StrokeIndices...)})
	}
	for _, od := range doc.Overlaps {
		h.Overlaps = append(h.Overlaps, han.HOverlap{FirstStroke: od.First, SecondStroke: od.Second, Required: od.Required})
	}
	return h, nil
}

// reverseHPoints reverses a forward point sequence and re-derives each
// point's fractional distance from the new (reversed) traversal direction.
func reverseHPoints(fwd []han.HPoint) []han.HPoint {
	n := len(fwd)
	if n == 0 {
		return nil
	}
	rev := make([]han.HPoint, n)
	for i, p := range fwd {
		rev[n-1-i] = han.HPoint{X: p.X, Y: p.Y, FractionalDistance: 1 - p.FractionalDistance}
	}
	return rev
}

func pathLength(pts []geom.Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += math.Hypot(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	return total
}
