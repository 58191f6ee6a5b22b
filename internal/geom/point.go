// Package geom provides the planar point/vector arithmetic shared by gene
// compilation, measurement, and overlap detection: acid vectors trace a
// polyline, and that polyline's bounding boxes, scale factors, and
// perpendicular deviations from a reference Han polyline are all plane
// geometry on top of a single point type.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a 2-D point/vector in internal drawing units.
type Point = r2.Vec

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	Min, Max Point
}

// Width returns the rectangle's extent along X.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the rectangle's extent along Y.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the rectangle's midpoint.
func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// BoundingBox computes the axis-aligned bounding box of pts. Panics if pts
// is empty; callers must guard.
func BoundingBox(pts []Point) Rect {
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		if p.X < r.Min.X {
			r.Min.X = p.X
		}
		if p.Y < r.Min.Y {
			r.Min.Y = p.Y
		}
		if p.X > r.Max.X {
			r.Max.X = p.X
		}
		if p.Y > r.Max.Y {
			r.Max.Y = p.Y
		}
	}
	return r
}

// Translate returns every point in pts shifted by d.
func Translate(pts []Point, d Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = r2.Add(p, d)
	}
	return out
}

// Scale returns every point in pts scaled component-wise by (sx, sy) about
// the origin.
func Scale(pts []Point, sx, sy float64) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{X: p.X * sx, Y: p.Y * sy}
	}
	return out
}

// defaultEpsilon matches spec.md §9's guidance for Unit-style float
// comparisons: ~10^4 * machine epsilon, expressed as a dedicated helper
// rather than an overloaded comparison operator.
const defaultEpsilon = 1e4 * 2.220446049250313e-16

// AlmostEqual reports whether a and b are equal within the reference
// engine's floating point tolerance.
func AlmostEqual(a, b float64) bool {
	return math.Abs(a-b) <= defaultEpsilon*math.Max(1.0, math.Max(math.Abs(a), math.Abs(b)))
}

// IsZero reports whether v is the zero vector within tolerance.
func IsZero(v Point) bool {
	return AlmostEqual(v.X, 0) && AlmostEqual(v.Y, 0)
}

// PerpendicularDistance returns the perpendicular distance from p to the
// infinite line through a and b. If a == b, returns the distance from p to
// a.
func PerpendicularDistance(p, a, b Point) float64 {
	ab := r2.Sub(b, a)
	if IsZero(ab) {
		return r2.Norm(r2.Sub(p, a))
	}
	ap := r2.Sub(p, a)
	cross := ab.X*ap.Y - ab.Y*ap.X
	return math.Abs(cross) / r2.Norm(ab)
}

// SquaredDistance returns the squared Euclidean distance between a and b.
func SquaredDistance(a, b Point) float64 {
	d := r2.Sub(a, b)
	return d.X*d.X + d.Y*d.Y
}
