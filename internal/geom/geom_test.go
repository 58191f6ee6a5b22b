package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestBoundingBox(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 3, Y: -2}, {X: -1, Y: 5}}
	box := BoundingBox(pts)
	assert.Equal(t, -1.0, box.Min.X)
	assert.Equal(t, -2.0, box.Min.Y)
	assert.Equal(t, 3.0, box.Max.X)
	assert.Equal(t, 5.0, box.Max.Y)
	assert.Equal(t, 4.0, box.Width())
	assert.Equal(t, 7.0, box.Height())
}

func TestTranslateAndScale(t *testing.T) {
	pts := []Point{{X: 1, Y: 1}}
	moved := Translate(pts, Point{X: 2, Y: -1})
	assert.Equal(t, Point{X: 3, Y: 0}, moved[0])

	scaled := Scale(pts, 2, 3)
	assert.Equal(t, Point{X: 2, Y: 3}, scaled[0])
}

func TestPerpendicularDistance(t *testing.T) {
	// Line along the X axis; point 4 above it is distance 4 away.
	d := PerpendicularDistance(Point{X: 5, Y: 4}, Point{X: 0, Y: 0}, Point{X: 10, Y: 0})
	assert.InDelta(t, 4.0, d, 1e-9)
}

func TestPerpendicularDistance_DegenerateLine(t *testing.T) {
	d := PerpendicularDistance(Point{X: 3, Y: 4}, Point{X: 0, Y: 0}, Point{X: 0, Y: 0})
	assert.InDelta(t, 5.0, d, 1e-9)
}

func TestAlmostEqual(t *testing.T) {
	assert.True(t, AlmostEqual(1.0, 1.0+1e-13))
	assert.False(t, AlmostEqual(1.0, 1.1))
}

func TestIsZero(t *testing.T) {
	assert.True(t, IsZero(r2.Vec{}))
	assert.False(t, IsZero(Point{X: 0.5, Y: 0}))
}
