package han

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleHan() *Han {
	return &Han{
		Unicode: '人',
		UUID:    "han-1",
		Strokes: make([]HStroke, 3),
		Groups: []HGroup{
			{StrokeIndices: []int{0, 1}},
			{StrokeIndices: []int{2}},
		},
		Overlaps: []HOverlap{
			{FirstStroke: 2, SecondStroke: 0, Required: true},
			{FirstStroke: 0, SecondStroke: 1, Required: false},
		},
	}
}

func TestGroupOf(t *testing.T) {
	h := sampleHan()
	assert.Equal(t, 0, h.GroupOf(0))
	assert.Equal(t, 0, h.GroupOf(1))
	assert.Equal(t, 1, h.GroupOf(2))
	assert.Equal(t, -1, h.GroupOf(5))
}

func TestSortedOverlaps(t *testing.T) {
	h := sampleHan()
	sorted := h.SortedOverlaps()
	assert.Equal(t, []HOverlap{
		{FirstStroke: 0, SecondStroke: 1, Required: false},
		{FirstStroke: 0, SecondStroke: 2, Required: true},
	}, sorted)
}

func TestStore(t *testing.T) {
	s := NewStore()
	h := sampleHan()
	s.Put(h)
	assert.Same(t, h, s.Get("han-1"))
	assert.Nil(t, s.Get("missing"))
}
