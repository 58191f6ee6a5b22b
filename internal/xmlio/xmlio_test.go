package xmlio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenomeDoc_RoundTrip(t *testing.T) {
	doc := &GenomeDoc{
		UUID:  "11111111-1111-4111-8111-111111111111",
		Bases: "ATGTAA",
		Genes: []GeneDoc{{Name: 1, BaseFirst: 0, BaseLast: 5, HanCode: "U+4E00"}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteGenome(&buf, doc))

	got, err := ReadGenome(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc.UUID, got.UUID)
	assert.Equal(t, doc.Bases, got.Bases)
	require.Len(t, got.Genes, 1)
	assert.Equal(t, doc.Genes[0], got.Genes[0])
}

func TestPlanDoc_RoundTrip(t *testing.T) {
	doc := &PlanDoc{Seed: 42, Steps: 100, Condition: TrialConditionDoc{Mode: "increase"}}
	var buf bytes.Buffer
	require.NoError(t, WritePlan(&buf, doc))
	got, err := ReadPlan(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc.Seed, got.Seed)
	assert.Equal(t, doc.Condition.Mode, got.Condition.Mode)
}

func TestToHan_ComputesBoundsLengthAndReverse(t *testing.T) {
	doc := &HanDoc{
		Unicode:             "U+4E00",
		MinimumStrokeLength: 1,
		Strokes: []HanStrokeDoc{
			{Points: []HanPointDoc{
				{X: 0, Y: 0, FractionalDistance: 0},
				{X: 10, Y: 0, FractionalDistance: 1},
			}},
		},
	}
	h, err := ToHan(doc)
	require.NoError(t, err)
	assert.Equal(t, rune(0x4E00), h.Unicode)
	require.Len(t, h.Strokes, 1)
	assert.InDelta(t, 10, h.Strokes[0].Length, 1e-9)
	assert.InDelta(t, 10, h.Bounds.Width(), 1e-9)

	rev := h.Strokes[0].PointsReverse
	require.Len(t, rev, 2)
	assert.InDelta(t, 10, rev[0].X, 1e-9)
	assert.InDelta(t, 0, rev[0].FractionalDistance, 1e-9)
	assert.InDelta(t, 0, rev[1].X, 1e-9)
	assert.InDelta(t, 1, rev[1].FractionalDistance, 1e-9)
}

func TestToHan_InvalidUnicode(t *testing.T) {
	_, err := ToHan(&HanDoc{Unicode: "not-a-codepoint"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid unicode"))
}
