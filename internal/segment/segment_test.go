package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biologicinstitute/stylus/internal/acid"
)

func TestTile_HeadOrfTailWithGap(t *testing.T) {
	genes := []GeneRange{{First: 3, Last: 8}, {First: 12, Last: 17}}
	got := Tile(20, genes)
	want := []Segment{
		{Kind: Head, Start: 0, End: 3},
		{Kind: ORF, Start: 3, End: 9},
		{Kind: Intergenic, Start: 9, End: 12},
		{Kind: ORF, Start: 12, End: 18},
		{Kind: Tail, Start: 18, End: 20},
	}
	assert.Equal(t, want, got)
}

func TestTile_NoGenesIsAllHead(t *testing.T) {
	got := Tile(10, nil)
	require.Len(t, got, 1)
	assert.Equal(t, Head, got[0].Kind)
	assert.Equal(t, 0, got[0].Start)
	assert.Equal(t, 10, got[0].End)
}

func toBases(t *testing.T, s string) []acid.Base {
	t.Helper()
	out := make([]acid.Base, len(s))
	for i := 0; i < len(s); i++ {
		b, ok := acid.BaseIndex(s[i])
		require.True(t, ok)
		out[i] = b
	}
	return out
}

func TestScanORFs_FindsStartToStop(t *testing.T) {
	bases := toBases(t, "CCATGTATAATTTTTAGCC")
	got := ScanORFs(bases)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Start)
	assert.Equal(t, 17, got[0].End)
}

func TestScanORFs_NoStartNoORF(t *testing.T) {
	bases := toBases(t, "CCCCCCCCCC")
	assert.Empty(t, ScanORFs(bases))
}
