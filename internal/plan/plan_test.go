package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biologicinstitute/stylus/internal/acid"
	"github.com/biologicinstitute/stylus/internal/genome"
	"github.com/biologicinstitute/stylus/internal/han"
	"github.com/biologicinstitute/stylus/internal/modstack"
	"github.com/biologicinstitute/stylus/internal/random"
)

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

// newValidatedGenome builds a genome with a payload long enough that a
// one-codon mutation need not land on the START or terminal STOP codon.
// The Han's huge minimum stroke length makes every payload stroke a mark,
// so the gene matches a Han with no strokes.
func newValidatedGenome(t *testing.T) *genome.Genome {
	t.Helper()
	g := genome.New()
	require.NoError(t, g.SetGenome(toBases(t, "ATGAAAAAAAAATAA")))
	require.NoError(t, g.CompileGene(1, 0, 14, &han.Han{MinimumStrokeLength: 1e9}))
	return g
}

// Propose always pushes the Modification it built onto the genome's
// modstack before attempting the recompile that may reject it (a random
// pick can land on the START/STOP codon and fail compilation) — these
// tests only assert what Propose guarantees regardless of that outcome.

func TestDefaultSelector_ProposePushesOneModification(t *testing.T) {
	g := newValidatedGenome(t)
	s := DefaultSelector()
	_ = s.Propose(g, random.NewLockstep(1))
	assert.Equal(t, 1, g.Mods.Len())
}

func TestMutationSelector_ProposeDeterministicFromSeed(t *testing.T) {
	g1 := newValidatedGenome(t)
	g2 := newValidatedGenome(t)
	s := DefaultSelector()

	_ = s.Propose(g1, random.NewLockstep(42))
	_ = s.Propose(g2, random.NewLockstep(42))
	assert.Equal(t, g1.GetBases(), g2.GetBases())
}

func TestMutationSelector_PicksSingleKindWhenOnlyOneConfigured(t *testing.T) {
	g := newValidatedGenome(t)
	s := &MutationSelector{Kinds: []MutationKind{{Kind: modstack.KindChange, Likelihood: 1, CountBases: 3}}}

	_ = s.Propose(g, random.NewLockstep(7))
	entries := g.Mods.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, modstack.KindChange, entries[0].Kind)
}

func TestMutationSelector_Propose_NoKindsErrors(t *testing.T) {
	g := newValidatedGenome(t)
	s := &MutationSelector{}
	assert.Error(t, s.Propose(g, random.NewLockstep(1)))
}

func TestClampLength(t *testing.T) {
	assert.Equal(t, 1, clampLength(0, 5))
	assert.Equal(t, 5, clampLength(10, 5))
	assert.Equal(t, 3, clampLength(3, 5))
	assert.Equal(t, 1, clampLength(3, 0))
}

func TestRandomBases_AllLegal(t *testing.T) {
	r := random.NewLockstep(3)
	bases := randomBases(r, 20)
	require.Len(t, bases, 20)
	for _, b := range bases {
		_, ok := acid.BaseIndex(b.Byte())
		assert.True(t, ok)
	}
}
