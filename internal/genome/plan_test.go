package genome

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biologicinstitute/stylus/internal/acid"
	"github.com/biologicinstitute/stylus/internal/geom"
	"github.com/biologicinstitute/stylus/internal/han"
	"github.com/biologicinstitute/stylus/internal/modstack"
	"github.com/biologicinstitute/stylus/internal/random"
)

func TestTrialCondition_Accepts(t *testing.T) {
	assert.True(t, TrialCondition{Mode: ModeIncrease}.Accepts(0.1))
	assert.False(t, TrialCondition{Mode: ModeIncrease}.Accepts(-0.1))
	assert.True(t, TrialCondition{Mode: ModeDecrease}.Accepts(-0.1))
	assert.True(t, TrialCondition{Mode: ModeMaintain, Tolerance: 0.05}.Accepts(0.01))
	assert.False(t, TrialCondition{Mode: ModeMaintain, Tolerance: 0.05}.Accepts(0.5))
}

func TestMaxSteps_Done(t *testing.T) {
	term := MaxSteps(3)
	g := New()
	assert.False(t, term.Done(0, g))
	assert.False(t, term.Done(2, g))
	assert.True(t, term.Done(3, g))
}

// noopChange is a Mutator that replaces base 0 with itself: a genuine
// Modification goes on the stack and a real recompile runs, but the
// genome's bases and score never actually change.
type noopChange struct{}

func (noopChange) Propose(g *Genome, _ random.Source) error {
	bases := g.GetBases()
	return g.ApplyModification(modstack.NewChange(bases, 0, []acid.Base{bases[0]}))
}

func newTrivialIdentityGenome(t *testing.T) *Genome {
	t.Helper()
	g := New()
	require.NoError(t, g.SetGenome(toBases(t, "ATGTAA")))
	h := &han.Han{Bounds: geom.Rect{Max: geom.Point{X: 1, Y: 1}}}
	require.NoError(t, g.CompileGene(1, 0, 5, h))
	require.NoError(t, g.ScoreGenes())
	return g
}

func TestExecutePlan_NoOpMutatorKeepsEveryTrial(t *testing.T) {
	g := newTrivialIdentityGenome(t)

	history, err := g.ExecutePlan(
		Options{},
		TrialCondition{Mode: ModeMaintain, Tolerance: 0},
		MaxSteps(3),
		noopChange{},
		random.NewLockstep(1),
		0, 3,
		nil, nil,
	)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for _, s := range history {
		assert.True(t, s.Kept)
	}
	assert.Equal(t, 3, g.GetTrial())
	assert.Equal(t, 3, g.GetTrialAttempts())
	assert.Equal(t, "trial-count", g.GetTermination())
	assert.Equal(t, 3, g.Mods.Len())
}

// insertOneBase inserts a single base mid-gene, a +1 frame shift that breaks
// compilation outright: the gene's fixed six-base window now reads ATG ATA,
// so the TAA stop falls outside it.
type insertOneBase struct{}

func (insertOneBase) Propose(g *Genome, _ random.Source) error {
	return g.ApplyModification(modstack.NewInsert(3, []acid.Base{acid.A}))
}

func TestExecutePlan_FrameViolationRejectedNotAborted(t *testing.T) {
	g := newTrivialIdentityGenome(t)
	original := append([]acid.Base(nil), g.GetBases()...)

	history, err := g.ExecutePlan(
		Options{EnsureInFrame: true},
		TrialCondition{Mode: ModeMaintain, Tolerance: 10},
		MaxSteps(1),
		insertOneBase{},
		random.NewLockstep(1),
		0, 1,
		nil, nil,
	)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.False(t, history[0].Kept)
	assert.Equal(t, "frame", history[0].Rejected)
	assert.Equal(t, original, g.GetBases())
	assert.Equal(t, 0, g.GetTrial())
	assert.Equal(t, 1, g.GetTrialAttempts())
	assert.NotEqual(t, StateDead, g.State())
}

func TestCheckConstraints_RejectsSilentChange(t *testing.T) {
	table := acid.DefaultCodonTable()
	before := []acid.Base{acid.T, acid.T, acid.C} // TTC -> Nom
	m := modstack.NewChange(before, 2, []acid.Base{acid.G})  // TTG -> Nom too
	reason, violates := checkConstraints(Options{RejectSilent: true}, table, before, []modstack.Modification{m})
	assert.True(t, violates)
	assert.Equal(t, "silent", reason)
}

func TestCheckConstraints_AllowsNonSilentChange(t *testing.T) {
	table := acid.DefaultCodonTable()
	before := []acid.Base{acid.T, acid.T, acid.C} // TTC -> Nom
	m := modstack.NewChange(before, 2, []acid.Base{acid.A}) // TTA -> Nol
	_, violates := checkConstraints(Options{RejectSilent: true}, table, before, []modstack.Modification{m})
	assert.False(t, violates)
}

func TestCheckConstraints_RejectsFrameShift(t *testing.T) {
	m := modstack.NewInsert(3, []acid.Base{acid.A})
	reason, violates := checkConstraints(Options{EnsureInFrame: true}, acid.DefaultCodonTable(), nil, []modstack.Modification{m})
	assert.True(t, violates)
	assert.Equal(t, "frame", reason)
}

func TestCheckConstraints_RejectsOffCodonBoundary(t *testing.T) {
	m := modstack.NewInsert(4, []acid.Base{acid.A, acid.A, acid.A})
	reason, violates := checkConstraints(Options{EnsureWholeCodons: true}, acid.DefaultCodonTable(), nil, []modstack.Modification{m})
	assert.True(t, violates)
	assert.Equal(t, "whole-codon", reason)
}

func TestCheckConstraints_NoOptsNeverViolates(t *testing.T) {
	m := modstack.NewInsert(4, []acid.Base{acid.A})
	_, violates := checkConstraints(Options{}, acid.DefaultCodonTable(), nil, []modstack.Modification{m})
	assert.False(t, violates)
}
