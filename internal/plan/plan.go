// Package plan supplies a concrete genome.Mutator: MutationSelector samples
// one of the five modstack modification kinds by likelihood weight each
// trial and applies it at a randomly chosen, length-clamped position,
// the sampled (as opposed to exhaustive) proposal path spec.md §4.10/§6
// describes. The trial-execution engine itself (TrialCondition,
// TerminationCondition, ExecutePlan) lives on genome.Genome, since it needs
// to mutate genome-internal state the plan package has no business reaching
// into directly.
package plan

import (
	"fmt"

	"github.com/biologicinstitute/stylus/internal/acid"
	"github.com/biologicinstitute/stylus/internal/genome"
	"github.com/biologicinstitute/stylus/internal/modstack"
	"github.com/biologicinstitute/stylus/internal/random"
)

// MutationKind pairs a modstack.Kind with its likelihood weight and the
// base span a proposed mutation of this kind should touch (spec.md §6's
// mutations[].likelihood/countBases).
type MutationKind struct {
	Kind       modstack.Kind
	Likelihood float64
	CountBases int // 0 defaults to one codon (3 bases)
}

// MutationSelector is a genome.Mutator that samples one MutationKind by
// likelihood weight each trial and proposes a randomly positioned
// modification of that kind against the genome's current bases.
type MutationSelector struct {
	Kinds []MutationKind
}

// DefaultSelector returns a MutationSelector proposing all five kinds with
// equal likelihood and a one-codon span, a reasonable default for a run
// that doesn't supply its own per-mutation weights.
func DefaultSelector() *MutationSelector {
	return &MutationSelector{Kinds: []MutationKind{
		{Kind: modstack.KindChange, Likelihood: 1, CountBases: 3},
		{Kind: modstack.KindDelete, Likelihood: 1, CountBases: 3},
		{Kind: modstack.KindInsert, Likelihood: 1, CountBases: 3},
		{Kind: modstack.KindCopy, Likelihood: 1, CountBases: 3},
		{Kind: modstack.KindTranspose, Likelihood: 1, CountBases: 3},
	}}
}

// Propose implements genome.Mutator.
func (s *MutationSelector) Propose(g *genome.Genome, r random.Source) error {
	if len(s.Kinds) == 0 {
		return fmt.Errorf("plan: MutationSelector has no mutation kinds")
	}
	bases := g.GetBases()
	if len(bases) == 0 {
		return fmt.Errorf("plan: genome has no bases to mutate")
	}

	mk := s.pick(r)
	length := mk.CountBases
	if length <= 0 {
		length = 3
	}

	m, err := build(mk.Kind, bases, length, r)
	if err != nil {
		return err
	}
	return g.ApplyModification(m)
}

func (s *MutationSelector) pick(r random.Source) MutationKind {
	total := 0.0
	for _, k := range s.Kinds {
		total += k.Likelihood
	}
	if total <= 0 {
		return s.Kinds[r.Intn(len(s.Kinds))]
	}
	roll := r.Float64() * total
	for _, k := range s.Kinds {
		roll -= k.Likelihood
		if roll <= 0 {
			return k
		}
	}
	return s.Kinds[len(s.Kinds)-1]
}

func build(kind modstack.Kind, bases []acid.Base, length int, r random.Source) (modstack.Modification, error) {
	n := len(bases)
	switch kind {
	case modstack.KindChange:
		pos := r.Intn(n)
		length = clampLength(length, n-pos)
		return modstack.NewChange(bases, pos, randomBases(r, length)), nil
	case modstack.KindDelete:
		pos := r.Intn(n)
		length = clampLength(length, n-pos)
		return modstack.NewDelete(bases, pos, length), nil
	case modstack.KindInsert:
		pos := r.Intn(n + 1)
		return modstack.NewInsert(pos, randomBases(r, length)), nil
	case modstack.KindCopy:
		length = clampLength(length, n)
		src := r.Intn(n - length + 1)
		dst := r.Intn(n - length + 1)
		return modstack.NewCopy(bases, src, dst, length), nil
	case modstack.KindTranspose:
		length = clampLength(length, n/2)
		src := r.Intn(n - length + 1)
		dst := r.Intn(n - length + 1)
		return modstack.NewTranspose(src, dst, length), nil
	default:
		return modstack.Modification{}, fmt.Errorf("plan: unknown mutation kind %v", kind)
	}
}

// clampLength keeps a proposed span at least 1 base and no longer than max.
func clampLength(length, max int) int {
	if max < 1 {
		max = 1
	}
	if length > max {
		length = max
	}
	if length < 1 {
		length = 1
	}
	return length
}

func randomBases(r random.Source, n int) []acid.Base {
	all := [4]acid.Base{acid.T, acid.C, acid.A, acid.G}
	out := make([]acid.Base, n)
	for i := range out {
		out[i] = all[r.Intn(4)]
	}
	return out
}

var _ genome.Mutator = (*MutationSelector)(nil)
