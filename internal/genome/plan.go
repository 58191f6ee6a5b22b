package genome

import (
	"fmt"
	"io"

	"github.com/biologicinstitute/stylus/internal/acid"
	"github.com/biologicinstitute/stylus/internal/modstack"
	"github.com/biologicinstitute/stylus/internal/random"
	"github.com/biologicinstitute/stylus/internal/xmlio"
)

// ConditionMode names how a TrialCondition judges the score delta a
// proposed mutation produced (spec.md §4.10's cost/fitness/score
// conditions, DECREASE/INCREASE/MAINTAIN).
type ConditionMode int

const (
	ModeDecrease ConditionMode = iota
	ModeIncrease
	ModeMaintain
)

// TrialCondition decides whether one trial's outcome is kept.
type TrialCondition struct {
	Mode      ConditionMode
	Tolerance float64 // for ModeMaintain: |delta| <= Tolerance keeps the trial
}

// Accepts reports whether delta (new score - old score) satisfies c.
func (c TrialCondition) Accepts(delta float64) bool {
	switch c.Mode {
	case ModeIncrease:
		return delta > 0
	case ModeDecrease:
		return delta < 0
	case ModeMaintain:
		return delta >= -c.Tolerance && delta <= c.Tolerance
	default:
		return false
	}
}

// Mutator proposes one trial's candidate mutation against g, applying it
// via g.ApplyModification so the trial loop can roll it back on rejection.
type Mutator interface {
	Propose(g *Genome, r random.Source) error
}

// TerminationCondition reports whether ExecutePlan should stop, given the
// step index about to run and the genome's current state.
type TerminationCondition interface {
	Done(step int, g *Genome) bool
}

// MaxSteps is a TerminationCondition that stops after N trials.
type MaxSteps int

func (m MaxSteps) Done(step int, _ *Genome) bool { return step >= int(m) }

// ScoreAtLeast is a TerminationCondition that stops once the genome's score
// reaches a target (a FitnessTerminationCondition, spec.md §4.10).
type ScoreAtLeast float64

func (s ScoreAtLeast) Done(_ int, g *Genome) bool { return g.Score >= float64(s) }

// Options mirrors the plan document's structural options (spec.md §6):
// AccumulateMutations/PreserveGenes round-trip through document I/O but
// don't change trial-loop behavior here (this engine keeps one genome
// lineage per run, not a population); EnsureInFrame/EnsureWholeCodons/
// RejectSilent gate each trial's proposed mutation after it's tentatively
// applied, per spec.md's plan-condition-time rejection semantics.
type Options struct {
	AccumulateMutations bool
	PreserveGenes       bool
	EnsureInFrame       bool
	EnsureWholeCodons   bool
	RejectSilent        bool
}

// Step is one trial's outcome.
type Step struct {
	Index    int
	Before   float64
	After    float64
	Kept     bool
	Rejected string // "score", "frame", "whole-codon", or "silent" when !Kept
}

// StatusCallback is invoked during ExecutePlan at the statusRate cadence
// plus always on the first and final trial of the call.
type StatusCallback func(step Step, stats Statistics)

// ExecutePlan runs up to trialCount further trials, numbered starting at
// firstTrial so a resumed run continues the same trial index, proposing
// each one via mutator and accepting/rejecting it by condition and opts'
// structural constraints, stopping early if terminate fires. statusCb and
// xmlOut, when non-nil, are invoked/written at SetRecordRate's cadence (the
// teacher's progress-report hook adapted from a row-count callback to a
// trial-count one, and an xmlio genome-document snapshot per spec.md §6's
// detail-level trial history) plus always on the call's first and last
// trial.
func (g *Genome) ExecutePlan(
	opts Options,
	condition TrialCondition,
	terminate TerminationCondition,
	mutator Mutator,
	r random.Source,
	firstTrial, trialCount int,
	xmlOut io.Writer,
	statusCb StatusCallback,
) ([]Step, error) {
	var history []Step
	g.termination = ""

	for i := 0; i < trialCount; i++ {
		trial := firstTrial + i
		if terminate.Done(trial, g) {
			g.termination = "terminate"
			break
		}

		step, err := g.runTrial(trial, opts, condition, mutator, r)
		if err != nil {
			return history, err
		}
		history = append(history, step)
		g.trialAttempts++
		if step.Kept {
			g.trial++
		}
		if g.traceTrial {
			g.log.Debugw("trial", "index", trial, "kept", step.Kept, "rejected", step.Rejected, "before", step.Before, "after", step.After)
		}

		last := i == trialCount-1
		report := trial%g.recordRate == 0
		if statusCb != nil && (last || i == 0 || report) {
			statusCb(step, g.GetStatistics())
		}
		if xmlOut != nil && (last || i == 0 || report) {
			if err := g.writeSnapshot(xmlOut); err != nil {
				return history, err
			}
		}
	}

	if g.termination == "" {
		g.termination = "trial-count"
	}
	return history, nil
}

// runTrial proposes and evaluates one trial. Constraint checking runs
// against whatever Modifications the mutator pushed even when Propose
// itself returned an error: ApplyModification records a Modification
// before attempting the recompile it needs, so a frame/whole-codon/silent
// violation is visible and rejectable at plan-condition time even though
// the violating edit would otherwise have failed compilation outright
// (spec.md's Insert-frame-shift rejection vector: the genome stays ALIVE
// and the attempts counter increments, rather than the run aborting).
func (g *Genome) runTrial(trial int, opts Options, condition TrialCondition, mutator Mutator, r random.Source) (Step, error) {
	mark := g.Mods.Mark()
	before := g.Score
	beforeBases := append([]acid.Base(nil), g.Bases...)

	proposeErr := mutator.Propose(g, r)
	applied := g.Mods.Entries()[mark:]

	if reason, violates := checkConstraints(opts, g.CodonTable, beforeBases, applied); violates {
		g.RollbackModsTo(mark)
		return Step{Index: trial, Before: before, After: before, Kept: false, Rejected: reason}, nil
	}

	if proposeErr != nil {
		g.RollbackModsTo(mark)
		return Step{}, proposeErr
	}

	if err := g.ScoreGenes(); err != nil {
		g.RollbackModsTo(mark)
		return Step{}, err
	}

	after := g.Score
	delta := after - before
	if !condition.Accepts(delta) {
		g.RollbackModsTo(mark)
		g.Score = before
		return Step{Index: trial, Before: before, After: after, Kept: false, Rejected: "score"}, nil
	}
	return Step{Index: trial, Before: before, After: after, Kept: true}, nil
}

// checkConstraints applies opts' structural gates to every Modification a
// single Propose call recorded since mark, against the bases as they stood
// before any of them applied (spec.md's isSilentChange needs the
// pre-mutation codon context). Returns the first violated constraint's name.
func checkConstraints(opts Options, table *acid.CodonTable, beforeBases []acid.Base, applied []modstack.Modification) (string, bool) {
	if !opts.EnsureInFrame && !opts.EnsureWholeCodons && !opts.RejectSilent {
		return "", false
	}
	for _, m := range applied {
		if opts.EnsureInFrame && acid.NumFrameShift(lengthDelta(m)) != 0 {
			return "frame", true
		}
		if opts.EnsureWholeCodons {
			pos, length := spanOf(m)
			if !acid.OnCodonBoundary(pos) || !acid.OnCodonBoundary(length) {
				return "whole-codon", true
			}
		}
		if opts.RejectSilent && m.Kind == modstack.KindChange {
			if acid.IsSilentChange(table, beforeBases, m.Pos, m.Bases) {
				return "silent", true
			}
		}
	}
	return "", false
}

func lengthDelta(m modstack.Modification) int {
	switch m.Kind {
	case modstack.KindDelete:
		return -m.Length
	case modstack.KindInsert:
		return len(m.Bases)
	default:
		return 0
	}
}

func spanOf(m modstack.Modification) (pos, length int) {
	switch m.Kind {
	case modstack.KindChange:
		return m.Pos, len(m.Bases)
	case modstack.KindDelete:
		return m.Pos, m.Length
	case modstack.KindInsert:
		return m.Pos, len(m.Bases)
	case modstack.KindCopy, modstack.KindTranspose:
		return m.Dst, m.Length
	default:
		return 0, 0
	}
}

func (g *Genome) writeSnapshot(w io.Writer) error {
	doc := &xmlio.GenomeDoc{UUID: g.UUID, Bases: basesString(g.Bases)}
	for _, rec := range g.Genes {
		doc.Genes = append(doc.Genes, xmlio.GeneDoc{
			Name:      rec.Gene.Name,
			BaseFirst: rec.Gene.BaseFirst,
			BaseLast:  rec.Gene.BaseLast,
			HanCode:   fmt.Sprintf("U+%04X", rec.Gene.HanUnicode),
		})
	}
	return xmlio.WriteGenome(w, doc)
}

func basesString(bases []acid.Base) string {
	out := make([]byte, len(bases))
	for i, b := range bases {
		out[i] = b.Byte()
	}
	return string(out)
}
