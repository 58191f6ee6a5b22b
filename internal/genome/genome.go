// Package genome implements the genome state machine and its public
// operations (spec.md §4.2): loading bases, compiling/validating/scoring
// genes, applying plans, and reporting statistics.
package genome

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/biologicinstitute/stylus/internal/acid"
	"github.com/biologicinstitute/stylus/internal/gene"
	"github.com/biologicinstitute/stylus/internal/han"
	"github.com/biologicinstitute/stylus/internal/measure"
	"github.com/biologicinstitute/stylus/internal/modstack"
	"github.com/biologicinstitute/stylus/internal/overlap"
	"github.com/biologicinstitute/stylus/internal/random"
	"github.com/biologicinstitute/stylus/internal/score"
	"github.com/biologicinstitute/stylus/internal/stgerr"
	"github.com/biologicinstitute/stylus/internal/stuid"
)

// State names one node of the genome lifecycle spec.md §4.2 lists.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateCompiling
	StateCompiled
	StateValidating
	StateValidated
	StateScoring
	StateScored
	StateAlive
	StateMutating
	StateRollback
	StateDead
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "EMPTY"
	case StateLoading:
		return "LOADING"
	case StateCompiling:
		return "COMPILING"
	case StateCompiled:
		return "COMPILED"
	case StateValidating:
		return "VALIDATING"
	case StateValidated:
		return "VALIDATED"
	case StateScoring:
		return "SCORING"
	case StateScored:
		return "SCORED"
	case StateAlive:
		return "ALIVE"
	case StateMutating:
		return "MUTATING"
	case StateRollback:
		return "ROLLBACK"
	case StateDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}

// stateGuard holds the lifecycle state behind a mutex so transitions are
// serialized; it does not check which transitions are allowed (SetGenome
// and ScoreGenes check their starting state themselves). It mirrors the
// teacher's invalidation-bitmask
// defensiveness (internal/gene.InvalidationFlags) but for the coarser
// whole-genome lifecycle.
type stateGuard struct {
	mu    sync.Mutex
	state State
}

func (g *stateGuard) transition(to State) { g.mu.Lock(); g.state = to; g.mu.Unlock() }
func (g *stateGuard) current() State      { g.mu.Lock(); defer g.mu.Unlock(); return g.state }

// GeneRecord pairs a compiled gene with the Han it targets.
type GeneRecord struct {
	Gene *gene.Gene
	Han  *han.Han
}

// Genome is one candidate's full base sequence and the genes compiled
// against it, plus its modification history and current lifecycle state.
type Genome struct {
	guard stateGuard
	last  stgerr.Last

	Bases []acid.Base
	Mods  modstack.Stack

	CodonTable *acid.CodonTable
	Genes      []*GeneRecord
	Weights    []score.Weight

	Score float64

	// UUID identifies this genome, minted deterministically from
	// SetUUIDSeeds' Source when set (spec.md §4's SetUUIDSeeds).
	UUID string

	uuidSource random.Source
	traceTrial bool
	recordRate int
	log        *zap.SugaredLogger

	trial         int
	trialAttempts int
	termination   string
	geneScores    map[int]float64
}

// New builds an empty genome ready to receive bases.
func New() *Genome {
	return &Genome{
		guard:      stateGuard{state: StateEmpty},
		CodonTable: acid.DefaultCodonTable(),
		Weights:    score.DefaultWeights(),
		log:        zap.NewNop().Sugar(),
		recordRate: 1,
	}
}

// SetLogger installs l as the genome's trial logger; a nil l is ignored.
func (g *Genome) SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		g.log = l
	}
}

// SetUUIDSeeds stores r and mints this genome's UUID from it, so a genome
// seeded from the same Source state gets an identical UUID (spec.md §4.2).
// ExecutePlan draws its trials from its own Source argument, not from r.
func (g *Genome) SetUUIDSeeds(r random.Source) {
	g.uuidSource = r
	g.UUID = stuid.FromRandom(r).String()
}

// SetTraceTrial enables or disables per-trial debug logging during
// ExecutePlan (spec.md §4.2).
func (g *Genome) SetTraceTrial(trace bool) { g.traceTrial = trace }

// SetRecordRate sets ExecutePlan's statusCb/xmlOut cadence: a report is made
// on every n-th trial (spec.md §4.2's detail-level recording rate).
func (g *Genome) SetRecordRate(n int) {
	if n < 1 {
		n = 1
	}
	g.recordRate = n
}

// State reports the genome's current lifecycle state.
func (g *Genome) State() State { return g.guard.current() }

// LastError returns the most recent operation failure, or nil.
func (g *Genome) LastError() error { return g.last.Error() }

// LastErrorDescription returns the most recent failure's message, or "".
func (g *Genome) LastErrorDescription() string { return g.last.Description() }

// SetGenome loads bases as the genome's sequence, moving EMPTY/DEAD ->
// LOADING -> COMPILED (an unpopulated genome has no genes yet, so
// "compiled" here means "ready to compile genes against").
func (g *Genome) SetGenome(bases []acid.Base) error {
	st := g.State()
	if st != StateEmpty && st != StateDead {
		err := fmt.Errorf("genome: SetGenome invalid from state %s", st)
		g.last.Set(err)
		return stgerr.Wrap(stgerr.KindRuntime, err)
	}
	g.guard.transition(StateLoading)
	g.Bases = bases
	g.Mods = modstack.Stack{}
	g.Genes = nil
	g.guard.transition(StateCompiled)
	g.last.Set(nil)
	return nil
}

// GetGenome returns the genome's current base sequence.
func (g *Genome) GetGenome() []acid.Base { return g.Bases }

// GetBases is GetGenome under the accessor name spec.md §4.2 lists
// alongside GetGeneScore/GetCost/GetFitness/GetScore.
func (g *Genome) GetBases() []acid.Base { return g.Bases }

// ApplyModification applies m to the genome's bases, records it on Mods,
// and recompiles every gene against the new sequence so its geometry is
// ready for the next ScoreGenes call.
func (g *Genome) ApplyModification(m modstack.Modification) error {
	g.guard.transition(StateMutating)
	g.Bases = m.Apply(g.Bases)
	g.Mods.Push(m)
	return g.recompile()
}

// RollbackModsTo undoes every Modification recorded since mark, restoring
// both the modstack log and the genome's bases (modstack.RollbackBasesTo),
// then recompiles every gene so its geometry matches the restored bases.
func (g *Genome) RollbackModsTo(mark int) error {
	g.guard.transition(StateRollback)
	g.Bases = g.Mods.RollbackBasesTo(mark, g.Bases)
	return g.recompile()
}

// recompile re-derives every compiled gene's acids/points/strokes from the
// genome's current bases, the step ApplyModification/RollbackModsTo need
// before the next ScoreGenes so a trial's score reflects the mutation it
// just applied or undid. On success it leaves the genome VALIDATED, ready
// for ScoreGenes, even when called to unwind a failed mutation back to a
// previously-good sequence.
func (g *Genome) recompile() error {
	for _, rec := range g.Genes {
		gn, err := gene.Compile(rec.Gene.Name, g.Bases, rec.Gene.BaseFirst, rec.Gene.BaseLast, g.CodonTable, rec.Han)
		if err != nil {
			g.guard.transition(StateDead)
			werr := stgerr.Wrap(stgerr.KindCompilation, err)
			g.last.Set(werr)
			return werr
		}
		if err := measure.Measure(gn); err != nil {
			g.guard.transition(StateDead)
			werr := stgerr.Wrap(stgerr.KindValidation, err)
			g.last.Set(werr)
			return werr
		}
		rec.Gene = gn
	}
	g.guard.transition(StateValidated)
	g.last.Set(nil)
	return nil
}

// CompileGene compiles the base range [first,last] against h into a gene
// named name, appending it to Genes, and transitions toward VALIDATED.
func (g *Genome) CompileGene(name int, first, last int, h *han.Han) error {
	g.guard.transition(StateCompiling)
	gn, err := gene.Compile(name, g.Bases, first, last, g.CodonTable, h)
	if err != nil {
		g.guard.transition(StateDead)
		werr := stgerr.Wrap(stgerr.KindCompilation, err)
		g.last.Set(werr)
		return werr
	}
	g.guard.transition(StateCompiled)
	g.Genes = append(g.Genes, &GeneRecord{Gene: gn, Han: h})
	return g.validateGene(gn)
}

func (g *Genome) validateGene(gn *gene.Gene) error {
	g.guard.transition(StateValidating)
	if err := measure.Measure(gn); err != nil {
		g.guard.transition(StateDead)
		werr := stgerr.Wrap(stgerr.KindValidation, err)
		g.last.Set(werr)
		return werr
	}
	g.guard.transition(StateValidated)
	return nil
}

// ScoreGenes classifies overlaps and aggregates scores for every compiled
// gene, then aggregates the genome-level Score as the product of its
// genes' scores, moving VALIDATED -> SCORING -> SCORED -> ALIVE.
func (g *Genome) ScoreGenes() error {
	if g.State() != StateValidated && g.State() != StateScored && g.State() != StateAlive {
		err := fmt.Errorf("genome: ScoreGenes invalid from state %s", g.State())
		g.last.Set(err)
		return stgerr.Wrap(stgerr.KindRuntime, err)
	}
	g.guard.transition(StateScoring)

	total := 1.0
	scores := make(map[int]float64, len(g.Genes))
	for _, rec := range g.Genes {
		score.ApplyMeasurements(rec.Gene)
		detected := overlap.Detect(rec.Gene)
		c := score.Classify(detected, rec.Han)
		score.Apply(rec.Gene, c)
		gs := score.Aggregate(rec.Gene, g.Weights)
		scores[rec.Gene.Name] = gs
		total *= gs
	}
	g.Score = total
	g.geneScores = scores

	g.guard.transition(StateScored)
	g.guard.transition(StateAlive)
	g.last.Set(nil)
	return nil
}

// Statistics summarizes the genome's current state for reporting
// (trial history, CLI status output).
type Statistics struct {
	State     State
	GeneCount int
	BaseCount int
	Score     float64
	ModCount  int
}

// GetStatistics returns a snapshot of the genome's current statistics.
func (g *Genome) GetStatistics() Statistics {
	return Statistics{
		State:     g.State(),
		GeneCount: len(g.Genes),
		BaseCount: len(g.Bases),
		Score:     g.Score,
		ModCount:  g.Mods.Len(),
	}
}

// GetTermination reports why the most recent ExecutePlan call stopped:
// "terminate" (a TerminationCondition fired), "trial-count" (trialCount
// trials ran out), or "" if ExecutePlan has never run.
func (g *Genome) GetTermination() string { return g.termination }

// GetGeneScore returns the per-gene score ScoreGenes last computed for the
// gene named name, and whether that gene exists.
func (g *Genome) GetGeneScore(name int) (float64, bool) {
	s, ok := g.geneScores[name]
	return s, ok
}

// GetScore returns the genome-level score ScoreGenes last computed: the
// product of every gene's score.
func (g *Genome) GetScore() float64 { return g.Score }

// GetFitness returns the genome's fitness, the scalar a trial condition's
// INCREASE/DECREASE/MAINTAIN mode judges. In this engine fitness is the
// genome score directly (spec.md's trivial-identity example: score 1.0 ⇒
// fitness 1.0).
func (g *Genome) GetFitness() float64 { return g.Score }

// GetCost returns the genome's cost: its total codable acid count (summed
// across genes, excluding each gene's trailing STOP) scaled by how far the
// score falls short of 1.0. A perfect score costs nothing regardless of
// size; an imperfect score costs more in a larger genome.
func (g *Genome) GetCost() float64 {
	units := 0
	for _, rec := range g.Genes {
		units += rec.Gene.NonStopAcidCount()
	}
	return float64(units) * (1 - g.Score)
}

// GetTrial returns the number of trials ExecutePlan has kept so far.
func (g *Genome) GetTrial() int { return g.trial }

// GetTrialAttempts returns the number of trials ExecutePlan has run so
// far, kept or rejected.
func (g *Genome) GetTrialAttempts() int { return g.trialAttempts }
