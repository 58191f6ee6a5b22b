package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/biologicinstitute/stylus/internal/acid"
	"github.com/biologicinstitute/stylus/internal/genome"
	"github.com/biologicinstitute/stylus/internal/han"
	"github.com/biologicinstitute/stylus/internal/history"
	"github.com/biologicinstitute/stylus/internal/logging"
	"github.com/biologicinstitute/stylus/internal/plan"
	"github.com/biologicinstitute/stylus/internal/random"
	"github.com/biologicinstitute/stylus/internal/xmlio"
)

func newRunCmd() *cobra.Command {
	var (
		genomePath  string
		planPath    string
		hanPath     string
		historyPath string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a plan against a genome document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(genomePath, planPath, hanPath, historyPath)
		},
	}

	cmd.Flags().StringVar(&genomePath, "genome", "", "genome document path (required)")
	cmd.Flags().StringVar(&planPath, "plan", "", "plan document path (required)")
	cmd.Flags().StringVar(&hanPath, "han", "", "Han reference glyph document path (required)")
	cmd.Flags().StringVar(&historyPath, "history", "", "DuckDB trial-history file (optional)")
	cmd.MarkFlagRequired("genome")
	cmd.MarkFlagRequired("plan")
	cmd.MarkFlagRequired("han")

	return cmd
}

func runPlan(genomePath, planPath, hanPath, historyPath string) error {
	zlog := logging.Must(verbose)
	defer zlog.Sync()
	log := zlog.Sugar()

	genomeFile, err := os.Open(genomePath)
	if err != nil {
		return fmt.Errorf("open genome document: %w", err)
	}
	defer genomeFile.Close()
	genomeDoc, err := xmlio.ReadGenome(genomeFile)
	if err != nil {
		return fmt.Errorf("read genome document: %w", err)
	}

	planFile, err := os.Open(planPath)
	if err != nil {
		return fmt.Errorf("open plan document: %w", err)
	}
	defer planFile.Close()
	planDoc, err := xmlio.ReadPlan(planFile)
	if err != nil {
		return fmt.Errorf("read plan document: %w", err)
	}

	hanFile, err := os.Open(hanPath)
	if err != nil {
		return fmt.Errorf("open han document: %w", err)
	}
	defer hanFile.Close()
	hanDoc, err := xmlio.ReadHan(hanFile)
	if err != nil {
		return fmt.Errorf("read han document: %w", err)
	}
	h, err := xmlio.ToHan(hanDoc)
	if err != nil {
		return fmt.Errorf("convert han document: %w", err)
	}

	bases := make([]acid.Base, len(genomeDoc.Bases))
	for i := 0; i < len(genomeDoc.Bases); i++ {
		b, ok := acid.BaseIndex(genomeDoc.Bases[i])
		if !ok {
			return fmt.Errorf("genome document: invalid base %q at position %d", genomeDoc.Bases[i], i)
		}
		bases[i] = b
	}

	g := genome.New()
	g.SetLogger(log)
	if err := g.SetGenome(bases); err != nil {
		return fmt.Errorf("set genome: %w", err)
	}
	for _, gd := range genomeDoc.Genes {
		if err := g.CompileGene(gd.Name, gd.BaseFirst, gd.BaseLast, h); err != nil {
			log.Warnw("gene compilation failed", "gene", gd.Name, "error", err)
			return fmt.Errorf("compile gene %d: %w", gd.Name, err)
		}
	}

	var store *history.Store
	if historyPath != "" {
		store, err = history.Open(historyPath)
		if err != nil {
			return fmt.Errorf("open history store: %w", err)
		}
		defer store.Close()
	}

	trialCond := genome.TrialCondition{Mode: modeFromString(planDoc.Condition.Mode), Tolerance: planDoc.Condition.Tolerance}
	rng := random.NewLockstep(planDoc.Seed)
	g.SetUUIDSeeds(rng)
	runUUID := g.UUID

	steps, err := g.ExecutePlan(
		genome.Options{},
		trialCond,
		genome.MaxSteps(planDoc.Steps),
		plan.DefaultSelector(),
		rng,
		0, planDoc.Steps,
		nil, nil,
	)
	if err != nil {
		return fmt.Errorf("execute plan: %w", err)
	}

	for _, s := range steps {
		log.Infow("trial step", "index", s.Index, "before", s.Before, "after", s.After, "kept", s.Kept)
		if store != nil {
			if err := store.Insert(history.Record{RunUUID: runUUID, Step: s.Index, Score: s.After, Kept: s.Kept, ModCount: g.Mods.Len()}); err != nil {
				return fmt.Errorf("record trial: %w", err)
			}
		}
	}

	fmt.Printf("run %s: %d steps, final score %.6f\n", runUUID, len(steps), g.Score)
	return nil
}

func modeFromString(s string) genome.ConditionMode {
	switch s {
	case "decrease":
		return genome.ModeDecrease
	case "maintain":
		return genome.ModeMaintain
	default:
		return genome.ModeIncrease
	}
}
