package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/bbpangenome/repsolve/internal/output"
	"github.com/bbpangenome/repsolve/internal/placement"
	"github.com/bbpangenome/repsolve/internal/table"
)

func runLists(args []string, logger *zap.Logger) int {
	fs := flag.NewFlagSet("lists", flag.ExitOnError)

	var (
		classifierPath string
		outputDir      string
		mode           string
		refCov         float64
		queryCov       float64
		identity       float64
		callCol        string
		dryRun         bool
		workers        int
	)

	fs.StringVar(&classifierPath, "classifier", "", "Classifier output table with alignment stats")
	fs.StringVar(&outputDir, "output-dir", "", "Output directory for list files")
	fs.StringVar(&mode, "mode", string(placement.ModeComplete),
		"'complete' = strict completeness thresholds; 'classified' = longest fragment per replicon")
	fs.Float64Var(&refCov, "ref-cov", floatDefault("lists.ref_cov", placement.DefaultRefCov),
		"Min reference coverage (complete mode only)")
	fs.Float64Var(&queryCov, "query-cov", floatDefault("lists.query_cov", placement.DefaultQueryCov),
		"Min query coverage (complete mode only)")
	fs.Float64Var(&identity, "identity", floatDefault("lists.identity", placement.DefaultIdentity),
		"Min identity (complete mode only)")
	fs.StringVar(&callCol, "call-col", table.ColPlasmidName, "Column name for the replicon call")
	fs.BoolVar(&dryRun, "dry-run", false, "Print what would be generated without writing files")
	fs.IntVar(&workers, "workers", 0, "Worker count for the parallel phase (0 = NumCPU)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Generate per-assembly chromosome list and unlocalised list files.

Usage:
  repsolve lists [options] --classifier calls.tsv --output-dir lists/

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if classifierPath == "" || (outputDir == "" && !dryRun) {
		fmt.Fprintf(os.Stderr, "Error: --classifier and --output-dir are required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if mode != string(placement.ModeComplete) && mode != string(placement.ModeClassified) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q (use 'complete' or 'classified')\n", mode)
		return ExitUsage
	}

	records, err := table.ReadFragments(classifierPath, table.CallColumns{CallCol: callCol})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	fmt.Printf("Loaded %d rows from %s\n", len(records), classifierPath)
	fmt.Printf("Mode: %s\n", mode)
	if mode == string(placement.ModeComplete) {
		fmt.Printf("Thresholds: ref_cov=%.0f%%, query_cov=%.0f%%, identity=%.0f%%\n",
			refCov*100, queryCov*100, identity*100)
	}

	logger.Info("placing fragments",
		zap.Int("rows", len(records)),
		zap.String("mode", mode))

	selector := placement.New(placement.Config{
		Mode:     placement.Mode(mode),
		RefCov:   refCov,
		QueryCov: queryCov,
		Identity: identity,
	})
	selector.SetLogger(logger)

	placements := selector.PlaceAll(records, workers)
	fmt.Printf("Found %d assemblies\n\n", len(placements))

	if !dryRun {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output dir: %v\n", err)
			return ExitError
		}
	}

	chromFiles := 0
	unlocFiles := 0
	for _, p := range placements {
		if len(p.Primary) == 0 {
			continue
		}

		if dryRun {
			fmt.Printf("  [DRY RUN] %s: %d placed, %d unlocalised\n",
				p.AssemblyID, len(p.Primary), len(p.Fragments))
			for _, e := range p.Primary {
				fmt.Printf("    [CHROM] %s\t%s\t%s\n", e.ObjectName, e.Name, e.TopologyType)
			}
			for _, e := range p.Fragments {
				fmt.Printf("    [UNLOC] %s\t%s\n", e.ObjectName, e.Name)
			}
			continue
		}

		chromPath, unlocPath, err := output.WriteLists(outputDir, p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		if chromPath != "" {
			chromFiles++
		}
		if unlocPath != "" {
			unlocFiles++
		}
		fmt.Printf("  [OK] %s: %d placed, %d unlocalised\n",
			p.AssemblyID, len(p.Primary), len(p.Fragments))
	}

	fmt.Println()
	output.WritePlacementSummary(os.Stdout, placement.Summarize(placements), chromFiles, unlocFiles)
	return ExitSuccess
}
