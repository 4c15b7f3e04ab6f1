package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/bbpangenome/repsolve/internal/compare"
	"github.com/bbpangenome/repsolve/internal/output"
	"github.com/bbpangenome/repsolve/internal/table"
)

func runCompare(args []string, logger *zap.Logger) int {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)

	var (
		oldPath        string
		newPath        string
		oldAssemblyCol string
		oldContigCol   string
		oldCallCol     string
		newAssemblyCol string
		newContigCol   string
		newCallCol     string
		outputPath     string
		resolvedPath   string
		overridesPath  string
		autoChromBP    int64
		reviewPath     string
		allHitsDir     string
		minReviewBP    int64
		workers        int
	)

	fs.StringVar(&oldPath, "old", "", "Old (published) calls table")
	fs.StringVar(&newPath, "new", "", "New calls table")
	fs.StringVar(&oldAssemblyCol, "old-assembly-col", table.ColAssemblyID, "Assembly ID column in old table")
	fs.StringVar(&oldContigCol, "old-contig-col", table.ColContigID, "Contig ID column in old table")
	fs.StringVar(&oldCallCol, "old-call-col", table.ColFinalCall, "Call column in old table")
	fs.StringVar(&newAssemblyCol, "new-assembly-col", table.ColAssemblyID, "Assembly ID column in new table")
	fs.StringVar(&newContigCol, "new-contig-col", table.ColContigID, "Contig ID column in new table")
	fs.StringVar(&newCallCol, "new-call-col", table.ColFinalCall, "Call column in new table")
	fs.StringVar(&outputPath, "output", "comparison.tsv", "Output comparison table")
	fs.StringVar(&resolvedPath, "resolved", "", "Output resolved/homogenized calls only (optional)")
	fs.StringVar(&overridesPath, "overrides", "", "Manual override table (assembly_id, contig_id, resolved_call)")
	fs.Int64Var(&autoChromBP, "auto-chromosome-bp", int64Default("compare.auto_chromosome_bp", 0),
		"Auto-resolve chromosome conflicts at this length threshold (0 = disabled)")
	fs.StringVar(&reviewPath, "review", "", "Output detailed review file for flagged fragments (optional)")
	fs.StringVar(&allHitsDir, "all-hits-dir", "", "Classifier output dir with {db}/tables/*_all.tsv (required for --review)")
	fs.Int64Var(&minReviewBP, "min-review-bp", 0, "Only include fragments >= this length in the review file")
	fs.IntVar(&workers, "workers", 0, "Worker count for the parallel phase (0 = NumCPU)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Compare old and new classifier calls, categorize the differences and
produce a homogenized call table.

Usage:
  repsolve compare [options] --old old.tsv --new new.tsv

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if oldPath == "" || newPath == "" {
		fmt.Fprintf(os.Stderr, "Error: --old and --new are required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if reviewPath != "" && allHitsDir == "" {
		fmt.Fprintf(os.Stderr, "Error: --review requires --all-hits-dir\n")
		return ExitUsage
	}

	oldCalls, err := table.ReadCalls(oldPath, table.CallColumns{
		AssemblyCol: oldAssemblyCol, ContigCol: oldContigCol, CallCol: oldCallCol,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	newCalls, err := table.ReadCalls(newPath, table.CallColumns{
		AssemblyCol: newAssemblyCol, ContigCol: newContigCol, CallCol: newCallCol,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	overrides := map[table.FragmentKey]string{}
	if overridesPath != "" {
		overrides, err = table.LoadOverrides(overridesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		fmt.Printf("Loaded %d manual overrides from %s\n", len(overrides), overridesPath)
	}

	fmt.Printf("Old calls: %d fragments from %s\n", len(oldCalls.Calls), oldPath)
	fmt.Printf("New calls: %d fragments from %s\n", len(newCalls.Calls), newPath)

	logger.Info("comparing calls",
		zap.Int("old", len(oldCalls.Calls)),
		zap.Int("new", len(newCalls.Calls)),
		zap.Int64("auto_chromosome_bp", autoChromBP))

	comparator := compare.New(compare.Config{
		AutoChromosomeBP: autoChromBP,
		Overrides:        overrides,
	})
	comparator.SetLogger(logger)

	results := comparator.CompareAll(oldCalls, newCalls, workers)
	tally := compare.TallyResults(results)

	out, err := os.Create(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		return ExitError
	}
	defer out.Close()

	cw := output.NewComparisonWriter(out)
	if err := cw.WriteHeader(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing header: %v\n", err)
		return ExitError
	}
	for _, r := range results {
		if err := cw.Write(r); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing comparison: %v\n", err)
			return ExitError
		}
	}
	if err := cw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error flushing output: %v\n", err)
		return ExitError
	}

	if resolvedPath != "" {
		if err := writeResolved(resolvedPath, results); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
	}

	fmt.Println()
	output.WriteCompareSummary(os.Stdout, tally, autoChromBP)
	flagged := output.WriteReviewWarnings(os.Stdout, results)

	if reviewPath != "" && len(flagged) > 0 {
		n, err := output.WriteReview(reviewPath, allHitsDir, flagged, minReviewBP)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing review: %v\n", err)
			return ExitError
		}
		if n > 0 {
			fmt.Printf("Wrote detailed review (%d fragments) -> %s\n", n, reviewPath)
		} else {
			fmt.Printf("No fragments passed the --min-review-bp filter\n")
		}
	}

	fmt.Printf("\nWrote comparison -> %s\n", outputPath)
	if resolvedPath != "" {
		fmt.Printf("Wrote resolved calls -> %s\n", resolvedPath)
	}
	return ExitSuccess
}

func writeResolved(path string, results []compare.Result) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create resolved file: %w", err)
	}
	defer out.Close()

	rw := output.NewResolvedWriter(out)
	if err := rw.WriteHeader(); err != nil {
		return err
	}
	for _, r := range results {
		if err := rw.Write(r); err != nil {
			return err
		}
	}
	return rw.Flush()
}
