package output

import (
	"fmt"
	"io"

	"github.com/bbpangenome/repsolve/internal/compare"
	"github.com/bbpangenome/repsolve/internal/placement"
)

// WriteCompareSummary prints the category tally table and the
// auto-resolution and override info lines.
func WriteCompareSummary(w io.Writer, tally compare.Tally, autoChromosomeBP int64) {
	fmt.Fprintf(w, "%-25s %6s\n", "Category", "Count")
	fmt.Fprintf(w, "%-25s %6s\n", dashes(25), dashes(6))
	for _, cat := range compare.SummaryOrder {
		if n := tally.Categories[cat]; n > 0 {
			fmt.Fprintf(w, "  %-23s %6d\n", cat, n)
		}
	}
	fmt.Fprintf(w, "%-25s %6s\n", dashes(25), dashes(6))
	fmt.Fprintf(w, "  %-23s %6d\n", "TOTAL", tally.Total())

	if tally.AutoResolved > 0 {
		fmt.Fprintf(w, "\n%d fragments auto-resolved via chromosome heuristic (>=%dbp)\n",
			tally.AutoResolved, autoChromosomeBP)
	}
	if tally.Overridden > 0 {
		fmt.Fprintf(w, "%d fragments resolved via manual overrides\n", tally.Overridden)
	}
}

// maxReviewLines caps the inline review listing; the full set is always
// in the comparison table.
const maxReviewLines = 20

// WriteReviewWarnings enumerates the fragments needing manual review so
// they are never silently dropped. Returns the flagged subset.
func WriteReviewWarnings(w io.Writer, results []compare.Result) []compare.Result {
	var flagged []compare.Result
	for _, r := range results {
		if r.NeedsReview() {
			flagged = append(flagged, r)
		}
	}
	if len(flagged) == 0 {
		return nil
	}

	fmt.Fprintf(w, "\n%d fragments need manual review:\n", len(flagged))
	for i, r := range flagged {
		if i == maxReviewLines {
			fmt.Fprintf(w, "  ... and %d more (see comparison table)\n", len(flagged)-maxReviewLines)
			break
		}
		fmt.Fprintf(w, "  %s/%s (%dbp): %q -> %q [%s]\n",
			r.Key.AssemblyID, r.Key.ContigID, r.Length, r.OldCall, r.NewCall, r.Category)
	}
	return flagged
}

// WritePlacementSummary prints run totals for list generation.
func WritePlacementSummary(w io.Writer, sum placement.Summary, chromFiles, unlocFiles int) {
	fmt.Fprintf(w, "Generated %d chromosome list files\n", chromFiles)
	fmt.Fprintf(w, "Generated %d unlocalised list files\n", unlocFiles)
	fmt.Fprintf(w, "Placed replicons (chromosome list): %d\n", sum.Placed)
	fmt.Fprintf(w, "Unlocalised fragments: %d\n", sum.Unlocalised)
	fmt.Fprintf(w, "Unplaced/unclassified: %d\n", sum.Unplaced)
	if len(sum.EmptyAssemblies) > 0 {
		fmt.Fprintf(w, "\n%d assemblies with NO entries (will remain contig-level):\n",
			len(sum.EmptyAssemblies))
		for _, id := range sum.EmptyAssemblies {
			fmt.Fprintf(w, "  %s\n", id)
		}
	}
}

func dashes(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}
