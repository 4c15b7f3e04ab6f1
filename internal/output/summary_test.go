package output

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbpangenome/repsolve/internal/compare"
	"github.com/bbpangenome/repsolve/internal/placement"
)

func TestWriteCompareSummary(t *testing.T) {
	tally := compare.NewTally()
	tally.Add(compare.Result{Category: compare.ExactMatch})
	tally.Add(compare.Result{Category: compare.ExactMatch})
	tally.Add(compare.Result{Category: compare.AutoChromosome, AutoResolved: true})
	tally.Add(compare.Result{Category: compare.ManualOverride, Overridden: true})

	var buf bytes.Buffer
	WriteCompareSummary(&buf, tally, 100000)

	out := buf.String()
	assert.Contains(t, out, "exact_match")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "1 fragments auto-resolved via chromosome heuristic (>=100000bp)")
	assert.Contains(t, out, "1 fragments resolved via manual overrides")
	assert.NotContains(t, out, string(compare.Different), "zero-count categories are omitted")
}

func TestWriteReviewWarnings(t *testing.T) {
	results := []compare.Result{
		result("A1", "c1", 100, "lp54", "lp54", compare.ExactMatch, "lp54"),
		result("A1", "c2", 900, "lp17", "cp26", compare.Different, "lp17"),
	}

	var buf bytes.Buffer
	flagged := WriteReviewWarnings(&buf, results)

	require.Len(t, flagged, 1)
	assert.Equal(t, compare.Different, flagged[0].Category)
	assert.Contains(t, buf.String(), "1 fragments need manual review")
	assert.Contains(t, buf.String(), `A1/c2 (900bp): "lp17" -> "cp26" [different]`)
}

func TestWriteReviewWarnings_Truncates(t *testing.T) {
	var results []compare.Result
	for i := 0; i < 30; i++ {
		results = append(results,
			result("A1", fmt.Sprintf("c%d", i), 100, "a", "b", compare.Different, "a"))
	}

	var buf bytes.Buffer
	flagged := WriteReviewWarnings(&buf, results)

	assert.Len(t, flagged, 30)
	assert.Contains(t, buf.String(), "... and 10 more")
	assert.NotContains(t, buf.String(), "c25", "listing stops at the cap")
}

func TestWriteReviewWarnings_NoneFlagged(t *testing.T) {
	var buf bytes.Buffer
	flagged := WriteReviewWarnings(&buf, []compare.Result{
		result("A1", "c1", 100, "lp54", "lp54", compare.ExactMatch, "lp54"),
	})
	assert.Nil(t, flagged)
	assert.Empty(t, buf.String())
}

func TestWritePlacementSummary(t *testing.T) {
	sum := placement.Summary{
		Placed:          5,
		Unlocalised:     2,
		Unplaced:        1,
		EmptyAssemblies: []string{"asm9"},
	}

	var buf bytes.Buffer
	WritePlacementSummary(&buf, sum, 3, 1)

	out := buf.String()
	assert.Contains(t, out, "Generated 3 chromosome list files")
	assert.Contains(t, out, "Generated 1 unlocalised list files")
	assert.Contains(t, out, "Placed replicons (chromosome list): 5")
	assert.Contains(t, out, "1 assemblies with NO entries")
	assert.Contains(t, out, "asm9")
}
