package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbpangenome/repsolve/internal/table"
)

func key(assembly, contig string) table.FragmentKey {
	return table.FragmentKey{AssemblyID: assembly, ContigID: contig}
}

func TestResolve_SingleSource(t *testing.T) {
	c := New(Config{})

	r := c.Resolve(key("A1", "c1"), "lp54", true, "", false, 0)
	assert.Equal(t, OldOnly, r.Category)
	assert.Equal(t, "lp54", r.Resolved)

	r = c.Resolve(key("A1", "c2"), "", false, "cp26", true, 0)
	assert.Equal(t, NewOnly, r.Category)
	assert.Equal(t, "cp26", r.Resolved)
}

func TestResolve_AutoChromosome_LargeFragment(t *testing.T) {
	c := New(Config{AutoChromosomeBP: 100000})

	r := c.Resolve(key("A1", "c1"), "plasmid_x", true, "chromosome", true, 200000)
	assert.Equal(t, AutoChromosome, r.Category)
	assert.Equal(t, "chromosome", r.Resolved)
	assert.True(t, r.AutoResolved)
}

func TestResolve_AutoChromosome_SmallFragmentReverse(t *testing.T) {
	c := New(Config{AutoChromosomeBP: 100000})

	// Old says chromosome, new has a specific plasmid call and the
	// fragment is small: trust the new call.
	r := c.Resolve(key("A1", "c1"), "chromosome", true, "lp28-4", true, 30000)
	assert.Equal(t, AutoChromosome, r.Category)
	assert.Equal(t, "lp28-4", r.Resolved)
}

func TestResolve_AutoChromosome_Disabled(t *testing.T) {
	c := New(Config{})

	r := c.Resolve(key("A1", "c1"), "plasmid_x", true, "chromosome", true, 200000)
	assert.Equal(t, Different, r.Category)
	assert.Equal(t, "plasmid_x", r.Resolved)
	assert.False(t, r.AutoResolved)
}

func TestResolve_AutoChromosome_BelowThreshold(t *testing.T) {
	c := New(Config{AutoChromosomeBP: 100000})

	r := c.Resolve(key("A1", "c1"), "plasmid_x", true, "chromosome", true, 50000)
	assert.Equal(t, Different, r.Category)
}

func TestResolve_AutoChromosome_OnlyDifferent(t *testing.T) {
	c := New(Config{AutoChromosomeBP: 100000})

	// An exact chromosome/chromosome match is untouched by the heuristic.
	r := c.Resolve(key("A1", "c1"), "chromosome", true, "chromosome", true, 900000)
	assert.Equal(t, ExactMatch, r.Category)
}

func TestResolve_OverrideWins(t *testing.T) {
	overrides := map[table.FragmentKey]string{
		key("A1", "c1"): "lp36",
	}
	c := New(Config{AutoChromosomeBP: 100000, Overrides: overrides})

	// Override beats the auto-chromosome heuristic.
	r := c.Resolve(key("A1", "c1"), "plasmid_x", true, "chromosome", true, 200000)
	assert.Equal(t, ManualOverride, r.Category)
	assert.Equal(t, "lp36", r.Resolved)
	assert.True(t, r.Overridden)
}

func TestResolve_OverrideKeepsExactMatch(t *testing.T) {
	overrides := map[table.FragmentKey]string{
		key("A1", "c1"): "lp36",
	}
	c := New(Config{Overrides: overrides})

	r := c.Resolve(key("A1", "c1"), "lp54", true, "lp54", true, 0)
	assert.Equal(t, ExactMatch, r.Category)
	assert.Equal(t, "lp36", r.Resolved, "resolution is still forced")
	assert.False(t, r.Overridden)
}

func TestCompareAll(t *testing.T) {
	old := &table.CallSet{
		Calls: map[table.FragmentKey]string{
			key("A1", "c1"): "lp54",
			key("A1", "c2"): "lp28-4",
			key("A2", "c1"): "cp26",
		},
		Lengths: map[table.FragmentKey]int64{},
	}
	new := &table.CallSet{
		Calls: map[table.FragmentKey]string{
			key("A1", "c1"): "lp54",
			key("A1", "c3"): "lp17",
			key("A2", "c1"): "cp26",
		},
		Lengths: map[table.FragmentKey]int64{
			key("A1", "c1"): 1000,
		},
	}

	c := New(Config{})
	results := c.CompareAll(old, new, 4)
	require.Len(t, results, 4)

	// Sorted by assembly then contig.
	assert.Equal(t, key("A1", "c1"), results[0].Key)
	assert.Equal(t, key("A1", "c2"), results[1].Key)
	assert.Equal(t, key("A1", "c3"), results[2].Key)
	assert.Equal(t, key("A2", "c1"), results[3].Key)

	assert.Equal(t, ExactMatch, results[0].Category)
	assert.Equal(t, int64(1000), results[0].Length)
	assert.Equal(t, OldOnly, results[1].Category)
	assert.Equal(t, NewOnly, results[2].Category)
	assert.Equal(t, ExactMatch, results[3].Category)
}

func TestNeedsReview(t *testing.T) {
	assert.True(t, Result{Category: Different}.NeedsReview())
	assert.True(t, Result{Category: PartialOverlap}.NeedsReview())
	assert.True(t, Result{Category: NewUnclassified}.NeedsReview())
	assert.False(t, Result{Category: ExactMatch}.NeedsReview())
	assert.False(t, Result{Category: AutoChromosome}.NeedsReview())
	assert.False(t, Result{Category: OldOnly}.NeedsReview())
}
