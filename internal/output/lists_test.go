package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbpangenome/repsolve/internal/placement"
)

func TestWriteLists(t *testing.T) {
	dir := t.TempDir()
	p := placement.Placement{
		AssemblyID: "asm1",
		Primary: []placement.Entry{
			{ObjectName: "contig_C", Name: "main", TopologyType: "Linear-Chromosome"},
			{ObjectName: "contig_A", Name: "lp54", TopologyType: "Linear-Plasmid"},
		},
		Fragments: []placement.Entry{
			{ObjectName: "contig_B", Name: "lp54"},
		},
	}

	chromPath, unlocPath, err := WriteLists(dir, p)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "asm1.chromosome_list.tsv"), chromPath)
	assert.Equal(t, filepath.Join(dir, "asm1.unlocalised_list.tsv"), unlocPath)

	chrom, err := os.ReadFile(chromPath)
	require.NoError(t, err)
	assert.Equal(t,
		"contig_C\tmain\tLinear-Chromosome\n"+
			"contig_A\tlp54\tLinear-Plasmid\n",
		string(chrom))

	unloc, err := os.ReadFile(unlocPath)
	require.NoError(t, err)
	assert.Equal(t, "contig_B\tlp54\n", string(unloc))
}

func TestWriteLists_NoFragments(t *testing.T) {
	dir := t.TempDir()
	p := placement.Placement{
		AssemblyID: "asm1",
		Primary: []placement.Entry{
			{ObjectName: "c1", Name: "cp26", TopologyType: "Circular-Plasmid"},
		},
	}

	chromPath, unlocPath, err := WriteLists(dir, p)
	require.NoError(t, err)
	assert.NotEmpty(t, chromPath)
	assert.Empty(t, unlocPath)
	assert.NoFileExists(t, filepath.Join(dir, "asm1.unlocalised_list.tsv"))
}

func TestWriteLists_EmptyAssembly(t *testing.T) {
	dir := t.TempDir()

	chromPath, unlocPath, err := WriteLists(dir, placement.Placement{AssemblyID: "asm1", Unplaced: 3})
	require.NoError(t, err)
	assert.Empty(t, chromPath)
	assert.Empty(t, unlocPath)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "assemblies without primary entries produce no files")
}
