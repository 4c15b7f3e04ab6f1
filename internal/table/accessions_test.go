package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessionShaped(t *testing.T) {
	assert.True(t, AccessionShaped("cp019844.1"))
	assert.True(t, AccessionShaped("ae000783.1"))
	assert.False(t, AccessionShaped("cp26"))
	assert.False(t, AccessionShaped("lp28-4"))
	assert.False(t, AccessionShaped("chromosome"))
	assert.False(t, AccessionShaped("cp019844"), "version suffix is required")
}

func TestLoadAccessionLookup(t *testing.T) {
	path := writeFile(t, "best_hits.tsv",
		"contig_id\tplasmid_name\n"+
			"NZ_CP019844.1 Borreliella burgdorferi chromosome\tChromosome\n"+
			"CP019845.1 plasmid lp54\tlp54\n"+
			"CP019845.1 duplicate\tlp17\n"+
			"no accession here\tcp26\n"+
			"CP019846.1 blank name\t\n")

	lookup, err := LoadAccessionLookup(path)
	require.NoError(t, err)

	assert.Len(t, lookup, 2)
	assert.Equal(t, "chromosome", lookup["cp019844.1"], "NZ_ prefix is stripped, values lowercased")
	assert.Equal(t, "lp54", lookup["cp019845.1"], "first mapping per accession wins")
}
