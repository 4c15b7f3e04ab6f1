package table

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHitsTable(t *testing.T, root, db, name, content string) {
	t.Helper()
	dir := filepath.Join(root, db, "tables")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestDiscoverHitsDirs(t *testing.T) {
	root := t.TempDir()
	writeHitsTable(t, root, "plsdb", "A1_all.tsv", "x\n")
	writeHitsTable(t, root, "borrelia", "A1_all.tsv", "x\n")
	// A db dir without any *_all.tsv is ignored.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty", "tables"), 0755))

	dbs, err := DiscoverHitsDirs(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"borrelia", "plsdb"}, dbs.Names())
}

func TestLoadAssemblyHits(t *testing.T) {
	root := t.TempDir()
	writeHitsTable(t, root, "plsdb", "A1_all.tsv", "line1\nline2\n")
	tablesDir := filepath.Join(root, "plsdb", "tables")

	lines, err := LoadAssemblyHits(tablesDir, "A1")
	require.NoError(t, err)
	assert.Equal(t, []string{"line1", "line2"}, lines)
}

func TestLoadAssemblyHits_GlobFallback(t *testing.T) {
	root := t.TempDir()
	writeHitsTable(t, root, "plsdb", "A1.variant_all.tsv", "line1\n")
	tablesDir := filepath.Join(root, "plsdb", "tables")

	lines, err := LoadAssemblyHits(tablesDir, "A1")
	require.NoError(t, err)
	assert.Equal(t, []string{"line1"}, lines)
}

func TestLoadAssemblyHits_Missing(t *testing.T) {
	lines, err := LoadAssemblyHits(t.TempDir(), "A1")
	require.NoError(t, err)
	assert.Nil(t, lines)
}

func TestGrepContig(t *testing.T) {
	lines := []string{
		"A1\tc1\t54000\tlp54_ref\t99.0",
		"A1\tc1\t54000\t\t",
		"A1\tc2\t1200\tcp26_ref\t98.0",
		"short\tline",
	}

	matches := GrepContig(lines, "c1")
	require.Len(t, matches, 1, "placeholder rows with an empty hit field are dropped")
	assert.Contains(t, matches[0], "lp54_ref")
}
