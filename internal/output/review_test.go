package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbpangenome/repsolve/internal/compare"
)

func writeHits(t *testing.T, root, db, assembly, content string) {
	t.Helper()
	dir := filepath.Join(root, db, "tables")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, assembly+"_all.tsv"), []byte(content), 0644))
}

func TestWriteReview(t *testing.T) {
	root := t.TempDir()
	writeHits(t, root, "borrelia", "A1",
		"assembly_id\tcontig_id\tlen\thit\tidentity\n"+
			"A1\tc2\t900\tlp17_ref\t97.0\n"+
			"A1\tc2\t900\t\t\n")
	writeHits(t, root, "plsdb", "A1", "A1\tc9\t100\tother_ref\t90.0\n")

	flagged := []compare.Result{
		result("A1", "c2", 900, "lp17", "cp26", compare.Different, "lp17"),
	}

	path := filepath.Join(t.TempDir(), "review.txt")
	n, err := WriteReview(path, root, flagged, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(content)

	assert.Contains(t, out, "### A1 / c2")
	assert.Contains(t, out, "old=lp17  new=cp26  category=different")
	assert.Contains(t, out, "--- borrelia (1 hits) ---")
	assert.Contains(t, out, "lp17_ref")
	assert.Contains(t, out, "--- plsdb (0 hits) ---")
	assert.Contains(t, out, "(no hits)")
	// The header line is echoed above real hits.
	assert.Contains(t, out, "assembly_id\tcontig_id\tlen\thit\tidentity")
}

func TestWriteReview_MinBPFilter(t *testing.T) {
	root := t.TempDir()
	writeHits(t, root, "borrelia", "A1", "A1\tc1\t100\tref\t90.0\n")

	flagged := []compare.Result{
		result("A1", "c1", 500, "a", "b", compare.Different, "a"),
	}

	path := filepath.Join(t.TempDir(), "review.txt")
	n, err := WriteReview(path, root, flagged, 1000)
	require.NoError(t, err)
	assert.Zero(t, n, "fragments below the size floor are skipped")
	assert.NoFileExists(t, path)
}

func TestWriteReview_NoDatabases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "review.txt")
	_, err := WriteReview(path, t.TempDir(), nil, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no database tables")
}
