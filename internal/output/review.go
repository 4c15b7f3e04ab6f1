package output

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/bbpangenome/repsolve/internal/compare"
	"github.com/bbpangenome/repsolve/internal/table"
)

// WriteReview writes a detailed review file for flagged fragments,
// listing every hit each classifier database produced for them.
// Fragments shorter than minBP are skipped when minBP > 0. Returns the
// number of fragments written.
func WriteReview(path, hitsRoot string, flagged []compare.Result, minBP int64) (int, error) {
	dbs, err := table.DiscoverHitsDirs(hitsRoot)
	if err != nil {
		return 0, err
	}
	if len(dbs) == 0 {
		return 0, fmt.Errorf("no database tables found in %s", hitsRoot)
	}

	var selected []compare.Result
	for _, r := range flagged {
		if minBP > 0 && r.Length < minBP {
			continue
		}
		selected = append(selected, r)
	}
	if len(selected) == 0 {
		return 0, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create review file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "# Detailed review of %d fragments needing manual review\n", len(selected))
	fmt.Fprintf(w, "# Databases found: %s\n", strings.Join(dbs.Names(), ", "))
	fmt.Fprintf(w, "# Format: all hits per database for each flagged fragment\n#\n\n")

	// Cache loaded tables; review fragments cluster by assembly.
	type cacheKey struct{ db, assembly string }
	cache := make(map[cacheKey][]string)

	divider := strings.Repeat("=", 100)
	for _, r := range selected {
		fmt.Fprintf(w, "%s\n", divider)
		fmt.Fprintf(w, "### %s / %s\n", r.Key.AssemblyID, r.Key.ContigID)
		fmt.Fprintf(w, "### old=%s  new=%s  category=%s\n", r.OldCall, r.NewCall, r.Category)
		fmt.Fprintf(w, "%s\n\n", divider)

		for _, db := range dbs.Names() {
			ck := cacheKey{db: db, assembly: r.Key.AssemblyID}
			lines, ok := cache[ck]
			if !ok {
				lines, err = table.LoadAssemblyHits(dbs[db], r.Key.AssemblyID)
				if err != nil {
					return 0, err
				}
				cache[ck] = lines
			}

			hits := table.GrepContig(lines, r.Key.ContigID)
			fmt.Fprintf(w, "--- %s (%d hits) ---\n", db, len(hits))
			if len(hits) == 0 {
				fmt.Fprintf(w, "  (no hits)\n\n")
				continue
			}
			if len(lines) > 0 && strings.HasPrefix(lines[0], "assembly_id") {
				fmt.Fprintf(w, "  %s\n", strings.TrimRight(lines[0], "\r\n"))
			}
			for _, hit := range hits {
				fmt.Fprintf(w, "  %s\n", strings.TrimRight(hit, "\r\n"))
			}
			fmt.Fprintf(w, "\n")
		}
		fmt.Fprintf(w, "\n")
	}

	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("flush review file: %w", err)
	}
	return len(selected), nil
}
