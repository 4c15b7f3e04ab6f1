package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bbpangenome/repsolve/internal/placement"
)

// WriteLists writes the chromosome list and, when fragment entries
// exist, the unlocalised list for one assembly. Neither file has a
// header. An assembly with no primary entries produces no files and
// stays at contig-level granularity. Returns the written paths.
func WriteLists(dir string, p placement.Placement) (chromPath, unlocPath string, err error) {
	if len(p.Primary) == 0 {
		return "", "", nil
	}

	chromPath = filepath.Join(dir, p.AssemblyID+".chromosome_list.tsv")
	chrom, err := os.Create(chromPath)
	if err != nil {
		return "", "", fmt.Errorf("create chromosome list: %w", err)
	}
	defer chrom.Close()

	for _, entry := range p.Primary {
		if _, err := fmt.Fprintf(chrom, "%s\t%s\t%s\n",
			entry.ObjectName, entry.Name, entry.TopologyType); err != nil {
			return "", "", fmt.Errorf("write chromosome list: %w", err)
		}
	}

	if len(p.Fragments) == 0 {
		return chromPath, "", nil
	}

	unlocPath = filepath.Join(dir, p.AssemblyID+".unlocalised_list.tsv")
	unloc, err := os.Create(unlocPath)
	if err != nil {
		return "", "", fmt.Errorf("create unlocalised list: %w", err)
	}
	defer unloc.Close()

	for _, entry := range p.Fragments {
		if _, err := fmt.Fprintf(unloc, "%s\t%s\n", entry.ObjectName, entry.Name); err != nil {
			return "", "", fmt.Errorf("write unlocalised list: %w", err)
		}
	}
	return chromPath, unlocPath, nil
}
