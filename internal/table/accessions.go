package table

import (
	"fmt"
	"regexp"
	"strings"
)

// accessionRe matches NCBI accession numbers embedded in contig
// descriptions, e.g. "NZ_CP019844.1 Borreliella burgdorferi ...".
// The capture group is the core accession without the NZ_/NC_ prefix.
var accessionRe = regexp.MustCompile(`([A-Z]{2}_)?([A-Z]{2}[0-9]+\.[0-9]+)`)

// AccessionShaped reports whether a replicon token looks like a
// lowercased NCBI accession (two letters, six digits, version).
var AccessionShaped = regexp.MustCompile(`^[a-z]{2}[0-9]{6}\.[0-9]+$`).MatchString

// LoadAccessionLookup builds a map from lowercased NCBI accessions to
// standardized replicon names out of a best-hits table. The first
// mapping per accession wins.
func LoadAccessionLookup(path string) (map[string]string, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if err := r.Require(ColContigID, ColPlasmidName); err != nil {
		return nil, err
	}

	lookup := make(map[string]string)
	for {
		row, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("read best hits: %w", err)
		}
		if !row.Valid() {
			break
		}
		contigID := row.Get(ColContigID)
		name := row.Get(ColPlasmidName)
		if contigID == "" || name == "" {
			continue
		}
		m := accessionRe.FindStringSubmatch(contigID)
		if m == nil {
			continue
		}
		accession := strings.ToLower(m[2])
		if _, seen := lookup[accession]; !seen {
			lookup[accession] = strings.ToLower(name)
		}
	}
	return lookup, nil
}
