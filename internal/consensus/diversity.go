package consensus

import (
	"fmt"
	"math"
	"strings"

	"github.com/bbpangenome/repsolve/internal/replicon"
)

// Diversity describes family-level mixing within one gene cluster.
// Grouping by family separates true inter-replicon movement from
// within-family variant noise (lp28-1 vs lp28-4 is the same family).
type Diversity struct {
	// Counts is ordered by count descending, first-encountered on ties.
	Counts              []RepliconCount
	NFamilies           int
	TopFamily           string
	TopFamilyCount      int
	FamilyConsensusFrac float64
	IsSingleFamily      bool
	// CrossFamilyScore is the Shannon entropy of the family frequency
	// distribution normalized by log2(NFamilies): 0 for a single
	// family, 1 for a uniform split across families.
	CrossFamilyScore float64
}

// FamilyDiversity groups the member calls of one cluster by replicon
// family and scores the cross-family admixture.
func FamilyDiversity(calls []string) Diversity {
	if len(calls) == 0 {
		return Diversity{TopFamily: Unknown, IsSingleFamily: true}
	}

	counts := countOrdered(calls, replicon.FamilyOf)
	total := len(calls)
	n := len(counts)
	top := counts[0]

	d := Diversity{
		Counts:              counts,
		NFamilies:           n,
		TopFamily:           top.Replicon,
		TopFamilyCount:      top.Count,
		FamilyConsensusFrac: float64(top.Count) / float64(total),
		IsSingleFamily:      n <= 1,
	}

	if n > 1 {
		entropy := 0.0
		for _, c := range counts {
			p := float64(c.Count) / float64(total)
			entropy -= p * math.Log2(p)
		}
		d.CrossFamilyScore = entropy / math.Log2(float64(n))
	}
	return d
}

// Detail renders the family breakdown as comma-joined "family(count)"
// pairs.
func (d Diversity) Detail() string {
	parts := make([]string, len(d.Counts))
	for i, c := range d.Counts {
		parts[i] = fmt.Sprintf("%s(%d)", c.Replicon, c.Count)
	}
	return strings.Join(parts, ",")
}
