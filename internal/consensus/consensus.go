// Package consensus assigns a canonical replicon identity to pangenome
// gene clusters by majority vote over member calls, and scores how much
// a cluster mixes distinct replicon families.
package consensus

import (
	"fmt"
	"strings"

	"github.com/bbpangenome/repsolve/internal/replicon"
)

// Sentinel values for clusters without a usable consensus.
const (
	Unknown       = "unknown"
	Unmatched     = "unmatched"
	MultiReplicon = "multi-replicon"
)

// DefaultThreshold is the vote fraction required to declare a single
// winning call instead of multi-replicon.
const DefaultThreshold = 0.9

// RepliconCount is one replicon's vote count within a cluster.
type RepliconCount struct {
	Replicon string
	Count    int
}

// Result is the consensus assignment for one gene cluster.
type Result struct {
	ConsensusReplicon string
	TopReplicon       string
	ConsensusFraction float64
	NIsolates         int
	// Counts is ordered by count descending; equal counts keep
	// first-encountered order.
	Counts []RepliconCount
}

// Assign computes the majority consensus over the member calls of one
// gene cluster. With no members every output is the unknown sentinel.
// Below the threshold the consensus is multi-replicon.
func Assign(calls []string, threshold float64) Result {
	counts := countOrdered(calls, replicon.Normalize)
	total := len(calls)

	if total == 0 {
		return Result{
			ConsensusReplicon: Unknown,
			TopReplicon:       Unknown,
		}
	}

	top := counts[0]
	fraction := float64(top.Count) / float64(total)
	consensus := top.Replicon
	if fraction < threshold {
		consensus = MultiReplicon
	}

	return Result{
		ConsensusReplicon: consensus,
		TopReplicon:       top.Replicon,
		ConsensusFraction: fraction,
		NIsolates:         total,
		Counts:            counts,
	}
}

// Detail renders the vote breakdown as comma-joined "name(count)" pairs.
func (r Result) Detail() string {
	if len(r.Counts) == 0 {
		return Unknown
	}
	parts := make([]string, len(r.Counts))
	for i, c := range r.Counts {
		parts[i] = fmt.Sprintf("%s(%d)", c.Replicon, c.Count)
	}
	return strings.Join(parts, ",")
}

// countOrdered tallies mapped values keeping first-encountered order for
// ties, then sorts by count descending.
func countOrdered(calls []string, mapTo func(string) string) []RepliconCount {
	index := make(map[string]int)
	var counts []RepliconCount
	for _, call := range calls {
		v := mapTo(call)
		if i, ok := index[v]; ok {
			counts[i].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, RepliconCount{Replicon: v, Count: 1})
	}

	// Insertion sort keeps the first-encountered order among equals.
	for i := 1; i < len(counts); i++ {
		for j := i; j > 0 && counts[j].Count > counts[j-1].Count; j-- {
			counts[j], counts[j-1] = counts[j-1], counts[j]
		}
	}
	return counts
}
