package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bbpangenome/repsolve/internal/consensus"
)

// ClusterWriter writes the per-cluster replicon annotation table.
type ClusterWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewClusterWriter creates a tab-delimited cluster annotation writer.
func NewClusterWriter(w io.Writer) *ClusterWriter {
	return &ClusterWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"cluster_id",
			"consensus_replicon",
			"top_replicon",
			"replicon_type",
			"top_replicon_type",
			"consensus_fraction",
			"n_isolates",
			"replicon_detail",
			"top_family",
			"n_families",
			"family_consensus_frac",
			"is_single_family",
			"cross_family_score",
			"family_detail",
		},
	}
}

// WriteHeader writes the header line.
func (cw *ClusterWriter) WriteHeader() error {
	_, err := cw.w.WriteString(strings.Join(cw.columns, "\t") + "\n")
	return err
}

// Write writes one cluster annotation row.
func (cw *ClusterWriter) Write(ann consensus.ClusterAnnotation) error {
	singleFamily := "0"
	if ann.IsSingleFamily {
		singleFamily = "1"
	}
	values := []string{
		ann.ClusterID,
		ann.ConsensusReplicon,
		ann.TopReplicon,
		ann.RepliconType,
		ann.TopRepliconType,
		fmt.Sprintf("%.3f", ann.ConsensusFraction),
		fmt.Sprintf("%d", ann.NIsolates),
		ann.Result.Detail(),
		ann.TopFamily,
		fmt.Sprintf("%d", ann.NFamilies),
		fmt.Sprintf("%.3f", ann.FamilyConsensusFrac),
		singleFamily,
		fmt.Sprintf("%.3f", ann.CrossFamilyScore),
		ann.Diversity.Detail(),
	}
	_, err := cw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (cw *ClusterWriter) Flush() error {
	return cw.w.Flush()
}
