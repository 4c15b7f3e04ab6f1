package consensus

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/bbpangenome/repsolve/internal/replicon"
	"github.com/bbpangenome/repsolve/internal/table"
)

// ScaffoldKey identifies a scaffold within the clustering ID space.
type ScaffoldKey struct {
	IsolateIdx  string
	ScaffoldIdx string
}

// Cluster is one gene cluster with its member gene IDs
// (isolateIdx_scaffoldIdx_geneIdx).
type Cluster struct {
	ID      string
	GeneIDs []string
}

// ClusterAnnotation is the full replicon annotation of one gene cluster.
type ClusterAnnotation struct {
	ClusterID string
	Result
	RepliconType    string
	TopRepliconType string
	Diversity
	Matched bool
}

// BuildScaffoldLookup maps (isolateIdx, scaffoldIdx) keys from a
// gene-data table to replicon names parsed out of the scaffold names.
// Accession-shaped replicons are resolved through the accession lookup
// when one is provided. The first mapping per key wins.
func BuildScaffoldLookup(path string, accessions map[string]string) (map[ScaffoldKey]string, error) {
	r, err := table.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if err := r.Require("scaffold_name", "clustering_id"); err != nil {
		return nil, err
	}

	lookup := make(map[ScaffoldKey]string)
	for {
		row, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("read gene data: %w", err)
		}
		if !row.Valid() {
			break
		}
		scaffold := row.Get("scaffold_name")
		clusteringID := row.Get("clustering_id")
		if scaffold == "" || clusteringID == "" {
			continue
		}

		parts := strings.Split(clusteringID, "_")
		if len(parts) < 3 {
			continue
		}
		key := ScaffoldKey{IsolateIdx: parts[0], ScaffoldIdx: parts[1]}
		if _, seen := lookup[key]; !seen {
			lookup[key] = ParseScaffoldReplicon(scaffold, accessions)
		}
	}
	return lookup, nil
}

// ParseScaffoldReplicon extracts the replicon identity from a scaffold
// name of the form ISOLATE_REPLICON_contig_N:
//
//	B331P_chromosome_contig_1 -> chromosome
//	B331P_cp32-3_contig_1     -> cp32-3
//
// Replicons that look like NCBI accessions (cp019844.1) are resolved
// through the accession lookup when possible.
func ParseScaffoldReplicon(scaffold string, accessions map[string]string) string {
	parts := strings.Split(scaffold, "_")

	contigIdx := -1
	for i, p := range parts {
		if strings.EqualFold(p, "contig") {
			contigIdx = i
			break
		}
	}

	var name string
	switch {
	case contigIdx > 1:
		name = strings.ToLower(strings.Join(parts[1:contigIdx], "_"))
	case contigIdx >= 0:
		return Unknown
	case len(parts) > 1:
		name = strings.ToLower(strings.Join(parts[1:], "_"))
	default:
		return Unknown
	}

	if table.AccessionShaped(name) {
		if resolved, ok := accessions[name]; ok {
			return resolved
		}
	}
	return name
}

// ReadClusters loads a cluster membership table with columns cluster_id
// and gene_ids (semicolon-separated clustering IDs).
func ReadClusters(path string) ([]Cluster, error) {
	r, err := table.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if err := r.Require("cluster_id", "gene_ids"); err != nil {
		return nil, err
	}

	var clusters []Cluster
	for {
		row, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("read clusters: %w", err)
		}
		if !row.Valid() {
			break
		}
		id := row.Get("cluster_id")
		if id == "" {
			continue
		}
		var geneIDs []string
		for _, gid := range strings.Split(row.Get("gene_ids"), ";") {
			gid = strings.TrimSpace(gid)
			if gid != "" {
				geneIDs = append(geneIDs, gid)
			}
		}
		clusters = append(clusters, Cluster{ID: id, GeneIDs: geneIDs})
	}
	return clusters, nil
}

// Annotator assigns consensus replicons to gene clusters.
type Annotator struct {
	scaffolds map[ScaffoldKey]string
	threshold float64
	logger    *zap.Logger
}

// NewAnnotator creates an annotator over a scaffold lookup.
func NewAnnotator(scaffolds map[ScaffoldKey]string, threshold float64) *Annotator {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Annotator{
		scaffolds: scaffolds,
		threshold: threshold,
		logger:    zap.NewNop(),
	}
}

// SetLogger sets the logger for per-cluster debug messages.
func (a *Annotator) SetLogger(l *zap.Logger) {
	a.logger = l
}

// Annotate resolves one cluster's member gene IDs to replicons and
// computes its consensus and family diversity. Members whose scaffold
// index is "refound" carry no placement evidence and are skipped. A
// cluster with no resolvable members is annotated with the unmatched
// sentinel.
func (a *Annotator) Annotate(c Cluster) ClusterAnnotation {
	var calls []string
	for _, gid := range c.GeneIDs {
		parts := strings.Split(strings.TrimSpace(gid), "_")
		if len(parts) < 3 {
			continue
		}
		if parts[1] == "refound" {
			continue
		}
		key := ScaffoldKey{IsolateIdx: parts[0], ScaffoldIdx: parts[1]}
		if rep, ok := a.scaffolds[key]; ok {
			calls = append(calls, rep)
		}
	}

	if len(calls) == 0 {
		return ClusterAnnotation{
			ClusterID: c.ID,
			Result: Result{
				ConsensusReplicon: Unmatched,
				TopReplicon:       Unmatched,
			},
			RepliconType:    Unmatched,
			TopRepliconType: Unmatched,
			Diversity:       Diversity{TopFamily: Unmatched, IsSingleFamily: true},
		}
	}

	result := Assign(calls, a.threshold)
	diversity := FamilyDiversity(calls)

	a.logger.Debug("annotated cluster",
		zap.String("cluster", c.ID),
		zap.String("consensus", result.ConsensusReplicon),
		zap.Float64("fraction", result.ConsensusFraction),
		zap.Int("n_families", diversity.NFamilies),
		zap.Float64("cross_family_score", diversity.CrossFamilyScore))

	return ClusterAnnotation{
		ClusterID:       c.ID,
		Result:          result,
		RepliconType:    replicon.ClassifyType(result.ConsensusReplicon),
		TopRepliconType: replicon.ClassifyType(result.TopReplicon),
		Diversity:       diversity,
		Matched:         true,
	}
}

// AnnotateAll annotates clusters in parallel. Clusters are independent,
// so the slice is mapped over a worker pool; output order matches input
// order. workers <= 0 uses one worker per CPU.
func (a *Annotator) AnnotateAll(clusters []Cluster, workers int) []ClusterAnnotation {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	annotations := make([]ClusterAnnotation, len(clusters))
	indices := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indices {
				annotations[i] = a.Annotate(clusters[i])
			}
		}()
	}

	for i := range clusters {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return annotations
}
