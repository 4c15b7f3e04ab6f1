package table

import "fmt"

// Default column names used by the classifier summary tables.
const (
	ColAssemblyID      = "assembly_id"
	ColContigID        = "contig_id"
	ColFinalCall       = "final_call"
	ColPlasmidName     = "plasmid_name"
	ColContigLen       = "contig_len"
	ColRefLength       = "ref_length"
	ColRefCovered      = "ref_covered_length"
	ColQueryCoverage   = "query_coverage_percent"
	ColOverallIdentity = "overall_percent_identity"
	ColResolvedCall    = "resolved_call"
)

// CallColumns names the key and call columns of a call table. Zero-value
// fields fall back to the defaults above.
type CallColumns struct {
	AssemblyCol string
	ContigCol   string
	CallCol     string
}

func (c CallColumns) withDefaults(defaultCall string) CallColumns {
	if c.AssemblyCol == "" {
		c.AssemblyCol = ColAssemblyID
	}
	if c.ContigCol == "" {
		c.ContigCol = ColContigID
	}
	if c.CallCol == "" {
		c.CallCol = defaultCall
	}
	return c
}

// CallSet holds the per-fragment calls of one evidence source, plus
// fragment lengths when the table carried a length column.
type CallSet struct {
	Calls   map[FragmentKey]string
	Lengths map[FragmentKey]int64
}

// ReadCalls loads a classifier call table into memory. The assembly,
// contig and call columns are required; contig_len is used when present.
func ReadCalls(path string, cols CallColumns) (*CallSet, error) {
	cols = cols.withDefaults(ColFinalCall)

	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if err := r.Require(cols.AssemblyCol, cols.ContigCol, cols.CallCol); err != nil {
		return nil, err
	}
	hasLen := r.HasColumn(ColContigLen)

	set := &CallSet{
		Calls:   make(map[FragmentKey]string),
		Lengths: make(map[FragmentKey]int64),
	}
	for {
		row, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("read calls: %w", err)
		}
		if !row.Valid() {
			break
		}
		key := FragmentKey{
			AssemblyID: row.Get(cols.AssemblyCol),
			ContigID:   row.Get(cols.ContigCol),
		}
		set.Calls[key] = row.Get(cols.CallCol)
		if hasLen {
			set.Lengths[key] = row.Int64(ColContigLen)
		}
	}
	return set, nil
}

// ReadFragments loads a classifier table with alignment statistics for
// placement. The assembly, contig and call columns are required; length
// and alignment columns are optional and default to zero.
func ReadFragments(path string, cols CallColumns) ([]FragmentRecord, error) {
	cols = cols.withDefaults(ColPlasmidName)

	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if err := r.Require(cols.AssemblyCol, cols.ContigCol, cols.CallCol); err != nil {
		return nil, err
	}

	var records []FragmentRecord
	for {
		row, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("read fragments: %w", err)
		}
		if !row.Valid() {
			break
		}
		records = append(records, FragmentRecord{
			Key: FragmentKey{
				AssemblyID: row.Get(cols.AssemblyCol),
				ContigID:   row.Get(cols.ContigCol),
			},
			Length:        row.Int64(ColContigLen),
			Call:          row.Get(cols.CallCol),
			RefLength:     row.Float(ColRefLength),
			RefCovered:    row.Float(ColRefCovered),
			QueryCoverage: row.Float(ColQueryCoverage),
			Identity:      row.Float(ColOverallIdentity),
		})
	}
	return records, nil
}
