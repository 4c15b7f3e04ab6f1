// Package table reads the delimited evidence tables consumed by the
// resolution pipeline: classifier call summaries, manual override tables,
// accession lookups and per-database all-hits output.
package table

// FragmentKey identifies one assembled sequence fragment.
type FragmentKey struct {
	AssemblyID string
	ContigID   string
}

// FragmentRecord holds one fragment's call and alignment statistics.
// Numeric fields that were absent or unparsable in the input are zero;
// a zero RefLength means the reference size is unknown.
type FragmentRecord struct {
	Key             FragmentKey
	Length          int64
	Call            string
	RefLength       float64
	RefCovered      float64
	QueryCoverage   float64 // percent, 0-100
	Identity        float64 // percent, 0-100
}
