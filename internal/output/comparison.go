// Package output provides the delimited writers for comparison tables,
// chromosome lists, cluster annotations and run summaries.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bbpangenome/repsolve/internal/compare"
)

// ComparisonWriter writes the per-fragment comparison table.
type ComparisonWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewComparisonWriter creates a tab-delimited comparison table writer.
func NewComparisonWriter(w io.Writer) *ComparisonWriter {
	return &ComparisonWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"assembly_id",
			"contig_id",
			"contig_len",
			"old_call",
			"new_call",
			"category",
			"resolved_call",
		},
	}
}

// WriteHeader writes the header line.
func (cw *ComparisonWriter) WriteHeader() error {
	_, err := cw.w.WriteString(strings.Join(cw.columns, "\t") + "\n")
	return err
}

// Write writes one comparison result row.
func (cw *ComparisonWriter) Write(r compare.Result) error {
	values := []string{
		r.Key.AssemblyID,
		r.Key.ContigID,
		fmt.Sprintf("%d", r.Length),
		r.OldCall,
		r.NewCall,
		string(r.Category),
		r.Resolved,
	}
	_, err := cw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (cw *ComparisonWriter) Flush() error {
	return cw.w.Flush()
}

// ResolvedWriter writes the homogenized calls table only.
type ResolvedWriter struct {
	w *bufio.Writer
}

// NewResolvedWriter creates a tab-delimited resolved-calls writer.
func NewResolvedWriter(w io.Writer) *ResolvedWriter {
	return &ResolvedWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the header line.
func (rw *ResolvedWriter) WriteHeader() error {
	_, err := rw.w.WriteString("assembly_id\tcontig_id\tresolved_call\n")
	return err
}

// Write writes one resolved call row.
func (rw *ResolvedWriter) Write(r compare.Result) error {
	_, err := fmt.Fprintf(rw.w, "%s\t%s\t%s\n", r.Key.AssemblyID, r.Key.ContigID, r.Resolved)
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (rw *ResolvedWriter) Flush() error {
	return rw.w.Flush()
}
