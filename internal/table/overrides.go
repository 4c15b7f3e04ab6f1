package table

import "fmt"

// LoadOverrides reads a manual override table with columns assembly_id,
// contig_id and resolved_call. Rows missing either key field are skipped.
// Overrides take priority over all other resolution logic.
func LoadOverrides(path string) (map[FragmentKey]string, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if err := r.Require(ColAssemblyID, ColContigID, ColResolvedCall); err != nil {
		return nil, err
	}

	overrides := make(map[FragmentKey]string)
	for {
		row, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("read overrides: %w", err)
		}
		if !row.Valid() {
			break
		}
		assembly := row.Get(ColAssemblyID)
		contig := row.Get(ColContigID)
		if assembly == "" || contig == "" {
			continue
		}
		overrides[FragmentKey{AssemblyID: assembly, ContigID: contig}] = row.Get(ColResolvedCall)
	}
	return overrides, nil
}
