package table

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// HitsDirs maps classifier database names to their tables directory,
// discovered as {db}/tables/*_all.tsv under a classifier output root.
type HitsDirs map[string]string

// DiscoverHitsDirs finds database subdirectories containing all-hits
// tables under root.
func DiscoverHitsDirs(root string) (HitsDirs, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read all-hits dir: %w", err)
	}

	dbs := make(HitsDirs)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		tablesDir := filepath.Join(root, entry.Name(), "tables")
		matches, err := filepath.Glob(filepath.Join(tablesDir, "*_all.tsv"))
		if err != nil || len(matches) == 0 {
			continue
		}
		dbs[entry.Name()] = tablesDir
	}
	return dbs, nil
}

// Names returns database names in sorted order.
func (h HitsDirs) Names() []string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadAssemblyHits reads the all-hits table lines for one assembly,
// trying an exact filename first and falling back to a prefix glob.
// A missing table yields no lines, not an error.
func LoadAssemblyHits(tablesDir, assemblyID string) ([]string, error) {
	path := filepath.Join(tablesDir, assemblyID+"_all.tsv")
	if _, err := os.Stat(path); err != nil {
		matches, globErr := filepath.Glob(filepath.Join(tablesDir, assemblyID+"*_all.tsv"))
		if globErr != nil || len(matches) == 0 {
			return nil, nil
		}
		path = matches[0]
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open all-hits table: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read all-hits table: %w", err)
	}
	return lines, nil
}

// GrepContig returns the lines mentioning contigID that describe real
// hits. Placeholder rows carry the contig key but an empty hit field
// (column index 3).
func GrepContig(lines []string, contigID string) []string {
	var matches []string
	for _, line := range lines {
		if !strings.Contains(line, contigID) {
			continue
		}
		fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
		if len(fields) > 3 && strings.TrimSpace(fields[3]) != "" {
			matches = append(matches, line)
		}
	}
	return matches
}
