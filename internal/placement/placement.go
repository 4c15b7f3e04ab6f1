// Package placement selects which fragment of an assembly is the
// primary sequence for each replicon and which are unlocalised
// fragments, producing submission-ready chromosome list entries.
package placement

import (
	"runtime"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/bbpangenome/repsolve/internal/replicon"
	"github.com/bbpangenome/repsolve/internal/table"
)

// Mode selects the placement policy for a run. The two modes are
// mutually exclusive.
type Mode string

const (
	// ModeClassified places every classified fragment: the longest
	// fragment per replicon is primary, the rest are unlocalised.
	ModeClassified Mode = "classified"
	// ModeComplete places only fragments passing the completeness
	// thresholds; there is no unlocalised tier.
	ModeComplete Mode = "complete"
)

// Default completeness thresholds.
const (
	DefaultRefCov   = 0.95
	DefaultQueryCov = 0.90
	DefaultIdentity = 0.90
)

// Config holds the immutable placement parameters for one run.
type Config struct {
	Mode     Mode
	RefCov   float64
	QueryCov float64
	Identity float64
}

// WithDefaults fills unset thresholds.
func (c Config) WithDefaults() Config {
	if c.Mode == "" {
		c.Mode = ModeComplete
	}
	if c.RefCov == 0 {
		c.RefCov = DefaultRefCov
	}
	if c.QueryCov == 0 {
		c.QueryCov = DefaultQueryCov
	}
	if c.Identity == 0 {
		c.Identity = DefaultIdentity
	}
	return c
}

// Entry is one line of a chromosome or unlocalised list.
type Entry struct {
	ObjectName   string // bracket-stripped contig name
	Name         string // sanitized replicon name
	TopologyType string // e.g. "Linear-Plasmid"; chromosome list only
}

// Placement is the placement outcome for one assembly.
type Placement struct {
	AssemblyID string
	Primary    []Entry // chromosome list entries
	Fragments  []Entry // unlocalised list entries
	Unplaced   int
}

// Summary aggregates placement counts across assemblies. Counts merge
// by sum, so per-assembly summaries combine in any order.
type Summary struct {
	Placed          int
	Unlocalised     int
	Unplaced        int
	EmptyAssemblies []string
}

// Selector places an assembly's fragments under the configured mode.
type Selector struct {
	cfg    Config
	logger *zap.Logger
}

// New creates a selector with the given configuration.
func New(cfg Config) *Selector {
	return &Selector{cfg: cfg.WithDefaults(), logger: zap.NewNop()}
}

// SetLogger sets the logger for per-assembly debug messages.
func (s *Selector) SetLogger(l *zap.Logger) {
	s.logger = l
}

// Place computes the placement for one assembly's fragments.
func (s *Selector) Place(assemblyID string, fragments []table.FragmentRecord) Placement {
	p := Placement{AssemblyID: assemblyID}
	switch s.cfg.Mode {
	case ModeClassified:
		s.placeClassified(&p, fragments)
	default:
		s.placeComplete(&p, fragments)
	}

	s.logger.Debug("placed assembly",
		zap.String("assembly", assemblyID),
		zap.Int("primary", len(p.Primary)),
		zap.Int("unlocalised", len(p.Fragments)),
		zap.Int("unplaced", p.Unplaced))
	return p
}

// placeClassified groups fragments by raw replicon call; the longest
// fragment per replicon is the primary placement, all others are
// unlocalised fragments tagged with the same replicon name. Empty and
// unclassified calls count as unplaced.
func (s *Selector) placeClassified(p *Placement, fragments []table.FragmentRecord) {
	byReplicon := make(map[string][]table.FragmentRecord)
	for _, frag := range fragments {
		call := strings.TrimSpace(frag.Call)
		if call == "" || strings.EqualFold(call, "unclassified") {
			p.Unplaced++
			continue
		}
		byReplicon[call] = append(byReplicon[call], frag)
	}

	names := make([]string, 0, len(byReplicon))
	for name := range byReplicon {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		group := byReplicon[name]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Length > group[j].Length
		})

		sanitized := replicon.SanitizeName(name)
		topoType := replicon.FormatTopologyType(
			replicon.InferTopology(name), replicon.InferType(name))

		for i, frag := range group {
			entry := Entry{
				ObjectName: replicon.ParseContigName(frag.Key.ContigID),
				Name:       sanitized,
			}
			if i == 0 {
				entry.TopologyType = topoType
				p.Primary = append(p.Primary, entry)
			} else {
				p.Fragments = append(p.Fragments, entry)
			}
		}
	}
}

// placeComplete evaluates every fragment independently against the
// completeness thresholds. Failing fragments are simply omitted; there
// is no unlocalised tier in this mode.
func (s *Selector) placeComplete(p *Placement, fragments []table.FragmentRecord) {
	for _, frag := range fragments {
		contig := strings.TrimSpace(frag.Key.ContigID)
		call := strings.TrimSpace(frag.Call)
		if contig == "" || call == "" {
			continue
		}

		if !s.passesCompleteness(frag) {
			p.Unplaced++
			continue
		}

		p.Primary = append(p.Primary, Entry{
			ObjectName: replicon.ParseContigName(contig),
			Name:       replicon.SanitizeName(call),
			TopologyType: replicon.FormatTopologyType(
				replicon.InferTopology(call), replicon.InferType(call)),
		})
	}
}

// passesCompleteness checks reference coverage, query coverage and
// identity against the thresholds. The reference length must be known
// and positive.
func (s *Selector) passesCompleteness(frag table.FragmentRecord) bool {
	if frag.RefLength <= 0 {
		return false
	}
	refCov := frag.RefCovered / frag.RefLength
	return refCov >= s.cfg.RefCov &&
		frag.QueryCoverage/100.0 >= s.cfg.QueryCov &&
		frag.Identity/100.0 >= s.cfg.Identity
}

// PlaceAll groups fragment records by assembly and places each assembly
// on a worker pool; output order follows sorted assembly IDs.
// workers <= 0 uses one worker per CPU.
func (s *Selector) PlaceAll(records []table.FragmentRecord, workers int) []Placement {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	byAssembly := make(map[string][]table.FragmentRecord)
	for _, rec := range records {
		aid := strings.TrimSpace(rec.Key.AssemblyID)
		if aid == "" {
			continue
		}
		byAssembly[aid] = append(byAssembly[aid], rec)
	}

	ids := make([]string, 0, len(byAssembly))
	for id := range byAssembly {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	placements := make([]Placement, len(ids))
	indices := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indices {
				placements[i] = s.Place(ids[i], byAssembly[ids[i]])
			}
		}()
	}

	for i := range ids {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return placements
}

// Summarize merges per-assembly placements into run totals. Assemblies
// with no primary entries are reported separately and stay at their
// prior, unplaced granularity; that is not an error.
func Summarize(placements []Placement) Summary {
	var sum Summary
	for _, p := range placements {
		sum.Placed += len(p.Primary)
		sum.Unlocalised += len(p.Fragments)
		sum.Unplaced += p.Unplaced
		if len(p.Primary) == 0 {
			sum.EmptyAssemblies = append(sum.EmptyAssemblies, p.AssemblyID)
		}
	}
	return sum
}
