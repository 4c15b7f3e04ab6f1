package compare

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/bbpangenome/repsolve/internal/replicon"
	"github.com/bbpangenome/repsolve/internal/table"
)

// Config holds the immutable resolution parameters for one run.
type Config struct {
	// AutoChromosomeBP enables the chromosome length heuristics for
	// Different results when > 0.
	AutoChromosomeBP int64
	// Overrides maps fragment keys to forced resolved calls. Overrides
	// take priority over every other resolution step.
	Overrides map[table.FragmentKey]string
}

// Result is the comparison outcome for one fragment.
type Result struct {
	Key          table.FragmentKey
	Length       int64
	OldCall      string
	NewCall      string
	Category     Category
	Resolved     string
	AutoResolved bool
	Overridden   bool
}

// NeedsReview reports whether a result should be enumerated for manual
// review rather than silently accepted.
func (r Result) NeedsReview() bool {
	switch r.Category {
	case Different, PartialOverlap, NewUnclassified:
		return true
	}
	return false
}

// Comparator resolves old/new call pairs into canonical calls.
type Comparator struct {
	cfg    Config
	logger *zap.Logger
}

// New creates a comparator with the given configuration.
func New(cfg Config) *Comparator {
	return &Comparator{cfg: cfg, logger: zap.NewNop()}
}

// SetLogger sets the logger for per-fragment debug messages.
func (c *Comparator) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Resolve categorizes one fragment. Fragments present in only one
// evidence source bypass the rule list as OldOnly/NewOnly. Auto
// heuristics and manual overrides are applied in that order.
func (c *Comparator) Resolve(key table.FragmentKey, oldCall string, oldOK bool, newCall string, newOK bool, length int64) Result {
	res := Result{
		Key:     key,
		Length:  length,
		OldCall: oldCall,
		NewCall: newCall,
	}

	switch {
	case !newOK:
		res.Category = OldOnly
		res.Resolved = strings.TrimSpace(oldCall)
	case !oldOK:
		res.Category = NewOnly
		res.Resolved = strings.TrimSpace(newCall)
	default:
		res.Category, res.Resolved = Categorize(oldCall, newCall)
	}

	c.applyAutoChromosome(&res)
	c.applyOverride(&res)
	return res
}

// applyAutoChromosome resolves Different results where the chromosome
// length heuristics apply. Chromosomal paralogs of plasmid marker genes
// confound classifier calls, so large fragments called chromosome by the
// new run are trusted, and small fragments the old run called chromosome
// yield to a specific plasmid call from the new run. The two branches
// are mutually exclusive per fragment.
func (c *Comparator) applyAutoChromosome(res *Result) {
	if c.cfg.AutoChromosomeBP <= 0 || res.Category != Different {
		return
	}

	newNorm := replicon.Normalize(res.NewCall)
	oldNorm := replicon.Normalize(res.OldCall)

	if newNorm == "chromosome" && res.Length >= c.cfg.AutoChromosomeBP {
		res.Resolved = strings.TrimSpace(res.NewCall)
		res.Category = AutoChromosome
		res.AutoResolved = true
		c.logger.Debug("auto-resolved to chromosome",
			zap.String("assembly", res.Key.AssemblyID),
			zap.String("contig", res.Key.ContigID),
			zap.Int64("length", res.Length))
		return
	}

	if oldNorm == "chromosome" && newNorm != "" && newNorm != "chromosome" &&
		res.Length < c.cfg.AutoChromosomeBP {
		res.Resolved = strings.TrimSpace(res.NewCall)
		res.Category = AutoChromosome
		res.AutoResolved = true
		c.logger.Debug("auto-resolved away from chromosome",
			zap.String("assembly", res.Key.AssemblyID),
			zap.String("contig", res.Key.ContigID),
			zap.String("new_call", res.NewCall),
			zap.Int64("length", res.Length))
	}
}

// applyOverride forces the resolved call from the override table. The
// category becomes ManualOverride unless the unmodified category was
// already ExactMatch.
func (c *Comparator) applyOverride(res *Result) {
	forced, ok := c.cfg.Overrides[res.Key]
	if !ok {
		return
	}
	res.Resolved = forced
	if res.Category != ExactMatch {
		res.Category = ManualOverride
		res.Overridden = true
	}
}

// CompareAll resolves every fragment key present in either evidence
// source, in sorted key order. Keys are independent, so resolution runs
// as a parallel map over the worker pool; results come back in key
// order. workers <= 0 uses one worker per CPU.
func (c *Comparator) CompareAll(old, new *table.CallSet, workers int) []Result {
	keys := unionKeys(old, new)

	items := make(chan WorkItem, len(keys))
	go func() {
		defer close(items)
		for seq, key := range keys {
			oldCall, oldOK := old.Calls[key]
			newCall, newOK := new.Calls[key]
			items <- WorkItem{
				Seq:     seq,
				Key:     key,
				OldCall: oldCall,
				OldOK:   oldOK,
				NewCall: newCall,
				NewOK:   newOK,
				Length:  new.Lengths[key],
			}
		}
	}()

	results := make([]Result, 0, len(keys))
	_ = OrderedCollect(c.ParallelResolve(items, workers), func(wr WorkResult) error {
		results = append(results, wr.Result)
		return nil
	})
	return results
}

func unionKeys(old, new *table.CallSet) []table.FragmentKey {
	seen := make(map[table.FragmentKey]bool, len(old.Calls)+len(new.Calls))
	var keys []table.FragmentKey
	for key := range old.Calls {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	for key := range new.Calls {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].AssemblyID != keys[j].AssemblyID {
			return keys[i].AssemblyID < keys[j].AssemblyID
		}
		return keys[i].ContigID < keys[j].ContigID
	})
	return keys
}
