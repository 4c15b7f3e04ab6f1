// Package compare categorizes the relationship between two classifier
// calls for the same fragment and resolves them to a single canonical
// call under auto-resolution heuristics and manual overrides.
package compare

import (
	"strings"

	"github.com/bbpangenome/repsolve/internal/replicon"
)

// Category classifies the relationship between an old and a new call.
type Category string

const (
	// ExactMatch: identical calls (or both unclassified).
	ExactMatch Category = "exact_match"
	// NewUnclassified: the new run lost a classification the old run had.
	NewUnclassified Category = "new_unclassified"
	// OldUnclassified: the old run had no call but the new run does.
	OldUnclassified Category = "old_unclassified"
	// AnnotationSuffix: equal after stripping trailing '*' markers.
	AnnotationSuffix Category = "annotation_suffix"
	// ExtraAnnotation: the new compound call adds tokens to the old call.
	ExtraAnnotation Category = "extra_annotation"
	// BaseMatch: the old compound call contains the new call.
	BaseMatch Category = "base_match"
	// PartialOverlap: token sets intersect but neither contains the other.
	PartialOverlap Category = "partial_overlap"
	// SameFamilyTiebreak: same replicon family, different variant —
	// typically a scoring tie-break artifact (cp32-12 vs cp32-1).
	SameFamilyTiebreak Category = "same_family_tiebreak"
	// Different: genuinely conflicting calls, flagged for manual review.
	Different Category = "different"
	// OldOnly / NewOnly: fragment present in a single evidence source.
	OldOnly Category = "old_only"
	NewOnly Category = "new_only"
	// AutoChromosome: a Different result resolved by the chromosome
	// length heuristic.
	AutoChromosome Category = "auto_chromosome"
	// ManualOverride: resolution forced by the override table.
	ManualOverride Category = "manual_override"
)

// SummaryOrder is the fixed display order for category tallies.
var SummaryOrder = []Category{
	ExactMatch, AnnotationSuffix, ExtraAnnotation, BaseMatch,
	SameFamilyTiebreak, AutoChromosome, ManualOverride, PartialOverlap,
	Different, NewUnclassified, OldUnclassified, OldOnly, NewOnly,
}

// pair holds the precomputed views of one old/new call pair that the
// categorization rules test against.
type pair struct {
	old, new             string
	oldNorm, newNorm     string
	oldTokens, newTokens map[string]bool
}

func newPair(oldCall, newCall string) pair {
	return pair{
		old:       oldCall,
		new:       newCall,
		oldNorm:   replicon.Normalize(oldCall),
		newNorm:   replicon.Normalize(newCall),
		oldTokens: replicon.SplitCompound(oldCall),
		newTokens: replicon.SplitCompound(newCall),
	}
}

// rule is one step of the categorization order. Rules run top-to-bottom
// and the first match wins, so the slice below is the precedence itself.
type rule struct {
	category Category
	match    func(p pair) (resolved string, ok bool)
}

var rules = []rule{
	{ExactMatch, func(p pair) (string, bool) {
		if p.oldNorm != p.newNorm {
			return "", false
		}
		if p.oldNorm == "" {
			return "", true
		}
		return strings.TrimSpace(p.old), true
	}},
	{NewUnclassified, func(p pair) (string, bool) {
		if p.newNorm == "" {
			return strings.TrimSpace(p.old), true
		}
		return "", false
	}},
	{OldUnclassified, func(p pair) (string, bool) {
		if p.oldNorm == "" {
			return strings.TrimSpace(p.new), true
		}
		return "", false
	}},
	{AnnotationSuffix, func(p pair) (string, bool) {
		if replicon.StripSuffix(p.oldNorm) == replicon.StripSuffix(p.newNorm) {
			return strings.TrimSpace(p.old), true
		}
		return "", false
	}},
	{ExtraAnnotation, func(p pair) (string, bool) {
		if replicon.IsSubset(p.oldTokens, p.newTokens) {
			return strings.TrimSpace(p.old), true
		}
		return "", false
	}},
	{BaseMatch, func(p pair) (string, bool) {
		if replicon.IsSubset(p.newTokens, p.oldTokens) {
			return strings.TrimSpace(p.old), true
		}
		return "", false
	}},
	{PartialOverlap, func(p pair) (string, bool) {
		if replicon.Intersects(p.oldTokens, p.newTokens) {
			return strings.TrimSpace(p.old), true
		}
		return "", false
	}},
	{SameFamilyTiebreak, func(p pair) (string, bool) {
		oldFam := replicon.FamilyOf(p.old)
		newFam := replicon.FamilyOf(p.new)
		if oldFam != "" && oldFam == newFam {
			return strings.TrimSpace(p.old), true
		}
		return "", false
	}},
	{Different, func(p pair) (string, bool) {
		return strings.TrimSpace(p.old), true
	}},
}

// Categorize runs the ordered rule list over one call pair and returns
// the first matching category with its resolved call. The final rule
// always matches.
func Categorize(oldCall, newCall string) (Category, string) {
	p := newPair(oldCall, newCall)
	for _, r := range rules {
		if resolved, ok := r.match(p); ok {
			return r.category, resolved
		}
	}
	// Unreachable: the Different rule matches everything.
	return Different, strings.TrimSpace(oldCall)
}
