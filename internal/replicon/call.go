// Package replicon provides normalization and classification of replicon
// call strings (chromosome and plasmid names) produced by classifier runs.
package replicon

import (
	"regexp"
	"strings"
)

// Empty-call sentinels produced by upstream classifiers and spreadsheet
// round-trips. All of them normalize to the empty string.
var emptySentinels = map[string]bool{
	"":             true,
	"na":           true,
	"nan":          true,
	"none":         true,
	"unclassified": true,
}

// CompoundSeparator joins multiple replicon tokens in a single call.
// The '+' character is NOT a separator: it marks a fusion replicon
// (e.g. cp32-1+5) which stays a single token.
const CompoundSeparator = ":::"

var suffixRe = regexp.MustCompile(`\*+$`)

// Normalize canonicalizes a call string for comparison: empty-call
// sentinels collapse to "", everything else is trimmed and lowercased.
// Normalize is idempotent.
func Normalize(call string) string {
	trimmed := strings.TrimSpace(call)
	if emptySentinels[strings.ToLower(trimmed)] {
		return ""
	}
	return strings.ToLower(trimmed)
}

// IsEmpty reports whether a call normalizes to the empty sentinel.
func IsEmpty(call string) bool {
	return Normalize(call) == ""
}

// StripSuffix removes trailing '*' annotation markers.
// e.g. "lp28-1*" -> "lp28-1".
func StripSuffix(call string) string {
	return suffixRe.ReplaceAllString(strings.TrimSpace(call), "")
}

// SplitCompound splits a call on the ":::" separator into its set of base
// replicon tokens. Fusion names keep their '+' and remain one token:
//
//	"lp28-4:::lp17" -> {"lp28-4", "lp17"}
//	"cp32-1+5"      -> {"cp32-1+5"}
//
// Empty calls yield an empty set.
func SplitCompound(call string) map[string]bool {
	tokens := make(map[string]bool)
	if IsEmpty(call) {
		return tokens
	}
	for _, part := range strings.Split(Normalize(call), CompoundSeparator) {
		part = strings.TrimSpace(part)
		if part != "" {
			tokens[part] = true
		}
	}
	return tokens
}

// IsSubset reports whether a is a non-empty subset of b.
func IsSubset(a, b map[string]bool) bool {
	if len(a) == 0 {
		return false
	}
	for tok := range a {
		if !b[tok] {
			return false
		}
	}
	return true
}

// Intersects reports whether the two token sets share any member.
func Intersects(a, b map[string]bool) bool {
	for tok := range a {
		if b[tok] {
			return true
		}
	}
	return false
}
