package replicon

import (
	"regexp"
	"strings"
)

// familyRule maps a call to its replicon family. Rules are evaluated
// top-to-bottom; the first rule whose extract succeeds wins. Keeping the
// order in a table makes the precedence itself inspectable and testable.
type familyRule struct {
	name    string
	extract func(call string) (string, bool)
}

var leadingRunRe = regexp.MustCompile(`^([a-z]+[0-9]+)`)

// Consensus sentinels are their own family.
var familySentinels = map[string]bool{
	"unknown":         true,
	"unmatched":       true,
	"multi-replicon":  true,
	"unknownreplicon": true,
}

var familyRules = []familyRule{
	{
		name: "sentinel",
		extract: func(call string) (string, bool) {
			if familySentinels[call] {
				return call, true
			}
			return "", false
		},
	},
	{
		name: "chromosome",
		extract: func(call string) (string, bool) {
			if call == "chromosome" {
				return "chromosome", true
			}
			return "", false
		},
	},
	{
		// Fusion names classify by their first component:
		// cp32-1+5 -> cp32, lp21-cp9 -> lp21.
		name: "fusion",
		extract: func(call string) (string, bool) {
			if !strings.Contains(call, "+") &&
				!strings.Contains(call, "-cp") &&
				!strings.Contains(call, "-lp") {
				return "", false
			}
			base := call
			base = strings.SplitN(base, "+", 2)[0]
			base = strings.SplitN(base, "-cp", 2)[0]
			base = strings.SplitN(base, "-lp", 2)[0]
			if m := leadingRunRe.FindStringSubmatch(base); m != nil {
				return m[1], true
			}
			return "", false
		},
	},
	{
		// Standard pattern: lp28-1 -> lp28, cp32-3 -> cp32, cp26 -> cp26.
		name: "leading-run",
		extract: func(call string) (string, bool) {
			if m := leadingRunRe.FindStringSubmatch(call); m != nil {
				return m[1], true
			}
			return "", false
		},
	},
}

// FamilyOf extracts the replicon family prefix of a call, e.g.
// "cp32-12" -> "cp32", "lp28-4" -> "lp28", "chromosome" -> "chromosome".
// Empty or unclassified calls return "". A call matching no rule is its
// own family.
func FamilyOf(call string) string {
	call = Normalize(StripSuffix(call))
	if call == "" {
		return ""
	}
	for _, rule := range familyRules {
		if fam, ok := rule.extract(call); ok {
			return fam
		}
	}
	return call
}
