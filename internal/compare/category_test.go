package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name         string
		oldCall      string
		newCall      string
		wantCategory Category
		wantResolved string
	}{
		{"identical", "lp54", "lp54", ExactMatch, "lp54"},
		{"case and whitespace", " LP54 ", "lp54", ExactMatch, "LP54"},
		{"both empty", "", "NA", ExactMatch, ""},
		{"new lost call", "lp28-4", "NA", NewUnclassified, "lp28-4"},
		{"old lacked call", "", "lp17", OldUnclassified, "lp17"},
		{"annotation suffix", "lp28-1", "lp28-1*", AnnotationSuffix, "lp28-1"},
		{"new adds tokens", "lp28-4", "lp28-4:::lp17", ExtraAnnotation, "lp28-4"},
		{"old had more tokens", "lp28-4:::lp17", "lp28-4", BaseMatch, "lp28-4:::lp17"},
		{"partial overlap", "lp28-4:::lp17", "lp17:::cp26", PartialOverlap, "lp28-4:::lp17"},
		{"same family tiebreak", "cp32-12", "cp32-1", SameFamilyTiebreak, "cp32-12"},
		{"fusion vs variant same family", "cp32-1+5", "cp32-3", SameFamilyTiebreak, "cp32-1+5"},
		{"genuinely different", "lp54", "cp26", Different, "lp54"},
		{"chromosome vs plasmid", "plasmid_x", "chromosome", Different, "plasmid_x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, resolved := Categorize(tt.oldCall, tt.newCall)
			assert.Equal(t, tt.wantCategory, cat)
			assert.Equal(t, tt.wantResolved, resolved)
		})
	}
}

func TestCategorize_SelfIsAlwaysExact(t *testing.T) {
	for _, call := range []string{"", "NA", "lp54", "cp32-1+5", "lp28-4:::lp17", "chromosome"} {
		cat, _ := Categorize(call, call)
		assert.Equal(t, ExactMatch, cat, "categorize(%q, %q)", call, call)
	}
}

func TestCategorize_OrderMatters(t *testing.T) {
	// Subset containment is checked before family membership: lp28-4 and
	// lp28-4:::lp17 share the lp28 family but the subset rule wins.
	cat, _ := Categorize("lp28-4", "lp28-4:::lp17")
	assert.Equal(t, ExtraAnnotation, cat)

	// Suffix stripping is checked before token subsets.
	cat, _ = Categorize("lp28-1", "lp28-1**")
	assert.Equal(t, AnnotationSuffix, cat)
}
