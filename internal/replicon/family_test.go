package replicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFamilyOf(t *testing.T) {
	tests := []struct {
		call     string
		expected string
	}{
		{"lp28-4", "lp28"},
		{"lp28-1", "lp28"},
		{"cp32-12", "cp32"},
		{"cp26", "cp26"},
		{"lp54", "lp54"},
		{"chromosome", "chromosome"},
		{"Chromosome", "chromosome"},
		{"lp28-1*", "lp28"},
		// Fusion names classify by their first component.
		{"cp32-1+5", "cp32"},
		{"cp32-3+10", "cp32"},
		{"lp21-cp9", "lp21"},
		// Sentinels are their own family.
		{"unknown", "unknown"},
		{"unmatched", "unmatched"},
		{"multi-replicon", "multi-replicon"},
		// Empty and unclassified have no family.
		{"", ""},
		{"NA", ""},
		{"unclassified", ""},
		// No leading letters+digits run: the call is its own family.
		{"plasmid_x", "plasmid_x"},
	}

	for _, tt := range tests {
		t.Run(tt.call, func(t *testing.T) {
			assert.Equal(t, tt.expected, FamilyOf(tt.call))
		})
	}
}

func TestFamilyOf_VariantsShareFamily(t *testing.T) {
	variants := []string{"lp28-1", "lp28-2", "lp28-3", "lp28-11", "lp28-4*"}
	for _, v := range variants {
		assert.Equal(t, "lp28", FamilyOf(v), v)
	}
}
