package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTallyAdd(t *testing.T) {
	tally := NewTally()
	tally.Add(Result{Category: ExactMatch})
	tally.Add(Result{Category: ExactMatch})
	tally.Add(Result{Category: AutoChromosome, AutoResolved: true})
	tally.Add(Result{Category: ManualOverride, Overridden: true})

	assert.Equal(t, 2, tally.Categories[ExactMatch])
	assert.Equal(t, 1, tally.Categories[AutoChromosome])
	assert.Equal(t, 1, tally.AutoResolved)
	assert.Equal(t, 1, tally.Overridden)
	assert.Equal(t, 4, tally.Total())
}

func TestMerge_Commutative(t *testing.T) {
	a := NewTally()
	a.Add(Result{Category: ExactMatch})
	a.Add(Result{Category: Different})

	b := NewTally()
	b.Add(Result{Category: ExactMatch})
	b.Add(Result{Category: AutoChromosome, AutoResolved: true})

	ab := Merge(a, b)
	ba := Merge(b, a)

	assert.Equal(t, ab.Categories, ba.Categories)
	assert.Equal(t, ab.AutoResolved, ba.AutoResolved)
	assert.Equal(t, 2, ab.Categories[ExactMatch])
	assert.Equal(t, 4, ab.Total())
}

func TestMerge_Associative(t *testing.T) {
	a := NewTally()
	a.Add(Result{Category: ExactMatch})
	b := NewTally()
	b.Add(Result{Category: Different})
	c := NewTally()
	c.Add(Result{Category: Different})

	left := Merge(Merge(a, b), c)
	right := Merge(a, Merge(b, c))
	assert.Equal(t, left.Categories, right.Categories)
}

func TestTallyResults(t *testing.T) {
	results := []Result{
		{Category: ExactMatch},
		{Category: Different},
		{Category: Different},
	}
	tally := TallyResults(results)
	assert.Equal(t, 1, tally.Categories[ExactMatch])
	assert.Equal(t, 2, tally.Categories[Different])
}
