package compare

// Tally accumulates per-category counts for a run. Merging is a
// per-category sum, so partial tallies built in parallel combine in any
// order.
type Tally struct {
	Categories   map[Category]int
	AutoResolved int
	Overridden   int
}

// NewTally returns an empty tally.
func NewTally() Tally {
	return Tally{Categories: make(map[Category]int)}
}

// Add records one result.
func (t *Tally) Add(r Result) {
	t.Categories[r.Category]++
	if r.AutoResolved {
		t.AutoResolved++
	}
	if r.Overridden {
		t.Overridden++
	}
}

// Total returns the number of recorded results.
func (t Tally) Total() int {
	total := 0
	for _, n := range t.Categories {
		total += n
	}
	return total
}

// Merge combines two tallies by per-category sum.
func Merge(a, b Tally) Tally {
	merged := NewTally()
	for cat, n := range a.Categories {
		merged.Categories[cat] += n
	}
	for cat, n := range b.Categories {
		merged.Categories[cat] += n
	}
	merged.AutoResolved = a.AutoResolved + b.AutoResolved
	merged.Overridden = a.Overridden + b.Overridden
	return merged
}

// TallyResults builds a tally over a result slice.
func TallyResults(results []Result) Tally {
	t := NewTally()
	for _, r := range results {
		t.Add(r)
	}
	return t
}
