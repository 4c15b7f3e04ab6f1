package compare

import (
	"runtime"
	"sync"

	"github.com/bbpangenome/repsolve/internal/table"
)

// WorkItem holds one fragment key ready for resolution.
type WorkItem struct {
	Seq     int
	Key     table.FragmentKey
	OldCall string
	OldOK   bool
	NewCall string
	NewOK   bool
	Length  int64
}

// WorkResult holds the resolution output for a single fragment.
type WorkResult struct {
	Seq    int
	Result Result
}

// ParallelResolve resolves work items using a pool of workers. Results
// are sent to the returned channel in arrival order (not sequence
// order); use OrderedCollect to consume them in sequence-number order.
// If workers is 0, runtime.NumCPU() is used.
func (c *Comparator) ParallelResolve(items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for item := range items {
				results <- WorkResult{
					Seq: item.Seq,
					Result: c.Resolve(item.Key, item.OldCall, item.OldOK,
						item.NewCall, item.NewOK, item.Length),
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order.
// It buffers out-of-order results in a pending map and emits them
// as soon as the next expected sequence number is available.
// Blocks until the results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
