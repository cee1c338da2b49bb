package output

import (
	"sort"
	"sync"

	"github.com/xvander/hostpulse/internal/scanner"
)

// Aggregator is the single sink for worker records. Record is safe
// under concurrent calls; Finalize is called once, after the pool has
// drained.
type Aggregator struct {
	mu      sync.Mutex
	records []scanner.Record
}

// NewAggregator creates an Aggregator sized for n targets.
func NewAggregator(n int) *Aggregator {
	return &Aggregator{records: make([]scanner.Record, 0, n)}
}

// Record appends one result. Append-only: records are never dropped
// or rewritten, so the dead ones still count in the final accounting.
func (a *Aggregator) Record(rec scanner.Record) {
	a.mu.Lock()
	a.records = append(a.records, rec)
	a.mu.Unlock()
}

// Len returns the number of records collected so far.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.records)
}

// Finalize returns all records and the alive subset, both in
// domain-lexical order so repeat runs produce stable artifacts.
func (a *Aggregator) Finalize() (all, alive []scanner.Record) {
	a.mu.Lock()
	defer a.mu.Unlock()

	all = make([]scanner.Record, len(a.records))
	copy(all, a.records)
	sort.Slice(all, func(i, j int) bool { return all[i].Domain < all[j].Domain })

	for _, rec := range all {
		if rec.Verdict.Alive {
			alive = append(alive, rec)
		}
	}
	return all, alive
}
