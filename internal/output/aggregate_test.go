package output

import (
	"fmt"
	"sync"
	"testing"

	"github.com/xvander/hostpulse/internal/classify"
	"github.com/xvander/hostpulse/internal/probe"
	"github.com/xvander/hostpulse/internal/scanner"
)

func aliveRecord(domain string, status int) scanner.Record {
	return scanner.Record{
		Domain:   domain,
		Resolved: []string{"203.0.113.1"},
		Probe:    probe.Outcome{AttemptedURL: "https://" + domain, StatusCode: status},
		Verdict:  classify.Verdict{Alive: true, Reason: classify.ResolvedAndOK},
	}
}

func deadRecord(domain string) scanner.Record {
	return scanner.Record{
		Domain:  domain,
		Verdict: classify.Verdict{Reason: classify.DNSFailed},
		Err:     "nxdomain",
	}
}

func TestAggregatorConcurrentRecord(t *testing.T) {
	const n = 500
	agg := NewAggregator(n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			agg.Record(aliveRecord(fmt.Sprintf("host%03d.example", i), 200))
		}(i)
	}
	wg.Wait()

	if agg.Len() != n {
		t.Fatalf("Len = %d, want %d", agg.Len(), n)
	}
	all, alive := agg.Finalize()
	if len(all) != n || len(alive) != n {
		t.Fatalf("Finalize returned %d/%d records, want %d", len(all), len(alive), n)
	}
}

func TestAggregatorPartitionAndOrder(t *testing.T) {
	agg := NewAggregator(4)
	agg.Record(aliveRecord("zeta.example", 200))
	agg.Record(deadRecord("beta.example"))
	agg.Record(aliveRecord("alpha.example", 403))
	agg.Record(deadRecord("gamma.example"))

	all, alive := agg.Finalize()

	if len(all) != 4 {
		t.Fatalf("all = %d records, want 4 — dead records must not be lost", len(all))
	}
	if len(alive) != 2 {
		t.Fatalf("alive = %d records, want 2", len(alive))
	}
	if alive[0].Domain != "alpha.example" || alive[1].Domain != "zeta.example" {
		t.Errorf("alive order = [%s, %s], want lexical", alive[0].Domain, alive[1].Domain)
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Domain > all[i].Domain {
			t.Errorf("all not sorted at %d: %s > %s", i, all[i-1].Domain, all[i].Domain)
		}
	}
}
