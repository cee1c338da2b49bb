package scanner

import (
	"github.com/xvander/hostpulse/internal/classify"
	"github.com/xvander/hostpulse/internal/probe"
)

// Record is the final per-target row. A worker builds exactly one and
// hands it to the aggregator; nothing mutates it afterwards.
type Record struct {
	Domain   string
	Resolved []string // addresses from DNS, empty on resolution failure
	Probe    probe.Outcome
	Verdict  classify.Verdict
	Err      string // resolution or transport error, empty on clean probes
}
