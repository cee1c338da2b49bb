package scanner

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/xvander/hostpulse/internal/classify"
	"github.com/xvander/hostpulse/internal/probe"
	"github.com/xvander/hostpulse/internal/resolve"
)

// Resolver answers DNS for one target.
type Resolver interface {
	Resolve(ctx context.Context, target string) resolve.Result
}

// Prober issues the HTTP(S) probe for one resolved target.
type Prober interface {
	Probe(ctx context.Context, target string) probe.Outcome
}

// Config holds options for the worker pool.
type Config struct {
	Workers int
	Jitter  *Jitter
	Limiter *rate.Limiter // nil = no global rate cap
	Pauser  *Pauser       // nil = no pause support
}

// Run fans targets out across a fixed pool of workers and returns a
// channel of records, closed when every target has been processed.
// Each worker runs the full resolve → probe → classify pipeline for
// the targets it claims; a failed resolution skips the probe entirely.
func Run(
	ctx context.Context,
	res Resolver,
	prb Prober,
	targets []string,
	cfg Config,
) <-chan Record {
	workers := cfg.Workers
	targetsCh := make(chan string, workers*2)
	recordsCh := make(chan Record, workers*2)

	var wg sync.WaitGroup

	// Producer: feed targets into the channel. The channel is the
	// mutual-exclusion point — no target is claimed twice.
	go func() {
		defer close(targetsCh)
		for _, target := range targets {
			select {
			case targetsCh <- target:
			case <-ctx.Done():
				return
			}
		}
	}()

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for target := range targetsCh {
				if cfg.Pauser != nil {
					cfg.Pauser.Wait()
				}

				rec, ok := process(ctx, res, prb, target, cfg)
				if !ok {
					return
				}
				recordsCh <- rec
			}
		}()
	}

	go func() {
		wg.Wait()
		close(recordsCh)
	}()

	return recordsCh
}

// process runs the pipeline for a single target. ok is false only when
// the run was cancelled mid-target; already-delivered records stand.
func process(ctx context.Context, res Resolver, prb Prober, target string, cfg Config) (Record, bool) {
	resolution := res.Resolve(ctx, target)
	if !resolution.OK() {
		if ctx.Err() != nil {
			return Record{}, false
		}
		// Fast skip: dead DNS never costs an HTTP connection.
		return Record{
			Domain:  target,
			Verdict: classify.Classify(resolution, probe.Outcome{}),
			Err:     resolution.Err.Error(),
		}, true
	}

	if cfg.Jitter != nil {
		if delay := cfg.Jitter.Delay(); delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return Record{}, false
			}
		}
	}
	if cfg.Limiter != nil {
		if err := cfg.Limiter.Wait(ctx); err != nil {
			return Record{}, false
		}
	}

	outcome := prb.Probe(ctx, target)
	if outcome.StatusCode == 0 && ctx.Err() != nil {
		return Record{}, false
	}

	rec := Record{
		Domain:   target,
		Resolved: resolution.Addrs,
		Probe:    outcome,
		Verdict:  classify.Classify(resolution, outcome),
	}
	if outcome.Err != nil {
		rec.Err = outcome.Err.Error()
	}
	return rec, true
}
