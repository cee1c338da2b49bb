package runner

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"golang.org/x/time/rate"

	"github.com/xvander/hostpulse/internal/classify"
	"github.com/xvander/hostpulse/internal/config"
	"github.com/xvander/hostpulse/internal/domains"
	"github.com/xvander/hostpulse/internal/hook"
	"github.com/xvander/hostpulse/internal/netutil"
	"github.com/xvander/hostpulse/internal/output"
	"github.com/xvander/hostpulse/internal/probe"
	"github.com/xvander/hostpulse/internal/resolve"
	"github.com/xvander/hostpulse/internal/scanner"
)

// Run executes a full probing run: load targets, fan them out across
// the worker pool, aggregate every record, write the two artifacts.
func Run(ctx context.Context, opts *config.Options) error {
	targets, err := resolveTargets(opts)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("target list is empty — check the input file")
	}

	if !opts.Quiet {
		printBanner(opts, len(targets))
	}

	res := resolve.New(opts.Resolver, opts.DNSTimeout)
	prb := probe.New(opts)

	var limiter *rate.Limiter
	if opts.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), 1)
	}

	pauser, cleanup := startStdinToggle(opts.Quiet)
	defer cleanup()

	var hookRunner *hook.Runner
	if opts.OnResultCmd != "" {
		hookRunner = hook.NewRunner(opts.OnResultCmd, opts.Quiet)
	}

	console := output.NewConsole(opts.Quiet, opts.NoColor)
	progress := output.NewProgress(len(targets), opts.Quiet)
	agg := output.NewAggregator(len(targets))
	start := time.Now()

	records := scanner.Run(ctx, res, prb, targets, scanner.Config{
		Workers: opts.Workers,
		Jitter:  scanner.NewJitter(opts.DelayMin, opts.DelayMax),
		Limiter: limiter,
		Pauser:  pauser,
	})

	dnsFailed := 0
	for rec := range records {
		progress.Increment()
		agg.Record(rec)
		console.Result(rec)

		if rec.Verdict.Reason == classify.DNSFailed {
			dnsFailed++
		}
		if hookRunner != nil && rec.Verdict.Alive {
			hookRunner.Run(&rec)
		}
	}
	progress.Finish()

	if ctx.Err() != nil && !opts.Quiet {
		fmt.Fprintf(os.Stderr, "\n[!] Interrupted — writing partial results\n")
	}

	all, alive := agg.Finalize()
	if err := output.WriteAliveList(opts.AlivePath(), alive); err != nil {
		return err
	}
	if err := output.WriteCSV(opts.CSVPath(), alive); err != nil {
		return err
	}

	console.Summary(len(all), len(alive), dnsFailed, time.Since(start), opts.AlivePath(), opts.CSVPath())
	return nil
}

// resolveTargets merges the input file and CIDR expansion into one
// normalized, de-duplicated target list.
func resolveTargets(opts *config.Options) ([]string, error) {
	var raw []string

	if opts.InputFile != "" {
		fromFile, err := domains.Load(opts.InputFile)
		if err != nil {
			return nil, err
		}
		raw = append(raw, fromFile...)
	}

	if opts.CIDRTargets != "" {
		fromCIDR, err := netutil.ExpandCIDR(opts.CIDRTargets)
		if err != nil {
			return nil, fmt.Errorf("expanding CIDR: %w", err)
		}
		raw = append(raw, fromCIDR...)
	}

	// A target can appear in both sources; normalize once more.
	return domains.Normalize(raw), nil
}

func printBanner(opts *config.Options, targetCount int) {
	title := color.New(color.FgHiCyan, color.Bold)
	dim := color.New(color.Faint)
	if opts.NoColor {
		title.DisableColor()
		dim.DisableColor()
	}

	title.Fprintln(os.Stderr, "hostpulse — domain liveness probe")
	dim.Fprintf(os.Stderr, "  targets: %d | workers: %d | timeout: %s | dns-timeout: %s\n",
		targetCount, opts.Workers, opts.Timeout, opts.DNSTimeout)
	if opts.HTTPSOnly {
		dim.Fprintln(os.Stderr, "  scheme: https only")
	} else {
		dim.Fprintln(os.Stderr, "  scheme: https, http fallback")
	}
	fmt.Fprintln(os.Stderr)
}
