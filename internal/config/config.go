package config

import (
	"fmt"
	"strings"
	"time"
)

// Options holds all configuration for a hostpulse run. It is built once
// at startup and treated as read-only by every worker.
type Options struct {
	// Target
	InputFile   string
	CIDRTargets string
	ConfigFile  string

	// Performance
	Workers    int
	Timeout    time.Duration // read timeout; connect timeout = min(3s, Timeout)
	DNSTimeout time.Duration
	DelayMin   time.Duration
	DelayMax   time.Duration
	Rate       float64 // global requests/second cap, 0 = unlimited

	// HTTP
	HTTPSOnly bool
	Resolver  string // "host" or "host:port"; empty = system resolvers

	// Output
	OutBase     string
	Quiet       bool
	NoColor     bool
	OnResultCmd string
}

// ConnectTimeout returns the dial timeout budget: min(3s, Timeout).
func (o *Options) ConnectTimeout() time.Duration {
	if o.Timeout < 3*time.Second {
		return o.Timeout
	}
	return 3 * time.Second
}

// AlivePath returns the path of the alive-list artifact for the
// configured output base.
func (o *Options) AlivePath() string {
	return o.prefix() + "results_alive.txt"
}

// CSVPath returns the path of the CSV artifact for the configured
// output base.
func (o *Options) CSVPath() string {
	return o.prefix() + "results.csv"
}

// The default base "results" keeps the short artifact names; any other
// base is prepended so runs against different scopes don't clobber
// each other.
func (o *Options) prefix() string {
	if o.OutBase == "" || o.OutBase == "results" {
		return ""
	}
	return o.OutBase + "_"
}

// Validate checks the options for fatal configuration errors and
// normalizes the resolver address. It runs before any scheduling.
func (o *Options) Validate() error {
	if o.InputFile == "" && o.CIDRTargets == "" {
		return fmt.Errorf("no targets: use -i or --cidr")
	}
	if o.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", o.Workers)
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", o.Timeout)
	}
	if o.DNSTimeout <= 0 {
		return fmt.Errorf("dns-timeout must be positive, got %s", o.DNSTimeout)
	}
	if o.DelayMin < 0 || o.DelayMax < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	if o.DelayMin > o.DelayMax {
		return fmt.Errorf("delay-min (%s) exceeds delay-max (%s)", o.DelayMin, o.DelayMax)
	}
	if o.Rate < 0 {
		return fmt.Errorf("rate must not be negative, got %g", o.Rate)
	}
	if o.Resolver != "" && !strings.Contains(o.Resolver, ":") {
		o.Resolver += ":53"
	}
	return nil
}
