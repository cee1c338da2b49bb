package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML config file layout. Every field is
// optional; zero values leave the corresponding option untouched.
type fileConfig struct {
	Input   string  `yaml:"input"`
	OutBase string  `yaml:"out_base"`
	Workers int     `yaml:"workers"`
	Rate    float64 `yaml:"rate"`

	Timeouts struct {
		Request float64 `yaml:"request_seconds"`
		DNS     float64 `yaml:"dns_seconds"`
	} `yaml:"timeouts"`

	Delay struct {
		Min float64 `yaml:"min_seconds"`
		Max float64 `yaml:"max_seconds"`
	} `yaml:"delay"`

	HTTPSOnly bool   `yaml:"https_only"`
	Resolver  string `yaml:"resolver"`
}

// ApplyFile merges settings from a YAML config file into opts. Only
// fields the caller has not already set on the command line should be
// merged, so the CLI layer passes a set of changed flag names.
func ApplyFile(opts *Options, path string, changed func(flag string) bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	set := func(flag string) bool { return !changed(flag) }

	if fc.Input != "" && set("input") {
		opts.InputFile = fc.Input
	}
	if fc.OutBase != "" && set("out-base") {
		opts.OutBase = fc.OutBase
	}
	if fc.Workers > 0 && set("workers") {
		opts.Workers = fc.Workers
	}
	if fc.Rate > 0 && set("rate") {
		opts.Rate = fc.Rate
	}
	if fc.Timeouts.Request > 0 && set("timeout") {
		opts.Timeout = seconds(fc.Timeouts.Request)
	}
	if fc.Timeouts.DNS > 0 && set("dns-timeout") {
		opts.DNSTimeout = seconds(fc.Timeouts.DNS)
	}
	if fc.Delay.Min > 0 && set("delay-min") {
		opts.DelayMin = seconds(fc.Delay.Min)
	}
	if fc.Delay.Max > 0 && set("delay-max") {
		opts.DelayMax = seconds(fc.Delay.Max)
	}
	if fc.HTTPSOnly && set("https-only") {
		opts.HTTPSOnly = true
	}
	if fc.Resolver != "" && set("resolver") {
		opts.Resolver = fc.Resolver
	}
	return nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
