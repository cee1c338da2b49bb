package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/xvander/hostpulse/internal/config"
	"github.com/xvander/hostpulse/internal/runner"
	"github.com/xvander/hostpulse/pkg/version"
)

var opts config.Options

type flagGroup struct {
	title string
	flags []string
}

var helpGroups = []flagGroup{
	{"TARGET", []string{"input", "cidr", "config"}},
	{"RATE-LIMIT", []string{"workers", "delay-min", "delay-max", "timeout", "dns-timeout", "rate"}},
	{"HTTP", []string{"https-only", "resolver"}},
	{"OUTPUT", []string{"out-base", "quiet", "no-color", "on-result"}},
}

var rootCmd = &cobra.Command{
	Use:     "hostpulse -i <file> [flags]",
	Short:   "Fast domain liveness probe with DNS fast-skip",
	Version: version.Version,
	Long: `hostpulse probes large domain lists to find hosts worth investigating.
Domains that fail DNS resolution are skipped without an HTTP request;
the rest are probed over HTTPS (HTTP fallback) with randomized browser
identities. A host counts as alive on any status below 400 or on 403 —
an auth wall still marks a reachable, access-controlled service.`,
	Example: `  hostpulse -i domains.txt
  hostpulse -i domains.txt -w 20 --timeout 5s
  hostpulse -i domains.txt -o acme --delay-min 200ms --delay-max 800ms
  hostpulse --cidr 192.168.1.0/24 --https-only
  hostpulse -i domains.txt --resolver 1.1.1.1 --rate 50
  hostpulse -i domains.txt --on-result "notify-send {domain}"`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if opts.ConfigFile != "" {
			if err := config.ApplyFile(&opts, opts.ConfigFile, cmd.Flags().Changed); err != nil {
				return err
			}
		}
		return opts.Validate()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return runner.Run(ctx, &opts)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.Flags()

	// Target
	f.StringVarP(&opts.InputFile, "input", "i", "", "File with one domain per line")
	f.StringVar(&opts.CIDRTargets, "cidr", "", "CIDR range to probe (e.g. 192.168.1.0/24)")
	f.StringVar(&opts.ConfigFile, "config", "", "YAML config file with run defaults")

	// Performance
	f.IntVarP(&opts.Workers, "workers", "w", 8, "Number of parallel workers")
	f.DurationVar(&opts.DelayMin, "delay-min", 100*time.Millisecond, "Minimum pre-request delay per worker")
	f.DurationVar(&opts.DelayMax, "delay-max", 400*time.Millisecond, "Maximum pre-request delay per worker")
	f.DurationVar(&opts.Timeout, "timeout", 8*time.Second, "Read timeout; connect timeout = min(3s, timeout)")
	f.DurationVar(&opts.DNSTimeout, "dns-timeout", 2*time.Second, "DNS resolve timeout for fast-skipping dead domains")
	f.Float64Var(&opts.Rate, "rate", 0, "Global requests/second cap across all workers (0 = unlimited)")

	// HTTP
	f.BoolVar(&opts.HTTPSOnly, "https-only", false, "Disable the plain-HTTP fallback after an HTTPS connection failure")
	f.StringVar(&opts.Resolver, "resolver", "", "DNS server to query (host or host:port; default: system resolvers)")

	// Output
	f.StringVarP(&opts.OutBase, "out-base", "o", "results", "Output base prefix for the alive list and results CSV")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress banner, progress and per-result lines")
	f.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
	f.StringVar(&opts.OnResultCmd, "on-result", "", "Shell command to run for each alive target (receives JSON on stdin)")

	// Custom help: categorized flags like httpx.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		w := os.Stderr
		fmt.Fprintf(w, "\nhostpulse %s\n\n%s\n\nUsage:\n  %s\n", cmd.Version, cmd.Long, cmd.UseLine())
		fmt.Fprintf(w, "\nExamples:\n%s\n", cmd.Example)
		fmt.Fprintf(w, "\nFlags:\n")
		for _, g := range helpGroups {
			fmt.Fprintf(w, "\n%s:\n", g.title)
			for _, name := range g.flags {
				if f := cmd.Flags().Lookup(name); f != nil {
					fmt.Fprintln(w, formatFlag(f))
				}
			}
		}
		fmt.Fprintln(w)
	})
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func formatFlag(f *pflag.Flag) string {
	var left string
	if f.Shorthand != "" {
		left = fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	} else {
		left = fmt.Sprintf("    --%s", f.Name)
	}

	typ := f.Value.Type()
	if typ != "bool" {
		left += " " + typ
	}

	// Pad to fixed column width for aligned descriptions.
	const col = 36
	for len(left) < col {
		left += " "
	}

	right := f.Usage
	def := f.DefValue
	if def != "" && def != "false" && def != "0" && def != "0s" {
		right += fmt.Sprintf(" (default %s)", def)
	}

	return "   " + left + right
}
