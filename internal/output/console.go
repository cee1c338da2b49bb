package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/xvander/hostpulse/internal/classify"
	"github.com/xvander/hostpulse/internal/scanner"
)

// Console streams one line per completed probe and a final summary.
type Console struct {
	w     io.Writer
	quiet bool

	green  *color.Color
	yellow *color.Color
	dim    *color.Color
}

// NewConsole creates a console printer. quiet suppresses per-result
// lines and the summary entirely; noColor strips ANSI codes.
func NewConsole(quiet, noColor bool) *Console {
	c := &Console{
		w:      os.Stdout,
		quiet:  quiet,
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		dim:    color.New(color.Faint),
	}
	if noColor {
		c.green.DisableColor()
		c.yellow.DisableColor()
		c.dim.DisableColor()
	}
	return c
}

// Result prints one completed record. Alive targets get a colored
// status line; dead ones are only shown dimmed with their reason.
func (c *Console) Result(rec scanner.Record) {
	if c.quiet {
		return
	}
	switch {
	case rec.Verdict.Reason == classify.ResolvedAndAuthWall:
		c.yellow.Fprintf(c.w, "[403] %s", rec.Domain)
		c.titleSuffix(rec)
	case rec.Verdict.Alive:
		c.green.Fprintf(c.w, "[%d] %s", rec.Probe.StatusCode, rec.Domain)
		c.titleSuffix(rec)
	default:
		c.dim.Fprintf(c.w, "[----] %s (%s)\n", rec.Domain, rec.Verdict.Reason)
	}
}

func (c *Console) titleSuffix(rec scanner.Record) {
	if rec.Probe.Title != "" {
		c.dim.Fprintf(c.w, "  %s", rec.Probe.Title)
	}
	fmt.Fprintln(c.w)
}

// Summary prints the end-of-run accounting.
func (c *Console) Summary(total, alive, dnsFailed int, elapsed time.Duration, alivePath, csvPath string) {
	if c.quiet {
		return
	}
	fmt.Fprintln(c.w)
	c.green.Fprintf(c.w, "Alive: %d/%d", alive, total)
	fmt.Fprintf(c.w, " (dns fast-skipped: %d) in %s\n", dnsFailed, elapsed.Round(time.Millisecond))
	fmt.Fprintf(c.w, "Alive list: %s\n", alivePath)
	fmt.Fprintf(c.w, "Results CSV: %s\n", csvPath)
}
