package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/xvander/hostpulse/internal/scanner"
)

// resultJSON is the JSON payload sent to the hook command via stdin.
type resultJSON struct {
	Domain      string   `json:"domain"`
	URL         string   `json:"url"`
	StatusCode  int      `json:"status"`
	ResolvedIPs []string `json:"resolved_ips,omitempty"`
	Title       string   `json:"title,omitempty"`
	Server      string   `json:"server,omitempty"`
	FinalURL    string   `json:"final_url,omitempty"`
	CertSubject string   `json:"cert_subject,omitempty"`
	Reason      string   `json:"reason"`
}

// Runner executes a shell command for each alive target.
type Runner struct {
	cmd   string
	quiet bool
}

// NewRunner creates a hook runner. cmd is the shell command to execute.
func NewRunner(cmd string, quiet bool) *Runner {
	return &Runner{cmd: cmd, quiet: quiet}
}

// Run executes the hook command with the record as JSON on stdin.
// The command runs with a 30-second timeout. Errors are logged but
// never halt the run.
func (r *Runner) Run(rec *scanner.Record) {
	payload := resultJSON{
		Domain:      rec.Domain,
		URL:         rec.Probe.AttemptedURL,
		StatusCode:  rec.Probe.StatusCode,
		ResolvedIPs: rec.Resolved,
		Title:       rec.Probe.Title,
		Server:      rec.Probe.ServerHeader,
		FinalURL:    rec.Probe.FinalURL,
		CertSubject: rec.Probe.CertSubject,
		Reason:      string(rec.Verdict.Reason),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[hook] marshal error: %v\n", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Replace {domain}, {url}, {status} placeholders in the command.
	expanded := r.cmd
	expanded = strings.ReplaceAll(expanded, "{domain}", rec.Domain)
	expanded = strings.ReplaceAll(expanded, "{url}", rec.Probe.AttemptedURL)
	expanded = strings.ReplaceAll(expanded, "{status}", fmt.Sprintf("%d", rec.Probe.StatusCode))

	shell, args := shellCommand()
	cmd := exec.CommandContext(ctx, shell, append(args, expanded)...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stderr = os.Stderr

	output, err := cmd.Output()
	if err != nil {
		if !r.quiet {
			fmt.Fprintf(os.Stderr, "[hook] error: %v\n", err)
		}
		return
	}
	if len(output) > 0 && !r.quiet {
		fmt.Fprintf(os.Stderr, "[hook] %s", output)
	}
}

func shellCommand() (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C"}
	}
	return "sh", []string{"-c"}
}
