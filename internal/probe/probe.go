package probe

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/xvander/hostpulse/internal/config"
)

// Failure classes for probes that never produced a status code.
const (
	FailTimeout    = "timeout"
	FailConnection = "connection_error"
	FailOther      = "other"
)

// Read at most this much of a body when hunting for a <title>.
const maxBodyBytes = 512 * 1024

const maxCertSubjectLen = 200

// Outcome holds everything a single probe learned about a target.
// StatusCode 0 means the request never completed; Failure then says why.
type Outcome struct {
	AttemptedURL string
	StatusCode   int
	ServerHeader string
	ContentType  string
	Title        string
	Duration     time.Duration
	FinalURL     string // set only when redirects moved us off AttemptedURL
	CertSubject  string
	Failure      string
	Err          error
}

// Prober issues HTTP(S) probes with certificate validation disabled.
// Untrusted or self-signed certificates must still count as alive, so
// the insecure transport is deliberate and scoped to this client.
type Prober struct {
	client    *http.Client
	httpsOnly bool
}

// New creates a Prober from the run options. The dial budget is
// min(3s, timeout); the overall request (including body read) is
// bounded by the full timeout.
func New(opts *config.Options) *Prober {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		DialContext: (&net.Dialer{
			Timeout: opts.ConnectTimeout(),
		}).DialContext,
		MaxIdleConnsPerHost: opts.Workers,
		MaxIdleConns:        opts.Workers,
	}

	return &Prober{
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
		httpsOnly: opts.HTTPSOnly,
	}
}

// Probe issues one GET against the target, HTTPS first. When fallback
// is enabled and the HTTPS attempt fails at the transport layer
// (anything but a timeout), the same target is retried over plain HTTP.
func (p *Prober) Probe(ctx context.Context, target string) Outcome {
	out := p.attempt(ctx, "https://"+target)
	if out.StatusCode != 0 || p.httpsOnly || out.Failure == FailTimeout {
		return out
	}
	if ctx.Err() != nil {
		return out
	}
	return p.attempt(ctx, "http://"+target)
}

func (p *Prober) attempt(ctx context.Context, url string) Outcome {
	out := Outcome{AttemptedURL: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		out.Failure = FailOther
		out.Err = err
		return out
	}
	req.Header.Set("User-Agent", PickIdentity())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	start := time.Now()
	resp, err := p.client.Do(req)
	out.Duration = time.Since(start)
	if err != nil {
		out.Failure = classifyErr(err)
		out.Err = err
		return out
	}
	defer resp.Body.Close()

	out.StatusCode = resp.StatusCode
	out.ServerHeader = resp.Header.Get("Server")
	out.ContentType = resp.Header.Get("Content-Type")

	if final := resp.Request.URL.String(); final != url {
		out.FinalURL = final
	}

	if resp.TLS != nil && len(resp.TLS.PeerCertificates) > 0 {
		subject := resp.TLS.PeerCertificates[0].Subject.String()
		if len(subject) > maxCertSubjectLen {
			subject = subject[:maxCertSubjectLen]
		}
		out.CertSubject = subject
	}

	if strings.Contains(strings.ToLower(out.ContentType), "text/html") {
		// Best effort: a read error here leaves the title empty, it
		// does not fail the probe.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		out.Title = ExtractTitle(bytes.NewReader(body))
	}
	out.Duration = time.Since(start)

	return out
}

func classifyErr(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailTimeout
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return FailConnection
	}
	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return FailConnection
	}
	return FailOther
}
