// Package resolve answers one question per target: does this name
// resolve at all? A failure here is the fast-skip path — the target is
// marked dead without ever opening an HTTP connection.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
)

// ErrTimeout marks a resolution that did not finish within the DNS
// timeout budget.
var ErrTimeout = errors.New("dns timeout")

// Result is the outcome of a single resolution attempt. Addrs is empty
// whenever Err is non-nil.
type Result struct {
	Domain string
	Addrs  []string
	Err    error
}

// OK reports whether the target resolved to at least one address.
func (r Result) OK() bool {
	return r.Err == nil
}

// Resolver issues bounded-timeout A/AAAA queries. One resolution
// attempt per target per run — no retries.
type Resolver struct {
	servers []string
	timeout time.Duration
	client  *dns.Client
}

// New creates a Resolver. If server is empty, the nameservers from
// /etc/resolv.conf are used, falling back to 8.8.8.8 when the file
// cannot be read (containers, Windows).
func New(server string, timeout time.Duration) *Resolver {
	var servers []string
	if server != "" {
		servers = []string{server}
	} else if conf, err := dns.ClientConfigFromFile("/etc/resolv.conf"); err == nil {
		for _, s := range conf.Servers {
			servers = append(servers, net.JoinHostPort(s, conf.Port))
		}
	}
	if len(servers) == 0 {
		servers = []string{"8.8.8.8:53"}
	}
	return &Resolver{
		servers: servers,
		timeout: timeout,
		client:  &dns.Client{Timeout: timeout},
	}
}

// Resolve looks up the addresses for target. The target may carry a
// port suffix, which is ignored for the lookup. IP literals short-
// circuit: they resolve to themselves without a query, which is what
// makes CIDR sweeps work.
func (r *Resolver) Resolve(ctx context.Context, target string) Result {
	host := stripPort(target)

	if ip := net.ParseIP(host); ip != nil {
		return Result{Domain: target, Addrs: []string{host}}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var addrs []string
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		found, err := r.query(ctx, host, qtype)
		if err != nil {
			return Result{Domain: target, Err: err}
		}
		addrs = append(addrs, found...)
		if qtype == dns.TypeA && len(addrs) > 0 {
			break // v4 answers suffice for liveness
		}
	}

	if len(addrs) == 0 {
		return Result{Domain: target, Err: fmt.Errorf("no A/AAAA records for %s", host)}
	}
	return Result{Domain: target, Addrs: dedupe(addrs)}
}

func (r *Resolver) query(ctx context.Context, host string, qtype uint16) ([]string, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(host), qtype)
	msg.RecursionDesired = true

	reply, _, err := r.client.ExchangeContext(ctx, msg, r.servers[0])
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, r.timeout)
		}
		return nil, fmt.Errorf("dns query: %w", err)
	}
	if reply.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("dns rcode %s for %s", dns.RcodeToString[reply.Rcode], host)
	}

	var addrs []string
	for _, rr := range reply.Answer {
		switch a := rr.(type) {
		case *dns.A:
			addrs = append(addrs, a.A.String())
		case *dns.AAAA:
			addrs = append(addrs, a.AAAA.String())
		}
	}
	return addrs, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func stripPort(target string) string {
	if host, _, err := net.SplitHostPort(target); err == nil {
		return host
	}
	return target
}

func dedupe(addrs []string) []string {
	seen := make(map[string]struct{}, len(addrs))
	out := addrs[:0]
	for _, a := range addrs {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
