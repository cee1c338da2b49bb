// Package classify holds the liveness policy. A target is alive when
// it resolves and answers with a status below 400, or with exactly 403:
// an auth wall still marks a reachable, access-controlled service worth
// a closer look. 401, 404 and 5xx do not count — the boundary is
// deliberately narrow.
package classify

import (
	"github.com/xvander/hostpulse/internal/probe"
	"github.com/xvander/hostpulse/internal/resolve"
)

// Reason explains a verdict.
type Reason string

const (
	ResolvedAndOK       Reason = "resolved_and_ok"
	ResolvedAndAuthWall Reason = "resolved_and_auth_wall"
	DNSFailed           Reason = "dns_failed"
	ConnectionFailed    Reason = "connection_failed"
	Timeout             Reason = "timeout"
	OtherError          Reason = "other_error"
)

// Verdict is the liveness decision for one target.
type Verdict struct {
	Alive  bool
	Reason Reason
}

// Classify applies the liveness policy to a resolution and probe pair.
// Pure function: same inputs, same verdict.
func Classify(res resolve.Result, out probe.Outcome) Verdict {
	if !res.OK() {
		return Verdict{Reason: DNSFailed}
	}
	if out.StatusCode == 0 {
		if out.Failure == probe.FailTimeout {
			return Verdict{Reason: Timeout}
		}
		return Verdict{Reason: ConnectionFailed}
	}
	if out.StatusCode < 400 {
		return Verdict{Alive: true, Reason: ResolvedAndOK}
	}
	if out.StatusCode == 403 {
		return Verdict{Alive: true, Reason: ResolvedAndAuthWall}
	}
	return Verdict{Reason: OtherError}
}
