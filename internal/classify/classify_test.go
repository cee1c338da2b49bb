package classify

import (
	"errors"
	"testing"

	"github.com/xvander/hostpulse/internal/probe"
	"github.com/xvander/hostpulse/internal/resolve"
)

func resolved() resolve.Result {
	return resolve.Result{Domain: "example.com", Addrs: []string{"203.0.113.1"}}
}

func TestClassifyStatusBoundary(t *testing.T) {
	tests := []struct {
		status     int
		wantAlive  bool
		wantReason Reason
	}{
		{200, true, ResolvedAndOK},
		{301, true, ResolvedAndOK},
		{399, true, ResolvedAndOK},
		{400, false, OtherError},
		{401, false, OtherError},
		{403, true, ResolvedAndAuthWall},
		{404, false, OtherError},
		{500, false, OtherError},
	}

	for _, tt := range tests {
		v := Classify(resolved(), probe.Outcome{StatusCode: tt.status})
		if v.Alive != tt.wantAlive {
			t.Errorf("status %d: alive = %v, want %v", tt.status, v.Alive, tt.wantAlive)
		}
		if v.Reason != tt.wantReason {
			t.Errorf("status %d: reason = %s, want %s", tt.status, v.Reason, tt.wantReason)
		}
	}
}

func TestClassifyDNSFailure(t *testing.T) {
	res := resolve.Result{Domain: "dead.example", Err: errors.New("nxdomain")}
	v := Classify(res, probe.Outcome{})
	if v.Alive {
		t.Error("dns failure must not be alive")
	}
	if v.Reason != DNSFailed {
		t.Errorf("reason = %s, want %s", v.Reason, DNSFailed)
	}
}

func TestClassifyTransportFailures(t *testing.T) {
	tests := []struct {
		failure string
		want    Reason
	}{
		{probe.FailTimeout, Timeout},
		{probe.FailConnection, ConnectionFailed},
		{probe.FailOther, ConnectionFailed},
	}

	for _, tt := range tests {
		out := probe.Outcome{Failure: tt.failure, Err: errors.New(tt.failure)}
		v := Classify(resolved(), out)
		if v.Alive {
			t.Errorf("failure %q must not be alive", tt.failure)
		}
		if v.Reason != tt.want {
			t.Errorf("failure %q: reason = %s, want %s", tt.failure, v.Reason, tt.want)
		}
	}
}
