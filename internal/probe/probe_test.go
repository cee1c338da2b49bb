package probe

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/xvander/hostpulse/internal/config"
)

func testOpts() *config.Options {
	return &config.Options{
		Workers: 2,
		Timeout: 5 * time.Second,
	}
}

// hostOf strips the scheme from an httptest server URL, leaving the
// host:port form probes expect as a target.
func hostOf(t *testing.T, serverURL string) string {
	t.Helper()
	host := strings.TrimPrefix(serverURL, "https://")
	host = strings.TrimPrefix(host, "http://")
	return host
}

func TestProbeTLSServer(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "nginx/1.25")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html><head><title>Admin Portal</title></head><body>hi</body></html>")
	}))
	defer srv.Close()

	p := New(testOpts())
	out := p.Probe(context.Background(), hostOf(t, srv.URL))

	if out.StatusCode != 200 {
		t.Fatalf("status = %d, want 200 (err: %v)", out.StatusCode, out.Err)
	}
	if out.ServerHeader != "nginx/1.25" {
		t.Errorf("server header = %q", out.ServerHeader)
	}
	if out.Title != "Admin Portal" {
		t.Errorf("title = %q, want Admin Portal", out.Title)
	}
	if out.CertSubject == "" {
		t.Error("expected cert subject from the insecure TLS handshake")
	}
	if !strings.HasPrefix(out.AttemptedURL, "https://") {
		t.Errorf("attempted URL = %q, want https scheme", out.AttemptedURL)
	}
	if out.Duration <= 0 {
		t.Error("expected a positive duration")
	}
}

func TestProbeHTTPFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer srv.Close()

	// Plain HTTP server: the HTTPS attempt fails at the transport
	// layer, the HTTP fallback succeeds.
	p := New(testOpts())
	out := p.Probe(context.Background(), hostOf(t, srv.URL))

	if out.StatusCode != 200 {
		t.Fatalf("status = %d, want 200 via fallback (err: %v)", out.StatusCode, out.Err)
	}
	if !strings.HasPrefix(out.AttemptedURL, "http://") {
		t.Errorf("attempted URL = %q, want http scheme after fallback", out.AttemptedURL)
	}
	if out.CertSubject != "" {
		t.Errorf("cert subject = %q, want empty for plain HTTP", out.CertSubject)
	}
}

func TestProbeHTTPSOnlyNoFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer srv.Close()

	opts := testOpts()
	opts.HTTPSOnly = true
	p := New(opts)
	out := p.Probe(context.Background(), hostOf(t, srv.URL))

	if out.StatusCode != 0 {
		t.Fatalf("status = %d, want no status with --https-only against a plain server", out.StatusCode)
	}
	if out.Failure == "" {
		t.Error("expected a failure class")
	}
}

func TestProbeConnectionRefused(t *testing.T) {
	// Reserve a port, then close it so nothing listens there.
	srv := httptest.NewServer(http.NotFoundHandler())
	host := hostOf(t, srv.URL)
	srv.Close()

	p := New(testOpts())
	out := p.Probe(context.Background(), host)

	if out.StatusCode != 0 {
		t.Fatalf("status = %d, want 0 for refused connection", out.StatusCode)
	}
	if out.Failure != FailConnection {
		t.Errorf("failure = %q, want %q (err: %v)", out.Failure, FailConnection, out.Err)
	}
}

func TestProbeTimeout(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	opts := testOpts()
	opts.Timeout = 300 * time.Millisecond
	p := New(opts)
	out := p.Probe(context.Background(), hostOf(t, srv.URL))

	if out.StatusCode != 0 {
		t.Fatalf("status = %d, want 0 for timeout", out.StatusCode)
	}
	if out.Failure != FailTimeout {
		t.Errorf("failure = %q, want %q (err: %v)", out.Failure, FailTimeout, out.Err)
	}
}

func TestProbeRedirectSetsFinalURL(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/landing", http.StatusFound)
			return
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	p := New(testOpts())
	out := p.Probe(context.Background(), hostOf(t, srv.URL))

	if out.StatusCode != 200 {
		t.Fatalf("status = %d, want 200 after redirect", out.StatusCode)
	}
	if !strings.HasSuffix(out.FinalURL, "/landing") {
		t.Errorf("final URL = %q, want /landing suffix", out.FinalURL)
	}
}

func TestProbeSendsPooledIdentity(t *testing.T) {
	var gotUA string
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		w.WriteHeader(200)
	}))
	defer srv.Close()

	p := New(testOpts())
	p.Probe(context.Background(), hostOf(t, srv.URL))

	found := false
	for _, id := range identities {
		if gotUA == id {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("User-Agent %q is not from the identity pool", gotUA)
	}
}

func TestPickIdentity(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		ua := PickIdentity()
		seen[ua] = true
		ok := false
		for _, id := range identities {
			if ua == id {
				ok = true
			}
		}
		if !ok {
			t.Fatalf("PickIdentity returned %q, not in pool", ua)
		}
	}
	if len(seen) < 2 {
		t.Error("expected PickIdentity to vary across calls")
	}
}
