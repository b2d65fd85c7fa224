package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/adshao/go-binance/v2/futures"
)

// Some regions reject anonymous clients with a legal-block status, so every
// outbound request carries an identifying agent string.
const userAgent = "skewbot/1.0"

// Call executes one logical API request against the client bound to the
// current transport path.
type Call func(ctx context.Context, client *futures.Client) error

// RetryPolicy bounds the in-path retry loop.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

func (p RetryPolicy) backoffFor(attempt int) time.Duration {
	return p.Backoff * time.Duration(1<<uint(attempt-1))
}

// Fetcher runs a Call through a single transport path, retrying transient
// failures in place with exponential backoff. Fatal failures surface
// immediately; the orchestrator decides whether another path gets a turn.
type Fetcher struct {
	policy  RetryPolicy
	timeout time.Duration

	sleep     func(time.Duration)
	newClient func(Path) (*futures.Client, *statusTap, error)
}

func NewFetcher(policy RetryPolicy, timeout time.Duration) *Fetcher {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	f := &Fetcher{
		policy:  policy,
		timeout: timeout,
		sleep:   time.Sleep,
	}
	f.newClient = func(p Path) (*futures.Client, *statusTap, error) {
		return newPathClient(p, f.timeout)
	}
	return f
}

func (f *Fetcher) Fetch(ctx context.Context, path Path, call Call) error {
	client, tap, err := f.newClient(path)
	if err != nil {
		return &FatalError{PathSpecific: true, Err: err}
	}

	var last error
	for attempt := 1; attempt <= f.policy.MaxAttempts; attempt++ {
		tap.reset()
		err := call(ctx, client)
		if err == nil {
			return nil
		}
		classified := classify(err, tap.status())
		var transient *TransientError
		if !errors.As(classified, &transient) {
			return classified
		}
		last = classified
		if attempt < f.policy.MaxAttempts {
			f.sleep(f.policy.backoffFor(attempt))
		}
	}
	return last
}

// newPathClient builds a futures client bound to one mirror and, when set,
// one forwarding proxy.
func newPathClient(path Path, timeout time.Duration) (*futures.Client, *statusTap, error) {
	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok || base == nil {
		return nil, nil, fmt.Errorf("http DefaultTransport is not *http.Transport")
	}
	rt := base.Clone()
	if path.Proxy != nil {
		rt.Proxy = http.ProxyURL(path.Proxy)
	}
	tap := &statusTap{base: rt}

	client := futures.NewClient("", "")
	client.BaseURL = path.BaseURL
	client.UserAgent = userAgent
	client.HTTPClient = &http.Client{Timeout: timeout, Transport: tap}
	return client, tap, nil
}

// statusTap records the status code of the most recent response so failures
// can be classified even when the SDK collapses them into opaque errors.
type statusTap struct {
	base http.RoundTripper

	mu   sync.Mutex
	code int
}

func (t *statusTap) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if resp != nil {
		t.mu.Lock()
		t.code = resp.StatusCode
		t.mu.Unlock()
	}
	return resp, err
}

func (t *statusTap) status() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.code
}

func (t *statusTap) reset() {
	t.mu.Lock()
	t.code = 0
	t.mu.Unlock()
}
