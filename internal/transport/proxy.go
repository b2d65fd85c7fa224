package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"skewbot/internal/logger"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"
)

const poolMaxBody = 1 << 20

// PoolConfig describes a public proxy-list source.
type PoolConfig struct {
	SourceURL string
	Protocol  string
	Limit     int
	Timeout   time.Duration
}

// Pool is a lazily refreshed list of free proxy endpoints. The source is
// fetched at most once per process; afterwards the pool is read-only. A
// failed refresh degrades to an empty pool instead of surfacing an error,
// so the caller falls back to direct paths.
type Pool struct {
	cfg    PoolConfig
	client *http.Client
	group  singleflight.Group

	mu      sync.Mutex
	loaded  bool
	proxies []*url.URL
}

func NewPool(cfg PoolConfig) *Pool {
	if cfg.Protocol == "" {
		cfg.Protocol = "http"
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 10
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Pool{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Proxies returns the pool contents, refreshing them on first use. The
// returned slice must not be mutated by callers.
func (p *Pool) Proxies(ctx context.Context) []*url.URL {
	p.mu.Lock()
	if p.loaded {
		proxies := p.proxies
		p.mu.Unlock()
		return proxies
	}
	p.mu.Unlock()

	// Concurrent first callers share a single refresh.
	out, _, _ := p.group.Do("refresh", func() (any, error) {
		proxies, err := p.refresh(ctx)
		if err != nil {
			logger.Warnf("proxy pool refresh failed, continuing without proxies: %v", err)
			proxies = nil
		}
		p.mu.Lock()
		p.loaded = true
		p.proxies = proxies
		p.mu.Unlock()
		return proxies, nil
	})
	proxies, _ := out.([]*url.URL)
	return proxies
}

func (p *Pool) refresh(ctx context.Context) ([]*url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.SourceURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("proxy source status=%d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, poolMaxBody))
	if err != nil {
		return nil, err
	}

	entries := parseProxyList(body)
	proxies := make([]*url.URL, 0, p.cfg.Limit)
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		u, ok := p.normalize(entry)
		if !ok {
			continue
		}
		key := u.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		proxies = append(proxies, u)
		if len(proxies) >= p.cfg.Limit {
			break
		}
	}
	logger.Infof("proxy pool loaded: %d %s proxies from source", len(proxies), p.cfg.Protocol)
	return proxies, nil
}

// parseProxyList accepts the two common source shapes: a plain text list of
// host:port lines, or a JSON document (top-level array, or an object with a
// "data"/"proxies" array of strings or {ip,port} objects).
func parseProxyList(body []byte) []string {
	if gjson.ValidBytes(body) {
		doc := gjson.ParseBytes(body)
		arr := doc
		if doc.IsObject() {
			for _, field := range []string{"data", "proxies"} {
				if candidate := doc.Get(field); candidate.IsArray() {
					arr = candidate
					break
				}
			}
		}
		if arr.IsArray() {
			var out []string
			arr.ForEach(func(_, item gjson.Result) bool {
				switch {
				case item.Type == gjson.String:
					out = append(out, item.String())
				case item.IsObject():
					ip := item.Get("ip").String()
					port := item.Get("port").String()
					if ip != "" && port != "" {
						out = append(out, ip+":"+port)
					}
				}
				return true
			})
			return out
		}
	}

	lines := strings.Split(string(body), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// normalize applies the protocol filter: bare host:port entries inherit the
// configured scheme, entries carrying a different scheme are dropped.
func (p *Pool) normalize(entry string) (*url.URL, bool) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return nil, false
	}
	if !strings.Contains(entry, "://") {
		entry = p.cfg.Protocol + "://" + entry
	}
	u, err := url.Parse(entry)
	if err != nil || u.Host == "" {
		return nil, false
	}
	if !strings.EqualFold(u.Scheme, p.cfg.Protocol) {
		return nil, false
	}
	return u, true
}
