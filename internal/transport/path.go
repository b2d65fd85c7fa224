package transport

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Path is one concrete way to reach the API: a base-URL mirror plus an
// optional forwarding proxy. Immutable once built.
type Path struct {
	BaseURL string
	Proxy   *url.URL
}

func (p Path) String() string {
	if p.Proxy == nil {
		return p.BaseURL + " (direct)"
	}
	return fmt.Sprintf("%s via %s", p.BaseURL, p.Proxy.Redacted())
}

// Resolver enumerates the transport paths for one logical fetch. Mirrors are
// iterated in configured order (outer loop); for each mirror every proxy
// candidate is tried (inner loop) before advancing to the next mirror.
type Resolver struct {
	bases  []string
	static *url.URL
	pool   *Pool
}

func NewResolver(baseURLs []string, staticProxy string, pool *Pool) (*Resolver, error) {
	bases := make([]string, 0, len(baseURLs))
	for _, base := range baseURLs {
		base = strings.TrimRight(strings.TrimSpace(base), "/")
		if base != "" {
			bases = append(bases, base)
		}
	}
	if len(bases) == 0 {
		return nil, fmt.Errorf("at least one base url is required")
	}

	var static *url.URL
	if trimmed := strings.TrimSpace(staticProxy); trimmed != "" {
		u, err := url.Parse(trimmed)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid static proxy url: %q", staticProxy)
		}
		static = u
	}

	return &Resolver{bases: bases, static: static, pool: pool}, nil
}

// Resolve computes the path sequence once; the slice is owned by the caller
// and does not change even if the pool is refreshed concurrently elsewhere.
func (r *Resolver) Resolve(ctx context.Context) []Path {
	proxies := r.proxyCandidates(ctx)
	paths := make([]Path, 0, len(r.bases)*len(proxies))
	for _, base := range r.bases {
		for _, proxy := range proxies {
			paths = append(paths, Path{BaseURL: base, Proxy: proxy})
		}
	}
	return paths
}

// proxyCandidates returns the inner-loop sequence. Proxies are best effort:
// when the pool yields nothing (disabled, empty, or refresh failed) the
// candidates degrade to a single direct entry.
func (r *Resolver) proxyCandidates(ctx context.Context) []*url.URL {
	if r.static != nil {
		return []*url.URL{r.static}
	}
	if r.pool != nil {
		if proxies := r.pool.Proxies(ctx); len(proxies) > 0 {
			return proxies
		}
	}
	return []*url.URL{nil}
}
