package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func poolFromBody(t *testing.T, body string, cfg PoolConfig) []string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	cfg.SourceURL = srv.URL
	if cfg.Timeout == 0 {
		cfg.Timeout = time.Second
	}
	pool := NewPool(cfg)
	proxies := pool.Proxies(context.Background())
	out := make([]string, 0, len(proxies))
	for _, p := range proxies {
		out = append(out, p.String())
	}
	return out
}

func TestPoolParsesPlainTextLines(t *testing.T) {
	got := poolFromBody(t, "# free proxies\n1.1.1.1:8080\n\n2.2.2.2:3128\n", PoolConfig{Protocol: "http", Limit: 10})
	require.Len(t, got, 2)
	assert.Equal(t, "http://1.1.1.1:8080", got[0])
	assert.Equal(t, "http://2.2.2.2:3128", got[1])
}

func TestPoolParsesJSONArray(t *testing.T) {
	got := poolFromBody(t, `["1.1.1.1:8080","socks5://3.3.3.3:1080","2.2.2.2:3128"]`, PoolConfig{Protocol: "http", Limit: 10})
	require.Len(t, got, 2)
	assert.Equal(t, "http://1.1.1.1:8080", got[0])
	assert.Equal(t, "http://2.2.2.2:3128", got[1])
}

func TestPoolParsesJSONObjects(t *testing.T) {
	body := `{"data":[{"ip":"1.1.1.1","port":"8080"},{"ip":"2.2.2.2","port":3128}]}`
	got := poolFromBody(t, body, PoolConfig{Protocol: "http", Limit: 10})
	require.Len(t, got, 2)
	assert.Equal(t, "http://1.1.1.1:8080", got[0])
}

func TestPoolDeduplicatesAndCaps(t *testing.T) {
	body := "1.1.1.1:8080\n1.1.1.1:8080\n2.2.2.2:8080\n3.3.3.3:8080\n"
	got := poolFromBody(t, body, PoolConfig{Protocol: "http", Limit: 2})
	require.Len(t, got, 2)
	assert.Equal(t, "http://1.1.1.1:8080", got[0])
	assert.Equal(t, "http://2.2.2.2:8080", got[1])
}

func TestPoolProtocolFilter(t *testing.T) {
	body := "socks5://1.1.1.1:1080\nhttp://2.2.2.2:8080\n3.3.3.3:1080\n"
	got := poolFromBody(t, body, PoolConfig{Protocol: "socks5", Limit: 10})
	require.Len(t, got, 2)
	assert.Equal(t, "socks5://1.1.1.1:1080", got[0])
	assert.Equal(t, "socks5://3.3.3.3:1080", got[1])
}

func TestPoolRefreshesOnce(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("1.1.1.1:8080\n"))
	}))
	defer srv.Close()

	pool := NewPool(PoolConfig{SourceURL: srv.URL, Protocol: "http", Limit: 5, Timeout: time.Second})
	first := pool.Proxies(context.Background())
	second := pool.Proxies(context.Background())

	require.Len(t, first, 1)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}
