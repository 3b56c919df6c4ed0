package forex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ratesBody = `{"base":"USD","rates":{"USD":1,"AUD":1.5,"EUR":0.9,"JPY":150}}`

func newServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/USD", r.URL.Path)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func assertRate(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got.Round(6)), "want %s, got %s", want, got)
}

func TestProviderConvertsToBase(t *testing.T) {
	srv, hits := newServer(t, http.StatusOK, ratesBody)
	p := NewProvider(Options{Base: "AUD", URL: srv.URL, Logger: zerolog.Nop()})
	ctx := context.Background()

	assertRate(t, "1.5", p.Rate(ctx, "USD"))
	assertRate(t, "1.666667", p.Rate(ctx, "EUR"))
	assertRate(t, "0.01", p.Rate(ctx, "jpy"))
	assertRate(t, "1", p.Rate(ctx, "AUD"))
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestProviderFallsBackToOne(t *testing.T) {
	srv, _ := newServer(t, http.StatusInternalServerError, "oops")
	p := NewProvider(Options{Base: "AUD", URL: srv.URL, Logger: zerolog.Nop()})

	assertRate(t, "1", p.Rate(context.Background(), "USD"))
}

func TestProviderUnknownCurrency(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, ratesBody)
	p := NewProvider(Options{Base: "AUD", URL: srv.URL, Logger: zerolog.Nop()})

	assertRate(t, "1", p.Rate(context.Background(), "XYZ"))
}

func TestProviderCache(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "forex-rates.json")
	srv, hits := newServer(t, http.StatusOK, ratesBody)

	p := NewProvider(Options{Base: "AUD", URL: srv.URL, CachePath: cachePath, TTL: time.Hour, Logger: zerolog.Nop()})
	assertRate(t, "1.5", p.Rate(context.Background(), "USD"))
	require.FileExists(t, cachePath)

	// A fresh provider reads the cache instead of the network.
	p2 := NewProvider(Options{Base: "AUD", URL: srv.URL, CachePath: cachePath, TTL: time.Hour, Logger: zerolog.Nop()})
	assertRate(t, "1.5", p2.Rate(context.Background(), "USD"))
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))

	// Expired cache refetches.
	p2.mu.Lock()
	p2.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	p2.mu.Unlock()
	p2.Rate(context.Background(), "USD")
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestProviderStaleCacheOnFailure(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "forex-rates.json")
	stale := `{"version":1,"timestamp":"2020-01-01T00:00:00Z","base":"USD","rates":{"AUD":"1.25"}}`
	require.NoError(t, os.WriteFile(cachePath, []byte(stale), 0644))

	srv, _ := newServer(t, http.StatusBadGateway, "")
	p := NewProvider(Options{Base: "AUD", URL: srv.URL, CachePath: cachePath, Logger: zerolog.Nop()})

	assertRate(t, "1.25", p.Rate(context.Background(), "USD"))
}

func TestStatic(t *testing.T) {
	rates, err := ParseRates(map[string]string{"usd": "1.35", "EUR": " 1.62 "})
	require.NoError(t, err)

	s := Static{Rates: rates}
	assertRate(t, "1.35", s.Rate(context.Background(), "USD"))
	assertRate(t, "1", s.Rate(context.Background(), "GBP"))

	s.Next = Static{Rates: map[string]decimal.Decimal{"GBP": decimal.RequireFromString("1.9")}}
	assertRate(t, "1.9", s.Rate(context.Background(), "GBP"))

	_, err = ParseRates(map[string]string{"USD": "-1"})
	assert.Error(t, err)
	_, err = ParseRates(map[string]string{"USD": "abc"})
	assert.Error(t, err)
}
