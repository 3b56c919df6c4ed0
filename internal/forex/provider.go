// Package forex supplies exchange rates to the currency engine. Every
// failure path degrades to a unit rate; nothing here returns an error to
// the write pipeline.
package forex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	DefaultURL     = "https://api.exchangerate-api.com/v4/latest"
	RefCurrency    = "USD"
	cacheVersion   = 1
	defaultTTL     = time.Hour
	defaultTimeout = 5 * time.Second
	cacheFileName  = "forex-rates.json"
)

type Options struct {
	Base      string
	URL       string
	CachePath string
	TTL       time.Duration
	Timeout   time.Duration
	Logger    zerolog.Logger
}

// Provider reads USD-referenced rates from exchangerate-api, caches them on
// disk and converts them to the base currency.
type Provider struct {
	base      string
	url       string
	cachePath string
	ttl       time.Duration
	client    *http.Client
	log       zerolog.Logger
	now       func() time.Time

	mu    sync.Mutex
	cache *cacheFile
}

type cacheFile struct {
	Version   int                        `json:"version"`
	Timestamp time.Time                  `json:"timestamp"`
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
}

type apiResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

func NewProvider(opts Options) *Provider {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Provider{
		base:      strings.ToUpper(opts.Base),
		url:       strings.TrimRight(opts.URL, "/"),
		cachePath: opts.CachePath,
		ttl:       opts.TTL,
		client:    &http.Client{Timeout: opts.Timeout},
		log:       opts.Logger,
		now:       time.Now,
	}
}

// DefaultCachePath places the cache next to the config file.
func DefaultCachePath(appDir string) string {
	return filepath.Join(appDir, cacheFileName)
}

// Rate returns the value of one unit of code in the base currency, or 1
// when it cannot be determined.
func (p *Provider) Rate(ctx context.Context, code string) decimal.Decimal {
	one := decimal.NewFromInt(1)
	code = strings.ToUpper(code)
	if code == p.base {
		return one
	}

	rates := p.rates(ctx)
	if rates == nil {
		p.log.Warn().Str("currency", code).Msg("no forex rates available, using 1.0")
		return one
	}

	perUSD := func(c string) (decimal.Decimal, bool) {
		if c == RefCurrency {
			return one, true
		}
		r, ok := rates[c]
		return r, ok && r.IsPositive()
	}

	codeRate, ok1 := perUSD(code)
	baseRate, ok2 := perUSD(p.base)
	if !ok1 || !ok2 {
		p.log.Warn().Str("currency", code).Str("base", p.base).Msg("forex rate missing, using 1.0")
		return one
	}
	return baseRate.Div(codeRate)
}

func (p *Provider) rates(ctx context.Context) map[string]decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cache == nil {
		p.cache = p.loadCache()
	}
	if p.cache != nil && p.now().Sub(p.cache.Timestamp) <= p.ttl && len(p.cache.Rates) > 0 {
		return p.cache.Rates
	}

	rates, err := p.fetch(ctx)
	if err != nil {
		p.log.Warn().Err(err).Msg("forex fetch failed")
		if p.cache != nil && len(p.cache.Rates) > 0 {
			return p.cache.Rates
		}
		return nil
	}

	p.cache = &cacheFile{
		Version:   cacheVersion,
		Timestamp: p.now().UTC().Truncate(time.Second),
		Base:      RefCurrency,
		Rates:     rates,
	}
	if err := p.saveCache(p.cache); err != nil {
		p.log.Warn().Err(err).Str("path", p.cachePath).Msg("failed to write forex cache")
	}
	return rates
}

func (p *Provider) fetch(ctx context.Context) (map[string]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url+"/"+RefCurrency, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forex api returned %s", resp.Status)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode forex response: %w", err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("forex response has no rates")
	}
	return body.Rates, nil
}

func (p *Provider) loadCache() *cacheFile {
	if p.cachePath == "" {
		return nil
	}
	data, err := os.ReadFile(p.cachePath)
	if err != nil {
		return nil
	}
	var c cacheFile
	if err := json.Unmarshal(data, &c); err != nil {
		p.log.Debug().Err(err).Msg("ignoring unreadable forex cache")
		return nil
	}
	return &c
}

func (p *Provider) saveCache(c *cacheFile) error {
	if p.cachePath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p.cachePath), 0755); err != nil {
		return err
	}
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(p.cachePath, data, 0644)
}
