package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/hance08/hb/internal/config"
	"github.com/hance08/hb/internal/forex"
	"github.com/hance08/hb/internal/service"
	"github.com/hance08/hb/internal/syncqueue"
	"github.com/hance08/hb/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 2, 16, 10, 15, 42, 0, time.UTC)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func amount(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func ptr[T any](v T) *T {
	return &v
}

type env struct {
	svc     *service.Service
	fixture *testutil.Fixture
	codec   *syncqueue.Codec
	config  *config.Config
}

type option func(cfg *config.Config, deps *service.Deps)

func withEncoder(e service.Encoder) option {
	return func(_ *config.Config, deps *service.Deps) { deps.Encoder = e }
}

func withConfig(fn func(cfg *config.Config)) option {
	return func(cfg *config.Config, _ *service.Deps) { fn(cfg) }
}

func newEnv(t *testing.T, opts ...option) *env {
	t.Helper()

	f := testutil.NewSeededFixture(t)
	cfg := config.NewDefault()

	deps := service.Deps{
		Rates: forex.Static{Rates: map[string]decimal.Decimal{
			"USD": decimal.RequireFromString("1.35"),
			"EUR": decimal.RequireFromString("1.62"),
		}},
		Logger: zerolog.Nop(),
		Now:    func() time.Time { return fixedNow },
	}
	for _, opt := range opts {
		opt(cfg, &deps)
	}

	return &env{
		svc:     service.NewService(f.Store, cfg, deps),
		fixture: f,
		codec:   syncqueue.NewCodec(cfg.Sync.CompressionLevel, cfg.Sync.MinPayloadSize),
		config:  cfg,
	}
}

// queued decodes every SyncUpdate payload in insertion order.
func (e *env) queued(t *testing.T) []syncqueue.Payload {
	t.Helper()

	var payloads []syncqueue.Payload
	for _, text := range e.fixture.SyncPayloads(t) {
		p, err := e.codec.Decode(text)
		require.NoError(t, err)
		payloads = append(payloads, p)
	}
	return payloads
}

func (e *env) lastUpdateType(t *testing.T) string {
	t.Helper()
	var updateType string
	require.NoError(t, e.fixture.DB.QueryRow("SELECT updateType FROM SyncUpdate ORDER BY key DESC LIMIT 1").Scan(&updateType))
	return updateType
}

func field(t *testing.T, p syncqueue.Payload, name string) any {
	t.Helper()
	v, ok := p.Get(name)
	require.True(t, ok, "payload %s has no field %s", p.Operation, name)
	return v
}

type failingEncoder struct{}

func (failingEncoder) Encode(syncqueue.Payload) (string, error) {
	return "", errors.New("encoder unavailable")
}
