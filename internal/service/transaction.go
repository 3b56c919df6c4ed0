package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hance08/hb/internal/apperr"
	"github.com/hance08/hb/internal/config"
	"github.com/hance08/hb/internal/constants"
	"github.com/hance08/hb/internal/currency"
	"github.com/hance08/hb/internal/device"
	"github.com/hance08/hb/internal/logger"
	"github.com/hance08/hb/internal/model"
	"github.com/hance08/hb/internal/store"
	"github.com/hance08/hb/internal/syncqueue"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TransactionService is the ledger write orchestrator. Every write runs
// as one store transaction: resolve references, normalize currency, guard
// against duplicates, stamp device identity, then write the primary row,
// its AccountTrans rows and its SyncUpdate rows. Any failure rolls back
// all of them.
type TransactionService struct {
	repo    store.Repository
	config  *config.Config
	rates   currency.RateProvider
	encoder Encoder
	logger  zerolog.Logger
	now     func() time.Time
}

func NewTransactionService(repo store.Repository, cfg *config.Config, deps Deps) *TransactionService {
	if deps.Encoder == nil {
		deps.Encoder = syncqueue.NewCodec(cfg.Sync.CompressionLevel, cfg.Sync.MinPayloadSize)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &TransactionService{
		repo:    repo,
		config:  cfg,
		rates:   deps.Rates,
		encoder: deps.Encoder,
		logger:  deps.Logger,
		now:     deps.Now,
	}
}

// unit is the state of one write, built inside the store transaction.
type unit struct {
	repo      store.Repository
	refs      references
	devices   *device.Resolver
	engine    *currency.Engine
	base      string
	timeStamp string
	log       zerolog.Logger
}

func (ts *TransactionService) begin(ctx context.Context, repo store.Repository, op string) (*unit, error) {
	base, err := baseCurrency(repo, ts.config)
	if err != nil {
		return nil, err
	}

	return &unit{
		repo:      repo,
		refs:      references{repo: repo},
		devices:   device.NewResolver(repo),
		engine:    currency.NewEngine(base, ts.rates),
		base:      base,
		timeStamp: ts.now().Format(constants.TimeStampFormat),
		log:       ts.log(ctx).With().Str("operation", op).Logger(),
	}, nil
}

// enqueue writes count SyncUpdate rows for op, each carrying the full
// payload of snap.
func (ts *TransactionService) enqueue(u *unit, op string, primary device.Identity, snap syncqueue.Snapshot, count int) (int, error) {
	if !ts.config.Sync.Enabled {
		u.log.Debug().Msg("sync disabled, no queue rows written")
		return 0, nil
	}

	payload, err := syncqueue.Build(op, primary, snap)
	if err != nil {
		return 0, &apperr.SyncEncodingError{Operation: op, Err: err}
	}
	text, err := ts.encoder.Encode(payload)
	if err != nil {
		return 0, &apperr.SyncEncodingError{Operation: op, Err: err}
	}

	updateType := strings.TrimSpace(ts.config.Sync.UpdateType)
	if updateType == "" {
		updateType = op
	}

	for i := 0; i < count; i++ {
		_, err := u.repo.InsertSyncUpdate(&store.SyncUpdate{
			UpdateType: updateType,
			UUID:       uuid.NewString(),
			Payload:    text,
		})
		if err != nil {
			return i, err
		}
	}
	u.log.Debug().Int("rows", count).Int("payload_len", len(text)).Msg("queued sync updates")
	return count, nil
}

// log prefers a logger carried by ctx over the service logger.
func (ts *TransactionService) log(ctx context.Context) zerolog.Logger {
	if l := logger.FromContext(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return ts.logger
}

func (ts *TransactionService) committed(ctx context.Context, op string, key int64, queued int) {
	l := ts.log(ctx)
	l.Info().Str("operation", op).Int64("key", key).Int("queued", queued).Msg("write committed")
}

func entityRef(dc *device.Context, table store.EntityTable, key int64) syncqueue.EntityRef {
	return syncqueue.EntityRef{Key: key, Device: dc.Entity(table, key)}
}

func ledgerRow(accountKey int64, transType int, transKey int64, date, timeStamp string, amount decimal.Decimal) *store.AccountTrans {
	return &store.AccountTrans{
		AccountKey:  accountKey,
		TimeStamp:   timeStamp,
		TransType:   transType,
		TransKey:    transKey,
		TransDate:   date,
		TransAmount: amount,
	}
}

// validateMoneyUpdate rejects a currency change that carries no amount.
// The stored amount is in the old currency and cannot be reused.
func validateMoneyUpdate(m model.MoneyInput) error {
	if strings.TrimSpace(m.Currency) != "" && !m.Amount.Valid && !m.CurrencyAmount.Valid {
		return apperr.Validation("currency", "amount or currency_amount is required when setting currency")
	}
	return nil
}

// mergeMoney completes a partial money update with the stored values so
// that changing only the rate keeps the amount.
func mergeMoney(in model.MoneyInput, storedCurrency string, storedAmount decimal.Decimal) model.MoneyInput {
	if !in.Amount.Valid && !in.CurrencyAmount.Valid {
		in.CurrencyAmount = decimal.NullDecimal{Decimal: storedAmount, Valid: true}
	}
	if in.Currency == "" && !in.Amount.Valid {
		in.Currency = storedCurrency
	}
	return in
}

// storedAmount parses the text currencyAmount column, falling back to
// the REAL amount column.
func storedAmount(text string, fallback decimal.Decimal) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return fallback
	}
	return d
}

func parseStoredDate(s string) (time.Time, error) {
	if len(s) > len(constants.DateFormat) {
		s = s[:len(constants.DateFormat)]
	}
	return time.Parse(constants.DateFormat, s)
}

// impliedRate is amount / currencyAmount, or 1 when it cannot be derived.
func impliedRate(amount, currencyAmount decimal.Decimal) decimal.Decimal {
	if currencyAmount.IsZero() {
		return decimal.NewFromInt(1)
	}
	return amount.DivRound(currencyAmount, 6)
}

func toListQuery(repo store.Repository, f model.ListFilter) (store.ListQuery, error) {
	q := store.ListQuery{Limit: f.Limit}
	if !f.Start.IsZero() {
		q.Start = f.Start.Format(constants.DateFormat)
	}
	if !f.End.IsZero() {
		q.End = f.End.Format(constants.DateFormat)
	}
	if name := strings.TrimSpace(f.Account); name != "" {
		acct, err := repo.GetAccountByName(name)
		if err != nil {
			return q, err
		}
		q.AccountKey = acct.Key
	}
	return q, nil
}
