package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/hance08/hb/internal/apperr"
	"github.com/hance08/hb/internal/constants"
	"github.com/hance08/hb/internal/model"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	ActionAdd    = "add"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Operation is one item of a batch file.
type Operation struct {
	Resource   string         `json:"resource"`
	Operation  string         `json:"operation"`
	Parameters map[string]any `json:"parameters"`
}

type Result struct {
	Index     int
	Resource  string
	Operation string
	Key       int64
	Err       error
}

// BatchResult reports every item that ran. Items after a failure in
// stop-on-error mode are counted in Skipped.
type BatchResult struct {
	Succeeded []Result
	Failed    []Result
	Skipped   int
}

func (r *BatchResult) Total() int {
	return len(r.Succeeded) + len(r.Failed) + r.Skipped
}

// Err aggregates the failures, or returns nil when every item ran.
func (r *BatchResult) Err() error {
	var result *multierror.Error
	for _, f := range r.Failed {
		result = multierror.Append(result, fmt.Errorf("item %d (%s %s): %w", f.Index+1, f.Operation, f.Resource, f.Err))
	}
	return result.ErrorOrNil()
}

// LoadOperations reads a batch file: a JSON array of operations. Numbers
// are kept as json.Number so amounts keep their exact decimal text.
func LoadOperations(r io.Reader) ([]Operation, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var ops []Operation
	if err := dec.Decode(&ops); err != nil {
		return nil, apperr.Validation("batch", "batch JSON must be an array of operations: %v", err)
	}
	if len(ops) == 0 {
		return nil, apperr.Validation("batch", "no operations found in batch file")
	}
	return ops, nil
}

// BatchService runs items one by one through the write pipeline. Each item
// commits on its own; the batch as a whole is not atomic.
type BatchService struct {
	tx     *TransactionService
	logger zerolog.Logger
}

func NewBatchService(tx *TransactionService, logger zerolog.Logger) *BatchService {
	return &BatchService{tx: tx, logger: logger}
}

func (bs *BatchService) Run(ctx context.Context, ops []Operation, continueOnError bool) *BatchResult {
	result := &BatchResult{}

	for i, op := range ops {
		key, err := bs.apply(ctx, op)
		item := Result{Index: i, Resource: op.Resource, Operation: op.Operation, Key: key, Err: err}
		if err == nil {
			result.Succeeded = append(result.Succeeded, item)
			continue
		}

		result.Failed = append(result.Failed, item)
		bs.logger.Warn().Err(err).Int("item", i+1).Str("kind", apperr.Kind(err)).Msg("batch item failed")
		if !continueOnError {
			result.Skipped = len(ops) - i - 1
			break
		}
	}

	bs.logger.Info().
		Int("succeeded", len(result.Succeeded)).
		Int("failed", len(result.Failed)).
		Int("skipped", result.Skipped).
		Msg("batch finished")
	return result
}

// params is the union of the parameters any item may carry.
type params struct {
	Key            int64               `mapstructure:"key"`
	Date           *time.Time          `mapstructure:"date"`
	Account        string              `mapstructure:"account"`
	FromAccount    string              `mapstructure:"from_account"`
	ToAccount      string              `mapstructure:"to_account"`
	Category       *string             `mapstructure:"category"`
	SubCategory    *string             `mapstructure:"subcategory"`
	Payee          string              `mapstructure:"payee"`
	Name           *string             `mapstructure:"name"`
	Notes          *string             `mapstructure:"notes"`
	Amount         decimal.NullDecimal `mapstructure:"amount"`
	Currency       string              `mapstructure:"currency"`
	CurrencyAmount decimal.NullDecimal `mapstructure:"currency_amount"`
	ExchangeRate   decimal.NullDecimal `mapstructure:"exchange_rate"`
}

func (p params) money() model.MoneyInput {
	return model.MoneyInput{
		Amount:         p.Amount,
		Currency:       p.Currency,
		CurrencyAmount: p.CurrencyAmount,
		ExchangeRate:   p.ExchangeRate,
	}
}

func (p params) date() time.Time {
	if p.Date == nil {
		return time.Time{}
	}
	return *p.Date
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var nullDecimalType = reflect.TypeOf(decimal.NullDecimal{})

// decimalHook lets amounts be given as JSON numbers or strings.
func decimalHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != nullDecimalType {
		return data, nil
	}

	var (
		d   decimal.Decimal
		err error
	)
	switch v := data.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return decimal.NullDecimal{}, nil
		}
		d, err = decimal.NewFromString(strings.TrimSpace(v))
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	case json.Number:
		d, err = decimal.NewFromString(v.String())
	default:
		return nil, fmt.Errorf("unsupported amount type %T", data)
	}
	if err != nil {
		return nil, err
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

func decodeParams(raw map[string]any) (params, error) {
	var p params
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.DecodeHookFuncType(decimalHook),
			mapstructure.StringToTimeHookFunc(constants.DateFormat),
		),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &p,
	})
	if err != nil {
		return p, err
	}
	if err := dec.Decode(raw); err != nil {
		return p, apperr.Validation("parameters", "%v", err)
	}
	return p, nil
}

func (bs *BatchService) apply(ctx context.Context, op Operation) (int64, error) {
	p, err := decodeParams(op.Parameters)
	if err != nil {
		return 0, err
	}

	resource := strings.ToLower(strings.TrimSpace(op.Resource))
	action := strings.ToLower(strings.TrimSpace(op.Operation))
	if (action == ActionUpdate || action == ActionDelete) && p.Key <= 0 {
		return 0, apperr.Validation("key", "is required for %s", action)
	}

	ts := bs.tx
	switch resource + "/" + action {
	case constants.KindExpense + "/" + ActionAdd:
		e, err := ts.AddExpense(ctx, model.ExpenseInput{
			Date:        p.date(),
			Account:     p.Account,
			Category:    deref(p.Category),
			SubCategory: deref(p.SubCategory),
			Payee:       p.Payee,
			Money:       p.money(),
			Notes:       deref(p.Notes),
		})
		if err != nil {
			return 0, err
		}
		return e.Key, nil
	case constants.KindExpense + "/" + ActionUpdate:
		_, err := ts.UpdateExpense(ctx, p.Key, model.ExpenseUpdate{
			Date:        p.Date,
			Category:    p.Category,
			SubCategory: p.SubCategory,
			Notes:       p.Notes,
			Money:       p.money(),
		})
		return p.Key, err
	case constants.KindExpense + "/" + ActionDelete:
		return p.Key, ts.DeleteExpense(ctx, p.Key)

	case constants.KindIncome + "/" + ActionAdd:
		i, err := ts.AddIncome(ctx, model.IncomeInput{
			Date:    p.date(),
			Account: p.Account,
			Name:    deref(p.Name),
			Money:   p.money(),
			Notes:   deref(p.Notes),
		})
		if err != nil {
			return 0, err
		}
		return i.Key, nil
	case constants.KindIncome + "/" + ActionUpdate:
		_, err := ts.UpdateIncome(ctx, p.Key, model.IncomeUpdate{
			Date:  p.Date,
			Name:  p.Name,
			Notes: p.Notes,
			Money: p.money(),
		})
		return p.Key, err
	case constants.KindIncome + "/" + ActionDelete:
		return p.Key, ts.DeleteIncome(ctx, p.Key)

	case constants.KindTransfer + "/" + ActionAdd:
		t, err := ts.AddTransfer(ctx, model.TransferInput{
			Date:        p.date(),
			FromAccount: p.FromAccount,
			ToAccount:   p.ToAccount,
			Money:       p.money(),
			Notes:       deref(p.Notes),
		})
		if err != nil {
			return 0, err
		}
		return t.Key, nil
	case constants.KindTransfer + "/" + ActionUpdate:
		_, err := ts.UpdateTransfer(ctx, p.Key, model.TransferUpdate{
			Date:  p.Date,
			Notes: p.Notes,
			Money: p.money(),
		})
		return p.Key, err
	case constants.KindTransfer + "/" + ActionDelete:
		return p.Key, ts.DeleteTransfer(ctx, p.Key)
	}

	return 0, apperr.Validation("operation", "unsupported %q on resource %q", op.Operation, op.Resource)
}
