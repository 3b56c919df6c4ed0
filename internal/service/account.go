package service

import (
	"context"
	"strings"
	"time"

	"github.com/hance08/hb/internal/apperr"
	"github.com/hance08/hb/internal/constants"
	"github.com/hance08/hb/internal/model"
	"github.com/hance08/hb/internal/store"
)

type AccountService struct {
	repo store.Repository
	now  func() time.Time
}

func NewAccountService(repo store.Repository, now func() time.Time) *AccountService {
	if now == nil {
		now = time.Now
	}
	return &AccountService{repo: repo, now: now}
}

func (as *AccountService) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	rows, err := as.repo.ListAccounts()
	if err != nil {
		return nil, err
	}

	accounts := make([]*model.Account, 0, len(rows))
	for _, a := range rows {
		accounts = append(accounts, toAccount(a))
	}
	return accounts, nil
}

func (as *AccountService) GetAccount(ctx context.Context, name string) (*model.Account, error) {
	a, err := as.repo.GetAccountByName(strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	return toAccount(a), nil
}

// Balance is the stored balance as of the account's balanceDate, moved by
// every ledger row dated after it and up to at. A zero at means today.
func (as *AccountService) Balance(ctx context.Context, name string, at time.Time) (*model.AccountBalance, error) {
	a, err := as.repo.GetAccountByName(strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if at.IsZero() {
		at = as.now()
	}
	upTo := at.Format(constants.DateFormat)

	since := a.BalanceDate
	if len(since) > len(constants.DateFormat) {
		since = since[:len(constants.DateFormat)]
	}
	if since != "" && upTo < since {
		return nil, apperr.Validation("date", "%s is before the balance date %s of %s", upTo, since, a.Name)
	}

	totals, err := as.repo.SumAccountTrans(a.Key, since, upTo)
	if err != nil {
		return nil, err
	}

	return &model.AccountBalance{
		Account:  *toAccount(a),
		AsOf:     at,
		Opening:  a.Balance,
		Inflows:  totals.Inflows,
		Outflows: totals.Outflows,
		Balance:  a.Balance.Add(totals.Inflows).Sub(totals.Outflows),
	}, nil
}

func toAccount(a *store.Account) *model.Account {
	return &model.Account{
		Key:         a.Key,
		Name:        a.Name,
		Type:        a.Type,
		Currency:    a.Currency,
		Balance:     a.Balance,
		BalanceDate: a.BalanceDate,
	}
}
