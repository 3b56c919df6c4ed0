package service

import (
	"strings"

	"github.com/hance08/hb/internal/apperr"
	"github.com/hance08/hb/internal/config"
	"github.com/hance08/hb/internal/model"
	"github.com/hance08/hb/internal/store"
	"github.com/hance08/hb/internal/validation"
)

type ReferenceService struct {
	repo   store.Repository
	config *config.Config
}

func NewReferenceService(repo store.Repository, cfg *config.Config) *ReferenceService {
	return &ReferenceService{repo: repo, config: cfg}
}

// BaseCurrency returns the configured home currency, falling back to the
// store's Settings row.
func (rs *ReferenceService) BaseCurrency() (string, error) {
	return baseCurrency(rs.repo, rs.config)
}

func (rs *ReferenceService) ListCategories() ([]*model.Category, error) {
	rows, err := rs.repo.ListCategories()
	if err != nil {
		return nil, err
	}

	categories := make([]*model.Category, 0, len(rows))
	for _, c := range rows {
		categories = append(categories, &model.Category{Key: c.Key, Name: c.Name, SeqNum: c.SeqNum})
	}
	return categories, nil
}

func (rs *ReferenceService) ListSubCategories(category string) ([]*model.SubCategory, error) {
	cat, err := rs.repo.GetCategoryByName(strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}
	rows, err := rs.repo.ListSubCategories(cat.Key)
	if err != nil {
		return nil, err
	}

	subs := make([]*model.SubCategory, 0, len(rows))
	for _, s := range rows {
		subs = append(subs, &model.SubCategory{Key: s.Key, CategoryKey: s.CatKey, Name: s.Name, SeqNum: s.SeqNum})
	}
	return subs, nil
}

func (rs *ReferenceService) ListCurrencies() ([]*model.Currency, error) {
	rows, err := rs.repo.ListCurrencies()
	if err != nil {
		return nil, err
	}

	currencies := make([]*model.Currency, 0, len(rows))
	for _, c := range rows {
		currencies = append(currencies, &model.Currency{Key: c.Key, Code: c.Code, Name: c.Name, ExchangeRate: c.ExchangeRate})
	}
	return currencies, nil
}

func baseCurrency(repo store.Repository, cfg *config.Config) (string, error) {
	if code := strings.TrimSpace(cfg.Defaults.Currency); code != "" {
		return strings.ToUpper(code), nil
	}

	code, err := repo.GetSettingsCurrency()
	if err != nil {
		return "", err
	}
	if code == "" {
		return "", apperr.Validation("currency", "no base currency: set defaults.currency or Settings.currency")
	}
	return strings.ToUpper(code), nil
}

// references maps the names a caller types to reference row keys, within
// the repository of one write.
type references struct {
	repo store.Repository
}

func (r references) account(field, name string) (*store.Account, error) {
	if err := validation.ValidateName(field, name); err != nil {
		return nil, err
	}
	return r.repo.GetAccountByName(strings.TrimSpace(name))
}

func (r references) category(name string) (*store.Category, error) {
	if err := validation.ValidateName("category", name); err != nil {
		return nil, err
	}
	return r.repo.GetCategoryByName(strings.TrimSpace(name))
}

// subCategory returns 0 for an empty name.
func (r references) subCategory(catKey int64, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, nil
	}
	sub, err := r.repo.GetSubCategoryByName(catKey, name)
	if err != nil {
		return 0, err
	}
	return sub.Key, nil
}

// payee returns 0 for an empty name.
func (r references) payee(name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, nil
	}
	p, err := r.repo.GetPayeeByName(name)
	if err != nil {
		return 0, err
	}
	return p.Key, nil
}
