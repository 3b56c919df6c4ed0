package service

import (
	"time"

	"github.com/hance08/hb/internal/config"
	"github.com/hance08/hb/internal/currency"
	"github.com/hance08/hb/internal/store"
	"github.com/hance08/hb/internal/syncqueue"
	"github.com/rs/zerolog"
)

// Encoder turns a sync payload into the text stored in SyncUpdate.
type Encoder interface {
	Encode(p syncqueue.Payload) (string, error)
}

// Deps are the collaborators of the write pipeline. Zero fields get
// defaults from the config.
type Deps struct {
	Rates   currency.RateProvider
	Encoder Encoder
	Logger  zerolog.Logger
	Now     func() time.Time
}

type Service struct {
	Account     *AccountService
	Reference   *ReferenceService
	Transaction *TransactionService
	Batch       *BatchService
}

func NewService(repo store.Repository, cfg *config.Config, deps Deps) *Service {
	if deps.Encoder == nil {
		deps.Encoder = syncqueue.NewCodec(cfg.Sync.CompressionLevel, cfg.Sync.MinPayloadSize)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	transactions := NewTransactionService(repo, cfg, deps)
	return &Service{
		Account:     NewAccountService(repo, deps.Now),
		Reference:   NewReferenceService(repo, cfg),
		Transaction: transactions,
		Batch:       NewBatchService(transactions, deps.Logger),
	}
}
