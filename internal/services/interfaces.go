package services

import (
	"iter"

	"github.com/shopspring/decimal"

	"bankledger/internal/dto"
	"bankledger/internal/models"
)

// Store persists the registry to durable storage. Storage is a write-behind
// cache of the in-memory registry, never the source of truth during a
// session.
type Store interface {
	// Load reads every persisted account, including its transaction history
	Load() ([]*models.Account, error)
	// Save rewrites the full account snapshot
	Save(accounts []*models.Account) error
	// AppendRecords appends new history entries to the account's log
	AppendRecords(account *models.Account, records []models.TransactionRecord) error
}

// AccountSummary is one row of the read-only account listing
type AccountSummary struct {
	Number  int
	Holder  string
	Kind    string
	Balance decimal.Decimal
}

// LedgerServiceInterface is the operation engine consumed by the CLI.
//
// Mutating operations flush to the Store after committing in memory. A flush
// failure is returned as a STORAGE_001 domain error alongside the committed
// result; the in-memory state is never rolled back for persistence errors.
type LedgerServiceInterface interface {
	CreateAccount(req dto.CreateAccountRequest) (*models.Account, error)
	PerformTransaction(req dto.TransactionRequest) (*models.TransactionRecord, error)
	TransferFunds(req dto.TransferRequest) error
	ApplyPeriodicCharges() error
	ListAccounts() iter.Seq[AccountSummary]
	GetHistory(accountNumber int) ([]models.TransactionRecord, error)
}
