package services

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/shopspring/decimal"

	"bankledger/internal/dto"
	apperrors "bankledger/internal/errors"
	"bankledger/internal/models"
	"bankledger/internal/registry"
	"bankledger/internal/validation"
)

// ledgerService implements LedgerServiceInterface
type ledgerService struct {
	registry  *registry.Registry
	store     Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewLedgerService creates the operation engine over a registry and a store
func NewLedgerService(reg *registry.Registry, store Store, logger *slog.Logger) LedgerServiceInterface {
	return &ledgerService{
		registry:  reg,
		store:     store,
		validator: validation.GetValidator(),
		logger:    logger,
	}
}

// CreateAccount opens a new account, allocating the next sequential number
// for its kind and logging the creation record
func (s *ledgerService) CreateAccount(req dto.CreateAccountRequest) (*models.Account, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.New(apperrors.ValidationGeneral, apperrors.WithMessage(err.Error()))
	}

	initialDeposit, err := decimal.NewFromString(req.InitialDeposit)
	if err != nil {
		return nil, apperrors.New(apperrors.TransactionInvalidAmount, apperrors.WithCause(err))
	}

	minimum, err := models.MinimumInitialDeposit(req.Kind)
	if err != nil {
		return nil, apperrors.New(apperrors.AccountInvalidKind)
	}
	if initialDeposit.LessThan(minimum) {
		message := fmt.Sprintf("minimum initial deposit for a %s account is %s",
			req.Kind, minimum.StringFixed(2))
		return nil, apperrors.New(apperrors.AccountInvalidDeposit, apperrors.WithMessage(message))
	}

	number, err := s.registry.NextNumber(req.Kind)
	if err != nil {
		return nil, apperrors.New(apperrors.AccountInvalidKind)
	}

	var account *models.Account
	switch req.Kind {
	case models.AccountKindSavings:
		account = models.NewSavingsAccount(number, req.HolderName, initialDeposit)
	case models.AccountKindCredit:
		account = models.NewCreditAccount(number, req.HolderName, initialDeposit)
	}

	if err := s.registry.Add(account); err != nil {
		return nil, apperrors.New(apperrors.AccountInvalidKind, apperrors.WithCause(err))
	}

	s.logger.Info("account created",
		"number", account.Number,
		"kind", account.Kind,
		"balance", account.Balance.StringFixed(2),
	)

	return account, s.flush(account, account.Records)
}

// PerformTransaction applies a deposit or withdrawal to one account and
// returns the primary record it produced
func (s *ledgerService) PerformTransaction(req dto.TransactionRequest) (*models.TransactionRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.New(apperrors.ValidationGeneral, apperrors.WithMessage(err.Error()))
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, apperrors.New(apperrors.TransactionInvalidAmount, apperrors.WithCause(err))
	}

	account, err := s.registry.Get(req.AccountNumber)
	if err != nil {
		return nil, apperrors.New(apperrors.AccountNotFound)
	}

	var produced []models.TransactionRecord
	switch req.Type {
	case dto.TransactionTypeDeposit:
		record, err := account.Deposit(amount)
		if err != nil {
			return nil, mapAccountError(err)
		}
		produced = []models.TransactionRecord{*record}
	case dto.TransactionTypeWithdraw:
		records, err := account.Withdraw(amount)
		if err != nil {
			return nil, mapAccountError(err)
		}
		produced = records
	default:
		return nil, apperrors.New(apperrors.TransactionInvalidType)
	}

	s.logger.Info("transaction completed",
		"number", account.Number,
		"type", req.Type,
		"amount", amount.StringFixed(2),
		"balance", account.Balance.StringFixed(2),
	)

	return &produced[0], s.flush(account, produced)
}

// TransferFunds moves funds between two accounts, all or nothing. The source
// leg is fee-suppressed but still subject to the variant eligibility checks;
// a failed source leg aborts with no state changed, and a failed destination
// leg rolls the withdrawn amount back onto the source.
func (s *ledgerService) TransferFunds(req dto.TransferRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return apperrors.New(apperrors.ValidationGeneral, apperrors.WithMessage(err.Error()))
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return apperrors.New(apperrors.TransactionInvalidAmount, apperrors.WithCause(err))
	}

	if req.FromAccountNumber == req.ToAccountNumber {
		return apperrors.New(apperrors.TransferSameAccount)
	}

	source, err := s.registry.Get(req.FromAccountNumber)
	if err != nil {
		return apperrors.New(apperrors.AccountNotFound,
			apperrors.WithMessage(fmt.Sprintf("source account %d not found", req.FromAccountNumber)))
	}
	destination, err := s.registry.Get(req.ToAccountNumber)
	if err != nil {
		return apperrors.New(apperrors.AccountNotFound,
			apperrors.WithMessage(fmt.Sprintf("destination account %d not found", req.ToAccountNumber)))
	}

	outRecord, err := source.TransferOut(amount)
	if err != nil {
		return mapAccountError(err)
	}

	inRecord, err := destination.TransferIn(amount)
	if err != nil {
		// Should not happen under normal arithmetic; restore the source so
		// the all-or-nothing guarantee holds.
		if _, rollbackErr := source.TransferIn(amount); rollbackErr != nil {
			s.logger.Error("transfer rollback failed",
				"source", source.Number, "error", rollbackErr)
		}
		return apperrors.New(apperrors.TransferFailed, apperrors.WithCause(err))
	}

	s.logger.Info("transfer completed",
		"from", source.Number,
		"to", destination.Number,
		"amount", amount.StringFixed(2),
	)

	if err := s.appendRecords(source, []models.TransactionRecord{*outRecord}); err != nil {
		return err
	}
	if err := s.appendRecords(destination, []models.TransactionRecord{*inRecord}); err != nil {
		return err
	}
	return s.save()
}

// ApplyPeriodicCharges runs the monthly charge for every account
// independently; one account failing never blocks the others
func (s *ledgerService) ApplyPeriodicCharges() error {
	for account := range s.registry.All() {
		record, err := account.ApplyPeriodicCharge()
		if err != nil {
			s.logger.Error("periodic charge failed",
				"number", account.Number, "kind", account.Kind, "error", err)
			continue
		}
		if record == nil {
			continue
		}
		if err := s.appendRecords(account, []models.TransactionRecord{*record}); err != nil {
			s.logger.Warn("periodic charge not persisted",
				"number", account.Number, "error", err)
		}
	}
	return s.save()
}

// ListAccounts produces a lazy, restartable sequence of account summaries in
// registry order
func (s *ledgerService) ListAccounts() iter.Seq[AccountSummary] {
	return func(yield func(AccountSummary) bool) {
		for account := range s.registry.All() {
			summary := AccountSummary{
				Number:  account.Number,
				Holder:  account.HolderName,
				Kind:    account.Kind,
				Balance: account.Balance,
			}
			if !yield(summary) {
				return
			}
		}
	}
}

// GetHistory returns a copy of the account's transaction history
func (s *ledgerService) GetHistory(accountNumber int) ([]models.TransactionRecord, error) {
	account, err := s.registry.Get(accountNumber)
	if err != nil {
		return nil, apperrors.New(apperrors.AccountNotFound)
	}
	return slices.Clone(account.Records), nil
}

// flush appends the produced records and rewrites the snapshot. Failures are
// reported as STORAGE_001 without touching committed in-memory state.
func (s *ledgerService) flush(account *models.Account, records []models.TransactionRecord) error {
	if err := s.appendRecords(account, records); err != nil {
		return err
	}
	return s.save()
}

func (s *ledgerService) appendRecords(account *models.Account, records []models.TransactionRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := s.store.AppendRecords(account, records); err != nil {
		s.logger.Error("failed to append transaction records",
			"number", account.Number, "error", err)
		return apperrors.New(apperrors.StoragePersistenceFailure, apperrors.WithCause(err))
	}
	return nil
}

func (s *ledgerService) save() error {
	if err := s.store.Save(s.registry.Accounts()); err != nil {
		s.logger.Error("failed to save account snapshot", "error", err)
		return apperrors.New(apperrors.StoragePersistenceFailure, apperrors.WithCause(err))
	}
	return nil
}

// mapAccountError translates account sentinel errors into domain errors,
// preserving the failure kind
func mapAccountError(err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidAmount):
		return apperrors.New(apperrors.TransactionInvalidAmount)
	case errors.Is(err, models.ErrBelowMinimumWithdrawal):
		return apperrors.New(apperrors.TransactionBelowMinWithdrawal)
	case errors.Is(err, models.ErrBelowMinimumAdvance):
		return apperrors.New(apperrors.TransactionBelowMinAdvance)
	case errors.Is(err, models.ErrBelowMinimumBalance):
		return apperrors.New(apperrors.TransactionBelowMinBalance)
	case errors.Is(err, models.ErrCreditLimitExceeded):
		return apperrors.New(apperrors.TransactionCreditLimitExceeded)
	case errors.Is(err, models.ErrInvalidAccountKind):
		return apperrors.New(apperrors.AccountInvalidKind)
	default:
		return err
	}
}
