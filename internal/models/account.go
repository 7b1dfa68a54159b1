package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	AccountKindSavings = "SAVINGS"
	AccountKindCredit  = "CREDIT"

	// Account number sequences by kind
	SavingsNumberStart = 1200
	CreditNumberStart  = 1900
)

var (
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidAccountKind     = errors.New("invalid account kind")
	ErrBelowMinimumWithdrawal = errors.New("amount is below the minimum withdrawal")
	ErrBelowMinimumAdvance    = errors.New("amount is below the minimum cash advance")
	ErrBelowMinimumBalance    = errors.New("withdrawal would breach the minimum balance")
	ErrCreditLimitExceeded    = errors.New("withdrawal would exceed the credit limit")
)

// Ledger policy values. Decimal values cannot be Go constants, so they live
// here as package variables and must never be reassigned.
var (
	SavingsInterestRate   = decimal.NewFromFloat(0.04)
	SavingsMinimumBalance = decimal.NewFromInt(500)
	SavingsMinWithdrawal  = decimal.NewFromInt(50)
	SavingsWithdrawalFee  = decimal.NewFromInt(5)

	CreditLimit            = decimal.NewFromInt(5000)
	CreditDebtInterestRate = decimal.NewFromFloat(0.15)
	CreditCashAdvanceFee   = decimal.NewFromFloat(0.03)
	CreditMinCashAdvance   = decimal.NewFromInt(500)

	MinSavingsDeposit = decimal.NewFromInt(500)
	MinCreditDeposit  = decimal.NewFromInt(5000)

	monthsPerYear = decimal.NewFromInt(12)
)

// Account is a bank account, a closed variant over savings and credit.
// Shared fields apply to both kinds; the rate, limit and minimum fields are
// meaningful only for the kind they belong to. Balance moves exclusively
// through the operation methods below, each of which appends the records it
// produced and returns them to the caller.
type Account struct {
	Number     int
	HolderName string
	Kind       string
	Balance    decimal.Decimal

	// Savings fields
	InterestRate   decimal.Decimal
	MinimumBalance decimal.Decimal

	// Credit fields
	CreditLimit        decimal.Decimal
	DebtInterestRate   decimal.Decimal
	CashAdvanceFeeRate decimal.Decimal

	// Append-only transaction history, oldest first
	Records []TransactionRecord
}

// withdrawal legs: a regular withdrawal carries the variant fee, the source
// leg of a transfer does not
type withdrawMode int

const (
	withdrawRegular withdrawMode = iota
	withdrawTransfer
)

// NewSavingsAccount creates a savings account with the opening deposit and
// logs the creation record
func NewSavingsAccount(number int, holderName string, initialDeposit decimal.Decimal) *Account {
	a := &Account{
		Number:         number,
		HolderName:     holderName,
		Kind:           AccountKindSavings,
		Balance:        initialDeposit,
		InterestRate:   SavingsInterestRate,
		MinimumBalance: SavingsMinimumBalance,
	}
	a.logTransaction(TransactionKindCreated, initialDeposit)
	return a
}

// NewCreditAccount creates a credit account with the opening deposit and
// logs the creation record
func NewCreditAccount(number int, holderName string, initialDeposit decimal.Decimal) *Account {
	a := &Account{
		Number:             number,
		HolderName:         holderName,
		Kind:               AccountKindCredit,
		Balance:            initialDeposit,
		CreditLimit:        CreditLimit,
		DebtInterestRate:   CreditDebtInterestRate,
		CashAdvanceFeeRate: CreditCashAdvanceFee,
	}
	a.logTransaction(TransactionKindCreated, initialDeposit)
	return a
}

// IsValidAccountKind checks if the account kind is valid
func IsValidAccountKind(kind string) bool {
	switch kind {
	case AccountKindSavings, AccountKindCredit:
		return true
	default:
		return false
	}
}

// MinimumInitialDeposit returns the opening deposit floor for an account kind
func MinimumInitialDeposit(kind string) (decimal.Decimal, error) {
	switch kind {
	case AccountKindSavings:
		return MinSavingsDeposit, nil
	case AccountKindCredit:
		return MinCreditDeposit, nil
	default:
		return decimal.Zero, ErrInvalidAccountKind
	}
}

// Deposit credits the account and logs a deposit record
func (a *Account) Deposit(amount decimal.Decimal) (*TransactionRecord, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	a.Balance = a.Balance.Add(amount)
	return a.logTransaction(TransactionKindDeposit, amount), nil
}

// Withdraw debits the account under the variant's eligibility rules and
// applies the variant fee. Returns every record the withdrawal produced.
func (a *Account) Withdraw(amount decimal.Decimal) ([]TransactionRecord, error) {
	return a.withdraw(amount, withdrawRegular)
}

// TransferOut is the fee-suppressed source leg of a transfer. Eligibility
// floors and the minimum-balance / credit-limit checks still apply.
func (a *Account) TransferOut(amount decimal.Decimal) (*TransactionRecord, error) {
	records, err := a.withdraw(amount, withdrawTransfer)
	if err != nil {
		return nil, err
	}
	return &records[0], nil
}

// TransferIn is the destination leg of a transfer
func (a *Account) TransferIn(amount decimal.Decimal) (*TransactionRecord, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	a.Balance = a.Balance.Add(amount)
	return a.logTransaction(TransactionKindTransferIn, amount), nil
}

func (a *Account) withdraw(amount decimal.Decimal, mode withdrawMode) ([]TransactionRecord, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	switch a.Kind {
	case AccountKindSavings:
		return a.withdrawSavings(amount, mode)
	case AccountKindCredit:
		return a.withdrawCredit(amount, mode)
	default:
		return nil, ErrInvalidAccountKind
	}
}

// withdrawSavings enforces the withdrawal floor and the minimum-balance rule.
// The post-withdrawal balance before the flat fee must clear the minimum; the
// fee itself may take the balance below it.
func (a *Account) withdrawSavings(amount decimal.Decimal, mode withdrawMode) ([]TransactionRecord, error) {
	if amount.LessThan(SavingsMinWithdrawal) {
		return nil, ErrBelowMinimumWithdrawal
	}
	if a.Balance.Sub(amount).LessThan(a.MinimumBalance) {
		return nil, ErrBelowMinimumBalance
	}

	a.Balance = a.Balance.Sub(amount)
	kind := TransactionKindWithdrawal
	if mode == withdrawTransfer {
		kind = TransactionKindTransferOut
	}
	records := []TransactionRecord{*a.logTransaction(kind, amount.Neg())}

	if mode == withdrawRegular {
		a.Balance = a.Balance.Sub(SavingsWithdrawalFee)
		records = append(records, *a.logTransaction(TransactionKindWithdrawalFee, SavingsWithdrawalFee.Neg()))
	}

	return records, nil
}

// withdrawCredit is a cash advance: percentage fee on top of the amount, both
// deducted in one step once the limit check passes
func (a *Account) withdrawCredit(amount decimal.Decimal, mode withdrawMode) ([]TransactionRecord, error) {
	if amount.LessThan(CreditMinCashAdvance) {
		return nil, ErrBelowMinimumAdvance
	}

	fee := decimal.Zero
	if mode == withdrawRegular {
		fee = amount.Mul(a.CashAdvanceFeeRate).Round(currencyPrecision)
	}

	if a.Balance.Sub(amount).Sub(fee).LessThan(a.CreditLimit.Neg()) {
		return nil, ErrCreditLimitExceeded
	}

	a.Balance = a.Balance.Sub(amount.Add(fee))
	kind := TransactionKindWithdrawal
	if mode == withdrawTransfer {
		kind = TransactionKindTransferOut
	}
	records := []TransactionRecord{*a.logTransaction(kind, amount.Neg())}
	if fee.GreaterThan(decimal.Zero) {
		records = append(records, *a.logTransaction(TransactionKindCashAdvanceFee, fee.Neg()))
	}

	return records, nil
}

// ApplyInterest adds one month of interest to a savings balance
func (a *Account) ApplyInterest() (*TransactionRecord, error) {
	if a.Kind != AccountKindSavings {
		return nil, ErrInvalidAccountKind
	}
	interest := a.Balance.Mul(a.InterestRate).Div(monthsPerYear).Round(currencyPrecision)
	a.Balance = a.Balance.Add(interest)
	return a.logTransaction(TransactionKindInterest, interest), nil
}

// ApplyDebtInterest charges one month of interest on a negative credit
// balance. A non-negative balance is a no-op and logs nothing.
func (a *Account) ApplyDebtInterest() (*TransactionRecord, error) {
	if a.Kind != AccountKindCredit {
		return nil, ErrInvalidAccountKind
	}
	if a.Balance.GreaterThanOrEqual(decimal.Zero) {
		return nil, nil
	}
	charge := a.Balance.Abs().Mul(a.DebtInterestRate).Div(monthsPerYear).Round(currencyPrecision)
	a.Balance = a.Balance.Sub(charge)
	return a.logTransaction(TransactionKindDebtInterest, charge.Neg()), nil
}

// ApplyPeriodicCharge applies the monthly charge appropriate for the account
// kind. Returns nil without error when the kind has nothing to charge.
func (a *Account) ApplyPeriodicCharge() (*TransactionRecord, error) {
	switch a.Kind {
	case AccountKindSavings:
		return a.ApplyInterest()
	case AccountKindCredit:
		return a.ApplyDebtInterest()
	default:
		return nil, ErrInvalidAccountKind
	}
}

// AvailableCredit returns the remaining spending capacity of a credit
// account. A funded positive balance extends available credit one to one
// above the limit.
func (a *Account) AvailableCredit() decimal.Decimal {
	return a.CreditLimit.Add(a.Balance)
}

// GetBalance returns the current balance without side effects
func (a *Account) GetBalance() decimal.Decimal {
	return a.Balance
}

// logTransaction appends a record with the current timestamp and the
// post-operation balance. It never fails in memory.
func (a *Account) logTransaction(kind string, amount decimal.Decimal) *TransactionRecord {
	record := NewTransactionRecord(kind, amount, a.Balance)
	a.Records = append(a.Records, record)
	return &a.Records[len(a.Records)-1]
}

// String returns a one-line account summary for listings
func (a *Account) String() string {
	return fmt.Sprintf("[Acc %d] %s (%s): %s", a.Number, a.HolderName, a.Kind, a.Balance.StringFixed(currencyPrecision))
}
