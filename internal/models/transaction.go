package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction kind labels as they appear in account histories and log files
const (
	TransactionKindCreated        = "Account Created"
	TransactionKindDeposit        = "Deposit"
	TransactionKindWithdrawal     = "Withdrawal"
	TransactionKindWithdrawalFee  = "Withdrawal Fee"
	TransactionKindCashAdvanceFee = "Cash Advance Fee"
	TransactionKindInterest       = "Interest Applied"
	TransactionKindDebtInterest   = "Debt Interest Charged"
	TransactionKindTransferIn     = "Transfer In"
	TransactionKindTransferOut    = "Transfer Out"
)

// Currency values carry exactly two fractional digits
const currencyPrecision = 2

// Date and time layouts for persisted transaction logs
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// TransactionRecord is one immutable entry in an account's history: what
// happened, the signed amount, and the balance it left behind. Records are
// created by the owning account and never mutated or deleted.
type TransactionRecord struct {
	Timestamp time.Time
	Kind      string
	Amount    decimal.Decimal
	Balance   decimal.Decimal
	Reference string
}

// NewTransactionRecord creates a record stamped with the current time
func NewTransactionRecord(kind string, amount, balance decimal.Decimal) TransactionRecord {
	return TransactionRecord{
		Timestamp: time.Now(),
		Kind:      kind,
		Amount:    amount,
		Balance:   balance,
		Reference: GenerateTransactionReference(),
	}
}

// GenerateTransactionReference generates a unique transaction reference
func GenerateTransactionReference() string {
	return "TXN-" + uuid.New().String()[:8] + "-" + time.Now().Format("20060102150405")
}

// IsDebit reports whether the record moved money out of the account
func (r TransactionRecord) IsDebit() bool {
	return r.Amount.LessThan(decimal.Zero)
}

// FormattedAmount returns the signed amount with two fractional digits
func (r TransactionRecord) FormattedAmount() string {
	return r.Amount.StringFixed(currencyPrecision)
}

// FormattedBalance returns the resulting balance with two fractional digits
func (r TransactionRecord) FormattedBalance() string {
	return r.Balance.StringFixed(currencyPrecision)
}
