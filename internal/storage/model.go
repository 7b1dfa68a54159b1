// Package storage persists the account registry. Two backends implement the
// same contract: a CSV flat-file store (the default) and a SQLite store.
// Both treat storage as a write-behind cache of the in-memory registry.
package storage

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"bankledger/internal/models"
)

// Sentinel written in the MinBal_Fee column for account kinds that have no
// minimum balance
const fieldNotApplicable = "N/A"

// snapshotRow is the persisted shape of one account: shared fields plus a
// kind-specific rate-or-limit column and a minimum-or-sentinel column
type snapshotRow struct {
	Kind        string
	Number      string
	HolderName  string
	Balance     string
	RateOrLimit string
	MinOrFee    string
}

// toSnapshotRow converts an account to its canonical persisted form.
// The formatting here is the round-trip contract: loading a snapshot and
// immediately re-saving it reproduces identical rows.
func toSnapshotRow(account *models.Account) snapshotRow {
	row := snapshotRow{
		Kind:       account.Kind,
		Number:     strconv.Itoa(account.Number),
		HolderName: account.HolderName,
		Balance:    account.Balance.StringFixed(2),
	}
	switch account.Kind {
	case models.AccountKindSavings:
		row.RateOrLimit = account.InterestRate.String()
		row.MinOrFee = account.MinimumBalance.StringFixed(2)
	case models.AccountKindCredit:
		row.RateOrLimit = account.CreditLimit.StringFixed(2)
		row.MinOrFee = fieldNotApplicable
	}
	return row
}

// fromSnapshotRow restores an account from its persisted form. Rates not
// present in the snapshot (debt interest, cash advance fee) come from the
// ledger policy defaults.
func fromSnapshotRow(row snapshotRow) (*models.Account, error) {
	number, err := strconv.Atoi(row.Number)
	if err != nil {
		return nil, fmt.Errorf("invalid account number %q: %w", row.Number, err)
	}
	balance, err := decimal.NewFromString(row.Balance)
	if err != nil {
		return nil, fmt.Errorf("invalid balance %q for account %d: %w", row.Balance, number, err)
	}

	account := &models.Account{
		Number:     number,
		HolderName: row.HolderName,
		Kind:       row.Kind,
		Balance:    balance,
	}

	switch row.Kind {
	case models.AccountKindSavings:
		rate, err := decimal.NewFromString(row.RateOrLimit)
		if err != nil {
			return nil, fmt.Errorf("invalid interest rate %q for account %d: %w", row.RateOrLimit, number, err)
		}
		minBalance, err := decimal.NewFromString(row.MinOrFee)
		if err != nil {
			return nil, fmt.Errorf("invalid minimum balance %q for account %d: %w", row.MinOrFee, number, err)
		}
		account.InterestRate = rate
		account.MinimumBalance = minBalance
	case models.AccountKindCredit:
		limit, err := decimal.NewFromString(row.RateOrLimit)
		if err != nil {
			return nil, fmt.Errorf("invalid credit limit %q for account %d: %w", row.RateOrLimit, number, err)
		}
		account.CreditLimit = limit
		account.DebtInterestRate = models.CreditDebtInterestRate
		account.CashAdvanceFeeRate = models.CreditCashAdvanceFee
	default:
		return nil, fmt.Errorf("unknown account type %q", row.Kind)
	}

	return account, nil
}
