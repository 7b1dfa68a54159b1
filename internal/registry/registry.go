// Package registry holds the in-memory account collection that is the source
// of truth during a session. It owns the per-kind account number sequences;
// numbers are handed out monotonically and never reused.
package registry

import (
	"errors"
	"iter"

	"bankledger/internal/models"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateNumber = errors.New("account number already registered")
)

// Registry maps account numbers to accounts and preserves insertion order
// for listings
type Registry struct {
	accounts map[int]*models.Account
	order    []int

	nextSavings int
	nextCredit  int
}

// New creates an empty registry with the number sequences at their starting
// values
func New() *Registry {
	return &Registry{
		accounts:    make(map[int]*models.Account),
		nextSavings: models.SavingsNumberStart,
		nextCredit:  models.CreditNumberStart,
	}
}

// NextNumber allocates the next sequential account number for the kind
func (r *Registry) NextNumber(kind string) (int, error) {
	switch kind {
	case models.AccountKindSavings:
		number := r.nextSavings
		r.nextSavings++
		return number, nil
	case models.AccountKindCredit:
		number := r.nextCredit
		r.nextCredit++
		return number, nil
	default:
		return 0, models.ErrInvalidAccountKind
	}
}

// Add registers an account. Loading persisted accounts advances the number
// sequence past the highest number seen, so later allocations never collide.
func (r *Registry) Add(account *models.Account) error {
	if _, exists := r.accounts[account.Number]; exists {
		return ErrDuplicateNumber
	}

	r.accounts[account.Number] = account
	r.order = append(r.order, account.Number)

	switch account.Kind {
	case models.AccountKindSavings:
		if account.Number >= r.nextSavings {
			r.nextSavings = account.Number + 1
		}
	case models.AccountKindCredit:
		if account.Number >= r.nextCredit {
			r.nextCredit = account.Number + 1
		}
	}

	return nil
}

// Get looks up an account by number
func (r *Registry) Get(number int) (*models.Account, error) {
	account, ok := r.accounts[number]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// Len returns the number of registered accounts
func (r *Registry) Len() int {
	return len(r.accounts)
}

// All returns a lazy, restartable sequence of accounts in insertion order
func (r *Registry) All() iter.Seq[*models.Account] {
	return func(yield func(*models.Account) bool) {
		for _, number := range r.order {
			if !yield(r.accounts[number]) {
				return
			}
		}
	}
}

// Accounts returns a snapshot slice in insertion order, for persistence
func (r *Registry) Accounts() []*models.Account {
	accounts := make([]*models.Account, 0, len(r.order))
	for _, number := range r.order {
		accounts = append(accounts, r.accounts[number])
	}
	return accounts
}
