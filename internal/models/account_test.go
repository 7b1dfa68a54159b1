package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSavingsAccount(t *testing.T) {
	account := NewSavingsAccount(1200, "Asha Perera", decimal.NewFromInt(1000))

	assert.Equal(t, 1200, account.Number)
	assert.Equal(t, AccountKindSavings, account.Kind)
	assert.True(t, decimal.NewFromInt(1000).Equal(account.Balance))
	assert.True(t, SavingsInterestRate.Equal(account.InterestRate))
	assert.True(t, SavingsMinimumBalance.Equal(account.MinimumBalance))

	require.Len(t, account.Records, 1)
	assert.Equal(t, TransactionKindCreated, account.Records[0].Kind)
	assert.True(t, decimal.NewFromInt(1000).Equal(account.Records[0].Amount))
}

func TestNewCreditAccount(t *testing.T) {
	account := NewCreditAccount(1900, "Nuwan Silva", decimal.NewFromInt(5000))

	assert.Equal(t, 1900, account.Number)
	assert.Equal(t, AccountKindCredit, account.Kind)
	assert.True(t, CreditLimit.Equal(account.CreditLimit))
	assert.True(t, CreditDebtInterestRate.Equal(account.DebtInterestRate))
	assert.True(t, CreditCashAdvanceFee.Equal(account.CashAdvanceFeeRate))

	require.Len(t, account.Records, 1)
	assert.Equal(t, TransactionKindCreated, account.Records[0].Kind)
}

func TestAccount_Deposit(t *testing.T) {
	tests := []struct {
		name            string
		amount          decimal.Decimal
		wantErr         error
		expectedBalance decimal.Decimal
	}{
		{
			name:            "positive amount increases balance",
			amount:          decimal.NewFromFloat(250.50),
			expectedBalance: decimal.NewFromFloat(1250.50),
		},
		{
			name:    "zero amount rejected",
			amount:  decimal.Zero,
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount rejected",
			amount:  decimal.NewFromInt(-10),
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := NewSavingsAccount(1200, "Asha Perera", decimal.NewFromInt(1000))
			recordsBefore := len(account.Records)

			record, err := account.Deposit(tt.amount)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, decimal.NewFromInt(1000).Equal(account.Balance))
				assert.Len(t, account.Records, recordsBefore)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.expectedBalance.Equal(account.Balance))
			// exactly one record per deposit
			assert.Len(t, account.Records, recordsBefore+1)
			assert.Equal(t, TransactionKindDeposit, record.Kind)
			assert.True(t, tt.expectedBalance.Equal(record.Balance))
		})
	}
}

func TestSavingsAccount_Withdraw(t *testing.T) {
	tests := []struct {
		name            string
		balance         decimal.Decimal
		amount          decimal.Decimal
		wantErr         error
		expectedBalance decimal.Decimal
		expectedKinds   []string
	}{
		{
			name:            "regular withdrawal subtracts amount and flat fee",
			balance:         decimal.NewFromInt(1000),
			amount:          decimal.NewFromInt(100),
			expectedBalance: decimal.NewFromInt(895),
			expectedKinds:   []string{TransactionKindWithdrawal, TransactionKindWithdrawalFee},
		},
		{
			name:    "below minimum withdrawal amount",
			balance: decimal.NewFromInt(1000),
			amount:  decimal.NewFromFloat(49.99),
			wantErr: ErrBelowMinimumWithdrawal,
		},
		{
			name:    "would breach minimum balance",
			balance: decimal.NewFromInt(600),
			amount:  decimal.NewFromInt(150),
			wantErr: ErrBelowMinimumBalance,
		},
		{
			name:    "non-positive amount",
			balance: decimal.NewFromInt(1000),
			amount:  decimal.NewFromInt(-50),
			wantErr: ErrInvalidAmount,
		},
		{
			// the minimum-balance rule applies to the pre-fee balance; the
			// flat fee itself may take the balance below the minimum
			name:            "fee may dip below the minimum balance",
			balance:         decimal.NewFromInt(550),
			amount:          decimal.NewFromInt(50),
			expectedBalance: decimal.NewFromInt(495),
			expectedKinds:   []string{TransactionKindWithdrawal, TransactionKindWithdrawalFee},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := NewSavingsAccount(1200, "Asha Perera", tt.balance)
			recordsBefore := len(account.Records)

			records, err := account.Withdraw(tt.amount)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, tt.balance.Equal(account.Balance), "balance must be unchanged on rejection")
				assert.Len(t, account.Records, recordsBefore)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.expectedBalance.Equal(account.Balance),
				"expected %s got %s", tt.expectedBalance, account.Balance)
			require.Len(t, records, len(tt.expectedKinds))
			for i, kind := range tt.expectedKinds {
				assert.Equal(t, kind, records[i].Kind)
			}
		})
	}
}

func TestCreditAccount_Withdraw(t *testing.T) {
	tests := []struct {
		name            string
		balance         decimal.Decimal
		amount          decimal.Decimal
		wantErr         error
		expectedBalance decimal.Decimal
		expectedFee     decimal.Decimal
	}{
		{
			name:            "cash advance deducts amount plus fee",
			balance:         decimal.NewFromInt(5000),
			amount:          decimal.NewFromInt(1000),
			expectedBalance: decimal.NewFromInt(3970),
			expectedFee:     decimal.NewFromInt(30),
		},
		{
			name:    "below minimum cash advance",
			balance: decimal.NewFromInt(5000),
			amount:  decimal.NewFromInt(499),
			wantErr: ErrBelowMinimumAdvance,
		},
		{
			name:    "exceeds credit limit after fee",
			balance: decimal.Zero,
			amount:  decimal.NewFromInt(5200),
			wantErr: ErrCreditLimitExceeded,
		},
		{
			name:            "within limit including fee",
			balance:         decimal.Zero,
			amount:          decimal.NewFromInt(4800),
			expectedBalance: decimal.NewFromInt(-4944),
			expectedFee:     decimal.NewFromInt(144),
		},
		{
			name:    "limit check includes the fee",
			balance: decimal.Zero,
			amount:  decimal.NewFromInt(4900),
			// 4900 + 147 fee = 5047 past the 5000 limit
			wantErr: ErrCreditLimitExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := NewCreditAccount(1900, "Nuwan Silva", tt.balance)
			recordsBefore := len(account.Records)

			records, err := account.Withdraw(tt.amount)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, tt.balance.Equal(account.Balance))
				assert.Len(t, account.Records, recordsBefore)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.expectedBalance.Equal(account.Balance),
				"expected %s got %s", tt.expectedBalance, account.Balance)
			require.Len(t, records, 2)
			assert.Equal(t, TransactionKindWithdrawal, records[0].Kind)
			assert.Equal(t, TransactionKindCashAdvanceFee, records[1].Kind)
			assert.True(t, tt.expectedFee.Neg().Equal(records[1].Amount),
				"expected fee %s got %s", tt.expectedFee, records[1].Amount.Neg())
		})
	}
}

func TestAccount_TransferLegs(t *testing.T) {
	t.Run("savings transfer out skips the flat fee", func(t *testing.T) {
		account := NewSavingsAccount(1200, "Asha Perera", decimal.NewFromInt(1000))

		record, err := account.TransferOut(decimal.NewFromInt(300))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(700).Equal(account.Balance))
		assert.Equal(t, TransactionKindTransferOut, record.Kind)
	})

	t.Run("savings transfer out still enforces minimum balance", func(t *testing.T) {
		account := NewSavingsAccount(1200, "Asha Perera", decimal.NewFromInt(600))

		_, err := account.TransferOut(decimal.NewFromInt(150))
		require.ErrorIs(t, err, ErrBelowMinimumBalance)
		assert.True(t, decimal.NewFromInt(600).Equal(account.Balance))
	})

	t.Run("credit transfer out skips the cash advance fee", func(t *testing.T) {
		account := NewCreditAccount(1900, "Nuwan Silva", decimal.Zero)

		record, err := account.TransferOut(decimal.NewFromInt(5000))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(-5000).Equal(account.Balance))
		assert.Equal(t, TransactionKindTransferOut, record.Kind)
	})

	t.Run("transfer in credits and logs", func(t *testing.T) {
		account := NewSavingsAccount(1201, "Asha Perera", decimal.NewFromInt(500))

		record, err := account.TransferIn(decimal.NewFromInt(300))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(800).Equal(account.Balance))
		assert.Equal(t, TransactionKindTransferIn, record.Kind)
	})
}

func TestSavingsAccount_ApplyInterest(t *testing.T) {
	account := NewSavingsAccount(1200, "Asha Perera", decimal.NewFromInt(1000))

	record, err := account.ApplyInterest()
	require.NoError(t, err)
	// 1000 * 0.04 / 12 = 3.33 at currency precision
	assert.True(t, decimal.NewFromFloat(1003.33).Equal(account.Balance))
	assert.Equal(t, TransactionKindInterest, record.Kind)
	assert.True(t, decimal.NewFromFloat(3.33).Equal(record.Amount))
}

func TestSavingsAccount_InterestRoundingStability(t *testing.T) {
	account := NewSavingsAccount(1200, "Asha Perera", decimal.NewFromInt(1000))

	previous := account.Balance
	for i := 0; i < 24; i++ {
		_, err := account.ApplyInterest()
		require.NoError(t, err)

		// balance stays at two fractional digits and never decreases
		assert.GreaterOrEqual(t, account.Balance.Exponent(), int32(-2))
		assert.True(t, account.Balance.GreaterThanOrEqual(previous))
		previous = account.Balance
	}
}

func TestCreditAccount_ApplyDebtInterest(t *testing.T) {
	t.Run("charges interest on negative balance", func(t *testing.T) {
		account := NewCreditAccount(1900, "Nuwan Silva", decimal.NewFromInt(-1000))

		record, err := account.ApplyDebtInterest()
		require.NoError(t, err)
		// 1000 * 0.15 / 12 = 12.50, compounding the debt
		assert.True(t, decimal.NewFromFloat(-1012.50).Equal(account.Balance))
		require.NotNil(t, record)
		assert.Equal(t, TransactionKindDebtInterest, record.Kind)
		assert.True(t, decimal.NewFromFloat(-12.50).Equal(record.Amount))
	})

	t.Run("non-negative balance is a no-op and logs nothing", func(t *testing.T) {
		account := NewCreditAccount(1900, "Nuwan Silva", decimal.NewFromInt(2000))
		recordsBefore := len(account.Records)

		record, err := account.ApplyDebtInterest()
		require.NoError(t, err)
		assert.Nil(t, record)
		assert.True(t, decimal.NewFromInt(2000).Equal(account.Balance))
		assert.Len(t, account.Records, recordsBefore)
	})
}

func TestAccount_ApplyPeriodicCharge(t *testing.T) {
	savings := NewSavingsAccount(1200, "Asha Perera", decimal.NewFromInt(1200))
	credit := NewCreditAccount(1900, "Nuwan Silva", decimal.NewFromInt(-600))

	savingsRecord, err := savings.ApplyPeriodicCharge()
	require.NoError(t, err)
	assert.Equal(t, TransactionKindInterest, savingsRecord.Kind)

	creditRecord, err := credit.ApplyPeriodicCharge()
	require.NoError(t, err)
	assert.Equal(t, TransactionKindDebtInterest, creditRecord.Kind)

	unknown := &Account{Kind: "UNKNOWN"}
	_, err = unknown.ApplyPeriodicCharge()
	require.ErrorIs(t, err, ErrInvalidAccountKind)
}

func TestCreditAccount_AvailableCredit(t *testing.T) {
	tests := []struct {
		name     string
		balance  decimal.Decimal
		expected decimal.Decimal
	}{
		{
			// a funded balance extends available credit one to one
			name:     "positive balance extends the limit",
			balance:  decimal.NewFromInt(5000),
			expected: decimal.NewFromInt(10000),
		},
		{
			name:     "zero balance equals the limit",
			balance:  decimal.Zero,
			expected: decimal.NewFromInt(5000),
		},
		{
			name:     "debt reduces availability",
			balance:  decimal.NewFromInt(-3000),
			expected: decimal.NewFromInt(2000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := NewCreditAccount(1900, "Nuwan Silva", tt.balance)
			assert.True(t, tt.expected.Equal(account.AvailableCredit()))
		})
	}
}

func TestIsValidAccountKind(t *testing.T) {
	assert.True(t, IsValidAccountKind(AccountKindSavings))
	assert.True(t, IsValidAccountKind(AccountKindCredit))
	assert.False(t, IsValidAccountKind("CHECKING"))
	assert.False(t, IsValidAccountKind(""))
}

func TestMinimumInitialDeposit(t *testing.T) {
	savingsMin, err := MinimumInitialDeposit(AccountKindSavings)
	require.NoError(t, err)
	assert.True(t, MinSavingsDeposit.Equal(savingsMin))

	creditMin, err := MinimumInitialDeposit(AccountKindCredit)
	require.NoError(t, err)
	assert.True(t, MinCreditDeposit.Equal(creditMin))

	_, err = MinimumInitialDeposit("bogus")
	require.ErrorIs(t, err, ErrInvalidAccountKind)
}
