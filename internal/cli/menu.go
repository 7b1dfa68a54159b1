// Package cli is the interactive terminal menu, a thin wrapper over the
// operation engine. It owns prompting, retry loops, and display formatting;
// every rule lives behind the engine interface.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bankledger/internal/dto"
	apperrors "bankledger/internal/errors"
	"bankledger/internal/models"
	"bankledger/internal/services"
)

// Menu drives the interactive session
type Menu struct {
	engine      services.LedgerServiceInterface
	in          *bufio.Scanner
	out         io.Writer
	maxAttempts int
}

// New creates a menu over the engine, reading from in and writing to out
func New(engine services.LedgerServiceInterface, in io.Reader, out io.Writer, maxAttempts int) *Menu {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Menu{
		engine:      engine,
		in:          bufio.NewScanner(in),
		out:         out,
		maxAttempts: maxAttempts,
	}
}

// Run loops the main menu until the user exits or input ends
func (m *Menu) Run() {
	for {
		fmt.Fprintln(m.out)
		fmt.Fprintln(m.out, "===== Banking Ledger =====")
		fmt.Fprintln(m.out, "1. Open New Account")
		fmt.Fprintln(m.out, "2. Deposit")
		fmt.Fprintln(m.out, "3. Withdraw")
		fmt.Fprintln(m.out, "4. Transfer Money")
		fmt.Fprintln(m.out, "5. View All Accounts")
		fmt.Fprintln(m.out, "6. View Transaction History")
		fmt.Fprintln(m.out, "7. End of Month Processing")
		fmt.Fprintln(m.out, "8. Exit")

		choice, ok := m.readLine("Select an option: ")
		if !ok {
			return
		}

		switch strings.TrimSpace(choice) {
		case "1":
			m.openAccount()
		case "2":
			m.performTransaction(dto.TransactionTypeDeposit)
		case "3":
			m.performTransaction(dto.TransactionTypeWithdraw)
		case "4":
			m.transfer()
		case "5":
			m.listAccounts()
		case "6":
			m.showHistory()
		case "7":
			m.endOfMonth()
		case "8":
			fmt.Fprintln(m.out, "Goodbye.")
			return
		default:
			fmt.Fprintln(m.out, "Invalid choice, try again.")
		}
	}
}

func (m *Menu) openAccount() {
	fmt.Fprintln(m.out, "\n--- Open New Account ---")
	fmt.Fprintf(m.out, "1. Savings Account (minimum deposit %s)\n", models.MinSavingsDeposit.StringFixed(2))
	fmt.Fprintf(m.out, "2. Credit Account  (minimum deposit %s)\n", models.MinCreditDeposit.StringFixed(2))

	kindChoice, ok := m.promptInt("Select account type (1 or 2): ")
	if !ok {
		return
	}
	var kind string
	switch kindChoice {
	case 1:
		kind = models.AccountKindSavings
	case 2:
		kind = models.AccountKindCredit
	default:
		fmt.Fprintln(m.out, "Invalid choice.")
		return
	}

	holder, ok := m.readLine("Enter holder name: ")
	if !ok {
		return
	}
	amount, ok := m.promptAmount("Enter initial deposit amount: ")
	if !ok {
		return
	}

	account, err := m.engine.CreateAccount(dto.CreateAccountRequest{
		Kind:           kind,
		HolderName:     strings.TrimSpace(holder),
		InitialDeposit: amount,
	})
	if m.reportError(err) {
		return
	}
	fmt.Fprintf(m.out, "Account created. Number: %d\n", account.Number)
}

func (m *Menu) performTransaction(txType string) {
	number, ok := m.promptInt("Enter account number: ")
	if !ok {
		return
	}

	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		amount, ok := m.promptAmount(fmt.Sprintf("Enter amount to %s: ", txType))
		if !ok {
			return
		}

		record, err := m.engine.PerformTransaction(dto.TransactionRequest{
			AccountNumber: number,
			Type:          txType,
			Amount:        amount,
		})
		if err != nil && !isPersistenceWarning(err) {
			fmt.Fprintf(m.out, "Transaction failed (attempt %d/%d): %s\n",
				attempt, m.maxAttempts, failureReason(err))
			if apperrors.IsCode(err, apperrors.AccountNotFound) {
				return
			}
			continue
		}
		m.reportError(err)
		fmt.Fprintf(m.out, "Done. New balance: %s\n", record.FormattedBalance())
		return
	}
	fmt.Fprintln(m.out, "Maximum attempts reached, returning to main menu.")
}

func (m *Menu) transfer() {
	fmt.Fprintln(m.out, "\n--- Money Transfer ---")
	from, ok := m.promptInt("From account number: ")
	if !ok {
		return
	}
	to, ok := m.promptInt("To account number: ")
	if !ok {
		return
	}
	amount, ok := m.promptAmount("Enter amount to transfer: ")
	if !ok {
		return
	}

	err := m.engine.TransferFunds(dto.TransferRequest{
		FromAccountNumber: from,
		ToAccountNumber:   to,
		Amount:            amount,
	})
	if m.reportError(err) {
		return
	}
	fmt.Fprintf(m.out, "Transfer of %s completed.\n", amount)
}

func (m *Menu) listAccounts() {
	fmt.Fprintln(m.out, "\n--- Account Registry ---")
	count := 0
	for summary := range m.engine.ListAccounts() {
		fmt.Fprintf(m.out, "[Acc %d] %s (%s): %s\n",
			summary.Number, summary.Holder, summary.Kind, summary.Balance.StringFixed(2))
		count++
	}
	if count == 0 {
		fmt.Fprintln(m.out, "No accounts found.")
	}
}

func (m *Menu) showHistory() {
	number, ok := m.promptInt("Enter account number: ")
	if !ok {
		return
	}
	records, err := m.engine.GetHistory(number)
	if m.reportError(err) {
		return
	}

	fmt.Fprintf(m.out, "\n--- Transaction History for Account %d ---\n", number)
	if len(records) == 0 {
		fmt.Fprintln(m.out, "No transactions recorded.")
		return
	}
	for _, record := range records {
		fmt.Fprintf(m.out, "%s %s  %-22s %12s  balance %s\n",
			record.Timestamp.Format(models.DateLayout),
			record.Timestamp.Format(models.TimeLayout),
			record.Kind,
			record.FormattedAmount(),
			record.FormattedBalance(),
		)
	}
}

func (m *Menu) endOfMonth() {
	fmt.Fprintln(m.out, "\n--- End of Month Processing ---")
	if m.reportError(m.engine.ApplyPeriodicCharges()) {
		return
	}
	fmt.Fprintln(m.out, "All accounts updated and saved.")
}

// readLine prints the prompt and reads one line. ok is false when input ends.
func (m *Menu) readLine(prompt string) (string, bool) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

// promptInt retries invalid numeric input up to maxAttempts
func (m *Menu) promptInt(prompt string) (int, bool) {
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		line, ok := m.readLine(prompt)
		if !ok {
			return 0, false
		}
		value, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			return value, true
		}
		fmt.Fprintf(m.out, "Invalid number (attempt %d/%d).\n", attempt, m.maxAttempts)
	}
	fmt.Fprintln(m.out, "Maximum attempts reached, returning to main menu.")
	return 0, false
}

// promptAmount reads a raw amount string; full validation belongs to the
// engine, this only rejects empty input
func (m *Menu) promptAmount(prompt string) (string, bool) {
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		line, ok := m.readLine(prompt)
		if !ok {
			return "", false
		}
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			return trimmed, true
		}
		fmt.Fprintf(m.out, "Amount cannot be empty (attempt %d/%d).\n", attempt, m.maxAttempts)
	}
	fmt.Fprintln(m.out, "Maximum attempts reached, returning to main menu.")
	return "", false
}

// reportError prints err and reports whether the operation failed. A
// persistence failure is printed as a warning but treated as success: the
// in-memory ledger already committed the operation.
func (m *Menu) reportError(err error) bool {
	if err == nil {
		return false
	}
	if isPersistenceWarning(err) {
		fmt.Fprintf(m.out, "Warning: %s\n", failureReason(err))
		return false
	}
	fmt.Fprintf(m.out, "Error: %s\n", failureReason(err))
	return true
}

func isPersistenceWarning(err error) bool {
	return apperrors.IsCode(err, apperrors.StoragePersistenceFailure)
}

func failureReason(err error) string {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}
